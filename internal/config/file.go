package config

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// SettingsFile is the settings file name inside the preferences directory.
const SettingsFile = "settings.txt"

// Widths of the name and value fields in the settings file.
const (
	MaxNameLen  = 24
	MaxValueLen = 10
)

// savedFields are the settings written by Save, in file order.
var savedFields = []string{
	"dpad_enabled",
	"default_dpad_mode",
	"dpad_transparency",
	"zoom_mode",
	"init_zoom",
	"max_zoom",
	"default_graphics_mode",
	"tiles_animation",
	"dynamic_colors",
	"smart_zoom",
	"filter_mode",
}

// Persisted reports whether Save writes the named setting.
func Persisted(name string) bool {
	for _, n := range savedFields {
		if n == name {
			return true
		}
	}
	return false
}

// Load reads "name value" pairs and applies them with Set. A token longer
// than its field width is split and the remainder starts the next field.
// Reading stops at the first incomplete pair.
func (s *Settings) Load(r io.Reader) error {
	sc := &fieldScanner{r: bufio.NewReader(r)}
	for {
		name, ok := sc.next(MaxNameLen)
		if !ok {
			break
		}
		value, ok := sc.next(MaxValueLen)
		if !ok {
			break
		}
		s.Set(name, value)
	}
	if sc.err != nil && !errors.Is(sc.err, io.EOF) {
		return fmt.Errorf("read settings: %w", sc.err)
	}
	return nil
}

// LoadFile loads settings from path. A missing file leaves s unchanged.
func (s *Settings) LoadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("open settings %s: %w", path, err)
	}
	defer f.Close()
	return s.Load(f)
}

// Save writes the persisted subset of settings, one "name value" per line.
func (s *Settings) Save(w io.Writer) error {
	var buf bytes.Buffer
	for _, name := range savedFields {
		f, _ := lookupField(name)
		buf.WriteString(name)
		buf.WriteByte(' ')
		buf.WriteString(formatValue(f.ptr(s)))
		buf.WriteByte('\n')
	}
	if _, err := w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	return nil
}

// SaveFile writes the settings file at path, creating its directory.
func (s *Settings) SaveFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o770); err != nil {
		return fmt.Errorf("create settings dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create settings %s: %w", path, err)
	}
	if err := s.Save(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// fieldScanner reads whitespace-separated tokens capped at a width.
type fieldScanner struct {
	r   *bufio.Reader
	err error
}

func (sc *fieldScanner) next(width int) (string, bool) {
	var b byte
	for {
		b, sc.err = sc.r.ReadByte()
		if sc.err != nil {
			return "", false
		}
		if !isSpace(b) {
			break
		}
	}
	tok := []byte{b}
	for len(tok) < width {
		b, sc.err = sc.r.ReadByte()
		if sc.err != nil {
			return string(tok), true
		}
		if isSpace(b) {
			break
		}
		tok = append(tok, b)
	}
	return string(tok), true
}

func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}
