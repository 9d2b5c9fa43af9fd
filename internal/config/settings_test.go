package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/brogue-touch/brogue_touch/internal/core"
)

func TestDefaults(t *testing.T) {
	s := Defaults()
	if !s.DoubleTapLock || s.DoubleTapInterval != 500 {
		t.Errorf("double tap defaults = %v/%d", s.DoubleTapLock, s.DoubleTapInterval)
	}
	if s.LongPressInterval != 750 || s.DpadTransparency != 75 {
		t.Errorf("long press/transparency = %d/%d", s.LongPressInterval, s.DpadTransparency)
	}
	if s.InitZoom != 2.0 || s.MaxZoom != 4.0 || s.FilterMode != FilterAnisotropic {
		t.Errorf("zoom/filter defaults = %v/%v/%d", s.InitZoom, s.MaxZoom, s.FilterMode)
	}
	if !s.DpadMode || !s.DefaultDpadMode {
		t.Error("dpad should start in movement mode")
	}
	if s.GraphicsMode() != core.TilesGraphics {
		t.Errorf("GraphicsMode() = %v, want tiles", s.GraphicsMode())
	}
}

func TestSetParsesLikeC(t *testing.T) {
	tests := []struct {
		name, value string
		check       func(s *Settings) bool
	}{
		{"dpad_width", "120", func(s *Settings) bool { return s.DpadWidth == 120 }},
		{"dpad_width", "  -7px", func(s *Settings) bool { return s.DpadWidth == -7 }},
		{"dpad_width", "abc", func(s *Settings) bool { return s.DpadWidth == 0 }},
		{"init_zoom", "2.5", func(s *Settings) bool { return s.InitZoom == 2.5 }},
		{"init_zoom", "3.", func(s *Settings) bool { return s.InitZoom == 3 }},
		{"init_zoom", ".5x", func(s *Settings) bool { return s.InitZoom == 0.5 }},
		{"init_zoom", "1e1", func(s *Settings) bool { return s.InitZoom == 10 }},
		{"init_zoom", "1e", func(s *Settings) bool { return s.InitZoom == 1 }},
		{"max_zoom", "zoom", func(s *Settings) bool { return s.MaxZoom == 0 }},
		{"force_portrait", "1", func(s *Settings) bool { return s.ForcePortrait }},
		{"double_tap_lock", "0", func(s *Settings) bool { return !s.DoubleTapLock }},
		{"smart_zoom", "7", func(s *Settings) bool { return s.SmartZoom }},
		{"keyboard_visibility", "2", func(s *Settings) bool { return s.KeyboardVisibility == 2 }},
		{"custom_cell_width", "12.25", func(s *Settings) bool { return s.CustomCellWidth == 12.25 }},
	}

	for _, tc := range tests {
		t.Run(tc.name+"="+tc.value, func(t *testing.T) {
			s := Defaults()
			if !s.Set(tc.name, tc.value) {
				t.Fatalf("Set(%q) reported unknown", tc.name)
			}
			if !tc.check(s) {
				t.Errorf("Set(%q, %q) produced %+v", tc.name, tc.value, s)
			}
		})
	}
}

func TestSetDefaultDpadModeUpdatesRuntimeMode(t *testing.T) {
	s := Defaults()
	s.Set("default_dpad_mode", "0")
	if s.DefaultDpadMode || s.DpadMode {
		t.Errorf("DefaultDpadMode=%v DpadMode=%v, want both false", s.DefaultDpadMode, s.DpadMode)
	}
}

func TestSetUnknownIgnored(t *testing.T) {
	s := Defaults()
	before := *s
	if s.Set("no_such_setting", "1") {
		t.Error("unknown setting reported as known")
	}
	if *s != before {
		t.Error("unknown setting modified the record")
	}
}

func TestSetEmptyNameResetsSubset(t *testing.T) {
	s := Defaults()
	s.DpadEnabled = false
	s.ZoomMode = ZoomStatic
	s.MaxZoom = 9
	s.DefaultDpadMode = false
	s.DpadMode = true
	s.DpadTransparency = 200

	if !s.Set("", "") {
		t.Fatal("empty name should be accepted")
	}
	if !s.DpadEnabled || s.ZoomMode != ZoomFollowPlayer || s.MaxZoom != 4.0 {
		t.Errorf("reset subset not applied: %+v", s)
	}
	if s.DpadMode != false {
		t.Error("DpadMode should follow DefaultDpadMode on reset")
	}
	if s.DpadTransparency != 200 {
		t.Error("reset touched a field outside its subset")
	}
}

func TestLoad(t *testing.T) {
	in := "dpad_width 140\n" +
		"init_zoom 3.5\n" +
		"bogus_key 42\n" +
		"force_portrait    1\textra_trailing"
	s := Defaults()
	if err := s.Load(strings.NewReader(in)); err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if s.DpadWidth != 140 || s.InitZoom != 3.5 || !s.ForcePortrait {
		t.Errorf("Load() result = %+v", s)
	}
}

func TestLoadSplitsOverlongTokens(t *testing.T) {
	// A 26-character name: the first 24 characters are the name, the last
	// two become its value, and "1" then "zoom_mode" form the next pair.
	in := "double_tap_intervalXXXXX99 1 zoom_mode 0"
	s := Defaults()
	if err := s.Load(strings.NewReader(in)); err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if s.ZoomMode != ZoomFollowPlayer {
		t.Errorf("ZoomMode = %d; the pair should have been misaligned", s.ZoomMode)
	}

	s = Defaults()
	in = "dpad_transparency 12345678901234"
	if err := s.Load(strings.NewReader(in)); err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if s.DpadTransparency != 1234567890 {
		t.Errorf("DpadTransparency = %d, want value truncated to 10 digits", s.DpadTransparency)
	}
}

func TestLoadFileMissingKeepsDefaults(t *testing.T) {
	s := Defaults()
	if err := s.LoadFile(filepath.Join(t.TempDir(), "nope.txt")); err != nil {
		t.Fatalf("LoadFile() on missing file failed: %v", err)
	}
	if *s != *Defaults() {
		t.Error("missing file changed settings")
	}
}

func TestSaveWritesFixedKeys(t *testing.T) {
	s := Defaults()
	s.InitZoom = 2.25
	var sb strings.Builder
	if err := s.Save(&sb); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}
	want := "dpad_enabled 1\n" +
		"default_dpad_mode 1\n" +
		"dpad_transparency 75\n" +
		"zoom_mode 1\n" +
		"init_zoom 2.2\n" +
		"max_zoom 4.0\n" +
		"default_graphics_mode 1\n" +
		"tiles_animation 1\n" +
		"dynamic_colors 1\n" +
		"smart_zoom 1\n" +
		"filter_mode 2\n"
	if sb.String() != want {
		t.Errorf("Save() =\n%s\nwant\n%s", sb.String(), want)
	}
}

func TestSaveFileThenLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs", SettingsFile)
	s := Defaults()
	s.DpadTransparency = 180
	s.ZoomMode = ZoomStatic
	s.DoubleTapInterval = 300 // not persisted
	if err := s.SaveFile(path); err != nil {
		t.Fatalf("SaveFile() failed: %v", err)
	}

	loaded := Defaults()
	if err := loaded.LoadFile(path); err != nil {
		t.Fatalf("LoadFile() failed: %v", err)
	}
	if loaded.DpadTransparency != 180 || loaded.ZoomMode != ZoomStatic {
		t.Errorf("persisted fields lost: %+v", loaded)
	}
	if loaded.DoubleTapInterval != 500 {
		t.Errorf("DoubleTapInterval = %d; it is not part of the file", loaded.DoubleTapInterval)
	}
}

func TestSaveFolder(t *testing.T) {
	pref := t.TempDir()
	dir, err := SaveFolder(pref, 1, 14)
	if err != nil {
		t.Fatalf("SaveFolder() failed: %v", err)
	}
	if filepath.Base(dir) != "CE-1.14" {
		t.Errorf("SaveFolder() = %s", dir)
	}
	if fi, err := os.Stat(dir); err != nil || !fi.IsDir() {
		t.Errorf("save folder not created: %v", err)
	}
}

func TestSettingsPathInSaveFolder(t *testing.T) {
	pref := t.TempDir()
	dir, err := SaveFolder(pref, VersionMajor, VersionMinor)
	if err != nil {
		t.Fatalf("SaveFolder() failed: %v", err)
	}
	if got, want := SettingsPath(pref), filepath.Join(dir, SettingsFile); got != want {
		t.Errorf("SettingsPath() = %s, want %s", got, want)
	}
}

func TestLookupAndNames(t *testing.T) {
	s := Defaults()
	names := Names()
	if len(names) != 27 {
		t.Errorf("len(Names()) = %d, want 27", len(names))
	}
	for _, n := range names {
		if _, ok := s.Lookup(n); !ok {
			t.Errorf("Lookup(%q) failed", n)
		}
	}
	if v, _ := s.Lookup("max_zoom"); v != "4.0" {
		t.Errorf("Lookup(max_zoom) = %q", v)
	}
	if _, ok := s.Lookup("nope"); ok {
		t.Error("Lookup of unknown name succeeded")
	}
}

func TestKeymap(t *testing.T) {
	km, err := ParseKeymap([]byte("remap:\n  - from: a\n    to: b\n  - from: up\n    to: k\n"))
	if err != nil {
		t.Fatalf("ParseKeymap() failed: %v", err)
	}
	if len(km.Remap) != 2 || km.Remap[1].From != "up" || km.Remap[1].To != "k" {
		t.Errorf("ParseKeymap() = %+v", km)
	}

	if _, err := ParseKeymap([]byte("remap:\n  - from: a\n")); err == nil {
		t.Error("entry without target should fail")
	}

	km, err = LoadKeymap(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil || len(km.Remap) != 0 {
		t.Errorf("LoadKeymap(missing) = %+v, %v", km, err)
	}
}

func TestSettingsYAML(t *testing.T) {
	out, err := yaml.Marshal(Defaults())
	if err != nil {
		t.Fatalf("yaml.Marshal() failed: %v", err)
	}
	var m map[string]string
	if err := yaml.Unmarshal(out, &m); err != nil {
		t.Fatalf("yaml.Unmarshal() failed: %v", err)
	}
	if m["dpad_transparency"] != "75" || m["init_zoom"] != "2.0" {
		t.Errorf("yaml output = %v", m)
	}
}

func TestPersisted(t *testing.T) {
	for _, name := range []string{"dpad_enabled", "filter_mode", "init_zoom"} {
		if !Persisted(name) {
			t.Errorf("Persisted(%q) = false", name)
		}
	}
	for _, name := range []string{"force_portrait", "custom_cell_width", "nope"} {
		if Persisted(name) {
			t.Errorf("Persisted(%q) = true", name)
		}
	}
}
