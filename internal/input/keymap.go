// Package input translates touchscreen gestures, mouse and keyboard input
// into the key and mouse events the core expects.
package input

import (
	"fmt"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/brogue-touch/brogue_touch/internal/core"
)

var namedKeys = map[string]int{
	"up":     core.KeyUpArrow,
	"down":   core.KeyDownArrow,
	"left":   core.KeyLeftArrow,
	"right":  core.KeyRightArrow,
	"escape": core.KeyEscape,
	"esc":    core.KeyEscape,
	"return": core.KeyReturn,
	"enter":  core.KeyReturn,
	"delete": core.KeyDelete,
	"tab":    core.KeyTab,
	"space":  ' ',
}

// ParseKey resolves a key name: a single character or one of the named keys.
func ParseKey(name string) (int, error) {
	if code, ok := namedKeys[strings.ToLower(name)]; ok {
		return code, nil
	}
	r, size := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError || size != len(name) {
		return 0, fmt.Errorf("unknown key %q", name)
	}
	return int(r), nil
}

// Keymap rewrites key codes before they reach the core. It is safe for
// concurrent use.
type Keymap struct {
	mu sync.RWMutex
	m  map[int]int
}

// Remap makes input produce output from now on.
func (k *Keymap) Remap(input, output string) error {
	in, err := ParseKey(input)
	if err != nil {
		return fmt.Errorf("remap %q: %w", input, err)
	}
	out, err := ParseKey(output)
	if err != nil {
		return fmt.Errorf("remap %q: %w", input, err)
	}
	k.mu.Lock()
	defer k.mu.Unlock()
	if k.m == nil {
		k.m = make(map[int]int)
	}
	k.m[in] = out
	return nil
}

// Apply returns the remapped code, or code itself when it has no mapping.
func (k *Keymap) Apply(code int) int {
	k.mu.RLock()
	defer k.mu.RUnlock()
	if out, ok := k.m[code]; ok {
		return out
	}
	return code
}

// Len returns the number of remapped keys.
func (k *Keymap) Len() int {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return len(k.m)
}
