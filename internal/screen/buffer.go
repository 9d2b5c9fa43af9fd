// Package screen holds the fixed-size text grid the core plots into.
package screen

import (
	"sync"

	"github.com/brogue-touch/brogue_touch/internal/core"
)

// RGB is an 8-bit-per-channel colour.
type RGB struct {
	R, G, B uint8
}

// Cell is one character cell of the display.
type Cell struct {
	Glyph rune
	Fore  RGB
	Back  RGB
}

// ColorMax is the largest channel value.
const ColorMax = 255

// ConvertColor scales a 0-100 core component to 0-255, clamping the result.
func ConvertColor(c int) uint8 {
	c = c * ColorMax / 100
	if c < 0 {
		return 0
	}
	if c > ColorMax {
		return ColorMax
	}
	return uint8(c)
}

// Convert scales a core colour to RGB.
func Convert(c core.Color) RGB {
	return RGB{R: ConvertColor(c.R), G: ConvertColor(c.G), B: ConvertColor(c.B)}
}

// Buffer is a Cols x Rows grid of cells, safe for one writer and one reader
// on different goroutines.
type Buffer struct {
	mu      sync.Mutex
	cells   []Cell
	changed bool
}

// NewBuffer returns a blank buffer of core.Cols x core.Rows.
func NewBuffer() *Buffer {
	b := &Buffer{cells: make([]Cell, core.Cols*core.Rows)}
	b.Clear()
	return b
}

// Plot sets one cell. Out-of-bounds writes are ignored.
func (b *Buffer) Plot(x, y int, glyph rune, fore, back RGB) {
	if x < 0 || x >= core.Cols || y < 0 || y >= core.Rows {
		return
	}
	b.mu.Lock()
	b.cells[y*core.Cols+x] = Cell{Glyph: glyph, Fore: fore, Back: back}
	b.changed = true
	b.mu.Unlock()
}

// Get reads one cell. Out-of-bounds reads return a zero cell.
func (b *Buffer) Get(x, y int) Cell {
	if x < 0 || x >= core.Cols || y < 0 || y >= core.Rows {
		return Cell{}
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.cells[y*core.Cols+x]
}

// Clear blanks every cell to a space on black.
func (b *Buffer) Clear() {
	b.mu.Lock()
	for i := range b.cells {
		b.cells[i] = Cell{Glyph: ' '}
	}
	b.changed = true
	b.mu.Unlock()
}

// Touch marks the buffer changed so the next Snapshot redraws it.
func (b *Buffer) Touch() {
	b.mu.Lock()
	b.changed = true
	b.mu.Unlock()
}

// Changed reports whether cells were written since the last Snapshot.
func (b *Buffer) Changed() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.changed
}

// Snapshot copies the cells into dst, clears the changed flag and returns
// the copy. dst is reused when it has the right length.
func (b *Buffer) Snapshot(dst []Cell) []Cell {
	if len(dst) != core.Cols*core.Rows {
		dst = make([]Cell, core.Cols*core.Rows)
	}
	b.mu.Lock()
	copy(dst, b.cells)
	b.changed = false
	b.mu.Unlock()
	return dst
}
