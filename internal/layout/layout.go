// Package layout computes where the text grid, its panels and the on-screen
// d-pad sit on a display of a given pixel size.
package layout

import (
	"errors"
	"math"

	"github.com/brogue-touch/brogue_touch/internal/config"
	"github.com/brogue-touch/brogue_touch/internal/core"
)

// Smallest cell, in pixels, the glyph atlas can still render legibly.
const (
	MinCellW = 4
	MinCellH = 6
)

// ErrCellTooSmall is returned by CheckFont when cells are below the minimum.
var ErrCellTooSmall = errors.New("resolution/cell size is too small for minimum allowed font size")

// Rect is an axis-aligned pixel rectangle.
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether the pixel (x, y) is inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Empty reports whether r has no area.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Orient swaps w and h so the display matches the requested orientation.
func Orient(w, h int, forcePortrait bool) (int, int) {
	if forcePortrait {
		if w > h {
			return h, w
		}
		return w, h
	}
	if w < h {
		return h, w
	}
	return w, h
}

// Layout holds the display size, cell size and panel rectangles.
type Layout struct {
	DisplayW, DisplayH int
	Scale              float64 // render pixels per display unit
	CellW, CellH       float64

	LeftPanel Rect
	LogPanel  Rect
	Buttons   Rect
	Grid      Rect
	Dpad      Rect // empty when the d-pad is disabled
}

// Compute lays out a display of w x h using the cell overrides and d-pad
// placement from s.
func Compute(w, h int, s *config.Settings) *Layout {
	l := &Layout{DisplayW: w, DisplayH: h, Scale: 1}
	l.CellW = float64(w) / core.Cols
	if s.CustomCellWidth != 0 {
		l.CellW = s.CustomCellWidth
	}
	l.CellH = float64(h) / core.Rows
	if s.CustomCellHeight != 0 {
		l.CellH = s.CustomCellHeight
	}
	l.panels()
	l.placeDpad(s)
	return l
}

// Rescale switches the layout to the renderer's pixel size on high-DPI
// displays. Derived cell sizes are recomputed from the pixel size; custom
// cell sizes are multiplied by the scale.
func (l *Layout) Rescale(renderW, renderH int, s *config.Settings) {
	if l.DisplayW > 0 {
		l.Scale = float64(renderW) / float64(l.DisplayW)
	}
	l.DisplayW, l.DisplayH = renderW, renderH
	l.CellW = float64(renderW) / core.Cols
	if s.CustomCellWidth != 0 {
		l.CellW = s.CustomCellWidth * l.Scale
	}
	l.CellH = float64(renderH) / core.Rows
	if s.CustomCellHeight != 0 {
		l.CellH = s.CustomCellHeight * l.Scale
	}
	l.panels()
	l.placeDpad(s)
}

func (l *Layout) panels() {
	cw, ch := l.CellW, l.CellH
	const lp, tlh, bbh = core.LeftPanelWidth, core.TopLogHeight, core.BottomButtonsHeight

	l.LeftPanel = Rect{X: 0, Y: 0, W: int(lp * cw), H: int(core.Rows * ch)}
	l.LogPanel = Rect{X: int(lp * cw), Y: 0, W: int((core.Cols - lp) * cw), H: int(tlh * ch)}
	l.Buttons = Rect{
		X: int(lp * cw),
		Y: int((core.Rows - bbh) * ch),
		W: int((core.Cols - lp) * cw),
		H: int(bbh * ch),
	}
	l.Grid = Rect{
		X: int(lp * cw),
		Y: int(tlh * ch),
		W: int((core.Cols - lp) * cw),
		H: int((core.Rows - tlh - bbh) * ch),
	}
}

func (l *Layout) placeDpad(s *config.Settings) {
	if !s.DpadEnabled {
		l.Dpad = Rect{}
		return
	}
	auto := math.Min(l.CellW*(core.LeftPanelWidth-4), l.CellH*20)
	size := int(auto)
	if s.DpadWidth != 0 {
		size = s.DpadWidth
	}
	x := int(3 * l.CellW)
	if s.DpadXPos != 0 {
		x = s.DpadXPos
	}
	// The default y always leaves room for the auto size, even with a
	// custom width.
	y := int(float64(l.DisplayH) - (auto + 2*l.CellH))
	if s.DpadYPos != 0 {
		y = s.DpadYPos
	}
	l.Dpad = Rect{X: x, Y: y, W: size, H: size}
}

// CheckFont reports ErrCellTooSmall when a glyph cannot fit a cell.
func (l *Layout) CheckFont() error {
	if l.CellW < MinCellW || l.CellH < MinCellH {
		return ErrCellTooSmall
	}
	return nil
}

// CellRect returns the pixel rectangle of cell (x, y), unzoomed.
func (l *Layout) CellRect(x, y int) (px, py, w, h float64) {
	return float64(x) * l.CellW, float64(y) * l.CellH, l.CellW, l.CellH
}

// CellAt maps a screen pixel to a grid cell. Pixels inside the grid rect
// are mapped through the zoom viewport view.
func (l *Layout) CellAt(px, py int, view Rect) (int, int) {
	fx, fy := float64(px), float64(py)
	if l.Grid.Contains(px, py) && view != l.Grid && !view.Empty() {
		fx = float64(view.X) + (fx-float64(l.Grid.X))*float64(view.W)/float64(l.Grid.W)
		fy = float64(view.Y) + (fy-float64(l.Grid.Y))*float64(view.H)/float64(l.Grid.H)
	}
	cx := int(math.Floor(fx / l.CellW))
	cy := int(math.Floor(fy / l.CellH))
	return clamp(cx, 0, core.Cols-1), clamp(cy, 0, core.Rows-1)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
