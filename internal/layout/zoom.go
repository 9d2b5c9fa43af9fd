package layout

import (
	"math"

	"github.com/brogue-touch/brogue_touch/internal/config"
	"github.com/brogue-touch/brogue_touch/internal/core"
)

// Zoom tracks the magnification of the dungeon grid.
type Zoom struct {
	Level   float64
	Enabled bool
	Max     float64
	Mode    int
	Clamp   bool

	focusX, focusY int
}

// NewZoom returns the zoom state configured by s, focused on the grid centre.
func NewZoom(s *config.Settings) *Zoom {
	z := &Zoom{
		focusX: core.LeftPanelWidth + (core.Cols-core.LeftPanelWidth)/2,
		focusY: core.TopLogHeight + (core.Rows-core.TopLogHeight-core.BottomButtonsHeight)/2,
	}
	z.Reset(s)
	return z
}

// Reset reapplies the zoom settings in s. The focus cell is kept.
func (z *Zoom) Reset(s *config.Settings) {
	z.Enabled = s.InitZoomToggle
	z.Max = math.Max(1, s.MaxZoom)
	z.Mode = s.ZoomMode
	z.Clamp = s.SmartZoom
	z.SetLevel(s.InitZoom)
}

// SetLevel sets the magnification, clamped to [1, Max].
func (z *Zoom) SetLevel(level float64) {
	if math.IsNaN(level) || level < 1 {
		level = 1
	}
	if level > z.Max {
		level = z.Max
	}
	z.Level = level
}

// Toggle switches zooming on or off.
func (z *Zoom) Toggle() {
	z.Enabled = !z.Enabled
}

// Active reports whether the grid is currently magnified.
func (z *Zoom) Active() bool {
	return z.Enabled && z.Level > 1
}

// Focus sets the cell the viewport follows in follow-player mode.
func (z *Zoom) Focus(x, y int) {
	z.focusX, z.focusY = x, y
}

// Viewport returns the part of the grid rect shown, magnified, in place of
// the whole grid rect.
func (z *Zoom) Viewport(l *Layout) Rect {
	grid := l.Grid
	if !z.Active() {
		return grid
	}
	w := int(float64(grid.W) / z.Level)
	h := int(float64(grid.H) / z.Level)

	var cx, cy int
	if z.Mode == config.ZoomFollowPlayer {
		px, py, cw, ch := l.CellRect(z.focusX, z.focusY)
		cx, cy = int(px+cw/2), int(py+ch/2)
	} else {
		cx, cy = grid.X+grid.W/2, grid.Y+grid.H/2
	}

	view := Rect{X: cx - w/2, Y: cy - h/2, W: w, H: h}
	if z.Clamp {
		view.X = clamp(view.X, grid.X, grid.X+grid.W-w)
		view.Y = clamp(view.Y, grid.Y, grid.Y+grid.H-h)
	}
	return view
}
