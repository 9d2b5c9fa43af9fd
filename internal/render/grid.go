// Package render draws the text grid and the on-screen d-pad with ebiten.
package render

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/brogue-touch/brogue_touch/internal/config"
	"github.com/brogue-touch/brogue_touch/internal/core"
	"github.com/brogue-touch/brogue_touch/internal/layout"
	"github.com/brogue-touch/brogue_touch/internal/screen"
)

// Frame is what one Draw call needs to know about the display.
type Frame struct {
	Buffer     *screen.Buffer
	Layout     *layout.Layout
	View       layout.Rect // zoom viewport, equal to Layout.Grid when unzoomed
	Generation uint64      // changes whenever assets are recreated
	FilterMode int

	DpadMovement bool
	DpadAlpha    int
}

// Renderer draws frames. It keeps the grid in an offscreen image and only
// redraws it when the buffer changed or the assets were recreated.
type Renderer struct {
	Atlas *Atlas

	pixel *ebiten.Image
	dpad  *ebiten.Image
	off   *ebiten.Image
	cells []screen.Cell
	gen   uint64
}

// NewRenderer creates a renderer with the given atlas.
func NewRenderer(atlas *Atlas) *Renderer {
	pixel := ebiten.NewImage(1, 1)
	pixel.Fill(color.White)
	return &Renderer{
		Atlas: atlas,
		pixel: pixel,
		dpad:  ebiten.NewImageFromImage(DpadImage()),
	}
}

// Filter maps a filter_mode setting to an ebiten filter. Anisotropic
// filtering is not available and falls back to linear.
func Filter(mode int) ebiten.Filter {
	if mode == config.FilterNearest {
		return ebiten.FilterNearest
	}
	return ebiten.FilterLinear
}

// Draw renders f onto dst.
func (r *Renderer) Draw(dst *ebiten.Image, f Frame) {
	l := f.Layout
	if l == nil || l.DisplayW <= 0 || l.DisplayH <= 0 {
		return
	}
	redraw := r.prepare(l, f.Generation)
	if redraw || f.Buffer.Changed() {
		r.cells = f.Buffer.Snapshot(r.cells)
		r.drawCells(l, f.FilterMode)
	}

	dst.DrawImage(r.off, nil)
	if f.View != l.Grid && !f.View.Empty() {
		r.drawZoomed(dst, l.Grid, f.View, Filter(f.FilterMode))
	}
	if !l.Dpad.Empty() {
		r.drawDpad(dst, l.Dpad, f.DpadMovement, f.DpadAlpha)
	}
}

// prepare recreates the offscreen image after a layout or asset change and
// reports whether the grid must be redrawn.
func (r *Renderer) prepare(l *layout.Layout, gen uint64) bool {
	if r.off != nil {
		b := r.off.Bounds()
		if gen == r.gen && b.Dx() == l.DisplayW && b.Dy() == l.DisplayH {
			return false
		}
		r.off.Deallocate()
	}
	r.off = ebiten.NewImage(l.DisplayW, l.DisplayH)
	r.gen = gen
	return true
}

func (r *Renderer) drawCells(l *layout.Layout, filter int) {
	r.off.Clear()
	var op ebiten.DrawImageOptions
	for y := 0; y < core.Rows; y++ {
		y0, y1 := int(float64(y)*l.CellH), int(float64(y+1)*l.CellH)
		for x := 0; x < core.Cols; x++ {
			x0, x1 := int(float64(x)*l.CellW), int(float64(x+1)*l.CellW)
			cell := r.cells[y*core.Cols+x]
			w, h := float64(x1-x0), float64(y1-y0)

			if !isBlack(cell.Back) {
				op = ebiten.DrawImageOptions{}
				op.GeoM.Scale(w, h)
				op.GeoM.Translate(float64(x0), float64(y0))
				op.ColorScale.ScaleWithColor(rgba(cell.Back))
				r.off.DrawImage(r.pixel, &op)
			}

			if cell.Glyph != ' ' && cell.Glyph != 0 {
				op = ebiten.DrawImageOptions{}
				op.GeoM.Scale(w/GlyphWidth, h/GlyphHeight)
				op.GeoM.Translate(float64(x0), float64(y0))
				op.ColorScale.ScaleWithColor(rgba(cell.Fore))
				op.Filter = Filter(filter)
				r.off.DrawImage(r.Atlas.Glyph(cell.Glyph), &op)
			}
		}
	}
}

// drawZoomed blits the viewport part of the grid, magnified, over the grid
// rect.
func (r *Renderer) drawZoomed(dst *ebiten.Image, grid, view layout.Rect, filter ebiten.Filter) {
	src := r.off.SubImage(image.Rect(view.X, view.Y, view.X+view.W, view.Y+view.H)).(*ebiten.Image)
	b := src.Bounds()
	if b.Empty() {
		return
	}

	// Cover the whole grid rect first; a viewport partly off the grid
	// leaves black margins.
	var op ebiten.DrawImageOptions
	op.GeoM.Scale(float64(grid.W), float64(grid.H))
	op.GeoM.Translate(float64(grid.X), float64(grid.Y))
	op.ColorScale.ScaleWithColor(color.Black)
	dst.DrawImage(r.pixel, &op)

	sx := float64(grid.W) / float64(view.W)
	sy := float64(grid.H) / float64(view.H)
	op = ebiten.DrawImageOptions{}
	op.GeoM.Scale(sx, sy)
	op.GeoM.Translate(float64(grid.X)+float64(b.Min.X-view.X)*sx, float64(grid.Y)+float64(b.Min.Y-view.Y)*sy)
	op.Filter = filter
	dst.DrawImage(src, &op)
}
