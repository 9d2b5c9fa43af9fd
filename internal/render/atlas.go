package render

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	GlyphWidth  = 16
	GlyphHeight = 16
)

// Atlas caches one white-on-transparent image per rune. Colour is applied
// at draw time.
type Atlas struct {
	face   font.Face
	glyphs map[rune]*ebiten.Image
}

// NewAtlas renders printable ASCII and the hand-drawn box and block glyphs.
// Other runes are rendered on first use.
func NewAtlas() *Atlas {
	a := &Atlas{face: basicfont.Face7x13, glyphs: make(map[rune]*ebiten.Image)}
	for r := rune(32); r <= 126; r++ {
		a.Glyph(r)
	}
	for r := range boxRunes {
		a.Glyph(r)
	}
	for r := range blockRunes {
		a.Glyph(r)
	}
	return a
}

// Glyph returns the image for r. Runes the font lacks render as '?'.
func (a *Atlas) Glyph(r rune) *ebiten.Image {
	if g, ok := a.glyphs[r]; ok {
		return g
	}
	img := image.NewNRGBA(image.Rect(0, 0, GlyphWidth, GlyphHeight))
	switch {
	case drawHandGlyph(img, r):
	case a.hasGlyph(r):
		drawFontGlyph(img, a.face, r)
	default:
		g := a.Glyph('?')
		a.glyphs[r] = g
		return g
	}
	g := ebiten.NewImageFromImage(img)
	a.glyphs[r] = g
	return g
}

func (a *Atlas) hasGlyph(r rune) bool {
	_, ok := a.face.GlyphAdvance(r)
	return ok
}

// drawFontGlyph centres a 7x13 basicfont glyph in the 16x16 cell.
func drawFontGlyph(img *image.NRGBA, face font.Face, r rune) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.White),
		Face: face,
		Dot:  fixed.P(4, 13),
	}
	d.DrawString(string(r))
}

// boxRunes maps box-drawing runes to their connections: {left, right, top, bottom}.
var boxRunes = map[rune][4]bool{
	'│': {false, false, true, true},
	'┤': {true, false, true, true},
	'┐': {true, false, false, true},
	'└': {false, true, true, false},
	'┴': {true, true, true, false},
	'┬': {true, true, false, true},
	'├': {false, true, true, true},
	'─': {true, true, false, false},
	'┼': {true, true, true, true},
	'┘': {true, false, true, false},
	'┌': {false, true, false, true},
}

// blockRunes decides per pixel whether a block or shade glyph is lit.
var blockRunes = map[rune]func(x, y int) bool{
	'░': func(x, y int) bool { return (x+y)%4 == 0 },
	'▒': func(x, y int) bool { return (x+y)%2 == 0 },
	'▓': func(x, y int) bool { return (x+y)%4 != 0 },
	'█': func(x, y int) bool { return true },
	'▄': func(x, y int) bool { return y >= GlyphHeight/2 },
	'▀': func(x, y int) bool { return y < GlyphHeight/2 },
	'▌': func(x, y int) bool { return x < GlyphWidth/2 },
	'▐': func(x, y int) bool { return x >= GlyphWidth/2 },
	'■': func(x, y int) bool { return x >= 4 && x < 12 && y >= 4 && y < 12 },
	'·': func(x, y int) bool { return x >= 7 && x < 9 && y >= 7 && y < 9 },
	'•': func(x, y int) bool { return x >= 6 && x < 10 && y >= 6 && y < 10 },
}

func drawHandGlyph(img *image.NRGBA, r rune) bool {
	if bc, ok := boxRunes[r]; ok {
		drawBoxGlyph(img, bc[0], bc[1], bc[2], bc[3])
		return true
	}
	if lit, ok := blockRunes[r]; ok {
		w := color.NRGBA{255, 255, 255, 255}
		for y := 0; y < GlyphHeight; y++ {
			for x := 0; x < GlyphWidth; x++ {
				if lit(x, y) {
					img.SetNRGBA(x, y, w)
				}
			}
		}
		return true
	}
	return false
}

// drawBoxGlyph draws 2-pixel lines meeting at the cell centre.
func drawBoxGlyph(img *image.NRGBA, left, right, top, bottom bool) {
	w := color.NRGBA{255, 255, 255, 255}
	const c = 7
	hline := func(x0, x1 int) {
		for x := x0; x < x1; x++ {
			img.SetNRGBA(x, c, w)
			img.SetNRGBA(x, c+1, w)
		}
	}
	vline := func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			img.SetNRGBA(c, y, w)
			img.SetNRGBA(c+1, y, w)
		}
	}
	if left {
		hline(0, c+2)
	}
	if right {
		hline(c, GlyphWidth)
	}
	if top {
		vline(0, c+2)
	}
	if bottom {
		vline(c, GlyphHeight)
	}
}
