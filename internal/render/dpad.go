package render

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/brogue-touch/brogue_touch/internal/layout"
)

// DpadImage returns the 128x128 d-pad pattern.
func DpadImage() *image.NRGBA {
	const n = layout.DpadImageSize
	img := image.NewNRGBA(image.Rect(0, 0, n, n))
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			v := layout.DpadShade(x, y)
			img.SetNRGBA(x, y, color.NRGBA{v, v, v, 255})
		}
	}
	return img
}

func (r *Renderer) drawDpad(dst *ebiten.Image, area layout.Rect, movement bool, alpha int) {
	var op ebiten.DrawImageOptions
	op.GeoM.Scale(float64(area.W)/layout.DpadImageSize, float64(area.H)/layout.DpadImageSize)
	op.GeoM.Translate(float64(area.X), float64(area.Y))
	if movement {
		op.ColorScale.Scale(1, 1, movementBlue, 1)
	}
	op.ColorScale.ScaleAlpha(float32(alpha) / 255)
	op.Filter = ebiten.FilterLinear
	dst.DrawImage(r.dpad, &op)
}
