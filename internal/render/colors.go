package render

import (
	"image/color"

	"github.com/brogue-touch/brogue_touch/internal/screen"
)

// movementBlue scales the blue channel of the d-pad in movement mode.
const movementBlue = 155.0 / 255.0

func rgba(c screen.RGB) color.RGBA {
	return color.RGBA{c.R, c.G, c.B, 255}
}

func isBlack(c screen.RGB) bool {
	return c == screen.RGB{}
}
