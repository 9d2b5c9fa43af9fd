package layout

// Direction is a d-pad sector.
type Direction int

const (
	DirNone Direction = iota
	DirUp
	DirDown
	DirLeft
	DirRight
	DirUpLeft
	DirUpRight
	DirDownLeft
	DirDownRight
	DirCentre
)

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	case DirUpLeft:
		return "up-left"
	case DirUpRight:
		return "up-right"
	case DirDownLeft:
		return "down-left"
	case DirDownRight:
		return "down-right"
	case DirCentre:
		return "centre"
	default:
		return "none"
	}
}

// Diagonal reports whether d is one of the four corner sectors.
func (d Direction) Diagonal() bool {
	switch d {
	case DirUpLeft, DirUpRight, DirDownLeft, DirDownRight:
		return true
	}
	return false
}

// Band boundaries of the d-pad image, out of its 128 pixel side.
const (
	DpadImageSize = 128
	DpadBandLow   = 42
	DpadBandHigh  = 86
)

// DpadSector returns which sector of the d-pad area the pixel falls in.
func DpadSector(area Rect, px, py int) Direction {
	if area.Empty() || !area.Contains(px, py) {
		return DirNone
	}
	col := band((px-area.X)*DpadImageSize, area.W)
	row := band((py-area.Y)*DpadImageSize, area.H)
	return sectors[row][col]
}

// Grey levels of the d-pad image.
const (
	DpadShadeBase   = 128
	DpadShadeArm    = 180
	DpadShadeCentre = 200
)

// DpadShade returns the grey level of pixel (x, y) in the d-pad image.
func DpadShade(x, y int) uint8 {
	col := band(x, 1)
	row := band(y, 1)
	switch {
	case col == 1 && row == 1:
		return DpadShadeCentre
	case col == 1 || row == 1:
		return DpadShadeArm
	}
	return DpadShadeBase
}

var sectors = [3][3]Direction{
	{DirUpLeft, DirUp, DirUpRight},
	{DirLeft, DirCentre, DirRight},
	{DirDownLeft, DirDown, DirDownRight},
}

// band expects scaled = offset*DpadImageSize and size the area side.
func band(scaled, size int) int {
	switch {
	case scaled < DpadBandLow*size:
		return 0
	case scaled < DpadBandHigh*size:
		return 1
	default:
		return 2
	}
}
