// Package core defines the contract between the touchscreen platform layer and
// a text-grid roguelike core. It has no platform dependencies so cores can be
// tested without a window.
package core

// Grid dimensions of the text display the core renders into.
const (
	Cols = 100
	Rows = 34

	LeftPanelWidth      = 21 // sidebar, including its one-column gutter
	TopLogHeight        = 3  // message lines above the map
	BottomButtonsHeight = 2  // button row below the map
)

// EventType classifies an Event.
type EventType int

const (
	EventError EventType = iota
	Keystroke
	MouseUp
	MouseDown
	RightMouseDown
	RightMouseUp
	MouseEnteredCell
)

// String returns a human-readable name for the event type.
func (t EventType) String() string {
	switch t {
	case Keystroke:
		return "Keystroke"
	case MouseUp:
		return "MouseUp"
	case MouseDown:
		return "MouseDown"
	case RightMouseDown:
		return "RightMouseDown"
	case RightMouseUp:
		return "RightMouseUp"
	case MouseEnteredCell:
		return "MouseEnteredCell"
	default:
		return "EventError"
	}
}

// Event is a single key or mouse event delivered to the core.
// For mouse events Param1 and Param2 are the cell column and row.
// For keystrokes Param1 is the key code.
type Event struct {
	Type    EventType
	Param1  int
	Param2  int
	Control bool
	Shift   bool
}

// IsMouse reports whether the event refers to a grid cell.
func (e Event) IsMouse() bool {
	switch e.Type {
	case MouseUp, MouseDown, RightMouseDown, RightMouseUp, MouseEnteredCell:
		return true
	}
	return false
}

// Key codes understood by the core.
const (
	KeyUp        = 'k'
	KeyDown      = 'j'
	KeyLeft      = 'h'
	KeyRight     = 'l'
	KeyUpLeft    = 'y'
	KeyUpRight   = 'u'
	KeyDownLeft  = 'b'
	KeyDownRight = 'n'

	KeyUpArrow    = 63232
	KeyDownArrow  = 63233
	KeyLeftArrow  = 63234
	KeyRightArrow = 63235

	KeyEscape = 27
	KeyReturn = '\n'
	KeyDelete = 127
	KeyTab    = '\t'
	KeyRest   = 'z'
	KeySearch = 's'
)

// Modifier identifies a modifier key for Console.ModifierHeld.
type Modifier int

const (
	ModShift   Modifier = 0
	ModControl Modifier = 1
)
