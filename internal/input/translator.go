package input

import (
	"math"
	"time"

	"github.com/brogue-touch/brogue_touch/internal/config"
	"github.com/brogue-touch/brogue_touch/internal/core"
	"github.com/brogue-touch/brogue_touch/internal/layout"
)

// Phase is the stage of a touch in its lifetime.
type Phase int

const (
	Began Phase = iota
	Moved
	Ended
)

// Touch is one sample of one finger.
type Touch struct {
	ID    int
	X, Y  int
	Phase Phase
	At    time.Time
}

// MouseButton identifies a mouse button.
type MouseButton int

const (
	MouseLeft MouseButton = iota
	MouseRight
)

// pinchThreshold is the relative distance change that makes a two-finger
// gesture a pinch rather than a tap.
const pinchThreshold = 0.1

type finger struct {
	startX, startY int
	x, y           int
	startCellX     int
	startCellY     int
	cellX, cellY   int
	start          time.Time
	sector         layout.Direction // sector it began on, DirNone off the d-pad
	moved          bool
}

type tap struct {
	x, y  int
	at    time.Time
	valid bool
}

// Translator turns raw input samples into core events. It is not safe for
// concurrent use; feed it from the frame loop.
type Translator struct {
	Settings *config.Settings
	Layout   *layout.Layout
	Zoom     *layout.Zoom
	Keymap   *Keymap

	// OnToggleKeyboard is called for a three-finger tap when the on-screen
	// keyboard is shown on demand.
	OnToggleKeyboard func()

	dpadMode bool
	ctrl     bool
	shift    bool

	fingers    map[int]*finger
	primary    int
	maxFingers int
	gestureAt  time.Time
	longFired  bool
	cancelled  bool
	pinchDist  float64
	pinchLevel float64
	pinched    bool
	lastTap    tap

	mouseCellX, mouseCellY int
	mouseSeen              bool

	out []core.Event
}

// NewTranslator returns a translator for the given settings and layout.
func NewTranslator(s *config.Settings, l *layout.Layout, z *layout.Zoom, km *Keymap) *Translator {
	if km == nil {
		km = &Keymap{}
	}
	return &Translator{
		Settings: s,
		Layout:   l,
		Zoom:     z,
		Keymap:   km,
		dpadMode: s.DpadMode,
		fingers:  make(map[int]*finger),
	}
}

// Reset drops fingers in flight and rereads the d-pad mode from Settings.
// Call it after the settings or layout change.
func (t *Translator) Reset() {
	t.dpadMode = t.Settings.DpadMode
	clear(t.fingers)
	t.maxFingers = 0
	t.longFired = false
	t.cancelled = false
	t.pinched = false
	t.lastTap = tap{}
	t.mouseSeen = false
}

// DpadMode reports whether the d-pad sends movement keys (true) or
// selection keys (false).
func (t *Translator) DpadMode() bool {
	return t.dpadMode
}

// SetModifiers records the hardware Control and Shift key state.
func (t *Translator) SetModifiers(ctrl, shift bool) {
	t.ctrl, t.shift = ctrl, shift
}

// ModifierHeld reports whether a modifier key is down.
func (t *Translator) ModifierHeld(mod core.Modifier) bool {
	switch mod {
	case core.ModControl:
		return t.ctrl
	case core.ModShift:
		return t.shift
	}
	return false
}

// Events returns the events produced since the last call.
func (t *Translator) Events() []core.Event {
	out := t.out
	t.out = nil
	return out
}

func (t *Translator) emit(typ core.EventType, p1, p2 int) {
	t.out = append(t.out, core.Event{Type: typ, Param1: p1, Param2: p2, Control: t.ctrl, Shift: t.shift})
}

func (t *Translator) click(x, y int) {
	t.emit(core.MouseDown, x, y)
	t.emit(core.MouseUp, x, y)
}

func (t *Translator) rightClick(x, y int) {
	t.emit(core.RightMouseDown, x, y)
	t.emit(core.RightMouseUp, x, y)
}

func (t *Translator) cellAt(px, py int) (int, int) {
	view := t.Layout.Grid
	if t.Zoom != nil {
		view = t.Zoom.Viewport(t.Layout)
	}
	return t.Layout.CellAt(px, py, view)
}

func (t *Translator) longPress() time.Duration {
	return time.Duration(t.Settings.LongPressInterval) * time.Millisecond
}

// Key delivers a keystroke after remapping.
func (t *Translator) Key(code int) {
	t.emit(core.Keystroke, t.Keymap.Apply(code), 0)
}

// MouseMove reports the cursor position; entering a new cell emits
// MouseEnteredCell.
func (t *Translator) MouseMove(px, py int) {
	x, y := t.cellAt(px, py)
	if t.mouseSeen && x == t.mouseCellX && y == t.mouseCellY {
		return
	}
	t.mouseSeen = true
	t.mouseCellX, t.mouseCellY = x, y
	t.emit(core.MouseEnteredCell, x, y)
}

// MouseButton reports a press or release of a mouse button.
func (t *Translator) MouseButton(b MouseButton, down bool, px, py int) {
	x, y := t.cellAt(px, py)
	switch {
	case b == MouseLeft && down:
		t.emit(core.MouseDown, x, y)
	case b == MouseLeft:
		t.emit(core.MouseUp, x, y)
	case down:
		t.emit(core.RightMouseDown, x, y)
	default:
		t.emit(core.RightMouseUp, x, y)
	}
}

// Touch feeds one finger sample.
func (t *Translator) Touch(s Touch) {
	switch s.Phase {
	case Began:
		t.began(s)
	case Moved:
		t.moved(s)
	case Ended:
		t.ended(s)
	}
}

// Tick lets time-based gestures fire; call it once per frame.
func (t *Translator) Tick(now time.Time) {
	if t.maxFingers != 1 || t.longFired || t.cancelled {
		return
	}
	f, ok := t.fingers[t.primary]
	if !ok || f.moved {
		return
	}
	if now.Sub(f.start) < t.longPress() {
		return
	}
	t.longFired = true

	switch {
	case f.sector == layout.DirCentre:
		if t.Settings.AllowDpadModeChange {
			t.dpadMode = !t.dpadMode
			t.Settings.DpadMode = t.dpadMode
		}
	case f.sector != layout.DirNone:
		if t.dpadMode {
			if code, ok := moveKeys[f.sector]; ok {
				t.Key(code - 'a' + 'A')
			}
		}
	default:
		t.rightClick(f.cellX, f.cellY)
	}
}

func (t *Translator) began(s Touch) {
	x, y := t.cellAt(s.X, s.Y)
	f := &finger{
		startX: s.X, startY: s.Y, x: s.X, y: s.Y,
		startCellX: x, startCellY: y, cellX: x, cellY: y,
		start:  s.At,
		sector: layout.DpadSector(t.Layout.Dpad, s.X, s.Y),
	}
	t.fingers[s.ID] = f
	n := len(t.fingers)
	if n > t.maxFingers {
		t.maxFingers = n
	}

	switch n {
	case 1:
		t.primary = s.ID
		t.gestureAt = s.At
		t.longFired, t.cancelled, t.pinched = false, false, false
		if f.sector == layout.DirNone {
			t.emit(core.MouseEnteredCell, x, y)
		}
	case 2:
		t.cancelled = true
		t.pinchDist = t.fingerDistance()
		if t.Zoom != nil {
			t.pinchLevel = t.Zoom.Level
		}
	default:
		t.cancelled = true
	}
}

func (t *Translator) moved(s Touch) {
	f, ok := t.fingers[s.ID]
	if !ok {
		return
	}
	f.x, f.y = s.X, s.Y

	if t.maxFingers == 2 && len(t.fingers) == 2 {
		t.pinch()
		return
	}
	if t.maxFingers != 1 {
		return
	}

	x, y := t.cellAt(s.X, s.Y)
	if absInt(x-f.startCellX) > 1 || absInt(y-f.startCellY) > 1 {
		f.moved = true
	}
	if f.sector != layout.DirNone {
		return
	}
	if x != f.cellX || y != f.cellY {
		f.cellX, f.cellY = x, y
		t.emit(core.MouseEnteredCell, x, y)
	}
}

func (t *Translator) pinch() {
	if t.Zoom == nil || t.pinchDist == 0 {
		return
	}
	ratio := t.fingerDistance() / t.pinchDist
	if math.Abs(ratio-1) < pinchThreshold {
		return
	}
	t.pinched = true
	t.Zoom.Enabled = true
	t.Zoom.SetLevel(t.pinchLevel * ratio)
}

func (t *Translator) ended(s Touch) {
	f, ok := t.fingers[s.ID]
	if !ok {
		return
	}
	f.x, f.y = s.X, s.Y
	delete(t.fingers, s.ID)

	if t.maxFingers == 1 {
		t.release(f, s)
		t.maxFingers = 0
		return
	}
	if len(t.fingers) > 0 {
		return
	}
	quick := s.At.Sub(t.gestureAt) < t.longPress()
	if !t.pinched && quick {
		switch t.maxFingers {
		case 2:
			if t.Zoom != nil {
				t.Zoom.Toggle()
			}
		case 3:
			if t.Settings.KeyboardVisibility == config.KeyboardOnDemand && t.OnToggleKeyboard != nil {
				t.OnToggleKeyboard()
			}
		}
	}
	t.maxFingers = 0
	t.lastTap = tap{}
}

func (t *Translator) release(f *finger, s Touch) {
	if t.longFired || t.cancelled {
		return
	}
	if f.sector != layout.DirNone {
		if dir := layout.DpadSector(t.Layout.Dpad, s.X, s.Y); dir != layout.DirNone {
			t.dpadKey(dir)
		}
		return
	}

	x, y := t.cellAt(s.X, s.Y)
	if t.Settings.DoubleTapLock && t.Layout.Grid.Contains(s.X, s.Y) {
		interval := time.Duration(t.Settings.DoubleTapInterval) * time.Millisecond
		last := t.lastTap
		if last.valid && last.x == x && last.y == y && s.At.Sub(last.at) <= interval {
			t.lastTap = tap{}
			t.click(x, y)
			return
		}
		t.lastTap = tap{x: x, y: y, at: s.At, valid: true}
		return
	}
	t.lastTap = tap{}
	t.click(x, y)
}

var moveKeys = map[layout.Direction]int{
	layout.DirUp:        core.KeyUp,
	layout.DirDown:      core.KeyDown,
	layout.DirLeft:      core.KeyLeft,
	layout.DirRight:     core.KeyRight,
	layout.DirUpLeft:    core.KeyUpLeft,
	layout.DirUpRight:   core.KeyUpRight,
	layout.DirDownLeft:  core.KeyDownLeft,
	layout.DirDownRight: core.KeyDownRight,
	layout.DirCentre:    core.KeyRest,
}

var selectKeys = map[layout.Direction]int{
	layout.DirUp:     core.KeyUpArrow,
	layout.DirDown:   core.KeyDownArrow,
	layout.DirLeft:   core.KeyLeftArrow,
	layout.DirRight:  core.KeyRightArrow,
	layout.DirCentre: core.KeyReturn,
}

// DpadKey returns the key a d-pad sector sends in the given mode.
func DpadKey(dir layout.Direction, movement bool) (int, bool) {
	keys := selectKeys
	if movement {
		keys = moveKeys
	}
	code, ok := keys[dir]
	return code, ok
}

func (t *Translator) dpadKey(dir layout.Direction) {
	if code, ok := DpadKey(dir, t.dpadMode); ok {
		t.Key(code)
	}
}

func (t *Translator) fingerDistance() float64 {
	var pts [][2]int
	for _, f := range t.fingers {
		pts = append(pts, [2]int{f.x, f.y})
		if len(pts) == 2 {
			break
		}
	}
	if len(pts) < 2 {
		return 0
	}
	return math.Hypot(float64(pts[0][0]-pts[1][0]), float64(pts[0][1]-pts[1][1]))
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
