// Package shell is the ebiten.Game that hosts the touchscreen console: it
// samples input each tick, feeds the translator and draws the grid.
package shell

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/brogue-touch/brogue_touch/internal/core"
	"github.com/brogue-touch/brogue_touch/internal/input"
	"github.com/brogue-touch/brogue_touch/internal/layout"
	"github.com/brogue-touch/brogue_touch/internal/platform"
	"github.com/brogue-touch/brogue_touch/internal/render"
)

// Shell implements ebiten.Game. Console methods that block run on a
// separate goroutine started by the first Update.
type Shell struct {
	console    *platform.Console
	core       core.Core
	logger     *log.Logger
	renderer   *render.Renderer
	translator *input.Translator
	zoom       *layout.Zoom

	ctx    context.Context
	cancel context.CancelFunc
	errc   chan error

	started    bool
	configured uint64
	focused    bool
	mouseX     int
	mouseY     int

	touchIDs []ebiten.TouchID
	keys     []ebiten.Key
	chars    []rune

	mu       sync.Mutex
	inserted []rune
}

// New returns a shell that runs g against console.
func New(console *platform.Console, g core.Core, logger *log.Logger) *Shell {
	s := console.Settings()
	ctx, cancel := context.WithCancel(context.Background())
	zoom := layout.NewZoom(s)
	sh := &Shell{
		console:    console,
		core:       g,
		logger:     logger,
		renderer:   render.NewRenderer(render.NewAtlas()),
		translator: input.NewTranslator(s, nil, zoom, console.Keymap()),
		zoom:       zoom,
		ctx:        ctx,
		cancel:     cancel,
		errc:       make(chan error, 1),
		focused:    true,
		mouseX:     -1,
		mouseY:     -1,
	}
	sh.translator.OnToggleKeyboard = console.ToggleKeyboard
	return sh
}

// Close stops the core goroutine.
func (s *Shell) Close() {
	s.cancel()
}

// KeyboardVisible reports whether the host should show its soft keyboard.
func (s *Shell) KeyboardVisible() bool {
	return s.console.KeyboardActive()
}

// InsertText queues text typed on the host's soft keyboard.
func (s *Shell) InsertText(text string) {
	s.mu.Lock()
	s.inserted = append(s.inserted, []rune(text)...)
	s.mu.Unlock()
}

func (s *Shell) takeInserted() []rune {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.inserted
	s.inserted = nil
	return out
}

func (s *Shell) start() {
	s.started = true
	go func() {
		s.errc <- s.console.GameLoop(s.ctx, s.core)
	}()
}

// Update implements ebiten.Game.
func (s *Shell) Update() error {
	if !s.started {
		s.start()
	}
	select {
	case <-s.console.Done():
		if err := <-s.errc; err != nil {
			return err
		}
		return ebiten.Termination
	default:
	}

	s.checkFocus()

	l := s.console.Layout()
	if l == nil {
		return nil
	}
	s.translator.Layout = l
	if n := s.console.Configured(); n != s.configured {
		s.configured = n
		s.zoom.Reset(s.console.Settings())
		s.translator.Reset()
	}
	if x, y, ok := s.console.FocusCell(); ok {
		s.zoom.Focus(x, y)
	}

	s.readModifiers()
	s.readKeys()
	s.readMouse()
	s.readTouches()
	s.translator.Tick(time.Now())

	for _, ev := range s.translator.Events() {
		s.console.Post(ev)
	}
	return nil
}

func (s *Shell) checkFocus() {
	f := ebiten.IsFocused()
	if f == s.focused {
		return
	}
	s.focused = f
	if f {
		s.logger.Debug("foreground")
		s.console.Foreground()
	} else {
		s.logger.Debug("background")
		s.console.Background()
	}
}

func (s *Shell) readModifiers() {
	ctrl := ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyMeta)
	shift := ebiten.IsKeyPressed(ebiten.KeyShift)
	s.translator.SetModifiers(ctrl, shift)
	s.console.SetModifiers(ctrl, shift)
}

func (s *Shell) readKeys() {
	s.keys = inpututil.AppendJustPressedKeys(s.keys[:0])
	for _, k := range s.keys {
		if code, ok := keyCode(k); ok {
			s.translator.Key(code)
		}
	}
	s.chars = ebiten.AppendInputChars(s.chars[:0])
	for _, r := range s.chars {
		s.translator.Key(int(r))
	}
	for _, r := range s.takeInserted() {
		switch r {
		case '\b':
			s.translator.Key(core.KeyDelete)
		default:
			s.translator.Key(int(r))
		}
	}
}

// keyCode maps the non-printing keys; printable keys arrive as input chars.
func keyCode(k ebiten.Key) (int, bool) {
	switch k {
	case ebiten.KeyArrowUp:
		return core.KeyUpArrow, true
	case ebiten.KeyArrowDown:
		return core.KeyDownArrow, true
	case ebiten.KeyArrowLeft:
		return core.KeyLeftArrow, true
	case ebiten.KeyArrowRight:
		return core.KeyRightArrow, true
	case ebiten.KeyEscape:
		return core.KeyEscape, true
	case ebiten.KeyEnter, ebiten.KeyNumpadEnter:
		return core.KeyReturn, true
	case ebiten.KeyBackspace, ebiten.KeyDelete:
		return core.KeyDelete, true
	case ebiten.KeyTab:
		return core.KeyTab, true
	}
	return 0, false
}

func (s *Shell) readMouse() {
	x, y := ebiten.CursorPosition()
	if x != s.mouseX || y != s.mouseY {
		s.mouseX, s.mouseY = x, y
		s.translator.MouseMove(x, y)
	}
	buttons := []struct {
		eb ebiten.MouseButton
		in input.MouseButton
	}{
		{ebiten.MouseButtonLeft, input.MouseLeft},
		{ebiten.MouseButtonRight, input.MouseRight},
	}
	for _, b := range buttons {
		if inpututil.IsMouseButtonJustPressed(b.eb) {
			s.translator.MouseButton(b.in, true, x, y)
		}
		if inpututil.IsMouseButtonJustReleased(b.eb) {
			s.translator.MouseButton(b.in, false, x, y)
		}
	}
}

func (s *Shell) readTouches() {
	now := time.Now()
	s.touchIDs = inpututil.AppendJustReleasedTouchIDs(s.touchIDs[:0])
	for _, id := range s.touchIDs {
		x, y := inpututil.TouchPositionInPreviousTick(id)
		s.translator.Touch(input.Touch{ID: int(id), X: x, Y: y, Phase: input.Ended, At: now})
	}

	s.touchIDs = inpututil.AppendJustPressedTouchIDs(s.touchIDs[:0])
	for _, id := range s.touchIDs {
		x, y := ebiten.TouchPosition(id)
		s.translator.Touch(input.Touch{ID: int(id), X: x, Y: y, Phase: input.Began, At: now})
	}

	s.touchIDs = ebiten.AppendTouchIDs(s.touchIDs[:0])
	for _, id := range s.touchIDs {
		if inpututil.TouchPressDuration(id) <= 1 {
			continue
		}
		x, y := ebiten.TouchPosition(id)
		px, py := inpututil.TouchPositionInPreviousTick(id)
		if x != px || y != py {
			s.translator.Touch(input.Touch{ID: int(id), X: x, Y: y, Phase: input.Moved, At: now})
		}
	}
}

// Draw implements ebiten.Game.
func (s *Shell) Draw(screen *ebiten.Image) {
	l := s.console.Layout()
	if l == nil || !s.console.AssetsLive() {
		return
	}
	st := s.console.Settings()
	s.renderer.Draw(screen, render.Frame{
		Buffer:       s.console.Buffer(),
		Layout:       l,
		View:         s.zoom.Viewport(l),
		Generation:   s.console.Generation(),
		FilterMode:   st.FilterMode,
		DpadMovement: s.translator.DpadMode(),
		DpadAlpha:    st.DpadTransparency,
	})
}

// Layout implements ebiten.Game. It reports the outside size to the
// console and renders at device pixels.
func (s *Shell) Layout(outsideWidth, outsideHeight int) (int, int) {
	scale := 1.0
	if m := ebiten.Monitor(); m != nil {
		scale = m.DeviceScaleFactor()
	}
	s.console.SetScreenSize(outsideWidth, outsideHeight, scale)
	if l := s.console.Layout(); l != nil {
		return l.DisplayW, l.DisplayH
	}
	return int(float64(outsideWidth) * scale), int(float64(outsideHeight) * scale)
}
