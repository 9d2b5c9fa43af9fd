// Package platform implements the touchscreen console: the core.Console the
// game core runs against, and the bridge between the core's blocking
// goroutine and the frame loop that samples input and draws.
package platform

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/brogue-touch/brogue_touch/internal/config"
	"github.com/brogue-touch/brogue_touch/internal/core"
	"github.com/brogue-touch/brogue_touch/internal/input"
	"github.com/brogue-touch/brogue_touch/internal/layout"
	"github.com/brogue-touch/brogue_touch/internal/screen"
)

// FrameInterval is how long NextKeyOrMouseEvent idles between polls.
const FrameInterval = 50 * time.Millisecond

const eventQueueSize = 64

// Console is the touchscreen implementation of core.Console.
//
// Methods of core.Console and GameLoop run on the core goroutine. Post,
// SetScreenSize, SetModifiers, Foreground, Background and the accessors are
// called from the frame loop.
type Console struct {
	settings *config.Settings
	logger   *log.Logger
	buffer   *screen.Buffer
	keymap   *input.Keymap
	events   chan core.Event

	// Core goroutine only.
	ctx               context.Context
	game              core.Core
	pending           core.Event
	hasPending        bool
	requiresTextInput bool

	mu               sync.Mutex
	screenW, screenH int
	screenScale      float64

	layout     atomic.Pointer[layout.Layout]
	generation atomic.Uint64
	configured atomic.Uint64
	live       atomic.Bool
	resumed    atomic.Bool
	keyboard   atomic.Bool
	ctrl       atomic.Bool
	shift      atomic.Bool
	graphics   atomic.Int32
	focus      atomic.Int64 // x<<32 | y, or -1 when unset
	done       chan struct{}

	sleep func(ctx context.Context, d time.Duration)
}

// New returns a console for the given settings.
func New(s *config.Settings, logger *log.Logger) *Console {
	c := &Console{
		settings: s,
		logger:   logger,
		buffer:   screen.NewBuffer(),
		keymap:   &input.Keymap{},
		events:   make(chan core.Event, eventQueueSize),
		pending:  core.Event{Type: core.EventError},
		ctx:      context.Background(),
		done:     make(chan struct{}),
		sleep:    sleepContext,
	}
	c.graphics.Store(int32(s.GraphicsMode()))
	c.focus.Store(-1)
	return c
}

func sleepContext(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
	case <-ctx.Done():
	}
}

// Configured counts layouts and settings changes applied by GameLoop.
// Unlike Generation it does not move on resume.
func (c *Console) Configured() uint64 { return c.configured.Load() }

// Settings returns the settings the console was created with.
func (c *Console) Settings() *config.Settings { return c.settings }

// Buffer returns the text grid the core plots into.
func (c *Console) Buffer() *screen.Buffer { return c.buffer }

// Keymap returns the key remapping table shared with the input translator.
func (c *Console) Keymap() *input.Keymap { return c.keymap }

// Layout returns the current layout, or nil before the first GameLoop pass.
func (c *Console) Layout() *layout.Layout { return c.layout.Load() }

// Generation changes whenever assets are created or destroyed.
func (c *Console) Generation() uint64 { return c.generation.Load() }

// AssetsLive reports whether assets are currently created.
func (c *Console) AssetsLive() bool { return c.live.Load() }

// KeyboardActive reports whether the on-screen keyboard should be shown.
func (c *Console) KeyboardActive() bool { return c.keyboard.Load() }

// GraphicsMode returns the mode last set by the core.
func (c *Console) GraphicsMode() core.GraphicsMode { return core.GraphicsMode(c.graphics.Load()) }

// Done is closed when GameLoop returns.
func (c *Console) Done() <-chan struct{} { return c.done }

// SetScreenSize records the display size in points and the device scale.
func (c *Console) SetScreenSize(w, h int, scale float64) {
	if scale <= 0 {
		scale = 1
	}
	c.mu.Lock()
	c.screenW, c.screenH, c.screenScale = w, h, scale
	c.mu.Unlock()
}

func (c *Console) screenSize() (int, int, float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.screenW, c.screenH, c.screenScale
}

// SetModifiers records the hardware modifier key state.
func (c *Console) SetModifiers(ctrl, shift bool) {
	c.ctrl.Store(ctrl)
	c.shift.Store(shift)
}

// Post queues an input event for the core. It never blocks; when the queue
// is full the event is dropped.
func (c *Console) Post(ev core.Event) {
	select {
	case c.events <- ev:
	default:
		c.logger.Debug("event queue full, dropping event", "type", ev.Type)
	}
}

// Background is called when the app leaves the foreground.
func (c *Console) Background() {}

// Foreground is called when the app returns; assets are rebuilt on the core
// goroutine at its next pause or event wait.
func (c *Console) Foreground() {
	c.resumed.Store(true)
}

// ToggleKeyboard shows or hides the on-screen keyboard.
func (c *Console) ToggleKeyboard() {
	if c.keyboard.Load() {
		c.stopTextInput()
	} else {
		c.startTextInput()
	}
}

// Focus implements core.Focuser.
func (c *Console) Focus(x, y int) {
	c.focus.Store(int64(x)<<32 | int64(uint32(y)))
}

// FocusCell returns the last focus cell reported by the core.
func (c *Console) FocusCell() (x, y int, ok bool) {
	v := c.focus.Load()
	if v < 0 {
		return 0, 0, false
	}
	return int(v >> 32), int(int32(uint32(v))), true
}

// RequestRestart makes GameLoop lay out the display again and rerun the
// core once the current run returns.
func (c *Console) RequestRestart() {
	c.settings.RestartGame = true
}

// ApplySettings makes GameLoop recreate assets and rerun the core once the
// current run returns.
func (c *Console) ApplySettings() {
	c.settings.SettingsChanged = true
}

// GameLoop runs g until it returns without a pending restart or settings
// change, or until ctx is cancelled.
func (c *Console) GameLoop(ctx context.Context, g core.Core) error {
	defer close(c.done)
	c.ctx = ctx
	c.game = g

	s := c.settings
	s.RestartGame = true
	s.SettingsChanged = false
	for {
		if s.RestartGame {
			if err := c.relayout(); err != nil {
				c.logger.Error("font error", "err", err)
				return err
			}
		} else if s.SettingsChanged {
			c.createAssets()
		}
		c.configured.Add(1)
		s.RestartGame, s.SettingsChanged = false, false

		err := g.Run(ctx, c)
		c.destroyAssets()
		if err != nil {
			return fmt.Errorf("core: %w", err)
		}
		if ctx.Err() != nil {
			return nil
		}
		if !s.RestartGame && !s.SettingsChanged {
			return nil
		}
		c.logger.Info("restarting core", "restart", s.RestartGame, "settings_changed", s.SettingsChanged)
	}
}

func (c *Console) relayout() error {
	w, h, scale := c.screenSize()
	s := c.settings
	if s.CustomScreenWidth != 0 {
		w = s.CustomScreenWidth
	}
	if s.CustomScreenHeight != 0 {
		h = s.CustomScreenHeight
	}
	w, h = layout.Orient(w, h, s.ForcePortrait)

	l := layout.Compute(w, h, s)
	l.Rescale(int(float64(w)*scale), int(float64(h)*scale), s)
	if err := l.CheckFont(); err != nil {
		return err
	}
	c.layout.Store(l)
	c.logger.Debug("layout", "display", fmt.Sprintf("%dx%d", l.DisplayW, l.DisplayH),
		"cell", fmt.Sprintf("%.1fx%.1f", l.CellW, l.CellH), "scale", l.Scale)
	c.createAssets()
	return nil
}

func (c *Console) createAssets() {
	c.live.Store(true)
	c.generation.Add(1)
	c.buffer.Touch()
	if c.settings.KeyboardVisibility == config.KeyboardAlways {
		c.startTextInput()
	}
}

func (c *Console) destroyAssets() {
	c.live.Store(false)
	c.generation.Add(1)
}

func (c *Console) resume() bool {
	if !c.resumed.CompareAndSwap(true, false) {
		return false
	}
	c.destroyAssets()
	c.createAssets()
	if r, ok := c.game.(core.Refresher); ok {
		r.RefreshScreen()
	}
	return true
}

// poll moves one queued event into the pending slot.
func (c *Console) poll() bool {
	if c.hasPending {
		return true
	}
	select {
	case ev := <-c.events:
		c.pending = ev
		c.hasPending = true
		return true
	default:
		return false
	}
}

// PauseForMilliseconds implements core.Console.
func (c *Console) PauseForMilliseconds(ms int, behavior core.PauseBehavior) bool {
	start := time.Now()
	d := time.Duration(ms) * time.Millisecond
	if elapsed := time.Since(start); elapsed < d {
		c.sleep(c.ctx, d-elapsed)
	}
	c.resume()
	return c.poll()
}

// NextKeyOrMouseEvent implements core.Console. It returns an EventError
// event once the context is cancelled.
func (c *Console) NextKeyOrMouseEvent(textInput, colorsDance bool) core.Event {
	c.resume()
	anim, _ := c.game.(core.Animator)
	for !c.poll() {
		if c.ctx.Err() != nil {
			return core.Event{Type: core.EventError}
		}
		if anim != nil {
			anim.RefreshAnimations(colorsDance)
		}
		c.PauseForMilliseconds(int(FrameInterval/time.Millisecond), core.PauseDefault)
	}
	ev := c.pending
	c.pending = core.Event{Type: core.EventError}
	c.hasPending = false
	return ev
}

// PlotChar implements core.Console.
func (c *Console) PlotChar(glyph rune, x, y int, fore, back core.Color) {
	c.buffer.Plot(x, y, glyph, screen.Convert(fore), screen.Convert(back))
}

// Remap implements core.Console.
func (c *Console) Remap(in, out string) {
	if err := c.keymap.Remap(in, out); err != nil {
		c.logger.Warn("ignoring key remap", "err", err)
	}
}

// ModifierHeld implements core.Console.
func (c *Console) ModifierHeld(mod core.Modifier) bool {
	switch mod {
	case core.ModControl:
		return c.ctrl.Load()
	case core.ModShift:
		return c.shift.Load()
	}
	return false
}

// SetGraphicsMode implements core.Console.
func (c *Console) SetGraphicsMode(mode core.GraphicsMode) core.GraphicsMode {
	c.graphics.Store(int32(mode))
	if r, ok := c.game.(core.Refresher); ok {
		r.RefreshScreen()
	}
	return mode
}

// TextInputStart implements core.Console.
func (c *Console) TextInputStart() {
	if !c.keyboard.Load() {
		c.requiresTextInput = true
		c.startTextInput()
	}
}

// TextInputStop implements core.Console.
func (c *Console) TextInputStop() {
	if c.requiresTextInput {
		c.requiresTextInput = false
		c.stopTextInput()
	}
}

func (c *Console) startTextInput() {
	if c.keyboard.CompareAndSwap(false, true) {
		c.logger.Debug("keyboard shown")
	}
}

func (c *Console) stopTextInput() {
	if c.keyboard.CompareAndSwap(true, false) {
		c.logger.Debug("keyboard hidden")
	}
}
