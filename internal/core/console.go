package core

import (
	"context"
	"strconv"
)

// GraphicsMode selects how the core draws the dungeon.
type GraphicsMode int

const (
	TextGraphics GraphicsMode = iota
	TilesGraphics
	HybridGraphics
)

func (m GraphicsMode) String() string {
	switch m {
	case TilesGraphics:
		return "tiles"
	case HybridGraphics:
		return "hybrid"
	default:
		return "text"
	}
}

// Next cycles text -> tiles -> hybrid -> text.
func (m GraphicsMode) Next() GraphicsMode {
	return (m + 1) % 3
}

// PauseBehavior tells the console how a pause may be interrupted.
type PauseBehavior int

const (
	PauseDefault PauseBehavior = iota
	PauseBlocking
)

// Color is a core colour with components on a 0-100 scale.
type Color struct {
	R, G, B int
}

// Console is what the core draws to and reads input from.
type Console interface {
	// PauseForMilliseconds sleeps up to ms and reports whether an input
	// event became available in the meantime.
	PauseForMilliseconds(ms int, behavior PauseBehavior) bool
	// NextKeyOrMouseEvent blocks until an input event is available.
	NextKeyOrMouseEvent(textInput, colorsDance bool) Event
	PlotChar(glyph rune, x, y int, fore, back Color)
	Remap(input, output string)
	ModifierHeld(mod Modifier) bool
	SetGraphicsMode(mode GraphicsMode) GraphicsMode
	TextInputStart()
	TextInputStop()
}

// Core is a game that runs on a Console until it wants to exit or restart.
type Core interface {
	Run(ctx context.Context, c Console) error
}

// Refresher is implemented by cores that can redraw the whole screen on demand.
type Refresher interface {
	RefreshScreen()
}

// Animator is implemented by cores that animate while waiting for input.
type Animator interface {
	RefreshAnimations(colorsDance bool)
}

// Focuser is implemented by consoles that track a focus cell for zooming.
type Focuser interface {
	Focus(x, y int)
}

// ParseSeed parses a decimal game seed. Any trailing garbage rejects it.
func ParseSeed(s string) (uint64, bool) {
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}
