//go:build ios

// Package mobile is the gomobile binding for the iOS app. The host app
// forwards soft-keyboard text and polls whether to show the keyboard.
package mobile

import (
	"github.com/hajimehoshi/ebiten/v2/mobile"

	"github.com/brogue-touch/brogue_touch/internal/app"
)

var a *app.App

func init() {
	logger := app.NewLogger("brogue-ios")
	var err error
	a, err = app.New(app.Options{Chdir: true, Logger: logger})
	if err != nil {
		logger.Fatal("startup failed", "err", err)
	}
	mobile.SetGame(a.Shell)
}

// Dummy is an exported name to make ebitenmobile happy. It does nothing.
func Dummy() {
}

// InsertText delivers text typed on the soft keyboard.
func InsertText(text string) {
	a.Shell.InsertText(text)
}

// KeyboardVisible reports whether the soft keyboard should be shown.
func KeyboardVisible() bool {
	return a.Shell.KeyboardVisible()
}
