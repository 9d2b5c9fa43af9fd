// Package app assembles settings, console, core and shell into a runnable
// ebiten game. Desktop and iOS entry points share it.
package app

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/brogue-touch/brogue_touch/internal/config"
	"github.com/brogue-touch/brogue_touch/internal/demo"
	"github.com/brogue-touch/brogue_touch/internal/platform"
	"github.com/brogue-touch/brogue_touch/internal/shell"
)

// Options configure New. Empty paths fall back to the preferences directory.
type Options struct {
	PrefDir      string
	SettingsPath string
	KeymapPath   string
	Seed         uint64
	// Chdir makes the save folder the working directory.
	Chdir  bool
	Logger *log.Logger
}

// App is an assembled game.
type App struct {
	Settings *config.Settings
	Console  *platform.Console
	Game     *demo.Game
	Shell    *shell.Shell
	SaveDir  string
}

// NewLogger returns the logger used across the app.
func NewLogger(prefix string) *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
}

// New loads settings and the keymap and builds the game. A settings file
// that cannot be read is logged and defaults are used.
func New(opts Options) (*App, error) {
	logger := opts.Logger
	if logger == nil {
		logger = NewLogger("brogue")
	}
	pref := opts.PrefDir
	if pref == "" {
		pref = config.PrefDir(config.PrefOrg, config.PrefApp)
	}

	saveDir, err := config.SaveFolder(pref, config.VersionMajor, config.VersionMinor)
	if err != nil {
		return nil, err
	}
	if opts.Chdir {
		if err := os.Chdir(saveDir); err != nil {
			return nil, fmt.Errorf("enter save folder: %w", err)
		}
	}

	path := opts.SettingsPath
	if path == "" {
		path = filepath.Join(saveDir, config.SettingsFile)
	}
	s := config.Defaults()
	if err := s.LoadFile(path); err != nil {
		logger.Warn("using default settings", "err", err)
	}

	km, err := config.LoadKeymap(opts.KeymapPath)
	if err != nil {
		return nil, err
	}

	console := platform.New(s, logger)
	for _, r := range km.Remap {
		console.Remap(r.From, r.To)
	}

	level, err := demo.DefaultLevel()
	if err != nil {
		return nil, err
	}
	g := demo.New(level, opts.Seed, logger)
	g.Mode = s.GraphicsMode()
	g.Restart = console.RequestRestart

	logger.Info("starting", "settings", path, "saves", saveDir, "remaps", console.Keymap().Len())
	return &App{
		Settings: s,
		Console:  console,
		Game:     g,
		Shell:    shell.New(console, g, logger),
		SaveDir:  saveDir,
	}, nil
}
