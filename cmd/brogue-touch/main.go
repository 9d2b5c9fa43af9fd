// brogue-touch runs the touchscreen console with the demo dungeon.
//
// Usage:
//
//	brogue-touch                     - Play
//	brogue-touch settings show       - Print the settings in effect
//	brogue-touch settings set k v    - Change a saved setting
//	brogue-touch settings reset      - Write the default settings
//	brogue-touch settings path       - Print the settings file path
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"

	"github.com/brogue-touch/brogue_touch/internal/app"
	"github.com/brogue-touch/brogue_touch/internal/config"
	"github.com/brogue-touch/brogue_touch/internal/core"
)

const title = "Brogue"

var (
	flagSettings string
	flagKeymap   string
	flagSeed     string
	flagLogLevel string
	flagWidth    int
	flagHeight   int
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "brogue-touch",
	Short: "Brogue with touchscreen controls",
	Long: `brogue-touch opens a window running the touchscreen console.
The mouse sends plain clicks to the cell under the pointer. The d-pad,
long-press, double-tap lock and pinch zoom respond to touches only.

Examples:
  brogue-touch
  brogue-touch --seed 1234 --log-level debug
  brogue-touch settings set dpad_enabled 0`,
	SilenceUsage: true,
	RunE:         runGame,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagSettings, "settings", "", "Settings file (default: preferences directory)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.Flags().StringVar(&flagKeymap, "keymap", "", "YAML key remapping file")
	rootCmd.Flags().StringVar(&flagSeed, "seed", "", "Dungeon seed (default: random)")
	rootCmd.Flags().IntVar(&flagWidth, "width", 1000, "Window width")
	rootCmd.Flags().IntVar(&flagHeight, "height", 340, "Window height")

	rootCmd.AddCommand(settingsCmd)
}

func newLogger() (*log.Logger, error) {
	logger := app.NewLogger("brogue")
	lvl, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("--log-level: %w", err)
	}
	logger.SetLevel(lvl)
	return logger, nil
}

func settingsPath() string {
	if flagSettings != "" {
		return flagSettings
	}
	return config.SettingsPath(config.PrefDir(config.PrefOrg, config.PrefApp))
}

func runGame(cmd *cobra.Command, args []string) error {
	logger, err := newLogger()
	if err != nil {
		return err
	}
	var seed uint64
	if flagSeed != "" {
		s, ok := core.ParseSeed(flagSeed)
		if !ok {
			return fmt.Errorf("--seed: %q is not a seed", flagSeed)
		}
		seed = s
	}

	a, err := app.New(app.Options{
		SettingsPath: settingsPath(),
		KeymapPath:   flagKeymap,
		Seed:         seed,
		Logger:       logger,
	})
	if err != nil {
		return err
	}
	defer a.Shell.Close()

	ebiten.SetWindowSize(flagWidth, flagHeight)
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if err := ebiten.RunGame(a.Shell); err != nil {
		return err
	}
	return nil
}
