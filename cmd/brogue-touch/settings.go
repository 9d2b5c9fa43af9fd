package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/brogue-touch/brogue_touch/internal/config"
)

var flagYAML bool

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Inspect or change the settings file",
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print every setting in effect",
	Args:  cobra.NoArgs,
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <name> <value>",
	Short: "Change one saved setting",
	Long: `Change one setting and rewrite the settings file.

Only the settings the game itself saves can be changed here; the
others are read from the file but never written back.

Examples:
  brogue-touch settings set dpad_enabled 0
  brogue-touch settings set init_zoom 2.5`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

var settingsResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Write the default settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return config.Defaults().SaveFile(settingsPath())
	},
}

var settingsPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the settings file path",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), settingsPath())
	},
}

func init() {
	settingsShowCmd.Flags().BoolVar(&flagYAML, "yaml", false, "Print as YAML")
	settingsCmd.AddCommand(settingsShowCmd, settingsSetCmd, settingsResetCmd, settingsPathCmd)
}

func loadSettings() (*config.Settings, error) {
	s := config.Defaults()
	if err := s.LoadFile(settingsPath()); err != nil {
		return nil, err
	}
	return s, nil
}

func runSettingsShow(cmd *cobra.Command, args []string) error {
	s, err := loadSettings()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if flagYAML {
		enc := yaml.NewEncoder(out)
		defer enc.Close()
		return enc.Encode(s)
	}
	m := s.Map()
	for _, name := range config.Names() {
		fmt.Fprintf(out, "%-*s %s\n", config.MaxNameLen, name, m[name])
	}
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	name, value := args[0], args[1]
	if _, ok := config.Defaults().Lookup(name); !ok {
		fmt.Fprintln(os.Stderr, "Run 'brogue-touch settings show' to list settings.")
		return fmt.Errorf("unknown setting %q", name)
	}
	if !config.Persisted(name) {
		return fmt.Errorf("setting %q is read from the file but not saved; edit %s directly", name, settingsPath())
	}
	s, err := loadSettings()
	if err != nil {
		return err
	}
	s.Set(name, value)
	if err := s.SaveFile(settingsPath()); err != nil {
		return err
	}
	v, _ := s.Lookup(name)
	fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", name, v)
	return nil
}
