package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Organization and application names used for the preferences directory.
const (
	PrefOrg = "BrogueCE"
	PrefApp = "Brogue"
)

// Game version that names the save folder.
const (
	VersionMajor = 1
	VersionMinor = 14
)

// PrefDir returns the per-user preferences directory for org/app,
// or "." when the platform has none.
func PrefDir(org, app string) string {
	base, err := os.UserConfigDir()
	if err != nil || base == "" {
		return "."
	}
	return filepath.Join(base, org, app)
}

// SettingsPath returns the settings file path. It lives in the save folder
// of the current version, next to the saved games.
func SettingsPath(pref string) string {
	return filepath.Join(saveFolderPath(pref, VersionMajor, VersionMinor), SettingsFile)
}

func saveFolderPath(pref string, major, minor int) string {
	return filepath.Join(pref, fmt.Sprintf("CE-%d.%d", major, minor))
}

// SaveFolder creates and returns the version-specific save folder inside pref.
func SaveFolder(pref string, major, minor int) (string, error) {
	dir := saveFolderPath(pref, major, minor)
	if err := os.MkdirAll(dir, 0o770); err != nil {
		return "", fmt.Errorf("create save folder %s: %w", dir, err)
	}
	return dir, nil
}
