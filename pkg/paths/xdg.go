// Package paths resolves the per-user locations samoyed reads from.
//
// Resolution follows the XDG base directory convention:
// $XDG_CONFIG_HOME/samoyed, falling back to ~/.config/samoyed. The hook
// wrapper script computes the init script path the same way.
package paths

import (
	"os"
	"path/filepath"
)

const appName = "samoyed"

// getConfigHome returns the base config home directory.
func getConfigHome() string {
	if xdgConfigHome := os.Getenv("XDG_CONFIG_HOME"); xdgConfigHome != "" {
		return xdgConfigHome
	}
	if homeDir, err := os.UserHomeDir(); err == nil {
		return filepath.Join(homeDir, ".config")
	}
	return ""
}

// ConfigDir returns the samoyed configuration directory.
func ConfigDir() string {
	base := getConfigHome()
	if base == "" {
		return ""
	}
	return filepath.Join(base, appName)
}

// InitScript returns the shell file the hook wrapper sources before every
// hook, typically used to extend PATH for version managers.
func InitScript() string {
	dir := ConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "init.sh")
}

// GlobalConfigFile returns the user-wide hook table.
func GlobalConfigFile() string {
	dir := ConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "samoyed.toml")
}

// All returns every resolved path keyed by name.
func All() map[string]string {
	return map[string]string{
		"config_dir":    ConfigDir(),
		"init_script":   InitScript(),
		"global_config": GlobalConfigFile(),
	}
}
