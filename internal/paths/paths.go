// Package paths resolves home- and XDG-relative locations used by envline.
package paths

import (
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
)

const (
	// AppName is the directory name used under XDG base directories.
	AppName = "envline"

	// ConfigFileName is the default configuration file name.
	ConfigFileName = "config.toml"

	// DefaultDirenvDataDir is where direnv keeps its allow/deny markers.
	DefaultDirenvDataDir = "~/.local/share/direnv"
)

// Home returns the current user's home directory.
func Home() string {
	return xdg.Home
}

// DefaultConfigPath returns $XDG_CONFIG_HOME/envline/config.toml.
func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, AppName, ConfigFileName)
}

// ExpandTilde replaces a leading "~" with home. Paths like "~user/x" are
// returned unchanged.
func ExpandTilde(path, home string) string {
	if path == "~" {
		return home
	}
	if strings.HasPrefix(path, "~/") || strings.HasPrefix(path, "~"+string(filepath.Separator)) {
		return filepath.Join(home, path[2:])
	}
	return path
}

// ContractHome replaces a leading home prefix with "~" for display.
func ContractHome(path, home string) string {
	if home == "" || home == string(filepath.Separator) {
		return path
	}
	if path == home {
		return "~"
	}
	prefix := strings.TrimSuffix(home, string(filepath.Separator)) + string(filepath.Separator)
	if strings.HasPrefix(path, prefix) {
		return "~" + string(filepath.Separator) + strings.TrimPrefix(path, prefix)
	}
	return path
}
