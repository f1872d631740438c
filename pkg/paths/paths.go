// Package paths provides the file locations used by the delegate tool.
// It follows the XDG Base Directory specification: configuration lives under
// the XDG config home and the log file under the XDG state home.
package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
)

// Environment variable names
const (
	// EnvConfigFile points at an explicit configuration file
	EnvConfigFile = "DELEGATE_CONFIG"

	// EnvConfigDir overrides the XDG config directory for delegate
	EnvConfigDir = "DELEGATE_CONFIG_DIR"

	// EnvStateDir overrides the XDG state directory for delegate
	EnvStateDir = "DELEGATE_STATE_DIR"
)

const (
	// AppDirName is the directory name used below the XDG homes
	AppDirName = "delegate"

	// ConfigFileName is the name of the user configuration file
	ConfigFileName = "config.toml"

	// LogFileName is the name of the log file
	LogFileName = "delegate.log"
)

// ConfigDir returns the directory holding the user configuration.
func ConfigDir() string {
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		return expandHome(dir)
	}
	return filepath.Join(xdg.ConfigHome, AppDirName)
}

// ConfigFile returns the user configuration file path. DELEGATE_CONFIG wins
// over the XDG location.
func ConfigFile() string {
	if file := os.Getenv(EnvConfigFile); file != "" {
		return expandHome(file)
	}
	return filepath.Join(ConfigDir(), ConfigFileName)
}

// StateDir returns the directory for runtime state such as the log file.
// xdg caches XDG_STATE_HOME at init, so the variable is read here directly.
func StateDir() string {
	if dir := os.Getenv(EnvStateDir); dir != "" {
		return expandHome(dir)
	}
	if stateHome := os.Getenv("XDG_STATE_HOME"); stateHome != "" {
		return filepath.Join(stateHome, AppDirName)
	}
	if xdg.StateHome != "" {
		return filepath.Join(xdg.StateHome, AppDirName)
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if we can't get home
		return AppDirName
	}
	return filepath.Join(homeDir, ".local", "state", AppDirName)
}

// LogFilePath returns the path of the log file.
func LogFilePath() string {
	return filepath.Join(StateDir(), LogFileName)
}

// expandHome expands a leading ~ to the user's home directory
func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
