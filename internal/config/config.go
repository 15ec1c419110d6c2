// SPDX-License-Identifier: MPL-2.0

// Package config loads the optional podctl configuration file: a small
// set of defaults (readiness wait, verbosity) that CLI flags always
// override.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/spf13/viper"
)

// AppName names the config subdirectory under the platform's config root.
const AppName = "podctl"

// ConfigFileName is the config file's basename, without extension.
const ConfigFileName = "config"

// ConfigFileExt is the config file format. go-toml/v2 backs viper's
// "toml" codec.
const ConfigFileExt = "toml"

// UI holds display-related defaults.
type UI struct {
	// Verbose enables the per-process "available" line even when a
	// process had no readiness checks.
	Verbose bool `toml:"verbose" mapstructure:"verbose"`
	// Quiet suppresses the pod start/finish banners.
	Quiet bool `toml:"quiet" mapstructure:"quiet"`
}

// Config holds podctl's file-configurable defaults.
type Config struct {
	// DefaultWait replaces the readiness deadline of every process whose
	// wait equals the built-in default: all inline specifiers, and every
	// taskfile entry that omits wait or sets it to that same value. A zero
	// value means "use the built-in default".
	DefaultWait time.Duration `toml:"default_wait" mapstructure:"default_wait"`
	// UI configures default display behavior.
	UI UI `toml:"ui" mapstructure:"ui"`
}

// ConfigDir returns podctl's configuration directory for the current
// platform: $XDG_CONFIG_HOME/podctl (or ~/.config/podctl) on Linux and
// other Unix-likes, ~/Library/Application Support/podctl on macOS, and
// %APPDATA%\podctl on Windows.
func ConfigDir() (string, error) {
	var configDir string

	switch runtime.GOOS {
	case "windows":
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("get home directory: %w", err)
		}
		configDir = filepath.Join(home, "Library", "Application Support")
	default:
		configDir = os.Getenv("XDG_CONFIG_HOME")
		if configDir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("get home directory: %w", err)
			}
			configDir = filepath.Join(home, ".config")
		}
	}

	return filepath.Join(configDir, AppName), nil
}

// Load reads the config file at explicitPath, or falls back to the
// platform config directory and the current directory when
// explicitPath is empty. A missing file is not an error: Load returns a
// zero-value Config so callers can apply flags on top of it uniformly.
func Load(explicitPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigType(ConfigFileExt)

	if explicitPath != "" {
		v.SetConfigFile(explicitPath)
	} else {
		v.SetConfigName(ConfigFileName)
		if cfgDir, err := ConfigDir(); err == nil {
			v.AddConfigPath(cfgDir)
		}
		v.AddConfigPath(".")
	}

	v.SetDefault("default_wait", time.Duration(0))
	v.SetDefault("ui.verbose", false)
	v.SetDefault("ui.quiet", false)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return &cfg, nil
}
