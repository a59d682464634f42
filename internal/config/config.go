// SPDX-License-Identifier: MPL-2.0

// Package config handles application configuration using Viper.
//
// Configuration is optional: when no config file exists, defaults apply.
// The file lives at <config-dir>/meowda/config.toml.
package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"meowda-cli/internal/scope"

	"github.com/spf13/viper"
)

const (
	// AppName is the application name.
	AppName = "meowda"
	// ConfigFileName is the name of the config file (without extension).
	ConfigFileName = "config"
	// ConfigFileExt is the config file extension.
	ConfigFileExt = "toml"
)

// ErrInvalidDefaultScope is the sentinel wrapped by InvalidDefaultScopeError.
var ErrInvalidDefaultScope = errors.New("invalid default scope")

type (
	// Config holds the meowda settings.
	Config struct {
		// UvPath is the uv binary to invoke. Defaults to "uv" on $PATH.
		UvPath string `mapstructure:"uv_path" toml:"uv_path"`
		// DefaultScope is the scope used when no --local/--global flag
		// is given. One of "local" or "global".
		DefaultScope string `mapstructure:"default_scope" toml:"default_scope"`
	}

	// InvalidDefaultScopeError is returned when default_scope is not a
	// recognized scope name. It wraps ErrInvalidDefaultScope for
	// errors.Is() compatibility.
	InvalidDefaultScopeError struct {
		Value string
	}
)

// Error returns the error message for InvalidDefaultScopeError.
func (e *InvalidDefaultScopeError) Error() string {
	return fmt.Sprintf("invalid default scope %q (expected %q or %q)", e.Value, scope.Local, scope.Global)
}

// Unwrap returns the sentinel for errors.Is checks.
func (e *InvalidDefaultScopeError) Unwrap() error { return ErrInvalidDefaultScope }

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		UvPath:       "uv",
		DefaultScope: string(scope.Global),
	}
}

// Scope returns the configured default scope.
func (c *Config) Scope() scope.Scope {
	return scope.Scope(c.DefaultScope)
}

// Validate checks constraints the file format cannot express.
func (c *Config) Validate() error {
	if _, err := scope.ParseScope(c.DefaultScope); err != nil {
		return &InvalidDefaultScopeError{Value: c.DefaultScope}
	}
	return nil
}

// ConfigDir returns the meowda configuration directory using
// platform-specific conventions: Windows uses %APPDATA%, macOS uses
// ~/Library/Application Support, and Linux/others use $XDG_CONFIG_HOME
// (defaulting to ~/.config).
//
//nolint:revive // ConfigDir is more descriptive than Dir for external callers
func ConfigDir() (string, error) {
	// Allow tests to override the config directory
	if configDirOverride != "" {
		return configDirOverride, nil
	}

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
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(home, "Library", "Application Support")
	default: // Linux and others
		configDir = os.Getenv("XDG_CONFIG_HOME")
		if configDir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("failed to get home directory: %w", err)
			}
			configDir = filepath.Join(home, ".config")
		}
	}

	return filepath.Join(configDir, AppName), nil
}

// ConfigFilePath returns the default config file path.
func ConfigFilePath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ConfigFileName+"."+ConfigFileExt), nil
}

// loadWithOptions performs option-driven config loading without mutating
// package-level state.
func loadWithOptions(ctx context.Context, opts LoadOptions) (*Config, string, error) {
	select {
	case <-ctx.Done():
		return nil, "", fmt.Errorf("load config canceled: %w", ctx.Err())
	default:
	}

	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("uv_path", defaults.UvPath)
	v.SetDefault("default_scope", defaults.DefaultScope)

	resolvedPath := ""

	if opts.ConfigFilePath != "" {
		// An explicit config file must exist.
		if !fileExists(opts.ConfigFilePath) {
			return nil, "", fmt.Errorf("config file not found: %s", opts.ConfigFilePath)
		}
		v.SetConfigFile(opts.ConfigFilePath)
		if err := v.ReadInConfig(); err != nil {
			return nil, "", fmt.Errorf("failed to read config file %s: %w", opts.ConfigFilePath, err)
		}
		resolvedPath = opts.ConfigFilePath
	} else {
		cfgDir, err := configDirWithOverride(opts.ConfigDirPath)
		if err != nil {
			return nil, "", err
		}

		tomlPath := filepath.Join(cfgDir, ConfigFileName+"."+ConfigFileExt)
		if fileExists(tomlPath) {
			v.SetConfigFile(tomlPath)
			if err := v.ReadInConfig(); err != nil {
				return nil, "", fmt.Errorf("failed to read config file %s: %w", tomlPath, err)
			}
			resolvedPath = tomlPath
		}
		// If no config file found, use defaults (no error)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, "", fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", err
	}

	return &cfg, resolvedPath, nil
}

// configDirWithOverride resolves the configuration directory, honoring
// explicit provider options before platform defaults.
func configDirWithOverride(configDirPath string) (string, error) {
	if configDirPath != "" {
		return configDirPath, nil
	}

	return ConfigDir()
}

// fileExists reports whether path exists and is a regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
