// SPDX-License-Identifier: MPL-2.0

// Package config loads the tool configuration: defaults, an optional YAML
// config file under the platform config directory, and EDGECTL_* environment
// overrides. The resulting Settings struct is threaded explicitly into each
// component; nothing reads configuration ambiently.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/viper"
)

const (
	// AppName is the application name, also the config directory name.
	AppName = "edgectl"
	// ConfigFileName is the name of the config file (without extension).
	ConfigFileName = "config"
)

type (
	// CustomTemplate is a dynamically registered third-party module
	// template: a display name plus a scaffold command pattern that may
	// reference %MODULE_NAME% and %REPOSITORY%.
	CustomTemplate struct {
		Name    string `mapstructure:"name"`
		Command string `mapstructure:"command"`
	}

	// Settings is the effective tool configuration.
	Settings struct {
		// DefaultRepository prefixes suggested module repositories.
		DefaultRepository string `mapstructure:"default_repository"`
		// Platform is the default target container platform.
		Platform string `mapstructure:"platform"`
		// Verbose enables verbose logging.
		Verbose bool `mapstructure:"verbose"`
		// Accessible switches prompts to huh's accessible mode.
		Accessible bool `mapstructure:"accessible"`
		// Templates are third-party module templates offered alongside
		// the built-in ones.
		Templates []CustomTemplate `mapstructure:"templates"`
	}
)

// configFileOverride lets the --config flag and tests point at a specific
// file.
var configFileOverride string

// SetConfigFileOverride sets a custom config file path.
func SetConfigFileOverride(path string) {
	configFileOverride = path
}

// Dir returns the edgectl configuration directory using platform-specific
// conventions: Windows uses %APPDATA%, macOS uses ~/Library/Application
// Support, and Linux/others use $XDG_CONFIG_HOME (defaulting to ~/.config).
func Dir() (string, error) {
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
	default:
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

// Default returns the built-in settings.
func Default() *Settings {
	return &Settings{
		DefaultRepository: "localhost:5000",
		Platform:          "amd64",
	}
}

// Load reads the configuration. A missing config file is not an error: the
// defaults apply.
func Load() (*Settings, error) {
	v := viper.New()

	defaults := Default()
	v.SetDefault("default_repository", defaults.DefaultRepository)
	v.SetDefault("platform", defaults.Platform)
	v.SetDefault("verbose", defaults.Verbose)
	v.SetDefault("accessible", defaults.Accessible)

	v.SetEnvPrefix(strings.ToUpper(AppName))
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFileOverride != "" {
		v.SetConfigFile(configFileOverride)
	} else {
		dir, err := Dir()
		if err != nil {
			return nil, err
		}
		v.SetConfigName(ConfigFileName)
		v.SetConfigType("yaml")
		v.AddConfigPath(dir)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	settings := &Settings{}
	if err := v.Unmarshal(settings); err != nil {
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}
	return settings, nil
}

// ConfigFilePath reports the path Load would read, for display purposes.
func ConfigFilePath() (string, error) {
	if configFileOverride != "" {
		return configFileOverride, nil
	}
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ConfigFileName+".yaml"), nil
}
