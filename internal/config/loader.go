package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// For mocking in tests
var osUserHomeDir = os.UserHomeDir
var osGetwd = os.Getwd

const (
	userConfigDir    = ".config/clitestbed"
	projectConfigDir = ".clitestbed"
	configFileName   = "config.yaml"
)

// LoadSettings loads harness settings by layering default, user, and project files.
func LoadSettings() (Settings, error) {
	// 1. Start with the default settings
	settings := GetDefaultSettings()

	// 2. User-specific settings
	userConfigPath, err := getUserConfigPath()
	if err != nil {
		// User settings are optional
		fmt.Fprintf(os.Stderr, "Warning: Could not determine user config path: %v\n", err)
	} else if _, err := os.Stat(userConfigPath); !os.IsNotExist(err) {
		userSettings, err := loadSettingsFromFile(userConfigPath)
		if err != nil {
			return Settings{}, fmt.Errorf("error loading user config from %s: %w", userConfigPath, err)
		}
		settings = mergeSettings(settings, userSettings)
	}

	// 3. Project-specific settings
	projectConfigPath, err := getProjectConfigPath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Could not determine project config path: %v\n", err)
	} else if _, err := os.Stat(projectConfigPath); !os.IsNotExist(err) {
		projectSettings, err := loadSettingsFromFile(projectConfigPath)
		if err != nil {
			return Settings{}, fmt.Errorf("error loading project config from %s: %w", projectConfigPath, err)
		}
		settings = mergeSettings(settings, projectSettings)
	}

	return settings, nil
}

var getUserConfigPath = func() (string, error) {
	homeDir, err := osUserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, userConfigDir, configFileName), nil
}

var getProjectConfigPath = func() (string, error) {
	wd, err := osGetwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(wd, projectConfigDir, configFileName), nil
}

// loadSettingsFromFile loads Settings from a YAML file.
func loadSettingsFromFile(filePath string) (Settings, error) {
	var settings Settings
	data, err := os.ReadFile(filePath)
	if err != nil {
		return Settings{}, err
	}
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return Settings{}, err
	}
	return settings, nil
}

// mergeSettings merges 'overlay' into 'base'. Empty overlay fields keep the base value.
func mergeSettings(base, overlay Settings) Settings {
	merged := base

	if overlay.DefaultLogLevel != "" {
		merged.DefaultLogLevel = overlay.DefaultLogLevel
	}
	if overlay.Output != "" {
		merged.Output = overlay.Output
	}
	if overlay.ReportPath != "" {
		merged.ReportPath = overlay.ReportPath
	}
	// Booleans can only be switched on by a layer
	merged.Strict = base.Strict || overlay.Strict
	merged.NoColor = base.NoColor || overlay.NoColor

	return merged
}

// GetUserConfigDir returns the user configuration directory path
func GetUserConfigDir() (string, error) {
	homeDir, err := osUserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, userConfigDir), nil
}
