package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"gopkg.in/yaml.v3"
)

// Helper function to create a temporary settings file
func createTempSettingsFile(t *testing.T, dir string, filename string, content Settings) string {
	t.Helper()
	assert.NoError(t, os.MkdirAll(dir, 0755))
	tempFilePath := filepath.Join(dir, filename)
	data, err := yaml.Marshal(&content)
	assert.NoError(t, err)
	err = os.WriteFile(tempFilePath, data, 0644)
	assert.NoError(t, err)
	return tempFilePath
}

// pointSettingsAt redirects the user and project lookups into tempDir.
func pointSettingsAt(t *testing.T, tempDir string) {
	t.Helper()
	originalGetUserConfigPath := getUserConfigPath
	originalGetProjectConfigPath := getProjectConfigPath
	t.Cleanup(func() {
		getUserConfigPath = originalGetUserConfigPath
		getProjectConfigPath = originalGetProjectConfigPath
	})

	getUserConfigPath = func() (string, error) {
		return filepath.Join(tempDir, "user", configFileName), nil
	}
	getProjectConfigPath = func() (string, error) {
		return filepath.Join(tempDir, "project", configFileName), nil
	}
}

func TestLoadSettings_DefaultOnly(t *testing.T) {
	pointSettingsAt(t, t.TempDir())

	settings, err := LoadSettings()
	assert.NoError(t, err)
	assert.Equal(t, GetDefaultSettings(), settings)
	assert.Equal(t, "DEBUG", settings.DefaultLogLevel)
	assert.Equal(t, OutputTable, settings.Output)
}

func TestLoadSettings_UserOverride(t *testing.T) {
	tempDir := t.TempDir()
	pointSettingsAt(t, tempDir)

	createTempSettingsFile(t, filepath.Join(tempDir, "user"), configFileName, Settings{
		DefaultLogLevel: "INFO",
		ReportPath:      "/var/reports",
	})

	settings, err := LoadSettings()
	assert.NoError(t, err)
	assert.Equal(t, "INFO", settings.DefaultLogLevel)
	assert.Equal(t, "/var/reports", settings.ReportPath)
	assert.Equal(t, OutputTable, settings.Output)
}

func TestLoadSettings_ProjectOverridesUser(t *testing.T) {
	tempDir := t.TempDir()
	pointSettingsAt(t, tempDir)

	createTempSettingsFile(t, filepath.Join(tempDir, "user"), configFileName, Settings{
		DefaultLogLevel: "INFO",
		Output:          OutputQuiet,
		NoColor:         true,
	})
	createTempSettingsFile(t, filepath.Join(tempDir, "project"), configFileName, Settings{
		Output: OutputJSON,
		Strict: true,
	})

	settings, err := LoadSettings()
	assert.NoError(t, err)
	assert.Equal(t, "INFO", settings.DefaultLogLevel)
	assert.Equal(t, OutputJSON, settings.Output)
	assert.True(t, settings.Strict)
	assert.True(t, settings.NoColor)
}

func TestLoadSettings_MalformedFile(t *testing.T) {
	tempDir := t.TempDir()
	pointSettingsAt(t, tempDir)

	userDir := filepath.Join(tempDir, "user")
	assert.NoError(t, os.MkdirAll(userDir, 0755))
	assert.NoError(t, os.WriteFile(filepath.Join(userDir, configFileName), []byte("output: [unclosed"), 0644))

	_, err := LoadSettings()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "error loading user config")
}

func TestGetUserConfigDir(t *testing.T) {
	original := osUserHomeDir
	defer func() { osUserHomeDir = original }()

	osUserHomeDir = func() (string, error) { return "/home/tester", nil }

	dir, err := GetUserConfigDir()
	assert.NoError(t, err)
	assert.Equal(t, filepath.Join("/home/tester", userConfigDir), dir)
}

func TestMergeSettings(t *testing.T) {
	base := Settings{DefaultLogLevel: "DEBUG", Output: OutputTable, Strict: true}
	merged := mergeSettings(base, Settings{ReportPath: "r"})

	assert.Equal(t, "DEBUG", merged.DefaultLogLevel)
	assert.Equal(t, OutputTable, merged.Output)
	assert.Equal(t, "r", merged.ReportPath)
	assert.True(t, merged.Strict)
}
