package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigReadsEnvironment(t *testing.T) {
	settings := filepath.Join(t.TempDir(), "settings.json")
	require.NoError(t, os.WriteFile(settings, []byte(`{}`), 0644))

	t.Setenv("NDAV_SETTINGS_FILE", settings)
	t.Setenv("MONGO_CONNECTION_STRING", "mongodb://localhost:27017")
	t.Setenv("SQL_CONNECTION_STRING", "sqlserver://localhost")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, settings, cfg.SettingsFile)
	assert.Equal(t, "mongodb://localhost:27017", cfg.MongoConnString)
	assert.Equal(t, "sqlserver://localhost", cfg.SQLConnString)
}

func TestLoadConfigAllowsEmptyEnvironment(t *testing.T) {
	t.Setenv("NDAV_SETTINGS_FILE", "")
	t.Setenv("MONGO_CONNECTION_STRING", "")
	t.Setenv("SQL_CONNECTION_STRING", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Empty(t, cfg.SettingsFile)
}

func TestLoadConfigRejectsMissingSettingsFile(t *testing.T) {
	t.Setenv("NDAV_SETTINGS_FILE", "/no/such/settings.json")

	_, err := LoadConfig()
	assert.ErrorContains(t, err, "settings file from NDAV_SETTINGS_FILE not found")
}

func TestLoadSettingsEmptyPathUsesDefaults(t *testing.T) {
	settings, err := LoadSettings("")
	require.NoError(t, err)
	assert.Equal(t, 2.5, settings.Validation.FileSizeLimitGiB)
}

func TestLoadSettingsFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	require.NoError(t, os.WriteFile(path,
		[]byte(`{"validation": {"fileSizeLimitGib": 1.0}}`), 0644))

	settings, err := LoadSettings(path)
	require.NoError(t, err)
	assert.Equal(t, int64(1073741824), settings.SizeLimitBytes())
}

func TestLoadSettingsMissingFile(t *testing.T) {
	_, err := LoadSettings("/no/such/settings.json")
	assert.ErrorContains(t, err, "failed to read settings file")
}
