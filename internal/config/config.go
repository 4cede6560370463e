// Package config handles loading of application configuration:
// environment variables and the optional JSON settings file.
package config

import (
	"fmt"
	"os"

	"github.com/BartekS5/NDAV/pkg/models"
)

// Config holds all configuration for the application,
// typically loaded from environment variables.
type Config struct {
	SettingsFile    string
	MongoConnString string
	SQLConnString   string
}

// LoadConfig loads application settings from environment variables
// (which should be populated by the .env file in main.go).
// All variables are optional: the validator runs fully offline without
// the Mongo report sink or the SQL record source. A settings-file path
// that points nowhere is rejected here, before any work starts.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		SettingsFile:    os.Getenv("NDAV_SETTINGS_FILE"),
		MongoConnString: os.Getenv("MONGO_CONNECTION_STRING"),
		SQLConnString:   os.Getenv("SQL_CONNECTION_STRING"),
	}
	if cfg.SettingsFile != "" {
		if _, err := os.Stat(cfg.SettingsFile); err != nil {
			return nil, fmt.Errorf("settings file from NDAV_SETTINGS_FILE not found: %s", cfg.SettingsFile)
		}
	}
	return cfg, nil
}

// LoadSettings reads and parses the settings file from the given path.
// An empty path returns the compiled-in defaults.
func LoadSettings(filePath string) (*models.Settings, error) {
	if filePath == "" {
		return models.DefaultSettings(), nil
	}

	bytes, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read settings file '%s': %w", filePath, err)
	}

	settings, err := models.LoadSettings(bytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse settings file '%s': %w", filePath, err)
	}

	return settings, nil
}
