package models

import "encoding/json"

// Settings represents the root of the JSON settings file.
type Settings struct {
	Collections map[string]CollectionConfig `json:"collections"`
	Validation  ValidationConfig            `json:"validation"`
	Logging     LoggingConfig               `json:"logging"`
}

// CollectionConfig describes one NDA collection registered for submission.
type CollectionConfig struct {
	Type           string   `json:"type"`
	RequiredFields []string `json:"requiredFields,omitempty"`
	DataDirectory  string   `json:"dataDirectory"`
}

type ValidationConfig struct {
	// FileSizeLimitGiB is the archive's single-file limit; files above it are split.
	FileSizeLimitGiB  float64             `json:"fileSizeLimitGib"`
	AllowedExtensions map[string][]string `json:"allowedExtensions,omitempty"`
}

type LoggingConfig struct {
	Level string `json:"level,omitempty"`
	File  string `json:"file,omitempty"`
}

// DefaultSettings returns the compiled-in defaults used when no settings
// file is supplied. The extension lists follow the NDA submission rules.
func DefaultSettings() *Settings {
	return &Settings{
		Collections: map[string]CollectionConfig{},
		Validation: ValidationConfig{
			FileSizeLimitGiB: 2.5,
			AllowedExtensions: map[string][]string{
				"eeg":        {".set", ".fdt", ".edf", ".bdf"},
				"mri":        {".nii", ".nii.gz", ".dcm"},
				"behavioral": {".csv", ".xlsx"},
				"metadata":   {".csv"},
			},
		},
		Logging: LoggingConfig{Level: "info", File: "nda_validation.log"},
	}
}

// LoadSettings parses a settings document, filling unset sections with defaults.
func LoadSettings(data []byte) (*Settings, error) {
	s := DefaultSettings()
	if err := json.Unmarshal(data, s); err != nil {
		return nil, err
	}
	if s.Validation.FileSizeLimitGiB <= 0 {
		s.Validation.FileSizeLimitGiB = 2.5
	}
	if len(s.Validation.AllowedExtensions) == 0 {
		s.Validation.AllowedExtensions = DefaultSettings().Validation.AllowedExtensions
	}
	if s.Logging.Level == "" {
		s.Logging.Level = "info"
	}
	if s.Logging.File == "" {
		s.Logging.File = "nda_validation.log"
	}
	return s, nil
}

// SizeLimitBytes converts the configured GiB limit to bytes.
func (s *Settings) SizeLimitBytes() int64 {
	return int64(s.Validation.FileSizeLimitGiB * 1024 * 1024 * 1024)
}
