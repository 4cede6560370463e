package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()
	assert.Equal(t, 2.5, s.Validation.FileSizeLimitGiB)
	assert.Equal(t, int64(2684354560), s.SizeLimitBytes())
	assert.Contains(t, s.Validation.AllowedExtensions["eeg"], ".set")
	assert.Contains(t, s.Validation.AllowedExtensions["mri"], ".nii")
}

func TestLoadSettings(t *testing.T) {
	data := []byte(`{
		"collections": {
			"C4223": {"type": "eeg", "dataDirectory": "test_data/C4223"}
		},
		"validation": {
			"fileSizeLimitGib": 1.0,
			"allowedExtensions": {"eeg": [".set"]}
		}
	}`)

	s, err := LoadSettings(data)
	require.NoError(t, err)
	assert.Equal(t, "eeg", s.Collections["C4223"].Type)
	assert.Equal(t, int64(1073741824), s.SizeLimitBytes())
	assert.Equal(t, []string{".set"}, s.Validation.AllowedExtensions["eeg"])
}

func TestLoadSettingsFillsDefaults(t *testing.T) {
	s, err := LoadSettings([]byte(`{}`))
	require.NoError(t, err)
	assert.Equal(t, 2.5, s.Validation.FileSizeLimitGiB)
	assert.NotEmpty(t, s.Validation.AllowedExtensions)
}

func TestLoadSettingsRejectsMalformedJSON(t *testing.T) {
	_, err := LoadSettings([]byte(`{not json`))
	assert.Error(t, err)
}
