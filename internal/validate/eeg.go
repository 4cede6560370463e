package validate

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var eegFileExtensions = []string{".set", ".fdt", ".edf", ".bdf"}

// checkEEG validates an EEG metadata table. When dataDir is supplied,
// every referenced recording must resolve to an existing file with an
// allowed extension.
func (v *Validator) checkEEG(t *Table, dataDir string, errors *[]string, warnings *[]string) map[string]interface{} {
	for i := 0; i < t.NumRows(); i++ {
		rowNum := i + 1

		expID := t.Value(i, "experiment_id")
		if expID.IsNull() {
			*errors = append(*errors, fmt.Sprintf("Missing experiment_id in row %d", rowNum))
		} else if !experimentIDPattern.MatchString(expID.Render()) {
			*errors = append(*errors, fmt.Sprintf("Invalid experiment_id format in row %d: %s", rowNum, expID.Render()))
		}

		eegFile := t.Value(i, "eeg_file")
		if eegFile.IsNull() {
			*errors = append(*errors, fmt.Sprintf("Missing eeg_file in row %d", rowNum))
			continue
		}

		name := eegFile.Render()
		if !extAllowed(name, eegFileExtensions) {
			*errors = append(*errors, fmt.Sprintf("Invalid EEG file extension '%s' for %s", fileExt(name), name))
			continue
		}
		if dataDir != "" {
			if _, err := os.Stat(filepath.Join(dataDir, name)); err != nil {
				*errors = append(*errors, fmt.Sprintf("EEG file not found: %s", name))
			}
		}
	}

	if len(*errors) > 0 {
		return nil
	}

	experiments := map[string]bool{}
	fileTypes := map[string]int{}
	for i := 0; i < t.NumRows(); i++ {
		experiments[t.Value(i, "experiment_id").Render()] = true
		ext := strings.TrimPrefix(fileExt(t.Value(i, "eeg_file").Render()), ".")
		fileTypes[ext]++
	}

	return map[string]interface{}{
		"total_files":        t.NumRows(),
		"unique_experiments": len(experiments),
		"file_types":         fileTypes,
	}
}
