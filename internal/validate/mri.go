package validate

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var (
	mriFileExtensions = []string{".nii", ".nii.gz", ".dcm"}
	validImageTypes   = []string{"T1", "T2", "fMRI", "DTI"}
)

// Imaging files below this size usually indicate a truncated export.
const minImageFileSize = 1024 * 1024 // 1 MiB

// checkMRI validates an MRI metadata table and, when dataDir is
// supplied, the referenced image files.
func (v *Validator) checkMRI(t *Table, dataDir string, errors *[]string, warnings *[]string) map[string]interface{} {
	if invalid := invalidEnumValues(t, "image_type", validImageTypes); len(invalid) > 0 {
		*errors = append(*errors, fmt.Sprintf("Invalid image types found: %s", strings.Join(invalid, ", ")))
	}

	now := v.now()
	for i := 0; i < t.NumRows(); i++ {
		rowNum := i + 1

		errMsg, warnMsg := checkDate(t.Value(i, "acquisition_date"), "acquisition_date", rowNum, now)
		if errMsg != "" {
			*errors = append(*errors, errMsg)
		}
		if warnMsg != "" {
			*warnings = append(*warnings, warnMsg)
		}

		imageFile := t.Value(i, "image_file")
		if imageFile.IsNull() {
			*errors = append(*errors, fmt.Sprintf("Missing image_file for subject %s", t.Value(i, "subjectkey").Render()))
			continue
		}

		name := imageFile.Render()
		if !extAllowed(name, mriFileExtensions) {
			*errors = append(*errors, fmt.Sprintf("Invalid image file format %s for %s", fileExt(name), name))
			continue
		}
		if dataDir != "" {
			info, err := os.Stat(filepath.Join(dataDir, name))
			if err != nil {
				*errors = append(*errors, fmt.Sprintf("Image file not found: %s", name))
				continue
			}
			if info.Size() < minImageFileSize {
				*warnings = append(*warnings, fmt.Sprintf("Image file suspiciously small (<1MB): %s", name))
			}
		}
	}

	if len(*errors) > 0 {
		return nil
	}

	return map[string]interface{}{
		"total_scans":             t.NumRows(),
		"image_type_distribution": columnCounts(t, "image_type"),
	}
}
