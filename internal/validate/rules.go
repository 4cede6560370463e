package validate

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// NDA interview dates use the template's MM/DD/YYYY layout. Exports from
// other tools often carry ISO dates; those still parse but are flagged
// as a format warning.
const (
	dateLayout         = "01/02/2006"
	fallbackDateLayout = "2006-01-02"
)

const (
	minAgeMonths = 0
	maxAgeMonths = 1200 // 100 years
)

var (
	collectionIDPattern = regexp.MustCompile(`^C\d{4}$`)
	standardGUIDPattern = regexp.MustCompile(`^NDAR[A-Z0-9]{8}$`)
	pseudoGUIDPattern   = regexp.MustCompile(`^NDAR_INV[A-Z0-9]{8}$`)
	experimentIDPattern = regexp.MustCompile(`^EXP`)
)

// ValidCollectionID reports whether id matches the archive's collection
// ID pattern (letter C followed by 4 digits).
func ValidCollectionID(id string) bool {
	return collectionIDPattern.MatchString(id)
}

// ValidGUID checks a subject identifier against the two accepted forms.
// A value starting with the pseudoGUID prefix must match the pseudo
// pattern exactly; anything else must match the standard pattern.
// Null/missing fails.
func ValidGUID(v Value) bool {
	if v.Kind != KindString {
		return false
	}
	if strings.HasPrefix(v.Str, "NDAR_INV") {
		return pseudoGUIDPattern.MatchString(v.Str)
	}
	return standardGUIDPattern.MatchString(v.Str)
}

// checkAge validates an interview age in months. Returns an empty string
// when the value is acceptable.
func checkAge(v Value, rowNum int) string {
	age, ok := v.AsFloat()
	if !ok {
		return fmt.Sprintf("Invalid interview_age format in row %d: %s", rowNum, v.Render())
	}
	if age < minAgeMonths || age > maxAgeMonths {
		return fmt.Sprintf("Invalid interview_age in row %d: %s", rowNum, v.Render())
	}
	return ""
}

// checkDate validates a date cell against the canonical layout. Two
// independent concerns: a value parseable only by the fallback layout is
// a format warning, while a date after now is an error regardless of
// layout. Unparseable values are errors.
func checkDate(v Value, field string, rowNum int, now time.Time) (errMsg, warnMsg string) {
	if v.IsNull() {
		return fmt.Sprintf("Missing %s in row %d", field, rowNum), ""
	}
	raw := v.Render()

	parsed, err := time.Parse(dateLayout, raw)
	if err != nil {
		parsed, err = time.Parse(fallbackDateLayout, raw)
		if err != nil {
			return fmt.Sprintf("Invalid %s in row %d: %s. Expected format: MM/DD/YYYY", field, rowNum, raw), ""
		}
		warnMsg = fmt.Sprintf("%s in row %d not in MM/DD/YYYY format: %s", field, rowNum, raw)
	}

	if parsed.After(now) {
		errMsg = fmt.Sprintf("Future %s in row %d: %s", field, rowNum, raw)
	}
	return errMsg, warnMsg
}

// invalidEnumValues scans a column and returns the distinct values not in
// the allowed set, in first-seen order. Reporting distinct offenders
// keeps messages bounded on large tables.
func invalidEnumValues(t *Table, column string, allowed []string) []string {
	set := make(map[string]bool, len(allowed))
	for _, a := range allowed {
		set[a] = true
	}

	seen := map[string]bool{}
	var invalid []string
	for i := 0; i < t.NumRows(); i++ {
		val := t.Value(i, column).Render()
		if set[val] || seen[val] {
			continue
		}
		seen[val] = true
		invalid = append(invalid, val)
	}
	return invalid
}

// outOfRangeRows returns the 1-based row numbers whose value in column
// falls outside [min, max]. Nulls are skipped; they are counted by the
// missing-value check instead.
func outOfRangeRows(t *Table, column string, min, max float64) []int {
	var rows []int
	for i := 0; i < t.NumRows(); i++ {
		v := t.Value(i, column)
		if v.IsNull() {
			continue
		}
		f, ok := v.AsFloat()
		if !ok || f < min || f > max {
			rows = append(rows, i+1)
		}
	}
	return rows
}

// missingCount counts null cells in a column.
func missingCount(t *Table, column string) int {
	n := 0
	for i := 0; i < t.NumRows(); i++ {
		if t.Value(i, column).IsNull() {
			n++
		}
	}
	return n
}

// fileExt returns the lower-cased file extension, treating compressed
// NIfTI (.nii.gz) as a single extension.
func fileExt(path string) string {
	base := strings.ToLower(filepath.Base(path))
	if strings.HasSuffix(base, ".nii.gz") {
		return ".nii.gz"
	}
	return filepath.Ext(base)
}

func extAllowed(path string, allowed []string) bool {
	ext := fileExt(path)
	for _, a := range allowed {
		if ext == a {
			return true
		}
	}
	return false
}
