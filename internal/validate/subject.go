package validate

import (
	"fmt"
	"strings"
	"time"

	"github.com/montanaflynn/stats"
)

// Standard deviation of interview_age above which the collection likely
// mixes cohorts (20 years in months).
const maxAgeStdDevMonths = 240

// Boolean-coded study-design flags from the research_subject template.
// Checked only when present.
var studyFlagColumns = []string{"twins_study", "sibling_study", "family_study"}

// checkSubject runs the research-subject rules and, when the file is
// error-free, computes the per-collection summary metadata: sex
// distribution, age statistics and interview date range.
func (v *Validator) checkSubject(t *Table, errors *[]string, warnings *[]string) map[string]interface{} {
	for _, col := range studyFlagColumns {
		if !t.HasColumn(col) {
			continue
		}
		if invalid := invalidEnumValues(t, col, []string{"0", "1", ""}); len(invalid) > 0 {
			*errors = append(*errors, fmt.Sprintf("Invalid %s values. Must be 0 or 1. Found: %s",
				col, strings.Join(invalid, ", ")))
		}
	}

	if len(*errors) > 0 {
		return nil
	}

	metadata := map[string]interface{}{
		"total_subjects":   t.NumRows(),
		"sex_distribution": columnCounts(t, "sex"),
	}

	ages := make([]float64, 0, t.NumRows())
	for i := 0; i < t.NumRows(); i++ {
		if age, ok := t.Value(i, "interview_age").AsFloat(); ok {
			ages = append(ages, age)
		}
	}
	if len(ages) > 0 {
		min, _ := stats.Min(ages)
		max, _ := stats.Max(ages)
		mean, _ := stats.Mean(ages)
		median, _ := stats.Median(ages)
		metadata["age_statistics"] = map[string]float64{
			"min_age_months":    min,
			"max_age_months":    max,
			"mean_age_months":   mean,
			"median_age_months": median,
		}

		if sd, err := stats.StandardDeviation(ages); err == nil && sd > maxAgeStdDevMonths {
			*warnings = append(*warnings, "Large age variation detected")
		}
	}

	if earliest, latest, ok := dateRange(t, "interview_date"); ok {
		metadata["date_range"] = map[string]string{
			"earliest": earliest.Format(dateLayout),
			"latest":   latest.Format(dateLayout),
		}
	}

	if t.HasColumn("family_study") {
		count := 0
		for i := 0; i < t.NumRows(); i++ {
			if val, ok := t.Value(i, "family_study").AsFloat(); ok && val == 1 {
				count++
			}
		}
		metadata["family_study_count"] = count
	}

	keys := map[string]bool{}
	duplicates := false
	for i := 0; i < t.NumRows(); i++ {
		key := t.Value(i, "subjectkey").Render()
		if keys[key] {
			duplicates = true
			break
		}
		keys[key] = true
	}
	if duplicates {
		*warnings = append(*warnings, "Duplicate subject keys found")
	}

	return metadata
}

// columnCounts tallies distinct rendered values in a column.
func columnCounts(t *Table, column string) map[string]int {
	counts := map[string]int{}
	for i := 0; i < t.NumRows(); i++ {
		counts[t.Value(i, column).Render()]++
	}
	return counts
}

// dateRange scans a date column for its earliest and latest parseable
// values.
func dateRange(t *Table, column string) (earliest, latest time.Time, ok bool) {
	for i := 0; i < t.NumRows(); i++ {
		raw := t.Value(i, column).Render()
		parsed, err := time.Parse(dateLayout, raw)
		if err != nil {
			parsed, err = time.Parse(fallbackDateLayout, raw)
			if err != nil {
				continue
			}
		}
		if !ok || parsed.Before(earliest) {
			earliest = parsed
		}
		if !ok || parsed.After(latest) {
			latest = parsed
		}
		ok = true
	}
	return earliest, latest, ok
}
