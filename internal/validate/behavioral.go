package validate

import (
	"fmt"
	"strings"
)

const (
	minScore = 0
	maxScore = 100

	// Fraction of missing values in a column above which data quality
	// is flagged.
	missingWarnRatio = 0.10
)

// checkBehavioral validates behavioral/assessment tables. Any column
// whose name contains "score" is range-checked; per-column missing-value
// rates above the threshold produce warnings, not errors.
func (v *Validator) checkBehavioral(t *Table, errors *[]string, warnings *[]string) map[string]interface{} {
	var scoreColumns []string
	for _, col := range t.Columns() {
		if strings.Contains(strings.ToLower(col), "score") {
			scoreColumns = append(scoreColumns, col)
		}
	}

	for _, col := range scoreColumns {
		if rows := outOfRangeRows(t, col, minScore, maxScore); len(rows) > 0 {
			*errors = append(*errors, fmt.Sprintf("Column '%s' has out-of-range score values in rows: %v", col, rows))
		}
	}

	missingCounts := map[string]int{}
	if t.NumRows() > 0 {
		for _, col := range t.Columns() {
			n := missingCount(t, col)
			missingCounts[col] = n
			ratio := float64(n) / float64(t.NumRows())
			if ratio > missingWarnRatio {
				*warnings = append(*warnings, fmt.Sprintf("Column '%s' has %.1f%% missing values", col, ratio*100))
			}
		}
	}

	if len(*errors) > 0 {
		return nil
	}

	return map[string]interface{}{
		"total_rows":           t.NumRows(),
		"score_columns":        scoreColumns,
		"missing_value_counts": missingCounts,
	}
}
