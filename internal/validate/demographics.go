package validate

import (
	"fmt"
	"strings"
)

// Allowed values from the NDA demographics template.
var (
	validRaces = []string{
		"White",
		"Black or African American",
		"Asian",
		"American Indian or Alaska Native",
		"Native Hawaiian or Other Pacific Islander",
		"Other",
	}
	validEthnicities = []string{"Hispanic", "Non-hispanic"}

	// 1 = Male, 2 = Female, per template.
	validGenderIdentities = []string{"1", "2"}
)

func (v *Validator) checkDemographics(t *Table, errors *[]string, warnings *[]string) map[string]interface{} {
	if invalid := invalidEnumValues(t, "race", validRaces); len(invalid) > 0 {
		*errors = append(*errors, fmt.Sprintf("Invalid race values found: %s", strings.Join(invalid, ", ")))
	}

	if invalid := invalidEnumValues(t, "ethnicity", validEthnicities); len(invalid) > 0 {
		*errors = append(*errors, fmt.Sprintf("Invalid ethnicity values found: %s", strings.Join(invalid, ", ")))
	}

	if invalid := invalidEnumValues(t, "gender_identity", validGenderIdentities); len(invalid) > 0 {
		*errors = append(*errors, fmt.Sprintf("Invalid gender_identity values. Must be 1 or 2. Found: %s",
			strings.Join(invalid, ", ")))
	}

	if len(*errors) > 0 {
		return nil
	}

	return map[string]interface{}{
		"total_rows":             t.NumRows(),
		"race_distribution":      columnCounts(t, "race"),
		"ethnicity_distribution": columnCounts(t, "ethnicity"),
	}
}
