package validate

// ValidationResult is the value returned by every validator call.
// IsValid is true exactly when Errors is empty; warnings are
// informational and never affect validity. Metadata carries summary
// statistics and is populated only for error-free validations.
type ValidationResult struct {
	IsValid  bool                   `json:"is_valid"`
	Errors   []string               `json:"errors"`
	Warnings []string               `json:"warnings"`
	Metadata map[string]interface{} `json:"metadata"`
}

func newResult(errors, warnings []string, metadata map[string]interface{}) ValidationResult {
	if len(errors) > 0 || metadata == nil {
		metadata = map[string]interface{}{}
	}
	return ValidationResult{
		IsValid:  len(errors) == 0,
		Errors:   errors,
		Warnings: warnings,
		Metadata: metadata,
	}
}

// invalidResult builds a failed result from structural errors, with no
// metadata and no warnings.
func invalidResult(errors ...string) ValidationResult {
	return newResult(errors, nil, nil)
}
