package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildCollection lays out a complete, valid collection directory.
func buildCollection(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	writeFile(t, dir, "metadata/research_subject.csv",
		"subjectkey,src_subject_id,interview_age,interview_date,sex\n"+
			"NDARAB123456,SUB001,240,01/15/2024,F\n")
	writeFile(t, dir, "metadata/demographics.csv",
		demographicsHeader+"NDARAB123456,SUB001,240,01/15/2024,F,White,Hispanic,2\n")
	writeFile(t, dir, "behavioral/assessment.csv",
		behavioralHeader+"NDARAB123456,SUB001,240,01/15/2024,F,85\n")
	writeFile(t, dir, "eeg/sub001.set", "dummy")
	writeFile(t, dir, "eeg/metadata.csv",
		eegHeader+"NDARAB123456,SUB001,240,01/15/2024,F,EXP001,sub001.set\n")
	writeFile(t, dir, "mri/sub001.nii", "dummy")
	writeFile(t, dir, "mri/metadata.csv",
		mriHeader+"NDARAB123456,SUB001,240,01/15/2024,F,sub001.nii,T1,01/10/2024\n")

	return dir
}

func TestValidateCollection(t *testing.T) {
	dir := buildCollection(t)

	summary, err := ValidateCollection("C4223", dir)
	require.NoError(t, err)

	assert.Equal(t, "C4223", summary.CollectionID)
	require.Len(t, summary.Results, 5, "all five data types discovered")
	for dt, res := range summary.Results {
		assert.True(t, res.IsValid, "%s errors: %v", dt, res.Errors)
	}
	assert.True(t, summary.AllValid)
	assert.Equal(t, 0, summary.TotalErrors)
	// The 1-byte MRI dummy file triggers the size-sanity warning.
	assert.Equal(t, 1, summary.TotalWarnings)
}

func TestValidateCollectionRejectsBadID(t *testing.T) {
	_, err := ValidateCollection("bogus", t.TempDir())
	assert.ErrorContains(t, err, "invalid collection ID")
}

func TestValidateCollectionMissingSubjectReported(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "metadata/demographics.csv",
		demographicsHeader+"NDARAB123456,SUB001,240,01/15/2024,F,White,Hispanic,2\n")

	summary, err := ValidateCollection("C4223", dir)
	require.NoError(t, err)

	// Missing subject metadata is reported without aborting siblings.
	subject, ok := summary.Results[Subject]
	require.True(t, ok)
	assert.False(t, subject.IsValid)
	assert.Contains(t, subject.Errors[0], "File not found")

	demographics, ok := summary.Results[Demographics]
	require.True(t, ok)
	assert.True(t, demographics.IsValid)

	assert.False(t, summary.AllValid)
}

func TestValidateCollectionSkipsAbsentTypes(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "metadata/research_subject.csv",
		"subjectkey,src_subject_id,interview_age,interview_date,sex\n"+
			"NDARAB123456,SUB001,240,01/15/2024,F\n")

	summary, err := ValidateCollection("C4223", dir)
	require.NoError(t, err)
	require.Len(t, summary.Results, 1)
	assert.True(t, summary.AllValid)
}

func TestValidateCollectionMergesBehavioralFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "metadata/research_subject.csv",
		"subjectkey,src_subject_id,interview_age,interview_date,sex\n"+
			"NDARAB123456,SUB001,240,01/15/2024,F\n")
	writeFile(t, dir, "behavioral/task_a.csv",
		behavioralHeader+"NDARAB123456,SUB001,240,01/15/2024,F,85\n")
	writeFile(t, dir, "behavioral/task_b.csv",
		behavioralHeader+"NDARAB123456,SUB001,240,01/15/2024,F,140\n")

	summary, err := ValidateCollection("C4223", dir)
	require.NoError(t, err)

	behavioral := summary.Results[Behavioral]
	assert.False(t, behavioral.IsValid)
	require.Len(t, behavioral.Errors, 1)
	assert.Contains(t, behavioral.Errors[0], "task_b.csv:", "errors are prefixed with the offending file")
	assert.False(t, summary.AllValid)
}

func TestValidateCollectionDeterministicMerge(t *testing.T) {
	dir := buildCollection(t)

	first, err := ValidateCollection("C4223", dir)
	require.NoError(t, err)
	second, err := ValidateCollection("C4223", dir)
	require.NoError(t, err)
	assert.Equal(t, first, second, "merge order is keyed by data type, not completion order")
}
