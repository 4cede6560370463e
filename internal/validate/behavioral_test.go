package validate

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

const behavioralHeader = "subjectkey,src_subject_id,interview_age,interview_date,sex,anxiety_score\n"

func TestBehavioralValidFile(t *testing.T) {
	path := writeFile(t, t.TempDir(), "behavioral.csv",
		behavioralHeader+
			"NDARAB123456,SUB001,240,01/15/2024,F,85\n"+
			"NDARCD789012,SUB002,360,01/16/2024,M,42\n")

	result := newTestValidator(t, Behavioral).Validate(path, "")
	require.True(t, result.IsValid, "errors: %v", result.Errors)
	assert.Equal(t, []string{"anxiety_score"}, result.Metadata["score_columns"])
	assert.Equal(t, 2, result.Metadata["total_rows"])
}

func TestBehavioralScoreOutOfRange(t *testing.T) {
	path := writeFile(t, t.TempDir(), "behavioral.csv",
		behavioralHeader+
			"NDARAB123456,SUB001,240,01/15/2024,F,120\n"+
			"NDARCD789012,SUB002,360,01/16/2024,M,-3\n")

	result := newTestValidator(t, Behavioral).Validate(path, "")
	assert.False(t, result.IsValid)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "Column 'anxiety_score' has out-of-range score values in rows: [1 2]")
}

func TestBehavioralMissingValueWarning(t *testing.T) {
	rows := ""
	for i := 0; i < 9; i++ {
		rows += "NDARAB123456,SUB001,240,01/15/2024,F,50\n"
	}
	rows += "NDARCD789012,SUB002,360,01/16/2024,M,\n" // 10% missing is fine, >10% warns
	rows += "NDAREF345678,SUB003,300,01/17/2024,F,\n"

	path := writeFile(t, t.TempDir(), "behavioral.csv", behavioralHeader+rows)

	result := newTestValidator(t, Behavioral).Validate(path, "")
	assert.True(t, result.IsValid, "high missing rate is a warning, not an error")
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "anxiety_score")
	assert.Contains(t, result.Warnings[0], "missing values")
}

func TestBehavioralAcceptsSpreadsheet(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "behavioral.xlsx")

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	header := []interface{}{"subjectkey", "src_subject_id", "interview_age", "interview_date", "sex", "memory_score"}
	require.NoError(t, f.SetSheetRow(sheet, "A1", &header))
	row := []interface{}{"NDARAB123456", "SUB001", 240, "01/15/2024", "F", 77}
	require.NoError(t, f.SetSheetRow(sheet, "A2", &row))
	require.NoError(t, f.SaveAs(path))

	result := newTestValidator(t, Behavioral).Validate(path, "")
	assert.True(t, result.IsValid, "errors: %v", result.Errors)
}

func TestBehavioralRejectsUnknownExtension(t *testing.T) {
	path := writeFile(t, t.TempDir(), "behavioral.tsv", behavioralHeader)

	result := newTestValidator(t, Behavioral).Validate(path, "")
	assert.False(t, result.IsValid)
	assert.Contains(t, result.Errors[0], "Invalid file extension")
	assert.Contains(t, result.Errors[0], ".csv, .xlsx")
}
