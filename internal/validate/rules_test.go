package validate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidCollectionID(t *testing.T) {
	assert.True(t, ValidCollectionID("C4223"))
	assert.True(t, ValidCollectionID("C0001"))

	assert.False(t, ValidCollectionID("invalid_id"))
	assert.False(t, ValidCollectionID("C423"))
	assert.False(t, ValidCollectionID("C42234"))
	assert.False(t, ValidCollectionID("c4223"))
	assert.False(t, ValidCollectionID(""))
}

func TestValidGUID(t *testing.T) {
	assert.True(t, ValidGUID(String("NDARAB123456")))
	assert.True(t, ValidGUID(String("NDAR_INVMB337LUJ")))

	// A pseudoGUID prefix must match the pseudo pattern exactly, it
	// never falls back to the standard pattern.
	assert.False(t, ValidGUID(String("NDAR_INVAB12")))
	assert.False(t, ValidGUID(String("NDAR_INVab123456")))

	assert.False(t, ValidGUID(String("INVALID123")))
	assert.False(t, ValidGUID(String("NDR12345")))
	assert.False(t, ValidGUID(String("NDARAB12345"))) // 7 chars
	assert.False(t, ValidGUID(Null()))
	assert.False(t, ValidGUID(Int(12345678)))
}

func TestCheckAge(t *testing.T) {
	assert.Empty(t, checkAge(Int(0), 1))
	assert.Empty(t, checkAge(Int(240), 1))
	assert.Empty(t, checkAge(Int(1200), 1))

	assert.Contains(t, checkAge(Int(-5), 1), "Invalid interview_age")
	assert.Contains(t, checkAge(Int(1500), 3), "Invalid interview_age in row 3")
	assert.Contains(t, checkAge(String("abc"), 1), "Invalid interview_age format")
	assert.Contains(t, checkAge(Null(), 1), "Invalid interview_age format")
}

func TestCheckDate(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	errMsg, warnMsg := checkDate(String("01/15/2024"), "interview_date", 1, now)
	assert.Empty(t, errMsg)
	assert.Empty(t, warnMsg)

	// ISO dates still parse but are flagged as a format warning.
	errMsg, warnMsg = checkDate(String("2024-01-15"), "interview_date", 2, now)
	assert.Empty(t, errMsg)
	assert.Contains(t, warnMsg, "not in MM/DD/YYYY format")

	// A future date is an error even when well-formed.
	errMsg, _ = checkDate(String("01/15/2030"), "interview_date", 1, now)
	assert.Contains(t, errMsg, "Future interview_date")

	errMsg, _ = checkDate(String("2030-01-15"), "interview_date", 1, now)
	assert.Contains(t, errMsg, "Future interview_date")

	errMsg, _ = checkDate(String("15.01.2024"), "interview_date", 4, now)
	assert.Contains(t, errMsg, "Invalid interview_date in row 4")

	errMsg, _ = checkDate(Null(), "interview_date", 1, now)
	assert.Contains(t, errMsg, "Missing interview_date")
}

func TestInvalidEnumValues(t *testing.T) {
	table, err := NewTable([]string{"sex"})
	require.NoError(t, err)
	for _, s := range []string{"M", "F", "X", "M", "X", "unknown"} {
		table.AppendRow([]string{s})
	}

	invalid := invalidEnumValues(table, "sex", []string{"M", "F"})
	assert.Equal(t, []string{"X", "unknown"}, invalid, "distinct offenders in first-seen order")
}

func TestOutOfRangeRows(t *testing.T) {
	table, err := NewTable([]string{"test_score"})
	require.NoError(t, err)
	for _, s := range []string{"0", "55", "100", "101", "-1", "", "abc"} {
		table.AppendRow([]string{s})
	}

	rows := outOfRangeRows(table, "test_score", 0, 100)
	assert.Equal(t, []int{4, 5, 7}, rows, "nulls are skipped, non-numeric counts as violation")
}

func TestFileExt(t *testing.T) {
	assert.Equal(t, ".csv", fileExt("data.csv"))
	assert.Equal(t, ".xlsx", fileExt("DATA.XLSX"))
	assert.Equal(t, ".nii.gz", fileExt("sub-001_T1w.nii.gz"))
	assert.Equal(t, ".set", fileExt("/path/to/sub001.set"))
}
