package validate

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// DataType enumerates the NDA data structures this tool can validate.
type DataType int

const (
	Subject DataType = iota
	Demographics
	Behavioral
	EEG
	MRI
)

var dataTypeNames = map[DataType]string{
	Subject:      "subject",
	Demographics: "demographics",
	Behavioral:   "behavioral",
	EEG:          "eeg",
	MRI:          "mri",
}

func (d DataType) String() string { return dataTypeNames[d] }

// AllDataTypes lists every data type in discovery order.
func AllDataTypes() []DataType {
	return []DataType{Subject, Demographics, Behavioral, EEG, MRI}
}

// ParseDataType maps a CLI/type name to its DataType.
func ParseDataType(name string) (DataType, error) {
	for dt, n := range dataTypeNames {
		if n == strings.ToLower(name) {
			return dt, nil
		}
	}
	return 0, fmt.Errorf("unknown data type: %s", name)
}

// Columns required for every NDA data structure.
var requiredCommonColumns = []string{
	"subjectkey",
	"src_subject_id",
	"interview_age",
	"interview_date",
	"sex",
}

// metadataExtensions are the only formats accepted for tabular input.
// Behavioral data additionally accepts spreadsheets.
var (
	metadataExtensions   = []string{".csv"}
	behavioralExtensions = []string{".csv", ".xlsx"}
)

var allowedSexValues = []string{"M", "F"}

// Validator validates one data type for one collection.
type Validator struct {
	dataType     DataType
	collectionID string
	now          func() time.Time
}

// New builds a validator for the given data type. The collection ID must
// match the archive's C#### pattern; anything else is a construction error.
func New(dataType DataType, collectionID string) (*Validator, error) {
	if !ValidCollectionID(collectionID) {
		return nil, fmt.Errorf("invalid collection ID '%s': must match C#### pattern", collectionID)
	}
	if _, known := dataTypeNames[dataType]; !known {
		return nil, fmt.Errorf("unknown data type: %d", dataType)
	}
	return &Validator{dataType: dataType, collectionID: collectionID, now: time.Now}, nil
}

func (v *Validator) DataType() DataType   { return v.dataType }
func (v *Validator) CollectionID() string { return v.collectionID }

// Validate checks one data file and returns a structured result. dataDir
// may be empty; when set, EEG/MRI validators resolve referenced raw files
// against it. Unexpected faults are converted into a failed result so the
// call always returns a value.
func (v *Validator) Validate(filePath, dataDir string) (result ValidationResult) {
	defer func() {
		if r := recover(); r != nil {
			result = invalidResult(fmt.Sprintf("Validation error: %v", r))
		}
	}()

	if structural := v.checkFileFormat(filePath); structural != "" {
		return invalidResult(structural)
	}

	table, err := ReadTable(filePath)
	if err != nil {
		return invalidResult(fmt.Sprintf("Error reading file: %v", err))
	}

	return v.ValidateTable(table, dataDir)
}

// ValidateTable runs the column and row rules against an already-loaded
// table. Used directly when records come from a SQL source instead of a
// file.
func (v *Validator) ValidateTable(table *Table, dataDir string) (result ValidationResult) {
	defer func() {
		if r := recover(); r != nil {
			result = invalidResult(fmt.Sprintf("Validation error: %v", r))
		}
	}()

	// Missing required columns short-circuit: row-level checks are
	// meaningless without the columns they inspect.
	if missing := table.MissingColumns(v.requiredColumns()); len(missing) > 0 {
		return invalidResult(fmt.Sprintf("Missing required columns: %s", strings.Join(missing, ", ")))
	}

	errors, warnings := v.checkCommonFields(table)

	var metadata map[string]interface{}
	switch v.dataType {
	case Subject:
		metadata = v.checkSubject(table, &errors, &warnings)
	case Demographics:
		metadata = v.checkDemographics(table, &errors, &warnings)
	case Behavioral:
		metadata = v.checkBehavioral(table, &errors, &warnings)
	case EEG:
		metadata = v.checkEEG(table, dataDir, &errors, &warnings)
	case MRI:
		metadata = v.checkMRI(table, dataDir, &errors, &warnings)
	}

	return newResult(errors, warnings, metadata)
}

// checkFileFormat runs the fail-fast structural checks: existence,
// non-empty content and an allowed extension for the data type.
func (v *Validator) checkFileFormat(filePath string) string {
	info, err := os.Stat(filePath)
	if err != nil {
		return fmt.Sprintf("File not found: %s", filePath)
	}
	if info.Size() == 0 {
		return fmt.Sprintf("File is empty: %s", filePath)
	}

	allowed := metadataExtensions
	if v.dataType == Behavioral {
		allowed = behavioralExtensions
	}
	if !extAllowed(filePath, allowed) {
		return fmt.Sprintf("Invalid file extension '%s'. Must be one of: %s",
			fileExt(filePath), strings.Join(allowed, ", "))
	}
	return ""
}

func (v *Validator) requiredColumns() []string {
	switch v.dataType {
	case EEG:
		return append(append([]string{}, requiredCommonColumns...), "experiment_id", "eeg_file")
	case MRI:
		return append(append([]string{}, requiredCommonColumns...), "image_file", "image_type", "acquisition_date")
	case Demographics:
		return append(append([]string{}, requiredCommonColumns...), "race", "ethnicity", "gender_identity")
	default:
		return requiredCommonColumns
	}
}

// checkCommonFields runs the rules shared by every data structure across
// all rows: GUID format, interview age range, interview date and sex.
// All violations are collected; nothing stops at the first failure.
func (v *Validator) checkCommonFields(table *Table) (errors, warnings []string) {
	now := v.now()

	for i := 0; i < table.NumRows(); i++ {
		rowNum := i + 1

		if guid := table.Value(i, "subjectkey"); !ValidGUID(guid) {
			errors = append(errors, fmt.Sprintf("Invalid GUID format in row %d: %s", rowNum, guid.Render()))
		}

		if msg := checkAge(table.Value(i, "interview_age"), rowNum); msg != "" {
			errors = append(errors, msg)
		}

		errMsg, warnMsg := checkDate(table.Value(i, "interview_date"), "interview_date", rowNum, now)
		if errMsg != "" {
			errors = append(errors, errMsg)
		}
		if warnMsg != "" {
			warnings = append(warnings, warnMsg)
		}

		if table.Value(i, "src_subject_id").IsNull() {
			errors = append(errors, fmt.Sprintf("Missing src_subject_id in row %d", rowNum))
		}
	}

	if invalid := invalidEnumValues(table, "sex", allowedSexValues); len(invalid) > 0 {
		errors = append(errors, fmt.Sprintf("Invalid sex values found: %s", strings.Join(invalid, ", ")))
	}

	return errors, warnings
}
