package validate

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// CollectionSummary aggregates per-type validation results for one
// collection directory.
type CollectionSummary struct {
	CollectionID  string                        `json:"collection_id"`
	AllValid      bool                          `json:"all_valid"`
	TotalErrors   int                           `json:"total_errors"`
	TotalWarnings int                           `json:"total_warnings"`
	Results       map[DataType]ValidationResult `json:"results"`
}

// Expected relative locations of each data type inside a collection
// directory. Behavioral data is globbed since assessments ship as
// multiple files.
const (
	subjectRelPath      = "metadata/research_subject.csv"
	demographicsRelPath = "metadata/demographics.csv"
	eegMetadataRelPath  = "eeg/metadata.csv"
	mriMetadataRelPath  = "mri/metadata.csv"
	behavioralRelDir    = "behavioral"
)

type validationTask struct {
	dataType DataType
	files    []string
	dataDir  string
}

// ValidateCollection discovers which data types are present under dir and
// validates each, fanning the independent tasks out concurrently. Results
// are keyed by data type so the merge is deterministic regardless of
// completion order.
func ValidateCollection(collectionID, dir string) (*CollectionSummary, error) {
	return ValidateTypes(collectionID, dir, AllDataTypes())
}

// ValidateTypes is ValidateCollection restricted to a subset of data
// types. Batch automation uses it to skip the remaining types once
// subject validation has failed.
func ValidateTypes(collectionID, dir string, types []DataType) (*CollectionSummary, error) {
	if !ValidCollectionID(collectionID) {
		return nil, fmt.Errorf("invalid collection ID '%s': must match C#### pattern", collectionID)
	}

	tasks := discoverTasks(dir, types)

	type keyed struct {
		dataType DataType
		result   ValidationResult
	}
	resultCh := make(chan keyed, len(tasks))

	for _, task := range tasks {
		go func(task validationTask) {
			// A fault in one validator degrades only its own
			// result, never sibling tasks.
			defer func() {
				if r := recover(); r != nil {
					resultCh <- keyed{task.dataType, invalidResult(fmt.Sprintf("Validation error: %v", r))}
				}
			}()
			resultCh <- keyed{task.dataType, runTask(collectionID, task)}
		}(task)
	}

	summary := &CollectionSummary{
		CollectionID: collectionID,
		AllValid:     true,
		Results:      map[DataType]ValidationResult{},
	}
	for range tasks {
		k := <-resultCh
		summary.Results[k.dataType] = k.result
		summary.AllValid = summary.AllValid && k.result.IsValid
		summary.TotalErrors += len(k.result.Errors)
		summary.TotalWarnings += len(k.result.Warnings)
	}
	return summary, nil
}

// discoverTasks builds one validation task per data type that has an
// input file present. The subject metadata file is special: it is always
// scheduled so a missing file is reported rather than silently skipped.
func discoverTasks(dir string, types []DataType) []validationTask {
	var tasks []validationTask
	for _, dt := range types {
		switch dt {
		case Subject:
			tasks = append(tasks, validationTask{Subject, []string{filepath.Join(dir, subjectRelPath)}, ""})
		case Demographics:
			path := filepath.Join(dir, demographicsRelPath)
			if fileExists(path) {
				tasks = append(tasks, validationTask{Demographics, []string{path}, ""})
			}
		case Behavioral:
			if files := behavioralFiles(filepath.Join(dir, behavioralRelDir)); len(files) > 0 {
				tasks = append(tasks, validationTask{Behavioral, files, ""})
			}
		case EEG:
			path := filepath.Join(dir, eegMetadataRelPath)
			if fileExists(path) {
				tasks = append(tasks, validationTask{EEG, []string{path}, filepath.Dir(path)})
			}
		case MRI:
			path := filepath.Join(dir, mriMetadataRelPath)
			if fileExists(path) {
				tasks = append(tasks, validationTask{MRI, []string{path}, filepath.Dir(path)})
			}
		}
	}
	return tasks
}

// runTask validates every file of one task and merges the outcomes into
// a single per-type result. Error and warning messages are prefixed with
// the file name when the task covers more than one file.
func runTask(collectionID string, task validationTask) ValidationResult {
	v, err := New(task.dataType, collectionID)
	if err != nil {
		return invalidResult(err.Error())
	}

	if len(task.files) == 1 {
		return v.Validate(task.files[0], task.dataDir)
	}

	var errors, warnings []string
	metadata := map[string]interface{}{}
	for _, file := range task.files {
		res := v.Validate(file, task.dataDir)
		base := filepath.Base(file)
		for _, e := range res.Errors {
			errors = append(errors, fmt.Sprintf("%s: %s", base, e))
		}
		for _, w := range res.Warnings {
			warnings = append(warnings, fmt.Sprintf("%s: %s", base, w))
		}
		if res.IsValid {
			metadata[base] = res.Metadata
		}
	}
	if len(errors) > 0 {
		metadata = nil
	}
	return newResult(errors, warnings, metadata)
}

func behavioralFiles(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if ext := fileExt(e.Name()); ext == ".csv" || ext == ".xlsx" {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(files)
	return files
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
