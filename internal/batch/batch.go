// Package batch drives validation and large-file splitting across many
// collection directories.
package batch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/BartekS5/NDAV/internal/report"
	"github.com/BartekS5/NDAV/internal/validate"
	"github.com/BartekS5/NDAV/pkg/chunker"
	"github.com/BartekS5/NDAV/pkg/logger"
	"github.com/BartekS5/NDAV/pkg/models"
)

// SplitOutcome records one oversized file routed to the chunker.
type SplitOutcome struct {
	DataType string         `json:"data_type"`
	FileName string         `json:"file_name"`
	Result   chunker.Result `json:"result"`
}

// CollectionResult is the per-collection outcome of a batch run.
type CollectionResult struct {
	Summary *validate.CollectionSummary `json:"summary"`
	Splits  []SplitOutcome              `json:"splits"`
	Err     error                       `json:"-"`
}

// Processor runs collections through validation and splitting with a
// bounded worker pool. Tasks share nothing mutable; each owns its own
// tables and results and reports back through return values.
type Processor struct {
	Settings *models.Settings
	Chunker  *chunker.Handler
	Reports  report.Store
	Workers  int
}

func NewProcessor(settings *models.Settings, store report.Store) *Processor {
	if settings == nil {
		settings = models.DefaultSettings()
	}
	if store == nil {
		store = report.NoopStore{}
	}
	return &Processor{
		Settings: settings,
		Chunker:  chunker.NewHandlerWithThreshold(settings.SizeLimitBytes()),
		Reports:  store,
		Workers:  runtime.NumCPU(),
	}
}

// ProcessAll discovers collection directories (names matching the C####
// pattern) under rootDir and processes them concurrently. Results are
// keyed by collection ID; a fault in one collection degrades only that
// collection's entry.
func (p *Processor) ProcessAll(ctx context.Context, rootDir, outputDir string) (map[string]*CollectionResult, error) {
	entries, err := os.ReadDir(rootDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read collections root '%s': %w", rootDir, err)
	}

	var ids []string
	for _, e := range entries {
		if e.IsDir() && validate.ValidCollectionID(e.Name()) {
			ids = append(ids, e.Name())
		}
	}

	results := make(map[string]*CollectionResult, len(ids))
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	workers := p.Workers
	if workers < 1 {
		workers = 1
	}
	g.SetLimit(workers)

	for _, id := range ids {
		id := id
		g.Go(func() error {
			res := p.ProcessCollection(ctx, id, filepath.Join(rootDir, id), outputDir)
			mu.Lock()
			results[id] = res
			mu.Unlock()
			return nil
		})
	}

	_ = g.Wait()
	return results, nil
}

// ProcessCollection validates one collection and splits its oversized raw
// files. Subject identity must be trustworthy before the other tables are
// interpreted, so a failed subject validation halts the remaining data
// types for this collection.
func (p *Processor) ProcessCollection(ctx context.Context, collectionID, dir, outputDir string) (result *CollectionResult) {
	defer func() {
		if r := recover(); r != nil {
			result = &CollectionResult{Err: fmt.Errorf("processing fault in %s: %v", collectionID, r)}
		}
	}()

	subjectValidator, err := validate.New(validate.Subject, collectionID)
	if err != nil {
		return &CollectionResult{Err: err}
	}
	subjectResult := subjectValidator.Validate(filepath.Join(dir, "metadata", "research_subject.csv"), "")

	var summary *validate.CollectionSummary
	if !subjectResult.IsValid {
		logger.Warnf("Subject validation failed for %s, skipping remaining data types", collectionID)
		summary = &validate.CollectionSummary{
			CollectionID:  collectionID,
			AllValid:      false,
			TotalErrors:   len(subjectResult.Errors),
			TotalWarnings: len(subjectResult.Warnings),
			Results:       map[validate.DataType]validate.ValidationResult{validate.Subject: subjectResult},
		}
	} else {
		rest := []validate.DataType{validate.Demographics, validate.Behavioral, validate.EEG, validate.MRI}
		summary, err = validate.ValidateTypes(collectionID, dir, rest)
		if err != nil {
			return &CollectionResult{Err: err}
		}
		summary.Results[validate.Subject] = subjectResult
		summary.AllValid = summary.AllValid && subjectResult.IsValid
		summary.TotalErrors += len(subjectResult.Errors)
		summary.TotalWarnings += len(subjectResult.Warnings)
	}

	result = &CollectionResult{Summary: summary}
	result.Splits = p.splitOversized(collectionID, dir, outputDir)

	if err := p.Reports.Save(ctx, report.NewReport(summary)); err != nil {
		logger.Errorf("Failed to store report for %s: %v", collectionID, err)
	}

	logger.Infof("Collection %s processed: valid=%v errors=%d warnings=%d splits=%d",
		collectionID, summary.AllValid, summary.TotalErrors, summary.TotalWarnings, len(result.Splits))
	return result
}

// splitOversized scans the raw-data subdirectories for files over the
// size threshold and splits each into its own chunk directory under the
// output root. Input collections are never mutated.
func (p *Processor) splitOversized(collectionID, dir, outputDir string) []SplitOutcome {
	var splits []SplitOutcome
	for _, dataType := range []string{"eeg", "mri"} {
		allowed := p.Settings.Validation.AllowedExtensions[dataType]

		entries, err := os.ReadDir(filepath.Join(dir, dataType))
		if err != nil {
			continue
		}
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			path := filepath.Join(dir, dataType, e.Name())
			if !hasAllowedExt(e.Name(), allowed) || !p.Chunker.NeedsSplitting(path) {
				continue
			}

			stem := e.Name()[:len(e.Name())-len(rawExt(e.Name()))]
			chunkDir := filepath.Join(outputDir, collectionID, dataType, stem)
			logger.Infof("Splitting oversized file %s into %s", path, chunkDir)
			splits = append(splits, SplitOutcome{
				DataType: dataType,
				FileName: e.Name(),
				Result:   p.Chunker.Split(path, chunkDir),
			})
		}
	}
	return splits
}

// rawExt returns the lower-cased extension, treating compressed NIfTI
// (.nii.gz) as a single extension so it matches the allowed-extension
// lists.
func rawExt(name string) string {
	lower := strings.ToLower(name)
	if strings.HasSuffix(lower, ".nii.gz") {
		return ".nii.gz"
	}
	return filepath.Ext(lower)
}

func hasAllowedExt(name string, allowed []string) bool {
	ext := rawExt(name)
	for _, a := range allowed {
		if ext == a {
			return true
		}
	}
	return false
}
