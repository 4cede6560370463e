package cli

import (
	"fmt"

	"github.com/BartekS5/NDAV/internal/config"
	"github.com/BartekS5/NDAV/internal/validate"
	"github.com/BartekS5/NDAV/pkg/database"
	"github.com/BartekS5/NDAV/pkg/logger"
)

func runValidateFile(opts *ValidateOptions, dataType validate.DataType, filePath string) error {
	validator, err := validate.New(dataType, opts.CollectionID)
	if err != nil {
		return err
	}

	var result validate.ValidationResult
	if opts.SQLQuery != "" {
		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}
		if cfg.SQLConnString == "" {
			return fmt.Errorf("SQL_CONNECTION_STRING environment variable not set")
		}
		db, err := database.ConnectSQL(cfg.SQLConnString)
		if err != nil {
			return err
		}
		defer db.Close()

		table, err := validate.TableFromSQL(db, opts.SQLQuery)
		if err != nil {
			return fmt.Errorf("failed to load records from SQL: %w", err)
		}
		result = validator.ValidateTable(table, opts.DataDir)
	} else {
		result = validator.Validate(filePath, opts.DataDir)
	}

	printResult(dataType.String(), result)
	if !result.IsValid {
		return fmt.Errorf("%s validation failed with %d error(s)", dataType, len(result.Errors))
	}
	return nil
}

func runValidateCollection(opts *ValidateOptions, dir string) error {
	summary, err := validate.ValidateCollection(opts.CollectionID, dir)
	if err != nil {
		return err
	}

	for _, dt := range validate.AllDataTypes() {
		if result, ok := summary.Results[dt]; ok {
			printResult(dt.String(), result)
		}
	}
	logger.Infof("Collection %s: valid=%v errors=%d warnings=%d",
		summary.CollectionID, summary.AllValid, summary.TotalErrors, summary.TotalWarnings)

	if !summary.AllValid {
		return fmt.Errorf("collection %s failed validation", summary.CollectionID)
	}
	return nil
}

func printResult(name string, result validate.ValidationResult) {
	if result.IsValid {
		fmt.Printf("%s: PASSED (%d warning(s))\n", name, len(result.Warnings))
	} else {
		fmt.Printf("%s: FAILED\n", name)
	}
	for _, e := range result.Errors {
		fmt.Printf("  error: %s\n", e)
	}
	for _, w := range result.Warnings {
		fmt.Printf("  warning: %s\n", w)
	}
}
