package cli

import (
	"context"
	"fmt"
	"sort"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/BartekS5/NDAV/internal/batch"
	"github.com/BartekS5/NDAV/internal/config"
	"github.com/BartekS5/NDAV/internal/report"
	"github.com/BartekS5/NDAV/pkg/database"
	"github.com/BartekS5/NDAV/pkg/logger"
)

type BatchOptions struct {
	SettingsFile string
	OutputDir    string
	Workers      int
}

func NewBatchCmd() *cobra.Command {
	opts := &BatchOptions{}

	cmd := &cobra.Command{
		Use:   "batch <collections-root>",
		Short: "Validate and split every collection under a root directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return runBatch(opts, args[0])
		},
	}

	cmd.Flags().StringVarP(&opts.SettingsFile, "settings", "s", "", "Path to the settings JSON file")
	cmd.Flags().StringVarP(&opts.OutputDir, "output", "o", "output", "Output root for chunked files")
	cmd.Flags().IntVarP(&opts.Workers, "workers", "w", 0, "Worker pool size (defaults to available CPUs)")
	return cmd
}

func runBatch(opts *BatchOptions, rootDir string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	settingsFile := opts.SettingsFile
	if settingsFile == "" {
		settingsFile = cfg.SettingsFile
	}
	settings, err := config.LoadSettings(settingsFile)
	if err != nil {
		return err
	}

	level, err := zerolog.ParseLevel(settings.Logging.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	if err := logger.InitLogger(settings.Logging.File, level); err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer logger.Close()

	var store report.Store = report.NoopStore{}
	if cfg.MongoConnString != "" {
		client, err := database.ConnectMongo(cfg.MongoConnString)
		if err != nil {
			return err
		}
		defer client.Disconnect(context.Background())
		store = report.NewMongoStore(client, database.ReportDatabase)
		logger.Info("Batch reports will be stored in MongoDB")
	}

	processor := batch.NewProcessor(settings, store)
	if opts.Workers > 0 {
		processor.Workers = opts.Workers
	}

	results, err := processor.ProcessAll(context.Background(), rootDir, opts.OutputDir)
	if err != nil {
		return err
	}

	ids := make([]string, 0, len(results))
	for id := range results {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	failed := 0
	for _, id := range ids {
		res := results[id]
		switch {
		case res.Err != nil:
			failed++
			fmt.Printf("%s: ERROR (%v)\n", id, res.Err)
		case !res.Summary.AllValid:
			failed++
			fmt.Printf("%s: FAILED (%d error(s), %d warning(s), %d split(s))\n",
				id, res.Summary.TotalErrors, res.Summary.TotalWarnings, len(res.Splits))
		default:
			fmt.Printf("%s: PASSED (%d warning(s), %d split(s))\n",
				id, res.Summary.TotalWarnings, len(res.Splits))
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d collection(s) failed", failed, len(results))
	}
	return nil
}
