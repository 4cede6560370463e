package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/BartekS5/NDAV/internal/config"
	"github.com/BartekS5/NDAV/pkg/chunker"
	"github.com/BartekS5/NDAV/pkg/logger"
)

func NewSplitCmd() *cobra.Command {
	var settingsFile string

	cmd := &cobra.Command{
		Use:   "split <file> <output-dir>",
		Short: "Split an oversized data file into transferable chunks",
		Args:  cobra.ExactArgs(2),
		RunE: func(c *cobra.Command, args []string) error {
			settings, err := config.LoadSettings(settingsFile)
			if err != nil {
				return err
			}

			handler := chunker.NewHandlerWithThreshold(settings.SizeLimitBytes())
			result := handler.Split(args[0], args[1])

			for _, w := range result.Warnings {
				logger.Warn(w)
			}
			for _, e := range result.Errors {
				logger.Error(e)
			}
			if !result.Success {
				return fmt.Errorf("split failed for %s", args[0])
			}

			logger.Infof("Split %s into %d chunk(s)", args[0], len(result.Chunks))
			for _, chunk := range result.Chunks {
				fmt.Printf("%s  %s\n", result.Checksums[chunk], chunk)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&settingsFile, "settings", "s", "", "Path to the settings JSON file")
	return cmd
}

func NewMergeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "merge <chunk-dir> <output-file>",
		Short: "Reassemble a file from its chunks",
		Args:  cobra.ExactArgs(2),
		RunE: func(c *cobra.Command, args []string) error {
			handler := chunker.NewHandler()
			result := handler.Merge(args[0], args[1])

			for _, e := range result.Errors {
				logger.Error(e)
			}
			if !result.Success {
				return fmt.Errorf("merge failed for %s", args[0])
			}

			logger.Infof("Merged %d chunk(s) into %s", len(result.Chunks), args[1])
			return nil
		},
	}
	return cmd
}
