// Package cli handles the command-line interface logic
// using the Cobra library.
package cli

import (
	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "ndav",
		Short: "NDAV - validation and packaging tool for NDA submissions",
		Long: `NDAV is a CLI tool for validating research submission data against the
NDA schema and for splitting oversized data files into size-bounded chunks
before transfer to the archive.`,
		SilenceUsage: true,
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Help()
		},
	}

	rootCmd.AddCommand(NewValidateCmd())
	rootCmd.AddCommand(NewSplitCmd())
	rootCmd.AddCommand(NewMergeCmd())
	rootCmd.AddCommand(NewBatchCmd())

	return rootCmd
}
