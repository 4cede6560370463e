package cli

import (
	"github.com/spf13/cobra"

	"github.com/BartekS5/NDAV/internal/validate"
)

type ValidateOptions struct {
	CollectionID string
	DataDir      string
	SQLQuery     string
}

func NewValidateCmd() *cobra.Command {
	opts := &ValidateOptions{}

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate NDA data files",
	}

	cmd.PersistentFlags().StringVarP(&opts.CollectionID, "collection", "c", "", "Collection ID (C#### pattern)")
	cmd.PersistentFlags().StringVarP(&opts.DataDir, "data-dir", "d", "", "Directory containing referenced raw data files")
	cmd.MarkPersistentFlagRequired("collection")

	for _, dt := range validate.AllDataTypes() {
		dt := dt
		sub := &cobra.Command{
			Use:   dt.String() + " <file>",
			Short: "Validate a " + dt.String() + " data file",
			Args:  cobra.ExactArgs(1),
			RunE: func(c *cobra.Command, args []string) error {
				return runValidateFile(opts, dt, args[0])
			},
		}
		sub.Flags().StringVar(&opts.SQLQuery, "sql-query", "", "Validate the result of a SQL query instead of a file (pass '-' as file)")
		cmd.AddCommand(sub)
	}

	collectionCmd := &cobra.Command{
		Use:   "collection <dir>",
		Short: "Validate every data type present in a collection directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return runValidateCollection(opts, args[0])
		},
	}
	cmd.AddCommand(collectionCmd)

	return cmd
}
