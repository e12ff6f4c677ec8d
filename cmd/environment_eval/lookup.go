package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/environment-evaluator/internal/evaluation"
)

var lookupCmd = &cobra.Command{
	Use:   "lookup",
	Short: "Print a stored evaluation",
	RunE:  runLookup,
}

var lookupID string

func init() {
	lookupCmd.Flags().StringVar(&lookupID, "id", "", "Evaluation identifier (required)")
	if err := lookupCmd.MarkFlagRequired("id"); err != nil {
		panic(fmt.Sprintf("failed to mark id flag as required: %v", err))
	}
	rootCmd.AddCommand(lookupCmd)
}

func runLookup(cmd *cobra.Command, _ []string) error {
	// Reject malformed ids before connecting.
	if _, err := evaluation.ParseID(lookupID); err != nil {
		return err
	}

	database, err := openStore(cmd.Context())
	if err != nil {
		return err
	}
	defer database.Close()

	rec, err := evaluation.NewLookup(database, logger).Get(cmd.Context(), lookupID)
	if err != nil {
		return err
	}
	if rec == nil {
		return fmt.Errorf("evaluation %s not found", lookupID)
	}
	return printRecord(cmd.OutOrStdout(), rec)
}
