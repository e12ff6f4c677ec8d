package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/environment-evaluator/internal/evaluation"
	"github.com/jonathan/environment-evaluator/internal/observability"
	"github.com/jonathan/environment-evaluator/internal/prompts"
	"github.com/jonathan/environment-evaluator/internal/schemas"
	"github.com/jonathan/environment-evaluator/internal/types"
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Store a batch of saved model responses",
	Long: "Reads a JSON array of {\"response\": \"...\", \"answers\": {...}} entries and stores " +
		"one evaluation per entry. Entries are processed concurrently; ids are printed in input order.",
	RunE: runImport,
}

var (
	importFile        string
	importConcurrency int
)

func init() {
	importCmd.Flags().StringVarP(&importFile, "in", "i", "", "Path to the entries JSON file (required)")
	importCmd.Flags().IntVarP(&importConcurrency, "concurrency", "c", 4, "Maximum concurrent inserts")
	if err := importCmd.MarkFlagRequired("in"); err != nil {
		panic(fmt.Sprintf("failed to mark in flag as required: %v", err))
	}
	rootCmd.AddCommand(importCmd)
}

// importEntry is one saved model response with the answers it was produced for.
type importEntry struct {
	Response string         `json:"response"`
	Answers  map[string]any `json:"answers"`
}

// evaluator stores one evaluation. *evaluation.Pipeline implements it.
type evaluator interface {
	Evaluate(ctx context.Context, modelText string, input types.EvaluationInput) (int64, error)
}

func runImport(cmd *cobra.Command, _ []string) error {
	entries, err := loadImportEntries(importFile)
	if err != nil {
		return err
	}

	database, err := openStore(cmd.Context())
	if err != nil {
		return err
	}
	defer database.Close()

	ids, err := importEntries(cmd.Context(), evaluation.NewPipeline(database, logger), entries, importConcurrency)
	if err != nil {
		return err
	}
	logger.Info("import finished", zap.Int("stored", len(ids)))
	if outputFormat == "text" {
		observability.NewPrinter(cmd.OutOrStdout()).PrintImportSummary(ids)
		return nil
	}
	return writeJSON(cmd.OutOrStdout(), map[string][]int64{"ids": ids})
}

// loadImportEntries reads and schema-checks an import file. Each entry's
// answers must pass the same key whitelist as a request body.
func loadImportEntries(path string) ([]importEntry, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read import file: %w", err)
	}

	schema, err := schemas.Load(schemas.ImportEntriesSchema)
	if err != nil {
		return nil, err
	}
	if err := schema.ValidateBytes(raw); err != nil {
		return nil, fmt.Errorf("invalid import file %s: %w", path, err)
	}

	var entries []importEntry
	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.UseNumber()
	if err := decoder.Decode(&entries); err != nil {
		return nil, fmt.Errorf("failed to parse import file %s: %w", path, err)
	}

	for i, entry := range entries {
		if entry.Answers == nil {
			continue
		}
		body, err := json.Marshal(entry.Answers)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		if err := prompts.ValidateAnswers(body); err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
	}
	return entries, nil
}

// importEntries stores every entry with at most limit inserts in flight.
// The first failure cancels the remaining entries.
func importEntries(ctx context.Context, ev evaluator, entries []importEntry, limit int) ([]int64, error) {
	if limit < 1 {
		limit = 1
	}
	ids := make([]int64, len(entries))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, entry := range entries {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			id, err := ev.Evaluate(ctx, entry.Response, types.NewEvaluationInput(entry.Answers))
			if err != nil {
				return fmt.Errorf("entry %d: %w", i, err)
			}
			ids[i] = id
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return ids, nil
}
