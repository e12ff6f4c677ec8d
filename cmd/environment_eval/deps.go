package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/jonathan/environment-evaluator/internal/db"
	"github.com/jonathan/environment-evaluator/internal/llm"
	"github.com/jonathan/environment-evaluator/internal/observability"
	"github.com/jonathan/environment-evaluator/internal/types"
)

// openStore connects to the configured database.
func openStore(ctx context.Context) (*db.DB, error) {
	if err := appConfig.RequireDatabase(); err != nil {
		return nil, err
	}
	return db.Connect(ctx, appConfig.DatabaseURL, db.PoolOptions{
		MaxConns:        appConfig.DBMaxConns,
		MinConns:        appConfig.DBMinConns,
		MaxConnLifetime: appConfig.DBMaxConnLifetime,
	})
}

// newLLMClient creates the configured model client.
func newLLMClient(ctx context.Context) (llm.Client, error) {
	if err := appConfig.RequireLLM(); err != nil {
		return nil, err
	}
	cfg, err := appConfig.LLMConfig()
	if err != nil {
		return nil, err
	}
	client, err := llm.NewClient(ctx, cfg, appConfig.GeminiAPIKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}
	return client, nil
}

// writeJSON prints v as indented JSON.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

// printRecord writes rec in the selected output format.
func printRecord(w io.Writer, rec *types.EvaluationRecord) error {
	if outputFormat == "text" {
		observability.NewPrinter(w).PrintEvaluation(rec)
		return nil
	}
	return writeJSON(w, rec)
}
