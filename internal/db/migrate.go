package db

import (
	"context"
	"fmt"
)

// schemaStatements create the environment table. They are idempotent.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS environment (
		environment_id BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
		score          INTEGER NOT NULL CHECK (score >= 0),
		problem        TEXT    NOT NULL DEFAULT '',
		feedback       TEXT    NOT NULL DEFAULT ''
	)`,
}

// Migrate creates the schema if it does not already exist
func (db *DB) Migrate(ctx context.Context) error {
	for i, stmt := range schemaStatements {
		if _, err := db.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema statement %d: %w", i+1, err)
		}
	}
	return nil
}
