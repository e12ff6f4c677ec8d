package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jonathan/environment-evaluator/internal/types"
)

// The improvement areas are kept in the "feedback" column of the
// environment table.
const (
	insertEvaluationSQL = `INSERT INTO environment (score, problem, feedback)
		 VALUES ($1, $2, $3)
		 RETURNING environment_id`

	selectEvaluationSQL = `SELECT environment_id, score, problem, feedback
		 FROM environment WHERE environment_id = $1`
)

// InsertEvaluation stores a new evaluation and returns its assigned ID.
// rec.ID is ignored.
func (db *DB) InsertEvaluation(ctx context.Context, rec *types.EvaluationRecord) (int64, error) {
	var id int64
	err := db.pool.QueryRow(ctx, insertEvaluationSQL,
		rec.Score, rec.Problem, rec.ImprovementAreas,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert evaluation: %w", err)
	}
	return id, nil
}

// GetEvaluation retrieves an evaluation by ID.
// Returns nil, nil if the evaluation does not exist.
func (db *DB) GetEvaluation(ctx context.Context, id int64) (*types.EvaluationRecord, error) {
	var rec types.EvaluationRecord
	err := db.pool.QueryRow(ctx, selectEvaluationSQL, id).
		Scan(&rec.ID, &rec.Score, &rec.Problem, &rec.ImprovementAreas)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get evaluation %d: %w", id, err)
	}
	return &rec, nil
}
