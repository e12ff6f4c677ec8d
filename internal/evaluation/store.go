// Package evaluation turns model responses into stored evaluation records
// and serves them back by identifier.
package evaluation

import (
	"context"

	"github.com/jonathan/environment-evaluator/internal/types"
)

// Store persists evaluation records. *db.DB implements it.
type Store interface {
	// InsertEvaluation stores rec (ignoring rec.ID) and returns the new ID.
	InsertEvaluation(ctx context.Context, rec *types.EvaluationRecord) (int64, error)
	// GetEvaluation returns the record, or nil, nil if no such row exists.
	GetEvaluation(ctx context.Context, id int64) (*types.EvaluationRecord, error)
}
