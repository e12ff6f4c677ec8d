package evaluation

import (
	"context"

	"go.uber.org/zap"

	"github.com/jonathan/environment-evaluator/internal/parsing"
	"github.com/jonathan/environment-evaluator/internal/types"
)

// Pipeline extracts, scores and stores model evaluations.
type Pipeline struct {
	store  Store
	logger *zap.Logger
}

// NewPipeline creates a pipeline backed by store. A nil logger disables logging.
func NewPipeline(store Store, logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{store: store, logger: logger}
}

// BuildRecord computes the record for a model response without storing it.
// It never fails; unrecognized text yields empty sections and no model score.
func BuildRecord(modelText string, input types.EvaluationInput) *types.EvaluationRecord {
	sections := parsing.ExtractSections(modelText)
	return &types.EvaluationRecord{
		Score:            parsing.CombineScore(modelText, input.MCQScore()),
		Problem:          sections.Problem,
		ImprovementAreas: sections.ImprovementAreas,
	}
}

// Evaluate stores one record for modelText and returns its ID.
// Every call inserts a new row. Store failures are returned as *StorageError.
func (p *Pipeline) Evaluate(ctx context.Context, modelText string, input types.EvaluationInput) (int64, error) {
	rec := BuildRecord(modelText, input)

	id, err := p.store.InsertEvaluation(ctx, rec)
	if err != nil {
		p.logger.Error("failed to store evaluation", zap.Error(err))
		return 0, &StorageError{Op: "insert", Cause: err}
	}

	p.logger.Info("evaluation stored",
		zap.Int64("id", id),
		zap.Int("score", rec.Score),
		zap.Int("model_score", parsing.ModelScore(modelText)),
		zap.Int("mcq_score", input.MCQScore()))
	p.logger.Debug("extracted sections",
		zap.Int64("id", id),
		zap.String("problem", rec.Problem),
		zap.String("improvement_areas", rec.ImprovementAreas))

	return id, nil
}
