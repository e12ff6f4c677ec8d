// Package types provides type definitions for structured data used throughout the environment evaluator.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"math"

	"github.com/go-playground/validator/v10"
)

// Sub-score keys accepted alongside the survey answers.
const (
	MCQScoreKey       = "mcqScore"
	LegacyMCQScoreKey = "mcqScores"
)

// EvaluationInput holds the caller-supplied survey answers.
// Answers contains every key of the request body, including the sub-score key.
type EvaluationInput struct {
	Answers map[string]any
}

// NewEvaluationInput wraps a decoded request body.
func NewEvaluationInput(answers map[string]any) EvaluationInput {
	if answers == nil {
		answers = map[string]any{}
	}
	return EvaluationInput{Answers: answers}
}

// SurveyAnswers returns the answers without the sub-score keys.
func (in EvaluationInput) SurveyAnswers() map[string]any {
	out := make(map[string]any, len(in.Answers))
	for k, v := range in.Answers {
		if IsSubScoreKey(k) {
			continue
		}
		out[k] = v
	}
	return out
}

// MCQScore returns the multiple-choice sub-score.
// Absent or non-numeric values count as 0, fractions are truncated toward
// zero and negative values are treated as 0.
func (in EvaluationInput) MCQScore() int {
	raw, ok := in.Answers[MCQScoreKey]
	if !ok {
		raw, ok = in.Answers[LegacyMCQScoreKey]
	}
	if !ok {
		return 0
	}
	return coerceScore(raw)
}

// IsSubScoreKey reports whether key carries the multiple-choice sub-score.
func IsSubScoreKey(key string) bool {
	return key == MCQScoreKey || key == LegacyMCQScoreKey
}

func coerceScore(raw any) int {
	var f float64
	switch v := raw.(type) {
	case float64:
		f = v
	case float32:
		f = float64(v)
	case int:
		f = float64(v)
	case int32:
		f = float64(v)
	case int64:
		f = float64(v)
	case json.Number:
		parsed, err := v.Float64()
		if err != nil {
			return 0
		}
		f = parsed
	default:
		return 0
	}
	if math.IsNaN(f) || f <= 0 {
		return 0
	}
	if f >= math.MaxInt32 {
		return math.MaxInt32
	}
	return int(f)
}

// Sections holds the narrative parts extracted from a model response.
type Sections struct {
	Problem          string
	ImprovementAreas string
}

// EvaluationRecord is the persisted evaluation.
type EvaluationRecord struct {
	ID               int64  `json:"id"`
	Score            int    `json:"score"`
	Problem          string `json:"problem"`
	ImprovementAreas string `json:"improvementAreas"`
}

// EvaluateResponse is returned after an evaluation has been stored.
type EvaluateResponse struct {
	ID int64 `json:"id"`
}

// LookupRequest is the JSON body form of a lookup.
type LookupRequest struct {
	ID any `json:"id" validate:"required"`
}

// Validate validates the LookupRequest using the validator.
func (r *LookupRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
