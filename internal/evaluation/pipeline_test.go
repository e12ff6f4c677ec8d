package evaluation

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/environment-evaluator/internal/parsing"
	"github.com/jonathan/environment-evaluator/internal/types"
)

const koreanResponse = "점수: 85\n1. 주요 문제점: 소음이 심함 2.\n2. 개선 필요 핵심 영역: 차음 설계 개선"

func TestBuildRecord(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		answers  map[string]any
		expected *types.EvaluationRecord
	}{
		{
			name:    "korean response with sub-score",
			text:    koreanResponse,
			answers: map[string]any{"noise": "심함", "mcqScore": float64(10)},
			expected: &types.EvaluationRecord{
				Score:            95,
				Problem:          "소음이 심함",
				ImprovementAreas: "차음 설계 개선",
			},
		},
		{
			name:     "no score label and no sub-score",
			text:     "환경이 전반적으로 양호합니다.",
			answers:  map[string]any{"noise": "조용함"},
			expected: &types.EvaluationRecord{},
		},
		{
			name:     "sub-score only",
			text:     "",
			answers:  map[string]any{"mcqScores": float64(30)},
			expected: &types.EvaluationRecord{Score: 30},
		},
		{
			name:     "non-numeric sub-score counts as zero",
			text:     "점수: 50",
			answers:  map[string]any{"mcqScore": "ten"},
			expected: &types.EvaluationRecord{Score: 50},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BuildRecord(tt.text, types.NewEvaluationInput(tt.answers))
			if diff := cmp.Diff(tt.expected, got); diff != "" {
				t.Errorf("BuildRecord() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestPipeline_Evaluate(t *testing.T) {
	store := newMemoryStore()
	p := NewPipeline(store, nil)

	id, err := p.Evaluate(context.Background(), koreanResponse, types.NewEvaluationInput(map[string]any{"mcqScore": 10}))
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)
	assert.Equal(t, 1, store.inserts)

	stored := store.records[id]
	assert.Equal(t, 95, stored.Score)
	assert.Equal(t, "소음이 심함", stored.Problem)
	assert.Equal(t, "차음 설계 개선", stored.ImprovementAreas)
}

func TestPipeline_Evaluate_InsertsEveryCall(t *testing.T) {
	store := newMemoryStore()
	p := NewPipeline(store, nil)
	input := types.NewEvaluationInput(nil)

	first, err := p.Evaluate(context.Background(), koreanResponse, input)
	require.NoError(t, err)
	second, err := p.Evaluate(context.Background(), koreanResponse, input)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.Equal(t, 2, store.inserts)
	assert.Len(t, store.records, 2)
}

func TestPipeline_Evaluate_StorageFailure(t *testing.T) {
	store := newMemoryStore()
	store.insertErr = errConnectionRefused
	p := NewPipeline(store, nil)

	id, err := p.Evaluate(context.Background(), koreanResponse, types.NewEvaluationInput(nil))
	require.Error(t, err)
	assert.Zero(t, id)
	assert.Empty(t, store.records)

	var storageErr *StorageError
	require.ErrorAs(t, err, &storageErr)
	assert.Equal(t, "insert", storageErr.Op)
	assert.True(t, errors.Is(err, errConnectionRefused))
}

func TestPipeline_Evaluate_Concurrent(t *testing.T) {
	store := newMemoryStore()
	p := NewPipeline(store, nil)

	const n = 25
	var wg sync.WaitGroup
	ids := make(chan int64, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id, err := p.Evaluate(context.Background(), koreanResponse, types.NewEvaluationInput(nil))
			assert.NoError(t, err)
			ids <- id
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[int64]bool)
	for id := range ids {
		assert.False(t, seen[id], "duplicate id %d", id)
		seen[id] = true
	}
	assert.Len(t, seen, n)
}

func TestRoundTrip(t *testing.T) {
	store := newMemoryStore()
	p := NewPipeline(store, nil)
	l := NewLookup(store, nil)

	texts := []string{
		koreanResponse,
		"Score: 40\nMain problems: 1. glare 2.\nKey improvement areas: blinds",
		"nothing recognizable",
		"2. 개선 필요 핵심 영역: 환기 개선",
	}
	for _, text := range texts {
		for _, mcq := range []any{nil, float64(0), float64(7), "x"} {
			answers := map[string]any{"noise": "보통"}
			if mcq != nil {
				answers["mcqScore"] = mcq
			}
			input := types.NewEvaluationInput(answers)

			id, err := p.Evaluate(context.Background(), text, input)
			require.NoError(t, err)

			got, err := l.GetByID(context.Background(), id)
			require.NoError(t, err)
			require.NotNil(t, got)

			sections := parsing.ExtractSections(text)
			want := &types.EvaluationRecord{
				ID:               id,
				Score:            parsing.CombineScore(text, input.MCQScore()),
				Problem:          sections.Problem,
				ImprovementAreas: sections.ImprovementAreas,
			}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("round trip mismatch for %q (-want +got):\n%s", text, diff)
			}
		}
	}
}
