package main

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/environment-evaluator/internal/evaluation"
	"github.com/jonathan/environment-evaluator/internal/schemas"
	"github.com/jonathan/environment-evaluator/internal/types"
)

// recordingEvaluator assigns ids from the model text and tracks concurrency.
type recordingEvaluator struct {
	mu       sync.Mutex
	ids      map[string]int64
	failOn   string
	inFlight atomic.Int32
	peak     atomic.Int32
	calls    atomic.Int32
}

func (r *recordingEvaluator) Evaluate(_ context.Context, modelText string, _ types.EvaluationInput) (int64, error) {
	r.calls.Add(1)
	n := r.inFlight.Add(1)
	defer r.inFlight.Add(-1)
	for {
		peak := r.peak.Load()
		if n <= peak || r.peak.CompareAndSwap(peak, n) {
			break
		}
	}
	time.Sleep(5 * time.Millisecond)

	if modelText == r.failOn {
		return 0, &evaluation.StorageError{Op: "insert", Cause: errors.New("connection reset")}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.ids[modelText], nil
}

func TestImportEntries_PreservesOrder(t *testing.T) {
	ev := &recordingEvaluator{ids: map[string]int64{"a": 11, "b": 12, "c": 13, "d": 14}}
	entries := []importEntry{{Response: "d"}, {Response: "a"}, {Response: "c"}, {Response: "b"}}

	ids, err := importEntries(context.Background(), ev, entries, 4)
	require.NoError(t, err)
	assert.Equal(t, []int64{14, 11, 13, 12}, ids)
}

func TestImportEntries_RespectsLimit(t *testing.T) {
	ev := &recordingEvaluator{ids: map[string]int64{}}
	entries := make([]importEntry, 20)

	_, err := importEntries(context.Background(), ev, entries, 3)
	require.NoError(t, err)
	assert.LessOrEqual(t, ev.peak.Load(), int32(3))
	assert.Equal(t, int32(20), ev.calls.Load())
}

func TestImportEntries_ZeroLimitRunsSerially(t *testing.T) {
	ev := &recordingEvaluator{ids: map[string]int64{}}

	_, err := importEntries(context.Background(), ev, make([]importEntry, 5), 0)
	require.NoError(t, err)
	assert.Equal(t, int32(1), ev.peak.Load())
}

func TestImportEntries_StopsOnFailure(t *testing.T) {
	ev := &recordingEvaluator{ids: map[string]int64{"ok": 1}, failOn: "bad"}
	entries := []importEntry{{Response: "ok"}, {Response: "bad"}, {Response: "ok"}}

	ids, err := importEntries(context.Background(), ev, entries, 1)
	require.Error(t, err)
	assert.Nil(t, ids)
	assert.Contains(t, err.Error(), "entry 1")

	var storageErr *evaluation.StorageError
	assert.ErrorAs(t, err, &storageErr)
}

func TestLoadImportEntries(t *testing.T) {
	path := writeFile(t, "entries.json", `[
		{"response": "점수: 70", "answers": {"noise": "quiet", "mcqScore": 5}},
		{"response": "Score: 40"}
	]`)

	entries, err := loadImportEntries(path)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "점수: 70", entries[0].Response)
	assert.Equal(t, 5, types.NewEvaluationInput(entries[0].Answers).MCQScore())
	assert.Nil(t, entries[1].Answers)

	_, err = loadImportEntries(writeFile(t, "bad.json", `{"response": "x"}`))
	var validationErr *schemas.ValidationError
	assert.ErrorAs(t, err, &validationErr)

	_, err = loadImportEntries(writeFile(t, "extra.json", `[{"response": "x", "score": 90}]`))
	assert.ErrorAs(t, err, &validationErr)

	_, err = loadImportEntries(writeFile(t, "truncated.json", `[{"response": `))
	assert.Error(t, err)
}

func TestLoadImportEntries_RejectsUnknownAnswerKeys(t *testing.T) {
	path := writeFile(t, "entries.json", `[
		{"response": "점수: 70", "answers": {"noise": "quiet"}},
		{"response": "점수: 40", "answers": {"noise": "loud", "password": "x"}}
	]`)

	entries, err := loadImportEntries(path)
	require.Error(t, err)
	assert.Nil(t, entries)
	assert.Contains(t, err.Error(), "entry 1")

	var validation *types.ValidationError
	assert.ErrorAs(t, err, &validation)
}
