package prompts

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/environment-evaluator/internal/types"
)

func TestBuildEvaluationPrompt(t *testing.T) {
	prompt, err := BuildEvaluationPrompt(map[string]any{
		"noise":    "  밤마다 도로 소음이 심함 ",
		"lighting": "낮에도 어두움",
		"mcqScore": float64(10),
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(prompt, MustGet(InstructionsFile, "preamble")))
	assert.Contains(t, prompt, "밤마다 도로 소음이 심함\n")
	assert.Contains(t, prompt, "낮에도 어두움")
	assert.Contains(t, prompt, "0에서 100 사이의 정수")
	assert.NotContains(t, prompt, "{{.")
	assert.NotContains(t, prompt, "mcqScore")

	// sorted key order: lighting before noise
	assert.Less(t, strings.Index(prompt, "낮에도 어두움"), strings.Index(prompt, "밤마다 도로 소음이 심함"))
}

func TestBuildEvaluationPrompt_UnknownKey(t *testing.T) {
	_, err := BuildEvaluationPrompt(map[string]any{"noise": "x", "parking": "y"})

	var validationErr *types.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "parking", validationErr.Field)
}

func TestBuildEvaluationPrompt_OnlySubScore(t *testing.T) {
	_, err := BuildEvaluationPrompt(map[string]any{"mcqScore": 10})

	var validationErr *types.ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func TestAnswerText(t *testing.T) {
	assert.Equal(t, "응답 없음", answerText(nil))
	assert.Equal(t, "조용함", answerText(" 조용함 "))
	assert.Equal(t, "3", answerText(float64(3)))
	assert.Equal(t, "true", answerText(true))
	assert.Equal(t, `["a","b"]`, answerText([]any{"a", "b"}))
}
