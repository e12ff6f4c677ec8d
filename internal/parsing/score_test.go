package parsing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestModelScore(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected int
	}{
		{name: "korean label", input: koreanResponse, expected: 85},
		{name: "no space after colon", input: "점수:72", expected: 72},
		{name: "english label", input: "Score: 64\nMain problems: x", expected: 64},
		{name: "out of hundred", input: "점수: 85/100", expected: 85},
		{name: "lowercase english label", input: "score: 64", expected: 64},
		{name: "label is case sensitive", input: "SCORE: 64", expected: 0},
		{name: "no label", input: "환경이 쾌적합니다.", expected: 0},
		{name: "label without number", input: "점수: 없음", expected: 0},
		{name: "overflowing number", input: "점수: 99999999999999999999", expected: 0},
		{name: "first label wins", input: "Score: 10\n점수: 20", expected: 10},
		{name: "empty", input: "", expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ModelScore(tt.input))
		})
	}
}

func TestCombineScore(t *testing.T) {
	assert.Equal(t, 95, CombineScore(koreanResponse, 10))
	assert.Equal(t, 85, CombineScore(koreanResponse, 0))
	assert.Equal(t, 0, CombineScore("no score here", 0))
	assert.Equal(t, 12, CombineScore("no score here", 12))
	assert.Equal(t, 95, CombineScore("score: 85", 10))
}

func TestCombineScore_SaturatesAtColumnMax(t *testing.T) {
	assert.Equal(t, math.MaxInt32, CombineScore("점수: 2147483647", math.MaxInt32))
	assert.Equal(t, math.MaxInt32, CombineScore("점수: 2147483647", 1))
	assert.Equal(t, math.MaxInt32, CombineScore("", math.MaxInt32))
	assert.Equal(t, math.MaxInt32-1, CombineScore("점수: 2147483646", 0))
}

func TestCombineScore_MonotonicInSubScore(t *testing.T) {
	for _, text := range []string{koreanResponse, "", "점수: 0", "Score: 100"} {
		prev := CombineScore(text, 0)
		for m := 1; m <= 200; m++ {
			got := CombineScore(text, m)
			assert.GreaterOrEqual(t, got, prev, "text=%q m=%d", text, m)
			prev = got
		}
	}
}
