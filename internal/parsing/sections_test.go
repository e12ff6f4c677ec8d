package parsing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/environment-evaluator/internal/types"
)

const koreanResponse = "점수: 85\n1. 주요 문제점: 소음이 심함 2.\n2. 개선 필요 핵심 영역: 차음 설계 개선"

func TestExtractSections(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected types.Sections
	}{
		{
			name:  "numbered korean headings",
			input: koreanResponse,
			expected: types.Sections{
				Problem:          "소음이 심함",
				ImprovementAreas: "차음 설계 개선",
			},
		},
		{
			name:  "english headings without numbering",
			input: "Score: 70\nMain problems: Poor ventilation in bedrooms.\nKey improvement areas: Install heat-recovery ventilation.",
			expected: types.Sections{
				Problem:          "Poor ventilation in bedrooms.",
				ImprovementAreas: "Install heat-recovery ventilation.",
			},
		},
		{
			name:  "headings in upper case",
			input: "MAIN PROBLEMS: glare\nKEY IMPROVEMENT AREAS: blinds",
			expected: types.Sections{
				Problem:          "glare",
				ImprovementAreas: "blinds",
			},
		},
		{
			name:  "headings without spaces between words",
			input: "주요문제점: 습기\n개선필요핵심영역: 제습기 설치",
			expected: types.Sections{
				Problem:          "습기",
				ImprovementAreas: "제습기 설치",
			},
		},
		{
			name:     "neither heading",
			input:    "점수: 40\n전반적으로 양호합니다.",
			expected: types.Sections{},
		},
		{
			name:     "empty text",
			input:    "",
			expected: types.Sections{},
		},
		{
			name:     "problem heading without improvement heading",
			input:    "1. 주요 문제점: 채광 부족",
			expected: types.Sections{},
		},
		{
			name:  "improvement heading only",
			input: "2. 개선 필요 핵심 영역: 조명 교체",
			expected: types.Sections{
				ImprovementAreas: "조명 교체",
			},
		},
		{
			name:     "headings with empty bodies",
			input:    "1. 주요 문제점:\n2. 개선 필요 핵심 영역:   \n",
			expected: types.Sections{},
		},
		{
			name:  "numbered sub points inside problem section",
			input: "주요 문제점: 1. 소음 2.\n개선 필요 핵심 영역: 방음창",
			expected: types.Sections{
				Problem:          "소음",
				ImprovementAreas: "방음창",
			},
		},
		{
			name:  "multi line problem section",
			input: "1. 주요 문제점:\n- 소음\n- 조명 부족\n\n3. 개선 필요 핵심 영역:\n- 방음 강화\n- 조명 교체\n",
			expected: types.Sections{
				Problem:          "- 소음\n- 조명 부족",
				ImprovementAreas: "- 방음 강화\n- 조명 교체",
			},
		},
		{
			name:  "improvement section after last heading",
			input: "Main problems: drafts\nKey improvement areas: seal windows\nKey improvement areas: add insulation",
			expected: types.Sections{
				Problem:          "drafts",
				ImprovementAreas: "add insulation",
			},
		},
		{
			name:  "improvement heading before problem heading",
			input: "Key improvement areas: first\nMain problems: second",
			expected: types.Sections{
				ImprovementAreas: "first\nMain problems: second",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExtractSections(tt.input))
		})
	}
}

func TestLocateHeadings(t *testing.T) {
	headings := LocateHeadings(koreanResponse)
	require.Len(t, headings, 2)

	assert.Equal(t, HeadingProblem, headings[0].Kind)
	assert.Equal(t, "1. 주요 문제점:", koreanResponse[headings[0].Start:headings[0].End])

	assert.Equal(t, HeadingImprovement, headings[1].Kind)
	assert.Equal(t, "2. 개선 필요 핵심 영역:", koreanResponse[headings[1].Start:headings[1].End])
}

func TestLocateHeadings_OrderedByOffset(t *testing.T) {
	text := "Key improvement areas: a\nMain problems: b\n개선 필요 핵심 영역: c"
	headings := LocateHeadings(text)
	require.Len(t, headings, 3)

	kinds := []HeadingKind{headings[0].Kind, headings[1].Kind, headings[2].Kind}
	assert.Equal(t, []HeadingKind{HeadingImprovement, HeadingProblem, HeadingImprovement}, kinds)
	for i := 1; i < len(headings); i++ {
		assert.Less(t, headings[i-1].Start, headings[i].Start)
	}
}

func TestLocateHeadings_None(t *testing.T) {
	assert.Empty(t, LocateHeadings("no structure here"))
}

func TestHeadingKind_String(t *testing.T) {
	assert.Equal(t, "problem", HeadingProblem.String())
	assert.Equal(t, "improvement", HeadingImprovement.String())
	assert.Equal(t, "unknown", HeadingKind(9).String())
}

func TestStripOrdinals(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{input: " 소음이 심함 2.\n", expected: "소음이 심함"},
		{input: "1. a 2. 3.", expected: "a"},
		{input: "plain text", expected: "plain text"},
		{input: "3.", expected: ""},
		{input: "   ", expected: ""},
		{input: "ends with sentence.", expected: "ends with sentence."},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, StripOrdinals(tt.input))
		})
	}
}
