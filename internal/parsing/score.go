package parsing

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// scoreLabels lists the labels a model puts in front of its score.
// Matching is case-sensitive.
var scoreLabels = []string{
	"점수",
	"Score",
	"score",
}

var scorePattern = compileScorePattern(scoreLabels)

func compileScorePattern(labels []string) *regexp.Regexp {
	quoted := make([]string, len(labels))
	for i, l := range labels {
		quoted[i] = regexp.QuoteMeta(l)
	}
	return regexp.MustCompile(`(?:` + strings.Join(quoted, "|") + `):\s*(\d+)`)
}

// ModelScore returns the first labelled score in text, or 0 when none is
// present or the number does not fit the 32-bit score column.
func ModelScore(text string) int {
	m := scorePattern.FindStringSubmatch(text)
	if m == nil {
		return 0
	}
	score, err := strconv.ParseInt(m[1], 10, 32)
	if err != nil {
		return 0
	}
	return int(score)
}

// CombineScore adds the model's score to the multiple-choice sub-score.
// The sum saturates at math.MaxInt32 so it always fits the score column.
func CombineScore(text string, mcqScore int) int {
	sum := int64(ModelScore(text)) + int64(mcqScore)
	if sum > math.MaxInt32 {
		return math.MaxInt32
	}
	return int(sum)
}
