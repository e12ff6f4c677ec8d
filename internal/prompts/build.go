package prompts

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/jonathan/environment-evaluator/internal/types"
)

const (
	// SurveyFile holds one question template per accepted survey key.
	SurveyFile = "environment.json"
	// InstructionsFile holds the preamble and the required answer format.
	InstructionsFile = "instructions.json"

	// MaxModelScore is the upper bound the model is asked to score within.
	MaxModelScore = 100
)

// BuildEvaluationPrompt renders the evaluation prompt for the given survey
// answers. Sub-score keys are skipped; any other key must be whitelisted.
func BuildEvaluationPrompt(answers map[string]any) (string, error) {
	keys := make([]string, 0, len(answers))
	for key := range answers {
		if types.IsSubScoreKey(key) {
			continue
		}
		keys = append(keys, key)
	}
	if len(keys) == 0 {
		return "", &types.ValidationError{Field: "body", Message: "no survey answers provided"}
	}
	sort.Strings(keys)

	var sb strings.Builder
	sb.WriteString(MustGet(InstructionsFile, "preamble"))
	sb.WriteString("\n\n")

	for _, key := range keys {
		template, err := Get(SurveyFile, key)
		if err != nil {
			return "", &types.ValidationError{Field: key, Message: "unknown survey key"}
		}
		sb.WriteString("- ")
		sb.WriteString(Format(template, map[string]string{"Answer": answerText(answers[key])}))
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(Format(MustGet(InstructionsFile, "output-format"), map[string]string{
		"MaxScore": strconv.Itoa(MaxModelScore),
	}))
	return sb.String(), nil
}

// answerText renders a survey value for the prompt.
func answerText(v any) string {
	switch val := v.(type) {
	case nil:
		return "응답 없음"
	case string:
		return strings.TrimSpace(val)
	case json.Number:
		return val.String()
	case float64, bool, int, int64:
		return fmt.Sprint(val)
	default:
		data, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprint(val)
		}
		return string(data)
	}
}
