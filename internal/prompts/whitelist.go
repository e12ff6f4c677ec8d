package prompts

import (
	"errors"
	"strings"
	"sync"

	"github.com/jonathan/environment-evaluator/internal/schemas"
	"github.com/jonathan/environment-evaluator/internal/types"
)

var (
	answersSchema     *schemas.Schema
	answersSchemaErr  error
	answersSchemaOnce sync.Once
)

// AllowedKeys returns every key a request body may contain: the survey keys
// plus the sub-score keys.
func AllowedKeys() ([]string, error) {
	keys, err := Keys(SurveyFile)
	if err != nil {
		return nil, err
	}
	return append(keys, types.MCQScoreKey, types.LegacyMCQScoreKey), nil
}

// AnswersSchema returns the JSON Schema a request body must satisfy: a
// non-empty object whose property names are all whitelisted.
// Values are not constrained.
func AnswersSchema() (map[string]any, error) {
	allowed, err := AllowedKeys()
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"$schema":       "http://json-schema.org/draft-07/schema#",
		"type":          "object",
		"minProperties": 1,
		"propertyNames": map[string]any{"enum": allowed},
	}, nil
}

func compiledAnswersSchema() (*schemas.Schema, error) {
	answersSchemaOnce.Do(func() {
		doc, err := AnswersSchema()
		if err != nil {
			answersSchemaErr = err
			return
		}
		answersSchema, answersSchemaErr = schemas.Compile("survey answers", doc)
	})
	return answersSchema, answersSchemaErr
}

// ValidateAnswers checks a raw request body against the whitelist.
// Rejections are returned as *types.ValidationError.
func ValidateAnswers(body []byte) error {
	schema, err := compiledAnswersSchema()
	if err != nil {
		return err
	}

	err = schema.ValidateBytes(body)
	var violations *schemas.ValidationError
	switch {
	case err == nil:
		return nil
	case errors.As(err, &violations):
		messages := make([]string, 0, len(violations.Errors))
		for _, e := range violations.Errors {
			messages = append(messages, e.Field+": "+e.Message)
		}
		return &types.ValidationError{Field: "body", Message: strings.Join(messages, "; ")}
	default:
		return &types.ValidationError{Field: "body", Message: "request body must be a JSON object"}
	}
}
