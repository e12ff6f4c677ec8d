// Package server provides the HTTP API for environment evaluations.
package server

import (
	"errors"
	"net/http"

	"github.com/jonathan/environment-evaluator/internal/evaluation"
	"github.com/jonathan/environment-evaluator/internal/llm"
	"github.com/jonathan/environment-evaluator/internal/types"
)

// ErrNotFound indicates that no evaluation exists for the requested id.
var ErrNotFound = errors.New("evaluation not found")

// ErrLLMUnavailable indicates the server was started without a model client.
var ErrLLMUnavailable = errors.New("evaluation model is not configured")

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		invalidID  *evaluation.InvalidIdentifierError
		validation *types.ValidationError
		invocation *llm.InvocationError
	)
	switch {
	case errors.As(err, &invalidID), errors.As(err, &validation):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.As(err, &invocation):
		return http.StatusBadGateway
	case errors.Is(err, ErrLLMUnavailable):
		return http.StatusServiceUnavailable
	default:
		// *evaluation.StorageError and anything unexpected
		return http.StatusInternalServerError
	}
}

// publicMessage is the error text returned to clients. Storage and
// unexpected failures are not described in detail.
func publicMessage(err error) string {
	switch HTTPStatus(err) {
	case http.StatusInternalServerError:
		return "failed to process evaluation"
	case http.StatusBadGateway:
		return "evaluation model request failed"
	default:
		return err.Error()
	}
}
