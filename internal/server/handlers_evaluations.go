package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/jonathan/environment-evaluator/internal/evaluation"
	"github.com/jonathan/environment-evaluator/internal/prompts"
	"github.com/jonathan/environment-evaluator/internal/types"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

// handleCreateEvaluation validates the survey answers, asks the model for an
// evaluation and stores the result.
func (s *Server) handleCreateEvaluation(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "failed to read request body")
		return
	}

	if err := prompts.ValidateAnswers(body); err != nil {
		s.writeError(w, err)
		return
	}

	var answers map[string]any
	decoder := json.NewDecoder(bytes.NewReader(body))
	decoder.UseNumber()
	if err := decoder.Decode(&answers); err != nil {
		s.writeError(w, &types.ValidationError{Field: "body", Message: "request body must be a JSON object"})
		return
	}

	input := types.NewEvaluationInput(answers)
	prompt, err := prompts.BuildEvaluationPrompt(input.SurveyAnswers())
	if err != nil {
		s.writeError(w, err)
		return
	}

	if s.generator == nil {
		s.writeError(w, ErrLLMUnavailable)
		return
	}
	modelText, err := s.generator.GenerateContent(r.Context(), prompt)
	if err != nil {
		s.logger.Error("model invocation failed", zap.Error(err))
		s.writeError(w, err)
		return
	}

	id, err := s.evaluator.Evaluate(r.Context(), modelText, input)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, types.EvaluateResponse{ID: id})
}

// handleGetEvaluation serves GET /evaluations?id=N and GET /evaluations/{id}.
// The query parameter wins over the path value.
func (s *Server) handleGetEvaluation(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("id")
	if raw == "" {
		raw = r.PathValue("id")
	}
	if raw == "" {
		s.writeError(w, &types.ValidationError{Field: "id", Message: "id is required"})
		return
	}

	rec, err := s.finder.Get(r.Context(), raw)
	s.writeRecord(w, rec, err)
}

// handleLookupEvaluation serves POST /evaluations/lookup with a {"id": N}
// body. A query parameter id takes precedence over the body.
func (s *Server) handleLookupEvaluation(w http.ResponseWriter, r *http.Request) {
	if raw := r.URL.Query().Get("id"); raw != "" {
		rec, err := s.finder.Get(r.Context(), raw)
		s.writeRecord(w, rec, err)
		return
	}

	var req types.LookupRequest
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	decoder.UseNumber()
	if err := decoder.Decode(&req); err != nil {
		if errors.Is(err, io.EOF) {
			s.writeError(w, &types.ValidationError{Field: "id", Message: "id is required"})
			return
		}
		s.writeError(w, &types.ValidationError{Field: "body", Message: "invalid request body"})
		return
	}
	if err := req.Validate(); err != nil {
		s.writeError(w, &types.ValidationError{Field: "id", Message: "id is required"})
		return
	}

	id, err := evaluation.ParseIDValue(req.ID)
	if err != nil {
		s.writeError(w, err)
		return
	}

	rec, err := s.finder.GetByID(r.Context(), id)
	s.writeRecord(w, rec, err)
}

// writeRecord writes a lookup result; a nil record is a 404.
func (s *Server) writeRecord(w http.ResponseWriter, rec *types.EvaluationRecord, err error) {
	if err != nil {
		s.writeError(w, err)
		return
	}
	if rec == nil {
		s.writeError(w, ErrNotFound)
		return
	}
	s.jsonResponse(w, http.StatusOK, rec)
}
