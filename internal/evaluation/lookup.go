package evaluation

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/jonathan/environment-evaluator/internal/types"
)

// Lookup serves stored evaluations by identifier. Every call reads the store.
type Lookup struct {
	store  Store
	logger *zap.Logger
}

// NewLookup creates a lookup service backed by store. A nil logger disables logging.
func NewLookup(store Store, logger *zap.Logger) *Lookup {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Lookup{store: store, logger: logger}
}

// Get returns the record for rawID.
// A malformed identifier yields *InvalidIdentifierError without touching the
// store; an unknown identifier yields nil, nil.
func (l *Lookup) Get(ctx context.Context, rawID string) (*types.EvaluationRecord, error) {
	id, err := ParseID(rawID)
	if err != nil {
		return nil, err
	}
	return l.GetByID(ctx, id)
}

// GetByID returns the record for an already validated identifier.
func (l *Lookup) GetByID(ctx context.Context, id int64) (*types.EvaluationRecord, error) {
	if id <= 0 {
		return nil, &InvalidIdentifierError{Raw: strconv.FormatInt(id, 10), Reason: "must be positive"}
	}

	rec, err := l.store.GetEvaluation(ctx, id)
	if err != nil {
		l.logger.Error("failed to read evaluation", zap.Int64("id", id), zap.Error(err))
		return nil, &StorageError{Op: "get", Cause: err}
	}
	if rec == nil {
		l.logger.Debug("evaluation not found", zap.Int64("id", id))
	}
	return rec, nil
}

// ParseID parses an identifier. Surrounding whitespace is ignored; the rest
// must be ASCII digits only (no sign, decimal point or exponent), fit in an
// int64 and be greater than zero. Leading zeros are accepted.
func ParseID(raw string) (int64, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, &InvalidIdentifierError{Raw: raw, Reason: "empty"}
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, &InvalidIdentifierError{Raw: raw, Reason: "must contain only digits"}
		}
	}
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, &InvalidIdentifierError{Raw: raw, Reason: "out of range"}
	}
	if id <= 0 {
		return 0, &InvalidIdentifierError{Raw: raw, Reason: "must be positive"}
	}
	return id, nil
}

// ParseIDValue applies ParseID to an identifier decoded from JSON.
// Numbers must be integral; 12.5 is rejected.
func ParseIDValue(raw any) (int64, error) {
	switch v := raw.(type) {
	case string:
		return ParseID(v)
	case json.Number:
		return ParseID(v.String())
	case float64:
		if v != math.Trunc(v) || v > math.MaxInt64 || math.IsNaN(v) {
			return 0, &InvalidIdentifierError{Raw: strconv.FormatFloat(v, 'f', -1, 64), Reason: "must be an integer"}
		}
		return ParseID(strconv.FormatFloat(v, 'f', -1, 64))
	case int:
		return ParseID(strconv.Itoa(v))
	case int64:
		return ParseID(strconv.FormatInt(v, 10))
	case nil:
		return 0, &InvalidIdentifierError{Raw: "", Reason: "missing"}
	default:
		return 0, &InvalidIdentifierError{Raw: fmt.Sprint(v), Reason: "unsupported type"}
	}
}
