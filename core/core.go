package core

import (
	"github.com/google/uuid"

	"github.com/hupe1980/scoremesh/logging"
)

// EnsureLogger substitutes a NoOpLogger for nil so components never have to
// nil-check their logger on the hot path.
func EnsureLogger(l logging.Logger) logging.Logger {
	if l == nil {
		return logging.NoOpLogger{}
	}
	return l
}

// NewID generates a new unique run identifier.
//
// Uses UUID v4 for simplicity and universal uniqueness. Identifiers only need
// to distinguish runs within logs and artifact metadata, so no ordering
// guarantees are required.
func NewID() string { return uuid.NewString() }
