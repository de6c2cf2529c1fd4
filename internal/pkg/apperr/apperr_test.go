package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"not found", NotFound("document not found"), KindNotFound},
		{"validation", Validation("bad input"), KindValidation},
		{"conflict", Conflict("email already registered"), KindConflict},
		{"unauthorized", Unauthorized("invalid credentials"), KindUnauthorized},
		{"degraded", Degraded("search unavailable", errors.New("down")), KindDegraded},
		{"persistence", Persistence("save failed", errors.New("tx")), KindPersistence},
		{"plain error", errors.New("boom"), KindUnknown},
		{"wrapped", fmt.Errorf("context: %w", NotFound("gone")), KindNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}

func TestMessageOf(t *testing.T) {
	assert.Equal(t, "document not found", MessageOf(NotFound("document not found")))
	assert.Equal(t, "internal server error", MessageOf(errors.New("sql: connection reset")),
		"plain errors never leak internals")
}

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("disk full")
	err := Persistence("save failed", cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "save failed: disk full", err.Error())
	assert.Equal(t, "save failed", NotFound("save failed").Error())
}
