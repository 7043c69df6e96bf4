package apperrors_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/sinahatake/currency-exchange-api/internal/apperrors"
	"github.com/stretchr/testify/assert"
)

func TestAppError_KindSurvivesWrapping(t *testing.T) {
	err := fmt.Errorf("service: %w", apperrors.NewNotFoundError("Currency not found"))

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.NotErrorIs(t, err, apperrors.ErrValidation)
	assert.Equal(t, "Currency not found", apperrors.Message(err))
}

func TestAppError_CauseIsReachable(t *testing.T) {
	cause := errors.New("connection refused")
	err := apperrors.NewStorageError("failed to list currencies", cause)

	assert.ErrorIs(t, err, apperrors.ErrStorage)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "failed to list currencies", err.Error())
	assert.Equal(t, "failed to list currencies: connection refused", apperrors.Detail(err))
}

func TestMessage_PlainError(t *testing.T) {
	err := errors.New("boom")

	assert.Equal(t, "boom", apperrors.Message(err))
	assert.Equal(t, "boom", apperrors.Detail(err))
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind error
	}{
		{"validation", apperrors.NewValidationError("bad"), apperrors.ErrValidation},
		{"not found", apperrors.NewNotFoundError("missing"), apperrors.ErrNotFound},
		{"conflict", apperrors.NewConflictError("exists"), apperrors.ErrDuplicate},
		{"storage", apperrors.NewStorageError("down", nil), apperrors.ErrStorage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.err, tt.kind)
		})
	}
}
