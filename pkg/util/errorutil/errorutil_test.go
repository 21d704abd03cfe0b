package errorutil

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToDomainError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantCode   string
		wantStatus int
	}{
		{
			name:       "validation passes through",
			err:        NewValidationError("title required", nil),
			wantCode:   CodeValidation,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "wrapped permission denied",
			err:        fmt.Errorf("delete type: %w", NewPermissionDenied("admin role required")),
			wantCode:   CodePermissionDenied,
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "pgx no rows becomes not found",
			err:        fmt.Errorf("get submission: %w", pgx.ErrNoRows),
			wantCode:   CodeNotFound,
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "unknown error is internal",
			err:        errors.New("boom"),
			wantCode:   CodeInternal,
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToDomainError(tt.err)
			require.NotNil(t, got)
			assert.Equal(t, tt.wantCode, got.Code)
			assert.Equal(t, tt.wantStatus, got.HTTPStatus)
		})
	}
}

func TestToDomainErrorNil(t *testing.T) {
	assert.Nil(t, ToDomainError(nil))
	assert.NoError(t, MapError(nil))
}

func TestHasCode(t *testing.T) {
	err := fmt.Errorf("outer: %w", NewNotFound("submission", map[string]any{"id": "42"}))
	assert.True(t, HasCode(err, CodeNotFound))
	assert.False(t, HasCode(err, CodeValidation))
	assert.False(t, HasCode(errors.New("plain"), CodeNotFound))
}

func TestDomainErrorMessage(t *testing.T) {
	err := NewInternalError(errors.New("db down"))
	assert.Equal(t, "internal server error: db down", err.Error())
	assert.Equal(t, "submission not found", NewNotFound("submission", nil).Error())
}
