package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *AppError
		expected string
	}{
		{
			name:     "error without cause",
			err:      NewValidationError("missing required column: Produto", nil),
			expected: "[VALIDATION] missing required column: Produto",
		},
		{
			name:     "error with cause",
			err:      NewExportError("failed to build combined workbook", errors.New("disk full")),
			expected: "[EXPORT] failed to build combined workbook: disk full",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("underlying failure")
	err := NewRenderError("pie chart rendering failed", cause)

	assert.True(t, errors.Is(err, cause))

	var appErr *AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, ErrTypeRender, appErr.Type)
}

func TestAppError_Wrapped(t *testing.T) {
	inner := NewValidationError("row 3: amount is negative", nil)
	outer := fmt.Errorf("pipeline run failed: %w", inner)

	assert.True(t, IsValidationError(outer))
	assert.False(t, IsExportError(outer))
}

func TestIsType(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		errType ErrorType
		want    bool
	}{
		{"validation error matches", NewValidationError("bad input", nil), ErrTypeValidation, true},
		{"render error does not match export", NewRenderError("zero total", nil), ErrTypeExport, false},
		{"plain error never matches", errors.New("plain"), ErrTypeValidation, false},
		{"nil error never matches", nil, ErrTypeValidation, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsType(tt.err, tt.errType))
		})
	}
}

func TestAppError_WithContext(t *testing.T) {
	err := NewValidationError("missing required columns", nil).
		WithContext("missing", []string{"Produto"})

	require.Contains(t, err.Context, "missing")
	assert.Equal(t, []string{"Produto"}, err.Context["missing"])
}
