package errors

import (
	"errors"
	"fmt"
)

// ErrorType identifies the pipeline stage an error originated from.
type ErrorType string

const (
	ErrTypeParsing     ErrorType = "PARSING"
	ErrTypeValidation  ErrorType = "VALIDATION"
	ErrTypeAggregation ErrorType = "AGGREGATION"
	ErrTypeRender      ErrorType = "RENDER"
	ErrTypeExport      ErrorType = "EXPORT"
	ErrTypeConfig      ErrorType = "CONFIG"
)

// AppError represents an application-specific error with a typed stage,
// a human-readable message and an optional wrapped cause.
type AppError struct {
	Type    ErrorType
	Message string
	Cause   error
	Context map[string]interface{}
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap allows errors.Is and errors.As to work with AppError
func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithContext adds context to the error
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// NewAppError creates a new application error
func NewAppError(errType ErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// NewParsingError creates an error for unreadable or malformed input files.
func NewParsingError(message string, cause error) *AppError {
	return NewAppError(ErrTypeParsing, message, cause)
}

// NewValidationError creates an error for input that fails the schema or
// row-level checks. The whole dataset is rejected, never single rows.
func NewValidationError(message string, cause error) *AppError {
	return NewAppError(ErrTypeValidation, message, cause)
}

// NewAggregationError creates an error for summary computation failures.
// A dataset that passed validation cannot trigger it.
func NewAggregationError(message string, cause error) *AppError {
	return NewAppError(ErrTypeAggregation, message, cause)
}

// NewRenderError creates an error for chart generation failures.
func NewRenderError(message string, cause error) *AppError {
	return NewAppError(ErrTypeRender, message, cause)
}

// NewExportError creates an error for workbook, PDF or archive
// construction failures.
func NewExportError(message string, cause error) *AppError {
	return NewAppError(ErrTypeExport, message, cause)
}

// NewConfigError creates a configuration-related error
func NewConfigError(message string, cause error) *AppError {
	return NewAppError(ErrTypeConfig, message, cause)
}

// IsType checks whether err is an AppError of the given type.
func IsType(err error, errType ErrorType) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type == errType
	}
	return false
}

// IsValidationError checks if the error is a validation error
func IsValidationError(err error) bool {
	return IsType(err, ErrTypeValidation)
}

// IsRenderError checks if the error is a chart rendering error
func IsRenderError(err error) bool {
	return IsType(err, ErrTypeRender)
}

// IsExportError checks if the error is an export error
func IsExportError(err error) bool {
	return IsType(err, ErrTypeExport)
}
