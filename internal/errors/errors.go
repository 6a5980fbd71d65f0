package errors

import (
	stderrors "errors"
	"fmt"

	"confmat/domain/core"
)

// AppError represents a structured application error
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// New creates a new AppError
func New(code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an error with additional context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	if appErr, ok := err.(*AppError); ok {
		return &AppError{
			Code:    appErr.Code,
			Message: message,
			Cause:   appErr,
		}
	}
	return &AppError{
		Code:    "INTERNAL_ERROR",
		Message: message,
		Cause:   err,
	}
}

// ConfigInvalid reports a configuration problem
func ConfigInvalid(message string) *AppError {
	return New("CONFIG_INVALID", message)
}

// InputNotFound reports a missing input file. Chains to
// core.ErrInputNotFound so errors.Is works end to end.
func InputNotFound(path string) *AppError {
	return &AppError{
		Code:    "INPUT_NOT_FOUND",
		Message: fmt.Sprintf("input file not found: %s", path),
		Cause:   core.ErrInputNotFound,
	}
}

// ReadFailed reports an unreadable or corrupt input
func ReadFailed(err error) error {
	return &AppError{
		Code:    "READ_FAILED",
		Message: "failed to read input",
		Cause:   stderrors.Join(core.ErrReadFailed, err),
	}
}

// WriteFailed reports a failed workbook write
func WriteFailed(err error) error {
	return &AppError{
		Code:    "WRITE_FAILED",
		Message: "failed to write workbook",
		Cause:   stderrors.Join(core.ErrWriteFailed, err),
	}
}

// Code returns the code of an AppError, or empty for other errors
func Code(err error) string {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code
	}
	return ""
}
