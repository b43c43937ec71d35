package common

import (
	"errors"
	"fmt"
)

// AppError represents application-specific errors
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Common application errors
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrInternal     = errors.New("internal error")

	// ErrUntrained marks a contract violation: Predict was called on a
	// classifier that has never been trained or loaded. Callers must be able
	// to tell "model not ready" apart from "bad input".
	ErrUntrained = errors.New("classifier is not trained")

	// ErrNoText marks the single hard failure of a parse: no text could be
	// recovered from the input document.
	ErrNoText = errors.New("no text could be extracted from the document")

	// ErrEmptyCorpus marks a training call with zero usable samples.
	// Training is a no-op in that case and classifier state is unchanged.
	ErrEmptyCorpus = errors.New("no training samples provided")

	// ErrUnsupportedFormat marks a file whose extension maps to neither the
	// PDF nor the image path.
	ErrUnsupportedFormat = errors.New("unsupported file format")
)

// Error constructors
func NewAppError(code, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
