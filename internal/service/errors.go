package service

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput is returned when input validation fails.
	ErrInvalidInput = errors.New("invalid input")
	// ErrUpstreamUnavailable is returned when the embedder or the vector
	// store cannot be reached. Retrieval surfaces this as an empty result
	// with an error flag on the response, never as a crash.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
	// ErrInsufficientContext is returned when comparative analysis is
	// requested with fewer than two usable documents.
	ErrInsufficientContext = errors.New("insufficient context")
	// ErrMalformedRecord is returned when a stored payload is missing a
	// required field (id, quote, author). Such records are skipped during
	// ranking.
	ErrMalformedRecord = errors.New("malformed record")
	// ErrNotFound is returned when a requested resource is not found.
	ErrNotFound = errors.New("not found")
)

// ValidationError represents a validation error with a field name.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field %s: %s", e.Field, e.Message)
}

// WrapError wraps an error with additional context.
func WrapError(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}
