package models

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrUnsupportedMethod = errors.New("unsupported method")
)

// InvalidInputError reports an empty series, a non-finite value or a
// parameter outside its domain.
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	if e.Field == "" {
		return "invalid input: " + e.Reason
	}
	return fmt.Sprintf("invalid input: %s %s", e.Field, e.Reason)
}

func (e *InvalidInputError) Is(target error) bool { return target == ErrInvalidInput }

// InvalidInput builds an *InvalidInputError.
func InvalidInput(field, reason string) error {
	return &InvalidInputError{Field: field, Reason: reason}
}

// UnsupportedMethodError names a forecast method outside {ema, linreg}.
type UnsupportedMethodError struct {
	Method string
}

func (e *UnsupportedMethodError) Error() string {
	return fmt.Sprintf("unsupported method %q: must be 'ema' or 'linreg'", e.Method)
}

func (e *UnsupportedMethodError) Is(target error) bool { return target == ErrUnsupportedMethod }

var (
	// ErrModelUnavailable means no language-model backend is configured.
	ErrModelUnavailable = errors.New("GEMINI_API_KEY is not set")
	// ErrUpstream wraps failures returned by the language-model backend.
	ErrUpstream = errors.New("language model request failed")
)

// UpstreamError carries the backend status code when one is known.
type UpstreamError struct {
	Op     string
	Status int
	Err    error
}

func (e *UpstreamError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: upstream status %d: %v", e.Op, e.Status, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

func (e *UpstreamError) Is(target error) bool { return target == ErrUpstream }
