// Package parsererror defines the typed errors shared by the extraction core,
// the taxonomy store and the enhancement pass.
package parsererror

import (
	"errors"
	"fmt"
)

// ErrInvalidInput is the sentinel for caller contract violations: input that is not
// a UTF-8 text blob at all. Low-quality text is never reported through it.
var ErrInvalidInput = errors.New("invalid input")

// InvalidInputError describes why an input was refused.
type InvalidInputError struct {
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input: %s", e.Reason)
}

// Unwrap lets errors.Is match ErrInvalidInput.
func (e *InvalidInputError) Unwrap() error {
	return ErrInvalidInput
}

// ParseError represents an error during parsing
type ParseError struct {
	Parser string
	Field  string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: failed to parse %s='%s': %v",
		e.Parser, e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ValidationError represents a validation failure
type ValidationError struct {
	FilePath string
	Reason   string
}

func (e *ValidationError) Error() string {
	if e.FilePath == "" {
		return fmt.Sprintf("validation failed: %s", e.Reason)
	}
	return fmt.Sprintf("validation failed for %s: %s", e.FilePath, e.Reason)
}

// EnhancementError reports an enhancement provider that kept failing after all retries.
type EnhancementError struct {
	Provider string
	Attempts int
	Err      error
}

func (e *EnhancementError) Error() string {
	return fmt.Sprintf("enhancement via %s failed after %d attempt(s): %v",
		e.Provider, e.Attempts, e.Err)
}

func (e *EnhancementError) Unwrap() error {
	return e.Err
}
