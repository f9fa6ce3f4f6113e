// Copyright 2025 bitjungle - Rune Mathisen. All rights reserved.
// Use of this source code is governed by the MIT license
// that can be found in the LICENSE file.
// The author respectfully requests that it not be used for
// military, warfare, or surveillance applications.

package types

import "fmt"

// ErrorType classifies a stepwise-selection failure by where it arose.
type ErrorType string

const (
	// ErrValidation marks bad input data or arguments (empty matrix,
	// zero-variance target, too few cases for the fold count).
	ErrValidation ErrorType = "validation"
	// ErrConfiguration marks an unusable SelectionConfig.
	ErrConfiguration ErrorType = "configuration"
	// ErrComputation marks a numerical failure inside a fit or solve.
	ErrComputation ErrorType = "computation"
	// ErrNotFitted marks use of a model before a successful Fit.
	ErrNotFitted ErrorType = "not_fitted"
	// ErrDimension marks a size mismatch between collaborating inputs.
	ErrDimension ErrorType = "dimension"
	// ErrIO marks a data-file read failure in the ingestion layer.
	ErrIO ErrorType = "io"
)

// StepError is the typed error every public entry point of this module
// returns. Dimension errors additionally carry the two disagreeing sizes
// so callers can report them without parsing the message.
type StepError struct {
	Type     ErrorType
	Message  string
	Expected int
	Actual   int
	Cause    error
}

// Error implements the error interface.
func (e *StepError) Error() string {
	msg := fmt.Sprintf("stepsel %s: %s", e.Type, e.Message)
	if e.Type == ErrDimension {
		msg = fmt.Sprintf("%s: expected %d, got %d", msg, e.Expected, e.Actual)
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

// Unwrap returns the underlying cause, if any.
func (e *StepError) Unwrap() error { return e.Cause }

// Is reports whether target is a StepError of the same Type, so callers
// can match on the kind alone with errors.Is:
//
//	errors.Is(err, &types.StepError{Type: types.ErrValidation})
func (e *StepError) Is(target error) bool {
	t, ok := target.(*StepError)
	return ok && t.Type == e.Type
}

func newStepError(kind ErrorType, message string, cause error) *StepError {
	return &StepError{Type: kind, Message: message, Cause: cause}
}

// NewValidationError reports invalid input data or arguments.
func NewValidationError(message string, cause error) *StepError {
	return newStepError(ErrValidation, message, cause)
}

// NewConfigurationError reports an unusable SelectionConfig.
func NewConfigurationError(message string, cause error) *StepError {
	return newStepError(ErrConfiguration, message, cause)
}

// NewComputationError reports a numerical failure inside a fit or solve.
func NewComputationError(message string, cause error) *StepError {
	return newStepError(ErrComputation, message, cause)
}

// NewIOError reports a data-file read failure.
func NewIOError(message string, cause error) *StepError {
	return newStepError(ErrIO, message, cause)
}

// NewNotFittedError reports use of a model before a successful Fit.
func NewNotFittedError(message string) *StepError {
	return newStepError(ErrNotFitted, message, nil)
}

// NewDimensionError reports a size mismatch, carrying both sizes.
func NewDimensionError(message string, expected, actual int) *StepError {
	return &StepError{Type: ErrDimension, Message: message, Expected: expected, Actual: actual}
}
