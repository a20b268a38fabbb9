package candidate

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyInput indicates a code input was empty or whitespace-only
	ErrEmptyInput = errors.New("code cannot be empty")

	// ErrEmptyOutput indicates generated output was empty or whitespace-only
	ErrEmptyOutput = errors.New("generated output is empty")

	// ErrEmptyPrompt indicates an instruction input was empty or whitespace-only
	ErrEmptyPrompt = errors.New("completion prompt cannot be empty")

	// ErrSyntax indicates text that does not parse as Python
	ErrSyntax = errors.New("invalid python syntax")

	// ErrNoTestFunction indicates a test input without any test_ function
	ErrNoTestFunction = errors.New("test code must contain at least one test function")

	// ErrNoTestFunctions indicates generated output that yielded no fragments
	ErrNoTestFunctions = errors.New("no valid test functions found in generated output")

	// ErrNameNotFound indicates a fragment without a test_ declaration line
	ErrNameNotFound = errors.New("could not extract test function name")

	// ErrValidationFailed wraps the failure of one field of an input bundle
	ErrValidationFailed = errors.New("input validation failed")
)

// SyntaxError reports where the parser first gave up. Line and Column are
// 1-based; Column counts bytes.
type SyntaxError struct {
	Line    int
	Column  int
	Message string
}

// Error implements the error interface.
func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s: line %d, column %d: %s", ErrSyntax, e.Line, e.Column, e.Message)
}

// Is reports whether target is ErrSyntax.
func (e *SyntaxError) Is(target error) bool {
	return target == ErrSyntax
}

func (e *SyntaxError) precedes(other *SyntaxError) bool {
	if e.Line != other.Line {
		return e.Line < other.Line
	}
	return e.Column < other.Column
}

// ValidationFailedError names the input field that failed and why.
type ValidationFailedError struct {
	Field string
	Err   error
}

// Error implements the error interface.
func (e *ValidationFailedError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrValidationFailed, e.Field, e.Err)
}

// Unwrap exposes both ErrValidationFailed and the underlying cause.
func (e *ValidationFailedError) Unwrap() []error {
	return []error{ErrValidationFailed, e.Err}
}
