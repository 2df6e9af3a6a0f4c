package engine

import (
	"errors"
	"fmt"
)

// Exit codes used when a registration body misuses the engine.
const (
	// ExitCaseOutsideTest is used when Case is called with no open test.
	ExitCaseOutsideTest = 3

	// ExitMixedCaseBody is used when a cases-bearing test body fails on its
	// own instead of declaring cases.
	ExitMixedCaseBody = 4
)

// Violation identifies a misuse of the registration API.
type Violation string

const (
	// ViolationCaseOutsideTest: Case was called with no open test.
	ViolationCaseOutsideTest Violation = "CASE_OUTSIDE_TEST"

	// ViolationMixedCaseBody: a TestCases body returned an error or panicked.
	ViolationMixedCaseBody Violation = "MIXED_CASE_BODY"
)

// UsageError is a fatal registration error. The engine reports it through
// its exit function with Code and then panics with the *UsageError.
type UsageError struct {
	// Code is the process exit code.
	Code int

	// Violation identifies the misuse.
	Violation Violation

	// Message is a human-readable description.
	Message string

	// Err is the underlying error, if the violation was caused by one.
	Err error
}

// Error implements the error interface.
func (e *UsageError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Violation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Violation, e.Message)
}

// Unwrap returns the underlying error.
func (e *UsageError) Unwrap() error {
	return e.Err
}

// IsUsageError returns true if the error is a usage violation.
// Uses errors.As to handle wrapped errors.
func IsUsageError(err error) bool {
	var ue *UsageError
	return errors.As(err, &ue)
}

// NewCaseOutsideTestError creates a UsageError for a case declared with no
// open test.
func NewCaseOutsideTestError() *UsageError {
	return &UsageError{
		Code:      ExitCaseOutsideTest,
		Violation: ViolationCaseOutsideTest,
		Message:   "case declared outside of a test",
	}
}

// NewMixedCaseBodyError creates a UsageError for a cases-bearing test whose
// body failed.
func NewMixedCaseBodyError(title string, cause error) *UsageError {
	return &UsageError{
		Code:      ExitMixedCaseBody,
		Violation: ViolationMixedCaseBody,
		Message:   fmt.Sprintf("test %q with cases raised an error outside of its cases", title),
		Err:       cause,
	}
}

// PanicError wraps a recovered panic value that was not an error.
type PanicError struct {
	Value any
}

// Error implements the error interface.
func (e *PanicError) Error() string {
	return fmt.Sprint(e.Value)
}

// Name returns the error kind used for error handler lookup.
func (e *PanicError) Name() string {
	return "Panic"
}
