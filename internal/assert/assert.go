// Package assert provides the assertions used by test and case handlers.
//
// Every failing assertion returns an *AssertionError, which carries the
// expected and actual values so the engine can render a diff.
package assert

import (
	"fmt"
	"strings"

	"github.com/roach88/ordeal/internal/canon"
)

// AssertionError is returned when an assertion fails.
type AssertionError struct {
	Type    string // Assertion type for categorization
	Message string
	Want    any
	Got     any
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	return e.Message
}

// Name returns the error kind used for error handler lookup.
func (e *AssertionError) Name() string {
	return "AssertionError"
}

// Expected returns the expected value.
func (e *AssertionError) Expected() any {
	return e.Want
}

// Actual returns the actual value.
func (e *AssertionError) Actual() any {
	return e.Got
}

// Equal fails unless actual and expected have the same canonical JSON form.
// Map key order and numeric representation do not matter.
func Equal(expected, actual any) error {
	if canon.Encode(expected) == canon.Encode(actual) {
		return nil
	}
	return &AssertionError{
		Type:    "equal",
		Message: fmt.Sprintf("expected %s to equal %s", canon.Encode(actual), canon.Encode(expected)),
		Want:    expected,
		Got:     actual,
	}
}

// NotEqual fails when actual and expected have the same canonical JSON form.
func NotEqual(expected, actual any) error {
	if canon.Encode(expected) != canon.Encode(actual) {
		return nil
	}
	return &AssertionError{
		Type:    "not_equal",
		Message: fmt.Sprintf("expected %s to not equal %s", canon.Encode(actual), canon.Encode(expected)),
		Want:    expected,
		Got:     actual,
	}
}

// TypeOf fails unless actual has the given JSON type name: null, boolean,
// number, string, array or object.
func TypeOf(actual any, typeName string) error {
	if canon.KindOf(actual) == typeName {
		return nil
	}
	return &AssertionError{
		Type:    "type_of",
		Message: fmt.Sprintf("expected %s to be %s %s", canon.Encode(actual), article(typeName), typeName),
		Want:    typeName,
		Got:     actual,
	}
}

// Fail always fails with the given message.
func Fail(format string, args ...any) error {
	return &AssertionError{
		Type:    "fail",
		Message: fmt.Sprintf(format, args...),
	}
}

func article(word string) string {
	if word != "" && strings.ContainsRune("aeiou", rune(word[0])) {
		return "an"
	}
	return "a"
}
