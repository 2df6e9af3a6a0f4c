package fixture

import (
	"github.com/roach88/ordeal/internal/assert"
)

// File is a decoded suite file.
type File struct {
	// Path is the file the document was loaded from.
	Path string `yaml:"-" json:"-"`

	Suites []SuiteSpec `yaml:"suites,omitempty" json:"suites,omitempty"`

	// Tests declared outside of any suite.
	Tests []TestSpec `yaml:"tests,omitempty" json:"tests,omitempty"`

	ErrorHandlers []ErrorHandlerSpec `yaml:"error_handlers,omitempty" json:"error_handlers,omitempty"`
}

// SuiteSpec declares a suite.
type SuiteSpec struct {
	Title  string      `yaml:"title" json:"title"`
	Tests  []TestSpec  `yaml:"tests,omitempty" json:"tests,omitempty"`
	Suites []SuiteSpec `yaml:"suites,omitempty" json:"suites,omitempty"`
}

// TestSpec declares a test. A test with cases is parameterized; its own
// check, if any, runs while the cases are collected.
type TestSpec struct {
	Title string `yaml:"title" json:"title"`
	Check `yaml:",inline"`
	Cases []Check `yaml:"cases,omitempty" json:"cases,omitempty"`
}

// Check is the body of a test or case.
//
// Precedence: Error raises, Type asserts the JSON type of Actual, otherwise
// Expect and Actual must be equal.
type Check struct {
	Expect any        `yaml:"expect,omitempty" json:"expect,omitempty"`
	Actual any        `yaml:"actual,omitempty" json:"actual,omitempty"`
	Type   string     `yaml:"type,omitempty" json:"type,omitempty"`
	Error  *ErrorSpec `yaml:"error,omitempty" json:"error,omitempty"`
}

// ErrorSpec is an error raised by a check.
type ErrorSpec struct {
	Kind    string `yaml:"kind" json:"kind"`
	Message string `yaml:"message,omitempty" json:"message,omitempty"`
}

// ErrorHandlerSpec registers a fixed result for errors of one kind.
// An empty Actual is replaced by the error message.
type ErrorHandlerSpec struct {
	Kind     string `yaml:"kind" json:"kind"`
	Passed   bool   `yaml:"passed,omitempty" json:"passed,omitempty"`
	Expected string `yaml:"expected,omitempty" json:"expected,omitempty"`
	Actual   string `yaml:"actual,omitempty" json:"actual,omitempty"`
	Format   string `yaml:"format,omitempty" json:"format,omitempty"`
}

// Declared reports whether the check states anything to verify.
func (c Check) Declared() bool {
	return c.Expect != nil || c.Actual != nil || c.Type != "" || c.Error != nil
}

// Run executes the check.
func (c Check) Run() error {
	switch {
	case c.Error != nil:
		return &RaisedError{Kind: c.Error.Kind, Message: c.Error.Message}
	case c.Type != "":
		return assert.TypeOf(c.Actual, c.Type)
	default:
		return assert.Equal(c.Expect, c.Actual)
	}
}

// RaisedError is the error declared by a check's error entry.
type RaisedError struct {
	Kind    string
	Message string
}

// Error implements the error interface.
func (e *RaisedError) Error() string {
	return e.Message
}

// Name returns the declared kind, used for error handler lookup.
func (e *RaisedError) Name() string {
	return e.Kind
}
