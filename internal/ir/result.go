package ir

import "fmt"

// FormatMode selects how a result's expected/actual pair is rendered.
type FormatMode string

const (
	// FormatNone renders both sides as plain highlighted text.
	FormatNone FormatMode = "none"

	// FormatStr renders a positional character diff.
	FormatStr FormatMode = "str"

	// FormatObj renders a key-level structural diff.
	FormatObj FormatMode = "obj"
)

// ValidFormatModes lists the accepted format modes.
var ValidFormatModes = map[FormatMode]bool{
	FormatNone: true,
	FormatStr:  true,
	FormatObj:  true,
}

// ParseFormatMode validates a format mode name.
func ParseFormatMode(s string) (FormatMode, error) {
	m := FormatMode(s)
	if !ValidFormatModes[m] {
		return "", fmt.Errorf("invalid format mode %q: must be one of none, str, obj", s)
	}
	return m, nil
}

// Result is the outcome of a test or case.
//
// Expected and Actual hold serialized values. PassedCases and TotalCases are
// only set on parameterized tests.
type Result struct {
	Passed      bool       `json:"passed"`
	Expected    string     `json:"expected"`
	Actual      string     `json:"actual"`
	FormatMode  FormatMode `json:"formatMode"`
	PassedCases *int       `json:"passedCases,omitempty"`
	TotalCases  *int       `json:"totalCases,omitempty"`
}

// DefaultResult is the value of an unexecuted result: absence of failure is
// the initial assumption.
func DefaultResult() Result {
	return Result{
		Passed:     true,
		FormatMode: FormatNone,
	}
}

// Failure builds a failed result.
func Failure(expected, actual string, mode FormatMode) Result {
	return Result{
		Passed:     false,
		Expected:   expected,
		Actual:     actual,
		FormatMode: mode,
	}
}

// ErrorHandler classifies an error raised by a handler into a result.
type ErrorHandler func(err error) Result

// CaseFailure is a snapshot of a failed case.
type CaseFailure struct {
	ID     ID     `json:"id"`
	CaseNo int    `json:"caseNo"`
	Result Result `json:"result"`
}

// SummaryEntry is the post-execution snapshot of one test.
type SummaryEntry struct {
	TestID ID `json:"testId"`

	// Title is qualified with the parent suite: "<suite> > <test>".
	Title  string `json:"title"`
	Result Result `json:"result"`

	Parameterized bool `json:"parameterized,omitempty"`

	// FailedCases lists failed case ids in execution order.
	FailedCases  []ID          `json:"failedCases,omitempty"`
	CaseFailures []CaseFailure `json:"caseFailures,omitempty"`
}

// Summary aggregates all recorded entries of a run.
type Summary struct {
	Entries  []SummaryEntry `json:"entries"`
	Total    int            `json:"total"`
	Passed   int            `json:"passed"`
	Failed   int            `json:"failed"`
	Warnings []string       `json:"warnings,omitempty"`
}

// NewSummary counts the given entries.
func NewSummary(entries []SummaryEntry, warnings []string) Summary {
	s := Summary{
		Entries:  entries,
		Warnings: warnings,
	}
	for _, e := range entries {
		if e.Result.Passed {
			s.Passed++
		} else {
			s.Failed++
		}
	}
	s.Total = s.Passed + s.Failed
	return s
}

// OK reports whether every recorded test passed.
func (s Summary) OK() bool {
	return s.Failed == 0
}
