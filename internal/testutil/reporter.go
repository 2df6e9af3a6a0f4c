package testutil

import (
	"fmt"

	"github.com/roach88/ordeal/internal/ir"
)

// Recorder is an engine reporter that records every call as a short event
// string, so tests can compare execution order against a literal slice:
//
//	suite <title> @<depth>
//	start <title>
//	progress <title> <completed>/<total>
//	finish <title> <passed>
//
// Summaries are kept separately.
type Recorder struct {
	Events    []string
	Summaries []ir.Summary
}

// SuiteStarted records a suite event.
func (r *Recorder) SuiteStarted(s *ir.Suite) {
	r.Events = append(r.Events, fmt.Sprintf("suite %s @%d", s.Title, s.Depth))
}

// TestStarted records a start event.
func (r *Recorder) TestStarted(t *ir.Test) {
	r.Events = append(r.Events, "start "+t.Title)
}

// CaseProgress records a progress event.
func (r *Recorder) CaseProgress(t *ir.Test, completed, total int) {
	r.Events = append(r.Events, fmt.Sprintf("progress %s %d/%d", t.Title, completed, total))
}

// TestFinished records a finish event.
func (r *Recorder) TestFinished(t *ir.Test) {
	r.Events = append(r.Events, fmt.Sprintf("finish %s %v", t.Title, t.Result.Passed))
}

// Summary records the summary.
func (r *Recorder) Summary(s ir.Summary) {
	r.Summaries = append(r.Summaries, s)
}

// Last returns the most recent summary, or false if none was reported.
func (r *Recorder) Last() (ir.Summary, bool) {
	if len(r.Summaries) == 0 {
		return ir.Summary{}, false
	}
	return r.Summaries[len(r.Summaries)-1], true
}
