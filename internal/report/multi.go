package report

import (
	"github.com/roach88/ordeal/internal/engine"
	"github.com/roach88/ordeal/internal/ir"
)

// Tee forwards every call to each reporter in order.
type Tee []engine.Reporter

func (t Tee) SuiteStarted(s *ir.Suite) {
	for _, r := range t {
		r.SuiteStarted(s)
	}
}

func (t Tee) TestStarted(test *ir.Test) {
	for _, r := range t {
		r.TestStarted(test)
	}
}

func (t Tee) CaseProgress(test *ir.Test, completed, total int) {
	for _, r := range t {
		r.CaseProgress(test, completed, total)
	}
}

func (t Tee) TestFinished(test *ir.Test) {
	for _, r := range t {
		r.TestFinished(test)
	}
}

func (t Tee) Summary(sum ir.Summary) {
	for _, r := range t {
		r.Summary(sum)
	}
}
