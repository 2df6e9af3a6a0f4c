package engine

import (
	"github.com/roach88/ordeal/internal/ir"
)

// Run executes every registered suite depth-first and returns the summary.
//
// The summary is reported once, when the last live suite has been traversed
// (or immediately when nothing was registered). Later calls return the same
// summary without executing or reporting again.
func (e *Engine) Run() ir.Summary {
	if e.summary != nil {
		return *e.summary
	}

	e.logger.Info("run started", "suites", len(e.roots))
	roots := e.roots
	e.roots = nil
	e.runSuites(roots)

	if e.summary == nil {
		e.finish()
	}
	return *e.summary
}

func (e *Engine) runSuites(ids []ir.ID) {
	for _, id := range ids {
		s := e.suite(id)
		e.reporter.SuiteStarted(s)

		for _, tid := range s.Tests {
			e.runTest(s, e.test(tid))
		}
		e.runSuites(s.Children)

		delete(e.objects, id)
		e.live--
		if e.live == 0 {
			e.finish()
		}
	}
}

func (e *Engine) runTest(s *ir.Suite, t *ir.Test) {
	e.reporter.TestStarted(t)

	entry := ir.SummaryEntry{
		TestID:        t.ID,
		Title:         s.Title + " > " + t.Title,
		Parameterized: t.Parameterized(),
	}

	if !t.Parameterized() {
		if err := invoke(t.Handler); err != nil {
			t.Result = e.classify(err)
		}
	} else {
		total := len(t.Cases)
		passed := total
		t.Result.PassedCases = &passed
		t.Result.TotalCases = &total

		for i, cid := range t.Cases {
			c := e.testCase(cid)
			if err := invoke(c.Handler); err != nil {
				c.Result = e.classify(err)
			}
			if !c.Result.Passed {
				passed--
				t.Result.Passed = false
				entry.FailedCases = append(entry.FailedCases, cid)
				entry.CaseFailures = append(entry.CaseFailures, ir.CaseFailure{
					ID:     cid,
					CaseNo: c.CaseNo,
					Result: c.Result,
				})
			}
			e.reporter.CaseProgress(t, i+1, total)
		}
	}

	entry.Result = snapshot(t.Result)
	e.entries = append(e.entries, entry)
	e.logger.Debug("test finished", "test", ir.Describe(t), "passed", t.Result.Passed)
	e.reporter.TestFinished(t)
}

func (e *Engine) finish() {
	sum := ir.NewSummary(e.entries, e.warnings)
	e.summary = &sum
	e.logger.Info("run finished",
		"total", sum.Total,
		"passed", sum.Passed,
		"failed", sum.Failed,
		"warnings", len(sum.Warnings))
	e.reporter.Summary(sum)
}

// invoke runs h inside a failure boundary. A recovered panic becomes the
// returned error; usage violations keep unwinding.
func invoke(h ir.Handler) (err error) {
	if h == nil {
		return nil
	}
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		if ue, ok := r.(*UsageError); ok {
			panic(ue)
		}
		if perr, ok := r.(error); ok {
			err = perr
			return
		}
		err = &PanicError{Value: r}
	}()
	return h()
}

// snapshot copies a result so later mutation of the test does not leak into
// the summary.
func snapshot(r ir.Result) ir.Result {
	if r.PassedCases != nil {
		n := *r.PassedCases
		r.PassedCases = &n
	}
	if r.TotalCases != nil {
		n := *r.TotalCases
		r.TotalCases = &n
	}
	return r
}
