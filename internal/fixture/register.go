package fixture

import (
	"github.com/roach88/ordeal/internal/engine"
	"github.com/roach88/ordeal/internal/ir"
)

// Register declares the contents of files on e, in order. Each file's error
// handlers are registered before its suites.
func Register(e *engine.Engine, files []*File) {
	for _, f := range files {
		for _, h := range f.ErrorHandlers {
			e.RegisterErrorHandler(h.Kind, h.handler())
		}
		for _, s := range f.Suites {
			registerSuite(e, s)
		}
		for _, t := range f.Tests {
			registerTest(e, t)
		}
	}
}

func registerSuite(e *engine.Engine, s SuiteSpec) {
	e.Suite(s.Title, func() {
		for _, t := range s.Tests {
			registerTest(e, t)
		}
		for _, child := range s.Suites {
			registerSuite(e, child)
		}
	})
}

func registerTest(e *engine.Engine, t TestSpec) {
	if len(t.Cases) == 0 {
		e.Test(t.Title, t.Check.Run)
		return
	}

	e.TestCases(t.Title, func() error {
		for _, c := range t.Cases {
			e.Case(c.Run)
		}
		if t.Check.Declared() {
			return t.Check.Run()
		}
		return nil
	})
}

func (h ErrorHandlerSpec) handler() ir.ErrorHandler {
	mode := ir.FormatMode(h.Format)
	if mode == "" {
		mode = ir.FormatNone
	}
	return func(err error) ir.Result {
		actual := h.Actual
		if actual == "" {
			actual = err.Error()
		}
		return ir.Result{
			Passed:     h.Passed,
			Expected:   h.Expected,
			Actual:     actual,
			FormatMode: mode,
		}
	}
}
