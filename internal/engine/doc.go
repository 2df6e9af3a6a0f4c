// Package engine registers and executes suites, tests and cases.
//
// Registration builds a tree from nested calls:
//
//	e := engine.New()
//	e.Suite("math", func() {
//		e.Test("adds", func() error {
//			return assert.Equal(3, 1+2)
//		})
//		e.TestCases("squares", func() error {
//			e.Case(func() error { return assert.Equal(4, 2*2) })
//			e.Case(func() error { return assert.Equal(9, 3*3) })
//			return nil
//		})
//	})
//	summary := e.Run()
//
// Suite bodies run immediately and may nest. Tests declared outside of any
// suite are kept with a warning but never run. A TestCases body runs at
// registration time to collect its cases; the cases run later.
//
// Run walks the tree depth-first: each suite's tests in registration order,
// then its child suites. Every test and case runs inside its own failure
// boundary, so one failing handler never stops the run. Failures are
// classified into results (see classify.go) and appended to the summary.
//
// An Engine is not safe for concurrent use. Bodies call back into the engine,
// so registration and Run must stay on the goroutine that owns it.
package engine
