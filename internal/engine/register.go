package engine

import (
	"fmt"

	"github.com/roach88/ordeal/internal/ir"
)

// Suite declares a suite and runs body immediately. Suites and tests declared
// inside body become children of this suite.
func (e *Engine) Suite(title string, body func()) ir.ID {
	id := e.clock.Next()
	s := &ir.Suite{
		Node:  ir.Node{ID: id, Kind: ir.KindSuite, Depth: len(e.suiteStack)},
		Title: title,
	}
	if parent, ok := e.openSuite(); ok {
		s.Parent = &parent
		p := e.suite(parent)
		p.Children = append(p.Children, id)
	} else {
		e.roots = append(e.roots, id)
	}
	e.objects[id] = s
	e.live++
	e.logger.Debug("suite registered", "suite", ir.Describe(s), "depth", s.Depth)

	e.suiteStack = append(e.suiteStack, id)
	defer func() { e.suiteStack = e.suiteStack[:len(e.suiteStack)-1] }()

	if body != nil {
		body()
	}
	return id
}

// Test declares a plain test in the innermost open suite.
func (e *Engine) Test(title string, body ir.Handler) ir.ID {
	return e.declareTest(title, body, false)
}

// TestCases declares a parameterized test. Its body runs immediately and
// must declare the cases with Case; the body itself never runs again.
//
// If the body returns an error or panics, the engine exits with
// ExitMixedCaseBody.
func (e *Engine) TestCases(title string, body ir.Handler) ir.ID {
	return e.declareTest(title, body, true)
}

func (e *Engine) declareTest(title string, body ir.Handler, hasCases bool) ir.ID {
	id := e.clock.Next()
	t := &ir.Test{
		Node:    ir.Node{ID: id, Kind: ir.KindTest, Depth: len(e.suiteStack)},
		Title:   title,
		Handler: body,
		Result:  ir.DefaultResult(),
	}
	if parent, ok := e.openSuite(); ok {
		t.Parent = &parent
		p := e.suite(parent)
		p.Tests = append(p.Tests, id)
	} else {
		t.Orphaned = true
		e.warn(fmt.Sprintf("test %q is declared outside of any suite and will not run", title))
	}
	e.objects[id] = t
	e.logger.Debug("test registered", "test", ir.Describe(t), "cases", hasCases)

	if !hasCases {
		return id
	}

	t.Handler = nil
	e.testStack = append(e.testStack, id)
	err := invoke(body)
	e.testStack = e.testStack[:len(e.testStack)-1]
	if err != nil {
		e.fail(NewMixedCaseBodyError(title, err))
	}
	if len(t.Cases) == 0 {
		e.warn(fmt.Sprintf("test %q declares no cases", title))
	}
	return id
}

// Case declares a case of the innermost open test. Calling Case with no open
// test exits with ExitCaseOutsideTest.
func (e *Engine) Case(body ir.Handler) ir.ID {
	if len(e.testStack) == 0 {
		e.fail(NewCaseOutsideTestError())
	}
	parent := e.testStack[len(e.testStack)-1]
	t := e.test(parent)

	id := e.clock.Next()
	c := &ir.TestCase{
		Node:    ir.Node{ID: id, Kind: ir.KindCase, Parent: &parent, Depth: t.Depth + 1},
		Handler: body,
		CaseNo:  len(t.Cases) + 1,
		Result:  ir.DefaultResult(),
	}
	t.Cases = append(t.Cases, id)
	e.objects[id] = c
	return id
}

// RegisterErrorHandler sets the handler for errors of the given kind,
// replacing any previous one. See KindOf for how kinds are named.
func (e *Engine) RegisterErrorHandler(kind string, h ir.ErrorHandler) {
	if h == nil {
		delete(e.handlers, kind)
		return
	}
	e.handlers[kind] = h
}

func (e *Engine) openSuite() (ir.ID, bool) {
	if len(e.suiteStack) == 0 {
		return 0, false
	}
	return e.suiteStack[len(e.suiteStack)-1], true
}

func (e *Engine) warn(msg string) {
	e.logger.Warn(msg)
	e.warnings = append(e.warnings, msg)
}
