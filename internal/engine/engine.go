package engine

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/roach88/ordeal/internal/ir"
)

// Reporter receives execution progress and the final summary.
// Calls arrive in execution order on the goroutine running Run.
type Reporter interface {
	SuiteStarted(s *ir.Suite)
	TestStarted(t *ir.Test)
	CaseProgress(t *ir.Test, completed, total int)
	TestFinished(t *ir.Test)
	Summary(s ir.Summary)
}

// NopReporter discards all progress.
type NopReporter struct{}

func (NopReporter) SuiteStarted(*ir.Suite)          {}
func (NopReporter) TestStarted(*ir.Test)            {}
func (NopReporter) CaseProgress(*ir.Test, int, int) {}
func (NopReporter) TestFinished(*ir.Test)           {}
func (NopReporter) Summary(ir.Summary)              {}

// Engine owns the registration tree and executes it.
//
// Thread-safety model: none. See the package documentation.
//
// INVARIANTS:
//   - ids are unique and increase in creation order across all kinds
//   - a test's cases are numbered 1..n in declaration order
//   - the summary is reported at most once per Reset
type Engine struct {
	clock    *Clock
	objects  map[ir.ID]ir.Object
	roots    []ir.ID // top-level suites in registration order
	live     int     // suites not yet traversed
	handlers map[string]ir.ErrorHandler

	suiteStack []ir.ID
	testStack  []ir.ID

	entries  []ir.SummaryEntry
	warnings []string
	summary  *ir.Summary

	reporter Reporter
	logger   *slog.Logger
	exit     func(code int)
}

// EngineOption allows configuration of engine collaborators.
type EngineOption func(*Engine)

// WithReporter sets the progress reporter. Default: NopReporter.
func WithReporter(r Reporter) EngineOption {
	return func(e *Engine) {
		e.reporter = r
	}
}

// WithLogger sets the logger. Default: discard.
func WithLogger(l *slog.Logger) EngineOption {
	return func(e *Engine) {
		e.logger = l
	}
}

// WithExitFunc replaces os.Exit for usage violations.
// The engine still panics with the *UsageError if the function returns.
func WithExitFunc(exit func(code int)) EngineOption {
	return func(e *Engine) {
		e.exit = exit
	}
}

// New creates an empty Engine.
func New(opts ...EngineOption) *Engine {
	e := &Engine{
		reporter: NopReporter{},
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		exit:     os.Exit,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.Reset()
	return e
}

// Reset discards every registered object, error handler, warning and the
// stored summary, and restarts id allocation at 0.
func (e *Engine) Reset() {
	e.clock = NewClock()
	e.objects = make(map[ir.ID]ir.Object)
	e.roots = nil
	e.live = 0
	e.handlers = make(map[string]ir.ErrorHandler)
	e.suiteStack = nil
	e.testStack = nil
	e.entries = nil
	e.warnings = nil
	e.summary = nil
}

// Lookup returns a live object by id. Suites disappear once traversed.
func (e *Engine) Lookup(id ir.ID) (ir.Object, bool) {
	o, ok := e.objects[id]
	return o, ok
}

// Roots returns the top-level suite ids in registration order.
func (e *Engine) Roots() []ir.ID {
	return append([]ir.ID(nil), e.roots...)
}

// Warnings returns the warnings recorded so far.
func (e *Engine) Warnings() []string {
	return append([]string(nil), e.warnings...)
}

// fail reports a usage violation and never returns.
func (e *Engine) fail(err *UsageError) {
	e.logger.Error("usage violation",
		"violation", err.Violation,
		"code", err.Code,
		"error", err.Error())
	e.exit(err.Code)
	panic(err)
}

func (e *Engine) suite(id ir.ID) *ir.Suite {
	s, ok := e.objects[id].(*ir.Suite)
	if !ok {
		panic(fmt.Sprintf("engine: object %d is not a live suite", id))
	}
	return s
}

func (e *Engine) test(id ir.ID) *ir.Test {
	t, ok := e.objects[id].(*ir.Test)
	if !ok {
		panic(fmt.Sprintf("engine: object %d is not a test", id))
	}
	return t
}

func (e *Engine) testCase(id ir.ID) *ir.TestCase {
	c, ok := e.objects[id].(*ir.TestCase)
	if !ok {
		panic(fmt.Sprintf("engine: object %d is not a case", id))
	}
	return c
}
