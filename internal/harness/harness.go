package harness

import (
	"bytes"
	"fmt"
	"log/slog"

	"github.com/roach88/ordeal/internal/engine"
	"github.com/roach88/ordeal/internal/fixture"
	"github.com/roach88/ordeal/internal/ir"
	"github.com/roach88/ordeal/internal/logging"
	"github.com/roach88/ordeal/internal/report"
	"github.com/roach88/ordeal/internal/testutil"
)

// Result captures one harness run.
type Result struct {
	Path    string
	Summary ir.Summary

	// Events is the reporter event stream, in testutil.Recorder form.
	Events []string

	// Transcript is the plain console output.
	Transcript []byte

	// ExitCodes lists the codes the engine requested, in order.
	ExitCodes []int

	// Violation is set when registration or execution stopped on a usage
	// violation. Summary is empty in that case.
	Violation *engine.UsageError
}

// Passed reports whether the run completed and every test passed.
func (r *Result) Passed() bool {
	return r.Violation == nil && r.Summary.OK()
}

// Option configures a run.
type Option func(*options)

type options struct {
	logger *slog.Logger
}

// WithLogger sets the engine logger. Default: discard.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// Run loads the suite file at path, registers it on a fresh engine and runs
// it.
//
// Execution flow:
//  1. Load and validate the file
//  2. Create an engine reporting to a recorder and a plain console
//  3. Register and run, recovering usage violations
//  4. Collect the summary, events, transcript and exit codes
func Run(path string, opts ...Option) (*Result, error) {
	o := &options{logger: logging.Discard()}
	for _, opt := range opts {
		opt(o)
	}

	file, err := fixture.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}

	var transcript bytes.Buffer
	rec := &testutil.Recorder{}
	exit := testutil.NewExitRecorder()

	e := engine.New(
		engine.WithReporter(report.Tee{rec, report.NewConsole(&transcript)}),
		engine.WithExitFunc(exit.Exit),
		engine.WithLogger(o.logger),
	)

	result := &Result{Path: path}
	result.Violation = execute(e, file)
	if sum, ok := rec.Last(); ok {
		result.Summary = sum
	}
	result.Events = rec.Events
	result.Transcript = transcript.Bytes()
	result.ExitCodes = exit.Codes()
	return result, nil
}

// execute registers and runs file, returning the usage violation that
// stopped it, if any.
func execute(e *engine.Engine, file *fixture.File) (violation *engine.UsageError) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		usage, ok := r.(*engine.UsageError)
		if !ok {
			panic(r)
		}
		violation = usage
	}()

	fixture.Register(e, []*fixture.File{file})
	e.Run()
	return nil
}
