package report

import (
	"encoding/json"
	"io"

	"github.com/roach88/ordeal/internal/ir"
)

// Document is the JSON form of a run summary.
type Document struct {
	SchemaVersion string     `json:"schema_version"`
	EngineVersion string     `json:"engine_version"`
	Summary       ir.Summary `json:"summary"`
}

// NewDocument wraps a summary with version information.
func NewDocument(sum ir.Summary) Document {
	return Document{
		SchemaVersion: ir.SchemaVersion,
		EngineVersion: ir.EngineVersion,
		Summary:       sum,
	}
}

// JSON is a Reporter that ignores progress and writes the summary as one
// indented JSON document.
type JSON struct {
	out io.Writer
	err error
}

// NewJSON creates a JSON reporter writing to w.
func NewJSON(w io.Writer) *JSON {
	return &JSON{out: w}
}

func (*JSON) SuiteStarted(*ir.Suite)          {}
func (*JSON) TestStarted(*ir.Test)            {}
func (*JSON) CaseProgress(*ir.Test, int, int) {}
func (*JSON) TestFinished(*ir.Test)           {}

// Summary writes the document.
func (j *JSON) Summary(sum ir.Summary) {
	enc := json.NewEncoder(j.out)
	enc.SetIndent("", "  ")
	j.err = enc.Encode(NewDocument(sum))
}

// Err returns the error of the last write, if any.
func (j *JSON) Err() error {
	return j.err
}
