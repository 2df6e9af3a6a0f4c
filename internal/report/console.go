package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/roach88/ordeal/internal/diff"
	"github.com/roach88/ordeal/internal/ir"
	"github.com/roach88/ordeal/internal/style"
)

// Status markers.
const (
	MarkerPending = "⚬"
	MarkerPass    = "✔"
	MarkerFail    = "🗴"
)

const indentUnit = "  "

// Console is a Reporter for terminals and plain text logs.
type Console struct {
	out    io.Writer
	styler style.Styler
	diff   *diff.Renderer
	width  int

	// live rewrites the current status line in place while a test runs.
	live bool
}

// ConsoleOption configures a Console.
type ConsoleOption func(*Console)

// WithStyler sets the styler. Default: style.Plain.
func WithStyler(s style.Styler) ConsoleOption {
	return func(c *Console) {
		c.styler = s
	}
}

// WithDiffRenderer sets the diff renderer. Default: positional diff through
// the console's styler.
func WithDiffRenderer(r *diff.Renderer) ConsoleOption {
	return func(c *Console) {
		c.diff = r
	}
}

// WithWidth truncates titles to n cells. Zero disables truncation.
func WithWidth(n int) ConsoleOption {
	return func(c *Console) {
		c.width = n
	}
}

// WithLive enables in-place status line updates. Use it only when the
// output is a terminal.
func WithLive(live bool) ConsoleOption {
	return func(c *Console) {
		c.live = live
	}
}

// NewConsole creates a Console writing to w.
func NewConsole(w io.Writer, opts ...ConsoleOption) *Console {
	c := &Console{
		out:    w,
		styler: style.Plain{},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.diff == nil {
		c.diff = diff.New(c.styler)
	}
	return c
}

// SuiteStarted prints the suite title at its depth.
func (c *Console) SuiteStarted(s *ir.Suite) {
	fmt.Fprintln(c.out, indent(s.Depth)+c.truncate(s.Title))
}

// TestStarted shows a pending status line.
func (c *Console) TestStarted(t *ir.Test) {
	if !c.live {
		return
	}
	c.rewrite(c.statusLine(t, style.SpanPending, MarkerPending, ""))
}

// CaseProgress updates the pending line with the number of completed cases.
func (c *Console) CaseProgress(t *ir.Test, completed, total int) {
	if !c.live {
		return
	}
	c.rewrite(c.statusLine(t, style.SpanPending, MarkerPending, fmt.Sprintf(" [%d/%d]", completed, total)))
}

// TestFinished replaces the pending line with the final status.
func (c *Console) TestFinished(t *ir.Test) {
	span, marker := style.SpanPass, MarkerPass
	if !t.Result.Passed {
		span, marker = style.SpanFail, MarkerFail
	}

	suffix := ""
	if t.Result.PassedCases != nil && t.Result.TotalCases != nil {
		suffix = fmt.Sprintf(" (%d/%d cases)", *t.Result.PassedCases, *t.Result.TotalCases)
	}

	line := c.statusLine(t, span, marker, suffix)
	if c.live {
		line = "\r" + ansi.EraseEntireLine + line
	}
	fmt.Fprintln(c.out, line)
}

// Summary prints the failure listing, the counts and the warnings.
func (c *Console) Summary(sum ir.Summary) {
	var b strings.Builder
	WriteSummary(&b, sum, c.styler, c.diff)
	io.WriteString(c.out, b.String())
}

func (c *Console) statusLine(t *ir.Test, span style.Span, marker, suffix string) string {
	return indent(t.Depth) + c.styler.Style(span, marker) + " " + c.truncate(t.Title) + suffix
}

func (c *Console) rewrite(line string) {
	fmt.Fprint(c.out, "\r"+ansi.EraseEntireLine+line)
}

func (c *Console) truncate(title string) string {
	if c.width <= 0 {
		return title
	}
	return ansi.Truncate(title, c.width, "…")
}

func indent(depth int) string {
	return strings.Repeat(indentUnit, depth)
}
