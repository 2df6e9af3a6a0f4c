package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/roach88/ordeal/internal/diff"
	"github.com/roach88/ordeal/internal/ir"
	"github.com/roach88/ordeal/internal/style"
)

// WriteSummary writes the end-of-run report:
//
//   - every failed plain test with its expected value and diff
//   - every parameterized test with failing cases, and each failed case
//   - the failed/passed/total counts
//   - the warnings, last
func WriteSummary(w io.Writer, sum ir.Summary, s style.Styler, r *diff.Renderer) {
	for _, entry := range sum.Entries {
		switch {
		case entry.Parameterized:
			writeCasesFailure(w, entry, s, r)
		case !entry.Result.Passed:
			fmt.Fprintln(w)
			fmt.Fprintf(w, "%s %s\n", s.Style(style.SpanHeading, "FAIL"), s.Style(style.SpanTitle, entry.Title))
			writePair(w, " ", entry.Result, r)
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, countsLine(sum, s))

	for _, warning := range sum.Warnings {
		fmt.Fprintln(w, s.Style(style.SpanWarning, "Warning: "+warning))
	}
}

func writeCasesFailure(w io.Writer, entry ir.SummaryEntry, s style.Styler, r *diff.Renderer) {
	res := entry.Result
	if res.PassedCases == nil || res.TotalCases == nil || *res.PassedCases == *res.TotalCases {
		return
	}
	failed := *res.TotalCases - *res.PassedCases

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s %s (%d of %d cases failed)\n",
		s.Style(style.SpanHeading, "FAIL"),
		s.Style(style.SpanTitle, entry.Title),
		failed, *res.TotalCases)

	for _, cf := range entry.CaseFailures {
		fmt.Fprintf(w, "  Case #%d\n", cf.CaseNo)
		writePair(w, "   ", cf.Result, r)
	}
}

func writePair(w io.Writer, prefix string, res ir.Result, r *diff.Renderer) {
	fmt.Fprintf(w, "%sExpected: %s\n", prefix, r.Expected(res.Expected))
	fmt.Fprintf(w, "%sActual:   %s\n", prefix, r.Render(res.FormatMode, res.Expected, res.Actual))
}

func countsLine(sum ir.Summary, s style.Styler) string {
	var parts []string
	if sum.Failed > 0 {
		parts = append(parts, s.Style(style.SpanFail, fmt.Sprintf("%d %s failed", sum.Failed, tests(sum.Failed))))
	}
	if sum.Passed > 0 {
		parts = append(parts, s.Style(style.SpanPass, fmt.Sprintf("%d %s passed", sum.Passed, tests(sum.Passed))))
	}
	parts = append(parts, s.Style(style.SpanBold, fmt.Sprintf("%d %s total", sum.Total, tests(sum.Total))))
	return strings.Join(parts, ", ")
}

func tests(n int) string {
	if n == 1 {
		return "test"
	}
	return "tests"
}
