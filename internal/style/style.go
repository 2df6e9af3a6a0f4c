// Package style maps semantic spans of reporter output to terminal styles.
//
// Renderers never pick colors themselves: they tag text with a Span and hand
// it to a Styler. Palette styles spans with lipgloss; Markup wraps them in
// readable tags for tests.
package style

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Span names the role of a piece of output text.
type Span int

const (
	SpanPlain    Span = iota // unstyled
	SpanChanged              // character differing at the same position
	SpanAdded                // trailing text only present in actual
	SpanRemoved              // trailing text only present in expected
	SpanNewKey               // key absent from expected
	SpanMatch                // leaf value equal on both sides
	SpanMismatch             // actual value differing from expected
	SpanStruck               // expected value replaced by actual
	SpanExpected             // expected value label
	SpanPass                 // pass marker
	SpanFail                 // fail marker
	SpanPending              // running marker
	SpanHeading              // FAIL heading
	SpanTitle                // failing test title
	SpanBold                 // totals line
	SpanWarning              // warning lines
)

var spanNames = map[Span]string{
	SpanPlain:    "plain",
	SpanChanged:  "changed",
	SpanAdded:    "added",
	SpanRemoved:  "removed",
	SpanNewKey:   "new",
	SpanMatch:    "match",
	SpanMismatch: "mismatch",
	SpanStruck:   "struck",
	SpanExpected: "expected",
	SpanPass:     "pass",
	SpanFail:     "fail",
	SpanPending:  "pending",
	SpanHeading:  "heading",
	SpanTitle:    "title",
	SpanBold:     "bold",
	SpanWarning:  "warning",
}

// String returns the span's short name.
func (s Span) String() string {
	if name, ok := spanNames[s]; ok {
		return name
	}
	return fmt.Sprintf("span(%d)", int(s))
}

// Styler renders text for a span.
type Styler interface {
	Style(span Span, text string) string
}

// Color modes accepted by NewPalette.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// ValidColorModes defines the allowed color modes.
var ValidColorModes = []string{ColorAuto, ColorAlways, ColorNever}

// Palette styles spans with lipgloss.
type Palette struct {
	renderer *lipgloss.Renderer
	styles   map[Span]lipgloss.Style
}

// NewPalette creates a palette rendering for w.
// In auto mode the color profile is detected from w.
func NewPalette(w io.Writer, mode string) (*Palette, error) {
	r := lipgloss.NewRenderer(w)
	switch mode {
	case ColorAuto, "":
	case ColorAlways:
		r.SetColorProfile(termenv.ANSI256)
	case ColorNever:
		r.SetColorProfile(termenv.Ascii)
	default:
		return nil, fmt.Errorf("invalid color mode %q: must be one of %v", mode, ValidColorModes)
	}
	return newPalette(r), nil
}

func newPalette(r *lipgloss.Renderer) *Palette {
	red := lipgloss.Color("1")
	green := lipgloss.Color("2")
	yellow := lipgloss.Color("3")
	blue := lipgloss.Color("4")
	gray := lipgloss.Color("8")
	brightRed := lipgloss.Color("9")

	return &Palette{
		renderer: r,
		styles: map[Span]lipgloss.Style{
			SpanChanged:  r.NewStyle().Foreground(red),
			SpanAdded:    r.NewStyle().Foreground(red),
			SpanRemoved:  r.NewStyle().Foreground(gray),
			SpanNewKey:   r.NewStyle().Foreground(blue),
			SpanMatch:    r.NewStyle().Foreground(green),
			SpanMismatch: r.NewStyle().Foreground(red),
			SpanStruck:   r.NewStyle().Foreground(green).Strikethrough(true),
			SpanExpected: r.NewStyle().Foreground(green),
			SpanPass:     r.NewStyle().Foreground(green),
			SpanFail:     r.NewStyle().Foreground(red),
			SpanPending:  r.NewStyle().Foreground(yellow),
			SpanHeading:  r.NewStyle().Foreground(brightRed).Bold(true),
			SpanTitle:    r.NewStyle().Foreground(red),
			SpanBold:     r.NewStyle().Bold(true),
			SpanWarning:  r.NewStyle().Foreground(yellow),
		},
	}
}

// Colored reports whether the palette emits escape sequences.
func (p *Palette) Colored() bool {
	return p.renderer.ColorProfile() != termenv.Ascii
}

// Style implements Styler.
func (p *Palette) Style(span Span, text string) string {
	if text == "" {
		return ""
	}
	st, ok := p.styles[span]
	if !ok || !p.Colored() {
		return text
	}
	return st.Render(text)
}

// Plain is a Styler that returns text unchanged.
type Plain struct{}

// Style implements Styler.
func (Plain) Style(_ Span, text string) string {
	return text
}

// Markup is a Styler that wraps every non-plain span in [name:text] tags.
// It makes span boundaries visible in tests and golden files.
type Markup struct{}

// Style implements Styler.
func (Markup) Style(span Span, text string) string {
	if span == SpanPlain || text == "" {
		return text
	}
	var b strings.Builder
	b.WriteByte('[')
	b.WriteString(span.String())
	b.WriteByte(':')
	b.WriteString(text)
	b.WriteByte(']')
	return b.String()
}
