package diff

import (
	"fmt"
	"strings"

	"github.com/roach88/ordeal/internal/ir"
	"github.com/roach88/ordeal/internal/style"
)

// Algorithm selects the string diff used for the str format mode.
type Algorithm string

const (
	// AlgorithmPositional compares runes at equal positions.
	AlgorithmPositional Algorithm = "positional"

	// AlgorithmMyers aligns insertions and deletions.
	AlgorithmMyers Algorithm = "myers"
)

// ParseAlgorithm validates an algorithm name. An empty name selects the
// positional diff.
func ParseAlgorithm(s string) (Algorithm, error) {
	switch Algorithm(s) {
	case "", AlgorithmPositional:
		return AlgorithmPositional, nil
	case AlgorithmMyers:
		return AlgorithmMyers, nil
	}
	return "", fmt.Errorf("invalid diff algorithm %q: must be positional or myers", s)
}

// Renderer renders expected/actual pairs through a Styler.
type Renderer struct {
	styler    style.Styler
	algorithm Algorithm
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithAlgorithm selects the string diff algorithm.
func WithAlgorithm(a Algorithm) Option {
	return func(r *Renderer) {
		r.algorithm = a
	}
}

// New creates a Renderer. A nil styler renders plain text.
func New(s style.Styler, opts ...Option) *Renderer {
	if s == nil {
		s = style.Plain{}
	}
	r := &Renderer{
		styler:    s,
		algorithm: AlgorithmPositional,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render renders actual against expected according to mode.
func (r *Renderer) Render(mode ir.FormatMode, expected, actual string) string {
	switch mode {
	case ir.FormatStr:
		if r.algorithm == AlgorithmMyers {
			return r.Myers(expected, actual)
		}
		return r.String(expected, actual)
	case ir.FormatObj:
		return r.Object(expected, actual)
	case ir.FormatNone, "":
		return r.None(expected, actual)
	default:
		panic(fmt.Sprintf("diff: unknown format mode %q", mode))
	}
}

// Expected renders the expected side of a pair.
func (r *Renderer) Expected(expected string) string {
	return r.styler.Style(style.SpanExpected, expected)
}

// None renders actual as plain highlighted text.
func (r *Renderer) None(_, actual string) string {
	return r.styler.Style(style.SpanMismatch, actual)
}

// spans accumulates styled runs, merging adjacent text of the same span.
type spans struct {
	styler style.Styler
	out    strings.Builder
	cur    strings.Builder
	span   style.Span
}

func (s *spans) add(span style.Span, text string) {
	if text == "" {
		return
	}
	if s.cur.Len() > 0 && span != s.span {
		s.flush()
	}
	s.span = span
	s.cur.WriteString(text)
}

func (s *spans) flush() {
	if s.cur.Len() == 0 {
		return
	}
	s.out.WriteString(s.styler.Style(s.span, s.cur.String()))
	s.cur.Reset()
}

func (s *spans) String() string {
	s.flush()
	return s.out.String()
}
