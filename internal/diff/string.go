package diff

import (
	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/roach88/ordeal/internal/style"
)

// String renders a positional diff of actual against expected.
func (r *Renderer) String(expected, actual string) string {
	exp := []rune(expected)
	act := []rune(actual)
	s := &spans{styler: r.styler}

	n := min(len(exp), len(act))
	for i := 0; i < n; i++ {
		if exp[i] == act[i] {
			s.add(style.SpanPlain, string(act[i]))
		} else {
			s.add(style.SpanChanged, string(act[i]))
		}
	}

	switch {
	case len(act) > len(exp):
		s.add(style.SpanAdded, string(act[n:]))
	case len(exp) > len(act):
		s.add(style.SpanRemoved, string(exp[n:]))
	}

	return s.String()
}

// Myers renders an aligned diff: inserted text as added, deleted text as
// removed.
func (r *Renderer) Myers(expected, actual string) string {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffCleanupSemantic(dmp.DiffMain(expected, actual, false))

	s := &spans{styler: r.styler}
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			s.add(style.SpanPlain, d.Text)
		case diffmatchpatch.DiffInsert:
			s.add(style.SpanAdded, d.Text)
		case diffmatchpatch.DiffDelete:
			s.add(style.SpanRemoved, d.Text)
		}
	}
	return s.String()
}
