package diff

import (
	"strconv"
	"strings"

	"github.com/roach88/ordeal/internal/canon"
	"github.com/roach88/ordeal/internal/style"
)

// Difference is a leaf comparison between the two sides.
type Difference struct {
	Expected any
	Actual   any

	// Existed is false when the key was absent from the expected value.
	Existed bool
}

// Equal reports whether the leaf is unchanged.
func (d Difference) Equal() bool {
	return d.Existed && canon.Encode(d.Expected) == canon.Encode(d.Actual)
}

// Entry is one key of a Differences node: either a leaf or a nested node.
type Entry struct {
	Key    string
	Leaf   *Difference
	Nested *Differences
}

// Differences is the key-level comparison of a container.
// Entries follow the actual value's key order.
type Differences struct {
	// Array is true when the actual container is an array.
	Array   bool
	Entries []Entry
}

// Lookup returns the entry for key.
func (d *Differences) Lookup(key string) (Entry, bool) {
	for _, e := range d.Entries {
		if e.Key == key {
			return e, true
		}
	}
	return Entry{}, false
}

// FindDifferences compares two plain JSON values key by key.
//
// Only keys of actual are visited. When both sides hold a container under
// the same key the comparison recurses; otherwise a leaf records both
// values. Arrays are containers keyed by index.
func FindDifferences(expected, actual any) *Differences {
	res := &Differences{}
	if _, ok := actual.([]any); ok {
		res.Array = true
	}

	for _, key := range keysOf(actual) {
		act, _ := lookup(actual, key)
		exp, existed := lookup(expected, key)

		if isContainer(act) && isContainer(exp) {
			res.Entries = append(res.Entries, Entry{Key: key, Nested: FindDifferences(exp, act)})
			continue
		}
		res.Entries = append(res.Entries, Entry{
			Key:  key,
			Leaf: &Difference{Expected: exp, Actual: act, Existed: existed},
		})
	}
	return res
}

// Object renders a structural diff of two serialized JSON values.
// If either side is not JSON, or actual is not a container, the positional
// string diff is used instead.
func (r *Renderer) Object(expected, actual string) string {
	act, err := canon.Decode([]byte(actual))
	if err != nil || !isContainer(act) {
		return r.String(expected, actual)
	}
	exp, err := canon.Decode([]byte(expected))
	if err != nil {
		exp = nil
	}

	var b strings.Builder
	r.writeDifferences(&b, FindDifferences(exp, act))
	return b.String()
}

func (r *Renderer) writeDifferences(b *strings.Builder, d *Differences) {
	open, closing := "{", "}"
	if d.Array {
		open, closing = "[", "]"
	}

	b.WriteString(open)
	for i, e := range d.Entries {
		if i > 0 {
			b.WriteString(", ")
		}
		if e.Nested != nil {
			if !d.Array {
				b.WriteString(e.Key + ": ")
			}
			r.writeDifferences(b, e.Nested)
			continue
		}
		r.writeLeaf(b, e.Key, *e.Leaf, d.Array)
	}
	b.WriteString(closing)
}

func (r *Renderer) writeLeaf(b *strings.Builder, key string, d Difference, inArray bool) {
	actual := canon.Encode(d.Actual)

	if !d.Existed {
		if !inArray {
			b.WriteString(r.styler.Style(style.SpanNewKey, key) + ": ")
		}
		b.WriteString(r.styler.Style(style.SpanNewKey, actual))
		return
	}

	if !inArray {
		b.WriteString(key + ": ")
	}
	if d.Equal() {
		b.WriteString(r.styler.Style(style.SpanMatch, actual))
		return
	}
	b.WriteString(r.styler.Style(style.SpanStruck, canon.Encode(d.Expected)))
	b.WriteString(" ")
	b.WriteString(r.styler.Style(style.SpanMismatch, actual))
}

func isContainer(v any) bool {
	switch v.(type) {
	case map[string]any, []any:
		return true
	}
	return false
}

func keysOf(v any) []string {
	switch c := v.(type) {
	case map[string]any:
		return canon.SortedKeys(c)
	case []any:
		keys := make([]string, len(c))
		for i := range c {
			keys[i] = strconv.Itoa(i)
		}
		return keys
	}
	return nil
}

func lookup(v any, key string) (any, bool) {
	switch c := v.(type) {
	case map[string]any:
		val, ok := c[key]
		return val, ok
	case []any:
		i, err := strconv.Atoi(key)
		if err != nil || i < 0 || i >= len(c) {
			return nil, false
		}
		return c[i], true
	}
	return nil, false
}
