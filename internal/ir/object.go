package ir

import "fmt"

// ID identifies a suite, test or case within one engine.
// IDs are allocated from a single counter shared by all kinds, so they
// order objects by creation regardless of type. They are never reused.
type ID int64

// Kind is the discriminant of the Object variants.
type Kind string

const (
	KindSuite Kind = "suite"
	KindTest  Kind = "test"
	KindCase  Kind = "testCase"
)

// Handler is a test or case body. A handler fails by returning a non-nil
// error or by panicking.
type Handler func() error

// Node holds the fields every registered object carries.
type Node struct {
	ID   ID   `json:"id"`
	Kind Kind `json:"type"`

	// Parent is nil for top-level suites and orphaned tests.
	Parent *ID `json:"parent,omitempty"`

	// Depth is the nesting level at registration time: the number of
	// enclosing suites for suites and tests, test depth + 1 for cases.
	Depth int `json:"depth"`
}

// Object is a sealed interface over the three registered variants.
// Only *Suite, *Test and *TestCase implement it.
type Object interface {
	Header() *Node
	object() // Sealed - only these types implement it
}

// Suite is a named grouping of tests and nested suites.
type Suite struct {
	Node
	Title string `json:"title"`

	// Tests holds test ids in registration order.
	Tests []ID `json:"tests"`

	// Children holds nested suite ids in registration order.
	Children []ID `json:"children"`
}

// Test is a single named check. A test with cases is parameterized; its own
// handler never runs during execution.
type Test struct {
	Node
	Title   string  `json:"title"`
	Handler Handler `json:"-"`
	Cases   []ID    `json:"children"`
	Result  Result  `json:"result"`

	// Orphaned marks a test declared outside of any suite. Orphaned tests
	// are kept for diagnostics but never execute.
	Orphaned bool `json:"orphaned,omitempty"`
}

// Parameterized reports whether the test runs through its cases.
func (t *Test) Parameterized() bool {
	return len(t.Cases) > 0
}

// TestCase is one parameterized invocation of a test's logic.
type TestCase struct {
	Node
	Handler Handler `json:"-"`

	// CaseNo is the 1-based position within the parent test.
	CaseNo int    `json:"caseNo"`
	Result Result `json:"result"`
}

func (s *Suite) Header() *Node    { return &s.Node }
func (t *Test) Header() *Node     { return &t.Node }
func (c *TestCase) Header() *Node { return &c.Node }

func (*Suite) object()    {}
func (*Test) object()     {}
func (*TestCase) object() {}

// Describe renders a short label for logs and warnings.
func Describe(o Object) string {
	switch v := o.(type) {
	case *Suite:
		return fmt.Sprintf("suite %q (#%d)", v.Title, v.ID)
	case *Test:
		return fmt.Sprintf("test %q (#%d)", v.Title, v.ID)
	case *TestCase:
		return fmt.Sprintf("case %d (#%d)", v.CaseNo, v.ID)
	default:
		panic(fmt.Sprintf("ir: unknown object type %T", o))
	}
}
