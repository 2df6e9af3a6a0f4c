package engine

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	check "github.com/roach88/ordeal/internal/assert"
	"github.com/roach88/ordeal/internal/ir"
	"github.com/roach88/ordeal/internal/testutil"
)

func setupEngine(t *testing.T) (*Engine, *testutil.Recorder, *testutil.ExitRecorder) {
	t.Helper()
	rec := &testutil.Recorder{}
	ex := testutil.NewExitRecorder()
	return New(WithReporter(rec), WithExitFunc(ex.Exit)), rec, ex
}

func pass() error { return nil }

func TestRun_DepthFirstOrder(t *testing.T) {
	e, rec, _ := setupEngine(t)

	var ran []string
	body := func(name string) ir.Handler {
		return func() error {
			ran = append(ran, name)
			return nil
		}
	}

	e.Suite("A", func() {
		e.Test("a1", body("a1"))
		e.Suite("B", func() {
			e.Test("b1", body("b1"))
		})
		e.Test("a2", body("a2"))
	})
	e.Suite("C", func() {
		e.Test("c1", body("c1"))
	})

	sum := e.Run()

	assert.Equal(t, []string{"a1", "a2", "b1", "c1"}, ran, "tests before child suites")
	assert.Equal(t, []string{
		"suite A @0",
		"start a1", "finish a1 true",
		"start a2", "finish a2 true",
		"suite B @1",
		"start b1", "finish b1 true",
		"suite C @0",
		"start c1", "finish c1 true",
	}, rec.Events)

	require.Len(t, sum.Entries, 4)
	assert.Equal(t, "A > a1", sum.Entries[0].Title)
	assert.Equal(t, "B > b1", sum.Entries[2].Title)
	assert.Equal(t, 4, sum.Passed)
	assert.True(t, sum.OK())
}

func TestRun_PassingTestKeepsDefaultResult(t *testing.T) {
	e, _, _ := setupEngine(t)
	e.Suite("s", func() {
		e.Test("ok", pass)
	})

	sum := e.Run()
	require.Len(t, sum.Entries, 1)
	assert.Equal(t, ir.DefaultResult(), sum.Entries[0].Result)
	assert.Equal(t, 0, sum.Failed)
}

func TestRun_CasesCountFailures(t *testing.T) {
	e, rec, _ := setupEngine(t)

	var caseIDs []ir.ID
	var ran []int
	e.Suite("s", func() {
		e.TestCases("squares", func() error {
			for i := 1; i <= 3; i++ {
				n := i
				caseIDs = append(caseIDs, e.Case(func() error {
					ran = append(ran, n)
					if n == 2 {
						return check.Equal(4, 5)
					}
					return nil
				}))
			}
			return nil
		})
	})

	sum := e.Run()

	assert.Equal(t, []int{1, 2, 3}, ran, "no short-circuit after a failing case")
	require.Len(t, sum.Entries, 1)
	entry := sum.Entries[0]

	assert.True(t, entry.Parameterized)
	assert.False(t, entry.Result.Passed)
	require.NotNil(t, entry.Result.PassedCases)
	require.NotNil(t, entry.Result.TotalCases)
	assert.Equal(t, 2, *entry.Result.PassedCases)
	assert.Equal(t, 3, *entry.Result.TotalCases)
	assert.Equal(t, []ir.ID{caseIDs[1]}, entry.FailedCases)

	require.Len(t, entry.CaseFailures, 1)
	assert.Equal(t, 2, entry.CaseFailures[0].CaseNo)
	assert.Equal(t, ir.Failure("4", "5", ir.FormatStr), entry.CaseFailures[0].Result)

	assert.Contains(t, rec.Events, "progress squares 1/3")
	assert.Contains(t, rec.Events, "progress squares 3/3")
	assert.Contains(t, rec.Events, "finish squares false")
}

func TestRegister_IDsAndCaseNumbering(t *testing.T) {
	e, _, _ := setupEngine(t)

	var suiteID, testID ir.ID
	var cases []ir.ID
	suiteID = e.Suite("s", func() {
		testID = e.TestCases("t", func() error {
			cases = append(cases, e.Case(pass), e.Case(pass))
			return nil
		})
	})

	assert.Equal(t, ir.ID(0), suiteID)
	assert.Equal(t, ir.ID(1), testID)
	assert.Equal(t, []ir.ID{2, 3}, cases)

	o, ok := e.Lookup(cases[1])
	require.True(t, ok)
	c, ok := o.(*ir.TestCase)
	require.True(t, ok)
	assert.Equal(t, 2, c.CaseNo)
	assert.Equal(t, 2, c.Depth)
	require.NotNil(t, c.Parent)
	assert.Equal(t, testID, *c.Parent)

	o, ok = e.Lookup(testID)
	require.True(t, ok)
	tst := o.(*ir.Test)
	assert.True(t, tst.Parameterized())
	assert.Nil(t, tst.Handler, "a cases body never runs again")
	assert.Equal(t, 1, tst.Depth)

	assert.Equal(t, []ir.ID{suiteID}, e.Roots())
}

func TestRegister_NestedSuitesLinkToParent(t *testing.T) {
	e, _, _ := setupEngine(t)

	var inner ir.ID
	outer := e.Suite("outer", func() {
		inner = e.Suite("inner", nil)
	})

	o, _ := e.Lookup(outer)
	assert.Equal(t, []ir.ID{inner}, o.(*ir.Suite).Children)

	i, _ := e.Lookup(inner)
	require.NotNil(t, i.Header().Parent)
	assert.Equal(t, outer, *i.Header().Parent)
	assert.Equal(t, 1, i.Header().Depth)
	assert.Equal(t, []ir.ID{outer}, e.Roots())
}

func TestCase_OutsideTestExits(t *testing.T) {
	e, rec, ex := setupEngine(t)

	var got any
	func() {
		defer func() { got = recover() }()
		e.Suite("s", func() {
			e.Case(pass)
		})
	}()

	ue, ok := got.(*UsageError)
	require.True(t, ok, "panics with *UsageError, got %v", got)
	assert.Equal(t, ExitCaseOutsideTest, ue.Code)
	assert.Equal(t, []int{ExitCaseOutsideTest}, ex.Codes())

	// The stack was unwound by the panic; nothing was run or summarized.
	assert.Empty(t, rec.Summaries)
	_, ok = e.Lookup(1)
	assert.False(t, ok, "no case was allocated")
}

func TestCase_InsidePlainTestBodyExitsAtRunTime(t *testing.T) {
	e, _, ex := setupEngine(t)
	e.Suite("s", func() {
		e.Test("plain", func() error {
			e.Case(pass)
			return nil
		})
	})

	assert.Panics(t, func() { e.Run() })
	assert.Equal(t, []int{ExitCaseOutsideTest}, ex.Codes())
}

func TestTestCases_BodyErrorExits(t *testing.T) {
	tests := []struct {
		name string
		body ir.Handler
	}{
		{"returned error", func() error { return errors.New("boom") }},
		{"panic", func() error { panic("boom") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, _, ex := setupEngine(t)

			var got any
			func() {
				defer func() { got = recover() }()
				e.Suite("s", func() {
					e.TestCases("bad", tt.body)
				})
			}()

			ue, ok := got.(*UsageError)
			require.True(t, ok)
			assert.Equal(t, ExitMixedCaseBody, ue.Code)
			assert.True(t, IsUsageError(ue))
			assert.Equal(t, []int{ExitMixedCaseBody}, ex.Codes())
		})
	}
}

func TestTestCases_NoCasesWarns(t *testing.T) {
	e, _, _ := setupEngine(t)
	e.Suite("s", func() {
		e.TestCases("empty", pass)
	})

	sum := e.Run()
	assert.Equal(t, []string{`test "empty" declares no cases`}, sum.Warnings)
	require.Len(t, sum.Entries, 1)
	assert.True(t, sum.Entries[0].Result.Passed)
}

func TestOrphanTestWarnsAndNeverRuns(t *testing.T) {
	e, _, _ := setupEngine(t)

	ran := false
	id := e.Test("lonely", func() error {
		ran = true
		return nil
	})

	o, ok := e.Lookup(id)
	require.True(t, ok)
	assert.True(t, o.(*ir.Test).Orphaned)

	sum := e.Run()
	assert.False(t, ran)
	assert.Empty(t, sum.Entries)
	assert.Equal(t, []string{`test "lonely" is declared outside of any suite and will not run`}, sum.Warnings)
}

func TestRun_EmptyTreeReportsOnce(t *testing.T) {
	e, rec, _ := setupEngine(t)

	sum := e.Run()
	assert.Equal(t, 0, sum.Total)
	require.Len(t, rec.Summaries, 1)

	again := e.Run()
	assert.Equal(t, sum, again)
	assert.Len(t, rec.Summaries, 1, "summary is reported exactly once")
}

func TestRun_SummaryReportedOnceAfterLastSuite(t *testing.T) {
	e, rec, _ := setupEngine(t)

	runs := 0
	e.Suite("a", func() {
		e.Test("t", func() error {
			runs++
			return nil
		})
	})
	e.Suite("b", nil)

	e.Run()
	e.Run()

	assert.Equal(t, 1, runs, "tests do not run twice")
	assert.Len(t, rec.Summaries, 1)
}

func TestRun_SuitesAreDeletedOnceTraversed(t *testing.T) {
	e, _, _ := setupEngine(t)
	id := e.Suite("s", func() {
		e.Test("t", pass)
	})

	e.Run()

	_, ok := e.Lookup(id)
	assert.False(t, ok)
}

func TestReset(t *testing.T) {
	e, rec, _ := setupEngine(t)
	e.Suite("s", func() {
		e.Test("t", pass)
	})
	e.RegisterErrorHandler("Timeout", func(error) ir.Result { return ir.DefaultResult() })
	e.Run()

	e.Reset()

	assert.Empty(t, e.Roots())
	assert.Empty(t, e.Warnings())
	assert.Equal(t, ir.ID(0), e.Suite("again", nil), "ids restart at 0")

	sum := e.Run()
	assert.Equal(t, 0, sum.Total)
	assert.Len(t, rec.Summaries, 2, "a reset engine reports again")
}
