package engine

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"

	"github.com/roach88/ordeal/internal/canon"
	"github.com/roach88/ordeal/internal/ir"
)

// AssertionFailure is the contract an assertion library's errors satisfy to
// be rendered as an expected/actual diff.
type AssertionFailure interface {
	error
	Expected() any
	Actual() any
}

// typeCheckPattern recognizes type-assertion failure messages such as
// "expected 5 to be a string".
var typeCheckPattern = regexp.MustCompile(`^expected (?s:.+) to be an? ([a-z]+)$`)

// classify turns a handler failure into a result.
//
// Order of precedence:
//  1. assertion failures, rendered as a diff (or a type mismatch)
//  2. a registered error handler for the error's kind, used verbatim
//  3. a generic "No errors" versus "<kind>: <message>" result
func (e *Engine) classify(err error) ir.Result {
	var af AssertionFailure
	if errors.As(err, &af) {
		return classifyAssertion(af)
	}

	kind := KindOf(err)
	if h, ok := e.handlers[kind]; ok {
		return h(err)
	}
	return ir.Failure("No errors", fmt.Sprintf("%s: %s", kind, err.Error()), ir.FormatNone)
}

func classifyAssertion(af AssertionFailure) ir.Result {
	if m := typeCheckPattern.FindStringSubmatch(af.Error()); m != nil {
		return ir.Failure(m[1], canon.KindOf(af.Actual()), ir.FormatNone)
	}

	mode := ir.FormatStr
	if canon.IsStructured(af.Actual()) {
		mode = ir.FormatObj
	}
	return ir.Failure(canon.Encode(af.Expected()), canon.Encode(af.Actual()), mode)
}

// KindOf names the kind of an error for error handler lookup.
//
// The first error in the chain that has a Name() string method supplies the
// kind. Otherwise the first error whose type is not a standard library
// wrapper supplies its type name, without package or pointer. Errors built
// with errors.New or fmt.Errorf alone are of kind "Error".
func KindOf(err error) string {
	for cur := err; cur != nil; cur = errors.Unwrap(cur) {
		if n, ok := cur.(interface{ Name() string }); ok {
			return n.Name()
		}
		t := reflect.TypeOf(cur)
		for t.Kind() == reflect.Pointer {
			t = t.Elem()
		}
		switch t.PkgPath() {
		case "errors", "fmt":
			continue
		}
		if t.Name() != "" {
			return t.Name()
		}
	}
	return "Error"
}
