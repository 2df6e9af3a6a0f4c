// Package fixture loads declarative suite files and registers them with an
// engine.
//
// A suite file is YAML or CUE:
//
//	suites:
//	  - title: math
//	    tests:
//	      - title: adds
//	        expect: 3
//	        actual: 3
//	      - title: is a string
//	        actual: 5
//	        type: string
//	      - title: squares
//	        cases:
//	          - {expect: 4, actual: 4}
//	          - {expect: 9, actual: 8}
//	      - title: times out
//	        error: {kind: Timeout, message: too slow}
//	error_handlers:
//	  - kind: Timeout
//	    expected: fast
//	    format: str
//
// Every document is checked against an embedded JSON Schema before it is
// decoded. Tests listed at the top level, outside of any suite, are
// registered as orphans and never run.
package fixture
