// Package harness runs suite files under a deterministic engine and captures
// everything they produce: the reporter event stream, the console
// transcript, the summary and any usage violation.
//
// It exists for conformance tests of the engine, the suite file loader and
// the reporters together. A result can be compared against a golden
// transcript:
//
//	func TestGreet(t *testing.T) {
//	    harness.RunWithGolden(t, "testdata/greet.test.yaml")
//	}
//
// Golden files live in testdata/golden/<file name without extension>.golden.
// To regenerate them, run:
//
//	go test ./internal/harness -update
//
// Usage violations do not terminate the process: the exit code is recorded
// and the violation is returned in Result.Violation.
package harness
