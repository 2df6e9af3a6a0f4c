package testutil

import "sync"

// ExitRecorder stands in for os.Exit in tests.
//
// Pass Exit to engine.WithExitFunc; the engine then panics with its
// *engine.UsageError instead of terminating the process, and the requested
// codes can be inspected afterwards.
//
// Thread-safety: All methods are safe for concurrent use via internal mutex.
type ExitRecorder struct {
	mu    sync.Mutex
	codes []int
}

// NewExitRecorder creates a recorder with no codes.
func NewExitRecorder() *ExitRecorder {
	return &ExitRecorder{}
}

// Exit records code and returns.
func (x *ExitRecorder) Exit(code int) {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.codes = append(x.codes, code)
}

// Codes returns the recorded codes in call order.
func (x *ExitRecorder) Codes() []int {
	x.mu.Lock()
	defer x.mu.Unlock()
	return append([]int(nil), x.codes...)
}

// Last returns the most recent code, or -1 if Exit was never called.
func (x *ExitRecorder) Last() int {
	x.mu.Lock()
	defer x.mu.Unlock()
	if len(x.codes) == 0 {
		return -1
	}
	return x.codes[len(x.codes)-1]
}

// Reset forgets all recorded codes.
func (x *ExitRecorder) Reset() {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.codes = nil
}
