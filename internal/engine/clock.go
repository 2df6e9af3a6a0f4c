package engine

import (
	"sync/atomic"

	"github.com/roach88/ordeal/internal/ir"
)

// Clock allocates object ids from one monotonic counter shared by suites,
// tests and cases. The first id is 0.
//
// Clock is safe for concurrent use, although the Engine only calls it from
// the registering goroutine.
type Clock struct {
	seq atomic.Int64
}

// NewClock creates a clock whose first id is 0.
func NewClock() *Clock {
	c := &Clock{}
	c.seq.Store(-1)
	return c
}

// Next returns the next id and advances the clock.
func (c *Clock) Next() ir.ID {
	return ir.ID(c.seq.Add(1))
}

// Current returns the last allocated id, or -1 before the first call to Next.
func (c *Clock) Current() ir.ID {
	return ir.ID(c.seq.Load())
}
