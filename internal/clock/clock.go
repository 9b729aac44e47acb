// Package clock provides the simulation's time source.
//
// The engine only ever needs "now" as a monotonic millisecond value; keeping
// that behind a one-method interface lets tests substitute a controlled clock
// without touching the core loops.
package clock

import "time"

// Clock exposes monotonic current time in milliseconds.
type Clock interface {
	NowMillis() int64
}

// System measures time from its own creation using the runtime's monotonic
// reading, so values never go backwards and stay small enough to subtract
// without overflow concerns.
type System struct {
	epoch time.Time
}

// NewSystem creates a System clock anchored at the current instant.
func NewSystem() *System {
	return &System{epoch: time.Now()}
}

// NowMillis returns milliseconds elapsed since the clock was created.
func (s *System) NowMillis() int64 {
	return time.Since(s.epoch).Milliseconds()
}
