// ============================================================================
// The Last Supper - Status Reporter
// ============================================================================
//
// Package: internal/report
// File: reporter.go
// Purpose: Serialized status line emission for philosopher phase transitions
//
// Every phase transition and the death event flow through a Reporter. The one
// hard requirement is whole-line serialization: lines from different
// goroutines must never interleave mid-line, because the ordered log is the
// simulation's only output.
//
// Implementations:
//   - Console:  human-readable "<timestamp> <id> <message>" lines, with the
//               death and eating lines colorized
//   - Recorder: in-memory capture of the ordered event log
//   - Tee:      fan-out to several reporters under one emission
//
// ============================================================================

package report

import (
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"

	"github.com/hosu-kim/the-last-supper/pkg/types"
)

// Reporter receives one status line per phase transition. Implementations
// must serialize concurrent calls.
type Reporter interface {
	Emit(id types.PhilosopherID, timestampMS int64, message string)
}

// Console writes status lines to a writer, one per emission.
type Console struct {
	mu     sync.Mutex
	w      io.Writer
	died   *color.Color
	eating *color.Color
}

// NewConsole creates a console reporter writing to w.
func NewConsole(w io.Writer) *Console {
	return &Console{
		w:      w,
		died:   color.New(color.FgRed, color.Bold),
		eating: color.New(color.FgGreen),
	}
}

// Emit writes "<timestamp> <id> <message>" as a single line.
func (c *Console) Emit(id types.PhilosopherID, timestampMS int64, message string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	line := fmt.Sprintf("%d %d %s", timestampMS, id, message)
	switch message {
	case types.StatusDied:
		c.died.Fprintln(c.w, line)
	case types.StatusEating:
		c.eating.Fprintln(c.w, line)
	default:
		fmt.Fprintln(c.w, line)
	}
}

// Recorder captures the ordered event log in memory.
type Recorder struct {
	mu     sync.Mutex
	events []types.Event
}

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Emit appends the event in emission order.
func (r *Recorder) Emit(id types.PhilosopherID, timestampMS int64, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, types.Event{
		TimestampMS: timestampMS,
		Philosopher: id,
		Message:     message,
	})
}

// Events returns a copy of everything recorded so far.
func (r *Recorder) Events() []types.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]types.Event, len(r.events))
	copy(out, r.events)
	return out
}

// Tee fans each emission out to every reporter, in argument order.
func Tee(reporters ...Reporter) Reporter {
	return multi(reporters)
}

type multi []Reporter

func (m multi) Emit(id types.PhilosopherID, timestampMS int64, message string) {
	for _, r := range m {
		r.Emit(id, timestampMS, message)
	}
}
