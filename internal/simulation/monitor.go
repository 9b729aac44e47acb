// ============================================================================
// The Last Supper - Monitor
// ============================================================================
//
// Package: internal/simulation
// File: monitor.go
// Purpose: Independent loop detecting starvation death or universal
//          satisfaction, then tearing the run down
//
// The monitor is the single writer of the termination flag. It only ever
// reads shared state under the data mutex and never touches a fork lock, so
// it cannot introduce a new deadlock path. Once a terminal condition latches
// it joins every philosopher goroutine before returning; no philosopher is
// still holding or requesting a fork when the run's resources go away.
//
// ============================================================================

package simulation

import (
	"sync"
	"time"

	"github.com/hosu-kim/the-last-supper/internal/report"
	"github.com/hosu-kim/the-last-supper/pkg/types"
)

// Poll interval bounds. Very small die-times must not turn the monitor into a
// spin loop, and very large ones must not make death detection sloppy.
const (
	minPollInterval = 500 * time.Microsecond
	maxPollInterval = 5000 * time.Microsecond
)

// PollInterval derives the monitor's scan period from time_to_die:
// one tenth of it, read in microseconds, clamped to [500µs, 5ms].
func PollInterval(timeToDieMS int64) time.Duration {
	interval := time.Duration(timeToDieMS/10) * time.Microsecond
	if interval < minPollInterval {
		return minPollInterval
	}
	if interval > maxPollInterval {
		return maxPollInterval
	}
	return interval
}

// Monitor polls the shared state for a terminal condition.
type Monitor struct {
	state *State
	out   report.Reporter
	join  *sync.WaitGroup // philosophers' WaitGroup, waited on after latching
}

func newMonitor(state *State, out report.Reporter, join *sync.WaitGroup) *Monitor {
	return &Monitor{state: state, out: out, join: join}
}

// RunUntilTerminal blocks until a terminal condition is detected, joins every
// philosopher goroutine and returns the run's classification.
//
// Death wins over satisfaction: the seats are scanned in id order first and
// the flag latches on the first starving philosopher found. Only one death is
// ever reported.
func (m *Monitor) RunUntilTerminal() types.Outcome {
	interval := PollInterval(m.state.cfg.TimeToDieMS)

	var outcome types.Outcome
	for {
		now := m.state.clock.NowMillis()
		if id, dead := m.state.checkDeath(now); dead {
			// The data mutex is released before emitting so the reporter's
			// own lock is never nested inside it.
			m.out.Emit(id, m.state.sinceStart(now), types.StatusDied)
			outcome = types.Died(id)
			break
		}
		if m.state.checkSatisfied() {
			outcome = types.AllSatisfied()
			break
		}
		time.Sleep(interval)
	}

	m.join.Wait()
	return outcome
}
