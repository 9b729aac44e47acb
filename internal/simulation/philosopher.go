// ============================================================================
// The Last Supper - Philosopher Lifecycle
// ============================================================================
//
// Package: internal/simulation
// File: philosopher.go
// Purpose: The eat/sleep/think loop run independently per philosopher
//
// Deadlock avoidance:
//   Forks are acquired in a parity-keyed order: odd seats take their left
//   fork first, even seats their right fork first. Because not every seat
//   requests resources in the same rotational order, no cycle of
//   philosophers each waiting on the next can form around the ring.
//
// Contention shaping:
//   - Even seats delay time_to_eat/2 before their first cycle so the table
//     does not start with every neighbor grabbing the same fork at once.
//   - Odd-sized rings insert a 100µs think pause, which breaks the livelock
//     where an odd ring settles into synchronized fork contention.
//
// Responsiveness:
//   Every timed phase uses a responsive wait: a poll loop that checks the
//   termination flag each iteration and sleeps in coarser or finer steps
//   depending on how far the deadline still is. A philosopher therefore
//   stops within one polling granularity of the monitor latching the flag
//   and never starts a new phase afterwards.
//
// ============================================================================

package simulation

import (
	"time"

	"github.com/hosu-kim/the-last-supper/internal/report"
	"github.com/hosu-kim/the-last-supper/pkg/types"
)

// oddRingThinkPause breaks synchronized contention on odd-sized rings.
const oddRingThinkPause = 100 * time.Microsecond

// Philosopher runs one seat's lifecycle in its own goroutine.
type Philosopher struct {
	id    types.PhilosopherID
	left  int // fork index id-1
	right int // fork index id % count (ring wrap)
	state *State
	out   report.Reporter
}

func newPhilosopher(id int, state *State, out report.Reporter) *Philosopher {
	return &Philosopher{
		id:    types.PhilosopherID(id),
		left:  id - 1,
		right: id % state.cfg.Philosophers,
		state: state,
		out:   out,
	}
}

// forkOrder returns the acquisition order for this seat: odd ids left-first,
// even ids right-first. Release order is not part of the policy.
func (p *Philosopher) forkOrder() (first, second int) {
	if p.id%2 == 1 {
		return p.left, p.right
	}
	return p.right, p.left
}

// Run executes eat/sleep/think cycles until the termination flag is observed.
// The flag is re-checked after every phase so a terminal state is never
// followed by a new phase start. All held forks are released before return.
func (p *Philosopher) Run() {
	if p.id%2 == 0 {
		p.wait(p.state.cfg.TimeToEatMS / 2)
	}
	for !p.state.Finished() {
		p.eat()
		if p.state.Finished() {
			break
		}
		p.emit(types.StatusSleeping)
		p.wait(p.state.cfg.TimeToSleepMS)
		if p.state.Finished() {
			break
		}
		p.emit(types.StatusThinking)
		if p.state.cfg.Philosophers%2 == 1 {
			time.Sleep(oddRingThinkPause)
		}
	}
}

// eat acquires both forks, records the meal and holds the forks for
// time_to_eat.
//
// With a single philosopher only one fork exists, so eating is impossible:
// the philosopher takes the fork and waits past time_to_die, guaranteeing the
// monitor observes the starvation.
func (p *Philosopher) eat() {
	if p.state.cfg.Philosophers == 1 {
		fork := &p.state.forks[p.left]
		fork.Lock()
		p.emit(types.StatusTakenFork)
		p.wait(p.state.cfg.TimeToDieMS + 1)
		fork.Unlock()
		return
	}

	first, second := p.forkOrder()
	p.state.forks[first].Lock()
	p.emit(types.StatusTakenFork)
	p.state.forks[second].Lock()
	p.emit(types.StatusTakenFork)

	p.emit(types.StatusEating)
	p.state.recordMeal(p.id)
	p.wait(p.state.cfg.TimeToEatMS)

	p.state.forks[p.left].Unlock()
	p.state.forks[p.right].Unlock()
}

// wait blocks for durationMS while staying responsive to termination.
func (p *Philosopher) wait(durationMS int64) {
	responsiveWait(p.state, durationMS)
}

// responsiveWait polls the termination flag while sleeping in steps that
// shrink as the deadline approaches: 1ms while more than 10ms remain, 100µs
// down to the last millisecond, then 10µs. It returns the moment the flag is
// observed or the duration has elapsed, whichever comes first.
func responsiveWait(s *State, durationMS int64) {
	start := s.clock.NowMillis()
	for !s.Finished() {
		remaining := durationMS - (s.clock.NowMillis() - start)
		if remaining <= 0 {
			return
		}
		switch {
		case remaining > 10:
			time.Sleep(time.Millisecond)
		case remaining > 1:
			time.Sleep(100 * time.Microsecond)
		default:
			time.Sleep(10 * time.Microsecond)
		}
	}
}

func (p *Philosopher) emit(message string) {
	p.out.Emit(p.id, p.state.sinceStart(p.state.clock.NowMillis()), message)
}
