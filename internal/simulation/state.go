// ============================================================================
// The Last Supper - Shared Table State
// ============================================================================
//
// Package: internal/simulation
// File: state.go
// Purpose: Shared mutable state every goroutine of a run works against
//
// Lock model:
//   - forks: one sync.Mutex per fork, owned exclusively by whichever
//     philosopher currently holds it. Forks are NOT covered by the data
//     mutex; they are independent resources indexed by ring position.
//   - mu (data mutex): guards the per-seat meal records and the termination
//     flag. Critical sections are O(1) scans, never held across a wait, and
//     never held while requesting a fork (and vice versa), so there is no
//     lock-ordering hazard between the two kinds.
//
// The termination flag latches: it transitions false->true exactly once and
// never reverts. It is written only by the monitor and read by every
// philosopher between phases and inside responsive waits.
//
// ============================================================================

package simulation

import (
	"sync"

	"github.com/hosu-kim/the-last-supper/internal/clock"
	"github.com/hosu-kim/the-last-supper/internal/config"
	"github.com/hosu-kim/the-last-supper/pkg/types"
)

// seat is the mutable record for one philosopher. Written only by the owning
// philosopher's goroutine, read by the monitor; both under the data mutex so
// the (lastMealMS, mealsEaten) pair is never torn.
type seat struct {
	lastMealMS int64
	mealsEaten int
}

// State is the shared simulation state for one run.
type State struct {
	cfg     config.Simulation
	clock   clock.Clock
	startMS int64

	forks []sync.Mutex

	mu    sync.Mutex // guards seats and ended
	seats []seat
	ended bool
}

func newState(cfg config.Simulation, clk clock.Clock) *State {
	s := &State{
		cfg:   cfg,
		clock: clk,
		forks: make([]sync.Mutex, cfg.Philosophers),
		seats: make([]seat, cfg.Philosophers),
	}
	s.reset()
	return s
}

// reset stamps the simulation start: every philosopher counts as having just
// eaten, so the starvation countdown begins at launch.
func (s *State) reset() {
	now := s.clock.NowMillis()
	s.mu.Lock()
	s.startMS = now
	for i := range s.seats {
		s.seats[i] = seat{lastMealMS: now}
	}
	s.ended = false
	s.mu.Unlock()
}

// Finished reports whether the termination flag has latched.
func (s *State) Finished() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ended
}

// sinceStart converts an absolute clock reading to a log timestamp.
func (s *State) sinceStart(nowMS int64) int64 {
	return nowMS - s.startMS
}

// recordMeal stamps the meal start and bumps the counter for one seat,
// atomically under the data mutex.
func (s *State) recordMeal(id types.PhilosopherID) {
	s.mu.Lock()
	st := &s.seats[id-1]
	st.lastMealMS = s.clock.NowMillis()
	st.mealsEaten++
	s.mu.Unlock()
}

// checkDeath scans seats in id order and latches termination on the first
// philosopher whose last meal is at least time_to_die old. The scan order
// makes the reported death deterministic when several starve in the same
// poll window.
func (s *State) checkDeath(nowMS int64) (types.PhilosopherID, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.seats {
		if nowMS-s.seats[i].lastMealMS >= s.cfg.TimeToDieMS {
			s.ended = true
			return types.PhilosopherID(i + 1), true
		}
	}
	return 0, false
}

// checkSatisfied latches termination when every seat has reached the meal
// quota. Always false for unbounded runs.
func (s *State) checkSatisfied() bool {
	if !s.cfg.RequiredMeals.Bounded() {
		return false
	}
	required := int(s.cfg.RequiredMeals)

	s.mu.Lock()
	defer s.mu.Unlock()
	satisfied := 0
	for i := range s.seats {
		if s.seats[i].mealsEaten >= required {
			satisfied++
		}
	}
	if satisfied >= len(s.seats) {
		s.ended = true
		return true
	}
	return false
}

// Meals returns a snapshot of meals eaten per seat, indexed by id-1.
func (s *State) Meals() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]int, len(s.seats))
	for i := range s.seats {
		out[i] = s.seats[i].mealsEaten
	}
	return out
}
