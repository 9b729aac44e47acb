// ============================================================================
// The Last Supper - Simulation Orchestrator
// ============================================================================
//
// Package: internal/simulation
// File: simulation.go
// Purpose: Wire table state, philosophers and monitor for one run
//
// Control flow:
//   Run() starts one goroutine per philosopher plus runs the monitor on the
//   calling goroutine. Everything executes until the monitor observes a
//   terminal condition and latches the shared termination flag, which every
//   philosopher polls to exit promptly. The monitor joins all philosopher
//   goroutines before Run returns, so the caller gets the outcome only after
//   every resource has been released.
//
// ============================================================================

package simulation

import (
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/hosu-kim/the-last-supper/internal/clock"
	"github.com/hosu-kim/the-last-supper/internal/config"
	"github.com/hosu-kim/the-last-supper/internal/report"
	"github.com/hosu-kim/the-last-supper/pkg/types"
)

var log = slog.Default()

// Simulation is one configured run of the dining table.
type Simulation struct {
	runID        string
	state        *State
	philosophers []*Philosopher
	monitor      *Monitor
	wg           sync.WaitGroup
}

// New validates the configuration and builds a ready-to-run simulation.
func New(cfg config.Simulation, clk clock.Clock, out report.Reporter) (*Simulation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &Simulation{
		runID: uuid.NewString(),
		state: newState(cfg, clk),
	}

	s.philosophers = make([]*Philosopher, cfg.Philosophers)
	for i := range s.philosophers {
		s.philosophers[i] = newPhilosopher(i+1, s.state, out)
	}
	s.monitor = newMonitor(s.state, out, &s.wg)

	return s, nil
}

// RunID returns the identifier attached to this run's logs and export.
func (s *Simulation) RunID() string {
	return s.runID
}

// Run executes the simulation and blocks until it classifies. It returns
// Died(id) or AllSatisfied; by the time it returns, every philosopher
// goroutine has exited.
func (s *Simulation) Run() types.Outcome {
	cfg := s.state.cfg
	log.Info("Simulation started",
		"run_id", s.runID,
		"philosophers", cfg.Philosophers,
		"time_to_die_ms", cfg.TimeToDieMS,
		"time_to_eat_ms", cfg.TimeToEatMS,
		"time_to_sleep_ms", cfg.TimeToSleepMS,
		"required_meals", int(cfg.RequiredMeals))

	// Restamp the start so staggering and starvation countdowns begin now,
	// not at construction time.
	s.state.reset()

	for _, p := range s.philosophers {
		s.wg.Add(1)
		go func(p *Philosopher) {
			defer s.wg.Done()
			p.Run()
		}(p)
	}

	outcome := s.monitor.RunUntilTerminal()

	log.Info("Simulation finished",
		"run_id", s.runID,
		"outcome", outcome.String(),
		"duration_ms", s.state.sinceStart(s.state.clock.NowMillis()))

	return outcome
}

// Meals returns meals eaten per seat (indexed by id-1) at this instant.
func (s *Simulation) Meals() []int {
	return s.state.Meals()
}
