// Package types defines the core domain model shared by the simulation engine,
// the reporter and the CLI driver.
package types

import "fmt"

// PhilosopherID identifies a seat at the table. IDs are 1-based and stable for
// the whole run.
type PhilosopherID int

// Status messages emitted on phase transitions. These are the exact strings
// written to the event log.
const (
	StatusTakenFork = "has taken a fork"
	StatusEating    = "is eating"
	StatusSleeping  = "is sleeping"
	StatusThinking  = "is thinking"
	StatusDied      = "died"
)

// OutcomeKind classifies how a run ended.
type OutcomeKind string

const (
	// OutcomeDied means a philosopher starved before the run could complete.
	OutcomeDied OutcomeKind = "died"
	// OutcomeAllSatisfied means every philosopher reached the meal quota.
	OutcomeAllSatisfied OutcomeKind = "all_satisfied"
)

// Outcome is the final classification of a run.
type Outcome struct {
	Kind        OutcomeKind   `json:"kind"`
	Philosopher PhilosopherID `json:"philosopher,omitempty"` // set only for OutcomeDied
}

// Died builds the outcome for a starvation death.
func Died(id PhilosopherID) Outcome {
	return Outcome{Kind: OutcomeDied, Philosopher: id}
}

// AllSatisfied builds the outcome for a run where every seat met the quota.
func AllSatisfied() Outcome {
	return Outcome{Kind: OutcomeAllSatisfied}
}

func (o Outcome) String() string {
	if o.Kind == OutcomeDied {
		return fmt.Sprintf("Died(%d)", o.Philosopher)
	}
	return "AllSatisfied"
}

// Event is one line of the simulation's ordered log. Timestamps are
// milliseconds since simulation start.
type Event struct {
	TimestampMS int64         `json:"timestamp_ms"`
	Philosopher PhilosopherID `json:"philosopher"`
	Message     string        `json:"message"`
}
