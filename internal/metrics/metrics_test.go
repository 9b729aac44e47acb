package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hosu-kim/the-last-supper/internal/report"
	"github.com/hosu-kim/the-last-supper/pkg/types"
)

func newTestCollector() *Collector {
	// Reset Prometheus registry to avoid duplicate registration
	prometheus.DefaultRegisterer = prometheus.NewRegistry()
	return NewCollector()
}

func TestNewCollector(t *testing.T) {
	collector := newTestCollector()

	assert.NotNil(t, collector)
	assert.NotNil(t, collector.phaseTransitions)
	assert.NotNil(t, collector.meals)
	assert.NotNil(t, collector.deaths)
	assert.NotNil(t, collector.runsCompleted)
	assert.NotNil(t, collector.tableSize)
	assert.NotNil(t, collector.runDuration)
}

func TestRecordPhase(t *testing.T) {
	collector := newTestCollector()

	assert.NotPanics(t, func() {
		collector.RecordPhase(types.StatusTakenFork)
		collector.RecordPhase(types.StatusEating)
		collector.RecordPhase(types.StatusSleeping)
		collector.RecordPhase(types.StatusThinking)
		collector.RecordPhase(types.StatusDied)
	})
}

func TestRecordOutcome(t *testing.T) {
	collector := newTestCollector()

	assert.NotPanics(t, func() {
		collector.RecordOutcome(types.Died(1), 0.35)
		collector.RecordOutcome(types.AllSatisfied(), 2.8)
	})
}

func TestSetTableSize(t *testing.T) {
	collector := newTestCollector()

	assert.NotPanics(t, func() {
		collector.SetTableSize(5)
	})
}

func TestWrapReporterForwardsEmissions(t *testing.T) {
	collector := newTestCollector()
	recorder := report.NewRecorder()

	wrapped := collector.WrapReporter(recorder)
	wrapped.Emit(2, 17, types.StatusEating)
	wrapped.Emit(2, 217, types.StatusSleeping)

	events := recorder.Events()
	require.Len(t, events, 2, "wrapped reporter must pass every emission through")
	assert.Equal(t, types.PhilosopherID(2), events[0].Philosopher)
	assert.Equal(t, int64(17), events[0].TimestampMS)
	assert.Equal(t, types.StatusEating, events[0].Message)
	assert.Equal(t, types.StatusSleeping, events[1].Message)
}
