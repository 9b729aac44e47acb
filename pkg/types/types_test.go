package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOutcomeString(t *testing.T) {
	assert.Equal(t, "Died(3)", Died(3).String())
	assert.Equal(t, "AllSatisfied", AllSatisfied().String())
}

func TestOutcomeConstructors(t *testing.T) {
	died := Died(7)
	assert.Equal(t, OutcomeDied, died.Kind)
	assert.Equal(t, PhilosopherID(7), died.Philosopher)

	ok := AllSatisfied()
	assert.Equal(t, OutcomeAllSatisfied, ok.Kind)
	assert.Zero(t, ok.Philosopher)
}
