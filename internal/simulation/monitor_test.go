package simulation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPollInterval(t *testing.T) {
	tests := []struct {
		name        string
		timeToDieMS int64
		want        time.Duration
	}{
		{"tiny die-time clamps to floor", 1, 500 * time.Microsecond},
		{"small die-time clamps to floor", 800, 500 * time.Microsecond},
		{"boundary of the floor", 5000, 500 * time.Microsecond},
		{"mid-range scales with die-time", 20000, 2000 * time.Microsecond},
		{"boundary of the ceiling", 50000, 5000 * time.Microsecond},
		{"huge die-time clamps to ceiling", 10_000_000, 5000 * time.Microsecond},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PollInterval(tt.timeToDieMS))
		})
	}
}
