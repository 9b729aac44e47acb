package report

import (
	"fmt"
	"os"

	jsoniter "github.com/json-iterator/go"

	"github.com/hosu-kim/the-last-supper/internal/config"
	"github.com/hosu-kim/the-last-supper/pkg/types"
)

// RunLog is the exported record of one complete run: the parameters, the
// ordered event log and the final classification.
type RunLog struct {
	RunID   string            `json:"run_id"`
	Config  config.Simulation `json:"config"`
	Events  []types.Event     `json:"events"`
	Outcome types.Outcome     `json:"outcome"`
}

// WriteRunLog serializes the run log as JSON to path.
func WriteRunLog(path string, runLog RunLog) error {
	data, err := jsoniter.ConfigFastest.MarshalIndent(runLog, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal run log: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write run log: %w", err)
	}
	return nil
}

// ReadRunLog parses a previously exported run log.
func ReadRunLog(path string) (*RunLog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read run log: %w", err)
	}
	var runLog RunLog
	if err := jsoniter.ConfigFastest.Unmarshal(data, &runLog); err != nil {
		return nil, fmt.Errorf("failed to parse run log: %w", err)
	}
	return &runLog, nil
}
