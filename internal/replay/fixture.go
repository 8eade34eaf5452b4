package replay

// #region imports
import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/danielpatrickdp/adaptive-ui/go-engine/internal/classifier"
	"github.com/danielpatrickdp/adaptive-ui/go-engine/internal/engine"
)

// #endregion

// #region fixture-types

// Fixture is the top-level JSON structure for a captured action stream.
type Fixture struct {
	Description string               `json:"description"`
	Config      FixtureConfig        `json:"config"`
	Actions     []FixtureAction      `json:"actions"`
	Expected    []ExpectedTransition `json:"expected_transitions,omitempty"`
}

// FixtureConfig mirrors the engine configuration with JSON tags. Zero
// values fall back to defaults.
type FixtureConfig struct {
	HistoryCapacity       int `json:"history_capacity,omitempty"`
	MetricsWindow         int `json:"metrics_window,omitempty"`
	FrustratedThreshold   int `json:"frustrated_threshold,omitempty"`
	ConcentratedThreshold int `json:"concentrated_threshold,omitempty"`
	ExploringThreshold    int `json:"exploring_threshold,omitempty"`
	LearningThreshold     int `json:"learning_threshold,omitempty"`
}

// FixtureAction is one recorded action. OffsetMS positions it relative to
// the replay base time so runs are deterministic.
type FixtureAction struct {
	Type       string         `json:"type"`
	OffsetMS   int64          `json:"offset_ms"`
	Success    *bool          `json:"success,omitempty"`
	DurationMS *float64       `json:"duration_ms,omitempty"`
	Metadata   map[string]any `json:"metadata,omitempty"`
}

// ExpectedTransition asserts the state reached after dispatching the action
// at ActionIndex (zero-based).
type ExpectedTransition struct {
	ActionIndex int    `json:"action_index"`
	To          string `json:"to"`
}

// #endregion fixture-types

// #region fixture-io

// LoadFixture reads and parses a JSON fixture file.
func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture %s: %w", path, err)
	}
	var f Fixture
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse fixture %s: %w", path, err)
	}
	return &f, nil
}

// SaveFixture writes a fixture as indented JSON.
func SaveFixture(path string, f *Fixture) error {
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal fixture: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write fixture %s: %w", path, err)
	}
	return nil
}

// #endregion fixture-io

// #region config-conversion

// ToEngineConfig converts a FixtureConfig to a domain engine.Config.
func (fc FixtureConfig) ToEngineConfig() engine.Config {
	cfg := engine.DefaultConfig()
	if fc.HistoryCapacity > 0 {
		cfg.HistoryCapacity = fc.HistoryCapacity
	}
	ccfg := classifier.DefaultConfig()
	if fc.MetricsWindow > 0 {
		ccfg.MetricsWindow = fc.MetricsWindow
	}
	if fc.FrustratedThreshold > 0 {
		ccfg.FrustratedThreshold = fc.FrustratedThreshold
	}
	if fc.ConcentratedThreshold > 0 {
		ccfg.ConcentratedThreshold = fc.ConcentratedThreshold
	}
	if fc.ExploringThreshold > 0 {
		ccfg.ExploringThreshold = fc.ExploringThreshold
	}
	if fc.LearningThreshold > 0 {
		ccfg.LearningThreshold = fc.LearningThreshold
	}
	cfg.Classifier = ccfg
	return cfg
}

// #endregion config-conversion
