package classifier

// #region imports
import (
	"time"

	"github.com/danielpatrickdp/adaptive-ui/go-engine/internal/history"
)

// #endregion

// #region state

// State is a behavioral state label.
type State string

const (
	StateNeutral      State = "neutral"
	StateFrustrated   State = "frustrated"
	StateConcentrated State = "concentrated"
	StateExploring    State = "exploring"
	StateLearning     State = "learning"
)

// Namespace prefixes actions emitted by the classifier itself. Such actions
// are never recorded back into history.
const Namespace = "cognition:"

// StateChangeType is the action type carrying a StateChange payload.
const StateChangeType = Namespace + "state-change"

// ResetType clears the cognitive slice back to its initial value.
const ResetType = Namespace + "reset"

// #endregion state

// #region signals

// Signals are per-state hysteresis counters. Each increments while its
// analyzer condition holds and resets to zero the cycle the condition
// breaks. No signal persists without continued qualifying actions.
type Signals struct {
	Frustrated   int `json:"frustrated"`
	Concentrated int `json:"concentrated"`
	Exploring    int `json:"exploring"`
	Learning     int `json:"learning"`
}

// Max returns the strongest counter.
func (s Signals) Max() int {
	max := s.Frustrated
	for _, v := range []int{s.Concentrated, s.Exploring, s.Learning} {
		if v > max {
			max = v
		}
	}
	return max
}

// #endregion signals

// #region state-change

// StateChange is the payload of a StateChangeType action: one transition
// with the evidence that produced it.
type StateChange struct {
	Previous   State           `json:"previous"`
	Next       State           `json:"next"`
	Confidence float64         `json:"confidence"`
	Signals    Signals         `json:"signals"`
	Metrics    history.Metrics `json:"metrics"`
	Timestamp  time.Time       `json:"timestamp"`
}

// #endregion state-change

// #region config

// Config holds every tuning knob for classification. Thresholds and windows
// are configuration, not code, so deployments can tune without rebuilds.
type Config struct {
	// MetricsWindow is the number of recent actions analyzed per cycle.
	MetricsWindow int
	// MinSamples is the window size below which analysis is skipped.
	MinSamples int

	// Hysteresis thresholds: consecutive qualifying cycles before a state
	// becomes the target. Priority on ties is fixed: frustrated >
	// concentrated > exploring > learning.
	FrustratedThreshold   int
	ConcentratedThreshold int
	ExploringThreshold    int
	LearningThreshold     int

	// Frustration: ErrorRate > rate AND RecentErrors >= min.
	FrustrationErrorRate float64
	FrustrationMinErrors int

	// Concentration: at least one reported duration, AverageDuration below
	// the cap, ErrorRate below the cap.
	ConcentrationMaxDurationMS float64
	ConcentrationMaxErrorRate  float64

	// Exploration: ActionVariety >= min AND ErrorRate < cap.
	ExplorationMinVariety   int
	ExplorationMaxErrorRate float64

	// Learning: newest-half success rate exceeds oldest-half by at least
	// the improvement, with each half holding at least MinHalf actions.
	LearningImprovement float64
	LearningMinHalf     int

	// ConfidenceScale saturates signal strength into [0, 1]:
	// confidence = min(maxSignal/scale, 1). Not a probability.
	ConfidenceScale float64
}

// DefaultConfig returns the canonical thresholds.
func DefaultConfig() Config {
	return Config{
		MetricsWindow:              20,
		MinSamples:                 3,
		FrustratedThreshold:        3,
		ConcentratedThreshold:      5,
		ExploringThreshold:         4,
		LearningThreshold:          4,
		FrustrationErrorRate:       0.4,
		FrustrationMinErrors:       3,
		ConcentrationMaxDurationMS: 400,
		ConcentrationMaxErrorRate:  0.1,
		ExplorationMinVariety:      3,
		ExplorationMaxErrorRate:    0.5,
		LearningImprovement:        0.2,
		LearningMinHalf:            3,
		ConfidenceScale:            10,
	}
}

// withDefaults fills zero-valued fields so a partially specified config is
// still safe to run.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.MetricsWindow <= 0 {
		c.MetricsWindow = d.MetricsWindow
	}
	if c.MinSamples <= 0 {
		c.MinSamples = d.MinSamples
	}
	if c.FrustratedThreshold <= 0 {
		c.FrustratedThreshold = d.FrustratedThreshold
	}
	if c.ConcentratedThreshold <= 0 {
		c.ConcentratedThreshold = d.ConcentratedThreshold
	}
	if c.ExploringThreshold <= 0 {
		c.ExploringThreshold = d.ExploringThreshold
	}
	if c.LearningThreshold <= 0 {
		c.LearningThreshold = d.LearningThreshold
	}
	if c.FrustrationErrorRate <= 0 {
		c.FrustrationErrorRate = d.FrustrationErrorRate
	}
	if c.FrustrationMinErrors <= 0 {
		c.FrustrationMinErrors = d.FrustrationMinErrors
	}
	if c.ConcentrationMaxDurationMS <= 0 {
		c.ConcentrationMaxDurationMS = d.ConcentrationMaxDurationMS
	}
	if c.ConcentrationMaxErrorRate <= 0 {
		c.ConcentrationMaxErrorRate = d.ConcentrationMaxErrorRate
	}
	if c.ExplorationMinVariety <= 0 {
		c.ExplorationMinVariety = d.ExplorationMinVariety
	}
	if c.ExplorationMaxErrorRate <= 0 {
		c.ExplorationMaxErrorRate = d.ExplorationMaxErrorRate
	}
	if c.LearningImprovement <= 0 {
		c.LearningImprovement = d.LearningImprovement
	}
	if c.LearningMinHalf <= 0 {
		c.LearningMinHalf = d.LearningMinHalf
	}
	if c.ConfidenceScale <= 0 {
		c.ConfidenceScale = d.ConfidenceScale
	}
	return c
}

// #endregion config
