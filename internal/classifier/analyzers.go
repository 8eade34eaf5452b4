package classifier

// #region imports
import (
	"github.com/danielpatrickdp/adaptive-ui/go-engine/internal/action"
	"github.com/danielpatrickdp/adaptive-ui/go-engine/internal/history"
)

// #endregion

// #region frustration

// frustrationHolds: sustained high error rate with enough recent failures.
func (c *Classifier) frustrationHolds(m history.Metrics) bool {
	return m.ErrorRate > c.cfg.FrustrationErrorRate &&
		m.RecentErrors >= c.cfg.FrustrationMinErrors
}

// #endregion frustration

// #region concentration

// concentrationHolds: quick, accurate actions. A window with no reported
// durations cannot qualify — an absent duration is unknown, not fast.
func (c *Classifier) concentrationHolds(m history.Metrics) bool {
	return m.DurationSamples > 0 &&
		m.AverageDuration < c.cfg.ConcentrationMaxDurationMS &&
		m.ErrorRate < c.cfg.ConcentrationMaxErrorRate
}

// #endregion concentration

// #region exploration

// explorationHolds: varied action types without excessive failure.
func (c *Classifier) explorationHolds(m history.Metrics) bool {
	return m.ActionVariety >= c.cfg.ExplorationMinVariety &&
		m.ErrorRate < c.cfg.ExplorationMaxErrorRate
}

// #endregion exploration

// #region learning

// learningHolds compares the success rate of the newest half of the window
// against the oldest half. The window is truncated to an even count so the
// halves are comparable; each half must hold at least LearningMinHalf
// actions.
func (c *Classifier) learningHolds() bool {
	window := c.history.Latest(c.cfg.MetricsWindow)
	n := len(window) - len(window)%2
	if n/2 < c.cfg.LearningMinHalf {
		return false
	}
	window = window[len(window)-n:]
	oldest := successRate(window[:n/2])
	newest := successRate(window[n/2:])
	return newest-oldest >= c.cfg.LearningImprovement
}

func successRate(entries []action.Action) float64 {
	if len(entries) == 0 {
		return 0
	}
	var ok int
	for _, e := range entries {
		if e.Succeeded() {
			ok++
		}
	}
	return float64(ok) / float64(len(entries))
}

// #endregion learning
