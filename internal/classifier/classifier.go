package classifier

// #region imports
import (
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/danielpatrickdp/adaptive-ui/go-engine/internal/action"
	"github.com/danielpatrickdp/adaptive-ui/go-engine/internal/history"
	"github.com/danielpatrickdp/adaptive-ui/go-engine/internal/store"
)

// #endregion

// #region classifier-struct

// Classifier turns a heterogeneous action stream into a small, stable state
// label with a confidence value. It runs as an early interceptor: record the
// action, run the analyzers, maybe emit a state-change action, then let the
// original action propagate. Signals and current state are owned exclusively
// by this instance; the pipeline is single-threaded, so no locking.
type Classifier struct {
	cfg     Config
	history *history.Buffer
	logger  *zap.Logger

	signals    Signals
	current    State
	previous   State
	confidence float64
	changedAt  time.Time
	enabled    bool
}

// New creates a Classifier in the neutral state. logger may be nil.
func New(cfg Config, buf *history.Buffer, logger *zap.Logger) *Classifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Classifier{
		cfg:       cfg.withDefaults(),
		history:   buf,
		logger:    logger,
		current:   StateNeutral,
		previous:  StateNeutral,
		changedAt: time.Now().UTC(),
		enabled:   true,
	}
}

// #endregion classifier-struct

// #region accessors

// Current returns the current behavioral state.
func (c *Classifier) Current() State { return c.current }

// Previous returns the state before the last transition.
func (c *Classifier) Previous() State { return c.previous }

// Confidence returns the confidence of the last transition.
func (c *Classifier) Confidence() float64 { return c.confidence }

// SignalsSnapshot returns a copy of the hysteresis counters.
func (c *Classifier) SignalsSnapshot() Signals { return c.signals }

// SetEnabled toggles analysis. When disabled, actions are still recorded in
// history but no signals accumulate and no transitions occur.
func (c *Classifier) SetEnabled(enabled bool) { c.enabled = enabled }

// Reset clears signals and returns the state machine to neutral. The owning
// engine clears history alongside.
func (c *Classifier) Reset() {
	c.signals = Signals{}
	c.current = StateNeutral
	c.previous = StateNeutral
	c.confidence = 0
	c.changedAt = time.Now().UTC()
}

// #endregion accessors

// #region interceptor

// Interceptor returns the dispatch-pipeline hook. Classifier-emitted
// actions (the cognition namespace) pass through without being recorded,
// which keeps the emission path free of feedback.
func (c *Classifier) Interceptor() store.Interceptor {
	return func(api store.API, act action.Action, next store.Next) error {
		if strings.HasPrefix(act.Type, Namespace) {
			return next(act)
		}

		c.record(act)
		if c.enabled {
			if change, ok := c.analyze(); ok {
				c.emit(api, change)
			}
		}
		return next(act)
	}
}

// record normalizes the action (success fallback, metadata duration) and
// hands ownership to history.
func (c *Classifier) record(act action.Action) {
	c.history.Add(act.Normalized())
}

// #endregion interceptor

// #region analyze

// analyze runs one classification cycle over the freshest window. It is
// event-driven — invoked once per recorded action, never polled. Below
// MinSamples it is a silent no-op. Returns the transition, if any.
func (c *Classifier) analyze() (StateChange, bool) {
	m := c.history.Metrics(c.cfg.MetricsWindow)
	if m.TotalActions < c.cfg.MinSamples {
		return StateChange{}, false
	}

	c.step(&c.signals.Frustrated, "frustration", func() bool { return c.frustrationHolds(m) })
	c.step(&c.signals.Concentrated, "concentration", func() bool { return c.concentrationHolds(m) })
	c.step(&c.signals.Exploring, "exploration", func() bool { return c.explorationHolds(m) })
	c.step(&c.signals.Learning, "learning", c.learningHolds)

	target := c.target()
	c.logger.Debug("classification cycle",
		zap.String("target", string(target)),
		zap.Int("frustrated", c.signals.Frustrated),
		zap.Int("concentrated", c.signals.Concentrated),
		zap.Int("exploring", c.signals.Exploring),
		zap.Int("learning", c.signals.Learning),
		zap.Float64("error_rate", m.ErrorRate))

	if target == c.current {
		return StateChange{}, false
	}

	confidence := float64(c.signals.Max()) / c.cfg.ConfidenceScale
	if confidence > 1 {
		confidence = 1
	}
	now := time.Now().UTC()
	change := StateChange{
		Previous:   c.current,
		Next:       target,
		Confidence: confidence,
		Signals:    c.signals,
		Metrics:    m,
		Timestamp:  now,
	}

	c.previous = c.current
	c.current = target
	c.confidence = confidence
	c.changedAt = now

	c.logger.Info("state transition",
		zap.String("from", string(change.Previous)),
		zap.String("to", string(change.Next)),
		zap.Float64("confidence", confidence))
	return change, true
}

// step advances one hysteresis counter: increment while the condition
// holds, reset to zero the cycle it breaks. An analyzer panic is absorbed
// as "condition does not hold".
func (c *Classifier) step(counter *int, name string, holds func() bool) {
	if c.safeHolds(name, holds) {
		*counter++
	} else {
		*counter = 0
	}
}

// safeHolds evaluates an analyzer predicate, recovering and logging any
// panic so the dispatch still propagates.
func (c *Classifier) safeHolds(name string, holds func() bool) (v bool) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Warn("analyzer fault",
				zap.String("analyzer", name),
				zap.Any("cause", r))
			v = false
		}
	}()
	return holds()
}

// target resolves the candidate state by fixed priority. Frustration ranks
// highest because misclassifying it carries the highest UX cost; learning
// ranks lowest because misclassifying it is the cheapest error.
func (c *Classifier) target() State {
	switch {
	case c.signals.Frustrated >= c.cfg.FrustratedThreshold:
		return StateFrustrated
	case c.signals.Concentrated >= c.cfg.ConcentratedThreshold:
		return StateConcentrated
	case c.signals.Exploring >= c.cfg.ExploringThreshold:
		return StateExploring
	case c.signals.Learning >= c.cfg.LearningThreshold:
		return StateLearning
	default:
		return StateNeutral
	}
}

// #endregion analyze

// #region emit

// emit dispatches the state-change action through the same pipeline as any
// other action — no side channel. A failed emission is logged, not fatal.
func (c *Classifier) emit(api store.API, change StateChange) {
	act := action.Action{
		ID:         uuid.New().String(),
		Type:       StateChangeType,
		Timestamp:  change.Timestamp,
		Success:    true,
		SuccessSet: true,
		Payload:    change,
	}
	if err := api.Dispatch(act); err != nil {
		c.logger.Warn("state-change dispatch failed", zap.Error(err))
	}
}

// #endregion emit
