package engine

// #region imports
import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/danielpatrickdp/adaptive-ui/go-engine/internal/action"
	"github.com/danielpatrickdp/adaptive-ui/go-engine/internal/classifier"
	"github.com/danielpatrickdp/adaptive-ui/go-engine/internal/history"
	"github.com/danielpatrickdp/adaptive-ui/go-engine/internal/reducers"
	"github.com/danielpatrickdp/adaptive-ui/go-engine/internal/store"
)

// #endregion

// #region config

// Config is the full engine configuration surface.
type Config struct {
	// HistoryCapacity bounds the session history (default 100).
	HistoryCapacity int
	// Classifier holds thresholds and window sizes.
	Classifier classifier.Config
	// Debug enables structured debug logging of classification cycles.
	Debug bool
	// Logger overrides the engine-built logger when non-nil.
	Logger *zap.Logger
}

// DefaultConfig returns the standard engine configuration.
func DefaultConfig() Config {
	return Config{
		HistoryCapacity: history.DefaultCapacity,
		Classifier:      classifier.DefaultConfig(),
	}
}

// #endregion config

// #region engine-struct

// Engine wires history, classifier, and store into one embeddable unit.
// Input adapters push actions via Dispatch; the surrounding UI subscribes
// for state snapshots and reads metrics for diagnostics.
type Engine struct {
	cfg        Config
	logger     *zap.Logger
	history    *history.Buffer
	classifier *classifier.Classifier
	store      *store.Store
}

// New builds a fully wired engine. The classifier interceptor always runs
// first so it observes every action before reducers; extra interceptors
// (e.g. a transition journal) run after it.
// Kill switch: set CLASSIFIER_ENABLED=false to record history without
// classifying.
func New(cfg Config, extra ...store.Interceptor) (*Engine, error) {
	logger := cfg.Logger
	if logger == nil {
		if cfg.Debug {
			zcfg := zap.NewProductionConfig()
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			built, err := zcfg.Build()
			if err != nil {
				return nil, fmt.Errorf("build logger: %w", err)
			}
			logger = built
		} else {
			logger = zap.NewNop()
		}
	}

	buf := history.New(cfg.HistoryCapacity)
	cls := classifier.New(cfg.Classifier, buf, logger)
	if os.Getenv("CLASSIFIER_ENABLED") == "false" {
		cls.SetEnabled(false)
		logger.Info("classifier disabled by environment")
	}

	interceptors := append([]store.Interceptor{cls.Interceptor()}, extra...)
	st := store.New(reducers.Slices(), interceptors...)

	return &Engine{
		cfg:        cfg,
		logger:     logger,
		history:    buf,
		classifier: cls,
		store:      st,
	}, nil
}

// #endregion engine-struct

// #region dispatch

// Dispatch submits one action to the pipeline. Missing IDs and timestamps
// are defaulted; a missing type is rejected before any interceptor runs.
func (e *Engine) Dispatch(act action.Action) error {
	if act.Type == "" {
		return store.ErrMalformedAction
	}
	return e.store.Dispatch(act.Normalized())
}

// #endregion dispatch

// #region accessors

// Subscribe registers a state listener; returns its unsubscribe func.
func (e *Engine) Subscribe(fn store.Listener) func() {
	return e.store.Subscribe(fn)
}

// State returns a snapshot of the full state tree.
func (e *Engine) State() store.State {
	return e.store.State()
}

// Cognitive returns the typed cognitive slice.
func (e *Engine) Cognitive() reducers.Cognitive {
	if v, ok := e.store.Slice(reducers.SliceCognitive); ok {
		if c, ok := v.(reducers.Cognitive); ok {
			return c
		}
	}
	return reducers.Cognitive{Current: classifier.StateNeutral, Previous: classifier.StateNeutral}
}

// Metrics computes session metrics over the latest window entries
// (window <= 0 means the whole history). Read-only diagnostics.
func (e *Engine) Metrics(window int) history.Metrics {
	return e.history.Metrics(window)
}

// HistoryLen returns the number of recorded actions.
func (e *Engine) HistoryLen() int {
	return e.history.Len()
}

// CurrentState returns the classifier's current state label.
func (e *Engine) CurrentState() classifier.State {
	return e.classifier.Current()
}

// Signals returns a snapshot of the hysteresis counters.
func (e *Engine) Signals() classifier.Signals {
	return e.classifier.SignalsSnapshot()
}

// #endregion accessors

// #region reset

// Reset clears history and signals, returns the classifier to neutral, and
// resets the cognitive slice through the normal dispatch path.
func (e *Engine) Reset() error {
	e.history.Clear()
	e.classifier.Reset()
	return e.store.Dispatch(action.New(classifier.ResetType))
}

// #endregion reset
