package classifier

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/danielpatrickdp/adaptive-ui/go-engine/internal/action"
	"github.com/danielpatrickdp/adaptive-ui/go-engine/internal/history"
	"github.com/danielpatrickdp/adaptive-ui/go-engine/internal/store"
)

// #region rig

// changesReducer collects every state-change payload into its slice.
func changesReducer(sub any, act action.Action) any {
	changes, _ := sub.([]StateChange)
	if act.Type != StateChangeType {
		return changes
	}
	change, ok := act.Payload.(StateChange)
	if !ok {
		return changes
	}
	out := make([]StateChange, len(changes), len(changes)+1)
	copy(out, changes)
	return append(out, change)
}

type rig struct {
	classifier *Classifier
	store      *store.Store
	buf        *history.Buffer
}

func newRig(cfg Config) *rig {
	buf := history.New(history.DefaultCapacity)
	c := New(cfg, buf, zap.NewNop())
	s := store.New(map[string]store.Reducer{"changes": changesReducer}, c.Interceptor())
	return &rig{classifier: c, store: s, buf: buf}
}

func (r *rig) changes(t *testing.T) []StateChange {
	t.Helper()
	v, _ := r.store.Slice("changes")
	changes, _ := v.([]StateChange)
	return changes
}

var base = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

func makeAction(i int, typ string, success bool, durationMS float64) action.Action {
	a := action.Action{
		Type:       typ,
		Timestamp:  base.Add(time.Duration(i) * time.Second),
		Success:    success,
		SuccessSet: true,
	}
	if durationMS > 0 {
		a.DurationMS = durationMS
		a.HasDuration = true
	}
	return a
}

// #endregion rig

// #region scenario-tests

func TestConcentrationScenario(t *testing.T) {
	// 20 quick successful moves: concentration counter reaches its
	// threshold of 5 on the 7th action (cycles start at the 3rd), then
	// the state holds without further transitions.
	r := newRig(DefaultConfig())
	for i := 0; i < 20; i++ {
		require.NoError(t, r.store.Dispatch(makeAction(i, "navigation:right", true, 150)))
	}

	changes := r.changes(t)
	require.Len(t, changes, 1, "expected exactly one transition")

	change := changes[0]
	require.Equal(t, StateNeutral, change.Previous)
	require.Equal(t, StateConcentrated, change.Next)
	require.Equal(t, 0.5, change.Confidence)
	require.Equal(t, 5, change.Signals.Concentrated)
	require.Equal(t, 150.0, change.Metrics.AverageDuration)
	require.Zero(t, change.Metrics.ErrorRate)

	require.Equal(t, StateConcentrated, r.classifier.Current())
	require.GreaterOrEqual(t, r.classifier.SignalsSnapshot().Concentrated, 5)
}

func TestFrustrationScenario(t *testing.T) {
	// 10 actions with 5 of the last 8 failed. The frustration signal
	// increments on each qualifying cycle and the transition fires after
	// 3 consecutive cycles.
	r := newRig(DefaultConfig())
	outcomes := []bool{true, true, false, false, false, false, false, true, true, true}

	var frustrationPath []int
	for i, ok := range outcomes {
		require.NoError(t, r.store.Dispatch(makeAction(i, "navigation:right", ok, 0)))
		frustrationPath = append(frustrationPath, r.classifier.SignalsSnapshot().Frustrated)
	}

	changes := r.changes(t)
	require.Len(t, changes, 1)
	require.Equal(t, StateFrustrated, changes[0].Next)
	require.Equal(t, 0.3, changes[0].Confidence)
	require.Equal(t, StateFrustrated, r.classifier.Current())

	// Strictly increasing once the condition holds, up to the threshold.
	require.Equal(t, []int{0, 0, 0, 0, 1, 2, 3, 4, 5, 6}, frustrationPath)
}

func TestLearningScenario(t *testing.T) {
	// Early mistakes fading into a clean streak: newest-half success rate
	// beats the oldest half by >= 0.2 for four consecutive cycles.
	r := newRig(DefaultConfig())
	outcomes := []bool{false, true, true, false, true, true, true, true, true, true}
	for i, ok := range outcomes {
		require.NoError(t, r.store.Dispatch(makeAction(i, "practice:attempt", ok, 0)))
	}

	changes := r.changes(t)
	require.Len(t, changes, 1)
	require.Equal(t, StateLearning, changes[0].Next)
	require.Equal(t, 0.4, changes[0].Confidence)
	require.Equal(t, StateLearning, r.classifier.Current())
}

func TestExplorationScenario(t *testing.T) {
	// Varied successful actions across >= 3 types without durations.
	r := newRig(DefaultConfig())
	types := []string{"navigation:right", "menu:open", "search:query", "navigation:left"}
	for i := 0; i < 10; i++ {
		require.NoError(t, r.store.Dispatch(makeAction(i, types[i%len(types)], true, 0)))
	}

	changes := r.changes(t)
	require.Len(t, changes, 1)
	require.Equal(t, StateExploring, changes[0].Next)
	require.Equal(t, StateExploring, r.classifier.Current())
}

// #endregion scenario-tests

// #region invariant-tests

func TestBoundaryTwoActionsNoTransition(t *testing.T) {
	r := newRig(DefaultConfig())
	require.NoError(t, r.store.Dispatch(makeAction(0, "navigation:error", false, 0)))
	require.NoError(t, r.store.Dispatch(makeAction(1, "navigation:error", false, 0)))

	require.Empty(t, r.changes(t), "below the minimum sample count no transition may occur")
	require.Equal(t, Signals{}, r.classifier.SignalsSnapshot())
	require.Equal(t, StateNeutral, r.classifier.Current())
}

func TestSignalResetsOnBrokenCondition(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MetricsWindow = 4
	r := newRig(cfg)

	for i, ok := range []bool{false, false, false, true} {
		require.NoError(t, r.store.Dispatch(makeAction(i, "navigation:right", ok, 0)))
	}
	require.Equal(t, 2, r.classifier.SignalsSnapshot().Frustrated)

	// A second success drops the windowed failure count below the
	// minimum: the counter resets in the same cycle, not gradually.
	require.NoError(t, r.store.Dispatch(makeAction(4, "navigation:right", true, 0)))
	require.Zero(t, r.classifier.SignalsSnapshot().Frustrated)
	require.Equal(t, StateNeutral, r.classifier.Current())
	require.Empty(t, r.changes(t))
}

func TestTargetPriorityOrder(t *testing.T) {
	c := New(DefaultConfig(), history.New(10), nil)

	c.signals = Signals{Frustrated: 3, Concentrated: 5, Exploring: 4, Learning: 4}
	require.Equal(t, StateFrustrated, c.target())

	c.signals.Frustrated = 0
	require.Equal(t, StateConcentrated, c.target())

	c.signals.Concentrated = 0
	require.Equal(t, StateExploring, c.target())

	c.signals.Exploring = 0
	require.Equal(t, StateLearning, c.target())

	c.signals.Learning = 0
	require.Equal(t, StateNeutral, c.target())
}

func TestAnalyzerPanicAbsorbed(t *testing.T) {
	c := New(DefaultConfig(), history.New(10), zap.NewNop())

	counter := 5
	c.step(&counter, "boom", func() bool { panic("kaboom") })
	require.Zero(t, counter, "a faulting analyzer counts as no-signal-this-cycle")

	held := 3
	c.step(&held, "fine", func() bool { return true })
	require.Equal(t, 4, held)
}

func TestConfidenceSaturates(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ConfidenceScale = 2
	r := newRig(cfg)
	for i := 0; i < 8; i++ {
		require.NoError(t, r.store.Dispatch(makeAction(i, "navigation:right", true, 150)))
	}

	changes := r.changes(t)
	require.Len(t, changes, 1)
	require.Equal(t, 1.0, changes[0].Confidence, "confidence is capped at 1.0")
}

func TestDisabledClassifierStillRecords(t *testing.T) {
	r := newRig(DefaultConfig())
	r.classifier.SetEnabled(false)

	for i := 0; i < 10; i++ {
		require.NoError(t, r.store.Dispatch(makeAction(i, "navigation:right", true, 150)))
	}

	require.Equal(t, 10, r.buf.Len())
	require.Empty(t, r.changes(t))
	require.Equal(t, Signals{}, r.classifier.SignalsSnapshot())
}

func TestOwnEmissionsNotRecorded(t *testing.T) {
	r := newRig(DefaultConfig())
	require.NoError(t, r.store.Dispatch(action.New(StateChangeType)))
	require.NoError(t, r.store.Dispatch(action.New(ResetType)))
	require.Zero(t, r.buf.Len(), "cognition-namespace actions must not enter history")
}

func TestReset(t *testing.T) {
	r := newRig(DefaultConfig())
	for i := 0; i < 10; i++ {
		require.NoError(t, r.store.Dispatch(makeAction(i, "navigation:right", true, 150)))
	}
	require.Equal(t, StateConcentrated, r.classifier.Current())

	r.classifier.Reset()
	require.Equal(t, StateNeutral, r.classifier.Current())
	require.Equal(t, StateNeutral, r.classifier.Previous())
	require.Zero(t, r.classifier.Confidence())
	require.Equal(t, Signals{}, r.classifier.SignalsSnapshot())
}

func TestMetadataDurationFeedsConcentration(t *testing.T) {
	r := newRig(DefaultConfig())
	for i := 0; i < 8; i++ {
		a := action.Action{
			Type:       "pointer:tap",
			Timestamp:  base.Add(time.Duration(i) * time.Second),
			Success:    true,
			SuccessSet: true,
			Metadata:   map[string]any{"duration_ms": 120.0},
		}
		require.NoError(t, r.store.Dispatch(a))
	}

	changes := r.changes(t)
	require.Len(t, changes, 1)
	require.Equal(t, StateConcentrated, changes[0].Next)
}

// #endregion invariant-tests
