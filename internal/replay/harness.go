package replay

// #region imports
import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/danielpatrickdp/adaptive-ui/go-engine/internal/action"
	"github.com/danielpatrickdp/adaptive-ui/go-engine/internal/classifier"
	"github.com/danielpatrickdp/adaptive-ui/go-engine/internal/engine"
	"github.com/danielpatrickdp/adaptive-ui/go-engine/internal/reducers"
	"github.com/danielpatrickdp/adaptive-ui/go-engine/internal/store"
)

// #endregion

// #region types

// TransitionRecord pairs an observed transition with the index of the
// action whose analysis produced it.
type TransitionRecord struct {
	ActionIndex int
	Change      classifier.StateChange
}

// Result captures the outcome of replaying one fixture through a fresh
// pipeline.
type Result struct {
	TotalActions int
	Transitions  []TransitionRecord
	Final        reducers.Cognitive
	Mismatches   []string
}

// Passed reports whether every fixture expectation held.
func (r Result) Passed() bool {
	return len(r.Mismatches) == 0
}

// #endregion types

// #region run

// Run replays a fixture's action stream through a freshly constructed
// engine. Timestamps are synthesized from a fixed base plus per-action
// offsets, so two runs of the same fixture walk the same path. Operates
// entirely in memory.
func Run(fix *Fixture) (Result, error) {
	var idx int
	var transitions []TransitionRecord

	capture := func(_ store.API, act action.Action, next store.Next) error {
		if act.Type == classifier.StateChangeType {
			if change, ok := act.Payload.(classifier.StateChange); ok {
				transitions = append(transitions, TransitionRecord{
					ActionIndex: idx,
					Change:      change,
				})
			}
		}
		return next(act)
	}

	eng, err := engine.New(fix.Config.ToEngineConfig(), capture)
	if err != nil {
		return Result{}, fmt.Errorf("build engine: %w", err)
	}

	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, fa := range fix.Actions {
		idx = i
		act := action.Action{
			ID:        uuid.New().String(),
			Type:      fa.Type,
			Timestamp: base.Add(time.Duration(fa.OffsetMS) * time.Millisecond),
			Metadata:  fa.Metadata,
		}
		if fa.Success != nil {
			act.Success = *fa.Success
			act.SuccessSet = true
		}
		if fa.DurationMS != nil {
			act.DurationMS = *fa.DurationMS
			act.HasDuration = true
		}
		if err := eng.Dispatch(act); err != nil {
			return Result{}, fmt.Errorf("dispatch action %d (%s): %w", i, fa.Type, err)
		}
	}

	result := Result{
		TotalActions: len(fix.Actions),
		Transitions:  transitions,
		Final:        eng.Cognitive(),
	}
	result.Mismatches = checkExpectations(fix.Expected, transitions)
	return result, nil
}

// checkExpectations compares expected transitions against observed ones by
// action index.
func checkExpectations(expected []ExpectedTransition, observed []TransitionRecord) []string {
	var mismatches []string
	for _, exp := range expected {
		found := false
		for _, tr := range observed {
			if tr.ActionIndex == exp.ActionIndex {
				found = true
				if string(tr.Change.Next) != exp.To {
					mismatches = append(mismatches, fmt.Sprintf(
						"action %d: expected transition to %s, got %s",
						exp.ActionIndex, exp.To, tr.Change.Next))
				}
				break
			}
		}
		if !found {
			mismatches = append(mismatches, fmt.Sprintf(
				"action %d: expected transition to %s, none observed",
				exp.ActionIndex, exp.To))
		}
	}
	return mismatches
}

// #endregion run
