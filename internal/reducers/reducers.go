package reducers

// #region imports
import (
	"strings"

	"github.com/danielpatrickdp/adaptive-ui/go-engine/internal/action"
	"github.com/danielpatrickdp/adaptive-ui/go-engine/internal/classifier"
	"github.com/danielpatrickdp/adaptive-ui/go-engine/internal/store"
)

// #endregion

// #region slices

// Slices returns the standard slice map for store construction.
func Slices() map[string]store.Reducer {
	return map[string]store.Reducer{
		SliceCognitive:  CognitiveReducer,
		SliceNavigation: NavigationReducer,
		SliceInput:      InputReducer,
	}
}

// #endregion slices

// #region cognitive-reducer

// CognitiveReducer projects state-change actions into the cognitive slice.
// Replaying a captured state-change action through this reducer alone
// reproduces the current state and confidence the live pipeline produced.
func CognitiveReducer(sub any, act action.Action) any {
	st, ok := sub.(Cognitive)
	if !ok {
		st = initialCognitive()
	}

	switch act.Type {
	case classifier.StateChangeType:
		change, ok := act.Payload.(classifier.StateChange)
		if !ok {
			return st
		}
		st.Previous = change.Previous
		st.Current = change.Next
		st.Confidence = change.Confidence
		st.Signals = change.Signals
		st.LastMetrics = change.Metrics
		st.UpdatedAt = change.Timestamp
		st.Transitions++
		return st
	case classifier.ResetType:
		return initialCognitive()
	default:
		return st
	}
}

// #endregion cognitive-reducer

// #region navigation-reducer

// NavigationReducer counts moves per direction from "navigation:<dir>"
// actions. The direction map is copied on write to keep sub-states
// immutable.
func NavigationReducer(sub any, act action.Action) any {
	st, ok := sub.(Navigation)
	if !ok {
		st = Navigation{}
	}
	if !strings.HasPrefix(act.Type, "navigation:") {
		return st
	}

	direction := strings.TrimPrefix(act.Type, "navigation:")
	byDir := make(map[string]int, len(st.ByDirection)+1)
	for k, v := range st.ByDirection {
		byDir[k] = v
	}
	byDir[direction]++

	st.ByDirection = byDir
	st.Moves++
	st.LastDirection = direction
	st.LastAt = act.Timestamp
	return st
}

// #endregion navigation-reducer

// #region input-reducer

// InputReducer tallies actions for the four input modalities. Other
// namespaces leave the slice untouched.
func InputReducer(sub any, act action.Action) any {
	st, ok := sub.(Input)
	if !ok {
		st = Input{}
	}

	namespace, _, found := strings.Cut(act.Type, ":")
	if !found {
		return st
	}
	switch namespace {
	case "keyboard":
		st.Keyboard++
	case "pointer":
		st.Pointer++
	case "voice":
		st.Voice++
	case "gesture":
		st.Gesture++
	default:
		return st
	}

	if !act.Succeeded() {
		st.Failures++
	}
	st.LastType = act.Type
	return st
}

// #endregion input-reducer
