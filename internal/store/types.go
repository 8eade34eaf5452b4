package store

// #region imports
import (
	"errors"

	"github.com/danielpatrickdp/adaptive-ui/go-engine/internal/action"
)

// #endregion

// #region errors

// ErrMalformedAction is returned when an action without a type reaches the
// dispatch boundary. No interceptor or reducer runs for such an action.
var ErrMalformedAction = errors.New("malformed action: type is required")

// ErrReentrantDispatch is returned when a reducer or subscriber dispatches
// during an active dispatch. This always indicates an integration bug.
var ErrReentrantDispatch = errors.New("re-entrant dispatch from reducer or subscriber")

// #endregion errors

// #region function-types

// InitType is dispatched once per slice at construction so every reducer
// produces its initial sub-state.
const InitType = "store:init"

// Reducer is a pure function mapping (sub-state, action) to the next
// sub-state for one slice. It must return its input unchanged for actions
// it does not recognize.
type Reducer func(sub any, act action.Action) any

// Next is the continuation an interceptor calls to propagate an action
// toward the reducers.
type Next func(act action.Action) error

// Interceptor observes every action before reducers run. It must call next
// unless it deliberately short-circuits the dispatch. Dispatching through
// the API re-enters the full chain and is legal from an interceptor, but
// not from a reducer or subscriber.
type Interceptor func(api API, act action.Action, next Next) error

// Listener is notified synchronously after reducers run, with a snapshot of
// the state tree.
type Listener func(st State)

// #endregion function-types

// #region state

// State is the normalized state tree, keyed by slice name.
type State map[string]any

// API is the read-only state access plus dispatch handle given to
// interceptors.
type API interface {
	// State returns a snapshot of the current state tree.
	State() State
	// Dispatch submits a new action through the full pipeline.
	Dispatch(act action.Action) error
}

// #endregion state
