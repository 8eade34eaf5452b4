package store

// #region imports
import (
	"sort"
	"strings"

	"github.com/danielpatrickdp/adaptive-ui/go-engine/internal/action"
)

// #endregion

// #region store-struct

// Store is a synchronous, single-threaded action pipeline: interceptors run
// in construction order, then slice reducers, then subscribers. Dispatch is
// non-reentrant from reducers and subscribers.
type Store struct {
	reducers     map[string]Reducer
	order        []string
	interceptors []Interceptor
	state        State

	listeners  []listener
	nextListID int

	// committing is true while reducers or subscribers run; any Dispatch
	// during that phase is an integration bug.
	committing bool
}

type listener struct {
	id int
	fn Listener
}

// #endregion store-struct

// #region constructor

// New builds a store from slice reducers and an ordered interceptor list.
// The chain is composed once here, by index, so long chains do not nest
// closures at dispatch time. Each reducer is invoked with InitType to
// produce its initial sub-state.
func New(reducers map[string]Reducer, interceptors ...Interceptor) *Store {
	order := make([]string, 0, len(reducers))
	for name := range reducers {
		order = append(order, name)
	}
	sort.Strings(order)

	st := make(State, len(reducers))
	init := action.Action{Type: InitType}
	for _, name := range order {
		st[name] = reducers[name](nil, init)
	}

	return &Store{
		reducers:     reducers,
		order:        order,
		interceptors: interceptors,
		state:        st,
	}
}

// #endregion constructor

// #region dispatch

// Dispatch runs an action through the interceptor chain, the reducers, and
// the subscribers, synchronously within this call stack. Actions without a
// type are rejected before any interceptor runs.
func (s *Store) Dispatch(act action.Action) error {
	if strings.TrimSpace(act.Type) == "" {
		return ErrMalformedAction
	}
	if s.committing {
		return ErrReentrantDispatch
	}
	return s.runFrom(0, act)
}

// runFrom executes the chain starting at interceptor i; past the end it
// commits the action to the reducers.
func (s *Store) runFrom(i int, act action.Action) error {
	if i < len(s.interceptors) {
		next := func(a action.Action) error {
			return s.runFrom(i+1, a)
		}
		return s.interceptors[i](storeAPI{s}, act, next)
	}
	return s.commit(act)
}

// commit applies reducers in slice-name order and notifies a snapshot of
// the listener list. Listener changes during notification take effect on
// the next dispatch cycle.
func (s *Store) commit(act action.Action) error {
	s.committing = true
	defer func() { s.committing = false }()

	for _, name := range s.order {
		s.state[name] = s.reducers[name](s.state[name], act)
	}

	snapshot := make([]listener, len(s.listeners))
	copy(snapshot, s.listeners)
	st := s.State()
	for _, l := range snapshot {
		l.fn(st)
	}
	return nil
}

// #endregion dispatch

// #region state-access

// State returns a shallow snapshot of the state tree. Sub-states are
// immutable by reducer convention.
func (s *Store) State() State {
	out := make(State, len(s.state))
	for k, v := range s.state {
		out[k] = v
	}
	return out
}

// Slice returns one named sub-state.
func (s *Store) Slice(name string) (any, bool) {
	v, ok := s.state[name]
	return v, ok
}

// #endregion state-access

// #region subscribe

// Subscribe registers a listener and returns its unsubscribe func.
// Listeners are notified in subscription order.
func (s *Store) Subscribe(fn Listener) func() {
	id := s.nextListID
	s.nextListID++
	s.listeners = append(s.listeners, listener{id: id, fn: fn})
	return func() {
		for i, l := range s.listeners {
			if l.id == id {
				s.listeners = append(s.listeners[:i], s.listeners[i+1:]...)
				return
			}
		}
	}
}

// #endregion subscribe

// #region api

// storeAPI adapts the store for interceptors.
type storeAPI struct {
	s *Store
}

func (a storeAPI) State() State {
	return a.s.State()
}

func (a storeAPI) Dispatch(act action.Action) error {
	return a.s.Dispatch(act)
}

// #endregion api
