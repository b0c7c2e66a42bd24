package editor

import (
	"sync"

	"github.com/goliatone/go-paramedit/pkg/materialize"
	"github.com/goliatone/go-paramedit/pkg/state"
)

// Option configures a Session.
type Option func(*Session)

// WithStore overrides the state store (and with it the id policy).
func WithStore(store *state.Store) Option {
	return func(s *Session) {
		if store != nil {
			s.store = store
		}
	}
}

// WithInitialState seeds the session. Defaults to state.Example().
func WithInitialState(st state.State) Option {
	return func(s *Session) {
		s.current = st.Clone()
	}
}

// Listener observes every dispatch that changed the snapshot.
type Listener func(action Action, prev, next state.State, revision uint64)

// WithListener registers a change observer.
func WithListener(fn Listener) Option {
	return func(s *Session) {
		if fn != nil {
			s.listeners = append(s.listeners, fn)
		}
	}
}

// Session is a single logical thread of control over one State. The mutex
// only guards against overlapping requests from the same client; a session
// is not meant to be shared between editors.
type Session struct {
	mu        sync.Mutex
	store     *state.Store
	current   state.State
	revision  uint64
	listeners []Listener
}

// NewSession constructs a Session applying options.
func NewSession(options ...Option) *Session {
	s := &Session{
		store:   state.NewStore(),
		current: state.Example(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	return s
}

// Dispatch applies action and returns the resulting snapshot plus whether it
// differs from the previous one. Nil actions are ignored.
func (s *Session) Dispatch(action Action) (state.State, bool) {
	if action == nil {
		return s.Snapshot(), false
	}

	s.mu.Lock()
	prev := s.current
	next := action.Apply(s.store, prev)
	changed := !prev.Equal(next)
	if changed {
		s.current = next
		s.revision++
	}
	revision := s.revision
	listeners := s.listeners
	s.mu.Unlock()

	if changed {
		for _, fn := range listeners {
			fn(action, prev, next, revision)
		}
	}
	return next, changed
}

// Snapshot returns the current state. The returned value shares no backing
// arrays that future dispatches write to.
func (s *Session) Snapshot() state.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Revision counts the dispatches that changed the snapshot.
func (s *Session) Revision() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.revision
}

// Policy reports the id policy name in use.
func (s *Session) Policy() string {
	return s.store.Policy().Name()
}

// Materialize dumps the current model without changing the session.
func (s *Session) Materialize(format materialize.Format) (string, error) {
	return materialize.String(s.Snapshot().Model, format)
}
