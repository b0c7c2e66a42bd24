package state

import "github.com/goliatone/go-paramedit/pkg/model"

// Option configures a Store.
type Option func(*Store)

// WithIDPolicy overrides the identifier policy used by AddParameter.
func WithIDPolicy(policy IDPolicy) Option {
	return func(s *Store) {
		if policy != nil {
			s.policy = policy
		}
	}
}

// Store binds the pure operations to a configured IDPolicy. It holds no
// snapshot of its own and is safe to share.
type Store struct {
	policy IDPolicy
}

// NewStore constructs a Store, defaulting to LengthPolicy.
func NewStore(options ...Option) *Store {
	s := &Store{policy: LengthPolicy{}}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	return s
}

// Policy reports the configured IDPolicy.
func (s *Store) Policy() IDPolicy {
	return s.policy
}

func (s *Store) DeleteParameter(st State, id int) State {
	return DeleteParameter(st, id)
}

func (s *Store) AddParameter(st State, name string, typ model.ParamType) State {
	return AddParameter(st, name, typ, s.policy)
}

func (s *Store) RenameParameter(st State, id int, name string) State {
	return RenameParameter(st, id, name)
}

func (s *Store) SetValue(st State, id int, value string) State {
	return SetValue(st, id, value)
}
