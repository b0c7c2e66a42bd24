package state

import (
	"fmt"
	"strings"
)

// IDPolicy assigns identifiers to new parameters.
type IDPolicy interface {
	Name() string
	NextID(st State) int
}

// LengthPolicy hands out len(registry)+1. After a deletion the next id can
// collide with a live parameter; the collision is kept on purpose so sessions
// behave like the original editor.
type LengthPolicy struct{}

func (LengthPolicy) Name() string { return "length" }

func (LengthPolicy) NextID(st State) int {
	return len(st.Registry) + 1
}

// SequencePolicy never reuses an identifier within a session.
type SequencePolicy struct{}

func (SequencePolicy) Name() string { return "sequence" }

func (SequencePolicy) NextID(st State) int {
	highest := st.Issued
	if current := maxID(st.Registry); current > highest {
		highest = current
	}
	return highest + 1
}

// ParseIDPolicy resolves a policy by name. Empty selects LengthPolicy.
func ParseIDPolicy(name string) (IDPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "length":
		return LengthPolicy{}, nil
	case "sequence", "sequential", "counter":
		return SequencePolicy{}, nil
	default:
		return nil, fmt.Errorf("state: unknown id policy %q", name)
	}
}
