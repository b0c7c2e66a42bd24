package state

import (
	"github.com/goliatone/go-paramedit/pkg/model"
)

// State is one snapshot of the editor. Issued records the highest identifier
// handed out during the session and is only consulted by SequencePolicy.
type State struct {
	Registry []model.Parameter `json:"registry" yaml:"registry"`
	Model    model.Model       `json:"model" yaml:"model"`
	Issued   int               `json:"-" yaml:"-"`
}

// New builds a snapshot from caller-owned collections. Both slices are copied.
func New(registry []model.Parameter, values model.Model) State {
	st := State{
		Registry: cloneRegistry(registry),
		Model:    model.Model{ParamValues: cloneEntries(values.ParamValues)},
	}
	st.Issued = maxID(st.Registry)
	return st
}

// Example returns the state every new session starts from.
func Example() State {
	return New(
		[]model.Parameter{
			{ID: 1, Name: "Назначение", Type: model.ParamTypeString},
			{ID: 2, Name: "Длина", Type: model.ParamTypeString},
		},
		model.Model{ParamValues: []model.ModelEntry{
			{ParamID: 1, Value: "повседневное"},
			{ParamID: 2, Value: "макси"},
		}},
	)
}

// DeleteParameter removes every parameter and model entry referencing id.
func DeleteParameter(st State, id int) State {
	next := st
	next.Registry = filterRegistry(st.Registry, func(p model.Parameter) bool { return p.ID != id })
	next.Model = model.Model{
		ParamValues: filterEntries(st.Model.ParamValues, func(e model.ModelEntry) bool { return e.ParamID != id }),
	}
	return next
}

// AddParameter appends a parameter whose id comes from policy together with an
// empty model entry for it. A nil policy means LengthPolicy.
func AddParameter(st State, name string, typ model.ParamType, policy IDPolicy) State {
	if policy == nil {
		policy = LengthPolicy{}
	}
	id := policy.NextID(st)

	registry := make([]model.Parameter, 0, len(st.Registry)+1)
	registry = append(registry, st.Registry...)
	registry = append(registry, model.Parameter{ID: id, Name: name, Type: typ})

	entries := make([]model.ModelEntry, 0, len(st.Model.ParamValues)+1)
	entries = append(entries, st.Model.ParamValues...)
	entries = append(entries, model.ModelEntry{ParamID: id, Value: ""})

	next := st
	next.Registry = registry
	next.Model = model.Model{ParamValues: entries}
	if id > next.Issued {
		next.Issued = id
	}
	return next
}

// RenameParameter replaces the name of the first parameter matching id.
func RenameParameter(st State, id int, name string) State {
	idx := indexOfParameter(st.Registry, id)
	if idx < 0 {
		return st
	}
	next := st
	next.Registry = cloneRegistry(st.Registry)
	next.Registry[idx].Name = name
	return next
}

// SetValue replaces the value of the first model entry matching id. Missing
// entries are not created.
func SetValue(st State, id int, value string) State {
	idx := indexOfEntry(st.Model.ParamValues, id)
	if idx < 0 {
		return st
	}
	next := st
	entries := cloneEntries(st.Model.ParamValues)
	entries[idx].Value = value
	next.Model = model.Model{ParamValues: entries}
	return next
}

// Clone returns a deep copy of st.
func (st State) Clone() State {
	return State{
		Registry: cloneRegistry(st.Registry),
		Model:    model.Model{ParamValues: cloneEntries(st.Model.ParamValues)},
		Issued:   st.Issued,
	}
}

// Equal reports whether two snapshots hold the same registry and model.
func (st State) Equal(other State) bool {
	if len(st.Registry) != len(other.Registry) || len(st.Model.ParamValues) != len(other.Model.ParamValues) {
		return false
	}
	for i := range st.Registry {
		if st.Registry[i] != other.Registry[i] {
			return false
		}
	}
	for i := range st.Model.ParamValues {
		if st.Model.ParamValues[i] != other.Model.ParamValues[i] {
			return false
		}
	}
	return true
}

func indexOfParameter(registry []model.Parameter, id int) int {
	for i, param := range registry {
		if param.ID == id {
			return i
		}
	}
	return -1
}

func indexOfEntry(entries []model.ModelEntry, id int) int {
	for i, entry := range entries {
		if entry.ParamID == id {
			return i
		}
	}
	return -1
}

func filterRegistry(in []model.Parameter, keep func(model.Parameter) bool) []model.Parameter {
	out := make([]model.Parameter, 0, len(in))
	for _, param := range in {
		if keep(param) {
			out = append(out, param)
		}
	}
	return out
}

func filterEntries(in []model.ModelEntry, keep func(model.ModelEntry) bool) []model.ModelEntry {
	out := make([]model.ModelEntry, 0, len(in))
	for _, entry := range in {
		if keep(entry) {
			out = append(out, entry)
		}
	}
	return out
}

func cloneRegistry(in []model.Parameter) []model.Parameter {
	if in == nil {
		return nil
	}
	return append([]model.Parameter(nil), in...)
}

func cloneEntries(in []model.ModelEntry) []model.ModelEntry {
	if in == nil {
		return nil
	}
	return append([]model.ModelEntry(nil), in...)
}

func maxID(registry []model.Parameter) int {
	highest := 0
	for _, param := range registry {
		if param.ID > highest {
			highest = param.ID
		}
	}
	return highest
}
