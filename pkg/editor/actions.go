package editor

import (
	"strconv"

	"github.com/goliatone/go-paramedit/pkg/model"
	"github.com/goliatone/go-paramedit/pkg/state"
)

// Action is a single user intent applied to a snapshot.
type Action interface {
	Kind() string
	Apply(store *state.Store, st state.State) state.State
}

const (
	KindAdd    = "add"
	KindRename = "rename"
	KindDelete = "delete"
	KindSet    = "set"
)

// AddParam appends a parameter with an empty value.
type AddParam struct {
	Name string
	Type model.ParamType
}

func (AddParam) Kind() string { return KindAdd }

func (a AddParam) Apply(store *state.Store, st state.State) state.State {
	return store.AddParameter(st, a.Name, a.Type)
}

// RenameParam replaces a parameter's name.
type RenameParam struct {
	ID   int
	Name string
}

func (RenameParam) Kind() string { return KindRename }

func (a RenameParam) Apply(store *state.Store, st state.State) state.State {
	return store.RenameParameter(st, a.ID, a.Name)
}

// DeleteParam removes a parameter and its value.
type DeleteParam struct {
	ID int
}

func (DeleteParam) Kind() string { return KindDelete }

func (a DeleteParam) Apply(store *state.Store, st state.State) state.State {
	return store.DeleteParameter(st, a.ID)
}

// SetValue replaces the stored value of a parameter.
type SetValue struct {
	ID    int
	Value string
}

func (SetValue) Kind() string { return KindSet }

func (a SetValue) Apply(store *state.Store, st state.State) state.State {
	return store.SetValue(st, a.ID, a.Value)
}

// ControlValue converts what a native control reports into the stored
// string: the control's text, or for checkbox controls with no text the
// checked state as "true"/"false".
func ControlValue(kind model.ControlKind, text string, checked bool) string {
	if kind == model.ControlCheckbox && text == "" {
		return strconv.FormatBool(checked)
	}
	return text
}
