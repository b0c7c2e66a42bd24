package model

// ParamType is the declared type of a parameter. Values outside the known set
// are carried as-is; nothing in the editor validates them.
type ParamType string

const (
	ParamTypeString  ParamType = "string"
	ParamTypeNumber  ParamType = "number"
	ParamTypeBoolean ParamType = "boolean"
	ParamTypeEmail   ParamType = "email"
	ParamTypeTel     ParamType = "tel"
)

// ParamTypes lists every creatable type in presentation order. The first entry
// is the default selection for new parameters.
func ParamTypes() []ParamType {
	return []ParamType{
		ParamTypeString,
		ParamTypeNumber,
		ParamTypeBoolean,
		ParamTypeEmail,
		ParamTypeTel,
	}
}

// DefaultParamType is preselected in the "add parameter" row.
func DefaultParamType() ParamType {
	return ParamTypes()[0]
}

// Known reports whether t is one of ParamTypes.
func (t ParamType) Known() bool {
	for _, candidate := range ParamTypes() {
		if candidate == t {
			return true
		}
	}
	return false
}

// ControlKind is the native input kind used to edit a value.
type ControlKind string

const (
	ControlText     ControlKind = "text"
	ControlNumber   ControlKind = "number"
	ControlCheckbox ControlKind = "checkbox"
	ControlEmail    ControlKind = "email"
	ControlTel      ControlKind = "tel"
)

var controlKinds = map[ParamType]ControlKind{
	ParamTypeString:  ControlText,
	ParamTypeNumber:  ControlNumber,
	ParamTypeBoolean: ControlCheckbox,
	ParamTypeEmail:   ControlEmail,
	ParamTypeTel:     ControlTel,
}

// ControlKind maps a declared type onto its input control. The mapping is
// total: unknown types fall back to a plain text control.
func (t ParamType) ControlKind() ControlKind {
	if kind, ok := controlKinds[t]; ok {
		return kind
	}
	return ControlText
}

// Parameter is a named, typed field definition. Type is fixed at creation.
type Parameter struct {
	ID   int       `json:"id" yaml:"id"`
	Name string    `json:"name" yaml:"name"`
	Type ParamType `json:"type" yaml:"type"`
}

// ModelEntry holds the current value of one parameter, always as a string.
type ModelEntry struct {
	ParamID int    `json:"paramId" yaml:"paramId"`
	Value   string `json:"value" yaml:"value"`
}

// Model is the value container edited through the form.
type Model struct {
	ParamValues []ModelEntry `json:"paramValues" yaml:"paramValues"`
}

// Lookup returns the value of the first entry bound to paramID.
func (m Model) Lookup(paramID int) (string, bool) {
	for _, entry := range m.ParamValues {
		if entry.ParamID == paramID {
			return entry.Value, true
		}
	}
	return "", false
}

// Find returns the first parameter with the given id.
func Find(registry []Parameter, id int) (Parameter, bool) {
	for _, param := range registry {
		if param.ID == id {
			return param, true
		}
	}
	return Parameter{}, false
}
