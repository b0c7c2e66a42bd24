package render

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMissingTranslator is passed to MissingTranslationHandler when a key is
// resolved without a Translator configured.
var ErrMissingTranslator = errors.New("render: translator not configured")

// Translator resolves a display-text key for a locale. Implementations return
// an error when the key is unknown.
type Translator interface {
	Translate(locale, key string, args ...any) (string, error)
}

// TranslatorFunc adapts a function to the Translator interface.
type TranslatorFunc func(locale, key string, args ...any) (string, error)

// Translate implements Translator.
func (fn TranslatorFunc) Translate(locale, key string, args ...any) (string, error) {
	return fn(locale, key, args...)
}

// MissingTranslationHandler returns the text to render when key cannot be
// translated. fallback is the built-in English label (may be empty).
type MissingTranslationHandler func(locale, key, fallback string, err error) string

// Display-text keys used by the bundled renderers.
const (
	KeyTitle            = "editor.title"
	KeyParamsHeading    = "params.heading"
	KeyParamName        = "params.name"
	KeyParamType        = "params.type"
	KeyParamAdd         = "params.add"
	KeyParamRename      = "params.rename"
	KeyParamDelete      = "params.delete"
	KeyParamNewName     = "params.new_name"
	KeyParamsEmpty      = "params.empty"
	KeyValuesHeading    = "values.heading"
	KeyValuesEmpty      = "values.empty"
	KeyValueSave        = "values.save"
	KeyMaterialize      = "materialize.button"
	KeyMaterializeEmpty = "materialize.empty"
	KeyDriftMissing     = "drift.missing"
	KeyDriftOrphaned    = "drift.orphaned"
	KeyDriftDuplicate   = "drift.duplicate"
	KeyTUIMenu          = "tui.menu"
	KeyTUIDone          = "tui.done"
	KeyTUIPickParam     = "tui.pick_param"
	KeyTUIValue         = "tui.value"
	KeyTUIConfirmDelete = "tui.confirm_delete"

	KeyTUIActionAdd         = "tui.action.add"
	KeyTUIActionRename      = "tui.action.rename"
	KeyTUIActionDelete      = "tui.action.delete"
	KeyTUIActionSet         = "tui.action.set"
	KeyTUIActionMaterialize = "tui.action.materialize"
)

// TypeKey returns the display-text key for a parameter type label.
func TypeKey(typ string) string {
	return "type." + strings.TrimSpace(typ)
}

var defaultLabels = map[string]string{
	KeyTitle:            "Parameter editor",
	KeyParamsHeading:    "Parameters",
	KeyParamName:        "Name",
	KeyParamType:        "Type",
	KeyParamAdd:         "Add",
	KeyParamRename:      "Rename",
	KeyParamDelete:      "Delete",
	KeyParamNewName:     "New parameter",
	KeyParamsEmpty:      "No parameters yet.",
	KeyValuesHeading:    "Values",
	KeyValuesEmpty:      "Nothing to edit.",
	KeyValueSave:        "Save",
	KeyMaterialize:      "Materialize",
	KeyMaterializeEmpty: "Press Materialize to dump the current model.",
	KeyDriftMissing:     "Parameters without a model entry: %d",
	KeyDriftOrphaned:    "Model entries without a parameter: %d",
	KeyDriftDuplicate:   "Duplicate parameter ids: %d",
	KeyTUIMenu:          "What next?",
	KeyTUIDone:          "Done",
	KeyTUIPickParam:     "Parameter",
	KeyTUIValue:         "Value",
	KeyTUIConfirmDelete: "Delete this parameter?",

	KeyTUIActionAdd:         "Add parameter",
	KeyTUIActionRename:      "Rename parameter",
	KeyTUIActionDelete:      "Delete parameter",
	KeyTUIActionSet:         "Set value",
	KeyTUIActionMaterialize: "Materialize",

	"type.string":  "string",
	"type.number":  "number",
	"type.boolean": "boolean",
	"type.email":   "email",
	"type.tel":     "tel",
}

// DefaultLabel returns the built-in English text for key.
func DefaultLabel(key string) (string, bool) {
	label, ok := defaultLabels[key]
	return label, ok
}

// Text resolves key through the configured translator, falling back to the
// built-in label, then to the key itself.
func (o RenderOptions) Text(key string, args ...any) string {
	return translate(o.Locale, key, o.Translator, o.OnMissing, args...)
}

func translate(locale, key string, t Translator, onMissing MissingTranslationHandler, args ...any) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return ""
	}
	fallback, _ := DefaultLabel(key)
	if fallback != "" && len(args) > 0 {
		fallback = fmt.Sprintf(fallback, args...)
	}

	if t == nil {
		if onMissing != nil {
			return onMissing(locale, key, fallback, ErrMissingTranslator)
		}
		return orKey(fallback, key)
	}

	result, err := t.Translate(locale, key, args...)
	if err == nil && strings.TrimSpace(result) != "" {
		return result
	}
	if onMissing != nil {
		return onMissing(locale, key, fallback, err)
	}
	return orKey(fallback, key)
}

func orKey(fallback, key string) string {
	if strings.TrimSpace(fallback) != "" {
		return fallback
	}
	return key
}
