package render

import (
	"sort"
	"strconv"
	"strings"
)

const (
	// CSRFFieldName is the hidden input carrying the session's form token.
	CSRFFieldName = "_csrf"
	// RevisionFieldName is the hidden input carrying the rendered revision.
	RevisionFieldName = "_rev"
)

// HiddenField represents a hidden form input emitted into every editor form.
type HiddenField struct {
	Name  string
	Value string
}

// Hidden returns a HiddenField for an arbitrary name/value pair.
func Hidden(name, value string) HiddenField {
	return HiddenField{
		Name:  strings.TrimSpace(name),
		Value: value,
	}
}

// CSRFToken constructs the hidden field carrying the session form token.
func CSRFToken(token string) HiddenField {
	return Hidden(CSRFFieldName, token)
}

// RevisionField records the revision a form was rendered from so the server
// can log submissions made against an older page.
func RevisionField(revision uint64) HiddenField {
	return Hidden(RevisionFieldName, strconv.FormatUint(revision, 10))
}

// MergeHiddenFields returns a copy of base with the provided fields applied.
// Empty names are ignored; later fields win on name collisions.
func MergeHiddenFields(base map[string]string, fields ...HiddenField) map[string]string {
	if len(base) == 0 && len(fields) == 0 {
		return nil
	}
	out := make(map[string]string, len(base)+len(fields))
	for key, value := range base {
		if trimmed := strings.TrimSpace(key); trimmed != "" {
			out[trimmed] = value
		}
	}
	for _, field := range fields {
		name := strings.TrimSpace(field.Name)
		if name == "" {
			continue
		}
		out[name] = field.Value
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// SortedHiddenFields normalises and sorts hidden fields for deterministic
// rendering. Empty names are dropped and later duplicates win.
func SortedHiddenFields(fields []HiddenField) []HiddenField {
	merged := MergeHiddenFields(nil, fields...)
	if len(merged) == 0 {
		return nil
	}
	names := make([]string, 0, len(merged))
	for name := range merged {
		names = append(names, name)
	}
	sort.Strings(names)

	result := make([]HiddenField, 0, len(names))
	for _, name := range names {
		result = append(result, HiddenField{Name: name, Value: merged[name]})
	}
	return result
}
