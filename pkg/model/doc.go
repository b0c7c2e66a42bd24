// Package model defines the values the parameter editor works with: the
// Parameter definitions kept in the registry, the string-typed ModelEntry
// values, and the fixed mapping from a declared ParamType onto the native
// ControlKind a surface uses to edit it. Values are stored as strings
// regardless of the declared type; the type only drives presentation.
package model
