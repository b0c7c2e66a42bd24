// Package state holds the editor's two collections, the parameter registry and
// the value model, as an immutable snapshot. The four operations
// (DeleteParameter, AddParameter, RenameParameter, SetValue) are pure
// functions: they return a new State and never write through the input's
// backing arrays, so a caller can compare snapshots to decide whether to
// re-render.
//
// Unknown identifiers are silent no-ops. When identifiers collide, rename and
// set address the first match by position while delete removes every match.
package state
