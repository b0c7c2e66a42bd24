// Package editor owns one editing session: the current state snapshot, the
// revision counter surfaces use to detect changes, and the translation of
// user interaction into the four state operations. Surfaces never mutate
// state directly; they build an Action and call Session.Dispatch.
package editor
