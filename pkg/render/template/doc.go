// Package template defines the seam HTML renderers use to execute templates.
// The gotemplate sub-package provides the pongo2-backed implementation.
package template
