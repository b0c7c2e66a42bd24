package render

import (
	theme "github.com/goliatone/go-theme"
)

// RenderOptions describe per-request data renderers use to customise their
// output without touching editor state.
type RenderOptions struct {
	// Locale selects display text, e.g. "en" or "ru".
	Locale string
	// Translator resolves display-text keys. Nil falls back to the built-in
	// English labels.
	Translator Translator
	// OnMissing decides what a missing translation renders as.
	OnMissing MissingTranslationHandler
	// Theme carries resolved go-theme tokens and CSS variables.
	Theme *theme.RendererConfig
	// Materialized is the last model dump requested by the user. It is a
	// snapshot taken at request time and is not refreshed on edits.
	Materialized string
	// Actions overrides the URLs forms submit to.
	Actions ActionURLs
	// Hidden fields are emitted into every form (CSRF token, revision).
	Hidden []HiddenField
	// Revision is the session revision the page was rendered from.
	Revision uint64
}

// ActionURLs lists the endpoints the HTML surface posts to. "{id}" is
// replaced with the parameter id.
type ActionURLs struct {
	Add         string
	Rename      string
	Delete      string
	SetValue    string
	Materialize string
	Assets      string
}

// DefaultActionURLs matches the routes mounted by the HTTP server.
func DefaultActionURLs() ActionURLs {
	return ActionURLs{
		Add:         "/params",
		Rename:      "/params/{id}/rename",
		Delete:      "/params/{id}/delete",
		SetValue:    "/values/{id}",
		Materialize: "/materialize",
		Assets:      "/assets",
	}
}

// WithDefaults fills empty URLs from DefaultActionURLs.
func (a ActionURLs) WithDefaults() ActionURLs {
	def := DefaultActionURLs()
	if a.Add == "" {
		a.Add = def.Add
	}
	if a.Rename == "" {
		a.Rename = def.Rename
	}
	if a.Delete == "" {
		a.Delete = def.Delete
	}
	if a.SetValue == "" {
		a.SetValue = def.SetValue
	}
	if a.Materialize == "" {
		a.Materialize = def.Materialize
	}
	if a.Assets == "" {
		a.Assets = def.Assets
	}
	return a
}
