package tui

import (
	"io"

	"github.com/goliatone/go-paramedit/pkg/editor"
	"github.com/goliatone/go-paramedit/pkg/materialize"
	"github.com/goliatone/go-paramedit/pkg/state"
)

// Theme captures optional message prefixes applied to printed output.
type Theme struct {
	InfoPrefix string
}

// Option configures the TUI renderer.
type Option func(*Renderer)

// WithPromptDriver overrides the prompt driver used by the renderer.
func WithPromptDriver(driver PromptDriver) Option {
	return func(r *Renderer) {
		if driver != nil {
			r.driver = driver
		}
	}
}

// WithOutput sets where the default driver prints informational messages.
func WithOutput(w io.Writer) Option {
	return func(r *Renderer) {
		r.out = w
	}
}

// WithOutputFormat selects how the final model is serialized.
func WithOutputFormat(format materialize.Format) Option {
	return func(r *Renderer) {
		if format != "" {
			r.format = format
		}
	}
}

// WithStore sets the store (and so the id policy) used for additions.
func WithStore(store *state.Store) Option {
	return func(r *Renderer) {
		if store != nil {
			r.store = store
		}
	}
}

// WithListener observes every dispatched action.
func WithListener(fn editor.Listener) Option {
	return func(r *Renderer) {
		if fn != nil {
			r.listeners = append(r.listeners, fn)
		}
	}
}

// WithTheme applies optional message prefixes.
func WithTheme(theme Theme) Option {
	return func(r *Renderer) {
		r.theme = theme
	}
}
