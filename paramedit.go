// Package paramedit exposes the editor pipeline from the module root for
// callers that want a single import.
package paramedit

import (
	"context"

	"github.com/goliatone/go-paramedit/pkg/editor"
	"github.com/goliatone/go-paramedit/pkg/orchestrator"
	"github.com/goliatone/go-paramedit/pkg/render"
	"github.com/goliatone/go-paramedit/pkg/state"
)

// State aliases state.State.
type State = state.State

// RenderOptions describes per-request display settings for renderers.
type RenderOptions = render.RenderOptions

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// NewSession starts an editor session on the built-in example unless an
// initial state option says otherwise.
func NewSession(options ...editor.Option) *editor.Session {
	return editor.NewSession(options...)
}

// GenerateHTML renders st with the named renderer ("vanilla" when empty).
func GenerateHTML(ctx context.Context, st State, rendererName string, opts RenderOptions, options ...orchestrator.Option) ([]byte, error) {
	gen := orchestrator.New(options...)
	return gen.Generate(ctx, orchestrator.Request{
		State:         &st,
		Renderer:      rendererName,
		RenderOptions: opts,
	})
}

// GenerateHTMLFromSeed loads a seed file (the example when path is empty)
// and renders it.
func GenerateHTMLFromSeed(ctx context.Context, path, rendererName string, opts RenderOptions, options ...orchestrator.Option) ([]byte, error) {
	gen := orchestrator.New(options...)
	return gen.Generate(ctx, orchestrator.Request{
		Seed:          path,
		Renderer:      rendererName,
		RenderOptions: opts,
	})
}
