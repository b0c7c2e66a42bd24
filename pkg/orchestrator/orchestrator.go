package orchestrator

import (
	"context"
	"errors"
	"fmt"

	"pkt.systems/pslog"

	"github.com/goliatone/go-paramedit/internal/seed"
	"github.com/goliatone/go-paramedit/pkg/render"
	"github.com/goliatone/go-paramedit/pkg/renderers/vanilla"
	"github.com/goliatone/go-paramedit/pkg/state"
)

const defaultRendererName = "vanilla"

// StateLoader reads the initial editor state from a seed path. An empty path
// selects the built-in example.
type StateLoader func(path string) (state.State, error)

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits an
// explicit Renderer field.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithStateLoader replaces the seed file loader.
func WithStateLoader(loader StateLoader) Option {
	return func(o *Orchestrator) {
		o.loader = loader
	}
}

// Orchestrator resolves a starting state and hands it to a named renderer.
// Missing dependencies fall back to the seed loader and a registry holding
// the vanilla renderer.
type Orchestrator struct {
	loader          StateLoader
	registry        *render.Registry
	defaultRenderer string
	initialiseErr   error
}

// New constructs an Orchestrator applying any provided options.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		defaultRenderer: defaultRendererName,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request describes one render.
type Request struct {
	// State bypasses the loader when the caller already holds a snapshot.
	State *state.State

	// Seed is passed to the loader when State is nil.
	Seed string

	// Renderer names the renderer to use. Empty selects the default.
	Renderer string

	RenderOptions render.RenderOptions
}

// Generate loads the state, reports drift, and returns the rendered bytes.
func (o *Orchestrator) Generate(ctx context.Context, req Request) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := o.initialiseErr; err != nil {
		return nil, err
	}

	st, err := o.resolveState(req)
	if err != nil {
		return nil, err
	}
	if report := state.Drift(st); !report.Empty() {
		pslog.Ctx(ctx).Warn("registry and model out of sync",
			"missing", len(report.Missing),
			"orphaned", len(report.Orphaned),
			"duplicate_ids", len(report.DuplicateIDs))
	}

	renderer, err := o.rendererFor(req.Renderer)
	if err != nil {
		return nil, err
	}

	output, err := renderer.Render(ctx, st, req.RenderOptions)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: render output: %w", err)
	}
	return output, nil
}

// Renderers lists the registered renderer names in registration order.
func (o *Orchestrator) Renderers() []string {
	if o.registry == nil {
		return nil
	}
	return o.registry.List()
}

func (o *Orchestrator) resolveState(req Request) (state.State, error) {
	if req.State != nil {
		return req.State.Clone(), nil
	}
	st, err := o.loader(req.Seed)
	if err != nil {
		return state.State{}, fmt.Errorf("orchestrator: load seed: %w", err)
	}
	return st, nil
}

func (o *Orchestrator) rendererFor(name string) (render.Renderer, error) {
	if o.registry == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}
	renderer, err := o.registry.Resolve(name, o.defaultRenderer)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: resolve renderer: %w", err)
	}
	return renderer, nil
}

func (o *Orchestrator) applyDefaults() {
	if o.loader == nil {
		o.loader = seed.Load
	}
	if o.registry == nil {
		o.registry = render.NewRegistry()
		renderer, err := vanilla.New()
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default renderer: %w", err)
		} else {
			o.registry.MustRegister(renderer)
		}
	}
	if o.defaultRenderer == "" {
		o.defaultRenderer = defaultRendererName
	}
}
