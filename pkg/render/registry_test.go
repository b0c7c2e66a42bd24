package render_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-paramedit/pkg/render"
	"github.com/goliatone/go-paramedit/pkg/state"
)

type namedRenderer string

func (n namedRenderer) Name() string        { return string(n) }
func (n namedRenderer) ContentType() string { return "text/plain" }

func (n namedRenderer) Render(context.Context, state.State, render.RenderOptions) ([]byte, error) {
	return []byte(n), nil
}

func TestRegistry_RegisterRejectsInvalid(t *testing.T) {
	registry := render.NewRegistry()
	if err := registry.Register(nil); err == nil {
		t.Fatalf("expected error for nil renderer")
	}
	if err := registry.Register(namedRenderer("  ")); err == nil {
		t.Fatalf("expected error for blank name")
	}
	registry.MustRegister(namedRenderer("vanilla"))
	if err := registry.Register(namedRenderer(" vanilla ")); err == nil {
		t.Fatalf("expected duplicate name to fail")
	}
}

func TestRegistry_ListKeepsRegistrationOrder(t *testing.T) {
	registry := render.NewRegistry()
	registry.MustRegister(namedRenderer("vanilla"))
	registry.MustRegister(namedRenderer("tui"))

	if diff := cmp.Diff([]string{"vanilla", "tui"}, registry.List()); diff != "" {
		t.Fatalf("list mismatch (-want +got):\n%s", diff)
	}
}

func TestRegistry_Resolve(t *testing.T) {
	registry := render.NewRegistry()
	registry.MustRegister(namedRenderer("vanilla"))
	registry.MustRegister(namedRenderer("tui"))

	cases := []struct {
		name     string
		request  string
		fallback string
		want     string
	}{
		{name: "explicit", request: "tui", fallback: "vanilla", want: "tui"},
		{name: "explicit trimmed", request: " tui ", want: "tui"},
		{name: "fallback", fallback: "tui", want: "tui"},
		{name: "unknown fallback uses first registered", fallback: "preact", want: "vanilla"},
		{name: "no fallback uses first registered", want: "vanilla"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			renderer, err := registry.Resolve(tc.request, tc.fallback)
			if err != nil {
				t.Fatalf("resolve: %v", err)
			}
			if got := renderer.Name(); got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestRegistry_ResolveErrors(t *testing.T) {
	registry := render.NewRegistry()
	if _, err := registry.Resolve("", "vanilla"); !errors.Is(err, render.ErrNoRenderers) {
		t.Fatalf("expected ErrNoRenderers, got %v", err)
	}

	registry.MustRegister(namedRenderer("vanilla"))
	if _, err := registry.Resolve("missing", "vanilla"); !errors.Is(err, render.ErrRendererNotFound) {
		t.Fatalf("expected ErrRendererNotFound for explicit name, got %v", err)
	}
	if _, err := registry.Get("missing"); !errors.Is(err, render.ErrRendererNotFound) {
		t.Fatalf("expected ErrRendererNotFound from Get, got %v", err)
	}
}
