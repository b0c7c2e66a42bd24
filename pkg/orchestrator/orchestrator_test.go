package orchestrator_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-paramedit/pkg/model"
	"github.com/goliatone/go-paramedit/pkg/orchestrator"
	"github.com/goliatone/go-paramedit/pkg/render"
	"github.com/goliatone/go-paramedit/pkg/state"
	"github.com/goliatone/go-paramedit/pkg/testsupport"
)

type recordingRenderer struct {
	name  string
	got   state.State
	opts  render.RenderOptions
	calls int
}

func (r *recordingRenderer) Name() string        { return r.name }
func (r *recordingRenderer) ContentType() string { return "text/plain" }

func (r *recordingRenderer) Render(_ context.Context, st state.State, opts render.RenderOptions) ([]byte, error) {
	r.calls++
	r.got = st
	r.opts = opts
	return []byte(r.name + ":" + st.Registry[0].Name), nil
}

func TestGenerate_DefaultRendererAndSeed(t *testing.T) {
	output, err := orchestrator.New().Generate(testsupport.Context(), orchestrator.Request{})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	html := string(output)
	if !strings.Contains(html, "<!DOCTYPE html>") || !strings.Contains(html, "Назначение") {
		t.Fatalf("expected vanilla page for the example seed:\n%s", html)
	}
}

func TestGenerate_SelectsRendererByName(t *testing.T) {
	registry := render.NewRegistry()
	first := &recordingRenderer{name: "first"}
	second := &recordingRenderer{name: "second"}
	registry.MustRegister(first)
	registry.MustRegister(second)

	orch := orchestrator.New(
		orchestrator.WithRegistry(registry),
		orchestrator.WithDefaultRenderer("second"),
	)
	if diff := cmp.Diff([]string{"first", "second"}, orch.Renderers()); diff != "" {
		t.Fatalf("renderers mismatch (-want +got):\n%s", diff)
	}

	ctx := testsupport.Context()
	out, err := orch.Generate(ctx, orchestrator.Request{})
	if err != nil {
		t.Fatalf("generate default: %v", err)
	}
	if string(out) != "second:Назначение" {
		t.Fatalf("unexpected default output %q", out)
	}

	out, err = orch.Generate(ctx, orchestrator.Request{
		Renderer:      "first",
		RenderOptions: render.RenderOptions{Locale: "ru"},
	})
	if err != nil {
		t.Fatalf("generate explicit: %v", err)
	}
	if string(out) != "first:Назначение" || first.opts.Locale != "ru" {
		t.Fatalf("unexpected explicit output %q (locale %q)", out, first.opts.Locale)
	}

	if _, err := orch.Generate(ctx, orchestrator.Request{Renderer: "missing"}); !errors.Is(err, render.ErrRendererNotFound) {
		t.Fatalf("expected unknown renderer error, got %v", err)
	}
}

func TestGenerate_FallsBackToFirstRegistered(t *testing.T) {
	registry := render.NewRegistry()
	only := &recordingRenderer{name: "only"}
	registry.MustRegister(only)

	orch := orchestrator.New(orchestrator.WithRegistry(registry))
	if _, err := orch.Generate(testsupport.Context(), orchestrator.Request{}); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if only.calls != 1 {
		t.Fatalf("expected fallback renderer to be used")
	}
}

func TestGenerate_EmptyRegistry(t *testing.T) {
	orch := orchestrator.New(orchestrator.WithRegistry(render.NewRegistry()))
	if _, err := orch.Generate(testsupport.Context(), orchestrator.Request{}); !errors.Is(err, render.ErrNoRenderers) {
		t.Fatalf("expected ErrNoRenderers, got %v", err)
	}
}

func TestGenerate_ExplicitStateSkipsLoader(t *testing.T) {
	registry := render.NewRegistry()
	rec := &recordingRenderer{name: "rec"}
	registry.MustRegister(rec)

	loaderCalled := false
	orch := orchestrator.New(
		orchestrator.WithRegistry(registry),
		orchestrator.WithStateLoader(func(string) (state.State, error) {
			loaderCalled = true
			return state.State{}, errors.New("unused")
		}),
	)

	st := state.New([]model.Parameter{{ID: 7, Name: "Size", Type: model.ParamTypeNumber}}, model.Model{})
	if _, err := orch.Generate(testsupport.Context(), orchestrator.Request{State: &st}); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if loaderCalled {
		t.Fatalf("loader should not run when state is supplied")
	}
	if !rec.got.Equal(st) {
		t.Fatalf("renderer received a different state: %+v", rec.got)
	}
}

func TestGenerate_LoaderErrorsAreWrapped(t *testing.T) {
	sentinel := errors.New("boom")
	orch := orchestrator.New(orchestrator.WithStateLoader(func(path string) (state.State, error) {
		return state.State{}, sentinel
	}))
	_, err := orch.Generate(testsupport.Context(), orchestrator.Request{Seed: "x.yaml"})
	if !errors.Is(err, sentinel) {
		t.Fatalf("expected wrapped loader error, got %v", err)
	}
}

func TestGenerate_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := orchestrator.New().Generate(ctx, orchestrator.Request{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context error, got %v", err)
	}
}
