package vanilla_test

import (
	"fmt"
	"io/fs"
	"strings"
	"testing"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-paramedit/pkg/model"
	"github.com/goliatone/go-paramedit/pkg/render"
	"github.com/goliatone/go-paramedit/pkg/renderers/vanilla"
	"github.com/goliatone/go-paramedit/pkg/state"
	"github.com/goliatone/go-paramedit/pkg/testsupport"
)

func renderHTML(t *testing.T, st state.State, opts render.RenderOptions, options ...vanilla.Option) string {
	t.Helper()
	renderer, err := vanilla.New(options...)
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	output, err := renderer.Render(testsupport.Context(), st, opts)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	return string(output)
}

func assertContains(t *testing.T, html string, fragments ...string) {
	t.Helper()
	for _, fragment := range fragments {
		if !strings.Contains(html, fragment) {
			t.Fatalf("expected output to contain %q\n%s", fragment, html)
		}
	}
}

func TestRenderer_ExampleState(t *testing.T) {
	html := renderHTML(t, state.Example(), render.RenderOptions{})

	assertContains(t, html,
		`<html lang="en">`,
		`<title>Parameter editor</title>`,
		`<link rel="stylesheet" href="/assets/paramedit.css">`,
		`action="/params/1/rename"`,
		`action="/params/2/delete"`,
		`<input type="text" name="name" value="Назначение"`,
		`<option value="string" selected>string</option>`,
		`<option value="tel">tel</option>`,
		`action="/values/1"`,
		`<input type="text" id="value-1" name="value" value="повседневное">`,
		`<input type="text" id="value-2" name="value" value="макси">`,
		`<label for="value-2">Длина</label>`,
		`Press Materialize to dump the current model.`,
	)
	if strings.Contains(html, "paramedit__drift") {
		t.Fatalf("example state should not report drift")
	}
}

func TestRenderer_ControlKinds(t *testing.T) {
	st := state.New(
		[]model.Parameter{
			{ID: 1, Name: "Count", Type: model.ParamTypeNumber},
			{ID: 2, Name: "Enabled", Type: model.ParamTypeBoolean},
			{ID: 3, Name: "Mail", Type: model.ParamTypeEmail},
			{ID: 4, Name: "Phone", Type: model.ParamTypeTel},
			{ID: 5, Name: "Off", Type: model.ParamTypeBoolean},
		},
		model.Model{ParamValues: []model.ModelEntry{
			{ParamID: 1, Value: "3"},
			{ParamID: 2, Value: "true"},
			{ParamID: 3, Value: "a@b.c"},
			{ParamID: 4, Value: "+1"},
			{ParamID: 5, Value: "yes"},
		}},
	)

	html := renderHTML(t, st, render.RenderOptions{})
	assertContains(t, html,
		`<input type="number" id="value-1" name="value" value="3">`,
		`<input type="checkbox" id="value-2" name="checked" value="true" checked>`,
		`<input type="email" id="value-3" name="value" value="a@b.c">`,
		`<input type="tel" id="value-4" name="value" value="+1">`,
		`<input type="checkbox" id="value-5" name="checked" value="true">`,
		`<input type="hidden" name="kind" value="checkbox">`,
		`<option value="boolean" selected>boolean</option>`,
	)
}

func TestRenderer_AddRowDefaultsToFirstType(t *testing.T) {
	html := renderHTML(t, state.State{}, render.RenderOptions{})

	addForm := html[strings.Index(html, `class="paramedit__add"`):]
	assertContains(t, addForm,
		`<input type="text" name="name" value=""`,
		`<option value="string" selected>string</option>`,
	)
	assertContains(t, html, "No parameters yet.", "Nothing to edit.")
}

func TestRenderer_MissingEntryRendersBlankAndDrift(t *testing.T) {
	st := state.New(
		[]model.Parameter{{ID: 1, Name: "Solo", Type: model.ParamTypeString}},
		model.Model{ParamValues: []model.ModelEntry{{ParamID: 9, Value: "orphan"}}},
	)

	html := renderHTML(t, st, render.RenderOptions{})
	assertContains(t, html,
		`<input type="text" id="value-1" name="value" value="">`,
		`<p>Parameters without a model entry: 1</p>`,
		`<p>Model entries without a parameter: 1</p>`,
	)
}

func TestRenderer_LabelsShowNamesAsTyped(t *testing.T) {
	cases := []struct {
		name  string
		label string
	}{
		{name: "<b>Bold</b>", label: `<label for="value-1">&lt;b&gt;Bold&lt;/b&gt;</label>`},
		{name: "<script>x</script>", label: `<label for="value-1">&lt;script&gt;x&lt;/script&gt;</label>`},
		{name: "a<b", label: `<label for="value-1">a&lt;b</label>`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			st := state.New(
				[]model.Parameter{{ID: 1, Name: tc.name, Type: model.ParamTypeString}},
				model.Model{ParamValues: []model.ModelEntry{{ParamID: 1, Value: `"quoted"`}}},
			)

			html := renderHTML(t, st, render.RenderOptions{})
			assertContains(t, html, tc.label)
			if strings.Contains(html, `<label for="value-1">`+tc.name) {
				t.Fatalf("raw markup leaked into label")
			}
		})
	}
}

func TestRenderer_EscapesInputs(t *testing.T) {
	st := state.New(
		[]model.Parameter{{ID: 1, Name: "<b>Bold</b>", Type: model.ParamTypeString}},
		model.Model{ParamValues: []model.ModelEntry{{ParamID: 1, Value: `"quoted"`}}},
	)

	html := renderHTML(t, st, render.RenderOptions{})
	assertContains(t, html,
		`name="name" value="&lt;b&gt;Bold&lt;/b&gt;"`,
		`id="value-1" name="value" value="&quot;quoted&quot;"`,
	)
}

func TestRenderer_ControlIDsFollowRowPosition(t *testing.T) {
	st := state.New(
		[]model.Parameter{
			{ID: 1, Name: "First", Type: model.ParamTypeString},
			{ID: 1, Name: "Second", Type: model.ParamTypeBoolean},
		},
		model.Model{ParamValues: []model.ModelEntry{{ParamID: 1, Value: "true"}}},
	)

	html := renderHTML(t, st, render.RenderOptions{})
	assertContains(t, html,
		`<label for="value-1">First</label>`,
		`<input type="text" id="value-1" name="value" value="true">`,
		`<label for="value-2">Second</label>`,
		`<input type="checkbox" id="value-2" name="checked" value="true" checked>`,
		`action="/values/1"`,
	)
	if strings.Count(html, `id="value-1"`) != 1 {
		t.Fatalf("expected a single control with id value-1\n%s", html)
	}
}

func TestRenderer_HelpTextKeepsEmphasisOnly(t *testing.T) {
	translator := render.TranslatorFunc(func(_ string, key string, _ ...any) (string, error) {
		switch key {
		case render.KeyMaterializeEmpty:
			return `Press <em>Materialize</em><script>alert(1)</script> now.`, nil
		case render.KeyValuesEmpty:
			return `<a href="javascript:x">Nothing</a> <code>yet</code>`, nil
		}
		return "", fmt.Errorf("no text for %q", key)
	})

	html := renderHTML(t, state.State{}, render.RenderOptions{Translator: translator})
	assertContains(t, html,
		`<p class="paramedit__empty">Press <em>Materialize</em> now.</p>`,
		`<p class="paramedit__empty">Nothing <code>yet</code></p>`,
		`<p class="paramedit__empty">No parameters yet.</p>`,
	)
	for _, leaked := range []string{"<script>", "alert(1)", "javascript:", "<a "} {
		if strings.Contains(html, leaked) {
			t.Fatalf("help text leaked %q\n%s", leaked, html)
		}
	}
}

func TestRenderer_HiddenFieldsMaterializedAndActions(t *testing.T) {
	html := renderHTML(t, state.Example(), render.RenderOptions{
		Hidden:       []render.HiddenField{render.CSRFToken("tok"), render.RevisionField(7)},
		Materialized: `{"paramValues": []}`,
		Revision:     7,
		Actions:      render.ActionURLs{Add: "/editor/params", Assets: "/static"},
	})

	assertContains(t, html,
		`<input type="hidden" name="_csrf" value="tok">`,
		`<input type="hidden" name="_rev" value="7">`,
		`<pre class="paramedit__dump">`,
		`paramValues`,
		`action="/editor/params"`,
		`href="/static/paramedit.css"`,
		`data-revision="7"`,
	)
}

func TestRenderer_ThemeAndTranslator(t *testing.T) {
	html := renderHTML(t, state.Example(), render.RenderOptions{
		Locale: "ru",
		Translator: render.TranslatorFunc(func(locale, key string, args ...any) (string, error) {
			if key == render.KeyParamAdd {
				return "Добавить", nil
			}
			return "", fs.ErrNotExist
		}),
		Theme: &theme.RendererConfig{
			Theme:   "paramedit",
			Variant: "dark",
			CSSVars: map[string]string{"--pe-bg": "#000000", "--pe-accent": "#ff0000"},
			AssetURL: func(name string) string {
				return "/themes/dark/" + name
			},
		},
	})

	assertContains(t, html,
		`<html lang="ru">`,
		`>Добавить</button>`,
		`data-theme="paramedit"`,
		`data-variant="dark"`,
		`style="--pe-accent: #ff0000; --pe-bg: #000000"`,
		`href="/themes/dark/paramedit.css"`,
	)
}

func TestRenderer_DefaultStylesInline(t *testing.T) {
	html := renderHTML(t, state.Example(), render.RenderOptions{}, vanilla.WithDefaultStyles())
	assertContains(t, html, "<style>", ".paramedit__main")
	if strings.Contains(html, `rel="stylesheet"`) {
		t.Fatalf("inline styles should replace the stylesheet link")
	}
}

func TestRenderer_Metadata(t *testing.T) {
	renderer, err := vanilla.New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	if renderer.Name() != "vanilla" || renderer.ContentType() != "text/html; charset=utf-8" {
		t.Fatalf("unexpected metadata %q %q", renderer.Name(), renderer.ContentType())
	}
	if _, err := fs.ReadFile(vanilla.AssetsFS(), vanilla.StylesheetName); err != nil {
		t.Fatalf("stylesheet not embedded: %v", err)
	}
}
