package materialize_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-paramedit/pkg/materialize"
	"github.com/goliatone/go-paramedit/pkg/model"
	"github.com/goliatone/go-paramedit/pkg/state"
)

func TestModel_JSONAfterRenameAndSet(t *testing.T) {
	st := state.Example()
	st = state.RenameParameter(st, 1, "Purpose")
	st = state.SetValue(st, 1, "casual")

	got, err := materialize.String(st.Model, materialize.FormatJSON)
	if err != nil {
		t.Fatalf("materialize: %v", err)
	}

	want := `{
  "paramValues": [
    {
      "paramId": 1,
      "value": "casual"
    },
    {
      "paramId": 2,
      "value": "макси"
    }
  ]
}`
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("json mismatch (-want +got):\n%s", diff)
	}
}

func TestModel_JSONKeepsMarkupUnescaped(t *testing.T) {
	m := model.Model{ParamValues: []model.ModelEntry{{ParamID: 1, Value: "<b>&</b>"}}}
	got, err := materialize.String(m, "")
	if err != nil {
		t.Fatalf("materialize: %v", err)
	}
	want := `{
  "paramValues": [
    {
      "paramId": 1,
      "value": "<b>&</b>"
    }
  ]
}`
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("json mismatch (-want +got):\n%s", diff)
	}
}

func TestModel_EmptyModelRendersEmptyList(t *testing.T) {
	got, err := materialize.String(model.Model{}, materialize.FormatJSON)
	if err != nil {
		t.Fatalf("materialize: %v", err)
	}
	if got != "{\n  \"paramValues\": []\n}" {
		t.Fatalf("unexpected empty dump: %q", got)
	}
}

func TestModel_YAML(t *testing.T) {
	got, err := materialize.String(state.Example().Model, materialize.FormatYAML)
	if err != nil {
		t.Fatalf("materialize: %v", err)
	}
	want := `paramValues:
  - paramId: 1
    value: повседневное
  - paramId: 2
    value: макси`
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("yaml mismatch (-want +got):\n%s", diff)
	}
}

func TestParseFormat(t *testing.T) {
	cases := map[string]materialize.Format{
		"":      materialize.FormatJSON,
		"JSON":  materialize.FormatJSON,
		"yml":   materialize.FormatYAML,
		" yaml": materialize.FormatYAML,
	}
	for raw, want := range cases {
		got, err := materialize.ParseFormat(raw)
		if err != nil || got != want {
			t.Errorf("ParseFormat(%q) = %q, %v", raw, got, err)
		}
	}
	if _, err := materialize.ParseFormat("xml"); !errors.Is(err, materialize.ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
	if _, err := materialize.Model(model.Model{}, "xml"); !errors.Is(err, materialize.ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
}
