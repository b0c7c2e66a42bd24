package render_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-paramedit/pkg/render"
)

func TestMergeAndSortHiddenFields(t *testing.T) {
	base := map[string]string{
		" existing ": "keep",
		"":           "ignored",
	}

	merged := render.MergeHiddenFields(base,
		render.CSRFToken("token123"),
		render.RevisionField(4),
		render.Hidden("  ", "skip"),
	)

	wantMerged := map[string]string{
		"existing": "keep",
		"_csrf":    "token123",
		"_rev":     "4",
	}
	if diff := cmp.Diff(wantMerged, merged); diff != "" {
		t.Fatalf("merged hidden fields mismatch (-want +got):\n%s", diff)
	}

	sorted := render.SortedHiddenFields([]render.HiddenField{
		render.RevisionField(1),
		render.CSRFToken("token123"),
		render.RevisionField(2),
		render.Hidden("", "dropped"),
	})
	wantSorted := []render.HiddenField{
		{Name: "_csrf", Value: "token123"},
		{Name: "_rev", Value: "2"},
	}
	if diff := cmp.Diff(wantSorted, sorted); diff != "" {
		t.Fatalf("sorted hidden fields mismatch (-want +got):\n%s", diff)
	}
	if render.SortedHiddenFields(nil) != nil {
		t.Fatalf("expected nil for no fields")
	}
}

func TestActionURLs_WithDefaults(t *testing.T) {
	got := render.ActionURLs{Add: "/custom"}.WithDefaults()
	want := render.DefaultActionURLs()
	want.Add = "/custom"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("action urls mismatch (-want +got):\n%s", diff)
	}
}
