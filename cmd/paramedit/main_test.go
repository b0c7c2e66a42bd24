package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

// isolate runs the test from an empty directory so no paramedit.yaml or
// .env from the checkout is picked up.
func isolate(t *testing.T) {
	t.Helper()
	t.Chdir(t.TempDir())
}

func TestMaterializeDefaultSeed(t *testing.T) {
	isolate(t)
	got, err := runCLI(t, "materialize")
	if err != nil {
		t.Fatalf("materialize: %v", err)
	}
	want := `{
  "paramValues": [
    {
      "paramId": 1,
      "value": "повседневное"
    },
    {
      "paramId": 2,
      "value": "макси"
    }
  ]
}
`
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("materialize mismatch (-want +got):\n%s", diff)
	}
}

func TestMaterializeYAMLFromHCLSeed(t *testing.T) {
	seedPath, err := filepath.Abs(filepath.Join("..", "..", "internal", "seed", "testdata", "example.hcl"))
	if err != nil {
		t.Fatalf("abs: %v", err)
	}
	isolate(t)
	got, err := runCLI(t, "--seed", seedPath, "materialize", "--format", "yaml")
	if err != nil {
		t.Fatalf("materialize: %v", err)
	}
	if !strings.HasPrefix(got, "paramValues:") || !strings.Contains(got, "value: макси") {
		t.Fatalf("unexpected yaml:\n%s", got)
	}
}

func TestMaterializeRejectsUnknownFormat(t *testing.T) {
	isolate(t)
	if _, err := runCLI(t, "materialize", "--format", "toml"); err == nil {
		t.Fatalf("expected unsupported format error")
	}
}

func TestMissingExplicitConfigFails(t *testing.T) {
	isolate(t)
	if _, err := runCLI(t, "--config", "absent.yaml", "materialize"); err == nil {
		t.Fatalf("expected missing config error")
	}
}

func TestConfigFileSelectsFormat(t *testing.T) {
	isolate(t)
	if err := os.WriteFile("paramedit.yaml", []byte("editor:\n  format: yaml\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	got, err := runCLI(t, "materialize")
	if err != nil {
		t.Fatalf("materialize: %v", err)
	}
	if !strings.HasPrefix(got, "paramValues:") {
		t.Fatalf("expected yaml output, got:\n%s", got)
	}
}

func TestSchemaCommand(t *testing.T) {
	isolate(t)
	got, err := runCLI(t, "schema", "--title", "Dress")
	if err != nil {
		t.Fatalf("schema: %v", err)
	}
	var doc struct {
		OpenAPI string `json:"openapi"`
		Info    struct {
			Title string `json:"title"`
		} `json:"info"`
	}
	if err := json.Unmarshal([]byte(got), &doc); err != nil {
		t.Fatalf("decode schema: %v\n%s", err, got)
	}
	if doc.OpenAPI != "3.0.3" || doc.Info.Title != "Dress" {
		t.Fatalf("unexpected document header %+v", doc)
	}
	if !strings.Contains(got, "Назначение") {
		t.Fatalf("expected parameter property in schema:\n%s", got)
	}
}

func TestRenderCommandWritesFile(t *testing.T) {
	isolate(t)
	out, err := runCLI(t, "render", "--lang", "ru", "-o", "editor.html")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out, "editor.html") {
		t.Fatalf("unexpected command output %q", out)
	}
	html, err := os.ReadFile("editor.html")
	if err != nil {
		t.Fatalf("read page: %v", err)
	}
	for _, fragment := range []string{`<html lang="ru">`, "<style>", "Назначение"} {
		if !strings.Contains(string(html), fragment) {
			t.Fatalf("expected page to contain %q\n%s", fragment, html)
		}
	}
}

func TestVersionCommand(t *testing.T) {
	got, err := runCLI(t, "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.HasPrefix(got, modulePath+" ") {
		t.Fatalf("unexpected version output %q", got)
	}
}
