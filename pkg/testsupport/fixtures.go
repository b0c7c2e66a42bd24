// Package testsupport holds helpers shared by package tests: golden files,
// editor fixtures, and template capture.
package testsupport

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-paramedit/pkg/model"
	"github.com/goliatone/go-paramedit/pkg/state"
)

// StateFixture is the on-disk shape of an editor snapshot used by tests.
type StateFixture struct {
	Parameters []model.Parameter `yaml:"parameters" json:"parameters"`
	Model      model.Model       `yaml:"model" json:"model"`
}

// MustLoadState reads a YAML or JSON state fixture.
func MustLoadState(t *testing.T, path string) state.State {
	t.Helper()
	st, err := LoadState(path)
	if err != nil {
		t.Fatalf("load state fixture %s: %v", path, err)
	}
	return st
}

// LoadState reads a state fixture without requiring a *testing.T.
func LoadState(path string) (state.State, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return state.State{}, err
	}
	var fixture StateFixture
	if err := yaml.Unmarshal(data, &fixture); err != nil {
		return state.State{}, err
	}
	return state.New(fixture.Parameters, fixture.Model), nil
}

// WriteGolden writes value as indented JSON when UPDATE_GOLDENS is set.
func WriteGolden(t *testing.T, path string, value any) {
	t.Helper()

	if os.Getenv("UPDATE_GOLDENS") == "" {
		return
	}
	payload, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		t.Fatalf("marshal golden: %v", err)
	}
	writeFile(t, path, payload)
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// MustReadGoldenString reads a golden file and returns its string content.
func MustReadGoldenString(t *testing.T, path string) string {
	t.Helper()
	return string(MustReadGolden(t, path))
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	writeFile(t, path, data)
	return true
}

func writeFile(t *testing.T, path string, data []byte) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// CaptureTemplateOutput runs render against a buffer and returns both the
// returned string and what was written.
func CaptureTemplateOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}
	return out, buf.String()
}
