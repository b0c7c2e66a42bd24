package appconfig

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "paramedit.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(prev) })
}

func TestLoad_DefaultsWhenDefaultFileMissing(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff(DefaultConfig(), cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_ExplicitMissingFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatalf("expected error for missing explicit config")
	}
}

func TestLoad_FileValues(t *testing.T) {
	path := writeConfig(t, `
http:
  addr: ":9090"
  base_path: /editor/
editor:
  id_policy: sequence
  locale: ru
  seed: seeds/demo.hcl
theme:
  variant: dark
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.HTTP.Addr != ":9090" || cfg.HTTP.NormalizedBasePath() != "/editor" {
		t.Fatalf("unexpected http config %+v", cfg.HTTP)
	}
	if cfg.HTTP.SessionCookie != "paramedit_session" || cfg.HTTP.SessionTTLMinutes != 120 {
		t.Fatalf("defaults not applied: %+v", cfg.HTTP)
	}
	want := EditorConfig{IDPolicy: "sequence", Locale: "ru", Seed: "seeds/demo.hcl", Format: "json"}
	if diff := cmp.Diff(want, cfg.Editor); diff != "" {
		t.Fatalf("editor mismatch (-want +got):\n%s", diff)
	}
	if cfg.Theme.Variant != "dark" || cfg.Theme.Name != "paramedit" {
		t.Fatalf("unexpected theme %+v", cfg.Theme)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "http:\n  addr: \":9090\"\neditor:\n  locale: ru\n")
	t.Setenv("PARAMEDIT_ADDR", ":7070")
	t.Setenv("PARAMEDIT_LOCALE", "en")
	t.Setenv("PARAMEDIT_ID_POLICY", "sequence")
	t.Setenv("PARAMEDIT_SESSION_TTL_MINUTES", "5")
	t.Setenv("PARAMEDIT_DISABLE_REQUEST_LOG", "true")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.HTTP.Addr != ":7070" || cfg.Editor.Locale != "en" || cfg.Editor.IDPolicy != "sequence" {
		t.Fatalf("env overrides not applied: %+v", cfg)
	}
	if cfg.HTTP.SessionTTLMinutes != 5 || !cfg.Logging.DisableRequestLog {
		t.Fatalf("env overrides not applied: %+v", cfg)
	}
}

func TestLoad_ValidationErrors(t *testing.T) {
	cases := map[string]string{
		"policy":   "editor:\n  id_policy: random\n",
		"format":   "editor:\n  format: xml\n",
		"basepath": "http:\n  base_path: https://example.com\n",
		"ttl":      "http:\n  session_ttl_minutes: 0\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, body)); err == nil {
				t.Fatalf("expected validation error")
			}
		})
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte("PARAMEDIT_THEME_VARIANT=dark\n"), 0o600); err != nil {
		t.Fatalf("write env: %v", err)
	}
	t.Cleanup(func() { _ = os.Unsetenv("PARAMEDIT_THEME_VARIANT") })

	if err := LoadDotEnv(filepath.Join(dir, "missing.env"), path); err != nil {
		t.Fatalf("load dotenv: %v", err)
	}
	if got := os.Getenv("PARAMEDIT_THEME_VARIANT"); got != "dark" {
		t.Fatalf("expected variable from .env, got %q", got)
	}

	chdir(t, t.TempDir())
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Theme.Variant != "dark" {
		t.Fatalf("expected dotenv value to reach config, got %q", cfg.Theme.Variant)
	}
}

func TestNormalizedBasePath(t *testing.T) {
	for in, want := range map[string]string{"": "", "/": "", "editor": "/editor", "/a/b/": "/a/b"} {
		if got := (HTTPConfig{BasePath: in}).NormalizedBasePath(); got != want {
			t.Fatalf("NormalizedBasePath(%q) = %q, want %q", in, got, want)
		}
	}
	if !strings.HasPrefix(DefaultConfig().HTTP.Addr, "127.0.0.1") {
		t.Fatalf("default addr should bind loopback")
	}
}
