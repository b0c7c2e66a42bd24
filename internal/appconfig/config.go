// Package appconfig loads paramedit configuration from a .env file, an
// optional YAML file and PARAMEDIT_* environment variables, in that order of
// increasing precedence.
package appconfig

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-paramedit/pkg/materialize"
	"github.com/goliatone/go-paramedit/pkg/state"
)

// DefaultConfigPath is read when no --config flag is given. A missing file
// at this path is not an error.
const DefaultConfigPath = "paramedit.yaml"

// Config is the top-level application configuration.
type Config struct {
	HTTP    HTTPConfig    `mapstructure:"http" yaml:"http"`
	Editor  EditorConfig  `mapstructure:"editor" yaml:"editor"`
	Theme   ThemeConfig   `mapstructure:"theme" yaml:"theme"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
}

// HTTPConfig configures the browser surface.
type HTTPConfig struct {
	Addr                 string `mapstructure:"addr" yaml:"addr"`
	BasePath             string `mapstructure:"base_path" yaml:"base_path"`
	SessionCookie        string `mapstructure:"session_cookie" yaml:"session_cookie"`
	SessionTTLMinutes    int    `mapstructure:"session_ttl_minutes" yaml:"session_ttl_minutes"`
	ShutdownGraceSeconds int    `mapstructure:"shutdown_grace_seconds" yaml:"shutdown_grace_seconds"`
}

// EditorConfig configures new editor sessions.
type EditorConfig struct {
	// IDPolicy is "length" (default) or "sequence".
	IDPolicy string `mapstructure:"id_policy" yaml:"id_policy"`
	// Seed is a YAML, JSON or HCL file replacing the built-in example.
	Seed   string `mapstructure:"seed" yaml:"seed"`
	Locale string `mapstructure:"locale" yaml:"locale"`
	// Format is the default materialize format for the CLI.
	Format string `mapstructure:"format" yaml:"format"`
}

// ThemeConfig describes the go-theme manifest the HTML surface is styled with.
type ThemeConfig struct {
	Name     string                       `mapstructure:"name" yaml:"name"`
	Variant  string                       `mapstructure:"variant" yaml:"variant"`
	Tokens   map[string]string            `mapstructure:"tokens" yaml:"tokens"`
	Variants map[string]map[string]string `mapstructure:"variants" yaml:"variants"`
}

// LoggingConfig toggles optional log output.
type LoggingConfig struct {
	DisableRequestLog bool `mapstructure:"disable_request_log" yaml:"disable_request_log"`
}

// DefaultConfig returns the configuration used when nothing is overridden.
func DefaultConfig() Config {
	return Config{
		HTTP: HTTPConfig{
			Addr:                 "127.0.0.1:8080",
			SessionCookie:        "paramedit_session",
			SessionTTLMinutes:    120,
			ShutdownGraceSeconds: 5,
		},
		Editor: EditorConfig{
			IDPolicy: "length",
			Locale:   "en",
			Format:   string(materialize.FormatJSON),
		},
		Theme: ThemeConfig{
			Name:    "paramedit",
			Variant: "light",
			Tokens: map[string]string{
				"pe-accent": "#0969da",
			},
			Variants: map[string]map[string]string{
				"dark": {
					"pe-bg":     "#0d1117",
					"pe-fg":     "#e6edf3",
					"pe-accent": "#2f81f7",
					"pe-border": "#30363d",
				},
			},
		},
	}
}

// Validate checks values that cannot be corrected silently.
func (c Config) Validate() error {
	if strings.TrimSpace(c.HTTP.Addr) == "" {
		return fmt.Errorf("appconfig: http.addr is required")
	}
	if c.HTTP.SessionTTLMinutes <= 0 {
		return fmt.Errorf("appconfig: http.session_ttl_minutes must be positive")
	}
	if strings.TrimSpace(c.HTTP.SessionCookie) == "" {
		return fmt.Errorf("appconfig: http.session_cookie is required")
	}
	basePath := strings.TrimSpace(c.HTTP.BasePath)
	if basePath != "" {
		if strings.Contains(basePath, "://") {
			return fmt.Errorf("appconfig: http.base_path must be a path prefix, not a URL")
		}
		if strings.ContainsAny(basePath, "?#") {
			return fmt.Errorf("appconfig: http.base_path must not include query or fragment")
		}
	}
	if _, err := state.ParseIDPolicy(c.Editor.IDPolicy); err != nil {
		return fmt.Errorf("appconfig: editor.id_policy: %w", err)
	}
	if _, err := materialize.ParseFormat(c.Editor.Format); err != nil {
		return fmt.Errorf("appconfig: editor.format: %w", err)
	}
	return nil
}

// NormalizedBasePath returns the base path with a leading slash and no
// trailing slash; the root path is "".
func (c HTTPConfig) NormalizedBasePath() string {
	trimmed := strings.Trim(strings.TrimSpace(c.BasePath), "/")
	if trimmed == "" {
		return ""
	}
	return "/" + trimmed
}
