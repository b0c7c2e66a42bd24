// Package materialize renders the value model as human-readable text for
// inspection. It never touches editor state.
package materialize

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-paramedit/pkg/model"
)

// Format selects the text encoding of a dump.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ErrUnsupportedFormat is returned for formats other than json and yaml.
var ErrUnsupportedFormat = errors.New("materialize: unsupported format")

// ParseFormat normalises user input. Empty selects JSON.
func ParseFormat(raw string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, raw)
	}
}

// ContentType reports the MIME type for f.
func (f Format) ContentType() string {
	if f == FormatYAML {
		return "application/yaml; charset=utf-8"
	}
	return "application/json; charset=utf-8"
}

// Model dumps m in the requested format. JSON uses a two-space indent and
// leaves non-ASCII text and HTML characters unescaped.
func Model(m model.Model, format Format) ([]byte, error) {
	if m.ParamValues == nil {
		m.ParamValues = []model.ModelEntry{}
	}
	switch format {
	case "", FormatJSON:
		return prettyJSON(m)
	case FormatYAML:
		return prettyYAML(m)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// String is Model for callers that only display the result.
func String(m model.Model, format Format) (string, error) {
	out, err := Model(m, format)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func prettyJSON(value any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(value); err != nil {
		return nil, fmt.Errorf("materialize: encode json: %w", err)
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

func prettyYAML(value any) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(value); err != nil {
		return nil, fmt.Errorf("materialize: encode yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("materialize: close yaml encoder: %w", err)
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
