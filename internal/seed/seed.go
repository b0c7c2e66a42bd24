// Package seed loads the initial editor state from YAML, JSON or HCL files.
package seed

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-paramedit/pkg/model"
	"github.com/goliatone/go-paramedit/pkg/state"
)

//go:embed example.yaml
var exampleSeed []byte

// ErrUnknownFormat is returned for files whose extension is not recognised.
var ErrUnknownFormat = errors.New("seed: unknown file format")

// Format names an on-disk seed encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatHCL  Format = "hcl"
)

type document struct {
	Parameters []model.Parameter `yaml:"parameters"`
	Model      model.Model       `yaml:"model"`
}

type hclFile struct {
	Parameters []hclParameter `hcl:"parameter,block"`
}

type hclParameter struct {
	Name  string  `hcl:"name,label"`
	ID    int     `hcl:"id"`
	Type  string  `hcl:"type,optional"`
	Value *string `hcl:"value,optional"`
}

// Default returns the embedded example seed.
func Default() (state.State, error) {
	return Parse(exampleSeed, FormatYAML, "example.yaml")
}

// Load reads path, choosing the decoder from its extension. An empty path
// returns Default.
func Load(path string) (state.State, error) {
	if strings.TrimSpace(path) == "" {
		return Default()
	}
	format, err := FormatFor(path)
	if err != nil {
		return state.State{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return state.State{}, fmt.Errorf("seed: read %s: %w", path, err)
	}
	return Parse(data, format, path)
}

// FormatFor maps a file extension onto a decoder. JSON is decoded as YAML.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".json":
		return FormatYAML, nil
	case ".hcl":
		return FormatHCL, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}
}

// Parse decodes data. filename is only used in error messages.
func Parse(data []byte, format Format, filename string) (state.State, error) {
	var (
		doc document
		err error
	)
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, &doc)
		if err != nil {
			err = fmt.Errorf("seed: decode %s: %w", filename, err)
		}
	case FormatHCL:
		doc, err = parseHCL(data, filename)
	default:
		err = fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}
	if err != nil {
		return state.State{}, err
	}
	if err := validate(doc, filename); err != nil {
		return state.State{}, err
	}
	return state.New(doc.Parameters, doc.Model), nil
}

func parseHCL(data []byte, filename string) (document, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(data, filename)
	if diags.HasErrors() {
		return document{}, fmt.Errorf("seed: parse %s: %w", filename, diags)
	}

	var parsed hclFile
	diags = gohcl.DecodeBody(file.Body, nil, &parsed)
	if diags.HasErrors() {
		return document{}, fmt.Errorf("seed: decode %s: %w", filename, diags)
	}

	var doc document
	for _, block := range parsed.Parameters {
		doc.Parameters = append(doc.Parameters, model.Parameter{
			ID:   block.ID,
			Name: block.Name,
			Type: model.ParamType(strings.TrimSpace(block.Type)),
		})
		if block.Value != nil {
			doc.Model.ParamValues = append(doc.Model.ParamValues, model.ModelEntry{
				ParamID: block.ID,
				Value:   *block.Value,
			})
		}
	}
	return doc, nil
}

// validate fills blank types and rejects unknown ones. Duplicate ids and
// registry/model drift are accepted and reported by state.Drift.
func validate(doc document, filename string) error {
	for i := range doc.Parameters {
		param := &doc.Parameters[i]
		if param.Type == "" {
			param.Type = model.DefaultParamType()
			continue
		}
		if !param.Type.Known() {
			return fmt.Errorf("seed: %s: parameter %d: unknown type %q", filename, param.ID, param.Type)
		}
	}
	return nil
}
