// Package schemaexport describes the parameter registry as an OpenAPI 3
// component schema so the edited model can be consumed by other tooling.
package schemaexport

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-paramedit/pkg/model"
)

const (
	// SchemaName is the component key of the exported model schema.
	SchemaName = "Model"
	// ParamIDExtension carries the parameter id on every property.
	ParamIDExtension = "x-param-id"
	// ParamTypeExtension carries the declared parameter type verbatim.
	ParamTypeExtension = "x-param-type"

	openAPIVersion = "3.0.3"
)

// Options configures the exported document.
type Options struct {
	Title   string
	Version string
}

// PropertyKey returns the property name used for param. Blank or repeated
// names fall back to param_<id>.
func PropertyKey(param model.Parameter, seen map[string]struct{}) string {
	key := strings.TrimSpace(param.Name)
	if key == "" {
		key = "param_" + strconv.Itoa(param.ID)
	}
	if _, dup := seen[key]; dup {
		key = "param_" + strconv.Itoa(param.ID)
	}
	for {
		if _, dup := seen[key]; !dup {
			break
		}
		key += "_"
	}
	seen[key] = struct{}{}
	return key
}

// Schema builds the object schema for registry. Properties keep registry
// order in the returned key list; the schema map itself is unordered.
func Schema(registry []model.Parameter) (*openapi3.Schema, []string) {
	schema := openapi3.NewObjectSchema()
	schema.Description = "Values edited through the parameter form. Every value is transported as a string."

	seen := make(map[string]struct{}, len(registry))
	keys := make([]string, 0, len(registry))
	for _, param := range registry {
		key := PropertyKey(param, seen)
		keys = append(keys, key)
		schema.WithProperty(key, propertySchema(param))
	}
	return schema, keys
}

func propertySchema(param model.Parameter) *openapi3.Schema {
	var prop *openapi3.Schema
	switch param.Type {
	case model.ParamTypeNumber:
		prop = openapi3.NewFloat64Schema()
	case model.ParamTypeBoolean:
		prop = openapi3.NewBoolSchema()
	case model.ParamTypeEmail:
		prop = openapi3.NewStringSchema().WithFormat("email")
	case model.ParamTypeTel:
		prop = openapi3.NewStringSchema().WithFormat("tel")
	default:
		prop = openapi3.NewStringSchema()
	}
	prop.Title = param.Name
	prop.Extensions = map[string]any{
		ParamIDExtension:   param.ID,
		ParamTypeExtension: string(param.Type),
	}
	return prop
}

// Document wraps Schema in a minimal OpenAPI document and validates it.
func Document(ctx context.Context, registry []model.Parameter, opts Options) (*openapi3.T, error) {
	title := strings.TrimSpace(opts.Title)
	if title == "" {
		title = "paramedit model"
	}
	version := strings.TrimSpace(opts.Version)
	if version == "" {
		version = "0.0.0"
	}

	schema, _ := Schema(registry)
	doc := &openapi3.T{
		OpenAPI: openAPIVersion,
		Info: &openapi3.Info{
			Title:   title,
			Version: version,
		},
		Paths: openapi3.NewPaths(),
		Components: &openapi3.Components{
			Schemas: openapi3.Schemas{
				SchemaName: openapi3.NewSchemaRef("", schema),
			},
		},
	}

	if err := doc.Validate(ctx, openapi3.DisableSchemaFormatValidation()); err != nil {
		return nil, fmt.Errorf("schemaexport: validate document: %w", err)
	}
	return doc, nil
}

// JSON renders Document as indented JSON.
func JSON(ctx context.Context, registry []model.Parameter, opts Options) ([]byte, error) {
	doc, err := Document(ctx, registry, opts)
	if err != nil {
		return nil, err
	}
	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("schemaexport: encode document: %w", err)
	}
	return out, nil
}
