package gotemplate

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-paramedit/pkg/render/template"
)

const (
	setName   = "paramedit"
	extension = ".tmpl"
)

// Option configures the engine before construction.
type Option func(*Engine)

// WithFS loads templates from files. Names are resolved relative to its root
// and may omit the ".tmpl" extension.
func WithFS(files fs.FS) Option {
	return func(e *Engine) {
		e.files = files
	}
}

// Engine runs pongo2 templates loaded from an fs.FS. Data is flattened
// through JSON before execution, so templates address struct fields by their
// json names. Autoescape stays on.
type Engine struct {
	files fs.FS
	set   *pongo2.TemplateSet

	mu     sync.RWMutex
	parsed map[string]*pongo2.Template
}

var _ template.TemplateRenderer = (*Engine)(nil)

// New builds an Engine. WithFS is required.
func New(options ...Option) (*Engine, error) {
	e := &Engine{parsed: make(map[string]*pongo2.Template)}
	for _, opt := range options {
		if opt != nil {
			opt(e)
		}
	}
	if e.files == nil {
		return nil, errors.New("gotemplate: templates fs is required")
	}

	e.set = pongo2.NewSet(setName, pongo2.NewFSLoader(e.files))
	e.set.Globals = pongo2.Context{}
	registerFilters()
	return e, nil
}

// Render runs name as inline template content when it holds template tags
// and as a template path otherwise.
func (e *Engine) Render(name string, data any, out ...io.Writer) (string, error) {
	if strings.Contains(name, "{{") || strings.Contains(name, "{%") {
		return e.RenderString(name, data, out...)
	}
	return e.RenderTemplate(name, data, out...)
}

func (e *Engine) RenderTemplate(name string, data any, out ...io.Writer) (string, error) {
	if !strings.HasSuffix(name, extension) {
		name += extension
	}
	tmpl, err := e.lookup(name)
	if err != nil {
		return "", err
	}
	return e.run(tmpl, data, out, name)
}

// RenderString parses templateContent on every call.
func (e *Engine) RenderString(templateContent string, data any, out ...io.Writer) (string, error) {
	tmpl, err := e.set.FromString(templateContent)
	if err != nil {
		return "", fmt.Errorf("gotemplate: parse inline template: %w", err)
	}
	return e.run(tmpl, data, out, "inline")
}

// RegisterFilter adds fn as a pongo2 filter. Filters are process wide, so a
// name can only be registered once.
func (e *Engine) RegisterFilter(name string, fn func(input any, param any) (any, error)) error {
	name = strings.TrimSpace(name)
	if name == "" || fn == nil {
		return errors.New("gotemplate: filter needs a name and a function")
	}
	if pongo2.FilterExists(name) {
		return fmt.Errorf("gotemplate: filter %q already registered", name)
	}
	return pongo2.RegisterFilter(name, func(in, param *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
		var arg any
		if param != nil {
			arg = param.Interface()
		}
		result, err := fn(in.Interface(), arg)
		if err != nil {
			return nil, &pongo2.Error{Sender: "filter:" + name, OrigError: err}
		}
		return pongo2.AsValue(result), nil
	})
}

// GlobalContext merges data into the values every template sees.
func (e *Engine) GlobalContext(data any) error {
	if data == nil {
		return nil
	}
	ctx, err := toContext(data)
	if err != nil {
		return fmt.Errorf("gotemplate: global context: %w", err)
	}

	e.mu.Lock()
	e.set.Globals.Update(ctx)
	e.mu.Unlock()
	return nil
}

func (e *Engine) lookup(name string) (*pongo2.Template, error) {
	e.mu.RLock()
	tmpl, ok := e.parsed[name]
	e.mu.RUnlock()
	if ok {
		return tmpl, nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if tmpl, ok := e.parsed[name]; ok {
		return tmpl, nil
	}
	tmpl, err := e.set.FromFile(name)
	if err != nil {
		return nil, fmt.Errorf("gotemplate: load %q: %w", name, err)
	}
	e.parsed[name] = tmpl
	return tmpl, nil
}

func (e *Engine) run(tmpl *pongo2.Template, data any, out []io.Writer, label string) (string, error) {
	ctx, err := toContext(data)
	if err != nil {
		return "", fmt.Errorf("gotemplate: %s: %w", label, err)
	}

	var buf bytes.Buffer
	e.mu.RLock()
	err = tmpl.ExecuteWriter(ctx, &buf)
	e.mu.RUnlock()
	if err != nil {
		return "", fmt.Errorf("gotemplate: execute %s: %w", label, err)
	}

	rendered := buf.String()
	for _, w := range out {
		if w == nil {
			continue
		}
		if _, err := io.WriteString(w, rendered); err != nil {
			return "", fmt.Errorf("gotemplate: write %s: %w", label, err)
		}
	}
	return rendered, nil
}

// toContext turns view structs into nested maps. Ids and other numbers come
// back as float64.
func toContext(data any) (pongo2.Context, error) {
	if data == nil {
		return pongo2.Context{}, nil
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("encode data: %w", err)
	}
	var ctx pongo2.Context
	if err := json.Unmarshal(raw, &ctx); err != nil {
		return nil, fmt.Errorf("data must encode to a JSON object: %w", err)
	}
	if ctx == nil {
		ctx = pongo2.Context{}
	}
	return ctx, nil
}

func registerFilters() {
	if !pongo2.FilterExists("trim") {
		_ = pongo2.RegisterFilter("trim", func(in, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
			return pongo2.AsValue(strings.TrimSpace(in.String())), nil
		})
	}
	if !pongo2.FilterExists("withid") {
		_ = pongo2.RegisterFilter("withid", withID)
	}
}

// withID fills the "{id}" slot of an action URL: {{ actions.rename|withid:param.id }}.
func withID(in, param *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	pattern := in.String()
	if param == nil || param.IsNil() {
		return pongo2.AsValue(pattern), nil
	}
	id := param.String()
	if param.IsFloat() {
		id = fmt.Sprint(param.Integer())
	}
	return pongo2.AsValue(strings.ReplaceAll(pattern, "{id}", id)), nil
}
