package vanilla

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strconv"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-paramedit/pkg/model"
	"github.com/goliatone/go-paramedit/pkg/render"
	rendertemplate "github.com/goliatone/go-paramedit/pkg/render/template"
	"github.com/goliatone/go-paramedit/pkg/render/template/gotemplate"
	"github.com/goliatone/go-paramedit/pkg/state"
)

const editorTemplate = "templates/editor.tmpl"

// Option configures the renderer.
type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	stylesheet       string
	inlineStyles     bool
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS. The bundle
// must contain templates/editor.tmpl.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithStylesheet links an explicit stylesheet URL instead of the bundled one.
func WithStylesheet(url string) Option {
	return func(cfg *config) {
		cfg.stylesheet = strings.TrimSpace(url)
	}
}

// WithDefaultStyles inlines the bundled stylesheet into the page.
func WithDefaultStyles() Option {
	return func(cfg *config) {
		cfg.inlineStyles = true
	}
}

// Renderer produces the HTML editor page.
type Renderer struct {
	templates    rendertemplate.TemplateRenderer
	stylesheet   string
	inlineStyles string
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the vanilla renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(gotemplate.WithFS(cfg.templateFS))
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	r := &Renderer{templates: renderer, stylesheet: cfg.stylesheet}
	if cfg.inlineStyles {
		r.inlineStyles = defaultStylesheet()
	}
	return r, nil
}

func (r *Renderer) Name() string {
	return "vanilla"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render draws the parameter list, the add row, the value list and the last
// materialized dump for st.
func (r *Renderer) Render(_ context.Context, st state.State, opts render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("vanilla renderer: template renderer is nil")
	}

	result, err := r.templates.RenderTemplate(editorTemplate, r.buildView(st, opts))
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render template: %w", err)
	}
	return []byte(result), nil
}

type pageView struct {
	Page         pageMeta     `json:"page"`
	Labels       labelView    `json:"labels"`
	Actions      actionView   `json:"actions"`
	Hidden       []hiddenView `json:"hidden"`
	Params       []paramRow   `json:"params"`
	AddTypes     []typeOption `json:"addTypes"`
	Values       []valueRow   `json:"values"`
	Drift        []string     `json:"drift"`
	Materialized string       `json:"materialized"`
}

type pageMeta struct {
	Lang         string `json:"lang"`
	Title        string `json:"title"`
	Stylesheet   string `json:"stylesheet"`
	InlineStyles string `json:"inlineStyles"`
	Theme        string `json:"theme"`
	Variant      string `json:"variant"`
	Style        string `json:"style"`
	Revision     string `json:"revision"`
}

type labelView struct {
	ParamsHeading    string `json:"paramsHeading"`
	Name             string `json:"name"`
	Type             string `json:"type"`
	Add              string `json:"add"`
	Rename           string `json:"rename"`
	Delete           string `json:"delete"`
	NewName          string `json:"newName"`
	ParamsEmpty      string `json:"paramsEmpty"`
	ValuesHeading    string `json:"valuesHeading"`
	ValuesEmpty      string `json:"valuesEmpty"`
	Save             string `json:"save"`
	Materialize      string `json:"materialize"`
	MaterializeEmpty string `json:"materializeEmpty"`
}

type actionView struct {
	Add         string `json:"add"`
	Rename      string `json:"rename"`
	Delete      string `json:"delete"`
	SetValue    string `json:"setValue"`
	Materialize string `json:"materialize"`
}

type hiddenView struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Ids travel as strings; numbers would round-trip through float64.
type paramRow struct {
	ID    string       `json:"id"`
	Name  string       `json:"name"`
	Types []typeOption `json:"types"`
}

type typeOption struct {
	Value    string `json:"value"`
	Label    string `json:"label"`
	Selected bool   `json:"selected"`
}

// ControlID follows row position; parameter ids may collide.
type valueRow struct {
	ID        string `json:"id"`
	ControlID string `json:"controlId"`
	Label     string `json:"label"`
	Kind      string `json:"kind"`
	Value     string `json:"value"`
	Checked   bool   `json:"checked"`
}

func (r *Renderer) buildView(st state.State, opts render.RenderOptions) pageView {
	actions := opts.Actions.WithDefaults()

	view := pageView{
		Page: pageMeta{
			Lang:         langOrDefault(opts.Locale),
			Title:        opts.Text(render.KeyTitle),
			Stylesheet:   r.stylesheetURL(actions, opts.Theme),
			InlineStyles: r.inlineStyles,
			Revision:     strconv.FormatUint(opts.Revision, 10),
		},
		Labels: labelView{
			ParamsHeading:    opts.Text(render.KeyParamsHeading),
			Name:             opts.Text(render.KeyParamName),
			Type:             opts.Text(render.KeyParamType),
			Add:              opts.Text(render.KeyParamAdd),
			Rename:           opts.Text(render.KeyParamRename),
			Delete:           opts.Text(render.KeyParamDelete),
			NewName:          opts.Text(render.KeyParamNewName),
			ParamsEmpty:      sanitizeHelpText(opts.Text(render.KeyParamsEmpty)),
			ValuesHeading:    opts.Text(render.KeyValuesHeading),
			ValuesEmpty:      sanitizeHelpText(opts.Text(render.KeyValuesEmpty)),
			Save:             opts.Text(render.KeyValueSave),
			Materialize:      opts.Text(render.KeyMaterialize),
			MaterializeEmpty: sanitizeHelpText(opts.Text(render.KeyMaterializeEmpty)),
		},
		Actions: actionView{
			Add:         actions.Add,
			Rename:      actions.Rename,
			Delete:      actions.Delete,
			SetValue:    actions.SetValue,
			Materialize: actions.Materialize,
		},
		Hidden:       []hiddenView{},
		Params:       []paramRow{},
		Values:       []valueRow{},
		AddTypes:     typeOptions(opts, model.DefaultParamType()),
		Materialized: opts.Materialized,
	}
	applyTheme(&view.Page, opts.Theme)

	for _, field := range render.SortedHiddenFields(opts.Hidden) {
		view.Hidden = append(view.Hidden, hiddenView{Name: field.Name, Value: field.Value})
	}

	for i, param := range st.Registry {
		id := strconv.Itoa(param.ID)
		view.Params = append(view.Params, paramRow{
			ID:    id,
			Name:  param.Name,
			Types: typeOptions(opts, param.Type),
		})

		value, _ := st.Model.Lookup(param.ID)
		kind := param.Type.ControlKind()
		row := valueRow{
			ID:        id,
			ControlID: "value-" + strconv.Itoa(i+1),
			Label:     param.Name,
			Kind:      string(kind),
			Value:     value,
		}
		if kind == model.ControlCheckbox {
			row.Checked = value == "true"
		}
		view.Values = append(view.Values, row)
	}

	report := state.Drift(st)
	if n := len(report.Missing); n > 0 {
		view.Drift = append(view.Drift, opts.Text(render.KeyDriftMissing, n))
	}
	if n := len(report.Orphaned); n > 0 {
		view.Drift = append(view.Drift, opts.Text(render.KeyDriftOrphaned, n))
	}
	if n := len(report.DuplicateIDs); n > 0 {
		view.Drift = append(view.Drift, opts.Text(render.KeyDriftDuplicate, n))
	}
	return view
}

func typeOptions(opts render.RenderOptions, selected model.ParamType) []typeOption {
	types := model.ParamTypes()
	out := make([]typeOption, 0, len(types))
	for _, typ := range types {
		out = append(out, typeOption{
			Value:    string(typ),
			Label:    opts.Text(render.TypeKey(string(typ))),
			Selected: typ == selected,
		})
	}
	return out
}

func (r *Renderer) stylesheetURL(actions render.ActionURLs, cfg *theme.RendererConfig) string {
	if r.stylesheet != "" {
		return r.stylesheet
	}
	if r.inlineStyles != "" {
		return ""
	}
	if cfg != nil && cfg.AssetURL != nil {
		if url := cfg.AssetURL(StylesheetName); url != "" {
			return url
		}
	}
	return strings.TrimRight(actions.Assets, "/") + "/" + StylesheetName
}

func applyTheme(page *pageMeta, cfg *theme.RendererConfig) {
	if cfg == nil {
		return
	}
	page.Theme = cfg.Theme
	page.Variant = cfg.Variant
	if len(cfg.CSSVars) == 0 {
		return
	}
	names := make([]string, 0, len(cfg.CSSVars))
	for name := range cfg.CSSVars {
		names = append(names, name)
	}
	sort.Strings(names)

	decls := make([]string, 0, len(names))
	for _, name := range names {
		decls = append(decls, name+": "+cfg.CSSVars[name])
	}
	page.Style = strings.Join(decls, "; ")
}

func langOrDefault(locale string) string {
	if trimmed := strings.TrimSpace(locale); trimmed != "" {
		return trimmed
	}
	return "en"
}
