package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/goliatone/go-paramedit/pkg/editor"
	"github.com/goliatone/go-paramedit/pkg/materialize"
	"github.com/goliatone/go-paramedit/pkg/model"
	"github.com/goliatone/go-paramedit/pkg/render"
	"github.com/goliatone/go-paramedit/pkg/state"
)

// Renderer implements render.Renderer as an interactive terminal session.
// Render runs the editor loop until the user picks "done" and returns the
// final model.
type Renderer struct {
	driver    PromptDriver
	out       io.Writer
	format    materialize.Format
	store     *state.Store
	listeners []editor.Listener
	theme     Theme
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs a TUI renderer with defaults (survey driver, JSON output).
func New(options ...Option) (*Renderer, error) {
	r := &Renderer{format: materialize.FormatJSON}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	if r.driver == nil {
		r.driver = newSurveyDriver(r.out)
	}
	if r.store == nil {
		r.store = state.NewStore()
	}
	return r, nil
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "tui"
}

// ContentType reports the serialization format used by Render.
func (r *Renderer) ContentType() string {
	return r.format.ContentType()
}

type menuAction int

const (
	menuAdd menuAction = iota
	menuRename
	menuDelete
	menuSet
	menuMaterialize
	menuDone
)

// Render drives an editor session seeded with st.
func (r *Renderer) Render(ctx context.Context, st state.State, opts render.RenderOptions) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	if r.driver == nil {
		return nil, errors.New("tui: prompt driver is nil")
	}

	sessionOpts := []editor.Option{
		editor.WithStore(r.store),
		editor.WithInitialState(st),
	}
	for _, fn := range r.listeners {
		sessionOpts = append(sessionOpts, editor.WithListener(fn))
	}
	session := editor.NewSession(sessionOpts...)

	menu := []string{
		opts.Text(render.KeyTUIActionAdd),
		opts.Text(render.KeyTUIActionRename),
		opts.Text(render.KeyTUIActionDelete),
		opts.Text(render.KeyTUIActionSet),
		opts.Text(render.KeyTUIActionMaterialize),
		opts.Text(render.KeyTUIDone),
	}

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		choice, err := r.driver.Select(ctx, SelectConfig{
			Message:      opts.Text(render.KeyTUIMenu),
			Options:      menu,
			DefaultIndex: int(menuDone),
		})
		if err != nil {
			return nil, err
		}
		if menuAction(choice) == menuDone {
			break
		}
		if err := r.step(ctx, session, menuAction(choice), opts); err != nil {
			return nil, err
		}
	}

	out, err := materialize.Model(session.Snapshot().Model, r.format)
	if err != nil {
		return nil, fmt.Errorf("tui: materialize: %w", err)
	}
	return out, nil
}

func (r *Renderer) step(ctx context.Context, session *editor.Session, action menuAction, opts render.RenderOptions) error {
	switch action {
	case menuAdd:
		return r.add(ctx, session, opts)
	case menuRename:
		param, ok, err := r.pickParam(ctx, session.Snapshot(), opts)
		if err != nil || !ok {
			return err
		}
		name, err := r.driver.Input(ctx, InputConfig{
			Message: opts.Text(render.KeyParamName),
			Default: param.Name,
		})
		if err != nil {
			return err
		}
		session.Dispatch(editor.RenameParam{ID: param.ID, Name: name})
	case menuDelete:
		param, ok, err := r.pickParam(ctx, session.Snapshot(), opts)
		if err != nil || !ok {
			return err
		}
		confirmed, err := r.driver.Confirm(ctx, ConfirmConfig{
			Message: opts.Text(render.KeyTUIConfirmDelete),
		})
		if err != nil {
			return err
		}
		if confirmed {
			session.Dispatch(editor.DeleteParam{ID: param.ID})
		}
	case menuSet:
		return r.setValue(ctx, session, opts)
	case menuMaterialize:
		dump, err := session.Materialize(materialize.FormatJSON)
		if err != nil {
			return fmt.Errorf("tui: materialize: %w", err)
		}
		return r.info(ctx, dump)
	default:
		return fmt.Errorf("tui: unknown menu choice %d", action)
	}
	return nil
}

func (r *Renderer) add(ctx context.Context, session *editor.Session, opts render.RenderOptions) error {
	name, err := r.driver.Input(ctx, InputConfig{Message: opts.Text(render.KeyParamName)})
	if err != nil {
		return err
	}
	types := model.ParamTypes()
	labels := make([]string, 0, len(types))
	for _, typ := range types {
		labels = append(labels, opts.Text(render.TypeKey(string(typ))))
	}
	idx, err := r.driver.Select(ctx, SelectConfig{
		Message: opts.Text(render.KeyParamType),
		Options: labels,
	})
	if err != nil {
		return err
	}
	typ := model.DefaultParamType()
	if idx >= 0 && idx < len(types) {
		typ = types[idx]
	}
	session.Dispatch(editor.AddParam{Name: name, Type: typ})
	return nil
}

func (r *Renderer) setValue(ctx context.Context, session *editor.Session, opts render.RenderOptions) error {
	snapshot := session.Snapshot()
	param, ok, err := r.pickParam(ctx, snapshot, opts)
	if err != nil || !ok {
		return err
	}
	current, _ := snapshot.Model.Lookup(param.ID)

	var value string
	if param.Type.ControlKind() == model.ControlCheckbox {
		checked, err := r.driver.Confirm(ctx, ConfirmConfig{
			Message: param.Name,
			Default: current == "true",
		})
		if err != nil {
			return err
		}
		value = editor.ControlValue(model.ControlCheckbox, "", checked)
	} else {
		value, err = r.driver.Input(ctx, InputConfig{
			Message: param.Name,
			Default: current,
			Help:    opts.Text(render.KeyTUIValue),
		})
		if err != nil {
			return err
		}
	}
	session.Dispatch(editor.SetValue{ID: param.ID, Value: value})
	return nil
}

// pickParam reports ok=false when there is nothing to pick.
func (r *Renderer) pickParam(ctx context.Context, st state.State, opts render.RenderOptions) (model.Parameter, bool, error) {
	if len(st.Registry) == 0 {
		return model.Parameter{}, false, r.info(ctx, opts.Text(render.KeyParamsEmpty))
	}
	options := make([]string, 0, len(st.Registry))
	for _, param := range st.Registry {
		options = append(options, ParamLabel(param))
	}
	idx, err := r.driver.Select(ctx, SelectConfig{
		Message: opts.Text(render.KeyTUIPickParam),
		Options: options,
	})
	if err != nil {
		return model.Parameter{}, false, err
	}
	if idx < 0 || idx >= len(st.Registry) {
		return model.Parameter{}, false, nil
	}
	return st.Registry[idx], true, nil
}

func (r *Renderer) info(ctx context.Context, msg string) error {
	if prefix := r.theme.InfoPrefix; prefix != "" {
		msg = prefix + msg
	}
	return r.driver.Info(ctx, msg)
}

// ParamLabel formats a parameter for selection lists as "#id name".
func ParamLabel(param model.Parameter) string {
	return strings.TrimSpace("#" + strconv.Itoa(param.ID) + " " + param.Name)
}
