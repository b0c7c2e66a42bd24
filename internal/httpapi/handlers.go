package httpapi

import (
	"context"
	"crypto/subtle"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/goliatone/go-paramedit/internal/logx"
	"github.com/goliatone/go-paramedit/pkg/editor"
	"github.com/goliatone/go-paramedit/pkg/materialize"
	"github.com/goliatone/go-paramedit/pkg/model"
	"github.com/goliatone/go-paramedit/pkg/render"
	"github.com/goliatone/go-paramedit/pkg/schemaexport"
)

const tracerName = "github.com/goliatone/go-paramedit/internal/httpapi"

type sessionContextKey struct{}

func sessionFromContext(ctx context.Context) *browserSession {
	sess, _ := ctx.Value(sessionContextKey{}).(*browserSession)
	return sess
}

// withSession resolves the browser session from its cookie, creating one
// when missing or expired.
func (s *Server) withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		var token string
		if cookie, err := r.Cookie(s.cfg.SessionCookie); err == nil {
			token = cookie.Value
		}
		sess, ok := s.sessions.get(ctx, token)
		if !ok {
			token, sess = s.sessions.create(ctx)
			http.SetCookie(w, &http.Cookie{
				Name:     s.cfg.SessionCookie,
				Value:    token,
				Path:     s.cookiePath(),
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}
		ctx = logx.ContextWithSessionLogger(ctx, logx.WithSession(ctx, sess.id), sess.id)
		ctx = context.WithValue(ctx, sessionContextKey{}, sess)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *Server) requireCSRF(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := sessionFromContext(r.Context())
		posted := r.PostFormValue(render.CSRFFieldName)
		if sess == nil || posted == "" || subtle.ConstantTimeCompare([]byte(posted), []byte(sess.csrf)) != 1 {
			logx.Ctx(r.Context()).Warn("csrf token rejected", "path", r.URL.Path)
			http.Error(w, "invalid form token", http.StatusForbidden)
			return
		}
		if rev := r.PostFormValue(render.RevisionFieldName); rev != "" {
			current := sess.editor.Revision()
			if parsed, err := strconv.ParseUint(rev, 10, 64); err == nil && parsed != current {
				logx.Ctx(r.Context()).Debug("form posted from older page", "form_revision", parsed, "revision", current)
			}
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess := sessionFromContext(ctx)

	locale, persist := resolveLocale(r, s.catalog, s.defaultLocale)
	if persist {
		setLanguageCookie(w, s.cookiePath(), locale)
	}

	opts := render.RenderOptions{
		Locale:       locale,
		Theme:        s.theme,
		Materialized: sess.materializedDump(),
		Actions:      s.actionURLs(),
		Revision:     sess.editor.Revision(),
	}
	if s.catalog != nil {
		opts.Translator = s.catalog
	}
	opts.Hidden = []render.HiddenField{
		render.CSRFToken(sess.csrf),
		render.RevisionField(opts.Revision),
	}

	body, err := s.renderer.Render(ctx, sess.editor.Snapshot(), opts)
	if err != nil {
		logx.Ctx(ctx).With("err", err).Error("render editor failed", "renderer", s.renderer.Name())
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", s.renderer.ContentType())
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(body)
}

func (s *Server) handleAdd(w http.ResponseWriter, r *http.Request) {
	typ := model.ParamType(strings.TrimSpace(r.PostFormValue("type")))
	if !typ.Known() {
		typ = model.DefaultParamType()
	}
	s.dispatch(r.Context(), editor.AddParam{Name: r.PostFormValue("name"), Type: typ})
	s.redirectHome(w, r)
}

func (s *Server) handleRename(w http.ResponseWriter, r *http.Request) {
	if id, ok := pathID(r); ok {
		s.dispatch(r.Context(), editor.RenameParam{ID: id, Name: r.PostFormValue("name")})
	}
	s.redirectHome(w, r)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	if id, ok := pathID(r); ok {
		s.dispatch(r.Context(), editor.DeleteParam{ID: id})
	}
	s.redirectHome(w, r)
}

// handleSetValue derives the control kind from the registry; the posted
// kind is informational only.
func (s *Server) handleSetValue(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := pathID(r)
	if !ok {
		s.redirectHome(w, r)
		return
	}
	sess := sessionFromContext(ctx)
	param, found := model.Find(sess.editor.Snapshot().Registry, id)
	if !found {
		s.redirectHome(w, r)
		return
	}
	kind := param.Type.ControlKind()
	if posted := r.PostFormValue("kind"); posted != "" && posted != string(kind) {
		logx.Ctx(ctx).Debug("posted control kind ignored", "posted", posted, "kind", string(kind))
	}
	value := editor.ControlValue(kind, r.PostFormValue("value"), r.PostFormValue("checked") == "true")
	s.dispatch(ctx, editor.SetValue{ID: id, Value: value})
	s.redirectHome(w, r)
}

func (s *Server) handleMaterialize(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess := sessionFromContext(ctx)
	dump, err := sess.editor.Materialize(materialize.FormatJSON)
	if err != nil {
		logx.Ctx(ctx).With("err", err).Error("materialize failed")
		http.Error(w, "materialize failed", http.StatusInternalServerError)
		return
	}
	sess.setMaterialized(dump)
	logx.Ctx(ctx).Info("model materialized", "bytes", len(dump), "revision", sess.editor.Revision())
	s.redirectHome(w, r)
}

func (s *Server) handleModel(format materialize.Format) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		sess := sessionFromContext(ctx)
		data, err := materialize.Model(sess.editor.Snapshot().Model, format)
		if err != nil {
			logx.Ctx(ctx).With("err", err).Error("materialize failed", "format", string(format))
			http.Error(w, "materialize failed", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", format.ContentType())
		_, _ = w.Write(data)
	}
}

func (s *Server) handleSchema(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess := sessionFromContext(ctx)
	data, err := schemaexport.JSON(ctx, sess.editor.Snapshot().Registry, s.schema)
	if err != nil {
		logx.Ctx(ctx).With("err", err).Error("schema export failed")
		http.Error(w, "schema export failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	_, _ = w.Write(data)
}

// dispatch applies action to the caller's editor session inside a span.
func (s *Server) dispatch(ctx context.Context, action editor.Action) {
	sess := sessionFromContext(ctx)
	ctx, span := otel.Tracer(tracerName).Start(ctx, "editor.dispatch")
	defer span.End()

	_, changed := sess.editor.Dispatch(action)
	revision := sess.editor.Revision()
	span.SetAttributes(
		attribute.String("paramedit.action", action.Kind()),
		attribute.Bool("paramedit.changed", changed),
		attribute.Int64("paramedit.revision", int64(revision)),
	)
	span.SetStatus(codes.Ok, "")

	log := logx.WithAction(logx.Ctx(ctx), action.Kind(), revision)
	if changed {
		log.Info("action applied")
		return
	}
	log.Debug("action left state unchanged")
}

func (s *Server) redirectHome(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, s.base+"/", http.StatusSeeOther)
}

// pathID parses {id}. Malformed ids report false and are treated like
// unknown ids.
func pathID(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		return 0, false
	}
	return id, true
}
