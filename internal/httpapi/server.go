// Package httpapi serves the HTML editor surface and the model exports.
package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	theme "github.com/goliatone/go-theme"
	"pkt.systems/pslog"

	"github.com/goliatone/go-paramedit/pkg/editor"
	"github.com/goliatone/go-paramedit/pkg/materialize"
	"github.com/goliatone/go-paramedit/pkg/render"
	"github.com/goliatone/go-paramedit/pkg/renderers/vanilla"
	"github.com/goliatone/go-paramedit/pkg/schemaexport"
)

const (
	defaultSessionCookie = "paramedit_session"
	defaultSessionTTL    = 2 * time.Hour
	defaultShutdownGrace = 5 * time.Second
)

// Config holds the listener and session settings.
type Config struct {
	Addr              string
	BasePath          string
	SessionCookie     string
	SessionTTL        time.Duration
	ShutdownGrace     time.Duration
	DisableRequestLog bool
}

// Option customises the Server.
type Option func(*Server)

// WithRenderer replaces the HTML renderer.
func WithRenderer(renderer render.Renderer) Option {
	return func(s *Server) {
		if renderer != nil {
			s.renderer = renderer
		}
	}
}

// WithCatalog sets the translations and locale matcher.
func WithCatalog(catalog LocaleCatalog) Option {
	return func(s *Server) {
		s.catalog = catalog
	}
}

// WithDefaultLocale is used when the request names no language.
func WithDefaultLocale(locale string) Option {
	return func(s *Server) {
		if strings.TrimSpace(locale) != "" {
			s.defaultLocale = locale
		}
	}
}

// WithTheme applies resolved theme tokens to every page.
func WithTheme(cfg *theme.RendererConfig) Option {
	return func(s *Server) {
		s.theme = cfg
	}
}

// WithSessionFactory builds the editor session for each new browser session.
func WithSessionFactory(factory func() *editor.Session) Option {
	return func(s *Server) {
		if factory != nil {
			s.factory = factory
		}
	}
}

// WithSchemaOptions sets the title and version of /schema.json.
func WithSchemaOptions(opts schemaexport.Options) Option {
	return func(s *Server) {
		s.schema = opts
	}
}

// WithLogger binds logger to every request context.
func WithLogger(logger pslog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// Server hosts browser sessions, each owning one editor session.
type Server struct {
	cfg           Config
	base          string
	renderer      render.Renderer
	catalog       LocaleCatalog
	defaultLocale string
	theme         *theme.RendererConfig
	factory       func() *editor.Session
	schema        schemaexport.Options
	logger        pslog.Logger
	sessions      *sessionStore
}

// New builds a Server. Without WithRenderer the embedded vanilla renderer
// is used.
func New(cfg Config, options ...Option) (*Server, error) {
	cfg = withConfigDefaults(cfg)
	s := &Server{
		cfg:           cfg,
		base:          normalizeBase(cfg.BasePath),
		defaultLocale: "en",
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	if s.renderer == nil {
		renderer, err := vanilla.New()
		if err != nil {
			return nil, fmt.Errorf("httpapi: default renderer: %w", err)
		}
		s.renderer = renderer
	}
	s.sessions = newSessionStore(cfg.SessionTTL, s.factory)
	return s, nil
}

func withConfigDefaults(cfg Config) Config {
	if cfg.SessionCookie == "" {
		cfg.SessionCookie = defaultSessionCookie
	}
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = defaultSessionTTL
	}
	if cfg.ShutdownGrace <= 0 {
		cfg.ShutdownGrace = defaultShutdownGrace
	}
	return cfg
}

func normalizeBase(raw string) string {
	trimmed := strings.Trim(strings.TrimSpace(raw), "/")
	if trimmed == "" {
		return ""
	}
	return "/" + trimmed
}

// Handler returns the routed handler, mounted under the base path.
func (s *Server) Handler() http.Handler {
	routes := chi.NewRouter()
	routes.Use(middleware.Recoverer)
	if s.logger != nil {
		routes.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				next.ServeHTTP(w, r.WithContext(pslog.ContextWithLogger(r.Context(), s.logger)))
			})
		})
	}
	if !s.cfg.DisableRequestLog {
		routes.Use(withRequestLogging)
	}

	routes.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})
	routes.Handle("/assets/*", http.StripPrefix(s.base+"/assets", http.FileServer(http.FS(vanilla.AssetsFS()))))

	routes.Group(func(r chi.Router) {
		r.Use(s.withSession)
		r.Get("/", s.handleIndex)
		r.Get("/model.json", s.handleModel(materialize.FormatJSON))
		r.Get("/model.yaml", s.handleModel(materialize.FormatYAML))
		r.Get("/schema.json", s.handleSchema)

		r.Group(func(r chi.Router) {
			r.Use(s.requireCSRF)
			r.Post("/params", s.handleAdd)
			r.Post("/params/{id}/rename", s.handleRename)
			r.Post("/params/{id}/delete", s.handleDelete)
			r.Post("/values/{id}", s.handleSetValue)
			r.Post("/materialize", s.handleMaterialize)
		})
	})

	if s.base == "" {
		return routes
	}
	root := chi.NewRouter()
	root.Mount(s.base, routes)
	root.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, s.base+"/", http.StatusFound)
	})
	return root
}

// Run listens on the configured address until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("httpapi: listen %s: %w", s.cfg.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln and shuts down gracefully once ctx is
// done.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	logger := pslog.Ctx(ctx)
	server := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ErrorLog:          pslog.LogLoggerWithLevel(logger, pslog.ErrorLevel),
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Serve(ln)
	}()
	logger.Info("http server listening", "addr", ln.Addr().String(), "base", s.base)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownGrace)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("httpapi: shutdown: %w", err)
		}
		logger.Info("http server stopped")
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("httpapi: serve: %w", err)
	}
}

func (s *Server) actionURLs() render.ActionURLs {
	def := render.DefaultActionURLs()
	return render.ActionURLs{
		Add:         s.base + def.Add,
		Rename:      s.base + def.Rename,
		Delete:      s.base + def.Delete,
		SetValue:    s.base + def.SetValue,
		Materialize: s.base + def.Materialize,
		Assets:      s.base + def.Assets,
	}
}

func (s *Server) cookiePath() string {
	if s.base == "" {
		return "/"
	}
	return s.base
}
