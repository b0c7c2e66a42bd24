package main

import (
	"time"

	"github.com/spf13/cobra"
	"pkt.systems/pslog"

	"github.com/goliatone/go-paramedit/internal/httpapi"
	"github.com/goliatone/go-paramedit/internal/themes"
	"github.com/goliatone/go-paramedit/pkg/editor"
	"github.com/goliatone/go-paramedit/pkg/renderers/vanilla"
	"github.com/goliatone/go-paramedit/pkg/schemaexport"
)

func newServeCmd(flags *globalFlags) *cobra.Command {
	var addr string
	var variant string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTML editor",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			rt, err := loadRuntime(ctx, flags)
			if err != nil {
				return err
			}
			cfg := rt.cfg
			if addr != "" {
				cfg.HTTP.Addr = addr
			}
			if variant != "" {
				cfg.Theme.Variant = variant
			}
			base := cfg.HTTP.NormalizedBasePath()

			selector, err := themes.NewSelector(cfg.Theme.Name, cfg.Theme.Variant, themes.Manifest(cfg.Theme, base+"/assets"))
			if err != nil {
				return err
			}
			themeCfg, err := selector.Resolve(cfg.Theme.Name, cfg.Theme.Variant)
			if err != nil {
				return err
			}

			renderer, err := vanilla.New()
			if err != nil {
				return err
			}

			seedState := rt.seed
			srv, err := httpapi.New(httpapi.Config{
				Addr:              cfg.HTTP.Addr,
				BasePath:          base,
				SessionCookie:     cfg.HTTP.SessionCookie,
				SessionTTL:        time.Duration(cfg.HTTP.SessionTTLMinutes) * time.Minute,
				ShutdownGrace:     time.Duration(cfg.HTTP.ShutdownGraceSeconds) * time.Second,
				DisableRequestLog: cfg.Logging.DisableRequestLog,
			},
				httpapi.WithRenderer(renderer),
				httpapi.WithCatalog(rt.catalog),
				httpapi.WithDefaultLocale(rt.locale()),
				httpapi.WithTheme(themeCfg),
				httpapi.WithSchemaOptions(schemaexport.Options{Version: currentVersion()}),
				httpapi.WithSessionFactory(func() *editor.Session {
					return editor.NewSession(
						editor.WithStore(rt.newStore()),
						editor.WithInitialState(seedState),
					)
				}),
			)
			if err != nil {
				return err
			}

			pslog.Ctx(ctx).Info("starting editor",
				"addr", cfg.HTTP.Addr,
				"base", base,
				"id_policy", rt.policy.Name(),
				"theme", themeCfg.Theme,
				"variant", themeCfg.Variant,
				"locales", rt.catalog.Locales())
			return srv.Run(ctx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides http.addr)")
	cmd.Flags().StringVar(&variant, "variant", "", "theme variant (overrides theme.variant)")
	return cmd
}
