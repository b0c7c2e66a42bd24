package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-paramedit/internal/themes"
	"github.com/goliatone/go-paramedit/pkg/orchestrator"
	"github.com/goliatone/go-paramedit/pkg/render"
	"github.com/goliatone/go-paramedit/pkg/renderers/vanilla"
)

// newRenderCmd writes the editor page for the seed as static HTML, with
// the stylesheet inlined so the file opens on its own.
func newRenderCmd(flags *globalFlags) *cobra.Command {
	var output string
	var locale string
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the editor page for the seed as static HTML",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			rt, err := loadRuntime(ctx, flags)
			if err != nil {
				return err
			}
			cfg := rt.cfg
			selector, err := themes.NewSelector(cfg.Theme.Name, cfg.Theme.Variant, themes.Manifest(cfg.Theme, ""))
			if err != nil {
				return err
			}
			themeCfg, err := selector.Resolve(cfg.Theme.Name, cfg.Theme.Variant)
			if err != nil {
				return err
			}

			renderer, err := vanilla.New(vanilla.WithDefaultStyles())
			if err != nil {
				return err
			}
			registry := render.NewRegistry()
			registry.MustRegister(renderer)

			lang := rt.locale()
			if locale != "" {
				lang = rt.catalog.Match(locale)
			}
			seedState := rt.seed
			html, err := orchestrator.New(orchestrator.WithRegistry(registry)).Generate(ctx, orchestrator.Request{
				State: &seedState,
				RenderOptions: render.RenderOptions{
					Locale:     lang,
					Translator: rt.catalog,
					Theme:      themeCfg,
				},
			})
			if err != nil {
				return err
			}

			if output == "" {
				_, err = cmd.OutOrStdout().Write(html)
				return err
			}
			if err := os.WriteFile(output, html, 0o644); err != nil {
				return fmt.Errorf("paramedit: write %s: %w", output, err)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Editor page written to %s\n", output)
			return err
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().StringVar(&locale, "lang", "", "page language (overrides editor.locale)")
	return cmd
}
