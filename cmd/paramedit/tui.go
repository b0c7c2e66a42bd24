package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-paramedit/internal/logx"
	"github.com/goliatone/go-paramedit/pkg/editor"
	"github.com/goliatone/go-paramedit/pkg/materialize"
	"github.com/goliatone/go-paramedit/pkg/orchestrator"
	"github.com/goliatone/go-paramedit/pkg/render"
	"github.com/goliatone/go-paramedit/pkg/renderers/tui"
	"github.com/goliatone/go-paramedit/pkg/state"
)

func newTUICmd(flags *globalFlags) *cobra.Command {
	var format string
	var locale string
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Edit interactively in the terminal and print the final model",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			rt, err := loadRuntime(ctx, flags)
			if err != nil {
				return err
			}
			if format == "" {
				format = rt.cfg.Editor.Format
			}
			outFormat, err := materialize.ParseFormat(format)
			if err != nil {
				return err
			}

			log := logx.Ctx(ctx)
			renderer, err := tui.New(
				tui.WithOutput(cmd.OutOrStdout()),
				tui.WithOutputFormat(outFormat),
				tui.WithStore(rt.newStore()),
				tui.WithListener(func(action editor.Action, _, _ state.State, revision uint64) {
					logx.WithAction(log, action.Kind(), revision).Debug("action applied")
				}),
			)
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
			output, err := orchestrator.New(orchestrator.WithRegistry(registry)).Generate(ctx, orchestrator.Request{
				State:    &seedState,
				Renderer: renderer.Name(),
				RenderOptions: render.RenderOptions{
					Locale:     lang,
					Translator: rt.catalog,
				},
			})
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(output))
			return err
		},
	}
	cmd.Flags().StringVar(&format, "format", "", "final model format: json or yaml")
	cmd.Flags().StringVar(&locale, "lang", "", "prompt language (overrides editor.locale)")
	return cmd
}
