package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-paramedit/pkg/materialize"
)

func newMaterializeCmd(flags *globalFlags) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "materialize",
		Short: "Print the seed model as JSON or YAML",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := loadRuntime(cmd.Context(), flags)
			if err != nil {
				return err
			}
			if format == "" {
				format = rt.cfg.Editor.Format
			}
			parsed, err := materialize.ParseFormat(format)
			if err != nil {
				return err
			}
			dump, err := materialize.String(rt.seed.Model, parsed)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), dump)
			return err
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "", "output format: json or yaml (default editor.format)")
	return cmd
}
