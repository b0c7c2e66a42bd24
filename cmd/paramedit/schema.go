package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-paramedit/pkg/schemaexport"
)

func newSchemaCmd(flags *globalFlags) *cobra.Command {
	var title string
	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Print an OpenAPI document describing the seed registry",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			rt, err := loadRuntime(ctx, flags)
			if err != nil {
				return err
			}
			data, err := schemaexport.JSON(ctx, rt.seed.Registry, schemaexport.Options{Title: title, Version: currentVersion()})
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return err
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "document title")
	return cmd
}
