package main

import (
	"context"
	"log"
	"os"

	"github.com/spf13/cobra"

	"pkt.systems/psi"
	"pkt.systems/pslog"
)

func main() {
	psi.Run(submain)
}

func submain(ctx context.Context) int {
	logger := pslog.LoggerFromEnv(
		pslog.WithEnvWriter(os.Stderr),
		pslog.WithEnvOptions(pslog.Options{Mode: pslog.ModeConsole}),
	)
	ctx = pslog.ContextWithLogger(ctx, logger)
	log.SetOutput(pslog.LogLogger(logger).Writer())
	log.SetFlags(0)

	root := newRootCmd()
	root.SetArgs(os.Args[1:])

	if err := root.ExecuteContext(ctx); err != nil {
		pslog.Ctx(ctx).With("err", err).Error("paramedit command failed")
		return 1
	}
	return 0
}

// globalFlags are shared by every subcommand.
type globalFlags struct {
	configPath string
	seedPath   string
	envFiles   []string
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}
	root := &cobra.Command{
		Use:           "paramedit",
		Short:         "Edit a parameter registry and its values in the browser or terminal",
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	root.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", "config file (default paramedit.yaml when present)")
	root.PersistentFlags().StringVar(&flags.seedPath, "seed", "", "seed file (.yaml, .json or .hcl) replacing the built-in example")
	root.PersistentFlags().StringSliceVar(&flags.envFiles, "env-file", nil, "dotenv files to load before reading config (default .env)")

	root.AddCommand(newServeCmd(flags))
	root.AddCommand(newTUICmd(flags))
	root.AddCommand(newRenderCmd(flags))
	root.AddCommand(newMaterializeCmd(flags))
	root.AddCommand(newSchemaCmd(flags))
	root.AddCommand(newVersionCmd())

	return root
}
