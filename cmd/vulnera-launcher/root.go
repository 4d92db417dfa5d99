package main

import (
	"github.com/spf13/cobra"
)

var (
	flagRoot   string
	flagConfig string
	flagDebug  bool
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "vulnera-launcher",
		Short:         "Provision and launch the vulnera-adapter binary",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       Version,
	}

	cmd.PersistentFlags().StringVar(&flagRoot, "root", "", "State root directory (default: platform config dir)")
	cmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to a config file")
	cmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")

	cmd.AddCommand(newResolveCmd())
	cmd.AddCommand(newInstallCmd())
	cmd.AddCommand(newStatusCmd())
	cmd.AddCommand(newCleanCmd())

	return cmd
}
