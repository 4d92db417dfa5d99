package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vulnera-rs/vulnera-launcher/internal/launcher"
)

func newResolveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resolve",
		Short: "Resolve the adapter executable and the environment to forward",
		Long: `Resolve runs one full resolution pass: it applies the VULNERA_ADAPTER_PATH
and VULNERA_ADAPTER_VERSION overrides from the current environment, picks the
target version, installs the binary when missing or outdated, and prints the
executable path followed by KEY=VALUE lines for the forwarded environment.

The host remains responsible for spawning the process with stdio wired for
the adapter's line protocol.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}

			snapshot := launcher.SnapshotFromEnviron(os.Environ())
			command, err := a.launcher.ResolveCommand(cmd.Context(), snapshot)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), command.Path)
			for _, v := range command.Env {
				fmt.Fprintf(cmd.OutOrStdout(), "%s=%s\n", v.Key, v.Value)
			}
			return nil
		},
	}
}
