package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vulnera-rs/vulnera-launcher/internal/platform"
)

func newInstallCmd() *cobra.Command {
	var adapterVersion string

	cmd := &cobra.Command{
		Use:   "install",
		Short: "Install or update the adapter binary",
		Long: `Install forces one version-resolution and ensure pass for the current
platform. Without --adapter-version the target version comes from the usual
chain (cache, releases listing, floor).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}

			info, err := platform.NewDetector().Detect(cmd.Context())
			if err != nil {
				return fmt.Errorf("detect platform: %w", err)
			}
			desc, err := platform.Resolve(info.OS, info.Arch)
			if err != nil {
				return err
			}
			a.log.Debug("resolved platform",
				"os", info.OS, "arch", info.Arch, "target", desc.TargetTriple)

			target := a.resolver.Resolve(cmd.Context(), adapterVersion)
			path, err := a.installer.Ensure(cmd.Context(), desc, target)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "vulnera-adapter %s installed at %s\n", target, path)
			return nil
		},
	}

	cmd.Flags().StringVar(&adapterVersion, "adapter-version", "", "Pin the adapter version to install")

	return cmd
}
