package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vulnera-rs/vulnera-launcher/internal/platform"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the installed and cached adapter state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			fmt.Fprintf(out, "state dir:         %s\n", a.store.Dir())

			info, err := platform.NewDetector().Detect(cmd.Context())
			if err != nil {
				return fmt.Errorf("detect platform: %w", err)
			}
			fmt.Fprintf(out, "platform:          %s/%s", info.OS, info.Arch)
			if info.Distro != "" {
				fmt.Fprintf(out, " (%s %s)", info.Distro, info.Version)
			}
			fmt.Fprintln(out)

			if desc, err := platform.Resolve(info.OS, info.Arch); err == nil {
				binPath := a.installer.BinaryPath(desc)
				if _, statErr := os.Stat(binPath); statErr == nil {
					fmt.Fprintf(out, "binary:            %s\n", binPath)
				} else {
					fmt.Fprintf(out, "binary:            not installed\n")
				}
			} else {
				fmt.Fprintf(out, "binary:            unsupported platform\n")
			}

			if installed, ok := a.store.InstalledVersion(); ok {
				fmt.Fprintf(out, "installed version: %s\n", installed)
			} else {
				fmt.Fprintf(out, "installed version: none\n")
			}

			if cached, fetchedAt, ok := a.store.LatestCache(); ok {
				age := time.Since(time.Unix(int64(fetchedAt), 0)).Truncate(time.Second)
				fmt.Fprintf(out, "cached latest:     %s (fetched %s ago)\n", cached, age)
			} else {
				fmt.Fprintf(out, "cached latest:     none\n")
			}

			return nil
		},
	}
}
