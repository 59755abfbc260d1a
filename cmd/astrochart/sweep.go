package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSweepCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "sweep",
		Short: "Remove cached artifact pairs older than the configured TTL",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := wireApp(cmd.Context(), *configPath)
			if err != nil {
				return err
			}
			defer a.shutdown(cmd.Context())

			removed, err := a.cache.Sweep(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "removed %d expired artifact pairs\n", removed)
			return nil
		},
	}
}
