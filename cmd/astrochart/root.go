package main

import "github.com/spf13/cobra"

// Execute runs the CLI.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	var configPath string

	rootCmd := &cobra.Command{
		Use:           "astrochart",
		Short:         "Natal chart service: compute, render and cache astrological charts",
		Long:          "astrochart computes natal charts from a birth date, time and place, renders them as chart wheels, and serves both the structured data and the image over HTTP with a content-addressed artifact cache.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to astrochart.yaml (default: search . and /etc/astrochart)")

	rootCmd.AddCommand(
		newVersionCmd(),
		newServeCmd(&configPath),
		newGenerateCmd(&configPath),
		newSweepCmd(&configPath),
	)

	return rootCmd
}
