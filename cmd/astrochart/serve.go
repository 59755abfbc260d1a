package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonwraymond/astrochart/server"
)

func newServeCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the chart HTTP service",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			a, err := wireApp(ctx, *configPath)
			if err != nil {
				return err
			}
			defer func() {
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				a.shutdown(shutdownCtx)
			}()

			srv, err := server.New(server.Config{
				Addr:            a.cfg.Server.Addr,
				RatePerSecond:   a.cfg.Server.RatePerSecond,
				RateBurst:       a.cfg.Server.RateBurst,
				ShutdownTimeout: a.cfg.Server.ShutdownTimeout,
			}, server.Dependencies{
				Computer:      a.computer,
				Cache:         a.cache,
				Renderer:      a.renderer,
				Observer:      a.observer,
				Health:        a.health,
				Authenticator: a.authn,
			})
			if err != nil {
				return err
			}

			return srv.Run(ctx)
		},
	}
}
