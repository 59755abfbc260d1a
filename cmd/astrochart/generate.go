package main

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jonwraymond/astrochart/chart"
)

func newGenerateCmd(configPath *string) *cobra.Command {
	var req chart.Request

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Compute one chart and store its artifacts in the cache directory",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := req.Validate(); err != nil {
				return err
			}

			a, err := wireApp(cmd.Context(), *configPath)
			if err != nil {
				return err
			}
			defer a.shutdown(cmd.Context())

			entry, outcome, err := a.cache.GetOrCompute(cmd.Context(), func(ctx context.Context) ([]byte, []byte, error) {
				result, err := a.computer.Compute(ctx, req)
				if err != nil {
					return nil, nil, err
				}
				jsonBytes, err := json.Marshal(result)
				if err != nil {
					return nil, nil, err
				}
				imageBytes, err := a.renderer.Render(result)
				if err != nil {
					return nil, nil, err
				}
				return jsonBytes, imageBytes, nil
			}, req.KeyFields()...)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "key:    %s\n", entry.Key)
			fmt.Fprintf(out, "cached: %v\n", outcome.Cached)
			fmt.Fprintf(out, "json:   %s\n", filepath.Join(a.cfg.Cache.Dir, entry.Key+".json"))
			fmt.Fprintf(out, "image:  %s\n", filepath.Join(a.cfg.Cache.Dir, entry.Key+".png"))
			if !outcome.Stored {
				fmt.Fprintln(out, "warning: artifacts were not persisted, rerun will recompute")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&req.Name, "name", "", "subject name")
	cmd.Flags().StringVar(&req.Date, "date", "", "birth date, YYYY-MM-DD")
	cmd.Flags().StringVar(&req.Time, "time", "", "birth time, HH:MM")
	cmd.Flags().StringVar(&req.Place, "place", "", "birth place, free text")

	return cmd
}
