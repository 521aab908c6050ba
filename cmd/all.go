package main

import (
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var allCmd = &cobra.Command{
	Use:   "all",
	Short: "Run both pipelines",
	Long:  "Runs the regression analysis and the choropleth map build concurrently. The pipelines share no outputs, so a failure in one does not corrupt the other.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		st, err := initStore(cmd.Context())
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		g, ctx := errgroup.WithContext(cmd.Context())
		g.Go(func() error { return runPlots(ctx, st, cfg.Analysis.Cities) })
		g.Go(func() error { return runChoropleth(ctx, st) })
		return g.Wait()
	},
}

func init() {
	rootCmd.AddCommand(allCmd)
}
