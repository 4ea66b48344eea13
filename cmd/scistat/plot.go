package main

import (
	"github.com/spf13/cobra"

	"github.com/YuminosukeSato/scistat/viz"
)

func newPlotCmd(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "plot",
		Short: "Render a figure to standard output",
	}
	cmd.PersistentFlags().StringVar(&format, "format", "svg", "Image format: svg or png")

	var mu, sigma float64
	normal := &cobra.Command{
		Use:   "normal",
		Short: "Normal density curve",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return viz.NormalCurve(cmd.OutOrStdout(), mu, sigma, format)
		},
	}
	normal.Flags().Float64Var(&mu, "mu", 0, "Mean")
	normal.Flags().Float64Var(&sigma, "sigma", 1, "Standard deviation")

	var bins int
	histogram := &cobra.Command{
		Use:   "histogram <v1> [v2 ...]",
		Short: "Histogram of the given values",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			values, err := parseFloats(args)
			if err != nil {
				return err
			}
			return viz.Histogram(cmd.OutOrStdout(), values, bins, format)
		},
	}
	histogram.Flags().IntVar(&bins, "bins", 10, "Number of bins")

	var flags minimizeFlags
	trace := &cobra.Command{
		Use:   "trace <x1> [x2 ...]",
		Short: "Objective trace of the sum-of-squares minimization",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := flags.run(a.logger, args)
			if err != nil {
				return err
			}
			return viz.DescentTrace(cmd.OutOrStdout(), res, format)
		},
	}
	flags.register(trace)

	cmd.AddCommand(normal, histogram, trace)
	return cmd
}
