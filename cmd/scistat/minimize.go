package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/YuminosukeSato/scistat/gradient"
	"github.com/YuminosukeSato/scistat/linalg"
	"github.com/YuminosukeSato/scistat/pkg/log"
)

type minimizeFlags struct {
	tolerance     float64
	maxIterations int
}

func (f *minimizeFlags) register(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&f.tolerance, "tolerance", gradient.DefaultTolerance, "Stop when the improvement falls below this value")
	cmd.Flags().IntVar(&f.maxIterations, "max-iterations", gradient.DefaultMaxIterations, "Iteration cap")
}

// run minimizes the sum of squares from the start vector given as arguments.
func (f *minimizeFlags) run(logger log.Logger, args []string) (*gradient.Result, error) {
	start, err := parseFloats(args)
	if err != nil {
		return nil, err
	}
	return gradient.MinimizeBatch(
		linalg.SumOfSquares,
		func(v linalg.Vector) linalg.Vector { return linalg.ScalarMultiply(2, v) },
		start,
		gradient.WithTolerance(f.tolerance),
		gradient.WithMaxIterations(f.maxIterations),
		gradient.WithLogger(logger),
	)
}

func newMinimizeCmd(a *app) *cobra.Command {
	var flags minimizeFlags

	cmd := &cobra.Command{
		Use:   "minimize <x1> [x2 ...]",
		Short: "Minimize the sum of squares with batch gradient descent",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := flags.run(a.logger, args)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "theta=%v\n", []float64(res.Theta))
			fmt.Fprintf(out, "value=%.6g iterations=%d converged=%t\n", res.Value, res.Iterations, res.Converged)
			if w := res.Warning(); w != nil {
				a.logger.Warn("minimize finished without converging", "warning", w)
			}
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}
