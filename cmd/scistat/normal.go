package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/YuminosukeSato/scistat/hypothesis"
	"github.com/YuminosukeSato/scistat/pkg/errors"
	"github.com/YuminosukeSato/scistat/probability"
)

func newNormalCmd() *cobra.Command {
	var mu, sigma, tolerance float64

	cmd := &cobra.Command{
		Use:   "normal",
		Short: "Normal distribution functions",
	}
	cmd.PersistentFlags().Float64Var(&mu, "mu", 0, "Mean")
	cmd.PersistentFlags().Float64Var(&sigma, "sigma", 1, "Standard deviation")

	eval := func(use, short string, f func(x float64) (float64, error)) *cobra.Command {
		return &cobra.Command{
			Use:   use,
			Short: short,
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				xs, err := parseFloats(args)
				if err != nil {
					return err
				}
				v, err := f(xs[0])
				if err != nil {
					return err
				}
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "%.6f\n", v)
				return err
			},
		}
	}

	inv := eval("inv <p>", "Inverse cumulative distribution function by bisection", func(p float64) (float64, error) {
		return probability.InverseNormalCDF(p, mu, sigma, tolerance)
	})
	inv.Flags().Float64Var(&tolerance, "tolerance", probability.DefaultInverseTolerance, "Bisection tolerance")

	cmd.AddCommand(
		eval("pdf <x>", "Probability density at x", func(x float64) (float64, error) {
			return probability.NormalPDF(x, mu, sigma)
		}),
		eval("cdf <x>", "Probability of a value at most x", func(x float64) (float64, error) {
			return probability.NormalCDF(x, mu, sigma)
		}),
		inv,
	)
	return cmd
}

func newBinomialCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "binomial",
		Short: "Binomial distribution helpers",
	}

	var confidence float64
	approx := &cobra.Command{
		Use:   "approx <n> <p>",
		Short: "Normal approximation of Binomial(n, p)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := parseInts(args[:1])
			if err != nil {
				return err
			}
			p, err := parseFloats(args[1:])
			if err != nil {
				return err
			}
			mu, sigma, err := hypothesis.NormalApproximationToBinomial(n[0], p[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "mu=%.4f sigma=%.4f\n", mu, sigma)
			if confidence > 0 {
				lo, hi, err := hypothesis.NormalTwoSidedBounds(confidence, mu, sigma)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "bounds=[%.2f, %.2f]\n", lo, hi)
			}
			return nil
		},
	}
	approx.Flags().Float64Var(&confidence, "confidence", 0, "Also print the symmetric interval holding this probability")

	cmd.AddCommand(approx)
	return cmd
}

func newABTestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "abtest <NA> <nA> <NB> <nB>",
		Short: "Compare two conversion rates",
		Long: `Compare two conversion rates. NA and NB are the number of trials,
nA and nB the number of successes.`,
		Args: cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := parseInts(args)
			if err != nil {
				return err
			}
			z, err := hypothesis.ABTestStatistic(v[0], v[1], v[2], v[3])
			if err != nil {
				return err
			}
			p, err := hypothesis.TwoSidedPValue(z, 0, 1)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "z=%.4f p=%.4f\n", z, p)
			return err
		},
	}
}

func newPValueCmd() *cobra.Command {
	var mu, sigma float64
	var side string

	cmd := &cobra.Command{
		Use:   "pvalue <x>",
		Short: "Probability of a value at least as extreme as x",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			xs, err := parseFloats(args)
			if err != nil {
				return err
			}
			var p float64
			switch side {
			case "two":
				p, err = hypothesis.TwoSidedPValue(xs[0], mu, sigma)
			case "upper":
				p, err = hypothesis.UpperPValue(xs[0], mu, sigma)
			case "lower":
				p, err = hypothesis.LowerPValue(xs[0], mu, sigma)
			default:
				return errors.NewValidationError("side", "must be one of two, upper, lower", side)
			}
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%.4f\n", p)
			return err
		},
	}
	cmd.Flags().Float64Var(&mu, "mu", 0, "Mean under the null hypothesis")
	cmd.Flags().Float64Var(&sigma, "sigma", 1, "Standard deviation under the null hypothesis")
	cmd.Flags().StringVar(&side, "side", "two", "Tail: two, upper or lower")
	return cmd
}
