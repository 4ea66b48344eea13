package main

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/YuminosukeSato/scistat/pkg/errors"
	"github.com/YuminosukeSato/scistat/pkg/log"
)

// app holds state shared by every subcommand.
type app struct {
	logLevel  string
	logFormat string
	logger    log.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{logger: log.Nop()}

	root := &cobra.Command{
		Use:   "scistat",
		Short: "Statistics and gradient descent toolkit",
		Long: `scistat evaluates normal distribution functions, runs hypothesis tests
and demonstrates gradient descent.

Examples:
  scistat normal cdf 1.96
  scistat normal inv 0.975 --mu 100 --sigma 15
  scistat binomial approx 1000 0.5 --confidence 0.95
  scistat abtest 1000 200 1000 180
  scistat minimize --log-level debug -- 3 -4 1
  scistat plot normal --format svg > normal.svg`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setupLogger,
	}

	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&a.logFormat, "log-format", "json", "Log format: json (zerolog), cloud (slog JSON) or text (slog)")

	root.AddCommand(
		newNormalCmd(),
		newBinomialCmd(),
		newABTestCmd(),
		newPValueCmd(),
		newMinimizeCmd(a),
		newPlotCmd(a),
	)
	return root
}

// setupLogger builds the logger from the persistent flags. Records go to
// the command's error stream.
func (a *app) setupLogger(cmd *cobra.Command, _ []string) error {
	level, err := log.ParseLevel(a.logLevel)
	if err != nil {
		return err
	}

	w := cmd.ErrOrStderr()
	switch a.logFormat {
	case "json":
		a.logger = log.NewZerologLogger(w, level)
	case "cloud":
		a.logger = log.NewJSONLogger(w, level)
	case "text":
		a.logger = log.NewSlogLogger(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.Level(level)}))
	default:
		return errors.NewValidationError("log-format", "must be one of json, cloud, text", a.logFormat)
	}
	return nil
}

// parseFloats converts positional arguments to numbers.
func parseFloats(args []string) ([]float64, error) {
	out := make([]float64, len(args))
	for i, s := range args {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, errors.NewValidationError(fmt.Sprintf("arg %d", i+1), "must be a number", s)
		}
		out[i] = v
	}
	return out, nil
}

// parseInts converts positional arguments to integers.
func parseInts(args []string) ([]int, error) {
	out := make([]int, len(args))
	for i, s := range args {
		v, err := strconv.Atoi(s)
		if err != nil {
			return nil, errors.NewValidationError(fmt.Sprintf("arg %d", i+1), "must be an integer", s)
		}
		out[i] = v
	}
	return out, nil
}
