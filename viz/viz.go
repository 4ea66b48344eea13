// Package viz renders descriptive plots with gonum.org/v1/plot.
//
// Every function draws into a caller-supplied io.Writer; nothing here opens
// files. Supported formats are "svg" and "png".
package viz

import (
	"image/color"
	"io"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	_ "gonum.org/v1/plot/vg/vgimg" // png
	_ "gonum.org/v1/plot/vg/vgsvg" // svg

	"github.com/YuminosukeSato/scistat/gradient"
	"github.com/YuminosukeSato/scistat/pkg/errors"
	"github.com/YuminosukeSato/scistat/probability"
	"github.com/YuminosukeSato/scistat/stats"
)

// Canvas size for every figure.
const (
	Width  = 6 * vg.Inch
	Height = 4 * vg.Inch
)

var formats = map[string]bool{"svg": true, "png": true}

// Histogram draws the distribution of values over the given number of
// equal-width bins.
func Histogram(w io.Writer, values []float64, bins int, format string) error {
	if err := checkFormat(format); err != nil {
		return err
	}
	if len(values) == 0 {
		return errors.Wrap(errors.ErrEmptyData, "viz.Histogram")
	}
	if bins < 1 {
		return errors.NewValidationError("bins", "must be positive", bins)
	}
	if err := plotter.CheckFloats(values...); err != nil {
		return errors.NewValidationError("values", err.Error(), nil)
	}

	h, err := plotter.NewHist(plotter.Values(values), bins)
	if err != nil {
		return errors.Wrap(err, "viz.Histogram")
	}
	p := plot.New()
	p.Title.Text = "Histogram"
	p.Y.Label.Text = "count"
	p.Add(h)
	return render(w, p, format)
}

// BucketHistogram draws the counts produced by stats.MakeHistogram, one bar
// per bucket of the given size.
func BucketHistogram(w io.Writer, points []float64, bucketSize float64, format string) error {
	if err := checkFormat(format); err != nil {
		return err
	}
	if len(points) == 0 {
		return errors.Wrap(errors.ErrEmptyData, "viz.BucketHistogram")
	}
	counts, err := stats.MakeHistogram(points, bucketSize)
	if err != nil {
		return err
	}

	h := &plotter.Histogram{
		Width:     bucketSize,
		FillColor: color.Gray{Y: 128},
		LineStyle: plotter.DefaultLineStyle,
	}
	for _, b := range counts.Buckets() {
		h.Bins = append(h.Bins, plotter.HistogramBin{Min: b, Max: b + bucketSize, Weight: float64(counts[b])})
	}
	p := plot.New()
	p.Title.Text = "Histogram"
	p.Y.Label.Text = "count"
	p.Add(h)
	return render(w, p, format)
}

// DescentTrace draws the objective value against the iteration number.
// Non-finite values, such as the start of a run in an undefined region, are
// skipped.
func DescentTrace(w io.Writer, res *gradient.Result, format string) error {
	if err := checkFormat(format); err != nil {
		return err
	}
	if res == nil || len(res.Trace) == 0 {
		return errors.Wrap(errors.ErrEmptyData, "viz.DescentTrace")
	}

	var pts plotter.XYs
	for i, v := range res.Trace {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		pts = append(pts, plotter.XY{X: float64(i), Y: v})
	}
	if len(pts) == 0 {
		return errors.Wrap(errors.ErrEmptyData, "viz.DescentTrace: no finite values")
	}

	line, err := plotter.NewLine(pts)
	if err != nil {
		return errors.Wrap(err, "viz.DescentTrace")
	}
	p := plot.New()
	p.Title.Text = "Objective"
	p.X.Label.Text = "iteration"
	p.Y.Label.Text = "value"
	p.Add(line, plotter.NewGrid())
	return render(w, p, format)
}

// NormalCurve draws the normal density over mu ± 4 sigma.
func NormalCurve(w io.Writer, mu, sigma float64, format string) error {
	if err := checkFormat(format); err != nil {
		return err
	}
	dist, err := probability.NewNormal(mu, sigma)
	if err != nil {
		return err
	}

	peak, err := dist.PDF(mu)
	if err != nil {
		return err
	}

	// sigma is validated above, so the density cannot fail inside the plotter.
	f := plotter.NewFunction(func(x float64) float64 {
		v, _ := dist.PDF(x)
		return v
	})
	f.Samples = 200
	p := plot.New()
	p.Title.Text = "Normal density"
	p.X.Min, p.X.Max = mu-4*sigma, mu+4*sigma
	p.Y.Min, p.Y.Max = 0, 1.05*peak
	p.Add(f)
	return render(w, p, format)
}

func checkFormat(format string) error {
	if !formats[format] {
		return errors.NewValidationError("format", "must be svg or png", format)
	}
	return nil
}

func render(w io.Writer, p *plot.Plot, format string) error {
	wt, err := p.WriterTo(Width, Height, format)
	if err != nil {
		return errors.Wrap(err, "viz.render")
	}
	if _, err := wt.WriteTo(w); err != nil {
		return errors.Wrap(err, "viz.render")
	}
	return nil
}
