package main

import (
	"fmt"
	"math"

	bench "github.com/fjl/iobench-plot"
	"go.uber.org/zap"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
)

// lowClip is the factor by which an error bar may reach below its mean when
// mean-ci95 is not positive.
const lowClip = 10

// errPoints plots X = group key against Y = mean throughput, with ci95 as the
// Y error.
type errPoints []bench.Point

func (p errPoints) Len() int {
	return len(p)
}

func (p errPoints) XY(i int) (float64, float64) {
	return float64(p[i].Key), p[i].Mean
}

// YError leaves out the bar of points without a finite ci95.
func (p errPoints) YError(i int) (float64, float64) {
	if math.IsNaN(p[i].CI95) || math.IsInf(p[i].CI95, 0) {
		return 0, 0
	}
	ci := math.Abs(p[i].CI95)
	low := ci
	if p[i].Mean-low <= 0 {
		low = p[i].Mean - p[i].Mean/lowClip
	}
	return low, ci
}

type series struct {
	name   string
	points errPoints
}

// chart is a log-log error bar chart of throughput.
type chart struct {
	title   string
	xlabel  string
	markers bool // draw a glyph at each point
	series  []series
}

// addSeries adds the points that can be shown on log axes. Points with
// non-positive key or a mean that is not a positive number are dropped with
// a warning.
func (c *chart) addSeries(log *zap.Logger, name string, points []bench.Point) {
	var keep errPoints
	for _, p := range points {
		if p.Key <= 0 || !(p.Mean > 0) || math.IsInf(p.Mean, 0) {
			log.Warn("Dropping point not representable on log axes",
				zap.String("chart", c.title), zap.String("series", name),
				zap.Int64("key", p.Key), zap.Float64("mean", p.Mean))
			continue
		}
		keep = append(keep, p)
	}
	if len(keep) == 0 {
		log.Warn("Skipping empty series", zap.String("chart", c.title), zap.String("series", name))
		return
	}
	c.series = append(c.series, series{name: name, points: keep})
}

// plot builds the chart.
func (c *chart) plot() (*plot.Plot, error) {
	plt := plot.New()
	plt.Title.Text = c.title
	plt.X.Label.Text = c.xlabel
	plt.Y.Label.Text = "Throughput (MB/s)"
	plt.X.Scale = plot.LogScale{}
	plt.Y.Scale = plot.LogScale{}
	plt.X.Tick.Marker = byteTicks{}
	plt.Y.Tick.Marker = plot.LogTicks{Prec: -1}
	plt.Legend.Top = true
	plt.Add(plotter.NewGrid())

	for i, s := range c.series {
		l, err := plotter.NewLine(s.points)
		if err != nil {
			return nil, fmt.Errorf("series %q: %w", s.name, err)
		}
		eb, err := plotter.NewYErrorBars(s.points)
		if err != nil {
			return nil, fmt.Errorf("series %q: %w", s.name, err)
		}
		l.Color = plotutil.Color(i)
		eb.Color = l.Color
		plt.Add(l, eb)
		if !c.markers {
			plt.Legend.Add(s.name, l)
			continue
		}
		sc, err := plotter.NewScatter(s.points)
		if err != nil {
			return nil, fmt.Errorf("series %q: %w", s.name, err)
		}
		sc.Color = l.Color
		sc.Shape = plotutil.Shape(i)
		plt.Add(sc)
		plt.Legend.Add(s.name, l, sc)
	}
	fixLogRange(&plt.X, 1, 1<<24)
	fixLogRange(&plt.Y, 1, 1000)
	return plt, nil
}

// fixLogRange makes the axis range valid for a log scale. Axes without data
// get the range lo..hi, single-value axes are widened around the value.
func fixLogRange(a *plot.Axis, lo, hi float64) {
	if math.IsInf(a.Min, 0) || math.IsInf(a.Max, 0) || a.Min <= 0 {
		a.Min, a.Max = lo, hi
		return
	}
	if a.Min == a.Max {
		a.Min /= 2
		a.Max *= 2
	}
}

// ioSizeChart compares sequential and random throughput by I/O size.
func ioSizeChart(log *zap.Logger, ds *bench.Dataset, op bench.Operation) (*chart, error) {
	c := &chart{
		title:   fmt.Sprintf("I/O Size vs Throughput - %s %s", ds.Device.Name, op),
		xlabel:  "I/O Size (bytes)",
		markers: true,
	}
	for _, s := range []struct {
		name string
		p    bench.Pattern
	}{{"Sequential", bench.Sequential}, {"Random", bench.Random}} {
		points, err := bench.LastByKey(ds.Table(s.p, op), bench.ColIOSize)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", bench.ResultFile(s.p, op), err)
		}
		c.addSeries(log, s.name, points)
	}
	return c, nil
}

// strideChart plots throughput by stride size, one series per I/O size.
// I/O sizes without results are left out.
func strideChart(log *zap.Logger, ds *bench.Dataset, op bench.Operation, sizes []bench.Size) (*chart, error) {
	c := &chart{
		title:  fmt.Sprintf("Stride Size vs Throughput - %s %s", ds.Device.Name, op),
		xlabel: "Stride Size (bytes)",
	}
	file := bench.ResultFile(bench.Stride, op)
	for _, size := range sizes {
		t, err := ds.Table(bench.Stride, op).FilterInt(bench.ColIOSize, int64(size))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", file, err)
		}
		if t.Len() == 0 {
			log.Debug("No stride results", zap.String("chart", c.title), zap.Int64("io_size", int64(size)))
			continue
		}
		points, err := bench.LastByKey(t, bench.ColStrideSize)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", file, err)
		}
		c.addSeries(log, "IO Size="+size.KB(), points)
	}
	return c, nil
}
