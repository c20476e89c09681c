package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/aristanetworks/goarista/monotime"
	bench "github.com/fjl/iobench-plot"
	"go.uber.org/zap"
	"gonum.org/v1/plot/vg"
)

func main() {
	var (
		configflag = flag.String("config", "", "YAML config file (default: built-in HDD/SSD setup)")
		outflag    = flag.String("out", "", "output directory, overrides config")
		widthflag  = flag.Float64("width", 0, "width of charts in inches, overrides config")
		heightflag = flag.Float64("height", 0, "height of charts in inches, overrides config")
		verbose    = flag.Bool("v", false, "enable debug logging")
	)
	flag.Parse()
	log := newLogger(*verbose)
	defer log.Sync()

	if flag.NArg() > 0 {
		log.Fatal("Unexpected arguments", zap.Strings("args", flag.Args()))
	}
	cfg, err := applyFlags(overrides{
		config: *configflag,
		out:    *outflag,
		width:  *widthflag,
		height: *heightflag,
	})
	if err != nil {
		log.Fatal("Invalid config", zap.Error(err))
	}
	if err := run(log, cfg); err != nil {
		log.Fatal("Plotting failed", zap.Error(err))
	}
}

// overrides holds the command line settings that take precedence over the
// config. Zero values leave the config unchanged.
type overrides struct {
	config        string
	out           string
	width, height float64
}

// applyFlags builds the effective config: defaults, then the config file,
// then the command line overrides.
func applyFlags(o overrides) (*bench.Config, error) {
	cfg := bench.DefaultConfig()
	if o.config != "" {
		var err error
		if cfg, err = bench.LoadConfig(o.config); err != nil {
			return nil, err
		}
	}
	if o.out != "" {
		cfg.OutputDir = o.out
	}
	if o.width > 0 {
		cfg.Width = o.width
	}
	if o.height > 0 {
		cfg.Height = o.height
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func run(log *zap.Logger, cfg *bench.Config) error {
	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		return fmt.Errorf("can't create output dir: %w", err)
	}
	for _, dev := range cfg.Devices {
		if err := processDevice(log, cfg, dev); err != nil {
			return fmt.Errorf("device %s: %w", dev.Name, err)
		}
	}
	return nil
}

// processDevice loads the results of one device and writes its four charts.
// Nothing is written if any result file fails to load.
func processDevice(log *zap.Logger, cfg *bench.Config, dev bench.Device) error {
	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		return fmt.Errorf("can't create output dir: %w", err)
	}
	log.Info("Processing device", zap.String("device", dev.Name), zap.String("dir", dev.Dir))
	ds, err := bench.LoadDataset(dev)
	if err != nil {
		return err
	}
	for _, op := range bench.Operations {
		c, err := ioSizeChart(log, ds, op)
		if err != nil {
			return err
		}
		if err := saveChart(log, cfg, c, bench.ChartFile(cfg.OutputDir, "io_size", dev.Name, op)); err != nil {
			return err
		}
	}
	for _, op := range bench.Operations {
		c, err := strideChart(log, ds, op, cfg.StrideIOSizes)
		if err != nil {
			return err
		}
		if err := saveChart(log, cfg, c, bench.ChartFile(cfg.OutputDir, "stride", dev.Name, op)); err != nil {
			return err
		}
	}
	return nil
}

func saveChart(log *zap.Logger, cfg *bench.Config, c *chart, file string) error {
	start := monotime.Now()
	plt, err := c.plot()
	if err != nil {
		return fmt.Errorf("%s: %w", file, err)
	}
	if err := plt.Save(vg.Length(cfg.Width)*vg.Inch, vg.Length(cfg.Height)*vg.Inch, file); err != nil {
		return err
	}
	log.Info("Wrote chart", zap.String("file", file), zap.Int("series", len(c.series)),
		zap.Duration("elapsed", time.Duration(monotime.Now()-start)))
	return nil
}
