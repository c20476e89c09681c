package bench

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config controls which result directories are plotted and how.
type Config struct {
	OutputDir     string   `yaml:"output_dir"`
	Width         float64  `yaml:"width"`  // chart width in inches
	Height        float64  `yaml:"height"` // chart height in inches
	StrideIOSizes []Size   `yaml:"stride_io_sizes"`
	Devices       []Device `yaml:"devices"`
}

// DefaultConfig returns the configuration used when no config file is given.
func DefaultConfig() *Config {
	return &Config{
		OutputDir:     "benchmark_plots",
		Width:         12,
		Height:        6,
		StrideIOSizes: []Size{4096, 65536, 524288, 1048576, 10485760},
		Devices: []Device{
			{Name: "HDD", Dir: "hdd_benchmark_results"},
			{Name: "SSD", Dir: "ssd_benchmark_results"},
		},
	}
}

// LoadConfig reads a YAML config file. Keys missing from the file keep
// their default values.
func LoadConfig(file string) (*Config, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}
	return cfg, nil
}

// Validate checks the config for values that cannot produce charts.
func (cfg *Config) Validate() error {
	if cfg.OutputDir == "" {
		return errors.New("output_dir is empty")
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return fmt.Errorf("invalid chart size %gx%g", cfg.Width, cfg.Height)
	}
	if len(cfg.Devices) == 0 {
		return errors.New("no devices configured")
	}
	seen := make(map[string]bool)
	for i, dev := range cfg.Devices {
		if dev.Name == "" || dev.Dir == "" {
			return fmt.Errorf("device %d: name and dir are required", i)
		}
		if seen[dev.Name] {
			return fmt.Errorf("duplicate device name %q", dev.Name)
		}
		seen[dev.Name] = true
	}
	return nil
}
