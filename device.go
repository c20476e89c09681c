package bench

import (
	"fmt"
	"path/filepath"
)

// Operation is the benchmarked I/O direction.
type Operation string

const (
	Read  Operation = "read"
	Write Operation = "write"
)

// Operations lists the operations in plotting order.
var Operations = []Operation{Read, Write}

// Pattern is a benchmark access pattern.
type Pattern string

const (
	Sequential Pattern = "sequential"
	Random     Pattern = "random"
	Stride     Pattern = "stride"
)

// Device is a benchmarked storage device and the directory holding its results.
type Device struct {
	Name string `yaml:"name"`
	Dir  string `yaml:"dir"`
}

// ResultFile returns the name of the CSV file holding results for the given
// pattern and operation.
func ResultFile(p Pattern, op Operation) string {
	if p == Sequential {
		return fmt.Sprintf("sequential_size_%s.csv", op)
	}
	return fmt.Sprintf("%s_%s.csv", p, op)
}

// ChartFile returns the output path of a chart. Kind is "io_size" or "stride".
func ChartFile(outdir, kind, device string, op Operation) string {
	return filepath.Join(outdir, fmt.Sprintf("%s_%s_%s.png", kind, device, op))
}

type tableKey struct {
	p  Pattern
	op Operation
}

// Dataset holds the six result tables of one device.
type Dataset struct {
	Device Device
	tables map[tableKey]*Table
}

// LoadDataset reads all result tables of a device. It fails on the first
// file that cannot be read.
func LoadDataset(dev Device) (*Dataset, error) {
	ds := &Dataset{Device: dev, tables: make(map[tableKey]*Table)}
	for _, p := range []Pattern{Sequential, Random, Stride} {
		for _, op := range Operations {
			t, err := ReadTable(filepath.Join(dev.Dir, ResultFile(p, op)))
			if err != nil {
				return nil, err
			}
			ds.tables[tableKey{p, op}] = t
		}
	}
	return ds, nil
}

// Table returns the results for the given pattern and operation.
func (ds *Dataset) Table(p Pattern, op Operation) *Table {
	return ds.tables[tableKey{p, op}]
}
