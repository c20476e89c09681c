package main

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	bench "github.com/fjl/iobench-plot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const strideData = `io_size,stride_size,mean,ci95
65536,4096,50,5
65536,8192,55,5
65536,4096,60,6
1048576,4096,200,10
3000,4096,1,1
`

func loadDevice(t *testing.T, name string, files map[string]string) *bench.Dataset {
	t.Helper()
	dir := t.TempDir()
	writeDevice(t, dir, files)
	ds, err := bench.LoadDataset(bench.Device{Name: name, Dir: dir})
	require.NoError(t, err)
	return ds
}

// writeDevice writes valid three-row results for all six files, replacing
// the contents of any file named in files.
func writeDevice(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for _, p := range []bench.Pattern{bench.Sequential, bench.Random, bench.Stride} {
		for _, op := range bench.Operations {
			name := bench.ResultFile(p, op)
			data := "io_size,mean,ci95\n4096,10,1\n65536,100,5\n1048576,300,12\n"
			if p == bench.Stride {
				data = "io_size,stride_size,mean,ci95\n4096,4096,10,1\n4096,65536,12,1\n65536,4096,90,3\n"
			}
			if f, ok := files[name]; ok {
				data = f
			}
			require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(data), 0644))
		}
	}
}

func seriesNames(c *chart) (names []string) {
	for _, s := range c.series {
		names = append(names, s.name)
	}
	return names
}

func TestIOSizeChart(t *testing.T) {
	ds := loadDevice(t, "HDD", map[string]string{
		"sequential_size_read.csv": "io_size,mean,ci95\n4096,10,1\n4096,20,2\n65536,100,4\n",
	})
	c, err := ioSizeChart(zap.NewNop(), ds, bench.Read)
	require.NoError(t, err)
	assert.Equal(t, "I/O Size vs Throughput - HDD read", c.title)
	assert.Equal(t, "I/O Size (bytes)", c.xlabel)
	assert.True(t, c.markers)
	assert.Equal(t, []string{"Sequential", "Random"}, seriesNames(c))
	assert.Equal(t, errPoints{{Key: 4096, Mean: 20, CI95: 2}, {Key: 65536, Mean: 100, CI95: 4}}, c.series[0].points)
}

func TestStrideChart(t *testing.T) {
	ds := loadDevice(t, "SSD", map[string]string{"stride_write.csv": strideData})
	c, err := strideChart(zap.NewNop(), ds, bench.Write, bench.DefaultConfig().StrideIOSizes)
	require.NoError(t, err)
	assert.Equal(t, "Stride Size vs Throughput - SSD write", c.title)
	assert.Equal(t, "Stride Size (bytes)", c.xlabel)
	assert.False(t, c.markers, "stride charts are drawn without point glyphs")
	// 4096, 524288 and 10485760 have no rows, 3000 is not a representative size.
	assert.Equal(t, []string{"IO Size=64KB", "IO Size=1024KB"}, seriesNames(c))
	assert.Equal(t, errPoints{{Key: 4096, Mean: 60, CI95: 6}, {Key: 8192, Mean: 55, CI95: 5}}, c.series[0].points)
}

func TestStrideChartAllSizes(t *testing.T) {
	data := "io_size,stride_size,mean,ci95\n"
	for _, size := range []string{"4096", "65536", "524288", "1048576", "10485760"} {
		data += size + ",4096,10,1\n"
	}
	ds := loadDevice(t, "SSD", map[string]string{"stride_read.csv": data})
	c, err := strideChart(zap.NewNop(), ds, bench.Read, bench.DefaultConfig().StrideIOSizes)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"IO Size=4KB", "IO Size=64KB", "IO Size=512KB", "IO Size=1024KB", "IO Size=10240KB",
	}, seriesNames(c))
}

func TestStrideChartMissingColumn(t *testing.T) {
	ds := loadDevice(t, "SSD", map[string]string{"stride_read.csv": "io_size,mean,ci95\n4096,1,1\n"})
	_, err := strideChart(zap.NewNop(), ds, bench.Read, bench.DefaultConfig().StrideIOSizes)
	assert.ErrorContains(t, err, "stride_size")
}

func TestAddSeriesDropsNonPositive(t *testing.T) {
	c := &chart{title: "t"}
	c.addSeries(zap.NewNop(), "a", []bench.Point{{Key: 0, Mean: 1}, {Key: 1, Mean: 0}, {Key: 2, Mean: 5, CI95: 1}})
	c.addSeries(zap.NewNop(), "b", []bench.Point{{Key: 1, Mean: -1}})
	require.Len(t, c.series, 1)
	assert.Equal(t, errPoints{{Key: 2, Mean: 5, CI95: 1}}, c.series[0].points)
}

func TestErrPointsYError(t *testing.T) {
	p := errPoints{{Key: 1, Mean: 10, CI95: 2}, {Key: 2, Mean: 10, CI95: 15}, {Key: 3, Mean: 10, CI95: -3}}
	low, high := p.YError(0)
	assert.Equal(t, 2.0, low)
	assert.Equal(t, 2.0, high)
	low, high = p.YError(1)
	assert.InDelta(t, 9.0, low, 1e-9)
	assert.Equal(t, 15.0, high)
	low, high = p.YError(2)
	assert.Equal(t, 3.0, low)
	assert.Equal(t, 3.0, high)
}

func TestChartPlotEmpty(t *testing.T) {
	c := &chart{title: "empty", xlabel: "x"}
	plt, err := c.plot()
	require.NoError(t, err)
	assert.Equal(t, 1.0, plt.X.Min)
	assert.Equal(t, float64(1<<24), plt.X.Max)
	assert.Equal(t, 1.0, plt.Y.Min)

	file := filepath.Join(t.TempDir(), "empty.png")
	require.NoError(t, plt.Save(300, 200, file))
	assert.FileExists(t, file)
}

func TestChartPlotSinglePoint(t *testing.T) {
	c := &chart{title: "one"}
	c.addSeries(zap.NewNop(), "s", []bench.Point{{Key: 4096, Mean: 50}})
	plt, err := c.plot()
	require.NoError(t, err)
	assert.Equal(t, 25.0, plt.Y.Min)
	assert.Equal(t, 100.0, plt.Y.Max)
	require.NoError(t, plt.Save(300, 200, filepath.Join(t.TempDir(), "one.png")))
}

func TestChartMissingMeasurements(t *testing.T) {
	ds := loadDevice(t, "HDD", map[string]string{
		"sequential_size_read.csv": "io_size,mean,ci95\n4096,10,NaN\n65536,100,\n1048576,,3\n4194304,NaN,1\n",
	})
	c, err := ioSizeChart(zap.NewNop(), ds, bench.Read)
	require.NoError(t, err)
	require.Len(t, c.series[0].points, 2)
	assert.Equal(t, []int64{4096, 65536}, []int64{c.series[0].points[0].Key, c.series[0].points[1].Key})
	assert.True(t, math.IsNaN(c.series[0].points[1].CI95))

	low, high := c.series[0].points.YError(0)
	assert.Zero(t, low)
	assert.Zero(t, high)

	plt, err := c.plot()
	require.NoError(t, err)
	require.NoError(t, plt.Save(300, 200, filepath.Join(t.TempDir(), "nan.png")))
}

func TestChartPlotWithoutMarkers(t *testing.T) {
	for _, markers := range []bool{false, true} {
		c := &chart{title: "m", markers: markers}
		c.addSeries(zap.NewNop(), "s", []bench.Point{{Key: 4096, Mean: 50, CI95: 1}, {Key: 8192, Mean: 60, CI95: 2}})
		plt, err := c.plot()
		require.NoError(t, err)
		require.NoError(t, plt.Save(300, 200, filepath.Join(t.TempDir(), "m.png")))
	}
}
