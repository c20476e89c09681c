package main

import (
	"fmt"
	"math"

	"gonum.org/v1/plot"
)

// maxByteTicks is the number of labels above which every other power
// of two is skipped.
const maxByteTicks = 10

// byteTicks labels a log axis of byte sizes at powers of two.
type byteTicks struct{}

func (byteTicks) Ticks(min, max float64) (t []plot.Tick) {
	var pow []float64
	for s := nextPowerOfTwo(min); s <= max; s *= 2 {
		pow = append(pow, s)
	}
	if len(pow) < 2 {
		return plot.LogTicks{Prec: -1}.Ticks(min, max)
	}
	step := 1
	for len(pow)/step > maxByteTicks {
		step *= 2
	}
	for i, s := range pow {
		if i%step == 0 {
			t = append(t, plot.Tick{Value: s, Label: formatBytes(s)})
		} else {
			t = append(t, plot.Tick{Value: s})
		}
	}
	return t
}

// formatBytes renders a power-of-two byte count with a binary unit.
func formatBytes(v float64) string {
	units := []string{"B", "KB", "MB", "GB", "TB"}
	u := 0
	for v >= 1024 && u < len(units)-1 {
		v /= 1024
		u++
	}
	return fmt.Sprintf("%g%s", v, units[u])
}

func nextPowerOfTwo(f float64) float64 {
	return math.Pow(2, math.Ceil(math.Log2(f)))
}
