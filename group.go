package bench

// Column names written by the benchmark tool.
const (
	ColIOSize     = "io_size"
	ColStrideSize = "stride_size"
	ColMean       = "mean"
	ColCI95       = "ci95"
)

// Point is the measurement selected for one group of rows.
type Point struct {
	Key  int64   // value of the grouping column
	Mean float64 // throughput in MB/s
	CI95 float64 // 95% confidence half-width in MB/s
}

// LastByKey groups the rows of t by the integer column key. Groups appear in
// the order their key is first seen. The mean and ci95 of each group are taken
// from its last row; earlier rows of the group are ignored.
func LastByKey(t *Table, key string) ([]Point, error) {
	for _, col := range []string{key, ColMean, ColCI95} {
		if _, err := t.column(col); err != nil {
			return nil, err
		}
	}
	var (
		points []Point
		pos    = make(map[int64]int)
	)
	for row := range t.Rows {
		k, err := t.Int(row, key)
		if err != nil {
			return nil, err
		}
		mean, err := t.Float(row, ColMean)
		if err != nil {
			return nil, err
		}
		ci, err := t.Float(row, ColCI95)
		if err != nil {
			return nil, err
		}
		p := Point{Key: k, Mean: mean, CI95: ci}
		if i, ok := pos[k]; ok {
			points[i] = p
			continue
		}
		pos[k] = len(points)
		points = append(points, p)
	}
	return points, nil
}
