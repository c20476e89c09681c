package bench

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

// Table is a CSV file held in memory. Rows keep the order of the file.
type Table struct {
	Header []string
	Rows   [][]string

	index map[string]int
}

// ReadTable reads a CSV file with a header row.
func ReadTable(file string) (*Table, error) {
	fd, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer fd.Close()
	t, err := ReadTableFrom(fd)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}
	return t, nil
}

// ReadTableFrom reads CSV data with a header row from r.
func ReadTableFrom(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	header, err := cr.Read()
	if err == io.EOF {
		return nil, errors.New("missing header row")
	} else if err != nil {
		return nil, err
	}
	header[0] = strings.TrimPrefix(header[0], "\ufeff")
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	return newTable(header, rows), nil
}

func newTable(header []string, rows [][]string) *Table {
	t := &Table{Header: header, Rows: rows, index: make(map[string]int, len(header))}
	for i, name := range header {
		if _, ok := t.index[name]; !ok {
			t.index[name] = i
		}
	}
	return t
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// Has reports whether the table has the named column.
func (t *Table) Has(col string) bool {
	_, ok := t.index[col]
	return ok
}

func (t *Table) column(col string) (int, error) {
	i, ok := t.index[col]
	if !ok {
		return 0, fmt.Errorf("missing column %q", col)
	}
	return i, nil
}

// Int parses the cell at row/col as an integer. Integral floats like
// "4096.0" are accepted.
func (t *Table) Int(row int, col string) (int64, error) {
	i, err := t.column(col)
	if err != nil {
		return 0, err
	}
	cell := t.Rows[row][i]
	v, err := strconv.ParseInt(cell, 10, 64)
	if err == nil {
		return v, nil
	}
	f, ferr := strconv.ParseFloat(cell, 64)
	if ferr != nil || f != math.Trunc(f) || math.Abs(f) >= math.MaxInt64 {
		return 0, fmt.Errorf("row %d, column %q: %w", row+1, col, err)
	}
	return int64(f), nil
}

// Float parses the cell at row/col as a floating point number.
// An empty cell is NaN.
func (t *Table) Float(row int, col string) (float64, error) {
	i, err := t.column(col)
	if err != nil {
		return 0, err
	}
	cell := t.Rows[row][i]
	if cell == "" {
		return math.NaN(), nil
	}
	v, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return 0, fmt.Errorf("row %d, column %q: %w", row+1, col, err)
	}
	return v, nil
}

// FilterInt returns a table containing the rows whose integer column col equals v.
func (t *Table) FilterInt(col string, v int64) (*Table, error) {
	if _, err := t.column(col); err != nil {
		return nil, err
	}
	var rows [][]string
	for row := range t.Rows {
		x, err := t.Int(row, col)
		if err != nil {
			return nil, err
		}
		if x == v {
			rows = append(rows, t.Rows[row])
		}
	}
	return newTable(t.Header, rows), nil
}
