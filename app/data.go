package app

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"plotwin/plot"
	"plotwin/plot/wm"
)

// readColumns reads a CSV file of numbers into columns. Lines starting
// with '#' are skipped, as is a first row that is not numeric (a header).
func readColumns(path string, minCols int) ([][]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return parseColumns(path, f, minCols)
}

func parseColumns(name string, r io.Reader, minCols int) ([][]float64, error) {
	cr := csv.NewReader(r)
	cr.Comment = '#'
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var cols [][]float64
	first := true
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", plot.ErrConfig, name, err)
		}
		line, _ := cr.FieldPos(0)
		row, err := parseRow(rec)
		if err != nil {
			if first {
				first = false
				continue
			}
			return nil, fmt.Errorf("%w: %s:%d: %v", plot.ErrConfig, name, line, err)
		}
		first = false
		if cols == nil {
			if len(row) < minCols {
				return nil, fmt.Errorf("%w: %s:%d: want at least %d columns, got %d", plot.ErrConfig, name, line, minCols, len(row))
			}
			cols = make([][]float64, len(row))
		}
		if len(row) != len(cols) {
			return nil, fmt.Errorf("%w: %s:%d: want %d columns, got %d", plot.ErrConfig, name, line, len(cols), len(row))
		}
		for i, v := range row {
			cols[i] = append(cols[i], v)
		}
	}
	if cols == nil {
		return nil, fmt.Errorf("%w: %s: no data", plot.ErrConfig, name)
	}
	return cols, nil
}

func parseRow(rec []string) ([]float64, error) {
	row := make([]float64, len(rec))
	for i, s := range rec {
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return nil, fmt.Errorf("column %d: bad number %q", i+1, s)
		}
		row[i] = v
	}
	return row, nil
}

// loadCurve reads x, y and an optional per-point marker column.
func loadCurve(path string) (wm.Curve, error) {
	cols, err := readColumns(path, 2)
	if err != nil {
		return wm.Curve{}, err
	}
	return curveFromColumns(cols), nil
}

func curveFromColumns(cols [][]float64) wm.Curve {
	cv := wm.Curve{X: cols[0], Y: cols[1]}
	if len(cols) > 2 {
		cv.Symbols = make([]int, len(cols[2]))
		for i, v := range cols[2] {
			cv.Symbols[i] = int(math.Round(v))
		}
	}
	return cv
}

// loadHist reads lo, hi, value and optional error and ignore columns. A
// non-zero ignore value hides the bin.
func loadHist(path string) (wm.Hist, error) {
	cols, err := readColumns(path, 3)
	if err != nil {
		return wm.Hist{}, err
	}
	return histFromColumns(cols), nil
}

func histFromColumns(cols [][]float64) wm.Hist {
	h := wm.Hist{Lo: cols[0], Hi: cols[1], Val: cols[2]}
	if len(cols) > 3 {
		h.Err = cols[3]
	}
	if len(cols) > 4 {
		h.Ignore = make([]bool, len(cols[4]))
		for i, v := range cols[4] {
			h.Ignore[i] = v != 0
		}
	}
	return h
}
