package plot

import (
	"fmt"
	"math"
)

// Rect is a rectangle in normalized device coordinates.
type Rect struct {
	XMin, XMax float64
	YMin, YMax float64
}

// DefaultViewport is the outer viewport of a new window.
var DefaultViewport = Rect{XMin: 0.1, XMax: 0.9, YMin: 0.1, YMax: 0.9}

// Empty reports whether r has no area.
func (r Rect) Empty() bool {
	return !(r.XMin < r.XMax) || !(r.YMin < r.YMax)
}

// Layout partitions the outer viewport into nx*ny panes.
//
// With weights, nx must be 1 and ysizes[i] sets the relative height of row
// i. Pane 0 is the top row; rows are accumulated from the bottom edge
// upward so that the last row starts exactly at outer.YMin. Without
// weights the grid is uniform and panes are numbered row-major from the
// top left.
func Layout(nx, ny int, outer Rect, ysizes []float64) ([]Rect, error) {
	if nx < 1 || ny < 1 {
		return nil, fmt.Errorf("%w: %dx%d panes", ErrConfig, nx, ny)
	}
	if outer.Empty() {
		return nil, fmt.Errorf("%w: empty viewport %+v", ErrConfig, outer)
	}
	if ysizes != nil {
		if nx != 1 {
			return nil, fmt.Errorf("%w: row weights need a single column, got %d", ErrConfig, nx)
		}
		if len(ysizes) != ny {
			return nil, fmt.Errorf("%w: %d row weights for %d rows", ErrConfig, len(ysizes), ny)
		}
	}
	if ny == 1 && nx == 1 {
		return []Rect{outer}, nil
	}

	weights := ysizes
	if weights == nil {
		weights = make([]float64, ny)
		for i := range weights {
			weights[i] = 1
		}
	}
	var sum float64
	for i, w := range weights {
		if !(w > 0) || math.IsInf(w, 0) {
			return nil, fmt.Errorf("%w: row weight %d is %g", ErrConfig, i, w)
		}
		sum += w
	}

	height := outer.YMax - outer.YMin
	rows := make([]Rect, ny)
	y := outer.YMin
	for i := ny - 1; i >= 0; i-- {
		top := y + height*weights[i]/sum
		if i == 0 {
			top = outer.YMax
		}
		rows[i] = Rect{XMin: outer.XMin, XMax: outer.XMax, YMin: y, YMax: top}
		y = top
	}
	if nx == 1 {
		return rows, nil
	}

	width := (outer.XMax - outer.XMin) / float64(nx)
	panes := make([]Rect, 0, nx*ny)
	for _, row := range rows {
		for j := 0; j < nx; j++ {
			x0 := outer.XMin + float64(j)*width
			x1 := x0 + width
			if j == nx-1 {
				x1 = outer.XMax
			}
			panes = append(panes, Rect{XMin: x0, XMax: x1, YMin: row.YMin, YMax: row.YMax})
		}
	}
	return panes, nil
}
