package render

import (
	"image/color"
	"math"
)

// Palette is the default 16-entry color table. Index 0 is the background
// and index 1 the foreground.
var Palette = [16]color.RGBA{
	{0x00, 0x00, 0x00, 0xFF},
	{0xFF, 0xFF, 0xFF, 0xFF},
	{0xFF, 0x00, 0x00, 0xFF},
	{0x00, 0xFF, 0x00, 0xFF},
	{0x00, 0x00, 0xFF, 0xFF},
	{0x00, 0xFF, 0xFF, 0xFF},
	{0xFF, 0x00, 0xFF, 0xFF},
	{0xFF, 0xFF, 0x00, 0xFF},
	{0xFF, 0x80, 0x00, 0xFF},
	{0x80, 0xFF, 0x00, 0xFF},
	{0x00, 0xFF, 0x80, 0xFF},
	{0x00, 0x80, 0xFF, 0xFF},
	{0x80, 0x00, 0xFF, 0xFF},
	{0xFF, 0x00, 0x80, 0xFF},
	{0x55, 0x55, 0x55, 0xFF},
	{0xAA, 0xAA, 0xAA, 0xFF},
}

// Color maps a color index onto the palette, wrapping out-of-range indices.
func Color(i int) color.RGBA {
	if i < 0 {
		i = -i
	}
	return Palette[i%len(Palette)]
}

// MaxLineStyles is the number of distinct dash patterns.
const MaxLineStyles = 5

// Dashes returns the on/off pattern of a line style in line-width units.
// Style 1 (and anything unknown) is solid.
func Dashes(style int) []float64 {
	switch style {
	case 2:
		return []float64{8, 4}
	case 3:
		return []float64{8, 3, 1, 3}
	case 4:
		return []float64{1, 3}
	case 5:
		return []float64{8, 3, 1, 3, 1, 3, 1, 3}
	default:
		return nil
	}
}

// Segments calls fn for every run of consecutive finite points.
func Segments(x, y []float64, fn func(x, y []float64)) {
	start := -1
	for i := 0; i <= len(x); i++ {
		ok := i < len(x) && i < len(y) && finite(x[i]) && finite(y[i])
		if ok {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			fn(x[start:i], y[start:i])
			start = -1
		}
	}
}

// HistogramOutline converts bins into a step polyline. Bins that do not
// touch their predecessor start a new run, separated by a NaN point.
func HistogramOutline(lo, hi, val []float64) (x, y []float64) {
	n := len(lo)
	if len(hi) < n {
		n = len(hi)
	}
	if len(val) < n {
		n = len(val)
	}
	x = make([]float64, 0, 2*n+2)
	y = make([]float64, 0, 2*n+2)
	for i := 0; i < n; i++ {
		if i > 0 && lo[i] != hi[i-1] {
			x = append(x, math.NaN())
			y = append(y, math.NaN())
		}
		x = append(x, lo[i], hi[i])
		y = append(y, val[i], val[i])
	}
	return x, y
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
