package fbdev

import "math"

// pen is the state used to rasterize lines: color, width and the dash
// pattern with its phase, carried across the segments of one polyline.
type pen struct {
	pixel  uint16
	width  int
	dashes []int
	phase  int
}

func (p *pen) on() bool {
	if len(p.dashes) == 0 {
		return true
	}
	total := 0
	for _, d := range p.dashes {
		total += d
	}
	pos := p.phase % total
	for i, d := range p.dashes {
		if pos < d {
			return i%2 == 0
		}
		pos -= d
	}
	return true
}

func (p *pen) dot(d *fbDisplay, x, y int) {
	if p.width <= 1 {
		d.setPixel(x, y, p.pixel)
		return
	}
	r := p.width / 2
	d.fill(x-r, y-r, x-r+p.width, y-r+p.width, p.pixel)
}

// line draws from (x0, y0) to (x1, y1) in pixel coordinates.
func (p *pen) line(d *fbDisplay, x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -absInt(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		if p.on() {
			p.dot(d, x0, y0)
		}
		if x0 == x1 && y0 == y1 {
			return
		}
		p.phase++
		e2 := 2 * err
		if e2 >= dy {
			if x0 == x1 {
				return
			}
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			if y0 == y1 {
				return
			}
			err += dx
			y0 += sy
		}
	}
}

// clipLineToRect clips a segment to a rectangle (Liang-Barsky).
func clipLineToRect(x0, y0, x1, y1, xmin, ymin, xmax, ymax float64) (cx0, cy0, cx1, cy1 float64, ok bool) {
	dx := x1 - x0
	dy := y1 - y0
	u1 := 0.0
	u2 := 1.0

	p := [4]float64{-dx, dx, -dy, dy}
	q := [4]float64{x0 - xmin, xmax - x0, y0 - ymin, ymax - y0}
	for i := 0; i < 4; i++ {
		if p[i] == 0 {
			if q[i] < 0 {
				return 0, 0, 0, 0, false
			}
			continue
		}
		t := q[i] / p[i]
		if p[i] < 0 {
			if t > u2 {
				return 0, 0, 0, 0, false
			}
			u1 = math.Max(u1, t)
		} else {
			if t < u1 {
				return 0, 0, 0, 0, false
			}
			u2 = math.Min(u2, t)
		}
	}

	cx0 = clampFloat(x0+u1*dx, xmin, xmax)
	cy0 = clampFloat(y0+u1*dy, ymin, ymax)
	cx1 = clampFloat(x0+u2*dx, xmin, xmax)
	cy1 = clampFloat(y0+u2*dy, ymin, ymax)
	return cx0, cy0, cx1, cy1, true
}

func clampFloat(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func roundInt(v float64) int {
	if v < 0 {
		return int(v - 0.5)
	}
	return int(v + 0.5)
}

func roundInt16(v float64) int16 {
	return int16(clampInt(roundInt(v), math.MinInt16, math.MaxInt16))
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
