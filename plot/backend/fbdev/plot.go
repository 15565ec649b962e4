package fbdev

import (
	"math"

	"plotwin/plot/render"
)

// clipRect returns the pixel rectangle drawing is limited to.
func (dev *device) clipRect() (x0, y0, x1, y1 float64) {
	w, h := dev.size()
	x0, y0, x1, y1 = 0, 0, w-1, h-1
	if dev.clip {
		fx0, fy0, fx1, fy1 := dev.frame()
		x0, y0 = math.Max(x0, fx0), math.Max(y0, fy0)
		x1, y1 = math.Min(x1, fx1), math.Min(y1, fy1)
	}
	return x0, y0, x1, y1
}

func (dev *device) inside(px, py float64) bool {
	x0, y0, x1, y1 := dev.clipRect()
	return px >= x0-0.5 && px <= x1+0.5 && py >= y0-0.5 && py <= y1+0.5
}

// segment draws a clipped line between two pixel positions.
func (dev *device) segment(p *pen, ax, ay, bx, by float64) {
	x0, y0, x1, y1 := dev.clipRect()
	ax, ay, bx, by, ok := clipLineToRect(ax, ay, bx, by, x0, y0, x1, y1)
	if !ok {
		return
	}
	p.line(dev.d, roundInt(ax), roundInt(ay), roundInt(bx), roundInt(by))
}

func (dev *device) polyline(x, y []float64) {
	p := dev.pen()
	render.Segments(x, y, func(xs, ys []float64) {
		if len(xs) == 1 {
			px, py := dev.toPixel(xs[0], ys[0])
			if dev.inside(px, py) {
				p.dot(dev.d, roundInt(px), roundInt(py))
			}
			return
		}
		ax, ay := dev.toPixel(xs[0], ys[0])
		for i := 1; i < len(xs); i++ {
			bx, by := dev.toPixel(xs[i], ys[i])
			dev.segment(p, ax, ay, bx, by)
			ax, ay = bx, by
		}
	})
}

func (b *Backend) PlotXY(x, y []float64) error {
	dev, err := b.device()
	if err != nil {
		return err
	}
	dev.polyline(x, y)
	return nil
}

func (b *Backend) PlotPoints(x, y []float64, symbol int) error {
	dev, err := b.device()
	if err != nil {
		return err
	}
	for i := range x {
		dev.point(x[i], y[i], symbol)
	}
	return nil
}

func (b *Backend) PlotSymbolPoints(x, y []float64, symbols []int) error {
	dev, err := b.device()
	if err != nil {
		return err
	}
	for i := range x {
		dev.point(x[i], y[i], symbols[i])
	}
	return nil
}

func (b *Backend) PlotHistogram(lo, hi, val []float64) error {
	dev, err := b.device()
	if err != nil {
		return err
	}
	dev.polyline(render.HistogramOutline(lo, hi, val))
	return nil
}

// PlotYErrorBar draws vertical bars from bot to top with terminals
// termLen character heights wide. A missing end runs to the viewport edge.
func (b *Backend) PlotYErrorBar(x, top, bot []float64, termLen float64) error {
	dev, err := b.device()
	if err != nil {
		return err
	}
	p := dev.pen()
	p.dashes = nil
	win := dev.page.Win
	half := termLen * 2 * dev.char
	for i := range x {
		if math.IsNaN(x[i]) || math.IsInf(x[i], 0) {
			continue
		}
		t, bt := top[i], bot[i]
		if math.IsNaN(t) {
			t = math.Max(win[2], win[3])
		}
		if math.IsNaN(bt) {
			bt = math.Min(win[2], win[3])
		}
		px, pt := dev.toPixel(x[i], t)
		_, pb := dev.toPixel(x[i], bt)
		dev.segment(p, px, pt, px, pb)
		if half > 0 {
			if !math.IsNaN(top[i]) {
				dev.segment(p, px-half, pt, px+half, pt)
			}
			if !math.IsNaN(bot[i]) {
				dev.segment(p, px-half, pb, px+half, pb)
			}
		}
	}
	return nil
}

func (dev *device) point(x, y float64, symbol int) {
	if math.IsNaN(x) || math.IsNaN(y) || math.IsInf(x, 0) || math.IsInf(y, 0) {
		return
	}
	px, py := dev.toPixel(x, y)
	if !dev.inside(px, py) {
		return
	}
	dev.marker(symbol, roundInt(px), roundInt(py))
}

// marker draws symbol centred on a pixel, sized by the character size.
func (dev *device) marker(symbol, x, y int) {
	p := &pen{pixel: palette565(dev.color), width: 1}
	r := max(1, roundInt(2.5*dev.char))
	d := dev.d
	switch symbol {
	case -1, 1:
		p.dot(d, x, y)
	case 2:
		p.line(d, x-r, y, x+r, y)
		p.line(d, x, y-r, x, y+r)
	case 3:
		p.line(d, x-r, y, x+r, y)
		p.line(d, x, y-r, x, y+r)
		p.line(d, x-r, y-r, x+r, y+r)
		p.line(d, x-r, y+r, x+r, y-r)
	case 5:
		p.line(d, x-r, y-r, x+r, y+r)
		p.line(d, x-r, y+r, x+r, y-r)
	case 0, 6:
		p.line(d, x-r, y-r, x+r, y-r)
		p.line(d, x+r, y-r, x+r, y+r)
		p.line(d, x+r, y+r, x-r, y+r)
		p.line(d, x-r, y+r, x-r, y-r)
	case 7:
		p.line(d, x, y-r, x+r, y+r)
		p.line(d, x+r, y+r, x-r, y+r)
		p.line(d, x-r, y+r, x, y-r)
	case 16:
		d.fill(x-r, y-r, x+r+1, y+r+1, p.pixel)
	case 17:
		for yy := -r; yy <= r; yy++ {
			xx := int(math.Sqrt(float64(r*r - yy*yy)))
			p.line(d, x-xx, y+yy, x+xx, y+yy)
		}
	default:
		circle(d, x, y, r, p.pixel)
	}
}

func circle(d *fbDisplay, cx, cy, r int, pixel uint16) {
	x := r
	y := 0
	err := 0
	for x >= y {
		for _, pt := range [8][2]int{
			{x, y}, {y, x}, {-y, x}, {-x, y},
			{-x, -y}, {-y, -x}, {y, -x}, {x, -y},
		} {
			d.setPixel(cx+pt[0], cy+pt[1], pixel)
		}
		y++
		if err <= 0 {
			err += 2*y + 1
		}
		if err > 0 {
			x--
			err -= 2*x + 1
		}
	}
}
