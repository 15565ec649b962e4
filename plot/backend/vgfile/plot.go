package vgfile

import (
	"math"

	"plotwin/plot/render"

	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

func contains(r vg.Rectangle, p vg.Point) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func (dev *device) polyline(x, y []float64) {
	cv := dev.target()
	sty := dev.lineStyle()
	render.Segments(x, y, func(xs, ys []float64) {
		pts := make([]vg.Point, len(xs))
		for i := range xs {
			pts[i] = dev.toPoint(xs[i], ys[i])
		}
		if len(pts) == 1 {
			if contains(cv.Rectangle, pts[0]) {
				cv.DrawGlyph(draw.GlyphStyle{Color: sty.Color, Radius: sty.Width / 2, Shape: draw.CircleGlyph{}}, pts[0])
			}
			return
		}
		cv.StrokeLines(sty, cv.ClipLinesXY(pts)...)
	})
	dev.mark()
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
	dev.mark()
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
	dev.mark()
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

// PlotYErrorBar draws vertical bars with terminals termLen character
// heights wide. A missing end runs to the viewport edge.
func (b *Backend) PlotYErrorBar(x, top, bot []float64, termLen float64) error {
	dev, err := b.device()
	if err != nil {
		return err
	}
	cv := dev.target()
	sty := dev.lineStyle()
	sty.Dashes = nil
	win := dev.page.Win
	half := vg.Length(termLen * 2.5 * dev.char)
	for i := range x {
		if !finite(x[i]) {
			continue
		}
		t, bt := top[i], bot[i]
		if math.IsNaN(t) {
			t = math.Max(win[2], win[3])
		}
		if math.IsNaN(bt) {
			bt = math.Min(win[2], win[3])
		}
		pt, pb := dev.toPoint(x[i], t), dev.toPoint(x[i], bt)
		lines := [][]vg.Point{{pb, pt}}
		if half > 0 {
			if !math.IsNaN(top[i]) {
				lines = append(lines, []vg.Point{{X: pt.X - half, Y: pt.Y}, {X: pt.X + half, Y: pt.Y}})
			}
			if !math.IsNaN(bot[i]) {
				lines = append(lines, []vg.Point{{X: pb.X - half, Y: pb.Y}, {X: pb.X + half, Y: pb.Y}})
			}
		}
		cv.StrokeLines(sty, cv.ClipLinesXY(lines...)...)
	}
	dev.mark()
	return nil
}

type asteriskGlyph struct{}

func (asteriskGlyph) DrawGlyph(c *draw.Canvas, sty draw.GlyphStyle, pt vg.Point) {
	draw.PlusGlyph{}.DrawGlyph(c, sty, pt)
	draw.CrossGlyph{}.DrawGlyph(c, sty, pt)
}

func glyph(symbol int) draw.GlyphDrawer {
	switch symbol {
	case -1, 1, 17:
		return draw.CircleGlyph{}
	case 2:
		return draw.PlusGlyph{}
	case 3:
		return asteriskGlyph{}
	case 5:
		return draw.CrossGlyph{}
	case 0, 6:
		return draw.SquareGlyph{}
	case 7:
		return draw.TriangleGlyph{}
	case 16:
		return draw.BoxGlyph{}
	}
	return draw.RingGlyph{}
}

func (dev *device) point(x, y float64, symbol int) {
	if !finite(x) || !finite(y) {
		return
	}
	cv := dev.target()
	p := dev.toPoint(x, y)
	if !contains(cv.Rectangle, p) {
		return
	}
	r := vg.Length(2.5 * dev.char)
	if symbol == 1 || symbol == -1 {
		r = lineUnit
	}
	cv.DrawGlyph(draw.GlyphStyle{Color: ink(dev.color), Radius: r, Shape: glyph(symbol)}, p)
}
