package vgfile

import (
	"fmt"
	"math"
	"strings"

	"plotwin/plot/render"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

const (
	fontSize  = 10
	majorTick = 6
	minorTick = 3
)

func (dev *device) lineAdvance() vg.Length {
	return vg.Length(1.2 * fontSize * dev.char)
}

func (dev *device) textStyle(justify, angle float64, yalign text.YAlignment) text.Style {
	return text.Style{
		Color:    ink(dev.color),
		Font:     font.From(plot.DefaultFont, vg.Length(fontSize*dev.char)),
		Rotation: angle * math.Pi / 180,
		XAlign:   text.XAlignment(-justify),
		YAlign:   yalign,
		Handler:  plot.DefaultTextHandler,
	}
}

// text writes s at p. The text is never clipped.
func (dev *device) text(p vg.Point, s string, justify, angle float64, yalign text.YAlignment) {
	if s == "" {
		return
	}
	dev.dc.FillText(dev.textStyle(justify, angle, yalign), p, s)
	dev.mark()
}

func tickLen(a render.AxisOpt, t render.Tick) vg.Length {
	switch {
	case t.Major && a.Ticks:
		return majorTick
	case !t.Major && a.Minor:
		return minorTick
	}
	return 0
}

// ticks returns the tick marks of an axis spanning [lo, hi] in world
// coordinates, which are log10 values on a log axis.
func ticks(lo, hi float64, log bool) []render.Tick {
	lo, hi = math.Min(lo, hi), math.Max(lo, hi)
	var marker plot.Ticker = plot.DefaultTicks{}
	if log {
		marker = plot.LogTicks{Prec: -1}
		lo, hi = math.Pow(10, lo), math.Pow(10, hi)
	}
	if !(lo < hi) || math.IsInf(lo, 0) || math.IsInf(hi, 0) {
		return nil
	}
	var out []render.Tick
	for _, t := range marker.Ticks(lo, hi) {
		v := t.Value
		if log {
			v = math.Log10(v)
		}
		out = append(out, render.Tick{V: v, Label: t.Label, Major: !t.IsMinor()})
	}
	return out
}

func between(v, a, b float64) bool {
	return v >= math.Min(a, b) && v <= math.Max(a, b)
}

// DrawBox draws the frame of the viewport with ticks, grid and numbers.
func (b *Backend) DrawBox(xopt string, xtick float64, nxsub int, yopt string, ytick float64, nysub int) error {
	dev, err := b.device()
	if err != nil {
		return err
	}
	ax, ay := render.ParseAxisOpt(xopt), render.ParseAxisOpt(yopt)
	fr := dev.frame()
	cv := draw.Canvas{Canvas: dev.dc.Canvas, Rectangle: fr}
	win := dev.page.Win
	sty := dev.lineStyle()
	sty.Dashes = nil
	grid := sty
	grid.Width = lineUnit / 2
	grid.Dashes = []vg.Length{1, 3}

	var lines [][]vg.Point
	var grids [][]vg.Point
	hline := func(y vg.Length, x0, x1 vg.Length) []vg.Point {
		return []vg.Point{{X: x0, Y: y}, {X: x1, Y: y}}
	}
	vline := func(x vg.Length, y0, y1 vg.Length) []vg.Point {
		return []vg.Point{{X: x, Y: y0}, {X: x, Y: y1}}
	}

	if ax.Low {
		lines = append(lines, hline(fr.Min.Y, fr.Min.X, fr.Max.X))
	}
	if ax.High {
		lines = append(lines, hline(fr.Max.Y, fr.Min.X, fr.Max.X))
	}
	if ay.Low {
		lines = append(lines, vline(fr.Min.X, fr.Min.Y, fr.Max.Y))
	}
	if ay.High {
		lines = append(lines, vline(fr.Max.X, fr.Min.Y, fr.Max.Y))
	}
	if ax.ZeroAxis && !ay.Log && between(0, win[2], win[3]) {
		lines = append(lines, hline(dev.toPoint(win[0], 0).Y, fr.Min.X, fr.Max.X))
	}
	if ay.ZeroAxis && !ax.Log && between(0, win[0], win[1]) {
		lines = append(lines, vline(dev.toPoint(0, win[2]).X, fr.Min.Y, fr.Max.Y))
	}

	adv := dev.lineAdvance()
	for _, t := range ticks(win[0], win[1], ax.Log) {
		x := dev.toPoint(t.V, win[2]).X
		if x < fr.Min.X || x > fr.Max.X {
			continue
		}
		if ax.Grid && t.Major {
			grids = append(grids, vline(x, fr.Min.Y, fr.Max.Y))
		}
		if l := tickLen(ax, t); l > 0 {
			if ax.Low {
				lines = append(lines, vline(x, fr.Min.Y, fr.Min.Y+l))
			}
			if ax.High {
				lines = append(lines, vline(x, fr.Max.Y, fr.Max.Y-l))
			}
		}
		if ax.Numbers && t.Label != "" {
			dev.text(vg.Point{X: x, Y: fr.Min.Y - adv/4}, t.Label, 0.5, 0, text.YTop)
		}
	}
	for _, t := range ticks(win[2], win[3], ay.Log) {
		y := dev.toPoint(win[0], t.V).Y
		if y < fr.Min.Y || y > fr.Max.Y {
			continue
		}
		if ay.Grid && t.Major {
			grids = append(grids, hline(y, fr.Min.X, fr.Max.X))
		}
		if l := tickLen(ay, t); l > 0 {
			if ay.Low {
				lines = append(lines, hline(y, fr.Min.X, fr.Min.X+l))
			}
			if ay.High {
				lines = append(lines, hline(y, fr.Max.X, fr.Max.X-l))
			}
		}
		if ay.Numbers && t.Label != "" {
			dev.text(vg.Point{X: fr.Min.X - adv/4, Y: y}, t.Label, 1, 0, text.YCenter)
		}
	}

	if len(grids) > 0 {
		cv.StrokeLines(grid, grids...)
	}
	cv.StrokeLines(sty, lines...)
	dev.mark()
	return nil
}

func (b *Backend) LabelAxes(xlabel, ylabel, title string) error {
	dev, err := b.device()
	if err != nil {
		return err
	}
	fr := dev.frame()
	adv := dev.lineAdvance()
	mid := vg.Point{X: (fr.Min.X + fr.Max.X) / 2, Y: (fr.Min.Y + fr.Max.Y) / 2}
	dev.text(vg.Point{X: mid.X, Y: fr.Min.Y - 2*adv}, xlabel, 0.5, 0, text.YTop)
	dev.text(vg.Point{X: fr.Min.X - 3*adv, Y: mid.Y}, ylabel, 0.5, 90, text.YBottom)
	dev.text(vg.Point{X: mid.X, Y: fr.Max.Y + adv/2}, title, 0.5, 0, text.YBottom)
	return nil
}

func (b *Backend) PutTextXY(x, y, angle, justify float64, s string) error {
	dev, err := b.device()
	if err != nil {
		return err
	}
	dev.text(dev.toPoint(x, y), s, justify, angle, text.YBottom)
	return nil
}

// PutTextOffset writes text relative to the viewport edge named by where
// (B, L, T or R), offset text lines out from the edge. A V after L or R
// keeps the text horizontal.
func (b *Backend) PutTextOffset(where string, offset, pos, justify float64, s string) error {
	dev, err := b.device()
	if err != nil {
		return err
	}
	fr := dev.frame()
	d := vg.Length(offset) * dev.lineAdvance()
	along := func(lo, hi vg.Length) vg.Length { return lo + vg.Length(pos)*(hi-lo) }
	w := strings.ToUpper(where)
	vertical := !strings.Contains(w, "V")
	switch {
	case strings.Contains(w, "B"):
		dev.text(vg.Point{X: along(fr.Min.X, fr.Max.X), Y: fr.Min.Y - d}, s, justify, 0, text.YBottom)
	case strings.Contains(w, "T"):
		dev.text(vg.Point{X: along(fr.Min.X, fr.Max.X), Y: fr.Max.Y + d}, s, justify, 0, text.YBottom)
	case strings.Contains(w, "L"):
		p := vg.Point{X: fr.Min.X - d, Y: along(fr.Min.Y, fr.Max.Y)}
		if vertical {
			dev.text(p, s, justify, 90, text.YBottom)
		} else {
			dev.text(p, s, 1, 0, text.YCenter)
		}
	case strings.Contains(w, "R"):
		p := vg.Point{X: fr.Max.X + d, Y: along(fr.Min.Y, fr.Max.Y)}
		if vertical {
			dev.text(p, s, justify, 90, text.YTop)
		} else {
			dev.text(p, s, 0, 0, text.YCenter)
		}
	default:
		return fmt.Errorf("vgfile: bad text edge %q", where)
	}
	return nil
}
