package fbdev

import (
	"fmt"
	"math"
	"strings"

	"plotwin/plot/render"

	"tinygo.org/x/tinyfont"
)

var font = &tinyfont.TomThumb

const (
	majorTick = 6
	minorTick = 3

	// lineHeight is the pixel advance of one text line at char size 1.
	lineHeight = 8
)

// quarter turns counterclockwise, as tinyfont rotations
var rotations = [4]tinyfont.Rotation{
	tinyfont.NO_ROTATION,
	tinyfont.ROTATION_270,
	tinyfont.ROTATION_180,
	tinyfont.ROTATION_90,
}

// text writes s with its baseline anchored at (x, y) in pixels. justify
// 0 left-aligns, 0.5 centres and 1 right-aligns along the writing
// direction.
func (dev *device) text(x, y float64, s string, justify float64, quarter int) {
	if s == "" {
		return
	}
	_, w := tinyfont.LineWidth(font, s)
	shift := justify * float64(w)
	quarter = ((quarter % 4) + 4) % 4
	switch quarter {
	case 0:
		x -= shift
	case 1:
		y += shift
	case 2:
		x += shift
	case 3:
		y -= shift
	}
	c := render.Color(dev.color)
	if quarter == 0 {
		tinyfont.WriteLine(dev.d, font, roundInt16(x), roundInt16(y), s, c)
		return
	}
	tinyfont.WriteLineRotated(dev.d, font, roundInt16(x), roundInt16(y), s, c, rotations[quarter])
}

func (dev *device) lineAdvance() float64 {
	return lineHeight * dev.char
}

// DrawBox draws the frame of the viewport with ticks and labels.
func (b *Backend) DrawBox(xopt string, xtick float64, nxsub int, yopt string, ytick float64, nysub int) error {
	dev, err := b.device()
	if err != nil {
		return err
	}
	ax, ay := render.ParseAxisOpt(xopt), render.ParseAxisOpt(yopt)
	x0, y0, x1, y1 := dev.frame()
	win := dev.page.Win
	p := dev.pen()
	p.dashes = nil

	grid := dev.pen()
	grid.dashes = []int{1, 3}
	grid.width = 1

	xticks := render.Ticks(win[0], win[1], 6, ax.Log)
	yticks := render.Ticks(win[2], win[3], 6, ay.Log)

	if ax.Grid {
		for _, t := range xticks {
			if t.Major {
				px, _ := dev.toPixel(t.V, win[2])
				dev.segment(grid, px, y0, px, y1)
			}
		}
	}
	if ay.Grid {
		for _, t := range yticks {
			if t.Major {
				_, py := dev.toPixel(win[0], t.V)
				dev.segment(grid, x0, py, x1, py)
			}
		}
	}
	if ax.ZeroAxis && !ay.Log && between(0, win[2], win[3]) {
		_, py := dev.toPixel(win[0], 0)
		dev.segment(p, x0, py, x1, py)
	}
	if ay.ZeroAxis && !ax.Log && between(0, win[0], win[1]) {
		px, _ := dev.toPixel(0, win[2])
		dev.segment(p, px, y0, px, y1)
	}

	if ax.Low {
		dev.segment(p, x0, y1, x1, y1)
	}
	if ax.High {
		dev.segment(p, x0, y0, x1, y0)
	}
	if ay.Low {
		dev.segment(p, x0, y0, x0, y1)
	}
	if ay.High {
		dev.segment(p, x1, y0, x1, y1)
	}

	adv := dev.lineAdvance()
	for _, t := range xticks {
		px, _ := dev.toPixel(t.V, win[2])
		if px < x0-0.5 || px > x1+0.5 {
			continue
		}
		if l := tickLen(ax, t); l > 0 {
			if ax.Low {
				dev.segment(p, px, y1, px, y1-l)
			}
			if ax.High {
				dev.segment(p, px, y0, px, y0+l)
			}
		}
		if ax.Numbers && t.Label != "" {
			dev.text(px, y1+adv, t.Label, 0.5, 0)
		}
	}
	for _, t := range yticks {
		_, py := dev.toPixel(win[0], t.V)
		if py < y0-0.5 || py > y1+0.5 {
			continue
		}
		if l := tickLen(ay, t); l > 0 {
			if ay.Low {
				dev.segment(p, x0, py, x0+l, py)
			}
			if ay.High {
				dev.segment(p, x1, py, x1-l, py)
			}
		}
		if ay.Numbers && t.Label != "" {
			dev.text(x0-adv/2, py+adv/4, t.Label, 1, 0)
		}
	}
	return nil
}

func tickLen(a render.AxisOpt, t render.Tick) float64 {
	switch {
	case t.Major && a.Ticks:
		return majorTick
	case !t.Major && a.Minor:
		return minorTick
	}
	return 0
}

func between(v, a, b float64) bool {
	return v >= math.Min(a, b) && v <= math.Max(a, b)
}

func (b *Backend) LabelAxes(xlabel, ylabel, title string) error {
	dev, err := b.device()
	if err != nil {
		return err
	}
	x0, y0, x1, y1 := dev.frame()
	adv := dev.lineAdvance()
	mx, my := (x0+x1)/2, (y0+y1)/2
	dev.text(mx, y1+2.5*adv, xlabel, 0.5, 0)
	dev.text(x0-4*adv, my, ylabel, 0.5, 1)
	dev.text(mx, y0-adv, title, 0.5, 0)
	return nil
}

// PutTextXY writes text at world coordinates. The angle is rounded to a
// multiple of 90 degrees.
func (b *Backend) PutTextXY(x, y, angle, justify float64, s string) error {
	dev, err := b.device()
	if err != nil {
		return err
	}
	px, py := dev.toPixel(x, y)
	dev.text(px, py, s, justify, int(math.Round(angle/90)))
	return nil
}

// PutTextOffset writes text relative to the viewport edge named by where
// (B, L, T or R). offset is in text lines outward from the edge and pos the
// fraction along it. A V after L or R keeps the text horizontal.
func (b *Backend) PutTextOffset(where string, offset, pos, justify float64, s string) error {
	dev, err := b.device()
	if err != nil {
		return err
	}
	x0, y0, x1, y1 := dev.frame()
	d := offset * dev.lineAdvance()
	w := strings.ToUpper(where)
	vertical := !strings.Contains(w, "V")
	switch {
	case strings.Contains(w, "B"):
		dev.text(x0+pos*(x1-x0), y1+d, s, justify, 0)
	case strings.Contains(w, "T"):
		dev.text(x0+pos*(x1-x0), y0-d, s, justify, 0)
	case strings.Contains(w, "L"):
		y := y1 - pos*(y1-y0)
		if vertical {
			dev.text(x0-d, y, s, justify, 1)
		} else {
			dev.text(x0-d, y, s, 1, 0)
		}
	case strings.Contains(w, "R"):
		y := y1 - pos*(y1-y0)
		if vertical {
			dev.text(x1+d+dev.lineAdvance(), y, s, justify, 1)
		} else {
			dev.text(x1+d, y, s, 0, 0)
		}
	default:
		return fmt.Errorf("fbdev: bad text edge %q", where)
	}
	return nil
}
