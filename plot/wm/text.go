package wm

import (
	"fmt"
	"math"

	"plotwin/plot"
)

// Text writes s at data position (x, y) in the pane last drawn into.
// angle is in degrees; justify is 0 for left, 0.5 centred, 1 right.
func (c *Collection) Text(x, y, angle, justify float64, s string) (err error) {
	w, err := c.annotate()
	if err != nil {
		return err
	}
	defer c.flush(&err)
	f := w.format
	if f.Log(plot.X) {
		if !(x > 0) {
			return fmt.Errorf("%w: text at x=%g on a log axis", plot.ErrRange, x)
		}
		x = math.Log10(x)
	}
	if f.Log(plot.Y) {
		if !(y > 0) {
			return fmt.Errorf("%w: text at y=%g on a log axis", plot.ErrRange, y)
		}
		y = math.Log10(y)
	}
	if err := c.r.SetColor(f.Color()); err != nil {
		return err
	}
	return c.r.PutTextXY(x, y, angle, justify, s)
}

// TextOffset writes s outside or inside an edge of the pane. where holds
// one of B, L, T or R; offset is in character heights away from the edge,
// pos the fraction along it and justify as for Text. The device color is
// restored afterwards.
func (c *Collection) TextOffset(where string, offset, pos, justify float64, s string) (err error) {
	w, err := c.annotate()
	if err != nil {
		return err
	}
	defer c.flush(&err)
	if prev, err := c.r.GetColor(); err == nil {
		defer c.r.SetColor(prev)
	}
	if err := c.r.SetColor(w.format.Color()); err != nil {
		return err
	}
	return c.r.PutTextOffset(where, offset, pos, justify, s)
}

// Limits returns the data limits of the focused device.
func (c *Collection) Limits() (xmin, xmax, ymin, ymax float64, err error) {
	w, err := c.bound()
	if err != nil {
		return 0, 0, 0, 0, err
	}
	if err := c.soft(c.r.SelectWindow(int(w.id))); err != nil {
		return 0, 0, 0, 0, err
	}
	xmin, xmax, ymin, ymax, err = c.r.QueryPlotLimits()
	if err != nil {
		return 0, 0, 0, 0, err
	}
	f := w.format
	return unlog(f, plot.X, xmin), unlog(f, plot.X, xmax), unlog(f, plot.Y, ymin), unlog(f, plot.Y, ymax), nil
}

// annotate readies the pane last drawn into of the focused window.
func (c *Collection) annotate() (*Window, error) {
	w, err := c.bound()
	if err != nil {
		return nil, err
	}
	if !w.limitsOK[w.currentPane] {
		return nil, fmt.Errorf("%w: nothing drawn in window %d", plot.ErrRange, w.id)
	}
	if err := c.soft(c.r.SelectWindow(int(w.id))); err != nil {
		return nil, err
	}
	return w, c.restorePane(w)
}

func (c *Collection) flush(err *error) {
	if uerr := c.soft(c.r.Update()); *err == nil {
		*err = uerr
	}
}
