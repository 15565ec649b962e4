package wm

import (
	"errors"
	"fmt"
	"math"

	"plotwin/plot"
	"plotwin/plot/render"
)

// ErrCancelled is returned when the user aborts a cursor read.
var ErrCancelled = errors.New("wm: cursor read cancelled")

var errRetry = errors.New("wm: retry")

// bound returns the focused window if it is open on a device.
func (c *Collection) bound() (*Window, error) {
	w := c.focused()
	if w == nil || w.id <= 0 {
		return nil, fmt.Errorf("%w: no open window", plot.ErrLookup)
	}
	return w, nil
}

// cursorTarget selects the focused window and its current pane for reading
// world coordinates.
func (c *Collection) cursorTarget() (*Window, error) {
	w, err := c.bound()
	if err != nil {
		return nil, err
	}
	if err := c.soft(c.r.SelectWindow(int(w.id))); err != nil {
		return nil, err
	}
	if w.limitsOK[w.currentPane] {
		if err := c.restorePane(w); err != nil {
			return nil, err
		}
	}
	return w, nil
}

func (c *Collection) readCursor(cfg render.CursorConfig) (x, y float64, key rune, err error) {
	x, y, key, err = c.r.ReadCursor(cfg)
	switch {
	case err != nil:
		return 0, 0, 0, err
	case key == c.cfg.CancelKey:
		return 0, 0, key, ErrCancelled
	case key == c.cfg.RetryKey:
		return 0, 0, key, errRetry
	}
	return x, y, key, nil
}

// ReadPoint waits for a key press and returns the cursor position in data
// coordinates along with the key.
func (c *Collection) ReadPoint() (x, y float64, key rune, err error) {
	w, err := c.cursorTarget()
	if err != nil {
		return 0, 0, 0, err
	}
	for {
		x, y, key, err = c.readCursor(render.CursorConfig{Mode: render.CursorCross})
		if errors.Is(err, errRetry) {
			continue
		}
		if err != nil {
			return 0, 0, key, err
		}
		return unlog(w.format, plot.X, x), unlog(w.format, plot.Y, y), key, nil
	}
}

// readPair reads two points, the second with a band anchored on the first.
// The retry key starts over from the first point.
func (c *Collection) readPair(first, second render.CursorMode) (p [2][2]float64, err error) {
	w, err := c.cursorTarget()
	if err != nil {
		return p, err
	}
	for {
		x0, y0, _, err := c.readCursor(render.CursorConfig{Mode: first})
		if errors.Is(err, errRetry) {
			continue
		}
		if err != nil {
			return p, err
		}
		x1, y1, _, err := c.readCursor(render.CursorConfig{
			Mode:     second,
			AnchorX:  x0,
			AnchorY:  y0,
			StartX:   x0,
			StartY:   y0,
			HasStart: true,
		})
		if errors.Is(err, errRetry) {
			continue
		}
		if err != nil {
			return p, err
		}
		p[0] = [2]float64{unlog(w.format, plot.X, x0), unlog(w.format, plot.Y, y0)}
		p[1] = [2]float64{unlog(w.format, plot.X, x1), unlog(w.format, plot.Y, y1)}
		return p, nil
	}
}

// ReadXRange reads an X interval marked by two key presses.
func (c *Collection) ReadXRange() (min, max float64, err error) {
	p, err := c.readPair(render.CursorVLine, render.CursorXRange)
	if err != nil {
		return 0, 0, err
	}
	min, max = ordered(p[0][0], p[1][0])
	return min, max, nil
}

// ReadYRange reads a Y interval marked by two key presses.
func (c *Collection) ReadYRange() (min, max float64, err error) {
	p, err := c.readPair(render.CursorHLine, render.CursorYRange)
	if err != nil {
		return 0, 0, err
	}
	min, max = ordered(p[0][1], p[1][1])
	return min, max, nil
}

// ReadBox reads the opposite corners of a box.
func (c *Collection) ReadBox() (xmin, xmax, ymin, ymax float64, err error) {
	p, err := c.readPair(render.CursorCross, render.CursorBox)
	if err != nil {
		return 0, 0, 0, 0, err
	}
	xmin, xmax = ordered(p[0][0], p[1][0])
	ymin, ymax = ordered(p[0][1], p[1][1])
	return xmin, xmax, ymin, ymax, nil
}

func ordered(a, b float64) (float64, float64) {
	if a > b {
		return b, a
	}
	return a, b
}

func unlog(f *plot.Format, a plot.Axis, v float64) float64 {
	if f.Log(a) {
		return math.Pow(10, v)
	}
	return v
}
