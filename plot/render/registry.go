package render

import (
	"errors"
	"fmt"
	"math"
	"sync/atomic"
)

var errLength = errors.New("length mismatch")

type slot struct {
	b Backend
}

// Registry holds the installed Backend and forwards calls to it.
//
// Installing replaces the whole backend at once; a call that races with
// Install observes either the old or the new backend, never a mix.
type Registry struct {
	cur atomic.Pointer[slot]
}

// NewRegistry returns a registry with b installed (b may be nil).
func NewRegistry(b Backend) *Registry {
	r := &Registry{}
	r.Install(b)
	return r
}

// Install replaces the current backend with b and returns the previous one.
// A nil b uninstalls.
func (r *Registry) Install(b Backend) Backend {
	var next *slot
	if b != nil {
		next = &slot{b: b}
	}
	prev := r.cur.Swap(next)
	if prev == nil {
		return nil
	}
	return prev.b
}

func (r *Registry) do(op string, fn func(Backend) error) (err error) {
	s := r.cur.Load()
	if s == nil {
		return fmt.Errorf("%s: %w", op, ErrUndefined)
	}
	defer func() {
		if v := recover(); v != nil {
			err = fmt.Errorf("%w: %s: panic: %v", ErrFailure, op, v)
		}
	}()
	return wrap(op, fn(s.b))
}

func (r *Registry) Open(device string) (int, error) {
	var id int
	err := r.do("open", func(b Backend) error {
		var err error
		id, err = b.Open(device)
		if err == nil && id <= 0 {
			return fmt.Errorf("bad device id %d", id)
		}
		return err
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (r *Registry) Close() error {
	return r.do("close", func(b Backend) error { return b.Close() })
}

func (r *Registry) Subdivide(nx, ny int) error {
	return r.do("subdivide", func(b Backend) error { return b.Subdivide(nx, ny) })
}

func (r *Registry) SelectWindow(id int) error {
	return r.do("select window", func(b Backend) error { return b.SelectWindow(id) })
}

func (r *Registry) SelectViewport(xmin, xmax, ymin, ymax float64) error {
	return r.do("select viewport", func(b Backend) error { return b.SelectViewport(xmin, xmax, ymin, ymax) })
}

func (r *Registry) SetPlotLimits(xmin, xmax, ymin, ymax float64) error {
	return r.do("set plot limits", func(b Backend) error { return b.SetPlotLimits(xmin, xmax, ymin, ymax) })
}

func (r *Registry) QueryPlotLimits() (xmin, xmax, ymin, ymax float64, err error) {
	err = r.do("query plot limits", func(b Backend) error {
		var err error
		xmin, xmax, ymin, ymax, err = b.QueryPlotLimits()
		if err != nil {
			return err
		}
		for _, v := range [...]float64{xmin, xmax, ymin, ymax} {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return fmt.Errorf("bad limits [%g,%g]x[%g,%g]", xmin, xmax, ymin, ymax)
			}
		}
		return nil
	})
	if err != nil {
		return 0, 0, 0, 0, err
	}
	return xmin, xmax, ymin, ymax, nil
}

func (r *Registry) Erase() error {
	return r.do("erase", func(b Backend) error { return b.Erase() })
}

func (r *Registry) Update() error {
	return r.do("update", func(b Backend) error { return b.Update() })
}

func (r *Registry) NextPage() error {
	return r.do("next page", func(b Backend) error { return b.NextPage() })
}

func (r *Registry) GetColor() (int, error) {
	var c int
	err := r.do("get color", func(b Backend) error {
		var err error
		c, err = b.GetColor()
		return err
	})
	return c, err
}

func (r *Registry) SetColor(c int) error {
	return r.do("set color", func(b Backend) error { return b.SetColor(c) })
}

func (r *Registry) SetLineStyle(s int) error {
	return r.do("set line style", func(b Backend) error { return b.SetLineStyle(s) })
}

func (r *Registry) SetLineWidth(w int) error {
	return r.do("set line width", func(b Backend) error { return b.SetLineWidth(w) })
}

func (r *Registry) SetClipping(on bool) error {
	return r.do("set clipping", func(b Backend) error { return b.SetClipping(on) })
}

func (r *Registry) PlotXY(x, y []float64) error {
	return r.do("plot xy", func(b Backend) error {
		if len(x) != len(y) {
			return errLength
		}
		return b.PlotXY(x, y)
	})
}

func (r *Registry) PlotPoints(x, y []float64, symbol int) error {
	return r.do("plot points", func(b Backend) error {
		if len(x) != len(y) {
			return errLength
		}
		return b.PlotPoints(x, y, symbol)
	})
}

func (r *Registry) PlotSymbolPoints(x, y []float64, symbols []int) error {
	return r.do("plot symbol points", func(b Backend) error {
		if len(x) != len(y) || len(x) != len(symbols) {
			return errLength
		}
		return b.PlotSymbolPoints(x, y, symbols)
	})
}

func (r *Registry) PlotHistogram(lo, hi, val []float64) error {
	return r.do("plot histogram", func(b Backend) error {
		if len(lo) != len(hi) || len(lo) != len(val) {
			return errLength
		}
		return b.PlotHistogram(lo, hi, val)
	})
}

func (r *Registry) PlotYErrorBar(x, top, bot []float64, termLen float64) error {
	return r.do("plot y error bar", func(b Backend) error {
		if len(x) != len(top) || len(x) != len(bot) {
			return errLength
		}
		return b.PlotYErrorBar(x, top, bot, termLen)
	})
}

func (r *Registry) SetViewerSize(width, aspect float64) error {
	return r.do("set viewer size", func(b Backend) error { return b.SetViewerSize(width, aspect) })
}

func (r *Registry) SetCharSize(size float64) error {
	return r.do("set char size", func(b Backend) error { return b.SetCharSize(size) })
}

func (r *Registry) DrawBox(xopt string, xtick float64, nxsub int, yopt string, ytick float64, nysub int) error {
	return r.do("draw box", func(b Backend) error { return b.DrawBox(xopt, xtick, nxsub, yopt, ytick, nysub) })
}

func (r *Registry) LabelAxes(xlabel, ylabel, title string) error {
	return r.do("label axes", func(b Backend) error { return b.LabelAxes(xlabel, ylabel, title) })
}

func (r *Registry) PutTextXY(x, y, angle, justify float64, text string) error {
	return r.do("put text", func(b Backend) error { return b.PutTextXY(x, y, angle, justify, text) })
}

func (r *Registry) PutTextOffset(where string, offset, ox, oy float64, text string) error {
	return r.do("put text offset", func(b Backend) error { return b.PutTextOffset(where, offset, ox, oy, text) })
}

func (r *Registry) DefaultAxis() (string, error) {
	var s string
	err := r.do("default axis", func(b Backend) error {
		var err error
		s, err = b.DefaultAxis()
		return err
	})
	return s, err
}

func (r *Registry) ConfigureAxis(opt string, isLog, hasNumbers bool) (string, error) {
	var s string
	err := r.do("configure axis", func(b Backend) error {
		var err error
		s, err = b.ConfigureAxis(opt, isLog, hasNumbers)
		return err
	})
	return s, err
}

func (r *Registry) ReadCursor(cfg CursorConfig) (x, y float64, key rune, err error) {
	err = r.do("read cursor", func(b Backend) error {
		var err error
		x, y, key, err = b.ReadCursor(cfg)
		return err
	})
	if err != nil {
		return 0, 0, 0, err
	}
	return x, y, key, nil
}
