package wm

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"plotwin/plot"
	"plotwin/plot/render"
	"plotwin/plot/units"
)

// Curve is a series of points.
type Curve struct {
	X, Y []float64
	// Symbols, if set, gives the marker of every point.
	Symbols []int
}

// Hist is a histogram with bins [Lo[i], Hi[i]) holding Val[i].
type Hist struct {
	Lo, Hi, Val []float64
	// Err holds optional symmetric errors.
	Err []float64
	// Bins with Ignore[i] set are not drawn.
	Ignore []bool
	// Unit of the bin edges.
	Unit units.Unit
}

// DrawOpts modify a single draw.
type DrawOpts struct {
	// Overlay draws into the last used pane with its limits. It is ignored
	// until something has been drawn.
	Overlay bool
	// Style, if not 0, replaces the color or line style for this draw only.
	Style int
}

func (cv *Curve) validate() error {
	if len(cv.X) != len(cv.Y) {
		return fmt.Errorf("%w: curve has %d x and %d y values", plot.ErrConfig, len(cv.X), len(cv.Y))
	}
	if cv.Symbols != nil && len(cv.Symbols) != len(cv.X) {
		return fmt.Errorf("%w: curve has %d points and %d symbols", plot.ErrConfig, len(cv.X), len(cv.Symbols))
	}
	return nil
}

func (h *Hist) validate() error {
	n := len(h.Lo)
	if len(h.Hi) != n || len(h.Val) != n {
		return fmt.Errorf("%w: histogram has %d/%d edges and %d values", plot.ErrConfig, len(h.Lo), len(h.Hi), len(h.Val))
	}
	if h.Err != nil && len(h.Err) != n || h.Ignore != nil && len(h.Ignore) != n {
		return fmt.Errorf("%w: histogram errors or mask do not match %d bins", plot.ErrConfig, n)
	}
	if !h.Unit.Valid() {
		return fmt.Errorf("%w: %v", plot.ErrConfig, h.Unit)
	}
	return nil
}

// job is one draw request reduced to what the pipeline needs.
type job struct {
	// Values, in axis scale, that the derived ranges must cover.
	rx, ry []float64
	// Default axis labels.
	defX, defY string
	emit       func() error
	done       func(f *plot.Format)
}

// Curve draws a curve into the focused window, opening the default device
// if no window is bound yet.
func (c *Collection) Curve(cv Curve, o DrawOpts) error {
	if err := cv.validate(); err != nil {
		return err
	}
	w, err := c.drawTarget()
	if err != nil {
		return err
	}
	f := w.format
	f.SyncXUnit()
	x, y := logValues(cv.X, f.Log(plot.X)), logValues(cv.Y, f.Log(plot.Y))
	return c.draw(w, o, &job{
		rx: x,
		ry: y,
		emit: func() error {
			return c.emitCurve(f, x, y, cv.Symbols)
		},
		done: (*plot.Format).MarkCurvePlotted,
	})
}

// Histogram draws a histogram into the focused window. A window whose
// unit the user never set takes the unit of the bins; otherwise bin edges
// are converted to the window's X unit first.
func (c *Collection) Histogram(h Hist, o DrawOpts) error {
	if err := h.validate(); err != nil {
		return err
	}
	w, err := c.drawTarget()
	if err != nil {
		return err
	}
	f := w.format
	if err := f.AdoptUnit(h.Unit); err != nil {
		return err
	}
	f.SyncXUnit()
	h, err = convertBins(h, f.Unit())
	if err != nil {
		return err
	}
	if f.BinDensity() {
		h = binDensity(h)
	}

	logx, logy := f.Log(plot.X), f.Log(plot.Y)
	lo, hi, val := logValues(h.Lo, logx), logValues(h.Hi, logx), logValues(h.Val, logy)
	var top, bot []float64
	nbars, termLen := f.Errorbars()
	if h.Err != nil && nbars > 0 {
		top, bot = make([]float64, len(h.Val)), make([]float64, len(h.Val))
		for i, v := range h.Val {
			top[i], bot[i] = v+h.Err[i], v-h.Err[i]
		}
		top, bot = logValues(top, logy), logValues(bot, logy)
	}

	var rx, ry []float64
	for i := range lo {
		if h.Ignore != nil && h.Ignore[i] {
			continue
		}
		rx = append(rx, lo[i], hi[i])
		ry = append(ry, val[i])
		if top != nil {
			ry = append(ry, top[i], bot[i])
		}
	}
	return c.draw(w, o, &job{
		rx:   rx,
		ry:   ry,
		defX: f.Unit().Label(),
		defY: "Counts",
		emit: func() error {
			if err := c.emitHist(f, lo, hi, val, h.Ignore); err != nil {
				return err
			}
			if top == nil {
				return nil
			}
			return c.emitErrorbars(lo, hi, top, bot, h.Ignore, nbars, termLen)
		},
		done: (*plot.Format).MarkHistogramPlotted,
	})
}

// drawTarget returns the focused window, opening the default device when
// no window is bound.
func (c *Collection) drawTarget() (*Window, error) {
	if w := c.focused(); w != nil && w.id > 0 {
		return w, nil
	}
	if _, err := c.Open("", 1, 1); err != nil {
		return nil, err
	}
	return c.focused(), nil
}

// draw runs the steps shared by curves and histograms. Whatever happens,
// the device is flushed once and the unit bookkeeping of j is applied.
func (c *Collection) draw(w *Window, o DrawOpts, j *job) (err error) {
	f := w.format
	defer func() {
		uerr := c.soft(c.r.Update())
		if err == nil {
			err = uerr
		}
		j.done(f)
		if err != nil {
			c.logf("wm: draw: %v", err)
		}
	}()

	if err := c.soft(c.r.SelectWindow(int(w.id))); err != nil {
		return err
	}
	overlay := o.Overlay && f.Rendered() && w.limitsOK[w.currentPane]
	if !overlay {
		if err := c.advance(w); err != nil {
			return err
		}
		f.RestartStyleCycle()
	}

	if overlay {
		if err := c.restorePane(w); err != nil {
			return err
		}
	} else {
		xlo, xhi, err := resolve(f, plot.X, j.rx)
		if err != nil {
			return err
		}
		ylo, yhi, err := resolve(f, plot.Y, j.ry)
		if err != nil {
			return err
		}
		lim := [4]float64{xlo, xhi, ylo, yhi}
		if err := c.drawBox(w, lim, j.defX, j.defY); err != nil {
			return err
		}
		w.limits[w.currentPane] = lim
		w.limitsOK[w.currentPane] = true
		f.SetRendered(true)
	}

	if err := c.applyStyle(f, o.Style); err != nil {
		return err
	}
	if err := j.emit(); err != nil {
		return err
	}
	f.AutoIncrementStyle(c.cfg.Cycle)
	return nil
}

// advance moves to the pane of a new plot, starting a new page when the
// pane cursor wraps or the window was cleared.
func (c *Collection) advance(w *Window) error {
	if w.kind == SinglePane {
		return c.nextPage()
	}
	newPage := false
	switch {
	case w.pinned:
		w.pinned = false
	case w.forceClear:
		w.currentPane = 0
		newPage = true
	default:
		w.currentPane++
		if w.currentPane >= len(w.panes) {
			w.currentPane = 0
			newPage = true
		}
	}
	w.forceClear = false
	if !newPage {
		return nil
	}
	for i := range w.limitsOK {
		w.limitsOK[i] = false
	}
	return c.nextPage()
}

func (c *Collection) nextPage() error {
	err := c.r.NextPage()
	if errors.Is(err, render.ErrUnsupported) {
		err = c.r.Erase()
	}
	return err
}

// resolve returns the padded limits of one axis: stored bounds where set,
// else the extent of the finite values in data.
func resolve(f *plot.Format, a plot.Axis, data []float64) (lo, hi float64, err error) {
	lo, hi = f.Bounds(a)
	autoLo, autoHi := math.IsNaN(lo), math.IsNaN(hi)
	if autoLo || autoHi {
		dmin, dmax := math.Inf(1), math.Inf(-1)
		for _, v := range data {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				continue
			}
			dmin, dmax = min(dmin, v), max(dmax, v)
		}
		if dmin > dmax {
			return 0, 0, fmt.Errorf("%w: no valid %v values", plot.ErrRange, a)
		}
		if autoLo {
			lo = dmin
		}
		if autoHi {
			hi = dmax
		}
	}
	if lo > hi {
		return 0, 0, fmt.Errorf("%w: %v range [%g,%g] is inverted", plot.ErrRange, a, lo, hi)
	}
	if lo == hi {
		if lo == 0 {
			lo, hi = -1, 1
		} else {
			d := 0.5 * math.Abs(lo)
			lo, hi = lo-d, hi+d
		}
	}
	pad := 0.01 * (hi - lo)
	if autoLo {
		lo -= pad
	}
	if autoHi {
		hi += pad
	}
	return lo, hi, nil
}

func (c *Collection) drawBox(w *Window, lim [4]float64, defX, defY string) error {
	f := w.format
	p := w.pane()
	if err := c.r.SelectViewport(p.XMin, p.XMax, p.YMin, p.YMax); err != nil {
		return err
	}
	if err := c.soft(c.r.SetCharSize(f.CharHeight())); err != nil {
		return err
	}
	if err := c.soft(c.r.SetLineWidth(f.FrameLineWidth())); err != nil {
		return err
	}
	if err := c.soft(c.r.SetLineStyle(1)); err != nil {
		return err
	}
	if err := c.r.SetColor(1); err != nil {
		return err
	}
	if err := c.r.SetPlotLimits(lim[0], lim[1], lim[2], lim[3]); err != nil {
		return err
	}
	xopt, yopt := f.AxisOpts()
	if err := c.r.DrawBox(xopt, 0, 0, yopt, 0, 0); err != nil {
		return err
	}
	return c.soft(c.r.LabelAxes(f.AxisLabels(defX, defY)))
}

// restorePane makes the current pane and its stored limits active again.
func (c *Collection) restorePane(w *Window) error {
	p := w.pane()
	if err := c.r.SelectViewport(p.XMin, p.XMax, p.YMin, p.YMax); err != nil {
		return err
	}
	lim := w.limits[w.currentPane]
	return c.r.SetPlotLimits(lim[0], lim[1], lim[2], lim[3])
}

// applyStyle sets the drawing style. An override goes to the channel the
// cycle does not advance.
func (c *Collection) applyStyle(f *plot.Format, override int) error {
	color, style := f.Color(), f.LineStyle()
	if override > 0 {
		if f.StyleMeansColor() {
			style = override
		} else {
			color = override
		}
	}
	if err := c.r.SetColor(color); err != nil {
		return err
	}
	if err := c.soft(c.r.SetLineStyle(style)); err != nil {
		return err
	}
	return c.soft(c.r.SetLineWidth(f.LineWidth()))
}

func (c *Collection) emitCurve(f *plot.Format, x, y []float64, symbols []int) error {
	if len(x) == 0 {
		return nil
	}
	if err := c.soft(c.r.SetClipping(true)); err != nil {
		return err
	}
	connect := f.ConnectPoints()
	if connect != plot.ConnectMarkers {
		if err := c.r.PlotXY(x, y); err != nil {
			return err
		}
	}
	if connect < 0 {
		return nil
	}
	if symbols != nil {
		return c.r.PlotSymbolPoints(x, y, symbols)
	}
	return c.points(f, x, y)
}

// points draws uniform markers sized by the point size.
func (c *Collection) points(f *plot.Format, x, y []float64) error {
	if err := c.soft(c.r.SetCharSize(f.PointSize())); err != nil {
		return err
	}
	err := c.r.PlotPoints(x, y, f.PointStyle())
	if serr := c.soft(c.r.SetCharSize(f.CharHeight())); err == nil {
		err = serr
	}
	return err
}

func (c *Collection) emitHist(f *plot.Format, lo, hi, val []float64, ignore []bool) error {
	if err := c.soft(c.r.SetClipping(true)); err != nil {
		return err
	}
	if f.ConnectPoints() == plot.ConnectMarkers {
		var x, y []float64
		for i := range lo {
			if ignore != nil && ignore[i] {
				continue
			}
			x = append(x, 0.5*(lo[i]+hi[i]))
			y = append(y, val[i])
		}
		if len(x) == 0 {
			return nil
		}
		return c.points(f, x, y)
	}
	for _, r := range runs(len(lo), ignore) {
		if err := c.r.PlotHistogram(lo[r[0]:r[1]], hi[r[0]:r[1]], val[r[0]:r[1]]); err != nil {
			return err
		}
	}
	return nil
}

// emitErrorbars draws the error bar of every nth bin at the bin centres,
// one call per run of drawn bins.
func (c *Collection) emitErrorbars(lo, hi, top, bot []float64, ignore []bool, n int, termLen float64) error {
	for _, r := range runs(len(lo), ignore) {
		var x, t, b []float64
		for i := r[0]; i < r[1]; i++ {
			if i%n != 0 {
				continue
			}
			x = append(x, 0.5*(lo[i]+hi[i]))
			t = append(t, top[i])
			b = append(b, bot[i])
		}
		if len(x) == 0 {
			continue
		}
		if err := c.r.PlotYErrorBar(x, t, b, termLen); err != nil {
			return err
		}
	}
	return nil
}

// runs returns the [start, end) index ranges of consecutive bins that are
// not ignored.
func runs(n int, ignore []bool) [][2]int {
	var out [][2]int
	start := -1
	for i := 0; i <= n; i++ {
		skip := i == n || ignore != nil && ignore[i]
		switch {
		case skip && start >= 0:
			out = append(out, [2]int{start, i})
			start = -1
		case !skip && start < 0:
			start = i
		}
	}
	return out
}

// logValues returns v in log10 scale, NaN where v has no logarithm.
func logValues(v []float64, on bool) []float64 {
	if !on {
		return v
	}
	out := make([]float64, len(v))
	for i, x := range v {
		if x > 0 {
			out[i] = math.Log10(x)
		} else {
			out[i] = math.NaN()
		}
	}
	return out
}

// convertBins re-expresses the bin edges of h in unit to. Bins are
// reversed when the conversion reverses the order of values.
func convertBins(h Hist, to units.Unit) (Hist, error) {
	if h.Unit == to {
		return h, nil
	}
	n := len(h.Lo)
	out := Hist{
		Lo:   make([]float64, n),
		Hi:   make([]float64, n),
		Val:  slices.Clone(h.Val),
		Err:  slices.Clone(h.Err),
		Unit: to,
	}
	if h.Ignore != nil {
		out.Ignore = slices.Clone(h.Ignore)
	}
	for i := range h.Lo {
		lo, err := units.Convert(h.Lo[i], h.Unit, to)
		if err != nil {
			return Hist{}, fmt.Errorf("%w: bin %d: %v", plot.ErrConfig, i, err)
		}
		hi, err := units.Convert(h.Hi[i], h.Unit, to)
		if err != nil {
			return Hist{}, fmt.Errorf("%w: bin %d: %v", plot.ErrConfig, i, err)
		}
		out.Lo[i], out.Hi[i] = lo, hi
	}
	if !units.Reverses(h.Unit, to) {
		return out, nil
	}
	out.Lo, out.Hi = out.Hi, out.Lo
	slices.Reverse(out.Lo)
	slices.Reverse(out.Hi)
	slices.Reverse(out.Val)
	slices.Reverse(out.Err)
	slices.Reverse(out.Ignore)
	return out, nil
}

// binDensity divides values and errors by the bin width.
func binDensity(h Hist) Hist {
	val := make([]float64, len(h.Val))
	var errs []float64
	if h.Err != nil {
		errs = make([]float64, len(h.Err))
	}
	for i := range h.Val {
		width := math.Abs(h.Hi[i] - h.Lo[i])
		if width == 0 {
			val[i] = math.NaN()
			if errs != nil {
				errs[i] = math.NaN()
			}
			continue
		}
		val[i] = h.Val[i] / width
		if errs != nil {
			errs[i] = h.Err[i] / width
		}
	}
	h.Val, h.Err = val, errs
	return h
}
