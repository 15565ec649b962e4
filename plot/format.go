// Package plot holds the per-window plot configuration and the viewport
// layout shared by every plot window.
package plot

import (
	"fmt"
	"math"

	"plotwin/plot/render"
	"plotwin/plot/units"
)

// Axis selects the X or Y axis.
type Axis uint8

const (
	X Axis = iota
	Y
)

func (a Axis) String() string {
	if a == X {
		return "x"
	}
	return "y"
}

// Connect modes for ConnectPoints.
const (
	ConnectLines   = -1
	ConnectMarkers = 0
	ConnectBoth    = 1
)

// LabelType tells whether axis labels were supplied by the user or are
// still waiting for a default.
type LabelType uint8

const (
	LabelDefault LabelType = iota
	LabelUser
)

// AxisConfigurer rewrites an axis option string for a log or linear axis.
// *render.Registry implements it.
type AxisConfigurer interface {
	ConfigureAxis(opt string, isLog, hasNumbers bool) (string, error)
}

// Cycle controls style auto-increment.
type Cycle struct {
	Enabled       bool
	MaxColors     int
	MaxLineStyles int
}

// DefaultCycle is the auto-increment configuration of a new collection.
var DefaultCycle = Cycle{Enabled: true, MaxColors: 16, MaxLineStyles: render.MaxLineStyles}

// Format is the rendering configuration of one window. Range bounds are
// NaN when absent and are stored in the axis's current scale: log10 values
// on a log axis, in the unit recorded by PlottedXUnit on the X axis.
type Format struct {
	xmin, xmax float64
	ymin, ymax float64
	logx, logy bool

	xUnit             units.Unit
	plottedXUnit      units.Unit
	xUnitSetByUser    bool
	okToConvertXRange bool

	color, startColor         int
	lineStyle, startLineStyle int
	lineWidth, frameLineWidth int
	pointStyle                int
	pointSize                 float64
	charHeight                float64
	styleMeansColor           bool

	connectPoints  int
	useErrorbars   int
	ebarTermLength float64
	useBinDensity  bool

	xlabel, ylabel, tlabel string
	labelType              LabelType
	xopt, yopt             string
	axisSetByUser          bool

	rendered bool
	owner    int
	axes     AxisConfigurer
}

// NewFormat returns a Format holding the built-in defaults.
func NewFormat() *Format {
	return &Format{
		xmin:            math.NaN(),
		xmax:            math.NaN(),
		ymin:            math.NaN(),
		ymax:            math.NaN(),
		xUnit:           units.Angstrom,
		plottedXUnit:    units.Angstrom,
		color:           1,
		startColor:      1,
		lineStyle:       1,
		startLineStyle:  1,
		lineWidth:       1,
		frameLineWidth:  1,
		pointStyle:      1,
		pointSize:       1,
		charHeight:      1,
		styleMeansColor: true,
		connectPoints:   ConnectLines,
		ebarTermLength:  1,
		xopt:            render.DefaultAxisOpt,
		yopt:            render.DefaultAxisOpt,
	}
}

// Clone returns a detached copy. The rendered flag and the owner are not
// copied.
func (f *Format) Clone() *Format {
	g := *f
	g.rendered = false
	g.owner = 0
	g.axes = nil
	return &g
}

// Bind records the owning window and the axis option source.
func (f *Format) Bind(owner int, axes AxisConfigurer) {
	f.owner = owner
	f.axes = axes
}

// Owner returns the id of the owning window, or 0 for a detached copy.
func (f *Format) Owner() int { return f.owner }

// Rendered reports whether anything was drawn with this Format.
func (f *Format) Rendered() bool { return f.rendered }

// SetRendered sets the rendered flag.
func (f *Format) SetRendered(v bool) { f.rendered = v }

func absent(v float64) bool { return math.IsNaN(v) }

func (f *Format) bounds(a Axis) (lo, hi *float64, log bool) {
	if a == X {
		return &f.xmin, &f.xmax, f.logx
	}
	return &f.ymin, &f.ymax, f.logy
}

// SetRange sets both bounds of an axis; NaN clears a bound so it is
// derived from the data.
func (f *Format) SetRange(a Axis, min, max float64) error {
	lo, hi, log := f.bounds(a)
	if math.IsInf(min, 0) || math.IsInf(max, 0) {
		return fmt.Errorf("%w: %v range [%g,%g]", ErrConfig, a, min, max)
	}
	nlo, nhi := min, max
	if log {
		if !absent(min) && min <= 0 || !absent(max) && max <= 0 {
			return fmt.Errorf("%w: %v range [%g,%g] on a log axis", ErrRange, a, min, max)
		}
		nlo, nhi = math.Log10(min), math.Log10(max)
	}
	if !absent(nlo) && !absent(nhi) && nlo > nhi {
		return fmt.Errorf("%w: %v range min %g > max %g", ErrConfig, a, min, max)
	}
	*lo, *hi = nlo, nhi
	if a == X {
		if absent(nlo) || absent(nhi) {
			f.okToConvertXRange = false
		}
		f.plottedXUnit = f.xUnit
	}
	return nil
}

// Range returns the bounds of an axis in linear values, NaN when absent.
func (f *Format) Range(a Axis) (min, max float64) {
	lo, hi, log := f.bounds(a)
	if !log {
		return *lo, *hi
	}
	return math.Pow(10, *lo), math.Pow(10, *hi)
}

// Bounds returns the stored bounds of an axis, log10 values on a log axis.
func (f *Format) Bounds(a Axis) (min, max float64) {
	lo, hi, _ := f.bounds(a)
	return *lo, *hi
}

// Log reports whether an axis is log-scaled.
func (f *Format) Log(a Axis) bool {
	_, _, log := f.bounds(a)
	return log
}

// SetLog switches an axis between linear and log scale, re-expressing the
// stored bounds. Bounds that have no image in the new scale are dropped.
func (f *Format) SetLog(a Axis, on bool) {
	lo, hi, log := f.bounds(a)
	if log == on {
		return
	}
	nlo, nhi := rescale(*lo, on), rescale(*hi, on)
	dropped := absent(nlo) && !absent(*lo) || absent(nhi) && !absent(*hi)
	*lo, *hi = nlo, nhi
	if a == X {
		f.logx = on
		f.xopt = f.configureAxis(f.xopt, on)
		if dropped {
			f.okToConvertXRange = false
		}
		return
	}
	f.logy = on
	f.yopt = f.configureAxis(f.yopt, on)
}

func rescale(v float64, toLog bool) float64 {
	if absent(v) {
		return v
	}
	if toLog {
		if v <= 0 {
			return math.NaN()
		}
		return math.Log10(v)
	}
	p := math.Pow(10, v)
	if math.IsInf(p, 0) {
		return math.NaN()
	}
	return p
}

func (f *Format) configureAxis(opt string, isLog bool) string {
	numbers := render.ParseAxisOpt(opt).Numbers
	if f.axes != nil {
		if s, err := f.axes.ConfigureAxis(opt, isLog, numbers); err == nil && s != "" {
			return s
		}
	}
	return render.ConfigureAxis(opt, isLog, numbers)
}

// SetUnit sets the X unit. Stored X bounds are converted lazily, the next
// time data are drawn (see SyncXUnit).
func (f *Format) SetUnit(u units.Unit) error {
	f.xUnitSetByUser = true
	if u == f.xUnit {
		return nil
	}
	if !u.Valid() {
		return fmt.Errorf("%w: %v", ErrConfig, u)
	}
	f.xUnit = u
	return nil
}

// AdoptUnit switches the X unit to that of incoming data unless the user
// has chosen a unit. It does not mark the unit as user-set.
func (f *Format) AdoptUnit(u units.Unit) error {
	if f.xUnitSetByUser || u == f.xUnit {
		return nil
	}
	if !u.Valid() {
		return fmt.Errorf("%w: %v", ErrConfig, u)
	}
	f.xUnit = u
	return nil
}

// Unit returns the X unit.
func (f *Format) Unit() units.Unit { return f.xUnit }

// UnitSetByUser reports whether SetUnit was ever called.
func (f *Format) UnitSetByUser() bool { return f.xUnitSetByUser }

// PlottedXUnit returns the unit the stored X bounds are expressed in.
func (f *Format) PlottedXUnit() units.Unit { return f.plottedXUnit }

// SyncXUnit re-expresses the stored X bounds in the current unit. Bounds
// are converted only once data have been drawn in their unit; before
// that they are taken to be in the current unit already. Conversions that
// reverse the order of values swap the bounds.
func (f *Format) SyncXUnit() {
	from, to := f.plottedXUnit, f.xUnit
	if from == to {
		return
	}
	f.plottedXUnit = to
	if !f.okToConvertXRange {
		return
	}
	conv := func(v float64) float64 {
		if absent(v) {
			return v
		}
		if f.logx {
			v = math.Pow(10, v)
		}
		c, err := units.Convert(v, from, to)
		if err != nil || math.IsInf(c, 0) || math.IsNaN(c) {
			return math.NaN()
		}
		if f.logx {
			return rescale(c, true)
		}
		return c
	}
	lo, hi := conv(f.xmin), conv(f.xmax)
	if units.Reverses(from, to) || !absent(lo) && !absent(hi) && lo > hi {
		lo, hi = hi, lo
	}
	f.xmin, f.xmax = lo, hi
}

// MarkCurvePlotted records that a curve was drawn: curves carry no unit,
// so the X bounds may no longer be unit-converted.
func (f *Format) MarkCurvePlotted() {
	f.okToConvertXRange = false
}

// MarkHistogramPlotted records that data were drawn in the current unit.
func (f *Format) MarkHistogramPlotted() {
	f.plottedXUnit = f.xUnit
	f.okToConvertXRange = true
}

// RestartStyleCycle resets the current color and line style to the start
// of the cycle.
func (f *Format) RestartStyleCycle() {
	f.color = f.startColor
	f.lineStyle = f.startLineStyle
}

// AutoIncrementStyle advances the cycled channel (color or line style)
// and makes it the new start of the cycle.
func (f *Format) AutoIncrementStyle(c Cycle) {
	if !c.Enabled {
		return
	}
	if f.styleMeansColor {
		if c.MaxColors > 0 {
			f.color = f.color%c.MaxColors + 1
		}
		f.startColor = f.color
		return
	}
	if c.MaxLineStyles > 0 {
		f.lineStyle = f.lineStyle%c.MaxLineStyles + 1
	}
	f.startLineStyle = f.lineStyle
}
