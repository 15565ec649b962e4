package plot

import (
	"math"

	"plotwin/plot/units"
)

// Options is the full user-visible configuration of a Format, for bulk
// reads and writes. Range bounds are linear values, NaN when absent.
type Options struct {
	XMin, XMax float64
	YMin, YMax float64
	LogX, LogY bool
	XUnit      units.Unit

	Color           int
	LineStyle       int
	LineWidth       int
	FrameLineWidth  int
	PointStyle      int
	PointSize       float64
	CharHeight      float64
	StyleMeansColor bool

	ConnectPoints  int
	UseErrorbars   int
	EbarTermLength float64
	UseBinDensity  bool

	XLabel, YLabel, Title string
	XOpt, YOpt            string
}

// Options returns the current configuration.
func (f *Format) Options() Options {
	o := Options{
		LogX:            f.logx,
		LogY:            f.logy,
		XUnit:           f.xUnit,
		Color:           f.color,
		LineStyle:       f.lineStyle,
		LineWidth:       f.lineWidth,
		FrameLineWidth:  f.frameLineWidth,
		PointStyle:      f.pointStyle,
		PointSize:       f.pointSize,
		CharHeight:      f.charHeight,
		StyleMeansColor: f.styleMeansColor,
		ConnectPoints:   f.connectPoints,
		UseErrorbars:    f.useErrorbars,
		EbarTermLength:  f.ebarTermLength,
		UseBinDensity:   f.useBinDensity,
		XLabel:          f.xlabel,
		YLabel:          f.ylabel,
		Title:           f.tlabel,
		XOpt:            f.xopt,
		YOpt:            f.yopt,
	}
	o.XMin, o.XMax = f.Range(X)
	o.YMin, o.YMax = f.Range(Y)
	return o
}

// SetOptions applies o as a whole. On error the Format is left unchanged.
func (f *Format) SetOptions(o Options) error {
	g := *f
	xo0, yo0 := g.AxisOpts()
	g.SetLog(X, o.LogX)
	g.SetLog(Y, o.LogY)
	if o.XUnit != g.xUnit {
		if err := g.SetUnit(o.XUnit); err != nil {
			return err
		}
	}
	if lo, hi := g.Range(X); !sameBound(lo, o.XMin) || !sameBound(hi, o.XMax) {
		if err := g.SetRange(X, o.XMin, o.XMax); err != nil {
			return err
		}
	}
	if lo, hi := g.Range(Y); !sameBound(lo, o.YMin) || !sameBound(hi, o.YMax) {
		if err := g.SetRange(Y, o.YMin, o.YMax); err != nil {
			return err
		}
	}
	if o.Color != g.color {
		if err := g.SetColor(o.Color); err != nil {
			return err
		}
	}
	if o.LineStyle != g.lineStyle {
		if err := g.SetLineStyle(o.LineStyle); err != nil {
			return err
		}
	}
	for _, err := range []error{
		g.SetLineWidth(o.LineWidth),
		g.SetFrameLineWidth(o.FrameLineWidth),
		g.SetPointSize(o.PointSize),
		g.SetCharHeight(o.CharHeight),
		g.SetConnectPoints(o.ConnectPoints),
		g.SetErrorbars(o.UseErrorbars, o.EbarTermLength),
	} {
		if err != nil {
			return err
		}
	}
	g.SetPointStyle(o.PointStyle)
	g.SetStyleMeansColor(o.StyleMeansColor)
	g.SetBinDensity(o.UseBinDensity)
	if o.XLabel != g.xlabel || o.YLabel != g.ylabel || o.Title != g.tlabel {
		g.SetLabels(o.XLabel, o.YLabel, o.Title)
	}
	// An option string equal to the one read out is not a user change; the
	// SetLog calls above may already have re-derived it.
	if o.XOpt != xo0 || o.YOpt != yo0 {
		xo, yo := g.AxisOpts()
		if o.XOpt != xo0 {
			xo = o.XOpt
		}
		if o.YOpt != yo0 {
			yo = o.YOpt
		}
		g.SetAxisOpts(xo, yo)
	}
	*f = g
	return nil
}

func sameBound(a, b float64) bool {
	if math.IsNaN(a) || math.IsNaN(b) {
		return math.IsNaN(a) && math.IsNaN(b)
	}
	return math.Abs(a-b) <= 1e-12*math.Max(math.Abs(a), math.Abs(b))
}
