package plot

import "fmt"

// SetColor sets the current color and the start of the color cycle.
func (f *Format) SetColor(c int) error {
	if c < 0 {
		return fmt.Errorf("%w: color %d", ErrConfig, c)
	}
	f.color, f.startColor = c, c
	return nil
}

func (f *Format) Color() int      { return f.color }
func (f *Format) StartColor() int { return f.startColor }

// SetLineStyle sets the current line style and the start of the line
// style cycle.
func (f *Format) SetLineStyle(s int) error {
	if s < 1 {
		return fmt.Errorf("%w: line style %d", ErrConfig, s)
	}
	f.lineStyle, f.startLineStyle = s, s
	return nil
}

func (f *Format) LineStyle() int      { return f.lineStyle }
func (f *Format) StartLineStyle() int { return f.startLineStyle }

func (f *Format) SetLineWidth(w int) error {
	if w < 1 {
		return fmt.Errorf("%w: line width %d", ErrConfig, w)
	}
	f.lineWidth = w
	return nil
}

func (f *Format) LineWidth() int { return f.lineWidth }

func (f *Format) SetFrameLineWidth(w int) error {
	if w < 1 {
		return fmt.Errorf("%w: frame line width %d", ErrConfig, w)
	}
	f.frameLineWidth = w
	return nil
}

func (f *Format) FrameLineWidth() int { return f.frameLineWidth }

func (f *Format) SetPointStyle(s int) { f.pointStyle = s }
func (f *Format) PointStyle() int     { return f.pointStyle }

func (f *Format) SetPointSize(s float64) error {
	if !(s > 0) {
		return fmt.Errorf("%w: point size %g", ErrConfig, s)
	}
	f.pointSize = s
	return nil
}

func (f *Format) PointSize() float64 { return f.pointSize }

func (f *Format) SetCharHeight(h float64) error {
	if !(h > 0) {
		return fmt.Errorf("%w: char height %g", ErrConfig, h)
	}
	f.charHeight = h
	return nil
}

func (f *Format) CharHeight() float64 { return f.charHeight }

// SetStyleMeansColor selects whether auto-increment cycles colors (true)
// or line styles (false).
func (f *Format) SetStyleMeansColor(v bool) { f.styleMeansColor = v }
func (f *Format) StyleMeansColor() bool     { return f.styleMeansColor }

// SetConnectPoints selects lines only (-1), markers only (0) or both (1).
func (f *Format) SetConnectPoints(n int) error {
	if n < ConnectLines || n > ConnectBoth {
		return fmt.Errorf("%w: connect points %d", ErrConfig, n)
	}
	f.connectPoints = n
	return nil
}

func (f *Format) ConnectPoints() int { return f.connectPoints }

// SetErrorbars draws error bars on every nth bin (0 disables them) with
// terminals termLen long.
func (f *Format) SetErrorbars(n int, termLen float64) error {
	if n < 0 || termLen < 0 {
		return fmt.Errorf("%w: error bars %d term %g", ErrConfig, n, termLen)
	}
	f.useErrorbars = n
	f.ebarTermLength = termLen
	return nil
}

func (f *Format) Errorbars() (n int, termLen float64) { return f.useErrorbars, f.ebarTermLength }

func (f *Format) SetBinDensity(v bool) { f.useBinDensity = v }
func (f *Format) BinDensity() bool     { return f.useBinDensity }

// SetLabels sets the axis labels and the title.
func (f *Format) SetLabels(x, y, title string) {
	f.xlabel, f.ylabel, f.tlabel = x, y, title
	f.labelType = LabelUser
}

func (f *Format) Labels() (x, y, title string) { return f.xlabel, f.ylabel, f.tlabel }
func (f *Format) LabelType() LabelType         { return f.labelType }

// AxisLabels returns the labels to draw, substituting defX and defY for
// empty axis labels while the labels are still default-pending.
func (f *Format) AxisLabels(defX, defY string) (x, y, title string) {
	x, y, title = f.xlabel, f.ylabel, f.tlabel
	if f.labelType == LabelDefault {
		if x == "" {
			x = defX
		}
		if y == "" {
			y = defY
		}
	}
	return x, y, title
}

// SetAxisOpts sets the axis option strings; see render.AxisOpt.
func (f *Format) SetAxisOpts(xopt, yopt string) {
	f.xopt, f.yopt = xopt, yopt
	f.axisSetByUser = true
}

// ResetAxisOpts derives both option strings from a device default,
// adjusted to the scale of each axis. Options set with SetAxisOpts are kept.
func (f *Format) ResetAxisOpts(base string) {
	if f.axisSetByUser || base == "" {
		return
	}
	f.xopt = f.configureAxis(base, f.logx)
	f.yopt = f.configureAxis(base, f.logy)
}

func (f *Format) AxisOpts() (xopt, yopt string) { return f.xopt, f.yopt }
