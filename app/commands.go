package app

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"plotwin/plot"
	"plotwin/plot/units"
	"plotwin/plot/wm"
)

func newCommands() (*registry, error) {
	r := newRegistry()
	for _, cmd := range []command{
		{Name: "help", Aliases: []string{"?"}, Usage: "help", Desc: "List commands.", Run: cmdHelp},
		{Name: "quit", Aliases: []string{"exit"}, Usage: "quit", Desc: "Close all windows and stop.", Run: cmdQuit},
		{Name: "backend", Usage: "backend [fb|file|none]", Desc: "Show or replace the backend.", Run: cmdBackend},

		{Name: "open", Usage: "open [device] [nx ny]", Desc: "Open a window with an nx by ny panel grid.", Run: cmdOpen},
		{Name: "close", Usage: "close [id]", Desc: "Close a window (default: focused).", Run: cmdClose},
		{Name: "copy", Usage: "copy device [id]", Desc: "Open a window with the settings of another.", Run: cmdCopy},
		{Name: "select", Usage: "select id", Desc: "Focus a window.", Run: cmdSelect},
		{Name: "erase", Usage: "erase [id]", Desc: "Clear a window.", Run: cmdErase},
		{Name: "resize", Usage: "resize width aspect", Desc: "Set the device size.", Run: cmdResize},
		{Name: "windows", Aliases: []string{"ls"}, Usage: "windows", Desc: "List windows.", Run: cmdWindows},

		{Name: "xrange", Usage: "xrange [min|* max|*]", Desc: "Show or set the X range (* = from data).", Run: rangeCmd(plot.X)},
		{Name: "yrange", Usage: "yrange [min|* max|*]", Desc: "Show or set the Y range (* = from data).", Run: rangeCmd(plot.Y)},
		{Name: "xlog", Usage: "xlog on|off", Desc: "Log-scale the X axis.", Run: logCmd(plot.X)},
		{Name: "ylog", Usage: "ylog on|off", Desc: "Log-scale the Y axis.", Run: logCmd(plot.Y)},
		{Name: "unit", Usage: "unit [name]", Desc: "Show or set the X unit.", Run: cmdUnit},

		{Name: "color", Usage: "color n", Desc: "Set the color.", Run: intCmd((*plot.Format).SetColor)},
		{Name: "linestyle", Usage: "linestyle n", Desc: "Set the line style.", Run: intCmd((*plot.Format).SetLineStyle)},
		{Name: "linewidth", Usage: "linewidth n", Desc: "Set the line width.", Run: intCmd((*plot.Format).SetLineWidth)},
		{Name: "framewidth", Usage: "framewidth n", Desc: "Set the frame line width.", Run: intCmd((*plot.Format).SetFrameLineWidth)},
		{Name: "pointstyle", Usage: "pointstyle n", Desc: "Set the marker.", Run: intCmd(func(f *plot.Format, n int) error {
			f.SetPointStyle(n)
			return nil
		})},
		{Name: "pointsize", Usage: "pointsize x", Desc: "Set the marker size.", Run: floatCmd((*plot.Format).SetPointSize)},
		{Name: "charsize", Usage: "charsize x", Desc: "Set the character height.", Run: floatCmd((*plot.Format).SetCharHeight)},
		{Name: "connect", Usage: "connect lines|markers|both", Desc: "Choose how curve points are drawn.", Run: cmdConnect},
		{Name: "errorbars", Usage: "errorbars n [term]", Desc: "Draw error bars on every nth bin (0 = off).", Run: cmdErrorbars},
		{Name: "density", Usage: "density on|off", Desc: "Divide histogram values by bin width.", Run: cmdDensity},
		{Name: "cycle", Usage: "cycle color|style", Desc: "Choose what advances between plots.", Run: cmdCycle},
		{Name: "xlabel", Usage: "xlabel text", Desc: "Set the X label.", Run: labelCmd(0)},
		{Name: "ylabel", Usage: "ylabel text", Desc: "Set the Y label.", Run: labelCmd(1)},
		{Name: "title", Usage: "title text", Desc: "Set the title.", Run: labelCmd(2)},
		{Name: "box", Usage: "box xopt yopt", Desc: "Set the axis options.", Run: cmdBox},

		{Name: "viewport", Usage: "viewport x0 x1 y0 y1", Desc: "Set the outer viewport.", Run: cmdViewport},
		{Name: "multiplot", Usage: "multiplot w1 [w2 ...]", Desc: "Stack rows with relative heights.", Run: cmdMultiplot},
		{Name: "grid", Usage: "grid nx ny", Desc: "Split the viewport into panes.", Run: cmdGrid},
		{Name: "pane", Usage: "pane i", Desc: "Draw the next overlay into pane i.", Run: cmdPane},

		{Name: "curve", Aliases: []string{"plot"}, Usage: "curve file.csv [overlay] [style=n]", Desc: "Draw x,y[,symbol] columns.", Run: cmdCurve},
		{Name: "hist", Usage: "hist file.csv [overlay] [style=n] [unit=u]", Desc: "Draw lo,hi,value[,err[,ignore]] columns.", Run: cmdHist},
		{Name: "text", Usage: "text x y string [angle [justify]]", Desc: "Write text at world coordinates.", Run: cmdText},
		{Name: "mtext", Usage: "mtext edge offset pos justify string", Desc: "Write text beside the viewport.", Run: cmdMtext},
		{Name: "cursor", Usage: "cursor point|x|y|box", Desc: "Read positions with the cursor.", Run: cmdCursor},
		{Name: "limits", Usage: "limits", Desc: "Show the world limits of the last plot.", Run: cmdLimits},
		{Name: "options", Usage: "options", Desc: "Show the focused window settings.", Run: cmdOptions},
	} {
		if err := r.register(cmd); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func usage(cmd string) error {
	return fmt.Errorf("%w: usage: %s", plot.ErrConfig, cmd)
}

func parseFloat(s string) (float64, error) {
	if s == "*" {
		return math.NaN(), nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: bad number %q", plot.ErrConfig, s)
	}
	return v, nil
}

func parseFloats(args []string) ([]float64, error) {
	out := make([]float64, len(args))
	for i, a := range args {
		v, err := parseFloat(a)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func parseInt(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: bad integer %q", plot.ErrConfig, s)
	}
	return n, nil
}

func parseID(s string) (wm.ID, error) {
	n, err := parseInt(s)
	return wm.ID(n), err
}

func parseBool(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "on", "yes", "true", "1":
		return true, nil
	case "off", "no", "false", "0":
		return false, nil
	}
	return false, fmt.Errorf("%w: want on or off, got %q", plot.ErrConfig, s)
}

func parseConnect(s string) (int, error) {
	switch strings.ToLower(s) {
	case "lines", "-1":
		return plot.ConnectLines, nil
	case "markers", "points", "0":
		return plot.ConnectMarkers, nil
	case "both", "1":
		return plot.ConnectBoth, nil
	}
	return 0, fmt.Errorf("%w: connect %q", plot.ErrConfig, s)
}

func connectName(n int) string {
	switch n {
	case plot.ConnectLines:
		return "lines"
	case plot.ConnectMarkers:
		return "markers"
	}
	return "both"
}

func fmtBound(v float64) string {
	if math.IsNaN(v) {
		return "*"
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func cmdHelp(s *Session, _ []string) error {
	for _, name := range s.cmds.names() {
		cmd, _ := s.cmds.resolve(name)
		desc := cmd.Desc
		if len(cmd.Aliases) > 0 {
			desc += " Also: " + strings.Join(cmd.Aliases, ", ") + "."
		}
		s.printf("%-40s %s\n", cmd.Usage, desc)
	}
	return nil
}

func cmdQuit(s *Session, _ []string) error {
	s.shutdown()
	return ErrQuit
}

func cmdBackend(s *Session, args []string) error {
	switch len(args) {
	case 0:
		s.printf("%s\n", s.backend)
		return nil
	case 1:
		return s.install(args[0])
	}
	return usage("backend [fb|file|none]")
}

func cmdOpen(s *Session, args []string) error {
	device := ""
	if len(args) == 1 || len(args) == 3 {
		device, args = args[0], args[1:]
	}
	nx, ny := 1, 1
	switch len(args) {
	case 0:
	case 2:
		var err error
		if nx, err = parseInt(args[0]); err != nil {
			return err
		}
		if ny, err = parseInt(args[1]); err != nil {
			return err
		}
	default:
		return usage("open [device] [nx ny]")
	}
	id, err := s.wm.Open(device, nx, ny)
	if err != nil {
		return err
	}
	s.printf("%d\n", id)
	return nil
}

// optionalID parses the id argument of commands that default to the
// focused window.
func optionalID(args []string, use string) (wm.ID, error) {
	switch len(args) {
	case 0:
		return wm.None, nil
	case 1:
		return parseID(args[0])
	}
	return wm.None, usage(use)
}

func cmdClose(s *Session, args []string) error {
	id, err := optionalID(args, "close [id]")
	if err != nil {
		return err
	}
	return s.wm.Close(id)
}

func cmdCopy(s *Session, args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return usage("copy device [id]")
	}
	src, err := optionalID(args[1:], "copy device [id]")
	if err != nil {
		return err
	}
	id, err := s.wm.Copy(args[0], src)
	if err != nil {
		return err
	}
	s.printf("%d\n", id)
	return nil
}

func cmdSelect(s *Session, args []string) error {
	if len(args) != 1 {
		return usage("select id")
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	return s.wm.Select(id)
}

func cmdErase(s *Session, args []string) error {
	id, err := optionalID(args, "erase [id]")
	if err != nil {
		return err
	}
	return s.wm.Erase(id)
}

func cmdResize(s *Session, args []string) error {
	if len(args) != 2 {
		return usage("resize width aspect")
	}
	v, err := parseFloats(args)
	if err != nil {
		return err
	}
	return s.wm.Resize(v[0], v[1])
}

func cmdWindows(s *Session, _ []string) error {
	focus := s.wm.Focus()
	ids := s.wm.Windows()
	if focus == wm.Deferred {
		ids = append(ids, wm.Deferred)
	}
	for _, id := range ids {
		w, err := s.wm.Window(id)
		if err != nil {
			return err
		}
		mark := " "
		if id == focus {
			mark = "*"
		}
		nx, ny, _ := w.Grid()
		s.printf("%s %d %s %s %dx%d pane %d\n", mark, id, w.Device(), w.Kind(), nx, ny, w.CurrentPane())
	}
	return nil
}

func rangeCmd(a plot.Axis) cmdFunc {
	return func(s *Session, args []string) error {
		f := s.wm.CurrentFormat()
		switch len(args) {
		case 0:
			lo, hi := f.Range(a)
			s.printf("%s %s\n", fmtBound(lo), fmtBound(hi))
			return nil
		case 2:
			v, err := parseFloats(args)
			if err != nil {
				return err
			}
			return f.SetRange(a, v[0], v[1])
		}
		return usage(a.String() + "range [min|* max|*]")
	}
}

func logCmd(a plot.Axis) cmdFunc {
	return func(s *Session, args []string) error {
		if len(args) != 1 {
			return usage(a.String() + "log on|off")
		}
		on, err := parseBool(args[0])
		if err != nil {
			return err
		}
		s.wm.CurrentFormat().SetLog(a, on)
		return nil
	}
}

func cmdUnit(s *Session, args []string) error {
	f := s.wm.CurrentFormat()
	switch len(args) {
	case 0:
		s.printf("%s\n", f.Unit())
		return nil
	case 1:
		u, err := units.Parse(args[0])
		if err != nil {
			return fmt.Errorf("%w: %v", plot.ErrConfig, err)
		}
		return f.SetUnit(u)
	}
	return usage("unit [name]")
}

func intCmd(set func(*plot.Format, int) error) cmdFunc {
	return func(s *Session, args []string) error {
		if len(args) != 1 {
			return usage("n")
		}
		n, err := parseInt(args[0])
		if err != nil {
			return err
		}
		return set(s.wm.CurrentFormat(), n)
	}
}

func floatCmd(set func(*plot.Format, float64) error) cmdFunc {
	return func(s *Session, args []string) error {
		if len(args) != 1 {
			return usage("x")
		}
		v, err := parseFloat(args[0])
		if err != nil {
			return err
		}
		return set(s.wm.CurrentFormat(), v)
	}
}

func cmdConnect(s *Session, args []string) error {
	if len(args) != 1 {
		return usage("connect lines|markers|both")
	}
	n, err := parseConnect(args[0])
	if err != nil {
		return err
	}
	return s.wm.CurrentFormat().SetConnectPoints(n)
}

func cmdErrorbars(s *Session, args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return usage("errorbars n [term]")
	}
	f := s.wm.CurrentFormat()
	n, err := parseInt(args[0])
	if err != nil {
		return err
	}
	_, term := f.Errorbars()
	if len(args) == 2 {
		if term, err = parseFloat(args[1]); err != nil {
			return err
		}
	}
	return f.SetErrorbars(n, term)
}

func cmdDensity(s *Session, args []string) error {
	if len(args) != 1 {
		return usage("density on|off")
	}
	on, err := parseBool(args[0])
	if err != nil {
		return err
	}
	s.wm.CurrentFormat().SetBinDensity(on)
	return nil
}

func cmdCycle(s *Session, args []string) error {
	if len(args) != 1 {
		return usage("cycle color|style")
	}
	switch args[0] {
	case "color":
		s.wm.CurrentFormat().SetStyleMeansColor(true)
	case "style":
		s.wm.CurrentFormat().SetStyleMeansColor(false)
	default:
		return usage("cycle color|style")
	}
	return nil
}

func labelCmd(i int) cmdFunc {
	return func(s *Session, args []string) error {
		f := s.wm.CurrentFormat()
		l := [3]string{}
		l[0], l[1], l[2] = f.Labels()
		l[i] = strings.Join(args, " ")
		f.SetLabels(l[0], l[1], l[2])
		return nil
	}
}

func cmdBox(s *Session, args []string) error {
	if len(args) != 2 {
		return usage("box xopt yopt")
	}
	s.wm.CurrentFormat().SetAxisOpts(strings.ToUpper(args[0]), strings.ToUpper(args[1]))
	return nil
}

func cmdViewport(s *Session, args []string) error {
	if len(args) != 4 {
		return usage("viewport x0 x1 y0 y1")
	}
	v, err := parseFloats(args)
	if err != nil {
		return err
	}
	return s.wm.SetOuterViewport(plot.Rect{XMin: v[0], XMax: v[1], YMin: v[2], YMax: v[3]})
}

func cmdMultiplot(s *Session, args []string) error {
	v, err := parseFloats(args)
	if err != nil {
		return err
	}
	return s.wm.Multiplot(v)
}

func cmdGrid(s *Session, args []string) error {
	if len(args) != 2 {
		return usage("grid nx ny")
	}
	nx, err := parseInt(args[0])
	if err != nil {
		return err
	}
	ny, err := parseInt(args[1])
	if err != nil {
		return err
	}
	return s.wm.SetGrid(nx, ny)
}

func cmdPane(s *Session, args []string) error {
	if len(args) != 1 {
		return usage("pane i")
	}
	i, err := parseInt(args[0])
	if err != nil {
		return err
	}
	return s.wm.SelectPane(i)
}

// drawArgs parses the words after the file name of curve and hist.
func drawArgs(args []string, allowUnit bool) (o wm.DrawOpts, u *units.Unit, err error) {
	for _, a := range args {
		key, val, _ := strings.Cut(a, "=")
		switch {
		case a == "overlay":
			o.Overlay = true
		case key == "style":
			if o.Style, err = parseInt(val); err != nil {
				return o, nil, err
			}
		case key == "unit" && allowUnit:
			v, err := units.Parse(val)
			if err != nil {
				return o, nil, fmt.Errorf("%w: %v", plot.ErrConfig, err)
			}
			u = &v
		default:
			return o, nil, fmt.Errorf("%w: unknown option %q", plot.ErrConfig, a)
		}
	}
	return o, u, nil
}

func cmdCurve(s *Session, args []string) error {
	if len(args) < 1 {
		return usage("curve file.csv [overlay] [style=n]")
	}
	o, _, err := drawArgs(args[1:], false)
	if err != nil {
		return err
	}
	cv, err := loadCurve(args[0])
	if err != nil {
		return err
	}
	return s.wm.Curve(cv, o)
}

func cmdHist(s *Session, args []string) error {
	if len(args) < 1 {
		return usage("hist file.csv [overlay] [style=n] [unit=u]")
	}
	o, u, err := drawArgs(args[1:], true)
	if err != nil {
		return err
	}
	h, err := loadHist(args[0])
	if err != nil {
		return err
	}
	h.Unit = s.wm.CurrentFormat().Unit()
	if u != nil {
		h.Unit = *u
	}
	return s.wm.Histogram(h, o)
}

func cmdText(s *Session, args []string) error {
	if len(args) < 3 || len(args) > 5 {
		return usage("text x y string [angle [justify]]")
	}
	nums := append([]string{args[0], args[1]}, args[3:]...)
	v, err := parseFloats(nums)
	if err != nil {
		return err
	}
	v = append(v, 0, 0)
	return s.wm.Text(v[0], v[1], v[2], v[3], args[2])
}

func cmdMtext(s *Session, args []string) error {
	if len(args) != 5 {
		return usage("mtext edge offset pos justify string")
	}
	v, err := parseFloats(args[1:4])
	if err != nil {
		return err
	}
	return s.wm.TextOffset(args[0], v[0], v[1], v[2], args[4])
}

func cmdCursor(s *Session, args []string) error {
	if len(args) != 1 {
		return usage("cursor point|x|y|box")
	}
	var err error
	switch args[0] {
	case "point":
		var x, y float64
		var key rune
		if x, y, key, err = s.wm.ReadPoint(); err == nil {
			s.printf("%g %g %q\n", x, y, key)
		}
	case "x", "y":
		var lo, hi float64
		if args[0] == "x" {
			lo, hi, err = s.wm.ReadXRange()
		} else {
			lo, hi, err = s.wm.ReadYRange()
		}
		if err == nil {
			s.printf("%g %g\n", lo, hi)
		}
	case "box":
		var x0, x1, y0, y1 float64
		if x0, x1, y0, y1, err = s.wm.ReadBox(); err == nil {
			s.printf("%g %g %g %g\n", x0, x1, y0, y1)
		}
	default:
		return usage("cursor point|x|y|box")
	}
	if errors.Is(err, wm.ErrCancelled) {
		s.printf("cancelled\n")
		return nil
	}
	return err
}

func cmdLimits(s *Session, _ []string) error {
	x0, x1, y0, y1, err := s.wm.Limits()
	if err != nil {
		return err
	}
	s.printf("%g %g %g %g\n", x0, x1, y0, y1)
	return nil
}

func cmdOptions(s *Session, _ []string) error {
	o := s.wm.CurrentFormat().Options()
	s.printf("xrange %s %s\n", fmtBound(o.XMin), fmtBound(o.XMax))
	s.printf("yrange %s %s\n", fmtBound(o.YMin), fmtBound(o.YMax))
	s.printf("xlog %v\nylog %v\nunit %s\n", o.LogX, o.LogY, o.XUnit)
	s.printf("color %d\nlinestyle %d\nlinewidth %d\nframewidth %d\n", o.Color, o.LineStyle, o.LineWidth, o.FrameLineWidth)
	s.printf("pointstyle %d\npointsize %g\ncharsize %g\n", o.PointStyle, o.PointSize, o.CharHeight)
	s.printf("connect %s\nerrorbars %d %g\ndensity %v\n", connectName(o.ConnectPoints), o.UseErrorbars, o.EbarTermLength, o.UseBinDensity)
	s.printf("box %s %s\n", o.XOpt, o.YOpt)
	s.printf("labels %q %q %q\n", o.XLabel, o.YLabel, o.Title)
	return nil
}
