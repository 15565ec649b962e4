// Package render defines the drawing contract between the window manager
// and a concrete output device, and the registry that holds the installed
// implementation.
package render

// CursorMode selects the rubber-band feedback drawn while a cursor is read.
type CursorMode uint8

const (
	CursorPlain CursorMode = iota
	CursorLine
	CursorBox
	CursorXRange
	CursorYRange
	CursorHLine
	CursorVLine
	CursorCross
)

// CursorConfig configures a single cursor read. Anchor is in world
// coordinates and only used by the band modes.
type CursorConfig struct {
	Mode    CursorMode
	AnchorX float64
	AnchorY float64

	// StartX/StartY position the cursor before the read if HasStart is set.
	StartX   float64
	StartY   float64
	HasStart bool
}

// Backend is a drawing device driver. Any method may be left unbound by
// embedding Unsupported; callers treat every call as fallible.
//
// Coordinates passed to plotting calls are world coordinates of the current
// viewport (already log-transformed by the caller where needed).
// Viewports are normalized device coordinates of the current panel.
type Backend interface {
	Open(device string) (int, error)
	Close() error
	Subdivide(nx, ny int) error
	SelectWindow(id int) error
	SelectViewport(xmin, xmax, ymin, ymax float64) error
	SetPlotLimits(xmin, xmax, ymin, ymax float64) error
	QueryPlotLimits() (xmin, xmax, ymin, ymax float64, err error)
	Erase() error
	Update() error
	NextPage() error

	GetColor() (int, error)
	SetColor(c int) error
	SetLineStyle(s int) error
	SetLineWidth(w int) error
	SetClipping(on bool) error

	PlotXY(x, y []float64) error
	PlotPoints(x, y []float64, symbol int) error
	PlotSymbolPoints(x, y []float64, symbols []int) error
	PlotHistogram(lo, hi, val []float64) error
	PlotYErrorBar(x, top, bot []float64, termLen float64) error

	SetViewerSize(width, aspect float64) error
	SetCharSize(size float64) error
	DrawBox(xopt string, xtick float64, nxsub int, yopt string, ytick float64, nysub int) error
	LabelAxes(xlabel, ylabel, title string) error
	PutTextXY(x, y, angle, justify float64, text string) error
	PutTextOffset(where string, offset, ox, oy float64, text string) error
	DefaultAxis() (string, error)
	ConfigureAxis(opt string, isLog, hasNumbers bool) (string, error)

	ReadCursor(cfg CursorConfig) (x, y float64, key rune, err error)
}

// Unsupported implements every Backend method by failing with
// ErrUnsupported. Embed it and override the operations a device supports.
type Unsupported struct{}

func (Unsupported) Open(string) (int, error)                                { return 0, ErrUnsupported }
func (Unsupported) Close() error                                            { return ErrUnsupported }
func (Unsupported) Subdivide(int, int) error                                { return ErrUnsupported }
func (Unsupported) SelectWindow(int) error                                  { return ErrUnsupported }
func (Unsupported) SelectViewport(float64, float64, float64, float64) error { return ErrUnsupported }
func (Unsupported) SetPlotLimits(float64, float64, float64, float64) error  { return ErrUnsupported }
func (Unsupported) QueryPlotLimits() (float64, float64, float64, float64, error) {
	return 0, 0, 0, 0, ErrUnsupported
}
func (Unsupported) Erase() error                                        { return ErrUnsupported }
func (Unsupported) Update() error                                       { return ErrUnsupported }
func (Unsupported) NextPage() error                                     { return ErrUnsupported }
func (Unsupported) GetColor() (int, error)                              { return 0, ErrUnsupported }
func (Unsupported) SetColor(int) error                                  { return ErrUnsupported }
func (Unsupported) SetLineStyle(int) error                              { return ErrUnsupported }
func (Unsupported) SetLineWidth(int) error                              { return ErrUnsupported }
func (Unsupported) SetClipping(bool) error                              { return ErrUnsupported }
func (Unsupported) PlotXY([]float64, []float64) error                   { return ErrUnsupported }
func (Unsupported) PlotPoints([]float64, []float64, int) error          { return ErrUnsupported }
func (Unsupported) PlotSymbolPoints([]float64, []float64, []int) error  { return ErrUnsupported }
func (Unsupported) PlotHistogram([]float64, []float64, []float64) error { return ErrUnsupported }
func (Unsupported) PlotYErrorBar([]float64, []float64, []float64, float64) error {
	return ErrUnsupported
}
func (Unsupported) SetViewerSize(float64, float64) error                     { return ErrUnsupported }
func (Unsupported) SetCharSize(float64) error                                { return ErrUnsupported }
func (Unsupported) DrawBox(string, float64, int, string, float64, int) error { return ErrUnsupported }
func (Unsupported) LabelAxes(string, string, string) error                   { return ErrUnsupported }
func (Unsupported) PutTextXY(float64, float64, float64, float64, string) error {
	return ErrUnsupported
}
func (Unsupported) PutTextOffset(string, float64, float64, float64, string) error {
	return ErrUnsupported
}
func (Unsupported) DefaultAxis() (string, error)                     { return "", ErrUnsupported }
func (Unsupported) ConfigureAxis(string, bool, bool) (string, error) { return "", ErrUnsupported }
func (Unsupported) ReadCursor(CursorConfig) (float64, float64, rune, error) {
	return 0, 0, 0, ErrUnsupported
}
