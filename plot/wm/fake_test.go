package wm

import (
	"errors"
	"math"
	"strings"
	"testing"

	"plotwin/plot/render"
)

var errFake = errors.New("fake failure")

type cursorEvent struct {
	x, y float64
	key  rune
}

// fakeBackend records the calls it receives. SetClipping, DefaultAxis and
// ConfigureAxis are left unsupported.
type fakeBackend struct {
	render.Unsupported

	nextID  int
	current int
	color   int
	calls   []string

	limits     [][4]float64
	viewports  [][4]float64
	subdivides [][2]int
	plotColors []int
	styles     []int
	hists      [][]float64
	ebars      [][]float64
	points     [][]float64
	configs    []render.CursorConfig
	labels     [][3]string

	cursor     []cursorEvent
	fail       map[string]error
	panicClose bool
}

func newFake() *fakeBackend {
	return &fakeBackend{fail: make(map[string]error)}
}

func (b *fakeBackend) record(op string) error {
	b.calls = append(b.calls, op)
	return b.fail[op]
}

func (b *fakeBackend) count(op string) int {
	n := 0
	for _, c := range b.calls {
		if c == op {
			n++
		}
	}
	return n
}

func (b *fakeBackend) Open(device string) (int, error) {
	if err := b.record("open"); err != nil {
		return 0, err
	}
	b.nextID++
	b.current = b.nextID
	return b.nextID, nil
}

func (b *fakeBackend) Close() error {
	if b.panicClose {
		panic("device lost")
	}
	return b.record("close")
}

func (b *fakeBackend) Subdivide(nx, ny int) error {
	b.subdivides = append(b.subdivides, [2]int{nx, ny})
	return b.record("subdivide")
}

func (b *fakeBackend) SelectWindow(id int) error {
	b.current = id
	return b.record("select window")
}

func (b *fakeBackend) SelectViewport(xmin, xmax, ymin, ymax float64) error {
	b.viewports = append(b.viewports, [4]float64{xmin, xmax, ymin, ymax})
	return b.record("select viewport")
}

func (b *fakeBackend) SetPlotLimits(xmin, xmax, ymin, ymax float64) error {
	b.limits = append(b.limits, [4]float64{xmin, xmax, ymin, ymax})
	return b.record("set plot limits")
}

func (b *fakeBackend) QueryPlotLimits() (float64, float64, float64, float64, error) {
	if len(b.limits) == 0 {
		return 0, 1, 0, 1, b.record("query plot limits")
	}
	l := b.limits[len(b.limits)-1]
	return l[0], l[1], l[2], l[3], b.record("query plot limits")
}

func (b *fakeBackend) Erase() error           { return b.record("erase") }
func (b *fakeBackend) Update() error          { return b.record("update") }
func (b *fakeBackend) NextPage() error        { return b.record("next page") }
func (b *fakeBackend) GetColor() (int, error) { return b.color, b.record("get color") }

func (b *fakeBackend) SetColor(c int) error {
	b.color = c
	return b.record("set color")
}

func (b *fakeBackend) SetLineStyle(s int) error {
	b.styles = append(b.styles, s)
	return b.record("set line style")
}

func (b *fakeBackend) SetLineWidth(int) error    { return b.record("set line width") }
func (b *fakeBackend) SetCharSize(float64) error { return b.record("set char size") }

func (b *fakeBackend) PlotXY(x, y []float64) error {
	b.plotColors = append(b.plotColors, b.color)
	return b.record("plot xy")
}

func (b *fakeBackend) PlotPoints(x, y []float64, symbol int) error {
	b.points = append(b.points, append([]float64(nil), x...))
	return b.record("plot points")
}

func (b *fakeBackend) PlotSymbolPoints(x, y []float64, symbols []int) error {
	return b.record("plot symbol points")
}

func (b *fakeBackend) PlotHistogram(lo, hi, val []float64) error {
	b.hists = append(b.hists, append([]float64(nil), lo...))
	return b.record("plot histogram")
}

func (b *fakeBackend) PlotYErrorBar(x, top, bot []float64, termLen float64) error {
	b.ebars = append(b.ebars, append([]float64(nil), x...))
	return b.record("plot y error bar")
}

func (b *fakeBackend) SetViewerSize(width, aspect float64) error {
	return b.record("set viewer size")
}

func (b *fakeBackend) DrawBox(string, float64, int, string, float64, int) error {
	return b.record("draw box")
}

func (b *fakeBackend) LabelAxes(x, y, title string) error {
	b.labels = append(b.labels, [3]string{x, y, title})
	return b.record("label axes")
}

func (b *fakeBackend) PutTextXY(x, y, angle, justify float64, text string) error {
	return b.record("put text xy")
}

func (b *fakeBackend) PutTextOffset(where string, offset, ox, oy float64, text string) error {
	return b.record("put text offset")
}

func (b *fakeBackend) ReadCursor(cfg render.CursorConfig) (float64, float64, rune, error) {
	b.configs = append(b.configs, cfg)
	if err := b.record("read cursor"); err != nil {
		return 0, 0, 0, err
	}
	if len(b.cursor) == 0 {
		return 0, 0, 0, errors.New("no cursor events left")
	}
	ev := b.cursor[0]
	b.cursor = b.cursor[1:]
	return ev.x, ev.y, ev.key, nil
}

type lineLog struct{ lines []string }

func (l *lineLog) WriteLineString(s string) { l.lines = append(l.lines, s) }

func (l *lineLog) contains(sub string) bool {
	for _, s := range l.lines {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func newTestCollection(t *testing.T) (*Collection, *fakeBackend, *lineLog) {
	t.Helper()
	b := newFake()
	log := &lineLog{}
	return New(render.NewRegistry(b), DefaultConfig(), log), b, log
}

func near(a, b float64) bool { return math.Abs(a-b) <= 1e-9*math.Max(1, math.Abs(b)) }

func nearLimits(got, want [4]float64) bool {
	for i := range got {
		if !near(got[i], want[i]) {
			return false
		}
	}
	return true
}

func lastLimits(t *testing.T, b *fakeBackend) [4]float64 {
	t.Helper()
	if len(b.limits) == 0 {
		t.Fatalf("no plot limits set")
	}
	return b.limits[len(b.limits)-1]
}

var unitCurve = Curve{X: []float64{0, 1, 2}, Y: []float64{0, 1, 4}}

func mustOpen(t *testing.T, c *Collection, device string) ID {
	t.Helper()
	id, err := c.Open(device, 1, 1)
	if err != nil {
		t.Fatalf("Open(%q): %v", device, err)
	}
	return id
}

func mustCurve(t *testing.T, c *Collection, cv Curve, o DrawOpts) {
	t.Helper()
	if err := c.Curve(cv, o); err != nil {
		t.Fatalf("Curve: %v", err)
	}
}
