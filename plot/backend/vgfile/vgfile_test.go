package vgfile

import (
	"bytes"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"plotwin/plot/render"
)

func openFile(t *testing.T, b *Backend, name, typ string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if _, err := b.Open(path + "/" + typ); err != nil {
		t.Fatalf("Open(%s/%s): %v", path, typ, err)
	}
	if err := b.SetPlotLimits(0, 10, 0, 10); err != nil {
		t.Fatalf("SetPlotLimits: %v", err)
	}
	return path
}

func drawSome(t *testing.T, b *Backend) {
	t.Helper()
	if err := b.DrawBox("BCNST", 0, 0, "BCNST", 0, 0); err != nil {
		t.Fatalf("DrawBox: %v", err)
	}
	if err := b.LabelAxes("x", "y", "title"); err != nil {
		t.Fatalf("LabelAxes: %v", err)
	}
	if err := b.PlotXY([]float64{1, 5, 9}, []float64{1, 9, 1}); err != nil {
		t.Fatalf("PlotXY: %v", err)
	}
	if err := b.PlotSymbolPoints([]float64{2, 4}, []float64{2, 4}, []int{3, 17}); err != nil {
		t.Fatalf("PlotSymbolPoints: %v", err)
	}
}

func readFile(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	return data
}

func TestOpen_BadDevice(t *testing.T) {
	tcs := []string{"plot.gif/gif", "plot.png", "/png"}
	for _, tc := range tcs {
		if _, err := New().Open(tc); err == nil {
			t.Fatalf("Open(%q) succeeded", tc)
		}
	}
}

func TestUpdate_WritesPNG(t *testing.T) {
	b := New()
	path := openFile(t, b, "a.png", "png")
	drawSome(t, b)
	if err := b.Update(); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if data := readFile(t, path); !bytes.HasPrefix(data, []byte("\x89PNG\r\n\x1a\n")) {
		t.Fatalf("%s is not a PNG file", path)
	}
}

func TestClose_WritesSVG(t *testing.T) {
	b := New()
	path := openFile(t, b, "a.svg", "svg")
	drawSome(t, b)
	if err := b.Update(); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("svg written before close: %v", err)
	}
	if err := b.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if data := readFile(t, path); !bytes.Contains(data, []byte("<svg")) {
		t.Fatalf("%s is not an SVG file", path)
	}
}

func TestClose_WritesPDF(t *testing.T) {
	b := New()
	path := openFile(t, b, "a.pdf", "pdf")
	drawSome(t, b)
	if err := b.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if data := readFile(t, path); !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Fatalf("%s is not a PDF file", path)
	}
}

func TestClose_BlankPageNotWritten(t *testing.T) {
	b := New()
	path := openFile(t, b, "a.png", "png")
	if err := b.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("blank page written: %v", err)
	}
}

func TestNextPage_NumbersFiles(t *testing.T) {
	b := New()
	path := openFile(t, b, "a.png", "png")
	dir := filepath.Dir(path)

	// A fresh device starts on a blank page.
	if err := b.NextPage(); err != nil {
		t.Fatalf("NextPage: %v", err)
	}
	drawSome(t, b)
	if err := b.NextPage(); err != nil {
		t.Fatalf("NextPage: %v", err)
	}
	drawSome(t, b)
	if err := b.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	for _, name := range []string{"a.png", "a_2.png"} {
		readFile(t, filepath.Join(dir, name))
	}
	if _, err := os.Stat(filepath.Join(dir, "a_3.png")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("unexpected third page: %v", err)
	}
}

func TestNextPage_PanelsShareFile(t *testing.T) {
	b := New()
	path := openFile(t, b, "a.png", "png")
	b.Subdivide(2, 1)
	b.NextPage()
	drawSome(t, b)
	b.NextPage()
	drawSome(t, b)
	b.Close()
	readFile(t, path)
	if _, err := os.Stat(filepath.Join(filepath.Dir(path), "a_2.png")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("second panel started a new file: %v", err)
	}
}

func TestQueryPlotLimits(t *testing.T) {
	b := New()
	openFile(t, b, "a.png", "png")
	b.SetPlotLimits(-1, 2, 3, 40)
	x0, x1, y0, y1, err := b.QueryPlotLimits()
	if err != nil || x0 != -1 || x1 != 2 || y0 != 3 || y1 != 40 {
		t.Fatalf("QueryPlotLimits()=%g,%g,%g,%g,%v; want -1,2,3,40", x0, x1, y0, y1, err)
	}
}

func TestCursorUnsupported(t *testing.T) {
	b := New()
	openFile(t, b, "a.png", "png")
	if _, _, _, err := b.ReadCursor(render.CursorConfig{}); !errors.Is(err, render.ErrUnsupported) {
		t.Fatalf("ReadCursor err=%v; want %v", err, render.ErrUnsupported)
	}
}

func TestInk_SwapsPaperColors(t *testing.T) {
	if ink(0) != render.Palette[1] || ink(1) != render.Palette[0] || ink(2) != render.Palette[2] {
		t.Fatalf("ink(0..2)=%v,%v,%v", ink(0), ink(1), ink(2))
	}
}

func TestFileName(t *testing.T) {
	dev := &device{path: "out/fit.png", pageNo: 1}
	if got := dev.fileName(); got != "out/fit.png" {
		t.Fatalf("fileName()=%q", got)
	}
	dev.pageNo = 3
	if got := dev.fileName(); got != "out/fit_3.png" {
		t.Fatalf("fileName()=%q; want out/fit_3.png", got)
	}
}

func TestTicks_Linear(t *testing.T) {
	ts := ticks(10, 0, false)
	majors := 0
	for _, tk := range ts {
		if tk.V < 0 || tk.V > 10 {
			t.Fatalf("tick %v outside [0,10]", tk.V)
		}
		if tk.Major {
			majors++
			if tk.Label == "" {
				t.Fatalf("major tick %v has no label", tk.V)
			}
		}
	}
	if majors < 2 {
		t.Fatalf("ticks(0,10)=%v; want at least 2 major ticks", ts)
	}
}

func TestTicks_Log(t *testing.T) {
	var got []string
	for _, tk := range ticks(0, 3, true) {
		if tk.V < -1e-9 || tk.V > 3+1e-9 {
			t.Fatalf("tick %v outside [0,3]", tk.V)
		}
		if !tk.Major {
			continue
		}
		if d := tk.V - math.Round(tk.V); math.Abs(d) > 1e-9 {
			t.Fatalf("major tick at %v; want whole decades", tk.V)
		}
		got = append(got, tk.Label)
	}
	want := []string{"1", "10", "100", "1000"}
	if len(got) != len(want) {
		t.Fatalf("log major labels=%q; want %q", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("log major labels=%q; want %q", got, want)
		}
	}
	if ticks(1, 1, false) != nil || ticks(0, 400, true) != nil {
		t.Fatalf("degenerate or overflowing axes produced ticks")
	}
}
