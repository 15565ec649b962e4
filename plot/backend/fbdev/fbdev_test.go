package fbdev

import (
	"errors"
	"math"
	"testing"

	"plotwin/hal"
	"plotwin/plot/render"
)

const red = 0xF800

type chanKeyboard chan hal.KeyEvent

func (k chanKeyboard) Events() <-chan hal.KeyEvent { return k }

func openMem(t *testing.T, b *Backend, spec string, w, h float64) *device {
	t.Helper()
	if _, err := b.Open(spec); err != nil {
		t.Fatalf("Open(%q): %v", spec, err)
	}
	if err := b.SetPlotLimits(0, w, 0, h); err != nil {
		t.Fatalf("SetPlotLimits: %v", err)
	}
	return b.cur
}

func TestOpen_Devices(t *testing.T) {
	tcs := []struct {
		spec string
		w, h int
		ok   bool
	}{
		{"/mem", memWidth, memHeight, true},
		{"320x200/mem", 320, 200, true},
		{"16X8/MEM", 16, 8, true},
		{"0x5/mem", 0, 0, false},
		{"big/mem", 0, 0, false},
		{"plot.png/png", 0, 0, false},
		{"/fb", 0, 0, false},
	}
	for _, tc := range tcs {
		b := New(nil, nil)
		id, err := b.Open(tc.spec)
		if (err == nil) != tc.ok {
			t.Fatalf("Open(%q) err=%v; want ok=%v", tc.spec, err, tc.ok)
		}
		if !tc.ok {
			continue
		}
		fb, ok := b.Framebuffer(id)
		if !ok {
			t.Fatalf("Framebuffer(%d) missing", id)
		}
		if fb.Width() != tc.w || fb.Height() != tc.h {
			t.Fatalf("Open(%q) size=%dx%d; want %dx%d", tc.spec, fb.Width(), fb.Height(), tc.w, tc.h)
		}
	}
}

func TestOpen_HostBusy(t *testing.T) {
	b := New(hal.NewFramebuffer(8, 8), nil)
	if _, err := b.Open("/fb"); err != nil {
		t.Fatalf("Open: %v", err)
	}
	if _, err := b.Open("/fb"); !errors.Is(err, errBusy) {
		t.Fatalf("second Open err=%v; want %v", err, errBusy)
	}
	if err := b.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if _, err := b.Open("/fb"); err != nil {
		t.Fatalf("Open after Close: %v", err)
	}
}

func TestNoDevice(t *testing.T) {
	b := New(nil, nil)
	if err := b.PlotXY([]float64{0}, []float64{0}); !errors.Is(err, errNoDevice) {
		t.Fatalf("PlotXY err=%v; want %v", err, errNoDevice)
	}
	if err := b.SelectWindow(3); err == nil {
		t.Fatalf("SelectWindow(3) succeeded")
	}
}

func TestPlotXY_Line(t *testing.T) {
	b := New(nil, nil)
	dev := openMem(t, b, "16x16/mem", 16, 16)
	b.SetColor(2)
	if err := b.PlotXY([]float64{0, 16}, []float64{8, 8}); err != nil {
		t.Fatalf("PlotXY: %v", err)
	}
	for _, x := range []int{0, 3, 15} {
		if got := dev.d.pixel(x, 8); got != red {
			t.Fatalf("pixel(%d,8)=%#04x; want %#04x", x, got, red)
		}
	}
	if got := dev.d.pixel(3, 7); got != 0 {
		t.Fatalf("pixel(3,7)=%#04x; want background", got)
	}
}

func TestPlotXY_Clipping(t *testing.T) {
	tcs := []struct {
		clip bool
		want uint16
	}{
		{true, 0},
		{false, red},
	}
	for _, tc := range tcs {
		b := New(nil, nil)
		dev := openMem(t, b, "16x16/mem", 16, 16)
		b.SelectViewport(0.5, 1, 0, 1)
		b.SetColor(2)
		b.SetClipping(tc.clip)
		b.PlotXY([]float64{-16, 16}, []float64{8, 8})
		if got := dev.d.pixel(4, 8); got != tc.want {
			t.Fatalf("clip=%v pixel(4,8)=%#04x; want %#04x", tc.clip, got, tc.want)
		}
		if got := dev.d.pixel(12, 8); got != red {
			t.Fatalf("clip=%v pixel(12,8)=%#04x; want %#04x", tc.clip, got, red)
		}
	}
}

func TestPlotXY_Dashed(t *testing.T) {
	b := New(nil, nil)
	dev := openMem(t, b, "16x16/mem", 16, 16)
	b.SetColor(2)
	b.SetLineStyle(2)
	b.PlotXY([]float64{0, 15}, []float64{8, 8})
	if got := dev.d.pixel(3, 8); got != red {
		t.Fatalf("pixel(3,8)=%#04x; want dash", got)
	}
	if got := dev.d.pixel(9, 8); got != 0 {
		t.Fatalf("pixel(9,8)=%#04x; want gap", got)
	}
	if got := dev.d.pixel(13, 8); got != red {
		t.Fatalf("pixel(13,8)=%#04x; want dash", got)
	}
}

func TestPlotXY_SkipsNaN(t *testing.T) {
	b := New(nil, nil)
	dev := openMem(t, b, "16x16/mem", 16, 16)
	b.PlotXY([]float64{0, 4, 8, 12, 15}, []float64{8, 8, math.NaN(), 8, 8})
	if got := dev.d.pixel(6, 8); got != 0 {
		t.Fatalf("pixel(6,8)=%#04x; want gap at NaN", got)
	}
	if got := dev.d.pixel(13, 8); got == 0 {
		t.Fatalf("pixel(13,8) not drawn")
	}
}

func TestPlotPoints_Plus(t *testing.T) {
	b := New(nil, nil)
	dev := openMem(t, b, "16x16/mem", 16, 16)
	b.PlotPoints([]float64{8}, []float64{8}, 2)
	for _, pt := range [][2]int{{5, 8}, {11, 8}, {8, 5}, {8, 11}} {
		if got := dev.d.pixel(pt[0], pt[1]); got != 0xFFFF {
			t.Fatalf("pixel%v=%#04x; want foreground", pt, got)
		}
	}
	if got := dev.d.pixel(12, 8); got != 0 {
		t.Fatalf("pixel(12,8)=%#04x; want background", got)
	}
}

func TestPlotYErrorBar(t *testing.T) {
	b := New(nil, nil)
	dev := openMem(t, b, "16x16/mem", 16, 16)
	b.PlotYErrorBar([]float64{8}, []float64{12}, []float64{4}, 1)
	if got := dev.d.pixel(8, 10); got == 0 {
		t.Fatalf("bar not drawn")
	}
	if got := dev.d.pixel(10, 4); got == 0 {
		t.Fatalf("top terminal not drawn")
	}
	if got := dev.d.pixel(10, 10); got != 0 {
		t.Fatalf("pixel(10,10)=%#04x; want background", got)
	}
}

func TestNextPage_ClearsOnWrap(t *testing.T) {
	b := New(nil, nil)
	dev := openMem(t, b, "16x16/mem", 16, 16)
	b.Subdivide(2, 1)
	b.NextPage()
	b.SetColor(2)
	b.PlotXY([]float64{0, 16}, []float64{8, 8})
	if got := dev.d.pixel(3, 8); got != red {
		t.Fatalf("pixel(3,8)=%#04x; want %#04x", got, red)
	}
	b.NextPage()
	if got := dev.d.pixel(3, 8); got != red {
		t.Fatalf("second panel cleared the page")
	}
	b.NextPage()
	if got := dev.d.pixel(3, 8); got != 0 {
		t.Fatalf("wrap did not clear: %#04x", got)
	}
}

func TestDrawBox_Edges(t *testing.T) {
	b := New(nil, nil)
	dev := openMem(t, b, "16x16/mem", 16, 16)
	b.SelectViewport(0.25, 0.75, 0.25, 0.75)
	if err := b.DrawBox("BC", 0, 0, "BC", 0, 0); err != nil {
		t.Fatalf("DrawBox: %v", err)
	}
	for _, pt := range [][2]int{{8, 12}, {8, 4}, {4, 8}, {12, 8}} {
		if got := dev.d.pixel(pt[0], pt[1]); got == 0 {
			t.Fatalf("edge pixel%v not drawn", pt)
		}
	}
	if got := dev.d.pixel(8, 8); got != 0 {
		t.Fatalf("pixel(8,8)=%#04x; want background", got)
	}
}

func TestPutTextXY_Draws(t *testing.T) {
	b := New(nil, nil)
	dev := openMem(t, b, "64x32/mem", 64, 32)
	if err := b.PutTextXY(4, 16, 0, 0, "10"); err != nil {
		t.Fatalf("PutTextXY: %v", err)
	}
	n := 0
	for y := 0; y < 32; y++ {
		for x := 0; x < 64; x++ {
			if dev.d.pixel(x, y) != 0 {
				n++
			}
		}
	}
	if n == 0 {
		t.Fatalf("no text pixels")
	}
}

func TestPutTextOffset_BadEdge(t *testing.T) {
	b := New(nil, nil)
	openMem(t, b, "16x16/mem", 16, 16)
	if err := b.PutTextOffset("X", 1, 0.5, 0.5, "t"); err == nil {
		t.Fatalf("PutTextOffset(X) succeeded")
	}
}

func TestSetViewerSize(t *testing.T) {
	b := New(hal.NewFramebuffer(8, 8), nil)
	id, _ := b.Open("/mem")
	if err := b.SetViewerSize(200, 0.5); err != nil {
		t.Fatalf("SetViewerSize: %v", err)
	}
	fb, _ := b.Framebuffer(id)
	if fb.Width() != 200 || fb.Height() != 100 {
		t.Fatalf("size=%dx%d; want 200x100", fb.Width(), fb.Height())
	}
	b.Open("/fb")
	if err := b.SetViewerSize(200, 0.5); !errors.Is(err, render.ErrUnsupported) {
		t.Fatalf("host SetViewerSize err=%v; want %v", err, render.ErrUnsupported)
	}
}

func TestParseSize(t *testing.T) {
	tcs := []struct {
		in   string
		w, h int
		ok   bool
	}{
		{"640x480", 640, 480, true},
		{"1X2", 1, 2, true},
		{"640", 0, 0, false},
		{"x480", 0, 0, false},
		{"-1x4", 0, 0, false},
	}
	for _, tc := range tcs {
		w, h, err := parseSize(tc.in)
		if (err == nil) != tc.ok || w != tc.w || h != tc.h {
			t.Fatalf("parseSize(%q)=%d,%d,%v; want %d,%d ok=%v", tc.in, w, h, err, tc.w, tc.h, tc.ok)
		}
	}
}

func openHost(t *testing.T, events ...hal.KeyEvent) (*Backend, chanKeyboard) {
	t.Helper()
	kbd := make(chanKeyboard, len(events))
	for _, ev := range events {
		kbd <- ev
	}
	b := New(hal.NewFramebuffer(100, 100), kbd)
	if _, err := b.Open("/fb"); err != nil {
		t.Fatalf("Open: %v", err)
	}
	b.SetPlotLimits(0, 10, 0, 10)
	return b, kbd
}

func press(code hal.KeyCode) hal.KeyEvent { return hal.KeyEvent{Code: code, Press: true} }

func TestReadCursor_Keys(t *testing.T) {
	tcs := []struct {
		name   string
		events []hal.KeyEvent
		cfg    render.CursorConfig
		x, y   float64
		key    rune
	}{
		{
			name:   "rune",
			events: []hal.KeyEvent{press(hal.KeyRight), press(hal.KeyRight), {Press: true, Rune: 'a'}},
			x:      5.8,
			y:      5,
			key:    'a',
		},
		{
			name:   "fine",
			events: []hal.KeyEvent{press(hal.KeyTab), press(hal.KeyRight), {Code: hal.KeyRight}, press(hal.KeyUp), press(hal.KeyEnter)},
			x:      5.1,
			y:      5.1,
			key:    '\r',
		},
		{
			name:   "home",
			events: []hal.KeyEvent{press(hal.KeyHome), press(hal.KeyEscape)},
			cfg:    render.CursorConfig{Mode: render.CursorBox, AnchorX: 2, AnchorY: 3},
			x:      2,
			y:      3,
			key:    0x1b,
		},
		{
			name:   "start",
			events: []hal.KeyEvent{press(hal.KeyDown), press(hal.KeyBackspace)},
			cfg:    render.CursorConfig{Mode: render.CursorXRange, StartX: 1, StartY: 9, HasStart: true},
			x:      1,
			y:      8.6,
			key:    0x08,
		},
	}
	for _, tc := range tcs {
		b, _ := openHost(t, tc.events...)
		x, y, key, err := b.ReadCursor(tc.cfg)
		if err != nil {
			t.Fatalf("%s: ReadCursor: %v", tc.name, err)
		}
		if math.Abs(x-tc.x) > 1e-9 || math.Abs(y-tc.y) > 1e-9 || key != tc.key {
			t.Fatalf("%s: ReadCursor()=%g,%g,%q; want %g,%g,%q", tc.name, x, y, key, tc.x, tc.y, tc.key)
		}
		if got := b.cur.d.pixel(50, 50); got != 0 {
			t.Fatalf("%s: cursor left in buffer: %#04x", tc.name, got)
		}
	}
}

func TestReadCursor_KeyboardClosed(t *testing.T) {
	b, kbd := openHost(t)
	close(kbd)
	if _, _, _, err := b.ReadCursor(render.CursorConfig{}); !errors.Is(err, errKeyboardClosed) {
		t.Fatalf("ReadCursor err=%v; want %v", err, errKeyboardClosed)
	}
}

func TestReadCursor_Unsupported(t *testing.T) {
	b := New(nil, make(chanKeyboard))
	b.Open("/mem")
	if _, _, _, err := b.ReadCursor(render.CursorConfig{}); !errors.Is(err, render.ErrUnsupported) {
		t.Fatalf("ReadCursor err=%v; want %v", err, render.ErrUnsupported)
	}
}
