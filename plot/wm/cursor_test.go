package wm

import (
	"errors"
	"testing"

	"plotwin/plot"
	"plotwin/plot/render"
)

func TestReadPoint_NoWindow(t *testing.T) {
	c, _, _ := newTestCollection(t)
	if _, _, _, err := c.ReadPoint(); !errors.Is(err, plot.ErrLookup) {
		t.Fatalf("ReadPoint: %v; want ErrLookup", err)
	}
}

func TestReadPoint_LogAxis(t *testing.T) {
	c, fb, _ := newTestCollection(t)
	c.CurrentFormat().SetLog(plot.X, true)
	mustCurve(t, c, Curve{X: []float64{1, 10, 100}, Y: []float64{1, 2, 3}}, DrawOpts{})
	fb.cursor = []cursorEvent{{1, 2, 'a'}}
	x, y, key, err := c.ReadPoint()
	if err != nil {
		t.Fatalf("ReadPoint: %v", err)
	}
	if !near(x, 10) || y != 2 || key != 'a' {
		t.Fatalf("ReadPoint=%v,%v,%q; want 10,2,'a'", x, y, key)
	}
}

func TestReadXRange_Retry(t *testing.T) {
	c, fb, _ := newTestCollection(t)
	mustCurve(t, c, unitCurve, DrawOpts{})
	fb.cursor = []cursorEvent{{5, 0, 'a'}, {0, 0, 'r'}, {3, 0, 'a'}, {1, 0, 'a'}}
	lo, hi, err := c.ReadXRange()
	if err != nil {
		t.Fatalf("ReadXRange: %v", err)
	}
	if lo != 1 || hi != 3 {
		t.Fatalf("ReadXRange=%v,%v; want 1,3", lo, hi)
	}
	if len(fb.configs) != 4 {
		t.Fatalf("%d cursor reads; want 4", len(fb.configs))
	}
	first, second := fb.configs[2], fb.configs[3]
	if first.Mode != render.CursorVLine || second.Mode != render.CursorXRange {
		t.Fatalf("modes %v,%v", first.Mode, second.Mode)
	}
	if second.AnchorX != 3 || !second.HasStart || second.StartX != 3 {
		t.Fatalf("second read %+v; want anchored at x=3", second)
	}
}

func TestReadYRange_Cancel(t *testing.T) {
	c, fb, _ := newTestCollection(t)
	mustCurve(t, c, unitCurve, DrawOpts{})
	fb.cursor = []cursorEvent{{0, 1, 'a'}, {0, 0, 'q'}}
	if _, _, err := c.ReadYRange(); !errors.Is(err, ErrCancelled) {
		t.Fatalf("ReadYRange: %v; want ErrCancelled", err)
	}
}

func TestReadBox_Ordered(t *testing.T) {
	c, fb, _ := newTestCollection(t)
	mustCurve(t, c, unitCurve, DrawOpts{})
	fb.cursor = []cursorEvent{{2, 5, 'a'}, {1, 7, 'b'}}
	xmin, xmax, ymin, ymax, err := c.ReadBox()
	if err != nil {
		t.Fatalf("ReadBox: %v", err)
	}
	if xmin != 1 || xmax != 2 || ymin != 5 || ymax != 7 {
		t.Fatalf("ReadBox=%v,%v,%v,%v; want 1,2,5,7", xmin, xmax, ymin, ymax)
	}
	if fb.configs[1].Mode != render.CursorBox {
		t.Fatalf("second mode %v; want box", fb.configs[1].Mode)
	}
}

func TestReadCursor_BackendFailure(t *testing.T) {
	c, fb, _ := newTestCollection(t)
	mustOpen(t, c, "")
	fb.fail["read cursor"] = errFake
	if _, _, _, err := c.ReadPoint(); !errors.Is(err, render.ErrFailure) {
		t.Fatalf("ReadPoint: %v; want ErrFailure", err)
	}
}
