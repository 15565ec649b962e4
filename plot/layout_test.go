package plot

import (
	"errors"
	"testing"
)

func TestLayout_WeightedRows(t *testing.T) {
	outer := Rect{XMin: 0, XMax: 1, YMin: 0, YMax: 1}
	panes, err := Layout(1, 3, outer, []float64{1, 1, 2})
	if err != nil {
		t.Fatalf("Layout: %v", err)
	}
	if len(panes) != 3 {
		t.Fatalf("len=%d; want 3", len(panes))
	}
	h := func(r Rect) float64 { return r.YMax - r.YMin }
	if !near(h(panes[0]), 0.25) || !near(h(panes[1]), 0.25) || !near(h(panes[2]), 0.5) {
		t.Fatalf("heights %v %v %v; want 1:1:2", h(panes[0]), h(panes[1]), h(panes[2]))
	}
	if panes[2].YMin != outer.YMin || panes[0].YMax != outer.YMax {
		t.Fatalf("rows do not span the outer viewport: %+v", panes)
	}
	for i := 0; i+1 < len(panes); i++ {
		if panes[i].YMin != panes[i+1].YMax {
			t.Fatalf("gap between rows %d and %d: %+v", i, i+1, panes)
		}
		if panes[i].XMin != 0 || panes[i].XMax != 1 {
			t.Fatalf("row %d x extent %+v", i, panes[i])
		}
	}
}

func TestLayout_Errors(t *testing.T) {
	outer := Rect{XMin: 0, XMax: 1, YMin: 0, YMax: 1}
	tcs := []struct {
		nx, ny int
		outer  Rect
		ysizes []float64
	}{
		{nx: 2, ny: 2, outer: outer, ysizes: []float64{1, 1}},
		{nx: 2, ny: 1, outer: outer, ysizes: []float64{1}},
		{nx: 1, ny: 2, outer: outer, ysizes: []float64{1}},
		{nx: 1, ny: 2, outer: outer, ysizes: []float64{1, 0}},
		{nx: 0, ny: 1, outer: outer},
		{nx: 1, ny: 1, outer: Rect{XMin: 1, XMax: 0, YMin: 0, YMax: 1}},
	}
	for _, tc := range tcs {
		if _, err := Layout(tc.nx, tc.ny, tc.outer, tc.ysizes); !errors.Is(err, ErrConfig) {
			t.Fatalf("Layout(%d,%d,%+v,%v) err=%v; want ErrConfig", tc.nx, tc.ny, tc.outer, tc.ysizes, err)
		}
	}
}

func TestLayout_SingleAndGrid(t *testing.T) {
	outer := DefaultViewport
	panes, err := Layout(1, 1, outer, nil)
	if err != nil || len(panes) != 1 || panes[0] != outer {
		t.Fatalf("Layout(1,1)=%v,%v; want outer", panes, err)
	}

	panes, err = Layout(2, 2, Rect{XMin: 0, XMax: 1, YMin: 0, YMax: 1}, nil)
	if err != nil || len(panes) != 4 {
		t.Fatalf("Layout(2,2)=%v,%v", panes, err)
	}
	want := Rect{XMin: 0.5, XMax: 1, YMin: 0.5, YMax: 1}
	if panes[1] != want {
		t.Fatalf("pane 1=%+v; want top right %+v", panes[1], want)
	}
}
