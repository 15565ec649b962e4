package wm

import (
	"fmt"
	"slices"

	"plotwin/plot"
)

// ID identifies a window. Bound windows use the backend device handle,
// which is always positive.
type ID int

const (
	// None means no window.
	None ID = 0
	// Deferred names the window created before any device was opened.
	Deferred ID = -1
)

// Kind is the pane management of a window.
type Kind uint8

const (
	// SinglePane windows draw into the outer viewport. A panel grid given to
	// Open is handled by the backend, one panel per page advance.
	SinglePane Kind = iota
	// Subdivided windows split the outer viewport into panes themselves.
	Subdivided
)

func (k Kind) String() string {
	if k == Subdivided {
		return "subdivided"
	}
	return "single"
}

// Window is one plot window: a Format plus its pane layout.
type Window struct {
	id     ID
	device string
	format *plot.Format

	kind   Kind
	nx, ny int
	ysizes []float64
	panes  []plot.Rect
	outer  plot.Rect

	currentPane int
	forceClear  bool
	pinned      bool

	// World limits last drawn into each pane, for overlays.
	limits   [][4]float64
	limitsOK []bool
}

func newWindow(f *plot.Format, outer plot.Rect) *Window {
	w := &Window{
		id:     Deferred,
		format: f,
		kind:   SinglePane,
		nx:     1,
		ny:     1,
		outer:  outer,
	}
	w.resetPanes([]plot.Rect{outer})
	return w
}

func (w *Window) ID() ID               { return w.id }
func (w *Window) Device() string       { return w.device }
func (w *Window) Format() *plot.Format { return w.format }
func (w *Window) Kind() Kind           { return w.kind }
func (w *Window) Outer() plot.Rect     { return w.outer }
func (w *Window) CurrentPane() int     { return w.currentPane }

// Grid returns the pane grid and row weights (nil when uniform).
func (w *Window) Grid() (nx, ny int, ysizes []float64) {
	return w.nx, w.ny, slices.Clone(w.ysizes)
}

// Panes returns the pane rectangles.
func (w *Window) Panes() []plot.Rect { return slices.Clone(w.panes) }

func (w *Window) resetPanes(panes []plot.Rect) {
	w.panes = panes
	w.limits = make([][4]float64, len(panes))
	w.limitsOK = make([]bool, len(panes))
	w.currentPane = 0
	w.forceClear = true
	w.pinned = false
}

func (w *Window) pane() plot.Rect {
	if w.kind == SinglePane {
		return w.outer
	}
	return w.panes[w.currentPane]
}

// setLayout lays the panes out anew. It reports whether anything changed;
// an unchanged request is skipped unless forced.
func (w *Window) setLayout(nx, ny int, ysizes []float64, force bool) (bool, error) {
	if !force && w.kind == Subdivided && nx == w.nx && ny == w.ny && slices.Equal(ysizes, w.ysizes) {
		return false, nil
	}
	panes, err := plot.Layout(nx, ny, w.outer, ysizes)
	if err != nil {
		return false, err
	}
	w.kind = Subdivided
	w.nx, w.ny = nx, ny
	w.ysizes = slices.Clone(ysizes)
	w.resetPanes(panes)
	return true, nil
}

// setOuter changes the outer viewport. Subdivided windows are laid out
// again from their current weights.
func (w *Window) setOuter(r plot.Rect) error {
	if r.Empty() {
		return fmt.Errorf("%w: empty viewport %+v", plot.ErrConfig, r)
	}
	prev := w.outer
	w.outer = r
	if w.kind == SinglePane {
		w.panes[0] = r
		return nil
	}
	ysizes := w.ysizes
	if w.ny == 1 && w.nx == 1 {
		ysizes = []float64{1}
	}
	if _, err := w.setLayout(w.nx, w.ny, ysizes, true); err != nil {
		w.outer = prev
		return err
	}
	return nil
}

// selectPane makes pane i the target of the next draw.
func (w *Window) selectPane(i int) error {
	if i < 0 || i >= len(w.panes) || w.kind == SinglePane && i != 0 {
		return fmt.Errorf("%w: pane %d of window %d", plot.ErrLookup, i, w.id)
	}
	w.currentPane = i
	w.pinned = true
	w.forceClear = false
	return nil
}

// clone copies the geometry and Format of w into a new unbound window.
func (w *Window) clone() *Window {
	nw := &Window{
		id:     Deferred,
		format: w.format.Clone(),
		kind:   w.kind,
		nx:     w.nx,
		ny:     w.ny,
		ysizes: slices.Clone(w.ysizes),
		outer:  w.outer,
	}
	nw.resetPanes(slices.Clone(w.panes))
	return nw
}
