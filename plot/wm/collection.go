// Package wm manages plot windows: their order, focus and pane layout, and
// the pipeline that turns curve and histogram requests into backend calls.
//
// A Collection is not safe for concurrent use; callers that accept
// commands from several goroutines must funnel them through one owner.
package wm

import (
	"errors"
	"fmt"
	"slices"

	"plotwin/plot"
	"plotwin/plot/render"
)

// Collection is the set of open windows plus focus bookkeeping.
type Collection struct {
	cfg Config
	r   *render.Registry
	log Logger

	windows  map[ID]*Window
	order    []ID
	focus    ID
	history  *History
	saved    *plot.Format
	deferred *Window

	warned map[string]bool
}

// New returns an empty collection drawing through r.
func New(r *render.Registry, cfg Config, log Logger) *Collection {
	cfg = cfg.normalized()
	return &Collection{
		cfg:     cfg,
		r:       r,
		log:     log,
		windows: make(map[ID]*Window),
		history: NewHistory(cfg.HistoryCap),
		warned:  make(map[string]bool),
	}
}

func (c *Collection) logf(format string, args ...any) {
	if c.log == nil {
		return
	}
	c.log.WriteLineString(fmt.Sprintf(format, args...))
}

// soft turns an unsupported optional operation into a logged no-op.
func (c *Collection) soft(err error) error {
	if err == nil || !errors.Is(err, render.ErrUnsupported) {
		return err
	}
	if msg := err.Error(); !c.warned[msg] {
		c.warned[msg] = true
		c.logf("wm: %s", msg)
	}
	return nil
}

func (c *Collection) alive(id ID) bool {
	_, ok := c.windows[id]
	return ok
}

// Focus returns the focused window id: None, Deferred or a device id.
func (c *Collection) Focus() ID { return c.focus }

// Windows returns the ids of the bound windows in opening order.
func (c *Collection) Windows() []ID { return slices.Clone(c.order) }

// Window returns a bound window, or the deferred window for Deferred.
func (c *Collection) Window(id ID) (*Window, error) {
	if id == Deferred && c.deferred != nil {
		return c.deferred, nil
	}
	w, ok := c.windows[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", plot.ErrLookup, id)
	}
	return w, nil
}

// SavedFormat returns the snapshot taken when the focused window was last
// closed, or nil.
func (c *Collection) SavedFormat() *plot.Format { return c.saved }

// SetDevice changes the device opened when drawing starts with no window.
func (c *Collection) SetDevice(device string) { c.cfg.Device = device }

func (c *Collection) focused() *Window {
	switch c.focus {
	case None:
		return nil
	case Deferred:
		return c.deferred
	}
	return c.windows[c.focus]
}

// inherit picks the Format of a new window: the most recently focused live
// window, else the last closed focused window, else the defaults.
func (c *Collection) inherit() *plot.Format {
	if id, ok := c.history.Top(c.alive); ok {
		return c.windows[id].format.Clone()
	}
	if c.saved != nil {
		return c.saved.Clone()
	}
	return c.cfg.Format.Clone()
}

// current returns the focused window, creating the deferred window when
// nothing has focus.
func (c *Collection) current() *Window {
	if w := c.focused(); w != nil {
		return w
	}
	if c.deferred == nil {
		c.deferred = newWindow(c.inherit(), c.cfg.Viewport)
	}
	c.focus = Deferred
	return c.deferred
}

// CurrentFormat returns the Format of the focused window. With no focus it
// creates a deferred window that the next Open binds to a device.
func (c *Collection) CurrentFormat() *plot.Format {
	return c.current().format
}

// Open binds a window to a new backend device and focuses it. The
// deferred window is used if there is one. nx by ny panels (both >= 1)
// are handed to the backend; 1x1 keeps any pending layout.
func (c *Collection) Open(device string, nx, ny int) (ID, error) {
	if nx < 1 || ny < 1 {
		return None, fmt.Errorf("%w: %dx%d panels", plot.ErrConfig, nx, ny)
	}
	if device == "" {
		device = c.cfg.Device
	}
	w := c.deferred
	if w == nil {
		w = newWindow(c.inherit(), c.cfg.Viewport)
	}
	if nx*ny > 1 {
		prev := *w
		w.kind = SinglePane
		w.nx, w.ny, w.ysizes = nx, ny, nil
		w.resetPanes([]plot.Rect{w.outer})
		if err := c.attach(w, device); err != nil {
			*w = prev
			return None, err
		}
	} else if err := c.attach(w, device); err != nil {
		return None, err
	}
	if w == c.deferred {
		c.deferred = nil
	}
	return w.id, nil
}

// attach opens a device for w, applies its panel layout and focuses it.
func (c *Collection) attach(w *Window, device string) error {
	id, err := c.r.Open(device)
	if err != nil {
		return err
	}
	w.id = ID(id)
	w.device = device
	w.format.Bind(id, c.r)
	if s, err := c.r.DefaultAxis(); err == nil {
		w.format.ResetAxisOpts(s)
	}
	c.windows[w.id] = w
	c.order = append(c.order, w.id)
	c.history.Push(w.id)
	c.focus = w.id

	if err := c.soft(c.r.SelectWindow(id)); err != nil {
		c.logf("wm: open %d: %v", id, err)
	}
	nx, ny := w.nx, w.ny
	if w.kind == Subdivided {
		nx, ny = 1, 1
	}
	if err := c.soft(c.r.Subdivide(nx, ny)); err != nil {
		c.logf("wm: open %d: %v", id, err)
	}
	w.forceClear = true
	c.logf("wm: open %d %s", id, device)
	return nil
}

// Close closes a window (None: the focused one). Closing the focused
// window snapshots its Format for later inheritance and moves focus to
// the most recently focused window still open.
//
// The collection is updated before the device is closed, so a backend
// that fails or panics while closing leaves consistent state behind.
func (c *Collection) Close(id ID) error {
	if id == None {
		id = c.focus
	}
	if id == Deferred && c.deferred != nil {
		if c.focus == Deferred {
			c.saved = c.deferred.format.Clone()
			c.focus = None
		}
		c.deferred = nil
		return nil
	}
	w, ok := c.windows[id]
	if !ok {
		return fmt.Errorf("%w: close %d", plot.ErrLookup, id)
	}
	wasFocus := c.focus == id
	if wasFocus {
		c.saved = w.format.Clone()
	}
	delete(c.windows, id)
	if i := slices.Index(c.order, id); i >= 0 {
		c.order = slices.Delete(c.order, i, i+1)
	}
	if wasFocus {
		c.focus = None
		if next, ok := c.history.Top(c.alive); ok {
			c.focus = next
		}
	}

	err := c.soft(c.r.SelectWindow(int(id)))
	if err == nil {
		err = c.r.Close()
	}
	if f := c.focused(); f != nil && f.id > 0 {
		_ = c.soft(c.r.SelectWindow(int(f.id)))
	}
	if err != nil {
		c.logf("wm: close %d: %v", id, err)
		return err
	}
	c.logf("wm: close %d", id)
	return nil
}

// Copy opens device with the geometry and Format of window src (None: the
// focused window) and focuses the copy. Drawn content is not replayed.
func (c *Collection) Copy(device string, src ID) (ID, error) {
	if len(c.windows) == 0 {
		return None, fmt.Errorf("%w: no window to copy", plot.ErrLookup)
	}
	if src == None {
		src = c.focus
	}
	w, ok := c.windows[src]
	if !ok {
		return None, fmt.Errorf("%w: copy %d", plot.ErrLookup, src)
	}
	nw := w.clone()
	if err := c.attach(nw, device); err != nil {
		return None, err
	}
	return nw.id, nil
}

// Select focuses a bound window.
func (c *Collection) Select(id ID) error {
	w, ok := c.windows[id]
	if !ok {
		return fmt.Errorf("%w: select %d", plot.ErrLookup, id)
	}
	if err := c.soft(c.r.SelectWindow(int(w.id))); err != nil {
		return err
	}
	c.history.Push(id)
	c.focus = id
	return nil
}

// Erase clears a window (None: the focused one). The next draw starts on
// the first pane.
func (c *Collection) Erase(id ID) error {
	if id == None {
		id = c.focus
	}
	if id == Deferred {
		return nil
	}
	w, ok := c.windows[id]
	if !ok {
		return fmt.Errorf("%w: erase %d", plot.ErrLookup, id)
	}
	if err := c.soft(c.r.SelectWindow(int(id))); err != nil {
		return err
	}
	err := c.r.Erase()
	w.resetPanes(w.panes)
	w.format.SetRendered(false)
	if f := c.focused(); f != nil && f.id > 0 && f != w {
		_ = c.soft(c.r.SelectWindow(int(f.id)))
	}
	return err
}

// Resize sets the physical size of the focused device.
func (c *Collection) Resize(width, aspect float64) error {
	if !(width > 0) || !(aspect > 0) {
		return fmt.Errorf("%w: size %g aspect %g", plot.ErrConfig, width, aspect)
	}
	w := c.focused()
	if w == nil || w.id == Deferred {
		return fmt.Errorf("%w: resize: no open window", plot.ErrLookup)
	}
	return c.r.SetViewerSize(width, aspect)
}

// SetOuterViewport sets the outer viewport of the focused window.
func (c *Collection) SetOuterViewport(r plot.Rect) error {
	w := c.current()
	return w.setOuter(r)
}

// Multiplot splits the focused window into len(ysizes) rows with heights
// proportional to ysizes. An identical layout is left alone.
func (c *Collection) Multiplot(ysizes []float64) error {
	if len(ysizes) == 0 {
		return fmt.Errorf("%w: no row weights", plot.ErrConfig)
	}
	return c.layout(1, len(ysizes), ysizes)
}

// SetGrid splits the focused window into a uniform nx by ny grid.
func (c *Collection) SetGrid(nx, ny int) error {
	return c.layout(nx, ny, nil)
}

func (c *Collection) layout(nx, ny int, ysizes []float64) error {
	w := c.current()
	changed, err := w.setLayout(nx, ny, ysizes, false)
	if err != nil || !changed || w.id == Deferred {
		return err
	}
	return c.soft(c.r.Subdivide(1, 1))
}

// SelectPane makes pane i of the focused window the target of the next
// draw and of overlays.
func (c *Collection) SelectPane(i int) error {
	return c.current().selectPane(i)
}
