// Package fbdev is a plot backend drawing into RGB565 framebuffers.
//
// Two device types are known: "/fb" is the host framebuffer (one window at
// a time, cursor input from the host keyboard) and "/mem" an offscreen
// surface. An offscreen size can be given as "WxH/mem".
package fbdev

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"plotwin/hal"
	"plotwin/plot/render"
)

const (
	memWidth  = 640
	memHeight = 480
)

var (
	errNoDevice = errors.New("fbdev: no device selected")
	errBusy     = errors.New("fbdev: host framebuffer already open")
	errNoHost   = errors.New("fbdev: no host framebuffer")
)

// Backend implements render.Backend over framebuffers.
type Backend struct {
	render.Unsupported

	host hal.Framebuffer
	kbd  hal.Keyboard

	devs   map[int]*device
	cur    *device
	nextID int
}

// New returns a backend. host and kbd may be nil; without them "/fb" cannot
// be opened and cursor reads are unsupported.
func New(host hal.Framebuffer, kbd hal.Keyboard) *Backend {
	return &Backend{
		host: host,
		kbd:  kbd,
		devs: make(map[int]*device),
	}
}

type device struct {
	id    int
	name  string
	host  bool
	fb    hal.Framebuffer
	d     *fbDisplay
	page  render.Page
	color int
	style int
	width int
	clip  bool
	char  float64
}

func (dev *device) size() (w, h float64) {
	return float64(dev.fb.Width()), float64(dev.fb.Height())
}

// toPixel maps world coordinates to framebuffer pixels (y down).
func (dev *device) toPixel(x, y float64) (px, py float64) {
	w, h := dev.size()
	dx, dy := dev.page.Map(w, h, x, y)
	return dx, h - dy
}

// frame returns the current viewport in framebuffer pixels.
func (dev *device) frame() (x0, y0, x1, y1 float64) {
	w, h := dev.size()
	fx0, fx1, fy0, fy1 := dev.page.Frame(w, h)
	return fx0, h - fy1, fx1, h - fy0
}

func (dev *device) pen() *pen {
	p := &pen{
		pixel: palette565(dev.color),
		width: max(1, dev.width),
	}
	for _, v := range render.Dashes(dev.style) {
		p.dashes = append(p.dashes, max(1, roundInt(v*float64(p.width))))
	}
	return p
}

func palette565(i int) uint16 {
	c := render.Color(i)
	return hal.RGB565(c.R, c.G, c.B)
}

func (dev *device) clear() {
	c := render.Color(0)
	dev.fb.ClearRGB(c.R, c.G, c.B)
}

func parseDevice(spec string) (name, typ string) {
	i := strings.LastIndexByte(spec, '/')
	if i < 0 {
		return spec, ""
	}
	return spec[:i], strings.ToLower(spec[i+1:])
}

func parseSize(s string) (w, h int, err error) {
	ws, hs, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return 0, 0, fmt.Errorf("fbdev: bad size %q", s)
	}
	if w, err = strconv.Atoi(ws); err != nil || w < 1 {
		return 0, 0, fmt.Errorf("fbdev: bad size %q", s)
	}
	if h, err = strconv.Atoi(hs); err != nil || h < 1 {
		return 0, 0, fmt.Errorf("fbdev: bad size %q", s)
	}
	return w, h, nil
}

func (b *Backend) Open(spec string) (int, error) {
	name, typ := parseDevice(spec)
	dev := &device{
		name:  spec,
		page:  render.NewPage(),
		color: 1,
		style: 1,
		width: 1,
		clip:  true,
		char:  1,
	}
	switch typ {
	case "fb":
		if b.host == nil {
			return 0, errNoHost
		}
		for _, d := range b.devs {
			if d.host {
				return 0, errBusy
			}
		}
		dev.fb, dev.host = b.host, true
	case "mem":
		w, h := memWidth, memHeight
		if name != "" {
			var err error
			if w, h, err = parseSize(name); err != nil {
				return 0, err
			}
		}
		dev.fb = hal.NewFramebuffer(w, h)
	default:
		return 0, fmt.Errorf("fbdev: unknown device type %q", spec)
	}
	dev.d = newFBDisplay(dev.fb)
	dev.clear()
	b.nextID++
	dev.id = b.nextID
	b.devs[dev.id] = dev
	b.cur = dev
	return dev.id, nil
}

// Framebuffer returns the surface of device id.
func (b *Backend) Framebuffer(id int) (hal.Framebuffer, bool) {
	dev, ok := b.devs[id]
	if !ok {
		return nil, false
	}
	return dev.fb, true
}

func (b *Backend) device() (*device, error) {
	if b.cur == nil {
		return nil, errNoDevice
	}
	return b.cur, nil
}

func (b *Backend) Close() error {
	dev, err := b.device()
	if err != nil {
		return err
	}
	delete(b.devs, dev.id)
	b.cur = nil
	return nil
}

func (b *Backend) SelectWindow(id int) error {
	dev, ok := b.devs[id]
	if !ok {
		return fmt.Errorf("fbdev: no device %d", id)
	}
	b.cur = dev
	return nil
}

func (b *Backend) Subdivide(nx, ny int) error {
	dev, err := b.device()
	if err != nil {
		return err
	}
	return dev.page.Subdivide(nx, ny)
}

func (b *Backend) SelectViewport(xmin, xmax, ymin, ymax float64) error {
	dev, err := b.device()
	if err != nil {
		return err
	}
	return dev.page.SetViewport(xmin, xmax, ymin, ymax)
}

func (b *Backend) SetPlotLimits(xmin, xmax, ymin, ymax float64) error {
	dev, err := b.device()
	if err != nil {
		return err
	}
	return dev.page.SetWindow(xmin, xmax, ymin, ymax)
}

func (b *Backend) QueryPlotLimits() (xmin, xmax, ymin, ymax float64, err error) {
	dev, err := b.device()
	if err != nil {
		return 0, 0, 0, 0, err
	}
	w := dev.page.Win
	return w[0], w[1], w[2], w[3], nil
}

func (b *Backend) Erase() error {
	dev, err := b.device()
	if err != nil {
		return err
	}
	dev.clear()
	return nil
}

func (b *Backend) Update() error {
	dev, err := b.device()
	if err != nil {
		return err
	}
	return dev.fb.Present()
}

// NextPage moves to the next panel; the surface is cleared when the panel
// grid wraps.
func (b *Backend) NextPage() error {
	dev, err := b.device()
	if err != nil {
		return err
	}
	if dev.page.Advance() {
		dev.clear()
	}
	return nil
}

func (b *Backend) GetColor() (int, error) {
	dev, err := b.device()
	if err != nil {
		return 0, err
	}
	return dev.color, nil
}

func (b *Backend) SetColor(c int) error {
	dev, err := b.device()
	if err != nil {
		return err
	}
	if c < 0 {
		return fmt.Errorf("fbdev: color %d", c)
	}
	dev.color = c
	return nil
}

func (b *Backend) SetLineStyle(s int) error {
	dev, err := b.device()
	if err != nil {
		return err
	}
	dev.style = (s-1)%render.MaxLineStyles + 1
	if dev.style < 1 {
		dev.style = 1
	}
	return nil
}

func (b *Backend) SetLineWidth(w int) error {
	dev, err := b.device()
	if err != nil {
		return err
	}
	dev.width = max(1, w)
	return nil
}

func (b *Backend) SetClipping(on bool) error {
	dev, err := b.device()
	if err != nil {
		return err
	}
	dev.clip = on
	return nil
}

func (b *Backend) SetCharSize(size float64) error {
	dev, err := b.device()
	if err != nil {
		return err
	}
	if !(size > 0) || math.IsInf(size, 0) {
		return fmt.Errorf("fbdev: char size %g", size)
	}
	dev.char = size
	return nil
}

// SetViewerSize resizes an offscreen device to width pixels by
// width*aspect. The host framebuffer has a fixed size.
func (b *Backend) SetViewerSize(width, aspect float64) error {
	dev, err := b.device()
	if err != nil {
		return err
	}
	if dev.host {
		return render.ErrUnsupported
	}
	w, h := roundInt(width), roundInt(width*aspect)
	if w < 1 || h < 1 || w > 1<<14 || h > 1<<14 {
		return fmt.Errorf("fbdev: size %dx%d", w, h)
	}
	dev.fb = hal.NewFramebuffer(w, h)
	dev.d = newFBDisplay(dev.fb)
	dev.clear()
	return nil
}

func (b *Backend) DefaultAxis() (string, error) { return render.DefaultAxisOpt, nil }

func (b *Backend) ConfigureAxis(opt string, isLog, hasNumbers bool) (string, error) {
	return render.ConfigureAxis(opt, isLog, hasNumbers), nil
}
