// Package vgfile is a plot backend writing PNG, SVG and PDF files through
// gonum.org/v1/plot/vg.
//
// A device is named "path/type", for example "out/fit.png/png". Each page
// goes to its own file: the first to path itself, later ones to
// path_2.png, path_3.png and so on. PNG files are rewritten on every
// Update; SVG and PDF files are written when the page is finished.
package vgfile

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"plotwin/plot/render"

	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
	"gonum.org/v1/plot/vg/vgpdf"
	"gonum.org/v1/plot/vg/vgsvg"
)

const (
	defaultWidth  = 640
	defaultHeight = 480

	// lineUnit is the stroke width of line width 1.
	lineUnit = 0.75
)

var errNoDevice = errors.New("vgfile: no device selected")

// Backend implements render.Backend over vector and raster files.
type Backend struct {
	render.Unsupported

	devs   map[int]*device
	cur    *device
	nextID int
}

func New() *Backend {
	return &Backend{devs: make(map[int]*device)}
}

type canvas interface {
	vg.CanvasSizer
	io.WriterTo
}

type device struct {
	id     int
	path   string
	format string
	w, h   vg.Length

	c    canvas
	dc   draw.Canvas
	page render.Page

	color int
	style int
	width int
	clip  bool
	char  float64

	pageNo int
	drawn  bool
	saved  bool
}

func newCanvas(format string, w, h vg.Length) (canvas, error) {
	switch format {
	case "png":
		return vgimg.PngCanvas{Canvas: vgimg.New(w, h)}, nil
	case "svg":
		return vgsvg.New(w, h), nil
	case "pdf":
		return vgpdf.New(w, h), nil
	}
	return nil, fmt.Errorf("vgfile: unknown file type %q", format)
}

// ink maps a color index to paper colors: the background and foreground
// entries of the palette swap places.
func ink(i int) color.Color {
	switch c := render.Color(i); c {
	case render.Palette[0]:
		return render.Palette[1]
	case render.Palette[1]:
		return render.Palette[0]
	default:
		return c
	}
}

// newPage starts a blank canvas for the current page number.
func (dev *device) newPage() error {
	c, err := newCanvas(dev.format, dev.w, dev.h)
	if err != nil {
		return err
	}
	dev.c = c
	dev.dc = draw.New(c)
	r := dev.dc.Rectangle
	dev.dc.FillPolygon(ink(0), []vg.Point{
		r.Min, {X: r.Max.X, Y: r.Min.Y}, r.Max, {X: r.Min.X, Y: r.Max.Y},
	})
	dev.drawn, dev.saved = false, false
	return nil
}

func (dev *device) fileName() string {
	if dev.pageNo <= 1 {
		return dev.path
	}
	ext := filepath.Ext(dev.path)
	return fmt.Sprintf("%s_%d%s", strings.TrimSuffix(dev.path, ext), dev.pageNo, ext)
}

// write saves the current page if it has unsaved drawing.
func (dev *device) write() error {
	if !dev.drawn || dev.saved {
		return nil
	}
	name := dev.fileName()
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	if _, err := dev.c.WriteTo(f); err != nil {
		f.Close()
		return fmt.Errorf("vgfile: writing %s: %w", name, err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	dev.saved = true
	return nil
}

func (dev *device) mark() {
	dev.drawn, dev.saved = true, false
}

func (dev *device) size() (w, h float64) {
	return float64(dev.w), float64(dev.h)
}

func (dev *device) toPoint(x, y float64) vg.Point {
	w, h := dev.size()
	dx, dy := dev.page.Map(w, h, x, y)
	return vg.Point{X: vg.Length(dx), Y: vg.Length(dy)}
}

func (dev *device) frame() vg.Rectangle {
	w, h := dev.size()
	x0, x1, y0, y1 := dev.page.Frame(w, h)
	return vg.Rectangle{
		Min: vg.Point{X: vg.Length(x0), Y: vg.Length(y0)},
		Max: vg.Point{X: vg.Length(x1), Y: vg.Length(y1)},
	}
}

// target is the canvas drawing is clipped to.
func (dev *device) target() draw.Canvas {
	if !dev.clip {
		return dev.dc
	}
	return draw.Canvas{Canvas: dev.dc.Canvas, Rectangle: dev.frame()}
}

func (dev *device) lineStyle() draw.LineStyle {
	w := vg.Length(float64(max(1, dev.width)) * lineUnit)
	sty := draw.LineStyle{Color: ink(dev.color), Width: w}
	for _, d := range render.Dashes(dev.style) {
		sty.Dashes = append(sty.Dashes, vg.Length(d)*w)
	}
	return sty
}

func parseDevice(spec string) (path, typ string) {
	i := strings.LastIndexByte(spec, '/')
	if i < 0 {
		return spec, ""
	}
	return spec[:i], strings.ToLower(spec[i+1:])
}

func (b *Backend) Open(spec string) (int, error) {
	path, typ := parseDevice(spec)
	if path == "" {
		return 0, fmt.Errorf("vgfile: no file name in %q", spec)
	}
	dev := &device{
		path:   path,
		format: typ,
		w:      defaultWidth,
		h:      defaultHeight,
		page:   render.NewPage(),
		color:  1,
		style:  1,
		width:  1,
		clip:   true,
		char:   1,
		pageNo: 1,
	}
	if err := dev.newPage(); err != nil {
		return 0, err
	}
	b.nextID++
	dev.id = b.nextID
	b.devs[dev.id] = dev
	b.cur = dev
	return dev.id, nil
}

func (b *Backend) device() (*device, error) {
	if b.cur == nil {
		return nil, errNoDevice
	}
	return b.cur, nil
}

// Close writes any unsaved page and forgets the device.
func (b *Backend) Close() error {
	dev, err := b.device()
	if err != nil {
		return err
	}
	delete(b.devs, dev.id)
	b.cur = nil
	return dev.write()
}

func (b *Backend) SelectWindow(id int) error {
	dev, ok := b.devs[id]
	if !ok {
		return fmt.Errorf("vgfile: no device %d", id)
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
	return dev.newPage()
}

// Update rewrites a PNG page. Vector pages are written once, when
// finished.
func (b *Backend) Update() error {
	dev, err := b.device()
	if err != nil {
		return err
	}
	if dev.format != "png" {
		return nil
	}
	return dev.write()
}

// NextPage moves to the next panel. When the panel grid wraps a drawn page
// is written and the next file started.
func (b *Backend) NextPage() error {
	dev, err := b.device()
	if err != nil {
		return err
	}
	if !dev.page.Advance() {
		return nil
	}
	if dev.drawn {
		if err := dev.write(); err != nil {
			return err
		}
		dev.pageNo++
	}
	return dev.newPage()
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
		return fmt.Errorf("vgfile: color %d", c)
	}
	dev.color = c
	return nil
}

func (b *Backend) SetLineStyle(s int) error {
	dev, err := b.device()
	if err != nil {
		return err
	}
	dev.style = max(1, (s-1)%render.MaxLineStyles+1)
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
		return fmt.Errorf("vgfile: char size %g", size)
	}
	dev.char = size
	return nil
}

// SetViewerSize sets the page to width points by width*aspect and starts
// the page over.
func (b *Backend) SetViewerSize(width, aspect float64) error {
	dev, err := b.device()
	if err != nil {
		return err
	}
	h := width * aspect
	if !(width >= 1) || !(h >= 1) || math.IsInf(h, 0) {
		return fmt.Errorf("vgfile: size %gx%g", width, h)
	}
	dev.w, dev.h = vg.Length(width), vg.Length(h)
	return dev.newPage()
}

func (b *Backend) DefaultAxis() (string, error) { return render.DefaultAxisOpt, nil }

func (b *Backend) ConfigureAxis(opt string, isLog, hasNumbers bool) (string, error) {
	return render.ConfigureAxis(opt, isLog, hasNumbers), nil
}
