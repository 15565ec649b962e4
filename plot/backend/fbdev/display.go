package fbdev

import (
	"image/color"

	"plotwin/hal"

	"tinygo.org/x/drivers"
)

// fbDisplay adapts an RGB565 framebuffer to drivers.Displayer so tinyfont
// can draw into it.
type fbDisplay struct {
	fb hal.Framebuffer
}

var _ drivers.Displayer = (*fbDisplay)(nil)

func newFBDisplay(fb hal.Framebuffer) *fbDisplay {
	return &fbDisplay{fb: fb}
}

func (d *fbDisplay) Size() (x, y int16) {
	if d.fb == nil {
		return 0, 0
	}
	return int16(d.fb.Width()), int16(d.fb.Height())
}

func (d *fbDisplay) SetPixel(x, y int16, c color.RGBA) {
	d.setPixel(int(x), int(y), hal.RGB565(c.R, c.G, c.B))
}

func (d *fbDisplay) setPixel(x, y int, pixel uint16) {
	if d.fb == nil || d.fb.Format() != hal.PixelFormatRGB565 {
		return
	}
	buf := d.fb.Buffer()
	if x < 0 || x >= d.fb.Width() || y < 0 || y >= d.fb.Height() {
		return
	}
	off := y*d.fb.StrideBytes() + x*2
	if off < 0 || off+1 >= len(buf) {
		return
	}
	buf[off] = byte(pixel)
	buf[off+1] = byte(pixel >> 8)
}

func (d *fbDisplay) pixel(x, y int) uint16 {
	buf := d.fb.Buffer()
	off := y*d.fb.StrideBytes() + x*2
	if x < 0 || x >= d.fb.Width() || y < 0 || y >= d.fb.Height() || off+1 >= len(buf) {
		return 0
	}
	return uint16(buf[off]) | uint16(buf[off+1])<<8
}

func (d *fbDisplay) Display() error {
	if d.fb == nil {
		return nil
	}
	return d.fb.Present()
}

func (d *fbDisplay) FillRectangle(x, y, width, height int16, c color.RGBA) error {
	d.fill(int(x), int(y), int(x)+int(width), int(y)+int(height), hal.RGB565(c.R, c.G, c.B))
	return nil
}

func (d *fbDisplay) fill(x0, y0, x1, y1 int, pixel uint16) {
	if d.fb == nil || d.fb.Format() != hal.PixelFormatRGB565 {
		return
	}
	buf := d.fb.Buffer()
	w := d.fb.Width()
	h := d.fb.Height()
	x0 = clampInt(x0, 0, w)
	y0 = clampInt(y0, 0, h)
	x1 = clampInt(x1, 0, w)
	y1 = clampInt(y1, 0, h)
	if x0 >= x1 || y0 >= y1 {
		return
	}

	lo := byte(pixel)
	hi := byte(pixel >> 8)
	stride := d.fb.StrideBytes()
	for py := y0; py < y1; py++ {
		row := py * stride
		for px := x0; px < x1; px++ {
			off := row + px*2
			if off+1 >= len(buf) {
				continue
			}
			buf[off] = lo
			buf[off+1] = hi
		}
	}
}

func (d *fbDisplay) SetRotation(rotation drivers.Rotation) error {
	_ = rotation
	return nil
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
