package hal

import (
	"image"
	"sync"
)

// hostFramebuffer is double buffered: drawing goes to buf and Present
// copies it to front, which is what the window shows.
type hostFramebuffer struct {
	mu     sync.Mutex
	width  int
	height int
	stride int
	buf    []byte
	front  []byte
}

func newHostFramebuffer(width, height int) *hostFramebuffer {
	stride := width * 2
	return &hostFramebuffer{
		width:  width,
		height: height,
		stride: stride,
		buf:    make([]byte, stride*height),
		front:  make([]byte, stride*height),
	}
}

// NewFramebuffer returns an offscreen RGB565 framebuffer.
func NewFramebuffer(width, height int) Framebuffer {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	return newHostFramebuffer(width, height)
}

func (f *hostFramebuffer) Width() int          { return f.width }
func (f *hostFramebuffer) Height() int         { return f.height }
func (f *hostFramebuffer) Format() PixelFormat { return PixelFormatRGB565 }
func (f *hostFramebuffer) StrideBytes() int    { return f.stride }
func (f *hostFramebuffer) Buffer() []byte      { return f.buf }

func (f *hostFramebuffer) Present() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copy(f.front, f.buf)
	return nil
}

func (f *hostFramebuffer) ClearRGB(r, g, b uint8) {
	pixel := RGB565(r, g, b)
	lo := byte(pixel)
	hi := byte(pixel >> 8)
	for i := 0; i < len(f.buf); i += 2 {
		f.buf[i] = lo
		f.buf[i+1] = hi
	}
}

// frontRGBA converts the presented frame into dst, reallocating it when
// the size differs, and returns it.
func (f *hostFramebuffer) frontRGBA(dst *image.RGBA) *image.RGBA {
	if dst == nil || dst.Bounds().Dx() != f.width || dst.Bounds().Dy() != f.height {
		dst = image.NewRGBA(image.Rect(0, 0, f.width, f.height))
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for y := 0; y < f.height; y++ {
		row := f.front[y*f.stride:]
		pix := dst.Pix[y*dst.Stride:]
		for x := 0; x < f.width; x++ {
			r, g, b := RGB888(uint16(row[2*x]) | uint16(row[2*x+1])<<8)
			pix[4*x+0] = r
			pix[4*x+1] = g
			pix[4*x+2] = b
			pix[4*x+3] = 0xFF
		}
	}
	return dst
}
