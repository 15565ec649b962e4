package render

import "fmt"

// Page tracks the panel grid, viewport and world window of one device.
// Panels are numbered row-major from the top left.
type Page struct {
	NX, NY int
	Panel  int
	VP     [4]float64 // xmin, xmax, ymin, ymax in panel NDC
	Win    [4]float64 // xmin, xmax, ymin, ymax in world coordinates
}

// NewPage returns a single-panel page with a full viewport and unit window.
func NewPage() Page {
	return Page{
		NX:  1,
		NY:  1,
		VP:  [4]float64{0, 1, 0, 1},
		Win: [4]float64{0, 1, 0, 1},
	}
}

// Subdivide sets the panel grid. The next Advance starts a new page.
func (p *Page) Subdivide(nx, ny int) error {
	if nx < 1 || ny < 1 {
		return fmt.Errorf("bad panel grid %dx%d", nx, ny)
	}
	p.NX, p.NY = nx, ny
	p.Panel = nx*ny - 1
	return nil
}

// Advance moves to the next panel and reports whether it wrapped onto a
// new page.
func (p *Page) Advance() bool {
	p.Panel++
	if p.Panel >= p.NX*p.NY {
		p.Panel = 0
		return true
	}
	return false
}

// SetViewport sets the viewport in panel NDC.
func (p *Page) SetViewport(xmin, xmax, ymin, ymax float64) error {
	if !(xmin < xmax) || !(ymin < ymax) {
		return fmt.Errorf("bad viewport [%g,%g]x[%g,%g]", xmin, xmax, ymin, ymax)
	}
	p.VP = [4]float64{xmin, xmax, ymin, ymax}
	return nil
}

// SetWindow sets the world window mapped onto the viewport.
func (p *Page) SetWindow(xmin, xmax, ymin, ymax float64) error {
	if xmin == xmax || ymin == ymax {
		return fmt.Errorf("empty window [%g,%g]x[%g,%g]", xmin, xmax, ymin, ymax)
	}
	p.Win = [4]float64{xmin, xmax, ymin, ymax}
	return nil
}

// PanelFrame returns the device rectangle of the current panel on a
// w by h surface. Device y grows upward.
func (p *Page) PanelFrame(w, h float64) (x0, x1, y0, y1 float64) {
	pw := w / float64(p.NX)
	ph := h / float64(p.NY)
	col := p.Panel % p.NX
	row := p.Panel / p.NX
	x0 = float64(col) * pw
	y0 = h - float64(row+1)*ph
	return x0, x0 + pw, y0, y0 + ph
}

// Frame returns the device rectangle of the current viewport.
func (p *Page) Frame(w, h float64) (x0, x1, y0, y1 float64) {
	px0, px1, py0, py1 := p.PanelFrame(w, h)
	pw := px1 - px0
	ph := py1 - py0
	return px0 + p.VP[0]*pw, px0 + p.VP[1]*pw, py0 + p.VP[2]*ph, py0 + p.VP[3]*ph
}

// Map converts world coordinates to device coordinates.
func (p *Page) Map(w, h, x, y float64) (dx, dy float64) {
	x0, x1, y0, y1 := p.Frame(w, h)
	dx = x0 + (x-p.Win[0])/(p.Win[1]-p.Win[0])*(x1-x0)
	dy = y0 + (y-p.Win[2])/(p.Win[3]-p.Win[2])*(y1-y0)
	return dx, dy
}

// Unmap converts device coordinates back to world coordinates.
func (p *Page) Unmap(w, h, dx, dy float64) (x, y float64) {
	x0, x1, y0, y1 := p.Frame(w, h)
	x = p.Win[0] + (dx-x0)/(x1-x0)*(p.Win[1]-p.Win[0])
	y = p.Win[2] + (dy-y0)/(y1-y0)*(p.Win[3]-p.Win[2])
	return x, y
}
