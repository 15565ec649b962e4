package fbdev

import (
	"errors"

	"plotwin/hal"
	"plotwin/plot/render"
)

const (
	cursorStep     = 4
	cursorFineStep = 1
	cursorColor    = 7
)

var errKeyboardClosed = errors.New("fbdev: keyboard closed")

// ReadCursor shows a cursor on the host framebuffer and moves it with the
// arrow keys until a key selects a point. Enter reports '\r', Escape 0x1b
// and Backspace 0x08; Tab toggles fine steps and Home jumps to the anchor.
func (b *Backend) ReadCursor(cfg render.CursorConfig) (x, y float64, key rune, err error) {
	dev, err := b.device()
	if err != nil {
		return 0, 0, 0, err
	}
	if b.kbd == nil || !dev.host {
		return 0, 0, 0, render.ErrUnsupported
	}
	events := b.kbd.Events()
	if events == nil {
		return 0, 0, 0, render.ErrUnsupported
	}

	fx0, fy0, fx1, fy1 := dev.frame()
	ax, ay := dev.toPixel(cfg.AnchorX, cfg.AnchorY)
	px, py := (fx0+fx1)/2, (fy0+fy1)/2
	if cfg.HasStart {
		px, py = dev.toPixel(cfg.StartX, cfg.StartY)
	}
	w, h := dev.size()
	step := float64(cursorStep)
	saved := make([]byte, len(dev.fb.Buffer()))

	for {
		px, py = clampFloat(px, 0, w-1), clampFloat(py, 0, h-1)

		buf := dev.fb.Buffer()
		copy(saved, buf)
		dev.drawCursor(cfg.Mode, px, py, ax, ay)
		perr := dev.fb.Present()
		copy(buf, saved)
		if perr != nil {
			return 0, 0, 0, perr
		}

		ev, ok := <-events
		if !ok {
			_ = dev.fb.Present()
			return 0, 0, 0, errKeyboardClosed
		}
		if !ev.Press {
			continue
		}
		switch ev.Code {
		case hal.KeyUp:
			py -= step
		case hal.KeyDown:
			py += step
		case hal.KeyLeft:
			px -= step
		case hal.KeyRight:
			px += step
		case hal.KeyTab:
			if step == cursorStep {
				step = cursorFineStep
			} else {
				step = cursorStep
			}
		case hal.KeyHome:
			px, py = ax, ay
		case hal.KeyEnter:
			key = '\r'
		case hal.KeyEscape:
			key = 0x1b
		case hal.KeyBackspace:
			key = 0x08
		default:
			key = ev.Rune
		}
		if key != 0 {
			if err := dev.fb.Present(); err != nil {
				return 0, 0, 0, err
			}
			x, y = dev.page.Unmap(w, h, px, h-py)
			return x, y, key, nil
		}
	}
}

// drawCursor draws the cursor and its band into the back buffer.
func (dev *device) drawCursor(mode render.CursorMode, px, py, ax, ay float64) {
	p := &pen{pixel: palette565(cursorColor), width: 1}
	x0, y0, x1, y1 := dev.frame()
	line := func(ax, ay, bx, by float64) {
		p.line(dev.d, roundInt(ax), roundInt(ay), roundInt(bx), roundInt(by))
	}
	switch mode {
	case render.CursorLine:
		line(ax, ay, px, py)
	case render.CursorBox:
		line(ax, ay, px, ay)
		line(px, ay, px, py)
		line(px, py, ax, py)
		line(ax, py, ax, ay)
	case render.CursorXRange:
		line(ax, y0, ax, y1)
		line(px, y0, px, y1)
	case render.CursorYRange:
		line(x0, ay, x1, ay)
		line(x0, py, x1, py)
	case render.CursorHLine:
		line(x0, py, x1, py)
	case render.CursorVLine:
		line(px, y0, px, y1)
	case render.CursorCross:
		line(x0, py, x1, py)
		line(px, y0, px, y1)
		return
	}
	line(px-5, py, px+5, py)
	line(px, py-5, px, py+5)
}
