//go:build cgo

package hal

import (
	"context"
	"errors"
	"image"

	"plotwin/internal/buildinfo"

	"github.com/hajimehoshi/ebiten/v2"
)

// WindowConfig controls the desktop window runner.
type WindowConfig struct {
	// Scale multiplies the framebuffer size for the initial window size.
	Scale int
	// Snapshot names a PNG file that receives the last presented frame
	// when the window closes.
	Snapshot string
}

// RunWindow shows the framebuffer in a desktop window and forwards
// keyboard input. step runs once per frame on the window's goroutine.
// RunWindow blocks until the window closes, ctx ends or step fails.
func RunWindow(ctx context.Context, newApp func(HAL) func() error, cfg WindowConfig) error {
	if cfg.Scale < 1 {
		cfg.Scale = 1
	}
	h := newHost(logOutput())
	v := &viewer{ctx: ctx, h: h, step: newApp(h)}

	ebiten.SetWindowTitle("plotwin (" + buildinfo.Short() + ")")
	ebiten.SetWindowSize(h.fb.width*cfg.Scale, h.fb.height*cfg.Scale)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	err := ebiten.RunGame(v)
	if err == ebiten.Termination {
		err = ctx.Err()
	}
	if cfg.Snapshot != "" {
		err = errors.Join(err, writeSnapshot(cfg.Snapshot, h.fb))
	}
	return err
}

// viewer adapts the host to ebiten.Game.
type viewer struct {
	ctx   context.Context
	h     *hostHAL
	step  func() error
	frame *image.RGBA
	img   *ebiten.Image
}

func (v *viewer) Update() error {
	if v.ctx.Err() != nil {
		return ebiten.Termination
	}
	v.h.kbd.poll()
	if v.step == nil {
		return nil
	}
	return v.step()
}

func (v *viewer) Draw(screen *ebiten.Image) {
	v.frame = v.h.fb.frontRGBA(v.frame)
	b := v.frame.Bounds()
	if v.img == nil || v.img.Bounds() != b {
		if v.img != nil {
			v.img.Deallocate()
		}
		v.img = ebiten.NewImage(b.Dx(), b.Dy())
	}
	v.img.WritePixels(v.frame.Pix)
	screen.DrawImage(v.img, nil)
}

func (v *viewer) Layout(_, _ int) (int, int) {
	return v.h.fb.width, v.h.fb.height
}
