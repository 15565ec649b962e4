package app

import (
	"context"
	"errors"
	"io"

	"plotwin/hal"

	"golang.org/x/sync/errgroup"
)

// Options wires a session to its host.
type Options struct {
	// Commands are read from In, one per line; results go to Out.
	In  io.Reader
	Out io.Writer
	// Interactive enables cursor reads from the host keyboard.
	Interactive bool
}

// New starts a session on h and returns the per-tick step of the host
// loop. The step reports ErrQuit once the session has ended normally.
func New(ctx context.Context, h hal.HAL, cfg Config, opts Options) func() error {
	var fb hal.Framebuffer
	if d := h.Display(); d != nil {
		fb = d.Framebuffer()
	}
	var kbd hal.Keyboard
	if in := h.Input(); in != nil && opts.Interactive {
		kbd = in.Keyboard()
	}
	s, err := NewSession(cfg, Backends(fb, kbd), h.Logger(), opts.Out)
	if err != nil {
		return func() error { return err }
	}

	ctx, cancel := context.WithCancel(ctx)
	g, gctx := errgroup.WithContext(ctx)
	lines := ReadLines(opts.In)
	g.Go(func() error { return s.Run(gctx) })
	g.Go(func() error {
		defer cancel()
		return s.Feed(gctx, lines)
	})

	done := make(chan error, 1)
	go func() { done <- g.Wait() }()

	var result error
	return func() error {
		if result != nil {
			return result
		}
		select {
		case err := <-done:
			result = err
			if err == nil || errors.Is(err, context.Canceled) {
				result = ErrQuit
			}
		default:
		}
		return result
	}
}
