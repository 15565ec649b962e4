package hal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"
)

// HeadlessConfig controls the no-window host runner.
type HeadlessConfig struct {
	Enabled bool
	Hz      int
	Ticks   uint64
	// Snapshot names a PNG file that receives the last presented frame
	// when the runner stops.
	Snapshot string
}

func logOutput() io.Writer { return os.Stderr }

// RunHeadless drives the application from a ticker instead of a window.
// step runs Hz times per second until ctx ends, step fails or Ticks steps
// have run. The error that stopped the loop is returned together with any
// snapshot failure.
func RunHeadless(ctx context.Context, newApp func(HAL) func() error, cfg HeadlessConfig) error {
	if cfg.Hz <= 0 {
		cfg.Hz = 60
	}
	period := time.Second / time.Duration(cfg.Hz)
	if period <= 0 {
		return fmt.Errorf("hal: headless rate %d Hz is too high", cfg.Hz)
	}

	h := newHost(logOutput())
	err := pace(ctx, period, cfg.Ticks, newApp(h))
	if cfg.Snapshot != "" {
		err = errors.Join(err, writeSnapshot(cfg.Snapshot, h.fb))
	}
	return err
}

func pace(ctx context.Context, period time.Duration, limit uint64, step func() error) error {
	t := time.NewTicker(period)
	defer t.Stop()
	for n := uint64(0); limit == 0 || n < limit; n++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
		}
		if step == nil {
			continue
		}
		if err := step(); err != nil {
			return err
		}
	}
	return nil
}
