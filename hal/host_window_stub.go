//go:build !cgo

package hal

import (
	"context"
	"errors"
)

// WindowConfig controls the desktop window runner.
type WindowConfig struct {
	Scale    int
	Snapshot string
}

func RunWindow(_ context.Context, _ func(h HAL) func() error, _ WindowConfig) error {
	return errors.New("hal: window mode requires cgo (build with CGO_ENABLED=1)")
}
