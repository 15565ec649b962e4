package hal

import (
	"bytes"
	"context"
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestFramebuffer_PresentCopiesBackBuffer(t *testing.T) {
	f := newHostFramebuffer(4, 2)
	f.ClearRGB(0xFF, 0, 0)
	img := f.frontRGBA(nil)
	if got := img.RGBAAt(3, 1); got.R != 0 || got.A != 0xFF {
		t.Fatalf("front buffer changed before Present: %v", got)
	}
	if err := f.Present(); err != nil {
		t.Fatalf("Present: %v", err)
	}
	if again := f.frontRGBA(img); again != img {
		t.Fatalf("frontRGBA reallocated a matching image")
	}
	if got := img.RGBAAt(3, 1); got.R != 0xFF || got.G != 0 || got.B != 0 {
		t.Fatalf("pixel=%v; want red", got)
	}
}

func TestRGB565RoundTrip(t *testing.T) {
	tcs := [][3]uint8{{0, 0, 0}, {0xFF, 0xFF, 0xFF}, {0xFF, 0, 0}, {0, 0xFF, 0}, {0, 0, 0xFF}}
	for _, tc := range tcs {
		r, g, b := RGB888(RGB565(tc[0], tc[1], tc[2]))
		if r != tc[0] || g != tc[1] || b != tc[2] {
			t.Fatalf("RGB565(%v) round trip=%d,%d,%d", tc, r, g, b)
		}
	}
}

func TestLogger_WritesLines(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(&buf)
	l.WriteLineString("wm: open 1 /fb")
	l.WriteLineBytes([]byte("done"))
	if got := buf.String(); got != "wm: open 1 /fb\ndone\n" {
		t.Fatalf("log=%q", got)
	}
}

func TestRunHeadless_StopsAfterTicks(t *testing.T) {
	n := 0
	err := RunHeadless(context.Background(), func(HAL) func() error {
		return func() error {
			n++
			return nil
		}
	}, HeadlessConfig{Hz: 1000, Ticks: 3})
	if err != nil {
		t.Fatalf("RunHeadless: %v", err)
	}
	if n != 3 {
		t.Fatalf("steps=%d; want 3", n)
	}
}

func TestRunHeadless_StepError(t *testing.T) {
	stop := errors.New("stop")
	err := RunHeadless(context.Background(), func(HAL) func() error {
		return func() error { return stop }
	}, HeadlessConfig{Hz: 1000})
	if !errors.Is(err, stop) {
		t.Fatalf("RunHeadless: %v; want %v", err, stop)
	}
}

func TestRunHeadless_Snapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "last.png")
	stop := errors.New("stop")
	err := RunHeadless(context.Background(), func(h HAL) func() error {
		return func() error {
			fb := h.Display().Framebuffer()
			fb.ClearRGB(0, 0, 0xFF)
			if err := fb.Present(); err != nil {
				return err
			}
			return stop
		}
	}, HeadlessConfig{Hz: 1000, Snapshot: path})
	if !errors.Is(err, stop) {
		t.Fatalf("RunHeadless: %v; want %v", err, stop)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("snapshot not written: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("png.Decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != DefaultWidth || b.Dy() != DefaultHeight {
		t.Fatalf("snapshot size=%v; want %dx%d", b, DefaultWidth, DefaultHeight)
	}
	if r, g, b, _ := img.At(0, 0).RGBA(); r != 0 || g != 0 || b != 0xFFFF {
		t.Fatalf("snapshot pixel=%d,%d,%d; want blue", r, g, b)
	}
}

func TestRunHeadless_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := RunHeadless(ctx, func(HAL) func() error { return nil }, HeadlessConfig{Hz: 1})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("RunHeadless: %v; want %v", err, context.Canceled)
	}
}
