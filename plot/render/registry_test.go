package render

import (
	"errors"
	"math"
	"testing"
)

type stubBackend struct {
	Unsupported
	opened  int
	openID  int
	openErr error
	panicOn bool
}

func (b *stubBackend) Open(string) (int, error) {
	b.opened++
	return b.openID, b.openErr
}

func (b *stubBackend) Close() error {
	if b.panicOn {
		panic("device gone")
	}
	return nil
}

func (b *stubBackend) QueryPlotLimits() (float64, float64, float64, float64, error) {
	return 0, math.NaN(), 0, 1, nil
}

func TestRegistry_NoBackend(t *testing.T) {
	r := NewRegistry(nil)
	if _, err := r.Open("/fb"); !errors.Is(err, ErrUnavailable) || !errors.Is(err, ErrUndefined) {
		t.Fatalf("Open err=%v; want ErrUndefined", err)
	}
	if err := r.Update(); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("Update err=%v; want ErrUnavailable", err)
	}
	if err := r.PlotXY([]float64{1}, []float64{1}); !errors.Is(err, ErrUndefined) {
		t.Fatalf("PlotXY err=%v; want ErrUndefined", err)
	}
	if _, _, _, err := r.ReadCursor(CursorConfig{}); !errors.Is(err, ErrUndefined) {
		t.Fatalf("ReadCursor err=%v; want ErrUndefined", err)
	}
}

func TestRegistry_UnboundOperation(t *testing.T) {
	r := NewRegistry(&stubBackend{openID: 1})
	err := r.SetClipping(true)
	if !errors.Is(err, ErrUnsupported) {
		t.Fatalf("SetClipping err=%v; want ErrUnsupported", err)
	}
	if errors.Is(err, ErrFailure) {
		t.Fatalf("SetClipping err=%v; unsupported must not be a failure", err)
	}
}

func TestRegistry_InstallReplaces(t *testing.T) {
	a := &stubBackend{openID: 1}
	b := &stubBackend{openID: 2}
	r := NewRegistry(a)
	if prev := r.Install(b); prev != Backend(a) {
		t.Fatalf("Install prev=%v; want first backend", prev)
	}
	id, err := r.Open("x")
	if err != nil || id != 2 {
		t.Fatalf("Open id=%d err=%v; want 2", id, err)
	}
	if a.opened != 0 || b.opened != 1 {
		t.Fatalf("opened a=%d b=%d; want 0 1", a.opened, b.opened)
	}
	if prev := r.Install(nil); prev != Backend(b) {
		t.Fatalf("Install(nil) prev=%v; want second backend", prev)
	}
	if _, err := r.Open("x"); !errors.Is(err, ErrUndefined) {
		t.Fatalf("Open after uninstall err=%v; want ErrUndefined", err)
	}
}

func TestRegistry_Failures(t *testing.T) {
	r := NewRegistry(&stubBackend{openID: 0})
	if _, err := r.Open("x"); !errors.Is(err, ErrFailure) {
		t.Fatalf("Open bad id err=%v; want ErrFailure", err)
	}

	r.Install(&stubBackend{openID: 3, openErr: errors.New("no such device")})
	if _, err := r.Open("x"); !errors.Is(err, ErrFailure) {
		t.Fatalf("Open err=%v; want ErrFailure", err)
	}

	r.Install(&stubBackend{panicOn: true})
	if err := r.Close(); !errors.Is(err, ErrFailure) {
		t.Fatalf("Close err=%v; want ErrFailure from recovered panic", err)
	}

	if _, _, _, _, err := r.QueryPlotLimits(); !errors.Is(err, ErrFailure) {
		t.Fatalf("QueryPlotLimits err=%v; want ErrFailure for NaN limits", err)
	}

	if err := r.PlotHistogram([]float64{1}, []float64{2, 3}, []float64{1}); !errors.Is(err, ErrFailure) {
		t.Fatalf("PlotHistogram err=%v; want ErrFailure for ragged input", err)
	}
}
