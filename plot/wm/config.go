package wm

import "plotwin/plot"

// Logger receives one line per notable event. hal.Logger implements it.
type Logger interface {
	WriteLineString(s string)
}

// Config holds the process-wide defaults of a Collection. It must be
// complete before the first window is created; the Collection keeps its own
// copy.
type Config struct {
	// Format is copied into every window that has nothing to inherit from.
	Format *plot.Format
	// Viewport is the outer viewport of new windows.
	Viewport plot.Rect
	// Device is opened when drawing starts with no window open.
	Device string
	Cycle  plot.Cycle
	// HistoryCap bounds the focus history.
	HistoryCap int

	// CancelKey aborts a cursor read; RetryKey restarts a two-point read.
	CancelKey rune
	RetryKey  rune
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		Format:     plot.NewFormat(),
		Viewport:   plot.DefaultViewport,
		Device:     "/fb",
		Cycle:      plot.DefaultCycle,
		HistoryCap: 128,
		CancelKey:  'q',
		RetryKey:   'r',
	}
}

func (c Config) normalized() Config {
	d := DefaultConfig()
	if c.Format == nil {
		c.Format = d.Format
	}
	if c.Viewport.Empty() {
		c.Viewport = d.Viewport
	}
	if c.HistoryCap <= 0 {
		c.HistoryCap = d.HistoryCap
	}
	return c
}
