package app

import (
	"fmt"
	"unicode/utf8"

	"plotwin/plot"
	"plotwin/plot/units"
	"plotwin/plot/wm"

	"github.com/BurntSushi/toml"
)

// Config is the plotwin.toml file.
type Config struct {
	// Backend is the backend installed at start: "fb", "file" or "none".
	Backend string `toml:"backend"`
	// Device is opened when drawing starts with no window open. Empty
	// picks the default device of the backend.
	Device   string    `toml:"device"`
	Viewport []float64 `toml:"viewport,omitempty"`
	History  int       `toml:"history"`

	CancelKey string `toml:"cancel_key"`
	RetryKey  string `toml:"retry_key"`

	AutoIncrement bool `toml:"auto_increment"`

	Format FormatConfig `toml:"format"`
}

// FormatConfig holds the defaults of new windows.
type FormatConfig struct {
	Unit       string  `toml:"unit"`
	Color      int     `toml:"color"`
	LineStyle  int     `toml:"line_style"`
	LineWidth  int     `toml:"line_width"`
	PointStyle int     `toml:"point_style"`
	PointSize  float64 `toml:"point_size"`
	CharHeight float64 `toml:"char_height"`
	Connect    string  `toml:"connect"`
	LogX       bool    `toml:"log_x"`
	LogY       bool    `toml:"log_y"`
}

// DefaultConfig returns the configuration used without a config file.
func DefaultConfig() Config {
	d := wm.DefaultConfig()
	f := d.Format
	return Config{
		Backend:       "fb",
		History:       d.HistoryCap,
		CancelKey:     string(d.CancelKey),
		RetryKey:      string(d.RetryKey),
		AutoIncrement: d.Cycle.Enabled,
		Format: FormatConfig{
			Unit:       f.Unit().String(),
			Color:      f.Color(),
			LineStyle:  f.LineStyle(),
			LineWidth:  f.LineWidth(),
			PointStyle: f.PointStyle(),
			PointSize:  f.PointSize(),
			CharHeight: f.CharHeight(),
			Connect:    connectName(f.ConnectPoints()),
		},
	}
}

// LoadConfig reads a TOML file over the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("parsing %s: %w", path, err)
	}
	if keys := md.Undecoded(); len(keys) > 0 {
		return Config{}, fmt.Errorf("parsing %s: unknown key %q", path, keys[0].String())
	}
	return cfg, nil
}

// defaultDevices maps a backend name to the device drawing starts on.
var defaultDevices = map[string]string{
	"fb":   "/fb",
	"file": "plotwin.png/png",
}

func (c Config) device() string {
	if c.Device != "" {
		return c.Device
	}
	return defaultDevices[c.Backend]
}

// wm converts c to the window manager configuration.
func (c Config) wm() (wm.Config, error) {
	out := wm.DefaultConfig()
	out.Device = c.device()
	if c.History > 0 {
		out.HistoryCap = c.History
	}
	if len(c.Viewport) != 0 {
		if len(c.Viewport) != 4 {
			return wm.Config{}, fmt.Errorf("%w: viewport needs 4 values, got %d", plot.ErrConfig, len(c.Viewport))
		}
		out.Viewport = plot.Rect{XMin: c.Viewport[0], XMax: c.Viewport[1], YMin: c.Viewport[2], YMax: c.Viewport[3]}
		if out.Viewport.Empty() {
			return wm.Config{}, fmt.Errorf("%w: empty viewport %v", plot.ErrConfig, c.Viewport)
		}
	}
	var err error
	if out.CancelKey, err = keyRune("cancel_key", c.CancelKey); err != nil {
		return wm.Config{}, err
	}
	if out.RetryKey, err = keyRune("retry_key", c.RetryKey); err != nil {
		return wm.Config{}, err
	}
	out.Cycle.Enabled = c.AutoIncrement

	f, err := c.Format.format()
	if err != nil {
		return wm.Config{}, err
	}
	out.Format = f
	return out, nil
}

func keyRune(name, s string) (rune, error) {
	r, n := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError || n != len(s) {
		return 0, fmt.Errorf("%w: %s must be a single character, got %q", plot.ErrConfig, name, s)
	}
	return r, nil
}

func (fc FormatConfig) format() (*plot.Format, error) {
	f := plot.NewFormat()
	u, err := units.Parse(fc.Unit)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", plot.ErrConfig, err)
	}
	connect, err := parseConnect(fc.Connect)
	if err != nil {
		return nil, err
	}
	if u != f.Unit() {
		if err := f.SetUnit(u); err != nil {
			return nil, err
		}
	}
	f.SetPointStyle(fc.PointStyle)
	for _, err := range []error{
		f.SetColor(fc.Color),
		f.SetLineStyle(fc.LineStyle),
		f.SetLineWidth(fc.LineWidth),
		f.SetPointSize(fc.PointSize),
		f.SetCharHeight(fc.CharHeight),
		f.SetConnectPoints(connect),
	} {
		if err != nil {
			return nil, err
		}
	}
	f.SetLog(plot.X, fc.LogX)
	f.SetLog(plot.Y, fc.LogY)
	return f, nil
}
