package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"plotwin/app"
	"plotwin/hal"
	"plotwin/internal/buildinfo"
)

func main() {
	var hcfg hal.HeadlessConfig
	var configPath, backend, script string
	var version bool
	var scale int
	flag.BoolVar(&hcfg.Enabled, "headless", false, "Run without a window.")
	flag.IntVar(&hcfg.Hz, "hz", 60, "Tick rate in headless mode.")
	flag.Uint64Var(&hcfg.Ticks, "ticks", 0, "Stop after N ticks in headless mode (0 = run until quit).")
	flag.StringVar(&hcfg.Snapshot, "snapshot", "", "Save the last frame as a PNG file on exit.")
	flag.IntVar(&scale, "scale", 1, "Window size multiplier.")
	flag.StringVar(&configPath, "config", "", "Read settings from a TOML file.")
	flag.StringVar(&backend, "backend", "", "Backend to start with: fb, file or none.")
	flag.StringVar(&script, "script", "", "Read commands from a file instead of stdin.")
	flag.BoolVar(&version, "version", false, "Print the version and exit.")
	flag.Parse()

	if version {
		fmt.Println(buildinfo.String())
		return
	}

	cfg := app.DefaultConfig()
	if configPath != "" {
		var err error
		if cfg, err = app.LoadConfig(configPath); err != nil {
			fatal(err)
		}
	}
	if backend != "" {
		cfg.Backend = backend
	}

	var in io.Reader = os.Stdin
	if script != "" {
		f, err := os.Open(script)
		if err != nil {
			fatal(err)
		}
		defer f.Close()
		in = f
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	opts := app.Options{In: in, Out: os.Stdout, Interactive: !hcfg.Enabled}
	newApp := func(h hal.HAL) func() error {
		return app.New(ctx, h, cfg, opts)
	}

	var err error
	if hcfg.Enabled {
		err = hal.RunHeadless(ctx, newApp, hcfg)
	} else {
		err = hal.RunWindow(ctx, newApp, hal.WindowConfig{Scale: scale, Snapshot: hcfg.Snapshot})
	}
	if err != nil && !errors.Is(err, app.ErrQuit) && !errors.Is(err, context.Canceled) {
		stop()
		fatal(err)
	}
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
