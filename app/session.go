// Package app drives a window collection from text commands. A Session
// owns the collection and runs every command on its own goroutine, so
// commands may be submitted from anywhere.
package app

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"runtime/debug"
	"strings"

	"plotwin/hal"
	"plotwin/plot/backend/fbdev"
	"plotwin/plot/backend/vgfile"
	"plotwin/plot/render"
	"plotwin/plot/wm"

	"github.com/google/shlex"
)

// ErrQuit is returned once the session has finished.
var ErrQuit = errors.New("app: quit")

// BackendFactory makes a fresh backend for the "backend" command.
type BackendFactory func() render.Backend

// Backends returns the known backends drawing on fb and reading keys
// from kbd. Either may be nil.
func Backends(fb hal.Framebuffer, kbd hal.Keyboard) map[string]BackendFactory {
	return map[string]BackendFactory{
		"fb":   func() render.Backend { return fbdev.New(fb, kbd) },
		"file": func() render.Backend { return vgfile.New() },
	}
}

// Session serialises commands onto one goroutine that owns a
// wm.Collection.
type Session struct {
	reg      *render.Registry
	wm       *wm.Collection
	log      hal.Logger
	out      io.Writer
	backends map[string]BackendFactory
	backend  string
	cmds     *registry

	reqs chan request
}

type request struct {
	fn   func() error
	done chan error
}

// NewSession installs cfg.Backend and returns a session writing command
// output to out.
func NewSession(cfg Config, backends map[string]BackendFactory, log hal.Logger, out io.Writer) (*Session, error) {
	wcfg, err := cfg.wm()
	if err != nil {
		return nil, err
	}
	s := &Session{
		reg:      render.NewRegistry(nil),
		log:      log,
		out:      out,
		backends: backends,
		reqs:     make(chan request),
	}
	s.wm = wm.New(s.reg, wcfg, log)
	if err := s.install(cfg.Backend); err != nil {
		return nil, err
	}
	if cfg.Device != "" {
		s.wm.SetDevice(cfg.Device)
	}
	if s.cmds, err = newCommands(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Session) logf(format string, args ...any) {
	if s.log == nil {
		return
	}
	s.log.WriteLineString(fmt.Sprintf(format, args...))
}

func (s *Session) printf(format string, args ...any) {
	fmt.Fprintf(s.out, format, args...)
}

// install swaps the whole backend. "none" leaves no backend installed.
func (s *Session) install(name string) error {
	if name == "none" {
		s.reg.Install(nil)
		s.backend = name
		s.logf("app: backend none")
		return nil
	}
	mk, ok := s.backends[name]
	if !ok {
		return fmt.Errorf("app: unknown backend %q", name)
	}
	s.reg.Install(mk())
	s.backend = name
	if d, ok := defaultDevices[name]; ok {
		s.wm.SetDevice(d)
	}
	s.logf("app: backend %s", name)
	return nil
}

// Run executes submitted commands until ctx ends, then closes every
// window.
func (s *Session) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			s.shutdown()
			return nil
		case req := <-s.reqs:
			req.done <- s.call(req.fn)
		}
	}
}

func (s *Session) shutdown() {
	for _, id := range s.wm.Windows() {
		if err := s.wm.Close(id); err != nil {
			s.logf("app: close %d: %v", id, err)
		}
	}
}

// call runs fn, turning a panic into an error.
func (s *Session) call(fn func() error) (err error) {
	defer func() {
		if v := recover(); v != nil {
			s.logf("app: panic: %v", v)
			for _, line := range strings.Split(string(debug.Stack()), "\n") {
				if line != "" {
					s.logf("%s", line)
				}
			}
			err = fmt.Errorf("app: panic: %v", v)
		}
	}()
	return fn()
}

// Do runs fn on the session goroutine and waits for it.
func (s *Session) Do(ctx context.Context, fn func(c *wm.Collection) error) error {
	return s.submit(ctx, func() error { return fn(s.wm) })
}

func (s *Session) submit(ctx context.Context, fn func() error) error {
	req := request{fn: fn, done: make(chan error, 1)}
	select {
	case s.reqs <- req:
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case err := <-req.done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Exec runs one command line.
func (s *Session) Exec(ctx context.Context, line string) error {
	args, err := shlex.Split(line)
	if err != nil {
		return fmt.Errorf("app: %w", err)
	}
	if len(args) == 0 {
		return nil
	}
	cmd, err := s.cmds.resolve(args[0])
	if err != nil {
		return err
	}
	return s.submit(ctx, func() error { return cmd.Run(s, args[1:]) })
}

// Feed executes lines until the channel closes or a quit command runs.
// Failing commands are reported on the output and do not stop the feed.
func (s *Session) Feed(ctx context.Context, lines <-chan string) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				return nil
			}
			err := s.Exec(ctx, line)
			switch {
			case errors.Is(err, ErrQuit):
				return nil
			case errors.Is(err, context.Canceled):
				return nil
			case err != nil:
				s.printf("error: %v\n", err)
			}
		}
	}
}

// ReadLines sends the lines of r on the returned channel, closing it at
// EOF. The reader goroutine outlives the session if r blocks.
func ReadLines(r io.Reader) <-chan string {
	ch := make(chan string)
	go func() {
		defer close(ch)
		sc := bufio.NewScanner(r)
		for sc.Scan() {
			ch <- sc.Text()
		}
	}()
	return ch
}
