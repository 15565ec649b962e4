package plot

import (
	"errors"

	"plotwin/plot/render"
)

var (
	// ErrConfig reports an invalid panel, viewport or range request.
	ErrConfig = errors.New("plot: invalid configuration")

	// ErrRange reports an empty data range or a non-positive bound on a
	// log axis.
	ErrRange = errors.New("plot: invalid range")

	// ErrLookup reports a window or pane that does not exist.
	ErrLookup = errors.New("plot: no such window")
)

// Backend error kinds, re-exported so callers need only this package.
var (
	ErrBackendUnavailable = render.ErrUnavailable
	ErrBackendFailure     = render.ErrFailure
)
