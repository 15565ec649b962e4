package render

import (
	"errors"
	"fmt"
)

var (
	// ErrUnavailable is reported when no backend can serve a call.
	ErrUnavailable = errors.New("render: backend unavailable")

	// ErrUndefined is reported when no backend is installed.
	ErrUndefined = fmt.Errorf("%w: interface undefined", ErrUnavailable)

	// ErrUnsupported is reported when the installed backend does not bind an operation.
	ErrUnsupported = fmt.Errorf("%w: operation not supported", ErrUnavailable)

	// ErrFailure is reported when a backend operation ran and failed, or
	// returned a malformed result.
	ErrFailure = errors.New("render: backend failure")
)

func wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrUnavailable) || errors.Is(err, ErrFailure) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return fmt.Errorf("%w: %s: %w", ErrFailure, op, err)
}
