package hal

import (
	"errors"
	"fmt"
	"image/png"
	"os"
)

// writeSnapshot saves the presented frame as a PNG file.
func writeSnapshot(path string, fb *hostFramebuffer) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("hal: snapshot: %w", err)
	}
	defer func() { err = errors.Join(err, f.Close()) }()
	if err := png.Encode(f, fb.frontRGBA(nil)); err != nil {
		return fmt.Errorf("hal: snapshot %s: %w", path, err)
	}
	return nil
}
