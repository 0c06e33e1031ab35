//go:build headless

package window

import (
	"context"
	"errors"
	"fmt"

	"github.com/retroenv/retrochip8/internal/chip8"
)

var errNoWindowSupport = errors.New("window support is not compiled in, rebuild without the headless tag")

// Window is a placeholder for builds without window support.
type Window struct{}

// New validates the scale and returns a window that can not be run.
func New(scale int) (*Window, error) {
	if scale < 1 || scale > MaxScale {
		return nil, fmt.Errorf("%w: %d", errInvalidScale, scale)
	}
	return &Window{}, nil
}

// Run returns an error as no window can be opened.
func (w *Window) Run(_ context.Context, _ Advancer) error {
	return errNoWindowSupport
}

// Keys returns no pressed keys.
func (w *Window) Keys() [chip8.KeyCount]bool {
	return [chip8.KeyCount]bool{}
}

// Present discards the frame.
func (w *Window) Present(chip8.Frame) error {
	return nil
}

// Closed always returns true.
func (w *Window) Closed() bool {
	return true
}
