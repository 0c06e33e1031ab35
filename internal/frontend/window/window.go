// Package window provides a frontend that shows the display in a desktop
// window and reads the keypad from the host keyboard.
package window

import (
	"errors"
	"time"

	"github.com/retroenv/retrochip8/internal/chip8"
)

const (
	// Title is the window title.
	Title = "CHIP-8"

	// DefaultScale is the number of window pixels per display pixel.
	DefaultScale = 10
	// MaxScale limits the window size to 4096x2048.
	MaxScale = 64
)

var errInvalidScale = errors.New("invalid window scale")

// Advancer runs the emulation up to the given time.
type Advancer interface {
	Advance(now time.Time) error
}

// pixel colors as RGBA
var (
	colorOn  = [4]byte{0xFF, 0xFF, 0xFF, 0xFF}
	colorOff = [4]byte{0x00, 0x00, 0x00, 0xFF}
)

// framePixels converts a frame to an RGBA pixel buffer.
func framePixels(frame chip8.Frame, pixels []byte) {
	for y, row := range frame {
		for x, on := range row {
			offset := (y*chip8.Width + x) * 4
			if on {
				copy(pixels[offset:], colorOn[:])
			} else {
				copy(pixels[offset:], colorOff[:])
			}
		}
	}
}
