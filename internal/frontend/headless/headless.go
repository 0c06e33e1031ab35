// Package headless provides a frontend without any input or output device.
// It keeps the last presented frame so that it can be inspected after a run.
package headless

import (
	"strings"

	"github.com/retroenv/retrochip8/internal/chip8"
)

// Frontend records presented frames and reports a fixed key state.
type Frontend struct {
	keys   [chip8.KeyCount]bool
	frame  chip8.Frame
	frames int
}

// New returns a headless frontend with no keys pressed.
func New() *Frontend {
	return &Frontend{}
}

// SetKey sets the state that Keys reports for a keypad key.
func (f *Frontend) SetKey(key uint8, pressed bool) {
	if int(key) < chip8.KeyCount {
		f.keys[key] = pressed
	}
}

// Keys returns the key state set with SetKey.
func (f *Frontend) Keys() [chip8.KeyCount]bool {
	return f.keys
}

// Present stores the frame.
func (f *Frontend) Present(frame chip8.Frame) error {
	f.frame = frame
	f.frames++
	return nil
}

// Closed always returns false, a headless run ends by context or cycle limit.
func (f *Frontend) Closed() bool {
	return false
}

// Frames returns the number of presented frames.
func (f *Frontend) Frames() int {
	return f.frames
}

// Frame returns the last presented frame.
func (f *Frontend) Frame() chip8.Frame {
	return f.frame
}

// String renders the last frame as text, one line per display row.
func (f *Frontend) String() string {
	var sb strings.Builder
	sb.Grow(chip8.Height * (chip8.Width + 1))

	for _, row := range f.frame {
		for _, pixel := range row {
			if pixel {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
