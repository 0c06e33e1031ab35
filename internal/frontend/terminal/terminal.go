// Package terminal provides a frontend that renders the display in a text
// terminal and reads the keypad from raw mode standard input.
//
// Terminals report no key releases, a key counts as pressed for holdTime after
// its last input byte. Keyboard auto repeat keeps a held key pressed.
package terminal

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrochip8/internal/keymap"
	"golang.org/x/term"
)

const (
	holdTime = 150 * time.Millisecond

	keyCtrlC  = 0x03
	keyEscape = 0x1B

	// two display rows are rendered per text line using half block characters
	lines = chip8.Height / 2

	cursorHome  = "\x1b[H"
	clearScreen = "\x1b[2J"
	hideCursor  = "\x1b[?25l"
	showCursor  = "\x1b[?25h"
)

var errNotTerminal = errors.New("standard input is not a terminal")

// Terminal is a frontend using the controlling terminal.
type Terminal struct {
	in       *os.File
	out      io.Writer
	oldState *term.State

	mu      sync.Mutex
	keys    keyState
	closed  bool
	stopped bool // set by Close, the reader exits on its next wake up
	now     func() time.Time
}

// New switches the terminal of in to raw mode and starts reading keys from it.
// Close must be called to restore the terminal.
func New(in *os.File, out io.Writer) (*Terminal, error) {
	fd := int(in.Fd())
	if !term.IsTerminal(fd) {
		return nil, errNotTerminal
	}

	if width, height, err := term.GetSize(fd); err == nil && (width < chip8.Width || height < lines) {
		return nil, fmt.Errorf("terminal size %dx%d is smaller than the required %dx%d",
			width, height, chip8.Width, lines)
	}

	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return nil, fmt.Errorf("setting terminal raw mode: %w", err)
	}

	t := &Terminal{
		in:       in,
		out:      out,
		oldState: oldState,
		now:      time.Now,
	}
	if _, err := io.WriteString(out, clearScreen+hideCursor); err != nil {
		_ = t.Close()
		return nil, fmt.Errorf("writing to terminal: %w", err)
	}

	go t.readInput()
	return t, nil
}

// Close restores the terminal state. A read of the input that is in progress
// can not be interrupted, the reader goroutine discards that input and ends.
func (t *Terminal) Close() error {
	t.mu.Lock()
	t.stopped = true
	t.mu.Unlock()

	_, _ = io.WriteString(t.out, showCursor+"\r\n")
	if err := term.Restore(int(t.in.Fd()), t.oldState); err != nil {
		return fmt.Errorf("restoring terminal: %w", err)
	}
	return nil
}

// Keys returns the keys that received input within the hold time.
func (t *Terminal) Keys() [chip8.KeyCount]bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.keys.pressed(t.now())
}

// Present draws the frame at the top of the terminal.
func (t *Terminal) Present(frame chip8.Frame) error {
	if _, err := io.WriteString(t.out, cursorHome+Render(frame)); err != nil {
		return fmt.Errorf("writing to terminal: %w", err)
	}
	return nil
}

// Closed returns whether Ctrl+C or Escape was pressed or input ended.
func (t *Terminal) Closed() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.closed
}

func (t *Terminal) readInput() {
	buf := make([]byte, 64)
	for {
		n, err := t.in.Read(buf)
		if !t.handleInput(buf[:n]) {
			return
		}
		if err != nil {
			t.mu.Lock()
			t.closed = true
			t.mu.Unlock()
			return
		}
	}
}

// handleInput updates the key state from input bytes. It returns false once
// the terminal was closed and reading should stop.
func (t *Terminal) handleInput(data []byte) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.stopped {
		return false
	}

	now := t.now()
	for _, b := range data {
		switch b {
		case keyCtrlC, keyEscape:
			t.closed = true
			return true
		}
		if key, ok := keymap.Key(rune(b)); ok {
			t.keys.press(key, now)
		}
	}
	return true
}

// keyState tracks when each key was last seen in the input.
type keyState struct {
	until [chip8.KeyCount]time.Time
}

func (k *keyState) press(key uint8, now time.Time) {
	k.until[key] = now.Add(holdTime)
}

func (k *keyState) pressed(now time.Time) [chip8.KeyCount]bool {
	var keys [chip8.KeyCount]bool
	for i, until := range k.until {
		keys[i] = now.Before(until)
	}
	return keys
}

// Render converts a frame to text, combining two pixel rows into one line.
// Lines end with CR LF as the terminal is in raw mode.
func Render(frame chip8.Frame) string {
	blocks := [4]string{" ", "▀", "▄", "█"}

	buf := make([]byte, 0, lines*(chip8.Width*3+2))
	for y := 0; y < chip8.Height; y += 2 {
		for x := range chip8.Width {
			index := 0
			if frame[y][x] {
				index |= 1
			}
			if frame[y+1][x] {
				index |= 2
			}
			buf = append(buf, blocks[index]...)
		}
		buf = append(buf, '\r', '\n')
	}
	return string(buf)
}
