//go:build !headless

package window

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrochip8/internal/keymap"
)

// hostKeys maps the keymap layout runes to ebiten keys.
var hostKeys = map[rune]ebiten.Key{
	'1': ebiten.KeyDigit1, '2': ebiten.KeyDigit2, '3': ebiten.KeyDigit3, '4': ebiten.KeyDigit4,
	'q': ebiten.KeyQ, 'w': ebiten.KeyW, 'e': ebiten.KeyE, 'r': ebiten.KeyR,
	'a': ebiten.KeyA, 's': ebiten.KeyS, 'd': ebiten.KeyD, 'f': ebiten.KeyF,
	'z': ebiten.KeyZ, 'x': ebiten.KeyX, 'c': ebiten.KeyC, 'v': ebiten.KeyV,
}

// Window is an ebiten game that drives the emulation from its update loop.
type Window struct {
	scale int

	mu     sync.Mutex
	pixels []byte
	closed bool

	ctx   context.Context
	adv   Advancer
	err   error
	image *ebiten.Image
}

// New returns a window that scales every display pixel to scale x scale pixels.
func New(scale int) (*Window, error) {
	if scale < 1 || scale > MaxScale {
		return nil, fmt.Errorf("%w: %d", errInvalidScale, scale)
	}

	w := &Window{
		scale:  scale,
		pixels: make([]byte, chip8.Width*chip8.Height*4),
	}
	framePixels(chip8.Frame{}, w.pixels)
	return w, nil
}

// Run opens the window and calls adv on every update until the window is
// closed, the context is cancelled or adv returns an error.
// It has to be called from the main goroutine.
func (w *Window) Run(ctx context.Context, adv Advancer) error {
	w.ctx = ctx
	w.adv = adv

	ebiten.SetWindowSize(chip8.Width*w.scale, chip8.Height*w.scale)
	ebiten.SetWindowTitle(Title)
	ebiten.SetWindowClosingHandled(true)
	ebiten.SetRunnableOnUnfocused(true)

	if err := ebiten.RunGame(w); err != nil {
		return fmt.Errorf("running window: %w", err)
	}
	if w.err != nil {
		return w.err
	}
	return ctx.Err()
}

// Keys returns the keypad keys that are held down on the host keyboard.
func (w *Window) Keys() [chip8.KeyCount]bool {
	var keys [chip8.KeyCount]bool
	for i, r := range keymap.Layout {
		keys[i] = ebiten.IsKeyPressed(hostKeys[r])
	}
	return keys
}

// Present stores the frame for the next draw.
func (w *Window) Present(frame chip8.Frame) error {
	w.mu.Lock()
	framePixels(frame, w.pixels)
	w.mu.Unlock()
	return nil
}

// Closed returns whether the window was asked to close.
func (w *Window) Closed() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.closed
}

// Update implements ebiten.Game.
func (w *Window) Update() error {
	if ebiten.IsWindowBeingClosed() {
		w.mu.Lock()
		w.closed = true
		w.mu.Unlock()
		return ebiten.Termination
	}
	if w.ctx.Err() != nil {
		return ebiten.Termination
	}

	if err := w.adv.Advance(time.Now()); err != nil {
		w.err = err
		return ebiten.Termination
	}
	return nil
}

// Draw implements ebiten.Game.
func (w *Window) Draw(screen *ebiten.Image) {
	if w.image == nil {
		w.image = ebiten.NewImage(chip8.Width, chip8.Height)
	}

	w.mu.Lock()
	w.image.WritePixels(w.pixels)
	w.mu.Unlock()

	screen.DrawImage(w.image, nil)
}

// Layout implements ebiten.Game, the screen keeps the display resolution and
// ebiten scales it to the window.
func (w *Window) Layout(_, _ int) (int, int) {
	return chip8.Width, chip8.Height
}
