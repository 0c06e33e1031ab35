package chip8

// Display dimensions in pixels.
const (
	Width  = 64
	Height = 32
)

// spriteWidth is the fixed width of every sprite in pixels.
const spriteWidth = 8

// Frame is a row-major snapshot of the display, true marks a set pixel.
type Frame [Height][Width]bool

// Display is the monochrome framebuffer together with its pending render flag.
type Display struct {
	pixels  Frame
	pending bool
}

// Clear turns off all pixels.
func (d *Display) Clear() {
	d.pixels = Frame{}
	d.pending = true
}

// Draw XORs an 8 pixel wide sprite onto the display with its top left corner at x, y.
// The start position wraps around the screen. Pixels running over the edges wrap as
// well unless clip is set, in which case they are dropped.
// It returns whether any set pixel was turned off.
func (d *Display) Draw(x, y uint8, sprite []byte, clip bool) bool {
	x0 := int(x) % Width
	y0 := int(y) % Height
	collision := false

	for row, data := range sprite {
		py := y0 + row
		if py >= Height {
			if clip {
				break
			}
			py %= Height
		}

		for col := range spriteWidth {
			if data&(0x80>>col) == 0 {
				continue
			}
			px := x0 + col
			if px >= Width {
				if clip {
					break
				}
				px %= Width
			}

			pixel := &d.pixels[py][px]
			if *pixel {
				collision = true
			}
			*pixel = !*pixel
		}
	}

	d.pending = true
	return collision
}

// Snapshot returns a copy of the current pixels.
func (d *Display) Snapshot() Frame {
	return d.pixels
}

// TakePending returns whether the display changed since the last call and resets the flag.
func (d *Display) TakePending() bool {
	pending := d.pending
	d.pending = false
	return pending
}
