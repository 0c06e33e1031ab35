// Package keymap maps host keyboard keys to the CHIP-8 hexadecimal keypad.
//
// The keypad of the COSMAC VIP is mapped to the left side of a QWERTY keyboard,
// keeping the physical position of every key:
//
//	1 2 3 C      1 2 3 4
//	4 5 6 D  <-  Q W E R
//	7 8 9 E      A S D F
//	A 0 B F      Z X C V
package keymap

import "unicode"

// Layout lists the host key for every keypad value.
var Layout = [16]rune{
	0x0: 'x',
	0x1: '1', 0x2: '2', 0x3: '3',
	0x4: 'q', 0x5: 'w', 0x6: 'e',
	0x7: 'a', 0x8: 's', 0x9: 'd',
	0xA: 'z', 0xB: 'c',
	0xC: '4', 0xD: 'r', 0xE: 'f', 0xF: 'v',
}

// Key returns the keypad value for a host key, ignoring case.
func Key(r rune) (uint8, bool) {
	r = unicode.ToLower(r)
	for i, key := range Layout {
		if key == r {
			return uint8(i), true
		}
	}
	return 0, false
}
