package chip8

import "fmt"

// CHIP-8 memory layout constants.
const (
	// MemorySize is the size of the addressable memory in bytes.
	MemorySize = 4096

	// MaxAddress is the highest valid address, all address computations are masked with it.
	MaxAddress = 0xFFF

	// FontAddress is the address of the built-in hexadecimal font set.
	FontAddress = 0x050

	// FontCharSize is the number of bytes of a single font character.
	FontCharSize = 5

	// ProgramStart is the address programs are loaded to and start execution at.
	ProgramStart = 0x200

	// MaxROMSize is the largest program that fits into memory.
	MaxROMSize = MemorySize - ProgramStart
)

// Font contains the sprites of the hexadecimal digits 0-F, 4x5 pixels each.
var Font = [16 * FontCharSize]byte{
	0xF0, 0x90, 0x90, 0x90, 0xF0, // 0
	0x20, 0x60, 0x20, 0x20, 0x70, // 1
	0xF0, 0x10, 0xF0, 0x80, 0xF0, // 2
	0xF0, 0x10, 0xF0, 0x10, 0xF0, // 3
	0x90, 0x90, 0xF0, 0x10, 0x10, // 4
	0xF0, 0x80, 0xF0, 0x10, 0xF0, // 5
	0xF0, 0x80, 0xF0, 0x90, 0xF0, // 6
	0xF0, 0x10, 0x20, 0x40, 0x40, // 7
	0xF0, 0x90, 0xF0, 0x90, 0xF0, // 8
	0xF0, 0x90, 0xF0, 0x10, 0xF0, // 9
	0xF0, 0x90, 0xF0, 0x90, 0x90, // A
	0xE0, 0x90, 0xE0, 0x90, 0xE0, // B
	0xF0, 0x80, 0x80, 0x80, 0xF0, // C
	0xE0, 0x90, 0x90, 0x90, 0xE0, // D
	0xF0, 0x80, 0xF0, 0x80, 0xF0, // E
	0xF0, 0x80, 0xF0, 0x80, 0x80, // F
}

// Memory is the 4KB address space of the machine.
type Memory [MemorySize]byte

// Load copies data into memory starting at the given offset.
// It fails without modifying memory if the data does not fit.
func (m *Memory) Load(data []byte, offset uint16) error {
	if int(offset)+len(data) > MemorySize {
		return fmt.Errorf("%w: %d bytes at $%03X exceed %d bytes of memory",
			ErrROMTooLarge, len(data), offset, MemorySize)
	}
	copy(m[offset:], data)
	return nil
}

// Read returns the byte at the given address.
func (m *Memory) Read(address uint16) byte {
	return m[address&MaxAddress]
}

// Write sets the byte at the given address.
func (m *Memory) Write(address uint16, value byte) {
	m[address&MaxAddress] = value
}

// Opcode returns the big-endian instruction word at the given address.
func (m *Memory) Opcode(address uint16) uint16 {
	return uint16(m.Read(address))<<8 | uint16(m.Read(address+1))
}
