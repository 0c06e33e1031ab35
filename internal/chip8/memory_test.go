package chip8

import (
	"errors"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestMemory_Load(t *testing.T) {
	var m Memory

	assert.NoError(t, m.Load([]byte{0x12, 0x34}, ProgramStart))
	assert.Equal(t, uint16(0x1234), m.Opcode(ProgramStart))

	err := m.Load(make([]byte, 3), MemorySize-2)
	assert.True(t, errors.Is(err, ErrROMTooLarge))
	assert.Equal(t, byte(0), m[MemorySize-1])
}

func TestMemory_AddressWrap(t *testing.T) {
	var m Memory
	m.Write(0x1000, 0xAA)
	assert.Equal(t, byte(0xAA), m.Read(0x000))

	m[MaxAddress] = 0x12
	m[0x000] = 0x34
	assert.Equal(t, uint16(0x1234), m.Opcode(MaxAddress))
}

func TestMachine_Load(t *testing.T) {
	m := New(Quirks{})

	assert.NoError(t, m.Load(make([]byte, MaxROMSize)))

	err := m.Load(make([]byte, MaxROMSize+1))
	assert.True(t, errors.Is(err, ErrROMTooLarge))
}

func TestMachine_FontLoaded(t *testing.T) {
	m := New(Quirks{})
	for i, b := range Font {
		assert.Equal(t, b, m.ReadMemory(uint16(FontAddress+i)))
	}
	assert.Equal(t, uint16(ProgramStart), m.PC())
}
