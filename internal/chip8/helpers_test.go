package chip8

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

// newTestMachine returns a machine with the given opcodes loaded at ProgramStart.
func newTestMachine(t *testing.T, quirks Quirks, opcodes ...uint16) *Machine {
	t.Helper()

	m := New(quirks, WithRandomSource(func() uint8 { return 0xAB }))
	assert.NoError(t, m.Load(assemble(opcodes...)))
	return m
}

func assemble(opcodes ...uint16) []byte {
	rom := make([]byte, 0, 2*len(opcodes))
	for _, op := range opcodes {
		rom = append(rom, byte(op>>8), byte(op))
	}
	return rom
}

// run executes the given number of instructions and fails the test on a fault.
func run(t *testing.T, m *Machine, steps int) {
	t.Helper()

	for range steps {
		assert.NoError(t, m.Step())
	}
}
