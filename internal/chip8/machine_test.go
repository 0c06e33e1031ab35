package chip8

import (
	"errors"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestStep_AdvancesProgramCounter(t *testing.T) {
	opcodes := []uint16{
		0x00E0, 0x6012, 0x7012, 0x8010, 0x8011, 0x8012, 0x8013, 0x8014, 0x8015,
		0x8016, 0x8017, 0x801E, 0xA123, 0xC0FF, 0xD011, 0xF007, 0xF015, 0xF018,
		0xF01E, 0xF029, 0xF033, 0xF055, 0xF065,
	}

	for _, opcode := range opcodes {
		m := newTestMachine(t, Quirks{}, opcode)
		assert.NoError(t, m.Step())
		assert.Equal(t, uint16(ProgramStart+2), m.PC(), "opcode %04X", opcode)
	}
}

func TestStep_InvalidOpcode(t *testing.T) {
	m := newTestMachine(t, Quirks{}, 0x6042, 0x5001)
	run(t, m, 1)
	before := m.Registers()

	err := m.Step()
	assert.True(t, errors.Is(err, ErrInvalidOpcode))

	var fault *Fault
	assert.True(t, errors.As(err, &fault))
	assert.Equal(t, uint16(0x202), fault.Address)
	assert.Equal(t, uint16(0x5001), fault.Opcode)
	assert.Equal(t, before, m.Registers())
}

func TestStep_SysCallIsInvalid(t *testing.T) {
	m := newTestMachine(t, Quirks{}, 0x0123)
	err := m.Step()
	assert.True(t, errors.Is(err, ErrInvalidOpcode))
	assert.Equal(t, uint16(ProgramStart), m.PC())
}

func TestCallReturn(t *testing.T) {
	m := newTestMachine(t, Quirks{},
		0x2206, // 200: CALL 206
		0x1202, // 202: JP 202
		0x0000, // 204
		0x00EE, // 206: RET
	)

	run(t, m, 1)
	assert.Equal(t, uint16(0x206), m.PC())
	assert.Equal(t, 1, m.StackDepth())

	run(t, m, 1)
	assert.Equal(t, uint16(0x202), m.PC())
	assert.Equal(t, 0, m.StackDepth())
}

func TestCall_Overflow(t *testing.T) {
	m := newTestMachine(t, Quirks{}, 0x2200) // CALL 200, recursing forever
	run(t, m, StackDepth)
	assert.Equal(t, StackDepth, m.StackDepth())

	err := m.Step()
	assert.True(t, errors.Is(err, ErrStackOverflow))
	assert.Equal(t, StackDepth, m.StackDepth())
	assert.Equal(t, uint16(ProgramStart), m.PC())
}

func TestReturn_Underflow(t *testing.T) {
	m := newTestMachine(t, Quirks{}, 0x00EE)
	err := m.Step()
	assert.True(t, errors.Is(err, ErrStackUnderflow))
	assert.Equal(t, uint16(ProgramStart), m.PC())
}

func TestStep_ProgramCounterWraps(t *testing.T) {
	m := newTestMachine(t, Quirks{}, 0x1FFE)
	assert.NoError(t, m.LoadAt([]byte{0x60, 0x01}, 0xFFE))
	run(t, m, 2)
	assert.Equal(t, uint16(0x000), m.PC())

	m = newTestMachine(t, Quirks{}, 0x1FFC)
	assert.NoError(t, m.LoadAt([]byte{0x30, 0x00}, 0xFFC))
	run(t, m, 2)
	assert.Equal(t, uint16(0x000), m.PC())

	// the fault after wrapping reports the masked address, memory at 0x000 is zero
	err := m.Step()
	var fault *Fault
	assert.True(t, errors.As(err, &fault))
	assert.Equal(t, uint16(0x000), fault.Address)
}

func TestWaitKey_RepeatsAtEndOfMemory(t *testing.T) {
	m := newTestMachine(t, Quirks{}, 0x1FFE)
	assert.NoError(t, m.LoadAt([]byte{0xF0, 0x0A}, 0xFFE))
	run(t, m, 3)
	assert.Equal(t, uint16(0xFFE), m.PC())
}

func TestJump_SelfLoop(t *testing.T) {
	m := newTestMachine(t, Quirks{}, 0x6001, 0x1202)
	for range 10 {
		run(t, m, 1)
	}
	assert.Equal(t, uint16(0x202), m.PC())
	run(t, m, 5)
	assert.Equal(t, uint16(0x202), m.PC())
}

func TestSkips(t *testing.T) {
	tests := []struct {
		name    string
		opcode  uint16
		skipped bool
	}{
		{"SE byte equal", 0x3005, true},
		{"SE byte not equal", 0x3006, false},
		{"SNE byte equal", 0x4005, false},
		{"SNE byte not equal", 0x4006, true},
		{"SE reg equal", 0x5020, true},
		{"SE reg not equal", 0x5010, false},
		{"SNE reg equal", 0x9020, false},
		{"SNE reg not equal", 0x9010, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// V0 = 5, V1 = 6, V2 = 5
			m := newTestMachine(t, Quirks{}, 0x6005, 0x6106, 0x6205, tt.opcode)
			run(t, m, 4)

			expected := uint16(0x208)
			if tt.skipped {
				expected += 2
			}
			assert.Equal(t, expected, m.PC())
		})
	}
}

func TestAddByte_WrapsWithoutFlag(t *testing.T) {
	m := newTestMachine(t, Quirks{}, 0x60FF, 0x6F07, 0x7002)
	run(t, m, 3)

	regs := m.Registers()
	assert.Equal(t, uint8(0x01), regs.V[0])
	assert.Equal(t, uint8(0x07), regs.V[0xF])
}

func TestArithmetic(t *testing.T) {
	tests := []struct {
		name   string
		op     uint16
		vx, vy uint8
		result uint8
		flag   uint8
	}{
		{"ADD carry", 0x8014, 0xFF, 0x01, 0x00, 1},
		{"ADD no carry", 0x8014, 0x01, 0x01, 0x02, 0},
		{"SUB no borrow", 0x8015, 0x05, 0x03, 0x02, 1},
		{"SUB borrow", 0x8015, 0x03, 0x05, 0xFE, 0},
		{"SUB equal", 0x8015, 0x05, 0x05, 0x00, 1},
		{"SUBN no borrow", 0x8017, 0x03, 0x05, 0x02, 1},
		{"SUBN borrow", 0x8017, 0x05, 0x03, 0xFE, 0},
		{"SHR low bit set", 0x8016, 0x05, 0x00, 0x02, 1},
		{"SHR low bit clear", 0x8016, 0x04, 0x00, 0x02, 0},
		{"SHL high bit set", 0x801E, 0x81, 0x00, 0x02, 1},
		{"SHL high bit clear", 0x801E, 0x41, 0x00, 0x82, 0},
		{"LD", 0x8010, 0x01, 0x33, 0x33, 0x77},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestMachine(t, Quirks{},
				0x6000|uint16(tt.vx),
				0x6100|uint16(tt.vy),
				0x6F77,
				tt.op,
			)
			run(t, m, 4)

			regs := m.Registers()
			assert.Equal(t, tt.result, regs.V[0])
			assert.Equal(t, tt.flag, regs.V[0xF])
		})
	}
}

func TestArithmetic_FlagRegisterAsOperand(t *testing.T) {
	// the flag result overwrites the arithmetic result when VF is the target
	m := newTestMachine(t, Quirks{}, 0x6FFF, 0x6101, 0x8F14)
	run(t, m, 3)
	assert.Equal(t, uint8(1), m.Registers().V[0xF])
}

func TestShift_Cosmac(t *testing.T) {
	tests := []struct {
		name   string
		op     uint16
		result uint8
		flag   uint8
	}{
		{"SHR shifts VY", 0x8016, 0x40, 1},
		{"SHL shifts VY", 0x801E, 0x02, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// V0 = 0x10, V1 = 0x81
			m := newTestMachine(t, Quirks{Cosmac: true}, 0x6010, 0x6181, tt.op)
			run(t, m, 3)

			regs := m.Registers()
			assert.Equal(t, tt.result, regs.V[0])
			assert.Equal(t, tt.flag, regs.V[0xF])
			assert.Equal(t, uint8(0x81), regs.V[1])
		})
	}
}

func TestLogical(t *testing.T) {
	tests := []struct {
		name   string
		op     uint16
		result uint8
	}{
		{"OR", 0x8011, 0xFC},
		{"AND", 0x8012, 0x0C},
		{"XOR", 0x8013, 0xF0},
	}

	for _, tt := range tests {
		for _, cosmac := range []bool{false, true} {
			m := newTestMachine(t, Quirks{Cosmac: cosmac}, 0x603C, 0x61CC, 0x6F07, tt.op)
			run(t, m, 4)

			regs := m.Registers()
			assert.Equal(t, tt.result, regs.V[0], tt.name)
			if cosmac {
				assert.Equal(t, uint8(0), regs.V[0xF], tt.name)
			} else {
				assert.Equal(t, uint8(7), regs.V[0xF], tt.name)
			}
		}
	}
}

func TestJumpOffset(t *testing.T) {
	program := []uint16{0x6004, 0x6110, 0xB120}

	m := newTestMachine(t, Quirks{}, program...)
	run(t, m, 3)
	assert.Equal(t, uint16(0x130), m.PC())

	m = newTestMachine(t, Quirks{Cosmac: true}, program...)
	run(t, m, 3)
	assert.Equal(t, uint16(0x124), m.PC())
}

func TestJumpOffset_MasksAddress(t *testing.T) {
	m := newTestMachine(t, Quirks{Cosmac: true}, 0x60FF, 0xBFFF)
	run(t, m, 2)
	assert.Equal(t, uint16(0x0FE), m.PC())
}

func TestRandom(t *testing.T) {
	m := newTestMachine(t, Quirks{}, 0xC30F)
	run(t, m, 1)
	assert.Equal(t, uint8(0x0B), m.Registers().V[3])
}

func TestDraw_Collision(t *testing.T) {
	m := newTestMachine(t, Quirks{},
		0xA208, // 200: LD I, 208
		0xD011, // 202: DRW V0, V1, 1
		0xD011, // 204: DRW V0, V1, 1
		0x1206, // 206: JP 206
		0x8000, // 208: sprite data
	)

	run(t, m, 2)
	assert.Equal(t, uint8(0), m.Registers().V[0xF])
	assert.True(t, m.DisplaySnapshot()[0][0])
	assert.True(t, m.TakeRenderPending())

	run(t, m, 1)
	assert.Equal(t, uint8(1), m.Registers().V[0xF])
	assert.Equal(t, 0, countPixels(m.DisplaySnapshot()))
	assert.True(t, m.TakeRenderPending())
}

func TestDraw_Font(t *testing.T) {
	m := newTestMachine(t, Quirks{},
		0x6008, // V0 = 8
		0xF029, // LD F, V0
		0x6100, // V1 = 0
		0xD115, // DRW V1, V1, 5
	)
	run(t, m, 4)

	assert.Equal(t, uint16(FontAddress+8*FontCharSize), m.Registers().I)
	frame := m.DisplaySnapshot()
	// digit 8 top row is 0xF0, middle row 0x90 is 1001
	assert.True(t, frame[0][0] && frame[0][3])
	assert.True(t, frame[1][0] && !frame[1][1] && frame[1][3])
}

func TestDraw_ClipCosmac(t *testing.T) {
	program := []uint16{
		0xA20A, // LD I, 20A
		0x603E, // V0 = 62
		0x611F, // V1 = 31
		0xD012, // DRW V0, V1, 2
		0x1208, // JP 208
		0xFFFF, // 20A: sprite data
	}

	m := newTestMachine(t, Quirks{Cosmac: true}, program...)
	run(t, m, 4)
	assert.Equal(t, 2, countPixels(m.DisplaySnapshot()))

	m = newTestMachine(t, Quirks{}, program...)
	run(t, m, 4)
	assert.Equal(t, 16, countPixels(m.DisplaySnapshot()))
}

func TestClearScreen(t *testing.T) {
	m := newTestMachine(t, Quirks{}, 0xA050, 0xD005, 0x00E0)
	run(t, m, 2)
	assert.True(t, countPixels(m.DisplaySnapshot()) > 0)
	m.TakeRenderPending()

	run(t, m, 1)
	assert.Equal(t, Frame{}, m.DisplaySnapshot())
	assert.True(t, m.TakeRenderPending())
}

func TestSkipKey(t *testing.T) {
	tests := []struct {
		name    string
		opcode  uint16
		pressed bool
		skipped bool
	}{
		{"SKP pressed", 0xE09E, true, true},
		{"SKP released", 0xE09E, false, false},
		{"SKNP pressed", 0xE0A1, true, false},
		{"SKNP released", 0xE0A1, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// key index is taken from the low nibble of V0
			m := newTestMachine(t, Quirks{}, 0x60FA, tt.opcode)
			m.SetKey(0xA, tt.pressed)
			run(t, m, 2)

			expected := uint16(0x204)
			if tt.skipped {
				expected += 2
			}
			assert.Equal(t, expected, m.PC())
		})
	}
}

func TestSetKey_IgnoresInvalidIndex(t *testing.T) {
	m := New(Quirks{})
	m.SetKey(KeyCount, true)
	assert.Equal(t, [KeyCount]bool{}, m.keys)
}

func TestWaitKey(t *testing.T) {
	m := newTestMachine(t, Quirks{}, 0xF30A)

	for range 5 {
		run(t, m, 1)
		assert.Equal(t, uint16(ProgramStart), m.PC())
	}

	m.SetKey(0x9, true)
	m.SetKey(0x5, true)
	run(t, m, 1)
	assert.Equal(t, uint16(ProgramStart+2), m.PC())
	assert.Equal(t, uint8(0x5), m.Registers().V[3])
}

func TestWaitKey_CosmacWaitsForRelease(t *testing.T) {
	m := newTestMachine(t, Quirks{Cosmac: true}, 0xF30A)

	run(t, m, 1)
	assert.Equal(t, uint16(ProgramStart), m.PC())
	_, waiting := m.WaitingForKey()
	assert.False(t, waiting)

	m.SetKey(0x7, true)
	run(t, m, 1)
	assert.Equal(t, uint16(ProgramStart), m.PC())
	key, waiting := m.WaitingForKey()
	assert.True(t, waiting)
	assert.Equal(t, uint8(0x7), key)
	assert.Equal(t, uint8(0), m.Registers().V[3])

	// another key pressed while holding does not replace the latched key
	m.SetKey(0x2, true)
	run(t, m, 2)
	assert.Equal(t, uint16(ProgramStart), m.PC())

	m.SetKey(0x7, false)
	run(t, m, 1)
	assert.Equal(t, uint16(ProgramStart+2), m.PC())
	assert.Equal(t, uint8(0x7), m.Registers().V[3])
	_, waiting = m.WaitingForKey()
	assert.False(t, waiting)
}

func TestTimers(t *testing.T) {
	m := newTestMachine(t, Quirks{}, 0x6002, 0xF015, 0xF018, 0xF107)
	run(t, m, 3)
	assert.True(t, m.SoundActive())

	m.TickTimers()
	run(t, m, 1)
	assert.Equal(t, uint8(1), m.Registers().V[1])
	assert.True(t, m.SoundActive())

	for range 3 {
		m.TickTimers()
	}
	regs := m.Registers()
	assert.Equal(t, uint8(0), regs.DelayTimer)
	assert.Equal(t, uint8(0), regs.SoundTimer)
	assert.False(t, m.SoundActive())
}

func TestAddIndex(t *testing.T) {
	tests := []struct {
		name   string
		quirks Quirks
		index  uint16
		value  uint8
		result uint16
		flag   uint8
	}{
		{"no overflow", Quirks{}, 0x100, 0x10, 0x110, 7},
		{"overflow clamps", Quirks{}, 0xFFE, 0x10, 0xFFF, 7},
		{"amiga overflow sets flag", Quirks{Amiga: true}, 0xFFE, 0x10, 0xFFF, 1},
		{"amiga no overflow keeps flag", Quirks{Amiga: true}, 0x100, 0x10, 0x110, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestMachine(t, tt.quirks,
				0xA000|tt.index,
				0x6000|uint16(tt.value),
				0x6F07,
				0xF01E,
			)
			run(t, m, 4)

			regs := m.Registers()
			assert.Equal(t, tt.result, regs.I)
			assert.Equal(t, tt.flag, regs.V[0xF])
		})
	}
}

func TestStoreBCD(t *testing.T) {
	m := newTestMachine(t, Quirks{}, 0x60FE, 0xA300, 0xF033)
	run(t, m, 3)

	assert.Equal(t, byte(2), m.ReadMemory(0x300))
	assert.Equal(t, byte(5), m.ReadMemory(0x301))
	assert.Equal(t, byte(4), m.ReadMemory(0x302))
}

func TestStoreLoadRegisters(t *testing.T) {
	tests := []struct {
		name   string
		quirks Quirks
		index  uint16
	}{
		{"modern leaves I", Quirks{}, 0x300},
		{"cosmac increments I", Quirks{Cosmac: true}, 0x303},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestMachine(t, tt.quirks,
				0x6011, 0x6122, 0x6233, 0x6344,
				0xA300,
				0xF255, // store V0-V2
			)
			run(t, m, 6)

			assert.Equal(t, tt.index, m.Registers().I)
			assert.Equal(t, byte(0x11), m.ReadMemory(0x300))
			assert.Equal(t, byte(0x33), m.ReadMemory(0x302))
			assert.Equal(t, byte(0x00), m.ReadMemory(0x303))

			m = newTestMachine(t, tt.quirks, 0xA300, 0xF165)
			assert.NoError(t, m.LoadAt([]byte{0xAA, 0xBB, 0xCC}, 0x300))
			run(t, m, 2)

			regs := m.Registers()
			assert.Equal(t, uint8(0xAA), regs.V[0])
			assert.Equal(t, uint8(0xBB), regs.V[1])
			assert.Equal(t, uint8(0x00), regs.V[2])
			if tt.quirks.Cosmac {
				assert.Equal(t, uint16(0x302), regs.I)
			} else {
				assert.Equal(t, uint16(0x300), regs.I)
			}
		})
	}
}
