package chip8

import (
	"fmt"
	"math/rand/v2"
)

// Machine constants.
const (
	// RegisterCount is the number of general-purpose registers V0-VF.
	RegisterCount = 16

	// KeyCount is the number of keys of the hexadecimal keypad.
	KeyCount = 16

	// TimerFrequency is the rate in Hz at which TickTimers is expected to be called.
	TimerFrequency = 60

	// flagRegister is the index of VF, the carry, borrow and collision flag.
	flagRegister = 0xF

	// noKey marks an unset key-wait latch.
	noKey = -1
)

// Quirks selects historical interpreter behavior. It is fixed for the lifetime of a Machine.
type Quirks struct {
	Cosmac bool // COSMAC VIP semantics
	Amiga  bool // Amiga interpreter index overflow flag
}

// Registers contains the register file of the machine.
type Registers struct {
	V          [RegisterCount]uint8
	I          uint16
	PC         uint16
	DelayTimer uint8
	SoundTimer uint8
}

// RandomSource returns random bytes for the CXKK instruction.
type RandomSource func() uint8

// Option configures a Machine.
type Option func(*Machine)

// WithRandomSource replaces the default pseudo random byte generator.
func WithRandomSource(source RandomSource) Option {
	return func(m *Machine) {
		m.random = source
	}
}

// Machine is the complete state of a CHIP-8 virtual machine.
// It is not safe for concurrent use.
type Machine struct {
	quirks  Quirks
	random  RandomSource
	memory  Memory
	regs    Registers
	stack   Stack
	keys    [KeyCount]bool
	display Display

	keyLatch int // key pressed during a COSMAC key-wait, noKey if none
}

// New returns a machine with the font set loaded and the program counter
// pointing at ProgramStart.
func New(quirks Quirks, options ...Option) *Machine {
	m := &Machine{
		quirks:   quirks,
		random:   randomByte,
		keyLatch: noKey,
	}
	m.regs.PC = ProgramStart
	copy(m.memory[FontAddress:], Font[:])

	for _, option := range options {
		option(m)
	}
	return m
}

func randomByte() uint8 {
	return uint8(rand.UintN(256))
}

// Load copies a program into memory at ProgramStart.
func (m *Machine) Load(rom []byte) error {
	if len(rom) > MaxROMSize {
		return fmt.Errorf("%w: %d bytes exceed the %d bytes of program memory",
			ErrROMTooLarge, len(rom), MaxROMSize)
	}
	return m.memory.Load(rom, ProgramStart)
}

// LoadAt copies data into memory at the given address.
func (m *Machine) LoadAt(data []byte, address uint16) error {
	return m.memory.Load(data, address)
}

// Step fetches, decodes and executes a single instruction.
// If the instruction faults the machine state is left unchanged and a *Fault is returned.
func (m *Machine) Step() error {
	pc := m.regs.PC
	opcode := m.memory.Opcode(pc)

	ins, err := Decode(opcode)
	if err != nil {
		return &Fault{Address: pc, Opcode: opcode, Err: ErrInvalidOpcode}
	}

	m.regs.PC = (pc + 2) & MaxAddress
	if err := m.execute(ins); err != nil {
		m.regs.PC = pc
		return &Fault{Address: pc, Opcode: opcode, Err: err}
	}
	return nil
}

// TickTimers decrements the delay and sound timers by one step, stopping at zero.
func (m *Machine) TickTimers() {
	if m.regs.DelayTimer > 0 {
		m.regs.DelayTimer--
	}
	if m.regs.SoundTimer > 0 {
		m.regs.SoundTimer--
	}
}

// SoundActive returns whether the sound timer is running and a tone should be played.
func (m *Machine) SoundActive() bool {
	return m.regs.SoundTimer > 0
}

// SetKey updates the state of a keypad key. Indexes outside 0-15 are ignored.
func (m *Machine) SetKey(key uint8, pressed bool) {
	if int(key) < KeyCount {
		m.keys[key] = pressed
	}
}

// SetKeys replaces the state of all keypad keys.
func (m *Machine) SetKeys(keys [KeyCount]bool) {
	m.keys = keys
}

// DisplaySnapshot returns a copy of the display pixels.
func (m *Machine) DisplaySnapshot() Frame {
	return m.display.Snapshot()
}

// TakeRenderPending returns whether the display changed since the last call.
func (m *Machine) TakeRenderPending() bool {
	return m.display.TakePending()
}

// Registers returns a copy of the register file.
func (m *Machine) Registers() Registers {
	return m.regs
}

// PC returns the program counter.
func (m *Machine) PC() uint16 {
	return m.regs.PC
}

// Opcode returns the instruction word stored at the given address.
func (m *Machine) Opcode(address uint16) uint16 {
	return m.memory.Opcode(address)
}

// ReadMemory returns the byte at the given address.
func (m *Machine) ReadMemory(address uint16) byte {
	return m.memory.Read(address)
}

// StackDepth returns the number of active subroutine calls.
func (m *Machine) StackDepth() int {
	return m.stack.Depth()
}

// WaitingForKey returns whether a COSMAC key-wait has seen a key press and
// is waiting for its release, and which key it is.
func (m *Machine) WaitingForKey() (uint8, bool) {
	if m.keyLatch == noKey {
		return 0, false
	}
	return uint8(m.keyLatch), true
}

// Quirks returns the quirk configuration of the machine.
func (m *Machine) Quirks() Quirks {
	return m.quirks
}
