package chip8

import (
	"errors"
	"fmt"

	cpu "github.com/retroenv/retrogolib/arch/cpu/chip8"
)

var (
	// ErrInvalidOpcode is returned for opcodes that have no defined instruction,
	// including the unimplemented 0NNN machine code calls.
	ErrInvalidOpcode = errors.New("invalid opcode")
	// ErrStackOverflow is returned when calling a subroutine with a full call stack.
	ErrStackOverflow = cpu.ErrStackOverflow
	// ErrStackUnderflow is returned when returning from a subroutine with an empty call stack.
	ErrStackUnderflow = cpu.ErrStackUnderflow
	// ErrROMTooLarge is returned when loaded data does not fit into memory.
	ErrROMTooLarge = errors.New("rom too large")
)

// Fault describes an instruction that aborted the run.
type Fault struct {
	Address uint16 // address the opcode was fetched from
	Opcode  uint16
	Err     error
}

func (f *Fault) Error() string {
	return fmt.Sprintf("%s: opcode $%04X at $%03X", f.Err, f.Opcode, f.Address)
}

func (f *Fault) Unwrap() error {
	return f.Err
}
