// Package disasm converts CHIP-8 opcodes to assembly mnemonics.
// Instructions are identified using the retrogolib CHIP-8 opcode table.
package disasm

import (
	"fmt"
	"io"

	"github.com/retroenv/retrochip8/internal/chip8"
	cpu "github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// opcodeSize is the size of CHIP-8 instructions in bytes.
const opcodeSize = 2

// Lookup returns the instruction matching the opcode or nil if the opcode is unknown.
// It uses the same opcode table match as the interpreter's decoder.
func Lookup(opcode uint16) *cpu.Instruction {
	entry, ok := chip8.Match(opcode)
	if !ok {
		return nil
	}
	return entry.Instruction
}

// Format returns the assembly representation of an opcode.
// Unknown opcodes are returned as a data word.
func Format(opcode uint16) string {
	instruction := Lookup(opcode)
	if instruction == nil {
		return fmt.Sprintf(".word $%04X", opcode)
	}

	name := instruction.Name
	if params := formatInstruction(name, opcode); params != "" {
		return fmt.Sprintf("%s %s", name, params)
	}
	return name
}

// Listing writes one line per instruction word of the rom, addresses start at base.
// A trailing odd byte is written as data.
func Listing(w io.Writer, rom []byte, base uint16) error {
	for offset := 0; offset < len(rom); offset += opcodeSize {
		address := base + uint16(offset)

		if offset+1 == len(rom) {
			if _, err := fmt.Fprintf(w, "$%03X  %02X    .byte $%02X\n", address, rom[offset], rom[offset]); err != nil {
				return fmt.Errorf("writing listing: %w", err)
			}
			break
		}

		opcode := uint16(rom[offset])<<8 | uint16(rom[offset+1])
		if _, err := fmt.Fprintf(w, "$%03X  %04X  %s\n", address, opcode, Format(opcode)); err != nil {
			return fmt.Errorf("writing listing: %w", err)
		}
	}
	return nil
}

// formatInstruction formats a CHIP-8 instruction with its parameters.
// Returns the formatted parameter string for the given instruction.
func formatInstruction(name string, opcode uint16) string {
	switch name {
	case cpu.ClsName, cpu.RetName:
		return "" // No parameters
	case cpu.JpName:
		return formatJumpInstruction(opcode)
	case cpu.CallName:
		return fmt.Sprintf("$%03X", opcode&0x0FFF)
	case cpu.SeName, cpu.SneName:
		return formatCompareInstruction(opcode)
	case cpu.LdName:
		return formatLoadInstruction(opcode)
	case cpu.AddName:
		return formatAddInstruction(opcode)
	case cpu.OrName, cpu.AndName, cpu.XorName, cpu.SubName, cpu.SubnName, cpu.ShrName, cpu.ShlName:
		return formatBinaryInstruction(opcode)
	case cpu.RndName:
		return formatRandomInstruction(opcode)
	case cpu.DrwName:
		return formatDrawInstruction(opcode)
	case cpu.SkpName, cpu.SknpName:
		return formatSkipInstruction(opcode)
	}
	return ""
}

// formatJumpInstruction formats jump instructions (JP addr, JP V0+addr).
func formatJumpInstruction(opcode uint16) string {
	if opcode&0xF000 == 0x1000 {
		return fmt.Sprintf("$%03X", opcode&0x0FFF)
	}
	if opcode&0xF000 == 0xB000 {
		return fmt.Sprintf("V0, $%03X", opcode&0x0FFF)
	}
	return ""
}

// formatCompareInstruction formats comparison instructions (SE, SNE).
func formatCompareInstruction(opcode uint16) string {
	x := extractRegisterX(opcode)
	switch opcode & 0xF000 {
	case 0x3000, 0x4000:
		return fmt.Sprintf("V%X, $%02X", x, opcode&0x00FF)
	case 0x5000, 0x9000:
		y := extractRegisterY(opcode)
		return fmt.Sprintf("V%X, V%X", x, y)
	}
	return ""
}

// formatLoadInstruction formats all LD variants including the timer,
// key, font, BCD and register block transfers.
func formatLoadInstruction(opcode uint16) string {
	x := extractRegisterX(opcode)
	switch opcode & 0xF000 {
	case 0x6000:
		return fmt.Sprintf("V%X, $%02X", x, opcode&0x00FF)
	case 0x8000:
		y := extractRegisterY(opcode)
		return fmt.Sprintf("V%X, V%X", x, y)
	case 0xA000:
		return fmt.Sprintf("I, $%03X", opcode&0x0FFF)
	case 0xF000:
		return formatMiscLoad(x, opcode&0x00FF)
	}
	return ""
}

var miscLoadFormats = map[uint16]string{
	0x07: "V%X, DT",
	0x0A: "V%X, K",
	0x15: "DT, V%X",
	0x18: "ST, V%X",
	0x29: "F, V%X",
	0x33: "B, V%X",
	0x55: "[I], V%X",
	0x65: "V%X, [I]",
}

func formatMiscLoad(x, kk uint16) string {
	format, ok := miscLoadFormats[kk]
	if !ok {
		return ""
	}
	return fmt.Sprintf(format, x)
}

// formatAddInstruction formats add instructions (ADD Vx, byte/Vy, ADD I, Vx).
func formatAddInstruction(opcode uint16) string {
	x := extractRegisterX(opcode)
	switch opcode & 0xF000 {
	case 0x7000:
		return fmt.Sprintf("V%X, $%02X", x, opcode&0x00FF)
	case 0x8000:
		y := extractRegisterY(opcode)
		return fmt.Sprintf("V%X, V%X", x, y)
	case 0xF000:
		return fmt.Sprintf("I, V%X", x)
	}
	return ""
}

// formatBinaryInstruction formats two register instructions (OR, AND, XOR, SUB, SUBN, SHR, SHL).
func formatBinaryInstruction(opcode uint16) string {
	x := extractRegisterX(opcode)
	y := extractRegisterY(opcode)
	return fmt.Sprintf("V%X, V%X", x, y)
}

// formatRandomInstruction formats random number instructions (RND).
func formatRandomInstruction(opcode uint16) string {
	x := extractRegisterX(opcode)
	return fmt.Sprintf("V%X, $%02X", x, opcode&0x00FF)
}

// formatDrawInstruction formats draw instructions (DRW).
func formatDrawInstruction(opcode uint16) string {
	x := extractRegisterX(opcode)
	y := extractRegisterY(opcode)
	n := opcode & 0x000F
	return fmt.Sprintf("V%X, V%X, $%X", x, y, n)
}

// formatSkipInstruction formats skip instructions (SKP, SKNP).
func formatSkipInstruction(opcode uint16) string {
	x := extractRegisterX(opcode)
	return fmt.Sprintf("V%X", x)
}

// extractRegisterX extracts the X register nibble from a CHIP-8 opcode.
func extractRegisterX(opcode uint16) uint16 {
	return (opcode & 0x0F00) >> 8
}

// extractRegisterY extracts the Y register nibble from a CHIP-8 opcode.
func extractRegisterY(opcode uint16) uint16 {
	return (opcode & 0x00F0) >> 4
}
