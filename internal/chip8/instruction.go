package chip8

import (
	"fmt"

	cpu "github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// Op identifies a decoded CHIP-8 instruction.
type Op uint8

// All instructions of the CHIP-8 instruction set, the comments list the opcode pattern.
// The 0NNN machine code call is not supported and decodes as invalid.
const (
	OpInvalid     Op = iota
	OpCls            // 00E0
	OpRet            // 00EE
	OpJump           // 1NNN
	OpCall           // 2NNN
	OpSkipEqByte     // 3XKK
	OpSkipNeByte     // 4XKK
	OpSkipEqReg      // 5XY0
	OpLoadByte       // 6XKK
	OpAddByte        // 7XKK
	OpLoadReg        // 8XY0
	OpOr             // 8XY1
	OpAnd            // 8XY2
	OpXor            // 8XY3
	OpAddReg         // 8XY4
	OpSub            // 8XY5
	OpShiftRight     // 8XY6
	OpSubN           // 8XY7
	OpShiftLeft      // 8XYE
	OpSkipNeReg      // 9XY0
	OpLoadIndex      // ANNN
	OpJumpOffset     // BNNN
	OpRandom         // CXKK
	OpDraw           // DXYN
	OpSkipKey        // EX9E
	OpSkipNotKey     // EXA1
	OpLoadDelay      // FX07
	OpWaitKey        // FX0A
	OpSetDelay       // FX15
	OpSetSound       // FX18
	OpAddIndex       // FX1E
	OpLoadFont       // FX29
	OpStoreBCD       // FX33
	OpStoreRegs      // FX55
	OpLoadRegs       // FX65

	opCount
)

var opNames = [opCount]string{
	OpInvalid:    "invalid",
	OpCls:        "CLS",
	OpRet:        "RET",
	OpJump:       "JP addr",
	OpCall:       "CALL addr",
	OpSkipEqByte: "SE Vx, byte",
	OpSkipNeByte: "SNE Vx, byte",
	OpSkipEqReg:  "SE Vx, Vy",
	OpLoadByte:   "LD Vx, byte",
	OpAddByte:    "ADD Vx, byte",
	OpLoadReg:    "LD Vx, Vy",
	OpOr:         "OR Vx, Vy",
	OpAnd:        "AND Vx, Vy",
	OpXor:        "XOR Vx, Vy",
	OpAddReg:     "ADD Vx, Vy",
	OpSub:        "SUB Vx, Vy",
	OpShiftRight: "SHR Vx {, Vy}",
	OpSubN:       "SUBN Vx, Vy",
	OpShiftLeft:  "SHL Vx {, Vy}",
	OpSkipNeReg:  "SNE Vx, Vy",
	OpLoadIndex:  "LD I, addr",
	OpJumpOffset: "JP V0, addr",
	OpRandom:     "RND Vx, byte",
	OpDraw:       "DRW Vx, Vy, nibble",
	OpSkipKey:    "SKP Vx",
	OpSkipNotKey: "SKNP Vx",
	OpLoadDelay:  "LD Vx, DT",
	OpWaitKey:    "LD Vx, K",
	OpSetDelay:   "LD DT, Vx",
	OpSetSound:   "LD ST, Vx",
	OpAddIndex:   "ADD I, Vx",
	OpLoadFont:   "LD F, Vx",
	OpStoreBCD:   "LD B, Vx",
	OpStoreRegs:  "LD [I], Vx",
	OpLoadRegs:   "LD Vx, [I]",
}

func (o Op) String() string {
	if o >= opCount {
		return fmt.Sprintf("Op(%d)", uint8(o))
	}
	return opNames[o]
}

// Instruction is a decoded opcode with all of its operand fields extracted.
// Fields that the instruction does not use are still filled from the opcode.
type Instruction struct {
	Op     Op
	Opcode uint16
	X      uint8  // second nibble, register index
	Y      uint8  // third nibble, register index
	N      uint8  // fourth nibble
	KK     uint8  // low byte
	NNN    uint16 // low 12 bits, address
}

// Decode extracts the nibbles of an opcode and identifies its instruction
// using the opcode table of the retrogolib CHIP-8 package.
// Opcodes without a defined instruction return ErrInvalidOpcode.
func Decode(opcode uint16) (Instruction, error) {
	ins := Instruction{
		Opcode: opcode,
		X:      uint8(opcode>>8) & 0xF,
		Y:      uint8(opcode>>4) & 0xF,
		N:      uint8(opcode) & 0xF,
		KK:     uint8(opcode),
		NNN:    opcode & 0x0FFF,
	}

	if entry, ok := Match(opcode); ok {
		ins.Op = opByPattern[entry.Info.Value]
	}
	if ins.Op == OpInvalid {
		return ins, fmt.Errorf("%w $%04X", ErrInvalidOpcode, opcode)
	}
	return ins, nil
}

// Match returns the opcode table entry whose mask and value match the opcode.
// The 0NNN machine code call has no entry.
func Match(opcode uint16) (cpu.Opcode, bool) {
	for _, entry := range cpu.Opcodes[opcode>>12] {
		if opcode&entry.Info.Mask == entry.Info.Value {
			return entry, true
		}
	}
	return cpu.Opcode{}, false
}

// opByPattern maps the value of every opcode table entry to its instruction.
var opByPattern = map[uint16]Op{
	cpu.Opcode00E0.Value: OpCls,
	cpu.Opcode00EE.Value: OpRet,
	cpu.Opcode1000.Value: OpJump,
	cpu.Opcode2000.Value: OpCall,
	cpu.Opcode3000.Value: OpSkipEqByte,
	cpu.Opcode4000.Value: OpSkipNeByte,
	cpu.Opcode5000.Value: OpSkipEqReg,
	cpu.Opcode6000.Value: OpLoadByte,
	cpu.Opcode7000.Value: OpAddByte,
	cpu.Opcode8000.Value: OpLoadReg,
	cpu.Opcode8001.Value: OpOr,
	cpu.Opcode8002.Value: OpAnd,
	cpu.Opcode8003.Value: OpXor,
	cpu.Opcode8004.Value: OpAddReg,
	cpu.Opcode8005.Value: OpSub,
	cpu.Opcode8006.Value: OpShiftRight,
	cpu.Opcode8007.Value: OpSubN,
	cpu.Opcode800E.Value: OpShiftLeft,
	cpu.Opcode9000.Value: OpSkipNeReg,
	cpu.OpcodeA000.Value: OpLoadIndex,
	cpu.OpcodeB000.Value: OpJumpOffset,
	cpu.OpcodeC000.Value: OpRandom,
	cpu.OpcodeD000.Value: OpDraw,
	cpu.OpcodeE09E.Value: OpSkipKey,
	cpu.OpcodeE0A1.Value: OpSkipNotKey,
	cpu.OpcodeF007.Value: OpLoadDelay,
	cpu.OpcodeF00A.Value: OpWaitKey,
	cpu.OpcodeF015.Value: OpSetDelay,
	cpu.OpcodeF018.Value: OpSetSound,
	cpu.OpcodeF01E.Value: OpAddIndex,
	cpu.OpcodeF029.Value: OpLoadFont,
	cpu.OpcodeF033.Value: OpStoreBCD,
	cpu.OpcodeF055.Value: OpStoreRegs,
	cpu.OpcodeF065.Value: OpLoadRegs,
}
