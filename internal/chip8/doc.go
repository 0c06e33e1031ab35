// Package chip8 implements the CHIP-8 virtual machine interpreter.
//
// # Machine Overview
//
// The machine consists of:
//   - 4KB of memory (0x000-MaxAddress), font set at FontAddress
//   - 16 general-purpose 8-bit registers (V0-VF) and a 12-bit index register I
//   - a program counter and a return address stack limited to StackDepth entries
//   - delay and sound timers counting down at TimerFrequency
//   - a 64x32 monochrome display and a 16 key hexadecimal keypad
//
// # Memory Layout
//
//	0x000-0x1FF: Interpreter area, holds the font set at 0x050-0x09F
//	0x200-0xFFF: Program and data area (ProgramStart-MaxAddress)
//
// # Execution
//
// Step fetches the big-endian 2 byte opcode at the program counter, advances the
// program counter and executes the decoded instruction. TickTimers is driven by the
// host at 60 Hz independent of the instruction rate. The machine performs no I/O: the
// host feeds key state with SetKey, draws DisplaySnapshot when TakeRenderPending
// reports a change and plays a tone while SoundActive is true.
//
// # Quirks
//
// Quirks selects historically divergent behavior of six instructions:
//   - COSMAC VIP: 8XY1/8XY2/8XY3 reset VF, 8XY6/8XYE shift Vy, BNNN jumps to NNN+V0,
//     FX55/FX65 increment I and DXYN clips sprites at the screen edges
//   - Amiga: FX1E sets VF when I overflows 0xFFF
//
// # Errors
//
// Invalid opcodes and call stack overflow or underflow abort the instruction without
// side effects and are returned as *Fault wrapping ErrInvalidOpcode,
// ErrStackOverflow or ErrStackUnderflow.
package chip8
