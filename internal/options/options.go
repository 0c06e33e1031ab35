// Package options contains the program options.
package options

// Frontend names.
const (
	FrontendWindow   = "window"
	FrontendTerminal = "terminal"
	FrontendHeadless = "headless"
)

// Frontends lists all supported frontend names.
var Frontends = []string{FrontendWindow, FrontendTerminal, FrontendHeadless}

// Defaults of the emulator flags.
const (
	DefaultFrequency = 700
	DefaultScale     = 10
)

// Parameters contains file path options.
type Parameters struct {
	Input string `flag:"i" usage:"input ROM file"`
}

// Flags contains behavior options.
type Flags struct {
	Frequency int    `flag:"freq" usage:"instructions per second" default:"700"`
	Scale     int    `flag:"scale" usage:"window pixels per display pixel" default:"10"`
	Frontend  string `flag:"frontend" usage:"frontend: window, terminal, headless" default:"window"`
	Cycles    uint64 `flag:"cycles" usage:"stop after this many instructions, 0 for no limit"`
	Cosmac    bool   `flag:"cosmac" usage:"enable COSMAC VIP behavior"`
	Amiga     bool   `flag:"amiga" usage:"enable Amiga FX1E overflow flag"`
	Mute      bool   `flag:"mute" usage:"disable sound"`
	Debug     bool   `flag:"debug" usage:"enable debug logging"`
	Quiet     bool   `flag:"q" usage:"quiet mode"`
}

// Program options of the emulator.
type Program struct {
	Parameters
	Flags
}

// Disassembler options of the disassembler command.
type Disassembler struct {
	Input  string `flag:"i" usage:"input ROM file"`
	Output string `flag:"o" usage:"output file (default: stdout)"`
	Quiet  bool   `flag:"q" usage:"quiet mode"`
}
