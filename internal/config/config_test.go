package config

import (
	"testing"

	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrochip8/internal/emulator"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/assert"
)

func TestCreateLogger(t *testing.T) {
	assert.NotNil(t, CreateLogger(false, false))
	assert.NotNil(t, CreateLogger(true, false))
	assert.NotNil(t, CreateLogger(false, true))
}

func TestQuirks(t *testing.T) {
	assert.Equal(t, chip8.Quirks{}, Quirks(options.Program{}))

	opts := options.Program{Flags: options.Flags{Cosmac: true, Amiga: true}}
	assert.Equal(t, chip8.Quirks{Cosmac: true, Amiga: true}, Quirks(opts))
}

func TestRunner(t *testing.T) {
	opts := options.Program{Flags: options.Flags{Frequency: 500, Cycles: 20, Debug: true}}
	assert.Equal(t, emulator.Config{Frequency: 500, CycleLimit: 20, Trace: true}, Runner(opts))
}
