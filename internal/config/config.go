// Package config handles application configuration and setup
package config

import (
	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrochip8/internal/emulator"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/log"
)

// CreateLogger creates a logger with appropriate settings
func CreateLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

// Quirks returns the machine behavior selected by the options.
func Quirks(opts options.Program) chip8.Quirks {
	return chip8.Quirks{
		Cosmac: opts.Cosmac,
		Amiga:  opts.Amiga,
	}
}

// Runner returns the runner settings selected by the options.
// Instructions are only traced when debug logging is enabled.
func Runner(opts options.Program) emulator.Config {
	return emulator.Config{
		Frequency:  opts.Frequency,
		CycleLimit: opts.Cycles,
		Trace:      opts.Debug,
	}
}
