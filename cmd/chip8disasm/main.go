// Package main implements a CHIP-8 ROM disassembler
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrochip8/internal/cli"
	"github.com/retroenv/retrochip8/internal/config"
	"github.com/retroenv/retrochip8/internal/disasm"
	"github.com/retroenv/retrochip8/internal/loader"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

func main() {
	opts, err := cli.ParseDisasmFlags()
	logger := config.CreateLogger(false, opts.Quiet)
	if err != nil {
		var usageErr *cli.UsageError
		if errors.As(err, &usageErr) {
			printBanner(logger, opts)
			usageErr.ShowUsage()
		} else {
			logger.Error(err.Error())
		}
		os.Exit(1)
	}

	printBanner(logger, opts)

	if err := disasmFile(opts); err != nil {
		logger.Error("Disassembling failed", log.Err(err))
		os.Exit(1)
	}
}

func printBanner(logger *log.Logger, opts options.Disassembler) {
	if opts.Quiet {
		return
	}
	logger.Info("chip8disasm", log.String("version", buildinfo.Version(version, commit, date)))
}

func disasmFile(opts options.Disassembler) error {
	rom, err := loader.New().Load(opts.Input)
	if err != nil {
		return fmt.Errorf("loading ROM: %w", err)
	}

	var outputFile io.WriteCloser
	if opts.Output == "" {
		outputFile = os.Stdout
	} else {
		outputFile, err = os.Create(opts.Output)
		if err != nil {
			return fmt.Errorf("creating file '%s': %w", opts.Output, err)
		}
	}

	if err := disasm.Listing(outputFile, rom, chip8.ProgramStart); err != nil {
		_ = outputFile.Close()
		return fmt.Errorf("disassembling '%s': %w", opts.Input, err)
	}

	if outputFile != os.Stdout {
		if err := outputFile.Close(); err != nil {
			return fmt.Errorf("closing file '%s': %w", opts.Output, err)
		}
	}
	return nil
}
