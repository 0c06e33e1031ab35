// Package main implements a CHIP-8 emulator
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/retroenv/retrochip8/internal/audio"
	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrochip8/internal/cli"
	"github.com/retroenv/retrochip8/internal/config"
	"github.com/retroenv/retrochip8/internal/emulator"
	"github.com/retroenv/retrochip8/internal/frontend/headless"
	"github.com/retroenv/retrochip8/internal/frontend/terminal"
	"github.com/retroenv/retrochip8/internal/frontend/window"
	"github.com/retroenv/retrochip8/internal/loader"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/arch"
	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

func main() {
	ctx := app.Context()

	opts, err := cli.ParseFlags()
	if err != nil {
		logger := config.CreateLogger(opts.Debug, opts.Quiet)
		var usageErr *cli.UsageError
		if errors.As(err, &usageErr) {
			printBanner(logger, opts)
			usageErr.ShowUsage()
		} else {
			logger.Error(err.Error())
		}
		os.Exit(1)
	}

	logger := config.CreateLogger(opts.Debug, opts.Quiet)
	printBanner(logger, opts)

	if err := run(ctx, logger, opts); err != nil {
		if errors.Is(err, context.Canceled) {
			logger.Info("Emulation cancelled")
			return
		}

		var fault *chip8.Fault
		if errors.As(err, &fault) {
			logger.Error("Machine fault",
				log.Hex("address", fault.Address),
				log.Hex("opcode", fault.Opcode),
				log.Err(fault.Err))
		} else {
			logger.Error("Emulation failed", log.Err(err))
		}
		os.Exit(1)
	}
}

func printBanner(logger *log.Logger, opts options.Program) {
	if opts.Quiet {
		return
	}
	logger.Info("retrochip8",
		log.String("version", buildinfo.Version(version, commit, date)),
		log.String("system", string(arch.CHIP8System)))
}

func run(ctx context.Context, logger *log.Logger, opts options.Program) error {
	rom, err := loader.New().Load(opts.Input)
	if err != nil {
		return fmt.Errorf("loading ROM: %w", err)
	}

	machine := chip8.New(config.Quirks(opts))
	if err := machine.Load(rom); err != nil {
		return fmt.Errorf("loading ROM into memory: %w", err)
	}

	logger.Info("Running ROM",
		log.String("file", opts.Input),
		log.Int("size", len(rom)),
		log.String("frontend", opts.Frontend),
		log.Int("frequency", opts.Frequency))

	sound, closeSound := openAudio(logger, opts)
	defer closeSound()

	switch opts.Frontend {
	case options.FrontendHeadless:
		return runHeadless(ctx, logger, machine, sound, opts)
	case options.FrontendTerminal:
		return runTerminal(ctx, logger, machine, sound, opts)
	default:
		return runWindow(ctx, logger, machine, sound, opts)
	}
}

// openAudio starts the sound output. A missing audio device only disables sound.
func openAudio(logger *log.Logger, opts options.Program) (emulator.Audio, func()) {
	if opts.Mute || opts.Frontend == options.FrontendHeadless {
		return nil, func() {}
	}

	tone := audio.NewTone()
	player, err := audio.NewPlayer(tone)
	if err != nil {
		logger.Warn("Sound output unavailable", log.Err(err))
		return nil, func() {}
	}

	return tone, func() {
		if err := player.Close(); err != nil {
			logger.Warn("Closing sound output failed", log.Err(err))
		}
	}
}

func runHeadless(ctx context.Context, logger *log.Logger, machine *chip8.Machine,
	sound emulator.Audio, opts options.Program) error {

	frontend := headless.New()
	runner, err := emulator.New(logger, machine, frontend, sound, config.Runner(opts), time.Now())
	if err != nil {
		return fmt.Errorf("creating runner: %w", err)
	}

	err = runner.Run(ctx)
	if errors.Is(err, emulator.ErrCycleLimit) {
		logger.Info("Cycle limit reached", log.Int("instructions", int(runner.Executed())))
		fmt.Print(frontend.String())
		return nil
	}
	return err
}

func runTerminal(ctx context.Context, logger *log.Logger, machine *chip8.Machine,
	sound emulator.Audio, opts options.Program) error {

	frontend, err := terminal.New(os.Stdin, os.Stdout)
	if err != nil {
		return fmt.Errorf("opening terminal: %w", err)
	}

	runner, err := emulator.New(logger, machine, frontend, sound, config.Runner(opts), time.Now())
	if err != nil {
		_ = frontend.Close()
		return fmt.Errorf("creating runner: %w", err)
	}

	err = runner.Run(ctx)
	if closeErr := frontend.Close(); closeErr != nil {
		logger.Warn("Restoring terminal failed", log.Err(closeErr))
	}
	return cycleLimitResult(logger, runner, err)
}

func runWindow(ctx context.Context, logger *log.Logger, machine *chip8.Machine,
	sound emulator.Audio, opts options.Program) error {

	frontend, err := window.New(opts.Scale)
	if err != nil {
		return fmt.Errorf("creating window: %w", err)
	}

	runner, err := emulator.New(logger, machine, frontend, sound, config.Runner(opts), time.Now())
	if err != nil {
		return fmt.Errorf("creating runner: %w", err)
	}

	err = frontend.Run(ctx, runner)
	return cycleLimitResult(logger, runner, err)
}

func cycleLimitResult(logger *log.Logger, runner *emulator.Runner, err error) error {
	if errors.Is(err, emulator.ErrCycleLimit) {
		logger.Info("Cycle limit reached", log.Int("instructions", int(runner.Executed())))
		return nil
	}
	return err
}
