// Package emulator connects a CHIP-8 machine to its host: it runs the
// instruction and timer clocks, forwards key state from the frontend and
// passes display and sound changes back to it.
package emulator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrochip8/internal/disasm"
	"github.com/retroenv/retrochip8/internal/scheduler"
	"github.com/retroenv/retrogolib/log"
)

// ErrCycleLimit is returned when the configured number of instructions was executed.
var ErrCycleLimit = errors.New("cycle limit reached")

// Frontend displays the machine and provides the keypad state.
type Frontend interface {
	// Keys returns the current pressed state of all keypad keys.
	Keys() [chip8.KeyCount]bool
	// Present displays a new frame.
	Present(frame chip8.Frame) error
	// Closed returns whether the user requested to end the emulation.
	Closed() bool
}

// Audio plays the tone of the sound timer.
type Audio interface {
	SetActive(active bool)
}

// Config contains the runner settings.
type Config struct {
	Frequency  int    // instructions per second
	CycleLimit uint64 // stop after this many instructions, 0 for no limit
	Trace      bool   // log every executed instruction
}

// Runner executes a machine in real time.
type Runner struct {
	logger    *log.Logger
	machine   *chip8.Machine
	frontend  Frontend
	audio     Audio
	scheduler *scheduler.Scheduler
	config    Config

	executed    uint64
	soundActive bool
}

// New returns a runner for the machine. audio can be nil to run without sound.
func New(logger *log.Logger, machine *chip8.Machine, frontend Frontend, audio Audio,
	config Config, start time.Time) (*Runner, error) {

	sched, err := scheduler.New(config.Frequency, chip8.TimerFrequency, start)
	if err != nil {
		return nil, fmt.Errorf("creating scheduler: %w", err)
	}

	return &Runner{
		logger:    logger,
		machine:   machine,
		frontend:  frontend,
		audio:     audio,
		scheduler: sched,
		config:    config,
	}, nil
}

// Executed returns the number of instructions executed so far.
func (r *Runner) Executed() uint64 {
	return r.executed
}

// Advance runs all instruction cycles and timer ticks that are due at the given time.
// It returns a *chip8.Fault if an instruction faulted and ErrCycleLimit once the
// configured number of instructions has been executed.
func (r *Runner) Advance(now time.Time) error {
	cycles, ticks := r.scheduler.Due(now)

	for range cycles {
		if err := r.step(); err != nil {
			_ = r.present()
			return err
		}
	}

	for range ticks {
		r.machine.TickTimers()
	}
	r.updateSound()

	return r.present()
}

// Run polls the clocks until the context is cancelled, the frontend is closed
// or the machine faults.
func (r *Runner) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if r.frontend.Closed() {
			return nil
		}
		if err := r.Advance(time.Now()); err != nil {
			return err
		}
	}
}

func (r *Runner) step() error {
	if r.config.CycleLimit > 0 && r.executed >= r.config.CycleLimit {
		return ErrCycleLimit
	}

	r.machine.SetKeys(r.frontend.Keys())

	if r.config.Trace {
		pc := r.machine.PC()
		opcode := r.machine.Opcode(pc)
		r.logger.Debug("Executing instruction",
			log.Hex("address", pc),
			log.Hex("opcode", opcode),
			log.String("instruction", disasm.Format(opcode)))
	}

	if err := r.machine.Step(); err != nil {
		return fmt.Errorf("executing instruction %d: %w", r.executed, err)
	}
	r.executed++
	return nil
}

func (r *Runner) updateSound() {
	active := r.machine.SoundActive()
	if active == r.soundActive {
		return
	}
	r.soundActive = active
	if r.audio != nil {
		r.audio.SetActive(active)
	}
}

func (r *Runner) present() error {
	if !r.machine.TakeRenderPending() {
		return nil
	}
	if err := r.frontend.Present(r.machine.DisplaySnapshot()); err != nil {
		return fmt.Errorf("presenting frame: %w", err)
	}
	return nil
}
