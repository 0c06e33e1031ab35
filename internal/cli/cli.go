// Package cli handles command line interface logic
package cli

import (
	"flag"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/retroenv/retrochip8/internal/options"
)

const (
	maxFrequency = 1_000_000
	maxScale     = 64
)

// ParseFlags parses the emulator command line flags.
func ParseFlags() (options.Program, error) {
	flags := flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	flags.SetOutput(os.Stderr)
	var opts options.Program
	readOptionFlags(flags, &opts)

	if err := flags.Parse(os.Args[1:]); err != nil {
		return opts, &UsageError{flags: flags, usage: emulatorUsage}
	}

	input, err := inputFile(flags, opts.Input, emulatorUsage)
	if err != nil {
		return opts, err
	}
	opts.Input = input

	if err := normalizeOptions(&opts); err != nil {
		return opts, err
	}
	return opts, nil
}

// ParseDisasmFlags parses the disassembler command line flags.
func ParseDisasmFlags() (options.Disassembler, error) {
	flags := flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	flags.SetOutput(os.Stderr)
	var opts options.Disassembler
	flags.StringVar(&opts.Input, "i", "", "name of the input ROM file")
	flags.StringVar(&opts.Output, "o", "", "name of the output file, printed on console if no name given")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")

	if err := flags.Parse(os.Args[1:]); err != nil {
		return opts, &UsageError{flags: flags, usage: disasmUsage}
	}

	input, err := inputFile(flags, opts.Input, disasmUsage)
	if err != nil {
		return opts, err
	}
	opts.Input = input
	return opts, nil
}

const (
	emulatorUsage = "usage: retrochip8 [options] <ROM file>"
	disasmUsage   = "usage: chip8disasm [options] <ROM file>"
)

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *flag.FlagSet
	usage string
	msg   string
}

func (e *UsageError) Error() string {
	if e.msg == "" {
		return "invalid arguments"
	}
	return e.msg
}

// ShowUsage prints the usage line and all flag defaults.
func (e *UsageError) ShowUsage() {
	if e.msg != "" {
		fmt.Printf("%s\n\n", e.msg)
	}
	fmt.Printf("%s\n\n", e.usage)
	if e.flags != nil {
		e.flags.SetOutput(os.Stdout)
		e.flags.PrintDefaults()
	}
	fmt.Println()
}

// inputFile returns the ROM file name from the -i flag or the positional argument.
func inputFile(flags *flag.FlagSet, input, usage string) (string, error) {
	args := flags.Args()
	if err := validateArgs(args, flags, usage); err != nil {
		return "", err
	}

	switch {
	case len(args) > 1:
		return "", &UsageError{flags: flags, usage: usage, msg: "only one ROM file can be passed"}
	case len(args) == 1 && input != "":
		return "", &UsageError{flags: flags, usage: usage, msg: "ROM file passed both with -i and as argument"}
	case len(args) == 1:
		return args[0], nil
	case input == "":
		return "", &UsageError{flags: flags, usage: usage}
	default:
		return input, nil
	}
}

// validateArgs checks if arguments are in correct order
func validateArgs(args []string, flags *flag.FlagSet, usage string) error {
	for i, arg := range args {
		if i > 0 && strings.HasPrefix(arg, "-") {
			return &UsageError{
				flags: flags,
				usage: usage,
				msg:   fmt.Sprintf("Potential argument %s found after ROM file, please pass the ROM file as last argument", arg),
			}
		}
	}
	return nil
}

// normalizeOptions normalizes and validates option values
func normalizeOptions(opts *options.Program) error {
	opts.Frontend = strings.ToLower(opts.Frontend)
	if !slices.Contains(options.Frontends, opts.Frontend) {
		return fmt.Errorf("unsupported frontend: %s. Valid options: %s",
			opts.Frontend, strings.Join(options.Frontends, ", "))
	}

	if opts.Frequency < 1 || opts.Frequency > maxFrequency {
		return fmt.Errorf("instruction frequency %d out of range 1-%d", opts.Frequency, maxFrequency)
	}
	if opts.Scale < 1 || opts.Scale > maxScale {
		return fmt.Errorf("window scale %d out of range 1-%d", opts.Scale, maxScale)
	}
	return nil
}

func readOptionFlags(flags *flag.FlagSet, opts *options.Program) {
	flags.StringVar(&opts.Input, "i", "", "name of the input ROM file")
	flags.IntVar(&opts.Frequency, "freq", options.DefaultFrequency, "number of instructions executed per second")
	flags.IntVar(&opts.Scale, "scale", options.DefaultScale, "number of window pixels per display pixel")
	flags.StringVar(&opts.Frontend, "frontend", options.FrontendWindow, "frontend to use (window/terminal/headless)")
	flags.Uint64Var(&opts.Cycles, "cycles", 0, "stop after executing this many instructions, 0 runs until closed")
	flags.BoolVar(&opts.Cosmac, "cosmac", false, "emulate the COSMAC VIP behavior of logic, shift, jump, load/store, draw and key wait instructions")
	flags.BoolVar(&opts.Amiga, "amiga", false, "set VF when adding to I overflows the address space")
	flags.BoolVar(&opts.Mute, "mute", false, "disable the sound output")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
}
