// Package cli handles command line interface logic
package cli

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/retroenv/retroemu/internal/options"
)

// ParseFlags parses command line flags and returns program and emulator options
func ParseFlags() (options.Program, options.Emulator, error) {
	flags := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	var opts options.Program
	readOptionFlags(flags, &opts)

	err := flags.Parse(os.Args[1:])
	args := flags.Args()
	if err != nil || (opts.Input == "" && len(args) == 0) {
		return opts, options.Emulator{}, &UsageError{flags: flags}
	}

	if err := validateArgs(args); err != nil {
		return opts, options.Emulator{}, err
	}

	if opts.Input == "" {
		opts.Input = args[0]
	}

	emuOptions, err := createEmulatorOptions(opts)
	if err != nil {
		return opts, options.Emulator{}, err
	}

	return opts, emuOptions, nil
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

func (e *UsageError) ShowUsage() {
	fmt.Printf("usage: retroemu [options] <program file to run>\n\n")
	e.flags.PrintDefaults()
	fmt.Println()
}

// validateArgs checks if arguments are in correct order
func validateArgs(args []string) error {
	for i, arg := range args {
		if i > 0 && arg[0] == '-' {
			return &UsageError{
				msg: fmt.Sprintf("Potential argument %s found after file to run, please pass the program file as last argument", arg),
			}
		}
	}
	return nil
}

// createEmulatorOptions creates emulator options based on program options
func createEmulatorOptions(opts options.Program) (options.Emulator, error) {
	emuOptions := options.Emulator{
		Trace: opts.Trace,
	}

	if opts.Breakpoints == "" {
		return emuOptions, nil
	}

	for _, field := range strings.Split(opts.Breakpoints, ",") {
		field = strings.TrimPrefix(strings.TrimSpace(field), "0x")
		value, err := strconv.ParseUint(field, 16, 16)
		if err != nil {
			return emuOptions, fmt.Errorf("parsing breakpoint address %q: %w", field, err)
		}
		emuOptions.Breakpoints = append(emuOptions.Breakpoints, uint16(value))
	}

	return emuOptions, nil
}

func readOptionFlags(flags *flag.FlagSet, opts *options.Program) {
	flags.StringVar(&opts.Input, "i", "", "name of the input program file")
	flags.StringVar(&opts.Breakpoints, "break", "", "comma separated list of hex addresses to stop at")
	flags.BoolVar(&opts.Trace, "trace", false, "log every executed instruction with the register state")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
}
