// Package main implements the main entry point for a 6502 emulator
package main

import (
	"context"
	"errors"
	"os"

	"github.com/retroenv/retroemu/internal/cli"
	"github.com/retroenv/retroemu/internal/config"
	"github.com/retroenv/retroemu/internal/cpu"
	"github.com/retroenv/retroemu/internal/emulator"
	"github.com/retroenv/retroemu/internal/options"
	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/log"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

func main() {
	ctx := app.Context()

	opts, emuOptions, err := cli.ParseFlags()
	if err != nil {
		logger := config.CreateLogger(opts)
		var usageErr *cli.UsageError
		if errors.As(err, &usageErr) {
			emulator.PrintBanner(logger, opts, version, commit, date)
			usageErr.ShowUsage()
		} else {
			logger.Fatal(err.Error())
		}
		os.Exit(1)
	}

	logger := config.CreateLogger(opts)
	emulator.PrintBanner(logger, opts, version, commit, date)

	if err := run(ctx, logger, opts, emuOptions); err != nil {
		// Handle context cancellation (Ctrl+C) gracefully
		if errors.Is(err, context.Canceled) {
			logger.Info("Operation cancelled")
			return
		}
		reportError(logger, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *log.Logger, opts options.Program,
	emuOptions options.Emulator) error {

	em := emulator.New(logger, emuOptions)
	if err := em.LoadFile(opts.Input); err != nil {
		return err
	}
	return em.Run(ctx)
}

// reportError distinguishes the fatal execution error kinds so that a
// malformed program can be told apart from incomplete emulation support.
func reportError(logger *log.Logger, err error) {
	switch {
	case errors.Is(err, cpu.ErrUnrecognizedOpcode):
		logger.Error("Program contains an unrecognized opcode", log.Err(err))
	case errors.Is(err, cpu.ErrNotImplemented):
		logger.Error("Instruction is not supported by this emulator", log.Err(err))
	case errors.Is(err, cpu.ErrUnsupportedAddressingMode):
		logger.Error("Instruction used an addressing mode that can not be resolved", log.Err(err))
	default:
		logger.Error("Emulation failed", log.Err(err))
	}
}
