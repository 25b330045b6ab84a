// Package emulator composes the memory unit and the CPU core into a runnable
// machine and adds the harness conveniences that do not belong into the core:
// program file loading, per instruction tracing and breakpoints.
package emulator

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/retroenv/retroemu/internal/cpu"
	"github.com/retroenv/retroemu/internal/memory"
	"github.com/retroenv/retroemu/internal/options"
	"github.com/retroenv/retrogolib/arch/cpu/m6502"
	"github.com/retroenv/retrogolib/arch/system/nes"
	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/retrogolib/set"
)

// maxProgramSize is the room between the code base address and the top of the
// address space.
const maxProgramSize = memory.Size - nes.CodeBaseAddress

// Emulator drives a single CPU and memory pair. Independent machines need
// independent Emulator instances.
type Emulator struct {
	logger *log.Logger
	opts   options.Emulator

	mem *memory.RAM
	cpu *cpu.CPU

	breakpoints set.Set[uint16]
}

// New creates an emulator with zeroed memory and the standard opcode table.
func New(logger *log.Logger, opts options.Emulator) *Emulator {
	mem := memory.New()
	em := &Emulator{
		logger:      logger,
		opts:        opts,
		mem:         mem,
		cpu:         cpu.New(mem, &m6502.Opcodes),
		breakpoints: set.New[uint16](),
	}
	for _, address := range opts.Breakpoints {
		em.breakpoints.Add(address)
	}
	return em
}

// CPU returns the driven CPU, for state inspection by callers and tests.
func (e *Emulator) CPU() *cpu.CPU {
	return e.cpu
}

// LoadFile reads a raw binary program image and loads it at the code base
// address.
func (e *Emulator) LoadFile(name string) error {
	data, err := os.ReadFile(name)
	if err != nil {
		return fmt.Errorf("reading program file %s: %w", name, err)
	}
	return e.Load(data)
}

// Load loads a program image at the code base address and sets the reset
// vector to point at it.
func (e *Emulator) Load(program []byte) error {
	if len(program) == 0 {
		return errors.New("program is empty")
	}
	if len(program) > maxProgramSize {
		return fmt.Errorf("program of %d bytes exceeds the %d bytes of code address space",
			len(program), maxProgramSize)
	}

	e.cpu.Load(program)
	e.logger.Debug("Program loaded",
		log.Int("size", len(program)),
		log.Hex("address", uint16(nes.CodeBaseAddress)))
	return nil
}

// Run resets the CPU and executes the loaded program until it halts, hits a
// breakpoint or an instruction fails. The context is only checked before
// execution starts, the instruction loop itself runs uninterrupted.
func (e *Emulator) Run(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	e.cpu.Reset()
	e.logger.Debug("Starting execution", log.Hex("pc", e.cpu.PC))

	if !e.opts.Trace && len(e.opts.Breakpoints) == 0 {
		if err := e.cpu.Run(); err != nil {
			return fmt.Errorf("running program: %w", err)
		}
		e.logHalt()
		return nil
	}

	for !e.cpu.Halted() {
		if e.breakpoints.Contains(e.cpu.PC) {
			e.logger.Info("Breakpoint hit", log.Hex("address", e.cpu.PC))
			return nil
		}
		if e.opts.Trace {
			e.traceStep()
		}
		if err := e.cpu.Step(); err != nil {
			return fmt.Errorf("running program: %w", err)
		}
	}

	e.logHalt()
	return nil
}

// traceStep logs the instruction at the program counter and the register
// state before it executes.
func (e *Emulator) traceStep() {
	opcode := e.mem.Read(e.cpu.PC)

	name := "???"
	if op := e.cpu.Opcode(opcode); op.Instruction != nil {
		name = op.Instruction.Name
	}

	e.logger.Info(name,
		log.Hex("pc", e.cpu.PC),
		log.Hex("opcode", opcode),
		log.Hex("a", e.cpu.A),
		log.Hex("x", e.cpu.X),
		log.Hex("y", e.cpu.Y),
		log.Hex("sp", e.cpu.SP),
		log.Hex("status", e.cpu.Status()))
}

func (e *Emulator) logHalt() {
	e.logger.Info("Program halted",
		log.Hex("pc", e.cpu.PC),
		log.Hex("a", e.cpu.A),
		log.Hex("x", e.cpu.X),
		log.Hex("y", e.cpu.Y),
		log.Hex("status", e.cpu.Status()))
}
