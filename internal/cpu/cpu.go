// Package cpu implements a MOS 6502 CPU core: the fetch, decode and execute
// loop together with operand address resolution and status flag handling.
// The opcode metadata table is consumed from retrogolib, this package owns
// only the execution semantics.
package cpu

import (
	"fmt"

	"github.com/retroenv/retroemu/internal/memory"
	"github.com/retroenv/retrogolib/arch/cpu/m6502"
	"github.com/retroenv/retrogolib/arch/system/nes"
)

const (
	// StackBase is the base address of the stack page.
	StackBase = 0x0100

	// InitialStackPointer is the stack pointer value after a reset.
	InitialStackPointer = 0xFD
)

// CPU contains the registers and flags of the processor and executes
// instructions from the attached memory. The register fields are exported so
// that a harness or test can inspect and preset machine state directly.
// A CPU and its memory are exclusively owned by a single caller, there is no
// internal locking.
type CPU struct {
	A  byte   // accumulator
	X  byte   // index register X
	Y  byte   // index register Y
	SP byte   // stack pointer
	PC uint16 // program counter

	Flags Flags

	mem      *memory.RAM
	opcodes  *[256]m6502.Opcode
	handlers map[string]instructionHandler

	halted bool
}

// New creates a CPU that executes from the given memory. The opcode table is
// passed in explicitly instead of being read as global state, callers
// normally pass &m6502.Opcodes.
func New(mem *memory.RAM, opcodes *[256]m6502.Opcode) *CPU {
	c := &CPU{
		mem:     mem,
		opcodes: opcodes,
	}
	c.handlers = c.instructionHandlers()
	return c
}

// Load copies the program into memory at the code base address and points the
// reset vector at it. Memory outside the program image is left untouched.
func (c *CPU) Load(program []byte) {
	for i, value := range program {
		c.mem.Write(nes.CodeBaseAddress+uint16(i), value)
	}
	c.mem.WriteWord(m6502.ResetAddress, nes.CodeBaseAddress)
}

// Reset puts the CPU into its power up state: registers and flags cleared,
// stack pointer initialized and the program counter loaded from the reset
// vector.
func (c *CPU) Reset() {
	c.A = 0
	c.X = 0
	c.Y = 0
	c.SP = InitialStackPointer
	c.Flags = Flags{}
	c.halted = false

	c.PC = c.mem.ReadWord(m6502.ResetAddress)
}

// Step executes a single instruction. The opcode byte is fetched at the
// program counter, which is advanced past the opcode before the instruction
// handler runs. Handlers of control flow instructions manage the program
// counter themselves, for all others the operand bytes are skipped after the
// handler returns. Once the CPU is halted further steps are no-ops.
func (c *CPU) Step() error {
	if c.halted {
		return nil
	}

	opcodeByte := c.mem.Read(c.PC)
	c.PC++

	op := c.opcodes[opcodeByte]
	if op.Instruction == nil {
		return fmt.Errorf("%w: %02x", ErrUnrecognizedOpcode, opcodeByte)
	}

	handler, ok := c.handlers[op.Instruction.Name]
	if !ok {
		return fmt.Errorf("%w: %s (%02x)", ErrNotImplemented, op.Instruction.Name, opcodeByte)
	}

	if err := handler.execute(op.Addressing); err != nil {
		return fmt.Errorf("executing %s: %w", op.Instruction.Name, err)
	}

	if !handler.ownsProgramCounter {
		c.PC += operandSizes[op.Addressing]
	}
	return nil
}

// Run drives the fetch, decode and execute loop until a BRK instruction halts
// the CPU or an instruction fails. A returned error wraps one of the error
// kinds of this package.
func (c *CPU) Run() error {
	for !c.halted {
		if err := c.Step(); err != nil {
			return err
		}
	}
	return nil
}

// LoadAndRun loads the program, resets the CPU and runs it to completion.
func (c *CPU) LoadAndRun(program []byte) error {
	c.Load(program)
	c.Reset()
	return c.Run()
}

// Halted returns whether a BRK instruction has ended execution.
func (c *CPU) Halted() bool {
	return c.halted
}

// Memory returns the attached memory, for direct access by a harness that
// needs to seed or inspect machine state outside the instruction stream.
func (c *CPU) Memory() *memory.RAM {
	return c.mem
}

// Opcode returns the entry for the given opcode byte from the table the CPU
// was constructed with.
func (c *CPU) Opcode(value byte) m6502.Opcode {
	return c.opcodes[value]
}
