package cpu

import (
	"fmt"

	"github.com/retroenv/retrogolib/arch/cpu/m6502"
)

// operandSizes maps an addressing mode to the number of operand bytes that
// follow the opcode byte.
var operandSizes = map[m6502.AddressingMode]uint16{
	m6502.ImpliedAddressing:     0,
	m6502.AccumulatorAddressing: 0,
	m6502.ImmediateAddressing:   1,
	m6502.ZeroPageAddressing:    1,
	m6502.ZeroPageXAddressing:   1,
	m6502.ZeroPageYAddressing:   1,
	m6502.RelativeAddressing:    1,
	m6502.IndirectXAddressing:   1,
	m6502.IndirectYAddressing:   1,
	m6502.AbsoluteAddressing:    2,
	m6502.AbsoluteXAddressing:   2,
	m6502.AbsoluteYAddressing:   2,
	m6502.IndirectAddressing:    2,
}

// operandAddress resolves the effective address that an instruction with the
// given addressing mode operates on. The program counter points at the first
// operand byte when this is called. All index additions wrap, 8 bit wide for
// the zero page modes and 16 bit wide for the absolute modes.
func (c *CPU) operandAddress(mode m6502.AddressingMode) (uint16, error) {
	switch mode {
	case m6502.ImmediateAddressing:
		return c.PC, nil

	case m6502.ZeroPageAddressing:
		return uint16(c.mem.Read(c.PC)), nil

	case m6502.ZeroPageXAddressing:
		return uint16(c.mem.Read(c.PC) + c.X), nil

	case m6502.ZeroPageYAddressing:
		return uint16(c.mem.Read(c.PC) + c.Y), nil

	case m6502.AbsoluteAddressing:
		return c.mem.ReadWord(c.PC), nil

	case m6502.AbsoluteXAddressing:
		return c.mem.ReadWord(c.PC) + uint16(c.X), nil

	case m6502.AbsoluteYAddressing:
		return c.mem.ReadWord(c.PC) + uint16(c.Y), nil

	case m6502.IndirectAddressing:
		pointer := c.mem.ReadWord(c.PC)
		return c.mem.ReadWordBug(pointer), nil

	case m6502.IndirectXAddressing:
		pointer := c.mem.Read(c.PC) + c.X
		low := uint16(c.mem.Read(uint16(pointer)))
		high := uint16(c.mem.Read(uint16(pointer + 1)))
		return high<<8 | low, nil

	case m6502.IndirectYAddressing:
		pointer := c.mem.Read(c.PC)
		low := uint16(c.mem.Read(uint16(pointer)))
		high := uint16(c.mem.Read(uint16(pointer + 1)))
		return (high<<8 | low) + uint16(c.Y), nil

	default:
		return 0, fmt.Errorf("%w: %00x", ErrUnsupportedAddressingMode, mode)
	}
}

// readOperand resolves the operand address and reads the byte stored there.
func (c *CPU) readOperand(mode m6502.AddressingMode) (byte, error) {
	address, err := c.operandAddress(mode)
	if err != nil {
		return 0, err
	}
	return c.mem.Read(address), nil
}
