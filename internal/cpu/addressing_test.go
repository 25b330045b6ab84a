package cpu

import (
	"errors"
	"testing"

	"github.com/retroenv/retroemu/internal/memory"
	"github.com/retroenv/retrogolib/arch/cpu/m6502"
	"github.com/retroenv/retrogolib/assert"
)

func TestOperandAddress(t *testing.T) {
	tests := []struct {
		name     string
		mode     m6502.AddressingMode
		setup    func(c *CPU)
		expected uint16
	}{
		{
			name:     "immediate returns the program counter",
			mode:     m6502.ImmediateAddressing,
			expected: 0x8000,
		},
		{
			name: "zero page",
			mode: m6502.ZeroPageAddressing,
			setup: func(c *CPU) {
				c.mem.Write(0x8000, 0x42)
			},
			expected: 0x0042,
		},
		{
			name: "zero page X stays in page 0 on overflow",
			mode: m6502.ZeroPageXAddressing,
			setup: func(c *CPU) {
				c.mem.Write(0x8000, 0xFF)
				c.X = 0x02
			},
			expected: 0x0001,
		},
		{
			name: "zero page Y stays in page 0 on overflow",
			mode: m6502.ZeroPageYAddressing,
			setup: func(c *CPU) {
				c.mem.Write(0x8000, 0x80)
				c.Y = 0x90
			},
			expected: 0x0010,
		},
		{
			name: "absolute",
			mode: m6502.AbsoluteAddressing,
			setup: func(c *CPU) {
				c.mem.WriteWord(0x8000, 0x1234)
			},
			expected: 0x1234,
		},
		{
			name: "absolute X crosses the page boundary",
			mode: m6502.AbsoluteXAddressing,
			setup: func(c *CPU) {
				c.mem.WriteWord(0x8000, 0x12FF)
				c.X = 0x02
			},
			expected: 0x1301,
		},
		{
			name: "absolute Y wraps at the top of the address space",
			mode: m6502.AbsoluteYAddressing,
			setup: func(c *CPU) {
				c.mem.WriteWord(0x8000, 0xFFFF)
				c.Y = 0x02
			},
			expected: 0x0001,
		},
		{
			name: "indirect X wraps the pointer within page 0",
			mode: m6502.IndirectXAddressing,
			setup: func(c *CPU) {
				c.mem.Write(0x8000, 0xF0)
				c.X = 0x20 // pointer 0xF0+0x20 wraps to 0x10
				c.mem.Write(0x0010, 0x34)
				c.mem.Write(0x0011, 0x12)
			},
			expected: 0x1234,
		},
		{
			name: "indirect X wraps the high byte fetch within page 0",
			mode: m6502.IndirectXAddressing,
			setup: func(c *CPU) {
				c.mem.Write(0x8000, 0xFF)
				c.X = 0x00
				c.mem.Write(0x00FF, 0x34)
				c.mem.Write(0x0000, 0x12) // high byte read at 0x00, not 0x100
			},
			expected: 0x1234,
		},
		{
			name: "indirect Y adds the index after dereferencing",
			mode: m6502.IndirectYAddressing,
			setup: func(c *CPU) {
				c.mem.Write(0x8000, 0x10)
				c.mem.Write(0x0010, 0xFF)
				c.mem.Write(0x0011, 0x12)
				c.Y = 0x01 // 0x12FF + 1 crosses into the next page
			},
			expected: 0x1300,
		},
		{
			name: "indirect Y wraps the high byte fetch within page 0",
			mode: m6502.IndirectYAddressing,
			setup: func(c *CPU) {
				c.mem.Write(0x8000, 0xFF)
				c.mem.Write(0x00FF, 0x00)
				c.mem.Write(0x0000, 0x20) // high byte read at 0x00, not 0x100
				c.Y = 0x05
			},
			expected: 0x2005,
		},
		{
			name: "indirect reads through the page wrap bug",
			mode: m6502.IndirectAddressing,
			setup: func(c *CPU) {
				c.mem.WriteWord(0x8000, 0x02FF)
				c.mem.Write(0x02FF, 0x34)
				c.mem.Write(0x0200, 0x12) // 6502 bug: high byte from 0x0200
			},
			expected: 0x1234,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(memory.New(), &m6502.Opcodes)
			c.PC = 0x8000
			if tt.setup != nil {
				tt.setup(c)
			}

			address, err := c.operandAddress(tt.mode)
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, address)

			// resolution is a pure function of machine state
			again, err := c.operandAddress(tt.mode)
			assert.NoError(t, err)
			assert.Equal(t, address, again)
		})
	}
}

func TestOperandAddressUnsupportedModes(t *testing.T) {
	modes := []m6502.AddressingMode{
		m6502.ImpliedAddressing,
		m6502.AccumulatorAddressing,
	}

	for _, mode := range modes {
		c := New(memory.New(), &m6502.Opcodes)
		_, err := c.operandAddress(mode)
		assert.True(t, errors.Is(err, ErrUnsupportedAddressingMode))
	}
}

func TestOperandSizesCoverAllModes(t *testing.T) {
	assert.Equal(t, uint16(0), operandSizes[m6502.ImpliedAddressing])
	assert.Equal(t, uint16(1), operandSizes[m6502.ImmediateAddressing])
	assert.Equal(t, uint16(1), operandSizes[m6502.RelativeAddressing])
	assert.Equal(t, uint16(2), operandSizes[m6502.AbsoluteAddressing])
	assert.Equal(t, uint16(2), operandSizes[m6502.IndirectAddressing])
}
