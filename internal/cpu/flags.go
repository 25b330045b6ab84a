package cpu

// Flags contains the status flags of the CPU. The register is kept unpacked
// as separate booleans, the packed byte layout NV-BDIZC is only built when an
// instruction moves the register through the stack or a caller inspects it.
type Flags struct {
	C bool // carry
	Z bool // zero
	I bool // interrupt disable
	D bool // decimal
	B bool // break
	V bool // overflow
	N bool // negative
}

// status register bit positions
const (
	flagCarry            byte = 1 << 0
	flagZero             byte = 1 << 1
	flagInterruptDisable byte = 1 << 2
	flagDecimal          byte = 1 << 3
	flagBreak            byte = 1 << 4
	flagUnused           byte = 1 << 5
	flagOverflow         byte = 1 << 6
	flagNegative         byte = 1 << 7
)

// setZN sets the zero and negative flags based on the given value, the zero
// flag if the value is 0 and the negative flag if bit 7 is set. All other
// flags are left untouched.
func (c *CPU) setZN(value byte) {
	c.Flags.Z = value == 0
	c.Flags.N = value&0x80 != 0
}

// Status returns the flags packed into the status register byte.
func (c *CPU) Status() byte {
	var status byte
	if c.Flags.C {
		status |= flagCarry
	}
	if c.Flags.Z {
		status |= flagZero
	}
	if c.Flags.I {
		status |= flagInterruptDisable
	}
	if c.Flags.D {
		status |= flagDecimal
	}
	if c.Flags.B {
		status |= flagBreak
	}
	if c.Flags.V {
		status |= flagOverflow
	}
	if c.Flags.N {
		status |= flagNegative
	}
	return status
}

// SetStatus unpacks a status register byte into the flags. The unused bit 5
// is ignored.
func (c *CPU) SetStatus(value byte) {
	c.Flags.C = value&flagCarry != 0
	c.Flags.Z = value&flagZero != 0
	c.Flags.I = value&flagInterruptDisable != 0
	c.Flags.D = value&flagDecimal != 0
	c.Flags.B = value&flagBreak != 0
	c.Flags.V = value&flagOverflow != 0
	c.Flags.N = value&flagNegative != 0
}

// setStatusFromStack applies a status byte pulled from the stack. PLP and RTI
// do not affect the break flag.
func (c *CPU) setStatusFromStack(value byte) {
	breakFlag := c.Flags.B
	c.SetStatus(value)
	c.Flags.B = breakFlag
}
