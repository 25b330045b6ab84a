package cpu

import (
	"github.com/retroenv/retrogolib/arch/cpu/m6502"
)

// instructionHandler binds an instruction to its semantic function. Whether a
// handler owns program counter advancement is an explicit per instruction
// property: control flow instructions manage the counter entirely themselves,
// for all others the run loop skips the operand bytes after the handler
// returns.
type instructionHandler struct {
	execute            func(mode m6502.AddressingMode) error
	ownsProgramCounter bool
}

// instructionHandlers builds the dispatch table for all official
// instructions, keyed by instruction name. Opcodes present in the opcode
// table but missing here surface ErrNotImplemented when executed.
func (c *CPU) instructionHandlers() map[string]instructionHandler {
	return map[string]instructionHandler{
		m6502.Adc.Name: {execute: c.adc},
		m6502.And.Name: {execute: c.and},
		m6502.Asl.Name: {execute: c.asl},
		m6502.Bcc.Name: {execute: c.bcc, ownsProgramCounter: true},
		m6502.Bcs.Name: {execute: c.bcs, ownsProgramCounter: true},
		m6502.Beq.Name: {execute: c.beq, ownsProgramCounter: true},
		m6502.Bit.Name: {execute: c.bit},
		m6502.Bmi.Name: {execute: c.bmi, ownsProgramCounter: true},
		m6502.Bne.Name: {execute: c.bne, ownsProgramCounter: true},
		m6502.Bpl.Name: {execute: c.bpl, ownsProgramCounter: true},
		m6502.Brk.Name: {execute: c.brk, ownsProgramCounter: true},
		m6502.Bvc.Name: {execute: c.bvc, ownsProgramCounter: true},
		m6502.Bvs.Name: {execute: c.bvs, ownsProgramCounter: true},
		m6502.Clc.Name: {execute: c.clc},
		m6502.Cld.Name: {execute: c.cld},
		m6502.Cli.Name: {execute: c.cli},
		m6502.Clv.Name: {execute: c.clv},
		m6502.Cmp.Name: {execute: c.cmp},
		m6502.Cpx.Name: {execute: c.cpx},
		m6502.Cpy.Name: {execute: c.cpy},
		m6502.Dec.Name: {execute: c.dec},
		m6502.Dex.Name: {execute: c.dex},
		m6502.Dey.Name: {execute: c.dey},
		m6502.Eor.Name: {execute: c.eor},
		m6502.Inc.Name: {execute: c.inc},
		m6502.Inx.Name: {execute: c.inx},
		m6502.Iny.Name: {execute: c.iny},
		m6502.Jmp.Name: {execute: c.jmp, ownsProgramCounter: true},
		m6502.Jsr.Name: {execute: c.jsr, ownsProgramCounter: true},
		m6502.Lda.Name: {execute: c.lda},
		m6502.Ldx.Name: {execute: c.ldx},
		m6502.Ldy.Name: {execute: c.ldy},
		m6502.Lsr.Name: {execute: c.lsr},
		m6502.Nop.Name: {execute: c.nop},
		m6502.Ora.Name: {execute: c.ora},
		m6502.Pha.Name: {execute: c.pha},
		m6502.Php.Name: {execute: c.php},
		m6502.Pla.Name: {execute: c.pla},
		m6502.Plp.Name: {execute: c.plp},
		m6502.Rol.Name: {execute: c.rol},
		m6502.Ror.Name: {execute: c.ror},
		m6502.Rti.Name: {execute: c.rti, ownsProgramCounter: true},
		m6502.Rts.Name: {execute: c.rts, ownsProgramCounter: true},
		m6502.Sbc.Name: {execute: c.sbc},
		m6502.Sec.Name: {execute: c.sec},
		m6502.Sed.Name: {execute: c.sed},
		m6502.Sei.Name: {execute: c.sei},
		m6502.Sta.Name: {execute: c.sta},
		m6502.Stx.Name: {execute: c.stx},
		m6502.Sty.Name: {execute: c.sty},
		m6502.Tax.Name: {execute: c.tax},
		m6502.Tay.Name: {execute: c.tay},
		m6502.Tsx.Name: {execute: c.tsx},
		m6502.Txa.Name: {execute: c.txa},
		m6502.Txs.Name: {execute: c.txs},
		m6502.Tya.Name: {execute: c.tya},
	}
}

// lda loads a byte into the accumulator.
func (c *CPU) lda(mode m6502.AddressingMode) error {
	value, err := c.readOperand(mode)
	if err != nil {
		return err
	}
	c.A = value
	c.setZN(c.A)
	return nil
}

// ldx loads a byte into index register X.
func (c *CPU) ldx(mode m6502.AddressingMode) error {
	value, err := c.readOperand(mode)
	if err != nil {
		return err
	}
	c.X = value
	c.setZN(c.X)
	return nil
}

// ldy loads a byte into index register Y.
func (c *CPU) ldy(mode m6502.AddressingMode) error {
	value, err := c.readOperand(mode)
	if err != nil {
		return err
	}
	c.Y = value
	c.setZN(c.Y)
	return nil
}

// sta stores the accumulator, no flags are affected.
func (c *CPU) sta(mode m6502.AddressingMode) error {
	address, err := c.operandAddress(mode)
	if err != nil {
		return err
	}
	c.mem.Write(address, c.A)
	return nil
}

// stx stores index register X.
func (c *CPU) stx(mode m6502.AddressingMode) error {
	address, err := c.operandAddress(mode)
	if err != nil {
		return err
	}
	c.mem.Write(address, c.X)
	return nil
}

// sty stores index register Y.
func (c *CPU) sty(mode m6502.AddressingMode) error {
	address, err := c.operandAddress(mode)
	if err != nil {
		return err
	}
	c.mem.Write(address, c.Y)
	return nil
}

// tax transfers the accumulator to index register X.
func (c *CPU) tax(m6502.AddressingMode) error {
	c.X = c.A
	c.setZN(c.X)
	return nil
}

// tay transfers the accumulator to index register Y.
func (c *CPU) tay(m6502.AddressingMode) error {
	c.Y = c.A
	c.setZN(c.Y)
	return nil
}

// txa transfers index register X to the accumulator.
func (c *CPU) txa(m6502.AddressingMode) error {
	c.A = c.X
	c.setZN(c.A)
	return nil
}

// tya transfers index register Y to the accumulator.
func (c *CPU) tya(m6502.AddressingMode) error {
	c.A = c.Y
	c.setZN(c.A)
	return nil
}

// tsx transfers the stack pointer to index register X.
func (c *CPU) tsx(m6502.AddressingMode) error {
	c.X = c.SP
	c.setZN(c.X)
	return nil
}

// txs transfers index register X to the stack pointer, no flags are affected.
func (c *CPU) txs(m6502.AddressingMode) error {
	c.SP = c.X
	return nil
}

// adc adds the operand and the carry flag to the accumulator.
func (c *CPU) adc(mode m6502.AddressingMode) error {
	value, err := c.readOperand(mode)
	if err != nil {
		return err
	}
	c.addWithCarry(value)
	return nil
}

// sbc subtracts the operand and the inverted carry flag from the accumulator.
// Subtraction is addition of the one's complement of the operand.
func (c *CPU) sbc(mode m6502.AddressingMode) error {
	value, err := c.readOperand(mode)
	if err != nil {
		return err
	}
	c.addWithCarry(^value)
	return nil
}

// addWithCarry implements the ADC core that SBC reuses with the inverted
// operand. Overflow is set when both summands share a sign that the result
// does not have.
func (c *CPU) addWithCarry(value byte) {
	sum := uint16(c.A) + uint16(value)
	if c.Flags.C {
		sum++
	}
	result := byte(sum)

	c.Flags.C = sum > 0xFF
	c.Flags.V = (c.A^result)&(value^result)&0x80 != 0
	c.A = result
	c.setZN(c.A)
}

// and combines the accumulator with the operand using bitwise AND.
func (c *CPU) and(mode m6502.AddressingMode) error {
	value, err := c.readOperand(mode)
	if err != nil {
		return err
	}
	c.A &= value
	c.setZN(c.A)
	return nil
}

// ora combines the accumulator with the operand using bitwise OR.
func (c *CPU) ora(mode m6502.AddressingMode) error {
	value, err := c.readOperand(mode)
	if err != nil {
		return err
	}
	c.A |= value
	c.setZN(c.A)
	return nil
}

// eor combines the accumulator with the operand using bitwise exclusive OR.
func (c *CPU) eor(mode m6502.AddressingMode) error {
	value, err := c.readOperand(mode)
	if err != nil {
		return err
	}
	c.A ^= value
	c.setZN(c.A)
	return nil
}

// bit tests accumulator bits against the operand: zero from the AND result,
// overflow and negative copied from operand bits 6 and 7.
func (c *CPU) bit(mode m6502.AddressingMode) error {
	value, err := c.readOperand(mode)
	if err != nil {
		return err
	}
	c.Flags.Z = c.A&value == 0
	c.Flags.V = value&0x40 != 0
	c.Flags.N = value&0x80 != 0
	return nil
}

// inc increments the byte at the operand address.
func (c *CPU) inc(mode m6502.AddressingMode) error {
	return c.modify(mode, func(value byte) byte {
		return value + 1
	})
}

// dec decrements the byte at the operand address.
func (c *CPU) dec(mode m6502.AddressingMode) error {
	return c.modify(mode, func(value byte) byte {
		return value - 1
	})
}

// inx increments index register X with 8 bit wraparound.
func (c *CPU) inx(m6502.AddressingMode) error {
	c.X++
	c.setZN(c.X)
	return nil
}

// iny increments index register Y with 8 bit wraparound.
func (c *CPU) iny(m6502.AddressingMode) error {
	c.Y++
	c.setZN(c.Y)
	return nil
}

// dex decrements index register X with 8 bit wraparound.
func (c *CPU) dex(m6502.AddressingMode) error {
	c.X--
	c.setZN(c.X)
	return nil
}

// dey decrements index register Y with 8 bit wraparound.
func (c *CPU) dey(m6502.AddressingMode) error {
	c.Y--
	c.setZN(c.Y)
	return nil
}

// asl shifts left by one bit, bit 7 moves into the carry flag.
func (c *CPU) asl(mode m6502.AddressingMode) error {
	return c.modify(mode, func(value byte) byte {
		c.Flags.C = value&0x80 != 0
		return value << 1
	})
}

// lsr shifts right by one bit, bit 0 moves into the carry flag.
func (c *CPU) lsr(mode m6502.AddressingMode) error {
	return c.modify(mode, func(value byte) byte {
		c.Flags.C = value&0x01 != 0
		return value >> 1
	})
}

// rol rotates left by one bit through the carry flag.
func (c *CPU) rol(mode m6502.AddressingMode) error {
	return c.modify(mode, func(value byte) byte {
		carry := byte(0)
		if c.Flags.C {
			carry = 1
		}
		c.Flags.C = value&0x80 != 0
		return value<<1 | carry
	})
}

// ror rotates right by one bit through the carry flag.
func (c *CPU) ror(mode m6502.AddressingMode) error {
	return c.modify(mode, func(value byte) byte {
		carry := byte(0)
		if c.Flags.C {
			carry = 0x80
		}
		c.Flags.C = value&0x01 != 0
		return value>>1 | carry
	})
}

// modify applies fn to the accumulator or to the byte at the resolved operand
// address and updates the zero and negative flags with the result.
func (c *CPU) modify(mode m6502.AddressingMode, fn func(value byte) byte) error {
	if mode == m6502.AccumulatorAddressing {
		c.A = fn(c.A)
		c.setZN(c.A)
		return nil
	}

	address, err := c.operandAddress(mode)
	if err != nil {
		return err
	}
	value := fn(c.mem.Read(address))
	c.mem.Write(address, value)
	c.setZN(value)
	return nil
}

// cmp compares the accumulator with the operand.
func (c *CPU) cmp(mode m6502.AddressingMode) error {
	return c.compare(c.A, mode)
}

// cpx compares index register X with the operand.
func (c *CPU) cpx(mode m6502.AddressingMode) error {
	return c.compare(c.X, mode)
}

// cpy compares index register Y with the operand.
func (c *CPU) cpy(mode m6502.AddressingMode) error {
	return c.compare(c.Y, mode)
}

// compare sets the carry flag if the register is greater or equal to the
// operand and the zero and negative flags from the difference.
func (c *CPU) compare(register byte, mode m6502.AddressingMode) error {
	value, err := c.readOperand(mode)
	if err != nil {
		return err
	}
	c.Flags.C = register >= value
	c.setZN(register - value)
	return nil
}

// branch instructions, each takes the branch when its flag condition holds

func (c *CPU) bcc(m6502.AddressingMode) error { return c.branch(!c.Flags.C) }
func (c *CPU) bcs(m6502.AddressingMode) error { return c.branch(c.Flags.C) }
func (c *CPU) bne(m6502.AddressingMode) error { return c.branch(!c.Flags.Z) }
func (c *CPU) beq(m6502.AddressingMode) error { return c.branch(c.Flags.Z) }
func (c *CPU) bpl(m6502.AddressingMode) error { return c.branch(!c.Flags.N) }
func (c *CPU) bmi(m6502.AddressingMode) error { return c.branch(c.Flags.N) }
func (c *CPU) bvc(m6502.AddressingMode) error { return c.branch(!c.Flags.V) }
func (c *CPU) bvs(m6502.AddressingMode) error { return c.branch(c.Flags.V) }

// branch reads the relative operand and moves the program counter either to
// the signed offset target or past the operand byte. The offset is relative
// to the following instruction.
func (c *CPU) branch(taken bool) error {
	offset := uint16(c.mem.Read(c.PC))
	next := c.PC + 1

	if !taken {
		c.PC = next
		return nil
	}

	if offset < 0x80 {
		c.PC = next + offset
	} else {
		c.PC = next + offset - 0x100
	}
	return nil
}

// jmp sets the program counter to the operand address. The indirect mode
// resolves through the word read that emulates the page wrap bug of the
// processor.
func (c *CPU) jmp(mode m6502.AddressingMode) error {
	address, err := c.operandAddress(mode)
	if err != nil {
		return err
	}
	c.PC = address
	return nil
}

// jsr pushes the address of the last byte of the instruction and jumps to the
// operand address.
func (c *CPU) jsr(mode m6502.AddressingMode) error {
	address, err := c.operandAddress(mode)
	if err != nil {
		return err
	}
	c.pushWord(c.PC + 1)
	c.PC = address
	return nil
}

// rts pulls the return address from the stack and continues after it.
func (c *CPU) rts(m6502.AddressingMode) error {
	c.PC = c.popWord() + 1
	return nil
}

// rti pulls the status register and the program counter from the stack.
func (c *CPU) rti(m6502.AddressingMode) error {
	c.setStatusFromStack(c.pop())
	c.PC = c.popWord()
	return nil
}

// pha pushes the accumulator onto the stack.
func (c *CPU) pha(m6502.AddressingMode) error {
	c.push(c.A)
	return nil
}

// pla pulls the accumulator from the stack.
func (c *CPU) pla(m6502.AddressingMode) error {
	c.A = c.pop()
	c.setZN(c.A)
	return nil
}

// php pushes the status register with the break and unused bits set.
func (c *CPU) php(m6502.AddressingMode) error {
	c.push(c.Status() | flagBreak | flagUnused)
	return nil
}

// plp pulls the status register from the stack.
func (c *CPU) plp(m6502.AddressingMode) error {
	c.setStatusFromStack(c.pop())
	return nil
}

// flag instructions

func (c *CPU) clc(m6502.AddressingMode) error { c.Flags.C = false; return nil }
func (c *CPU) cld(m6502.AddressingMode) error { c.Flags.D = false; return nil }
func (c *CPU) cli(m6502.AddressingMode) error { c.Flags.I = false; return nil }
func (c *CPU) clv(m6502.AddressingMode) error { c.Flags.V = false; return nil }
func (c *CPU) sec(m6502.AddressingMode) error { c.Flags.C = true; return nil }
func (c *CPU) sed(m6502.AddressingMode) error { c.Flags.D = true; return nil }
func (c *CPU) sei(m6502.AddressingMode) error { c.Flags.I = true; return nil }

// nop does nothing.
func (c *CPU) nop(m6502.AddressingMode) error {
	return nil
}

// brk halts the CPU. Interrupt vectoring is not emulated, BRK is the normal
// program termination.
func (c *CPU) brk(m6502.AddressingMode) error {
	c.halted = true
	return nil
}

// stack helpers, the stack grows downwards within the stack page

func (c *CPU) push(value byte) {
	c.mem.Write(StackBase+uint16(c.SP), value)
	c.SP--
}

func (c *CPU) pop() byte {
	c.SP++
	return c.mem.Read(StackBase + uint16(c.SP))
}

func (c *CPU) pushWord(value uint16) {
	c.push(byte(value >> 8))
	c.push(byte(value))
}

func (c *CPU) popWord() uint16 {
	low := uint16(c.pop())
	high := uint16(c.pop())
	return high<<8 | low
}
