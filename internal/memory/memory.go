// Package memory implements the flat 64 KiB address space of the emulated machine.
package memory

// Size is the number of addressable bytes, the full 16 bit address space.
const Size = 0x10000

// RAM is a flat, byte addressable memory without any mapping logic. Every
// address of the 16 bit space is backed, reads and writes can not fail.
type RAM struct {
	data [Size]byte
}

// New returns a new zero initialized RAM instance.
func New() *RAM {
	return &RAM{}
}

// Read returns the byte stored at the given address.
func (r *RAM) Read(address uint16) byte {
	return r.data[address]
}

// Write stores a byte at the given address.
func (r *RAM) Write(address uint16, value byte) {
	r.data[address] = value
}

// ReadWord reads a word in little endian order, the low byte is stored at the
// given address and the high byte at address+1. It is composed from the byte
// primitives, addressing modes depend on byte level semantics at page
// boundaries.
func (r *RAM) ReadWord(address uint16) uint16 {
	low := uint16(r.Read(address))
	high := uint16(r.Read(address + 1))
	return high<<8 | low
}

// ReadWordBug reads a word from a memory address and emulates a 6502 bug that
// caused the low byte to wrap without incrementing the high byte.
func (r *RAM) ReadWordBug(address uint16) uint16 {
	low := uint16(r.Read(address))
	address = address&0xFF00 | uint16(byte(address)+1)
	high := uint16(r.Read(address))
	return high<<8 | low
}

// WriteWord writes a word in little endian order, low byte first.
func (r *RAM) WriteWord(address, value uint16) {
	r.Write(address, byte(value))
	r.Write(address+1, byte(value>>8))
}
