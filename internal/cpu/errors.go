package cpu

import "errors"

// Execution error kinds. All of them are fatal for the running program, the
// loop stops deterministically and the caller decides how to report the
// condition. They can be distinguished using errors.Is.
var (
	// ErrUnrecognizedOpcode is returned when the fetched byte has no entry in
	// the opcode table.
	ErrUnrecognizedOpcode = errors.New("opcode is not recognized")

	// ErrUnsupportedAddressingMode is returned when operand address resolution
	// is requested for an addressing mode that has no operand address.
	ErrUnsupportedAddressingMode = errors.New("unsupported addressing mode")

	// ErrNotImplemented is returned when an opcode has an entry in the opcode
	// table but no instruction handler is wired up for it.
	ErrNotImplemented = errors.New("instruction is not implemented")
)
