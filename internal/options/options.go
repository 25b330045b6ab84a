// Package options contains the program options.
package options

// Program contains the command line options.
type Program struct {
	Input string

	Breakpoints string
	Debug       bool
	Quiet       bool
	Trace       bool
}

// Emulator defines options to control the emulator.
type Emulator struct {
	Breakpoints []uint16 // addresses execution stops at before the instruction runs
	Trace       bool     // log every executed instruction with the register state
}
