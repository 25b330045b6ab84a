package emulator

import (
	"context"
	"errors"
	"testing"

	"github.com/retroenv/retroemu/internal/cpu"
	"github.com/retroenv/retroemu/internal/options"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func TestRunProgram(t *testing.T) {
	logger := log.NewTestLogger(t)
	em := New(logger, options.Emulator{})

	assert.NoError(t, em.Load([]byte{0xA9, 0x05, 0x00}))
	assert.NoError(t, em.Run(context.Background()))

	assert.True(t, em.CPU().Halted())
	assert.Equal(t, byte(0x05), em.CPU().A)
}

func TestRunWithTrace(t *testing.T) {
	logger := log.NewTestLogger(t)
	em := New(logger, options.Emulator{Trace: true})

	assert.NoError(t, em.Load([]byte{0xA9, 0xC0, 0xAA, 0xE8, 0x00}))
	assert.NoError(t, em.Run(context.Background()))

	assert.Equal(t, byte(0xC1), em.CPU().X)
}

func TestBreakpointStopsExecution(t *testing.T) {
	logger := log.NewTestLogger(t)
	em := New(logger, options.Emulator{Breakpoints: []uint16{0x8002}})

	assert.NoError(t, em.Load([]byte{0xA9, 0x05, 0xAA, 0x00}))
	assert.NoError(t, em.Run(context.Background()))

	// stopped at the tax, it has not executed
	assert.False(t, em.CPU().Halted())
	assert.Equal(t, uint16(0x8002), em.CPU().PC)
	assert.Equal(t, byte(0x00), em.CPU().X)
}

func TestLoadRejectsOversizedProgram(t *testing.T) {
	logger := log.NewTestLogger(t)
	em := New(logger, options.Emulator{})

	assert.Error(t, em.Load(make([]byte, maxProgramSize+1)))
	assert.Error(t, em.Load(nil))
}

func TestRunReportsErrorKind(t *testing.T) {
	logger := log.NewTestLogger(t)
	em := New(logger, options.Emulator{})

	// 0x02 is a jam opcode without a table entry
	assert.NoError(t, em.Load([]byte{0x02}))

	err := em.Run(context.Background())
	assert.True(t, errors.Is(err, cpu.ErrUnrecognizedOpcode))
}

func TestRunChecksContext(t *testing.T) {
	logger := log.NewTestLogger(t)
	em := New(logger, options.Emulator{})
	assert.NoError(t, em.Load([]byte{0x00}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := em.Run(ctx)
	assert.True(t, errors.Is(err, context.Canceled))
}
