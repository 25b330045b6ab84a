// Package config handles application configuration and setup
package config

import (
	"github.com/retroenv/retroemu/internal/options"
	"github.com/retroenv/retrogolib/log"
)

// CreateLogger creates a logger with appropriate settings. The instruction
// trace is logged at info level, so -trace keeps that level visible even in
// quiet mode.
func CreateLogger(opts options.Program) *log.Logger {
	cfg := log.DefaultConfig()
	switch {
	case opts.Debug:
		cfg.Level = log.DebugLevel
	case opts.Quiet && !opts.Trace:
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}
