package config

import (
	"testing"

	"github.com/retroenv/retroemu/internal/options"
	"github.com/retroenv/retrogolib/assert"
)

func TestCreateLogger(t *testing.T) {
	tests := []struct {
		name string
		opts options.Program
	}{
		{"default", options.Program{}},
		{"debug", options.Program{Debug: true}},
		{"quiet", options.Program{Quiet: true}},
		{"quiet with trace keeps instruction log visible", options.Program{Quiet: true, Trace: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := CreateLogger(tt.opts)
			assert.NotNil(t, logger)
		})
	}
}
