package main

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"droptracker/config"
	"droptracker/driver"
)

func TestArgsExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
		done bool
	}{
		{"ok", nil, 0, false},
		{"help", config.ErrHelp, 0, true},
		{"unreadable", errors.Wrap(config.ErrNotReadable, "x.mov"), -1, true},
		{"usage", errors.Wrap(config.ErrUsage, "requires -n DROPLETS"), 1, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, done := argsExitCode(tt.err)
			assert.Equal(t, tt.code, code)
			assert.Equal(t, tt.done, done)
		})
	}
}

func TestRunExitCode(t *testing.T) {
	assert.Equal(t, -1, runExitCode(&driver.Error{Kind: driver.AcquisitionError, Err: driver.ErrNoFrames}))
	assert.Equal(t, 1, runExitCode(&driver.Error{Kind: driver.ConfigError, Err: driver.ErrSelection}))
	assert.Equal(t, 1, runExitCode(&driver.Error{Kind: driver.ExportError, Err: errors.New("disk full")}))
	assert.Equal(t, 1, runExitCode(errors.New("can't update trackers")))
}
