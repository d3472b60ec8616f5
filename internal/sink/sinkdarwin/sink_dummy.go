//go:build !darwin
// +build !darwin

package sinkdarwin

import (
	"fmt"

	"github.com/autolyre/midi/sdk/contracts"
)

type dummySink struct {
	logger contracts.Logger
}

// New initializes a dummy sink for non-macOS systems.
func New(logger contracts.Logger) (contracts.Sink, error) {
	logger.Info("Using dummy CoreMIDI sink for non-macOS system")
	return &dummySink{logger: logger}, nil
}

// Send logs a warning and returns an error indicating that CoreMIDI output is
// unavailable on this platform.
func (d *dummySink) Send(pitch int) error {
	d.logger.Warn("Send called on dummy CoreMIDI sink")
	return fmt.Errorf("CoreMIDI output is not available on this platform")
}
