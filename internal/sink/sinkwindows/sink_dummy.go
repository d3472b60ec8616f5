//go:build !windows
// +build !windows

package sinkwindows

import (
	"fmt"

	"github.com/autolyre/midi/sdk/contracts"
)

type dummySink struct {
	logger contracts.Logger
}

// New initializes a dummy sink for non-Windows systems.
func New(logger contracts.Logger) (contracts.Sink, error) {
	logger.Info("Using dummy keyboard sink for non-Windows system")
	return &dummySink{logger: logger}, nil
}

// Send logs a warning and returns an error indicating that key injection is
// unavailable on this platform.
func (d *dummySink) Send(pitch int) error {
	d.logger.Warn("Send called on dummy keyboard sink")
	return fmt.Errorf("key injection is not available on this platform")
}
