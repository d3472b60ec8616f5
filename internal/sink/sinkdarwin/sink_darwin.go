//go:build darwin
// +build darwin

package sinkdarwin

import (
	"errors"
	"fmt"

	"github.com/youpy/go-coremidi"

	"github.com/autolyre/midi/sdk/contracts"
)

// Error definitions for CoreMIDI output issues.
var (
	ErrNoDestinations   = errors.New("no CoreMIDI destinations found")
	ErrCreateOutputPort = errors.New("error creating output port")
)

const noteVelocity = 0x60

// Sink plays notes to the first CoreMIDI destination on Darwin (macOS)
// systems. On this platform the playback side effect is a real note-on
// rather than a synthetic key press.
type Sink struct {
	logger contracts.Logger
	port   coremidi.OutputPort
	dest   coremidi.Destination
}

// New connects to CoreMIDI and opens an output port.
func New(logger contracts.Logger) (contracts.Sink, error) {
	client, err := coremidi.NewClient("autolyre")
	if err != nil {
		return nil, err
	}

	destinations, err := coremidi.AllDestinations()
	if err != nil {
		return nil, fmt.Errorf("error listing CoreMIDI destinations: %w", err)
	}
	if len(destinations) == 0 {
		logger.Warn(ErrNoDestinations.Error())
		return nil, ErrNoDestinations
	}

	port, err := coremidi.NewOutputPort(client, "Output Port")
	if err != nil {
		logger.Error(ErrCreateOutputPort.Error())
		return nil, fmt.Errorf("%w: %v", ErrCreateOutputPort, err)
	}

	logger.Info("CoreMIDI sink created",
		logger.Field().String("destination", destinations[0].Name()))

	return &Sink{logger: logger, port: port, dest: destinations[0]}, nil
}

// Send emits a note-on followed by a note-off for pitch. Pitches outside the
// MIDI range are dropped.
func (s *Sink) Send(pitch int) error {
	if pitch < 0 || pitch > 127 {
		s.logger.Debug("pitch outside MIDI range", s.logger.Field().Int("pitch", pitch))
		return nil
	}

	on := coremidi.NewPacket([]byte{0x90, byte(pitch), noteVelocity}, 0)
	if err := on.Send(&s.port, &s.dest); err != nil {
		return fmt.Errorf("sending note-on: %w", err)
	}
	off := coremidi.NewPacket([]byte{0x80, byte(pitch), 0}, 0)
	if err := off.Send(&s.port, &s.dest); err != nil {
		return fmt.Errorf("sending note-off: %w", err)
	}
	return nil
}
