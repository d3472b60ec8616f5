package contracts

// Sink delivers one note to the host environment. Implementations perform the
// actual side effect (key injection, MIDI output, capture in tests) and are
// called exactly once per played note, in sequence order.
type Sink interface {
	// Send receives the already transposed pitch. A delivery failure is
	// reported but never aborts the playback session.
	Send(pitch int) error
}

// SinkFunc adapts a plain function to the Sink interface.
type SinkFunc func(pitch int) error

// Send calls f(pitch).
func (f SinkFunc) Send(pitch int) error {
	return f(pitch)
}
