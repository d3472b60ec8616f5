package contracts

import "io"

// Player defines the interface for MIDI file playback operations.
//
// Load and Play are submitted to a small worker pool and never block the
// caller; completion is observable through the returned channels. All other
// methods are synchronous.
type Player interface {
	// Load reads and extracts a MIDI file in the background. The returned
	// channel receives the extraction result exactly once. On failure no
	// partial event sequence is retained and previously loaded state is kept.
	Load(path string) <-chan error
	// LoadData behaves like Load for an in-memory MIDI file.
	LoadData(data []byte) <-chan error

	// Tracks lists the tracks of the loaded file.
	Tracks() []TrackInfo
	// SelectTracks re-runs the merge and extraction over the given subset of
	// track indices. A nil subset restores all tracks.
	SelectTracks(indices []int) error
	// Events returns the extracted note sequence. The slice is shared and
	// must be treated as read-only.
	Events() []NoteEvent

	// Play starts a playback session in the background. The returned channel
	// is closed when the session ends, whether by exhaustion or cancellation.
	Play() (<-chan struct{}, error)
	// Stop cancels the running playback session, if any.
	Stop()
	// Pause freezes playback before the next note; Resume continues without
	// counting the paused time against scheduling.
	Pause()
	Resume()
	Paused() bool
	// Playing reports whether a playback session is currently running.
	Playing() bool

	// SetSpeed changes the live speed multiplier; it takes effect on the next
	// note's delay. Values <= 0 are ignored.
	SetSpeed(speed float64)
	Speed() float64

	// SetTuning enables or disables the transposition search for future
	// playback sessions.
	SetTuning(enabled bool)

	// Offset returns the transposition offset applied by the current or most
	// recent playback session.
	Offset() int
	// HitRate reports the fraction of extracted notes playable at the given
	// transposition offset.
	HitRate(offset int) float64

	// ExportTranscript writes the letter transcription of the loaded sequence
	// to letters and the phone-style notation to phone.
	ExportTranscript(letters, phone io.Writer) error

	// Close stops playback and releases the worker pool.
	Close() error
}
