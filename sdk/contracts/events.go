package contracts

// NoteEvent is a single playable note extracted from a MIDI file.
type NoteEvent struct {
	Pitch   int     // Pitch is the MIDI note number before any transposition.
	DelayMs float64 // DelayMs is the wall-clock delay since the previous note at normal speed.
}

// TrackInfo describes one track of a loaded MIDI file so a host can offer
// track selection before playback.
type TrackInfo struct {
	Index     int    // Index is the track position in the file.
	Name      string // Name is the track name meta event, if present.
	NoteCount int    // NoteCount is the number of playable notes on the track.
}
