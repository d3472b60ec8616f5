package sequence

import (
	"io"
	"strings"

	"github.com/autolyre/midi/internal/keymap"
	"github.com/autolyre/midi/sdk/contracts"
)

// Delay thresholds, in milliseconds, between the separator classes of the
// letter transcription.
const (
	shortRest = 50
	midRest   = 700
	longRest  = 2000
)

// WriteTranscript writes the upper-case letter transcription of events to
// letters and the phone-style notation to phone. Pitches outside the playable
// set are silently skipped; each note's separator is chosen from its own
// leading delay.
func WriteTranscript(events []contracts.NoteEvent, letters, phone io.Writer) error {
	var b strings.Builder
	for _, e := range events {
		if l, ok := keymap.Letter(e.Pitch); ok {
			b.WriteByte(l)
		}
		switch d := e.DelayMs; {
		case d > shortRest && d <= midRest:
			b.WriteString(" - ")
		case d > midRest && d <= longRest:
			b.WriteString(" / ")
		case d > longRest:
			b.WriteString("\n\n")
		}
	}

	lower := b.String()
	if _, err := io.WriteString(letters, strings.ToUpper(lower)); err != nil {
		return err
	}
	_, err := io.WriteString(phone, keymap.PhoneNotation(lower))
	return err
}
