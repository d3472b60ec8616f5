// Package sequence turns raw Standard MIDI File bytes into the flat,
// tempo-resolved note sequence the scheduler replays.
package sequence

import (
	"bytes"
	"errors"
	"fmt"
	"sort"

	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/autolyre/midi/sdk/contracts"
)

// ErrMalformedFile is returned when the input bytes are not a readable
// Standard MIDI File. No partial sequence is produced in that case.
var ErrMalformedFile = errors.New("malformed MIDI file")

const (
	// defaultTicksPerQuarter applies when the file header does not use
	// tick-based (metrical) timing.
	defaultTicksPerQuarter = 480.0
	// defaultTempo is the initial tempo in microseconds per quarter note,
	// i.e. 120 BPM, until the first tempo meta event.
	defaultTempo = 500000.0
)

// Sequence is a parsed MIDI file. It retains the raw track data so the merge
// can be re-run over a subset of tracks without re-parsing.
type Sequence struct {
	smf             *smf.SMF
	ticksPerQuarter float64
	tracks          []contracts.TrackInfo
}

// mergedEvent is a track event tagged with its absolute tick position.
type mergedEvent struct {
	tick int64
	msg  smf.Message
}

// Parse reads a Standard MIDI File from data.
func Parse(data []byte) (*Sequence, error) {
	mid, err := smf.ReadFrom(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedFile, err)
	}

	ticks := defaultTicksPerQuarter
	if mt, ok := mid.TimeFormat.(smf.MetricTicks); ok {
		ticks = float64(mt)
	}

	s := &Sequence{smf: mid, ticksPerQuarter: ticks}
	for i, track := range mid.Tracks {
		info := contracts.TrackInfo{Index: i}
		for _, ev := range track {
			var name string
			if ev.Message.GetMetaTrackName(&name) && info.Name == "" {
				info.Name = name
			}
			if ev.Message.GetNoteStart(nil, nil, nil) {
				info.NoteCount++
			}
		}
		s.tracks = append(s.tracks, info)
	}
	return s, nil
}

// TicksPerQuarter returns the file's tick resolution.
func (s *Sequence) TicksPerQuarter() float64 {
	return s.ticksPerQuarter
}

// Tracks describes the tracks of the parsed file.
func (s *Sequence) Tracks() []contracts.TrackInfo {
	return s.tracks
}

// Extract merges every track and returns the note sequence.
func (s *Sequence) Extract() []contracts.NoteEvent {
	return s.ExtractTracks(nil)
}

// ExtractTracks merges the given subset of tracks and returns the note
// sequence. A nil subset selects all tracks. Unknown indices are ignored.
//
// Every track is walked with a running tick counter, the tagged events are
// merged with a stable sort on the absolute tick, and the merged stream is
// replayed against the running tempo. Only note-on events with velocity > 0
// are emitted; tempo meta events update the running tempo and all other
// events only contribute to tick bookkeeping. The stable sort keeps a tempo
// change ahead of a note at the same tick whenever it was encountered first,
// so the note's delay is computed with the fresh tempo.
func (s *Sequence) ExtractTracks(indices []int) []contracts.NoteEvent {
	var selected map[int]bool
	if indices != nil {
		selected = make(map[int]bool, len(indices))
		for _, i := range indices {
			selected[i] = true
		}
	}

	var merged []mergedEvent
	for i, track := range s.smf.Tracks {
		if selected != nil && !selected[i] {
			continue
		}
		var tick int64
		for _, ev := range track {
			tick += int64(ev.Delta)
			merged = append(merged, mergedEvent{tick: tick, msg: ev.Message})
		}
	}
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].tick < merged[j].tick
	})

	tempo := defaultTempo
	var lastTick int64
	var events []contracts.NoteEvent
	for _, ev := range merged {
		var bpm float64
		var channel, key, velocity uint8
		switch {
		case ev.msg.GetMetaTempo(&bpm):
			if bpm > 0 {
				tempo = 60000000.0 / bpm
			}
		case ev.msg.GetNoteStart(&channel, &key, &velocity):
			delay := float64(ev.tick-lastTick) * (tempo / 1000.0 / s.ticksPerQuarter)
			lastTick = ev.tick
			events = append(events, contracts.NoteEvent{Pitch: int(key), DelayMs: delay})
		}
	}
	return events
}
