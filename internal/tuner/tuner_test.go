package tuner

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/autolyre/midi/internal/keymap"
	"github.com/autolyre/midi/sdk/contracts"
)

func notes(pitches ...int) []contracts.NoteEvent {
	events := make([]contracts.NoteEvent, len(pitches))
	for i, p := range pitches {
		events[i] = contracts.NoteEvent{Pitch: p}
	}
	return events
}

func TestHitRate(t *testing.T) {
	tests := []struct {
		name   string
		events []contracts.NoteEvent
		offset int
		want   float64
	}{
		{"all playable", notes(60, 62, 64), 0, 1},
		{"none playable", notes(25, 27, 30), 0, 0},
		{"half playable", notes(60, 61), 0, 0.5},
		{"offset moves into range", notes(59, 61, 63), 1, 1},
		{"empty", nil, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HitRate(tt.events, tt.offset); got != tt.want {
				t.Errorf("HitRate = %f, want %f", got, tt.want)
			}
		})
	}
}

func TestBestOffsetEmptyInput(t *testing.T) {
	if got := BestOffset(nil); got != 0 {
		t.Errorf("BestOffset(nil) = %d, want 0", got)
	}
}

func TestBestOffsetAlreadyInRange(t *testing.T) {
	// A fully playable sequence ties at several offsets; the smallest
	// magnitude and upward direction must win, which is offset 0.
	if got := BestOffset(notes(60, 62, 64, 65, 67)); got != 0 {
		t.Errorf("BestOffset = %d, want 0", got)
	}
}

func TestBestOffsetShiftsUp(t *testing.T) {
	// 59, 61, 63 are all unplayable; +1 makes all of them playable.
	if got := BestOffset(notes(59, 61, 63)); got != 1 {
		t.Errorf("BestOffset = %d, want 1", got)
	}
}

func TestBestOffsetShiftsDown(t *testing.T) {
	// 96, 98, 100 sit above the supported range, so every upward offset
	// scores 0. Going down, -5 is the first offset mapping all three onto
	// playable pitches (91, 93, 95).
	if got := BestOffset(notes(96, 98, 100)); got != -5 {
		t.Errorf("BestOffset = %d, want -5", got)
	}
}

func TestBestOffsetPrefersUpOnRateTie(t *testing.T) {
	// 61 alone is playable at +1 and -1 with identical hit rates; the upward
	// winner takes precedence.
	if got := BestOffset(notes(61)); got != 1 {
		t.Errorf("BestOffset = %d, want 1", got)
	}
}

func TestBestOffsetMostlyPlayableStaysPut(t *testing.T) {
	// 60 and 62 are playable as-is and 200 is unreachable at any offset, so
	// no shift can beat the 2/3 hit rate of offset 0.
	if got := BestOffset(notes(60, 62, 200)); got != 0 {
		t.Errorf("BestOffset = %d, want 0", got)
	}
}

func TestBestOffsetUnreachableSequence(t *testing.T) {
	// Nothing within +/-21 of 300 is playable; every offset scores 0 and the
	// deterministic tie break lands on 0.
	if got := BestOffset(notes(300, 301)); got != 0 {
		t.Errorf("BestOffset = %d, want 0", got)
	}
}

// Properties: the returned offset always stays in bounds, is deterministic,
// and no other offset in the range has a strictly better hit rate.
func TestBestOffsetProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 300

	properties := gopter.NewProperties(parameters)

	genPitches := gen.SliceOf(gen.IntRange(0, 127))

	properties.Property("offset is optimal within [-21, 21]", prop.ForAll(
		func(pitches []int) bool {
			events := notes(pitches...)
			best := BestOffset(events)
			if best < -21 || best > 21 {
				return false
			}
			if BestOffset(events) != best {
				return false
			}
			bestRate := HitRate(events, best)
			for off := -21; off <= 21; off++ {
				if HitRate(events, off) > bestRate {
					return false
				}
			}
			return true
		},
		genPitches,
	))

	properties.Property("ties prefer upward and smaller shifts", prop.ForAll(
		func(pitches []int) bool {
			events := notes(pitches...)
			best := BestOffset(events)
			bestRate := HitRate(events, best)
			if best >= 0 {
				// No non-negative offset closer to zero may tie the winner.
				for off := 0; off < best; off++ {
					if HitRate(events, off) >= bestRate {
						return false
					}
				}
				return true
			}
			// A downward winner must strictly beat every upward candidate
			// and every smaller downward magnitude.
			for off := 0; off <= 21; off++ {
				if HitRate(events, off) >= bestRate {
					return false
				}
			}
			for off := -1; off > best; off-- {
				if HitRate(events, off) >= bestRate {
					return false
				}
			}
			return true
		},
		genPitches,
	))

	properties.TestingRun(t)
}

func TestSupportedTableMatchesClassifier(t *testing.T) {
	for _, p := range keymap.Supported {
		if HitRate(notes(p), 0) != 1 {
			t.Errorf("pitch %d from the supported table is not classified playable", p)
		}
	}
}
