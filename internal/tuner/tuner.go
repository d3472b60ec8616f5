// Package tuner searches for the transposition offset that moves the largest
// fraction of a note sequence into the playable range.
package tuner

import (
	"sync"

	"github.com/autolyre/midi/internal/keymap"
	"github.com/autolyre/midi/sdk/contracts"
)

// maxShift bounds the search to offsets within [-maxShift, +maxShift].
const maxShift = 21

// HitRate reports the fraction of events whose transposed pitch is playable.
// An empty sequence has a hit rate of 0.
func HitRate(events []contracts.NoteEvent, offset int) float64 {
	if len(events) == 0 {
		return 0
	}
	hits := 0
	for _, e := range events {
		if keymap.Playable(e.Pitch + offset) {
			hits++
		}
	}
	return float64(hits) / float64(len(events))
}

// BestOffset returns the transposition offset in [-21, +21] with the highest
// hit rate. The upward and downward directions are scanned concurrently over
// the read-only sequence; within a scan the smallest magnitude wins a tie,
// and between the two directions the upward winner is kept unless the
// downward one is strictly better. An empty sequence returns 0.
func BestOffset(events []contracts.NoteEvent) int {
	if len(events) == 0 {
		return 0
	}

	var (
		wg                 sync.WaitGroup
		upShift, downShift int
		upRate, downRate   float64
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		upShift, upRate = scan(events, 1)
	}()
	go func() {
		defer wg.Done()
		downShift, downRate = scan(events, -1)
	}()
	wg.Wait()

	if downRate > upRate {
		return downShift
	}
	return upShift
}

// scan walks offsets 0, dir, 2*dir, ... up to maxShift steps and returns the
// first offset reaching the best hit rate.
func scan(events []contracts.NoteEvent, dir int) (int, float64) {
	best, bestRate := 0, -1.0
	for step := 0; step <= maxShift; step++ {
		offset := step * dir
		if rate := HitRate(events, offset); rate > bestRate {
			best, bestRate = offset, rate
		}
	}
	return best, bestRate
}
