// Package playback replays an extracted note sequence in real time against a
// drift-corrected wall clock.
package playback

import (
	"context"
	"time"

	"go.uber.org/atomic"

	"github.com/autolyre/midi/sdk/contracts"
)

// pausePollInterval is how often a paused session re-checks its flags. Paused
// wall-clock time is excluded from scheduling, so the granularity only
// affects resume latency.
const pausePollInterval = 10 * time.Millisecond

// Session holds the mutable state of one playback run. The flags are atomics
// so the per-event hot loop reads them without locking while a controller
// goroutine mutates them.
type Session struct {
	speed   *atomic.Float64
	paused  *atomic.Bool
	playing *atomic.Bool
}

// NewSession creates a session with the given initial speed multiplier.
func NewSession(speed float64) *Session {
	if speed <= 0 {
		speed = 1.0
	}
	return &Session{
		speed:   atomic.NewFloat64(speed),
		paused:  atomic.NewBool(false),
		playing: atomic.NewBool(false),
	}
}

// SetSpeed updates the live speed multiplier. It takes effect on the next
// note's delay; an elapsed sleep is never rescaled. Values <= 0 are ignored.
func (s *Session) SetSpeed(speed float64) {
	if speed > 0 {
		s.speed.Store(speed)
	}
}

// Speed returns the current speed multiplier.
func (s *Session) Speed() float64 {
	return s.speed.Load()
}

// Pause freezes scheduling before the next note.
func (s *Session) Pause() {
	s.paused.Store(true)
}

// Resume continues playback. The paused wall-clock time is not counted
// against future drift correction.
func (s *Session) Resume() {
	s.paused.Store(false)
}

// Paused reports whether the session is paused.
func (s *Session) Paused() bool {
	return s.paused.Load()
}

// Playing reports whether the session is currently replaying events.
func (s *Session) Playing() bool {
	return s.playing.Load()
}

// Run replays events in order, sending each transposed pitch to sink.
//
// The schedule is drift corrected: per-note sleeps are derived from the
// difference between the cumulative speed-adjusted delay and the wall clock,
// so per-event overhead does not accumulate over long sequences. Cancellation
// via ctx is observed during sleeps and before every send; once observed, no
// further notes are delivered. A sink failure is logged and playback
// continues with the next note.
func (s *Session) Run(ctx context.Context, events []contracts.NoteEvent, offset int, sink contracts.Sink, log contracts.Logger) {
	s.playing.Store(true)
	defer s.playing.Store(false)

	start := time.Now()
	scheduled := 0.0 // cumulative speed-adjusted delay, in milliseconds

	for i, e := range events {
		if s.paused.Load() {
			if !s.waitResume(ctx) {
				return
			}
			// Restart the clock so the paused time does not count as
			// already-elapsed playback.
			start = time.Now()
			scheduled = 0
		}

		scheduled += e.DelayMs / s.speed.Load()
		elapsed := float64(time.Since(start)) / float64(time.Millisecond)
		if wait := scheduled - elapsed; wait > 0 {
			if !sleep(ctx, time.Duration(wait*float64(time.Millisecond))) {
				return
			}
		}
		if ctx.Err() != nil {
			return
		}

		if err := sink.Send(e.Pitch + offset); err != nil {
			log.Warn("note delivery failed",
				log.Field().Int("index", i),
				log.Field().Int("pitch", e.Pitch+offset),
				log.Field().Error("error", err),
			)
		}
	}
}

// waitResume blocks until the session is unpaused. It returns false when the
// context is cancelled first.
func (s *Session) waitResume(ctx context.Context) bool {
	for s.paused.Load() {
		select {
		case <-ctx.Done():
			return false
		case <-time.After(pausePollInterval):
		}
	}
	return true
}

// sleep waits for d or until the context is cancelled, whichever comes first.
func sleep(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
