package player

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/autolyre/midi/internal/playback"
	"github.com/autolyre/midi/internal/pool"
	"github.com/autolyre/midi/internal/sequence"
	"github.com/autolyre/midi/internal/tuner"
	"github.com/autolyre/midi/sdk/contracts"
)

// Error definitions for playback preconditions.
var (
	ErrNotLoaded      = errors.New("no MIDI file has been extracted")
	ErrAlreadyPlaying = errors.New("a playback session is already running")
)

// workerCount sizes the pool shared by extraction and playback tasks.
const workerCount = 2

// Player manages one loaded note sequence and at most one playback session
// at a time. Extraction and playback run on the worker pool so none of the
// public methods block on them.
type Player struct {
	logger contracts.Logger
	sink   contracts.Sink
	tuning bool

	pool *pool.Pool

	mu      sync.Mutex
	seq     *sequence.Sequence
	events  []contracts.NoteEvent
	session *playback.Session
	cancel  context.CancelFunc
	offset  int
	speed   float64
}

// New initializes a Player from finalized options. When no sink was injected
// the OS-specific default is created.
func New(opts *contracts.PlayerOptions) (*Player, error) {
	sink := opts.Sink
	if sink == nil {
		var err error
		if sink, err = newSink(opts.Logger); err != nil {
			return nil, err
		}
	}

	return &Player{
		logger: opts.Logger,
		sink:   sink,
		tuning: opts.Tuning,
		speed:  opts.Speed,
		pool:   pool.New(workerCount),
	}, nil
}

// Load reads and extracts the MIDI file at path on the worker pool. The
// returned channel receives the result exactly once.
func (p *Player) Load(path string) <-chan error {
	done := make(chan error, 1)
	p.pool.Submit(func() {
		data, err := os.ReadFile(path)
		if err != nil {
			p.logger.Error("failed to read MIDI file",
				p.logger.Field().String("path", path),
				p.logger.Field().Error("error", err))
			done <- fmt.Errorf("reading %s: %w", path, err)
			return
		}
		done <- p.load(data)
	})
	return done
}

// LoadData extracts an in-memory MIDI file on the worker pool.
func (p *Player) LoadData(data []byte) <-chan error {
	done := make(chan error, 1)
	p.pool.Submit(func() {
		done <- p.load(data)
	})
	return done
}

// load parses and extracts data. On failure the previously loaded state is
// left untouched.
func (p *Player) load(data []byte) error {
	seq, err := sequence.Parse(data)
	if err != nil {
		p.logger.Error("failed to parse MIDI file", p.logger.Field().Error("error", err))
		return err
	}
	events := seq.Extract()

	p.mu.Lock()
	p.seq = seq
	p.events = events
	p.offset = 0
	p.mu.Unlock()

	p.logger.Info("MIDI file extracted",
		p.logger.Field().Int("tracks", len(seq.Tracks())),
		p.logger.Field().Int("notes", len(events)))
	return nil
}

// Tracks lists the tracks of the loaded file.
func (p *Player) Tracks() []contracts.TrackInfo {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.seq == nil {
		return nil
	}
	return p.seq.Tracks()
}

// SelectTracks re-runs the merge and extraction over the given track subset.
func (p *Player) SelectTracks(indices []int) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.seq == nil {
		return ErrNotLoaded
	}
	p.events = p.seq.ExtractTracks(indices)
	p.logger.Info("tracks re-merged",
		p.logger.Field().Int("selected", len(indices)),
		p.logger.Field().Int("notes", len(p.events)))
	return nil
}

// Events returns the extracted note sequence. Shared and read-only.
func (p *Player) Events() []contracts.NoteEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.events
}

// Play starts a playback session on the worker pool. When tuning is enabled
// the transposition search runs inside the session task, before the first
// note. The returned channel is closed when the session ends.
func (p *Player) Play() (<-chan struct{}, error) {
	p.mu.Lock()
	if p.seq == nil {
		p.mu.Unlock()
		return nil, ErrNotLoaded
	}
	if p.cancel != nil {
		p.mu.Unlock()
		return nil, ErrAlreadyPlaying
	}

	ctx, cancel := context.WithCancel(context.Background())
	session := playback.NewSession(p.speed)
	events := p.events
	tuning := p.tuning
	p.session = session
	p.cancel = cancel
	// Submit outside the lock: a full pool queue must not stall controllers
	// calling into the locked methods.
	p.mu.Unlock()

	done := make(chan struct{})
	p.pool.Submit(func() {
		defer close(done)

		offset := 0
		if tuning {
			offset = tuner.BestOffset(events)
			p.logger.Info("transposition tuned",
				p.logger.Field().Int("offset", offset),
				p.logger.Field().Float64("hitRate", tuner.HitRate(events, offset)))
		}
		p.mu.Lock()
		p.offset = offset
		p.mu.Unlock()

		session.Run(ctx, events, offset, p.sink, p.logger)

		p.mu.Lock()
		p.cancel = nil
		p.mu.Unlock()
		cancel()
	})
	return done, nil
}

// Stop cancels the running playback session, if any. Cancellation is
// cooperative: the session stops before its next note delivery.
func (p *Player) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancel != nil {
		p.cancel()
	}
}

// Pause freezes the running session before its next note.
func (p *Player) Pause() {
	if s := p.currentSession(); s != nil {
		s.Pause()
	}
}

// Resume continues a paused session.
func (p *Player) Resume() {
	if s := p.currentSession(); s != nil {
		s.Resume()
	}
}

// Paused reports whether the current session is paused.
func (p *Player) Paused() bool {
	s := p.currentSession()
	return s != nil && s.Paused()
}

// Playing reports whether a playback session is running.
func (p *Player) Playing() bool {
	s := p.currentSession()
	return s != nil && s.Playing()
}

// SetSpeed updates the live speed multiplier for the current session and the
// initial speed of future sessions. Values <= 0 are ignored.
func (p *Player) SetSpeed(speed float64) {
	if speed <= 0 {
		return
	}
	p.mu.Lock()
	p.speed = speed
	s := p.session
	p.mu.Unlock()
	if s != nil {
		s.SetSpeed(speed)
	}
}

// Speed returns the current speed multiplier.
func (p *Player) Speed() float64 {
	if s := p.currentSession(); s != nil {
		return s.Speed()
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.speed
}

// SetTuning enables or disables the transposition search for future playback
// sessions.
func (p *Player) SetTuning(enabled bool) {
	p.mu.Lock()
	p.tuning = enabled
	p.mu.Unlock()
}

// Offset returns the transposition offset of the current or most recent
// playback session.
func (p *Player) Offset() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.offset
}

// HitRate reports the fraction of extracted notes playable at offset.
func (p *Player) HitRate(offset int) float64 {
	p.mu.Lock()
	events := p.events
	p.mu.Unlock()
	return tuner.HitRate(events, offset)
}

// ExportTranscript writes the letter and phone transcriptions of the loaded
// sequence.
func (p *Player) ExportTranscript(letters, phone io.Writer) error {
	p.mu.Lock()
	seq := p.seq
	events := p.events
	p.mu.Unlock()
	if seq == nil {
		return ErrNotLoaded
	}
	return sequence.WriteTranscript(events, letters, phone)
}

// Close stops playback and shuts down the worker pool.
func (p *Player) Close() error {
	p.Stop()
	p.pool.Close()
	return nil
}

func (p *Player) currentSession() *playback.Session {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.session
}
