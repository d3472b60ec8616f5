package player

import (
	"bytes"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/autolyre/midi/sdk/contracts"
)

// captureSink records every delivered pitch.
type captureSink struct {
	mu      sync.Mutex
	pitches []int
}

func (c *captureSink) Send(pitch int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pitches = append(c.pitches, pitch)
	return nil
}

func (c *captureSink) sent() []int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]int(nil), c.pitches...)
}

func testSMF(t *testing.T, tracks ...smf.Track) []byte {
	t.Helper()
	mid := smf.NewSMF1()
	mid.TimeFormat = smf.MetricTicks(480)
	for _, tr := range tracks {
		tr.Close(0)
		mid.Add(tr)
	}
	var buf bytes.Buffer
	if _, err := mid.WriteTo(&buf); err != nil {
		t.Fatalf("writing test SMF: %v", err)
	}
	return buf.Bytes()
}

func note(delta uint32, key uint8) smf.Event {
	return smf.Event{Delta: delta, Message: smf.Message(midi.NoteOn(0, key, 100))}
}

func newTestPlayer(t *testing.T, sink contracts.Sink, opts ...contracts.Option) contracts.Player {
	t.Helper()
	opts = append([]contracts.Option{
		contracts.WithSink(sink),
		contracts.WithLogLevel(contracts.FatalLevel),
	}, opts...)
	p, err := NewPlayer(opts...)
	if err != nil {
		t.Fatalf("NewPlayer: %v", err)
	}
	t.Cleanup(func() { p.Close() })
	return p
}

func TestPlayBeforeLoadIsRejected(t *testing.T) {
	p := newTestPlayer(t, &captureSink{})
	if _, err := p.Play(); !errors.Is(err, ErrNotLoaded) {
		t.Errorf("Play before load: err = %v, want ErrNotLoaded", err)
	}
	if err := p.SelectTracks([]int{0}); !errors.Is(err, ErrNotLoaded) {
		t.Errorf("SelectTracks before load: err = %v, want ErrNotLoaded", err)
	}
	if err := p.ExportTranscript(&strings.Builder{}, &strings.Builder{}); !errors.Is(err, ErrNotLoaded) {
		t.Errorf("ExportTranscript before load: err = %v, want ErrNotLoaded", err)
	}
}

func TestLoadFailureKeepsPriorState(t *testing.T) {
	p := newTestPlayer(t, &captureSink{})
	if err := <-p.LoadData(testSMF(t, smf.Track{note(0, 60)})); err != nil {
		t.Fatalf("LoadData: %v", err)
	}

	if err := <-p.LoadData([]byte("garbage")); err == nil {
		t.Fatal("LoadData accepted garbage input")
	}
	if got := len(p.Events()); got != 1 {
		t.Errorf("events after failed load = %d, want the prior 1", got)
	}
}

func TestPlayDeliversExtractedSequence(t *testing.T) {
	sink := &captureSink{}
	p := newTestPlayer(t, sink)
	if err := <-p.LoadData(testSMF(t, smf.Track{
		note(0, 60),
		note(4, 62), // a handful of ticks keeps the test fast
		note(4, 64),
	})); err != nil {
		t.Fatalf("LoadData: %v", err)
	}

	done, err := p.Play()
	if err != nil {
		t.Fatalf("Play: %v", err)
	}
	<-done

	want := []int{60, 62, 64}
	got := sink.sent()
	if len(got) != len(want) {
		t.Fatalf("sent %d notes, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("note %d = %d, want %d", i, got[i], want[i])
		}
	}
	if p.Playing() {
		t.Error("player still reports playing after exhaustion")
	}
}

func TestPlayAppliesTunedOffset(t *testing.T) {
	sink := &captureSink{}
	p := newTestPlayer(t, sink, contracts.WithTuning(true))
	// 59, 61, 63 all become playable one semitone up.
	if err := <-p.LoadData(testSMF(t, smf.Track{
		note(0, 59),
		note(1, 61),
		note(1, 63),
	})); err != nil {
		t.Fatalf("LoadData: %v", err)
	}

	done, err := p.Play()
	if err != nil {
		t.Fatalf("Play: %v", err)
	}
	<-done

	if got := p.Offset(); got != 1 {
		t.Errorf("Offset = %d, want 1", got)
	}
	want := []int{60, 62, 64}
	got := sink.sent()
	if len(got) != len(want) {
		t.Fatalf("sent %d notes, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("note %d = %d, want %d", i, got[i], want[i])
		}
	}
	if rate := p.HitRate(1); rate != 1 {
		t.Errorf("HitRate(1) = %f, want 1", rate)
	}
}

func TestSetTuningDisablesTheSearch(t *testing.T) {
	sink := &captureSink{}
	p := newTestPlayer(t, sink, contracts.WithTuning(true))
	if err := <-p.LoadData(testSMF(t, smf.Track{note(0, 59), note(1, 61)})); err != nil {
		t.Fatalf("LoadData: %v", err)
	}

	p.SetTuning(false)
	done, err := p.Play()
	if err != nil {
		t.Fatalf("Play: %v", err)
	}
	<-done

	if got := p.Offset(); got != 0 {
		t.Errorf("Offset = %d, want 0 with tuning disabled", got)
	}
	got := sink.sent()
	if len(got) != 2 || got[0] != 59 || got[1] != 61 {
		t.Errorf("sent %v, want the untransposed [59 61]", got)
	}
}

func TestConcurrentPlayIsRejected(t *testing.T) {
	sink := &captureSink{}
	p := newTestPlayer(t, sink)
	// A long leading delay keeps the first session alive during the check.
	if err := <-p.LoadData(testSMF(t, smf.Track{
		note(0, 60),
		note(960, 62),
	})); err != nil {
		t.Fatalf("LoadData: %v", err)
	}

	done, err := p.Play()
	if err != nil {
		t.Fatalf("Play: %v", err)
	}
	if _, err := p.Play(); !errors.Is(err, ErrAlreadyPlaying) {
		t.Errorf("second Play: err = %v, want ErrAlreadyPlaying", err)
	}

	p.Stop()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("session did not stop after cancellation")
	}
	if got := len(sink.sent()); got >= 2 {
		t.Errorf("sent %d notes, want fewer than 2 after early stop", got)
	}
}

func TestSelectTracksRestrictsPlayback(t *testing.T) {
	sink := &captureSink{}
	p := newTestPlayer(t, sink)
	melody := smf.Track{note(0, 60), note(2, 62)}
	bass := smf.Track{note(1, 36)}
	if err := <-p.LoadData(testSMF(t, melody, bass)); err != nil {
		t.Fatalf("LoadData: %v", err)
	}
	if got := len(p.Tracks()); got != 2 {
		t.Fatalf("Tracks = %d, want 2", got)
	}

	if err := p.SelectTracks([]int{0}); err != nil {
		t.Fatalf("SelectTracks: %v", err)
	}
	done, err := p.Play()
	if err != nil {
		t.Fatalf("Play: %v", err)
	}
	<-done

	for i, pitch := range sink.sent() {
		if pitch == 36 {
			t.Errorf("note %d comes from the deselected bass track", i)
		}
	}
	if got := len(sink.sent()); got != 2 {
		t.Errorf("sent %d notes, want 2", got)
	}
}

func TestSpeedRoundTrip(t *testing.T) {
	p := newTestPlayer(t, &captureSink{}, contracts.WithSpeed(1.5))
	if got := p.Speed(); got != 1.5 {
		t.Errorf("Speed = %f, want 1.5", got)
	}
	p.SetSpeed(0)
	if got := p.Speed(); got != 1.5 {
		t.Errorf("Speed after SetSpeed(0) = %f, want 1.5", got)
	}
	p.SetSpeed(0.5)
	if got := p.Speed(); got != 0.5 {
		t.Errorf("Speed = %f, want 0.5", got)
	}
}

func TestExportTranscript(t *testing.T) {
	p := newTestPlayer(t, &captureSink{})
	if err := <-p.LoadData(testSMF(t, smf.Track{
		note(0, 60),
		note(96, 62), // 100 ms at the default tempo
	})); err != nil {
		t.Fatalf("LoadData: %v", err)
	}

	var letters, phone strings.Builder
	if err := p.ExportTranscript(&letters, &phone); err != nil {
		t.Fatalf("ExportTranscript: %v", err)
	}
	if got := letters.String(); got != "AS - " {
		t.Errorf("letters = %q, want %q", got, "AS - ")
	}
	if got := phone.String(); got != "12 - " {
		t.Errorf("phone = %q, want %q", got, "12 - ")
	}
}
