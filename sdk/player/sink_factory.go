package player

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/autolyre/midi/internal/sink/sinkdarwin"
	"github.com/autolyre/midi/internal/sink/sinkwindows"
	"github.com/autolyre/midi/sdk/contracts"
)

// ErrUnsupportedOS is returned when no default output sink exists for the
// operating system and none was injected via WithSink.
var ErrUnsupportedOS = errors.New("unsupported operating system")

// sinkInitializers maps OS names to corresponding output sink initializers.
var sinkInitializers = map[string]func(contracts.Logger) (contracts.Sink, error){
	"darwin":  sinkdarwin.New,  // macOS (Darwin) CoreMIDI output sink.
	"windows": sinkwindows.New, // Windows keyboard injection sink.
}

// newSink initializes the default output sink for the current operating
// system, returning ErrUnsupportedOS if there is none.
func newSink(logger contracts.Logger) (contracts.Sink, error) {
	if initializer, exists := sinkInitializers[runtime.GOOS]; exists {
		return initializer(logger)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedOS, runtime.GOOS)
}
