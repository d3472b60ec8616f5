package player

import (
	"github.com/autolyre/midi/sdk/contracts"
)

// NewPlayer creates a new MIDI auto-player with the specified options.
// It applies default options and initializes the player.
//
// opts ...contracts.Option: A variadic list of option functions to customize the player configuration.
//
// Returns:
//   - contracts.Player: An instance of the player.
//   - error: An error, if any occurred during the creation of the player.
func NewPlayer(opts ...contracts.Option) (contracts.Player, error) {
	options, err := applyDefaultOptions(opts...)
	if err != nil {
		return nil, err
	}

	p, err := New(&options)
	if err != nil {
		return nil, err
	}

	return p, nil
}
