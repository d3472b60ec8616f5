package main

import (
	"fmt"
	"os"

	"github.com/autolyre/midi/internal/logger"
	"github.com/autolyre/midi/sdk/contracts"
	"github.com/autolyre/midi/sdk/player"
)

func main() {
	log := logger.NewZapLogger()

	if len(os.Args) < 2 {
		fmt.Println("usage: simple_use <file.mid>")
		return
	}

	p, err := player.NewPlayer(
		contracts.WithLogger(log),
		contracts.WithLogLevel(contracts.InfoLevel),
		contracts.WithTuning(true),
	)
	if err != nil {
		log.Error("Failed to initialize player", log.Field().Error("error", err))
		return
	}
	defer p.Close()

	if err := <-p.Load(os.Args[1]); err != nil {
		log.Error("Failed to load MIDI file", log.Field().Error("error", err))
		return
	}

	for _, track := range p.Tracks() {
		fmt.Printf("Track %d: %q (%d notes)\n", track.Index, track.Name, track.NoteCount)
	}
	fmt.Printf("Hit rate without transposition: %.2f\n", p.HitRate(0))

	done, err := p.Play()
	if err != nil {
		log.Error("Failed to start playback", log.Field().Error("error", err))
		return
	}
	fmt.Println("Playing... Press Ctrl+C to exit.")
	<-done

	fmt.Printf("Finished with transposition offset %d.\n", p.Offset())
}
