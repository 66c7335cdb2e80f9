// Plays the configured alarm sound once to check the audio setup.
package main

import (
	"flag"
	"log"
	"time"

	"github.com/llehouerou/tytimer/internal/config"
	"github.com/llehouerou/tytimer/internal/player"
)

func main() {
	configPath := flag.String("config", "", "config file")
	limit := flag.Duration("limit", 30*time.Second, "stop after this long")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	path := cfg.GetSoundFile()
	if flag.NArg() > 0 {
		path = flag.Arg(0)
	}
	if !player.IsSupported(path) {
		log.Fatalf("Unsupported sound file: %s", path)
	}
	uri, err := player.FileURI(path)
	if err != nil {
		log.Fatalf("Invalid sound path: %v", err)
	}

	eng := player.New(cfg.GetVolume())
	defer eng.Close()
	if err := eng.Init(); err != nil {
		log.Fatalf("Failed to open audio device: %v", err)
	}

	log.Printf("Playing %s at volume %.2f", path, cfg.GetVolume())
	h, err := eng.Start(uri)
	if err != nil {
		log.Fatalf("Failed to start playback: %v", err)
	}

	select {
	case ev := <-eng.Events():
		if ev.Err != nil {
			log.Fatalf("Playback failed: %v", ev.Err)
		}
		log.Println("Playback finished")
	case <-time.After(*limit):
		log.Println("Limit reached, stopping")
		if err := eng.Stop(h); err != nil {
			log.Printf("Failed to stop playback: %v", err)
		}
	}
}
