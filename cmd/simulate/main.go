// Command simulate plays a session without a window and prints what
// happened.
package main

import (
	"flag"
	"fmt"
	"log"
	"sort"

	"github.com/milk9111/foxrun/input"
	"github.com/milk9111/foxrun/prefabs"
	"github.com/milk9111/foxrun/prefs"
	"github.com/milk9111/foxrun/session"
)

func main() {
	frames := flag.Int("frames", 60*60, "frames to simulate at 60 per second")
	seed := flag.Uint64("seed", 1, "spawner seed")
	tutorial := flag.Bool("tutorial", false, "run as a first-time player")
	jumpEvery := flag.Int("jump-every", 0, "press jump every N frames (0 never jumps)")
	flag.Parse()

	store := prefs.NewStore(prefs.NewMemory(), prefabs.SkinCount)
	if !*tutorial {
		if err := store.SavePreferences(prefs.Preferences{CatID: 1}); err != nil {
			log.Fatal(err)
		}
	}

	script := &input.Script{Frames: make([]input.Intent, *frames)}
	script.Frames[0].Direction = 1
	if *jumpEvery > 0 {
		for i := *jumpEvery; i < *frames; i += *jumpEvery {
			script.Frames[i].Jump = true
		}
	}

	s, err := session.New(session.Config{Seed: *seed, Input: script, Store: store})
	if err != nil {
		log.Fatal(err)
	}
	defer s.Close()

	for i := 0; i < *frames && !s.Over(); i++ {
		s.Update(1.0 / 60)
	}

	stats := s.Stats()
	kinds := make([]string, 0, len(stats.Spawned))
	for k := range stats.Spawned {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)

	fmt.Printf("frames:  %d\n", stats.Frames)
	for _, k := range kinds {
		fmt.Printf("spawned: %-6s %d\n", k, stats.Spawned[k])
	}
	fmt.Printf("attacks: %d\n", stats.Attacks)
	fmt.Printf("hits:    %d\n", stats.Hits)
	fmt.Printf("hearts:  %d\n", stats.Hearts)
	fmt.Printf("steps:   %.0f\n", stats.Steps)
	fmt.Printf("over:    %v\n", stats.GameOver)
	fmt.Printf("alive:   %d\n", stats.Entities)
}
