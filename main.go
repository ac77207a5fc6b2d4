package main

import (
	"flag"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/foxrun/common"
	"github.com/milk9111/foxrun/prefabs"
	"github.com/milk9111/foxrun/prefs"
	"github.com/milk9111/foxrun/session"
)

func main() {
	debug := flag.Bool("debug", false, "show debug overlay")
	seed := flag.Uint64("seed", 0, "spawner seed (0 picks one from the clock)")
	watch := flag.Bool("watch", false, "reload prefabs/ when files change")
	app := flag.String("app", "foxrun", "application name used for the preferences directory")
	cat := flag.Int("cat", 0, "select a cat skin (1-5) and remember it")
	flag.Parse()

	if *seed == 0 {
		*seed = uint64(time.Now().UnixNano())
	}

	store := prefs.Open(*app, prefabs.SkinCount)
	if *cat != 0 {
		p, err := store.LoadPreferences()
		if err != nil {
			log.Printf("preferences: %v", err)
		}
		p.CatID = *cat
		if err := store.SavePreferences(p); err != nil {
			log.Fatal(err)
		}
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(common.BaseWidth, common.BaseHeight)
	ebiten.SetWindowTitle("foxrun")

	game, err := NewGame(session.Config{Seed: *seed, Input: newInput(), Store: store}, *debug, *watch)
	if err != nil {
		log.Fatal(err)
	}

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
