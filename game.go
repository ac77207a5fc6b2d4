package main

import (
	"fmt"
	"log"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/foxrun/common"
	"github.com/milk9111/foxrun/input"
	"github.com/milk9111/foxrun/prefabs"
	"github.com/milk9111/foxrun/session"
)

type Game struct {
	cfg     session.Config
	session *session.Session
	pauseUI *ebitenui.UI
	watcher *prefabs.Watcher

	debug  bool
	quit   bool
	frames int
}

func NewGame(cfg session.Config, debug, watch bool) (*Game, error) {
	s, err := session.New(cfg)
	if err != nil {
		return nil, err
	}

	g := &Game{cfg: cfg, session: s, debug: debug}
	g.pauseUI = NewPauseUI(g)

	if watch {
		w, err := prefabs.NewWatcher()
		if err != nil {
			log.Printf("game: prefab hot reload disabled: %v", err)
		} else {
			g.watcher = w
		}
	}
	return g, nil
}

func (g *Game) Update() error {
	if g.quit {
		g.Close()
		return ebiten.Termination
	}
	g.frames++

	g.reloadChanged()

	if g.session.Over() && (inpututil.IsKeyJustPressed(ebiten.KeyEnter) || len(inpututil.AppendJustPressedTouchIDs(nil)) > 0) {
		g.restart()
		return nil
	}

	g.session.Update(1.0 / float64(ebiten.TPS()))
	if g.session.Paused() {
		g.pauseUI.Update()
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.session.Draw(screen)

	if g.session.Paused() {
		g.pauseUI.Draw(screen)
	}

	if g.debug {
		drawPhysicsDebug(screen, g.session.Space)
		stats := g.session.Stats()
		ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %.1f  frames: %d  foxes: %d  attacks: %d  hits: %d",
			ebiten.ActualFPS(), stats.Frames, g.session.Pack.Len(), stats.Attacks, stats.Hits))
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return common.BaseWidth, common.BaseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}

// Resume closes the pause menu.
func (g *Game) Resume() {
	g.session.SetPaused(false)
}

// SelectCat switches the cat skin from the pause menu.
func (g *Game) SelectCat(id int) {
	if err := g.session.SetCat(id); err != nil {
		log.Printf("game: %v", err)
	}
}

func (g *Game) Quit() {
	g.quit = true
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
		g.watcher = nil
	}
	g.session.Close()
}

func (g *Game) restart() {
	next, err := session.New(g.cfg)
	if err != nil {
		log.Printf("game: restart: %v", err)
		return
	}
	g.session.Close()
	g.session = next
}

// reloadChanged rebuilds the session when tuning files change on disk.
func (g *Game) reloadChanged() {
	if g.watcher == nil {
		return
	}
	select {
	case err := <-g.watcher.Errors:
		log.Printf("game: prefab watcher: %v", err)
	default:
	}

	changed := g.watcher.Drain()
	if len(changed) == 0 {
		return
	}
	log.Printf("game: reloading after change to %v", changed)
	g.restart()
}

// newInput returns the ebiten input source sized for the base resolution.
func newInput() input.Source {
	spec, err := prefabs.LoadPlayerSpec()
	threshold := 40.0
	if err == nil && spec.SwipeThreshold > 0 {
		threshold = spec.SwipeThreshold
	}
	return input.NewEbiten(common.BaseWidth, threshold)
}
