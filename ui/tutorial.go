package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/foxrun/common"
	"github.com/milk9111/foxrun/ecs"
)

// Tutorial shows the description of the fox currently running in the
// tutorial.
type Tutorial struct {
	texts    map[string]string
	current  string
	visible  bool
	complete bool
	subs     ecs.Subscriptions
}

// NewTutorial creates the overlay. texts maps a fox kind to its description.
func NewTutorial(bus *ecs.Bus, texts map[string]string) *Tutorial {
	t := &Tutorial{texts: texts}
	t.subs = append(t.subs,
		bus.Subscribe(ecs.SignalTutorialSkulkAction, func(e ecs.Event) {
			skulk, ok := e.Data.(ecs.TutorialSkulk)
			if !ok {
				return
			}
			t.visible = skulk.Active
			if skulk.Active {
				t.current = t.texts[skulk.Kind]
			}
		}),
		bus.Subscribe(ecs.SignalCompleteTutorialSkulks, func(ecs.Event) {
			t.visible = false
			t.complete = true
		}),
	)
	return t
}

// Text returns the description on screen, or "" when hidden.
func (t *Tutorial) Text() string {
	if !t.visible {
		return ""
	}
	return t.current
}

func (t *Tutorial) Complete() bool {
	return t.complete
}

func (t *Tutorial) Draw(screen *ebiten.Image) {
	s := t.Text()
	if s == "" {
		return
	}
	const scale = 2.0
	w := textWidth(s, scale)
	x := (common.BaseWidth - w) / 2
	y := common.BaseHeight * 0.2
	vector.FillRect(screen, float32(x-12), float32(y-8), float32(w+24), float32(13*scale+16), color.NRGBA{A: 160}, false)
	drawText(screen, s, x, y, scale, textColor)
}

func (t *Tutorial) Close() {
	t.subs.Close()
}
