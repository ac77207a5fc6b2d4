package ui

import (
	"fmt"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/foxrun/common"
	"github.com/milk9111/foxrun/ecs"
)

var (
	heartColor      = color.NRGBA{R: 0xd6, G: 0x2d, B: 0x3c, A: 0xff}
	heartEmptyColor = color.NRGBA{R: 0x55, G: 0x22, B: 0x2a, A: 0xff}
	textColor       = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
)

// HUD shows the remaining hearts and the distance run. It ends the game when
// the last heart is lost.
type HUD struct {
	bus *ecs.Bus

	hearts    int
	maxHearts int

	mileage         float64
	scrollSpeed     float64
	stepsMultiplier float64

	started bool
	paused  bool
	over    bool

	subs ecs.Subscriptions
}

func NewHUD(bus *ecs.Bus, lives int, scrollSpeed, stepsMultiplier float64) *HUD {
	h := &HUD{
		bus:             bus,
		hearts:          lives,
		maxHearts:       lives,
		scrollSpeed:     scrollSpeed,
		stepsMultiplier: stepsMultiplier,
	}
	h.subs = append(h.subs,
		bus.Subscribe(ecs.SignalPlayStart, func(ecs.Event) { h.started = true }),
		bus.Subscribe(ecs.SignalGamePaused, func(ecs.Event) { h.paused = true }),
		bus.Subscribe(ecs.SignalGameResumed, func(ecs.Event) { h.paused = false }),
		bus.Subscribe(ecs.SignalGameOver, func(ecs.Event) { h.over = true }),
	)
	return h
}

// LoseHeart removes one heart and emits GameOver when none are left.
func (h *HUD) LoseHeart() {
	if h.hearts <= 0 {
		return
	}
	h.hearts--
	log.Printf("ui: heart lost, %d left", h.hearts)
	if h.hearts == 0 {
		h.bus.Emit(ecs.SignalGameOver, nil)
	}
}

// Update accumulates mileage while a run is in progress.
func (h *HUD) Update(_ *ecs.World, dt float64) {
	if !h.started || h.paused || h.over {
		return
	}
	h.mileage += h.scrollSpeed * dt * h.stepsMultiplier
}

func (h *HUD) Hearts() int { return h.hearts }
func (h *HUD) Mileage() float64 { return h.mileage }
func (h *HUD) Over() bool { return h.over }

func (h *HUD) StepsText() string {
	return fmt.Sprintf("%.0f steps", h.mileage)
}

func (h *HUD) Draw(screen *ebiten.Image) {
	const size, gap, margin = 18.0, 6.0, 16.0
	for i := 0; i < h.maxHearts; i++ {
		clr := heartColor
		if i >= h.hearts {
			clr = heartEmptyColor
		}
		x := margin + float64(i)*(size+gap)
		vector.FillRect(screen, float32(x), float32(margin), size, size, clr, false)
	}

	steps := h.StepsText()
	drawText(screen, steps, common.BaseWidth-margin-textWidth(steps, 2), margin, 2, textColor)

	if h.over {
		msg := "Game over"
		drawText(screen, msg, (common.BaseWidth-textWidth(msg, 4))/2, common.BaseHeight/3, 4, textColor)
	}
}

func (h *HUD) Close() {
	h.subs.Close()
}
