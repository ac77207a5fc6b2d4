package ui

import (
	"testing"

	"github.com/milk9111/foxrun/ecs"
)

func TestHUDLosesHeartsUntilGameOver(t *testing.T) {
	bus := ecs.NewBus()
	overs := 0
	bus.Subscribe(ecs.SignalGameOver, func(ecs.Event) { overs++ })

	h := NewHUD(bus, 9, 3, 3)
	for i := 0; i < 8; i++ {
		h.LoseHeart()
	}
	if h.Hearts() != 1 || overs != 0 {
		t.Fatalf("hearts=%d overs=%d", h.Hearts(), overs)
	}

	h.LoseHeart()
	h.LoseHeart()
	if h.Hearts() != 0 || overs != 1 || !h.Over() {
		t.Fatalf("expected a single game over, hearts=%d overs=%d", h.Hearts(), overs)
	}
}

func TestHUDMileage(t *testing.T) {
	bus := ecs.NewBus()
	h := NewHUD(bus, 9, 3, 3)

	h.Update(nil, 1)
	if h.Mileage() != 0 {
		t.Fatalf("mileage counted before play start")
	}

	bus.Emit(ecs.SignalPlayStart, nil)
	h.Update(nil, 0.5)
	if h.Mileage() != 4.5 {
		t.Fatalf("mileage = %v, want 4.5", h.Mileage())
	}
	if got := h.StepsText(); got != "4 steps" && got != "5 steps" {
		t.Fatalf("steps text = %q", got)
	}

	bus.Emit(ecs.SignalGamePaused, nil)
	h.Update(nil, 1)
	bus.Emit(ecs.SignalGameResumed, nil)
	h.Update(nil, 1)
	if h.Mileage() != 13.5 {
		t.Fatalf("mileage = %v, want 13.5", h.Mileage())
	}

	h.Close()
	bus.Emit(ecs.SignalGameOver, nil)
	if h.Over() {
		t.Fatalf("closed HUD still listening")
	}
}

func TestTutorialText(t *testing.T) {
	bus := ecs.NewBus()
	tut := NewTutorial(bus, map[string]string{
		"red":   "Red foxes run straight through . . .",
		"brown": "Brown foxes jump when they are ready . . .",
	})

	if tut.Text() != "" {
		t.Fatalf("visible before any action")
	}

	bus.Emit(ecs.SignalTutorialSkulkAction, ecs.TutorialSkulk{Kind: "red", Active: true})
	if tut.Text() != "Red foxes run straight through . . ." {
		t.Fatalf("text = %q", tut.Text())
	}
	bus.Emit(ecs.SignalTutorialSkulkAction, ecs.TutorialSkulk{Kind: "red"})
	if tut.Text() != "" {
		t.Fatalf("expected hidden after the fox is gone")
	}

	bus.Emit(ecs.SignalTutorialSkulkAction, ecs.TutorialSkulk{Kind: "brown", Active: true})
	bus.Emit(ecs.SignalCompleteTutorialSkulks, nil)
	if tut.Text() != "" || !tut.Complete() {
		t.Fatalf("expected hidden and complete")
	}
}
