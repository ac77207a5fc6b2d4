package input

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Intent is the input of one frame.
type Intent struct {
	// Direction is -1 for left, 0 for none, +1 for right.
	Direction int
	// Jump is true on the frame a jump was requested.
	Jump bool
	// Trigger is true while the debug fox jump key is held.
	Trigger bool
	// Pause is true on the frame pause was toggled.
	Pause bool
}

// Source produces one Intent per frame.
type Source interface {
	Sample() Intent
}

// Ebiten samples keyboard, gamepad and touch input.
type Ebiten struct {
	touches  *Touches
	touchIDs []ebiten.TouchID
	points   []TouchPoint
}

// NewEbiten creates a source for a screen width wide. An upward swipe of
// more than swipeThreshold pixels is a jump.
func NewEbiten(width, swipeThreshold float64) *Ebiten {
	return &Ebiten{touches: NewTouches(width, swipeThreshold)}
}

func (e *Ebiten) Sample() Intent {
	var in Intent

	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		in.Direction--
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		in.Direction++
	}
	in.Jump = inpututil.IsKeyJustPressed(ebiten.KeySpace) ||
		inpututil.IsKeyJustPressed(ebiten.KeyW) ||
		inpututil.IsKeyJustPressed(ebiten.KeyArrowUp)
	in.Trigger = ebiten.IsKeyPressed(ebiten.KeyF)
	in.Pause = inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyP)

	if ids := ebiten.GamepadIDs(); len(ids) > 0 {
		id := ids[0]
		leftX := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
		if leftX < -0.3 {
			in.Direction = -1
		} else if leftX > 0.3 {
			in.Direction = 1
		}
		in.Jump = in.Jump || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonRightBottom)
		in.Pause = in.Pause || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonCenterRight)
	}

	e.touchIDs = ebiten.AppendTouchIDs(e.touchIDs[:0])
	e.points = e.points[:0]
	for _, id := range e.touchIDs {
		x, y := ebiten.TouchPosition(id)
		e.points = append(e.points, TouchPoint{ID: int(id), X: float64(x), Y: float64(y)})
	}
	dir, jump, touching := e.touches.Update(e.points)
	if touching || e.touches.Released() {
		in.Direction = dir
	}
	in.Jump = in.Jump || jump

	if in.Direction > 1 {
		in.Direction = 1
	} else if in.Direction < -1 {
		in.Direction = -1
	}
	return in
}

// Script replays a fixed list of intents, one per frame, then repeats the
// last one.
type Script struct {
	Frames []Intent
	next   int
}

func (s *Script) Sample() Intent {
	if len(s.Frames) == 0 {
		return Intent{}
	}
	if s.next >= len(s.Frames) {
		return s.Frames[len(s.Frames)-1]
	}
	in := s.Frames[s.next]
	s.next++
	return in
}
