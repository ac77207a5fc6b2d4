package component

import (
	"math"

	"github.com/jakecoffman/cp"
)

// MovementState is the animation-relevant phase of a character.
type MovementState int

const (
	// StateNone means no state has been derived yet.
	StateNone MovementState = iota
	StateIdle
	StateRunning
	StateJumping
	StateFalling
)

// Velocity thresholds. Nonzero so that solver noise does not flicker the
// animation between states.
const (
	JumpThreshold = 0.01
	FallThreshold = -0.1
	RunThreshold  = 0.1
)

func (s MovementState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateJumping:
		return "jumping"
	case StateFalling:
		return "falling"
	}
	return "none"
}

// Derive maps physics signals to exactly one state.
// Precedence: jumping > falling > running > idle.
func Derive(grounded bool, v cp.Vector) MovementState {
	switch {
	case v.Y > JumpThreshold:
		return StateJumping
	case v.Y < FallThreshold:
		return StateFalling
	case grounded && math.Abs(v.X) > RunThreshold:
		return StateRunning
	}
	return StateIdle
}
