package fox

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/foxrun/component"
	"github.com/milk9111/foxrun/prefabs"
)

// Red foxes run straight through and dash past the player once in range.
type Red struct{}

func NewRed(*prefabs.FoxSpec) (Strategy, error) {
	return &Red{}, nil
}

func (r *Red) Move(f *Fox, _ Tick) {
	speed := f.RunSpeed()
	if f.HasAttacked() {
		speed += f.Spec().LungeX
	}
	v := f.Body().Velocity()
	f.Body().SetVelocity(cp.Vector{X: speed, Y: v.Y})
}

func (r *Red) Attack(f *Fox, _ Tick) {
	f.Body().ApplyImpulse(cp.Vector{X: f.Spec().LungeX, Y: f.Spec().LungeY})
}

// Brown foxes run in the foreground and jump when they get close.
type Brown struct {
	jumped bool
}

func NewBrown(*prefabs.FoxSpec) (Strategy, error) {
	return &Brown{}, nil
}

func (b *Brown) Move(f *Fox, tick Tick) {
	v := f.Body().Velocity()
	if !f.Grounded() {
		return
	}
	v.X = f.RunSpeed()

	near := math.Abs(tick.PlayerX-f.X()) < f.Spec().JumpDistance
	if f.State() == component.StateRunning && (tick.Trigger || (near && !b.jumped)) {
		b.jumped = true
		v.Y = f.Spec().JumpImpulse
	}
	f.Body().SetVelocity(v)
}

// Attack pounces forward and up.
func (b *Brown) Attack(f *Fox, _ Tick) {
	f.Body().ApplyImpulse(cp.Vector{X: f.Spec().LungeX, Y: f.Spec().LungeY})
}
