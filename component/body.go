package component

import "github.com/jakecoffman/cp"

// Body is the physics surface a character drives. World space, Y up.
type Body interface {
	Position() cp.Vector
	Velocity() cp.Vector
	SetVelocity(v cp.Vector)
	ApplyForce(f cp.Vector)
	ApplyImpulse(j cp.Vector)
	GravityScale() float64
	SetGravityScale(scale float64)
}
