package physics

import "github.com/jakecoffman/cp"

// Body adapts a Chipmunk body to component.Body.
type Body struct {
	space    *Space
	body     *cp.Body
	shape    *cp.Shape
	role     Role
	listener ContactListener
	removed  bool

	width, height float64
	gravityScale  float64

	// Owner is opaque user data, typically the character driving the body.
	Owner any
}

// SetContactListener routes ground contacts of this body to l.
func (b *Body) SetContactListener(l ContactListener) {
	b.listener = l
}

func (b *Body) Role() Role {
	return b.role
}

func (b *Body) Position() cp.Vector {
	return b.body.Position()
}

// SetPosition teleports the body.
func (b *Body) SetPosition(p cp.Vector) {
	b.body.SetPosition(p)
}

func (b *Body) Velocity() cp.Vector {
	return b.body.Velocity()
}

func (b *Body) SetVelocity(v cp.Vector) {
	b.body.SetVelocityVector(v)
}

// ApplyForce applies a continuous force at the center of mass for the
// next step.
func (b *Body) ApplyForce(f cp.Vector) {
	b.body.ApplyForceAtWorldPoint(f, b.body.Position())
}

// ApplyImpulse changes momentum immediately.
func (b *Body) ApplyImpulse(j cp.Vector) {
	b.body.ApplyImpulseAtWorldPoint(j, b.body.Position())
}

func (b *Body) GravityScale() float64 {
	return b.gravityScale
}

func (b *Body) SetGravityScale(scale float64) {
	b.gravityScale = scale
}

func (b *Body) Mass() float64 {
	return b.body.Mass()
}

// Size returns the collider width and height.
func (b *Body) Size() (float64, float64) {
	return b.width, b.height
}

// Removed reports whether the body has left the space.
func (b *Body) Removed() bool {
	return b.removed
}
