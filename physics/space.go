package physics

import (
	"log"
	"math"

	"github.com/jakecoffman/cp"
)

const (
	collisionTypeGround cp.CollisionType = iota + 1
	collisionTypePlayer
	collisionTypeFox
)

// Role selects how a character shape collides.
type Role int

const (
	RolePlayer Role = iota
	RoleFox
)

func (r Role) String() string {
	if r == RoleFox {
		return "fox"
	}
	return "player"
}

// ContactListener receives ground contact changes. Only contacts with
// shapes added through AddGround are reported.
type ContactListener interface {
	OnCollisionBegin()
	OnCollisionEnd()
}

// HitFunc is called when a fox shape starts touching the player shape.
type HitFunc func(fox, player *Body)

// Space owns the Chipmunk space, the ground and every character body.
type Space struct {
	space         *cp.Space
	handlersReady bool

	shapeToBody map[*cp.Shape]*Body
	onHit       HitFunc
}

// NewSpace creates a space with gravity along Y (negative pulls down).
func NewSpace(gravity float64) *Space {
	space := cp.NewSpace()
	space.Iterations = 10
	space.SetGravity(cp.Vector{X: 0, Y: gravity})

	s := &Space{
		space:       space,
		shapeToBody: make(map[*cp.Shape]*Body),
	}
	s.setupHandlers()
	return s
}

// Space returns the underlying Chipmunk space.
func (s *Space) Space() *cp.Space {
	if s == nil {
		return nil
	}
	return s.space
}

// OnHit sets the fox-hits-player callback.
func (s *Space) OnHit(fn HitFunc) {
	s.onHit = fn
}

// AddGround adds a static ground segment at height y.
func (s *Space) AddGround(left, right, y float64) {
	shape := cp.NewSegment(s.space.StaticBody, cp.Vector{X: left, Y: y}, cp.Vector{X: right, Y: y}, 0.05)
	shape.SetFriction(0.8)
	shape.SetCollisionType(collisionTypeGround)
	s.space.AddShape(shape)
}

// AddCharacter creates a non-rotating box body centered at pos.
func (s *Space) AddCharacter(role Role, pos cp.Vector, width, height, mass float64) *Body {
	if mass <= 0 {
		mass = 1
	}
	cpBody := cp.NewBody(mass, math.Inf(1))
	cpBody.SetPosition(pos)

	shape := cp.NewBox(cpBody, width, height, 0)
	shape.SetFriction(0)
	if role == RoleFox {
		shape.SetCollisionType(collisionTypeFox)
	} else {
		shape.SetCollisionType(collisionTypePlayer)
	}

	b := &Body{
		space:        s,
		body:         cpBody,
		shape:        shape,
		role:         role,
		width:        width,
		height:       height,
		gravityScale: 1,
	}
	cpBody.SetVelocityUpdateFunc(func(body *cp.Body, gravity cp.Vector, damping float64, dt float64) {
		cp.BodyUpdateVelocity(body, gravity.Mult(b.gravityScale), damping, dt)
	})

	s.space.AddBody(cpBody)
	s.space.AddShape(shape)
	s.shapeToBody[shape] = b
	return b
}

// Remove takes a body out of the simulation. Must not be called while the
// space is stepping.
func (s *Space) Remove(b *Body) {
	if s == nil || b == nil || b.removed {
		return
	}
	b.removed = true
	delete(s.shapeToBody, b.shape)
	s.space.RemoveShape(b.shape)
	s.space.RemoveBody(b.body)
}

// Len returns the number of live character bodies.
func (s *Space) Len() int {
	return len(s.shapeToBody)
}

// Step advances the simulation.
func (s *Space) Step(dt float64) {
	if s == nil || s.space == nil {
		return
	}
	s.space.Step(dt)
}

// BodyOf returns the character body owning shape, or nil for ground.
func (s *Space) BodyOf(shape *cp.Shape) *Body {
	return s.shapeToBody[shape]
}

func (s *Space) setupHandlers() {
	if s.handlersReady {
		return
	}

	for _, ct := range []cp.CollisionType{collisionTypePlayer, collisionTypeFox} {
		ground := s.space.NewCollisionHandler(ct, collisionTypeGround)
		ground.UserData = s
		ground.BeginFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
			if b := characterOf(arb, userData); b != nil && b.listener != nil {
				b.listener.OnCollisionBegin()
			}
			return true
		}
		ground.SeparateFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) {
			if b := characterOf(arb, userData); b != nil && b.listener != nil {
				b.listener.OnCollisionEnd()
			}
		}
	}

	hits := s.space.NewCollisionHandler(collisionTypeFox, collisionTypePlayer)
	hits.UserData = s
	hits.BeginFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		world, ok := userData.(*Space)
		if !ok || world == nil {
			return false
		}
		shapeA, shapeB := arb.Shapes()
		fox, player := world.BodyOf(shapeA), world.BodyOf(shapeB)
		if fox != nil && fox.role == RolePlayer {
			fox, player = player, fox
		}
		if fox == nil || player == nil {
			log.Printf("physics: fox/player contact with unknown shape")
			return false
		}
		if world.onHit != nil {
			world.onHit(fox, player)
		}
		// foxes pass through the cat; the hit is a signal, not a shove
		return false
	}

	packs := s.space.NewCollisionHandler(collisionTypeFox, collisionTypeFox)
	packs.BeginFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		return false
	}

	s.handlersReady = true
}

func characterOf(arb *cp.Arbiter, userData interface{}) *Body {
	world, ok := userData.(*Space)
	if !ok || world == nil {
		return nil
	}
	shapeA, shapeB := arb.Shapes()
	if b := world.BodyOf(shapeA); b != nil {
		return b
	}
	return world.BodyOf(shapeB)
}
