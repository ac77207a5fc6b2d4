package component

import (
	"math"

	"github.com/jakecoffman/cp"
)

// VisibleFlags are intent driven animation flags, set by the owner of a
// motor independently of the physics derived state.
type VisibleFlags struct {
	Running bool
	Jumping bool
}

// Motor owns grounded tracking and movement state derivation for one
// character. Player and fox types embed one and add their own strategy.
type Motor struct {
	body     Body
	grounded bool
	contacts int
	visible  VisibleFlags
	state    MovementState

	onJumpKeyframe func()
}

// NewMotor creates a motor over body. Characters spawn grounded.
func NewMotor(body Body) *Motor {
	return &Motor{body: body, grounded: true}
}

func (m *Motor) Body() Body {
	return m.body
}

// Tick recomputes the movement state from the current body velocity.
func (m *Motor) Tick() MovementState {
	if m == nil || m.body == nil {
		return StateNone
	}
	m.state = Derive(m.grounded, m.body.Velocity())
	return m.state
}

func (m *Motor) State() MovementState {
	return m.state
}

func (m *Motor) Grounded() bool {
	return m.grounded
}

// OnCollisionBegin is called when the character starts touching ground.
func (m *Motor) OnCollisionBegin() {
	m.contacts++
	m.grounded = true
}

// OnCollisionEnd is called when the character stops touching a ground shape.
func (m *Motor) OnCollisionEnd() {
	if m.contacts > 0 {
		m.contacts--
	}
	m.grounded = m.contacts > 0
}

func (m *Motor) IsJumping() bool {
	return m.velocity().Y > JumpThreshold
}

func (m *Motor) IsFalling() bool {
	return m.velocity().Y < FallThreshold
}

func (m *Motor) IsRunning() bool {
	return m.grounded && math.Abs(m.velocity().X) > RunThreshold
}

func (m *Motor) SetVisiblyRunning(v bool) { m.visible.Running = v }
func (m *Motor) SetVisiblyJumping(v bool) { m.visible.Jumping = v }

func (m *Motor) Visible() VisibleFlags {
	return m.visible
}

// OnJumpKeyframe sets the hook run when the jump clip reaches its keyframe.
func (m *Motor) OnJumpKeyframe(fn func()) {
	m.onJumpKeyframe = fn
}

// JumpKeyframe runs the jump keyframe hook, if any.
func (m *Motor) JumpKeyframe() {
	if m != nil && m.onJumpKeyframe != nil {
		m.onJumpKeyframe()
	}
}

func (m *Motor) velocity() cp.Vector {
	if m == nil || m.body == nil {
		return cp.Vector{}
	}
	return m.body.Velocity()
}
