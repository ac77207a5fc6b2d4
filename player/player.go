package player

import (
	"fmt"
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/foxrun/common"
	"github.com/milk9111/foxrun/component"
	"github.com/milk9111/foxrun/ecs"
	"github.com/milk9111/foxrun/prefabs"
)

// Display is the part of the HUD the player talks to.
type Display interface {
	LoseHeart()
}

// Player is the cat. It is the single player entity of a session.
type Player struct {
	*component.Motor

	Entity ecs.Entity

	world    *ecs.World
	display  Display
	animator *component.Animator
	driver   component.AnimationDriver

	acceleration   float64
	deceleration   float64
	topSpeed       float64
	jumpForce      float64
	fallMultiplier float64
	baseGravity    float64

	direction   int
	jumpInput   bool
	pendingJump bool
	facing      int

	invincible bool
	flash      component.Flash
	alpha      float64

	gate    component.Gate
	started bool

	subs ecs.Subscriptions
}

// New creates the player over body. The body's gravity scale at this point is
// kept as the baseline restored whenever the player is not falling.
func New(w *ecs.World, body component.Body, spec *prefabs.PlayerSpec, display Display) (*Player, error) {
	if w == nil || body == nil || spec == nil {
		return nil, fmt.Errorf("player: new: missing world, body or spec")
	}
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("player: new: %w", err)
	}

	p := &Player{
		Motor:          component.NewMotor(body),
		Entity:         w.CreateEntity(),
		world:          w,
		display:        display,
		animator:       component.NewAnimator(prefabs.Clips(spec.Animations)...),
		acceleration:   spec.Acceleration,
		deceleration:   spec.Deceleration,
		topSpeed:       spec.TopSpeed,
		jumpForce:      spec.JumpForce,
		fallMultiplier: spec.FallGravityMultiplier,
		baseGravity:    body.GravityScale(),
		facing:         1,
		alpha:          1,
	}
	p.flash = component.Flash{
		Count:    spec.Flash.Count,
		Duration: spec.Flash.FlickDuration,
		Alpha:    spec.Flash.Alpha,
		OnPhase:  func(alpha float64) { p.alpha = alpha },
	}

	events := component.NewAnimationEventMap()
	events.Add(spec.JumpKeyframe, component.AnimationEvent{Type: component.AnimationEventJump})
	emitter := &component.AnimationEventEmitter{Handlers: []component.AnimationEventHandler{component.JumpKeyframeHandler(p.Motor)}}
	component.BindAnimationEvents(p.animator.Clip(component.ClipJump), events, emitter)
	p.Motor.OnJumpKeyframe(p.jump)

	p.subs = append(p.subs, w.Bus().Subscribe(ecs.SignalFoxHitsPlayer, func(ecs.Event) { p.Hit() }))
	return p, nil
}

// SetInput stores this frame's direction (-1, 0, 1) and jump request.
func (p *Player) SetInput(direction int, jump bool) {
	if direction > 1 {
		direction = 1
	} else if direction < -1 {
		direction = -1
	}
	p.direction = direction
	p.jumpInput = jump
}

// Update runs once per rendered frame.
func (p *Player) Update(_ *ecs.World, dt float64) {
	if p.Destroyed() {
		return
	}

	if p.gate.Advance(p.direction) {
		p.started = true
		p.world.Bus().Emit(ecs.SignalPlayStart, nil)
	}
	if p.direction != 0 {
		p.facing = p.direction
	}

	if p.jumpInput && p.Grounded() && !p.pendingJump {
		p.pendingJump = true
		// A finished jump clip never reaches its keyframe again.
		if jump := p.animator.Clip(component.ClipJump); jump == p.animator.Current() {
			jump.Reset()
		}
	}
	p.jumpInput = false

	state := p.Tick()
	p.SetVisiblyRunning(p.direction != 0)
	p.SetVisiblyJumping(p.pendingJump || state == component.StateJumping)
	p.driver.Apply(p.animator, state, p.Visible())
	p.animator.Update()

	if p.IsFalling() {
		p.Body().SetGravityScale(p.baseGravity * p.fallMultiplier)
	} else {
		p.Body().SetGravityScale(p.baseGravity)
	}

	if p.flash.Advance(dt) {
		p.invincible = false
		p.alpha = 1
		p.world.Bus().Emit(ecs.SignalPlayerVulnerable, nil)
	}
}

// FixedUpdate runs once per physics step.
func (p *Player) FixedUpdate(_ *ecs.World, _ float64) {
	if p.Destroyed() {
		return
	}
	p.HandleRunInput(p.direction)

	v := p.Body().Velocity()
	if p.started && p.direction == 0 && p.Grounded() && math.Abs(v.X) <= component.RunThreshold {
		p.Body().SetVelocity(cp.Vector{X: 0, Y: v.Y})
	}
}

// HandleRunInput pushes the body toward direction × top speed. The pull is
// stronger when stopping than when speeding up.
func (p *Player) HandleRunInput(direction int) {
	target := float64(direction) * p.topSpeed
	diff := target - p.Body().Velocity().X
	force := math.Abs(diff) * p.RunRate(target) * common.Sign(diff)
	p.Body().ApplyForce(cp.Vector{X: force})
}

// RunRate returns the acceleration for a nonzero target speed and the
// deceleration otherwise.
func (p *Player) RunRate(target float64) float64 {
	if math.Abs(target) > 0.01 {
		return p.acceleration
	}
	return p.deceleration
}

// Hit handles a fox hit. Hits while invincible are ignored.
func (p *Player) Hit() {
	if p.invincible || p.Destroyed() {
		return
	}
	p.invincible = true
	p.world.Bus().Emit(ecs.SignalPlayerInvincible, nil)
	if p.display != nil {
		p.display.LoseHeart()
	}
	p.flash.Start()
}

func (p *Player) jump() {
	if !p.pendingJump || p.Destroyed() {
		return
	}
	p.pendingJump = false
	p.Body().ApplyImpulse(cp.Vector{Y: p.jumpForce})
}

// Destroy stops pending sequences and releases bus subscriptions.
func (p *Player) Destroy() {
	if !p.world.DestroyEntity(p.Entity) {
		return
	}
	p.flash.Cancel()
	p.gate.Cancel()
	p.subs.Close()
	p.alpha = 1
}

func (p *Player) X() float64 {
	return p.Body().Position().X
}

func (p *Player) Invincible() bool { return p.invincible }
func (p *Player) Started() bool { return p.started }
func (p *Player) Destroyed() bool { return !p.world.IsAlive(p.Entity) }
func (p *Player) Alpha() float64 { return p.alpha }
func (p *Player) Facing() int { return p.facing }
func (p *Player) PendingJump() bool { return p.pendingJump }
func (p *Player) Animator() *component.Animator { return p.animator }
