package fox

import (
	"math"

	"github.com/milk9111/foxrun/component"
	"github.com/milk9111/foxrun/ecs"
	"github.com/milk9111/foxrun/prefabs"
)

// Tick is the per-frame context handed to every fox.
type Tick struct {
	// PlayerX is the player's x-position sampled once at the start of the
	// frame.
	PlayerX float64
	Dt      float64
	// Trigger is the debug jump key.
	Trigger bool
}

// Strategy is what makes one fox kind differ from another.
type Strategy interface {
	Move(f *Fox, tick Tick)
	Attack(f *Fox, tick Tick)
}

// Fox runs toward the player, attacks once when close and removes itself
// once it is past the dead zone.
type Fox struct {
	*component.Motor

	Entity ecs.Entity
	Kind   string

	world    *ecs.World
	spec     *prefabs.FoxSpec
	strategy Strategy
	animator *component.Animator
	driver   component.AnimationDriver
	release  func()

	hasAttacked bool
}

// New creates a fox. release, if set, is called once when the fox is
// destroyed and should take its body out of the simulation.
func New(w *ecs.World, body component.Body, spec *prefabs.FoxSpec, strategy Strategy, release func()) *Fox {
	return &Fox{
		Motor:    component.NewMotor(body),
		Entity:   w.CreateEntity(),
		Kind:     spec.Kind,
		world:    w,
		spec:     spec,
		strategy: strategy,
		animator: component.NewAnimator(prefabs.Clips(spec.Animations)...),
		release:  release,
	}
}

// Update culls the fox past the dead zone, otherwise refreshes its
// animation.
func (f *Fox) Update(dt float64) {
	if f.Destroyed() {
		return
	}
	if f.X() < f.spec.DeadZone {
		f.Destroy()
		return
	}

	state := f.Tick()
	f.SetVisiblyRunning(f.Grounded())
	f.driver.Apply(f.animator, state, f.Visible())
	f.animator.Update()
}

// FixedUpdate moves the fox and triggers its attack the first time it is
// within attack distance of the player.
func (f *Fox) FixedUpdate(tick Tick) {
	if f.Destroyed() {
		return
	}
	f.strategy.Move(f, tick)

	if f.hasAttacked || math.Abs(tick.PlayerX-f.X()) >= f.spec.AttackDistance {
		return
	}
	f.hasAttacked = true
	f.strategy.Attack(f, tick)
}

// Destroy removes the fox. Later ticks are no-ops.
func (f *Fox) Destroy() {
	if !f.world.DestroyEntity(f.Entity) {
		return
	}
	if f.release != nil {
		f.release()
	}
}

func (f *Fox) X() float64 {
	return f.Body().Position().X
}

func (f *Fox) RunSpeed() float64 { return f.spec.RunSpeed }
func (f *Fox) HasAttacked() bool { return f.hasAttacked }
func (f *Fox) Destroyed() bool { return !f.world.IsAlive(f.Entity) }
func (f *Fox) Spec() *prefabs.FoxSpec { return f.spec }
func (f *Fox) Animator() *component.Animator { return f.animator }
