package player

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/foxrun/ecs"
	"github.com/milk9111/foxrun/prefabs"
)

type fakeBody struct {
	vel      cp.Vector
	pos      cp.Vector
	gravity  float64
	forces   []cp.Vector
	impulses []cp.Vector
}

func (b *fakeBody) Position() cp.Vector { return b.pos }
func (b *fakeBody) Velocity() cp.Vector { return b.vel }
func (b *fakeBody) SetVelocity(v cp.Vector) { b.vel = v }
func (b *fakeBody) ApplyForce(f cp.Vector) { b.forces = append(b.forces, f) }
func (b *fakeBody) GravityScale() float64 { return b.gravity }
func (b *fakeBody) SetGravityScale(s float64) { b.gravity = s }

func (b *fakeBody) ApplyImpulse(j cp.Vector) {
	b.impulses = append(b.impulses, j)
	b.vel = b.vel.Add(j)
}

type hearts struct{ lost int }

func (h *hearts) LoseHeart() { h.lost++ }

func testSpec() *prefabs.PlayerSpec {
	return &prefabs.PlayerSpec{
		Acceleration:          4,
		Deceleration:          10,
		TopSpeed:              3,
		JumpForce:             6,
		FallGravityMultiplier: 2,
		JumpKeyframe:          1,
		Lives:                 9,
		Flash:                 prefabs.FlashSpec{Count: 5, FlickDuration: 0.1, Alpha: 0.5},
		Animations: map[string]prefabs.AnimationDefSpec{
			"jump": {FrameCount: 4, FPS: 12},
			"run":  {FrameCount: 6, FPS: 12, Loop: true},
		},
		Skins: make([]prefabs.SkinSpec, prefabs.SkinCount),
	}
}

type fixture struct {
	world  *ecs.World
	body   *fakeBody
	hearts *hearts
	player *Player
	counts map[ecs.Signal]int
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		world:  ecs.NewWorld(),
		body:   &fakeBody{gravity: 1},
		hearts: &hearts{},
		counts: make(map[ecs.Signal]int),
	}
	for _, sig := range []ecs.Signal{ecs.SignalPlayerInvincible, ecs.SignalPlayerVulnerable, ecs.SignalPlayStart} {
		sig := sig
		f.world.Bus().Subscribe(sig, func(ecs.Event) { f.counts[sig]++ })
	}
	p, err := New(f.world, f.body, testSpec(), f.hearts)
	if err != nil {
		t.Fatalf("new player: %v", err)
	}
	f.player = p
	return f
}

func TestNewRejectsInvalidSpec(t *testing.T) {
	spec := testSpec()
	spec.FallGravityMultiplier = 6
	if _, err := New(ecs.NewWorld(), &fakeBody{gravity: 1}, spec, nil); err == nil {
		t.Fatalf("expected error for fall multiplier outside [1,5]")
	}
}

func TestHandleRunInputRates(t *testing.T) {
	tests := []struct {
		name      string
		vx        float64
		direction int
		want      float64
	}{
		{name: "stop uses deceleration", vx: 2, direction: 0, want: -20},
		{name: "stop from left", vx: -1, direction: 0, want: 10},
		{name: "start uses acceleration", vx: 0, direction: 1, want: 12},
		{name: "reverse", vx: 3, direction: -1, want: -24},
		{name: "at top speed", vx: 3, direction: 1, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.body.vel = cp.Vector{X: tt.vx}
			f.player.HandleRunInput(tt.direction)
			if len(f.body.forces) != 1 {
				t.Fatalf("expected one force, got %d", len(f.body.forces))
			}
			if got := f.body.forces[0].X; got != tt.want {
				t.Fatalf("force = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRunRate(t *testing.T) {
	f := newFixture(t)
	if r := f.player.RunRate(0); r != 10 {
		t.Fatalf("rate for zero target = %v, want deceleration", r)
	}
	if r := f.player.RunRate(0.005); r != 10 {
		t.Fatalf("rate for tiny target = %v, want deceleration", r)
	}
	if r := f.player.RunRate(-3); r != 4 {
		t.Fatalf("rate for moving target = %v, want acceleration", r)
	}
}

func TestFlashSequence(t *testing.T) {
	f := newFixture(t)
	phases := 0
	onPhase := f.player.flash.OnPhase
	f.player.flash.OnPhase = func(alpha float64) {
		phases++
		onPhase(alpha)
	}

	f.player.Hit()
	if !f.player.Invincible() || f.player.Alpha() != 0.5 {
		t.Fatalf("expected invincible flash at alpha 0.5, got invincible=%v alpha=%v", f.player.Invincible(), f.player.Alpha())
	}

	for i := 0; i < 40; i++ {
		f.player.Update(f.world, 0.05)
	}

	if phases != 10 {
		t.Fatalf("expected 10 phase changes, got %d", phases)
	}
	if f.counts[ecs.SignalPlayerInvincible] != 1 || f.counts[ecs.SignalPlayerVulnerable] != 1 {
		t.Fatalf("unexpected signal counts: %v", f.counts)
	}
	if f.player.Invincible() || f.player.Alpha() != 1 {
		t.Fatalf("expected vulnerable and opaque after sequence")
	}
	if f.hearts.lost != 1 {
		t.Fatalf("expected one heart lost, got %d", f.hearts.lost)
	}
}

func TestHitWhileInvincibleIsNoop(t *testing.T) {
	f := newFixture(t)
	f.world.Bus().Emit(ecs.SignalFoxHitsPlayer, nil)
	f.player.Update(f.world, 0.05)
	f.world.Bus().Emit(ecs.SignalFoxHitsPlayer, nil)
	f.player.Hit()

	if f.counts[ecs.SignalPlayerInvincible] != 1 {
		t.Fatalf("expected one PlayerInvincible, got %d", f.counts[ecs.SignalPlayerInvincible])
	}
	if f.hearts.lost != 1 {
		t.Fatalf("expected one heart lost, got %d", f.hearts.lost)
	}
}

func TestJumpImpulseOnKeyframe(t *testing.T) {
	f := newFixture(t)
	f.player.SetInput(0, true)
	f.player.Update(f.world, 1.0/60)
	if !f.player.PendingJump() {
		t.Fatalf("expected pending jump")
	}
	if len(f.body.impulses) != 0 {
		t.Fatalf("impulse applied before keyframe")
	}

	for i := 0; i < 30; i++ {
		f.player.Update(f.world, 1.0/60)
	}

	if len(f.body.impulses) != 1 || f.body.impulses[0].Y != 6 {
		t.Fatalf("expected one upward impulse of 6, got %v", f.body.impulses)
	}
	if f.player.PendingJump() {
		t.Fatalf("pending jump should be consumed")
	}
}

func TestNoJumpInAir(t *testing.T) {
	f := newFixture(t)
	f.player.OnCollisionBegin()
	f.player.OnCollisionEnd()

	f.player.SetInput(0, true)
	for i := 0; i < 30; i++ {
		f.player.Update(f.world, 1.0/60)
	}
	if len(f.body.impulses) != 0 {
		t.Fatalf("jumped while airborne")
	}
}

func TestFallGravity(t *testing.T) {
	f := newFixture(t)
	f.body.vel = cp.Vector{Y: -1}
	f.player.Update(f.world, 1.0/60)
	if f.body.gravity != 2 {
		t.Fatalf("falling gravity scale = %v, want 2", f.body.gravity)
	}

	f.body.vel = cp.Vector{}
	f.player.Update(f.world, 1.0/60)
	if f.body.gravity != 1 {
		t.Fatalf("baseline gravity scale = %v, want 1", f.body.gravity)
	}
}

func TestPlayStartOnce(t *testing.T) {
	f := newFixture(t)
	f.player.Update(f.world, 1.0/60)
	if f.player.Started() {
		t.Fatalf("started without input")
	}

	f.player.SetInput(-1, false)
	f.player.Update(f.world, 1.0/60)
	f.player.SetInput(1, false)
	f.player.Update(f.world, 1.0/60)

	if f.counts[ecs.SignalPlayStart] != 1 || !f.player.Started() {
		t.Fatalf("expected one PlayStart, got %d", f.counts[ecs.SignalPlayStart])
	}
	if f.player.Facing() != 1 {
		t.Fatalf("expected facing right, got %d", f.player.Facing())
	}
}

func TestIdleSnapAfterStart(t *testing.T) {
	f := newFixture(t)
	f.body.vel = cp.Vector{X: 0.05}
	f.player.FixedUpdate(f.world, 1.0/60)
	if f.body.vel.X != 0.05 {
		t.Fatalf("snapped before the game started")
	}

	f.player.SetInput(1, false)
	f.player.Update(f.world, 1.0/60)
	f.player.SetInput(0, false)
	f.body.vel = cp.Vector{X: 0.05, Y: 0}
	f.player.FixedUpdate(f.world, 1.0/60)
	if f.body.vel.X != 0 {
		t.Fatalf("expected horizontal velocity zeroed, got %v", f.body.vel.X)
	}
}

func TestDestroyCancelsSequences(t *testing.T) {
	f := newFixture(t)
	f.player.Hit()
	f.player.Destroy()
	f.player.Destroy()

	for i := 0; i < 40; i++ {
		f.player.Update(f.world, 0.05)
	}
	f.world.Bus().Emit(ecs.SignalFoxHitsPlayer, nil)

	if f.counts[ecs.SignalPlayerVulnerable] != 0 {
		t.Fatalf("flash completed after destroy")
	}
	if f.counts[ecs.SignalPlayerInvincible] != 1 {
		t.Fatalf("hit handled after destroy")
	}
	if f.world.IsAlive(f.player.Entity) {
		t.Fatalf("entity still alive")
	}
	if f.world.Bus().Count(ecs.SignalFoxHitsPlayer) != 0 {
		t.Fatalf("subscription not released")
	}
}

func TestJumpAgainAfterJumpClipFinished(t *testing.T) {
	f := newFixture(t)
	// Grounded while still moving up selects the jump clip without a jump
	// pending, so the clip plays out with nothing to launch.
	f.body.vel = cp.Vector{Y: 1}
	for i := 0; i < 40; i++ {
		f.player.Update(f.world, 1.0/60)
	}
	if !f.player.Animator().Current().Finished() {
		t.Fatalf("expected the jump clip to have finished")
	}

	f.player.SetInput(0, true)
	for i := 0; i < 10; i++ {
		f.player.Update(f.world, 1.0/60)
	}
	if len(f.body.impulses) != 1 {
		t.Fatalf("expected one jump impulse, got %v", f.body.impulses)
	}
	if f.player.PendingJump() {
		t.Fatalf("pending jump should be consumed")
	}
}
