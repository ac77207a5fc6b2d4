package fox

import (
	"errors"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/foxrun/ecs"
	"github.com/milk9111/foxrun/physics"
	"github.com/milk9111/foxrun/prefabs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBody struct {
	vel      cp.Vector
	pos      cp.Vector
	gravity  float64
	impulses []cp.Vector
}

func (b *fakeBody) Position() cp.Vector { return b.pos }
func (b *fakeBody) Velocity() cp.Vector { return b.vel }
func (b *fakeBody) SetVelocity(v cp.Vector) { b.vel = v }
func (b *fakeBody) ApplyForce(cp.Vector) {}
func (b *fakeBody) GravityScale() float64 { return b.gravity }
func (b *fakeBody) SetGravityScale(s float64) { b.gravity = s }

func (b *fakeBody) ApplyImpulse(j cp.Vector) {
	b.impulses = append(b.impulses, j)
	b.vel = b.vel.Add(j)
}

type countingStrategy struct {
	moves, attacks int
}

func (s *countingStrategy) Move(*Fox, Tick) { s.moves++ }
func (s *countingStrategy) Attack(*Fox, Tick) { s.attacks++ }

func testSpec(kind string) *prefabs.FoxSpec {
	return &prefabs.FoxSpec{
		Kind:           kind,
		RunSpeed:       -3,
		DeadZone:       -4.5,
		AttackDistance: 1.5,
		LungeX:         -2,
		LungeY:         1,
		JumpDistance:   2.5,
		JumpImpulse:    5,
		Collider:       prefabs.ColliderSpec{Width: 0.7, Height: 0.5, Mass: 1},
	}
}

func TestAttackHappensOnce(t *testing.T) {
	w := ecs.NewWorld()
	body := &fakeBody{pos: cp.Vector{X: 4}}
	strategy := &countingStrategy{}
	f := New(w, body, testSpec("red"), strategy, nil)

	f.FixedUpdate(Tick{PlayerX: 0})
	assert.Equal(t, 0, strategy.attacks, "attacked out of range")

	body.pos.X = 1
	f.FixedUpdate(Tick{PlayerX: 0})
	f.FixedUpdate(Tick{PlayerX: 0})
	body.pos.X = 3
	f.FixedUpdate(Tick{PlayerX: 0})
	body.pos.X = -0.5
	f.FixedUpdate(Tick{PlayerX: 0})

	assert.Equal(t, 1, strategy.attacks)
	assert.Equal(t, 5, strategy.moves)
	assert.True(t, f.HasAttacked())
}

func TestAttackUsesSnapshot(t *testing.T) {
	w := ecs.NewWorld()
	body := &fakeBody{pos: cp.Vector{X: 2}}
	strategy := &countingStrategy{}
	f := New(w, body, testSpec("red"), strategy, nil)

	f.FixedUpdate(Tick{PlayerX: 0})
	assert.Equal(t, 0, strategy.attacks)
	f.FixedUpdate(Tick{PlayerX: 1})
	assert.Equal(t, 1, strategy.attacks)
}

func TestDeadZoneCulling(t *testing.T) {
	w := ecs.NewWorld()
	body := &fakeBody{pos: cp.Vector{X: -4.4}}
	strategy := &countingStrategy{}
	released := 0
	f := New(w, body, testSpec("red"), strategy, func() { released++ })

	f.Update(1.0 / 60)
	require.False(t, f.Destroyed())

	body.pos.X = -4.6
	f.Update(1.0 / 60)
	f.Update(1.0 / 60)
	f.FixedUpdate(Tick{PlayerX: -4.6})

	assert.True(t, f.Destroyed())
	assert.Equal(t, 1, released)
	assert.False(t, w.IsAlive(f.Entity))
	assert.Equal(t, 0, strategy.moves, "moved after destroy")
	assert.Equal(t, 0, strategy.attacks)
}

func TestRegistryRejectsMissingStrategy(t *testing.T) {
	r := NewRegistry()

	err := r.Register(testSpec("ghost"), nil)
	assert.ErrorIs(t, err, ErrMissingStrategy)

	err = r.Register(testSpec("hollow"), func(*prefabs.FoxSpec) (Strategy, error) { return nil, nil })
	assert.ErrorIs(t, err, ErrMissingStrategy)

	require.NoError(t, r.Register(testSpec("red"), NewRed))
	assert.Equal(t, []string{"red"}, r.Kinds())

	_, _, err = r.New("ghost")
	assert.True(t, errors.Is(err, ErrUnknownKind))
}

func TestRedRunsAndLunges(t *testing.T) {
	w := ecs.NewWorld()
	body := &fakeBody{pos: cp.Vector{X: 4}, vel: cp.Vector{Y: -0.5}}
	f := New(w, body, testSpec("red"), &Red{}, nil)

	f.FixedUpdate(Tick{})
	assert.Equal(t, cp.Vector{X: -3, Y: -0.5}, body.vel)

	body.pos.X = 1
	f.FixedUpdate(Tick{})
	require.Len(t, body.impulses, 1)
	assert.Equal(t, cp.Vector{X: -2, Y: 1}, body.impulses[0])

	f.FixedUpdate(Tick{})
	assert.Equal(t, -5.0, body.vel.X)
}

func TestBrownJumpsWhenClose(t *testing.T) {
	w := ecs.NewWorld()
	body := &fakeBody{pos: cp.Vector{X: 4}, vel: cp.Vector{X: -3}}
	f := New(w, body, testSpec("brown"), &Brown{}, nil)

	f.Update(1.0 / 60)
	f.FixedUpdate(Tick{PlayerX: 0})
	assert.Equal(t, 0.0, body.vel.Y, "jumped from afar")

	body.pos.X = 2
	f.FixedUpdate(Tick{PlayerX: 0})
	assert.Equal(t, 5.0, body.vel.Y)

	body.vel.Y = 0
	f.FixedUpdate(Tick{PlayerX: 0})
	assert.Equal(t, 0.0, body.vel.Y, "proximity jump repeated")

	f.FixedUpdate(Tick{PlayerX: 0, Trigger: true})
	assert.Equal(t, 5.0, body.vel.Y, "trigger jump ignored")
}

func TestBrownKeepsAirVelocity(t *testing.T) {
	w := ecs.NewWorld()
	body := &fakeBody{pos: cp.Vector{X: 4}, vel: cp.Vector{X: -1, Y: 2}}
	f := New(w, body, testSpec("brown"), &Brown{}, nil)
	f.OnCollisionBegin()
	f.OnCollisionEnd()

	f.FixedUpdate(Tick{Trigger: true})
	assert.Equal(t, cp.Vector{X: -1, Y: 2}, body.vel)
}

func TestGrayScriptSprints(t *testing.T) {
	spec := testSpec("gray")
	spec.RunSpeed = -2
	spec.LungeX = -3
	spec.LungeY = 0.5
	spec.Script = "gray_fox.tengo"

	factory, err := ScriptedFactory(spec)
	require.NoError(t, err)
	strategy, err := factory(spec)
	require.NoError(t, err)

	w := ecs.NewWorld()
	body := &fakeBody{pos: cp.Vector{X: 4.5}}
	f := New(w, body, spec, strategy, nil)

	f.FixedUpdate(Tick{PlayerX: 0})
	assert.InDelta(t, -2.0, body.vel.X, 1e-9)

	body.pos.X = 2
	f.FixedUpdate(Tick{PlayerX: 0})
	assert.InDelta(t, -5.0, body.vel.X, 1e-9)

	body.pos.X = 1
	f.FixedUpdate(Tick{PlayerX: 0})
	require.Len(t, body.impulses, 1)
	assert.InDelta(t, -3.0, body.impulses[0].X, 1e-9)
	assert.InDelta(t, 0.5, body.impulses[0].Y, 1e-9)
}

func TestScriptedFactoryNeedsScript(t *testing.T) {
	_, err := ScriptedFactory(testSpec("gray"))
	assert.ErrorIs(t, err, ErrMissingStrategy)
}

func TestLoadRegistry(t *testing.T) {
	r, err := LoadRegistry()
	require.NoError(t, err)
	assert.Equal(t, []string{"brown", "gray", "red"}, r.Kinds())
}

func TestPackCullsThroughPhysics(t *testing.T) {
	w := ecs.NewWorld()
	space := physics.NewSpace(-9.81)
	space.AddGround(-8, 8, -1.2)

	r := NewRegistry()
	require.NoError(t, r.Register(testSpec("red"), NewRed))
	pack := NewPack(w, space, r)

	f, err := pack.Spawn("red", cp.Vector{X: 4.5, Y: -0.875})
	require.NoError(t, err)
	assert.Equal(t, 1, space.Len())

	for i := 0; i < 600 && !f.Destroyed(); i++ {
		pack.SetTick(Tick{PlayerX: 0})
		pack.Update(w, 1.0/60)
		pack.FixedUpdate(w, 1.0/60)
		space.Step(1.0 / 60)
	}

	assert.True(t, f.Destroyed())
	assert.True(t, f.HasAttacked())
	_, ok := pack.Get(f.Entity)
	assert.False(t, ok)
	assert.Zero(t, w.Len())
	assert.Equal(t, 0, pack.Len())
	assert.Equal(t, 0, space.Len())
	assert.Equal(t, 1, pack.Attacks())
	assert.Equal(t, 1, pack.Spawned("red"))
}

func TestPackTracksLiveFoxesByEntity(t *testing.T) {
	w := ecs.NewWorld()
	space := physics.NewSpace(-9.81)
	space.AddGround(-8, 8, -1.2)

	r := NewRegistry()
	require.NoError(t, r.Register(testSpec("red"), NewRed))
	pack := NewPack(w, space, r)

	a, err := pack.Spawn("red", cp.Vector{X: 4.5, Y: -0.875})
	require.NoError(t, err)
	b, err := pack.Spawn("red", cp.Vector{X: 3, Y: -0.875})
	require.NoError(t, err)
	require.Equal(t, 2, pack.Len())
	require.Equal(t, 2, w.Len())

	a.Destroy()
	pack.Update(w, 1.0/60)

	_, ok := pack.Get(a.Entity)
	assert.False(t, ok)
	got, ok := pack.Get(b.Entity)
	require.True(t, ok)
	assert.Same(t, b, got)
	assert.Equal(t, []*Fox{b}, pack.Foxes())

	pack.Clear()
	assert.Zero(t, pack.Len())
	assert.Zero(t, w.Len())
	assert.Zero(t, space.Len())
}
