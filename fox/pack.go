package fox

import (
	"fmt"
	"log"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/foxrun/ecs"
	"github.com/milk9111/foxrun/physics"
)

// Pack owns the live foxes of a session and ticks them.
type Pack struct {
	world    *ecs.World
	space    *physics.Space
	registry *Registry

	foxes ecs.SparseSet[*Fox]
	tick  Tick

	spawned  map[string]int
	attacked int
}

func NewPack(w *ecs.World, space *physics.Space, registry *Registry) *Pack {
	return &Pack{
		world:    w,
		space:    space,
		registry: registry,
		spawned:  make(map[string]int),
	}
}

// SetTick stores the snapshot used by the next fixed updates.
func (p *Pack) SetTick(t Tick) {
	p.tick = t
}

// Spawn creates a fox of kind at pos.
func (p *Pack) Spawn(kind string, pos cp.Vector) (*Fox, error) {
	strategy, spec, err := p.registry.New(kind)
	if err != nil {
		return nil, err
	}
	if spec.Collider.Width <= 0 || spec.Collider.Height <= 0 {
		return nil, fmt.Errorf("fox: spawn %s: empty collider", kind)
	}

	body := p.space.AddCharacter(physics.RoleFox, pos, spec.Collider.Width, spec.Collider.Height, spec.Collider.Mass)
	f := New(p.world, body, spec, strategy, func() { p.space.Remove(body) })
	body.Owner = f
	body.SetContactListener(f.Motor)

	p.foxes.Set(f.Entity, f)
	p.spawned[kind]++
	log.Printf("fox: spawned %s at (%.2f, %.2f)", kind, pos.X, pos.Y)
	return f, nil
}

// Update runs the variable phase of every fox and drops destroyed ones.
func (p *Pack) Update(_ *ecs.World, dt float64) {
	for _, f := range p.foxes.Values() {
		f.Update(dt)
		if !p.world.IsAlive(f.Entity) {
			p.foxes.Remove(f.Entity)
		}
	}
}

// FixedUpdate moves every fox and checks attacks against the snapshot.
func (p *Pack) FixedUpdate(_ *ecs.World, dt float64) {
	tick := p.tick
	tick.Dt = dt
	for _, f := range p.foxes.Values() {
		wasAttacked := f.HasAttacked()
		f.FixedUpdate(tick)
		if !wasAttacked && f.HasAttacked() {
			p.attacked++
		}
	}
}

// Clear destroys every live fox.
func (p *Pack) Clear() {
	for _, f := range p.foxes.Values() {
		f.Destroy()
		p.foxes.Remove(f.Entity)
	}
}

// Get returns the live fox for e.
func (p *Pack) Get(e ecs.Entity) (*Fox, bool) {
	return p.foxes.Get(e)
}

func (p *Pack) Foxes() []*Fox {
	return p.foxes.Values()
}

func (p *Pack) Len() int {
	return p.foxes.Len()
}

// Spawned returns how many foxes of kind were created.
func (p *Pack) Spawned(kind string) int {
	return p.spawned[kind]
}

// Attacks returns how many foxes have attacked.
func (p *Pack) Attacks() int {
	return p.attacked
}
