package ecs

// World owns entity lifetimes and the event bus.
type World struct {
	entities entityStore
	bus      *Bus
}

// NewWorld creates an empty world.
func NewWorld() *World {
	return &World{bus: NewBus()}
}

// CreateEntity allocates a new entity.
func (w *World) CreateEntity() Entity {
	return w.entities.create()
}

// DestroyEntity marks an entity as dead. It reports false when the handle
// was already dead.
func (w *World) DestroyEntity(e Entity) bool {
	if w == nil {
		return false
	}
	return w.entities.destroy(e)
}

// IsAlive reports whether an entity handle is valid.
func (w *World) IsAlive(e Entity) bool {
	if w == nil {
		return false
	}
	return w.entities.isAlive(e)
}

// Len returns the number of live entities.
func (w *World) Len() int {
	if w == nil {
		return 0
	}
	return w.entities.count
}

// Bus returns the world event bus.
func (w *World) Bus() *Bus {
	if w == nil {
		return nil
	}
	return w.bus
}
