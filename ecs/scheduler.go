package ecs

// System runs once per frame in the variable-rate phase.
type System interface {
	Update(w *World, dt float64)
}

// FixedSystem runs once per fixed physics step.
type FixedSystem interface {
	FixedUpdate(w *World, dt float64)
}

// Scheduler runs systems in registration order, in two ordered phases.
type Scheduler struct {
	systems []System
	fixed   []FixedSystem
}

func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Add registers s in each phase it implements.
func (s *Scheduler) Add(system any) {
	if system == nil {
		return
	}
	if v, ok := system.(System); ok {
		s.systems = append(s.systems, v)
	}
	if f, ok := system.(FixedSystem); ok {
		s.fixed = append(s.fixed, f)
	}
}

func (s *Scheduler) Update(w *World, dt float64) {
	for _, system := range s.systems {
		system.Update(w, dt)
	}
}

func (s *Scheduler) FixedUpdate(w *World, dt float64) {
	for _, system := range s.fixed {
		system.FixedUpdate(w, dt)
	}
}
