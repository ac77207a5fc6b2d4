package fox

import (
	"fmt"
	"log"
	"math/rand/v2"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/foxrun/component"
	"github.com/milk9111/foxrun/ecs"
	"github.com/milk9111/foxrun/prefabs"
)

// SpawnFunc creates a fox of kind at pos.
type SpawnFunc func(kind string, pos cp.Vector) (*Fox, error)

// Spawner creates a random fox as soon as it runs and then every interval.
//
// It starts idle. PlayStart enables it (unless Manual is set, in which case
// only Enable does), GamePaused and GameResumed pause and resume it, and
// GameOver stops it for good.
type Spawner struct {
	Position cp.Vector
	Manual   bool

	kinds []string
	timer component.Timer
	rng   *rand.Rand
	spawn SpawnFunc
	subs  ecs.Subscriptions

	enabled bool
	paused  bool
	over    bool
	closed  bool
}

func NewSpawner(bus *ecs.Bus, spec *prefabs.SpawnerSpec, seed uint64, spawn SpawnFunc) (*Spawner, error) {
	if spec == nil || spawn == nil {
		return nil, fmt.Errorf("fox: spawner: missing spec or spawn func")
	}
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("fox: spawner: %w", err)
	}

	s := &Spawner{
		Position: cp.Vector{X: spec.X, Y: spec.Y},
		kinds:    append([]string(nil), spec.Kinds...),
		timer:    component.Timer{Interval: spec.Interval, Immediate: true},
		rng:      rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		spawn:    spawn,
	}
	s.subs = append(s.subs,
		bus.Subscribe(ecs.SignalPlayStart, func(ecs.Event) {
			if !s.Manual {
				s.Enable()
			}
		}),
		bus.Subscribe(ecs.SignalGamePaused, func(ecs.Event) {
			s.paused = true
			s.sync()
		}),
		bus.Subscribe(ecs.SignalGameResumed, func(ecs.Event) {
			s.paused = false
			s.sync()
		}),
		bus.Subscribe(ecs.SignalGameOver, func(ecs.Event) {
			s.over = true
			s.sync()
		}),
	)
	return s, nil
}

// Enable lets the spawner run.
func (s *Spawner) Enable() {
	s.enabled = true
	s.sync()
}

// Running reports whether the spawner creates foxes on its next update.
func (s *Spawner) Running() bool {
	return s.timer.Running()
}

// Pick returns the next kind from the seeded source.
func (s *Spawner) Pick() string {
	return s.kinds[s.rng.IntN(len(s.kinds))]
}

// Update advances the spawn timer.
func (s *Spawner) Update(_ *ecs.World, dt float64) {
	if s.closed {
		return
	}
	for n := s.timer.Advance(dt); n > 0; n-- {
		kind := s.Pick()
		if _, err := s.spawn(kind, s.Position); err != nil {
			log.Printf("fox: spawner: %v", err)
		}
	}
}

// Close stops the spawner for good and releases its subscriptions.
func (s *Spawner) Close() {
	if s.closed {
		return
	}
	s.closed = true
	s.timer.Stop()
	s.subs.Close()
}

func (s *Spawner) sync() {
	if s.enabled && !s.paused && !s.over && !s.closed {
		s.timer.Start()
		return
	}
	s.timer.Stop()
}
