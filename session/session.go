// Package session wires the player, the foxes, the HUD and the physics
// space into one playable run.
package session

import (
	"fmt"
	"log"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/foxrun/common"
	"github.com/milk9111/foxrun/ecs"
	"github.com/milk9111/foxrun/fox"
	"github.com/milk9111/foxrun/input"
	"github.com/milk9111/foxrun/physics"
	"github.com/milk9111/foxrun/player"
	"github.com/milk9111/foxrun/prefabs"
	"github.com/milk9111/foxrun/prefs"
	"github.com/milk9111/foxrun/ui"
)

// maxFixedSteps bounds the catch-up after a long frame.
const maxFixedSteps = 5

type Config struct {
	Seed  uint64
	Input input.Source
	// Store persists preferences. Nil keeps them in memory.
	Store *prefs.Store
}

// Stats summarizes a run.
type Stats struct {
	Frames   int
	Spawned  map[string]int
	Attacks  int
	Hits     int
	Hearts   int
	Steps    float64
	GameOver bool
	// Entities counts live entities: the player and every fox on screen.
	Entities int
}

type Session struct {
	World    *ecs.World
	Space    *physics.Space
	Player   *player.Player
	Pack     *fox.Pack
	Spawner  *fox.Spawner
	HUD      *ui.HUD
	Tutorial *ui.Tutorial

	playerBody  *physics.Body
	worldSpec   *prefabs.WorldSpec
	playerSpec  *prefabs.PlayerSpec
	spawnerSpec *prefabs.SpawnerSpec
	registry    *fox.Registry

	scheduler *ecs.Scheduler
	driver    *tutorialDriver
	input     input.Source
	store     *prefs.Store
	prefs     prefs.Preferences

	accumulator float64
	trigger     bool
	paused      bool
	over        bool
	frames      int
	hits        int

	subs   ecs.Subscriptions
	closed bool
}

// New builds a session from the prefabs and the stored preferences.
func New(cfg Config) (*Session, error) {
	worldSpec, err := prefabs.LoadWorldSpec()
	if err != nil {
		return nil, fmt.Errorf("session: %w", err)
	}
	playerSpec, err := prefabs.LoadPlayerSpec()
	if err != nil {
		return nil, fmt.Errorf("session: %w", err)
	}
	spawnerSpec, err := prefabs.LoadSpawnerSpec()
	if err != nil {
		return nil, fmt.Errorf("session: %w", err)
	}
	registry, err := fox.LoadRegistry()
	if err != nil {
		return nil, fmt.Errorf("session: %w", err)
	}
	return NewWith(cfg, worldSpec, playerSpec, spawnerSpec, registry)
}

// NewWith builds a session from explicit tuning.
func NewWith(cfg Config, worldSpec *prefabs.WorldSpec, playerSpec *prefabs.PlayerSpec, spawnerSpec *prefabs.SpawnerSpec, registry *fox.Registry) (*Session, error) {
	for _, kind := range spawnerSpec.Kinds {
		if !registry.Has(kind) {
			return nil, fmt.Errorf("session: spawner kind %q: %w", kind, fox.ErrUnknownKind)
		}
	}

	store := cfg.Store
	if store == nil {
		store = prefs.NewStore(prefs.NewMemory(), prefabs.SkinCount)
	}
	p, err := store.LoadPreferences()
	if err != nil {
		log.Printf("session: using default preferences: %v", err)
	}

	src := cfg.Input
	if src == nil {
		src = &input.Script{}
	}

	s := &Session{
		World:       ecs.NewWorld(),
		Space:       physics.NewSpace(worldSpec.Gravity),
		worldSpec:   worldSpec,
		playerSpec:  playerSpec,
		spawnerSpec: spawnerSpec,
		registry:    registry,
		scheduler:   ecs.NewScheduler(),
		input:       src,
		store:       store,
		prefs:       p,
	}
	bus := s.World.Bus()
	s.Space.AddGround(worldSpec.GroundLeft, worldSpec.GroundRight, worldSpec.GroundY)

	s.HUD = ui.NewHUD(bus, playerSpec.Lives, worldSpec.ScrollSpeed, worldSpec.StepsMultiplier)

	body := s.Space.AddCharacter(physics.RolePlayer, cp.Vector{X: playerSpec.X, Y: playerSpec.Y},
		playerSpec.Collider.Width, playerSpec.Collider.Height, playerSpec.Collider.Mass)
	s.Player, err = player.New(s.World, body, playerSpec, s.HUD)
	if err != nil {
		return nil, fmt.Errorf("session: %w", err)
	}
	body.Owner = s.Player
	body.SetContactListener(s.Player.Motor)
	s.playerBody = body

	s.Space.OnHit(func(f, _ *physics.Body) {
		s.hits++
		bus.Emit(ecs.SignalFoxHitsPlayer, f.Owner)
	})

	s.Pack = fox.NewPack(s.World, s.Space, registry)
	s.Spawner, err = fox.NewSpawner(bus, spawnerSpec, cfg.Seed, s.Pack.Spawn)
	if err != nil {
		return nil, fmt.Errorf("session: %w", err)
	}

	texts := make(map[string]string)
	for _, kind := range registry.Kinds() {
		texts[kind] = registry.Spec(kind).Tutorial
	}
	s.Tutorial = ui.NewTutorial(bus, texts)

	if s.prefs.IsFirstTime {
		s.Spawner.Manual = true
		s.driver = newTutorialDriver(bus, s.tutorialKinds(), s.spawnTutorialFox, s.finishTutorial)
	}

	s.subs = append(s.subs, bus.Subscribe(ecs.SignalGameOver, func(ecs.Event) { s.gameOver() }))

	s.scheduler.Add(s.Player)
	s.scheduler.Add(snapshot{s})
	s.scheduler.Add(s.Pack)
	s.scheduler.Add(s.Spawner)
	if s.driver != nil {
		s.scheduler.Add(s.driver)
	}
	s.scheduler.Add(s.HUD)
	s.scheduler.Add(stepper{s.Space})

	log.Printf("session: started seed=%d cat=%d first_time=%v", cfg.Seed, s.prefs.CatID, s.prefs.IsFirstTime)
	return s, nil
}

// Update runs one frame: input, the variable phase, then as many fixed steps
// as the elapsed time calls for.
func (s *Session) Update(dt float64) {
	if s.closed {
		return
	}
	in := s.input.Sample()
	if in.Pause && !s.over {
		s.SetPaused(!s.paused)
	}
	if s.paused || s.over {
		return
	}
	s.frames++

	s.Player.SetInput(in.Direction, in.Jump)
	s.trigger = in.Trigger
	s.scheduler.Update(s.World, dt)

	s.accumulator += dt
	steps := 0
	for s.accumulator >= common.FixedDelta && steps < maxFixedSteps {
		s.scheduler.FixedUpdate(s.World, common.FixedDelta)
		s.accumulator -= common.FixedDelta
		steps++
	}
	if steps == maxFixedSteps {
		s.accumulator = 0
	}
}

// SetPaused pauses or resumes the run and tells every listener.
func (s *Session) SetPaused(paused bool) {
	if s.paused == paused || s.over {
		return
	}
	s.paused = paused
	if paused {
		s.World.Bus().Emit(ecs.SignalGamePaused, nil)
	} else {
		s.World.Bus().Emit(ecs.SignalGameResumed, nil)
	}
}

func (s *Session) Paused() bool { return s.paused }
func (s *Session) Over() bool { return s.over }
func (s *Session) Preferences() prefs.Preferences { return s.prefs }

// SetCat changes the skin and stores the choice.
func (s *Session) SetCat(id int) error {
	p := s.prefs
	p.CatID = id
	if err := s.store.SavePreferences(p); err != nil {
		return fmt.Errorf("session: set cat: %w", err)
	}
	s.prefs = p
	return nil
}

func (s *Session) Stats() Stats {
	spawned := make(map[string]int)
	for _, kind := range s.registry.Kinds() {
		if n := s.Pack.Spawned(kind); n > 0 {
			spawned[kind] = n
		}
	}
	return Stats{
		Frames:   s.frames,
		Spawned:  spawned,
		Attacks:  s.Pack.Attacks(),
		Hits:     s.hits,
		Hearts:   s.HUD.Hearts(),
		Steps:    s.HUD.Mileage(),
		GameOver: s.over,
		Entities: s.World.Len(),
	}
}

// Close tears the run down. The session cannot be used afterwards.
func (s *Session) Close() {
	if s.closed {
		return
	}
	s.closed = true
	s.subs.Close()
	if s.driver != nil {
		s.driver.Close()
	}
	s.Spawner.Close()
	s.Pack.Clear()
	s.Player.Destroy()
	s.Space.Remove(s.playerBody)
	s.HUD.Close()
	s.Tutorial.Close()
}

func (s *Session) gameOver() {
	if s.over {
		return
	}
	s.over = true
	steps := s.HUD.Mileage()
	log.Printf("session: game over after %.0f steps", steps)
	if steps > s.prefs.BestSteps {
		p := s.prefs
		p.BestSteps = steps
		if err := s.store.SavePreferences(p); err != nil {
			log.Printf("session: save best: %v", err)
			return
		}
		s.prefs = p
	}
}

func (s *Session) tutorialKinds() []string {
	var kinds []string
	for _, kind := range s.spawnerSpec.TutorialKinds {
		if s.registry.Has(kind) {
			kinds = append(kinds, kind)
		} else {
			log.Printf("session: tutorial kind %q not registered", kind)
		}
	}
	return kinds
}

func (s *Session) spawnTutorialFox(kind string) (*fox.Fox, error) {
	return s.Pack.Spawn(kind, s.Spawner.Position)
}

func (s *Session) finishTutorial() {
	p := s.prefs
	p.IsFirstTime = false
	if err := s.store.SavePreferences(p); err != nil {
		log.Printf("session: save preferences: %v", err)
	} else {
		s.prefs = p
	}
	s.Spawner.Enable()
}

// snapshot publishes the player's position to the foxes once per frame.
type snapshot struct {
	s *Session
}

func (n snapshot) Update(_ *ecs.World, dt float64) {
	n.s.Pack.SetTick(fox.Tick{PlayerX: n.s.Player.X(), Dt: dt, Trigger: n.s.trigger})
}

type stepper struct {
	space *physics.Space
}

func (st stepper) FixedUpdate(_ *ecs.World, dt float64) {
	st.space.Step(dt)
}
