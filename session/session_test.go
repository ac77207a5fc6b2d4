package session

import (
	"testing"

	"github.com/milk9111/foxrun/ecs"
	"github.com/milk9111/foxrun/input"
	"github.com/milk9111/foxrun/prefabs"
	"github.com/milk9111/foxrun/prefs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const frame = 1.0 / 60

func startInput() *input.Script {
	return &input.Script{Frames: []input.Intent{{Direction: 1}, {}}}
}

func returningStore(t *testing.T) *prefs.Store {
	t.Helper()
	store := prefs.NewStore(prefs.NewMemory(), prefabs.SkinCount)
	require.NoError(t, store.SavePreferences(prefs.Preferences{CatID: 2}))
	return store
}

func run(s *Session, frames int) {
	for i := 0; i < frames; i++ {
		s.Update(frame)
	}
}

func TestTutorialOnFirstRun(t *testing.T) {
	store := prefs.NewStore(prefs.NewMemory(), prefabs.SkinCount)
	s, err := New(Config{Seed: 1, Input: startInput(), Store: store})
	require.NoError(t, err)
	defer s.Close()

	var actions []ecs.TutorialSkulk
	completed := 0
	bus := s.World.Bus()
	bus.Subscribe(ecs.SignalTutorialSkulkAction, func(e ecs.Event) {
		actions = append(actions, e.Data.(ecs.TutorialSkulk))
	})
	bus.Subscribe(ecs.SignalCompleteTutorialSkulks, func(ecs.Event) { completed++ })

	for i := 0; i < 60*30 && completed == 0; i++ {
		s.Update(frame)
	}

	require.Equal(t, 1, completed, "tutorial did not finish")
	assert.Equal(t, []ecs.TutorialSkulk{
		{Kind: "red", Active: true}, {Kind: "red"},
		{Kind: "brown", Active: true}, {Kind: "brown"},
		{Kind: "gray", Active: true}, {Kind: "gray"},
	}, actions)
	assert.True(t, s.Tutorial.Complete())
	assert.True(t, s.Spawner.Running())

	saved, err := store.LoadPreferences()
	require.NoError(t, err)
	assert.False(t, saved.IsFirstTime)
}

func TestRegularSpawning(t *testing.T) {
	s, err := New(Config{Seed: 3, Input: startInput(), Store: returningStore(t)})
	require.NoError(t, err)
	defer s.Close()

	run(s, 10)
	require.True(t, s.Spawner.Running())

	run(s, 60*5)
	stats := s.Stats()
	assert.Equal(t, 3, stats.Spawned["red"]+stats.Spawned["brown"])
	assert.Zero(t, stats.Spawned["gray"])
	assert.Greater(t, stats.Steps, 0.0)
}

func TestSeedReproducible(t *testing.T) {
	stats := func(seed uint64) Stats {
		s, err := New(Config{Seed: seed, Input: startInput(), Store: returningStore(t)})
		require.NoError(t, err)
		defer s.Close()
		run(s, 60*12)
		return s.Stats()
	}
	assert.Equal(t, stats(9), stats(9))
}

func TestPauseFreezesRun(t *testing.T) {
	s, err := New(Config{Seed: 1, Input: startInput(), Store: returningStore(t)})
	require.NoError(t, err)
	defer s.Close()

	run(s, 30)
	before := s.Stats()

	s.SetPaused(true)
	assert.False(t, s.Spawner.Running())
	run(s, 600)
	assert.Equal(t, before, s.Stats())

	s.SetPaused(false)
	assert.True(t, s.Spawner.Running())
	run(s, 1)
	assert.Equal(t, before.Frames+1, s.Stats().Frames)
}

func TestPauseFromInput(t *testing.T) {
	src := &input.Script{Frames: []input.Intent{{Direction: 1}, {Pause: true}, {}}}
	s, err := New(Config{Seed: 1, Input: src, Store: returningStore(t)})
	require.NoError(t, err)
	defer s.Close()

	run(s, 2)
	assert.True(t, s.Paused())
}

func TestGameOverStopsRunAndSavesBest(t *testing.T) {
	store := returningStore(t)
	s, err := New(Config{Seed: 1, Input: startInput(), Store: store})
	require.NoError(t, err)
	defer s.Close()

	run(s, 60)
	for i := 0; i < 9; i++ {
		s.HUD.LoseHeart()
	}

	require.True(t, s.Over())
	assert.False(t, s.Spawner.Running())

	frames := s.Stats().Frames
	run(s, 10)
	assert.Equal(t, frames, s.Stats().Frames)

	saved, err := store.LoadPreferences()
	require.NoError(t, err)
	assert.Greater(t, saved.BestSteps, 0.0)
}

func TestFoxHitCostsOneHeart(t *testing.T) {
	s, err := New(Config{Seed: 1, Input: &input.Script{}, Store: returningStore(t)})
	require.NoError(t, err)
	defer s.Close()

	run(s, 2)
	s.World.Bus().Emit(ecs.SignalFoxHitsPlayer, nil)
	s.World.Bus().Emit(ecs.SignalFoxHitsPlayer, nil)
	assert.Equal(t, 8, s.HUD.Hearts())
	assert.True(t, s.Player.Invincible())

	run(s, 90)
	assert.False(t, s.Player.Invincible())
	assert.Equal(t, 8, s.HUD.Hearts())
}

func TestSetCat(t *testing.T) {
	s, err := New(Config{Input: startInput(), Store: returningStore(t)})
	require.NoError(t, err)
	defer s.Close()

	assert.ErrorIs(t, s.SetCat(6), prefs.ErrInvalidSkin)
	assert.Equal(t, 2, s.Preferences().CatID)
	require.NoError(t, s.SetCat(5))
	assert.Equal(t, 5, s.Preferences().CatID)
}

func TestCloseReleasesSubscriptions(t *testing.T) {
	s, err := New(Config{Seed: 1, Input: startInput()})
	require.NoError(t, err)
	run(s, 5)
	s.Close()
	s.Close()

	bus := s.World.Bus()
	for _, sig := range []ecs.Signal{
		ecs.SignalFoxHitsPlayer, ecs.SignalPlayStart, ecs.SignalGamePaused,
		ecs.SignalGameResumed, ecs.SignalGameOver, ecs.SignalTutorialSkulkAction,
		ecs.SignalCompleteTutorialSkulks,
	} {
		assert.Zero(t, bus.Count(sig), "subscribers left on %s", sig)
	}
	assert.Zero(t, s.Space.Len())
	assert.Zero(t, s.World.Len())
}

func TestOutOfRangeStoredCatKeepsProgress(t *testing.T) {
	mem := prefs.NewMemory()
	require.NoError(t, mem.SaveObjectProp("preferences", "player", []byte("catId: 9\nisFirstTime: false\nbestSteps: 500\n")))

	s, err := New(Config{Seed: 1, Input: startInput(), Store: prefs.NewStore(mem, prefabs.SkinCount)})
	require.NoError(t, err)
	defer s.Close()

	p := s.Preferences()
	assert.Equal(t, prefabs.SkinCount, p.CatID)
	assert.False(t, p.IsFirstTime)
	assert.Equal(t, 500.0, p.BestSteps)
	assert.False(t, s.Spawner.Manual)
}

func TestStatsCountLiveEntities(t *testing.T) {
	s, err := New(Config{Seed: 1, Input: &input.Script{}, Store: returningStore(t)})
	require.NoError(t, err)
	defer s.Close()

	run(s, 5)
	assert.Equal(t, 1, s.Stats().Entities, "only the player before play starts")

	_, err = s.Pack.Spawn("red", s.Spawner.Position)
	require.NoError(t, err)
	assert.Equal(t, 2, s.Stats().Entities)
}
