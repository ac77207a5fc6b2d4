package session

import (
	"log"

	"github.com/milk9111/foxrun/ecs"
	"github.com/milk9111/foxrun/fox"
)

// tutorialDriver runs one fox of each tutorial kind, one after the other,
// once play starts.
type tutorialDriver struct {
	bus    *ecs.Bus
	kinds  []string
	spawn  func(kind string) (*fox.Fox, error)
	finish func()

	started bool
	done    bool
	next    int
	current ecs.Entity
	kind    string
	subs    ecs.Subscriptions
}

func newTutorialDriver(bus *ecs.Bus, kinds []string, spawn func(string) (*fox.Fox, error), finish func()) *tutorialDriver {
	d := &tutorialDriver{bus: bus, kinds: kinds, spawn: spawn, finish: finish}
	d.subs = append(d.subs, bus.Subscribe(ecs.SignalPlayStart, func(ecs.Event) { d.started = true }))
	return d
}

func (d *tutorialDriver) Update(w *ecs.World, _ float64) {
	if !d.started || d.done {
		return
	}

	if d.current.Valid() {
		if w.IsAlive(d.current) {
			return
		}
		d.bus.Emit(ecs.SignalTutorialSkulkAction, ecs.TutorialSkulk{Kind: d.kind})
		d.current = 0
	}

	if d.next >= len(d.kinds) {
		d.done = true
		d.bus.Emit(ecs.SignalCompleteTutorialSkulks, nil)
		if d.finish != nil {
			d.finish()
		}
		return
	}

	kind := d.kinds[d.next]
	d.next++
	d.bus.Emit(ecs.SignalTutorialSkulkAction, ecs.TutorialSkulk{Kind: kind, Active: true})
	f, err := d.spawn(kind)
	if err != nil {
		log.Printf("session: tutorial fox %s: %v", kind, err)
		d.bus.Emit(ecs.SignalTutorialSkulkAction, ecs.TutorialSkulk{Kind: kind})
		return
	}
	d.current = f.Entity
	d.kind = f.Kind
}

func (d *tutorialDriver) Done() bool {
	return d.done
}

func (d *tutorialDriver) Close() {
	d.subs.Close()
}
