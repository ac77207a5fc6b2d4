package ecs

// Signal names a cross-entity event.
type Signal string

const (
	SignalFoxHitsPlayer          Signal = "fox_hits_player"
	SignalPlayerInvincible       Signal = "player_invincible"
	SignalPlayerVulnerable       Signal = "player_vulnerable"
	SignalPlayStart              Signal = "play_start"
	SignalTutorialSkulkAction    Signal = "tutorial_skulk_action"
	SignalCompleteTutorialSkulks Signal = "complete_tutorial_skulks"
	SignalGamePaused             Signal = "game_paused"
	SignalGameResumed            Signal = "game_resumed"
	SignalGameOver               Signal = "game_over"
)

// Event is a bus payload. Data is signal specific: TutorialSkulkAction
// carries a TutorialSkulk, FoxHitsPlayer the hitting fox.
type Event struct {
	Signal Signal
	Data   any
}

// TutorialSkulk is the TutorialSkulkAction payload. Active is true when a
// tutorial fox starts its run and false once it is gone.
type TutorialSkulk struct {
	Kind   string
	Active bool
}

// Handler receives events synchronously on the emitting tick.
type Handler func(Event)

type subscriber struct {
	id      uint64
	handler Handler
}

// Bus dispatches signals to subscribers in subscription order.
type Bus struct {
	handlers map[Signal][]subscriber
	nextID   uint64
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{handlers: make(map[Signal][]subscriber)}
}

// Subscribe registers h for sig. The returned handle must be closed when the
// subscriber deactivates.
func (b *Bus) Subscribe(sig Signal, h Handler) *Subscription {
	if b == nil || h == nil {
		return &Subscription{}
	}
	if b.handlers == nil {
		b.handlers = make(map[Signal][]subscriber)
	}
	b.nextID++
	b.handlers[sig] = append(b.handlers[sig], subscriber{id: b.nextID, handler: h})
	return &Subscription{bus: b, signal: sig, id: b.nextID}
}

// Emit delivers an event to every current subscriber of sig. Subscribers
// added or removed by a handler take effect on the next Emit.
func (b *Bus) Emit(sig Signal, data any) {
	if b == nil {
		return
	}
	subs := b.handlers[sig]
	if len(subs) == 0 {
		return
	}
	snapshot := append([]subscriber(nil), subs...)
	evt := Event{Signal: sig, Data: data}
	for _, s := range snapshot {
		if b.subscribed(sig, s.id) {
			s.handler(evt)
		}
	}
}

// Count returns the number of live subscribers for sig.
func (b *Bus) Count(sig Signal) int {
	if b == nil {
		return 0
	}
	return len(b.handlers[sig])
}

func (b *Bus) subscribed(sig Signal, id uint64) bool {
	for _, s := range b.handlers[sig] {
		if s.id == id {
			return true
		}
	}
	return false
}

func (b *Bus) unsubscribe(sig Signal, id uint64) {
	subs := b.handlers[sig]
	for i, s := range subs {
		if s.id != id {
			continue
		}
		b.handlers[sig] = append(subs[:i:i], subs[i+1:]...)
		if len(b.handlers[sig]) == 0 {
			delete(b.handlers, sig)
		}
		return
	}
}

// Subscription is a scoped handle on a bus registration.
type Subscription struct {
	bus    *Bus
	signal Signal
	id     uint64
}

// Close removes the registration. It is safe to call more than once.
func (s *Subscription) Close() {
	if s == nil || s.bus == nil {
		return
	}
	s.bus.unsubscribe(s.signal, s.id)
	s.bus = nil
}

// Subscriptions groups handles released together on deactivation.
type Subscriptions []*Subscription

// Close releases every handle and empties the group.
func (s *Subscriptions) Close() {
	if s == nil {
		return
	}
	for _, sub := range *s {
		sub.Close()
	}
	*s = nil
}
