package component

// AnimationEventType identifies a type of frame event.
type AnimationEventType string

const (
	// AnimationEventJump marks the frame where the jump impulse is applied.
	AnimationEventJump AnimationEventType = "jump"
)

// AnimationEvent is emitted by animation frame callbacks.
type AnimationEvent struct {
	Type AnimationEventType
}

// AnimationEventHandler handles animation frame events.
type AnimationEventHandler func(anim *Animation, frame int, evt AnimationEvent)

// AnimationEventEmitter dispatches animation frame events to handlers.
type AnimationEventEmitter struct {
	Handlers []AnimationEventHandler
}

// Emit sends a frame event to all handlers.
func (e *AnimationEventEmitter) Emit(anim *Animation, frame int, evt AnimationEvent) {
	if e == nil {
		return
	}
	for _, h := range e.Handlers {
		if h != nil {
			h(anim, frame, evt)
		}
	}
}

// AnimationEventMap stores per-frame events of one clip.
type AnimationEventMap struct {
	Frames map[int][]AnimationEvent
}

// NewAnimationEventMap creates a new event map.
func NewAnimationEventMap() *AnimationEventMap {
	return &AnimationEventMap{Frames: make(map[int][]AnimationEvent)}
}

// Add adds an event for a frame.
func (m *AnimationEventMap) Add(frame int, evt AnimationEvent) {
	if m == nil || frame < 0 {
		return
	}
	if m.Frames == nil {
		m.Frames = make(map[int][]AnimationEvent)
	}
	m.Frames[frame] = append(m.Frames[frame], evt)
}

// BindAnimationEvents registers callbacks on the clip to emit events for frames.
func BindAnimationEvents(anim *Animation, events *AnimationEventMap, emitter *AnimationEventEmitter) {
	if anim == nil || events == nil || emitter == nil {
		return
	}
	for frame, evts := range events.Frames {
		copied := append([]AnimationEvent(nil), evts...)
		anim.AddFrameCallback(frame, func(a *Animation, frameIdx int) {
			for _, evt := range copied {
				emitter.Emit(a, frameIdx, evt)
			}
		})
	}
}

// JumpKeyframeHandler forwards jump events to the motor's keyframe hook.
func JumpKeyframeHandler(m *Motor) AnimationEventHandler {
	return func(_ *Animation, _ int, evt AnimationEvent) {
		if evt.Type == AnimationEventJump {
			m.JumpKeyframe()
		}
	}
}
