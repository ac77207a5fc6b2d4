package component

import "math"

// Animation is a frame-based clip. It carries no images: the renderer reads
// Frame() and decides what to draw for it.
type Animation struct {
	Name       string
	FrameCount int
	FPS        int
	Loop       bool

	current     int
	tick        int
	ticksPerFrm int
	done        bool
	callbacks   map[int][]FrameCallback
}

// FrameCallback runs when a clip enters the given frame.
type FrameCallback func(a *Animation, frame int)

// NewAnimation creates a clip. `fps` defaults to 12 when <= 0.
func NewAnimation(name string, frameCount, fps int, loop bool) *Animation {
	if frameCount <= 0 {
		frameCount = 1
	}
	if fps <= 0 {
		fps = 12
	}
	return &Animation{
		Name:        name,
		FrameCount:  frameCount,
		FPS:         fps,
		Loop:        loop,
		ticksPerFrm: int(math.Max(1, math.Round(60.0/float64(fps)))),
	}
}

// AddFrameCallback registers cb for frame.
func (a *Animation) AddFrameCallback(frame int, cb FrameCallback) {
	if a == nil || cb == nil || frame < 0 || frame >= a.FrameCount {
		return
	}
	if a.callbacks == nil {
		a.callbacks = make(map[int][]FrameCallback)
	}
	a.callbacks[frame] = append(a.callbacks[frame], cb)
}

// Update advances the clip by one game update (60 per second).
func (a *Animation) Update() {
	if a == nil || a.done || a.FrameCount <= 1 {
		return
	}
	a.tick++
	if a.tick < a.ticksPerFrm {
		return
	}
	a.tick = 0
	next := a.current + 1
	if next >= a.FrameCount {
		if !a.Loop {
			a.done = true
			return
		}
		next = 0
	}
	a.current = next
	for _, cb := range a.callbacks[next] {
		cb(a, next)
	}
}

// Reset sets the clip back to the first frame.
func (a *Animation) Reset() {
	if a == nil {
		return
	}
	a.current = 0
	a.tick = 0
	a.done = false
}

func (a *Animation) Frame() int {
	if a == nil {
		return 0
	}
	return a.current
}

// Finished reports whether a non-looping clip has played its last frame.
func (a *Animation) Finished() bool {
	return a != nil && a.done
}
