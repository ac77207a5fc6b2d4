package input

// TouchPoint is one active touch in screen pixels.
type TouchPoint struct {
	ID   int
	X, Y float64
}

type touch struct {
	startY float64
	x      float64
	swiped bool
	order  int
}

// Touches turns raw touch points into a direction and jump requests. A touch
// on the left half of the screen runs left, on the right half runs right;
// lifting every finger stops. Dragging a touch upward past the threshold
// jumps once per touch.
type Touches struct {
	Width     float64
	Threshold float64

	active   map[int]*touch
	seen     int
	released bool
}

func NewTouches(width, threshold float64) *Touches {
	return &Touches{Width: width, Threshold: threshold, active: make(map[int]*touch)}
}

// Update feeds the current touches. touching reports whether any touch is
// down.
func (t *Touches) Update(points []TouchPoint) (direction int, jump bool, touching bool) {
	had := len(t.active)
	current := make(map[int]bool, len(points))

	var latest *touch
	for _, p := range points {
		current[p.ID] = true
		tt, ok := t.active[p.ID]
		if !ok {
			t.seen++
			tt = &touch{startY: p.Y, order: t.seen}
			t.active[p.ID] = tt
		}
		tt.x = p.X
		if !tt.swiped && tt.startY-p.Y > t.Threshold {
			tt.swiped = true
			jump = true
		}
		if latest == nil || tt.order > latest.order {
			latest = tt
		}
	}
	for id := range t.active {
		if !current[id] {
			delete(t.active, id)
		}
	}

	t.released = had > 0 && len(t.active) == 0
	if latest == nil {
		return 0, jump, false
	}
	return DirectionAt(latest.x, t.Width), jump, true
}

// Released reports whether the last Update saw the final touch end.
func (t *Touches) Released() bool {
	return t.released
}

// DirectionAt maps a screen x to -1 (left half) or +1 (right half).
func DirectionAt(x, width float64) int {
	if x < width/2 {
		return -1
	}
	return 1
}
