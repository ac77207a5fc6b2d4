package component

// Timer fires every Interval seconds while running. When Immediate is set the
// first tick after Start fires at once.
type Timer struct {
	Interval  float64
	Immediate bool

	running bool
	fired   bool
	elapsed float64
}

// Start resumes the timer, keeping its phase.
func (t *Timer) Start() {
	t.running = true
}

// Stop pauses the timer, keeping its phase.
func (t *Timer) Stop() {
	t.running = false
}

func (t *Timer) Running() bool {
	return t.running
}

// Advance moves the timer forward and returns how many times it fired.
func (t *Timer) Advance(dt float64) int {
	if !t.running || t.Interval <= 0 {
		return 0
	}
	fires := 0
	if t.Immediate && !t.fired {
		t.fired = true
		fires++
		return fires
	}
	t.fired = true
	t.elapsed += dt
	for t.elapsed >= t.Interval {
		t.elapsed -= t.Interval
		fires++
	}
	return fires
}
