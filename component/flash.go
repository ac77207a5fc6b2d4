package component

// Flash alternates a sprite between a flash alpha and opaque. Timing is
// elapsed-time based and advanced by the owner's tick; there is no
// suspended routine to tear down, so Cancel is a plain field reset.
type Flash struct {
	// Count is the number of flash/opaque pairs in one sequence.
	Count int
	// Duration is the length of each phase in seconds.
	Duration float64
	// Alpha is the sprite alpha during the flash half of a pair.
	Alpha float64
	// OnPhase, if set, is called with the new alpha on every phase change.
	OnPhase func(alpha float64)

	active  bool
	phase   int
	elapsed float64
}

// Start begins a sequence. It reports false, and does nothing, when a
// sequence is already running.
func (f *Flash) Start() bool {
	if f == nil || f.active {
		return false
	}
	f.active = true
	f.phase = 0
	f.elapsed = 0
	f.notify()
	return true
}

// Advance moves the sequence forward by dt seconds and reports true on the
// tick it completes.
func (f *Flash) Advance(dt float64) bool {
	if f == nil || !f.active {
		return false
	}
	f.elapsed += dt
	for f.elapsed >= f.Duration {
		f.elapsed -= f.Duration
		f.phase++
		if f.phase >= 2*f.Count {
			f.reset()
			return true
		}
		f.notify()
	}
	return false
}

// Cancel stops the sequence without completing it.
func (f *Flash) Cancel() {
	if f == nil {
		return
	}
	f.reset()
}

func (f *Flash) Active() bool {
	return f != nil && f.active
}

// Phase returns the zero-based phase index of a running sequence.
func (f *Flash) Phase() int {
	return f.phase
}

// CurrentAlpha returns the alpha the sprite should use right now.
func (f *Flash) CurrentAlpha() float64 {
	if f == nil || !f.active || f.phase%2 == 1 {
		return 1
	}
	return f.Alpha
}

func (f *Flash) notify() {
	if f.OnPhase != nil {
		f.OnPhase(f.CurrentAlpha())
	}
}

func (f *Flash) reset() {
	f.active = false
	f.phase = 0
	f.elapsed = 0
}
