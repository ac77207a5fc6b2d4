package component

// Animator parameter names.
const (
	ParamState   = "state"
	ParamRunning = "IsRunning"
	ParamJumping = "IsJumping"
	ParamFalling = "IsFalling"
)

// Clip names picked by Animator.
const (
	ClipIdle = "idle"
	ClipRun  = "run"
	ClipJump = "jump"
	ClipFall = "fall"
)

// AnimatorTarget receives animation parameters.
type AnimatorTarget interface {
	SetBool(param string, value bool)
	SetInt(param string, value int)
}

// AnimationDriver pushes a movement state into animator parameters.
type AnimationDriver struct{}

// Apply sets the state and flag parameters. StateNone leaves every parameter
// as it was on the previous tick.
func (AnimationDriver) Apply(target AnimatorTarget, state MovementState, visible VisibleFlags) {
	if target == nil || state == StateNone {
		return
	}
	target.SetInt(ParamState, int(state))
	target.SetBool(ParamRunning, visible.Running || state == StateRunning)
	target.SetBool(ParamJumping, visible.Jumping || state == StateJumping)
	target.SetBool(ParamFalling, state == StateFalling)
}

// Animator stores parameters and plays the clip they select.
type Animator struct {
	bools   map[string]bool
	ints    map[string]int
	clips   map[string]*Animation
	current string
}

// NewAnimator creates an animator over named clips. Missing clips are
// replaced by single-frame placeholders.
func NewAnimator(clips ...*Animation) *Animator {
	a := &Animator{
		bools:   make(map[string]bool),
		ints:    make(map[string]int),
		clips:   make(map[string]*Animation),
		current: ClipIdle,
	}
	for _, c := range clips {
		if c != nil {
			a.clips[c.Name] = c
		}
	}
	for _, name := range []string{ClipIdle, ClipRun, ClipJump, ClipFall} {
		if _, ok := a.clips[name]; !ok {
			a.clips[name] = NewAnimation(name, 1, 0, true)
		}
	}
	return a
}

func (a *Animator) SetBool(param string, value bool) { a.bools[param] = value }
func (a *Animator) SetInt(param string, value int) { a.ints[param] = value }

func (a *Animator) Bool(param string) bool { return a.bools[param] }
func (a *Animator) Int(param string) int { return a.ints[param] }

// Clip returns a clip by name.
func (a *Animator) Clip(name string) *Animation {
	return a.clips[name]
}

// Current returns the playing clip.
func (a *Animator) Current() *Animation {
	return a.clips[a.current]
}

// Update selects the clip for the current parameters and advances it.
// Switching clips restarts the new clip from its first frame.
func (a *Animator) Update() {
	if a == nil {
		return
	}
	next := a.selectClip()
	if next != a.current {
		a.current = next
		a.clips[next].Reset()
		return
	}
	a.clips[a.current].Update()
}

func (a *Animator) selectClip() string {
	switch {
	case a.bools[ParamJumping]:
		return ClipJump
	case a.bools[ParamFalling]:
		return ClipFall
	case a.bools[ParamRunning]:
		return ClipRun
	}
	return ClipIdle
}
