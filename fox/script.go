package fox

import (
	"fmt"
	"log"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/foxrun/prefabs"
)

const scriptDispatch = `
__out := {}
if __phase == "move" {
	__out = move(__fox)
} else if __phase == "attack" {
	__out = attack(__fox)
}
`

// Scripted is a strategy whose movement and attack come from a tengo
// script defining move(fox) and attack(fox).
type Scripted struct {
	compiled *tengo.Compiled
}

// ScriptedFactory compiles the script named in the spec once and returns a
// factory handing each fox its own clone.
func ScriptedFactory(spec *prefabs.FoxSpec) (Factory, error) {
	if spec == nil || spec.Script == "" {
		return nil, fmt.Errorf("fox: scripted factory: no script: %w", ErrMissingStrategy)
	}
	src, err := prefabs.LoadScript(spec.Script)
	if err != nil {
		return nil, fmt.Errorf("fox: load script %s: %w", spec.Script, err)
	}
	compiled, err := compileScript(src)
	if err != nil {
		return nil, fmt.Errorf("fox: compile script %s: %w", spec.Script, err)
	}
	return func(*prefabs.FoxSpec) (Strategy, error) {
		return &Scripted{compiled: compiled.Clone()}, nil
	}, nil
}

func compileScript(src []byte) (*tengo.Compiled, error) {
	script := tengo.NewScript(append(append([]byte(nil), src...), scriptDispatch...))
	_ = script.Add("__phase", "")
	_ = script.Add("__fox", map[string]any{})
	script.SetImports(stdlib.GetModuleMap("math"))

	compiled, err := script.Compile()
	if err != nil {
		return nil, err
	}
	return compiled, nil
}

func (s *Scripted) Move(f *Fox, tick Tick) {
	out, err := s.run("move", f, tick)
	if err != nil {
		log.Printf("fox: %s move script: %v", f.Kind, err)
		return
	}
	vx, ok := out["vx"]
	if !ok {
		return
	}
	v := f.Body().Velocity()
	f.Body().SetVelocity(cp.Vector{X: vx, Y: v.Y})
}

func (s *Scripted) Attack(f *Fox, tick Tick) {
	out, err := s.run("attack", f, tick)
	if err != nil {
		log.Printf("fox: %s attack script: %v", f.Kind, err)
		return
	}
	f.Body().ApplyImpulse(cp.Vector{X: out["x"], Y: out["y"]})
}

func (s *Scripted) run(phase string, f *Fox, tick Tick) (map[string]float64, error) {
	v := f.Body().Velocity()
	state := map[string]any{
		"x":               f.X(),
		"vx":              v.X,
		"vy":              v.Y,
		"player_x":        tick.PlayerX,
		"dt":              tick.Dt,
		"grounded":        f.Grounded(),
		"run_speed":       f.RunSpeed(),
		"lunge_x":         f.Spec().LungeX,
		"lunge_y":         f.Spec().LungeY,
		"attack_distance": f.Spec().AttackDistance,
	}
	if err := s.compiled.Set("__phase", phase); err != nil {
		return nil, err
	}
	if err := s.compiled.Set("__fox", state); err != nil {
		return nil, err
	}
	if err := s.compiled.Run(); err != nil {
		return nil, err
	}

	out := make(map[string]float64)
	for k, raw := range s.compiled.Get("__out").Map() {
		switch n := raw.(type) {
		case float64:
			out[k] = n
		case int64:
			out[k] = float64(n)
		}
	}
	return out, nil
}
