package fox

import (
	"errors"
	"fmt"
	"sort"

	"github.com/milk9111/foxrun/prefabs"
)

var (
	ErrMissingStrategy = errors.New("fox kind has no strategy")
	ErrUnknownKind     = errors.New("unknown fox kind")
)

// Factory creates the strategy of one fox.
type Factory func(spec *prefabs.FoxSpec) (Strategy, error)

type entry struct {
	spec    *prefabs.FoxSpec
	factory Factory
}

// Registry maps fox kinds to their tuning and strategy.
type Registry struct {
	kinds map[string]entry
}

func NewRegistry() *Registry {
	return &Registry{kinds: make(map[string]entry)}
}

// Register adds a kind. It fails when the factory is nil or produces no
// strategy, so a kind without behavior never reaches the spawner.
func (r *Registry) Register(spec *prefabs.FoxSpec, factory Factory) error {
	if spec == nil {
		return fmt.Errorf("fox: register: nil spec")
	}
	if factory == nil {
		return fmt.Errorf("fox: register %s: %w", spec.Kind, ErrMissingStrategy)
	}
	strategy, err := factory(spec)
	if err != nil {
		return fmt.Errorf("fox: register %s: %w", spec.Kind, err)
	}
	if strategy == nil {
		return fmt.Errorf("fox: register %s: %w", spec.Kind, ErrMissingStrategy)
	}
	r.kinds[spec.Kind] = entry{spec: spec, factory: factory}
	return nil
}

// New returns a fresh strategy and the spec for kind.
func (r *Registry) New(kind string) (Strategy, *prefabs.FoxSpec, error) {
	e, ok := r.kinds[kind]
	if !ok {
		return nil, nil, fmt.Errorf("fox: %q: %w", kind, ErrUnknownKind)
	}
	strategy, err := e.factory(e.spec)
	if err != nil {
		return nil, nil, fmt.Errorf("fox: new %s: %w", kind, err)
	}
	if strategy == nil {
		return nil, nil, fmt.Errorf("fox: new %s: %w", kind, ErrMissingStrategy)
	}
	return strategy, e.spec, nil
}

func (r *Registry) Has(kind string) bool {
	_, ok := r.kinds[kind]
	return ok
}

func (r *Registry) Kinds() []string {
	kinds := make([]string, 0, len(r.kinds))
	for k := range r.kinds {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}

// Spec returns the tuning for kind, or nil.
func (r *Registry) Spec(kind string) *prefabs.FoxSpec {
	return r.kinds[kind].spec
}

// LoadRegistry registers the red, brown and gray kinds from their prefabs.
func LoadRegistry() (*Registry, error) {
	r := NewRegistry()

	builtins := map[string]Factory{
		"red":   NewRed,
		"brown": NewBrown,
	}
	for _, kind := range []string{"red", "brown", "gray"} {
		spec, err := prefabs.LoadFoxSpec(kind)
		if err != nil {
			return nil, err
		}
		factory := builtins[kind]
		if spec.Script != "" {
			if factory, err = ScriptedFactory(spec); err != nil {
				return nil, err
			}
		}
		if err := r.Register(spec, factory); err != nil {
			return nil, err
		}
	}
	return r, nil
}
