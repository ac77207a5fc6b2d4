package prefabs

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// SkinCount is the number of selectable cat skins.
const SkinCount = 5

var ErrInvalidSpec = errors.New("invalid prefab spec")

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

type ColliderSpec struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Mass   float64 `yaml:"mass"`
}

type AnimationDefSpec struct {
	FrameCount int  `yaml:"frame_count"`
	FPS        int  `yaml:"fps"`
	Loop       bool `yaml:"loop"`
}

type FlashSpec struct {
	Count         int     `yaml:"count"`
	FlickDuration float64 `yaml:"flick_duration"`
	Alpha         float64 `yaml:"alpha"`
}

type SkinSpec struct {
	Name  string     `yaml:"name"`
	Color *YAMLColor `yaml:"color"`
}

type PlayerSpec struct {
	Name                  string                      `yaml:"name"`
	X                     float64                     `yaml:"x"`
	Y                     float64                     `yaml:"y"`
	Acceleration          float64                     `yaml:"acceleration"`
	Deceleration          float64                     `yaml:"deceleration"`
	TopSpeed              float64                     `yaml:"top_speed"`
	JumpForce             float64                     `yaml:"jump_force"`
	FallGravityMultiplier float64                     `yaml:"fall_gravity_multiplier"`
	SwipeThreshold        float64                     `yaml:"swipe_threshold"`
	JumpKeyframe          int                         `yaml:"jump_keyframe"`
	Lives                 int                         `yaml:"lives"`
	Flash                 FlashSpec                   `yaml:"flash"`
	Collider              ColliderSpec                `yaml:"collider"`
	Animations            map[string]AnimationDefSpec `yaml:"animations"`
	Skins                 []SkinSpec                  `yaml:"skins"`
}

func (s PlayerSpec) Validate() error {
	if s.FallGravityMultiplier < 1 || s.FallGravityMultiplier > 5 {
		return fmt.Errorf("prefabs: player fall_gravity_multiplier %v outside [1,5]: %w", s.FallGravityMultiplier, ErrInvalidSpec)
	}
	if len(s.Skins) != SkinCount {
		return fmt.Errorf("prefabs: player has %d skins, want %d: %w", len(s.Skins), SkinCount, ErrInvalidSpec)
	}
	if s.Flash.Count <= 0 || s.Flash.FlickDuration <= 0 {
		return fmt.Errorf("prefabs: player flash needs a positive count and flick_duration: %w", ErrInvalidSpec)
	}
	if s.Lives <= 0 {
		return fmt.Errorf("prefabs: player lives must be positive: %w", ErrInvalidSpec)
	}
	jump, ok := s.Animations["jump"]
	if !ok || s.JumpKeyframe < 1 || s.JumpKeyframe >= jump.FrameCount {
		return fmt.Errorf("prefabs: player jump_keyframe %d outside the jump clip: %w", s.JumpKeyframe, ErrInvalidSpec)
	}
	return nil
}

func LoadPlayerSpec() (*PlayerSpec, error) {
	spec, err := LoadSpec[PlayerSpec]("player.yaml")
	if err != nil {
		return nil, err
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return &spec, nil
}

type FoxSpec struct {
	Kind           string                      `yaml:"kind"`
	RunSpeed       float64                     `yaml:"run_speed"`
	DeadZone       float64                     `yaml:"dead_zone"`
	AttackDistance float64                     `yaml:"attack_distance"`
	LungeX         float64                     `yaml:"lunge_x"`
	LungeY         float64                     `yaml:"lunge_y"`
	JumpDistance   float64                     `yaml:"jump_distance"`
	JumpImpulse    float64                     `yaml:"jump_impulse"`
	Script         string                      `yaml:"script"`
	Tutorial       string                      `yaml:"tutorial"`
	Color          *YAMLColor                  `yaml:"color"`
	Collider       ColliderSpec                `yaml:"collider"`
	Animations     map[string]AnimationDefSpec `yaml:"animations"`
}

func (s FoxSpec) Validate() error {
	if strings.TrimSpace(s.Kind) == "" {
		return fmt.Errorf("prefabs: fox spec without kind: %w", ErrInvalidSpec)
	}
	if s.RunSpeed >= 0 {
		return fmt.Errorf("prefabs: fox %s run_speed must be negative: %w", s.Kind, ErrInvalidSpec)
	}
	if s.AttackDistance <= 0 {
		return fmt.Errorf("prefabs: fox %s attack_distance must be positive: %w", s.Kind, ErrInvalidSpec)
	}
	return nil
}

// LoadFoxSpec loads fox_<kind>.yaml.
func LoadFoxSpec(kind string) (*FoxSpec, error) {
	spec, err := LoadSpec[FoxSpec](fmt.Sprintf("fox_%s.yaml", kind))
	if err != nil {
		return nil, err
	}
	if spec.Kind == "" {
		spec.Kind = kind
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return &spec, nil
}

type SpawnerSpec struct {
	X             float64  `yaml:"x"`
	Y             float64  `yaml:"y"`
	Interval      float64  `yaml:"interval"`
	Kinds         []string `yaml:"kinds"`
	TutorialKinds []string `yaml:"tutorial_kinds"`
}

func (s SpawnerSpec) Validate() error {
	if s.Interval <= 0 {
		return fmt.Errorf("prefabs: spawner interval %v must be positive: %w", s.Interval, ErrInvalidSpec)
	}
	if len(s.Kinds) == 0 {
		return fmt.Errorf("prefabs: spawner has no kinds: %w", ErrInvalidSpec)
	}
	return nil
}

func LoadSpawnerSpec() (*SpawnerSpec, error) {
	spec, err := LoadSpec[SpawnerSpec]("spawner.yaml")
	if err != nil {
		return nil, err
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return &spec, nil
}

type WorldSpec struct {
	Gravity         float64    `yaml:"gravity"`
	GroundY         float64    `yaml:"ground_y"`
	GroundLeft      float64    `yaml:"ground_left"`
	GroundRight     float64    `yaml:"ground_right"`
	ScrollSpeed     float64    `yaml:"scroll_speed"`
	StepsMultiplier float64    `yaml:"steps_multiplier"`
	Background      *YAMLColor `yaml:"background"`
	GroundColor     *YAMLColor `yaml:"ground_color"`
}

func LoadWorldSpec() (*WorldSpec, error) {
	spec, err := LoadSpec[WorldSpec]("world.yaml")
	if err != nil {
		return nil, err
	}
	if spec.GroundRight <= spec.GroundLeft {
		return nil, fmt.Errorf("prefabs: world ground extent is empty: %w", ErrInvalidSpec)
	}
	return &spec, nil
}

type YAMLColor struct {
	color.Color
}

// Or returns the color, or fallback when unset.
func (c *YAMLColor) Or(fallback color.Color) color.Color {
	if c == nil || c.Color == nil {
		return fallback
	}
	return c.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}
