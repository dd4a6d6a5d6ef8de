package prefabs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

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

// EntityBuildSpec is a named bag of components keyed by registry name.
type EntityBuildSpec struct {
	Name       string         `yaml:"name"`
	Components map[string]any `yaml:"components"`
}

func LoadEntityBuildSpec(filename string) (EntityBuildSpec, error) {
	return LoadSpec[EntityBuildSpec](filename)
}

// DecodeComponentSpec re-decodes one loosely typed component entry into its
// concrete spec type.
func DecodeComponentSpec[T any](raw any) (T, error) {
	var zero T
	if raw == nil {
		return zero, nil
	}
	b, err := yaml.Marshal(raw)
	if err != nil {
		return zero, err
	}
	var out T
	if err := yaml.Unmarshal(b, &out); err != nil {
		return zero, err
	}
	return out, nil
}

type Vec2Spec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type TransformComponentSpec struct {
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	Rotation float64 `yaml:"rotation"`
}

type PhysicsBodyComponentSpec struct {
	Width          float64 `yaml:"width"`
	Height         float64 `yaml:"height"`
	Radius         float64 `yaml:"radius"`
	Mass           float64 `yaml:"mass"`
	Friction       float64 `yaml:"friction"`
	Elasticity     float64 `yaml:"elasticity"`
	Static         bool    `yaml:"static"`
	FreezeRotation bool    `yaml:"freeze_rotation"`
}

type GravityScaleComponentSpec struct {
	Scale float64 `yaml:"scale"`
}

type KeyBindingsSpec struct {
	Up    string `yaml:"up"`
	Down  string `yaml:"down"`
	Left  string `yaml:"left"`
	Right string `yaml:"right"`
}

// MovementComponentSpec uses pointers where the zero value is a legal
// setting, so an omitted field keeps the controller default.
type MovementComponentSpec struct {
	MoveSpeed         *float64        `yaml:"move_speed"`
	SmoothMovement    *bool           `yaml:"smooth_movement"`
	SmoothTime        *float64        `yaml:"smooth_time"`
	Keys              KeyBindingsSpec `yaml:"keys"`
	ConstrainMovement *bool           `yaml:"constrain_movement"`
	MinBounds         *Vec2Spec       `yaml:"min_bounds"`
	MaxBounds         *Vec2Spec       `yaml:"max_bounds"`
}

type CameraComponentSpec struct {
	Target     string  `yaml:"target"`
	Zoom       float64 `yaml:"zoom"`
	Smoothness float64 `yaml:"smoothness"`
}

type ShapeRenderComponentSpec struct {
	Width  float64    `yaml:"width"`
	Height float64    `yaml:"height"`
	Radius float64    `yaml:"radius"`
	Color  *YAMLColor `yaml:"color"`
	Layer  int        `yaml:"layer"`
}

type ArenaBoundsComponentSpec struct {
	Min Vec2Spec `yaml:"min"`
	Max Vec2Spec `yaml:"max"`
}

// YAMLColor accepts "#rrggbb" or "#rrggbbaa".
type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")
	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	var ch [4]uint8
	ch[3] = 0xff
	for i := 0; i < len(s)/2; i++ {
		v, err := strconv.ParseUint(s[i*2:i*2+2], 16, 8)
		if err != nil {
			return fmt.Errorf("invalid color format: %s", value.Value)
		}
		ch[i] = uint8(v)
	}

	c.Color = color.NRGBA{R: ch[0], G: ch[1], B: ch[2], A: ch[3]}
	return nil
}

// MarshalYAML keeps DecodeComponentSpec round trips lossless.
func (c YAMLColor) MarshalYAML() (any, error) {
	if c.Color == nil {
		return nil, nil
	}
	n := color.NRGBAModel.Convert(c.Color).(color.NRGBA)
	return fmt.Sprintf("#%02x%02x%02x%02x", n.R, n.G, n.B, n.A), nil
}
