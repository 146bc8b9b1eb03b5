package light

import (
	"sync"

	"github.com/chewxy/math32"

	"github.com/Carmen-Shannon/oxy-story/common"
	"github.com/Carmen-Shannon/oxy-story/engine/node"
)

// DefaultAmbientColor is the color of the ambient light every story group carries.
const DefaultAmbientColor uint32 = 0x404040

// Config describes one authored light.
type Config struct {
	Name      string      `yaml:"name"`
	Type      string      `yaml:"type"`
	Color     uint32      `yaml:"color"`
	Intensity float32     `yaml:"intensity"`
	Range     float32     `yaml:"range,omitempty"`
	Decay     float32     `yaml:"decay,omitempty"`
	Position  common.Vec3 `yaml:"position"`
}

// StoryConfigs returns the key, fill and two point lights of the story scene.
// The key light sits at the scene depth, raised 15 degrees below the horizon.
//
// Parameters:
//   - sceneZ: the scene depth
//
// Returns:
//   - []Config: the light configs
func StoryConfigs(sceneZ float32) []Config {
	return []Config{
		{
			Name:      "DirectionalLight1",
			Type:      "directional",
			Color:     0xFFFFFF,
			Intensity: 0.84,
			Position:  common.Vec3{X: 0, Y: sceneZ * math32.Tan(common.DegToRad(-15)), Z: sceneZ},
		},
		{
			Name:      "DirectionalLight2",
			Type:      "directional",
			Color:     0xFFFFFF,
			Intensity: 0.7,
			Position:  common.Vec3{X: 0, Y: 500, Z: 0},
		},
		{
			Name:      "PointLight1",
			Type:      "point",
			Color:     0xF6F2FF,
			Intensity: 0.6,
			Range:     975,
			Decay:     2.0,
			Position:  common.Vec3{X: -785, Y: -350, Z: 710},
		},
		{
			Name:      "PointLight2",
			Type:      "point",
			Color:     0xF5FEFF,
			Intensity: 0.95,
			Range:     975,
			Decay:     2.0,
			Position:  common.Vec3{X: 730, Y: 800, Z: 985},
		},
	}
}

// group is the implementation of the Group interface.
type group struct {
	mu     *sync.Mutex
	lights []Light
	anchor node.Node
}

// Group is a set of lights positioned relative to an anchor node.
// Attaching the group to the camera rig's null makes the lights follow the camera.
type Group interface {
	// Lights returns the lights in creation order.
	//
	// Returns:
	//   - []Light: the lights
	Lights() []Light

	// Attach sets the anchor node the light positions are relative to.
	//
	// Parameters:
	//   - anchor: the node, or nil for world space
	Attach(anchor node.Node)

	// Anchor returns the current anchor, or nil.
	Anchor() node.Node

	// WorldPosition returns a light's position transformed by the anchor's world matrix.
	//
	// Parameters:
	//   - l: the light
	//
	// Returns:
	//   - [3]float32: the world-space position
	WorldPosition(l Light) [3]float32
}

var _ Group = &group{}

// GroupBuilderOption is a function that configures a light group during construction.
type GroupBuilderOption func(*groupSettings)

type groupSettings struct {
	shadow  Shadow
	ambient uint32
}

// WithShadowMapSize sizes the shadow maps of the group's point lights.
//
// Parameters:
//   - width, height: the map size in texels
//
// Returns:
//   - GroupBuilderOption: option function to apply
func WithShadowMapSize(width, height int) GroupBuilderOption {
	return func(s *groupSettings) {
		s.shadow.MapWidth = width
		s.shadow.MapHeight = height
	}
}

// WithShadowClip sets the near and far planes of the point light shadow cameras.
func WithShadowClip(near, far float32) GroupBuilderOption {
	return func(s *groupSettings) {
		s.shadow.Near = near
		s.shadow.Far = far
	}
}

// WithAmbient sets the color of the group's ambient light.
func WithAmbient(hex uint32) GroupBuilderOption {
	return func(s *groupSettings) {
		s.ambient = hex
	}
}

// NewGroup builds a light group from configs. Point lights cast shadows with the group's shadow
// settings. An ambient light is always appended. Configs with an unknown type are skipped.
//
// Parameters:
//   - configs: the authored lights
//   - options: variadic list of GroupBuilderOption functions
//
// Returns:
//   - Group: the light group
func NewGroup(configs []Config, options ...GroupBuilderOption) Group {
	s := &groupSettings{shadow: DefaultShadow(), ambient: DefaultAmbientColor}
	for _, opt := range options {
		opt(s)
	}

	g := &group{mu: &sync.Mutex{}}
	for _, c := range configs {
		opts := []LightBuilderOption{
			WithName(c.Name),
			WithHexColor(c.Color),
			WithIntensity(c.Intensity),
			WithPosition(c.Position.X, c.Position.Y, c.Position.Z),
		}
		switch c.Type {
		case "directional":
			g.lights = append(g.lights, NewLight(LightTypeDirectional, opts...))
		case "point":
			opts = append(opts, WithRange(c.Range), WithCastsShadows(true), WithShadow(s.shadow))
			if c.Decay != 0 {
				opts = append(opts, WithDecay(c.Decay))
			}
			g.lights = append(g.lights, NewLight(LightTypePoint, opts...))
		case "ambient":
			g.lights = append(g.lights, NewLight(LightTypeAmbient, opts...))
		}
	}
	g.lights = append(g.lights, NewLight(LightTypeAmbient, WithName("AmbientLight"), WithHexColor(s.ambient)))
	return g
}

func (g *group) Lights() []Light {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]Light, len(g.lights))
	copy(out, g.lights)
	return out
}

func (g *group) Attach(anchor node.Node) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.anchor = anchor
}

func (g *group) Anchor() node.Node {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.anchor
}

func (g *group) WorldPosition(l Light) [3]float32 {
	p := l.Position()
	anchor := g.Anchor()
	if anchor == nil {
		return p
	}
	m := anchor.WorldMatrix()
	x, y, z := common.TransformPoint(m[:], p[0], p[1], p[2])
	return [3]float32{x, y, z}
}
