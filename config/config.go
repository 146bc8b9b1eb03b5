// Package config loads the authored story configuration and the process settings.
//
// The story file is YAML. The stock story is embedded and used as the base, so a file on disk only
// needs to carry the values it changes. Process settings come from the environment.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Carmen-Shannon/oxy-story/common"
	"github.com/Carmen-Shannon/oxy-story/engine/bubble"
	"github.com/Carmen-Shannon/oxy-story/engine/light"
	"github.com/Carmen-Shannon/oxy-story/engine/loader"
)

//go:embed story.yaml
var defaultStory []byte

// ErrNoChapters is returned when a story file defines no chapters.
var ErrNoChapters = errors.New("config: story has no chapters")

// Story is the complete authored configuration of the story scene.
type Story struct {
	Scene    Scene                 `yaml:"scene"`
	Rig      Rig                   `yaml:"rig"`
	Bubbles  bubble.Params         `yaml:"bubbles"`
	Lights   []light.Config        `yaml:"lights"`
	Ambient  uint32                `yaml:"ambient"`
	Intro    Intro                 `yaml:"intro"`
	Chapters []Chapter             `yaml:"chapters"`
	Props    map[string]PropParams `yaml:"props"`
}

// Scene holds the camera frustum, clear color and the pivot layout.
type Scene struct {
	Near         float32 `yaml:"near"`
	Far          float32 `yaml:"far"`
	TextureRatio float32 `yaml:"textureRatio"`
	Background   uint32  `yaml:"background"`

	// Depth is the scene extent along Z; the key light sits at this depth.
	Depth float32 `yaml:"depth"`

	// Camera is the camera position relative to the rig's camera null.
	Camera common.Vec3 `yaml:"camera"`

	// Pivot is the position of the group holding the chapters and the intro.
	Pivot common.Vec3 `yaml:"pivot"`

	// ChapterStep is the rotation in degrees between neighbouring chapters.
	ChapterStep float32 `yaml:"chapterStep"`
}

// Rig holds the camera rig parameters. Angles are in degrees.
type Rig struct {
	DeltaDepth        float32 `yaml:"deltaDepth"`
	DeltaHorizonAngle float32 `yaml:"deltaHorizonAngle"`
	Radius            float32 `yaml:"radius"`
	DollyLength       float32 `yaml:"dollyLength"`
	Rate              float32 `yaml:"rate"`
}

// Bob is a vertical sine motion.
type Bob struct {
	Amplitude float32 `yaml:"amplitude"`

	// Period is the length of one cycle in seconds.
	Period float32 `yaml:"period"`
}

// Intro configures the intro sequence shown at scene index 0.
type Intro struct {
	Position common.Vec3                 `yaml:"position"`
	Bob      Bob                         `yaml:"bob"`
	Shapes   map[string]common.Placement `yaml:"shapes"`
}

// HueAnimation describes an animated hue shift. Duration is in seconds.
type HueAnimation struct {
	Initial   float32 `yaml:"initial"`
	Final     float32 `yaml:"final"`
	Duration  float32 `yaml:"duration"`
	Variation float32 `yaml:"variation"`
}

// Texture is the hue and distortion setup of a chapter.
type Texture struct {
	// Tint is the 0xRRGGBB base color the hue shift rotates; zero keeps white.
	Tint     uint32        `yaml:"tint"`
	HueShift float32       `yaml:"hueShift"`
	Distort  bool          `yaml:"distort"`
	Hue      *HueAnimation `yaml:"hue,omitempty"`
}

// Chapter is the authored content of one story chapter.
type Chapter struct {
	Name    string  `yaml:"name"`
	Texture Texture `yaml:"texture"`

	// Models are loaded in order and attached once all of them finished.
	Models []loader.Descriptor `yaml:"models"`

	// Decorations are per-decoration placement overrides keyed by decoration name.
	Decorations map[string]common.Placement `yaml:"decorations"`
}

// Decoration returns the placement authored for name and whether one exists.
func (c Chapter) Decoration(name string) (common.Placement, bool) {
	p, ok := c.Decorations[name]
	return p, ok
}

// PropParams describe a freestanding prop: the asset to load plus its animation endpoints.
// The embedded placement is the starting pose.
type PropParams struct {
	loader.Descriptor `yaml:",inline"`

	FinalPosition *common.Vec3 `yaml:"finalPosition,omitempty"`
	FinalScale    *common.Vec3 `yaml:"finalScale,omitempty"`
}

// Default returns the stock story.
//
// Returns:
//   - *Story: the parsed story
//   - error: an error if the embedded file is invalid
func Default() (*Story, error) {
	var s Story
	if err := yaml.Unmarshal(defaultStory, &s); err != nil {
		return nil, fmt.Errorf("config: default story: %w", err)
	}
	return &s, nil
}

// Load reads a story file on top of the stock story. Keys missing from the file keep their stock
// values; lists present in the file replace the stock lists.
//
// Parameters:
//   - path: the YAML file
//
// Returns:
//   - *Story: the merged story
//   - error: an error if the file cannot be read or parsed
func Load(path string) (*Story, error) {
	s, err := Default()
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if len(s.Chapters) == 0 {
		return nil, ErrNoChapters
	}
	return s, nil
}

// LightConfigs returns the authored lights, or the stock story lights when none are authored.
func (s *Story) LightConfigs() []light.Config {
	if len(s.Lights) > 0 {
		return s.Lights
	}
	return light.StoryConfigs(s.Scene.Depth)
}

// Prop returns the prop params registered under name.
func (s *Story) Prop(name string) (PropParams, bool) {
	p, ok := s.Props[name]
	return p, ok
}
