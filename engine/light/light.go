package light

import (
	"github.com/Carmen-Shannon/oxy-story/engine/material"
)

// LightType identifies the kind of light source.
type LightType int

const (
	// LightTypeDirectional represents a light with no falloff that shines from its position toward the origin
	// of its parent. Used for the key and fill lights of every chapter.
	LightTypeDirectional LightType = iota

	// LightTypePoint represents a light that emits in all directions from a position.
	// Attenuates with distance up to a configurable range, using the configured decay exponent.
	LightTypePoint

	// LightTypeAmbient represents a flat light applied to every fragment regardless of position.
	LightTypeAmbient
)

// String returns the name used for the type in configuration files.
func (t LightType) String() string {
	switch t {
	case LightTypeDirectional:
		return "directional"
	case LightTypePoint:
		return "point"
	case LightTypeAmbient:
		return "ambient"
	}
	return "unknown"
}

// lightImpl is the implementation of the Light interface.
type lightImpl struct {
	name         string
	lightType    LightType
	position     [3]float32
	color        [3]float32
	intensity    float32
	lightRange   float32
	decay        float32
	enabled      bool
	castsShadows bool
	shadow       Shadow
}

// Light defines the interface for a light source in the story scene.
//
// Lights live in a Group and carry positions relative to the group's anchor node. Type-specific
// properties (range and decay for point lights) return zero values when not applicable.
type Light interface {
	// Name returns the light identifier.
	//
	// Returns:
	//   - string: the name
	Name() string

	// Type returns the kind of light source.
	//
	// Returns:
	//   - LightType: the light type (directional, point, or ambient)
	Type() LightType

	// Position returns the position of the light relative to its group anchor.
	// Meaningless for ambient lights.
	//
	// Returns:
	//   - [3]float32: position as (x, y, z)
	Position() [3]float32

	// Color returns the RGB color of the light.
	//
	// Returns:
	//   - [3]float32: color as (r, g, b)
	Color() [3]float32

	// Intensity returns the scalar intensity multiplier for the light.
	//
	// Returns:
	//   - float32: the intensity value
	Intensity() float32

	// Range returns the maximum attenuation distance for point lights. Zero means unlimited.
	//
	// Returns:
	//   - float32: the range value
	Range() float32

	// Decay returns the distance attenuation exponent for point lights.
	//
	// Returns:
	//   - float32: the decay exponent
	Decay() float32

	// Enabled returns whether this light is active for rendering.
	//
	// Returns:
	//   - bool: true if the light is enabled
	Enabled() bool

	// CastsShadows returns whether this light is eligible for shadow map generation.
	//
	// Returns:
	//   - bool: true if the light casts shadows
	CastsShadows() bool

	// Shadow returns the shadow map settings. Only meaningful when CastsShadows is true.
	//
	// Returns:
	//   - Shadow: the shadow settings
	Shadow() Shadow

	// SetPosition sets the position of the light relative to its group anchor.
	//
	// Parameters:
	//   - x, y, z: position components
	SetPosition(x, y, z float32)

	// SetColor sets the RGB color of the light.
	//
	// Parameters:
	//   - r, g, b: color components
	SetColor(r, g, b float32)

	// SetIntensity sets the scalar intensity multiplier.
	SetIntensity(intensity float32)

	// SetEnabled enables or disables the light for rendering.
	SetEnabled(enabled bool)

	// SetCastsShadows sets whether the light is eligible for shadow mapping.
	//
	// Parameters:
	//   - castsShadows: true to enable shadow casting
	SetCastsShadows(castsShadows bool)

	// SetShadow replaces the shadow map settings.
	//
	// Parameters:
	//   - s: the shadow settings
	SetShadow(s Shadow)
}

var _ Light = &lightImpl{}

// NewLight creates a new Light of the specified type with sensible defaults and
// any provided options applied.
//
// Parameters:
//   - lightType: the kind of light to create (directional, point, or ambient)
//   - opts: variadic list of LightBuilderOption functions to configure the light
//
// Returns:
//   - Light: a new Light instance
func NewLight(lightType LightType, opts ...LightBuilderOption) Light {
	l := &lightImpl{
		lightType: lightType,
		color:     [3]float32{1, 1, 1},
		intensity: 1.0,
		decay:     2.0,
		enabled:   true,
		shadow:    DefaultShadow(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *lightImpl) Name() string {
	return l.name
}

func (l *lightImpl) Type() LightType {
	return l.lightType
}

func (l *lightImpl) Position() [3]float32 {
	return l.position
}

func (l *lightImpl) Color() [3]float32 {
	return l.color
}

func (l *lightImpl) Intensity() float32 {
	return l.intensity
}

func (l *lightImpl) Range() float32 {
	if l.lightType != LightTypePoint {
		return 0
	}
	return l.lightRange
}

func (l *lightImpl) Decay() float32 {
	if l.lightType != LightTypePoint {
		return 0
	}
	return l.decay
}

func (l *lightImpl) Enabled() bool {
	return l.enabled
}

func (l *lightImpl) CastsShadows() bool {
	return l.castsShadows
}

func (l *lightImpl) Shadow() Shadow {
	return l.shadow
}

func (l *lightImpl) SetPosition(x, y, z float32) {
	l.position = [3]float32{x, y, z}
}

func (l *lightImpl) SetColor(r, g, b float32) {
	l.color = [3]float32{r, g, b}
}

func (l *lightImpl) SetIntensity(intensity float32) {
	l.intensity = intensity
}

func (l *lightImpl) SetEnabled(enabled bool) {
	l.enabled = enabled
}

func (l *lightImpl) SetCastsShadows(castsShadows bool) {
	l.castsShadows = castsShadows
}

func (l *lightImpl) SetShadow(s Shadow) {
	l.shadow = s
}

// hexToRGB converts 0xRRGGBB to normalized RGB.
func hexToRGB(hex uint32) [3]float32 {
	c := material.HexToRGBA(hex)
	return [3]float32{c[0], c[1], c[2]}
}
