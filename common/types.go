// package common contains common types that are used throughout this module. They are not interface-wrapped structs, just plain structs that express
// commonly used data-types such as vectors and authored object placements.
package common

import (
	"fmt"

	"github.com/chewxy/math32"
	"gopkg.in/yaml.v3"
)

// Vec3 is a three component vector used for positions, Euler rotations and scales.
// In YAML it accepts either a mapping ({x: 1, y: 2, z: 3}) or a single scalar, which is expanded to a uniform vector.
type Vec3 struct {
	X float32 `yaml:"x"`
	Y float32 `yaml:"y"`
	Z float32 `yaml:"z"`
}

// Uniform returns a vector with all three components set to v.
//
// Parameters:
//   - v: the value for every component
//
// Returns:
//   - Vec3: the uniform vector
func Uniform(v float32) Vec3 {
	return Vec3{X: v, Y: v, Z: v}
}

// Array returns the vector as a [3]float32.
func (v Vec3) Array() [3]float32 {
	return [3]float32{v.X, v.Y, v.Z}
}

// Radians converts a vector of angles in degrees to radians.
func (v Vec3) Radians() Vec3 {
	return Vec3{X: DegToRad(v.X), Y: DegToRad(v.Y), Z: DegToRad(v.Z)}
}

// UnmarshalYAML implements yaml.Unmarshaler so authored configs can write `scale: 1`.
func (v *Vec3) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		var s float32
		if err := value.Decode(&s); err != nil {
			return fmt.Errorf("vec3 scalar: %w", err)
		}
		*v = Uniform(s)
		return nil
	}

	type plain Vec3
	p := plain(*v)
	if err := value.Decode(&p); err != nil {
		return fmt.Errorf("vec3: %w", err)
	}
	*v = Vec3(p)
	return nil
}

// Transform is an authored position, Euler rotation (degrees) and scale.
// A nil Scale means "leave the current scale alone", matching the authored configs where scale is optional.
type Transform struct {
	// Position is the translation relative to the parent node.
	Position *Vec3 `yaml:"position,omitempty"`

	// Rotation is the Euler rotation in degrees, applied in XYZ order.
	Rotation *Vec3 `yaml:"rotate,omitempty"`

	// Scale is the per-axis scale factor.
	Scale *Vec3 `yaml:"scale,omitempty"`
}

// Placement is a Transform plus the shadow flags an authored decoration may carry.
// A nil flag leaves the node's current flag alone.
type Placement struct {
	Transform `yaml:",inline"`

	// CastShadow marks the node as a shadow caster.
	CastShadow *bool `yaml:"castShadow,omitempty"`

	// ReceiveShadow marks the node as a shadow receiver.
	ReceiveShadow *bool `yaml:"receiveShadow,omitempty"`
}

// At returns a Placement with only the position set.
//
// Parameters:
//   - x, y, z: the position
//
// Returns:
//   - Placement: the placement
func At(x, y, z float32) Placement {
	return Placement{Transform: Transform{Position: &Vec3{X: x, Y: y, Z: z}}}
}

// Rotated returns a copy of p with its rotation (degrees) set.
func (p Placement) Rotated(x, y, z float32) Placement {
	p.Rotation = &Vec3{X: x, Y: y, Z: z}
	return p
}

// Scaled returns a copy of p with its scale set.
func (p Placement) Scaled(x, y, z float32) Placement {
	p.Scale = &Vec3{X: x, Y: y, Z: z}
	return p
}

// Shadows returns a copy of p with both shadow flags set to the given values.
func (p Placement) Shadows(cast, receive bool) Placement {
	p.CastShadow = &cast
	p.ReceiveShadow = &receive
	return p
}

// ShadowFlags returns the shadow flags, treating unset flags as false.
func (p Placement) ShadowFlags() (cast, receive bool) {
	if p.CastShadow != nil {
		cast = *p.CastShadow
	}
	if p.ReceiveShadow != nil {
		receive = *p.ReceiveShadow
	}
	return cast, receive
}

// DegToRad converts degrees to radians.
func DegToRad(deg float32) float32 {
	return deg * math32.Pi / 180
}
