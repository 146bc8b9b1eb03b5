package material

import (
	"sync"
)

// material is the implementation of the Material interface.
type material struct {
	mu           *sync.Mutex
	name         string
	baseColor    [4]float32
	metallic     float32
	roughness    float32
	reflectivity float32
	texture      string
	hueShift     float32
	distort      bool
}

// Material defines the interface for a surface material assigned to mesh nodes.
//
// Surface properties (name, base color, metallic, roughness, reflectivity, texture) are set at
// construction and are read-only through this interface. The hue shift is mutable so chapter
// texture transitions can animate it while the material is shared by many meshes.
type Material interface {
	// Name retrieves the material identifier.
	//
	// Returns:
	//   - string: the name of the material
	Name() string

	// BaseColor retrieves the albedo/diffuse RGBA color of the material.
	//
	// Returns:
	//   - [4]float32: the base color as RGBA values
	BaseColor() [4]float32

	// Metallic retrieves the metallic factor of the material.
	// A value of 0.0 represents a dielectric surface, 1.0 represents a fully metallic surface.
	//
	// Returns:
	//   - float32: the metallic factor
	Metallic() float32

	// Roughness retrieves the roughness factor of the material.
	// A value of 0.0 represents a perfectly smooth surface, 1.0 represents a fully rough surface.
	//
	// Returns:
	//   - float32: the roughness factor
	Roughness() float32

	// Reflectivity retrieves the specular reflectivity of the material.
	//
	// Returns:
	//   - float32: the reflectivity in [0, 1]
	Reflectivity() float32

	// Texture retrieves the path of the diffuse texture, or "" if the material is untextured.
	//
	// Returns:
	//   - string: the texture path
	Texture() string

	// Distort reports whether the texture is sampled through the distortion pass.
	//
	// Returns:
	//   - bool: true if distortion is enabled
	Distort() bool

	// HueShift retrieves the current hue rotation applied to the texture, in turns.
	//
	// Returns:
	//   - float32: the hue shift
	HueShift() float32

	// SetHueShift sets the hue rotation applied to the texture.
	//
	// Parameters:
	//   - shift: the hue shift in turns
	SetHueShift(shift float32)

	// Clone returns an independent copy of the material.
	//
	// Returns:
	//   - Material: the copy
	Clone() Material
}

var _ Material = &material{}

// NewMaterial creates a new Material instance configured with the provided options.
//
// Parameters:
//   - options: variadic list of MaterialBuilderOption functions to configure the material
//
// Returns:
//   - Material: a new Material instance
func NewMaterial(options ...MaterialBuilderOption) Material {
	m := &material{
		mu:        &sync.Mutex{},
		baseColor: [4]float32{1, 1, 1, 1},
		metallic:  0.0,
		roughness: 1.0,
	}
	for _, opt := range options {
		opt(m)
	}
	return m
}

func (m *material) Name() string {
	return m.name
}

func (m *material) BaseColor() [4]float32 {
	return m.baseColor
}

func (m *material) Metallic() float32 {
	return m.metallic
}

func (m *material) Roughness() float32 {
	return m.roughness
}

func (m *material) Reflectivity() float32 {
	return m.reflectivity
}

func (m *material) Texture() string {
	return m.texture
}

func (m *material) Distort() bool {
	return m.distort
}

func (m *material) HueShift() float32 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.hueShift
}

func (m *material) SetHueShift(shift float32) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hueShift = shift
}

func (m *material) Clone() Material {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := *m
	c.mu = &sync.Mutex{}
	return &c
}
