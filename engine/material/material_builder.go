package material

// MaterialBuilderOption is a function that configures a material instance during construction.
type MaterialBuilderOption func(*material)

// WithName is an option builder that sets the name of the material.
//
// Parameters:
//   - name: the identifier for the material
//
// Returns:
//   - MaterialBuilderOption: a function that applies the name option to a material
func WithName(name string) MaterialBuilderOption {
	return func(m *material) {
		m.name = name
	}
}

// WithBaseColor is an option builder that sets the albedo/diffuse RGBA color of the material.
//
// Parameters:
//   - color: the base color as RGBA float32 values
//
// Returns:
//   - MaterialBuilderOption: a function that applies the base color option to a material
func WithBaseColor(color [4]float32) MaterialBuilderOption {
	return func(m *material) {
		m.baseColor = color
	}
}

// WithHexColor sets the base color from a packed 0xRRGGBB value with full opacity.
//
// Parameters:
//   - hex: the packed color
//
// Returns:
//   - MaterialBuilderOption: a function that applies the base color option to a material
func WithHexColor(hex uint32) MaterialBuilderOption {
	return func(m *material) {
		m.baseColor = HexToRGBA(hex)
	}
}

// WithMetallic is an option builder that sets the metallic factor of the material.
//
// Parameters:
//   - metallic: the metallic factor (0.0 = dielectric, 1.0 = metal)
//
// Returns:
//   - MaterialBuilderOption: a function that applies the metallic option to a material
func WithMetallic(metallic float32) MaterialBuilderOption {
	return func(m *material) {
		m.metallic = metallic
	}
}

// WithRoughness is an option builder that sets the roughness factor of the material.
//
// Parameters:
//   - roughness: the roughness factor (0.0 = smooth, 1.0 = rough)
//
// Returns:
//   - MaterialBuilderOption: a function that applies the roughness option to a material
func WithRoughness(roughness float32) MaterialBuilderOption {
	return func(m *material) {
		m.roughness = roughness
	}
}

// WithReflectivity sets the specular reflectivity of the material.
func WithReflectivity(reflectivity float32) MaterialBuilderOption {
	return func(m *material) {
		m.reflectivity = reflectivity
	}
}

// WithTexture sets the diffuse texture path along with its hue shift and distortion flag.
//
// Parameters:
//   - path: the texture path
//   - hueShift: the initial hue shift in turns
//   - distort: whether the texture is sampled through the distortion pass
//
// Returns:
//   - MaterialBuilderOption: a function that applies the texture option to a material
func WithTexture(path string, hueShift float32, distort bool) MaterialBuilderOption {
	return func(m *material) {
		m.texture = path
		m.hueShift = hueShift
		m.distort = distort
	}
}

// HexToRGBA unpacks a 0xRRGGBB color into normalized RGBA with alpha 1.
func HexToRGBA(hex uint32) [4]float32 {
	return [4]float32{
		float32((hex>>16)&0xff) / 255,
		float32((hex>>8)&0xff) / 255,
		float32(hex&0xff) / 255,
		1,
	}
}
