package light

// ShadowMapResolution is the default width and height in texels of a shadow depth texture.
// Story lights size their maps to the viewport instead.
const ShadowMapResolution = 2048

// DefaultShadowNear is the default near plane of a shadow camera.
const DefaultShadowNear float32 = 0.1

// DefaultShadowFar is the default far plane of a shadow camera.
const DefaultShadowFar float32 = 2550.0

// DefaultShadowBias is the constant depth bias applied to shadow comparisons
// to reduce shadow acne artifacts.
const DefaultShadowBias float32 = 0.001

// Shadow holds the shadow map settings of a shadow casting light.
type Shadow struct {
	// MapWidth and MapHeight are the depth texture size in texels.
	MapWidth  int
	MapHeight int

	// Near and Far bound the shadow camera.
	Near float32
	Far  float32

	Bias float32
}

// DefaultShadow returns the shadow settings used when none are configured.
func DefaultShadow() Shadow {
	return Shadow{
		MapWidth:  ShadowMapResolution,
		MapHeight: ShadowMapResolution,
		Near:      DefaultShadowNear,
		Far:       DefaultShadowFar,
		Bias:      DefaultShadowBias,
	}
}
