package story

// Fov returns the vertical field of view in degrees for a viewport. Landscape viewports use a fixed
// 35 degrees; portrait viewports widen it so the scene keeps its horizontal extent.
//
// Parameters:
//   - width, height: the viewport size
//
// Returns:
//   - float32: the field of view in degrees
func Fov(width, height int) float32 {
	if width > height || width <= 0 || height <= 0 {
		return 35
	}
	w, h := float32(width), float32(height)
	return 32 * h / min(1.3*w, h)
}

// Aspect returns width / height, or 1 for an empty viewport.
func Aspect(width, height int) float32 {
	if width <= 0 || height <= 0 {
		return 1
	}
	return float32(width) / float32(height)
}

// ScenePosition returns the vertical texture offset of a scene index.
//
// Parameters:
//   - height: the viewport height
//   - textureRatio: the backdrop texture aspect ratio
//   - index: the scene index
//
// Returns:
//   - float32: the offset
func ScenePosition(height int, textureRatio float32, index int) float32 {
	return float32(height) * textureRatio * float32(index)
}
