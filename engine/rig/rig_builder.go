package rig

// RigBuilderOption is a function that configures a rig during construction.
type RigBuilderOption func(*rigImpl)

// WithRate sets the exponential convergence rate per second.
//
// Parameters:
//   - rate: the rate; non-positive values are ignored
//
// Returns:
//   - RigBuilderOption: option function to apply
func WithRate(rate float32) RigBuilderOption {
	return func(r *rigImpl) {
		if rate > 0 {
			r.rate = rate
		}
	}
}

// WithEpsilon sets the snap distance.
func WithEpsilon(eps float32) RigBuilderOption {
	return func(r *rigImpl) {
		if eps >= 0 {
			r.epsilon = eps
		}
	}
}

// WithInitialState sets the starting pose and target.
//
// Parameters:
//   - s: the pose
//
// Returns:
//   - RigBuilderOption: option function to apply
func WithInitialState(s State) RigBuilderOption {
	return func(r *rigImpl) {
		r.pose = s
		r.target = s
	}
}

// WithCameraOffset sets the camera position relative to the camera null.
//
// Parameters:
//   - x, y, z: the offset
//
// Returns:
//   - RigBuilderOption: option function to apply
func WithCameraOffset(x, y, z float32) RigBuilderOption {
	return func(r *rigImpl) {
		r.offset = [3]float32{x, y, z}
	}
}
