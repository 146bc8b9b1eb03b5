package camera

// ControllerBuilderOption is a function that configures a fixed controller during construction.
type ControllerBuilderOption func(*fixedController)

// WithPosition sets the controller's initial position.
//
// Parameters:
//   - x, y, z: world-space coordinates
//
// Returns:
//   - ControllerBuilderOption: option function to apply
func WithPosition(x, y, z float32) ControllerBuilderOption {
	return func(c *fixedController) {
		c.position = [3]float32{x, y, z}
	}
}

// WithTarget sets the controller's initial look-at point.
//
// Parameters:
//   - x, y, z: world-space coordinates
//
// Returns:
//   - ControllerBuilderOption: option function to apply
func WithTarget(x, y, z float32) ControllerBuilderOption {
	return func(c *fixedController) {
		c.target = [3]float32{x, y, z}
	}
}
