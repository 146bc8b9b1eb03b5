package camera

import (
	"sync"
)

// Controller defines where the camera is and what it looks at.
// The camera rig is the main implementation; FixedController covers static shots.
type Controller interface {
	// Position returns the camera's world-space position.
	//
	// Returns:
	//   - x, y, z: world-space camera position
	Position() (x, y, z float32)

	// Target returns the look-at point.
	//
	// Returns:
	//   - x, y, z: world-space target position
	Target() (x, y, z float32)
}

// fixedController is a Controller with a directly set position and target.
type fixedController struct {
	mu       *sync.Mutex
	position [3]float32
	target   [3]float32
}

// FixedController is a Controller whose pose is set directly.
type FixedController interface {
	Controller

	// SetPosition sets the camera's world-space position.
	//
	// Parameters:
	//   - x, y, z: world-space coordinates
	SetPosition(x, y, z float32)

	// SetTarget sets the look-at point.
	//
	// Parameters:
	//   - x, y, z: world-space coordinates
	SetTarget(x, y, z float32)
}

var _ FixedController = &fixedController{}

// NewFixedController creates a FixedController configured with the provided options.
// It defaults to the origin looking down -Z.
//
// Parameters:
//   - options: variadic list of ControllerBuilderOption functions
//
// Returns:
//   - FixedController: the controller
func NewFixedController(options ...ControllerBuilderOption) FixedController {
	c := &fixedController{
		mu:     &sync.Mutex{},
		target: [3]float32{0, 0, -1},
	}
	for _, opt := range options {
		opt(c)
	}
	return c
}

func (c *fixedController) Position() (x, y, z float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.position[0], c.position[1], c.position[2]
}

func (c *fixedController) Target() (x, y, z float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.target[0], c.target[1], c.target[2]
}

func (c *fixedController) SetPosition(x, y, z float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.position = [3]float32{x, y, z}
}

func (c *fixedController) SetTarget(x, y, z float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.target = [3]float32{x, y, z}
}
