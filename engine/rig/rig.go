// Package rig implements the camera rig that eases the viewpoint between chapter poses.
//
// The rig is a small node hierarchy: a root positioned at the pose depth and rotated about Y by the
// horizon angle, and a camera null pushed out along the root's +Z axis by the pole position plus the
// dolly length. The camera sits at a fixed offset from the null and looks at the pole at its own
// height. Anything attached to the null (the light group) follows the camera.
package rig

import (
	"sync"

	"github.com/chewxy/math32"

	"github.com/Carmen-Shannon/oxy-story/common"
	"github.com/Carmen-Shannon/oxy-story/engine/camera"
	"github.com/Carmen-Shannon/oxy-story/engine/easing"
	"github.com/Carmen-Shannon/oxy-story/engine/node"
)

const (
	// DefaultRate is the exponential convergence rate per second.
	DefaultRate float32 = 3.0

	// DefaultEpsilon is the per-field distance under which the pose snaps to the target.
	DefaultEpsilon float32 = 1e-3
)

// Phase is the transition state of the rig.
type Phase int

const (
	// PhaseIdle means no target has been assigned yet.
	PhaseIdle Phase = iota

	// PhaseTransitioning means the pose is easing toward the target.
	PhaseTransitioning

	// PhaseSettled means the pose equals the target.
	PhaseSettled
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseTransitioning:
		return "transitioning"
	case PhaseSettled:
		return "settled"
	}
	return "unknown"
}

// State is a camera rig pose.
type State struct {
	Depth        float32
	DollyLength  float32
	PolePosition float32

	// HorizonAngle is the rotation about Y in radians.
	HorizonAngle float32
}

// rigImpl is the implementation of the Rig interface.
type rigImpl struct {
	mu *sync.Mutex

	rate    float32
	epsilon float32
	offset  [3]float32

	pose    State
	target  State
	phase   Phase
	started bool

	root       node.Node
	cameraNull node.Node
}

// Rig defines the interface for the story camera rig.
type Rig interface {
	camera.Controller

	// ChangeStateTo records a new target pose. Before the first Update the pose snaps to the target
	// so the camera starts there without a visible transition.
	//
	// Parameters:
	//   - s: the target pose
	ChangeStateTo(s State)

	// Update eases the pose toward the target. Call it once per frame before rendering.
	// The ease depends on dt only.
	//
	// Parameters:
	//   - dt: seconds since the previous frame
	//   - t: seconds since the loop started
	//
	// Returns:
	//   - Phase: the phase after the step
	Update(dt, t float32) Phase

	// Pose returns the current pose.
	//
	// Returns:
	//   - State: the pose
	Pose() State

	// TargetState returns the pose being approached.
	//
	// Returns:
	//   - State: the target pose
	TargetState() State

	// Phase returns the current transition phase.
	Phase() Phase

	// Root returns the rig's root node.
	Root() node.Node

	// CameraNull returns the node that carries the camera. Children of it follow the camera.
	//
	// Returns:
	//   - node.Node: the camera null
	CameraNull() node.Node
}

var _ Rig = &rigImpl{}

// NewRig creates a new Rig configured with the provided options.
//
// Parameters:
//   - options: variadic list of RigBuilderOption functions
//
// Returns:
//   - Rig: the rig
func NewRig(options ...RigBuilderOption) Rig {
	r := &rigImpl{
		mu:      &sync.Mutex{},
		rate:    DefaultRate,
		epsilon: DefaultEpsilon,
		offset:  [3]float32{0, 800, 1950},
		phase:   PhaseIdle,
	}
	for _, opt := range options {
		opt(r)
	}

	r.cameraNull = node.NewGroup(node.WithName("cameraNull"))
	r.root = node.NewGroup(node.WithName("cameraRig"), node.WithChildren(r.cameraNull))
	r.applyPose()
	return r
}

func (r *rigImpl) ChangeStateTo(s State) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.target = s
	if !r.started {
		r.pose = s
		r.phase = PhaseSettled
		r.applyPose()
		return
	}
	r.phase = PhaseTransitioning
}

func (r *rigImpl) Update(dt, t float32) Phase {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.started = true
	if r.phase != PhaseTransitioning {
		return r.phase
	}

	r.pose.Depth = r.step(r.pose.Depth, r.target.Depth, dt)
	r.pose.DollyLength = r.step(r.pose.DollyLength, r.target.DollyLength, dt)
	r.pose.PolePosition = r.step(r.pose.PolePosition, r.target.PolePosition, dt)
	r.pose.HorizonAngle = r.step(r.pose.HorizonAngle, r.target.HorizonAngle, dt)

	if r.pose == r.target {
		r.phase = PhaseSettled
	}
	r.applyPose()
	return r.phase
}

// step eases one field and snaps it once within epsilon.
func (r *rigImpl) step(current, target, dt float32) float32 {
	next := easing.Approach(current, target, r.rate, dt)
	if math32.Abs(target-next) <= r.epsilon {
		return target
	}
	return next
}

func (r *rigImpl) Pose() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pose
}

func (r *rigImpl) TargetState() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.target
}

func (r *rigImpl) Phase() Phase {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.phase
}

func (r *rigImpl) Root() node.Node {
	return r.root
}

func (r *rigImpl) CameraNull() node.Node {
	return r.cameraNull
}

func (r *rigImpl) Position() (x, y, z float32) {
	m := r.cameraNull.WorldMatrix()
	return common.TransformPoint(m[:], r.offset[0], r.offset[1], r.offset[2])
}

func (r *rigImpl) Target() (x, y, z float32) {
	r.mu.Lock()
	arm := r.pose.PolePosition + r.pose.DollyLength
	r.mu.Unlock()

	// The pole at camera height, in root space. A camera standing on the pole looks down -Z instead.
	lz := float32(0)
	if math32.Abs(arm+r.offset[2]) < 1e-6 {
		lz = arm + r.offset[2] - 1
	}
	m := r.root.WorldMatrix()
	return common.TransformPoint(m[:], r.offset[0], r.offset[1], lz)
}

// applyPose writes the pose to the rig nodes. Caller must hold the mutex.
func (r *rigImpl) applyPose() {
	r.root.SetPosition(0, 0, r.pose.Depth)
	r.root.SetRotation(0, r.pose.HorizonAngle, 0)
	r.cameraNull.SetPosition(0, 0, r.pose.PolePosition+r.pose.DollyLength)
}
