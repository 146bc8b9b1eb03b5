package node

import (
	"github.com/Carmen-Shannon/oxy-story/engine/material"
)

// NodeBuilderOption is a function that configures a node during construction.
type NodeBuilderOption func(*node)

// WithName sets the node name.
//
// Parameters:
//   - name: the name
//
// Returns:
//   - NodeBuilderOption: option function to apply
func WithName(name string) NodeBuilderOption {
	return func(n *node) {
		n.name = name
	}
}

// WithMaterial sets the material of the node.
//
// Parameters:
//   - m: the material
//
// Returns:
//   - NodeBuilderOption: option function to apply
func WithMaterial(m material.Material) NodeBuilderOption {
	return func(n *node) {
		n.mat = m
	}
}

// WithPosition sets the initial local translation.
func WithPosition(x, y, z float32) NodeBuilderOption {
	return func(n *node) {
		n.position = [3]float32{x, y, z}
	}
}

// WithRotation sets the initial local Euler rotation in radians.
func WithRotation(x, y, z float32) NodeBuilderOption {
	return func(n *node) {
		n.rotation = [3]float32{x, y, z}
	}
}

// WithScale sets the initial local scale.
func WithScale(x, y, z float32) NodeBuilderOption {
	return func(n *node) {
		n.scale = [3]float32{x, y, z}
	}
}

// WithChildren attaches children at construction.
//
// Parameters:
//   - children: the nodes to attach
//
// Returns:
//   - NodeBuilderOption: option function to apply
func WithChildren(children ...Node) NodeBuilderOption {
	return func(n *node) {
		n.AddChild(children...)
	}
}

// WithGeometry sets the procedural geometry of a mesh node.
//
// Parameters:
//   - kind: the generator
//   - params: generator parameters
//
// Returns:
//   - NodeBuilderOption: option function to apply
func WithGeometry(kind GeometryKind, params map[string]float32) NodeBuilderOption {
	return func(n *node) {
		n.geometry = Geometry{Kind: kind, Params: params}
	}
}
