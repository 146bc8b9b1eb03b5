// Package node provides the in-memory scene graph the story is assembled from.
// Nodes are either groups or meshes; meshes carry a material.
package node

import (
	"sync"
	"sync/atomic"

	"github.com/Carmen-Shannon/oxy-story/common"
	"github.com/Carmen-Shannon/oxy-story/engine/material"
)

// node is the implementation of the Node interface.
type node struct {
	mu *sync.Mutex

	name          string
	mesh          bool
	mat           material.Material
	geometry      Geometry
	position      [3]float32
	rotation      [3]float32
	scale         [3]float32
	visible       bool
	castShadow    bool
	receiveShadow bool

	parent   atomic.Pointer[node]
	children atomic.Pointer[[]Node]
}

// Node defines the interface for a scene graph element.
//
// Transforms are local to the parent. Child lists are copy-on-write: AddChild publishes a new
// slice with a single atomic store, so a traversal running concurrently never observes a
// partially attached subtree.
type Node interface {
	// Name retrieves the node name.
	//
	// Returns:
	//   - string: the name
	Name() string

	// SetName sets the node name.
	//
	// Parameters:
	//   - name: the new name
	SetName(name string)

	// IsMesh reports whether the node carries geometry.
	//
	// Returns:
	//   - bool: true for mesh nodes, false for groups
	IsMesh() bool

	// Material retrieves the material of a mesh node, or nil.
	//
	// Returns:
	//   - material.Material: the material
	Material() material.Material

	// Geometry retrieves the procedural geometry of a mesh node. Decoded meshes keep their
	// vertex data with the asset and report a zero Geometry.
	//
	// Returns:
	//   - Geometry: the geometry
	Geometry() Geometry

	// SetMaterial replaces the material of the node.
	//
	// Parameters:
	//   - m: the material
	SetMaterial(m material.Material)

	// Position retrieves the local translation.
	//
	// Returns:
	//   - [3]float32: the position
	Position() [3]float32

	// SetPosition sets the local translation.
	//
	// Parameters:
	//   - x, y, z: the position
	SetPosition(x, y, z float32)

	// Rotation retrieves the local Euler rotation in radians.
	//
	// Returns:
	//   - [3]float32: the rotation
	Rotation() [3]float32

	// SetRotation sets the local Euler rotation in radians.
	//
	// Parameters:
	//   - x, y, z: the rotation
	SetRotation(x, y, z float32)

	// Scale retrieves the local scale.
	//
	// Returns:
	//   - [3]float32: the scale
	Scale() [3]float32

	// SetScale sets the local scale.
	//
	// Parameters:
	//   - x, y, z: the scale
	SetScale(x, y, z float32)

	// Visible reports whether the node and its subtree are drawn.
	//
	// Returns:
	//   - bool: the visibility flag
	Visible() bool

	// SetVisible sets the visibility flag.
	//
	// Parameters:
	//   - visible: true to draw the subtree
	SetVisible(visible bool)

	// Shadows retrieves the shadow flags.
	//
	// Returns:
	//   - cast: true if the node casts shadows
	//   - receive: true if the node receives shadows
	Shadows() (cast, receive bool)

	// SetShadows sets the shadow flags.
	//
	// Parameters:
	//   - cast: true if the node casts shadows
	//   - receive: true if the node receives shadows
	SetShadows(cast, receive bool)

	// Apply applies an authored placement. Nil transform fields leave the current value alone.
	//
	// Parameters:
	//   - p: the placement
	Apply(p common.Placement)

	// Parent retrieves the parent node, or nil for a root.
	//
	// Returns:
	//   - Node: the parent
	Parent() Node

	// Children retrieves a snapshot of the child list.
	//
	// Returns:
	//   - []Node: the children, in insertion order
	Children() []Node

	// AddChild appends children to this node. Children created outside this package are ignored.
	//
	// Parameters:
	//   - children: the nodes to attach
	AddChild(children ...Node)

	// Traverse calls fn for this node and every descendant, depth first.
	//
	// Parameters:
	//   - fn: the visitor
	Traverse(fn func(n Node))

	// Clone returns a deep copy of the subtree. Materials are shared, not copied.
	//
	// Returns:
	//   - Node: the copy, detached from any parent
	Clone() Node

	// LocalMatrix returns the column-major matrix built from the local transform.
	//
	// Returns:
	//   - [16]float32: the matrix
	LocalMatrix() [16]float32

	// WorldMatrix returns the column-major matrix from local space to the root's space.
	//
	// Returns:
	//   - [16]float32: the matrix
	WorldMatrix() [16]float32
}

var _ Node = &node{}

// NewGroup creates a new group Node configured with the provided options.
//
// Parameters:
//   - options: variadic list of NodeBuilderOption functions to configure the node
//
// Returns:
//   - Node: a new group node
func NewGroup(options ...NodeBuilderOption) Node {
	return newNode(false, options...)
}

// NewMesh creates a new mesh Node configured with the provided options.
//
// Parameters:
//   - options: variadic list of NodeBuilderOption functions to configure the node
//
// Returns:
//   - Node: a new mesh node
func NewMesh(options ...NodeBuilderOption) Node {
	return newNode(true, options...)
}

func newNode(mesh bool, options ...NodeBuilderOption) *node {
	n := &node{
		mu:      &sync.Mutex{},
		mesh:    mesh,
		scale:   [3]float32{1, 1, 1},
		visible: true,
	}
	empty := []Node{}
	n.children.Store(&empty)
	for _, opt := range options {
		opt(n)
	}
	return n
}

func (n *node) Name() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.name
}

func (n *node) SetName(name string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.name = name
}

func (n *node) IsMesh() bool {
	return n.mesh
}

func (n *node) Material() material.Material {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.mat
}

func (n *node) Geometry() Geometry {
	return n.geometry
}

func (n *node) SetMaterial(m material.Material) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.mat = m
}

func (n *node) Position() [3]float32 {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.position
}

func (n *node) SetPosition(x, y, z float32) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.position = [3]float32{x, y, z}
}

func (n *node) Rotation() [3]float32 {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.rotation
}

func (n *node) SetRotation(x, y, z float32) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.rotation = [3]float32{x, y, z}
}

func (n *node) Scale() [3]float32 {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.scale
}

func (n *node) SetScale(x, y, z float32) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.scale = [3]float32{x, y, z}
}

func (n *node) Visible() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.visible
}

func (n *node) SetVisible(visible bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.visible = visible
}

func (n *node) Shadows() (bool, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.castShadow, n.receiveShadow
}

func (n *node) SetShadows(cast, receive bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.castShadow = cast
	n.receiveShadow = receive
}

func (n *node) Apply(p common.Placement) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if p.Position != nil {
		n.position = p.Position.Array()
	}
	if p.Rotation != nil {
		n.rotation = p.Rotation.Radians().Array()
	}
	if p.Scale != nil {
		n.scale = p.Scale.Array()
	}
	if p.CastShadow != nil {
		n.castShadow = *p.CastShadow
	}
	if p.ReceiveShadow != nil {
		n.receiveShadow = *p.ReceiveShadow
	}
}

func (n *node) Parent() Node {
	p := n.parent.Load()
	if p == nil {
		return nil
	}
	return p
}

func (n *node) Children() []Node {
	return *n.children.Load()
}

func (n *node) AddChild(children ...Node) {
	attach := make([]Node, 0, len(children))
	for _, c := range children {
		cn, ok := c.(*node)
		if !ok || cn == nil || cn == n {
			continue
		}
		if old := cn.parent.Load(); old != nil {
			old.removeChild(cn)
		}
		cn.parent.Store(n)
		attach = append(attach, cn)
	}
	if len(attach) == 0 {
		return
	}

	n.mu.Lock()
	defer n.mu.Unlock()
	current := *n.children.Load()
	next := make([]Node, 0, len(current)+len(attach))
	next = append(next, current...)
	next = append(next, attach...)
	n.children.Store(&next)
}

func (n *node) removeChild(child *node) {
	n.mu.Lock()
	defer n.mu.Unlock()
	current := *n.children.Load()
	next := make([]Node, 0, len(current))
	for _, c := range current {
		if c != Node(child) {
			next = append(next, c)
		}
	}
	n.children.Store(&next)
}

func (n *node) Traverse(fn func(n Node)) {
	fn(n)
	for _, c := range n.Children() {
		c.Traverse(fn)
	}
}

func (n *node) Clone() Node {
	n.mu.Lock()
	c := &node{
		mu:            &sync.Mutex{},
		name:          n.name,
		mesh:          n.mesh,
		mat:           n.mat,
		geometry:      n.geometry,
		position:      n.position,
		rotation:      n.rotation,
		scale:         n.scale,
		visible:       n.visible,
		castShadow:    n.castShadow,
		receiveShadow: n.receiveShadow,
	}
	n.mu.Unlock()

	children := n.Children()
	copied := make([]Node, 0, len(children))
	for _, child := range children {
		cc := child.Clone().(*node)
		cc.parent.Store(c)
		copied = append(copied, cc)
	}
	c.children.Store(&copied)
	return c
}

func (n *node) LocalMatrix() [16]float32 {
	n.mu.Lock()
	defer n.mu.Unlock()
	var m [16]float32
	common.BuildModelMatrix(m[:],
		n.position[0], n.position[1], n.position[2],
		n.rotation[0], n.rotation[1], n.rotation[2],
		n.scale[0], n.scale[1], n.scale[2],
	)
	return m
}

func (n *node) WorldMatrix() [16]float32 {
	m := n.LocalMatrix()
	for p := n.parent.Load(); p != nil; p = p.parent.Load() {
		pm := p.LocalMatrix()
		common.Mul4(m[:], pm[:], m[:])
	}
	return m
}
