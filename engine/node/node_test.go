package node

import (
	"sync"
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Carmen-Shannon/oxy-story/common"
	"github.com/Carmen-Shannon/oxy-story/engine/material"
)

func TestNewNodeDefaults(t *testing.T) {
	g := NewGroup(WithName("root"))
	assert.Equal(t, "root", g.Name())
	assert.False(t, g.IsMesh())
	assert.True(t, g.Visible())
	assert.Equal(t, [3]float32{1, 1, 1}, g.Scale())
	assert.Empty(t, g.Children())
	assert.Nil(t, g.Parent())
}

func TestAddChildReparents(t *testing.T) {
	a := NewGroup(WithName("a"))
	b := NewGroup(WithName("b"))
	c := NewMesh(WithName("c"))

	a.AddChild(c)
	require.Len(t, a.Children(), 1)
	assert.Equal(t, a, c.Parent())

	b.AddChild(c)
	assert.Empty(t, a.Children())
	require.Len(t, b.Children(), 1)
	assert.Equal(t, b, c.Parent())
}

func TestAddChildIgnoresSelf(t *testing.T) {
	a := NewGroup()
	a.AddChild(a, nil)
	assert.Empty(t, a.Children())
}

func TestTraverseVisitsDepthFirst(t *testing.T) {
	root := NewGroup(WithName("root"), WithChildren(
		NewGroup(WithName("left"), WithChildren(NewMesh(WithName("leaf")))),
		NewMesh(WithName("right")),
	))

	var names []string
	root.Traverse(func(n Node) { names = append(names, n.Name()) })
	assert.Equal(t, []string{"root", "left", "leaf", "right"}, names)
}

func TestCloneIsDeep(t *testing.T) {
	mat := material.NewMaterial(material.WithName("wood"))
	root := NewGroup(WithName("root"), WithChildren(NewMesh(WithName("leaf"), WithMaterial(mat))))

	c := root.Clone()
	require.Len(t, c.Children(), 1)
	leaf := c.Children()[0]
	assert.Equal(t, c, leaf.Parent())
	assert.Equal(t, mat, leaf.Material())

	leaf.SetName("renamed")
	leaf.SetPosition(1, 2, 3)
	assert.Equal(t, "leaf", root.Children()[0].Name())
	assert.Equal(t, [3]float32{}, root.Children()[0].Position())
}

func TestApplyPlacement(t *testing.T) {
	n := NewMesh(WithScale(2, 2, 2))
	n.Apply(common.At(-115, 40, 30).Rotated(180, 3, 0).Shadows(true, true))

	assert.Equal(t, [3]float32{-115, 40, 30}, n.Position())
	assert.InDelta(t, math32.Pi, n.Rotation()[0], 1e-5)
	assert.Equal(t, [3]float32{2, 2, 2}, n.Scale())
	cast, receive := n.Shadows()
	assert.True(t, cast)
	assert.True(t, receive)
}

func TestApplyKeepsUnsetShadowFlags(t *testing.T) {
	n := NewMesh()
	n.SetShadows(true, true)
	n.Apply(common.At(1, 2, 3))

	assert.Equal(t, [3]float32{1, 2, 3}, n.Position())
	cast, receive := n.Shadows()
	assert.True(t, cast)
	assert.True(t, receive)

	off := false
	n.Apply(common.Placement{ReceiveShadow: &off})
	cast, receive = n.Shadows()
	assert.True(t, cast)
	assert.False(t, receive)
	assert.Equal(t, [3]float32{1, 2, 3}, n.Position())
}

func TestWorldMatrixComposesParents(t *testing.T) {
	root := NewGroup(WithPosition(0, 1250, 0))
	child := NewGroup(WithPosition(0, -450, 4050))
	root.AddChild(child)

	m := child.WorldMatrix()
	x, y, z := common.TransformPoint(m[:], 0, 0, 0)
	assert.InDelta(t, 0, x, 1e-3)
	assert.InDelta(t, 800, y, 1e-3)
	assert.InDelta(t, 4050, z, 1e-3)
}

func TestConcurrentAddAndTraverse(t *testing.T) {
	root := NewGroup()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				root.AddChild(NewMesh())
				root.Traverse(func(Node) {})
			}
		}()
	}
	wg.Wait()
	assert.Len(t, root.Children(), 400)
}
