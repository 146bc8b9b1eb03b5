package renderer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Carmen-Shannon/oxy-story/common"
	"github.com/Carmen-Shannon/oxy-story/engine/camera"
	"github.com/Carmen-Shannon/oxy-story/engine/material"
	"github.com/Carmen-Shannon/oxy-story/engine/node"
)

var identity = [16]float32{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1}

func newNullRenderer(t *testing.T, options ...RendererBuilderOption) (Renderer, *nullRendererBackend) {
	t.Helper()
	r, err := NewRenderer(append([]RendererBuilderOption{WithBackend(BackendTypeNull)}, options...)...)
	require.NoError(t, err)
	return r, r.(*renderer).backend.(*nullRendererBackend)
}

func TestNewRenderer_WGPUNeedsWindow(t *testing.T) {
	_, err := NewRenderer()
	assert.ErrorIs(t, err, ErrNoWindow)
}

func TestParseBackendType(t *testing.T) {
	bt, ok := ParseBackendType("null")
	assert.True(t, ok)
	assert.Equal(t, BackendTypeNull, bt)

	bt, ok = ParseBackendType("")
	assert.True(t, ok)
	assert.Equal(t, BackendTypeWGPU, bt)

	_, ok = ParseBackendType("vulkan")
	assert.False(t, ok)
}

func TestCollect_SkipsHiddenSubtrees(t *testing.T) {
	hidden := node.NewGroup(node.WithName("hidden"), node.WithChildren(
		node.NewMesh(node.WithName("under-hidden")),
	))
	hidden.SetVisible(false)
	root := node.NewGroup(node.WithChildren(
		node.NewMesh(node.WithName("a")),
		hidden,
		node.NewGroup(node.WithChildren(node.NewMesh(node.WithName("b")))),
	))

	items := collect(root, identity)
	require.Len(t, items, 2)
	assert.Equal(t, "a", items[0].Name)
	assert.Equal(t, "b", items[1].Name)
	assert.Nil(t, collect(nil, identity))
}

func TestCollect_ScalesProxyByGeometry(t *testing.T) {
	box := node.NewMesh(
		node.WithPosition(10, 0, 0),
		node.WithGeometry(node.GeometryBox, map[string]float32{"width": 2, "height": 4, "depth": 6}),
		node.WithMaterial(material.NewMaterial(material.WithHexColor(0xFF0000))),
	)
	box.SetShadows(true, false)

	items := collect(node.NewGroup(node.WithChildren(box)), identity)
	require.Len(t, items, 1)
	it := items[0]

	x, y, z := common.TransformPoint(it.MVP[:], 0.5, 0.5, 0.5)
	assert.InDelta(t, 11, x, 1e-5)
	assert.InDelta(t, 2, y, 1e-5)
	assert.InDelta(t, 3, z, 1e-5)
	assert.InDelta(t, 1, it.Color[0], 1e-6)
	assert.InDelta(t, 0, it.Color[1], 1e-6)
	assert.True(t, it.CastShadow)
	assert.False(t, it.ReceiveShadow)
}

func TestCollect_AppliesMaterialHueShift(t *testing.T) {
	m := material.NewMaterial(material.WithHexColor(0xFF0000))
	mesh := node.NewMesh(node.WithMaterial(m))
	root := node.NewGroup(node.WithChildren(mesh))

	m.SetHueShift(1.0 / 3)
	c := collect(root, identity)[0].Color
	assert.InDelta(t, 0, c[0], 1e-5)
	assert.InDelta(t, 1, c[1], 1e-5)
	assert.InDelta(t, 0, c[2], 1e-5)
	assert.InDelta(t, 1, c[3], 1e-6)

	m.SetHueShift(0)
	assert.Equal(t, m.BaseColor(), collect(root, identity)[0].Color)
}

func TestHueRotateKeepsGray(t *testing.T) {
	gray := [4]float32{0.4, 0.4, 0.4, 0.5}
	got := hueRotate(gray, -0.25)
	for i := range got {
		assert.InDelta(t, gray[i], got[i], 1e-5)
	}
}

func TestExtent(t *testing.T) {
	tests := []struct {
		name    string
		g       node.Geometry
		x, y, z float32
	}{
		{"none", node.Geometry{}, 1, 1, 1},
		{"sphere", node.Geometry{Kind: node.GeometrySphere, Params: map[string]float32{"radius": 3}}, 6, 6, 6},
		{"cylinder", node.Geometry{Kind: node.GeometryCylinder, Params: map[string]float32{"radius": 1, "height": 5}}, 2, 5, 2},
		{"ring", node.Geometry{Kind: node.GeometryRing, Params: map[string]float32{"innerRadius": 1, "outerRadius": 4}}, 8, 8, 1},
		{"plane", node.Geometry{Kind: node.GeometryPlane, Params: map[string]float32{"width": 2048, "height": 1024}}, 2048, 1024, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y, z := extent(tt.g)
			assert.Equal(t, tt.x, x)
			assert.Equal(t, tt.y, y)
			assert.Equal(t, tt.z, z)
		})
	}
}

func TestRenderer_RenderRecordsFrame(t *testing.T) {
	r, backend := newNullRenderer(t, WithSize(640, 480), WithClearColor(0x5F458C))
	cam := camera.NewCamera(camera.WithController(camera.NewFixedController(camera.WithPosition(0, 0, 10))))

	root := node.NewGroup(node.WithChildren(node.NewMesh(), node.NewMesh()))
	require.NoError(t, r.Render(root, cam))
	require.NoError(t, r.Render(root, cam))

	stats := r.LastFrame()
	assert.Equal(t, uint64(2), stats.Frame)
	assert.Equal(t, 2, stats.Draws)
	assert.Equal(t, 640, stats.Width)
	assert.Equal(t, 2, backend.frames)
	assert.InDelta(t, 0x5F/255.0, backend.clear[0], 1e-9)
	assert.InDelta(t, 0x8C/255.0, backend.clear[2], 1e-9)
}

func TestRenderer_Resize(t *testing.T) {
	r, backend := newNullRenderer(t, WithSize(640, 480))

	r.Resize(1024, 768)
	assert.Equal(t, 1024, backend.width)
	assert.Equal(t, 768, backend.height)

	r.Resize(0, 768)
	assert.Equal(t, 1024, backend.width, "empty sizes are ignored")

	r.SetPresentMode(PresentModeUncapped)
	assert.Equal(t, PresentModeUncapped, backend.presentMode)

	r.Close()
	assert.True(t, backend.released)
}

func TestEncodeInstances(t *testing.T) {
	items := []DrawItem{{MVP: identity, Color: [4]float32{0.25, 0.5, 0.75, 1}}, {}}
	buf := encodeInstances(items)
	require.Len(t, buf, 2*instanceSize)
	// mvp[0] == 1.0f
	assert.Equal(t, []byte{0, 0, 0x80, 0x3F}, buf[0:4])
	// color.r == 0.25f
	assert.Equal(t, []byte{0, 0, 0x80, 0x3E}, buf[64:68])
}
