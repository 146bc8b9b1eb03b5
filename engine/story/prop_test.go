package story

import (
	"testing"
	"time"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"

	"github.com/Carmen-Shannon/oxy-story/common"
	"github.com/Carmen-Shannon/oxy-story/config"
	"github.com/Carmen-Shannon/oxy-story/engine/easing"
	"github.com/Carmen-Shannon/oxy-story/engine/loader"
	"github.com/Carmen-Shannon/oxy-story/engine/node"
)

func suitcase() config.PropParams {
	p := config.PropParams{
		Descriptor: loader.Descriptor{Name: "suitcase", Type: loader.AssetTypeGLTF, Path: "suitcase.gltf"},
		FinalPosition: &common.Vec3{X: -280, Y: 510, Z: 800},
		FinalScale:    &common.Vec3{X: 1, Y: 1, Z: 1},
	}
	p.Placement = common.At(-300, 550, 780).Scaled(1, 1.02, 1).Rotated(0, -20, 0).Shadows(true, true)
	return p
}

func TestPropStartingPose(t *testing.T) {
	p := NewProp(node.NewMesh(), suitcase())
	assert.Equal(t, [3]float32{-300, 550, 780}, p.Root.Position())
	assert.Equal(t, [3]float32{1, 1.02, 1}, p.Root.Scale())
	assert.InDelta(t, common.DegToRad(-20), p.Fluctuation.Rotation()[1], 1e-6)
	assert.Equal(t, "suitcase", p.Mesh.Name())
	assert.Same(t, p.Fluctuation, p.Mesh.Parent())
}

func TestPropFallWindow(t *testing.T) {
	p := NewProp(node.NewMesh(), suitcase())
	p.AnimateAt(0.7)

	pos := p.Root.Position()
	assert.Equal(t, float32(-280), pos[0])
	assert.Equal(t, float32(800), pos[2])
	assert.InDelta(t, easing.Lerp(550, 510, 0.7/1.4), pos[1], 1e-4)
	assert.Equal(t, [3]float32{1, 1.02, 1}, p.Root.Scale())
}

func TestPropSquashWindow(t *testing.T) {
	p := NewProp(node.NewMesh(), suitcase())
	p.AnimateAt(1.7)

	y := easing.Lerp(1.02, 1, easing.InOutQuad((1.7-1.4)/(2.0-1.4)))
	xz := 1/math32.Sqrt(y) + 0.002
	scale := p.Root.Scale()
	assert.InDelta(t, y, scale[1], 1e-5)
	assert.InDelta(t, xz, scale[0], 1e-5)
	assert.Equal(t, scale[0], scale[2])
}

func TestPropWindowBoundaries(t *testing.T) {
	p := NewProp(node.NewMesh(), suitcase())

	p.AnimateAt(1.4)
	assert.InDelta(t, 1.02, p.Root.Scale()[1], 1e-5)
	assert.Equal(t, [3]float32{-300, 550, 780}, p.Root.Position())

	p.Root.SetScale(3, 3, 3)
	p.AnimateAt(2.0)
	p.AnimateAt(5)
	assert.Equal(t, [3]float32{3, 3, 3}, p.Root.Scale())
}

func TestPropAdvanceStartsClockLazily(t *testing.T) {
	p := NewProp(node.NewMesh(), suitcase())
	t0 := time.Now()

	p.Advance(t0.Add(time.Hour))
	assert.Equal(t, [3]float32{-300, 550, 780}, p.Root.Position())

	p.Advance(t0.Add(time.Hour + 700*time.Millisecond))
	assert.InDelta(t, 530, p.Root.Position()[1], 1e-3)
}

func TestLayout(t *testing.T) {
	assert.Equal(t, float32(35), Fov(1280, 720))
	assert.InDelta(t, 32*800/(1.3*600), Fov(600, 800), 1e-4)
	assert.InDelta(t, 32, Fov(800, 800), 1e-4)
	assert.Equal(t, float32(35), Fov(0, 0))
	assert.Equal(t, float32(1), Aspect(0, 10))
	assert.Equal(t, float32(0), ScenePosition(720, 2, 0))
	assert.Equal(t, float32(2880), ScenePosition(720, 2, 2))
}
