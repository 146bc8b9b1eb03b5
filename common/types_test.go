package common

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestVec3ScalarExpandsToUniform(t *testing.T) {
	var p Placement
	src := "scale: 0.46\nposition: {x: 178, y: -95, z: 10}\nrotate: {x: 12, y: 60}\ncastShadow: true\n"
	require.NoError(t, yaml.Unmarshal([]byte(src), &p))

	require.NotNil(t, p.Scale)
	assert.Equal(t, Uniform(0.46), *p.Scale)
	assert.Equal(t, Vec3{X: 178, Y: -95, Z: 10}, *p.Position)
	assert.Equal(t, Vec3{X: 12, Y: 60}, *p.Rotation)
	require.NotNil(t, p.CastShadow)
	assert.True(t, *p.CastShadow)
	assert.Nil(t, p.ReceiveShadow)

	cast, receive := p.ShadowFlags()
	assert.True(t, cast)
	assert.False(t, receive)
}

func TestVec3RejectsGarbage(t *testing.T) {
	var v Vec3
	assert.Error(t, yaml.Unmarshal([]byte("abc"), &v))
}

func TestPlacementHelpers(t *testing.T) {
	p := At(1, 2, 3).Rotated(0, 90, 0).Scaled(2, 2, 2).Shadows(true, false)
	assert.Equal(t, Vec3{X: 1, Y: 2, Z: 3}, *p.Position)
	assert.InDelta(t, math32.Pi/2, p.Rotation.Radians().Y, 1e-6)
	assert.Equal(t, Uniform(2), *p.Scale)
	cast, receive := p.ShadowFlags()
	assert.True(t, cast)
	assert.False(t, receive)
}

func TestSceneKey(t *testing.T) {
	i, ok := SceneKey(Key3)
	assert.True(t, ok)
	assert.Equal(t, 3, i)

	_, ok = SceneKey(KeySpace)
	assert.False(t, ok)
}

func TestTransformPoint(t *testing.T) {
	m := make([]float32, 16)
	BuildModelMatrix(m, 10, 0, 0, 0, math32.Pi/2, 0, 1, 1, 1)
	x, y, z := TransformPoint(m, 0, 0, 1)
	assert.InDelta(t, 11, x, 1e-5)
	assert.InDelta(t, 0, y, 1e-5)
	assert.InDelta(t, 0, z, 1e-5)
}

func TestEulerRoundTrip(t *testing.T) {
	m := make([]float32, 16)
	BuildModelMatrix(m, 1, 2, 3, 0.3, -0.7, 0.2, 2, 3, 4)

	pos, rot, scale := DecomposeMatrix(m)
	assert.InDeltaSlice(t, []float32{1, 2, 3}, pos[:], 1e-5)
	assert.InDeltaSlice(t, []float32{0.3, -0.7, 0.2}, rot[:], 1e-4)
	assert.InDeltaSlice(t, []float32{2, 3, 4}, scale[:], 1e-4)
}

func TestEulerFromQuatAboutY(t *testing.T) {
	half := math32.Pi / 4
	rot := EulerFromQuat([4]float32{0, math32.Sin(half), 0, math32.Cos(half)})
	assert.InDeltaSlice(t, []float32{0, math32.Pi / 2, 0}, rot[:], 1e-5)
}
