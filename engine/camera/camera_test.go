package camera

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Carmen-Shannon/oxy-story/common"
)

func TestCameraFollowsController(t *testing.T) {
	ctrl := NewFixedController(WithPosition(0, 800, 1950), WithTarget(0, 800, 0))
	cam := NewCamera(WithController(ctrl), WithNear(0.1), WithFar(2550), WithFov(common.DegToRad(35)))

	view := cam.ViewMatrix()
	x, y, z := common.TransformPoint(view[:], 0, 800, 0)
	assert.InDelta(t, 0, x, 1e-3)
	assert.InDelta(t, 0, y, 1e-3)
	assert.InDelta(t, -1950, z, 1e-2)

	ctrl.SetPosition(0, 800, 1000)
	cam.Update()
	view = cam.ViewMatrix()
	_, _, z = common.TransformPoint(view[:], 0, 800, 0)
	assert.InDelta(t, -1000, z, 1e-2)
}

func TestCameraSettersUpdateProjection(t *testing.T) {
	cam := NewCamera()
	before := cam.ProjectionMatrix()
	cam.SetAspect(2)
	after := cam.ProjectionMatrix()
	assert.NotEqual(t, before, after)
	assert.Equal(t, float32(2), cam.Aspect())

	cam.SetFov(common.DegToRad(35))
	assert.InDelta(t, common.DegToRad(35), cam.Fov(), 1e-6)
	assert.Nil(t, cam.Controller())
}
