package camera

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
)

func TestOrbitControllerPositionFromSpherical(t *testing.T) {
	cc := NewOrbitController(
		WithTarget(0, 10, 0),
		WithRadius(50),
		WithAzimuth(0),
		WithElevation(0.5),
	)

	x, y, z := cc.Position()
	assert.InDelta(t, 0, x, 1e-4)
	assert.InDelta(t, 10+50*math32.Sin(0.5), y, 1e-3)
	assert.InDelta(t, 50*math32.Cos(0.5), z, 1e-3)
}

func TestSetPoseResyncsSpherical(t *testing.T) {
	cc := NewOrbitController(WithRadiusBounds(1, 1000))

	cc.SetPose(0, 30, 40, 0, 0, 0)
	assert.InDelta(t, 50, cc.Radius(), 1e-3)
	assert.InDelta(t, math32.Asin(30.0/50.0), cc.Elevation(), 1e-3)

	// Orbit input after a pose hand-off moves smoothly from the new pose.
	before := cc.Azimuth()
	cc.OrbitRight()
	assert.Greater(t, cc.Azimuth(), before)

	px, py, pz := cc.Position()
	d := math32.Sqrt(px*px + py*py + pz*pz)
	assert.InDelta(t, 50, d, 1e-2)
}

func TestZoomClampsToBounds(t *testing.T) {
	cc := NewOrbitController(WithRadius(10), WithRadiusBounds(5, 20), WithZoomSpeed(100))
	cc.Zoom(1)
	assert.Equal(t, float32(5), cc.Radius())
	cc.Zoom(-1)
	assert.Equal(t, float32(20), cc.Radius())
}

func TestCameraMatrices(t *testing.T) {
	cam := NewCamera(
		WithFov(math32.Pi/3),
		WithAspect(16.0/9.0),
		WithNear(0.1),
		WithFar(500),
		WithController(NewOrbitController(WithTarget(0, 12, 0))),
	)

	cam.Update()
	view := cam.ViewMatrix()
	proj := cam.ProjectionMatrix()
	vp := cam.ViewProjectionMatrix()

	// The projection matrix has the WebGPU [0,1] depth convention markers.
	assert.InDelta(t, -1, proj[11], 1e-6)
	assert.NotEqual(t, [16]float32{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1}, view)
	assert.NotEqual(t, proj, vp)
}

func TestPanPreservesOrbitOffset(t *testing.T) {
	cc := NewOrbitController(WithTarget(0, 0, 0), WithRadius(30))
	r0 := cc.Radius()

	cc.PanRight(5)
	cc.PanForward(3)

	px, py, pz := cc.Position()
	tx, ty, tz := cc.Target()
	dx, dy, dz := px-tx, py-ty, pz-tz
	assert.InDelta(t, r0, math32.Sqrt(dx*dx+dy*dy+dz*dz), 1e-2)
}
