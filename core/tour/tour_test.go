package tour

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func threeStations() []Waypoint {
	return []Waypoint{
		{Name: "overview", Position: [3]float32{0, 40, 60}, Target: [3]float32{0, 10, 0}, Hold: 2, Transition: 3},
		{Name: "core top", Position: [3]float32{0, 25, 10}, Target: [3]float32{0, 12, 0}, Hold: 1.5, Transition: 2},
		{Name: "lattice", Position: [3]float32{8, 14, 8}, Target: [3]float32{0, 12, 0}, Hold: 1, Transition: 2},
	}
}

func TestStartRejectsEmptyList(t *testing.T) {
	c := NewController()
	err := c.Start(nil)
	assert.ErrorIs(t, err, ErrEmptyWaypoints)
	assert.Equal(t, Idle, c.Phase())
	assert.False(t, c.Active())
}

func TestStartEntersTransitioning(t *testing.T) {
	c := NewController(WithInitialPose(Pose{Position: [3]float32{0, 5, 100}}))
	require.NoError(t, c.Start(threeStations()))
	assert.Equal(t, Transitioning, c.Phase())
	assert.True(t, c.Active())
	assert.False(t, c.FreeOrbitEnabled())
}

func TestTransitionEasesBetweenPoses(t *testing.T) {
	start := Pose{Position: [3]float32{0, 0, 100}, Target: [3]float32{0, 0, 0}}
	c := NewController(WithInitialPose(start))
	wps := threeStations()
	require.NoError(t, c.Start(wps))

	// Halfway through the transition the smoothstep curve is at exactly 0.5.
	p := c.Tick(wps[0].Transition / 2)
	assert.InDelta(t, (start.Position[2]+wps[0].Position[2])/2, p.Position[2], 1e-3)
	assert.Equal(t, Transitioning, c.Phase())

	// The eased pose never overshoots either endpoint.
	assert.LessOrEqual(t, p.Position[1], wps[0].Position[1])
	assert.GreaterOrEqual(t, p.Position[1], start.Position[1])
}

func TestWaypointBoundary(t *testing.T) {
	c := NewController()
	wps := threeStations()
	require.NoError(t, c.Start(wps))

	const epsilon = 1e-3

	c.Tick(wps[0].Transition)
	assert.Equal(t, Holding, c.Phase())
	assert.Equal(t, wps[0].Pose(), c.Pose())

	// Completing the first hold (plus epsilon) lands exactly at the boundary
	// transitioning into the second waypoint.
	c.Tick(wps[0].Hold + epsilon)
	assert.Equal(t, Transitioning, c.Phase())
	current, ok := c.CurrentWaypoint()
	require.True(t, ok)
	assert.Equal(t, wps[1].Name, current.Name)
}

func TestFullPlaythroughReachesFinished(t *testing.T) {
	c := NewController()
	wps := threeStations()
	require.NoError(t, c.Start(wps))

	for i := 0; i < 200 && c.Phase() != Finished; i++ {
		c.Tick(0.1)
	}

	assert.Equal(t, Finished, c.Phase())
	assert.False(t, c.Active())
	assert.True(t, c.FreeOrbitEnabled())
	assert.Equal(t, wps[len(wps)-1].Pose(), c.Pose())

	// Further ticks keep the final pose.
	c.Tick(1)
	assert.Equal(t, wps[len(wps)-1].Pose(), c.Pose())
}

func TestStopMidTransitionKeepsPose(t *testing.T) {
	c := NewController(WithInitialPose(Pose{Position: [3]float32{0, 0, 100}}))
	wps := threeStations()
	require.NoError(t, c.Start(wps))

	mid := c.Tick(wps[0].Transition / 3)
	c.Stop()

	assert.Equal(t, Idle, c.Phase())
	assert.False(t, c.Active())
	assert.True(t, c.FreeOrbitEnabled())
	assert.Equal(t, mid, c.Pose())

	// Ticks after stop neither advance nor snap the pose.
	assert.Equal(t, mid, c.Tick(1))
}

func TestSkipMatchesHoldExpiry(t *testing.T) {
	wps := threeStations()

	natural := NewController()
	require.NoError(t, natural.Start(wps))
	natural.Tick(wps[0].Transition)
	natural.Tick(wps[0].Hold)

	skipped := NewController()
	require.NoError(t, skipped.Start(wps))
	skipped.Tick(wps[0].Transition)
	skipped.Skip()

	assert.Equal(t, natural.Phase(), skipped.Phase())
	assert.Equal(t, natural.Pose(), skipped.Pose())

	nw, _ := natural.CurrentWaypoint()
	sw, _ := skipped.CurrentWaypoint()
	assert.Equal(t, nw.Name, sw.Name)
}

func TestSkipOnLastWaypointFinishes(t *testing.T) {
	c := NewController()
	require.NoError(t, c.Start(threeStations()))
	c.Skip()
	c.Skip()
	assert.True(t, c.Active())
	c.Skip()
	assert.Equal(t, Finished, c.Phase())
	assert.False(t, c.Active())

	// Skip after finish is a no-op.
	c.Skip()
	assert.Equal(t, Finished, c.Phase())
}

func TestSingleWaypointSkipsTransitioning(t *testing.T) {
	c := NewController()
	only := []Waypoint{{Name: "overview", Position: [3]float32{0, 30, 50}, Hold: 1, Transition: 5}}
	require.NoError(t, c.Start(only))

	assert.Equal(t, Holding, c.Phase())
	assert.Equal(t, only[0].Pose(), c.Pose())

	c.Tick(1)
	assert.Equal(t, Finished, c.Phase())
}

func TestNegativeDeltaIsNoOp(t *testing.T) {
	c := NewController()
	wps := threeStations()
	require.NoError(t, c.Start(wps))

	before := c.Tick(1)
	assert.Equal(t, before, c.Tick(-5))
	assert.Equal(t, before, c.Tick(0))
	assert.Equal(t, Transitioning, c.Phase())
}

func TestSetPoseIgnoredDuringPlayback(t *testing.T) {
	c := NewController()
	require.NoError(t, c.Start(threeStations()))
	mid := c.Tick(0.5)
	c.SetPose(Pose{Position: [3]float32{99, 99, 99}})
	assert.Equal(t, mid, c.Pose())
}
