package plant

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/demireidel/Atucha-II-Max/core/lattice"
)

func TestBuildHallMeshesCoversEveryBatch(t *testing.T) {
	meshes := buildHallMeshes(10)

	names := make(map[string]bool, len(meshes))
	for _, m := range meshes {
		names[m.Name] = true
		assert.NotEmpty(t, m.Vertices, "mesh %s has no vertices", m.Name)
		assert.NotEmpty(t, m.Indices, "mesh %s has no indices", m.Name)
	}

	for _, want := range []string{
		meshPressureTube, meshControlRod, meshCorePlate,
		meshCalandriaRing, meshHallFloor, meshSupportColumn,
	} {
		assert.True(t, names[want], "missing mesh batch %s", want)
	}
}

func TestLatticeRadiusTracksOutermostTube(t *testing.T) {
	nodes := []lattice.Node{
		{DistanceFromCenter: 2.5},
		{DistanceFromCenter: 7.25},
		{DistanceFromCenter: 4.0},
	}
	assert.InDelta(t, 7.25, latticeRadius(nodes), 1e-6)
}

func TestLatticeRadiusFloorsAtPitch(t *testing.T) {
	assert.InDelta(t, lattice.Pitch, latticeRadius(nil), 1e-6)
	assert.InDelta(t, lattice.Pitch, latticeRadius([]lattice.Node{{DistanceFromCenter: 0}}), 1e-6)
}

func TestTemperatureTintWarmsHotTubes(t *testing.T) {
	base := [4]float32{0.5, 0.5, 0.5, 1}

	cold := temperatureTint(lattice.BaseTemperatureC, base)
	hot := temperatureTint(lattice.BaseTemperatureC+lattice.TemperatureGradientC*20, base)

	require.Equal(t, float32(1), cold[3])
	assert.Greater(t, hot[0], cold[0], "hot tubes should shift red")
	assert.Less(t, hot[2], cold[2], "hot tubes should lose blue")
	for i := range 3 {
		assert.LessOrEqual(t, hot[i], float32(1))
		assert.GreaterOrEqual(t, hot[i], float32(0))
	}
}

func TestDefaultTourIsPlayable(t *testing.T) {
	route := DefaultTour()
	require.NotEmpty(t, route)
	for _, w := range route {
		assert.NotEmpty(t, w.Name)
		assert.Positive(t, w.Transition, "waypoint %s", w.Name)
		assert.GreaterOrEqual(t, w.Hold, float32(0), "waypoint %s", w.Name)
	}
}

func TestFactsheetSummarizesDefaultCore(t *testing.T) {
	gen := lattice.NewGenerator()

	sheet := Factsheet(gen)

	assert.Contains(t, sheet, "Pressure tubes:   451")
	assert.Contains(t, sheet, "Control rods:     37")
	assert.Contains(t, sheet, "Lattice pitch:    1.12")
}
