package lattice

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeneratePlantCounts(t *testing.T) {
	tubes, rods := Generate(DefaultTubeCount, DefaultRodStride, DefaultRodCount)
	assert.Len(t, tubes, 451)
	assert.Len(t, rods, 37)
}

func TestGenerateSequentialIDs(t *testing.T) {
	for _, count := range []int{1, 37, 200, 451} {
		tubes, _ := Generate(count, DefaultRodStride, DefaultRodCount)
		require.Len(t, tubes, count)
		for i, n := range tubes {
			assert.Equal(t, i, n.ID)
		}
	}
}

func TestGenerateDeterministic(t *testing.T) {
	a, aRods := Generate(451, 12, 37)
	b, bRods := Generate(451, 12, 37)
	assert.Equal(t, a, b)
	assert.Equal(t, aRods, bRods)
}

func TestGenerateThermalAttributes(t *testing.T) {
	tubes, _ := Generate(451, 12, 37)
	for _, n := range tubes {
		assert.GreaterOrEqual(t, n.FluxFraction, float32(0), "node %d", n.ID)
		assert.LessOrEqual(t, n.FluxFraction, float32(1), "node %d", n.ID)
		assert.False(t, math32.IsNaN(n.TemperatureC), "node %d", n.ID)
		assert.False(t, math32.IsInf(n.TemperatureC, 0), "node %d", n.ID)
		assert.GreaterOrEqual(t, n.TemperatureC, float32(0), "node %d", n.ID)
	}
}

func TestFluxDecreasesOutward(t *testing.T) {
	tubes, _ := Generate(451, 12, 37)
	var center, edge Node
	center, edge = tubes[0], tubes[0]
	for _, n := range tubes {
		if n.DistanceFromCenter < center.DistanceFromCenter {
			center = n
		}
		if n.DistanceFromCenter > edge.DistanceFromCenter {
			edge = n
		}
	}
	assert.Greater(t, center.FluxFraction, edge.FluxFraction)
	assert.Greater(t, center.TemperatureC, edge.TemperatureC)
}

func TestControlRodSelection(t *testing.T) {
	cases := []struct {
		name              string
		tubes, stride, maxRods int
		wantRods          int
	}{
		{"plant counts", 451, 12, 37, 37},
		{"uncapped", 100, 10, 50, 10},
		{"cap applies", 100, 2, 5, 5},
		{"stride one", 10, 1, 100, 10},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tubes, rods := Generate(tc.tubes, tc.stride, tc.maxRods)
			require.Len(t, rods, tc.wantRods)

			// Rods must be a strict subsequence of the tube list by ID order.
			prev := -1
			for _, r := range rods {
				assert.Greater(t, r.ID, prev)
				assert.Equal(t, tubes[r.ID], r)
				prev = r.ID
			}
		})
	}
}

func TestGenerateClampsDegenerateInputs(t *testing.T) {
	tubes, rods := Generate(-5, 0, -1)
	assert.Empty(t, tubes)
	assert.Empty(t, rods)

	// Requesting more than the profile holds clamps to capacity.
	tubes, _ = Generate(Capacity()+100, 12, 37)
	assert.Len(t, tubes, Capacity())
}

func TestSingleNodeLattice(t *testing.T) {
	tubes, rods := Generate(1, 1, 1)
	require.Len(t, tubes, 1)
	require.Len(t, rods, 1)
	assert.False(t, math32.IsNaN(tubes[0].X))
	assert.False(t, math32.IsNaN(tubes[0].Z))

	// The only kept node sits at the edge of the row profile, so it is its
	// own outermost radius: zero flux, base temperature.
	assert.Equal(t, float32(0), tubes[0].FluxFraction)
	assert.InDelta(t, BaseTemperatureC, tubes[0].TemperatureC, 1e-4)
}

func TestGeneratorCaching(t *testing.T) {
	g := NewGenerator()
	first := g.Nodes()
	assert.Len(t, first, DefaultTubeCount)
	assert.Equal(t, DefaultRodCount, g.RodCount())

	// Same parameters: the cached slice is reused.
	again := g.Nodes()
	require.Len(t, again, len(first))
	assert.Same(t, &first[0], &again[0])

	// Unchanged SetCounts must not invalidate the cache.
	g.SetCounts(DefaultTubeCount, DefaultRodStride, DefaultRodCount)
	same := g.Nodes()
	assert.Same(t, &first[0], &same[0])

	// A real change regenerates.
	g.SetCounts(100, 10, 5)
	changed := g.Nodes()
	assert.Len(t, changed, 100)
	assert.Len(t, g.ControlRods(), 5)
}

func TestGeneratorOptions(t *testing.T) {
	g := NewGenerator(WithTubeCount(60), WithRodStride(6), WithMaxRodCount(4))
	assert.Equal(t, 60, g.TubeCount())
	assert.Len(t, g.Nodes(), 60)
	assert.Equal(t, 4, g.RodCount())
}
