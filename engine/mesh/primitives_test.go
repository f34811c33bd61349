package mesh

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCylinderGeometry(t *testing.T) {
	m := NewCylinder("tube", 0.5, 10, 12, [4]float32{1, 1, 1, 1})
	require.NotEmpty(t, m.Vertices)
	require.NotEmpty(t, m.Indices)
	assert.Zero(t, m.IndexCount()%3)

	for _, i := range m.Indices {
		assert.Less(t, int(i), len(m.Vertices))
	}

	// Every vertex lies on or inside the cylinder surface.
	for _, v := range m.Vertices {
		r := math32.Hypot(v.Position[0], v.Position[2])
		assert.LessOrEqual(t, r, float32(0.5)+1e-4)
		assert.LessOrEqual(t, math32.Abs(v.Position[1]), float32(5)+1e-4)
	}

	assert.InDelta(t, math32.Sqrt(0.5*0.5+25), m.BoundingRadius(), 1e-3)
}

func TestCylinderSegmentFloor(t *testing.T) {
	m := NewCylinder("stub", 1, 1, 0, [4]float32{1, 0, 0, 1})
	assert.NotEmpty(t, m.Indices)
}

func TestBoxGeometry(t *testing.T) {
	m := NewBox("slab", 4, 2, 6, [4]float32{0.5, 0.5, 0.5, 1})
	assert.Len(t, m.Vertices, 24)
	assert.Len(t, m.Indices, 36)

	for _, v := range m.Vertices {
		assert.LessOrEqual(t, math32.Abs(v.Position[0]), float32(2))
		assert.LessOrEqual(t, math32.Abs(v.Position[1]), float32(1))
		assert.LessOrEqual(t, math32.Abs(v.Position[2]), float32(3))

		// Face normals are unit axis vectors.
		n := v.Normal
		assert.InDelta(t, 1, n[0]*n[0]+n[1]*n[1]+n[2]*n[2], 1e-5)
	}
}

func TestAnnulusGeometry(t *testing.T) {
	m := NewAnnulus("core-plate", 2, 5, 24, [4]float32{0.4, 0.4, 0.45, 1})
	require.NotEmpty(t, m.Indices)
	for _, v := range m.Vertices {
		r := math32.Hypot(v.Position[0], v.Position[2])
		assert.GreaterOrEqual(t, r, float32(2)-1e-4)
		assert.LessOrEqual(t, r, float32(5)+1e-4)
		assert.Zero(t, v.Position[1])
	}
}

func TestVertexStrideMatchesLayout(t *testing.T) {
	m := NewBox("unit", 1, 1, 1, [4]float32{1, 1, 1, 1})
	assert.Equal(t, len(m.Vertices)*VertexStride, len(m.VertexBytes()))
	assert.Equal(t, len(m.Indices)*4, len(m.IndexBytes()))
}
