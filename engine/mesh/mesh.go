// package mesh builds procedural geometry for the viewer. All plant geometry
// (pressure tubes, control rods, vessel shells, slabs) is generated here
// rather than imported from model files.
package mesh

import (
	"github.com/chewxy/math32"

	"github.com/demireidel/Atucha-II-Max/common"
)

// Vertex is the interleaved vertex layout shared by every pipeline:
// position, normal, and vertex color.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
	Color    [4]float32
}

// VertexStride is the size of one Vertex in bytes, matching the vertex
// buffer layout declared by the render pipelines.
const VertexStride = 10 * 4

// Mesh is a CPU-side triangle mesh ready for GPU upload.
type Mesh struct {
	// Name identifies the mesh for pipeline and buffer labels.
	Name string

	// Vertices is the interleaved vertex array.
	Vertices []Vertex

	// Indices is the triangle index list.
	Indices []uint32
}

// VertexBytes returns the raw vertex data for GPU upload. The returned
// slice shares memory with the mesh.
//
// Returns:
//   - []byte: byte view of the vertex array
func (m *Mesh) VertexBytes() []byte {
	return common.SliceToBytes(m.Vertices)
}

// IndexBytes returns the raw index data for GPU upload. The returned slice
// shares memory with the mesh.
//
// Returns:
//   - []byte: byte view of the index array
func (m *Mesh) IndexBytes() []byte {
	return common.SliceToBytes(m.Indices)
}

// IndexCount returns the number of indices to draw.
//
// Returns:
//   - int: the index count
func (m *Mesh) IndexCount() int {
	return len(m.Indices)
}

// BoundingRadius returns the distance from the origin to the farthest
// vertex, used for camera framing.
//
// Returns:
//   - float32: the bounding sphere radius
func (m *Mesh) BoundingRadius() float32 {
	r := float32(0)
	for i := range m.Vertices {
		p := m.Vertices[i].Position
		d := math32.Sqrt(p[0]*p[0] + p[1]*p[1] + p[2]*p[2])
		if d > r {
			r = d
		}
	}
	return r
}
