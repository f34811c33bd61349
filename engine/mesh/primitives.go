package mesh

import (
	"github.com/chewxy/math32"
)

// NewCylinder builds a closed cylinder centered at the origin with its axis
// along Y. Pressure tubes and control rods are instanced from this shape.
//
// Parameters:
//   - name: mesh identifier
//   - radius: cylinder radius
//   - height: total height along Y
//   - segments: radial segment count (minimum 3)
//   - color: vertex RGBA color
//
// Returns:
//   - *Mesh: the generated cylinder
func NewCylinder(name string, radius, height float32, segments int, color [4]float32) *Mesh {
	if segments < 3 {
		segments = 3
	}
	m := &Mesh{Name: name}
	half := height / 2

	// Side wall: two rings of vertices with outward normals.
	for i := 0; i <= segments; i++ {
		angle := 2 * math32.Pi * float32(i) / float32(segments)
		nx, nz := math32.Cos(angle), math32.Sin(angle)
		x, z := radius*nx, radius*nz
		m.Vertices = append(m.Vertices,
			Vertex{Position: [3]float32{x, -half, z}, Normal: [3]float32{nx, 0, nz}, Color: color},
			Vertex{Position: [3]float32{x, half, z}, Normal: [3]float32{nx, 0, nz}, Color: color},
		)
	}
	for i := 0; i < segments; i++ {
		base := uint32(i * 2)
		m.Indices = append(m.Indices,
			base, base+1, base+2,
			base+2, base+1, base+3,
		)
	}

	// Caps: a center vertex plus one ring each, flat normals.
	for _, end := range []struct {
		y      float32
		normal [3]float32
	}{
		{half, [3]float32{0, 1, 0}},
		{-half, [3]float32{0, -1, 0}},
	} {
		center := uint32(len(m.Vertices))
		m.Vertices = append(m.Vertices, Vertex{Position: [3]float32{0, end.y, 0}, Normal: end.normal, Color: color})
		for i := 0; i <= segments; i++ {
			angle := 2 * math32.Pi * float32(i) / float32(segments)
			x, z := radius*math32.Cos(angle), radius*math32.Sin(angle)
			m.Vertices = append(m.Vertices, Vertex{Position: [3]float32{x, end.y, z}, Normal: end.normal, Color: color})
		}
		for i := 0; i < segments; i++ {
			a := center + 1 + uint32(i)
			b := center + 1 + uint32(i+1)
			if end.normal[1] > 0 {
				m.Indices = append(m.Indices, center, b, a)
			} else {
				m.Indices = append(m.Indices, center, a, b)
			}
		}
	}

	return m
}

// NewBox builds an axis-aligned box centered at the origin. Used for slabs,
// walls, and the reactor hall shell.
//
// Parameters:
//   - name: mesh identifier
//   - sx, sy, sz: full extents along each axis
//   - color: vertex RGBA color
//
// Returns:
//   - *Mesh: the generated box
func NewBox(name string, sx, sy, sz float32, color [4]float32) *Mesh {
	hx, hy, hz := sx/2, sy/2, sz/2
	m := &Mesh{Name: name}

	faces := []struct {
		normal  [3]float32
		corners [4][3]float32
	}{
		{[3]float32{0, 0, 1}, [4][3]float32{{-hx, -hy, hz}, {hx, -hy, hz}, {hx, hy, hz}, {-hx, hy, hz}}},
		{[3]float32{0, 0, -1}, [4][3]float32{{hx, -hy, -hz}, {-hx, -hy, -hz}, {-hx, hy, -hz}, {hx, hy, -hz}}},
		{[3]float32{1, 0, 0}, [4][3]float32{{hx, -hy, hz}, {hx, -hy, -hz}, {hx, hy, -hz}, {hx, hy, hz}}},
		{[3]float32{-1, 0, 0}, [4][3]float32{{-hx, -hy, -hz}, {-hx, -hy, hz}, {-hx, hy, hz}, {-hx, hy, -hz}}},
		{[3]float32{0, 1, 0}, [4][3]float32{{-hx, hy, hz}, {hx, hy, hz}, {hx, hy, -hz}, {-hx, hy, -hz}}},
		{[3]float32{0, -1, 0}, [4][3]float32{{-hx, -hy, -hz}, {hx, -hy, -hz}, {hx, -hy, hz}, {-hx, -hy, hz}}},
	}

	for _, f := range faces {
		base := uint32(len(m.Vertices))
		for _, c := range f.corners {
			m.Vertices = append(m.Vertices, Vertex{Position: c, Normal: f.normal, Color: color})
		}
		m.Indices = append(m.Indices, base, base+1, base+2, base, base+2, base+3)
	}

	return m
}

// NewAnnulus builds a flat ring on the XZ plane facing up, with an inner
// hole. Used for the calandria core plate around the lattice.
//
// Parameters:
//   - name: mesh identifier
//   - innerRadius: hole radius
//   - outerRadius: outer edge radius
//   - segments: radial segment count (minimum 3)
//   - color: vertex RGBA color
//
// Returns:
//   - *Mesh: the generated ring
func NewAnnulus(name string, innerRadius, outerRadius float32, segments int, color [4]float32) *Mesh {
	if segments < 3 {
		segments = 3
	}
	m := &Mesh{Name: name}
	up := [3]float32{0, 1, 0}

	for i := 0; i <= segments; i++ {
		angle := 2 * math32.Pi * float32(i) / float32(segments)
		c, s := math32.Cos(angle), math32.Sin(angle)
		m.Vertices = append(m.Vertices,
			Vertex{Position: [3]float32{innerRadius * c, 0, innerRadius * s}, Normal: up, Color: color},
			Vertex{Position: [3]float32{outerRadius * c, 0, outerRadius * s}, Normal: up, Color: color},
		)
	}
	for i := 0; i < segments; i++ {
		base := uint32(i * 2)
		m.Indices = append(m.Indices,
			base, base+2, base+1,
			base+1, base+2, base+3,
		)
	}

	return m
}
