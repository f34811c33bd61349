// package lattice generates the reactor-core channel lattice: the deterministic
// set of pressure-tube positions with per-node thermal attributes, and the
// derived control-rod subset. Generation is pure — identical inputs always
// produce identical, identically-ordered output.
package lattice

import (
	"sync"

	"github.com/chewxy/math32"
)

// rowProfile is the per-row tube count table describing the core boundary.
// The prototype plant's lattice is a diamond that is irregular near the
// boundary, so the shape is kept as data rather than derived from a curve.
// The table is symmetric: 1 tube at the first and last rows, widest mid-core.
var rowProfile = [25]int{
	1, 5, 11, 15, 17,
	19, 21, 23, 25, 27,
	27, 29, 29, 29, 27,
	27, 25, 23, 21, 19,
	17, 15, 11, 5, 1,
}

const (
	// Pitch is the center-to-center spacing between adjacent lattice
	// positions, used for both row and column offsets (the grid is a
	// rectangular hex-like layout, not a true hexagonal packing).
	Pitch float32 = 1.12

	// BaseTemperatureC is the coolant temperature at the lattice boundary.
	BaseTemperatureC float32 = 280.0

	// TemperatureGradientC is the per-world-unit temperature rise toward
	// the lattice center. Illustrative, not physically solved.
	TemperatureGradientC float32 = 2.4
)

// DefaultTubeCount is the plant's documented coolant channel count.
const DefaultTubeCount = 451

// DefaultRodStride selects every Nth channel as a control-rod position.
const DefaultRodStride = 12

// DefaultRodCount caps the control-rod selection at the plant's rod count.
const DefaultRodCount = 37

// Node represents one pressure tube position in the core lattice.
// Nodes are immutable once generated.
type Node struct {
	// ID is the unique sequential identifier, stable across regeneration.
	ID int

	// Row is the 0-indexed lattice row.
	Row int

	// Col is the 0-indexed column within the row.
	Col int

	// X and Z are the world-space offsets on the lattice plane.
	// Y is fixed at the lattice plane and owned by the scene.
	X, Z float32

	// DistanceFromCenter is the Euclidean norm of (X, Z).
	DistanceFromCenter float32

	// TemperatureC is the illustrative coolant temperature at this
	// position, hottest at the lattice center.
	TemperatureC float32

	// FluxFraction is the normalized neutron-flux proxy in [0, 1],
	// decreasing with distance from the lattice center.
	FluxFraction float32
}

// Capacity returns the total tube capacity of the row profile table,
// the maximum count Generate can produce.
//
// Returns:
//   - int: the sum of all per-row tube counts
func Capacity() int {
	total := 0
	for _, n := range rowProfile {
		total += n
	}
	return total
}

// Generate lays out the core lattice and selects control-rod positions.
// The flattened row sequence is truncated from the tail to exactly tubeCount
// nodes, keeping the generated count stable regardless of how the row table
// evolves. Rods are every rodStride-th tube in generation order, capped at
// maxRodCount with no wrap-around.
//
// Degenerate inputs are clamped rather than rejected: tubeCount is limited to
// [0, Capacity()], rodStride below 1 is treated as 1, and negative
// maxRodCount as 0. Any coordinate that evaluates to NaN (possible at
// single-tube rows) is replaced with zero.
//
// Parameters:
//   - tubeCount: target number of pressure tubes
//   - rodStride: select every rodStride-th tube as a control-rod position
//   - maxRodCount: maximum number of control rods
//
// Returns:
//   - []Node: the pressure tubes in generation order
//   - []Node: the control-rod subset, in tube ID order
func Generate(tubeCount, rodStride, maxRodCount int) ([]Node, []Node) {
	if tubeCount < 0 {
		tubeCount = 0
	}
	if capacity := Capacity(); tubeCount > capacity {
		tubeCount = capacity
	}
	if rodStride < 1 {
		rodStride = 1
	}
	if maxRodCount < 0 {
		maxRodCount = 0
	}

	rows := len(rowProfile)
	tubes := make([]Node, 0, tubeCount)

	id := 0
	for r := 0; r < rows && id < tubeCount; r++ {
		count := rowProfile[r]
		z := sanitize((float32(r) - float32(rows-1)/2) * Pitch)
		for c := 0; c < count && id < tubeCount; c++ {
			x := sanitize((float32(c) - float32(count-1)/2) * Pitch)
			tubes = append(tubes, Node{
				ID:                 id,
				Row:                r,
				Col:                c,
				X:                  x,
				Z:                  z,
				DistanceFromCenter: math32.Hypot(x, z),
			})
			id++
		}
	}

	// Thermal attributes depend on the core radius, so they are filled in
	// after the full truncated layout is known.
	maxRadius := float32(0)
	for i := range tubes {
		if tubes[i].DistanceFromCenter > maxRadius {
			maxRadius = tubes[i].DistanceFromCenter
		}
	}
	for i := range tubes {
		tubes[i].TemperatureC = temperatureAt(tubes[i].DistanceFromCenter, maxRadius)
		tubes[i].FluxFraction = fluxAt(tubes[i].DistanceFromCenter, maxRadius)
	}

	rods := make([]Node, 0, maxRodCount)
	for i := 0; i < len(tubes) && len(rods) < maxRodCount; i += rodStride {
		rods = append(rods, tubes[i])
	}

	return tubes, rods
}

// temperatureAt derives the illustrative coolant temperature for a node at
// the given distance from the core center. The result is clamped to a
// finite, non-negative value.
func temperatureAt(distance, maxRadius float32) float32 {
	t := BaseTemperatureC + (maxRadius-distance)*TemperatureGradientC
	if math32.IsNaN(t) || math32.IsInf(t, 0) || t < 0 {
		return 0
	}
	return t
}

// fluxAt derives the normalized flux proxy in [0, 1] for a node at the given
// distance from the core center.
func fluxAt(distance, maxRadius float32) float32 {
	if maxRadius <= 0 {
		return 1
	}
	f := 1 - distance/maxRadius
	if math32.IsNaN(f) || f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

// sanitize replaces NaN coordinates with zero. Single-tube rows produce a
// (count-1) == 0 centering term whose degenerate results must not propagate.
func sanitize(v float32) float32 {
	if math32.IsNaN(v) {
		return 0
	}
	return v
}

// generator is the implementation of the Generator interface.
type generator struct {
	mu *sync.Mutex

	tubeCount   int
	rodStride   int
	maxRodCount int

	generated bool
	tubes     []Node
	rods      []Node
}

// Generator caches a generated lattice and regenerates it only when the
// target counts change — never per frame or per quality level, since the
// layout is independent of rendering quality.
// Thread-safe for concurrent access; Generate itself is pure and reentrant.
type Generator interface {
	// Nodes returns the cached pressure-tube list, generating it on first use.
	//
	// Returns:
	//   - []Node: the pressure tubes in generation order
	Nodes() []Node

	// ControlRods returns the cached control-rod subset, generating the
	// lattice on first use.
	//
	// Returns:
	//   - []Node: the control-rod positions in tube ID order
	ControlRods() []Node

	// SetCounts updates the generation parameters. The cached lattice is
	// invalidated only if a parameter actually changed.
	//
	// Parameters:
	//   - tubeCount: target number of pressure tubes
	//   - rodStride: select every rodStride-th tube as a control rod
	//   - maxRodCount: maximum number of control rods
	SetCounts(tubeCount, rodStride, maxRodCount int)

	// TubeCount returns the configured target tube count.
	//
	// Returns:
	//   - int: the target tube count
	TubeCount() int

	// RodCount returns the number of control rods in the cached lattice.
	//
	// Returns:
	//   - int: the control-rod count
	RodCount() int
}

var _ Generator = &generator{}

// NewGenerator creates a Generator with the plant's documented counts,
// overridable via options.
//
// Parameters:
//   - options: functional options to configure the generator
//
// Returns:
//   - Generator: the newly created generator
func NewGenerator(options ...GeneratorOption) Generator {
	g := &generator{
		mu:          &sync.Mutex{},
		tubeCount:   DefaultTubeCount,
		rodStride:   DefaultRodStride,
		maxRodCount: DefaultRodCount,
	}
	for _, opt := range options {
		opt(g)
	}
	return g
}

func (g *generator) Nodes() []Node {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.ensure()
	return g.tubes
}

func (g *generator) ControlRods() []Node {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.ensure()
	return g.rods
}

func (g *generator) SetCounts(tubeCount, rodStride, maxRodCount int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if tubeCount == g.tubeCount && rodStride == g.rodStride && maxRodCount == g.maxRodCount {
		return
	}
	g.tubeCount = tubeCount
	g.rodStride = rodStride
	g.maxRodCount = maxRodCount
	g.generated = false
}

func (g *generator) TubeCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.tubeCount
}

func (g *generator) RodCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.ensure()
	return len(g.rods)
}

// ensure generates the lattice if the cache is stale. Caller must hold the mutex.
func (g *generator) ensure() {
	if g.generated {
		return
	}
	g.tubes, g.rods = Generate(g.tubeCount, g.rodStride, g.maxRodCount)
	g.generated = true
}
