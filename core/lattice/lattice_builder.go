package lattice

// GeneratorOption is a functional option for configuring a Generator.
// Use the With* functions to create options applied during construction.
type GeneratorOption func(*generator)

// WithTubeCount sets the target pressure-tube count.
//
// Parameters:
//   - count: target number of tubes
//
// Returns:
//   - GeneratorOption: option function to apply
func WithTubeCount(count int) GeneratorOption {
	return func(g *generator) {
		g.tubeCount = count
	}
}

// WithRodStride sets the control-rod selection stride.
//
// Parameters:
//   - stride: select every stride-th tube as a control-rod position
//
// Returns:
//   - GeneratorOption: option function to apply
func WithRodStride(stride int) GeneratorOption {
	return func(g *generator) {
		g.rodStride = stride
	}
}

// WithMaxRodCount caps the number of selected control rods.
//
// Parameters:
//   - count: maximum number of control rods
//
// Returns:
//   - GeneratorOption: option function to apply
func WithMaxRodCount(count int) GeneratorOption {
	return func(g *generator) {
		g.maxRodCount = count
	}
}
