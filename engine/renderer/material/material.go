// package material describes surface properties for the viewer's draw calls.
// Materials are immutable after construction; anything time-varying (the
// pulsing flux emissive) is computed per frame as a pure function rather
// than by mutating shared material state.
package material

// material is the implementation of the Material interface.
type material struct {
	name             string
	baseColor        [4]float32
	metallic         float32
	roughness        float32
	emissiveColor    [3]float32
	emissiveStrength float32
}

// Material defines the interface for a render material. Surface properties
// are set at construction and read-only afterward, so a material can be
// shared safely between instanced draws.
type Material interface {
	// Name retrieves the material identifier.
	//
	// Returns:
	//   - string: the name of the material
	Name() string

	// BaseColor retrieves the albedo/diffuse RGBA color of the material.
	//
	// Returns:
	//   - [4]float32: the base color as RGBA values
	BaseColor() [4]float32

	// Metallic retrieves the metallic factor of the material.
	// A value of 0.0 represents a dielectric surface, 1.0 represents a fully metallic surface.
	//
	// Returns:
	//   - float32: the metallic factor
	Metallic() float32

	// Roughness retrieves the roughness factor of the material.
	// A value of 0.0 represents a perfectly smooth surface, 1.0 represents a fully rough surface.
	//
	// Returns:
	//   - float32: the roughness factor
	Roughness() float32

	// EmissiveColor retrieves the emissive RGB color.
	//
	// Returns:
	//   - [3]float32: the emissive color
	EmissiveColor() [3]float32

	// EmissiveStrength retrieves the maximum emissive intensity. The
	// per-frame intensity is this strength scaled by PulseIntensity.
	//
	// Returns:
	//   - float32: the emissive strength
	EmissiveStrength() float32
}

var _ Material = &material{}

// NewMaterial creates a new Material instance configured with the provided options.
//
// Parameters:
//   - options: variadic list of MaterialBuilderOption functions to configure the material
//
// Returns:
//   - Material: a new Material instance
func NewMaterial(options ...MaterialBuilderOption) Material {
	m := &material{
		baseColor: [4]float32{1, 1, 1, 1},
		metallic:  0.0,
		roughness: 1.0,
	}
	for _, opt := range options {
		opt(m)
	}
	return m
}

func (m *material) Name() string {
	return m.name
}

func (m *material) BaseColor() [4]float32 {
	return m.baseColor
}

func (m *material) Metallic() float32 {
	return m.metallic
}

func (m *material) Roughness() float32 {
	return m.roughness
}

func (m *material) EmissiveColor() [3]float32 {
	return m.emissiveColor
}

func (m *material) EmissiveStrength() float32 {
	return m.emissiveStrength
}
