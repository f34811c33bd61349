package material

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMaterialDefaults(t *testing.T) {
	m := NewMaterial(WithName("zircaloy"))
	assert.Equal(t, "zircaloy", m.Name())
	assert.Equal(t, [4]float32{1, 1, 1, 1}, m.BaseColor())
	assert.Equal(t, float32(0), m.Metallic())
	assert.Equal(t, float32(1), m.Roughness())
	assert.Equal(t, float32(0), m.EmissiveStrength())
}

func TestMaterialOptions(t *testing.T) {
	m := NewMaterial(
		WithName("fuel-channel"),
		WithBaseColor([4]float32{0.8, 0.5, 0.2, 1}),
		WithMetallic(0.9),
		WithRoughness(0.3),
		WithEmissive([3]float32{0.2, 0.6, 1}, 2.5),
	)
	assert.Equal(t, float32(0.9), m.Metallic())
	assert.Equal(t, [3]float32{0.2, 0.6, 1}, m.EmissiveColor())
	assert.Equal(t, float32(2.5), m.EmissiveStrength())
}

func TestPulseIntensityPure(t *testing.T) {
	a := PulseIntensity(1.25, 0.8)
	b := PulseIntensity(1.25, 0.8)
	assert.Equal(t, a, b)
}

func TestPulseIntensityBounds(t *testing.T) {
	for _, elapsed := range []float32{0, 0.1, 0.37, 1, 5, 123.4} {
		for _, flux := range []float32{-1, 0, 0.25, 0.5, 0.99, 1, 2} {
			v := PulseIntensity(elapsed, flux)
			assert.GreaterOrEqual(t, v, float32(0), "elapsed=%v flux=%v", elapsed, flux)
			assert.LessOrEqual(t, v, float32(1), "elapsed=%v flux=%v", elapsed, flux)
		}
	}
}

func TestPulseIntensityScalesWithFlux(t *testing.T) {
	// Zero flux never glows; out-of-range flux is clamped, not amplified.
	for _, elapsed := range []float32{0, 1, 2.5} {
		assert.Zero(t, PulseIntensity(elapsed, 0))
		assert.Equal(t, PulseIntensity(elapsed, 1), PulseIntensity(elapsed, 7))
	}
}
