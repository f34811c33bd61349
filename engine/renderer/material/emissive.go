package material

import (
	"github.com/chewxy/math32"

	"github.com/demireidel/Atucha-II-Max/common"
)

// pulseHz is the emissive pulse frequency shared by all flux-lit geometry.
const pulseHz float32 = 0.8

// pulseFloor keeps high-flux channels visibly lit at the bottom of the
// pulse instead of blinking fully dark.
const pulseFloor float32 = 0.55

// PulseIntensity computes the time-varying emissive intensity for a node
// with the given flux fraction. Pure: the same elapsed time and flux always
// yield the same intensity, so no render state is shared between instances.
// The flux fraction also phase-shifts the pulse, making the core shimmer
// outward rather than blink in unison. Result is in [0, 1].
//
// Parameters:
//   - elapsedSeconds: time since scene start
//   - fluxFraction: the node's normalized flux proxy, clamped to [0, 1]
//
// Returns:
//   - float32: the emissive intensity in [0, 1]
func PulseIntensity(elapsedSeconds, fluxFraction float32) float32 {
	flux := common.Clamp(fluxFraction, 0, 1)
	wave := 0.5 + 0.5*math32.Sin(2*math32.Pi*pulseHz*elapsedSeconds+flux*math32.Pi)
	return flux * (pulseFloor + (1-pulseFloor)*wave)
}
