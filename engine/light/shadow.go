package light

import (
	"github.com/demireidel/Atucha-II-Max/common"
	"github.com/demireidel/Atucha-II-Max/core/quality"
)

// DefaultShadowHalfExtent is the orthographic half-extent (in world units)
// of the directional light shadow frustum. Sized so the full calandria and
// the surrounding hall floor fit inside the shadow map.
const DefaultShadowHalfExtent float32 = 45.0

// DefaultShadowNear is the near plane for the directional light's
// orthographic shadow projection.
const DefaultShadowNear float32 = 0.1

// DefaultShadowFar is the far plane for the directional light's orthographic
// shadow projection.
const DefaultShadowFar float32 = 250.0

// DefaultShadowBias is the constant depth bias applied to shadow comparisons
// to reduce shadow acne artifacts.
const DefaultShadowBias float32 = 0.001

// shadowCasterDistance is how far back along the light direction the virtual
// shadow camera sits from the frustum center.
const shadowCasterDistance float32 = 100.0

// ShadowSettings holds the per-frame shadow pass configuration. Resolution
// and enablement come from the quality controller; the frustum extents are
// fixed for the hall.
type ShadowSettings struct {
	// Enabled gates the shadow depth pass entirely.
	Enabled bool

	// Resolution is the width and height in texels of the shadow depth
	// texture.
	Resolution uint32

	// HalfExtent is the orthographic half-extent of the shadow frustum in
	// world units.
	HalfExtent float32

	// Near and Far bound the shadow projection depth range.
	Near float32
	Far  float32

	// Bias is the constant depth bias used during shadow comparison.
	Bias float32
}

// SettingsForQuality derives the shadow pass configuration from the quality
// controller's rendering parameters. When shadows are disabled the returned
// settings still carry a valid resolution so depth resources can be created
// lazily if shadows are re-enabled.
//
// Parameters:
//   - params: the derived rendering parameters
//
// Returns:
//   - ShadowSettings: the shadow pass configuration
func SettingsForQuality(params quality.RenderingParameters) ShadowSettings {
	return ShadowSettings{
		Enabled:    params.ShadowsEnabled,
		Resolution: uint32(params.ShadowMapSize),
		HalfExtent: DefaultShadowHalfExtent,
		Near:       DefaultShadowNear,
		Far:        DefaultShadowFar,
		Bias:       DefaultShadowBias,
	}
}

// ViewProjection computes the light-space view-projection matrix for the
// directional shadow pass. The virtual shadow camera sits behind the frustum
// center along the reversed light direction and looks through it with an
// orthographic projection.
//
// Parameters:
//   - direction: the normalized light direction
//   - centerX, centerY, centerZ: world-space center of the shadow frustum
//
// Returns:
//   - [16]float32: the column-major light view-projection matrix
func (s ShadowSettings) ViewProjection(direction [3]float32, centerX, centerY, centerZ float32) [16]float32 {
	eyeX := centerX - direction[0]*shadowCasterDistance
	eyeY := centerY - direction[1]*shadowCasterDistance
	eyeZ := centerZ - direction[2]*shadowCasterDistance

	// A directional light pointing straight down is parallel to the world
	// up axis, so fall back to Z-up for the look-at basis.
	upX, upY, upZ := float32(0), float32(1), float32(0)
	if direction[0] == 0 && direction[2] == 0 {
		upY, upZ = 0, 1
	}

	var view, proj, out [16]float32
	common.LookAt(view[:], eyeX, eyeY, eyeZ, centerX, centerY, centerZ, upX, upY, upZ)
	common.Orthographic(proj[:], -s.HalfExtent, s.HalfExtent, -s.HalfExtent, s.HalfExtent, s.Near, s.Far)
	common.Mul4(out[:], proj[:], view[:])
	return out
}
