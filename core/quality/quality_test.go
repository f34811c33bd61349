package quality

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/demireidel/Atucha-II-Max/core/capability"
)

func capsWithTexture(maxTexture int) capability.DeviceCapabilities {
	return capability.DeviceCapabilities{
		SupportsBasicRendering: true,
		MaxTextureSize:         maxTexture,
		MaxRenderbufferSize:    maxTexture,
		SupportedExtensions: map[string]struct{}{
			capability.DepthTextureExtension: {},
		},
	}
}

func TestThresholdPolicy(t *testing.T) {
	cases := []struct {
		maxTexture int
		want       Level
	}{
		{1024, Low},
		{2047, Low},
		{2048, Medium},
		{3000, Medium},
		{4096, High},
		{8192, High},
	}
	for _, tc := range cases {
		c := NewController()
		assert.Equal(t, tc.want, c.Initialize(capsWithTexture(tc.maxTexture)), "maxTexture=%d", tc.maxTexture)
	}
}

func TestInitializeIdempotent(t *testing.T) {
	c := NewController()
	caps := capsWithTexture(3000)
	first := c.Initialize(caps)
	second := c.Initialize(caps)
	assert.Equal(t, first, second)
	assert.Equal(t, Medium, second)
}

func TestOverrideWinsUntilCleared(t *testing.T) {
	c := NewController()
	c.Initialize(capsWithTexture(1024))
	assert.Equal(t, Low, c.Level())

	c.SetOverride(Ultra)
	assert.Equal(t, Ultra, c.Level())
	assert.True(t, c.OverrideActive())

	// Re-initializing with new capabilities does not displace the override.
	c.Initialize(capsWithTexture(8192))
	assert.Equal(t, Ultra, c.Level())

	c.ClearOverride()
	assert.Equal(t, High, c.Level())
	assert.False(t, c.OverrideActive())
}

func TestInvalidOverrideIgnored(t *testing.T) {
	c := NewController()
	c.Initialize(capsWithTexture(8192))
	c.SetOverride(Level(9))
	assert.Equal(t, High, c.Level())
	assert.False(t, c.OverrideActive())
}

func TestShadowMapNeverExceedsHalfTexture(t *testing.T) {
	for _, maxTexture := range []int{1024, 2048, 3000, 4096, 8192, 16384} {
		for _, level := range []Level{Low, Medium, High, Ultra} {
			c := NewController(WithOverride(level))
			c.Initialize(capsWithTexture(maxTexture))
			p := c.Parameters()
			assert.LessOrEqual(t, p.ShadowMapSize, maxTexture/2,
				"maxTexture=%d level=%s", maxTexture, level)
		}
	}
}

func TestShadowMapTierBases(t *testing.T) {
	caps := capsWithTexture(16384)
	cases := map[Level]int{Low: 512, Medium: 1024, High: 2048, Ultra: 2048}
	for level, want := range cases {
		c := NewController(WithOverride(level))
		c.Initialize(caps)
		assert.Equal(t, want, c.Parameters().ShadowMapSize, "level=%s", level)
	}
}

func TestDegenerateTextureSizeClamped(t *testing.T) {
	for _, maxTexture := range []int{0, -1} {
		c := NewController()
		c.Initialize(capsWithTexture(maxTexture))
		p := c.Parameters()
		assert.Equal(t, Low, c.Level())
		assert.Equal(t, 512, p.ShadowMapSize, "maxTexture=%d", maxTexture)
	}
}

func TestPixelRatioDerivation(t *testing.T) {
	ratio := float32(2.5)
	source := func() float32 { return ratio }

	c := NewController(WithPixelRatioSource(source))
	c.Initialize(capsWithTexture(8192))

	// Non-ultra tiers cap at 1 regardless of display density.
	assert.Equal(t, float32(1), c.Parameters().PixelRatio)

	c.SetOverride(Ultra)
	assert.Equal(t, float32(2), c.Parameters().PixelRatio)

	// The source is re-polled each derivation: a monitor change shows up
	// without any explicit notification.
	ratio = 1.5
	assert.Equal(t, float32(1.5), c.Parameters().PixelRatio)

	ratio = 0
	assert.Equal(t, float32(1), c.Parameters().PixelRatio)
}

func TestAntialiasingRequiresTierAndRenderbuffer(t *testing.T) {
	small := capsWithTexture(8192)
	small.MaxRenderbufferSize = 512

	c := NewController()
	c.Initialize(small)
	assert.False(t, c.Parameters().AntialiasingEnabled)

	c.Initialize(capsWithTexture(8192))
	assert.True(t, c.Parameters().AntialiasingEnabled)

	low := NewController(WithOverride(Low))
	low.Initialize(capsWithTexture(8192))
	assert.False(t, low.Parameters().AntialiasingEnabled)
}

func TestShadowAndPostProcessingToggles(t *testing.T) {
	c := NewController(WithPostProcessingPreference(true))
	c.Initialize(capsWithTexture(8192))

	p := c.Parameters()
	assert.True(t, p.ShadowsEnabled)
	assert.True(t, p.PostProcessingEnabled)

	c.SetShadowPreference(false)
	c.SetPostProcessingPreference(false)
	p = c.Parameters()
	assert.False(t, p.ShadowsEnabled)
	assert.False(t, p.PostProcessingEnabled)

	// Shadows also require the depth texture extension.
	noDepth := capsWithTexture(8192)
	noDepth.SupportedExtensions = map[string]struct{}{}
	c2 := NewController()
	c2.Initialize(noDepth)
	assert.False(t, c2.Parameters().ShadowsEnabled)
}

func TestLevelString(t *testing.T) {
	assert.Equal(t, "low", Low.String())
	assert.Equal(t, "ultra", Ultra.String())
	assert.Equal(t, "unknown", Level(0).String())
}
