package light

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/demireidel/Atucha-II-Max/core/quality"
)

func TestNewLightDefaults(t *testing.T) {
	l := NewLight(LightTypeDirectional)
	assert.Equal(t, LightTypeDirectional, l.Type())
	assert.Equal(t, [3]float32{0, -1, 0}, l.Direction())
	assert.True(t, l.Enabled())
	assert.False(t, l.CastsShadows())
}

func TestSetDirectionNormalizes(t *testing.T) {
	l := NewLight(LightTypeDirectional)
	l.SetDirection(3, 0, 4)
	d := l.Direction()
	assert.InDelta(t, 0.6, d[0], 1e-6)
	assert.InDelta(t, 0.8, d[2], 1e-6)

	// Degenerate input falls back to straight down.
	l.SetDirection(0, 0, 0)
	assert.Equal(t, [3]float32{0, -1, 0}, l.Direction())
}

func TestMarshalLightsPacksEnabledOnly(t *testing.T) {
	key := NewLight(LightTypeDirectional,
		WithDirection(-1, -2, -1),
		WithIntensity(2.5),
		WithCastsShadows(true),
	)
	lamp := NewLight(LightTypePoint, WithPosition(0, 18, 0), WithRange(25))
	disabled := NewLight(LightTypePoint)
	disabled.SetEnabled(false)

	buf := MarshalLights([]Light{key, disabled, lamp})
	require.Len(t, buf, 16+MaxGPULights*48)

	count := binary.LittleEndian.Uint32(buf[0:4])
	assert.Equal(t, uint32(2), count)

	// Slot 0 is the key light: type 0, intensity 2.5.
	assert.Equal(t, uint32(0), binary.LittleEndian.Uint32(buf[16+12:16+16]))
	intensity := math.Float32frombits(binary.LittleEndian.Uint32(buf[16+28 : 16+32]))
	assert.InDelta(t, 2.5, intensity, 1e-6)

	// Slot 1 is the lamp: type 1, position y = 18.
	assert.Equal(t, uint32(1), binary.LittleEndian.Uint32(buf[64+12:64+16]))
	py := math.Float32frombits(binary.LittleEndian.Uint32(buf[64+4 : 64+8]))
	assert.InDelta(t, 18, py, 1e-6)
}

func TestMarshalLightsDropsOverflow(t *testing.T) {
	lights := make([]Light, MaxGPULights+3)
	for i := range lights {
		lights[i] = NewLight(LightTypePoint)
	}
	buf := MarshalLights(lights)
	assert.Equal(t, uint32(MaxGPULights), binary.LittleEndian.Uint32(buf[0:4]))
}

func TestSettingsForQuality(t *testing.T) {
	s := SettingsForQuality(quality.RenderingParameters{
		ShadowsEnabled: true,
		ShadowMapSize:  1024,
	})
	assert.True(t, s.Enabled)
	assert.Equal(t, uint32(1024), s.Resolution)
	assert.Equal(t, DefaultShadowHalfExtent, s.HalfExtent)

	s = SettingsForQuality(quality.RenderingParameters{ShadowMapSize: 512})
	assert.False(t, s.Enabled)
	assert.Equal(t, uint32(512), s.Resolution)
}

func TestShadowViewProjectionIsFinite(t *testing.T) {
	s := SettingsForQuality(quality.RenderingParameters{
		ShadowsEnabled: true,
		ShadowMapSize:  2048,
	})

	// Straight-down light exercises the up-axis fallback.
	m := s.ViewProjection([3]float32{0, -1, 0}, 0, 10, 0)
	for i, v := range m {
		assert.Falsef(t, math.IsNaN(float64(v)), "element %d is NaN", i)
	}

	angled := s.ViewProjection([3]float32{-0.5, -0.7, -0.5}, 0, 10, 0)
	assert.NotEqual(t, m, angled)
}
