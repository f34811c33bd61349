package plantcfg

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/demireidel/Atucha-II-Max/core/capability"
	"github.com/demireidel/Atucha-II-Max/core/quality"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "viewer.toml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadAppliesDefaultsForMissingFields(t *testing.T) {
	path := writeConfig(t, `
[window]
title = "Control Room"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "Control Room", cfg.Window.Title)
	assert.Equal(t, 1280, cfg.Window.Width)
	assert.Equal(t, 720, cfg.Window.Height)
	assert.Empty(t, cfg.Quality.Override)
	assert.Nil(t, cfg.TourRoute())
}

func TestLoadMissingFileReturnsError(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.Error(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadRejectsUnknownQualityTier(t *testing.T) {
	path := writeConfig(t, `
[quality]
override = "cinematic"
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cinematic")
}

func TestLoadRejectsNonPositiveTransition(t *testing.T) {
	path := writeConfig(t, `
[[tour.waypoints]]
name = "stuck"
position = [1.0, 2.0, 3.0]
target = [0.0, 0.0, 0.0]
hold = 1.0
transition = 0.0
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "transition")
}

func TestQualityOptionsReflectFile(t *testing.T) {
	path := writeConfig(t, `
[quality]
override = "Ultra"
shadows = false
post_processing = true
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, cfg.QualityOptions(), 3)

	level, err := levelFromName(cfg.Quality.Override)
	require.NoError(t, err)
	assert.Equal(t, quality.Ultra, level)
	require.NotNil(t, cfg.Quality.Shadows)
	assert.False(t, *cfg.Quality.Shadows)
}

func TestControllerAppliesFileOverride(t *testing.T) {
	path := writeConfig(t, `
[quality]
override = "ultra"
shadows = false
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	ctrl := cfg.Controller(func() float32 { return 2 })
	ctrl.Initialize(capability.DeviceCapabilities{
		SupportsBasicRendering: true,
		MaxTextureSize:         2048,
		MaxRenderbufferSize:    2048,
		SupportedExtensions: map[string]struct{}{
			capability.DepthTextureExtension: {},
		},
	})

	// The file override outranks the capability-derived tier, and the
	// shadow preference flows through to the derived parameters.
	assert.Equal(t, quality.Ultra, ctrl.Level())
	params := ctrl.Parameters()
	assert.False(t, params.ShadowsEnabled)
	assert.InDelta(t, 2.0, params.PixelRatio, 1e-6)
}

func TestTourRouteConversion(t *testing.T) {
	path := writeConfig(t, `
[[tour.waypoints]]
name = "gantry"
position = [10.0, 5.0, 0.0]
target = [0.0, 0.0, 0.0]
hold = 2.0
transition = 3.0

[[tour.waypoints]]
name = "spent-fuel-bay"
position = [-20.0, 8.0, 14.0]
target = [0.0, 1.0, 0.0]
hold = 4.0
transition = 2.5
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	route := cfg.TourRoute()
	require.Len(t, route, 2)
	assert.Equal(t, "gantry", route[0].Name)
	assert.Equal(t, [3]float32{10, 5, 0}, route[0].Position)
	assert.Equal(t, float32(2.5), route[1].Transition)
}
