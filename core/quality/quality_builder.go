package quality

// ControllerOption is a functional option for configuring a Controller.
// Use the With* functions to create options applied during construction.
type ControllerOption func(*controller)

// WithOverride starts the controller with a user override already active.
// Invalid levels are ignored.
//
// Parameters:
//   - level: the tier to force
//
// Returns:
//   - ControllerOption: option function to apply
func WithOverride(level Level) ControllerOption {
	return func(c *controller) {
		if level.Valid() {
			c.override = level
		}
	}
}

// WithShadowPreference sets the initial user shadow toggle.
//
// Parameters:
//   - enabled: whether the user wants shadows
//
// Returns:
//   - ControllerOption: option function to apply
func WithShadowPreference(enabled bool) ControllerOption {
	return func(c *controller) {
		c.shadowPreference = enabled
	}
}

// WithPostProcessingPreference sets the initial post-processing toggle.
//
// Parameters:
//   - enabled: whether the user wants post-processing
//
// Returns:
//   - ControllerOption: option function to apply
func WithPostProcessingPreference(enabled bool) ControllerOption {
	return func(c *controller) {
		c.postProcessingPreference = enabled
	}
}

// WithPixelRatioSource attaches the device pixel ratio source, typically the
// window's content scale. Polled on every Parameters derivation.
//
// Parameters:
//   - source: function reporting the current device pixel ratio
//
// Returns:
//   - ControllerOption: option function to apply
func WithPixelRatioSource(source PixelRatioSource) ControllerOption {
	return func(c *controller) {
		c.pixelRatio = source
	}
}
