package plant

import (
	"github.com/demireidel/Atucha-II-Max/core/lattice"
	"github.com/demireidel/Atucha-II-Max/core/quality"
	"github.com/demireidel/Atucha-II-Max/core/tour"
	"github.com/demireidel/Atucha-II-Max/engine/camera"
)

type SceneBuilderOption func(*Scene)

// WithTourRoute replaces the built-in tour route.
//
// Parameters:
//   - route: the waypoints to visit, in order
//
// Returns:
//   - SceneBuilderOption: the option to apply
func WithTourRoute(route []tour.Waypoint) SceneBuilderOption {
	return func(s *Scene) {
		if len(route) > 0 {
			s.route = route
		}
	}
}

// WithQualityController supplies a pre-built quality controller, replacing
// the default one derived from the window's content scale.
//
// Parameters:
//   - ctrl: the controller to use
//
// Returns:
//   - SceneBuilderOption: the option to apply
func WithQualityController(ctrl quality.Controller) SceneBuilderOption {
	return func(s *Scene) {
		if ctrl != nil {
			s.qual = ctrl
		}
	}
}

// WithOrbitController supplies a pre-built camera controller.
//
// Parameters:
//   - ctrl: the controller to use
//
// Returns:
//   - SceneBuilderOption: the option to apply
func WithOrbitController(ctrl camera.CameraController) SceneBuilderOption {
	return func(s *Scene) {
		if ctrl != nil {
			s.orbit = ctrl
		}
	}
}

// WithLatticeGenerator supplies a pre-built lattice generator, replacing
// the default core layout.
//
// Parameters:
//   - gen: the generator to use
//
// Returns:
//   - SceneBuilderOption: the option to apply
func WithLatticeGenerator(gen lattice.Generator) SceneBuilderOption {
	return func(s *Scene) {
		if gen != nil {
			s.lat = gen
		}
	}
}

// WithWorkerCount overrides the number of workers used for the per-tick
// instance recompute.
//
// Parameters:
//   - workers: the worker count, minimum 1
//
// Returns:
//   - SceneBuilderOption: the option to apply
func WithWorkerCount(workers int) SceneBuilderOption {
	return func(s *Scene) {
		s.poolWorkers = max(workers, 1)
	}
}

// WithShadowPreference sets the initial shadow preference.
//
// Parameters:
//   - enabled: whether shadows start enabled
//
// Returns:
//   - SceneBuilderOption: the option to apply
func WithShadowPreference(enabled bool) SceneBuilderOption {
	return func(s *Scene) {
		s.shadowPref = enabled
	}
}

// WithPostProcessingPreference sets the initial post-processing preference.
//
// Parameters:
//   - enabled: whether tonemapping and vignette start enabled
//
// Returns:
//   - SceneBuilderOption: the option to apply
func WithPostProcessingPreference(enabled bool) SceneBuilderOption {
	return func(s *Scene) {
		s.postPref = enabled
	}
}
