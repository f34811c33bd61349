// package capability probes the host's rendering backend for hardware limits
// and feature support, producing an immutable DeviceCapabilities snapshot.
// The probe runs once at startup (and optionally on context-loss recovery),
// never on the per-frame path; callers cache the result for the process
// lifetime.
package capability

import (
	"errors"
	"fmt"
)

// ErrUnsupported is returned when no compatible rendering backend can be
// created at all. It is fatal to the 3D path: callers must fall back to a
// non-3D presentation rather than crash.
var ErrUnsupported = errors.New("capability: no compatible rendering backend")

// DepthTextureExtension is the feature name gating shadow map rendering.
// Shadow depth sampling requires the backend to report this extension.
const DepthTextureExtension = "depth32float-stencil8"

// DeviceCapabilities is an immutable snapshot of the rendering hardware's
// limits and feature support. Created once by Probe and never mutated.
type DeviceCapabilities struct {
	// SupportsBasicRendering reports whether a rendering device could be
	// acquired at all.
	SupportsBasicRendering bool

	// SupportsAdvancedRendering reports whether the device satisfies the
	// limits needed for the full lit + shadowed render path.
	SupportsAdvancedRendering bool

	// MaxTextureSize is the maximum 2D texture dimension in texels.
	MaxTextureSize int

	// MaxRenderbufferSize is the maximum render target dimension in texels.
	MaxRenderbufferSize int

	// MaxVertexUniforms is the uniform budget available to vertex shaders,
	// in vec4 units.
	MaxVertexUniforms int

	// MaxFragmentUniforms is the uniform budget available to fragment
	// shaders, in vec4 units.
	MaxFragmentUniforms int

	// SupportedExtensions is the set of optional feature names the backend
	// reports. An empty set is valid, not an error.
	SupportedExtensions map[string]struct{}
}

// HasExtension reports whether the backend advertised the named feature.
//
// Parameters:
//   - name: the feature name to look up
//
// Returns:
//   - bool: true if the feature is present in the snapshot
func (c DeviceCapabilities) HasExtension(name string) bool {
	_, ok := c.SupportedExtensions[name]
	return ok
}

// Backend abstracts the rendering API queried by Probe, so the probe logic
// is testable without real GPU hardware. The WebGPU adapter implementation
// lives in capability_wgpu.go.
type Backend interface {
	// Limits returns the backend's hardware limits.
	//
	// Returns:
	//   - Limits: the raw limit values
	//   - error: an error if the backend has no usable device
	Limits() (Limits, error)

	// Extensions returns the optional feature names the backend supports.
	// May be empty.
	//
	// Returns:
	//   - []string: supported feature names
	Extensions() []string
}

// Limits holds the raw limit values reported by a Backend.
type Limits struct {
	MaxTextureSize      int
	MaxRenderbufferSize int
	MaxVertexUniforms   int
	MaxFragmentUniforms int
}

// advancedMinTextureSize is the smallest MaxTextureSize for which the full
// lit + shadowed path is considered viable.
const advancedMinTextureSize = 2048

// Probe queries the backend once and assembles the immutable capability
// snapshot. A backend that cannot provide a device yields ErrUnsupported.
//
// Parameters:
//   - backend: the rendering backend to query
//
// Returns:
//   - DeviceCapabilities: the populated snapshot
//   - error: ErrUnsupported (possibly wrapped) if no usable device exists
func Probe(backend Backend) (DeviceCapabilities, error) {
	if backend == nil {
		return DeviceCapabilities{}, fmt.Errorf("nil backend: %w", ErrUnsupported)
	}

	limits, err := backend.Limits()
	if err != nil {
		return DeviceCapabilities{}, fmt.Errorf("%v: %w", err, ErrUnsupported)
	}

	extensions := make(map[string]struct{})
	for _, name := range backend.Extensions() {
		extensions[name] = struct{}{}
	}

	return DeviceCapabilities{
		SupportsBasicRendering:    true,
		SupportsAdvancedRendering: limits.MaxTextureSize >= advancedMinTextureSize,
		MaxTextureSize:            limits.MaxTextureSize,
		MaxRenderbufferSize:       limits.MaxRenderbufferSize,
		MaxVertexUniforms:         limits.MaxVertexUniforms,
		MaxFragmentUniforms:       limits.MaxFragmentUniforms,
		SupportedExtensions:       extensions,
	}, nil
}
