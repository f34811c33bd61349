package capability

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
)

// wgpuBackend implements Backend over a WebGPU adapter.
type wgpuBackend struct {
	adapter *wgpu.Adapter
}

var _ Backend = &wgpuBackend{}

// NewWGPUBackend acquires a WebGPU adapter and wraps it as a probe Backend.
// This is the only operation in the package that may involve a real wait
// (driver initialization); invoke it once at startup, off the frame path.
//
// Parameters:
//   - instance: the WebGPU instance, or nil to create a private one
//
// Returns:
//   - Backend: the adapter-backed probe backend
//   - error: ErrUnsupported (wrapped) if no adapter can be acquired
func NewWGPUBackend(instance *wgpu.Instance) (Backend, error) {
	if instance == nil {
		instance = wgpu.CreateInstance(nil)
	}
	adapter, err := instance.RequestAdapter(&wgpu.RequestAdapterOptions{})
	if err != nil {
		return nil, fmt.Errorf("request adapter: %v: %w", err, ErrUnsupported)
	}
	return &wgpuBackend{adapter: adapter}, nil
}

// NewAdapterBackend wraps an already-acquired adapter, letting the viewer
// probe the same adapter the renderer draws with.
//
// Parameters:
//   - adapter: the WebGPU adapter to query
//
// Returns:
//   - Backend: the adapter-backed probe backend
func NewAdapterBackend(adapter *wgpu.Adapter) Backend {
	return &wgpuBackend{adapter: adapter}
}

// uniformVec4Bytes is the size of one vec4 uniform slot in bytes, used to
// express WebGPU's byte-sized uniform budgets in vec4 units.
const uniformVec4Bytes = 16

func (b *wgpuBackend) Limits() (Limits, error) {
	if b.adapter == nil {
		return Limits{}, fmt.Errorf("no adapter")
	}
	supported := b.adapter.GetLimits()
	l := supported.Limits

	uniformVec4s := int(l.MaxUniformBufferBindingSize / uniformVec4Bytes)
	return Limits{
		MaxTextureSize:      int(l.MaxTextureDimension2D),
		MaxRenderbufferSize: int(l.MaxTextureDimension2D),
		MaxVertexUniforms:   uniformVec4s,
		MaxFragmentUniforms: uniformVec4s,
	}, nil
}

func (b *wgpuBackend) Extensions() []string {
	if b.adapter == nil {
		return nil
	}
	var names []string
	for _, f := range b.adapter.EnumerateFeatures() {
		if name, ok := featureNames[f]; ok {
			names = append(names, name)
		}
	}
	return names
}

// featureNames maps WebGPU feature enums to their standard WebGPU string names.
// Only the features the viewer can react to are listed; unknown features
// are omitted from the snapshot rather than surfaced with opaque values.
var featureNames = map[wgpu.FeatureName]string{
	wgpu.FeatureNameDepthClipControl:        "depth-clip-control",
	wgpu.FeatureNameDepth32FloatStencil8:    "depth32float-stencil8",
	wgpu.FeatureNameTimestampQuery:          "timestamp-query",
	wgpu.FeatureNameIndirectFirstInstance:   "indirect-first-instance",
	wgpu.FeatureNameShaderF16:               "shader-f16",
	wgpu.FeatureNameRG11B10UfloatRenderable: "rg11b10ufloat-renderable",
	wgpu.FeatureNameTextureCompressionBC:    "texture-compression-bc",
	wgpu.FeatureNameTextureCompressionETC2:  "texture-compression-etc2",
	wgpu.FeatureNameTextureCompressionASTC:  "texture-compression-astc",
}
