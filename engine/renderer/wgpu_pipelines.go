package renderer

import (
	_ "embed"
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"

	"github.com/demireidel/Atucha-II-Max/engine/mesh"
)

// LitShaderSource is the WGSL source for the forward lit pass.
//
//go:embed shaders/lit.wgsl
var LitShaderSource string

// ShadowShaderSource is the WGSL source for the depth-only shadow pass.
//
//go:embed shaders/shadow.wgsl
var ShadowShaderSource string

// PostShaderSource is the WGSL source for the post-processing pass.
//
//go:embed shaders/post.wgsl
var PostShaderSource string

// litVertexLayout describes the mesh.Vertex buffer consumed by the lit
// vertex shader.
func litVertexLayout() wgpu.VertexBufferLayout {
	return wgpu.VertexBufferLayout{
		ArrayStride: uint64(mesh.VertexStride),
		StepMode:    wgpu.VertexStepModeVertex,
		Attributes: []wgpu.VertexAttribute{
			{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
			{Format: wgpu.VertexFormatFloat32x3, Offset: 12, ShaderLocation: 1},
			{Format: wgpu.VertexFormatFloat32x4, Offset: 24, ShaderLocation: 2},
		},
	}
}

// shadowVertexLayout reads only the position attribute from the shared
// vertex buffer; stride stays at the full mesh.Vertex size.
func shadowVertexLayout() wgpu.VertexBufferLayout {
	return wgpu.VertexBufferLayout{
		ArrayStride: uint64(mesh.VertexStride),
		StepMode:    wgpu.VertexStepModeVertex,
		Attributes: []wgpu.VertexAttribute{
			{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
		},
	}
}

// createGlobalBindGroupLayout creates the layout for bind group 0 of the lit
// pass: globals uniform, light buffer, shadow map, and comparison sampler.
func (b *wgpuBackend) createGlobalBindGroupLayout() (*wgpu.BindGroupLayout, error) {
	layout, err := b.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "Global Bind Group Layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageVertex | wgpu.ShaderStageFragment,
				Buffer:     wgpu.BufferBindingLayout{Type: wgpu.BufferBindingTypeUniform},
			},
			{
				Binding:    1,
				Visibility: wgpu.ShaderStageFragment,
				Buffer:     wgpu.BufferBindingLayout{Type: wgpu.BufferBindingTypeUniform},
			},
			{
				Binding:    2,
				Visibility: wgpu.ShaderStageFragment,
				Texture: wgpu.TextureBindingLayout{
					SampleType:    wgpu.TextureSampleTypeDepth,
					ViewDimension: wgpu.TextureViewDimension2D,
				},
			},
			{
				Binding:    3,
				Visibility: wgpu.ShaderStageFragment,
				Sampler:    wgpu.SamplerBindingLayout{Type: wgpu.SamplerBindingTypeComparison},
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create global bind group layout: %w", err)
	}
	return layout, nil
}

// createInstanceBindGroupLayout creates the layout for bind group 1, shared
// by the lit and shadow passes: the per-batch instance storage buffer.
func (b *wgpuBackend) createInstanceBindGroupLayout() (*wgpu.BindGroupLayout, error) {
	layout, err := b.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "Instance Bind Group Layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageVertex,
				Buffer:     wgpu.BufferBindingLayout{Type: wgpu.BufferBindingTypeReadOnlyStorage},
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create instance bind group layout: %w", err)
	}
	return layout, nil
}

// createShadowBindGroupLayout creates the layout for bind group 0 of the
// shadow pass: the light view-projection uniform.
func (b *wgpuBackend) createShadowBindGroupLayout() (*wgpu.BindGroupLayout, error) {
	layout, err := b.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "Shadow Bind Group Layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageVertex,
				Buffer:     wgpu.BufferBindingLayout{Type: wgpu.BufferBindingTypeUniform},
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create shadow bind group layout: %w", err)
	}
	return layout, nil
}

// createPostBindGroupLayout creates the layout for bind group 0 of the post
// pass: the offscreen scene color texture and its sampler.
func (b *wgpuBackend) createPostBindGroupLayout() (*wgpu.BindGroupLayout, error) {
	layout, err := b.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "Post Bind Group Layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageFragment,
				Texture: wgpu.TextureBindingLayout{
					SampleType:    wgpu.TextureSampleTypeFloat,
					ViewDimension: wgpu.TextureViewDimension2D,
				},
			},
			{
				Binding:    1,
				Visibility: wgpu.ShaderStageFragment,
				Sampler:    wgpu.SamplerBindingLayout{Type: wgpu.SamplerBindingTypeFiltering},
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create post bind group layout: %w", err)
	}
	return layout, nil
}

// createLitPipeline builds the forward lit render pipeline at the given MSAA
// sample count.
func (b *wgpuBackend) createLitPipeline(globalLayout, instanceLayout *wgpu.BindGroupLayout, sampleCount uint32) (*wgpu.RenderPipeline, error) {
	module, err := b.createShaderModule("Lit Shader", LitShaderSource)
	if err != nil {
		return nil, err
	}

	pipelineLayout, err := b.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            "Lit Pipeline Layout",
		BindGroupLayouts: []*wgpu.BindGroupLayout{globalLayout, instanceLayout},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create lit pipeline layout: %w", err)
	}

	created, err := b.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  "Lit Render Pipeline",
		Layout: pipelineLayout,
		Vertex: wgpu.VertexState{
			Module:     module,
			EntryPoint: "vs_main",
			Buffers:    []wgpu.VertexBufferLayout{litVertexLayout()},
		},
		Fragment: &wgpu.FragmentState{
			Module:     module,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{
				{
					Format:    b.surfaceFormat,
					WriteMask: wgpu.ColorWriteMaskAll,
				},
			},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyTriangleList,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  wgpu.CullModeBack,
		},
		Multisample: wgpu.MultisampleState{
			Count: sampleCount,
			Mask:  0xFFFFFFFF,
		},
		DepthStencil: &wgpu.DepthStencilState{
			Format:            wgpu.TextureFormatDepth24Plus,
			DepthWriteEnabled: true,
			DepthCompare:      wgpu.CompareFunctionLess,
			StencilFront: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
			StencilBack: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create lit pipeline: %w", err)
	}
	return created, nil
}

// createShadowPipeline builds the depth-only shadow pipeline. Front-face
// culling reduces self-shadowing on the closed tube and vessel meshes.
func (b *wgpuBackend) createShadowPipeline(shadowLayout, instanceLayout *wgpu.BindGroupLayout) (*wgpu.RenderPipeline, error) {
	module, err := b.createShaderModule("Shadow Shader", ShadowShaderSource)
	if err != nil {
		return nil, err
	}

	pipelineLayout, err := b.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            "Shadow Pipeline Layout",
		BindGroupLayouts: []*wgpu.BindGroupLayout{shadowLayout, instanceLayout},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create shadow pipeline layout: %w", err)
	}

	created, err := b.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  "Shadow Render Pipeline",
		Layout: pipelineLayout,
		Vertex: wgpu.VertexState{
			Module:     module,
			EntryPoint: "vs_main",
			Buffers:    []wgpu.VertexBufferLayout{shadowVertexLayout()},
		},
		// Depth-only pass, no fragment shader.
		Fragment: nil,
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyTriangleList,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  wgpu.CullModeFront,
		},
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
		DepthStencil: &wgpu.DepthStencilState{
			Format:              wgpu.TextureFormatDepth32Float,
			DepthWriteEnabled:   true,
			DepthCompare:        wgpu.CompareFunctionLess,
			DepthBias:           2,
			DepthBiasSlopeScale: 2.0,
			StencilFront: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
			StencilBack: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create shadow pipeline: %w", err)
	}
	return created, nil
}

// createPostPipeline builds the fullscreen post-processing pipeline. Always
// sample count 1; MSAA is resolved before this pass runs.
func (b *wgpuBackend) createPostPipeline(postLayout *wgpu.BindGroupLayout) (*wgpu.RenderPipeline, error) {
	module, err := b.createShaderModule("Post Shader", PostShaderSource)
	if err != nil {
		return nil, err
	}

	pipelineLayout, err := b.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            "Post Pipeline Layout",
		BindGroupLayouts: []*wgpu.BindGroupLayout{postLayout},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create post pipeline layout: %w", err)
	}

	created, err := b.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  "Post Render Pipeline",
		Layout: pipelineLayout,
		Vertex: wgpu.VertexState{
			Module:     module,
			EntryPoint: "vs_main",
		},
		Fragment: &wgpu.FragmentState{
			Module:     module,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{
				{
					Format:    b.surfaceFormat,
					WriteMask: wgpu.ColorWriteMaskAll,
				},
			},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyTriangleList,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  wgpu.CullModeNone,
		},
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create post pipeline: %w", err)
	}
	return created, nil
}
