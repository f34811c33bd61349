package renderer

import (
	"fmt"
	"sync"

	"github.com/cogentcore/webgpu/wgpu"

	"github.com/demireidel/Atucha-II-Max/common"
	"github.com/demireidel/Atucha-II-Max/core/quality"
	"github.com/demireidel/Atucha-II-Max/engine/light"
	"github.com/demireidel/Atucha-II-Max/engine/mesh"
)

// ambientStrength is the constant ambient term of the lit pass. The hall is
// enclosed, so the floor of the lighting never goes fully black.
const ambientStrength float32 = 0.35

// globalsSize is the byte size of the Globals uniform: two mat4x4 plus two
// vec4 values.
const globalsSize = 64 + 64 + 16 + 16

// lightBufferSize is the byte size of the light uniform buffer: a 16-byte
// header plus MaxGPULights 48-byte slots.
const lightBufferSize = 16 + light.MaxGPULights*48

// Renderer draws the reactor hall. It owns the WebGPU device stack, the
// fixed pipeline set (lit, shadow, post), and the per-mesh instance batches.
//
// The renderer is reconfigured rather than rebuilt when quality changes:
// Configure recreates the size- and quality-dependent resources (swapchain,
// MSAA and depth targets, shadow map, pipelines) while mesh batches and
// uniform buffers persist.
type Renderer interface {
	// Adapter returns the underlying WebGPU adapter, used for capability
	// probing.
	//
	// Returns:
	//   - *wgpu.Adapter: the adapter the device was created from
	Adapter() *wgpu.Adapter

	// Configure (re)configures the swapchain and all quality-dependent GPU
	// resources for the given framebuffer size and rendering parameters.
	// Must be called once before the first RenderFrame and again on every
	// resize or quality change.
	//
	// Parameters:
	//   - width: framebuffer width in pixels
	//   - height: framebuffer height in pixels
	//   - params: the derived rendering parameters
	//
	// Returns:
	//   - error: an error if GPU resource creation fails
	Configure(width, height int, params quality.RenderingParameters) error

	// UploadMesh creates GPU vertex and index buffers for the given mesh
	// and registers an instance batch under the mesh name. Uploading a mesh
	// with an existing name replaces its geometry but keeps its instances.
	//
	// Parameters:
	//   - m: the mesh to upload
	//
	// Returns:
	//   - error: an error if buffer creation fails
	UploadMesh(m *mesh.Mesh) error

	// SetInstances replaces the instance list for the named mesh batch. The
	// instance buffer grows as needed and never shrinks.
	//
	// Parameters:
	//   - meshName: the batch to update, as registered by UploadMesh
	//   - instances: the instance records to draw next frame
	//
	// Returns:
	//   - error: an error if the batch does not exist or buffer creation fails
	SetInstances(meshName string, instances []Instance) error

	// SetLights uploads the light rig to the GPU.
	//
	// Parameters:
	//   - lights: the lights to marshal into the light uniform buffer
	SetLights(lights []light.Light)

	// UpdateGlobals uploads the per-frame camera and shadow matrices.
	//
	// Parameters:
	//   - viewProjection: the camera view-projection matrix
	//   - lightViewProjection: the shadow pass view-projection matrix
	//   - cameraX, cameraY, cameraZ: world-space camera position
	//   - elapsedSeconds: seconds since viewer start, drives emissive pulsing
	UpdateGlobals(viewProjection, lightViewProjection [16]float32, cameraX, cameraY, cameraZ, elapsedSeconds float32)

	// RenderFrame encodes and submits one frame: the shadow depth pass when
	// shadows are enabled, the lit pass over every non-empty batch, and the
	// post-processing pass when enabled. Presents the result.
	//
	// Returns:
	//   - error: an error if the swapchain texture could not be acquired
	RenderFrame() error

	// Release frees all GPU resources held by the renderer.
	Release()
}

// meshBatch holds the GPU buffers for one mesh and its instances.
type meshBatch struct {
	vertexBuffer  *wgpu.Buffer
	indexBuffer   *wgpu.Buffer
	indexCount    int
	instanceBuf   *wgpu.Buffer
	instanceCap   int
	instanceCount uint32
	bindGroup     *wgpu.BindGroup
}

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu      *sync.Mutex
	backend *wgpuBackend

	batches map[string]*meshBatch

	// Static layouts and buffers, created once at construction.
	globalLayout     *wgpu.BindGroupLayout
	instanceLayout   *wgpu.BindGroupLayout
	shadowLayout     *wgpu.BindGroupLayout
	postLayout       *wgpu.BindGroupLayout
	globalsBuffer    *wgpu.Buffer
	lightsBuffer     *wgpu.Buffer
	shadowUniformBuf *wgpu.Buffer
	shadowSampler    *wgpu.Sampler
	postSampler      *wgpu.Sampler

	// Quality-dependent resources, rebuilt by Configure.
	litPipeline    *wgpu.RenderPipeline
	shadowPipeline *wgpu.RenderPipeline
	postPipeline   *wgpu.RenderPipeline
	msaaTexture    *wgpu.Texture
	msaaView       *wgpu.TextureView
	depthTexture   *wgpu.Texture
	depthView      *wgpu.TextureView
	shadowTexture  *wgpu.Texture
	shadowView     *wgpu.TextureView
	offscreenTex   *wgpu.Texture
	offscreenView  *wgpu.TextureView
	globalGroup    *wgpu.BindGroup
	shadowGroup    *wgpu.BindGroup
	postGroup      *wgpu.BindGroup

	sampleCount uint32
	shadow      light.ShadowSettings
	postEnabled bool
	width       int
	height      int
	clearColor  wgpu.Color

	// Pre-creation config collected from builder options.
	forceFallbackAdapter bool
	pendingPresentMode   *PresentMode
}

var _ Renderer = &renderer{}

// NewRenderer creates the renderer and its WebGPU device stack against the
// given surface descriptor. Configure must be called before rendering.
//
// Parameters:
//   - surfaceDescriptor: platform surface descriptor from the window layer
//   - options: functional options to configure the renderer
//
// Returns:
//   - Renderer: the newly created renderer
//   - error: an error if device or static resource creation fails
func NewRenderer(surfaceDescriptor *wgpu.SurfaceDescriptor, options ...RendererBuilderOption) (Renderer, error) {
	r := &renderer{
		mu:          &sync.Mutex{},
		batches:     make(map[string]*meshBatch),
		sampleCount: 1,
		clearColor:  wgpu.Color{R: 0.06, G: 0.07, B: 0.09, A: 1.0},
	}
	for _, opt := range options {
		opt(r)
	}

	backend, err := newWGPUBackend(surfaceDescriptor, r.forceFallbackAdapter)
	if err != nil {
		return nil, err
	}
	r.backend = backend
	if r.pendingPresentMode != nil {
		backend.setPresentMode(*r.pendingPresentMode)
	}

	if err := r.createStaticResources(); err != nil {
		backend.release()
		return nil, err
	}

	return r, nil
}

// createStaticResources builds the layouts, uniform buffers, and samplers
// that survive quality changes.
func (r *renderer) createStaticResources() error {
	var err error
	if r.globalLayout, err = r.backend.createGlobalBindGroupLayout(); err != nil {
		return err
	}
	if r.instanceLayout, err = r.backend.createInstanceBindGroupLayout(); err != nil {
		return err
	}
	if r.shadowLayout, err = r.backend.createShadowBindGroupLayout(); err != nil {
		return err
	}
	if r.postLayout, err = r.backend.createPostBindGroupLayout(); err != nil {
		return err
	}
	if r.globalsBuffer, err = r.backend.createUniformBuffer("Globals Buffer", globalsSize); err != nil {
		return err
	}
	if r.lightsBuffer, err = r.backend.createUniformBuffer("Lights Buffer", lightBufferSize); err != nil {
		return err
	}
	if r.shadowUniformBuf, err = r.backend.createUniformBuffer("Shadow Globals Buffer", 64); err != nil {
		return err
	}
	if r.shadowSampler, err = r.backend.createComparisonSampler(); err != nil {
		return err
	}
	if r.postSampler, err = r.backend.createLinearSampler(); err != nil {
		return err
	}

	shadowGroup, err := r.backend.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "Shadow Bind Group",
		Layout: r.shadowLayout,
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, Buffer: r.shadowUniformBuf, Offset: 0, Size: wgpu.WholeSize},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create shadow bind group: %w", err)
	}
	r.shadowGroup = shadowGroup

	return nil
}

func (r *renderer) Adapter() *wgpu.Adapter {
	return r.backend.adapter
}

func (r *renderer) Configure(width, height int, params quality.RenderingParameters) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if width <= 0 || height <= 0 {
		return fmt.Errorf("invalid surface size %dx%d", width, height)
	}

	prevSampleCount := r.sampleCount
	prevFormat := r.backend.surfaceFormat

	r.width = width
	r.height = height
	r.sampleCount = 1
	if params.AntialiasingEnabled {
		r.sampleCount = 4
	}
	r.postEnabled = params.PostProcessingEnabled
	newShadow := light.SettingsForQuality(params)

	r.backend.configureSurface(width, height)

	// MSAA color target.
	releaseTexture(&r.msaaTexture, &r.msaaView)
	if r.sampleCount > 1 {
		tex, view, err := r.backend.createColorTarget("MSAA Texture", width, height, r.sampleCount, wgpu.TextureUsageRenderAttachment)
		if err != nil {
			return err
		}
		r.msaaTexture, r.msaaView = tex, view
	}

	// Depth target matches the main pass sample count.
	releaseTexture(&r.depthTexture, &r.depthView)
	depthTex, depthView, err := r.backend.createDepthTarget(width, height, r.sampleCount)
	if err != nil {
		return err
	}
	r.depthTexture, r.depthView = depthTex, depthView

	// Shadow map, rebuilt only when the resolution changes.
	if r.shadowTexture == nil || newShadow.Resolution != r.shadow.Resolution {
		releaseTexture(&r.shadowTexture, &r.shadowView)
		shadowTex, shadowView, err := r.backend.createShadowDepthTexture(newShadow.Resolution)
		if err != nil {
			return err
		}
		r.shadowTexture, r.shadowView = shadowTex, shadowView

		// The global bind group references the shadow view, so it must
		// follow the texture.
		releaseBindGroup(&r.globalGroup)
	}
	r.shadow = newShadow

	// Offscreen scene color for the post pass.
	releaseTexture(&r.offscreenTex, &r.offscreenView)
	releaseBindGroup(&r.postGroup)
	if r.postEnabled {
		tex, view, err := r.backend.createColorTarget("Scene Color Texture", width, height, 1, wgpu.TextureUsageRenderAttachment|wgpu.TextureUsageTextureBinding)
		if err != nil {
			return err
		}
		r.offscreenTex, r.offscreenView = tex, view

		postGroup, err := r.backend.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
			Label:  "Post Bind Group",
			Layout: r.postLayout,
			Entries: []wgpu.BindGroupEntry{
				{Binding: 0, TextureView: r.offscreenView},
				{Binding: 1, Sampler: r.postSampler},
			},
		})
		if err != nil {
			return fmt.Errorf("failed to create post bind group: %w", err)
		}
		r.postGroup = postGroup
	}

	if r.globalGroup == nil {
		globalGroup, err := r.backend.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
			Label:  "Global Bind Group",
			Layout: r.globalLayout,
			Entries: []wgpu.BindGroupEntry{
				{Binding: 0, Buffer: r.globalsBuffer, Offset: 0, Size: wgpu.WholeSize},
				{Binding: 1, Buffer: r.lightsBuffer, Offset: 0, Size: wgpu.WholeSize},
				{Binding: 2, TextureView: r.shadowView},
				{Binding: 3, Sampler: r.shadowSampler},
			},
		})
		if err != nil {
			return fmt.Errorf("failed to create global bind group: %w", err)
		}
		r.globalGroup = globalGroup
	}

	// Pipelines depend on the surface format and sample count.
	if r.litPipeline == nil || prevSampleCount != r.sampleCount || prevFormat != r.backend.surfaceFormat {
		lit, err := r.backend.createLitPipeline(r.globalLayout, r.instanceLayout, r.sampleCount)
		if err != nil {
			return err
		}
		r.litPipeline = lit
	}
	if r.shadowPipeline == nil {
		shadow, err := r.backend.createShadowPipeline(r.shadowLayout, r.instanceLayout)
		if err != nil {
			return err
		}
		r.shadowPipeline = shadow
	}
	if r.postPipeline == nil || prevFormat != r.backend.surfaceFormat {
		post, err := r.backend.createPostPipeline(r.postLayout)
		if err != nil {
			return err
		}
		r.postPipeline = post
	}

	return nil
}

func (r *renderer) UploadMesh(m *mesh.Mesh) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	vertexData := m.VertexBytes()
	indexData := m.IndexBytes()
	if len(vertexData) == 0 || len(indexData) == 0 {
		return fmt.Errorf("mesh %q has no geometry", m.Name)
	}

	vertexBuf, err := r.backend.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: m.Name + " Vertex Buffer",
		Size:  uint64(len(vertexData)),
		Usage: wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("failed to create vertex buffer for %q: %w", m.Name, err)
	}
	r.backend.queue.WriteBuffer(vertexBuf, 0, vertexData)

	indexBuf, err := r.backend.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: m.Name + " Index Buffer",
		Size:  uint64(len(indexData)),
		Usage: wgpu.BufferUsageIndex | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		vertexBuf.Release()
		return fmt.Errorf("failed to create index buffer for %q: %w", m.Name, err)
	}
	r.backend.queue.WriteBuffer(indexBuf, 0, indexData)

	if existing, ok := r.batches[m.Name]; ok {
		existing.vertexBuffer.Release()
		existing.indexBuffer.Release()
		existing.vertexBuffer = vertexBuf
		existing.indexBuffer = indexBuf
		existing.indexCount = m.IndexCount()
		return nil
	}

	r.batches[m.Name] = &meshBatch{
		vertexBuffer: vertexBuf,
		indexBuffer:  indexBuf,
		indexCount:   m.IndexCount(),
	}
	return nil
}

func (r *renderer) SetInstances(meshName string, instances []Instance) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	batch, ok := r.batches[meshName]
	if !ok {
		return fmt.Errorf("no mesh batch named %q", meshName)
	}

	batch.instanceCount = uint32(len(instances))
	if len(instances) == 0 {
		return nil
	}

	if batch.instanceBuf == nil || batch.instanceCap < len(instances) {
		newCap := 16
		for newCap < len(instances) {
			newCap *= 2
		}
		if batch.instanceBuf != nil {
			batch.instanceBuf.Release()
		}
		releaseBindGroup(&batch.bindGroup)
		buf, err := r.backend.device.CreateBuffer(&wgpu.BufferDescriptor{
			Label: meshName + " Instance Buffer",
			Size:  uint64(newCap * InstanceStride),
			Usage: wgpu.BufferUsageStorage | wgpu.BufferUsageCopyDst,
		})
		if err != nil {
			return fmt.Errorf("failed to create instance buffer for %q: %w", meshName, err)
		}
		batch.instanceBuf = buf
		batch.instanceCap = newCap

		bindGroup, err := r.backend.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
			Label:  meshName + " Instance Bind Group",
			Layout: r.instanceLayout,
			Entries: []wgpu.BindGroupEntry{
				{Binding: 0, Buffer: buf, Offset: 0, Size: wgpu.WholeSize},
			},
		})
		if err != nil {
			return fmt.Errorf("failed to create instance bind group for %q: %w", meshName, err)
		}
		batch.bindGroup = bindGroup
	}

	r.backend.queue.WriteBuffer(batch.instanceBuf, 0, MarshalInstances(instances))
	return nil
}

func (r *renderer) SetLights(lights []light.Light) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.backend.queue.WriteBuffer(r.lightsBuffer, 0, light.MarshalLights(lights))
}

func (r *renderer) UpdateGlobals(viewProjection, lightViewProjection [16]float32, cameraX, cameraY, cameraZ, elapsedSeconds float32) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var data [40]float32
	copy(data[0:16], viewProjection[:])
	copy(data[16:32], lightViewProjection[:])
	data[32] = cameraX
	data[33] = cameraY
	data[34] = cameraZ
	data[35] = elapsedSeconds
	if r.shadow.Enabled {
		data[36] = 1
	}
	data[37] = r.shadow.Bias
	data[38] = ambientStrength

	r.backend.queue.WriteBuffer(r.globalsBuffer, 0, common.SliceToBytes(data[:]))
	r.backend.queue.WriteBuffer(r.shadowUniformBuf, 0, common.SliceToBytes(lightViewProjection[:]))
}

func (r *renderer) RenderFrame() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	surfaceTexture, err := r.backend.surface.GetCurrentTexture()
	if err != nil {
		return fmt.Errorf("failed to acquire surface texture: %w", err)
	}
	surfaceView, err := surfaceTexture.CreateView(nil)
	if err != nil {
		surfaceTexture.Release()
		return fmt.Errorf("failed to create surface view: %w", err)
	}

	encoder, err := r.backend.device.CreateCommandEncoder(nil)
	if err != nil {
		surfaceView.Release()
		surfaceTexture.Release()
		return fmt.Errorf("failed to create command encoder: %w", err)
	}

	if r.shadow.Enabled {
		r.encodeShadowPass(encoder)
	}
	r.encodeLitPass(encoder, surfaceView)
	if r.postEnabled && r.postGroup != nil {
		r.encodePostPass(encoder, surfaceView)
	}

	commandBuffer, err := encoder.Finish(nil)
	if err == nil {
		r.backend.queue.Submit(commandBuffer)
		commandBuffer.Release()
	}
	encoder.Release()

	r.backend.surface.Present()
	surfaceView.Release()
	surfaceTexture.Release()

	if err != nil {
		return fmt.Errorf("failed to finish command encoder: %w", err)
	}
	return nil
}

// encodeShadowPass renders every non-empty batch into the shadow map.
func (r *renderer) encodeShadowPass(encoder *wgpu.CommandEncoder) {
	pass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: nil,
		DepthStencilAttachment: &wgpu.RenderPassDepthStencilAttachment{
			View:            r.shadowView,
			DepthLoadOp:     wgpu.LoadOpClear,
			DepthStoreOp:    wgpu.StoreOpStore,
			DepthClearValue: 1.0,
		},
	})
	pass.SetPipeline(r.shadowPipeline)
	pass.SetBindGroup(0, r.shadowGroup, nil)
	for _, batch := range r.batches {
		if batch.instanceCount == 0 || batch.bindGroup == nil {
			continue
		}
		pass.SetBindGroup(1, batch.bindGroup, nil)
		pass.SetVertexBuffer(0, batch.vertexBuffer, 0, wgpu.WholeSize)
		pass.SetIndexBuffer(batch.indexBuffer, wgpu.IndexFormatUint32, 0, wgpu.WholeSize)
		pass.DrawIndexed(uint32(batch.indexCount), batch.instanceCount, 0, 0, 0)
	}
	pass.End()
}

// encodeLitPass renders the hall into the swapchain view, or into the
// offscreen target when post-processing runs afterwards.
func (r *renderer) encodeLitPass(encoder *wgpu.CommandEncoder, surfaceView *wgpu.TextureView) {
	target := surfaceView
	if r.postEnabled && r.offscreenView != nil {
		target = r.offscreenView
	}

	colorAttachment := wgpu.RenderPassColorAttachment{
		LoadOp:     wgpu.LoadOpClear,
		StoreOp:    wgpu.StoreOpStore,
		ClearValue: r.clearColor,
	}
	if r.sampleCount > 1 {
		colorAttachment.View = r.msaaView
		colorAttachment.ResolveTarget = target
		colorAttachment.StoreOp = wgpu.StoreOpDiscard
	} else {
		colorAttachment.View = target
	}

	pass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{colorAttachment},
		DepthStencilAttachment: &wgpu.RenderPassDepthStencilAttachment{
			View:            r.depthView,
			DepthLoadOp:     wgpu.LoadOpClear,
			DepthStoreOp:    wgpu.StoreOpDiscard,
			DepthClearValue: 1.0,
		},
	})
	pass.SetPipeline(r.litPipeline)
	pass.SetBindGroup(0, r.globalGroup, nil)
	for _, batch := range r.batches {
		if batch.instanceCount == 0 || batch.bindGroup == nil {
			continue
		}
		pass.SetBindGroup(1, batch.bindGroup, nil)
		pass.SetVertexBuffer(0, batch.vertexBuffer, 0, wgpu.WholeSize)
		pass.SetIndexBuffer(batch.indexBuffer, wgpu.IndexFormatUint32, 0, wgpu.WholeSize)
		pass.DrawIndexed(uint32(batch.indexCount), batch.instanceCount, 0, 0, 0)
	}
	pass.End()
}

// encodePostPass draws the fullscreen triangle from the offscreen target to
// the swapchain.
func (r *renderer) encodePostPass(encoder *wgpu.CommandEncoder, surfaceView *wgpu.TextureView) {
	pass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:       surfaceView,
				LoadOp:     wgpu.LoadOpClear,
				StoreOp:    wgpu.StoreOpStore,
				ClearValue: wgpu.Color{R: 0, G: 0, B: 0, A: 1},
			},
		},
	})
	pass.SetPipeline(r.postPipeline)
	pass.SetBindGroup(0, r.postGroup, nil)
	pass.Draw(3, 1, 0, 0)
	pass.End()
}

func (r *renderer) Release() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, batch := range r.batches {
		if batch.vertexBuffer != nil {
			batch.vertexBuffer.Release()
		}
		if batch.indexBuffer != nil {
			batch.indexBuffer.Release()
		}
		if batch.instanceBuf != nil {
			batch.instanceBuf.Release()
		}
		releaseBindGroup(&batch.bindGroup)
	}
	r.batches = make(map[string]*meshBatch)

	releaseBindGroup(&r.globalGroup)
	releaseBindGroup(&r.postGroup)

	releaseTexture(&r.msaaTexture, &r.msaaView)
	releaseTexture(&r.depthTexture, &r.depthView)
	releaseTexture(&r.shadowTexture, &r.shadowView)
	releaseTexture(&r.offscreenTex, &r.offscreenView)

	if r.globalsBuffer != nil {
		r.globalsBuffer.Release()
	}
	if r.lightsBuffer != nil {
		r.lightsBuffer.Release()
	}
	if r.shadowUniformBuf != nil {
		r.shadowUniformBuf.Release()
	}

	r.backend.release()
}

// releaseBindGroup releases a bind group and clears the pointer.
func releaseBindGroup(group **wgpu.BindGroup) {
	if *group != nil {
		(*group).Release()
		*group = nil
	}
}

// releaseTexture releases a texture/view pair and clears the pointers.
func releaseTexture(tex **wgpu.Texture, view **wgpu.TextureView) {
	if *view != nil {
		(*view).Release()
		*view = nil
	}
	if *tex != nil {
		(*tex).Release()
		*tex = nil
	}
}
