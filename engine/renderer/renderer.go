package renderer

import (
	_ "embed"
	"fmt"
	"runtime"
	"sync"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/hollis-dev/stargate/common"
	"github.com/hollis-dev/stargate/engine/camera"
	"github.com/hollis-dev/stargate/engine/light"
	"github.com/hollis-dev/stargate/engine/scene"
)

// forwardShaderSource is the single forward shading pipeline: instanced
// draws, lambert lighting, distance fog, and the full-screen flash overlay.
//
//go:embed assets/forward.wgsl
var forwardShaderSource string

// PresentMode controls how frames are delivered to the display.
type PresentMode int

const (
	// PresentModeVSync synchronizes presentation with the display refresh.
	// The default for the demand-driven loop, which never outruns the display.
	PresentModeVSync PresentMode = iota

	// PresentModeUncapped presents as fast as possible.
	PresentModeUncapped
)

// MSAASampleCount is the multisample anti-aliasing sample count.
type MSAASampleCount uint32

const (
	MSAAOff MSAASampleCount = 1
	MSAA4x  MSAASampleCount = 4
)

// SkyPalette is a vertical background gradient. The active background texture
// name selects a palette; its blended intensity scales the gradient.
type SkyPalette struct {
	Top    [3]float32
	Bottom [3]float32
}

// meshBuffers holds the GPU resources for one uploaded mesh.
type meshBuffers struct {
	vertexBuffer *wgpu.Buffer
	indexBuffer  *wgpu.Buffer
	indexCount   int
}

// drawBatch groups consecutive instances sharing one mesh so the whole group
// renders as a single instanced draw call.
type drawBatch struct {
	mesh          *scene.Mesh
	firstInstance uint32
	count         uint32
}

// rendererImpl is the implementation of the Renderer interface.
type rendererImpl struct {
	mu *sync.Mutex

	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	surface  *wgpu.Surface
	device   *wgpu.Device
	queue    *wgpu.Queue

	surfaceFormat        *wgpu.TextureFormat
	msaaTextureView      *wgpu.TextureView
	depthTextureView     *wgpu.TextureView
	renderPassDescriptor *wgpu.RenderPassDescriptor

	presentMode wgpu.PresentMode
	sampleCount MSAASampleCount

	forceFallbackAdapter bool

	pipeline        *wgpu.RenderPipeline
	bindGroupLayout *wgpu.BindGroupLayout
	bindGroup       *wgpu.BindGroup
	uniformBuffer   *wgpu.Buffer

	instanceBuffer   *wgpu.Buffer
	instanceCapacity int

	meshes map[*scene.Mesh]*meshBuffers

	palettes map[string]SkyPalette

	// Per-frame scratch, reused to keep the frame allocation-free.
	instances []GPUInstance
	batches   []drawBatch
	uniform   GPUFrameUniform

	// Frame state between BeginFrame and Present.
	frameEncoder *wgpu.CommandEncoder
	framePass    *wgpu.RenderPassEncoder
	frameSurface *wgpu.Texture
	frameView    *wgpu.TextureView
}

// Renderer is the WebGPU forward renderer. It owns the GPU device, the
// surface configuration, one shading pipeline, and the per-frame uniform and
// instance buffers. Nodes sharing a mesh are batched into a single instanced
// draw call.
type Renderer interface {
	// Resize reconfigures the surface and its attachments for a new size.
	// Must be called once before the first frame and on every window resize.
	//
	// Parameters:
	//   - width: the new surface width in pixels
	//   - height: the new surface height in pixels
	Resize(width, height int)

	// UploadScene creates GPU vertex and index buffers for every mesh the
	// scene references. Already uploaded meshes are skipped.
	//
	// Parameters:
	//   - s: the scene whose meshes to upload
	//
	// Returns:
	//   - error: error if buffer creation fails
	UploadScene(s scene.Scene) error

	// RegisterPalette associates a background texture name with a sky
	// gradient. Unknown names fall back to the "day" palette.
	//
	// Parameters:
	//   - name: the background texture name
	//   - palette: the gradient to register
	RegisterPalette(name string, palette SkyPalette)

	// RenderFrame renders one complete frame: fills the frame uniform from
	// the camera and environment, rebuilds the instance buffer from the
	// node list, and issues one instanced draw per mesh batch.
	//
	// Parameters:
	//   - cam: the camera supplying view and projection
	//   - s: the scene to render
	//
	// Returns:
	//   - error: error if the swapchain texture could not be acquired
	RenderFrame(cam camera.Camera, s scene.Scene) error
}

var _ Renderer = &rendererImpl{}

// NewRenderer creates the WebGPU renderer for the given surface. Panics if no
// suitable adapter or device is available, since the process cannot render
// anything without one.
//
// Parameters:
//   - surfaceDescriptor: the window surface to render into
//   - options: functional options to configure the renderer
//
// Returns:
//   - Renderer: the newly created renderer
func NewRenderer(surfaceDescriptor *wgpu.SurfaceDescriptor, options ...RendererBuilderOption) Renderer {
	runtime.LockOSThread()
	r := &rendererImpl{
		mu:          &sync.Mutex{},
		presentMode: wgpu.PresentModeFifo,
		sampleCount: MSAA4x,
		meshes:      make(map[*scene.Mesh]*meshBuffers),
		palettes: map[string]SkyPalette{
			"day":   {Top: [3]float32{0.45, 0.65, 0.85}, Bottom: [3]float32{0.75, 0.8, 0.85}},
			"night": {Top: [3]float32{0.02, 0.03, 0.08}, Bottom: [3]float32{0.05, 0.07, 0.14}},
		},
	}
	for _, option := range options {
		option(r)
	}

	r.instance = wgpu.CreateInstance(nil)
	r.surface = r.instance.CreateSurface(surfaceDescriptor)

	adapter, err := r.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		ForceFallbackAdapter: r.forceFallbackAdapter,
		CompatibleSurface:    r.surface,
	})
	if err != nil {
		panic(err)
	}
	r.adapter = adapter

	device, err := adapter.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "Main Device",
	})
	if err != nil {
		panic(err)
	}
	r.device = device
	r.queue = device.GetQueue()

	return r
}

func (r *rendererImpl) Resize(width, height int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	capabilities := r.surface.GetCapabilities(r.adapter)
	r.surfaceFormat = &capabilities.Formats[0]

	r.surface.Configure(r.adapter, r.device, &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      *r.surfaceFormat,
		Width:       uint32(width),
		Height:      uint32(height),
		PresentMode: r.presentMode,
		AlphaMode:   capabilities.AlphaModes[0],
	})

	count := uint32(r.sampleCount)
	msaaEnabled := count > 1

	if msaaEnabled {
		// The render pass draws into the MSAA texture; the resolved result is
		// written to the swapchain view as the ResolveTarget.
		msaaTexture, err := r.device.CreateTexture(&wgpu.TextureDescriptor{
			Label: "MSAA Texture",
			Size: wgpu.Extent3D{
				Width:              uint32(width),
				Height:             uint32(height),
				DepthOrArrayLayers: 1,
			},
			MipLevelCount: 1,
			SampleCount:   count,
			Dimension:     wgpu.TextureDimension2D,
			Format:        *r.surfaceFormat,
			Usage:         wgpu.TextureUsageRenderAttachment,
		})
		if err != nil {
			panic(err)
		}
		r.msaaTextureView, err = msaaTexture.CreateView(nil)
		if err != nil {
			panic(err)
		}
	} else {
		r.msaaTextureView = nil
	}

	depthTexture, err := r.device.CreateTexture(&wgpu.TextureDescriptor{
		Label: "Depth Texture",
		Size: wgpu.Extent3D{
			Width:              uint32(width),
			Height:             uint32(height),
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   count,
		Dimension:     wgpu.TextureDimension2D,
		Format:        wgpu.TextureFormatDepth24Plus,
		Usage:         wgpu.TextureUsageRenderAttachment,
	})
	if err != nil {
		panic(err)
	}
	r.depthTextureView, err = depthTexture.CreateView(nil)
	if err != nil {
		panic(err)
	}

	storeOp := wgpu.StoreOpStore
	if msaaEnabled {
		storeOp = wgpu.StoreOpDiscard // Resolve only, MSAA data is not kept
	}
	r.renderPassDescriptor = &wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:          r.msaaTextureView, // nil when MSAA is off; set in beginFrame
				ResolveTarget: nil,               // set per-frame when MSAA is on
				LoadOp:        wgpu.LoadOpClear,
				StoreOp:       storeOp,
				ClearValue:    wgpu.Color{R: 0.1, G: 0.1, B: 0.1, A: 1.0},
			},
		},
		DepthStencilAttachment: &wgpu.RenderPassDepthStencilAttachment{
			View:            r.depthTextureView,
			DepthLoadOp:     wgpu.LoadOpClear,
			DepthStoreOp:    wgpu.StoreOpDiscard,
			DepthClearValue: 1.0,
		},
	}

	if r.pipeline == nil {
		r.initPipeline()
	}
}

func (r *rendererImpl) UploadScene(s scene.Scene) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, n := range s.Nodes() {
		if n.Mesh == nil {
			continue
		}
		if _, ok := r.meshes[n.Mesh]; ok {
			continue
		}
		if err := r.uploadMesh(n.Mesh); err != nil {
			return fmt.Errorf("failed to upload mesh %q: %w", n.Mesh.Name, err)
		}
	}
	return nil
}

func (r *rendererImpl) RegisterPalette(name string, palette SkyPalette) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.palettes[name] = palette
}

func (r *rendererImpl) RenderFrame(cam camera.Camera, s scene.Scene) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	env := s.Environment()
	r.buildBatches(s)
	r.fillUniform(cam, s, env)

	if len(r.instances) > 0 {
		if err := r.ensureInstanceCapacity(len(r.instances)); err != nil {
			return err
		}
		r.queue.WriteBuffer(r.instanceBuffer, 0, common.SliceToBytes(r.instances))
	}
	r.queue.WriteBuffer(r.uniformBuffer, 0, common.StructToBytes(&r.uniform))

	if err := r.beginFrame(env); err != nil {
		return err
	}

	r.framePass.SetPipeline(r.pipeline)
	r.framePass.SetBindGroup(0, r.bindGroup, nil)
	for _, batch := range r.batches {
		mb := r.meshes[batch.mesh]
		r.framePass.SetVertexBuffer(0, mb.vertexBuffer, 0, wgpu.WholeSize)
		r.framePass.SetIndexBuffer(mb.indexBuffer, wgpu.IndexFormatUint32, 0, wgpu.WholeSize)
		r.framePass.DrawIndexed(uint32(mb.indexCount), batch.count, 0, 0, batch.firstInstance)
	}

	r.endFrame()
	r.present()
	return nil
}

// uploadMesh creates and fills the GPU buffers for one mesh.
// Caller must hold the mutex.
func (r *rendererImpl) uploadMesh(m *scene.Mesh) error {
	verts := make([]GPUVertex, len(m.Vertices))
	for i, v := range m.Vertices {
		verts[i] = GPUVertex{
			Position: [3]float32{v.Position.X, v.Position.Y, v.Position.Z},
			Normal:   [3]float32{v.Normal.X, v.Normal.Y, v.Normal.Z},
		}
	}

	vertexBuffer, err := r.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: m.Name + " Vertex Buffer",
		Size:  uint64(len(verts) * vertexStride),
		Usage: wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return err
	}
	r.queue.WriteBuffer(vertexBuffer, 0, common.SliceToBytes(verts))

	indexBuffer, err := r.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: m.Name + " Index Buffer",
		Size:  uint64(len(m.Indices) * 4),
		Usage: wgpu.BufferUsageIndex | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return err
	}
	r.queue.WriteBuffer(indexBuffer, 0, common.SliceToBytes(m.Indices))

	r.meshes[m] = &meshBuffers{
		vertexBuffer: vertexBuffer,
		indexBuffer:  indexBuffer,
		indexCount:   len(m.Indices),
	}
	return nil
}

// buildBatches regroups visible nodes by mesh into the scratch instance and
// batch slices. Caller must hold the mutex.
func (r *rendererImpl) buildBatches(s scene.Scene) {
	r.instances = r.instances[:0]
	r.batches = r.batches[:0]

	// Group-by-key: nodes sharing a mesh collapse into one instanced draw.
	byMesh := make(map[*scene.Mesh][]*scene.Node)
	var order []*scene.Mesh
	for _, n := range s.Nodes() {
		if n.Mesh == nil || !n.Visible {
			continue
		}
		if _, ok := r.meshes[n.Mesh]; !ok {
			continue
		}
		if _, ok := byMesh[n.Mesh]; !ok {
			order = append(order, n.Mesh)
		}
		byMesh[n.Mesh] = append(byMesh[n.Mesh], n)
	}

	for _, m := range order {
		nodes := byMesh[m]
		first := uint32(len(r.instances))
		for _, n := range nodes {
			var inst GPUInstance
			n.ModelMatrix(inst.Model[:])
			inst.Tint = n.Tint
			inst.Glow = n.Glow
			r.instances = append(r.instances, inst)
		}
		r.batches = append(r.batches, drawBatch{
			mesh:          m,
			firstInstance: first,
			count:         uint32(len(nodes)),
		})
	}
}

// fillUniform populates the frame uniform scratch from the camera, lights,
// and environment. Caller must hold the mutex.
func (r *rendererImpl) fillUniform(cam camera.Camera, s scene.Scene, env scene.Environment) {
	r.uniform.ViewProjection = cam.ViewProjectionMatrix()
	pos := cam.Position()
	r.uniform.CameraPos = [4]float32{pos.X, pos.Y, pos.Z, 0}
	r.uniform.Ambient = [4]float32{
		env.AmbientColor[0], env.AmbientColor[1], env.AmbientColor[2], env.AmbientIntensity,
	}
	r.uniform.FogColor = [4]float32{env.Fog.Color[0], env.Fog.Color[1], env.Fog.Color[2], 0}
	r.uniform.FogParams = [4]float32{env.Fog.Near, env.Fog.Far, env.FlashOverlay, env.StarsOpacity}

	palette := r.paletteFor(env.Background.Texture)
	r.uniform.SkyTop = [4]float32{palette.Top[0], palette.Top[1], palette.Top[2], env.Background.Intensity}
	r.uniform.SkyBottom = [4]float32{palette.Bottom[0], palette.Bottom[1], palette.Bottom[2], env.BloomIntensity}

	count := 0
	for _, l := range s.Lights() {
		if count >= maxLights || !l.Enabled() {
			continue
		}
		lightType := float32(0)
		if l.Type() == light.LightTypePoint {
			lightType = 1
		}
		p := l.Position()
		d := l.Direction()
		c := l.Color()
		r.uniform.Lights[count] = GPULight{
			PosType:        [4]float32{p.X, p.Y, p.Z, lightType},
			ColorIntensity: [4]float32{c[0], c[1], c[2], l.Intensity()},
			DirRange:       [4]float32{d.X, d.Y, d.Z, l.Range()},
		}
		count++
	}
	r.uniform.Counts = [4]float32{float32(count), 0, 0, 0}
}

// paletteFor resolves a background texture name to its sky palette, falling
// back to "day". Caller must hold the mutex.
func (r *rendererImpl) paletteFor(name string) SkyPalette {
	if p, ok := r.palettes[name]; ok {
		return p
	}
	return r.palettes["day"]
}

// ensureInstanceCapacity grows the instance storage buffer and rebuilds the
// bind group when the frame needs more instances than the buffer holds.
// Caller must hold the mutex.
func (r *rendererImpl) ensureInstanceCapacity(needed int) error {
	if needed <= r.instanceCapacity && r.instanceBuffer != nil {
		return nil
	}

	capacity := r.instanceCapacity * 2
	if capacity < needed {
		capacity = needed
	}
	if capacity < 64 {
		capacity = 64
	}

	buf, err := r.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "Instance Buffer",
		Size:  uint64(capacity * instanceSize),
		Usage: wgpu.BufferUsageStorage | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return err
	}
	r.instanceBuffer = buf
	r.instanceCapacity = capacity

	bindGroup, err := r.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "Frame Bind Group",
		Layout: r.bindGroupLayout,
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, Buffer: r.uniformBuffer, Offset: 0, Size: wgpu.WholeSize},
			{Binding: 1, Buffer: r.instanceBuffer, Offset: 0, Size: wgpu.WholeSize},
		},
	})
	if err != nil {
		return err
	}
	r.bindGroup = bindGroup
	return nil
}

// initPipeline builds the forward pipeline, the uniform buffer, and the
// initial instance buffer. Caller must hold the mutex; the surface format
// must already be known.
func (r *rendererImpl) initPipeline() {
	module, err := r.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label: "forward",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
			Code: forwardShaderSource,
		},
	})
	if err != nil {
		panic(err)
	}

	layout, err := r.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "Frame Bind Group Layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageVertex | wgpu.ShaderStageFragment,
				Buffer: wgpu.BufferBindingLayout{
					Type:           wgpu.BufferBindingTypeUniform,
					MinBindingSize: frameDataSize,
				},
			},
			{
				Binding:    1,
				Visibility: wgpu.ShaderStageVertex,
				Buffer: wgpu.BufferBindingLayout{
					Type: wgpu.BufferBindingTypeReadOnlyStorage,
				},
			},
		},
	})
	if err != nil {
		panic(err)
	}
	r.bindGroupLayout = layout

	pipelineLayout, err := r.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            "forward",
		BindGroupLayouts: []*wgpu.BindGroupLayout{layout},
	})
	if err != nil {
		panic(err)
	}

	pipeline, err := r.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  "forward Render Pipeline",
		Layout: pipelineLayout,
		Vertex: wgpu.VertexState{
			Module:     module,
			EntryPoint: "vs_main",
			Buffers: []wgpu.VertexBufferLayout{
				{
					ArrayStride: uint64(vertexStride),
					StepMode:    wgpu.VertexStepModeVertex,
					Attributes: []wgpu.VertexAttribute{
						{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
						{Format: wgpu.VertexFormatFloat32x3, Offset: 12, ShaderLocation: 1},
					},
				},
			},
		},
		Fragment: &wgpu.FragmentState{
			Module:     module,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{
				{
					Format:    *r.surfaceFormat,
					WriteMask: wgpu.ColorWriteMaskAll,
					Blend: &wgpu.BlendState{
						Color: wgpu.BlendComponent{
							SrcFactor: wgpu.BlendFactorSrcAlpha,
							DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
							Operation: wgpu.BlendOperationAdd,
						},
						Alpha: wgpu.BlendComponent{
							SrcFactor: wgpu.BlendFactorOne,
							DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
							Operation: wgpu.BlendOperationAdd,
						},
					},
				},
			},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyTriangleList,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  wgpu.CullModeBack,
		},
		Multisample: wgpu.MultisampleState{
			Count: uint32(r.sampleCount),
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
		panic(err)
	}
	r.pipeline = pipeline

	r.uniformBuffer, err = r.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "Frame Uniform Buffer",
		Size:  frameDataSize,
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		panic(err)
	}

	if err := r.ensureInstanceCapacity(64); err != nil {
		panic(err)
	}
}

// beginFrame acquires the next swapchain texture and starts the main render
// pass with the clear color derived from the sky palette. Caller must hold
// the mutex.
func (r *rendererImpl) beginFrame(env scene.Environment) error {
	if r.frameSurface != nil {
		return fmt.Errorf("previous frame surface not yet presented")
	}

	palette := r.paletteFor(env.Background.Texture)
	intensity := env.Background.Intensity
	r.renderPassDescriptor.ColorAttachments[0].ClearValue = wgpu.Color{
		R: float64(palette.Top[0] * intensity),
		G: float64(palette.Top[1] * intensity),
		B: float64(palette.Top[2] * intensity),
		A: 1.0,
	}

	surfaceTexture, err := r.surface.GetCurrentTexture()
	if err != nil {
		return err
	}

	view, err := surfaceTexture.CreateView(nil)
	if err != nil {
		surfaceTexture.Release()
		return err
	}

	encoder, err := r.device.CreateCommandEncoder(nil)
	if err != nil {
		view.Release()
		surfaceTexture.Release()
		return err
	}

	if r.sampleCount > 1 {
		r.renderPassDescriptor.ColorAttachments[0].ResolveTarget = view
	} else {
		r.renderPassDescriptor.ColorAttachments[0].View = view
	}
	pass := encoder.BeginRenderPass(r.renderPassDescriptor)

	r.frameEncoder = encoder
	r.framePass = pass
	r.frameSurface = surfaceTexture
	r.frameView = view
	return nil
}

// endFrame ends the render pass and submits the command buffer.
// Caller must hold the mutex.
func (r *rendererImpl) endFrame() {
	r.framePass.End()

	commandBuffer, err := r.frameEncoder.Finish(nil)
	if err != nil {
		r.frameEncoder.Release()
		r.frameView.Release()
		r.frameSurface.Release()
		r.frameEncoder = nil
		r.framePass = nil
		r.frameSurface = nil
		r.frameView = nil
		return
	}

	r.queue.Submit(commandBuffer)
	commandBuffer.Release()
	r.frameEncoder.Release()
	r.frameEncoder = nil
	r.framePass = nil
}

// present presents the acquired surface image and releases frame references.
// Caller must hold the mutex.
func (r *rendererImpl) present() {
	if r.frameSurface == nil {
		return
	}

	r.surface.Present()

	if r.frameView != nil {
		r.frameView.Release()
		r.frameView = nil
	}
	r.frameSurface.Release()
	r.frameSurface = nil
}
