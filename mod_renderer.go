package aolab

import (
	"github.com/cogentcore/webgpu/wgpu"

	"github.com/aolab3d/aolab/gpu"
	"github.com/aolab3d/aolab/shaders"
)

// RenderMode selects what the frame presents after the geometry pass has
// filled the depth buffer.
type RenderMode int

const (
	ModeShaded RenderMode = iota
	ModeAO
	ModeDepthDebug
)

// RendererModule builds the resource manager, the scene and every pass,
// then installs the per-frame systems. Requires WindowModule and
// CameraModule to be installed first.
type RendererModule struct {
	// ShaderDir is where the WGSL defaults are materialized and re-read
	// from on hot reload.
	ShaderDir string
	// PatternSize is the side length of the SSAO rotation pattern texture.
	PatternSize int
}

type RendererState struct {
	Manager *gpu.Manager
	Log     Logger

	Scene          *Scene
	DepthBuffer    gpu.Handle
	GeometryShader gpu.Handle
	SSAO           *CrytekSSAO
	DepthDebug     *TextureDebugView

	Mode RenderMode
}

func (mod RendererModule) Install(app *App, cmd *Commands) {
	gpuState := resourceOf[GpuState](app)
	windowState := resourceOf[WindowState](app)
	logger := app.Logger()

	shaderDir := mod.ShaderDir
	if shaderDir == "" {
		shaderDir = "shaders"
	}
	patternSize := mod.PatternSize
	if patternSize == 0 {
		patternSize = 64
	}

	paths, err := shaders.Materialize(shaderDir)
	if err != nil {
		panic(err)
	}

	mgr := gpu.NewManager(gpuState.Device, gpuState.Queue, logger)

	depthBuffer := mgr.CreateTexture(&gpu.TextureDesc{
		Label:  "depth buffer",
		Width:  uint32(windowState.WindowWidth),
		Height: uint32(windowState.WindowHeight),
		Format: gpu.DepthFormat,
		Usage:  wgpu.TextureUsageRenderAttachment | wgpu.TextureUsageTextureBinding,
	})

	scene := NewScene(mgr)

	geometryShader := mgr.CreateShader(gpu.ShaderDesc{
		Label: "geometry",
		VS:    gpu.ShaderModuleDesc{Path: paths[shaders.Geometry], EntryPoint: "vs_main"},
		FS:    &gpu.ShaderModuleDesc{Path: paths[shaders.Geometry], EntryPoint: "fs_main"},
		BindGroupLayouts: []gpu.BindGroupLayoutDesc{
			SceneBindGroupLayout(),
			MeshBindGroupLayout(),
		},
		Pipeline: gpu.ShaderPipelineDesc{
			DepthTest:     wgpu.CompareFunctionLess,
			Targets:       []wgpu.TextureFormat{gpuState.SurfaceConfig.Format},
			VertexBuffers: []gpu.VertexBufferLayout{GeometryVertexLayout()},
		},
	})

	pattern := NewRotationPatternTexture(mgr, patternSize, 1)
	ssao := NewCrytekSSAO(mgr, paths[shaders.CrytekSSAO], gpuState.SurfaceConfig.Format,
		depthBuffer, pattern)
	depthDebug := NewTextureDebugView(mgr, paths[shaders.TextureDebug],
		paths[shaders.TextureDebugDepth], gpuState.SurfaceConfig.Format, depthBuffer)

	stats := mgr.Stats()
	logger.Infof("renderer up: %d buffers, %d textures, %d samplers, %d bind groups, %d shaders",
		stats.Buffers, stats.Textures, stats.Samplers, stats.BindGroups, stats.Shaders)

	cmd.AddResources(&RendererState{
		Manager:        mgr,
		Log:            logger,
		Scene:          scene,
		DepthBuffer:    depthBuffer,
		GeometryShader: geometryShader,
		SSAO:           ssao,
		DepthDebug:     depthDebug,
		Mode:           ModeAO,
	})

	app.UseSystem(System(hotReloadSystem).InStage(Update))
	app.UseSystem(System(sceneUniformSystem).InStage(PreRender))
	app.UseSystem(System(renderSystem).InStage(Render))
}

// hotReloadSystem handles the render mode keys and the R key, which
// recompiles every shader from its source on disk. A failed recompile
// leaves the old pipeline rendering and logs the diagnostic.
func hotReloadSystem(input *Input, rs *RendererState) {
	if input.JustPressed[Key1] {
		rs.Mode = ModeShaded
	}
	if input.JustPressed[Key2] {
		rs.Mode = ModeAO
	}
	if input.JustPressed[Key3] {
		rs.Mode = ModeDepthDebug
	}

	if !input.JustPressed[KeyR] {
		return
	}
	failed := 0
	for _, entry := range rs.Manager.ShaderSources() {
		rs.Manager.Recompile(entry.Handle)
		if diag := rs.Manager.CompileError(); diag != "" {
			rs.Log.Errorf("recompile %s: %s", entry.Path, diag)
			failed++
		}
	}
	if failed == 0 {
		rs.Log.Infof("all shaders reloaded")
	}
}

func sceneUniformSystem(cam *Camera, windowState *WindowState, rs *RendererState) {
	aspect := float32(windowState.WindowWidth) / float32(windowState.WindowHeight)
	data := BuildSceneUniforms(cam, aspect)
	rs.Manager.UpdateBuffer(rs.Scene.UniformBuffer, toBytes([]SceneUniformData{data}))
}

func renderSystem(rs *RendererState, gpuState *GpuState) {
	nextTexture, err := gpuState.Surface.GetCurrentTexture()
	if err != nil {
		rs.Log.Errorf("GetCurrentTexture failed: %v", err)
		return
	}
	defer nextTexture.Release()

	view, err := nextTexture.CreateView(nil)
	if err != nil {
		rs.Log.Errorf("CreateView failed: %v", err)
		return
	}
	defer view.Release()

	encoder, err := gpuState.Device.CreateCommandEncoder(nil)
	if err != nil {
		rs.Log.Errorf("CreateCommandEncoder failed: %v", err)
		return
	}

	mgr := rs.Manager

	// Geometry pass. Shades into the swapchain and fills the depth buffer
	// the later passes read.
	pass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		Label: "geometry",
		ColorAttachments: []wgpu.RenderPassColorAttachment{{
			View:       view,
			LoadOp:     wgpu.LoadOpClear,
			StoreOp:    wgpu.StoreOpStore,
			ClearValue: wgpu.Color{R: 0.05, G: 0.05, B: 0.08, A: 1},
		}},
		DepthStencilAttachment: mgr.GetTexture(rs.DepthBuffer).DepthStencilAttachment(),
	})
	pass.SetPipeline(mgr.GetShader(rs.GeometryShader).Pipeline())
	pass.SetBindGroup(0, mgr.GetBindGroup(rs.Scene.BindGroup).Raw(), nil)
	for _, mesh := range rs.Scene.Meshes {
		vertices := mgr.GetBuffer(mesh.VertexBuffer)
		indices := mgr.GetBuffer(mesh.IndexBuffer)

		pass.SetBindGroup(1, mgr.GetBindGroup(mesh.BindGroup).Raw(), nil)
		pass.SetVertexBuffer(0, vertices.Raw(), 0, vertices.Size())
		pass.SetIndexBuffer(indices.Raw(), wgpu.IndexFormatUint32, 0, wgpu.WholeSize)
		pass.DrawIndexed(mesh.IndexCount, 1, 0, 0, 0)
	}
	if err := pass.End(); err != nil {
		rs.Log.Errorf("geometry pass End failed: %v", err)
	}

	switch rs.Mode {
	case ModeAO:
		rs.SSAO.Pass(mgr, encoder, view, rs.Scene.BindGroup)
	case ModeDepthDebug:
		rs.DepthDebug.Pass(mgr, encoder, view)
	}

	cmd, err := encoder.Finish(nil)
	if err != nil {
		rs.Log.Errorf("encoder Finish failed: %v", err)
		return
	}
	gpuState.Queue.Submit(cmd)
	gpuState.Surface.Present()
}
