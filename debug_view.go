package aolab

import (
	"github.com/cogentcore/webgpu/wgpu"

	"github.com/aolab3d/aolab/gpu"
)

// TextureDebugView blits any texture across the whole target. The shader
// and layout variant follow the texture's depth classification, since
// depth textures sample through a different WGSL texture type.
type TextureDebugView struct {
	Texture   gpu.Handle
	Shader    gpu.Handle
	BindGroup gpu.Handle
}

func debugBindGroupLayout(depth bool) gpu.BindGroupLayoutDesc {
	sampleType := wgpu.TextureSampleTypeFloat
	if depth {
		sampleType = wgpu.TextureSampleTypeDepth
	}
	return gpu.BindGroupLayoutDesc{
		Label:      "texture debug",
		Visibility: wgpu.ShaderStageFragment,
		Textures:   []wgpu.TextureSampleType{sampleType},
	}
}

// NewTextureDebugView builds the view for one texture. colorPath and
// depthPath are the two shader variants on disk; the texture picks one.
func NewTextureDebugView(mgr *gpu.Manager, colorPath, depthPath string,
	targetFormat wgpu.TextureFormat, texture gpu.Handle) *TextureDebugView {
	depth := mgr.GetTexture(texture).IsDepth()
	path := colorPath
	if depth {
		path = depthPath
	}
	layout := debugBindGroupLayout(depth)

	view := &TextureDebugView{Texture: texture}
	view.BindGroup = mgr.CreateBindGroup(&gpu.BindGroupDesc{
		Label:    "texture debug",
		Layout:   layout,
		Textures: []gpu.Handle{texture},
	})
	view.Shader = mgr.CreateShader(gpu.ShaderDesc{
		Label:            "texture debug",
		VS:               gpu.ShaderModuleDesc{Path: path, EntryPoint: "vs_main"},
		FS:               &gpu.ShaderModuleDesc{Path: path, EntryPoint: "fs_main"},
		BindGroupLayouts: []gpu.BindGroupLayoutDesc{layout},
		Pipeline: gpu.ShaderPipelineDesc{
			Targets: []wgpu.TextureFormat{targetFormat},
		},
	})
	return view
}

// Pass draws the texture as a fullscreen quad into view.
func (v *TextureDebugView) Pass(mgr *gpu.Manager, encoder *wgpu.CommandEncoder,
	view *wgpu.TextureView) {
	pass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		Label: "texture debug",
		ColorAttachments: []wgpu.RenderPassColorAttachment{{
			View:       view,
			LoadOp:     wgpu.LoadOpClear,
			StoreOp:    wgpu.StoreOpStore,
			ClearValue: wgpu.Color{R: 0, G: 0, B: 0, A: 1},
		}},
	})
	pass.SetPipeline(mgr.GetShader(v.Shader).Pipeline())
	pass.SetBindGroup(0, mgr.GetBindGroup(v.BindGroup).Raw(), nil)
	pass.Draw(6, 1, 0, 0)
	if err := pass.End(); err != nil {
		panic(err)
	}
}
