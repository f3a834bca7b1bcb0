package gpu

import (
	"fmt"
	"os"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/gogpu/naga"
)

// Shader pairs a compiled render pipeline with the descriptor that produced
// it. The descriptor is retained on purpose: Recompile rebuilds the whole
// pipeline from it without the caller resupplying anything.
type Shader struct {
	desc     ShaderDesc
	pipeline *wgpu.RenderPipeline
}

func (s *Shader) Desc() ShaderDesc               { return s.desc }
func (s *Shader) Pipeline() *wgpu.RenderPipeline { return s.pipeline }

// CreateShader reads the descriptor's WGSL source from disk, compiles it,
// and assembles the full render pipeline. A broken shader here is fatal:
// there is no previously working pipeline to fall back to yet.
func (m *Manager) CreateShader(desc ShaderDesc) Handle {
	shader := m.buildShader(desc)
	index := m.shaders.add(shader)
	return Handle{index: index, kind: KindShader}
}

func (m *Manager) buildShader(desc ShaderDesc) *Shader {
	if desc.FS != nil && desc.FS.Path != desc.VS.Path {
		panic(fmt.Sprintf("gpu: vertex and fragment entry points must share one source file, got %q and %q",
			desc.VS.Path, desc.FS.Path))
	}

	source, err := os.ReadFile(desc.VS.Path)
	if err != nil {
		panic(err)
	}

	module, err := m.Device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          desc.VS.Path,
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: string(source)},
	})
	if err != nil {
		panic(err)
	}
	defer module.Release()

	layouts := make([]*wgpu.BindGroupLayout, len(desc.BindGroupLayouts))
	for i := range desc.BindGroupLayouts {
		layouts[i] = m.deriveLayout(&desc.BindGroupLayouts[i])
		defer layouts[i].Release()
	}
	pipelineLayout, err := m.Device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            desc.Label,
		BindGroupLayouts: layouts,
	})
	if err != nil {
		panic(err)
	}
	defer pipelineLayout.Release()

	vertexBuffers := make([]wgpu.VertexBufferLayout, len(desc.Pipeline.VertexBuffers))
	for i, vb := range desc.Pipeline.VertexBuffers {
		vertexBuffers[i] = wgpu.VertexBufferLayout{
			ArrayStride: vb.ArrayStride,
			StepMode:    vb.StepMode,
			Attributes:  vb.Attributes,
		}
	}

	var fragment *wgpu.FragmentState
	if desc.FS != nil {
		targets := make([]wgpu.ColorTargetState, len(desc.Pipeline.Targets))
		for i, format := range desc.Pipeline.Targets {
			targets[i] = wgpu.ColorTargetState{
				Format:    format,
				Blend:     &wgpu.BlendStateReplace,
				WriteMask: wgpu.ColorWriteMaskAll,
			}
		}
		fragment = &wgpu.FragmentState{
			Module:     module,
			EntryPoint: desc.FS.EntryPoint,
			Targets:    targets,
		}
	}

	var depthStencil *wgpu.DepthStencilState
	if desc.Pipeline.DepthTest != wgpu.CompareFunctionUndefined {
		depthStencil = &wgpu.DepthStencilState{
			Format:            DepthFormat,
			DepthWriteEnabled: true,
			DepthCompare:      desc.Pipeline.DepthTest,
			StencilFront:      wgpu.StencilFaceState{Compare: wgpu.CompareFunctionAlways},
			StencilBack:       wgpu.StencilFaceState{Compare: wgpu.CompareFunctionAlways},
		}
	}

	pipeline, err := m.Device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  desc.Label,
		Layout: pipelineLayout,
		Vertex: wgpu.VertexState{
			Module:     module,
			EntryPoint: desc.VS.EntryPoint,
			Buffers:    vertexBuffers,
		},
		Fragment: fragment,
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyTriangleList,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  wgpu.CullModeNone,
		},
		DepthStencil: depthStencil,
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		panic(err)
	}

	return &Shader{desc: desc, pipeline: pipeline}
}

// validateWGSL runs the naga front end over the source: parse, then lower
// to IR. Returns the first failure without touching the device.
func validateWGSL(source string) error {
	ast, err := naga.Parse(source)
	if err != nil {
		return err
	}
	if _, err := naga.Lower(ast); err != nil {
		return err
	}
	return nil
}

// Recompile re-reads the shader's source from disk and tries to rebuild
// the pipeline. Failure is recoverable: the diagnostic string is set and
// the installed pipeline keeps rendering untouched. Success clears the
// diagnostic and swaps the new pipeline in under the same handle.
func (m *Manager) Recompile(h Handle) {
	shader := m.GetShader(h)
	path := shader.desc.VS.Path

	source, err := os.ReadFile(path)
	if err != nil {
		m.compileError = err.Error()
		m.log.Warnf("shader %s unreadable: %v", path, err)
		return
	}

	if err := validateWGSL(string(source)); err != nil {
		m.compileError = err.Error()
		m.log.Warnf("shader %s failed validation: %v", path, err)
		return
	}

	// The front end does not know the device limits, so a trial module
	// compile catches what validation alone cannot.
	module, err := m.Device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          path,
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: string(source)},
	})
	if err != nil {
		m.compileError = err.Error()
		m.log.Warnf("shader %s failed to compile: %v", path, err)
		return
	}
	module.Release()

	m.compileError = ""
	old := shader.pipeline
	*shader = *m.buildShader(shader.desc)
	if old != nil {
		old.Release()
	}
	m.log.Infof("reloaded shader %s", path)
}
