package gpu

import "github.com/cogentcore/webgpu/wgpu"

// BufferDesc describes a GPU buffer allocation. ByteSize is fixed for the
// buffer's lifetime. InitialData, when non-empty, is uploaded at offset 0
// right after creation.
type BufferDesc struct {
	Label       string
	ByteSize    uint64
	Usage       wgpu.BufferUsage
	InitialData []byte
}

// TextureDesc describes a 2D texture. Mipmaps is the number of levels in
// addition to the base level. InitialData, when non-empty, must cover the
// base level as tightly packed rows of the format's pixel stride.
type TextureDesc struct {
	Label       string
	Width       uint32
	Height      uint32
	Mipmaps     uint32
	Format      wgpu.TextureFormat
	Usage       wgpu.TextureUsage
	InitialData []byte
}

// SamplerDesc describes a sampler with one address mode shared by all three
// axes and one filter shared by mag and min. Mipmaps bounds the LOD range.
// Compare is Undefined for a regular sampler.
type SamplerDesc struct {
	Label       string
	AddressMode wgpu.AddressMode
	Filter      wgpu.FilterMode
	Mipmaps     uint32
	Compare     wgpu.CompareFunction
}

// BindGroupLayoutDesc declares the slot shape a shader group expects.
// Binding indices are positional: all buffers first, then all textures,
// then all samplers, numbered by one shared counter starting at 0. Buffers
// bind as uniform buffers with the listed minimum byte size.
type BindGroupLayoutDesc struct {
	Label      string
	Visibility wgpu.ShaderStage
	Buffers    []uint64
	Textures   []wgpu.TextureSampleType
	Samplers   []wgpu.SamplerBindingType
}

// BindGroupDesc pairs a layout descriptor with the handles filling its
// slots. The handle lists must match the layout's lists one to one, in the
// same positional order.
type BindGroupDesc struct {
	Label    string
	Layout   BindGroupLayoutDesc
	Buffers  []Handle
	Textures []Handle
	Samplers []Handle
}

// VertexBufferLayout describes one vertex buffer binding of a pipeline.
type VertexBufferLayout struct {
	ArrayStride uint64
	StepMode    wgpu.VertexStepMode
	Attributes  []wgpu.VertexAttribute
}

// ShaderModuleDesc names one entry point inside a WGSL source file. The
// source is always read from Path at build time, never cached, so edits on
// disk are picked up by the next recompile.
type ShaderModuleDesc struct {
	Path       string
	EntryPoint string
}

// ShaderPipelineDesc carries the per-shader pipeline state that is not
// fixed. DepthTest set to Undefined disables depth testing entirely;
// anything else enables a written Depth32Float depth buffer with that
// compare function.
type ShaderPipelineDesc struct {
	DepthTest     wgpu.CompareFunction
	Targets       []wgpu.TextureFormat
	VertexBuffers []VertexBufferLayout
}

// ShaderDesc fully describes a render pipeline. FS is nil for a
// vertex-only pipeline. When FS is set it must live in the same source
// file as VS.
type ShaderDesc struct {
	Label            string
	VS               ShaderModuleDesc
	FS               *ShaderModuleDesc
	BindGroupLayouts []BindGroupLayoutDesc
	Pipeline         ShaderPipelineDesc
}
