package gpu

import "github.com/cogentcore/webgpu/wgpu"

// Buffer wraps a device buffer together with its fixed allocation size.
type Buffer struct {
	size     uint64
	usage    wgpu.BufferUsage
	internal *wgpu.Buffer
}

func (b *Buffer) Size() uint64 { return b.size }

// Raw returns the underlying device buffer for binding and draw calls.
func (b *Buffer) Raw() *wgpu.Buffer { return b.internal }

// Texture wraps a device texture plus the single full-resource view used
// both for sampling and as a render target attachment.
type Texture struct {
	width    uint32
	height   uint32
	format   wgpu.TextureFormat
	depth    bool
	internal *wgpu.Texture
	view     *wgpu.TextureView
}

func (t *Texture) Width() uint32              { return t.width }
func (t *Texture) Height() uint32             { return t.height }
func (t *Texture) Format() wgpu.TextureFormat { return t.format }

// IsDepth reports the depth classification recorded at creation.
func (t *Texture) IsDepth() bool { return t.depth }

func (t *Texture) View() *wgpu.TextureView { return t.view }

// DepthStencilAttachment builds a render pass depth attachment over the
// texture's view, clearing to 1.0. Only valid for depth-classified
// textures.
func (t *Texture) DepthStencilAttachment() *wgpu.RenderPassDepthStencilAttachment {
	if !t.depth {
		panic("gpu: depth attachment requested for a non-depth texture")
	}
	return &wgpu.RenderPassDepthStencilAttachment{
		View:            t.view,
		DepthLoadOp:     wgpu.LoadOpClear,
		DepthStoreOp:    wgpu.StoreOpStore,
		DepthClearValue: 1.0,
	}
}

type Sampler struct {
	internal *wgpu.Sampler
}

func (s *Sampler) Raw() *wgpu.Sampler { return s.internal }

// BindGroupLayout is an explicitly created layout held by handle. It keeps
// its originating descriptor so callers can rebuild matching bind groups.
type BindGroupLayout struct {
	desc     BindGroupLayoutDesc
	internal *wgpu.BindGroupLayout
}

func (l *BindGroupLayout) Desc() BindGroupLayoutDesc  { return l.desc }
func (l *BindGroupLayout) Raw() *wgpu.BindGroupLayout { return l.internal }

type BindGroup struct {
	internal *wgpu.BindGroup
}

func (g *BindGroup) Raw() *wgpu.BindGroup { return g.internal }
