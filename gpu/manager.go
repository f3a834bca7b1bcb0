// Package gpu is the sandbox's resource management core: typed append-only
// arenas of GPU objects addressed through opaque handles, descriptor-driven
// creation, positionally derived bind group layouts, and a rollback-safe
// shader hot-reload path.
package gpu

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
)

// Logger is the subset of the app logger the manager needs. Any logger with
// these methods satisfies it.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debugf(format string, args ...any) {}
func (nopLogger) Infof(format string, args ...any)  {}
func (nopLogger) Warnf(format string, args ...any)  {}
func (nopLogger) Errorf(format string, args ...any) {}

// Manager owns every GPU object the sandbox creates. All creation, lookup,
// update and recompilation goes through one Manager; resources live until
// the Manager is torn down. Device-creation failures during initial
// construction panic, recompile validation failures are captured as the
// diagnostic string instead.
type Manager struct {
	Device *wgpu.Device
	Queue  *wgpu.Queue

	log Logger

	buffers    arena[Buffer]
	textures   arena[Texture]
	samplers   arena[Sampler]
	layouts    arena[BindGroupLayout]
	bindGroups arena[BindGroup]
	shaders    arena[Shader]

	compileError string
}

func NewManager(device *wgpu.Device, queue *wgpu.Queue, log Logger) *Manager {
	if log == nil {
		log = nopLogger{}
	}
	return &Manager{Device: device, Queue: queue, log: log}
}

// CreateBuffer allocates a device buffer and uploads the optional initial
// contents.
func (m *Manager) CreateBuffer(desc *BufferDesc) Handle {
	buf, err := m.Device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: desc.Label,
		Size:  desc.ByteSize,
		Usage: desc.Usage,
	})
	if err != nil {
		panic(err)
	}
	if len(desc.InitialData) > 0 {
		if err := m.Queue.WriteBuffer(buf, 0, desc.InitialData); err != nil {
			panic(err)
		}
	}
	index := m.buffers.add(&Buffer{
		size:     desc.ByteSize,
		usage:    desc.Usage,
		internal: buf,
	})
	return Handle{index: index, kind: KindBuffer}
}

// CreateTexture allocates a 2D texture with a single full view. The pixel
// stride comes from the closed format table, so an unsupported format
// panics before any device work happens.
func (m *Manager) CreateTexture(desc *TextureDesc) Handle {
	stride := formatStride(desc.Format)

	tex, err := m.Device.CreateTexture(&wgpu.TextureDescriptor{
		Label: desc.Label,
		Size: wgpu.Extent3D{
			Width:              desc.Width,
			Height:             desc.Height,
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: desc.Mipmaps + 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        desc.Format,
		Usage:         desc.Usage,
	})
	if err != nil {
		panic(err)
	}
	view, err := tex.CreateView(nil)
	if err != nil {
		panic(err)
	}

	if len(desc.InitialData) > 0 {
		err := m.Queue.WriteTexture(
			tex.AsImageCopy(),
			desc.InitialData,
			&wgpu.TextureDataLayout{
				Offset:       0,
				BytesPerRow:  stride * desc.Width,
				RowsPerImage: desc.Height,
			},
			&wgpu.Extent3D{
				Width:              desc.Width,
				Height:             desc.Height,
				DepthOrArrayLayers: 1,
			},
		)
		if err != nil {
			panic(err)
		}
	}

	index := m.textures.add(&Texture{
		width:    desc.Width,
		height:   desc.Height,
		format:   desc.Format,
		depth:    isDepthFormat(desc.Format),
		internal: tex,
		view:     view,
	})
	return Handle{index: index, kind: KindTexture}
}

func (m *Manager) CreateSampler(desc *SamplerDesc) Handle {
	samp, err := m.Device.CreateSampler(&wgpu.SamplerDescriptor{
		Label:         desc.Label,
		AddressModeU:  desc.AddressMode,
		AddressModeV:  desc.AddressMode,
		AddressModeW:  desc.AddressMode,
		MagFilter:     desc.Filter,
		MinFilter:     desc.Filter,
		MipmapFilter:  wgpu.MipmapFilterModeLinear,
		LodMinClamp:   0,
		LodMaxClamp:   float32(desc.Mipmaps),
		Compare:       desc.Compare,
		MaxAnisotropy: 1,
	})
	if err != nil {
		panic(err)
	}
	index := m.samplers.add(&Sampler{internal: samp})
	return Handle{index: index, kind: KindSampler}
}

// CreateBindGroupLayout derives a layout and stores it by handle for
// callers that want to hold one explicitly. Nothing else consults this
// arena: bind groups and pipelines derive their layouts fresh.
func (m *Manager) CreateBindGroupLayout(desc *BindGroupLayoutDesc) Handle {
	index := m.layouts.add(&BindGroupLayout{
		desc:     *desc,
		internal: m.deriveLayout(desc),
	})
	return Handle{index: index, kind: KindBindGroupLayout}
}

// CreateBindGroup checks the handle lists against the layout descriptor,
// then assembles entries in the same positional order the layout was
// derived in: buffers, textures, samplers, one shared binding counter.
func (m *Manager) CreateBindGroup(desc *BindGroupDesc) Handle {
	if len(desc.Buffers) != len(desc.Layout.Buffers) ||
		len(desc.Textures) != len(desc.Layout.Textures) ||
		len(desc.Samplers) != len(desc.Layout.Samplers) {
		panic(fmt.Sprintf(
			"gpu: bind group %q does not fill its layout: got %d/%d/%d buffers/textures/samplers, layout declares %d/%d/%d",
			desc.Label,
			len(desc.Buffers), len(desc.Textures), len(desc.Samplers),
			len(desc.Layout.Buffers), len(desc.Layout.Textures), len(desc.Layout.Samplers),
		))
	}

	entries := make([]wgpu.BindGroupEntry, 0,
		len(desc.Buffers)+len(desc.Textures)+len(desc.Samplers))
	binding := uint32(0)
	for _, h := range desc.Buffers {
		entries = append(entries, wgpu.BindGroupEntry{
			Binding: binding,
			Buffer:  m.GetBuffer(h).internal,
			Size:    wgpu.WholeSize,
		})
		binding++
	}
	for _, h := range desc.Textures {
		entries = append(entries, wgpu.BindGroupEntry{
			Binding:     binding,
			TextureView: m.GetTexture(h).view,
		})
		binding++
	}
	for _, h := range desc.Samplers {
		entries = append(entries, wgpu.BindGroupEntry{
			Binding: binding,
			Sampler: m.GetSampler(h).internal,
		})
		binding++
	}

	layout := m.deriveLayout(&desc.Layout)
	defer layout.Release()

	group, err := m.Device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:   desc.Label,
		Layout:  layout,
		Entries: entries,
	})
	if err != nil {
		panic(err)
	}
	index := m.bindGroups.add(&BindGroup{internal: group})
	return Handle{index: index, kind: KindBindGroup}
}

// layoutEntries expands a layout descriptor into backend layout entries,
// assigning binding indices positionally across the three lists. Pure:
// equal descriptors always expand to equal entry lists.
func layoutEntries(desc *BindGroupLayoutDesc) []wgpu.BindGroupLayoutEntry {
	entries := make([]wgpu.BindGroupLayoutEntry, 0,
		len(desc.Buffers)+len(desc.Textures)+len(desc.Samplers))
	binding := uint32(0)
	for _, minSize := range desc.Buffers {
		entries = append(entries, wgpu.BindGroupLayoutEntry{
			Binding:    binding,
			Visibility: desc.Visibility,
			Buffer: wgpu.BufferBindingLayout{
				Type:           wgpu.BufferBindingTypeUniform,
				MinBindingSize: minSize,
			},
		})
		binding++
	}
	for _, sampleType := range desc.Textures {
		entries = append(entries, wgpu.BindGroupLayoutEntry{
			Binding:    binding,
			Visibility: desc.Visibility,
			Texture: wgpu.TextureBindingLayout{
				SampleType:    sampleType,
				ViewDimension: wgpu.TextureViewDimension2D,
				Multisampled:  false,
			},
		})
		binding++
	}
	for _, bindingType := range desc.Samplers {
		entries = append(entries, wgpu.BindGroupLayoutEntry{
			Binding:    binding,
			Visibility: desc.Visibility,
			Sampler: wgpu.SamplerBindingLayout{
				Type: bindingType,
			},
		})
		binding++
	}
	return entries
}

// deriveLayout builds a fresh backend layout from a descriptor. Layouts are
// deliberately rebuilt on every use: equal descriptors yield equivalent
// layouts and nothing may depend on layout object identity.
func (m *Manager) deriveLayout(desc *BindGroupLayoutDesc) *wgpu.BindGroupLayout {
	layout, err := m.Device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label:   desc.Label,
		Entries: layoutEntries(desc),
	})
	if err != nil {
		panic(err)
	}
	return layout
}

func checkKind(h Handle, want Kind) {
	if h.kind != want {
		panic(fmt.Sprintf("gpu: handle kind mismatch: want %s, got %s", want, h))
	}
}

func (m *Manager) GetBuffer(h Handle) *Buffer {
	checkKind(h, KindBuffer)
	return m.buffers.get(h.index)
}

func (m *Manager) GetTexture(h Handle) *Texture {
	checkKind(h, KindTexture)
	return m.textures.get(h.index)
}

func (m *Manager) GetSampler(h Handle) *Sampler {
	checkKind(h, KindSampler)
	return m.samplers.get(h.index)
}

func (m *Manager) GetBindGroupLayout(h Handle) *BindGroupLayout {
	checkKind(h, KindBindGroupLayout)
	return m.layouts.get(h.index)
}

func (m *Manager) GetBindGroup(h Handle) *BindGroup {
	checkKind(h, KindBindGroup)
	return m.bindGroups.get(h.index)
}

func (m *Manager) GetShader(h Handle) *Shader {
	checkKind(h, KindShader)
	return m.shaders.get(h.index)
}

// UpdateBuffer overwrites the buffer's contents starting at offset 0. The
// write must fit the original allocation; buffers are never resized.
func (m *Manager) UpdateBuffer(h Handle, data []byte) {
	buf := m.GetBuffer(h)
	if uint64(len(data)) > buf.size {
		panic(fmt.Sprintf("gpu: update of %d bytes exceeds buffer allocation of %d bytes", len(data), buf.size))
	}
	if err := m.Queue.WriteBuffer(buf.internal, 0, data); err != nil {
		panic(err)
	}
}

// Stats is a point-in-time snapshot of arena sizes plus the current shader
// diagnostic, for whatever shell is hosting the sandbox to display.
type Stats struct {
	Buffers          int
	Textures         int
	Samplers         int
	BindGroupLayouts int
	BindGroups       int
	Shaders          int
	CompileError     string
}

func (m *Manager) Stats() Stats {
	return Stats{
		Buffers:          m.buffers.len(),
		Textures:         m.textures.len(),
		Samplers:         m.samplers.len(),
		BindGroupLayouts: m.layouts.len(),
		BindGroups:       m.bindGroups.len(),
		Shaders:          m.shaders.len(),
		CompileError:     m.compileError,
	}
}

// ShaderEntry describes one shader arena slot for reload UIs and logs.
type ShaderEntry struct {
	Handle Handle
	Label  string
	Path   string
}

// ShaderSources lists every shader with the source path its pipeline was
// built from, in arena order.
func (m *Manager) ShaderSources() []ShaderEntry {
	entries := make([]ShaderEntry, 0, m.shaders.len())
	for i, shader := range m.shaders.items {
		entries = append(entries, ShaderEntry{
			Handle: Handle{index: uint32(i), kind: KindShader},
			Label:  shader.desc.Label,
			Path:   shader.desc.VS.Path,
		})
	}
	return entries
}

// CompileError returns the diagnostic from the most recent recompile
// attempt, empty when the last attempt succeeded. Each attempt overwrites
// it; messages never accumulate.
func (m *Manager) CompileError() string {
	return m.compileError
}
