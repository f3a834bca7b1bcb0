package aolab

import (
	"math"
	"math/rand"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/aolab3d/aolab/gpu"
)

const ssaoSampleCount = 16

// CrytekSSAO is a fullscreen ambient occlusion pass over the depth buffer.
// The sample kernel rides in a 16x1 half-float texture, dithered per pixel
// by the rotation pattern texture.
type CrytekSSAO struct {
	SamplesTexture gpu.Handle
	PatternTexture gpu.Handle
	Sampler        gpu.Handle
	BindGroup      gpu.Handle
	Shader         gpu.Handle
}

// ssaoBindGroupLayout is group 1 of the SSAO shader: sample kernel, depth
// buffer, rotation pattern, one filtering sampler.
func ssaoBindGroupLayout() gpu.BindGroupLayoutDesc {
	return gpu.BindGroupLayoutDesc{
		Label:      "ssao inputs",
		Visibility: wgpu.ShaderStageFragment,
		Textures: []wgpu.TextureSampleType{
			wgpu.TextureSampleTypeFloat,
			wgpu.TextureSampleTypeDepth,
			wgpu.TextureSampleTypeFloat,
		},
		Samplers: []wgpu.SamplerBindingType{wgpu.SamplerBindingTypeFiltering},
	}
}

// generateSSAOKernel produces the hemisphere sample offsets: unit vectors
// with non-negative z, scaled so samples cluster near the origin.
func generateSSAOKernel(rng *rand.Rand) []mgl32.Vec3 {
	kernel := make([]mgl32.Vec3, ssaoSampleCount)
	for i := range kernel {
		v := mgl32.Vec3{
			rng.Float32()*2 - 1,
			rng.Float32()*2 - 1,
			rng.Float32(),
		}.Normalize()

		scale := float32(i) / float32(ssaoSampleCount)
		scale = 0.1 + 0.9*scale*scale
		kernel[i] = v.Mul(scale)
	}
	return kernel
}

// packKernelHalf packs the kernel into RGBA16Float texels: xyz plus a unit
// alpha, four half floats per sample.
func packKernelHalf(kernel []mgl32.Vec3) []byte {
	data := make([]byte, 0, len(kernel)*8)
	for _, v := range kernel {
		for _, f := range []float32{v.X(), v.Y(), v.Z(), 1} {
			h := float32ToHalf(f)
			data = append(data, byte(h), byte(h>>8))
		}
	}
	return data
}

// float32ToHalf converts an IEEE 754 single to a half, truncating the
// mantissa. Overflow saturates to infinity, deep underflow to signed zero.
func float32ToHalf(f float32) uint16 {
	bits := math.Float32bits(f)
	sign := uint16(bits>>16) & 0x8000
	exp := int32(bits>>23&0xFF) - 127 + 15
	mant := bits & 0x7FFFFF

	switch {
	case exp >= 0x1F:
		return sign | 0x7C00
	case exp <= 0:
		if exp < -10 {
			return sign
		}
		mant |= 0x800000
		return sign | uint16(mant>>uint32(14-exp))
	default:
		return sign | uint16(exp)<<10 | uint16(mant>>13)
	}
}

// NewCrytekSSAO creates every resource of the pass and compiles its shader.
// depthBuffer must be the depth texture the geometry pass writes.
func NewCrytekSSAO(mgr *gpu.Manager, shaderPath string, targetFormat wgpu.TextureFormat,
	depthBuffer, pattern gpu.Handle) *CrytekSSAO {
	kernel := generateSSAOKernel(rand.New(rand.NewSource(1)))

	ssao := &CrytekSSAO{PatternTexture: pattern}
	ssao.SamplesTexture = mgr.CreateTexture(&gpu.TextureDesc{
		Label:       "ssao sample kernel",
		Width:       ssaoSampleCount,
		Height:      1,
		Format:      wgpu.TextureFormatRGBA16Float,
		Usage:       wgpu.TextureUsageTextureBinding | wgpu.TextureUsageCopyDst,
		InitialData: packKernelHalf(kernel),
	})
	ssao.Sampler = mgr.CreateSampler(&gpu.SamplerDesc{
		Label:       "ssao sampler",
		AddressMode: wgpu.AddressModeClampToEdge,
		Filter:      wgpu.FilterModeLinear,
	})
	ssao.BindGroup = mgr.CreateBindGroup(&gpu.BindGroupDesc{
		Label:    "ssao inputs",
		Layout:   ssaoBindGroupLayout(),
		Textures: []gpu.Handle{ssao.SamplesTexture, depthBuffer, pattern},
		Samplers: []gpu.Handle{ssao.Sampler},
	})
	ssao.Shader = mgr.CreateShader(gpu.ShaderDesc{
		Label: "crytek ssao",
		VS:    gpu.ShaderModuleDesc{Path: shaderPath, EntryPoint: "vs_main"},
		FS:    &gpu.ShaderModuleDesc{Path: shaderPath, EntryPoint: "fs_main"},
		BindGroupLayouts: []gpu.BindGroupLayoutDesc{
			SceneBindGroupLayout(),
			ssaoBindGroupLayout(),
		},
		Pipeline: gpu.ShaderPipelineDesc{
			Targets: []wgpu.TextureFormat{targetFormat},
		},
	})
	return ssao
}

// Pass encodes the fullscreen AO pass into view. The geometry pass must
// have finished writing the depth buffer first.
func (s *CrytekSSAO) Pass(mgr *gpu.Manager, encoder *wgpu.CommandEncoder,
	view *wgpu.TextureView, sceneBindGroup gpu.Handle) {
	pass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		Label: "ssao",
		ColorAttachments: []wgpu.RenderPassColorAttachment{{
			View:       view,
			LoadOp:     wgpu.LoadOpClear,
			StoreOp:    wgpu.StoreOpStore,
			ClearValue: wgpu.Color{R: 1, G: 1, B: 1, A: 1},
		}},
	})
	pass.SetPipeline(mgr.GetShader(s.Shader).Pipeline())
	pass.SetBindGroup(0, mgr.GetBindGroup(sceneBindGroup).Raw(), nil)
	pass.SetBindGroup(1, mgr.GetBindGroup(s.BindGroup).Raw(), nil)
	pass.Draw(3, 1, 0, 0)
	if err := pass.End(); err != nil {
		panic(err)
	}
}
