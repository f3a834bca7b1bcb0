package aolab

import (
	"image"
	"math"
	"math/rand"

	"github.com/cogentcore/webgpu/wgpu"
	"golang.org/x/image/draw"

	"github.com/aolab3d/aolab/gpu"
)

// rotationPatternImage builds a 4x4 image of random unit rotation vectors
// encoded into the RG channels, then upscales it with nearest-neighbor so
// the pattern tiles in blocks.
func rotationPatternImage(size int, seed int64) *image.RGBA {
	rng := rand.New(rand.NewSource(seed))

	base := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			angle := rng.Float64() * 2 * math.Pi
			i := base.PixOffset(x, y)
			base.Pix[i+0] = uint8((math.Cos(angle)*0.5 + 0.5) * 255)
			base.Pix[i+1] = uint8((math.Sin(angle)*0.5 + 0.5) * 255)
			base.Pix[i+2] = 0
			base.Pix[i+3] = 255
		}
	}

	scaled := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.NearestNeighbor.Scale(scaled, scaled.Bounds(), base, base.Bounds(), draw.Src, nil)
	return scaled
}

// NewRotationPatternTexture uploads the rotation pattern used by the SSAO
// pass to dither its sample kernel per pixel.
func NewRotationPatternTexture(mgr *gpu.Manager, size int, seed int64) gpu.Handle {
	pattern := rotationPatternImage(size, seed)
	return mgr.CreateTexture(&gpu.TextureDesc{
		Label:       "ssao rotation pattern",
		Width:       uint32(size),
		Height:      uint32(size),
		Format:      wgpu.TextureFormatRGBA8Unorm,
		Usage:       wgpu.TextureUsageTextureBinding | wgpu.TextureUsageCopyDst,
		InitialData: pattern.Pix,
	})
}
