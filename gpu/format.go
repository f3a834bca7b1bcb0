package gpu

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
)

// DepthFormat is the single depth buffer format used by every depth-tested
// pipeline and depth render target.
const DepthFormat = wgpu.TextureFormatDepth32Float

// bytesPerPixel is the closed set of texture formats data can be uploaded
// into, mapped to their per-pixel byte stride. A format outside the table
// is a caller error, not a fallback path.
var bytesPerPixel = map[wgpu.TextureFormat]uint32{
	wgpu.TextureFormatRGBA8Unorm:     4,
	wgpu.TextureFormatRGBA8UnormSrgb: 4,
	wgpu.TextureFormatBGRA8UnormSrgb: 4,
	wgpu.TextureFormatDepth32Float:   4,
	wgpu.TextureFormatRGBA16Float:    8,
}

func formatStride(format wgpu.TextureFormat) uint32 {
	stride, ok := bytesPerPixel[format]
	if !ok {
		panic(fmt.Sprintf("gpu: no pixel stride known for texture format %d", format))
	}
	return stride
}

// isDepthFormat reports whether format is one of the recognized depth or
// depth-stencil formats. The classification is recorded on the Texture at
// creation and drives attachment and debug-view decisions later.
func isDepthFormat(format wgpu.TextureFormat) bool {
	switch format {
	case wgpu.TextureFormatDepth16Unorm,
		wgpu.TextureFormatDepth24Plus,
		wgpu.TextureFormatDepth24PlusStencil8,
		wgpu.TextureFormatDepth32Float,
		wgpu.TextureFormatDepth32FloatStencil8:
		return true
	}
	return false
}
