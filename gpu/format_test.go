package gpu

import (
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
)

func TestFormatStride(t *testing.T) {
	assert.Equal(t, uint32(4), formatStride(wgpu.TextureFormatRGBA8Unorm))
	assert.Equal(t, uint32(4), formatStride(wgpu.TextureFormatRGBA8UnormSrgb))
	assert.Equal(t, uint32(4), formatStride(wgpu.TextureFormatBGRA8UnormSrgb))
	assert.Equal(t, uint32(4), formatStride(wgpu.TextureFormatDepth32Float))
	assert.Equal(t, uint32(8), formatStride(wgpu.TextureFormatRGBA16Float))

	assert.Panics(t, func() { formatStride(wgpu.TextureFormatR32Float) })
	assert.Panics(t, func() { formatStride(wgpu.TextureFormatUndefined) })
}

func TestDepthFormatClassification(t *testing.T) {
	assert.True(t, isDepthFormat(wgpu.TextureFormatDepth16Unorm))
	assert.True(t, isDepthFormat(wgpu.TextureFormatDepth24Plus))
	assert.True(t, isDepthFormat(wgpu.TextureFormatDepth24PlusStencil8))
	assert.True(t, isDepthFormat(wgpu.TextureFormatDepth32Float))
	assert.True(t, isDepthFormat(wgpu.TextureFormatDepth32FloatStencil8))

	assert.False(t, isDepthFormat(wgpu.TextureFormatRGBA8Unorm))
	assert.False(t, isDepthFormat(wgpu.TextureFormatBGRA8UnormSrgb))
	assert.False(t, isDepthFormat(wgpu.TextureFormatRGBA16Float))
}

func TestDepthStencilAttachmentRequiresDepthTexture(t *testing.T) {
	color := &Texture{depth: false}
	assert.Panics(t, func() { color.DepthStencilAttachment() })

	depth := &Texture{depth: true}
	attachment := depth.DepthStencilAttachment()
	assert.Equal(t, wgpu.LoadOpClear, attachment.DepthLoadOp)
	assert.Equal(t, wgpu.StoreOpStore, attachment.DepthStoreOp)
	assert.EqualValues(t, 1.0, attachment.DepthClearValue)
}
