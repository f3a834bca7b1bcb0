package aolab

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRotationPatternImage(t *testing.T) {
	pattern := rotationPatternImage(64, 1)
	require.Equal(t, 64, pattern.Bounds().Dx())
	require.Equal(t, 64, pattern.Bounds().Dy())
	require.Len(t, pattern.Pix, 64*64*4)

	// Opaque everywhere, blue channel unused.
	for i := 0; i < len(pattern.Pix); i += 4 {
		assert.Equal(t, uint8(0), pattern.Pix[i+2])
		assert.Equal(t, uint8(255), pattern.Pix[i+3])
	}

	// Nearest-neighbor upscaling from a 4x4 base leaves 16x16 blocks of
	// identical texels.
	assert.Equal(t, pattern.RGBAAt(0, 0), pattern.RGBAAt(15, 15))
	assert.Equal(t, pattern.RGBAAt(16, 0), pattern.RGBAAt(31, 15))
}

func TestRotationPatternImageIsDeterministicPerSeed(t *testing.T) {
	a := rotationPatternImage(16, 3)
	b := rotationPatternImage(16, 3)
	assert.Equal(t, a.Pix, b.Pix)
}
