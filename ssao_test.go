package aolab

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFloat32ToHalf(t *testing.T) {
	cases := []struct {
		in   float32
		want uint16
	}{
		{0, 0x0000},
		{1, 0x3C00},
		{-1, 0xBC00},
		{0.5, 0x3800},
		{2, 0x4000},
		{65504, 0x7BFF},
		{100000, 0x7C00}, // saturates to +inf
	}
	for _, c := range cases {
		assert.Equal(t, c.want, float32ToHalf(c.in), "converting %v", c.in)
	}
}

func TestGenerateSSAOKernel(t *testing.T) {
	kernel := generateSSAOKernel(rand.New(rand.NewSource(1)))
	require.Len(t, kernel, ssaoSampleCount)

	for i, v := range kernel {
		assert.GreaterOrEqual(t, v.Z(), float32(0), "sample %d stays in the hemisphere", i)
		assert.LessOrEqual(t, v.Len(), float32(1)+1e-6)
		assert.Greater(t, v.Len(), float32(0))
	}

	// Samples are scaled to cluster near the origin: the first sample is
	// shorter than the last.
	assert.Less(t, kernel[0].Len(), kernel[ssaoSampleCount-1].Len())
}

func TestPackKernelHalf(t *testing.T) {
	kernel := generateSSAOKernel(rand.New(rand.NewSource(1)))
	data := packKernelHalf(kernel)
	require.Len(t, data, ssaoSampleCount*8, "4 half floats per sample")

	// Alpha of every texel is exactly half-float 1.0, little endian.
	for i := 0; i < ssaoSampleCount; i++ {
		alphaLo := data[i*8+6]
		alphaHi := data[i*8+7]
		assert.Equal(t, byte(0x00), alphaLo)
		assert.Equal(t, byte(0x3C), alphaHi)
	}
}

func TestKernelIsDeterministicPerSeed(t *testing.T) {
	a := generateSSAOKernel(rand.New(rand.NewSource(7)))
	b := generateSSAOKernel(rand.New(rand.NewSource(7)))
	assert.Equal(t, a, b)
}
