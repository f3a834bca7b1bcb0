package aolab

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The uniform structs must match the WGSL block layouts byte for byte.
func TestUniformBlockSizes(t *testing.T) {
	assert.Equal(t, uint64(272), SceneUniformSize, "4 mat4 + vec3 + f32")
	assert.Equal(t, uint64(80), MeshUniformSize, "mat4 + vec4")
	assert.Equal(t, uint64(24), VertexStride, "position + normal")
}

func TestToBytes(t *testing.T) {
	assert.Nil(t, toBytes[float32](nil))

	data := toBytes([]float32{1, 2, 3})
	assert.Len(t, data, 12)

	uniforms := toBytes([]SceneUniformData{{}})
	assert.Len(t, uniforms, int(SceneUniformSize))
}

func TestCubeMesh(t *testing.T) {
	vertices, indices := CubeMesh(2)
	require.Len(t, vertices, 24)
	require.Len(t, indices, 36)

	for _, idx := range indices {
		assert.Less(t, idx, uint32(len(vertices)))
	}
	for _, v := range vertices {
		for axis := 0; axis < 3; axis++ {
			assert.InDelta(t, 0, v.Position[axis], 1.0, "cube of size 2 spans [-1, 1]")
		}
		normal := mgl32.Vec3{v.Normal[0], v.Normal[1], v.Normal[2]}
		assert.InDelta(t, 1.0, normal.Len(), 1e-6)
	}
}

func TestSphereMesh(t *testing.T) {
	radius := float32(0.7)
	vertices, indices := SphereMesh(radius, 24, 16)
	require.NotEmpty(t, vertices)
	require.NotEmpty(t, indices)
	assert.Zero(t, len(indices)%3)

	for _, idx := range indices {
		require.Less(t, idx, uint32(len(vertices)))
	}
	for _, v := range vertices {
		pos := mgl32.Vec3{v.Position[0], v.Position[1], v.Position[2]}
		assert.InDelta(t, radius, pos.Len(), 1e-4)
		normal := mgl32.Vec3{v.Normal[0], v.Normal[1], v.Normal[2]}
		assert.InDelta(t, 1.0, normal.Len(), 1e-4)
	}
}

func TestPlaneMesh(t *testing.T) {
	vertices, indices := PlaneMesh(10)
	require.Len(t, vertices, 4)
	require.Len(t, indices, 6)
	for _, v := range vertices {
		assert.Equal(t, [3]float32{0, 1, 0}, v.Normal)
		assert.Zero(t, v.Position[1])
	}
}

func TestGeometryVertexLayout(t *testing.T) {
	layout := GeometryVertexLayout()
	assert.Equal(t, VertexStride, layout.ArrayStride)
	require.Len(t, layout.Attributes, 2)
	assert.Equal(t, uint64(0), layout.Attributes[0].Offset)
	assert.Equal(t, uint32(0), layout.Attributes[0].ShaderLocation)
	assert.Equal(t, uint64(12), layout.Attributes[1].Offset)
	assert.Equal(t, uint32(1), layout.Attributes[1].ShaderLocation)
}

func TestBuildSceneUniforms(t *testing.T) {
	cam := &Camera{
		Position: mgl32.Vec3{1, 2, 3},
		Yaw:      180,
		Pitch:    -20,
		FovDeg:   90,
		Near:     0.1,
		Far:      100,
	}
	data := BuildSceneUniforms(cam, 16.0/9.0)

	assert.Equal(t, cam.Position, data.CameraPosition)
	assert.InDelta(t, 16.0/9.0, data.AspectRatio, 1e-6)

	identity := mgl32.Ident4()
	assert.True(t, data.View.Mul4(data.InverseView).ApproxEqualThreshold(identity, 1e-4))
	assert.True(t, data.Perspective.Mul4(data.InversePerspective).ApproxEqualThreshold(identity, 1e-4))
}
