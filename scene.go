package aolab

import (
	"math"
	"math/rand"
	"unsafe"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"

	"github.com/aolab3d/aolab/gpu"
)

// toBytes reinterprets a slice of fixed-size values as its raw bytes for
// queue uploads.
func toBytes[T any](items []T) []byte {
	if len(items) == 0 {
		return nil
	}
	size := len(items) * int(unsafe.Sizeof(items[0]))
	return unsafe.Slice((*byte)(unsafe.Pointer(&items[0])), size)
}

// SceneUniformData is the per-frame uniform block shared by every pass,
// laid out exactly as the WGSL SceneUniforms struct expects.
type SceneUniformData struct {
	Perspective        mgl32.Mat4
	View               mgl32.Mat4
	InversePerspective mgl32.Mat4
	InverseView        mgl32.Mat4
	CameraPosition     mgl32.Vec3
	AspectRatio        float32
}

// MeshUniformData is the per-mesh uniform block of the geometry pass.
type MeshUniformData struct {
	Model mgl32.Mat4
	Color mgl32.Vec4
}

// Vertex is the geometry pass vertex layout: position and normal,
// interleaved.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
}

const (
	SceneUniformSize = uint64(unsafe.Sizeof(SceneUniformData{}))
	MeshUniformSize  = uint64(unsafe.Sizeof(MeshUniformData{}))
	VertexStride     = uint64(unsafe.Sizeof(Vertex{}))
)

// SceneBindGroupLayout is group 0 of every pass: the scene uniform buffer,
// visible to both stages.
func SceneBindGroupLayout() gpu.BindGroupLayoutDesc {
	return gpu.BindGroupLayoutDesc{
		Label:      "scene uniforms",
		Visibility: wgpu.ShaderStageVertex | wgpu.ShaderStageFragment,
		Buffers:    []uint64{SceneUniformSize},
	}
}

// MeshBindGroupLayout is group 1 of the geometry pass: the per-mesh
// uniform buffer.
func MeshBindGroupLayout() gpu.BindGroupLayoutDesc {
	return gpu.BindGroupLayoutDesc{
		Label:      "mesh uniforms",
		Visibility: wgpu.ShaderStageVertex | wgpu.ShaderStageFragment,
		Buffers:    []uint64{MeshUniformSize},
	}
}

// GeometryVertexLayout describes the single interleaved vertex buffer the
// geometry shader consumes.
func GeometryVertexLayout() gpu.VertexBufferLayout {
	return gpu.VertexBufferLayout{
		ArrayStride: VertexStride,
		StepMode:    wgpu.VertexStepModeVertex,
		Attributes: []wgpu.VertexAttribute{
			{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
			{Format: wgpu.VertexFormatFloat32x3, Offset: 12, ShaderLocation: 1},
		},
	}
}

// Mesh is one draw of the geometry pass: its buffers, its uniform block and
// the bind group wiring them up.
type Mesh struct {
	Id            uuid.UUID
	Name          string
	VertexBuffer  gpu.Handle
	IndexBuffer   gpu.Handle
	IndexCount    uint32
	UniformBuffer gpu.Handle
	BindGroup     gpu.Handle
}

// Scene owns the shared uniform buffer and the meshes. Everything GPU-side
// is held by handle; the manager owns the objects.
type Scene struct {
	UniformBuffer gpu.Handle
	BindGroup     gpu.Handle
	Meshes        []*Mesh
}

// NewScene builds the procedural test scene: a ground plane, a small grid
// of cubes and a few spheres, each with a random color.
func NewScene(mgr *gpu.Manager) *Scene {
	rng := rand.New(rand.NewSource(7))

	scene := &Scene{}
	scene.UniformBuffer = mgr.CreateBuffer(&gpu.BufferDesc{
		Label:    "scene uniforms",
		ByteSize: SceneUniformSize,
		Usage:    wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	layout := SceneBindGroupLayout()
	scene.BindGroup = mgr.CreateBindGroup(&gpu.BindGroupDesc{
		Label:   "scene uniforms",
		Layout:  layout,
		Buffers: []gpu.Handle{scene.UniformBuffer},
	})

	planeVerts, planeIdx := PlaneMesh(20)
	scene.addMesh(mgr, "ground", planeVerts, planeIdx,
		mgl32.Translate3D(0, 0, 0), mgl32.Vec4{0.8, 0.8, 0.8, 1})

	cubeVerts, cubeIdx := CubeMesh(1)
	for x := -1; x <= 1; x++ {
		for z := -1; z <= 1; z++ {
			model := mgl32.Translate3D(float32(x)*2.5, 0.5, float32(z)*2.5)
			scene.addMesh(mgr, "cube", cubeVerts, cubeIdx, model, randomColor(rng))
		}
	}

	sphereVerts, sphereIdx := SphereMesh(0.7, 24, 16)
	for i := 0; i < 4; i++ {
		angle := float64(i) * math.Pi / 2
		model := mgl32.Translate3D(
			float32(math.Cos(angle))*5,
			0.7,
			float32(math.Sin(angle))*5,
		)
		scene.addMesh(mgr, "sphere", sphereVerts, sphereIdx, model, randomColor(rng))
	}

	return scene
}

func (s *Scene) addMesh(mgr *gpu.Manager, name string, vertices []Vertex, indices []uint32,
	model mgl32.Mat4, color mgl32.Vec4) {
	uniform := MeshUniformData{Model: model, Color: color}

	mesh := &Mesh{
		Id:   uuid.New(),
		Name: name,
		VertexBuffer: mgr.CreateBuffer(&gpu.BufferDesc{
			Label:       name + " vertices",
			ByteSize:    uint64(len(vertices)) * VertexStride,
			Usage:       wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
			InitialData: toBytes(vertices),
		}),
		IndexBuffer: mgr.CreateBuffer(&gpu.BufferDesc{
			Label:       name + " indices",
			ByteSize:    uint64(len(indices)) * 4,
			Usage:       wgpu.BufferUsageIndex | wgpu.BufferUsageCopyDst,
			InitialData: toBytes(indices),
		}),
		IndexCount: uint32(len(indices)),
		UniformBuffer: mgr.CreateBuffer(&gpu.BufferDesc{
			Label:       name + " uniforms",
			ByteSize:    MeshUniformSize,
			Usage:       wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
			InitialData: toBytes([]MeshUniformData{uniform}),
		}),
	}
	mesh.BindGroup = mgr.CreateBindGroup(&gpu.BindGroupDesc{
		Label:   name + " uniforms",
		Layout:  MeshBindGroupLayout(),
		Buffers: []gpu.Handle{mesh.UniformBuffer},
	})
	s.Meshes = append(s.Meshes, mesh)
}

func randomColor(rng *rand.Rand) mgl32.Vec4 {
	return mgl32.Vec4{
		0.3 + 0.7*rng.Float32(),
		0.3 + 0.7*rng.Float32(),
		0.3 + 0.7*rng.Float32(),
		1,
	}
}

// PlaneMesh builds a flat square in the XZ plane centered on the origin,
// normal up.
func PlaneMesh(size float32) ([]Vertex, []uint32) {
	h := size / 2
	vertices := []Vertex{
		{Position: [3]float32{-h, 0, -h}, Normal: [3]float32{0, 1, 0}},
		{Position: [3]float32{h, 0, -h}, Normal: [3]float32{0, 1, 0}},
		{Position: [3]float32{h, 0, h}, Normal: [3]float32{0, 1, 0}},
		{Position: [3]float32{-h, 0, h}, Normal: [3]float32{0, 1, 0}},
	}
	indices := []uint32{0, 2, 1, 0, 3, 2}
	return vertices, indices
}

// CubeMesh builds an axis-aligned cube with per-face normals, 24 vertices
// and 36 indices.
func CubeMesh(size float32) ([]Vertex, []uint32) {
	h := size / 2
	faces := []struct {
		normal [3]float32
		corner [4][3]float32
	}{
		{[3]float32{0, 0, 1}, [4][3]float32{{-h, -h, h}, {h, -h, h}, {h, h, h}, {-h, h, h}}},
		{[3]float32{0, 0, -1}, [4][3]float32{{h, -h, -h}, {-h, -h, -h}, {-h, h, -h}, {h, h, -h}}},
		{[3]float32{1, 0, 0}, [4][3]float32{{h, -h, h}, {h, -h, -h}, {h, h, -h}, {h, h, h}}},
		{[3]float32{-1, 0, 0}, [4][3]float32{{-h, -h, -h}, {-h, -h, h}, {-h, h, h}, {-h, h, -h}}},
		{[3]float32{0, 1, 0}, [4][3]float32{{-h, h, h}, {h, h, h}, {h, h, -h}, {-h, h, -h}}},
		{[3]float32{0, -1, 0}, [4][3]float32{{-h, -h, -h}, {h, -h, -h}, {h, -h, h}, {-h, -h, h}}},
	}

	var vertices []Vertex
	var indices []uint32
	for _, face := range faces {
		base := uint32(len(vertices))
		for _, corner := range face.corner {
			vertices = append(vertices, Vertex{Position: corner, Normal: face.normal})
		}
		indices = append(indices, base, base+1, base+2, base, base+2, base+3)
	}
	return vertices, indices
}

// SphereMesh builds a UV sphere with the given number of longitudinal
// sectors and latitudinal rings.
func SphereMesh(radius float32, sectors, rings int) ([]Vertex, []uint32) {
	var vertices []Vertex
	var indices []uint32

	for ring := 0; ring <= rings; ring++ {
		phi := math.Pi * float64(ring) / float64(rings)
		for sector := 0; sector <= sectors; sector++ {
			theta := 2 * math.Pi * float64(sector) / float64(sectors)
			n := [3]float32{
				float32(math.Sin(phi) * math.Cos(theta)),
				float32(math.Cos(phi)),
				float32(math.Sin(phi) * math.Sin(theta)),
			}
			vertices = append(vertices, Vertex{
				Position: [3]float32{n[0] * radius, n[1] * radius, n[2] * radius},
				Normal:   n,
			})
		}
	}

	stride := uint32(sectors + 1)
	for ring := 0; ring < rings; ring++ {
		for sector := 0; sector < sectors; sector++ {
			a := uint32(ring)*stride + uint32(sector)
			b := a + stride
			indices = append(indices, a, b, a+1, a+1, b, b+1)
		}
	}
	return vertices, indices
}

// BuildSceneUniforms assembles the per-frame uniform block from the camera.
func BuildSceneUniforms(cam *Camera, aspect float32) SceneUniformData {
	perspective := cam.ProjectionMatrix(aspect)
	view := cam.ViewMatrix()
	return SceneUniformData{
		Perspective:        perspective,
		View:               view,
		InversePerspective: perspective.Inv(),
		InverseView:        view.Inv(),
		CameraPosition:     cam.Position,
		AspectRatio:        aspect,
	}
}
