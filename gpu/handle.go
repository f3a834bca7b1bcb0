package gpu

import "fmt"

// Kind tags a Handle with the arena it indexes into.
type Kind uint8

const (
	KindBuffer Kind = iota
	KindTexture
	KindSampler
	KindBindGroupLayout
	KindBindGroup
	KindShader
)

func (k Kind) String() string {
	switch k {
	case KindBuffer:
		return "buffer"
	case KindTexture:
		return "texture"
	case KindSampler:
		return "sampler"
	case KindBindGroupLayout:
		return "bind-group-layout"
	case KindBindGroup:
		return "bind-group"
	case KindShader:
		return "shader"
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Handle is an opaque reference to a Manager-owned resource: an arena index
// plus the kind of arena the index belongs to. Handles are cheap to copy,
// comparable, and stay valid for the lifetime of the Manager that issued
// them. Presenting a handle of the wrong kind to a getter is a programming
// error and panics.
type Handle struct {
	index uint32
	kind  Kind
}

func (h Handle) Index() uint32 { return h.index }
func (h Handle) Kind() Kind    { return h.kind }

func (h Handle) String() string {
	return fmt.Sprintf("%s#%d", h.kind, h.index)
}
