package gpu

// arena is append-only storage for a single resource kind. Indices are
// handed out monotonically and never reused; resources are not removed
// before the Manager itself is torn down.
type arena[T any] struct {
	items []*T
}

func (a *arena[T]) add(item *T) uint32 {
	a.items = append(a.items, item)
	return uint32(len(a.items) - 1)
}

func (a *arena[T]) get(index uint32) *T {
	return a.items[index]
}

func (a *arena[T]) len() int {
	return len(a.items)
}
