// Package asset provides a handle-based arena for runtime assets.
//
// The arena is the sole owner of its values; everything else carries
// copyable Handle values. Handles are comparable and never reused within
// the lifetime of a Store.
package asset

// Handle is an opaque reference to a stored asset. The zero value refers
// to nothing and Resolve reports it as absent.
type Handle uint32

// Valid reports whether the handle refers to anything at all.
func (h Handle) Valid() bool {
	return h != 0
}

// Store is an arena of assets addressed by stable handles.
type Store[T any] struct {
	next  Handle
	items map[Handle]T
}

// NewStore returns an empty arena.
func NewStore[T any]() *Store[T] {
	return &Store[T]{items: make(map[Handle]T)}
}

// Register stores a value and returns its handle.
func (s *Store[T]) Register(v T) Handle {
	s.next++
	s.items[s.next] = v
	return s.next
}

// Resolve returns the value a handle refers to.
func (s *Store[T]) Resolve(h Handle) (T, bool) {
	v, ok := s.items[h]
	return v, ok
}

// Update replaces the value under an existing handle, or registers a new
// value if the handle is invalid. It returns the handle that now refers to
// the value.
func (s *Store[T]) Update(h Handle, v T) Handle {
	if !h.Valid() {
		return s.Register(v)
	}
	s.items[h] = v
	return h
}

// Remove releases the value under a handle. Removing an absent handle is a
// no-op.
func (s *Store[T]) Remove(h Handle) {
	delete(s.items, h)
}

// Len returns the number of stored assets.
func (s *Store[T]) Len() int {
	return len(s.items)
}
