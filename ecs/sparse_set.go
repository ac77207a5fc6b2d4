package ecs

// SparseSet is a cache-friendly storage for values keyed by Entity ID.
// Iteration order is dense insertion order, disturbed only by swap-removal.
type SparseSet[T any] struct {
	denseEntities []Entity
	denseValues   []T
	sparse        []int
}

// Has returns true if the entity handle is stored in the set.
func (s *SparseSet[T]) Has(e Entity) bool {
	if s == nil {
		return false
	}
	id := int(e.id())
	if id <= 0 || id-1 >= len(s.sparse) {
		return false
	}
	idx := s.sparse[id-1]
	return idx >= 0 && idx < len(s.denseEntities) && s.denseEntities[idx] == e
}

// Get returns the value for e.
func (s *SparseSet[T]) Get(e Entity) (T, bool) {
	var zero T
	if !s.Has(e) {
		return zero, false
	}
	return s.denseValues[s.sparse[int(e.id())-1]], true
}

// Set inserts or updates the value for e.
func (s *SparseSet[T]) Set(e Entity, v T) {
	id := int(e.id())
	if s == nil || id <= 0 {
		return
	}
	for id-1 >= len(s.sparse) {
		s.sparse = append(s.sparse, -1)
	}
	if idx := s.sparse[id-1]; idx >= 0 && idx < len(s.denseEntities) && s.denseEntities[idx].id() == e.id() {
		s.denseEntities[idx] = e
		s.denseValues[idx] = v
		return
	}
	s.denseEntities = append(s.denseEntities, e)
	s.denseValues = append(s.denseValues, v)
	s.sparse[id-1] = len(s.denseEntities) - 1
}

// Remove deletes the value for e if present.
func (s *SparseSet[T]) Remove(e Entity) bool {
	if !s.Has(e) {
		return false
	}
	id := int(e.id())
	idx := s.sparse[id-1]
	last := len(s.denseEntities) - 1
	lastEnt := s.denseEntities[last]

	s.denseEntities[idx] = lastEnt
	s.denseValues[idx] = s.denseValues[last]
	s.sparse[int(lastEnt.id())-1] = idx

	var zero T
	s.denseValues[last] = zero
	s.denseEntities = s.denseEntities[:last]
	s.denseValues = s.denseValues[:last]
	s.sparse[id-1] = -1
	return true
}

// Len returns the number of stored values.
func (s *SparseSet[T]) Len() int {
	if s == nil {
		return 0
	}
	return len(s.denseEntities)
}

// Values returns a copy of the dense value list.
func (s *SparseSet[T]) Values() []T {
	if s == nil {
		return nil
	}
	return append([]T(nil), s.denseValues...)
}
