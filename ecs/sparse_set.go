package ecs

// storage is the type-erased view of a SparseSet the world needs for
// destroy and query bookkeeping.
type storage interface {
	Has(id entityID) bool
	Delete(id entityID) bool
	IDs() []entityID
	Len() int
}

// SparseSet stores one component type keyed by entity slot id. Values are
// kept densely packed so iteration touches contiguous memory.
type SparseSet[T any] struct {
	dense  []entityID
	values []*T
	sparse []int
}

func (s *SparseSet[T]) Has(id entityID) bool {
	if s == nil || id == 0 || int(id) > len(s.sparse) {
		return false
	}
	idx := s.sparse[id-1]
	return idx >= 0 && idx < len(s.dense) && s.dense[idx] == id
}

func (s *SparseSet[T]) Get(id entityID) (*T, bool) {
	if !s.Has(id) {
		return nil, false
	}
	return s.values[s.sparse[id-1]], true
}

func (s *SparseSet[T]) Set(id entityID, v *T) {
	if id == 0 {
		return
	}
	for int(id) > len(s.sparse) {
		s.sparse = append(s.sparse, -1)
	}
	if s.Has(id) {
		s.values[s.sparse[id-1]] = v
		return
	}
	s.dense = append(s.dense, id)
	s.values = append(s.values, v)
	s.sparse[id-1] = len(s.dense) - 1
}

// Delete swaps the last dense entry into the removed slot.
func (s *SparseSet[T]) Delete(id entityID) bool {
	if !s.Has(id) {
		return false
	}
	idx := s.sparse[id-1]
	last := len(s.dense) - 1
	lastID := s.dense[last]

	s.dense[idx] = lastID
	s.values[idx] = s.values[last]
	s.sparse[lastID-1] = idx

	s.values[last] = nil
	s.dense = s.dense[:last]
	s.values = s.values[:last]
	s.sparse[id-1] = -1
	return true
}

// IDs returns a copy of the dense id list so callers may mutate the set
// while iterating.
func (s *SparseSet[T]) IDs() []entityID {
	if s == nil {
		return nil
	}
	return append([]entityID(nil), s.dense...)
}

func (s *SparseSet[T]) Len() int {
	if s == nil {
		return 0
	}
	return len(s.dense)
}
