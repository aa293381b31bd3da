package orderedset

import (
	"iter"
	"maps"
	"slices"
)

// OrderedSet is an insertion-ordered collection with set semantics.
// Membership is answered by the hash side, iteration order by the slice side.
type OrderedSet[T comparable] struct {
	hash   map[T]struct{}
	vector []T
}

func New[T comparable]() *OrderedSet[T] {
	return &OrderedSet[T]{
		hash: make(map[T]struct{}),
	}
}

// Of builds a set from vals, keeping the first occurrence of each value.
func Of[T comparable](vals ...T) *OrderedSet[T] {
	s := &OrderedSet[T]{
		hash:   make(map[T]struct{}, len(vals)),
		vector: make([]T, 0, len(vals)),
	}
	for _, v := range vals {
		s.AddIfNotExists(v)
	}
	return s
}

// FromOthers returns the union of others in first-seen order.
func FromOthers[T comparable](others ...*OrderedSet[T]) *OrderedSet[T] {
	out := New[T]()
	for _, other := range others {
		out.MergeFrom(other)
	}
	return out
}

// Add appends v without checking membership.
// The caller must know v is absent, otherwise the order slice gets a duplicate.
func (s *OrderedSet[T]) Add(v T) {
	s.hash[v] = struct{}{}
	s.vector = append(s.vector, v)
}

// AddIfNotExists appends v unless it is already a member and reports whether it did.
func (s *OrderedSet[T]) AddIfNotExists(v T) bool {
	if s.Has(v) {
		return false
	}
	s.Add(v)
	return true
}

// Remove drops v, keeping the relative order of the remaining values.
func (s *OrderedSet[T]) Remove(v T) bool {
	pos, ok := s.IndexOf(v)
	if !ok {
		return false
	}
	s.vector = slices.Delete(s.vector, pos, pos+1)
	delete(s.hash, v)
	return true
}

// MergeFrom appends the values of other that s lacks, in other's order.
func (s *OrderedSet[T]) MergeFrom(other *OrderedSet[T]) {
	if other == nil {
		return
	}
	for _, v := range other.vector {
		s.AddIfNotExists(v)
	}
}

func (s *OrderedSet[T]) Has(v T) bool {
	_, ok := s.hash[v]
	return ok
}

// IndexOf returns the position of v in insertion order.
func (s *OrderedSet[T]) IndexOf(v T) (int, bool) {
	if !s.Has(v) {
		return -1, false
	}
	return slices.Index(s.vector, v), true
}

func (s *OrderedSet[T]) Len() int {
	return len(s.vector)
}

func (s *OrderedSet[T]) IsEmpty() bool {
	return len(s.vector) == 0
}

// Values returns a copy of the members in insertion order.
func (s *OrderedSet[T]) Values() []T {
	return slices.Clone(s.vector)
}

// All iterates the members in insertion order. s must not be mutated during iteration.
func (s *OrderedSet[T]) All() iter.Seq[T] {
	return slices.Values(s.vector)
}

func (s *OrderedSet[T]) Clone() *OrderedSet[T] {
	return &OrderedSet[T]{
		hash:   maps.Clone(s.hash),
		vector: slices.Clone(s.vector),
	}
}

// Consistent reports whether the hash and vector sides agree on length and membership.
func (s *OrderedSet[T]) Consistent() bool {
	if len(s.hash) != len(s.vector) {
		return false
	}
	seen := make(map[T]struct{}, len(s.vector))
	for _, v := range s.vector {
		if _, dup := seen[v]; dup {
			return false
		}
		if _, ok := s.hash[v]; !ok {
			return false
		}
		seen[v] = struct{}{}
	}
	return true
}

