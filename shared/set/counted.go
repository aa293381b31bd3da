package set

// Counted is a multiset: each member carries the number of times it was added.
// A member leaves the set once its count drops to zero.
type Counted[T comparable] map[T]int

// Add increments v and reports whether v is new to the set.
func (c Counted[T]) Add(v T) bool {
	c[v]++
	return c[v] == 1
}

// Remove decrements v and reports whether v left the set.
// Removing an absent member is a no-op.
func (c Counted[T]) Remove(v T) bool {
	n, ok := c[v]
	if !ok {
		return false
	}
	if n <= 1 {
		delete(c, v)
		return true
	}
	c[v] = n - 1
	return false
}

func (c Counted[T]) Has(v T) bool {
	_, ok := c[v]
	return ok
}

func (c Counted[T]) Count(v T) int {
	return c[v]
}

func (c Counted[T]) Len() int {
	return len(c)
}

// Members returns the distinct members as a plain Set.
func (c Counted[T]) Members() Set[T] {
	out := make(Set[T], len(c))
	for v := range c {
		out[v] = struct{}{}
	}
	return out
}

// Difference returns the members of c that other lacks.
func (c Counted[T]) Difference(other Counted[T]) Set[T] {
	out := make(Set[T])
	for v := range c {
		if !other.Has(v) {
			out[v] = struct{}{}
		}
	}
	return out
}

func (c Counted[T]) Clone() Counted[T] {
	out := make(Counted[T], len(c))
	for v, n := range c {
		out[v] = n
	}
	return out
}
