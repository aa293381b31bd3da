package relation

import "cmp"

// ID identifies an entity within its own namespace.
// Columns, rows and values never share identifier spaces.
type ID = uint64

// Entity is implemented by every column, row and value type stored in a Table.
// ID must be deterministic and stable for the lifetime of the instance.
type Entity interface {
	ID() ID
}

// Pair addresses a column×row intersection.
type Pair struct {
	Column ID
	Row    ID
}

func comparePairs(a, b Pair) int {
	if c := cmp.Compare(a.Column, b.Column); c != 0 {
		return c
	}
	return cmp.Compare(a.Row, b.Row)
}

// Triple is a single (column, row, value) fact.
type Triple struct {
	Column ID
	Row    ID
	Value  ID
}

func (t Triple) Pair() Pair {
	return Pair{Column: t.Column, Row: t.Row}
}
