package relation

import (
	"iter"
	"maps"
	"slices"

	"github.com/on-the-ground/ternary_index/shared/set"
)

// Every accessor returns copies; callers can never edit the index from outside.

func (t *Table[C, R, V]) Has(columnID, rowID, valueID ID) bool {
	return t.tuples[Pair{Column: columnID, Row: rowID}].Has(valueID)
}

// ValuesAt returns the values at the intersection, or false if it holds no tuple.
func (t *Table[C, R, V]) ValuesAt(columnID, rowID ID) (set.Set[ID], bool) {
	vals, ok := t.tuples[Pair{Column: columnID, Row: rowID}]
	if !ok {
		return nil, false
	}
	return vals.Clone(), true
}

// RowsOf returns the rows column intersects, in the order they were first linked.
func (t *Table[C, R, V]) RowsOf(columnID ID) []ID {
	if rows, ok := t.columnsToRows[columnID]; ok {
		return rows.Values()
	}
	return nil
}

// ColumnsOf returns the columns row intersects, in the order they were first linked.
func (t *Table[C, R, V]) ColumnsOf(rowID ID) []ID {
	if columns, ok := t.rowsToColumns[rowID]; ok {
		return columns.Values()
	}
	return nil
}

// ColumnValues returns every value the column holds in any row.
func (t *Table[C, R, V]) ColumnValues(columnID ID) (set.Set[ID], bool) {
	c, ok := t.columnValues[columnID]
	if !ok {
		return nil, false
	}
	return c.Members(), true
}

// RowValues returns every value the row holds in any column.
func (t *Table[C, R, V]) RowValues(rowID ID) (set.Set[ID], bool) {
	c, ok := t.rowValues[rowID]
	if !ok {
		return nil, false
	}
	return c.Members(), true
}

func (t *Table[C, R, V]) Column(id ID) (C, bool) {
	c, ok := t.columns[id]
	return c, ok
}

func (t *Table[C, R, V]) Row(id ID) (R, bool) {
	r, ok := t.rows[id]
	return r, ok
}

func (t *Table[C, R, V]) Value(id ID) (V, bool) {
	v, ok := t.values[id]
	return v, ok
}

// Columns returns the registered column ids in ascending order.
func (t *Table[C, R, V]) Columns() []ID {
	return slices.Sorted(maps.Keys(t.columns))
}

// Rows returns the registered row ids in ascending order.
func (t *Table[C, R, V]) Rows() []ID {
	return slices.Sorted(maps.Keys(t.rows))
}

// ValueIDs returns the referenced value ids in ascending order.
func (t *Table[C, R, V]) ValueIDs() []ID {
	return slices.Sorted(maps.Keys(t.values))
}

// Pairs returns every active intersection ordered by column, then row.
func (t *Table[C, R, V]) Pairs() []Pair {
	return slices.SortedFunc(maps.Keys(t.tuples), comparePairs)
}

// Len returns the number of (column, row, value) tuples.
func (t *Table[C, R, V]) Len() int {
	n := 0
	for _, vals := range t.tuples {
		n += vals.Len()
	}
	return n
}

// Tuples iterates every triple ordered by column, row, then value.
// The table must not be mutated during iteration.
func (t *Table[C, R, V]) Tuples() iter.Seq[Triple] {
	return func(yield func(Triple) bool) {
		for _, p := range t.Pairs() {
			for _, v := range set.Sorted(t.tuples[p]) {
				if !yield(Triple{Column: p.Column, Row: p.Row, Value: v}) {
					return
				}
			}
		}
	}
}
