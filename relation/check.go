package relation

import (
	"fmt"

	"github.com/on-the-ground/ternary_index/shared/set"
	"go.uber.org/multierr"
)

// Check recomputes every derived structure from the tuples and compares.
// It returns all violations found, wrapped in ErrInconsistentIndex, or nil.
// It is O(total tuples) and meant for tests and debugging.
func (t *Table[C, R, V]) Check() error {
	var errs error

	wantColumnValues := make(map[ID]set.Counted[ID])
	wantRowValues := make(map[ID]set.Counted[ID])
	wantRefs := make(map[ID]int)

	for p, vals := range t.tuples {
		if vals.Len() == 0 {
			errs = multierr.Append(errs, fmt.Errorf("empty tuple set kept at %v", p))
		}
		for v := range vals {
			counted(wantColumnValues, p.Column).Add(v)
			counted(wantRowValues, p.Row).Add(v)
			wantRefs[v]++
		}
		if rows, ok := t.columnsToRows[p.Column]; !ok || !rows.Has(p.Row) {
			errs = multierr.Append(errs, fmt.Errorf("row %d missing from adjacency of column %d", p.Row, p.Column))
		}
		if columns, ok := t.rowsToColumns[p.Row]; !ok || !columns.Has(p.Column) {
			errs = multierr.Append(errs, fmt.Errorf("column %d missing from adjacency of row %d", p.Column, p.Row))
		}
	}

	for c, rows := range t.columnsToRows {
		if !rows.Consistent() {
			errs = multierr.Append(errs, fmt.Errorf("adjacency of column %d is not a set", c))
		}
		for r := range rows.All() {
			if _, ok := t.tuples[Pair{Column: c, Row: r}]; !ok {
				errs = multierr.Append(errs, fmt.Errorf("column %d linked to row %d without a tuple", c, r))
			}
		}
	}
	for r, columns := range t.rowsToColumns {
		if !columns.Consistent() {
			errs = multierr.Append(errs, fmt.Errorf("adjacency of row %d is not a set", r))
		}
		for c := range columns.All() {
			if _, ok := t.tuples[Pair{Column: c, Row: r}]; !ok {
				errs = multierr.Append(errs, fmt.Errorf("row %d linked to column %d without a tuple", r, c))
			}
		}
	}

	errs = multierr.Append(errs, compareCounted("column values", wantColumnValues, t.columnValues))
	errs = multierr.Append(errs, compareCounted("row values", wantRowValues, t.rowValues))
	errs = multierr.Append(errs, compareKeys("column ownership", t.columnValues, t.columns))
	errs = multierr.Append(errs, compareKeys("row ownership", t.rowValues, t.rows))
	errs = multierr.Append(errs, compareKeys("value ownership", wantRefs, t.values))
	for v, n := range wantRefs {
		if t.valueRefs[v] != n {
			errs = multierr.Append(errs, fmt.Errorf("value %d referenced by %d tuples, counted %d", v, n, t.valueRefs[v]))
		}
	}
	if len(t.valueRefs) != len(wantRefs) {
		errs = multierr.Append(errs, fmt.Errorf("value refcounts track %d ids, want %d", len(t.valueRefs), len(wantRefs)))
	}

	if errs != nil {
		return fmt.Errorf("%w: %w", ErrInconsistentIndex, errs)
	}
	return nil
}

func compareCounted(what string, want, got map[ID]set.Counted[ID]) error {
	var errs error
	if len(want) != len(got) {
		errs = multierr.Append(errs, fmt.Errorf("%s: %d keys, want %d", what, len(got), len(want)))
	}
	for k, w := range want {
		g, ok := got[k]
		if !ok {
			errs = multierr.Append(errs, fmt.Errorf("%s: key %d missing", what, k))
			continue
		}
		if len(g) != len(w) {
			errs = multierr.Append(errs, fmt.Errorf("%s: key %d has %d members, want %d", what, k, len(g), len(w)))
		}
		for v, n := range w {
			if g.Count(v) != n {
				errs = multierr.Append(errs, fmt.Errorf("%s: key %d value %d counted %d, want %d", what, k, v, g.Count(v), n))
			}
		}
	}
	return errs
}

func compareKeys[A, B any](what string, want map[ID]A, got map[ID]B) error {
	var errs error
	if len(want) != len(got) {
		errs = multierr.Append(errs, fmt.Errorf("%s: %d entries, want %d", what, len(got), len(want)))
	}
	for k := range want {
		if _, ok := got[k]; !ok {
			errs = multierr.Append(errs, fmt.Errorf("%s: %d missing", what, k))
		}
	}
	return errs
}
