// Package relation provides Table, an in-memory index over (column, row, value)
// facts, and InverseTable, a derived snapshot of per-intersection exclusivity sets.
//
// A Table keeps five structures synchronized on every insert and remove:
//
//   - the values present at each column×row intersection,
//   - the rows each column touches, in first-seen order,
//   - the columns each row touches, in first-seen order,
//   - the values each column holds across all rows,
//   - the values each row holds across all columns.
//
// Column, row and value entities are owned by the table while at least one
// tuple references them and are evicted with their last tuple.
//
// For every intersection (c, r) with a tuple, an InverseTable records
//
//	columnExclusive(c, r) = values(c) \ values(r)
//	rowExclusive(c, r)    = values(r) \ values(c)
//
// which is what elimination-style solvers (constraint propagation, naked
// and hidden singles) consume. InverseTables are rebuilt from scratch and go
// stale as soon as the source table changes.
//
// Nothing here is safe for concurrent use.
//
// Example:
//
//	t := relation.New[Cell, Unit, Digit](relation.DefaultConfig(), logger)
//	t.Insert(cell, unit, digit)
//	inv := t.Inverse()
//	only, ok := inv.ColumnExclusive(cell.ID(), unit.ID())
package relation
