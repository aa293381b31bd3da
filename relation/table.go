package relation

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/on-the-ground/ternary_index/shared/orderedset"
	"github.com/on-the-ground/ternary_index/shared/set"
	"go.uber.org/zap"
)

// Table is a ternary relation index over (column, row, value) facts.
//
// All mutation goes through insertValue and Remove so the synchronized
// structures below are only ever changed in two places.
// Table is not safe for concurrent use; callers provide exclusion.
type Table[C, R, V Entity] struct {
	// intersection of column and row has these values
	tuples map[Pair]set.Set[ID]
	// a column is connected to these rows, in first-seen order
	columnsToRows map[ID]*orderedset.OrderedSet[ID]
	// a row is connected to these columns, in first-seen order
	rowsToColumns map[ID]*orderedset.OrderedSet[ID]
	// a column has these values across all rows, counted per row
	columnValues map[ID]set.Counted[ID]
	// a row has these values across all columns, counted per column
	rowValues map[ID]set.Counted[ID]

	columns map[ID]C
	rows    map[ID]R
	values  map[ID]V
	// number of tuples referencing each value id
	valueRefs map[ID]int

	config  Config
	base    *zap.Logger
	logger  *zap.Logger
	id      uuid.UUID
	version uint64
}

// New creates an empty table. A nil logger disables logging.
func New[C, R, V Entity](config Config, logger *zap.Logger) *Table[C, R, V] {
	config = NewConfig(config.InitialCapacity, config.StrictInsert)
	if logger == nil {
		logger = zap.NewNop()
	}
	id := uuid.New()
	n := config.InitialCapacity
	return &Table[C, R, V]{
		tuples:        make(map[Pair]set.Set[ID], n),
		columnsToRows: make(map[ID]*orderedset.OrderedSet[ID], n),
		rowsToColumns: make(map[ID]*orderedset.OrderedSet[ID], n),
		columnValues:  make(map[ID]set.Counted[ID], n),
		rowValues:     make(map[ID]set.Counted[ID], n),
		columns:       make(map[ID]C, n),
		rows:          make(map[ID]R, n),
		values:        make(map[ID]V, n),
		valueRefs:     make(map[ID]int, n),
		config:        config,
		base:          logger,
		logger:        logger.With(zap.Stringer("relation", id)),
		id:            id,
	}
}

// Insert registers the tuple and its three entities.
// Re-inserting a present triple keeps every set unchanged but replaces the
// stored entity instances, unless the table is strict, in which case it panics.
func (t *Table[C, R, V]) Insert(column C, row R, value V) {
	columnID, rowID := column.ID(), row.ID()
	t.guardDuplicate(columnID, rowID, value.ID())

	t.columns[columnID] = column
	t.rows[rowID] = row
	t.insertValue(columnID, rowID, value)
}

// InsertColumnValue inserts a tuple whose row is already registered.
func (t *Table[C, R, V]) InsertColumnValue(column C, rowID ID, value V) error {
	if _, ok := t.rows[rowID]; !ok {
		return fmt.Errorf("%w: %d", ErrUnknownRow, rowID)
	}
	columnID := column.ID()
	t.guardDuplicate(columnID, rowID, value.ID())

	t.columns[columnID] = column
	t.insertValue(columnID, rowID, value)
	return nil
}

// InsertRowValue inserts a tuple whose column is already registered.
func (t *Table[C, R, V]) InsertRowValue(columnID ID, row R, value V) error {
	if _, ok := t.columns[columnID]; !ok {
		return fmt.Errorf("%w: %d", ErrUnknownColumn, columnID)
	}
	rowID := row.ID()
	t.guardDuplicate(columnID, rowID, value.ID())

	t.rows[rowID] = row
	t.insertValue(columnID, rowID, value)
	return nil
}

// InsertValue inserts a tuple between an already registered column and row.
func (t *Table[C, R, V]) InsertValue(columnID, rowID ID, value V) error {
	if _, ok := t.columns[columnID]; !ok {
		return fmt.Errorf("%w: %d", ErrUnknownColumn, columnID)
	}
	if _, ok := t.rows[rowID]; !ok {
		return fmt.Errorf("%w: %d", ErrUnknownRow, rowID)
	}
	t.guardDuplicate(columnID, rowID, value.ID())

	t.insertValue(columnID, rowID, value)
	return nil
}

func (t *Table[C, R, V]) guardDuplicate(columnID, rowID, valueID ID) {
	if t.config.StrictInsert && t.Has(columnID, rowID, valueID) {
		panic(fmt.Errorf("%w: (%d, %d, %d)", ErrDuplicateTuple, columnID, rowID, valueID))
	}
}

// insertValue is the only place tuples come into existence.
func (t *Table[C, R, V]) insertValue(columnID, rowID ID, value V) {
	valueID := value.ID()
	t.values[valueID] = value

	key := Pair{Column: columnID, Row: rowID}
	vals, ok := t.tuples[key]
	if !ok {
		vals = make(set.Set[ID])
		t.tuples[key] = vals
	}
	if vals.Has(valueID) {
		return
	}
	vals.Add(valueID)
	t.valueRefs[valueID]++

	counted(t.columnValues, columnID).Add(valueID)
	counted(t.rowValues, rowID).Add(valueID)

	sequence(t.columnsToRows, columnID).AddIfNotExists(rowID)
	sequence(t.rowsToColumns, rowID).AddIfNotExists(columnID)

	t.version++
}

// Remove deletes a single triple, cascading to the adjacency sequences and
// to every entity left without a tuple. Absent triples are a no-op.
func (t *Table[C, R, V]) Remove(columnID, rowID, valueID ID) {
	key := Pair{Column: columnID, Row: rowID}
	vals, ok := t.tuples[key]
	if !ok || !vals.Remove(valueID) {
		return
	}
	t.version++

	if vals.Len() == 0 {
		delete(t.tuples, key)
		removeFromSequenceAndMap(t.columnsToRows, columnID, rowID)
		removeFromSequenceAndMap(t.rowsToColumns, rowID, columnID)
	}
	removeFromCountedAndMap(t.columnValues, columnID, valueID)
	removeFromCountedAndMap(t.rowValues, rowID, valueID)

	t.valueRefs[valueID]--
	if t.valueRefs[valueID] <= 0 {
		delete(t.valueRefs, valueID)
		delete(t.values, valueID)
		t.logger.Debug("value evicted", zap.Uint64("value", valueID))
	}
	if _, ok := t.columnValues[columnID]; !ok {
		delete(t.columns, columnID)
		t.logger.Debug("column evicted", zap.Uint64("column", columnID))
	}
	if _, ok := t.rowValues[rowID]; !ok {
		delete(t.rows, rowID)
		t.logger.Debug("row evicted", zap.Uint64("row", rowID))
	}
}

// RemoveByRow removes every tuple of rowID and returns how many were removed.
func (t *Table[C, R, V]) RemoveByRow(rowID ID) int {
	columns, ok := t.rowsToColumns[rowID]
	if !ok {
		return 0
	}
	// collect first: Remove edits the sequence being walked
	var targets []Triple
	for columnID := range columns.All() {
		for valueID := range t.tuples[Pair{Column: columnID, Row: rowID}] {
			targets = append(targets, Triple{Column: columnID, Row: rowID, Value: valueID})
		}
	}
	t.removeAll(targets)
	t.logger.Debug("row removed",
		zap.Uint64("row", rowID),
		zap.Int("tuples", len(targets)),
	)
	return len(targets)
}

// RemoveByColumn removes every tuple of columnID and returns how many were removed.
func (t *Table[C, R, V]) RemoveByColumn(columnID ID) int {
	rows, ok := t.columnsToRows[columnID]
	if !ok {
		return 0
	}
	var targets []Triple
	for rowID := range rows.All() {
		for valueID := range t.tuples[Pair{Column: columnID, Row: rowID}] {
			targets = append(targets, Triple{Column: columnID, Row: rowID, Value: valueID})
		}
	}
	t.removeAll(targets)
	t.logger.Debug("column removed",
		zap.Uint64("column", columnID),
		zap.Int("tuples", len(targets)),
	)
	return len(targets)
}

func (t *Table[C, R, V]) removeAll(targets []Triple) {
	for _, tr := range targets {
		t.Remove(tr.Column, tr.Row, tr.Value)
	}
}

// IsEmpty reports whether the table holds no tuples.
// It panics if the synchronized structures disagree on emptiness.
func (t *Table[C, R, V]) IsEmpty() bool {
	sizes := []int{
		len(t.tuples),
		len(t.columnValues),
		len(t.rowValues),
		len(t.columnsToRows),
		len(t.rowsToColumns),
	}
	allEmpty, allNonEmpty := true, true
	for _, n := range sizes {
		allEmpty = allEmpty && n == 0
		allNonEmpty = allNonEmpty && n > 0
	}
	if !allEmpty && !allNonEmpty {
		err := fmt.Errorf("%w: emptiness disagrees, sizes=%v", ErrInconsistentIndex, sizes)
		t.logger.Error("index maintenance bug", zap.Error(err))
		panic(err)
	}
	return allEmpty
}

// Clone returns a deep copy with its own instance id. Entities are copied by value.
func (t *Table[C, R, V]) Clone() *Table[C, R, V] {
	out := New[C, R, V](t.config, t.base)
	out.version = t.version
	for k, vals := range t.tuples {
		out.tuples[k] = vals.Clone()
	}
	for k, seq := range t.columnsToRows {
		out.columnsToRows[k] = seq.Clone()
	}
	for k, seq := range t.rowsToColumns {
		out.rowsToColumns[k] = seq.Clone()
	}
	for k, c := range t.columnValues {
		out.columnValues[k] = c.Clone()
	}
	for k, c := range t.rowValues {
		out.rowValues[k] = c.Clone()
	}
	for k, c := range t.columns {
		out.columns[k] = c
	}
	for k, r := range t.rows {
		out.rows[k] = r
	}
	for k, v := range t.values {
		out.values[k] = v
	}
	for k, n := range t.valueRefs {
		out.valueRefs[k] = n
	}
	return out
}

// InstanceID identifies this table in logs and in the provenance of derived snapshots.
func (t *Table[C, R, V]) InstanceID() uuid.UUID {
	return t.id
}

// Version increases on every mutation that changed the tuple set.
func (t *Table[C, R, V]) Version() uint64 {
	return t.version
}

func counted(m map[ID]set.Counted[ID], key ID) set.Counted[ID] {
	c, ok := m[key]
	if !ok {
		c = make(set.Counted[ID])
		m[key] = c
	}
	return c
}

func sequence(m map[ID]*orderedset.OrderedSet[ID], key ID) *orderedset.OrderedSet[ID] {
	s, ok := m[key]
	if !ok {
		s = orderedset.New[ID]()
		m[key] = s
	}
	return s
}

// removeFromCountedAndMap decrements value under key and drops key once its set is empty.
func removeFromCountedAndMap(m map[ID]set.Counted[ID], key, value ID) {
	if c, ok := m[key]; ok {
		c.Remove(value)
		if c.Len() == 0 {
			delete(m, key)
		}
	}
}

// removeFromSequenceAndMap removes value from the sequence under key and drops key once it is empty.
func removeFromSequenceAndMap(m map[ID]*orderedset.OrderedSet[ID], key, value ID) {
	if s, ok := m[key]; ok {
		s.Remove(value)
		if s.IsEmpty() {
			delete(m, key)
		}
	}
}
