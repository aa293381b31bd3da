package relation

import (
	"maps"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/on-the-ground/ternary_index/shared/set"
	"github.com/rickb777/date/v2/timespan"
	"go.uber.org/zap"
)

// InverseTable holds, for every active intersection, the values exclusive to
// its column and the values exclusive to its row.
//
// It is a snapshot: it shares nothing with the source table and never
// changes after RebuildFrom returns. Mutating the source makes it stale;
// nothing invalidates it, rebuilding is the caller's call.
type InverseTable struct {
	// this column has these values except those its row also has
	columnExclusive map[Pair]set.Set[ID]
	// this row has these values except those its column also has
	rowExclusive map[Pair]set.Set[ID]

	sourceID          uuid.UUID
	sourceVersion     uint64
	sourceFingerprint uint64
	span              timespan.TimeSpan
}

// RebuildFrom computes a fresh InverseTable from the current state of t.
func RebuildFrom[C, R, V Entity](t *Table[C, R, V]) *InverseTable {
	start := time.Now()
	inv := &InverseTable{
		columnExclusive:   make(map[Pair]set.Set[ID], len(t.tuples)),
		rowExclusive:      make(map[Pair]set.Set[ID], len(t.tuples)),
		sourceID:          t.id,
		sourceVersion:     t.version,
		sourceFingerprint: t.Fingerprint(),
	}

	for key := range t.tuples {
		columnValues, ok := t.columnValues[key.Column]
		if !ok {
			panic(inconsistentAt(key, "column values"))
		}
		rowValues, ok := t.rowValues[key.Row]
		if !ok {
			panic(inconsistentAt(key, "row values"))
		}
		inv.columnExclusive[key] = columnValues.Difference(rowValues)
		inv.rowExclusive[key] = rowValues.Difference(columnValues)
	}

	inv.span = timespan.BetweenTimes(start, time.Now())
	t.logger.Debug("inverse table rebuilt",
		zap.Int("pairs", len(inv.columnExclusive)),
		zap.Uint64("version", inv.sourceVersion),
		zap.Duration("elapsed", inv.span.Duration()),
	)
	return inv
}

// Inverse is the method form of RebuildFrom.
func (t *Table[C, R, V]) Inverse() *InverseTable {
	return RebuildFrom(t)
}

// ColumnExclusive returns the values column holds anywhere that row holds nowhere.
// An intersection without a tuple reports false; identical value sets report an empty set.
func (inv *InverseTable) ColumnExclusive(columnID, rowID ID) (set.Set[ID], bool) {
	s, ok := inv.columnExclusive[Pair{Column: columnID, Row: rowID}]
	if !ok {
		return nil, false
	}
	return s.Clone(), true
}

// RowExclusive returns the values row holds anywhere that column holds nowhere.
func (inv *InverseTable) RowExclusive(columnID, rowID ID) (set.Set[ID], bool) {
	s, ok := inv.rowExclusive[Pair{Column: columnID, Row: rowID}]
	if !ok {
		return nil, false
	}
	return s.Clone(), true
}

// Pairs returns the covered intersections ordered by column, then row.
func (inv *InverseTable) Pairs() []Pair {
	return slices.SortedFunc(maps.Keys(inv.columnExclusive), comparePairs)
}

func (inv *InverseTable) Len() int {
	return len(inv.columnExclusive)
}

func (inv *InverseTable) SourceID() uuid.UUID {
	return inv.sourceID
}

func (inv *InverseTable) SourceVersion() uint64 {
	return inv.sourceVersion
}

func (inv *InverseTable) SourceFingerprint() uint64 {
	return inv.sourceFingerprint
}

// Span covers the time the rebuild took.
func (inv *InverseTable) Span() timespan.TimeSpan {
	return inv.span
}

// StaleFor reports whether inv was built from another table or an older version of t.
func StaleFor[C, R, V Entity](inv *InverseTable, t *Table[C, R, V]) bool {
	return inv.sourceID != t.id || inv.sourceVersion != t.version
}
