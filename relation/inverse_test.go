package relation_test

import (
	"testing"

	"github.com/on-the-ground/ternary_index/relation"
	"github.com/on-the-ground/ternary_index/shared/set"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func exclusivityFixture() *relation.Table[container, container, container] {
	table := newTable()
	insertAll(table,
		[3]uint64{1, 2, 12},
		[3]uint64{1, 3, 14},
		[3]uint64{1, 2, 15},
		[3]uint64{4, 5, 16},
		[3]uint64{2, 5, 17},
		[3]uint64{2, 6, 17},
	)
	return table
}

func TestInverseTable_Exclusivity(t *testing.T) {
	inv := relation.RebuildFrom(exclusivityFixture())

	got, ok := inv.RowExclusive(2, 6)
	require.True(t, ok)
	assert.NotNil(t, got)
	assert.Equal(t, 0, got.Len(), "identical value sets yield a present, empty set")

	got, ok = inv.ColumnExclusive(1, 3)
	require.True(t, ok)
	assert.True(t, got.Equal(set.Of[relation.ID](12, 15)))

	got, ok = inv.RowExclusive(4, 5)
	require.True(t, ok)
	assert.True(t, got.Equal(set.Of[relation.ID](17)))

	_, ok = inv.RowExclusive(4, 6)
	assert.False(t, ok, "no tuple at (4,6)")
	_, ok = inv.ColumnExclusive(4, 6)
	assert.False(t, ok)
}

func TestInverseTable_CoversEveryIntersection(t *testing.T) {
	table := exclusivityFixture()
	inv := table.Inverse()

	assert.Equal(t, table.Pairs(), inv.Pairs())
	assert.Equal(t, 5, inv.Len())

	cases := []struct {
		pair      relation.Pair
		columnExc []relation.ID
		rowExc    []relation.ID
	}{
		{relation.Pair{Column: 1, Row: 2}, []relation.ID{14}, nil},
		{relation.Pair{Column: 1, Row: 3}, []relation.ID{12, 15}, nil},
		{relation.Pair{Column: 4, Row: 5}, nil, []relation.ID{17}},
		{relation.Pair{Column: 2, Row: 5}, nil, []relation.ID{16}},
		{relation.Pair{Column: 2, Row: 6}, nil, nil},
	}
	for _, tc := range cases {
		colExc, ok := inv.ColumnExclusive(tc.pair.Column, tc.pair.Row)
		require.True(t, ok, "%v", tc.pair)
		assert.True(t, colExc.Equal(set.Of(tc.columnExc...)), "%v column: %v", tc.pair, colExc)

		rowExc, ok := inv.RowExclusive(tc.pair.Column, tc.pair.Row)
		require.True(t, ok, "%v", tc.pair)
		assert.True(t, rowExc.Equal(set.Of(tc.rowExc...)), "%v row: %v", tc.pair, rowExc)
	}
}

func TestInverseTable_IsASnapshot(t *testing.T) {
	table := exclusivityFixture()
	inv := table.Inverse()

	before, _ := inv.ColumnExclusive(1, 3)
	beforePairs := inv.Pairs()
	assert.False(t, relation.StaleFor(inv, table))

	table.Remove(1, 2, 12)
	table.RemoveByRow(5)
	table.Insert(9, 9, 99)

	after, ok := inv.ColumnExclusive(1, 3)
	require.True(t, ok)
	assert.True(t, before.Equal(after))
	assert.Equal(t, beforePairs, inv.Pairs())
	assert.True(t, relation.StaleFor(inv, table))

	fresh := table.Inverse()
	got, _ := fresh.ColumnExclusive(1, 3)
	assert.True(t, got.Equal(set.Of[relation.ID](15)))
	_, ok = fresh.RowExclusive(4, 5)
	assert.False(t, ok)
}

func TestInverseTable_AccessorsReturnCopies(t *testing.T) {
	inv := exclusivityFixture().Inverse()

	got, _ := inv.ColumnExclusive(1, 3)
	got.Add(1000)

	again, _ := inv.ColumnExclusive(1, 3)
	assert.False(t, again.Has(1000))
}

func TestInverseTable_Provenance(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	table := relation.New[container, container, container](relation.DefaultConfig(), zap.New(core))
	insertAll(table, [3]uint64{1, 2, 3})

	inv := table.Inverse()
	assert.Equal(t, table.InstanceID(), inv.SourceID())
	assert.Equal(t, table.Version(), inv.SourceVersion())
	assert.Equal(t, table.Fingerprint(), inv.SourceFingerprint())
	assert.False(t, inv.Span().End().Before(inv.Span().Start()))
	assert.True(t, relation.StaleFor(inv, table.Clone()), "a clone is another table")

	rebuilt := logs.FilterMessage("inverse table rebuilt")
	require.Equal(t, 1, rebuilt.Len())
	assert.EqualValues(t, 1, rebuilt.All()[0].ContextMap()["pairs"])
}

func TestInverseTable_EmptyTable(t *testing.T) {
	inv := newTable().Inverse()
	assert.Equal(t, 0, inv.Len())
	assert.Empty(t, inv.Pairs())
}
