// Package tuplestore materializes the tuples of a relation.Table into a
// go-memdb database so they can be queried by any single component.
//
// A Store is a snapshot, like relation.InverseTable: later mutations of the
// source table are not reflected.
package tuplestore

import (
	"cmp"
	"fmt"
	"iter"
	"slices"

	memdb "github.com/hashicorp/go-memdb"
	"github.com/on-the-ground/ternary_index/relation"
)

const (
	tableName   = "tuples"
	indexID     = "id"
	indexColumn = "column"
	indexRow    = "row"
	indexValue  = "value"
)

// TupleSource is satisfied by every *relation.Table.
type TupleSource interface {
	Tuples() iter.Seq[relation.Triple]
}

type record struct {
	Column uint64
	Row    uint64
	Value  uint64
}

func (r *record) triple() relation.Triple {
	return relation.Triple{Column: r.Column, Row: r.Row, Value: r.Value}
}

func schema() *memdb.DBSchema {
	return &memdb.DBSchema{
		Tables: map[string]*memdb.TableSchema{
			tableName: {
				Name: tableName,
				Indexes: map[string]*memdb.IndexSchema{
					indexID: {
						Name:   indexID,
						Unique: true,
						Indexer: &memdb.CompoundIndex{
							Indexes: []memdb.Indexer{
								&memdb.UintFieldIndex{Field: "Column"},
								&memdb.UintFieldIndex{Field: "Row"},
								&memdb.UintFieldIndex{Field: "Value"},
							},
						},
					},
					indexColumn: {
						Name:    indexColumn,
						Indexer: &memdb.UintFieldIndex{Field: "Column"},
					},
					indexRow: {
						Name:    indexRow,
						Indexer: &memdb.UintFieldIndex{Field: "Row"},
					},
					indexValue: {
						Name:    indexValue,
						Indexer: &memdb.UintFieldIndex{Field: "Value"},
					},
				},
			},
		},
	}
}

type Store struct {
	db *memdb.MemDB
}

// Snapshot copies every tuple of src into a fresh database in a single transaction.
func Snapshot(src TupleSource) (*Store, error) {
	db, err := memdb.NewMemDB(schema())
	if err != nil {
		return nil, fmt.Errorf("fail to create tuple store: %w", err)
	}

	txn := db.Txn(true)
	defer txn.Abort()
	for tr := range src.Tuples() {
		if err := txn.Insert(tableName, &record{Column: tr.Column, Row: tr.Row, Value: tr.Value}); err != nil {
			return nil, fmt.Errorf("fail to insert %v: %w", tr, err)
		}
	}
	txn.Commit()
	return &Store{db: db}, nil
}

func (s *Store) Has(columnID, rowID, valueID relation.ID) (bool, error) {
	txn := s.db.Txn(false)
	defer txn.Abort()

	raw, err := txn.First(tableName, indexID, columnID, rowID, valueID)
	if err != nil {
		return false, err
	}
	return raw != nil, nil
}

func (s *Store) ByColumn(columnID relation.ID) ([]relation.Triple, error) {
	return s.query(indexColumn, columnID)
}

func (s *Store) ByRow(rowID relation.ID) ([]relation.Triple, error) {
	return s.query(indexRow, rowID)
}

// ByValue answers the one direction the Table itself does not index.
func (s *Store) ByValue(valueID relation.ID) ([]relation.Triple, error) {
	return s.query(indexValue, valueID)
}

// All returns every tuple.
func (s *Store) All() ([]relation.Triple, error) {
	return s.query(indexID)
}

func (s *Store) Len() (int, error) {
	all, err := s.All()
	return len(all), err
}

// query returns matches ordered by column, row, then value.
func (s *Store) query(index string, args ...any) ([]relation.Triple, error) {
	txn := s.db.Txn(false)
	defer txn.Abort()

	it, err := txn.Get(tableName, index, args...)
	if err != nil {
		return nil, fmt.Errorf("fail to query %s: %w", index, err)
	}
	var out []relation.Triple
	for obj := it.Next(); obj != nil; obj = it.Next() {
		out = append(out, obj.(*record).triple())
	}
	slices.SortFunc(out, compareTriples)
	return out, nil
}

func compareTriples(a, b relation.Triple) int {
	return cmp.Or(
		cmp.Compare(a.Column, b.Column),
		cmp.Compare(a.Row, b.Row),
		cmp.Compare(a.Value, b.Value),
	)
}
