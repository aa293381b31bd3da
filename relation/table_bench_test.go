package relation_test

import (
	"fmt"
	"testing"

	"github.com/on-the-ground/ternary_index/relation"
)

func populated(size int) *relation.Table[container, container, container] {
	table := relation.New[container, container, container](relation.NewConfig(size*size, false), nil)
	for c := 0; c < size; c++ {
		for r := 0; r < size; r++ {
			for v := 0; v < size; v += 1 + (c+r)%3 {
				table.Insert(container(c), container(r), container(v))
			}
		}
	}
	return table
}

func BenchmarkInsert(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_ = populated(9)
	}
}

func BenchmarkRemoveByRow(b *testing.B) {
	for i := 0; i < b.N; i++ {
		b.StopTimer()
		table := populated(9)
		b.StartTimer()
		for r := 0; r < 9; r++ {
			table.RemoveByRow(relation.ID(r))
		}
	}
}

func BenchmarkRebuildInverse(b *testing.B) {
	for _, size := range []int{9, 27} {
		b.Run(fmt.Sprintf("Size_%d", size), func(b *testing.B) {
			table := populated(size)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				_ = relation.RebuildFrom(table)
			}
		})
	}
}
