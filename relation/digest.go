package relation

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// Fingerprint digests the tuple set independently of insertion order.
// Equal tuple sets always share a fingerprint; entity payloads do not contribute.
func (t *Table[C, R, V]) Fingerprint() uint64 {
	var (
		sum uint64
		buf [24]byte
	)
	for p, vals := range t.tuples {
		binary.LittleEndian.PutUint64(buf[0:8], p.Column)
		binary.LittleEndian.PutUint64(buf[8:16], p.Row)
		for v := range vals {
			binary.LittleEndian.PutUint64(buf[16:24], v)
			sum += xxhash.Sum64(buf[:])
		}
	}
	return sum
}
