package relation

import (
	"errors"
	"fmt"
)

var (
	// ErrInconsistentIndex signals that the synchronized index structures disagree.
	// It is always a bug in index maintenance.
	ErrInconsistentIndex = errors.New("relation index is inconsistent")

	// ErrDuplicateTuple is raised by strict tables when a triple is inserted twice.
	ErrDuplicateTuple = errors.New("tuple already present")

	ErrUnknownColumn = errors.New("column is not registered")
	ErrUnknownRow    = errors.New("row is not registered")

	ErrInvalidConfig = errors.New("invalid relation config")
)

func inconsistentAt(p Pair, what string) error {
	return fmt.Errorf("%w: %s missing for %v", ErrInconsistentIndex, what, p)
}
