package relation

import (
	"fmt"

	"github.com/on-the-ground/ternary_index/shared/helper"
)

const defaultInitialCapacity = 16

type Config struct {
	StrictInsert    bool // default: false, re-inserting a triple is a no-op
	InitialCapacity int  // default: 16, size hint for the top-level maps
}

func NewConfig(initialCapacity int, strictInsert bool) Config {
	if initialCapacity <= 0 {
		initialCapacity = defaultInitialCapacity
	}
	return Config{
		StrictInsert:    strictInsert,
		InitialCapacity: initialCapacity,
	}
}

func DefaultConfig() Config {
	return NewConfig(defaultInitialCapacity, false)
}

// ConfigFromBindings reads a Config from dotted keys (see ConfigRelationPrefix).
// Missing keys fall back to defaults; present keys of the wrong type are rejected.
func ConfigFromBindings(bindings map[string]any) (Config, error) {
	strict, _, err := helper.LookupTyped[bool](bindings, ConfigRelationStrictInsert)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	capacity, _, err := helper.LookupTyped[int](bindings, ConfigRelationInitialCapacity)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return NewConfig(capacity, strict), nil
}
