package helper_test

import (
	"testing"

	"github.com/on-the-ground/ternary_index/shared/helper"
	"github.com/stretchr/testify/assert"
)

func TestGetTypedValueOf2(t *testing.T) {
	v, ok := helper.GetTypedValueOf2[int](func() (any, bool) { return 3, true })
	assert.True(t, ok)
	assert.Equal(t, 3, v)

	_, ok = helper.GetTypedValueOf2[int](func() (any, bool) { return "3", true })
	assert.False(t, ok)

	_, ok = helper.GetTypedValueOf2[int](func() (any, bool) { return nil, false })
	assert.False(t, ok)
}

func TestLookupTyped(t *testing.T) {
	bindings := map[string]any{"a": true, "b": "yes"}

	v, found, err := helper.LookupTyped[bool](bindings, "a")
	assert.NoError(t, err)
	assert.True(t, found)
	assert.True(t, v)

	_, found, err = helper.LookupTyped[bool](bindings, "missing")
	assert.NoError(t, err)
	assert.False(t, found)

	_, found, err = helper.LookupTyped[bool](bindings, "b")
	assert.ErrorIs(t, err, helper.ErrUnexpectedType)
	assert.True(t, found)
}
