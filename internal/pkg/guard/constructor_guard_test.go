package guard_test

import (
	"errors"
	"testing"

	"warehouse/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorGuard_Validate(t *testing.T) {
	notConstructed := errors.New("command not constructed")

	t.Run("constructed_guard_passes", func(t *testing.T) {
		g := guard.NewConstructorGuard()

		require.NoError(t, g.Validate(notConstructed))
		require.NoError(t, g.Validate(nil))
	})

	t.Run("zero_value_returns_given_error", func(t *testing.T) {
		var g guard.ConstructorGuard

		err := g.Validate(notConstructed)

		assert.Equal(t, notConstructed, err)
	})

	t.Run("zero_value_returns_default_error", func(t *testing.T) {
		var g guard.ConstructorGuard

		err := g.Validate(nil)

		assert.Equal(t, guard.ErrDefaultConstructorGuard, err)
	})
}

func TestConstructorGuard_EmbeddedInValueObject(t *testing.T) {
	type quantity struct {
		value int
		guard guard.ConstructorGuard
	}
	errQuantityNotConstructed := errors.New("quantity must be created via newQuantity")
	newQuantity := func(v int) quantity {
		return quantity{value: v, guard: guard.NewConstructorGuard()}
	}

	built := newQuantity(3)
	require.NoError(t, built.guard.Validate(errQuantityNotConstructed))

	copied := built
	require.NoError(t, copied.guard.Validate(errQuantityNotConstructed), "copies keep the constructed flag")

	var zero quantity
	require.ErrorIs(t, zero.guard.Validate(errQuantityNotConstructed), errQuantityNotConstructed)
}
