package order_test

import (
	"testing"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertDecimal(t *testing.T, want string, got decimal.NullDecimal) {
	t.Helper()
	require.True(t, got.Valid, "expected %s, got NULL", want)
	assert.True(t, dec(want).Equal(got.Decimal), "expected %s, got %s", want, got.Decimal)
}

func TestNewBilling(t *testing.T) {
	first, err := order.NewItem(kernel.NewUUID(), "Tape", 2, dec("12.50"))
	require.NoError(t, err)
	second, err := order.NewItem(kernel.NewUUID(), "Boxes", 3, dec("25.00"))
	require.NoError(t, err)

	b := order.NewBilling([]order.Item{first, second})

	assertDecimal(t, "100.00", b.Subtotal())
	assertDecimal(t, "13.00", b.Tax())
	assertDecimal(t, "0.13", b.TaxRate())
	assert.True(t, dec("113.00").Equal(b.TotalAmount()))
	assert.False(t, b.NeedsBackfill())
}

func TestBilling_Backfill(t *testing.T) {
	t.Run("should derive subtotal and tax from a legacy total", func(t *testing.T) {
		legacy := order.RestoreBilling(dec("113.00"), decimal.NullDecimal{}, decimal.NullDecimal{}, decimal.NullDecimal{})
		require.True(t, legacy.NeedsBackfill())

		b := legacy.Backfill()

		assertDecimal(t, "100.00", b.Subtotal())
		assertDecimal(t, "13.00", b.Tax())
		assertDecimal(t, "0.13", b.TaxRate())
		assert.True(t, dec("113.00").Equal(b.TotalAmount()))
	})

	t.Run("should round to cents", func(t *testing.T) {
		legacy := order.RestoreBilling(dec("50.00"), decimal.NullDecimal{}, decimal.NullDecimal{}, decimal.NullDecimal{})

		b := legacy.Backfill()

		assertDecimal(t, "44.25", b.Subtotal())
		assertDecimal(t, "5.75", b.Tax())
	})

	t.Run("should fill when only tax is missing", func(t *testing.T) {
		partial := order.RestoreBilling(
			dec("226.00"),
			decimal.NewNullDecimal(dec("200.00")),
			decimal.NullDecimal{},
			decimal.NullDecimal{},
		)

		b := partial.Backfill()

		assertDecimal(t, "200.00", b.Subtotal())
		assertDecimal(t, "26.00", b.Tax())
	})

	t.Run("should be idempotent", func(t *testing.T) {
		legacy := order.RestoreBilling(dec("87.65"), decimal.NullDecimal{}, decimal.NullDecimal{}, decimal.NullDecimal{})

		once := legacy.Backfill()
		twice := once.Backfill()

		assert.Equal(t, once, twice)
	})

	t.Run("should keep complete billing untouched", func(t *testing.T) {
		complete := order.RestoreBilling(
			dec("120.00"),
			decimal.NewNullDecimal(dec("110.00")),
			decimal.NewNullDecimal(dec("10.00")),
			decimal.NullDecimal{},
		)

		assert.Equal(t, complete, complete.Backfill())
	})
}
