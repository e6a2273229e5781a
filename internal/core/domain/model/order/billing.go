package order

import (
	"warehouse/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

// DefaultTaxRate is the flat sales tax applied at checkout and assumed when
// back-filling legacy orders.
var DefaultTaxRate = decimal.RequireFromString("0.13")

// Billing holds the monetary fields of an order. Subtotal, tax and tax rate
// are optional because orders written before tax tracking only carry a
// total amount.
type Billing struct {
	totalAmount decimal.Decimal
	subtotal    decimal.NullDecimal
	tax         decimal.NullDecimal
	taxRate     decimal.NullDecimal
}

// NewBilling prices a list of items:
//
//	subtotal = round(sum(price * quantity), 2)
//	tax      = round(subtotal * 0.13, 2)
//	total    = subtotal + tax
func NewBilling(items []Item) Billing {
	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.LineTotal())
	}
	subtotal = kernel.RoundMoney(subtotal)
	tax := kernel.RoundMoney(subtotal.Mul(DefaultTaxRate))

	return Billing{
		totalAmount: subtotal.Add(tax),
		subtotal:    decimal.NewNullDecimal(subtotal),
		tax:         decimal.NewNullDecimal(tax),
		taxRate:     decimal.NewNullDecimal(DefaultTaxRate),
	}
}

// RestoreBilling rebuilds billing from storage without recomputing anything.
func RestoreBilling(totalAmount decimal.Decimal, subtotal, tax, taxRate decimal.NullDecimal) Billing {
	return Billing{
		totalAmount: totalAmount,
		subtotal:    subtotal,
		tax:         tax,
		taxRate:     taxRate,
	}
}

// NeedsBackfill reports whether subtotal or tax is missing.
func (b Billing) NeedsBackfill() bool {
	return !b.subtotal.Valid || !b.tax.Valid
}

// Backfill derives missing subtotal and tax from the total using the fixed
// 13% rate:
//
//	subtotal = round(total / 1.13, 2)
//	tax      = round(subtotal * 0.13, 2)
//
// A billing that already has both values is returned unchanged, so applying
// Backfill repeatedly yields the same result.
//
// Example:
//
//	b := order.RestoreBilling(decimal.RequireFromString("113.00"), decimal.NullDecimal{}, decimal.NullDecimal{}, decimal.NullDecimal{})
//	b = b.Backfill() // subtotal 100.00, tax 13.00, taxRate 0.13
func (b Billing) Backfill() Billing {
	if !b.NeedsBackfill() {
		return b
	}

	subtotal := kernel.RoundMoney(b.totalAmount.Div(decimal.NewFromInt(1).Add(DefaultTaxRate)))
	tax := kernel.RoundMoney(subtotal.Mul(DefaultTaxRate))

	return Billing{
		totalAmount: b.totalAmount,
		subtotal:    decimal.NewNullDecimal(subtotal),
		tax:         decimal.NewNullDecimal(tax),
		taxRate:     decimal.NewNullDecimal(DefaultTaxRate),
	}
}

func (b Billing) TotalAmount() decimal.Decimal {
	return b.totalAmount
}

func (b Billing) Subtotal() decimal.NullDecimal {
	return b.subtotal
}

func (b Billing) Tax() decimal.NullDecimal {
	return b.tax
}

func (b Billing) TaxRate() decimal.NullDecimal {
	return b.taxRate
}
