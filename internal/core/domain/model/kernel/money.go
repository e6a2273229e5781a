package kernel

import (
	"fmt"

	"warehouse/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// MoneyScale is the number of decimal places kept for monetary amounts.
const MoneyScale int32 = 2

// RoundMoney rounds an amount half away from zero to MoneyScale places.
//
// Example:
//
//	kernel.RoundMoney(decimal.RequireFromString("88.495")) // 88.50
func RoundMoney(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(MoneyScale)
}

// ValidateAmount rejects negative monetary amounts.
func ValidateAmount(paramName string, amount decimal.Decimal) error {
	if amount.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause(paramName, fmt.Errorf("%s is negative", amount.String()))
	}
	return nil
}
