package queries

import (
	"errors"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/pkg/errs"
	"warehouse/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetCartQueryIsNotConstructed = errors.New(
	"GetCartQuery must be created via NewGetCartQuery constructor",
)

// GetCartQuery returns a customer's cart priced with current catalogue data.
type GetCartQuery struct {
	customerID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetCartQuery(customerID kernel.UUID) (GetCartQuery, error) {
	if err := customerID.Validate(); err != nil {
		return GetCartQuery{}, errs.NewValueIsRequiredErrorWithCause("customer", err)
	}
	return GetCartQuery{customerID: customerID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetCartQuery) Validate() error {
	return q.guard.Validate(ErrGetCartQueryIsNotConstructed)
}

func (q GetCartQuery) CustomerID() kernel.UUID {
	return q.customerID
}

type CartResponse struct {
	CustomerID kernel.UUID
	Items      []CartItemResponse
	Subtotal   decimal.Decimal
}

// CartItemResponse is one cart line. InStock is false when the catalogue
// currently holds fewer units than the line asks for.
type CartItemResponse struct {
	ProductID kernel.UUID
	Name      string
	Price     decimal.Decimal
	Quantity  int
	LineTotal decimal.Decimal
	InStock   bool
}
