package order

import (
	"errors"
	"fmt"
	"strings"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/pkg/errs"
	"warehouse/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrItemIsNotConstructed = errors.New("Item must be created via NewItem constructor")

// Item is a line of an order. Name and price are snapshotted from the
// product at checkout time and never follow later catalogue edits.
type Item struct {
	productID kernel.UUID
	name      string
	quantity  int
	price     decimal.Decimal
	guard     guard.ConstructorGuard
}

// NewItem validates and builds an order line.
//
// Example:
//
//	item, err := order.NewItem(productID, "Pallet wrap", 2, decimal.RequireFromString("12.50"))
func NewItem(productID kernel.UUID, name string, quantity int, price decimal.Decimal) (Item, error) {
	var errList []error
	if err := productID.Validate(); err != nil {
		errList = append(errList, err)
	}
	if strings.TrimSpace(name) == "" {
		errList = append(errList, errs.NewValueIsRequiredError("item name"))
	}
	if quantity <= 0 {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause(
			"item quantity",
			fmt.Errorf("%d is not greater than 0", quantity),
		))
	}
	if err := kernel.ValidateAmount("item price", price); err != nil {
		errList = append(errList, err)
	}
	if err := errors.Join(errList...); err != nil {
		return Item{}, err
	}

	return Item{
		productID: productID,
		name:      name,
		quantity:  quantity,
		price:     price,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (i Item) Validate() error {
	return i.guard.Validate(ErrItemIsNotConstructed)
}

func (i Item) ProductID() kernel.UUID {
	return i.productID
}

func (i Item) Name() string {
	return i.name
}

func (i Item) Quantity() int {
	return i.quantity
}

func (i Item) Price() decimal.Decimal {
	return i.price
}

// LineTotal is price times quantity, unrounded.
func (i Item) LineTotal() decimal.Decimal {
	return i.price.Mul(decimal.NewFromInt(int64(i.quantity)))
}
