package commands

import (
	"errors"
	"strings"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/product"
	"warehouse/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrCreateProductCommandIsNotConstructed = errors.New(
	"CreateProductCommand must be created via NewCreateProductCommand constructor",
)

// CreateProductCommand adds a catalogue entry with its opening stock.
type CreateProductCommand struct { //nolint:recvcheck //using for validation
	productID     kernel.UUID
	name          string
	description   string
	price         decimal.Decimal
	stockQuantity int

	guard guard.ConstructorGuard
}

// NewCreateProductCommand checks the id and the name; price and stock are
// validated by the product aggregate.
func NewCreateProductCommand(
	productID kernel.UUID,
	name string,
	description string,
	price decimal.Decimal,
	stockQuantity int,
) (CreateProductCommand, error) {
	cmd := CreateProductCommand{
		description:   strings.TrimSpace(description),
		price:         price,
		stockQuantity: stockQuantity,
		guard:         guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setProductID(productID),
		cmd.setName(name),
	); err != nil {
		return CreateProductCommand{}, err
	}

	return cmd, nil
}

func (c CreateProductCommand) Validate() error {
	return c.guard.Validate(ErrCreateProductCommandIsNotConstructed)
}

func (c CreateProductCommand) ProductID() kernel.UUID {
	return c.productID
}

func (c CreateProductCommand) Name() string {
	return c.name
}

func (c CreateProductCommand) Description() string {
	return c.description
}

func (c CreateProductCommand) Price() decimal.Decimal {
	return c.price
}

func (c CreateProductCommand) StockQuantity() int {
	return c.stockQuantity
}

func (c *CreateProductCommand) setProductID(productID kernel.UUID) error {
	if err := productID.Validate(); err != nil {
		return err
	}
	c.productID = productID
	return nil
}

func (c *CreateProductCommand) setName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return product.ErrNameIsRequired
	}
	c.name = trimmed
	return nil
}
