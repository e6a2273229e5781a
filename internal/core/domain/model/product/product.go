package product

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/pkg/errs"
	"warehouse/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	ErrProductIsNotConstructed = errors.New("Product must be created via NewProduct constructor")

	// ErrInsufficientStock is returned when a decrement would take stock below zero.
	ErrInsufficientStock = errors.New("insufficient stock")

	ErrNameIsRequired = errs.NewValueIsRequiredError("product name")
)

// Product is a catalogue entry carrying the stock on hand.
//
// Business rules:
//   - stock is never negative
//   - price is never negative
type Product struct {
	id            kernel.UUID
	name          string
	description   string
	price         decimal.Decimal
	stockQuantity int
	createdAt     time.Time
	updatedAt     time.Time
	guard         guard.ConstructorGuard
}

// NewProduct validates and creates a product.
//
// Example:
//
//	p, err := product.NewProduct(kernel.NewUUID(), "Pallet wrap", "", decimal.RequireFromString("12.50"), 40, time.Now())
func NewProduct(
	id kernel.UUID,
	name string,
	description string,
	price decimal.Decimal,
	stockQuantity int,
	now time.Time,
) (*Product, error) {
	p := &Product{
		description: strings.TrimSpace(description),
		createdAt:   now,
		updatedAt:   now,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		p.setID(id),
		p.setName(name),
		p.setPrice(price),
		p.setStockQuantity(stockQuantity),
	); err != nil {
		return nil, err
	}

	return p, nil
}

// RestoreProduct rebuilds a product loaded from storage.
func RestoreProduct(
	id kernel.UUID,
	name string,
	description string,
	price decimal.Decimal,
	stockQuantity int,
	createdAt time.Time,
	updatedAt time.Time,
) (*Product, error) {
	p, err := NewProduct(id, name, description, price, stockQuantity, createdAt)
	if err != nil {
		return nil, err
	}
	p.updatedAt = updatedAt
	return p, nil
}

func (p *Product) Validate() error {
	if p == nil {
		return ErrProductIsNotConstructed
	}
	return p.guard.Validate(ErrProductIsNotConstructed)
}

func (p *Product) ID() kernel.UUID {
	return p.id
}

func (p *Product) Name() string {
	return p.name
}

func (p *Product) Description() string {
	return p.description
}

func (p *Product) Price() decimal.Decimal {
	return p.price
}

func (p *Product) StockQuantity() int {
	return p.stockQuantity
}

func (p *Product) CreatedAt() time.Time {
	return p.createdAt
}

func (p *Product) UpdatedAt() time.Time {
	return p.updatedAt
}

// CanFulfil reports whether quantity units are on hand.
func (p *Product) CanFulfil(quantity int) bool {
	return quantity > 0 && p.stockQuantity >= quantity
}

// Decrease takes quantity units out of stock.
func (p *Product) Decrease(quantity int, now time.Time) error {
	if err := ValidateQuantity(quantity); err != nil {
		return err
	}
	if !p.CanFulfil(quantity) {
		return NewInsufficientStockError(p.name, p.stockQuantity, quantity)
	}
	p.stockQuantity -= quantity
	p.updatedAt = now
	return nil
}

// ValidateQuantity rejects non-positive stock movements.
func ValidateQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", quantity))
	}
	return nil
}

// NewInsufficientStockError names the product and the amounts involved. It
// matches both ErrInsufficientStock and errs.ErrInvalidState.
func NewInsufficientStockError(productName string, available, requested int) error {
	return errs.NewInvalidStateErrorWithCause(
		"stock of "+productName,
		available,
		fmt.Errorf("%w: %d requested", ErrInsufficientStock, requested),
	)
}

func (p *Product) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Product) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrNameIsRequired
	}
	p.name = name
	return nil
}

func (p *Product) setPrice(price decimal.Decimal) error {
	if err := kernel.ValidateAmount("product price", price); err != nil {
		return err
	}
	p.price = kernel.RoundMoney(price)
	return nil
}

func (p *Product) setStockQuantity(stockQuantity int) error {
	if stockQuantity < 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"stock quantity",
			fmt.Errorf("%d is negative", stockQuantity),
		)
	}
	p.stockQuantity = stockQuantity
	return nil
}
