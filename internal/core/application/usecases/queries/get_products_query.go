package queries

import (
	"errors"
	"time"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	ErrGetProductsQueryIsNotConstructed = errors.New(
		"GetProductsQuery must be created via NewGetProductsQuery constructor",
	)
	ErrGetProductQueryIsNotConstructed = errors.New(
		"GetProductQuery must be created via NewGetProductQuery constructor",
	)
)

// GetProductsQuery lists the catalogue by name.
type GetProductsQuery struct {
	guard guard.ConstructorGuard
}

func NewGetProductsQuery() GetProductsQuery {
	return GetProductsQuery{guard: guard.NewConstructorGuard()}
}

func (q GetProductsQuery) Validate() error {
	return q.guard.Validate(ErrGetProductsQueryIsNotConstructed)
}

// GetProductQuery fetches one product.
type GetProductQuery struct {
	productID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetProductQuery(productID kernel.UUID) (GetProductQuery, error) {
	if err := productID.Validate(); err != nil {
		return GetProductQuery{}, err
	}
	return GetProductQuery{productID: productID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetProductQuery) Validate() error {
	return q.guard.Validate(ErrGetProductQueryIsNotConstructed)
}

func (q GetProductQuery) ProductID() kernel.UUID {
	return q.productID
}

type ProductResponse struct {
	ID            kernel.UUID
	Name          string
	Description   string
	Price         decimal.Decimal
	StockQuantity int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
