package queries

import (
	"context"
	"time"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type productRow struct {
	ID            uuid.UUID
	Name          string
	Description   string
	Price         decimal.Decimal
	StockQuantity int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (r productRow) toResponse() (ProductResponse, error) {
	id, err := kernel.UUIDFromGoogle(r.ID)
	if err != nil {
		return ProductResponse{}, err
	}
	return ProductResponse{
		ID:            id,
		Name:          r.Name,
		Description:   r.Description,
		Price:         r.Price,
		StockQuantity: r.StockQuantity,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}, nil
}

const selectProducts = `
	SELECT id, name, description, price, stock_quantity, created_at, updated_at
	FROM products
`

type GetProductsQueryHandler struct {
	db *gorm.DB
}

func NewGetProductsQueryHandler(db *gorm.DB) GetProductsQueryHandler {
	return GetProductsQueryHandler{db: db}
}

func (h GetProductsQueryHandler) Handle(ctx context.Context, query GetProductsQuery) ([]ProductResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var rows []productRow
	if err := h.db.WithContext(ctx).Raw(selectProducts + " ORDER BY name, id").Scan(&rows).Error; err != nil {
		return nil, err
	}

	products := make([]ProductResponse, 0, len(rows))
	for _, row := range rows {
		p, err := row.toResponse()
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, nil
}

type GetProductQueryHandler struct {
	db *gorm.DB
}

func NewGetProductQueryHandler(db *gorm.DB) GetProductQueryHandler {
	return GetProductQueryHandler{db: db}
}

func (h GetProductQueryHandler) Handle(ctx context.Context, query GetProductQuery) (ProductResponse, error) {
	if err := query.Validate(); err != nil {
		return ProductResponse{}, err
	}

	var rows []productRow
	err := h.db.WithContext(ctx).Raw(selectProducts+" WHERE id = ?", query.ProductID().Bytes()).Scan(&rows).Error
	if err != nil {
		return ProductResponse{}, err
	}
	if len(rows) == 0 {
		return ProductResponse{}, errs.NewObjectNotFoundError("product", query.ProductID().String())
	}
	return rows[0].toResponse()
}
