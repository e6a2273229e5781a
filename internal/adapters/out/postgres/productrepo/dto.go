// Package productrepo persists catalogue entries and performs atomic stock
// decrements.
package productrepo

import (
	"time"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/product"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductDTO is the products row. The check constraint keeps stock
// non-negative even for writes that bypass the repository.
type ProductDTO struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Name          string          `gorm:"type:varchar(255);not null"`
	Description   string          `gorm:"type:text"`
	Price         decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	StockQuantity int             `gorm:"not null;check:stock_quantity_non_negative,stock_quantity >= 0"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (ProductDTO) TableName() string {
	return "products"
}

func fromDomain(p *product.Product) ProductDTO {
	return ProductDTO{
		ID:            p.ID().Bytes(),
		Name:          p.Name(),
		Description:   p.Description(),
		Price:         p.Price(),
		StockQuantity: p.StockQuantity(),
		CreatedAt:     p.CreatedAt(),
		UpdatedAt:     p.UpdatedAt(),
	}
}

func toDomain(dto ProductDTO) (*product.Product, error) {
	id, err := kernel.UUIDFromGoogle(dto.ID)
	if err != nil {
		return nil, err
	}
	return product.RestoreProduct(id, dto.Name, dto.Description, dto.Price, dto.StockQuantity, dto.CreatedAt, dto.UpdatedAt)
}
