package queries

import (
	"context"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/ports"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetCartQueryHandler joins cart lines from the cart store with product rows
// from the database. Lines whose product no longer exists are left out.
type GetCartQueryHandler struct {
	carts ports.CartRepository
	db    *gorm.DB
}

func NewGetCartQueryHandler(carts ports.CartRepository, db *gorm.DB) GetCartQueryHandler {
	return GetCartQueryHandler{carts: carts, db: db}
}

func (h GetCartQueryHandler) Handle(ctx context.Context, query GetCartQuery) (CartResponse, error) {
	if err := query.Validate(); err != nil {
		return CartResponse{}, err
	}

	c, err := h.carts.Get(ctx, query.CustomerID())
	if err != nil {
		return CartResponse{}, err
	}

	resp := CartResponse{
		CustomerID: query.CustomerID(),
		Items:      make([]CartItemResponse, 0, len(c.Items())),
		Subtotal:   decimal.Zero,
	}
	if c.IsEmpty() {
		return resp, nil
	}

	ids := make([]uuid.UUID, 0, len(c.Items()))
	for _, item := range c.Items() {
		ids = append(ids, item.ProductID.Bytes())
	}

	var rows []productRow
	if err = h.db.WithContext(ctx).Raw(selectProducts+" WHERE id IN ?", ids).Scan(&rows).Error; err != nil {
		return CartResponse{}, err
	}
	products := make(map[uuid.UUID]productRow, len(rows))
	for _, row := range rows {
		products[row.ID] = row
	}

	for _, item := range c.Items() {
		p, ok := products[item.ProductID.Bytes()]
		if !ok {
			continue
		}
		lineTotal := kernel.RoundMoney(p.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
		resp.Items = append(resp.Items, CartItemResponse{
			ProductID: item.ProductID,
			Name:      p.Name,
			Price:     p.Price,
			Quantity:  item.Quantity,
			LineTotal: lineTotal,
			InStock:   p.StockQuantity >= item.Quantity,
		})
		resp.Subtotal = resp.Subtotal.Add(lineTotal)
	}

	return resp, nil
}
