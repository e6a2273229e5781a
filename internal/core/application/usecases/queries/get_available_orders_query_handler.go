package queries

import (
	"context"

	"warehouse/internal/core/domain/model/order"

	"gorm.io/gorm"
)

type GetAvailableOrdersQueryHandler struct {
	db *gorm.DB
}

func NewGetAvailableOrdersQueryHandler(db *gorm.DB) GetAvailableOrdersQueryHandler {
	return GetAvailableOrdersQueryHandler{db: db}
}

func (h GetAvailableOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetAvailableOrdersQuery,
) ([]OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	return findOrders(ctx, h.db,
		"o.status = ? AND a.order_id IS NULL",
		"o.created_at, o.id",
		order.ReadyForPickup.String(),
	)
}
