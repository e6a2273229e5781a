package queries

import (
	"context"

	"gorm.io/gorm"
)

type GetDriverOrdersQueryHandler struct {
	db *gorm.DB
}

func NewGetDriverOrdersQueryHandler(db *gorm.DB) GetDriverOrdersQueryHandler {
	return GetDriverOrdersQueryHandler{db: db}
}

func (h GetDriverOrdersQueryHandler) Handle(ctx context.Context, query GetDriverOrdersQuery) ([]OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	return findOrders(ctx, h.db,
		"a.driver_id IN (SELECT id FROM drivers WHERE user_id = ?)",
		"a.assigned_at DESC, o.id",
		query.DriverUserID().Bytes(),
	)
}
