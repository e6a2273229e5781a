package queries

import (
	"context"
	"strings"

	"gorm.io/gorm"
)

type GetOrdersQueryHandler struct {
	db *gorm.DB
}

func NewGetOrdersQueryHandler(db *gorm.DB) GetOrdersQueryHandler {
	return GetOrdersQueryHandler{db: db}
}

func (h GetOrdersQueryHandler) Handle(ctx context.Context, query GetOrdersQuery) ([]OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var (
		conditions []string
		args       []any
	)
	if status := query.Status(); status != nil {
		conditions = append(conditions, "o.status = ?")
		args = append(args, status.String())
	}
	if customerID := query.CustomerID(); customerID != nil {
		conditions = append(conditions, "o.customer_id = ?")
		args = append(args, customerID.Bytes())
	}

	return findOrders(ctx, h.db, strings.Join(conditions, " AND "), "o.created_at DESC, o.id", args...)
}
