package queries

import (
	"context"
	"time"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GetDriversQueryHandler struct {
	db *gorm.DB
}

func NewGetDriversQueryHandler(db *gorm.DB) GetDriversQueryHandler {
	return GetDriversQueryHandler{db: db}
}

// Handle returns drivers ordered by most recent status change.
func (h GetDriversQueryHandler) Handle(ctx context.Context, query GetDriversQuery) ([]GetDriversQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	drivers := make([]GetDriversQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			d.id,
			d.user_id,
			d.status,
			d.active_time,
			d.last_updated,
			(
				SELECT COUNT(*)
				FROM order_assignments a
				WHERE a.driver_id = d.id AND a.delivery_status = ?
			) AS active_orders
		FROM drivers d
		ORDER BY d.last_updated DESC, d.id
	`, order.DeliveryOutForDelivery.String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id, userID   uuid.UUID
			status       string
			activeTime   int64
			lastUpdated  time.Time
			activeOrders int64
		)
		if err = rows.Scan(&id, &userID, &status, &activeTime, &lastUpdated, &activeOrders); err != nil {
			return nil, err
		}

		driverID, idErr := kernel.UUIDFromGoogle(id)
		if idErr != nil {
			return nil, idErr
		}
		driverUserID, idErr := kernel.UUIDFromGoogle(userID)
		if idErr != nil {
			return nil, idErr
		}

		drivers = append(drivers, GetDriversQueryResponse{
			ID:           driverID,
			UserID:       driverUserID,
			Status:       status,
			ActiveTime:   time.Duration(activeTime),
			LastUpdated:  lastUpdated,
			ActiveOrders: activeOrders,
		})
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return drivers, nil
}
