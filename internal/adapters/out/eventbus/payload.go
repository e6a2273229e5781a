// Package eventbus defines the wire format of order events and fans them
// out to every configured publisher.
package eventbus

import (
	"time"

	"warehouse/internal/core/domain/model/order"
)

// OrderEventPayload is the JSON shape of an order event on Kafka and on the
// live WebSocket feed.
type OrderEventPayload struct {
	EventID    string    `json:"event_id"`
	Type       string    `json:"type"`
	OrderID    string    `json:"order_id"`
	CustomerID string    `json:"customer_id"`
	Status     string    `json:"status"`
	DriverID   *string   `json:"driver_id,omitempty"`
	Notes      string    `json:"notes,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

func NewOrderEventPayload(event order.Event) OrderEventPayload {
	payload := OrderEventPayload{
		EventID:    event.ID.String(),
		Type:       string(event.Type),
		OrderID:    event.OrderID.String(),
		CustomerID: event.CustomerID.String(),
		Status:     event.Status.String(),
		Notes:      event.Notes,
		OccurredAt: event.OccurredAt.UTC(),
	}
	if event.DriverID != nil {
		driverID := event.DriverID.String()
		payload.DriverID = &driverID
	}
	return payload
}
