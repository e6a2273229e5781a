package order

import (
	"time"

	"warehouse/internal/core/domain/model/kernel"
)

// EventType names an order lifecycle event on the wire.
type EventType string

const (
	EventPlaced          EventType = "order.placed"
	EventStatusChanged   EventType = "order.status_changed"
	EventClaimed         EventType = "order.claimed"
	EventDeliveryUpdated EventType = "order.delivery_updated"
)

// Event is raised by the Order aggregate and published after the unit of
// work that persisted the change commits.
type Event struct {
	ID         kernel.UUID
	Type       EventType
	OrderID    kernel.UUID
	CustomerID kernel.UUID
	Status     Status
	DriverID   *kernel.UUID
	Notes      string
	OccurredAt time.Time
}

func (o *Order) raise(eventType EventType, driverID *kernel.UUID, notes string, now time.Time) {
	o.events = append(o.events, Event{
		ID:         kernel.NewUUID(),
		Type:       eventType,
		OrderID:    o.id,
		CustomerID: o.customerID,
		Status:     o.status,
		DriverID:   driverID,
		Notes:      notes,
		OccurredAt: now,
	})
}

// PullEvents returns the pending events and clears them.
func (o *Order) PullEvents() []Event {
	events := o.events
	o.events = nil
	return events
}
