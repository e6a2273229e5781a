package ports

import (
	"context"

	"warehouse/internal/core/domain/model/order"
)

// EventPublisher delivers order events raised by committed transactions.
type EventPublisher interface {
	Publish(ctx context.Context, events ...order.Event) error
}
