package eventbus

import (
	"context"
	"errors"

	"warehouse/internal/core/domain/model/order"
	"warehouse/internal/core/ports"
)

// Fanout publishes every batch to all publishers. One failing publisher
// does not stop the others; their errors are joined.
type Fanout struct {
	publishers []ports.EventPublisher
}

func NewFanout(publishers ...ports.EventPublisher) *Fanout {
	return &Fanout{publishers: publishers}
}

func (f *Fanout) Publish(ctx context.Context, events ...order.Event) error {
	if len(events) == 0 {
		return nil
	}

	var errList []error
	for _, publisher := range f.publishers {
		if err := publisher.Publish(ctx, events...); err != nil {
			errList = append(errList, err)
		}
	}
	return errors.Join(errList...)
}
