// Package kafka publishes order lifecycle events to Kafka.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"warehouse/internal/adapters/out/eventbus"
	"warehouse/internal/core/domain/model/order"

	"github.com/IBM/sarama"
)

// OrderChangedProducer writes one message per order event, keyed by order
// id so all events of an order land on the same partition in order.
type OrderChangedProducer struct {
	producer sarama.SyncProducer
	topic    string
	logger   *slog.Logger
}

// NewOrderChangedProducer connects a synchronous producer to brokers.
func NewOrderChangedProducer(brokers []string, topic string, logger *slog.Logger) (*OrderChangedProducer, error) {
	config := sarama.NewConfig()
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Retry.Max = 5
	config.Producer.Return.Successes = true
	config.Version = sarama.V2_6_0_0

	producer, err := sarama.NewSyncProducer(brokers, config)
	if err != nil {
		return nil, fmt.Errorf("create kafka producer: %w", err)
	}
	return NewOrderChangedProducerWithClient(producer, topic, logger), nil
}

// NewOrderChangedProducerWithClient wraps an existing producer.
func NewOrderChangedProducerWithClient(producer sarama.SyncProducer, topic string, logger *slog.Logger) *OrderChangedProducer {
	return &OrderChangedProducer{
		producer: producer,
		topic:    topic,
		logger:   logger.With("component", "kafka_order_changed_producer"),
	}
}

// Publish sends every event and stops at the first failure.
func (p *OrderChangedProducer) Publish(ctx context.Context, events ...order.Event) error {
	for _, event := range events {
		if err := ctx.Err(); err != nil {
			return err
		}

		data, err := json.Marshal(eventbus.NewOrderEventPayload(event))
		if err != nil {
			return fmt.Errorf("marshal %s event: %w", event.Type, err)
		}

		msg := &sarama.ProducerMessage{
			Topic: p.topic,
			Key:   sarama.StringEncoder(event.OrderID.String()),
			Value: sarama.ByteEncoder(data),
			Headers: []sarama.RecordHeader{
				{Key: []byte("event_type"), Value: []byte(event.Type)},
			},
		}

		partition, offset, err := p.producer.SendMessage(msg)
		if err != nil {
			return fmt.Errorf("send %s event for order %s: %w", event.Type, event.OrderID, err)
		}

		p.logger.DebugContext(ctx, "order event published",
			"topic", p.topic,
			"partition", partition,
			"offset", offset,
			"order_id", event.OrderID.String(),
			"type", string(event.Type),
		)
	}
	return nil
}

func (p *OrderChangedProducer) Close() error {
	return p.producer.Close()
}
