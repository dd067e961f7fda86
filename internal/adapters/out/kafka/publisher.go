// Package kafka publishes order lifecycle events to a Kafka topic.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"marketplace/internal/core/ports"

	"github.com/IBM/sarama"
)

// OrderChangedPublisher implements OrderEventPublisher on top of a sarama
// synchronous producer. Events are keyed by order ID so all changes of one
// order land on the same partition, in order.
type OrderChangedPublisher struct {
	producer sarama.SyncProducer
	topic    string
}

// NewOrderChangedPublisher connects a synchronous producer to the given
// brokers. The producer waits for acknowledgement from all in-sync replicas
// before reporting success.
func NewOrderChangedPublisher(brokers string, topic string) (*OrderChangedPublisher, error) {
	if topic == "" {
		return nil, fmt.Errorf("kafka topic is required")
	}

	config := sarama.NewConfig()
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Retry.Max = 5
	config.Producer.Retry.Backoff = 100 * time.Millisecond
	config.Producer.Return.Successes = true
	config.Net.DialTimeout = 30 * time.Second
	config.Net.ReadTimeout = 30 * time.Second
	config.Net.WriteTimeout = 30 * time.Second

	producer, err := sarama.NewSyncProducer(strings.Split(brokers, ","), config)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}

	return &OrderChangedPublisher{producer: producer, topic: topic}, nil
}

// PublishOrderChanged sends one event to the order-changed topic.
func (p *OrderChangedPublisher) PublishOrderChanged(_ context.Context, event ports.OrderChangedEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode order changed event: %w", err)
	}

	_, _, err = p.producer.SendMessage(&sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(event.OrderID),
		Value: sarama.ByteEncoder(payload),
	})
	if err != nil {
		return fmt.Errorf("failed to publish order changed event: %w", err)
	}

	return nil
}

// Close shuts down the underlying producer.
func (p *OrderChangedPublisher) Close() error {
	return p.producer.Close()
}
