package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-kafka/v2/pkg/kafka"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// WatermillPublisher adapts a watermill message.Publisher to the domain
// Publisher interface, marshalling payloads as JSON.
type WatermillPublisher struct {
	publisher message.Publisher
}

// NewGoChannelPublisher builds an in-process publisher. Used when no broker
// is configured; events stay inside the process.
func NewGoChannelPublisher(logger *slog.Logger) *WatermillPublisher {
	pub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NewSlogLogger(logger))
	return &WatermillPublisher{publisher: pub}
}

// NewKafkaPublisher builds a Kafka-backed publisher for the given brokers.
func NewKafkaPublisher(brokers []string, logger *slog.Logger) (*WatermillPublisher, error) {
	pub, err := kafka.NewPublisher(kafka.PublisherConfig{
		Brokers:   brokers,
		Marshaler: kafka.DefaultMarshaler{},
	}, watermill.NewSlogLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("create kafka publisher: %w", err)
	}
	return &WatermillPublisher{publisher: pub}, nil
}

func (p *WatermillPublisher) Publish(ctx context.Context, topic string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal event payload: %w", err)
	}

	msg := message.NewMessage(watermill.NewUUID(), data)
	msg.SetContext(ctx)
	return p.publisher.Publish(topic, msg)
}

func (p *WatermillPublisher) Close() error {
	return p.publisher.Close()
}
