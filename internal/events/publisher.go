package events

import (
	"context"
	"encoding/json"
	"time"

	"roomly/pkg/config"
	"roomly/pkg/kafka"
	"roomly/pkg/model"
)

const (
	TypeBookingCreated = "booking.created"
	TypeBookingDeleted = "booking.deleted"
)

// BookingEvent is the payload published for booking lifecycle changes.
type BookingEvent struct {
	Type       string         `json:"type"`
	OccurredAt time.Time      `json:"occurredAt"`
	Booking    *model.Booking `json:"booking"`
}

// Publisher emits booking lifecycle events. Publishing is best-effort:
// the booking itself is already persisted when an event goes out.
type Publisher interface {
	BookingCreated(ctx context.Context, booking *model.Booking)
	BookingDeleted(ctx context.Context, booking *model.Booking)
	Close() error
}

type kafkaPublisher struct {
	producer *kafka.Producer
	cfg      *config.Config
}

// NewPublisher returns a Kafka-backed publisher, or a no-op one when no
// brokers are configured.
func NewPublisher(cfg *config.Config) Publisher {
	if len(cfg.KafkaBrokers) == 0 {
		cfg.Log.Info("Kafka brokers not configured, booking events disabled")
		return noopPublisher{}
	}

	producer, err := kafka.NewProducer(cfg.KafkaBrokers, cfg.KafkaEventsTopic)
	if err != nil {
		cfg.Log.Error("Failed to initialize Kafka producer, booking events disabled", "error", err)
		return noopPublisher{}
	}

	cfg.Log.Info("Booking event publisher initialized", "topic", cfg.KafkaEventsTopic)
	return &kafkaPublisher{
		producer: producer,
		cfg:      cfg,
	}
}

func (p *kafkaPublisher) BookingCreated(ctx context.Context, booking *model.Booking) {
	p.publish(ctx, TypeBookingCreated, booking)
}

func (p *kafkaPublisher) BookingDeleted(ctx context.Context, booking *model.Booking) {
	p.publish(ctx, TypeBookingDeleted, booking)
}

func (p *kafkaPublisher) publish(ctx context.Context, eventType string, booking *model.Booking) {
	event := BookingEvent{
		Type:       eventType,
		OccurredAt: time.Now().UTC(),
		Booking:    booking,
	}

	value, err := json.Marshal(event)
	if err != nil {
		p.cfg.Log.Error("Failed to encode booking event", "type", eventType, "error", err)
		return
	}

	msg := kafka.Message{
		Key:       booking.Resource,
		Value:     value,
		Timestamp: event.OccurredAt,
		Headers: map[string]string{
			"event_type": eventType,
		},
	}

	if err := p.producer.Publish(ctx, msg); err != nil {
		p.cfg.Log.Error("Failed to publish booking event",
			"type", eventType,
			"booking_id", booking.ID,
			"error", err,
		)
		return
	}

	p.cfg.Log.Debug("Booking event published", "type", eventType, "booking_id", booking.ID)
}

func (p *kafkaPublisher) Close() error {
	return p.producer.Close()
}

type noopPublisher struct{}

func (noopPublisher) BookingCreated(ctx context.Context, booking *model.Booking) {}

func (noopPublisher) BookingDeleted(ctx context.Context, booking *model.Booking) {}

func (noopPublisher) Close() error { return nil }
