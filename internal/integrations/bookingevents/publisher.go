package bookingevents

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/m04kA/SalonBookingService/internal/domain"
	"github.com/m04kA/SalonBookingService/pkg/metrics"
)

// MessageWriter is the part of *kafka.Writer the publisher needs.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Publisher sends booking lifecycle events to Kafka for the notification
// worker (confirmation and cancellation emails).
//
// Publishing is best effort: the booking is already committed when an event
// is sent, so failures are logged and counted but never returned to the caller.
type Publisher struct {
	writer  MessageWriter
	topic   string
	salon   Salon
	timeout time.Duration
	metrics *metrics.Metrics
	log     Logger
	now     func() time.Time
}

// writerBatchTimeout bounds how long a synchronous write waits for its batch to fill.
// Events are written one at a time from request handlers.
const writerBatchTimeout = 10 * time.Millisecond

// NewWriter builds a kafka-go writer keyed by booking id that flushes every message right away.
func NewWriter(brokers []string, topic string, timeout time.Duration) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		BatchSize:    1,
		BatchTimeout: writerBatchTimeout,
		WriteTimeout: timeout,
	}
}

func NewPublisher(writer MessageWriter, topic string, salon Salon, timeout time.Duration, m *metrics.Metrics, log Logger) *Publisher {
	return &Publisher{
		writer:  writer,
		topic:   topic,
		salon:   salon,
		timeout: timeout,
		metrics: m,
		log:     log,
		now:     time.Now,
	}
}

// BookingConfirmed announces a new booking. The payload carries the cancel token
// so the email can link to self-service cancellation.
func (p *Publisher) BookingConfirmed(ctx context.Context, booking *domain.Booking) {
	p.publish(ctx, EventBookingConfirmed, booking, "")
}

// BookingCancelled announces a cancellation; actor is "customer" or "admin".
func (p *Publisher) BookingCancelled(ctx context.Context, booking *domain.Booking, actor string) {
	p.publish(ctx, EventBookingCancelled, booking, actor)
}

// Close flushes and closes the underlying writer.
func (p *Publisher) Close() error {
	return p.writer.Close()
}

func (p *Publisher) publish(ctx context.Context, eventType string, booking *domain.Booking, actor string) {
	err := p.write(ctx, eventType, booking, actor)
	p.metrics.RecordEvent(eventType, err)
	if err != nil {
		p.log.Error("Failed to publish %s for booking %s: %v", eventType, booking.ID, err)
		return
	}
	p.log.Info("Published %s for booking %s", eventType, booking.ID)
}

func (p *Publisher) write(ctx context.Context, eventType string, booking *domain.Booking, actor string) error {
	payload, err := json.Marshal(newEvent(eventType, booking, p.salon, actor, p.now()))
	if err != nil {
		return fmt.Errorf("%w: marshal %s: %v", ErrPublish, eventType, err)
	}

	// The request may already be finishing; the event outlives it up to the timeout.
	writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), p.timeout)
	defer cancel()

	err = p.writer.WriteMessages(writeCtx, kafka.Message{
		Key:   []byte(booking.ID.String()),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(eventType)},
		},
	})
	if err != nil {
		return fmt.Errorf("%w: write %s: %v", ErrPublish, eventType, err)
	}
	return nil
}

// Noop is used when Kafka is disabled.
type Noop struct{}

func (Noop) BookingConfirmed(context.Context, *domain.Booking)         {}
func (Noop) BookingCancelled(context.Context, *domain.Booking, string) {}
