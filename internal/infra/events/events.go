// Package events publishes domain events to RabbitMQ. Publishing is best
// effort: callers log failures and carry on.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const QueueBookingConfirmed = "booking.confirmed"

type BookingConfirmed struct {
	BookingID    string    `json:"bookingId"`
	MaterialID   string    `json:"materialId"`
	MaterialName string    `json:"materialName"`
	BookingDates []string  `json:"bookingDates"`
	Total        float64   `json:"total"`
	Source       string    `json:"source"`
	ConfirmedAt  time.Time `json:"confirmedAt"`
}

type Publisher interface {
	PublishBookingConfirmed(ctx context.Context, ev BookingConfirmed) error
}

// AMQPPublisher dials the broker for every event. Volume is a handful of
// bookings a day, so there is no connection to keep healthy.
type AMQPPublisher struct {
	url string
}

func NewAMQPPublisher(url string) *AMQPPublisher {
	return &AMQPPublisher{url: url}
}

func (p *AMQPPublisher) PublishBookingConfirmed(ctx context.Context, ev BookingConfirmed) error {
	conn, err := amqp.Dial(p.url)
	if err != nil {
		return fmt.Errorf("rabbitmq: dial: %w", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("rabbitmq: channel: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(
		QueueBookingConfirmed,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,
	); err != nil {
		return fmt.Errorf("rabbitmq: queue declare: %w", err)
	}

	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("rabbitmq: marshal: %w", err)
	}

	if err := ch.PublishWithContext(ctx,
		"", // default exchange
		QueueBookingConfirmed,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now().UTC(),
			Body:         body,
		},
	); err != nil {
		return fmt.Errorf("rabbitmq: publish: %w", err)
	}
	return nil
}

type Noop struct{}

func (Noop) PublishBookingConfirmed(context.Context, BookingConfirmed) error { return nil }

// Recorder keeps published events in memory.
type Recorder struct {
	mu     sync.Mutex
	events []BookingConfirmed
}

func (r *Recorder) PublishBookingConfirmed(_ context.Context, ev BookingConfirmed) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
	return nil
}

func (r *Recorder) Events() []BookingConfirmed {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]BookingConfirmed, len(r.events))
	copy(out, r.events)
	return out
}
