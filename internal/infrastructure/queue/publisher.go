package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"

	"github.com/Jhonatan-05/backen-Maria/internal/api/metrics"
	"github.com/Jhonatan-05/backen-Maria/internal/core/domain"
)

// DefaultQueue is the durable queue booking events are published to.
const DefaultQueue = "booking.events"

// Publisher implements ports.EventPublisher over RabbitMQ. The connection is
// opened lazily and reopened after a failure.
type Publisher struct {
	url   string
	queue string
	log   zerolog.Logger

	mu   sync.Mutex
	conn *amqp.Connection
	ch   *amqp.Channel
}

func NewPublisher(url, queue string, log zerolog.Logger) *Publisher {
	if queue == "" {
		queue = DefaultQueue
	}
	return &Publisher{url: url, queue: queue, log: log}
}

// Publish sends event as a persistent JSON message on the default exchange
// routed to the booking queue.
func (p *Publisher) Publish(ctx context.Context, event domain.BookingEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal booking event: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	ch, err := p.channel()
	if err != nil {
		metrics.AuditPublishErrorsTotal.Inc()
		return err
	}

	err = ch.PublishWithContext(ctx, "", p.queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    event.ID,
		Timestamp:    time.Now().UTC(),
		Type:         string(event.Aggregate) + "." + string(event.Action),
		Body:         body,
	})
	if err != nil {
		metrics.AuditPublishErrorsTotal.Inc()
		_ = p.reset()
		return fmt.Errorf("publish booking event: %w", err)
	}
	return nil
}

// Close releases the broker connection.
func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.reset()
}

// channel returns an open channel, dialing and declaring the queue when
// needed. Callers hold p.mu.
func (p *Publisher) channel() (*amqp.Channel, error) {
	if p.ch != nil && !p.ch.IsClosed() {
		return p.ch, nil
	}
	_ = p.reset()

	conn, err := amqp.Dial(p.url)
	if err != nil {
		return nil, fmt.Errorf("rabbitmq dial: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("rabbitmq channel: %w", err)
	}
	if _, err := ch.QueueDeclare(p.queue, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("rabbitmq queue declare: %w", err)
	}

	p.conn, p.ch = conn, ch
	p.log.Info().Str("queue", p.queue).Msg("rabbitmq publisher connected")
	return ch, nil
}

func (p *Publisher) reset() error {
	var err error
	if p.ch != nil {
		_ = p.ch.Close()
		p.ch = nil
	}
	if p.conn != nil {
		err = p.conn.Close()
		p.conn = nil
	}
	return err
}

// NopPublisher drops every event. It stands in when no broker is configured.
type NopPublisher struct {
	Log zerolog.Logger
}

func (n NopPublisher) Publish(_ context.Context, event domain.BookingEvent) error {
	n.Log.Debug().Str("event_id", event.ID).Str("codigo", event.Code).Msg("booking event dropped, no broker configured")
	return nil
}
