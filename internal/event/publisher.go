// Package event announces quote lifecycle changes on RabbitMQ.
package event

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"go-quote-desk/internal/models"

	amqp "github.com/rabbitmq/amqp091-go"
)

const QuoteQueue = "quote_events"

const (
	QuoteCreated = "quote.created"
	QuoteUpdated = "quote.updated"
	QuoteDeleted = "quote.deleted"
)

// QuoteEvent is the message body published for every quote change.
type QuoteEvent struct {
	Type        string    `json:"type"`
	QuoteID     string    `json:"quote_id"`
	QuoteNumber string    `json:"quote_number"`
	TotalAmount float64   `json:"total_amount"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// NewQuoteEvent describes a change to q.
func NewQuoteEvent(kind string, q *models.Quote) QuoteEvent {
	return QuoteEvent{
		Type:        kind,
		QuoteID:     q.ID,
		QuoteNumber: q.QuoteNumber,
		TotalAmount: q.TotalAmount,
		OccurredAt:  time.Now().UTC(),
	}
}

type Publisher interface {
	Publish(ctx context.Context, e QuoteEvent) error
}

// Nop drops events; used when no broker is configured.
type Nop struct{}

func (Nop) Publish(context.Context, QuoteEvent) error { return nil }

// RabbitPublisher writes persistent JSON messages to the quote queue.
type RabbitPublisher struct {
	mu      sync.Mutex
	conn    *amqp.Connection
	channel *amqp.Channel
}

// NewRabbitPublisher dials the broker and declares the durable queue.
func NewRabbitPublisher(url string) (*RabbitPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}
	_, err = ch.QueueDeclare(
		QuoteQueue, // queue name
		true,       // durable
		false,      // delete when unused
		false,      // exclusive
		false,      // no-wait
		nil,        // arguments
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare queue: %w", err)
	}
	return &RabbitPublisher{conn: conn, channel: ch}, nil
}

func (p *RabbitPublisher) Publish(ctx context.Context, e QuoteEvent) error {
	body, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("failed to marshal quote event: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	err = p.channel.PublishWithContext(
		ctx,
		"",         // exchange
		QuoteQueue, // routing key (queue name)
		false,      // mandatory
		false,      // immediate
		amqp.Publishing{
			DeliveryMode: amqp.Persistent,
			ContentType:  "application/json",
			Body:         body,
			Timestamp:    e.OccurredAt,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish quote event: %w", err)
	}
	return nil
}

func (p *RabbitPublisher) Close() error {
	p.channel.Close()
	return p.conn.Close()
}

// Emit publishes without letting a broker failure affect the request.
func Emit(ctx context.Context, p Publisher, kind string, q *models.Quote) {
	if err := p.Publish(ctx, NewQuoteEvent(kind, q)); err != nil {
		log.Printf("⚠️ %s event for quote %s not published: %v", kind, q.ID, err)
	}
}
