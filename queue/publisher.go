package queue

import (
	"context"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/octabyte/clinic-portal/otel"
)

type Publisher interface {
	Publish(ctx context.Context, body []byte) error
	Close() error
}

// channel is the part of *amqp.Channel the publisher needs.
type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

type publisher struct {
	ch     channel
	config PublishConfig
}

func NewPublisher(ch *amqp.Channel, config PublishConfig) Publisher {
	return &publisher{ch, config}
}

// Publish publishes a message to the configured exchange and routing key.
// The caller's trace context travels in the message headers.
func (p *publisher) Publish(ctx context.Context, body []byte) error {
	headers := amqp.Table{}
	for k, v := range otel.InjectTraceHeaders(ctx, nil) {
		headers[k] = v
	}

	message := amqp.Publishing{
		Headers:      headers,
		ContentType:  p.config.ContentType,
		Body:         body,
		DeliveryMode: p.config.DeliveryMode,
	}

	return p.ch.PublishWithContext(
		ctx,
		p.config.Exchange,
		p.config.RoutingKey,
		false, // mandatory
		false, // immediate
		message,
	)
}

func (p *publisher) Close() error {
	return p.ch.Close()
}

// NopPublisher drops every message. It stands in when no broker is
// configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, []byte) error { return nil }

func (NopPublisher) Close() error { return nil }
