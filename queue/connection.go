package queue

import (
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

type Connection struct {
	Conn *amqp.Connection
	Ch   *amqp.Channel
}

// NewConnection dials the broker, opens a channel and declares the
// configured exchange.
func NewConnection(config ConnectionConfig) (*Connection, error) {
	conn, err := amqp.Dial(config.URI)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	if ex := config.Exchange; ex.Name != "" {
		kind := ex.Kind
		if kind == "" {
			kind = ExchangeTypeTopic
		}
		if err := ch.ExchangeDeclare(
			ex.Name,
			string(kind),
			ex.Durable,
			false, // auto-delete
			false, // internal
			false, // no-wait
			nil,
		); err != nil {
			_ = conn.Close()
			return nil, fmt.Errorf("failed to declare exchange %s: %w", ex.Name, err)
		}
	}

	return &Connection{conn, ch}, nil
}

// Publisher returns a publisher bound to this connection's channel.
func (c *Connection) Publisher(config PublishConfig) Publisher {
	return NewPublisher(c.Ch, config)
}

func (c *Connection) Close() error {
	return c.Conn.Close()
}
