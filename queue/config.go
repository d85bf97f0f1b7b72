package queue

type ConnectionConfig struct {
	// URI: The RabbitMQ connection URI, which includes the address, port, and authentication credentials if necessary
	URI string
	// Exchange: The exchange declared on connect. Leave Name empty to publish to the default exchange.
	Exchange ExchangeConfig
}

type ExchangeConfig struct {
	// Name: The name of the exchange booking notifications are published to.
	Name string
	// Kind: The exchange type, see ExchangeType.
	Kind ExchangeType
	// Durable: Indicates whether the exchange survives a broker restart.
	Durable bool
}

type PublishConfig struct {
	// Exchange: The name of the exchange to be used for message publishing.
	Exchange string
	// RoutingKey: The routing key to be used for message publishing.
	RoutingKey string
	// ContentType: The content type of the message to be published.
	// Booking notifications are always "application/json".
	ContentType string
	// DeliveryMode: The delivery mode of the message to be published.
	// 1 = transient
	// 2 = persistent
	DeliveryMode uint8
}

// See https://www.rabbitmq.com/tutorials/amqp-concepts-tutorial.html
