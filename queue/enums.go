package queue

type ExchangeType string

const (
	ExchangeTypeDirect ExchangeType = "direct" // Exact routing key match
	ExchangeTypeTopic  ExchangeType = "topic"  // Pattern routing, e.g. appointments.*
	ExchangeTypeFanout ExchangeType = "fanout" // Every bound queue gets a copy
)
