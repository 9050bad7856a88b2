package interfaces

import "context"

// Message is one outbound ledger message. Key partitions the stream,
// typically by client id.
type Message struct {
	Key   string
	Event any
}

// EventPublisher sends outbound ledger messages as one batch.
type EventPublisher interface {
	Publish(ctx context.Context, msgs ...Message) error
}
