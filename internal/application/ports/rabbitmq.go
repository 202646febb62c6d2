package ports

import (
	"context"

	"github.com/rabbitmq/amqp091-go"

	"attachments-api/internal/infrastructure/mq"
)

// EventSink is the producer side of the publisher.
type EventSink interface {
	GetInputChan() chan mq.Event
}

type RabbitMQ interface {
	EventSink
	Connect(ctx context.Context, dsn string) error
	Init() error
	PublisherWorker(ctx context.Context)
	GetConn() *amqp091.Connection
}
