package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/blog-api/errs"
	"github.com/rpupo63/blog-api/models"
)

const (
	ExchangeName = "blog.events"
	RoutingKey   = TypePostPublished
)

var ErrNotifierClosed = errors.New("notifier closed")

// RabbitMQNotifier publishes post events to a durable topic exchange.
type RabbitMQNotifier struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	mu      sync.Mutex
	once    sync.Once
}

func NewRabbitMQNotifier(url string) (*RabbitMQNotifier, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, errs.NewServiceUnreachableError("rabbitmq", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	if err := ch.ExchangeDeclare(ExchangeName, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}

	log.Info().Str("exchange", ExchangeName).Msg("publish notifications enabled")
	return &RabbitMQNotifier{conn: conn, channel: ch}, nil
}

func (n *RabbitMQNotifier) PostPublished(ctx context.Context, post models.BlogPost) error {
	msg, err := newPublishing(NewPostPublishedEvent(post))
	if err != nil {
		return err
	}

	n.mu.Lock()
	defer n.mu.Unlock()
	if n.channel == nil {
		return ErrNotifierClosed
	}
	if err := n.channel.PublishWithContext(ctx, ExchangeName, RoutingKey, false, false, msg); err != nil {
		return errs.NewPublishError(ExchangeName, RoutingKey, err)
	}
	return nil
}

func newPublishing(e PostPublishedEvent) (amqp.Publishing, error) {
	body, err := json.Marshal(e)
	if err != nil {
		return amqp.Publishing{}, errs.NewJSONMarshalError("post published event", err)
	}
	return amqp.Publishing{
		ContentType:  "application/json",
		MessageId:    e.ID.String(),
		Timestamp:    e.Timestamp,
		Type:         e.Type,
		Body:         body,
		DeliveryMode: amqp.Persistent,
	}, nil
}

func (n *RabbitMQNotifier) Close() error {
	var err error
	n.once.Do(func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		if n.channel != nil {
			err = n.channel.Close()
			n.channel = nil
		}
		if n.conn != nil {
			if closeErr := n.conn.Close(); closeErr != nil && err == nil {
				err = closeErr
			}
			n.conn = nil
		}
	})
	return err
}

var _ Notifier = (*RabbitMQNotifier)(nil)
