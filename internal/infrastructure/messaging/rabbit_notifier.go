package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/storefront/backend/internal/domain/order"
	"github.com/storefront/backend/internal/domain/shared"
)

// Queue names for order notifications
const (
	OrderCreatedQueue       = "order.created"
	OrderStatusChangedQueue = "order.status_changed"
)

// RabbitNotifier forwards order domain events to RabbitMQ as JSON messages.
// It subscribes to the in-process event bus, so a broker outage degrades to
// logged warnings and never touches the commit path.
type RabbitNotifier struct {
	conn   *amqp.Connection
	ch     *amqp.Channel
	logger *zap.Logger
}

// NewRabbitNotifier connects to RabbitMQ and declares the notification
// queues so publish never fails due to missing infra
func NewRabbitNotifier(url string, logger *zap.Logger) (*RabbitNotifier, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	for _, queue := range []string{OrderCreatedQueue, OrderStatusChangedQueue} {
		if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
			ch.Close()
			conn.Close()
			return nil, fmt.Errorf("declare %s: %w", queue, err)
		}
	}

	return &RabbitNotifier{
		conn:   conn,
		ch:     ch,
		logger: logger,
	}, nil
}

// Close closes the channel and connection
func (n *RabbitNotifier) Close() error {
	if err := n.ch.Close(); err != nil {
		n.conn.Close()
		return err
	}
	return n.conn.Close()
}

// EventTypes returns the event types this handler is interested in
func (n *RabbitNotifier) EventTypes() []string {
	return []string{order.EventTypeOrderCreated, order.EventTypeOrderStatusChanged}
}

// Handle serializes the event and publishes it to its queue
func (n *RabbitNotifier) Handle(ctx context.Context, event shared.DomainEvent) error {
	var queue string
	switch event.EventType() {
	case order.EventTypeOrderCreated:
		queue = OrderCreatedQueue
	case order.EventTypeOrderStatusChanged:
		queue = OrderStatusChangedQueue
	default:
		return nil
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", event.EventType(), err)
	}

	if err := n.publishJSON(ctx, queue, body); err != nil {
		return err
	}

	n.logger.Debug("order notification published",
		zap.String("queue", queue),
		zap.String("event_id", event.EventID().String()),
	)
	return nil
}

func (n *RabbitNotifier) publishJSON(ctx context.Context, queue string, body []byte) error {
	pubCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	return n.ch.PublishWithContext(
		pubCtx,
		"",    // default exchange
		queue, // queue name as routing key
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	)
}

var _ shared.EventHandler = (*RabbitNotifier)(nil)
