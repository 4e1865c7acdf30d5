package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/nebulaeats/nebula/internal/domain/model"
)

const exchangeName = "orders.status"

// Broker is the AMQP-backed order status feed. Every status write is
// published to a topic exchange keyed by order id; trackers bind a
// transient queue per subscription. Reconnection after a dropped
// connection is the client library's concern, not handled here.
type Broker struct {
	conn   *amqp.Connection
	logger *slog.Logger

	mu      sync.Mutex
	pubChan *amqp.Channel
}

// Dial connects to the broker and declares the status exchange.
func Dial(url string, logger *slog.Logger) (*Broker, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("connect amqp: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	if err := ch.ExchangeDeclare(exchangeName, "topic", true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}

	return &Broker{conn: conn, logger: logger, pubChan: ch}, nil
}

// Close releases the connection and all channels.
func (b *Broker) Close() error {
	if b.conn == nil {
		return nil
	}
	return b.conn.Close()
}

func routingKey(orderID string) string {
	return "order." + orderID
}

// PublishStatus emits the new status for an order.
func (b *Broker) PublishStatus(ctx context.Context, ev model.StatusEvent) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("encode status event: %w", err)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	err = b.pubChan.PublishWithContext(ctx, exchangeName, routingKey(ev.OrderID), false, false, amqp.Publishing{
		ContentType: "application/json",
		Timestamp:   ev.OccurredAt,
		Body:        body,
	})
	if err != nil {
		return fmt.Errorf("publish status event: %w", err)
	}
	return nil
}

// Subscribe opens a feed of status events for one order. The returned
// channel is closed when ctx is cancelled or the delivery stream ends;
// cancelling ctx also tears the underlying queue down.
func (b *Broker) Subscribe(ctx context.Context, orderID string) (<-chan model.StatusEvent, error) {
	ch, err := b.conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("open channel: %w", err)
	}

	queue, err := ch.QueueDeclare("", false, true, true, false, nil)
	if err != nil {
		ch.Close()
		return nil, fmt.Errorf("declare queue: %w", err)
	}

	if err := ch.QueueBind(queue.Name, routingKey(orderID), exchangeName, false, nil); err != nil {
		ch.Close()
		return nil, fmt.Errorf("bind queue: %w", err)
	}

	deliveries, err := ch.Consume(queue.Name, "", true, true, false, false, nil)
	if err != nil {
		ch.Close()
		return nil, fmt.Errorf("consume queue: %w", err)
	}

	out := make(chan model.StatusEvent)
	go func() {
		defer close(out)
		defer ch.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case delivery, ok := <-deliveries:
				if !ok {
					return
				}
				var ev model.StatusEvent
				if err := json.Unmarshal(delivery.Body, &ev); err != nil {
					b.logger.Error("drop malformed status event",
						slog.String("order", orderID),
						slog.String("error", err.Error()))
					continue
				}
				select {
				case out <- ev:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}
