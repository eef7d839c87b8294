package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// DefaultExchange is the durable topic exchange all events go to.
const DefaultExchange = "bookstore.events"

// brokerConn and brokerChannel are the parts of amqp091 the publisher uses.
type brokerConn interface {
	IsClosed() bool
	Close() error
	openChannel() (brokerChannel, error)
}

type brokerChannel interface {
	IsClosed() bool
	Close() error
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

type amqpConn struct {
	*amqp.Connection
}

func (c amqpConn) openChannel() (brokerChannel, error) {
	ch, err := c.Channel()
	if err != nil {
		return nil, err
	}
	return ch, nil
}

func dialAMQP(url string) (brokerConn, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}
	return amqpConn{conn}, nil
}

type amqpPublisher struct {
	url      string
	exchange string
	dial     func(url string) (brokerConn, error)
	logger   *slog.Logger

	mu   sync.Mutex
	conn brokerConn
	ch   brokerChannel
}

// NewAMQPPublisher dials the broker and declares the exchange. A dropped
// channel is reopened on the live connection; a dropped connection is
// replaced.
func NewAMQPPublisher(url, exchange string, logger *slog.Logger) (Publisher, error) {
	return newAMQPPublisher(url, exchange, dialAMQP, logger)
}

func newAMQPPublisher(url, exchange string, dial func(string) (brokerConn, error), logger *slog.Logger) (*amqpPublisher, error) {
	if exchange == "" {
		exchange = DefaultExchange
	}
	p := &amqpPublisher{url: url, exchange: exchange, dial: dial, logger: logger}

	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.ensureChannelLocked(); err != nil {
		return nil, err
	}

	logger.Info("✅ [Events] Connected to RabbitMQ", "exchange", exchange)
	return p, nil
}

// ensureChannelLocked leaves p with an open connection and channel.
func (p *amqpPublisher) ensureChannelLocked() error {
	if p.conn != nil && !p.conn.IsClosed() {
		if p.ch != nil && !p.ch.IsClosed() {
			return nil
		}
		p.logger.Warn("⚠️ [Events] Channel closed, reopening...")
		return p.openChannelLocked()
	}

	if p.conn != nil {
		p.logger.Warn("⚠️ [Events] Connection lost, reconnecting...")
		_ = p.conn.Close()
		p.conn, p.ch = nil, nil
	}

	conn, err := p.dial(p.url)
	if err != nil {
		return fmt.Errorf("rabbitmq dial: %w", err)
	}
	p.conn = conn

	if err := p.openChannelLocked(); err != nil {
		_ = conn.Close()
		p.conn = nil
		return err
	}
	return nil
}

func (p *amqpPublisher) openChannelLocked() error {
	ch, err := p.conn.openChannel()
	if err != nil {
		return fmt.Errorf("rabbitmq channel: %w", err)
	}

	if err := ch.ExchangeDeclare(
		p.exchange, // name
		"topic",    // kind
		true,       // durable
		false,      // autoDelete
		false,      // internal
		false,      // noWait
		nil,        // args
	); err != nil {
		_ = ch.Close()
		return fmt.Errorf("rabbitmq exchange declare: %w", err)
	}

	p.ch = ch
	return nil
}

func (p *amqpPublisher) Publish(ctx context.Context, routingKey string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", routingKey, err)
	}

	// amqp channels are not safe for concurrent publishing.
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.ensureChannelLocked(); err != nil {
		return err
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Type:         routingKey,
		Body:         body,
	}

	if err := p.ch.PublishWithContext(ctx, p.exchange, routingKey, false, false, msg); err != nil {
		return fmt.Errorf("rabbitmq publish %s: %w", routingKey, err)
	}

	p.logger.Debug("📤 [Events] Published", "routing_key", routingKey, "bytes", len(body))
	return nil
}

func (p *amqpPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil && !p.conn.IsClosed() {
		return p.conn.Close()
	}
	return nil
}
