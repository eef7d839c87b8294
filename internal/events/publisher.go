package events

import (
	"context"
	"log/slog"
	"time"

	"github.com/EgehanKilicarslan/bookstore/internal/metrics"
	"github.com/EgehanKilicarslan/bookstore/internal/worker"
)

type noopPublisher struct {
	logger *slog.Logger
}

// NewNoopPublisher drops every event. Used when AMQP_URL is unset.
func NewNoopPublisher(logger *slog.Logger) Publisher {
	return &noopPublisher{logger: logger}
}

func (p *noopPublisher) Publish(ctx context.Context, routingKey string, payload any) error {
	p.logger.Debug("📭 [Events] Publishing disabled, dropping event", "routing_key", routingKey)
	return nil
}

func (p *noopPublisher) Close() error { return nil }

type asyncPublisher struct {
	next    Publisher
	pool    *worker.Pool
	timeout time.Duration
	metrics *metrics.Metrics
	logger  *slog.Logger
}

// NewAsyncPublisher hands each event to the worker pool so callers never
// wait on the broker. Failures are logged and counted, not returned.
func NewAsyncPublisher(next Publisher, pool *worker.Pool, timeout time.Duration, m *metrics.Metrics, logger *slog.Logger) Publisher {
	return &asyncPublisher{
		next:    next,
		pool:    pool,
		timeout: timeout,
		metrics: m,
		logger:  logger,
	}
}

func (p *asyncPublisher) Publish(_ context.Context, routingKey string, payload any) error {
	err := p.pool.SubmitWithTimeout(p.timeout, func(ctx context.Context) {
		// The pool context is already cancelled during shutdown; still try to
		// deliver within the timeout.
		sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), p.timeout)
		defer cancel()

		if err := p.next.Publish(sendCtx, routingKey, payload); err != nil {
			p.metrics.EventPublishFailed(routingKey)
			p.logger.Error("❌ [Events] Failed to publish event", "routing_key", routingKey, "error", err)
		}
	})
	if err != nil {
		p.metrics.EventPublishFailed(routingKey)
		p.logger.Warn("⚠️ [Events] Worker pool closed, dropping event", "routing_key", routingKey)
	}
	return nil
}

func (p *asyncPublisher) Close() error {
	return p.next.Close()
}
