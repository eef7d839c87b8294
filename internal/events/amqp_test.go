package events

import (
	"context"
	"errors"
	"testing"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EgehanKilicarslan/bookstore/internal/logger"
)

// ==================== TEST DOUBLES ====================

type fakeChannel struct {
	closed    bool
	published []string
}

func (c *fakeChannel) IsClosed() bool { return c.closed }

func (c *fakeChannel) Close() error {
	c.closed = true
	return nil
}

func (c *fakeChannel) ExchangeDeclare(string, string, bool, bool, bool, bool, amqp.Table) error {
	return nil
}

func (c *fakeChannel) PublishWithContext(_ context.Context, _, key string, _, _ bool, _ amqp.Publishing) error {
	c.published = append(c.published, key)
	return nil
}

type fakeConn struct {
	closed     bool
	closeCalls int
	channels   []*fakeChannel
}

func (c *fakeConn) IsClosed() bool { return c.closed }

func (c *fakeConn) Close() error {
	c.closeCalls++
	if c.closed {
		return amqp.ErrClosed
	}
	c.closed = true
	return nil
}

func (c *fakeConn) openChannel() (brokerChannel, error) {
	if c.closed {
		return nil, amqp.ErrClosed
	}
	ch := &fakeChannel{}
	c.channels = append(c.channels, ch)
	return ch, nil
}

type fakeBroker struct {
	conns   []*fakeConn
	failing bool
}

func (b *fakeBroker) dial(string) (brokerConn, error) {
	if b.failing {
		return nil, errors.New("connection refused")
	}
	conn := &fakeConn{}
	b.conns = append(b.conns, conn)
	return conn, nil
}

func newTestPublisher(t *testing.T, broker *fakeBroker) *amqpPublisher {
	t.Helper()
	p, err := newAMQPPublisher("amqp://test", "", broker.dial, logger.Discard())
	require.NoError(t, err)
	return p
}

// ==================== RECONNECT TESTS ====================

func TestAMQPPublisher_ReopensChannelOnLiveConnection(t *testing.T) {
	broker := &fakeBroker{}
	p := newTestPublisher(t, broker)
	require.Len(t, broker.conns, 1)
	conn := broker.conns[0]

	conn.channels[0].closed = true

	require.NoError(t, p.Publish(context.Background(), OrderCreatedKey, map[string]int{"order_id": 1}))

	assert.Len(t, broker.conns, 1, "a closed channel must not dial a new connection")
	assert.Zero(t, conn.closeCalls)
	require.Len(t, conn.channels, 2)
	assert.Equal(t, []string{OrderCreatedKey}, conn.channels[1].published)
}

func TestAMQPPublisher_ReplacesDeadConnection(t *testing.T) {
	broker := &fakeBroker{}
	p := newTestPublisher(t, broker)
	old := broker.conns[0]

	old.closed = true

	require.NoError(t, p.Publish(context.Background(), OrderStatusChangedKey, map[string]int{"order_id": 1}))

	require.Len(t, broker.conns, 2)
	assert.Equal(t, 1, old.closeCalls, "the stale connection is released before redialling")
	assert.Equal(t, []string{OrderStatusChangedKey}, broker.conns[1].channels[0].published)
}

func TestAMQPPublisher_DialFailure(t *testing.T) {
	broker := &fakeBroker{}
	p := newTestPublisher(t, broker)

	broker.conns[0].closed = true
	broker.failing = true

	err := p.Publish(context.Background(), OrderCreatedKey, map[string]int{"order_id": 1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rabbitmq dial")

	// The next publish after the broker returns recovers.
	broker.failing = false
	require.NoError(t, p.Publish(context.Background(), OrderCreatedKey, map[string]int{"order_id": 2}))
	assert.Len(t, broker.conns, 2)
}

func TestAMQPPublisher_Close(t *testing.T) {
	broker := &fakeBroker{}
	p := newTestPublisher(t, broker)

	require.NoError(t, p.Close())
	assert.True(t, broker.conns[0].channels[0].closed)
	assert.True(t, broker.conns[0].closed)
}
