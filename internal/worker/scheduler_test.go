package worker_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EgehanKilicarslan/bookstore/internal/logger"
	"github.com/EgehanKilicarslan/bookstore/internal/worker"
)

type fakePurger struct {
	removed int64
	err     error
	calls   int32
}

func (f *fakePurger) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	atomic.AddInt32(&f.calls, 1)
	return f.removed, f.err
}

func TestScheduler_RejectsBadSpec(t *testing.T) {
	s := worker.NewScheduler(logger.Discard())

	err := s.Register("broken", "not a cron spec", time.Second, func(ctx context.Context) error { return nil })
	assert.Error(t, err)
}

func TestScheduler_RunsRegisteredJob(t *testing.T) {
	s := worker.NewScheduler(logger.Discard())

	fired := make(chan struct{}, 1)
	require.NoError(t, s.Register("tick", "@every 1s", time.Second, func(ctx context.Context) error {
		select {
		case fired <- struct{}{}:
		default:
		}
		return nil
	}))

	s.Start()
	defer s.Stop(time.Second)

	select {
	case <-fired:
	case <-time.After(3 * time.Second):
		t.Fatal("job did not fire")
	}
}

func TestRevocationSweepJob(t *testing.T) {
	purger := &fakePurger{removed: 3}
	job := worker.RevocationSweepJob(purger, nil, logger.Discard())

	require.NoError(t, job(context.Background()))
	assert.Equal(t, int32(1), atomic.LoadInt32(&purger.calls))

	failing := &fakePurger{err: errors.New("db down")}
	err := worker.RevocationSweepJob(failing, nil, logger.Discard())(context.Background())
	assert.EqualError(t, err, "db down")
}
