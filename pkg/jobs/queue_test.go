package jobs

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueueRunsJobs(t *testing.T) {
	done := make(chan Job, 1)
	q := NewQueue("test", func(ctx context.Context, job Job) error {
		done <- job
		return nil
	}, QueueConfig{Workers: 2})

	require.Error(t, q.Enqueue(Job{Key: "early"}))

	q.Start(context.Background())
	defer q.Stop()

	require.NoError(t, q.Enqueue(Job{Type: "invalidate", Key: "classes:search:*"}))
	select {
	case job := <-done:
		assert.Equal(t, "classes:search:*", job.Key)
		assert.False(t, job.Enqueued.IsZero())
	case <-time.After(2 * time.Second):
		t.Fatal("job was not processed")
	}
}

func TestQueueRetriesUntilSuccess(t *testing.T) {
	var calls int32
	done := make(chan int, 1)
	q := NewQueue("retry", func(ctx context.Context, job Job) error {
		if atomic.AddInt32(&calls, 1) < 3 {
			return errors.New("redis unavailable")
		}
		done <- job.Attempt
		return nil
	}, QueueConfig{MaxRetries: 5, RetryDelay: 10 * time.Millisecond})

	q.Start(context.Background())
	defer q.Stop()

	require.NoError(t, q.Enqueue(Job{Key: "k"}))
	select {
	case attempt := <-done:
		assert.Equal(t, 2, attempt)
	case <-time.After(2 * time.Second):
		t.Fatal("job did not succeed after retries")
	}
}

func TestQueueGivesUpAfterMaxRetries(t *testing.T) {
	var calls int32
	q := NewQueue("give-up", func(ctx context.Context, job Job) error {
		atomic.AddInt32(&calls, 1)
		return errors.New("still failing")
	}, QueueConfig{MaxRetries: 2, RetryDelay: 5 * time.Millisecond})

	q.Start(context.Background())
	require.NoError(t, q.Enqueue(Job{Key: "k"}))

	assert.Eventually(t, func() bool { return atomic.LoadInt32(&calls) == 3 }, 2*time.Second, 5*time.Millisecond)
	time.Sleep(30 * time.Millisecond)
	q.Stop()
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestQueueRejectsJobsAfterStop(t *testing.T) {
	var handled int32
	q := NewQueue("stopped", func(ctx context.Context, job Job) error {
		atomic.AddInt32(&handled, 1)
		return nil
	}, QueueConfig{Workers: 1})

	q.Start(context.Background())
	q.Stop()

	for i := 0; i < 100; i++ {
		require.Error(t, q.Enqueue(Job{Type: "invalidate", Key: "classes:search-generation"}), "attempt %d", i)
	}
	assert.Zero(t, atomic.LoadInt32(&handled))
}

func TestQueueRejectsJobsAfterParentCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	q := NewQueue("cancelled", func(ctx context.Context, job Job) error { return nil }, QueueConfig{Workers: 1})
	q.Start(ctx)
	defer q.Stop()

	cancel()
	for i := 0; i < 100; i++ {
		err := q.Enqueue(Job{Key: "k"})
		require.Error(t, err, "attempt %d", i)
		assert.ErrorIs(t, err, context.Canceled)
	}
}
