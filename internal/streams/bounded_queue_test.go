package streams

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoundedQueue_FIFO(t *testing.T) {
	t.Parallel()

	queue := NewBoundedQueue[int]("fifo", 3)
	ctx := context.Background()
	for i := 1; i <= 3; i++ {
		require.NoError(t, queue.Put(ctx, i))
	}
	assert.Equal(t, 3, queue.Len())
	assert.Equal(t, 3, queue.Cap())

	for i := 1; i <= 3; i++ {
		item, err := queue.Take(ctx)
		require.NoError(t, err)
		assert.Equal(t, i, item)
	}
}

func TestBoundedQueue_PutBlocksWhenFull(t *testing.T) {
	t.Parallel()

	queue := NewBoundedQueue[int]("full", 1)
	require.NoError(t, queue.Put(context.Background(), 1))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := queue.Put(ctx, 2)

	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, 1, queue.Len())
}

func TestBoundedQueue_TakeBlocksWhenEmpty(t *testing.T) {
	t.Parallel()

	queue := NewBoundedQueue[int]("empty", 1)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := queue.Take(ctx)

	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestBoundedQueue_CloseDrainsThenFails(t *testing.T) {
	t.Parallel()

	queue := NewBoundedQueue[string]("close", 2)
	ctx := context.Background()
	require.NoError(t, queue.Put(ctx, "a"))
	queue.Close()
	queue.Close()

	assert.ErrorIs(t, queue.Put(ctx, "b"), ErrQueueClosed)

	item, err := queue.Take(ctx)
	require.NoError(t, err)
	assert.Equal(t, "a", item)

	_, err = queue.Take(ctx)
	assert.ErrorIs(t, err, ErrQueueClosed)
}

func TestBoundedQueue_CloseWakesBlockedProducer(t *testing.T) {
	t.Parallel()

	queue := NewBoundedQueue[int]("wake", 1)
	require.NoError(t, queue.Put(context.Background(), 1))

	done := make(chan error, 1)
	go func() { done <- queue.Put(context.Background(), 2) }()

	time.Sleep(10 * time.Millisecond)
	queue.Close()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, ErrQueueClosed)
	case <-time.After(time.Second):
		t.Fatal("producer was not released by Close")
	}
}

func TestBoundedQueue_NeverExceedsCapacity(t *testing.T) {
	t.Parallel()

	const capacity, producers, perProducer = 4, 8, 50
	queue := NewBoundedQueue[int]("pressure", capacity)
	ctx := context.Background()

	var maxSeen atomic.Int64
	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				assert.NoError(t, queue.Put(ctx, i))
			}
		}()
	}

	received := 0
	for received < producers*perProducer {
		if n := int64(queue.Len()); n > maxSeen.Load() {
			maxSeen.Store(n)
		}
		_, err := queue.Take(ctx)
		require.NoError(t, err)
		received++
		time.Sleep(50 * time.Microsecond)
	}
	wg.Wait()

	assert.LessOrEqual(t, maxSeen.Load(), int64(capacity))
}
