package streams

import (
	"context"
	"errors"
	"sync"
)

var ErrQueueClosed = errors.New("queue closed")

// BoundedQueue is a fixed-capacity FIFO between pipeline stages.
// Put blocks while the queue is full and Take blocks while it is empty.
// Items put before Close can still be taken after it.
type BoundedQueue[T any] struct {
	name      string
	items     chan T
	closed    chan struct{}
	closeOnce sync.Once
}

func NewBoundedQueue[T any](name string, capacity int) *BoundedQueue[T] {
	if capacity < 1 {
		capacity = 1
	}
	return &BoundedQueue[T]{
		name:   name,
		items:  make(chan T, capacity),
		closed: make(chan struct{}),
	}
}

func (queue *BoundedQueue[T]) Cap() int { return cap(queue.items) }

func (queue *BoundedQueue[T]) Len() int { return len(queue.items) }

// Put appends item, waiting for free capacity. It fails once the queue is
// closed or ctx is done.
func (queue *BoundedQueue[T]) Put(ctx context.Context, item T) error {
	select {
	case <-queue.closed:
		return ErrQueueClosed
	default:
	}

	select {
	case queue.items <- item:
	default:
		metricQueueBlockedPutsTotal.WithLabelValues(queue.name).Inc()
		select {
		case queue.items <- item:
		case <-queue.closed:
			return ErrQueueClosed
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	queue.observeDepth()
	return nil
}

// Take removes the oldest item, waiting until one is available. Once the
// queue is closed and drained it returns ErrQueueClosed.
func (queue *BoundedQueue[T]) Take(ctx context.Context) (T, error) {
	var zero T
	select {
	case item := <-queue.items:
		queue.observeDepth()
		return item, nil
	case <-queue.closed:
		select {
		case item := <-queue.items:
			queue.observeDepth()
			return item, nil
		default:
			return zero, ErrQueueClosed
		}
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}

// Close stops accepting items and wakes blocked producers and idle consumers.
func (queue *BoundedQueue[T]) Close() {
	queue.closeOnce.Do(func() { close(queue.closed) })
}

func (queue *BoundedQueue[T]) observeDepth() {
	metricQueueDepth.WithLabelValues(queue.name).Set(float64(len(queue.items)))
}
