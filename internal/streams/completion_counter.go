package streams

import (
	"context"
	"sync"
)

// CompletionCounter is a non-negative counter used as a reusable completion
// barrier. Waiters in AwaitZero wake when the count drops to zero.
type CompletionCounter struct {
	mu    sync.Mutex
	count int
	// zero is closed while count is zero and replaced on the next increment.
	zero chan struct{}
}

func NewCompletionCounter() *CompletionCounter {
	zero := make(chan struct{})
	close(zero)
	return &CompletionCounter{zero: zero}
}

func (counter *CompletionCounter) Increment() {
	counter.mu.Lock()
	defer counter.mu.Unlock()

	if counter.count == 0 {
		counter.zero = make(chan struct{})
	}
	counter.count++
}

// Decrement lowers the count by one. It reports false and leaves the count
// untouched when it is already zero.
func (counter *CompletionCounter) Decrement() bool {
	counter.mu.Lock()
	defer counter.mu.Unlock()

	if counter.count == 0 {
		return false
	}
	counter.count--
	if counter.count == 0 {
		close(counter.zero)
	}
	return true
}

func (counter *CompletionCounter) Count() int {
	counter.mu.Lock()
	defer counter.mu.Unlock()
	return counter.count
}

// AwaitZero blocks until the count is zero or ctx is done.
func (counter *CompletionCounter) AwaitZero(ctx context.Context) error {
	counter.mu.Lock()
	zero := counter.zero
	counter.mu.Unlock()

	select {
	case <-zero:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
