package ingestors

import (
	"context"
	"sync/atomic"

	"loadtest-report/internal/models"
	"loadtest-report/internal/streams"
)

const chunkQueueName = "line_chunks"

// Progress is a point-in-time view of a pipeline run.
type Progress struct {
	DirectoriesTotal    int64 `json:"directoriesTotal"`
	DirectoriesFinished int64 `json:"directoriesFinished"`
	DirectoriesInFlight int   `json:"directoriesInFlight"`
	BatchesInFlight     int   `json:"batchesInFlight"`
	QueueDepth          int   `json:"queueDepth"`
	QueueCapacity       int   `json:"queueCapacity"`
}

// Coordinator tracks in-flight directories and in-flight chunks of one run.
// A chunk counts as in flight from SubmitChunk until its batch was aggregated
// and FinishBatch was called.
type Coordinator struct {
	queue       *streams.BoundedQueue[*models.LineChunk]
	directories *streams.CompletionCounter
	batches     *streams.CompletionCounter

	directoriesTotal    atomic.Int64
	directoriesFinished atomic.Int64
}

func NewCoordinator(queueCapacity int) *Coordinator {
	return &Coordinator{
		queue:       streams.NewBoundedQueue[*models.LineChunk](chunkQueueName, queueCapacity),
		directories: streams.NewCompletionCounter(),
		batches:     streams.NewCompletionCounter(),
	}
}

func (c *Coordinator) BeginDirectory() {
	c.directoriesTotal.Add(1)
	c.directories.Increment()
}

func (c *Coordinator) FinishDirectory() {
	if c.directories.Decrement() {
		c.directoriesFinished.Add(1)
		metricDirectoriesFinishedTotal.Inc()
	}
}

// SubmitChunk counts the chunk in flight and then waits for queue capacity.
// A chunk that could not be queued is not counted.
func (c *Coordinator) SubmitChunk(ctx context.Context, chunk *models.LineChunk) error {
	c.batches.Increment()
	if err := c.queue.Put(ctx, chunk); err != nil {
		c.batches.Decrement()
		return err
	}
	metricChunksSubmittedTotal.Inc()
	return nil
}

// TakeChunk waits for the next chunk. It returns streams.ErrQueueClosed once
// the coordinator is closed and the queue is drained.
func (c *Coordinator) TakeChunk(ctx context.Context) (*models.LineChunk, error) {
	return c.queue.Take(ctx)
}

func (c *Coordinator) FinishBatch() {
	c.batches.Decrement()
}

// AwaitCompletion blocks until every directory is finished and then until
// every submitted chunk was parsed and aggregated. Once directories are done
// no further chunks can be submitted, so the second wait is final.
func (c *Coordinator) AwaitCompletion(ctx context.Context) error {
	if err := c.directories.AwaitZero(ctx); err != nil {
		return err
	}
	return c.batches.AwaitZero(ctx)
}

// Close releases idle parsers and blocked readers.
func (c *Coordinator) Close() {
	c.queue.Close()
}

func (c *Coordinator) Progress() Progress {
	return Progress{
		DirectoriesTotal:    c.directoriesTotal.Load(),
		DirectoriesFinished: c.directoriesFinished.Load(),
		DirectoriesInFlight: c.directories.Count(),
		BatchesInFlight:     c.batches.Count(),
		QueueDepth:          c.queue.Len(),
		QueueCapacity:       c.queue.Cap(),
	}
}
