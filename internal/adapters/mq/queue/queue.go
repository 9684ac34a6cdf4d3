// Package queue carries scouting assignments from cycle planning to the
// evaluation workers.
//
// The in-memory implementation is a bounded channel: planners enqueue
// without blocking and workers drain a shared dequeue channel.
package queue

import (
	"context"
	"sync"

	"github.com/gridironlabs/warroom/internal/domain/model"
	"github.com/gridironlabs/warroom/pkg/metrics"
)

const defaultCapacity = 4096

// Assignment is the payload type flowing through the queue.
type Assignment = model.Assignment

// Queue provides non-blocking enqueue and channel-based dequeue semantics.
type Queue interface {
	// Enqueue adds an assignment to the queue.
	// Returns false if the queue is full or closed.
	Enqueue(ctx context.Context, a Assignment) bool

	// Dequeue returns a channel that receives assignments as they become
	// available. The channel is closed once the queue is closed and drained.
	Dequeue(ctx context.Context) <-chan Assignment

	// Len returns the current number of queued assignments.
	Len(ctx context.Context) int

	// Close shuts down the queue. No new assignments can be enqueued
	// afterward; assignments already queued are still delivered.
	Close() error

	// IsClosed reports whether the queue has been closed.
	IsClosed() bool
}

// InMemoryQueue implements Queue using a buffered channel.
type InMemoryQueue struct {
	assignments chan Assignment
	capacity    int
	mu          sync.RWMutex
	closed      bool
}

// NewInMemoryQueue creates a new in-memory queue with configuration options.
func NewInMemoryQueue(opts ...Option) *InMemoryQueue {
	q := &InMemoryQueue{
		capacity: defaultCapacity,
	}

	for _, opt := range opts {
		opt(q)
	}

	q.assignments = make(chan Assignment, q.capacity)

	metrics.UpdateQueueCapacity(q.capacity)
	metrics.UpdateQueueSize(0)
	metrics.UpdateQueueUtilization(0.0)

	return q
}

// Enqueue adds an assignment to the queue.
func (q *InMemoryQueue) Enqueue(ctx context.Context, a Assignment) bool {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		metrics.RecordQueueEnqueueError()
		return false
	}

	select {
	case q.assignments <- a:
		metrics.RecordQueueEnqueue()
		q.publishGauges()
		return true
	case <-ctx.Done():
		metrics.RecordQueueEnqueueError()
		return false
	default:
		metrics.RecordQueueEnqueueError()
		return false // queue is full
	}
}

// Dequeue returns a channel that receives assignments as they become available.
func (q *InMemoryQueue) Dequeue(ctx context.Context) <-chan Assignment {
	out := make(chan Assignment)
	go func() {
		defer close(out)
		for a := range q.assignments {
			select {
			case out <- a:
				metrics.RecordQueueDequeue()
				q.publishGauges()
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

// Len returns the current number of queued assignments.
func (q *InMemoryQueue) Len(ctx context.Context) int {
	q.publishGauges()
	return len(q.assignments)
}

// Close shuts down the queue.
func (q *InMemoryQueue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return nil // already closed
	}

	close(q.assignments)
	q.closed = true

	return nil
}

// IsClosed reports whether the queue has been closed.
func (q *InMemoryQueue) IsClosed() bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.closed
}

func (q *InMemoryQueue) publishGauges() {
	size := len(q.assignments)
	metrics.UpdateQueueSize(size)
	metrics.UpdateQueueUtilization(float64(size) / float64(q.capacity))
}
