// Package worker runs the evaluation stage of a scouting cycle:
// assignments come off the queue, reports come out the other end.
package worker

import (
	"context"
	"fmt"
	"hash/fnv"
	"math/rand"
	"runtime"
	"strconv"
	"time"

	"github.com/gridironlabs/warroom/internal/adapters/mq/queue"
	"github.com/gridironlabs/warroom/internal/domain/model"
	"github.com/gridironlabs/warroom/internal/domain/policy"
	"github.com/gridironlabs/warroom/internal/domain/report"
	"github.com/gridironlabs/warroom/pkg/logger"
	"github.com/gridironlabs/warroom/pkg/metrics"
)

const poolShutdownTimeout = 30 * time.Second

// Assignment abstracts what workers read off the queue.
type Assignment = queue.Assignment

// Roster resolves assignment IDs against the cycle's roster snapshot.
type Roster interface {
	Subject(ctx context.Context, id string) (model.Prospect, bool)
	Scout(ctx context.Context, id string) (model.Scout, bool)
}

// Filer accepts finished reports for storage.
type Filer interface {
	Append(ctx context.Context, r model.ScoutReport) error
}

// Queue defines how workers receive assignments.
type Queue interface {
	Dequeue(ctx context.Context) <-chan Assignment
}

// Worker processes assignments into filed scouting reports.
type Worker interface {
	// Run starts the worker loop until ctx is canceled, the worker is
	// shut down, or the queue is closed and drained.
	Run(ctx context.Context)

	// Shutdown stops the worker without waiting for remaining assignments.
	Shutdown(ctx context.Context) error
}

// InMemoryWorker implements Worker for processing assignments.
type InMemoryWorker struct {
	queue  Queue
	roster Roster
	filer  Filer
	policy policy.Policy
	seed   int64
	name   string

	shutdown chan struct{}
	done     chan struct{}

	logger logger.Logger
}

// NewInMemoryWorker creates a new worker with configuration options.
func NewInMemoryWorker(q Queue, roster Roster, filer Filer, opts ...Option) *InMemoryWorker {
	w := &InMemoryWorker{
		queue:    q,
		roster:   roster,
		filer:    filer,
		policy:   policy.Default(),
		seed:     time.Now().UnixNano(),
		name:     "worker",
		shutdown: make(chan struct{}),
		done:     make(chan struct{}),
		logger:   logger.Get().Named("worker"),
	}

	for _, opt := range opts {
		opt(w)
	}

	if w.name != "worker" {
		w.logger = w.logger.Named(w.name)
	}

	return w
}

// Run starts the worker loop.
func (w *InMemoryWorker) Run(ctx context.Context) {
	defer close(w.done)

	assignments := w.queue.Dequeue(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.shutdown:
			return
		case a, ok := <-assignments:
			if !ok {
				// Queue closed and drained.
				return
			}
			if err := w.processAssignment(ctx, a); err != nil {
				w.logger.Error(ctx, "error processing assignment", logger.Error(err))
			}
		}
	}
}

// Shutdown stops the worker without waiting for remaining assignments.
func (w *InMemoryWorker) Shutdown(ctx context.Context) error {
	close(w.shutdown)

	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		w.logger.Warn(ctx, "shutdown timed out")
		return fmt.Errorf("shutdown timed out: %w", ctx.Err())
	}
}

// processAssignment evaluates one subject and files the report. The
// generator is seeded from the assignment key, so a report's content
// does not depend on which worker draws the assignment.
func (w *InMemoryWorker) processAssignment(ctx context.Context, a Assignment) error {
	start := time.Now()
	defer func() {
		metrics.RecordWorkerProcessingLatency(float64(time.Since(start).Milliseconds()))
	}()

	subject, ok := w.roster.Subject(ctx, a.SubjectID)
	if !ok {
		metrics.RecordWorkerError()
		return fmt.Errorf("%w: %s", ErrUnknownSubject, a.SubjectID)
	}
	scout, ok := w.roster.Scout(ctx, a.ScoutID)
	if !ok {
		metrics.RecordWorkerError()
		return fmt.Errorf("%w: %s", ErrUnknownScout, a.ScoutID)
	}

	assembleStart := time.Now()
	rng := rand.New(rand.NewSource(w.seedFor(a)))
	rep, err := report.Assemble(rng, w.policy, report.AssembleInput{
		Subject:   subject,
		Scout:     scout,
		Kind:      a.Kind,
		Cycle:     a.Cycle,
		TimeHours: a.TimeHours,
		Now:       time.Now(),
	})
	metrics.RecordAssemblyLatency(float64(time.Since(assembleStart).Milliseconds()))
	if err != nil {
		metrics.RecordWorkerError()
		w.logger.Error(ctx, "report assembly failed",
			logger.String("subject", a.SubjectID),
			logger.String("scout", a.ScoutID),
			logger.Error(err),
		)
		return fmt.Errorf("assemble report for %s: %w", a.SubjectID, err)
	}

	if err := w.filer.Append(ctx, rep); err != nil {
		metrics.RecordWorkerError()
		w.logger.Error(ctx, "report filing failed",
			logger.String("report", rep.ID),
			logger.Error(err),
		)
		return fmt.Errorf("file report %s: %w", rep.ID, err)
	}

	metrics.RecordReportGenerated(string(a.Kind))
	return nil
}

func (w *InMemoryWorker) seedFor(a Assignment) int64 {
	h := fnv.New64a()
	h.Write([]byte(a.Key()))
	return w.seed ^ int64(h.Sum64())
}

// Pool manages multiple workers draining one queue.
type Pool struct {
	workers []*InMemoryWorker
	queue   Queue

	logger logger.Logger
}

// NewPool creates a new worker pool. Options are applied to every
// worker; a non-positive count sizes the pool to the machine.
func NewPool(workerCount int, q Queue, roster Roster, filer Filer, opts ...Option) *Pool {
	if workerCount < 1 {
		workerCount = runtime.NumCPU()
	}

	pool := &Pool{
		workers: make([]*InMemoryWorker, workerCount),
		queue:   q,
		logger:  logger.Get().Named("worker-pool"),
	}

	for i := 0; i < workerCount; i++ {
		workerOpts := append([]Option{WithName("worker-" + strconv.Itoa(i))}, opts...)
		pool.workers[i] = NewInMemoryWorker(q, roster, filer, workerOpts...)
	}

	metrics.UpdateWorkerActiveCount(workerCount)

	return pool
}

// Start starts all workers in the pool.
func (p *Pool) Start(ctx context.Context) {
	for _, w := range p.workers {
		go w.Run(ctx)
	}
}

// Stop halts all workers without waiting for queued assignments.
// Call at most once.
func (p *Pool) Stop(ctx context.Context) error {
	var firstErr error
	for _, w := range p.workers {
		if err := w.Shutdown(ctx); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	metrics.UpdateWorkerActiveCount(0)
	return firstErr
}

// Shutdown closes the queue and waits until every queued assignment
// has been processed. When it returns nil, all reports are filed.
func (p *Pool) Shutdown(ctx context.Context) error {
	if closer, ok := p.queue.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			p.logger.Error(ctx, "error closing assignment queue", logger.Error(err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, poolShutdownTimeout)
	defer cancel()

	for i, w := range p.workers {
		select {
		case <-w.done:
		case <-shutdownCtx.Done():
			p.logger.Warn(ctx, "worker shutdown timed out", logger.Int("worker", i))
			return fmt.Errorf("worker pool shutdown: %w", shutdownCtx.Err())
		}
	}

	metrics.UpdateWorkerActiveCount(0)
	return nil
}
