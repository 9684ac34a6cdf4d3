package worker

import (
	"github.com/gridironlabs/warroom/internal/domain/policy"
	"github.com/gridironlabs/warroom/pkg/logger"
)

// Option applies a configuration option to the InMemoryWorker.
type Option func(*InMemoryWorker)

// WithName sets the worker name for identification and logging.
func WithName(name string) Option {
	return func(w *InMemoryWorker) {
		if name != "" {
			w.name = name
		}
	}
}

// WithLogger sets a custom logger for the worker.
func WithLogger(l logger.Logger) Option {
	return func(w *InMemoryWorker) {
		if l != nil {
			w.logger = l
		}
	}
}

// WithPolicy sets the policy the worker assembles reports under.
func WithPolicy(p policy.Policy) Option {
	return func(w *InMemoryWorker) {
		w.policy = p
	}
}

// WithSeed fixes the base seed for report generation. Two pools built
// from the same seed file identical reports for identical assignments.
func WithSeed(seed int64) Option {
	return func(w *InMemoryWorker) {
		w.seed = seed
	}
}
