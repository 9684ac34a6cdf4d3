// Package config defines service configuration structures and loading.
//
// Conventions:
// - New() builds a Config with production defaults.
// - Load(ctx) layers an optional YAML file and WARROOM_ env vars on top.
// - External errors are wrapped with this package's sentinel kinds.
package config

import (
	"runtime"
	"strings"

	"github.com/gridironlabs/warroom/internal/domain/model"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// QueueSize bounds the in-memory assignment queue.
	QueueSize int `koanf:"queue_size"`

	// WorkerCount sets the number of evaluation workers.
	WorkerCount int `koanf:"worker_count"`

	// DedupeSize bounds the assignment dedupe cache.
	DedupeSize int `koanf:"dedupe_size"`

	// MaxBoardLimit caps GET /board?limit.
	MaxBoardLimit int `koanf:"max_board_limit"`

	// Seed fixes the simulation seed. Zero seeds from the clock.
	Seed int64 `koanf:"seed"`

	// ClassSize is the number of generated draft-eligible subjects.
	ClassSize int `koanf:"class_size"`

	// ScoutCount is the size of the generated scouting staff.
	ScoutCount int `koanf:"scout_count"`

	// Needs maps positions to need tiers, e.g. EDGE: critical.
	Needs map[string]string `koanf:"needs"`

	// Policy overrides scouting policy constants. Zero values keep
	// the engine defaults.
	Policy PolicyOverrides `koanf:"policy"`
}

// New creates a Config with production defaults.
func New() *Config {
	return &Config{
		LogLevel:      "info",
		Addr:          ":9080",
		QueueSize:     4096,
		WorkerCount:   runtime.NumCPU(),
		DedupeSize:    4096,
		MaxBoardLimit: 100,
		ClassSize:     96,
		ScoutCount:    8,
	}
}

// TeamNeeds converts the configured needs map into domain form.
// Position keys are matched case-insensitively.
func (c *Config) TeamNeeds() model.Needs {
	if len(c.Needs) == 0 {
		return nil
	}
	needs := make(model.Needs, len(c.Needs))
	for pos, tier := range c.Needs {
		needs[model.Position(strings.ToUpper(pos))] = model.NeedTier(strings.ToLower(tier))
	}
	return needs
}
