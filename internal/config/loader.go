package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/gridironlabs/warroom/internal/domain/model"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if WARROOM_CONFIG is set
//  3. env (prefix WARROOM_, double underscore for nesting, e.g.
//     WARROOM_POLICY__RISER_MARGIN)
func Load(ctx context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("WARROOM_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
		}
	}

	// Environment variables: WARROOM_ADDR, WARROOM_QUEUE_SIZE, ...
	// Single underscores stay part of the key to match the koanf tags;
	// double underscores descend into nested sections.
	envProvider := env.Provider("WARROOM_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "warroom_")
		return strings.ReplaceAll(s, "__", ".")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Addr == "" {
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: unknown log level %q", ErrInvalidConfig, c.LogLevel)
	}
	for pos, tier := range c.Needs {
		if _, ok := model.ParsePosition(pos); !ok {
			return fmt.Errorf("%w: unknown position %q in needs", ErrInvalidConfig, pos)
		}
		switch model.NeedTier(strings.ToLower(tier)) {
		case model.NeedCritical, model.NeedImportant, model.NeedModerate, model.NeedLow, model.NeedNone:
		default:
			return fmt.Errorf("%w: unknown need tier %q for position %s", ErrInvalidConfig, tier, pos)
		}
	}
	return nil
}
