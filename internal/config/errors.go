package config

import "errors"

// Sentinel errors surfaced by Load. Callers branch with errors.Is.
var (
	ErrInvalidConfig = errors.New("invalid config")
	ErrLoadConfig    = errors.New("load config failed")
)
