package app

import "errors"

// Sentinel error kinds for the service facade.
var (
	ErrNotStarted = errors.New("service not started")
)
