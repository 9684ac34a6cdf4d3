package api

import "errors"

// Sentinel kinds for API errors.
var (
	ErrBadRequest      = errors.New("bad request")
	ErrLimitExceeded   = errors.New("limit exceeds maximum")
	ErrUnknownPosition = errors.New("unknown position")
	ErrBusy            = errors.New("pipeline busy")
)
