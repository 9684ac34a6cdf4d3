package repository

import "errors"

// Sentinel kinds for store errors.
var (
	ErrNotFound     = errors.New("subject not on the board")
	ErrInvalidLimit = errors.New("invalid board limit")
)
