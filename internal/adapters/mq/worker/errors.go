package worker

import "errors"

// Sentinel kinds for assignment processing failures.
var (
	ErrUnknownSubject = errors.New("subject not on scouting roster")
	ErrUnknownScout   = errors.New("scout not on staff")
)
