package report

import "errors"

// Sentinel validation errors. Callers drop a report that fails
// validation rather than persisting it.
var (
	ErrEmptyIdentity = errors.New("report identity fields must be set")
	ErrInvalidRange  = errors.New("range bounds out of order")
	ErrRoundBounds   = errors.New("round projection outside the draft")
	ErrFocusDetail   = errors.New("focus detail does not match report kind")
	ErrTraitCount    = errors.New("trait counts do not reconcile")
)
