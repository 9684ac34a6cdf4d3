package model

import "strconv"

// Assignment is one unit of scouting work dispatched to the evaluation
// workers: one scout, one subject, one report kind, within one cycle.
type Assignment struct {
	Cycle     int
	ScoutID   string
	SubjectID string
	Kind      ReportKind
	TimeHours float64 // time the scout invests, feeds confidence scoring
}

// Key returns the idempotency key for the assignment. A scout files at
// most one report per subject per cycle.
func (a Assignment) Key() string {
	return strconv.Itoa(a.Cycle) + "/" + a.ScoutID + "/" + a.SubjectID
}
