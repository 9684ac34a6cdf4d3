package simulate

import "time"

// Config holds the shape of one simulated scouting arc.
type Config struct {
	Seed      int64 // drives roster generation and report noise
	Seasons   int   // full seasons to play
	Cycles    int   // scouting cycles per season
	ClassSize int   // prospects per draft class
	StaffSize int   // scouts on staff
	Picks     int   // draft slots to walk in the final draft
	Workers   int   // report workers on the primary service
	BoardRows int   // rows to render per board printout
	Verbose   bool  // render the board after every season, not just the last
	Quiet     bool  // skip scenery, render only checks and the summary
}

// DefaultConfig returns a small arc that exercises every phase.
func DefaultConfig() *Config {
	return &Config{
		Seed:      1,
		Seasons:   2,
		Cycles:    6,
		ClassSize: 48,
		StaffSize: 5,
		Picks:     7,
		Workers:   4,
		BoardRows: 16,
	}
}

// Stats accumulates counters over one simulation run.
type Stats struct {
	SeasonsRun   int
	CyclesRun    int
	ReportsSeen  int
	PicksMade    int
	ChecksRun    int
	ChecksFailed int
	StartTime    time.Time
	EndTime      time.Time
	Duration     time.Duration
}
