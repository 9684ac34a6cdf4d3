// Package repository holds the in-memory stores: the append-only
// report archive and the treap-backed index that serves board lookups
// between recomputes.
package repository

import (
	"context"

	"github.com/gridironlabs/warroom/internal/domain/model"
)

// ReportStore archives scouting reports. Reports are immutable once
// filed; reads return fresh slices over the same immutable values.
type ReportStore interface {
	// Append files a report. Malformed reports are rejected and never
	// stored.
	Append(ctx context.Context, r model.ScoutReport) error

	// BySubject returns every report filed on a subject, oldest first.
	BySubject(ctx context.Context, subjectID string) []model.ScoutReport

	// All returns every report in filing order.
	All(ctx context.Context) []model.ScoutReport

	// Subjects returns the distinct subject IDs with at least one
	// report, sorted.
	Subjects(ctx context.Context) []string

	Count(ctx context.Context) int
}

// BoardIndex serves rank and top-N lookups over the most recently
// generated board. The board itself is always regenerated from the
// full report set; the index only answers queries between rebuilds.
type BoardIndex interface {
	// ReplaceAll swaps in a freshly generated board.
	ReplaceAll(ctx context.Context, rows []model.ProspectRanking)

	// Rank returns the board row for one subject.
	// Returns ErrNotFound for subjects not on the board.
	Rank(ctx context.Context, subjectID string) (model.ProspectRanking, error)

	// TopN returns the best n rows in board order.
	TopN(ctx context.Context, n int) ([]model.ProspectRanking, error)

	// Count returns the number of subjects on the board.
	Count(ctx context.Context) int
}
