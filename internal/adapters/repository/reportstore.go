package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/gridironlabs/warroom/internal/domain/model"
	"github.com/gridironlabs/warroom/internal/domain/report"
)

// MemoryReportStore is the in-memory ReportStore. Appends keep both a
// filing-order log and a per-subject index so either read order is
// cheap.
type MemoryReportStore struct {
	mu        sync.RWMutex
	log       []model.ScoutReport
	bySubject map[string][]model.ScoutReport
}

// NewReportStore constructs an empty report archive.
func NewReportStore() *MemoryReportStore {
	return &MemoryReportStore{
		bySubject: make(map[string][]model.ScoutReport),
	}
}

// Append files a report after validating it; invalid reports are never
// persisted.
func (s *MemoryReportStore) Append(ctx context.Context, r model.ScoutReport) error {
	if err := report.Validate(r); err != nil {
		return fmt.Errorf("append report: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.log = append(s.log, r)
	s.bySubject[r.SubjectID] = append(s.bySubject[r.SubjectID], r)
	return nil
}

func (s *MemoryReportStore) BySubject(ctx context.Context, subjectID string) []model.ScoutReport {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.ScoutReport(nil), s.bySubject[subjectID]...)
}

func (s *MemoryReportStore) All(ctx context.Context) []model.ScoutReport {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.ScoutReport(nil), s.log...)
}

func (s *MemoryReportStore) Subjects(ctx context.Context) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.bySubject))
	for id := range s.bySubject {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

func (s *MemoryReportStore) Count(ctx context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.log)
}
