package worker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/gridironlabs/warroom/internal/adapters/mq/queue"
	"github.com/gridironlabs/warroom/internal/domain/model"
	"github.com/gridironlabs/warroom/internal/domain/policy"
	"github.com/gridironlabs/warroom/pkg/logger"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

type fakeRoster struct {
	subjects map[string]model.Prospect
	scouts   map[string]model.Scout
}

func (r *fakeRoster) Subject(_ context.Context, id string) (model.Prospect, bool) {
	s, ok := r.subjects[id]
	return s, ok
}

func (r *fakeRoster) Scout(_ context.Context, id string) (model.Scout, bool) {
	s, ok := r.scouts[id]
	return s, ok
}

type captureFiler struct {
	mu      sync.Mutex
	reports []model.ScoutReport
}

func (f *captureFiler) Append(_ context.Context, r model.ScoutReport) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reports = append(f.reports, r)
	return nil
}

func (f *captureFiler) byPair() map[string]model.ScoutReport {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[string]model.ScoutReport, len(f.reports))
	for _, r := range f.reports {
		out[r.ScoutID+"/"+r.SubjectID] = r
	}
	return out
}

type failingFiler struct{}

func (failingFiler) Append(context.Context, model.ScoutReport) error {
	return errors.New("filing cabinet on fire")
}

func testProspect(id string, pos model.Position) model.Prospect {
	return model.Prospect{
		ID:         id,
		Name:       "Prospect " + id,
		Position:   pos,
		Region:     model.RegionMidwest,
		Age:        21,
		HeightIn:   74,
		WeightLb:   230,
		Visibility: 0.7,
		Attributes: model.TrueAttributes{
			Overall:   78,
			Physical:  82,
			Technical: 70,
			Character: 66,
			Medical:   90,
			SchemeFit: 74,
			Interview: 58,
		},
		Traits: []string{"quick first step", "high motor"},
	}
}

func testScout(id string) model.Scout {
	return model.Scout{
		ID:         id,
		Name:       "Scout " + id,
		Role:       model.RoleDefense,
		Evaluation: 72,
		Speed:      4,
		Experience: 9,
	}
}

func testRoster() *fakeRoster {
	return &fakeRoster{
		subjects: map[string]model.Prospect{
			"p1": testProspect("p1", model.PosEDGE),
			"p2": testProspect("p2", model.PosWR),
			"p3": testProspect("p3", model.PosCB),
		},
		scouts: map[string]model.Scout{
			"s1": testScout("s1"),
			"s2": testScout("s2"),
		},
	}
}

func autoAssignment(scout, subject string) Assignment {
	return Assignment{
		Cycle:     1,
		ScoutID:   scout,
		SubjectID: subject,
		Kind:      model.ReportAuto,
		TimeHours: 6,
	}
}

// runCycle pushes the assignments through a fresh pool and returns the
// filed reports once the queue is drained.
func runCycle(t *testing.T, workers int, seed int64, filer Filer, roster Roster, assignments []Assignment) {
	t.Helper()
	ctx := context.Background()

	q := queue.NewInMemoryQueue(queue.WithCapacity(len(assignments) + 1))
	pool := NewPool(workers, q, roster, filer, WithSeed(seed), WithPolicy(policy.Default()))
	pool.Start(ctx)

	for _, a := range assignments {
		if ok := q.Enqueue(ctx, a); !ok {
			t.Fatalf("enqueue %s failed", a.Key())
		}
	}

	if err := pool.Shutdown(ctx); err != nil {
		t.Fatalf("pool shutdown: %v", err)
	}
}

func TestPoolProcessesAllAssignments(t *testing.T) {
	roster := testRoster()
	filer := &captureFiler{}

	assignments := []Assignment{
		autoAssignment("s1", "p1"),
		autoAssignment("s1", "p2"),
		autoAssignment("s1", "p3"),
		autoAssignment("s2", "p1"),
		autoAssignment("s2", "p2"),
		{Cycle: 1, ScoutID: "s2", SubjectID: "p3", Kind: model.ReportFocus, TimeHours: 30},
	}
	runCycle(t, 3, 7, filer, roster, assignments)

	byPair := filer.byPair()
	if len(byPair) != 6 {
		t.Fatalf("expected 6 reports, got %d", len(byPair))
	}
	for _, a := range assignments {
		rep, ok := byPair[a.ScoutID+"/"+a.SubjectID]
		if !ok {
			t.Errorf("no report filed for %s", a.Key())
			continue
		}
		if rep.Cycle != a.Cycle || rep.Kind != a.Kind {
			t.Errorf("report for %s carries cycle %d kind %s", a.Key(), rep.Cycle, rep.Kind)
		}
	}

	focus := byPair["s2/p3"]
	if focus.Focus == nil {
		t.Error("expected focus report to carry sub-assessments")
	}
	auto := byPair["s1/p1"]
	if auto.Focus != nil {
		t.Error("expected auto report without sub-assessments")
	}
}

// Report content must depend on the assignment, not on pool shape or
// scheduling. A one-worker pool and a four-worker pool given the same
// seed file the same evaluations.
func TestReportsIndependentOfWorkerCount(t *testing.T) {
	roster := testRoster()
	assignments := []Assignment{
		autoAssignment("s1", "p1"),
		autoAssignment("s1", "p2"),
		autoAssignment("s2", "p1"),
		autoAssignment("s2", "p3"),
	}

	serial := &captureFiler{}
	runCycle(t, 1, 42, serial, roster, assignments)

	parallel := &captureFiler{}
	runCycle(t, 4, 42, parallel, roster, assignments)

	serialByPair := serial.byPair()
	parallelByPair := parallel.byPair()
	if len(serialByPair) != len(assignments) || len(parallelByPair) != len(assignments) {
		t.Fatalf("expected %d reports from both runs, got %d and %d",
			len(assignments), len(serialByPair), len(parallelByPair))
	}

	for pair, want := range serialByPair {
		got, ok := parallelByPair[pair]
		if !ok {
			t.Errorf("parallel run missing report for %s", pair)
			continue
		}
		if got.Overall != want.Overall || got.Physical != want.Physical || got.Technical != want.Technical {
			t.Errorf("%s: estimates differ between runs", pair)
		}
		if got.Projection.Round != want.Projection.Round {
			t.Errorf("%s: projections differ between runs", pair)
		}
	}
}

func TestUnknownIDsAreSkipped(t *testing.T) {
	roster := testRoster()
	filer := &captureFiler{}

	assignments := []Assignment{
		autoAssignment("s1", "p1"),
		autoAssignment("s1", "ghost-subject"),
		autoAssignment("ghost-scout", "p2"),
	}
	runCycle(t, 2, 11, filer, roster, assignments)

	byPair := filer.byPair()
	if len(byPair) != 1 {
		t.Fatalf("expected only the valid assignment to file, got %d reports", len(byPair))
	}
	if _, ok := byPair["s1/p1"]; !ok {
		t.Error("valid assignment was not processed")
	}
}

func TestFilerErrorDoesNotStallThePool(t *testing.T) {
	roster := testRoster()

	assignments := []Assignment{
		autoAssignment("s1", "p1"),
		autoAssignment("s1", "p2"),
	}
	// runCycle shuts the pool down; reaching this point without a
	// timeout is the assertion.
	runCycle(t, 2, 5, failingFiler{}, roster, assignments)
}

func TestWorkerShutdownStopsPromptly(t *testing.T) {
	ctx := context.Background()
	q := queue.NewInMemoryQueue()
	defer q.Close()

	w := NewInMemoryWorker(q, testRoster(), &captureFiler{}, WithName("idle"))
	go w.Run(ctx)

	shutdownCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := w.Shutdown(shutdownCtx); err != nil {
		t.Fatalf("idle worker did not stop: %v", err)
	}
}
