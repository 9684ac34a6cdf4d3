// Package app wires the scouting engine together behind a Service
// facade: roster custody, cycle orchestration, season resolution, the
// draft room, and the read API the HTTP layer serves.
package app

import (
	"context"
	"fmt"
	"math"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/gridironlabs/warroom/internal/adapters/mq/queue"
	"github.com/gridironlabs/warroom/internal/adapters/mq/worker"
	"github.com/gridironlabs/warroom/internal/adapters/repository"
	"github.com/gridironlabs/warroom/internal/domain/bigboard"
	"github.com/gridironlabs/warroom/internal/domain/dedupe"
	"github.com/gridironlabs/warroom/internal/domain/disagreement"
	"github.com/gridironlabs/warroom/internal/domain/model"
	"github.com/gridironlabs/warroom/internal/domain/policy"
	"github.com/gridironlabs/warroom/internal/domain/recommend"
	"github.com/gridironlabs/warroom/internal/domain/report"
	"github.com/gridironlabs/warroom/internal/domain/trackrecord"
	"github.com/gridironlabs/warroom/pkg/logger"
	"github.com/gridironlabs/warroom/pkg/metrics"
)

const metricsRefreshInterval = 15 * time.Second

// Service implements the war-room operations behind the HTTP API.
type Service struct {
	mu sync.RWMutex

	// Roster state. Maps are replaced copy-on-write and never mutated
	// in place, so a reference taken under the lock stays valid after
	// release. Report assembly within a cycle always works from the
	// snapshot taken before any of that cycle's reports exist.
	prospects map[string]model.Prospect
	scouts    map[string]model.Scout
	needs     model.Needs

	cycle int
	year  int

	// Core components
	reports    *repository.MemoryReportStore
	boardIndex *repository.TreapBoardIndex
	deduper    dedupe.Deduper

	// One cycle or season transition runs at a time.
	cycleMu sync.Mutex

	// Configuration
	policy      policy.Policy
	seed        int64
	workerCount int
	queueSize   int
	dedupeSize  int

	// State
	started bool
	stopCh  chan struct{}

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithWorkerCount sets the number of evaluation workers per cycle.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithQueueSize sets the assignment queue bound. A cycle that plans
// more assignments than this still runs; the queue grows to fit once.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithDedupeSize sets the size of the assignment dedupe cache.
func WithDedupeSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.dedupeSize = size
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithPolicy replaces the default scouting policy.
func WithPolicy(p policy.Policy) Option {
	return func(s *Service) {
		s.policy = p
	}
}

// WithSeed fixes the evaluation seed, making whole seasons replayable.
func WithSeed(seed int64) Option {
	return func(s *Service) {
		if seed != 0 {
			s.seed = seed
		}
	}
}

// WithNeeds sets the team's positional needs.
func WithNeeds(needs model.Needs) Option {
	return func(s *Service) {
		s.needs = needs
	}
}

// WithRoster seeds the prospect pool and the scouting staff.
func WithRoster(class []model.Prospect, staff []model.Scout) Option {
	return func(s *Service) {
		s.prospects = make(map[string]model.Prospect, len(class))
		for _, p := range class {
			s.prospects[p.ID] = p
		}
		s.scouts = make(map[string]model.Scout, len(staff))
		for _, sc := range staff {
			s.scouts[sc.ID] = sc
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		prospects:   map[string]model.Prospect{},
		scouts:      map[string]model.Scout{},
		policy:      policy.Default(),
		seed:        time.Now().UnixNano(),
		workerCount: runtime.NumCPU(),
		queueSize:   4096,
		dedupeSize:  4096,
		stopCh:      make(chan struct{}),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get().Named("warroom")
	}

	s.logger.Info(ctx, "starting war-room service...")

	s.reports = repository.NewReportStore()
	s.boardIndex = repository.NewBoardIndex()
	s.deduper = dedupe.NewInMemory(dedupe.WithMaxSize(s.dedupeSize))

	metrics.UpdateProspectCount(len(s.prospects))
	metrics.UpdateScoutCount(len(s.scouts))

	go s.refreshSystemMetrics()

	s.started = true
	s.logger.Info(ctx, "war-room service started",
		logger.Int("prospects", len(s.prospects)),
		logger.Int("scouts", len(s.scouts)),
		logger.Int("workers", s.workerCount),
	)

	return nil
}

// Stop shuts the service down. Idempotent.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	select {
	case <-s.stopCh:
	default:
		close(s.stopCh)
	}

	s.started = false
	s.logger.Info(context.Background(), "war-room service stopped")
}

// RunCycle runs one scouting week: plan assignments from a roster
// snapshot, evaluate them on the worker pool, file the reports, append
// ledger entries, and rebuild the board.
func (s *Service) RunCycle(ctx context.Context) error {
	s.cycleMu.Lock()
	defer s.cycleMu.Unlock()

	start := time.Now()

	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return ErrNotStarted
	}
	s.cycle++
	cycle := s.cycle
	prospects := s.prospects
	scouts := s.scouts
	pol := s.policy
	store := s.reports
	s.mu.Unlock()

	if len(prospects) == 0 || len(scouts) == 0 {
		s.logger.Warn(ctx, "cycle skipped, roster empty", logger.Int("cycle", cycle))
		return nil
	}

	planned := planAssignments(pol, scouts, prospects, cycle)

	accepted := make([]model.Assignment, 0, len(planned))
	for _, a := range planned {
		if s.deduper.SeenAndRecord(ctx, a.Key()) {
			metrics.RecordAssignmentDuplicate()
			continue
		}
		accepted = append(accepted, a)
	}

	capacity := s.queueSize
	if len(accepted) > capacity {
		capacity = len(accepted)
	}
	q := queue.NewInMemoryQueue(queue.WithCapacity(capacity))
	snapshot := &rosterSnapshot{prospects: prospects, scouts: scouts}
	pool := worker.NewPool(s.workerCount, q, snapshot, store,
		worker.WithPolicy(pol),
		worker.WithSeed(s.seed),
		worker.WithLogger(s.logger),
	)
	pool.Start(ctx)

	for _, a := range accepted {
		if ok := q.Enqueue(ctx, a); !ok {
			s.logger.Warn(ctx, "assignment dropped", logger.String("key", a.Key()))
		}
	}
	if err := pool.Shutdown(ctx); err != nil {
		return fmt.Errorf("cycle %d: %w", cycle, err)
	}

	s.recordLedgerEntries(ctx, cycle)
	s.rebuildBoard(ctx)
	s.recordDisagreements(ctx)

	metrics.RecordCycleCompleted()
	metrics.RecordCycleDuration(float64(time.Since(start).Milliseconds()))
	s.logger.Info(ctx, "cycle completed",
		logger.Int("cycle", cycle),
		logger.Int("assignments", len(accepted)),
		logger.Duration("took", time.Since(start)),
	)

	return nil
}

// AdvanceSeason resolves every pending projection against the class's
// now-known outcomes, advances each scout's tenure, and recomputes
// reveal state. The staff swap is copy-on-write.
func (s *Service) AdvanceSeason(ctx context.Context) error {
	s.cycleMu.Lock()
	defer s.cycleMu.Unlock()

	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return ErrNotStarted
	}
	prospects := s.prospects
	scouts := s.scouts
	pol := s.policy
	s.mu.Unlock()

	next := make(map[string]model.Scout, len(scouts))
	for id, sc := range scouts {
		rec := sc.Record
		before := rec.Completed()
		beforeHits := hitCount(rec)

		for _, subject := range prospects {
			rec = trackrecord.Resolve(pol.TrackRecord, rec, subject.ID,
				report.RoundFor(subject.Attributes.Overall), subject.Attributes.Overall)
		}

		resolved := rec.Completed() - before
		hits := hitCount(rec) - beforeHits
		for i := 0; i < resolved; i++ {
			metrics.RecordEvaluationResolved()
		}
		for i := 0; i < hits; i++ {
			metrics.RecordEvaluationHit()
		}
		for i := 0; i < resolved-hits; i++ {
			metrics.RecordEvaluationMiss()
		}

		sc.Record = trackrecord.AdvanceYear(pol.TrackRecord, rec)
		next[id] = sc
	}

	s.mu.Lock()
	s.scouts = next
	s.year++
	year := s.year
	s.mu.Unlock()

	// Reliability weights may have changed with the reveals.
	s.rebuildBoard(ctx)

	metrics.RecordSeasonAdvanced()
	s.logger.Info(ctx, "season advanced", logger.Int("year", year))

	return nil
}

// ReplaceClass swaps in a new draft class. Filed reports belong to the
// outgoing class, so the report store and the board restart empty;
// scout ledgers persist for the length of a career.
func (s *Service) ReplaceClass(ctx context.Context, class []model.Prospect) error {
	s.cycleMu.Lock()
	defer s.cycleMu.Unlock()

	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return ErrNotStarted
	}
	pool := make(map[string]model.Prospect, len(class))
	for _, p := range class {
		pool[p.ID] = p
	}
	s.prospects = pool
	s.reports = repository.NewReportStore()

	// Focus slots pointing at departed subjects would stay pinned
	// forever; drop them with the class.
	next := make(map[string]model.Scout, len(s.scouts))
	for id, sc := range s.scouts {
		var kept []string
		for _, fid := range sc.FocusIDs {
			if _, ok := pool[fid]; ok {
				kept = append(kept, fid)
			}
		}
		sc.FocusIDs = kept
		next[id] = sc
	}
	s.scouts = next
	s.mu.Unlock()

	s.boardIndex.ReplaceAll(ctx, nil)
	metrics.UpdateProspectCount(len(pool))

	return nil
}

// AssignFocus puts a subject on a scout's focus list. Returns false
// when the scout or subject is unknown, the list is at capacity, or
// the subject is already focused.
func (s *Service) AssignFocus(ctx context.Context, scoutID, subjectID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	sc, ok := s.scouts[scoutID]
	if !ok {
		return false
	}
	if _, ok := s.prospects[subjectID]; !ok {
		return false
	}
	updated, ok := sc.WithFocus(subjectID, s.policy.FocusListCapacity)
	if !ok {
		return false
	}

	next := make(map[string]model.Scout, len(s.scouts))
	for id, v := range s.scouts {
		next[id] = v
	}
	next[scoutID] = updated
	s.scouts = next

	return true
}

// PickResult is one draft slot's war-room outcome.
type PickResult struct {
	Pick            int
	Selected        model.Recommendation
	Recommendations []model.Recommendation
	Unanimous       bool
}

// RunDraft walks pick slots: every scout recommends from the remaining
// pool, the top-scored recommendation is selected, and the subject
// comes off the board.
func (s *Service) RunDraft(ctx context.Context, picks int) ([]PickResult, error) {
	s.mu.RLock()
	if !s.started {
		s.mu.RUnlock()
		return nil, ErrNotStarted
	}
	prospects := s.prospects
	scouts := s.scouts
	pol := s.policy
	needs := s.needs
	store := s.reports
	s.mu.RUnlock()

	all := store.All(ctx)

	available := make([]model.Prospect, 0, len(prospects))
	for _, p := range prospects {
		available = append(available, p)
	}
	sort.Slice(available, func(i, j int) bool { return available[i].ID < available[j].ID })

	scoutIDs := sortedScoutIDs(scouts)

	results := make([]PickResult, 0, picks)
	for pick := 1; pick <= picks && len(available) > 0; pick++ {
		recs := make([]model.Recommendation, 0, len(scoutIDs))
		for _, id := range scoutIDs {
			if rec, ok := recommend.PickFor(pol, scouts[id], available, all, needs); ok {
				recs = append(recs, rec)
			}
		}
		if len(recs) == 0 {
			break
		}

		selected := recs[0]
		for _, rec := range recs[1:] {
			if rec.Score > selected.Score ||
				(rec.Score == selected.Score && rec.SubjectID < selected.SubjectID) {
				selected = rec
			}
		}

		results = append(results, PickResult{
			Pick:            pick,
			Selected:        selected,
			Recommendations: recs,
			Unanimous:       recommend.Unanimous(recs),
		})
		available = removeProspect(available, selected.SubjectID)
	}

	return results, nil
}

// RoomCall is the standing one-pick recommendation set over the whole
// remaining pool.
type RoomCall struct {
	Recommendations []model.Recommendation `json:"recommendations"`
	Unanimous       bool                   `json:"unanimous"`
}

// Recommendations asks every scout for their next pick.
func (s *Service) Recommendations(ctx context.Context) (RoomCall, error) {
	s.mu.RLock()
	if !s.started {
		s.mu.RUnlock()
		return RoomCall{}, ErrNotStarted
	}
	prospects := s.prospects
	scouts := s.scouts
	pol := s.policy
	needs := s.needs
	store := s.reports
	s.mu.RUnlock()

	all := store.All(ctx)

	available := make([]model.Prospect, 0, len(prospects))
	for _, p := range prospects {
		available = append(available, p)
	}
	sort.Slice(available, func(i, j int) bool { return available[i].ID < available[j].ID })

	call := RoomCall{}
	for _, id := range sortedScoutIDs(scouts) {
		if rec, ok := recommend.PickFor(pol, scouts[id], available, all, needs); ok {
			call.Recommendations = append(call.Recommendations, rec)
		}
	}
	call.Unanimous = recommend.Unanimous(call.Recommendations)

	return call, nil
}

// Board returns the top limit rows; a non-positive limit serves the
// whole board.
func (s *Service) Board(ctx context.Context, limit int) ([]model.ProspectRanking, error) {
	if err := s.requireStarted(); err != nil {
		return nil, err
	}
	count := s.boardIndex.Count(ctx)
	if count == 0 {
		return []model.ProspectRanking{}, nil
	}
	if limit <= 0 || limit > count {
		limit = count
	}
	return s.boardIndex.TopN(ctx, limit)
}

// SubjectRank serves one subject's current board row.
func (s *Service) SubjectRank(ctx context.Context, subjectID string) (model.ProspectRanking, error) {
	if err := s.requireStarted(); err != nil {
		return model.ProspectRanking{}, err
	}
	return s.boardIndex.Rank(ctx, subjectID)
}

// PositionBoard filters the board to one position in board order.
func (s *Service) PositionBoard(ctx context.Context, pos model.Position, limit int) ([]model.ProspectRanking, error) {
	rows, err := s.Board(ctx, 0)
	if err != nil {
		return nil, err
	}
	return bigboard.ByPosition(rows, pos, limit), nil
}

// Tiers groups the board rows by tier.
func (s *Service) Tiers(ctx context.Context) (map[model.Tier][]model.ProspectRanking, error) {
	rows, err := s.Board(ctx, 0)
	if err != nil {
		return nil, err
	}
	return bigboard.ByTier(rows), nil
}

// TrendView groups the board's movement lists.
type TrendView struct {
	Risers     []model.ProspectRanking `json:"risers"`
	Fallers    []model.ProspectRanking `json:"fallers"`
	BestValues []model.ProspectRanking `json:"best_values"`
}

// Trends serves the riser, faller, and best-value lists.
func (s *Service) Trends(ctx context.Context, limit int) (TrendView, error) {
	rows, err := s.Board(ctx, 0)
	if err != nil {
		return TrendView{}, err
	}
	return TrendView{
		Risers:     bigboard.Risers(rows, limit),
		Fallers:    bigboard.Fallers(rows, limit),
		BestValues: bigboard.BestValues(rows, limit),
	}, nil
}

// SubjectReports returns a subject's filed reports, oldest first.
func (s *Service) SubjectReports(ctx context.Context, subjectID string) ([]model.ScoutReport, error) {
	if err := s.requireStarted(); err != nil {
		return nil, err
	}
	filed := s.store().BySubject(ctx, subjectID)
	if len(filed) == 0 {
		return nil, fmt.Errorf("%w: %s", repository.ErrNotFound, subjectID)
	}
	return filed, nil
}

// Consensus analyzes the disagreement landscape over one subject's
// reports.
func (s *Service) Consensus(ctx context.Context, subjectID string) (model.Consensus, error) {
	if err := s.requireStarted(); err != nil {
		return model.Consensus{}, err
	}
	filed := s.store().BySubject(ctx, subjectID)
	if len(filed) == 0 {
		return model.Consensus{}, fmt.Errorf("%w: %s", repository.ErrNotFound, subjectID)
	}

	s.mu.RLock()
	pol := s.policy
	s.mu.RUnlock()

	return disagreement.Analyze(pol.Disagreement, subjectID, filed), nil
}

// ScoutViews projects the staff into display-safe views, sorted by ID.
// Contract terms are included only for the scout's own team.
func (s *Service) ScoutViews(ctx context.Context, sameTeam bool) []model.ScoutView {
	s.mu.RLock()
	scouts := s.scouts
	s.mu.RUnlock()

	views := make([]model.ScoutView, 0, len(scouts))
	for _, sc := range scouts {
		views = append(views, sc.PublicView(sameTeam))
	}
	sort.Slice(views, func(i, j int) bool { return views[i].ID < views[j].ID })

	return views
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started":     s.started,
		"cycle":       s.cycle,
		"year":        s.year,
		"workerCount": s.workerCount,
		"queueSize":   s.queueSize,
		"dedupeSize":  s.dedupeSize,
		"prospects":   len(s.prospects),
		"scouts":      len(s.scouts),
	}

	if s.started {
		stats["reports"] = s.reports.Count(ctx)
		stats["boardSize"] = s.boardIndex.Count(ctx)
		stats["dedupeEntries"] = s.deduper.Size()

		metrics.UpdateProspectCount(len(s.prospects))
		metrics.UpdateScoutCount(len(s.scouts))
	}

	return stats
}

// rosterSnapshot freezes one cycle's roster for the worker pool.
type rosterSnapshot struct {
	prospects map[string]model.Prospect
	scouts    map[string]model.Scout
}

func (r *rosterSnapshot) Subject(_ context.Context, id string) (model.Prospect, bool) {
	p, ok := r.prospects[id]
	return p, ok
}

func (r *rosterSnapshot) Scout(_ context.Context, id string) (model.Scout, bool) {
	sc, ok := r.scouts[id]
	return sc, ok
}

// recordLedgerEntries appends this cycle's projections to each scout's
// ledger and consumes spent focus slots.
func (s *Service) recordLedgerEntries(ctx context.Context, cycle int) {
	var filed []model.ScoutReport
	for _, rep := range s.store().All(ctx) {
		if rep.Cycle == cycle {
			filed = append(filed, rep)
		}
	}
	if len(filed) == 0 {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := make(map[string]model.Scout, len(s.scouts))
	for id, sc := range s.scouts {
		next[id] = sc
	}
	for _, rep := range filed {
		sc, ok := next[rep.ScoutID]
		if !ok {
			continue
		}
		sc.Record = trackrecord.Append(sc.Record, model.Evaluation{
			SubjectID:      rep.SubjectID,
			Position:       rep.Position,
			ProjectedRound: int(math.Round(rep.Projection.Round.Midpoint())),
			Projected:      rep.Overall,
		})
		if rep.Kind == model.ReportFocus {
			sc = sc.WithoutFocus(rep.SubjectID)
		}
		next[rep.ScoutID] = sc
	}
	s.scouts = next
}

// rebuildBoard regenerates the full board from the report set and
// publishes it to the index.
func (s *Service) rebuildBoard(ctx context.Context) {
	start := time.Now()

	s.mu.RLock()
	pol := s.policy
	needs := s.needs
	scouts := s.scouts
	store := s.reports
	s.mu.RUnlock()

	records := make(map[string]model.TrackRecord, len(scouts))
	for id, sc := range scouts {
		records[id] = sc.Record
	}

	board := bigboard.Generate(pol.Board, store.All(ctx), needs, records)
	s.boardIndex.ReplaceAll(ctx, board)

	metrics.RecordBoardRebuild(float64(time.Since(start).Milliseconds()))
	metrics.UpdateBoardSize(len(board))
}

// recordDisagreements counts the disagreement landscape at the cycle
// boundary.
func (s *Service) recordDisagreements(ctx context.Context) {
	s.mu.RLock()
	pol := s.policy
	store := s.reports
	s.mu.RUnlock()

	for _, subjectID := range store.Subjects(ctx) {
		cons := disagreement.Analyze(pol.Disagreement, subjectID, store.BySubject(ctx, subjectID))
		for _, d := range cons.Disagreements {
			metrics.RecordDisagreement(string(d.Severity))
		}
	}
}

func (s *Service) refreshSystemMetrics() {
	ticker := time.NewTicker(metricsRefreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopCh:
			return
		case <-ticker.C:
			var mem runtime.MemStats
			runtime.ReadMemStats(&mem)
			metrics.UpdateSystemMemoryUsage(mem.Alloc)
			metrics.UpdateSystemGoroutineCount(runtime.NumGoroutine())
		}
	}
}

func (s *Service) requireStarted() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return ErrNotStarted
	}
	return nil
}

func (s *Service) store() *repository.MemoryReportStore {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.reports
}

func sortedScoutIDs(scouts map[string]model.Scout) []string {
	ids := make([]string, 0, len(scouts))
	for id := range scouts {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func removeProspect(pool []model.Prospect, id string) []model.Prospect {
	out := make([]model.Prospect, 0, len(pool))
	for _, p := range pool {
		if p.ID != id {
			out = append(out, p)
		}
	}
	return out
}

func hitCount(tr model.TrackRecord) int {
	n := 0
	for _, ev := range tr.Evaluations {
		if ev.WasHit != nil && *ev.WasHit {
			n++
		}
	}
	return n
}
