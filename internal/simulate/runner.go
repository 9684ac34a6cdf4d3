// Package simulate plays full scouting arcs against an in-process
// service: generate a roster, scout it for a number of seasons, draft,
// and verify the engine's live invariants along the way.
package simulate

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gridironlabs/warroom/internal/app"
	"github.com/gridironlabs/warroom/internal/domain/model"
	"github.com/gridironlabs/warroom/internal/domain/policy"
	"github.com/gridironlabs/warroom/internal/draftgen"
	"github.com/gridironlabs/warroom/pkg/logger"
)

const timeRound = time.Millisecond

// ErrBadConfig is returned when the simulation config cannot produce a
// meaningful arc.
var ErrBadConfig = errors.New("bad simulation config")

func (c *Config) validate() error {
	switch {
	case c.Seasons < 1:
		return fmt.Errorf("%w: seasons must be positive", ErrBadConfig)
	case c.Cycles < 1:
		return fmt.Errorf("%w: cycles must be positive", ErrBadConfig)
	case c.ClassSize < 1:
		return fmt.Errorf("%w: class size must be positive", ErrBadConfig)
	case c.StaffSize < 1:
		return fmt.Errorf("%w: staff size must be positive", ErrBadConfig)
	case c.Picks < 1:
		return fmt.Errorf("%w: picks must be positive", ErrBadConfig)
	case c.Workers < 1:
		return fmt.Errorf("%w: workers must be positive", ErrBadConfig)
	}
	return nil
}

// Run plays the configured arc: every season scouts the class over the
// weekly cycles, the offseason reveals track records and swaps in a
// fresh class, and the final season ends in a draft. The board and the
// draft are rendered as the arc unfolds, and every invariant check
// failure is collected; the returned error wraps ErrVerification when
// any check failed.
func Run(ctx context.Context, cfg *Config) (*Stats, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	log := logger.Get()
	stats := &Stats{StartTime: time.Now()}
	check := newVerifier(stats)
	pol := policy.Default()

	gen := draftgen.New(cfg.Seed)
	class := gen.Class(cfg.ClassSize)
	staff := gen.Staff(cfg.StaffSize)
	names := nameIndex(class, staff)

	svc := app.New(
		app.WithRoster(class, staff),
		app.WithSeed(cfg.Seed),
		app.WithWorkerCount(cfg.Workers),
		app.WithNeeds(warRoomNeeds()),
	)
	if err := svc.Start(ctx); err != nil {
		return stats, fmt.Errorf("starting service: %w", err)
	}
	defer svc.Stop()

	log.Info(ctx, "simulation started",
		logger.Any("seed", cfg.Seed),
		logger.Int("seasons", cfg.Seasons),
		logger.Int("cycles", cfg.Cycles),
		logger.Int("class", cfg.ClassSize),
		logger.Int("staff", cfg.StaffSize))

	for season := 1; season <= cfg.Seasons; season++ {
		for week := 1; week <= cfg.Cycles; week++ {
			if err := svc.RunCycle(ctx); err != nil {
				return stats, fmt.Errorf("season %d cycle %d: %w", season, week, err)
			}
			stats.CyclesRun++
			if week == 1 {
				if err := assignFocusTargets(ctx, svc, staff); err != nil {
					return stats, err
				}
			}
		}
		stats.SeasonsRun++
		log.Info(ctx, "season scouted", logger.Int("season", season), logger.Int("cycles", cfg.Cycles))

		if err := check.checkReports(ctx, svc, pol, class); err != nil {
			return stats, err
		}
		if err := check.checkBoard(ctx, svc); err != nil {
			return stats, err
		}

		if !cfg.Quiet && (cfg.Verbose || season == cfg.Seasons) {
			rows, err := svc.Board(ctx, 0)
			if err != nil {
				return stats, fmt.Errorf("fetching board: %w", err)
			}
			renderBoard(season, rows, cfg.BoardRows, names)
		}

		if season == cfg.Seasons {
			break // the final class gets drafted, not replaced
		}
		if err := svc.AdvanceSeason(ctx); err != nil {
			return stats, fmt.Errorf("advancing after season %d: %w", season, err)
		}
		check.checkReveals(ctx, svc, season, pol)

		class = gen.Class(cfg.ClassSize)
		names = nameIndex(class, staff)
		if err := svc.ReplaceClass(ctx, class); err != nil {
			return stats, fmt.Errorf("replacing class after season %d: %w", season, err)
		}
	}

	picks, err := svc.RunDraft(ctx, cfg.Picks)
	if err != nil {
		return stats, fmt.Errorf("running draft: %w", err)
	}
	stats.PicksMade = len(picks)
	check.checkDraft(picks, cfg.Picks)
	if !cfg.Quiet {
		renderDraft(picks, names)
		renderScouts(svc.ScoutViews(ctx, true))
	}

	primary, err := svc.Board(ctx, 0)
	if err != nil {
		return stats, fmt.Errorf("fetching final board: %w", err)
	}
	replica, err := replayBoard(ctx, cfg, cfg.Workers*2+1)
	if err != nil {
		return stats, fmt.Errorf("replaying arc: %w", err)
	}
	check.checkReplay(primary, replica)

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	renderChecks(stats, check.failures)
	renderSummary(stats)

	if err := check.err(); err != nil {
		return stats, err
	}
	log.Info(ctx, "simulation complete",
		logger.Int("cycles", stats.CyclesRun),
		logger.Int("reports", stats.ReportsSeen),
		logger.Int("checks", stats.ChecksRun))
	return stats, nil
}

// Preview scouts a single season and renders the resulting board, a
// quick look at what a seed produces. No draft, no verification.
func Preview(ctx context.Context, cfg *Config) error {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.validate(); err != nil {
		return err
	}

	gen := draftgen.New(cfg.Seed)
	class := gen.Class(cfg.ClassSize)
	staff := gen.Staff(cfg.StaffSize)

	svc := app.New(
		app.WithRoster(class, staff),
		app.WithSeed(cfg.Seed),
		app.WithWorkerCount(cfg.Workers),
		app.WithNeeds(warRoomNeeds()),
	)
	if err := svc.Start(ctx); err != nil {
		return fmt.Errorf("starting service: %w", err)
	}
	defer svc.Stop()

	for week := 1; week <= cfg.Cycles; week++ {
		if err := svc.RunCycle(ctx); err != nil {
			return fmt.Errorf("cycle %d: %w", week, err)
		}
		if week == 1 {
			if err := assignFocusTargets(ctx, svc, staff); err != nil {
				return err
			}
		}
	}

	rows, err := svc.Board(ctx, 0)
	if err != nil {
		return fmt.Errorf("fetching board: %w", err)
	}
	renderBoard(1, rows, cfg.BoardRows, nameIndex(class, staff))
	return nil
}

// replayBoard replays the identical arc with a different worker count
// and returns the final board. Estimates are seeded per assignment, so
// scheduling must not move a single row.
func replayBoard(ctx context.Context, cfg *Config, workers int) ([]model.ProspectRanking, error) {
	gen := draftgen.New(cfg.Seed)
	class := gen.Class(cfg.ClassSize)
	staff := gen.Staff(cfg.StaffSize)

	svc := app.New(
		app.WithRoster(class, staff),
		app.WithSeed(cfg.Seed),
		app.WithWorkerCount(workers),
		app.WithNeeds(warRoomNeeds()),
	)
	if err := svc.Start(ctx); err != nil {
		return nil, err
	}
	defer svc.Stop()

	for season := 1; season <= cfg.Seasons; season++ {
		for week := 1; week <= cfg.Cycles; week++ {
			if err := svc.RunCycle(ctx); err != nil {
				return nil, err
			}
			if week == 1 {
				if err := assignFocusTargets(ctx, svc, staff); err != nil {
					return nil, err
				}
			}
		}
		if season == cfg.Seasons {
			break
		}
		if err := svc.AdvanceSeason(ctx); err != nil {
			return nil, err
		}
		if err := svc.ReplaceClass(ctx, gen.Class(cfg.ClassSize)); err != nil {
			return nil, err
		}
	}
	return svc.Board(ctx, 0)
}

// assignFocusTargets points each scout at one of the current top board
// subjects for a deep evaluation, in staff order so the arc stays
// reproducible. Slots already holding the subject are left alone.
func assignFocusTargets(ctx context.Context, svc *app.Service, staff []model.Scout) error {
	rows, err := svc.Board(ctx, len(staff))
	if err != nil {
		return fmt.Errorf("fetching board for focus targets: %w", err)
	}
	for i, sc := range staff {
		if i >= len(rows) {
			break
		}
		svc.AssignFocus(ctx, sc.ID, rows[i].SubjectID)
	}
	return nil
}

// warRoomNeeds is the positional context the simulated front office
// scouts and drafts under.
func warRoomNeeds() model.Needs {
	return model.Needs{
		model.PosQB:   model.NeedImportant,
		model.PosEDGE: model.NeedCritical,
		model.PosWR:   model.NeedModerate,
		model.PosCB:   model.NeedImportant,
		model.PosIOL:  model.NeedLow,
	}
}

func nameIndex(class []model.Prospect, staff []model.Scout) map[string]string {
	names := make(map[string]string, len(class)+len(staff))
	for _, p := range class {
		names[p.ID] = p.Name
	}
	for _, s := range staff {
		names[s.ID] = s.Name
	}
	return names
}
