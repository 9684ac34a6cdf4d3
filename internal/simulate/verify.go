package simulate

import (
	"context"
	"errors"
	"fmt"
	"reflect"

	"github.com/gridironlabs/warroom/internal/adapters/repository"
	"github.com/gridironlabs/warroom/internal/app"
	"github.com/gridironlabs/warroom/internal/domain/model"
	"github.com/gridironlabs/warroom/internal/domain/policy"
)

// ErrVerification is returned by Run when any live invariant check
// fails over the course of the simulation.
var ErrVerification = errors.New("simulation verification failed")

// verifier accumulates invariant checks against a running service. It
// collects failures rather than stopping so one run surfaces every
// broken invariant at once.
type verifier struct {
	stats    *Stats
	failures []string
}

func newVerifier(stats *Stats) *verifier {
	return &verifier{stats: stats}
}

func (v *verifier) checkf(ok bool, format string, args ...interface{}) {
	v.stats.ChecksRun++
	if ok {
		return
	}
	v.stats.ChecksFailed++
	v.failures = append(v.failures, fmt.Sprintf(format, args...))
}

// err reduces the collected failures to a single wrapped error.
func (v *verifier) err() error {
	if len(v.failures) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %d of %d checks failed, first: %s",
		ErrVerification, v.stats.ChecksFailed, v.stats.ChecksRun, v.failures[0])
}

// checkReports validates every filed report against the class ground
// truth: ranges stay on the attribute scale and never drift beyond the
// hit tolerance of the true value, trait accounting balances, focus
// reports carry their detail and hide nothing, and a focus look is
// never wider than the same scout's auto look at the same subject.
func (v *verifier) checkReports(ctx context.Context, svc *app.Service, pol policy.Policy, class []model.Prospect) error {
	for _, subject := range class {
		reports, err := svc.SubjectReports(ctx, subject.ID)
		if errors.Is(err, repository.ErrNotFound) {
			continue // not every subject draws coverage every season
		}
		if err != nil {
			return fmt.Errorf("fetching reports for %s: %w", subject.ID, err)
		}
		v.stats.ReportsSeen += len(reports)

		// The range width is a pure function of scout, subject, and
		// kind, so one width per scout and kind is enough to compare.
		autoWidth := make(map[string]int)
		focusWidth := make(map[string]int)
		for _, rep := range reports {
			v.checkReport(pol, subject, rep)
			switch rep.Kind {
			case model.ReportAuto:
				autoWidth[rep.ScoutID] = rep.Overall.Width()
			case model.ReportFocus:
				focusWidth[rep.ScoutID] = rep.Overall.Width()
			}
		}
		for scoutID, fw := range focusWidth {
			aw, ok := autoWidth[scoutID]
			if !ok {
				continue
			}
			v.checkf(fw <= aw,
				"subject %s scout %s: focus overall width %d exceeds auto width %d",
				subject.ID, scoutID, fw, aw)
		}
	}
	return nil
}

func (v *verifier) checkReport(pol policy.Policy, subject model.Prospect, rep model.ScoutReport) {
	probes := []struct {
		name  string
		r     model.SkillRange
		truth int
	}{
		{"overall", rep.Overall, subject.Attributes.Overall},
		{"physical", rep.Physical, subject.Attributes.Physical},
		{"technical", rep.Technical, subject.Attributes.Technical},
	}
	for _, probe := range probes {
		v.checkf(probe.r.Min >= model.AttrMin && probe.r.Max <= model.AttrMax && probe.r.Min <= probe.r.Max,
			"report %s: %s range %d-%d leaves the attribute scale",
			rep.ID, probe.name, probe.r.Min, probe.r.Max)
		// Confidence narrowing may push the true value just outside the
		// range; it can never push it past the hit tolerance.
		v.checkf(probe.r.Distance(probe.truth) <= pol.TrackRecord.HitTolerance,
			"report %s: %s range %d-%d misses the true value %d beyond tolerance",
			rep.ID, probe.name, probe.r.Min, probe.r.Max, probe.truth)
	}

	round := rep.Projection.Round
	v.checkf(round.Early >= model.RoundMin && round.Late <= model.RoundMax && round.Early <= round.Late,
		"report %s: round window %d-%d out of bounds", rep.ID, round.Early, round.Late)

	v.checkf(rep.Confidence.Score >= 0 && rep.Confidence.Score <= 100,
		"report %s: confidence score %.1f off the scale", rep.ID, rep.Confidence.Score)

	v.checkf((rep.Kind == model.ReportFocus) == (rep.Focus != nil),
		"report %s: kind %s disagrees with its focus detail", rep.ID, rep.Kind)
	if rep.Kind == model.ReportFocus {
		v.checkf(rep.HiddenTraitCount == 0,
			"focus report %s withholds %d traits", rep.ID, rep.HiddenTraitCount)
	}

	v.checkf(len(rep.Traits)+rep.HiddenTraitCount == len(subject.Traits),
		"report %s: %d revealed plus %d hidden traits do not add up to %d",
		rep.ID, len(rep.Traits), rep.HiddenTraitCount, len(subject.Traits))

	v.checkf(rep.Measurements.HeightIn == subject.HeightIn && rep.Measurements.WeightLb == subject.WeightLb,
		"report %s: measurements drifted from the subject's verified numbers", rep.ID)
}

// checkBoard validates ranking order and tier partitioning: ranks are
// gapless, rows descend by need score with identifier tie-breaks, and
// the tier map partitions exactly the board rows.
func (v *verifier) checkBoard(ctx context.Context, svc *app.Service) error {
	rows, err := svc.Board(ctx, 0)
	if err != nil {
		return fmt.Errorf("fetching board: %w", err)
	}
	v.checkf(len(rows) > 0, "board is empty after a full season of cycles")

	for i, row := range rows {
		v.checkf(row.Rank == i+1, "board row %d: rank %d is not gapless", i, row.Rank)
		if i == 0 {
			continue
		}
		prev := rows[i-1]
		ordered := prev.NeedScore > row.NeedScore ||
			(prev.NeedScore == row.NeedScore && prev.SubjectID < row.SubjectID)
		v.checkf(ordered, "board rows %d and %d out of order (%.2f then %.2f)",
			i-1, i, prev.NeedScore, row.NeedScore)
	}

	tiers, err := svc.Tiers(ctx)
	if err != nil {
		return fmt.Errorf("fetching tiers: %w", err)
	}
	total := 0
	for tier, members := range tiers {
		total += len(members)
		for _, row := range members {
			v.checkf(row.Tier == tier, "subject %s filed under tier %s but labeled %s",
				row.SubjectID, tier, row.Tier)
		}
	}
	v.checkf(total == len(rows), "tier partition holds %d of %d board rows", total, len(rows))
	return nil
}

// checkReveals validates the public scout projections: the accuracy
// label and the hit rate reveal together, revealed rates stay in [0,1],
// tendencies stay hidden before the tenure gate, and own-team views
// carry contract terms.
func (v *verifier) checkReveals(ctx context.Context, svc *app.Service, seasonsCompleted int, pol policy.Policy) {
	for _, view := range svc.ScoutViews(ctx, true) {
		unproven := view.AccuracyLabel == "unproven"
		v.checkf(unproven == (view.HitRate == nil),
			"scout %s: label %q disagrees with hit-rate reveal", view.ID, view.AccuracyLabel)
		if view.HitRate != nil {
			v.checkf(*view.HitRate >= 0 && *view.HitRate <= 1,
				"scout %s: hit rate %.3f off the scale", view.ID, *view.HitRate)
		}
		if seasonsCompleted < pol.TrackRecord.MinTendencyYears {
			v.checkf(view.Tendency == "",
				"scout %s: tendency %q revealed after only %d seasons",
				view.ID, view.Tendency, seasonsCompleted)
		}
		v.checkf(view.Contract != nil, "scout %s: own-team view is missing contract terms", view.ID)
	}
}

// checkDraft validates the pick walk: slots are numbered from one, no
// subject is taken twice, each slot selects its top-scored
// recommendation, and the unanimity flag matches the room.
func (v *verifier) checkDraft(picks []app.PickResult, want int) {
	v.checkf(len(picks) > 0 && len(picks) <= want,
		"draft produced %d picks for %d slots", len(picks), want)

	taken := make(map[string]bool, len(picks))
	for i, pick := range picks {
		v.checkf(pick.Pick == i+1, "pick slots out of order at %d", pick.Pick)
		v.checkf(!taken[pick.Selected.SubjectID],
			"subject %s drafted twice", pick.Selected.SubjectID)
		taken[pick.Selected.SubjectID] = true

		unanimous := true
		for _, rec := range pick.Recommendations {
			v.checkf(pick.Selected.Score >= rec.Score,
				"pick %d: selected score %.2f below a room recommendation at %.2f",
				pick.Pick, pick.Selected.Score, rec.Score)
			if rec.SubjectID != pick.Recommendations[0].SubjectID {
				unanimous = false
			}
		}
		v.checkf(pick.Unanimous == unanimous, "pick %d: unanimity flag mislabeled", pick.Pick)
	}
}

// checkReplay compares the primary run's final board against a replay
// of the identical arc. Reports are seeded per assignment, so worker
// count and scheduling must not move a single row.
func (v *verifier) checkReplay(primary, replica []model.ProspectRanking) {
	v.checkf(reflect.DeepEqual(primary, replica),
		"replayed board diverges from the primary run (%d vs %d rows)",
		len(primary), len(replica))
}
