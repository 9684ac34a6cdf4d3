// Package bigboard turns the full report set into the ranked draft
// board, with positional views, tiers, and trend flags derived from
// the one ranking.
package bigboard

import (
	"sort"

	"github.com/gridironlabs/warroom/internal/domain/model"
	"github.com/gridironlabs/warroom/internal/domain/policy"
	"github.com/gridironlabs/warroom/internal/domain/report"
)

// Generate ranks every subject in the report set. Raw skill is the
// plain mean of overall midpoints; weighted skill trusts each scout by
// revealed reliability; the need multiplier and the flat focus bonus
// turn it into the need-adjusted score the board sorts on. Ties break
// on subject ID, so identical inputs always produce the identical
// board. Subjects without reports simply do not appear.
func Generate(p policy.Board, reports []model.ScoutReport, needs model.Needs, records map[string]model.TrackRecord) []model.ProspectRanking {
	bySubject := make(map[string][]model.ScoutReport)
	for _, r := range reports {
		bySubject[r.SubjectID] = append(bySubject[r.SubjectID], r)
	}

	rows := make([]model.ProspectRanking, 0, len(bySubject))
	for id, reps := range bySubject {
		rows = append(rows, rank(p, id, reps, needs, records))
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].NeedScore != rows[j].NeedScore {
			return rows[i].NeedScore > rows[j].NeedScore
		}
		return rows[i].SubjectID < rows[j].SubjectID
	})
	for i := range rows {
		rows[i].Rank = i + 1
	}
	return rows
}

// Reliability is the trust weight one scout's report carries at a
// position: the revealed position rate when its sample supports one,
// else the revealed overall rate, else the neutral default. A scout
// with nothing revealed never earns extra trust.
func Reliability(p policy.Board, rec model.TrackRecord, pos model.Position) float64 {
	if !rec.ReliabilityRevealed {
		return p.DefaultReliability
	}
	if rate, ok := rec.PositionHitRate[pos]; ok {
		return rate
	}
	if rec.OverallHitRate != nil {
		return *rec.OverallHitRate
	}
	return p.DefaultReliability
}

// ByPosition filters the board to one position in board order.
func ByPosition(rankings []model.ProspectRanking, pos model.Position, limit int) []model.ProspectRanking {
	return filtered(rankings, limit, func(r model.ProspectRanking) bool {
		return r.Position == pos
	})
}

// ByTier buckets the board into its tiers, board order inside each.
func ByTier(rankings []model.ProspectRanking) map[model.Tier][]model.ProspectRanking {
	out := make(map[model.Tier][]model.ProspectRanking)
	for _, r := range rankings {
		out[r.Tier] = append(out[r.Tier], r)
	}
	return out
}

// BestValues lists flagged best-value subjects in board order. A limit
// at or under zero means no limit; the same holds for Risers and
// Fallers.
func BestValues(rankings []model.ProspectRanking, limit int) []model.ProspectRanking {
	return filtered(rankings, limit, func(r model.ProspectRanking) bool { return r.BestValue })
}

// Risers lists subjects whose skill runs ahead of their projected
// round, in board order.
func Risers(rankings []model.ProspectRanking, limit int) []model.ProspectRanking {
	return filtered(rankings, limit, func(r model.ProspectRanking) bool { return r.Riser })
}

// Fallers lists early-round subjects the room is unsure about, in
// board order.
func Fallers(rankings []model.ProspectRanking, limit int) []model.ProspectRanking {
	return filtered(rankings, limit, func(r model.ProspectRanking) bool { return r.Faller })
}

func rank(p policy.Board, id string, reps []model.ScoutReport, needs model.Needs, records map[string]model.TrackRecord) model.ProspectRanking {
	var sumMid, sumWeight, sumWeighted, sumConf, sumRoundMid, sumRoundLate float64
	focus := false
	for _, r := range reps {
		mid := r.Overall.Midpoint()
		w := Reliability(p, records[r.ScoutID], r.Position)
		sumMid += mid
		sumWeight += w
		sumWeighted += w * mid
		sumConf += r.Confidence.Score
		sumRoundMid += r.Projection.Round.Midpoint()
		sumRoundLate += float64(r.Projection.Round.Late)
		if r.Kind == model.ReportFocus {
			focus = true
		}
	}

	n := float64(len(reps))
	raw := sumMid / n
	weighted := raw
	if sumWeight > 0 {
		weighted = sumWeighted / sumWeight
	}
	conf := sumConf / n
	roundMid := sumRoundMid / n
	roundLate := sumRoundLate / n

	needScore := weighted * multiplier(p, needs[reps[0].Position])
	if focus {
		needScore += p.FocusBonus
	}

	return model.ProspectRanking{
		SubjectID:      id,
		Position:       reps[0].Position,
		RawSkill:       raw,
		WeightedSkill:  weighted,
		Confidence:     conf,
		NeedScore:      needScore,
		RoundMid:       roundMid,
		Tier:           tierFor(p, needScore),
		HasFocusReport: focus,
		BestValue:      roundMid >= float64(p.ValueMinRound) && raw/roundMid*p.ValueScale >= p.ValueCutoff,
		Riser:          raw-report.ExpectedSkill(roundLate) >= p.RiserMargin,
		Faller:         roundMid <= float64(p.FallerMaxRound) && conf < p.FallerConfidence,
	}
}

func multiplier(p policy.Board, tier model.NeedTier) float64 {
	if tier == "" {
		tier = model.NeedNone
	}
	if m, ok := p.NeedMultipliers[tier]; ok {
		return m
	}
	return 1
}

func tierFor(p policy.Board, score float64) model.Tier {
	switch {
	case score >= p.EliteCutoff:
		return model.TierElite
	case score >= p.FirstRoundCutoff:
		return model.TierFirstRound
	case score >= p.DayTwoCutoff:
		return model.TierDayTwo
	default:
		return model.TierDayThree
	}
}

func filtered(rankings []model.ProspectRanking, limit int, keep func(model.ProspectRanking) bool) []model.ProspectRanking {
	out := make([]model.ProspectRanking, 0)
	for _, r := range rankings {
		if !keep(r) {
			continue
		}
		out = append(out, r)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}
