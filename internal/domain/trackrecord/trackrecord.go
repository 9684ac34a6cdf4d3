// Package trackrecord maintains scout evaluation ledgers, hit
// classification, and the reveal state machine. Every function is pure:
// records come in by value and updated copies go out, so a snapshot
// taken at the start of a cycle is never disturbed by later work.
package trackrecord

import (
	"math"
	"sort"

	"github.com/gridironlabs/warroom/internal/domain/model"
	"github.com/gridironlabs/warroom/internal/domain/policy"
)

// Append returns a copy of the record with one more ledger entry.
func Append(tr model.TrackRecord, ev model.Evaluation) model.TrackRecord {
	out := tr
	out.Evaluations = append(append([]model.Evaluation(nil), tr.Evaluations...), ev)
	return out
}

// WasHit classifies a resolved projection. Inside the projected range,
// or within the tolerance band of its nearest bound, counts as a hit.
func WasHit(p policy.TrackRecord, projected model.SkillRange, actual int) bool {
	return projected.Distance(actual) <= p.HitTolerance
}

// Resolve fills the actual outcome into every pending evaluation of
// subjectID and classifies each hit. Evaluations already resolved are
// left alone.
func Resolve(p policy.TrackRecord, tr model.TrackRecord, subjectID string, actualRound, actualSkill int) model.TrackRecord {
	out := tr
	out.Evaluations = append([]model.Evaluation(nil), tr.Evaluations...)
	for i := range out.Evaluations {
		ev := &out.Evaluations[i]
		if ev.SubjectID != subjectID || ev.WasHit != nil {
			continue
		}
		round := actualRound
		skill := actualSkill
		hit := WasHit(p, ev.Projected, skill)
		ev.ActualRound = &round
		ev.ActualSkill = &skill
		ev.WasHit = &hit
	}
	return out
}

// AdvanceYear bumps tenure and recomputes the derived state.
func AdvanceYear(p policy.TrackRecord, tr model.TrackRecord) model.TrackRecord {
	out := tr
	out.Evaluations = append([]model.Evaluation(nil), tr.Evaluations...)
	out.Years = tr.Years + 1
	return Recompute(p, out)
}

// Recompute derives hit rates, strengths and weaknesses, reveal flags,
// and tendency from the ledger. Reveal transitions are one-way and fire
// exactly at their thresholds. Tendency stays neutral without both
// reveals and a sufficient sample; the engine never guesses a bias from
// thin data.
func Recompute(p policy.TrackRecord, tr model.TrackRecord) model.TrackRecord {
	out := tr

	completed, hits := 0, 0
	posCompleted := make(map[model.Position]int)
	posHits := make(map[model.Position]int)
	deltaSum, deltaCount := 0.0, 0

	for _, ev := range tr.Evaluations {
		if ev.WasHit == nil {
			continue
		}
		completed++
		posCompleted[ev.Position]++
		if *ev.WasHit {
			hits++
			posHits[ev.Position]++
		}
		if ev.ActualSkill != nil {
			deltaSum += ev.Projected.Midpoint() - float64(*ev.ActualSkill)
			deltaCount++
		}
	}

	out.OverallHitRate = nil
	if completed >= p.MinEvaluations {
		rate := float64(hits) / float64(completed)
		out.OverallHitRate = &rate
	}

	rates := make(map[model.Position]float64)
	var strengths, weaknesses []model.Position
	for pos, n := range posCompleted {
		if n < p.MinPositionSample {
			continue
		}
		rate := float64(posHits[pos]) / float64(n)
		rates[pos] = rate
		switch {
		case rate >= p.StrengthCutoff:
			strengths = append(strengths, pos)
		case rate <= p.WeaknessCutoff:
			weaknesses = append(weaknesses, pos)
		}
	}
	sortPositions(strengths)
	sortPositions(weaknesses)
	out.PositionHitRate = rates
	out.Strengths = strengths
	out.Weaknesses = weaknesses

	out.ReliabilityRevealed = tr.ReliabilityRevealed || completed >= p.MinEvaluations
	out.TendenciesRevealed = tr.TendenciesRevealed || out.Years >= p.MinTendencyYears

	out.Tendency = model.TendencyNeutral
	out.TendencyStrength = 0
	if out.ReliabilityRevealed && out.TendenciesRevealed && deltaCount >= p.MinTendencySample {
		mean := deltaSum / float64(deltaCount)
		if math.Abs(mean) >= p.TendencyThreshold {
			if mean > 0 {
				out.Tendency = model.TendencyOptimistic
			} else {
				out.Tendency = model.TendencyPessimistic
			}
			out.TendencyStrength = math.Min(math.Abs(mean)/p.TendencyMaxDelta, 1)
		}
	}

	return out
}

func sortPositions(positions []model.Position) {
	sort.Slice(positions, func(i, j int) bool { return positions[i] < positions[j] })
}
