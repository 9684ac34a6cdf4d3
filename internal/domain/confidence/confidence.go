// Package confidence scores how much an evaluation can be trusted and
// narrows estimate ranges accordingly.
package confidence

import (
	"math"

	"github.com/gridironlabs/warroom/internal/domain/estimate"
	"github.com/gridironlabs/warroom/internal/domain/model"
	"github.com/gridironlabs/warroom/internal/domain/policy"
)

// Factor names, kept stable for display.
const (
	FactorScoutQuality = "scout quality"
	FactorTimeInvested = "time invested"
	FactorDepth        = "scouting depth"
	FactorRegionFit    = "region fit"
	FactorPositionFit  = "position fit"
	FactorTendency     = "tendency"
)

// Input carries everything confidence scoring reads. Tendency fields
// must reflect the track record as of the start of the cycle, never a
// value produced later in the same cycle.
type Input struct {
	ScoutSkill       int
	TimeHours        float64
	Kind             model.ReportKind
	ScoutRegion      model.Region // zero value when the scout roams
	SubjectRegion    model.Region
	ScoutSpecialty   model.Position // zero value when none
	SubjectPosition  model.Position
	Tendency         model.Tendency
	TendencyStrength float64 // [0,1]
	TendencyKnown    bool    // true only once tendencies are revealed
}

// Score computes the 0-100 confidence for one evaluation with its
// factor breakdown. Only non-zero contributors are itemized. A known
// bias always costs confidence; a consistently wrong scout is never
// more trustworthy for being consistent.
func Score(p policy.Confidence, in Input) model.Confidence {
	factors := make([]model.ConfidenceFactor, 0, 6)

	score := float64(in.ScoutSkill)
	factors = append(factors, model.ConfidenceFactor{Name: FactorScoutQuality, Delta: score})

	if in.TimeHours > 0 {
		halfSat := p.AutoTimeHalfSat
		if in.Kind == model.ReportFocus {
			halfSat = p.FocusTimeHalfSat
		}
		bonus := p.MaxTimeBonus * in.TimeHours / (in.TimeHours + halfSat)
		score += bonus
		factors = append(factors, model.ConfidenceFactor{Name: FactorTimeInvested, Delta: bonus})
	}

	if in.Kind == model.ReportFocus && p.FocusDepthBonus != 0 {
		score += p.FocusDepthBonus
		factors = append(factors, model.ConfidenceFactor{Name: FactorDepth, Delta: p.FocusDepthBonus})
	}

	if delta := regionFit(p, in); delta != 0 {
		score += delta
		factors = append(factors, model.ConfidenceFactor{Name: FactorRegionFit, Delta: delta})
	}

	if delta := positionFit(p, in); delta != 0 {
		score += delta
		factors = append(factors, model.ConfidenceFactor{Name: FactorPositionFit, Delta: delta})
	}

	if in.TendencyKnown && in.Tendency != model.TendencyNeutral && in.TendencyStrength > 0 {
		penalty := p.TendencyPenaltyMax * clamp01(in.TendencyStrength)
		score -= penalty
		factors = append(factors, model.ConfidenceFactor{Name: FactorTendency, Delta: -penalty})
	}

	score = math.Min(math.Max(score, 0), 100)

	return model.Confidence{
		Score:   score,
		Level:   LevelFor(p, score),
		Factors: factors,
	}
}

// LevelFor maps a confidence score to its categorical level.
func LevelFor(p policy.Confidence, score float64) model.Level {
	switch {
	case score >= p.HighCutoff:
		return model.LevelHigh
	case score >= p.MediumCutoff:
		return model.LevelMedium
	default:
		return model.LevelLow
	}
}

// Narrow shrinks a range around its center in proportion to the
// confidence score, by the same amount from each side so the midpoint
// never moves. The shrink is capped at MaxNarrowFraction of the width
// and the range never widens.
func Narrow(p policy.Policy, r model.SkillRange, score float64) model.SkillRange {
	frac := clamp01(score/100) * p.Confidence.MaxNarrowFraction
	perSide := int(math.Floor(float64(r.Width()) * frac / 2))
	if perSide <= 0 {
		return r
	}

	out := model.SkillRange{Min: r.Min + perSide, Max: r.Max - perSide}
	out.Tag = estimate.WidthTag(p.Estimation, out.Width())
	return out
}

func regionFit(p policy.Confidence, in Input) float64 {
	switch {
	case in.ScoutRegion != "" && in.ScoutRegion == in.SubjectRegion:
		return p.RegionBonus
	case in.ScoutRegion == "":
		return p.RegionPartial
	default:
		return 0
	}
}

func positionFit(p policy.Confidence, in Input) float64 {
	switch {
	case in.ScoutSpecialty != "" && in.ScoutSpecialty == in.SubjectPosition:
		return p.PositionBonus
	case in.ScoutSpecialty == "":
		return p.PositionPartial
	default:
		return 0
	}
}

func clamp01(v float64) float64 {
	return math.Min(math.Max(v, 0), 1)
}
