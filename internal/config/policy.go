package config

import (
	"github.com/gridironlabs/warroom/internal/domain/model"
	"github.com/gridironlabs/warroom/internal/domain/policy"
)

// PolicyOverrides exposes the scouting constants a deployment is most
// likely to tune. A zero value keeps the engine default, so partial
// override files stay small.
type PolicyOverrides struct {
	// Track record.
	HitTolerance      int `koanf:"hit_tolerance"`
	MinEvaluations    int `koanf:"min_evaluations"`
	MinPositionSample int `koanf:"min_position_sample"`
	MinTendencyYears  int `koanf:"min_tendency_years"`

	// Disagreement gaps.
	SkillMajorGap    float64 `koanf:"skill_major_gap"`
	SkillModerateGap float64 `koanf:"skill_moderate_gap"`
	SkillMinorGap    float64 `koanf:"skill_minor_gap"`
	RoundMajorGap    float64 `koanf:"round_major_gap"`
	RoundModerateGap float64 `koanf:"round_moderate_gap"`

	// Confidence tag cutoffs.
	ConfidenceHighCutoff   float64 `koanf:"confidence_high_cutoff"`
	ConfidenceMediumCutoff float64 `koanf:"confidence_medium_cutoff"`

	// Board shaping and trend margins.
	NeedMultipliers  map[string]float64 `koanf:"need_multipliers"`
	BoardFocusBonus  float64            `koanf:"board_focus_bonus"`
	RiserMargin      float64            `koanf:"riser_margin"`
	ValueCutoff      float64            `koanf:"value_cutoff"`
	FallerConfidence float64            `koanf:"faller_confidence"`
}

// Apply merges the overrides onto base and returns the result. Base is
// not modified.
func (o PolicyOverrides) Apply(base policy.Policy) policy.Policy {
	p := base

	if o.HitTolerance > 0 {
		p.TrackRecord.HitTolerance = o.HitTolerance
	}
	if o.MinEvaluations > 0 {
		p.TrackRecord.MinEvaluations = o.MinEvaluations
	}
	if o.MinPositionSample > 0 {
		p.TrackRecord.MinPositionSample = o.MinPositionSample
	}
	if o.MinTendencyYears > 0 {
		p.TrackRecord.MinTendencyYears = o.MinTendencyYears
	}

	if o.SkillMajorGap > 0 {
		p.Disagreement.SkillMajorGap = o.SkillMajorGap
	}
	if o.SkillModerateGap > 0 {
		p.Disagreement.SkillModerateGap = o.SkillModerateGap
	}
	if o.SkillMinorGap > 0 {
		p.Disagreement.SkillMinorGap = o.SkillMinorGap
	}
	if o.RoundMajorGap > 0 {
		p.Disagreement.RoundMajorGap = o.RoundMajorGap
	}
	if o.RoundModerateGap > 0 {
		p.Disagreement.RoundModerateGap = o.RoundModerateGap
	}

	if o.ConfidenceHighCutoff > 0 {
		p.Confidence.HighCutoff = o.ConfidenceHighCutoff
	}
	if o.ConfidenceMediumCutoff > 0 {
		p.Confidence.MediumCutoff = o.ConfidenceMediumCutoff
	}

	if len(o.NeedMultipliers) > 0 {
		merged := make(map[model.NeedTier]float64, len(base.Board.NeedMultipliers))
		for tier, mult := range base.Board.NeedMultipliers {
			merged[tier] = mult
		}
		for name, mult := range o.NeedMultipliers {
			merged[model.NeedTier(name)] = mult
		}
		p.Board.NeedMultipliers = merged
	}
	if o.BoardFocusBonus > 0 {
		p.Board.FocusBonus = o.BoardFocusBonus
	}
	if o.RiserMargin > 0 {
		p.Board.RiserMargin = o.RiserMargin
	}
	if o.ValueCutoff > 0 {
		p.Board.ValueCutoff = o.ValueCutoff
	}
	if o.FallerConfidence > 0 {
		p.Board.FallerConfidence = o.FallerConfidence
	}

	return p
}
