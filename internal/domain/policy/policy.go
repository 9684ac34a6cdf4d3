// Package policy holds the tunable constants of the scouting engine.
// Every threshold the engine applies lives here so config can override
// it without touching the algorithms.
package policy

import "github.com/gridironlabs/warroom/internal/domain/model"

// Estimation governs how true values become bounded ranges.
type Estimation struct {
	BaseHalfWidth     float64 // half-width floor before modifiers
	SkillWidthFactor  float64 // widening per point of missing scout skill
	MaxVisibilityMult float64 // half-width multiplier at zero visibility
	FocusDepthFactor  float64 // < 1, shrink applied by focus evaluations
	MinHalfWidth      float64
	MaxHalfWidth      float64
	MaxNoiseFraction  float64 // center shift bound as a fraction of half-width
	NarrowWidth       int     // width at or under this tags high
	MediumWidth       int     // width at or under this tags medium
	TraitBase         float64 // revealed trait fraction floor
	TraitSkillShare   float64 // trait fraction earned by scout skill
	TraitVisShare     float64 // trait fraction earned by visibility
}

// Confidence governs the 0-100 confidence score and range narrowing.
type Confidence struct {
	MaxTimeBonus       float64 // ceiling of the time-invested bonus
	AutoTimeHalfSat    float64 // hours to reach half the bonus on auto reports
	FocusTimeHalfSat   float64 // hours to reach half the bonus on focus reports
	RegionBonus        float64 // exact region match
	RegionPartial      float64 // scout with no fixed region
	PositionBonus      float64 // exact specialty match
	PositionPartial    float64 // scout with no specialty
	FocusDepthBonus    float64 // flat bonus on focus evaluations
	TendencyPenaltyMax float64 // penalty at tendency strength 1.0
	HighCutoff         float64
	MediumCutoff       float64
	MaxNarrowFraction  float64 // confidence never narrows a range further than this
}

// TrackRecord governs hit classification, reveal thresholds, and
// tendency derivation.
type TrackRecord struct {
	HitTolerance      int     // points outside the range still counted a hit
	MinEvaluations    int     // completed evaluations before reliability reveals
	MinPositionSample int     // completed per position before its rate shows
	MinTendencyYears  int     // tenure before tendencies reveal
	MinTendencySample int     // completed evaluations before tendency is derived
	StrengthCutoff    float64 // per-position rate at or above this is a strength
	WeaknessCutoff    float64 // per-position rate at or below this is a weakness
	TendencyThreshold float64 // mean projected-actual delta below this stays neutral
	TendencyMaxDelta  float64 // delta at which tendency strength saturates
}

// Disagreement governs pairwise report comparison and consensus.
type Disagreement struct {
	SkillMajorGap    float64
	SkillModerateGap float64
	SkillMinorGap    float64
	RoundMajorGap    float64
	RoundModerateGap float64
	MajorPenalty     float64
	ModeratePenalty  float64
	MinorPenalty     float64
}

// Board governs ranking, tiering, and trend detection.
type Board struct {
	NeedMultipliers    map[model.NeedTier]float64
	FocusBonus         float64 // flat bonus when any contributing report is focus
	DefaultReliability float64 // weight for scouts with nothing revealed
	EliteCutoff        float64 // need-score tier bounds, descending
	FirstRoundCutoff   float64
	DayTwoCutoff       float64
	ValueMinRound      int     // best-value candidates project at or past this round
	ValueScale         float64 // scales skill-per-round into a comparable score
	ValueCutoff        float64 // scaled value at or above this flags best value
	RiserMargin        float64 // skill above late-round expectation to flag a riser
	FallerMaxRound     int     // fallers project at or before this round
	FallerConfidence   float64 // and carry confidence under this
}

// Recommend governs per-pick recommendation scoring.
type Recommend struct {
	FocusBonus       float64
	NeedBonus        map[model.NeedTier]float64
	RoleBias         float64 // multiplier applied to positions matching the scout's side
	OffensePositions []model.Position
	DefensePositions []model.Position
}

// Policy aggregates every tunable of the engine.
type Policy struct {
	FocusListCapacity int
	AutoTimeHours     float64 // planner default time per auto assignment
	FocusTimeHours    float64 // planner default time per focus assignment
	Estimation        Estimation
	Confidence        Confidence
	TrackRecord       TrackRecord
	Disagreement      Disagreement
	Board             Board
	Recommend         Recommend
}

// Default returns the production policy values.
func Default() Policy {
	return Policy{
		FocusListCapacity: 4,
		AutoTimeHours:     6,
		FocusTimeHours:    30,
		Estimation: Estimation{
			BaseHalfWidth:     4,
			SkillWidthFactor:  0.14,
			MaxVisibilityMult: 1.75,
			FocusDepthFactor:  0.45,
			MinHalfWidth:      1,
			MaxHalfWidth:      24,
			MaxNoiseFraction:  0.6,
			NarrowWidth:       8,
			MediumWidth:       16,
			TraitBase:         0.25,
			TraitSkillShare:   0.35,
			TraitVisShare:     0.25,
		},
		Confidence: Confidence{
			MaxTimeBonus:       15,
			AutoTimeHalfSat:    4,
			FocusTimeHalfSat:   20,
			RegionBonus:        8,
			RegionPartial:      3,
			PositionBonus:      10,
			PositionPartial:    4,
			FocusDepthBonus:    12,
			TendencyPenaltyMax: 20,
			HighCutoff:         75,
			MediumCutoff:       50,
			MaxNarrowFraction:  0.35,
		},
		TrackRecord: TrackRecord{
			HitTolerance:      10,
			MinEvaluations:    20,
			MinPositionSample: 5,
			MinTendencyYears:  5,
			MinTendencySample: 10,
			StrengthCutoff:    0.65,
			WeaknessCutoff:    0.35,
			TendencyThreshold: 3.5,
			TendencyMaxDelta:  12,
		},
		Disagreement: Disagreement{
			SkillMajorGap:    25,
			SkillModerateGap: 15,
			SkillMinorGap:    8,
			RoundMajorGap:    2,
			RoundModerateGap: 1,
			MajorPenalty:     30,
			ModeratePenalty:  12,
			MinorPenalty:     5,
		},
		Board: Board{
			NeedMultipliers: map[model.NeedTier]float64{
				model.NeedCritical:  1.30,
				model.NeedImportant: 1.20,
				model.NeedModerate:  1.10,
				model.NeedLow:       1.05,
				model.NeedNone:      1.00,
			},
			FocusBonus:         2.5,
			DefaultReliability: 0.5,
			EliteCutoff:        92,
			FirstRoundCutoff:   82,
			DayTwoCutoff:       70,
			ValueMinRound:      3,
			ValueScale:         10,
			ValueCutoff:        220,
			RiserMargin:        6,
			FallerMaxRound:     2,
			FallerConfidence:   55,
		},
		Recommend: Recommend{
			FocusBonus: 8,
			NeedBonus: map[model.NeedTier]float64{
				model.NeedCritical:  10,
				model.NeedImportant: 7,
				model.NeedModerate:  4,
				model.NeedLow:       2,
				model.NeedNone:      0,
			},
			RoleBias: 1.10,
			OffensePositions: []model.Position{
				model.PosQB, model.PosRB, model.PosWR, model.PosTE, model.PosOT, model.PosIOL,
			},
			DefensePositions: []model.Position{
				model.PosEDGE, model.PosDT, model.PosLB, model.PosCB, model.PosS,
			},
		},
	}
}
