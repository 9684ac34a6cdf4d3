package model

// Tendency is a scout's systematic historical bias, derived from
// projected-vs-actual deltas once enough history exists.
type Tendency string

// Tendency directions. Neutral is the default absent sufficient signal.
const (
	TendencyNeutral     Tendency = "neutral"
	TendencyOptimistic  Tendency = "optimistic"
	TendencyPessimistic Tendency = "pessimistic"
)

// Evaluation is one ledger entry in a scout's track record. Actuals
// stay nil until the subject's true values are revealed; WasHit is nil
// exactly as long as ActualSkill is.
type Evaluation struct {
	SubjectID      string
	Position       Position
	ProjectedRound int
	Projected      SkillRange
	ActualRound    *int
	ActualSkill    *int
	WasHit         *bool
}

// TrackRecord accumulates a scout's evaluation history and the derived
// accuracy state recomputed at each year boundary.
type TrackRecord struct {
	ScoutID             string
	Years               int
	Evaluations         []Evaluation
	OverallHitRate      *float64             // nil below the minimum completed sample
	PositionHitRate     map[Position]float64 // entry absent below the per-position sample
	Strengths           []Position
	Weaknesses          []Position
	ReliabilityRevealed bool
	TendenciesRevealed  bool
	Tendency            Tendency
	TendencyStrength    float64 // in [0,1], 0 when neutral
}

// Completed counts evaluations whose outcome is known.
func (tr TrackRecord) Completed() int {
	n := 0
	for _, ev := range tr.Evaluations {
		if ev.WasHit != nil {
			n++
		}
	}
	return n
}

// Accuracy label cutoffs over the revealed overall hit rate.
const (
	eliteAccuracyRate    = 0.70
	reliableAccuracyRate = 0.55
	averageAccuracyRate  = 0.40
)

// AccuracyLabel maps the revealed hit rate to a display label. Scouts
// without a revealed reliability are always "unproven".
func (tr TrackRecord) AccuracyLabel() string {
	if !tr.ReliabilityRevealed || tr.OverallHitRate == nil {
		return "unproven"
	}
	switch rate := *tr.OverallHitRate; {
	case rate >= eliteAccuracyRate:
		return "elite"
	case rate >= reliableAccuracyRate:
		return "reliable"
	case rate >= averageAccuracyRate:
		return "average"
	default:
		return "suspect"
	}
}
