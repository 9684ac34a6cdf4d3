package model

// NeedTier expresses how urgently the team needs a position.
type NeedTier string

// Need tiers, most urgent first.
const (
	NeedCritical  NeedTier = "critical"
	NeedImportant NeedTier = "important"
	NeedModerate  NeedTier = "moderate"
	NeedLow       NeedTier = "low"
	NeedNone      NeedTier = "none"
)

// Needs maps positions to the team's need tier. Missing positions are
// treated as NeedNone.
type Needs map[Position]NeedTier

// Tier buckets board ranks for display.
type Tier string

// Board tiers, best first.
const (
	TierElite      Tier = "elite"
	TierFirstRound Tier = "first_round"
	TierDayTwo     Tier = "day_two"
	TierDayThree   Tier = "day_three"
)

// ProspectRanking is one row of the big board. Rankings are derived
// on demand from the full report set and never stored as source of
// truth.
type ProspectRanking struct {
	SubjectID      string   `json:"subject_id"`
	Position       Position `json:"position"`
	RawSkill       float64  `json:"raw_skill"`
	WeightedSkill  float64  `json:"weighted_skill"`
	Confidence     float64  `json:"confidence"`
	NeedScore      float64  `json:"need_score"`
	RoundMid       float64  `json:"round_mid"` // mean projected-round midpoint across reports
	Rank           int      `json:"rank"`      // 1-based, gapless
	Tier           Tier     `json:"tier"`
	HasFocusReport bool     `json:"has_focus_report"`
	Riser          bool     `json:"riser"`
	Faller         bool     `json:"faller"`
	BestValue      bool     `json:"best_value"`
}

// Severity grades a single disagreement dimension.
type Severity string

// Disagreement severities.
const (
	SeverityMinor    Severity = "minor"
	SeverityModerate Severity = "moderate"
	SeverityMajor    Severity = "major"
)

// Disagreement is one flagged dimension between two reports on the same
// subject.
type Disagreement struct {
	SubjectID string   `json:"subject_id"`
	ReportA   string   `json:"report_a"`
	ReportB   string   `json:"report_b"`
	Dimension string   `json:"dimension"`
	Severity  Severity `json:"severity"`
	Detail    string   `json:"detail"`
}

// Consensus aggregates pairwise disagreements for a subject into a
// 0-100 agreement score. A single report trivially scores 100.
type Consensus struct {
	SubjectID     string         `json:"subject_id"`
	Score         float64        `json:"score"`
	Disagreements []Disagreement `json:"disagreements"`
}

// Recommendation is a scout's suggested pick for one draft slot.
type Recommendation struct {
	ScoutID    string   `json:"scout_id"`
	SubjectID  string   `json:"subject_id"`
	Position   Position `json:"position"`
	FromFocus  bool     `json:"from_focus"`
	Score      float64  `json:"score"`
	Reasoning  string   `json:"reasoning"`
	Confidence Level    `json:"confidence"`
}
