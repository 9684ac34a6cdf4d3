package model

import "time"

// ReportKind distinguishes periodic auto reports from deep focus
// reports.
type ReportKind string

// Report kinds.
const (
	ReportAuto  ReportKind = "auto"
	ReportFocus ReportKind = "focus"
)

// Level is a three-step categorical grade used for range confidence
// tags, confidence scores, and recommendation labels.
type Level string

// Levels, highest first.
const (
	LevelHigh   Level = "high"
	LevelMedium Level = "medium"
	LevelLow    Level = "low"
)

// SkillRange is a bounded estimate of a hidden value, always
// AttrMin <= Min <= Max <= AttrMax.
type SkillRange struct {
	Min int   `json:"min"`
	Max int   `json:"max"`
	Tag Level `json:"tag"`
}

// Width returns the spread of the range.
func (r SkillRange) Width() int { return r.Max - r.Min }

// Midpoint returns the center of the range.
func (r SkillRange) Midpoint() float64 { return float64(r.Min+r.Max) / 2 }

// Contains reports whether v falls inside the range, bounds included.
func (r SkillRange) Contains(v int) bool { return v >= r.Min && v <= r.Max }

// Distance returns how far v falls outside the range, zero when inside.
func (r SkillRange) Distance(v int) int {
	switch {
	case v < r.Min:
		return r.Min - v
	case v > r.Max:
		return v - r.Max
	default:
		return 0
	}
}

// RoundRange projects a draft-round window, both bounds in
// RoundMin..RoundMax.
type RoundRange struct {
	Early int `json:"early"`
	Late  int `json:"late"`
}

// Midpoint returns the center of the window.
func (r RoundRange) Midpoint() float64 { return float64(r.Early+r.Late) / 2 }

// RoundProjection pairs a round window with a qualitative grade.
type RoundProjection struct {
	Round RoundRange `json:"round"`
	Grade string     `json:"grade"`
}

// ConfidenceFactor names one contributor to a confidence score. Only
// non-zero contributors are recorded.
type ConfidenceFactor struct {
	Name  string  `json:"name"`
	Delta float64 `json:"delta"`
}

// Confidence is a 0-100 confidence score with its breakdown.
type Confidence struct {
	Score   float64            `json:"score"`
	Level   Level              `json:"level"`
	Factors []ConfidenceFactor `json:"factors,omitempty"`
}

// Grade is a qualitative letter grade on focus sub-assessments.
type Grade string

// Grades, best first.
const (
	GradeA Grade = "A"
	GradeB Grade = "B"
	GradeC Grade = "C"
	GradeD Grade = "D"
	GradeF Grade = "F"
)

// FocusDetail carries the deep sub-assessments only focus reports
// include.
type FocusDetail struct {
	Character  Grade  `json:"character"`
	Medical    Grade  `json:"medical"`
	SchemeFit  Grade  `json:"scheme_fit"`
	Interview  Grade  `json:"interview"`
	Ceiling    string `json:"ceiling"`
	Floor      string `json:"floor"`
	Comparison string `json:"comparison"`
}

// Measurements are the verified physical numbers attached to a report.
type Measurements struct {
	HeightIn int `json:"height_in"`
	WeightLb int `json:"weight_lb"`
}

// ScoutReport is an immutable snapshot of one scout's evaluation of one
// subject. Superseding evaluations are new reports, never edits.
type ScoutReport struct {
	ID               string          `json:"id"`
	SubjectID        string          `json:"subject_id"`
	Position         Position        `json:"position"`
	Kind             ReportKind      `json:"kind"`
	ScoutID          string          `json:"scout_id"`
	Cycle            int             `json:"cycle"`
	FiledAt          time.Time       `json:"filed_at"`
	Measurements     Measurements    `json:"measurements"`
	Overall          SkillRange      `json:"overall"`
	Physical         SkillRange      `json:"physical"`
	Technical        SkillRange      `json:"technical"`
	Projection       RoundProjection `json:"projection"`
	Traits           []string        `json:"traits"` // revealed traits
	HiddenTraitCount int             `json:"hidden_trait_count"`
	Confidence       Confidence      `json:"confidence"`
	Focus            *FocusDetail    `json:"focus,omitempty"` // nil on auto reports
}
