package model

// Role identifies a scout's evaluation bias.
type Role string

// Scout roles. The head scout is a generalist with no positional lean.
const (
	RoleHead    Role = "head"
	RoleOffense Role = "offense"
	RoleDefense Role = "defense"
)

// Contract holds a scout's employment terms. Visible only to the
// scout's own team.
type Contract struct {
	Salary    int `json:"salary"` // annual, dollars
	YearsLeft int `json:"years_left"`
}

// Scout is a member of the scouting staff. Evaluation and Speed are
// hidden attributes; PublicView strips them along with the raw ledger.
type Scout struct {
	ID                string
	Name              string
	Role              Role
	Evaluation        int // hidden, 1-100, accuracy of estimates
	Speed             int // hidden, subjects coverable per cycle
	Experience        int // public, years in the profession
	Age               int
	PositionSpecialty Position // zero value when none
	RegionSpecialty   Region   // zero value when none
	Contract          *Contract
	FocusIDs          []string // subjects under deep evaluation, capacity bounded
	Record            TrackRecord
}

// HasFocus reports whether subjectID is on the scout's focus list.
func (s Scout) HasFocus(subjectID string) bool {
	for _, id := range s.FocusIDs {
		if id == subjectID {
			return true
		}
	}
	return false
}

// WithFocus returns a copy of the scout with subjectID added to the
// focus list. The second return is false when the list is at capacity
// or already contains the subject, and the scout comes back unchanged.
func (s Scout) WithFocus(subjectID string, capacity int) (Scout, bool) {
	if len(s.FocusIDs) >= capacity || s.HasFocus(subjectID) {
		return s, false
	}
	out := s
	out.FocusIDs = append(append([]string(nil), s.FocusIDs...), subjectID)
	return out, true
}

// WithoutFocus returns a copy of the scout with subjectID removed from
// the focus list. A focus evaluation is one-time; filing it frees the
// slot.
func (s Scout) WithoutFocus(subjectID string) Scout {
	out := s
	out.FocusIDs = nil
	for _, id := range s.FocusIDs {
		if id != subjectID {
			out.FocusIDs = append(out.FocusIDs, id)
		}
	}
	return out
}

// ScoutView is the public projection of a Scout, safe for display.
type ScoutView struct {
	ID                string     `json:"id"`
	Name              string     `json:"name"`
	Role              Role       `json:"role"`
	Experience        int        `json:"experience"`
	Age               int        `json:"age"`
	PositionSpecialty Position   `json:"position_specialty,omitempty"`
	RegionSpecialty   Region     `json:"region_specialty,omitempty"`
	AccuracyLabel     string     `json:"accuracy_label"`
	HitRate           *float64   `json:"hit_rate,omitempty"`   // nil until reliability is revealed
	Strengths         []Position `json:"strengths,omitempty"`  // revealed positions only
	Weaknesses        []Position `json:"weaknesses,omitempty"`
	Tendency          Tendency   `json:"tendency"` // zero value until tendencies are revealed
	Contract          *Contract  `json:"contract,omitempty"`
}

// PublicView projects the scout into the fields safe to display.
// Hidden attributes never cross this boundary; reliability data appears
// only after its reveal, and contract terms only when sameTeam is set.
func (s Scout) PublicView(sameTeam bool) ScoutView {
	v := ScoutView{
		ID:                s.ID,
		Name:              s.Name,
		Role:              s.Role,
		Experience:        s.Experience,
		Age:               s.Age,
		PositionSpecialty: s.PositionSpecialty,
		RegionSpecialty:   s.RegionSpecialty,
		AccuracyLabel:     s.Record.AccuracyLabel(),
	}
	if s.Record.ReliabilityRevealed {
		if s.Record.OverallHitRate != nil {
			rate := *s.Record.OverallHitRate
			v.HitRate = &rate
		}
		v.Strengths = append([]Position(nil), s.Record.Strengths...)
		v.Weaknesses = append([]Position(nil), s.Record.Weaknesses...)
	}
	if s.Record.TendenciesRevealed {
		v.Tendency = s.Record.Tendency
	}
	if sameTeam && s.Contract != nil {
		c := *s.Contract
		v.Contract = &c
	}
	return v
}
