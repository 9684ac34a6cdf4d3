// Package disagreement compares scouting reports on the same subject
// and scores how much the room agrees.
package disagreement

import (
	"fmt"
	"math"

	"github.com/gridironlabs/warroom/internal/domain/model"
	"github.com/gridironlabs/warroom/internal/domain/policy"
)

// Dimension names carried on flagged disagreements.
const (
	DimensionSkill     = "overall skill"
	DimensionRound     = "round projection"
	DimensionCharacter = "character"
	DimensionMedical   = "medical"
)

// Compare flags every dimension on which two reports materially differ.
// Skill and round gaps grade against the policy deltas; character and
// medical are categorical, compared only when both reports carry focus
// detail, and any mismatch there is major.
func Compare(p policy.Disagreement, a, b model.ScoutReport) []model.Disagreement {
	var out []model.Disagreement

	skillGap := math.Abs(a.Overall.Midpoint() - b.Overall.Midpoint())
	if sev, ok := skillSeverity(p, skillGap); ok {
		out = append(out, flag(a, b, DimensionSkill, sev,
			fmt.Sprintf("overall midpoints %.1f apart", skillGap)))
	}

	roundGap := math.Abs(a.Projection.Round.Midpoint() - b.Projection.Round.Midpoint())
	if sev, ok := roundSeverity(p, roundGap); ok {
		out = append(out, flag(a, b, DimensionRound, sev,
			fmt.Sprintf("projected rounds %.1f apart", roundGap)))
	}

	if a.Focus != nil && b.Focus != nil {
		if a.Focus.Character != b.Focus.Character {
			out = append(out, flag(a, b, DimensionCharacter, model.SeverityMajor,
				fmt.Sprintf("character graded %s against %s", a.Focus.Character, b.Focus.Character)))
		}
		if a.Focus.Medical != b.Focus.Medical {
			out = append(out, flag(a, b, DimensionMedical, model.SeverityMajor,
				fmt.Sprintf("medical graded %s against %s", a.Focus.Medical, b.Focus.Medical)))
		}
	}

	return out
}

// Analyze compares every report pair for the subject and folds the
// flagged disagreements into a 0-100 consensus score. The score drops
// by the mean per-pair penalty, so one loud outlier cannot drown a
// large agreeing room. Fewer than two reports leaves nothing to
// disagree about and scores 100.
func Analyze(p policy.Disagreement, subjectID string, reports []model.ScoutReport) model.Consensus {
	subject := make([]model.ScoutReport, 0, len(reports))
	for _, r := range reports {
		if r.SubjectID == subjectID {
			subject = append(subject, r)
		}
	}

	c := model.Consensus{SubjectID: subjectID, Score: 100}
	if len(subject) < 2 {
		return c
	}

	var total float64
	pairs := 0
	for i := 0; i < len(subject); i++ {
		for j := i + 1; j < len(subject); j++ {
			pairs++
			found := Compare(p, subject[i], subject[j])
			c.Disagreements = append(c.Disagreements, found...)
			for _, d := range found {
				total += penalty(p, d.Severity)
			}
		}
	}

	c.Score = math.Max(100-total/float64(pairs), 0)
	return c
}

func flag(a, b model.ScoutReport, dim string, sev model.Severity, detail string) model.Disagreement {
	return model.Disagreement{
		SubjectID: a.SubjectID,
		ReportA:   a.ID,
		ReportB:   b.ID,
		Dimension: dim,
		Severity:  sev,
		Detail:    detail,
	}
}

func skillSeverity(p policy.Disagreement, gap float64) (model.Severity, bool) {
	switch {
	case gap >= p.SkillMajorGap:
		return model.SeverityMajor, true
	case gap >= p.SkillModerateGap:
		return model.SeverityModerate, true
	case gap >= p.SkillMinorGap:
		return model.SeverityMinor, true
	}
	return "", false
}

func roundSeverity(p policy.Disagreement, gap float64) (model.Severity, bool) {
	switch {
	case gap >= p.RoundMajorGap:
		return model.SeverityMajor, true
	case gap >= p.RoundModerateGap:
		return model.SeverityModerate, true
	}
	return "", false
}

func penalty(p policy.Disagreement, sev model.Severity) float64 {
	switch sev {
	case model.SeverityMajor:
		return p.MajorPenalty
	case model.SeverityModerate:
		return p.ModeratePenalty
	default:
		return p.MinorPenalty
	}
}
