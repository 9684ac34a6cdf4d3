// Package report assembles complete scouting reports from the
// estimation and confidence cores.
package report

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/gridironlabs/warroom/internal/domain/confidence"
	"github.com/gridironlabs/warroom/internal/domain/estimate"
	"github.com/gridironlabs/warroom/internal/domain/model"
	"github.com/gridironlabs/warroom/internal/domain/policy"
)

// Skill points per draft round when projecting a midpoint onto the
// seven-round board.
const roundSkillStep = 8

// Grade cutoffs for focus sub-assessments.
const (
	gradeACutoff = 85
	gradeBCutoff = 70
	gradeCCutoff = 55
	gradeDCutoff = 40
)

// AssembleInput carries one assignment's worth of context. The scout
// value must be the roster snapshot taken at the start of the cycle so
// tendency reads are never influenced by work from the same cycle.
type AssembleInput struct {
	Subject   model.Prospect
	Scout     model.Scout
	Kind      model.ReportKind
	Cycle     int
	TimeHours float64
	Now       time.Time
}

// Assemble builds a complete report for one subject. It draws three
// noise samples from rng in a fixed order (overall, physical,
// technical), so a seeded generator replays the exact report. The
// returned report is validated; assembling from well-formed inputs
// never fails.
func Assemble(rng *rand.Rand, p policy.Policy, in AssembleInput) (model.ScoutReport, error) {
	conf := confidence.Score(p.Confidence, confidence.Input{
		ScoutSkill:       in.Scout.Evaluation,
		TimeHours:        in.TimeHours,
		Kind:             in.Kind,
		ScoutRegion:      in.Scout.RegionSpecialty,
		SubjectRegion:    in.Subject.Region,
		ScoutSpecialty:   in.Scout.PositionSpecialty,
		SubjectPosition:  in.Subject.Position,
		Tendency:         in.Scout.Record.Tendency,
		TendencyStrength: in.Scout.Record.TendencyStrength,
		TendencyKnown:    in.Scout.Record.TendenciesRevealed,
	})

	estimateOne := func(trueValue int) model.SkillRange {
		r := estimate.Attribute(rng, p.Estimation, estimate.Input{
			TrueValue:  trueValue,
			ScoutSkill: in.Scout.Evaluation,
			Visibility: in.Subject.Visibility,
			Kind:       in.Kind,
		})
		return confidence.Narrow(p, r, conf.Score)
	}

	overall := estimateOne(in.Subject.Attributes.Overall)
	physical := estimateOne(in.Subject.Attributes.Physical)
	technical := estimateOne(in.Subject.Attributes.Technical)

	traits := estimate.Traits(p.Estimation, estimate.TraitInput{
		All:        in.Subject.Traits,
		ScoutSkill: in.Scout.Evaluation,
		Visibility: in.Subject.Visibility,
		Kind:       in.Kind,
	})
	if len(traits.Revealed)+traits.HiddenCount != len(in.Subject.Traits) {
		return model.ScoutReport{}, fmt.Errorf("subject %s: %w", in.Subject.ID, ErrTraitCount)
	}

	rep := model.ScoutReport{
		ID:        uuid.NewString(),
		SubjectID: in.Subject.ID,
		Position:  in.Subject.Position,
		Kind:      in.Kind,
		ScoutID:   in.Scout.ID,
		Cycle:     in.Cycle,
		FiledAt:   in.Now,
		Measurements: model.Measurements{
			HeightIn: in.Subject.HeightIn,
			WeightLb: in.Subject.WeightLb,
		},
		Overall:          overall,
		Physical:         physical,
		Technical:        technical,
		Projection:       project(overall),
		Traits:           traits.Revealed,
		HiddenTraitCount: traits.HiddenCount,
		Confidence:       conf,
	}

	if in.Kind == model.ReportFocus {
		rep.Focus = focusDetail(in.Subject)
	}

	if err := Validate(rep); err != nil {
		return model.ScoutReport{}, fmt.Errorf("assemble %s on %s: %w", in.Kind, in.Subject.ID, err)
	}
	return rep, nil
}

// Validate rejects malformed reports: out-of-order ranges, a round
// window off the seven-round board, empty identity fields, or focus
// detail on the wrong kind. A nil return means the report is sound.
func Validate(r model.ScoutReport) error {
	if r.ID == "" || r.SubjectID == "" || r.ScoutID == "" {
		return ErrEmptyIdentity
	}
	for _, sr := range []model.SkillRange{r.Overall, r.Physical, r.Technical} {
		if sr.Min > sr.Max {
			return fmt.Errorf("%w: %d > %d", ErrInvalidRange, sr.Min, sr.Max)
		}
		if sr.Min < model.AttrMin || sr.Max > model.AttrMax {
			return fmt.Errorf("%w: %d-%d outside the attribute scale", ErrInvalidRange, sr.Min, sr.Max)
		}
	}
	round := r.Projection.Round
	if round.Early > round.Late {
		return fmt.Errorf("%w: %d > %d", ErrRoundBounds, round.Early, round.Late)
	}
	if round.Early < model.RoundMin || round.Late > model.RoundMax {
		return fmt.Errorf("%w: rounds %d-%d", ErrRoundBounds, round.Early, round.Late)
	}
	if r.Kind == model.ReportAuto && r.Focus != nil {
		return ErrFocusDetail
	}
	if r.Kind == model.ReportFocus && r.Focus == nil {
		return ErrFocusDetail
	}
	if r.HiddenTraitCount < 0 {
		return ErrTraitCount
	}
	return nil
}

// project maps a narrowed overall range onto a draft-round window. The
// window width follows the range's confidence tag.
func project(overall model.SkillRange) model.RoundProjection {
	mid := int(math.Round((float64(model.AttrMax) - overall.Midpoint()) / roundSkillStep))
	if mid < model.RoundMin {
		mid = model.RoundMin
	}
	if mid > model.RoundMax {
		mid = model.RoundMax
	}

	early, late := mid, mid
	switch overall.Tag {
	case model.LevelHigh:
		// single-round call
	case model.LevelMedium:
		if early > model.RoundMin {
			early--
		}
	default:
		if early > model.RoundMin {
			early--
		}
		if late < model.RoundMax {
			late++
		}
	}

	return model.RoundProjection{
		Round: model.RoundRange{Early: early, Late: late},
		Grade: roundGrade(mid),
	}
}

// ExpectedSkill is the overall skill a typical pick at the given round
// carries, the inverse of the round projection mapping. Ranking uses it
// to spot subjects whose skill runs ahead of their projected round.
func ExpectedSkill(round float64) float64 {
	return float64(model.AttrMax) - roundSkillStep*round
}

// RoundFor maps a true overall skill onto the round a player of that
// caliber typically goes, clamped to the seven-round board. Season
// resolution uses it to grade round projections against outcomes.
func RoundFor(skill int) int {
	round := int(math.Round((float64(model.AttrMax) - float64(skill)) / roundSkillStep))
	if round < model.RoundMin {
		round = model.RoundMin
	}
	if round > model.RoundMax {
		round = model.RoundMax
	}
	return round
}

func roundGrade(round int) string {
	switch {
	case round == 1:
		return "day-one talent"
	case round <= 3:
		return "day-two value"
	default:
		return "day-three depth"
	}
}

// focusDetail synthesizes the deep sub-assessments straight from the
// subject's hidden attributes. Only focus evaluations earn this look.
func focusDetail(subject model.Prospect) *model.FocusDetail {
	attrs := subject.Attributes
	return &model.FocusDetail{
		Character:  gradeFor(attrs.Character),
		Medical:    gradeFor(attrs.Medical),
		SchemeFit:  gradeFor(attrs.SchemeFit),
		Interview:  gradeFor(attrs.Interview),
		Ceiling:    ceilingText(attrs.Overall),
		Floor:      floorText(attrs),
		Comparison: fmt.Sprintf("classic %s mold at %d pounds", subject.Position, subject.WeightLb),
	}
}

func gradeFor(v int) model.Grade {
	switch {
	case v >= gradeACutoff:
		return model.GradeA
	case v >= gradeBCutoff:
		return model.GradeB
	case v >= gradeCCutoff:
		return model.GradeC
	case v >= gradeDCutoff:
		return model.GradeD
	default:
		return model.GradeF
	}
}

func ceilingText(overall int) string {
	switch {
	case overall >= 90:
		return "franchise cornerstone"
	case overall >= 80:
		return "perennial starter with all-star years"
	case overall >= 65:
		return "long-term starter"
	default:
		return "quality rotational piece"
	}
}

func floorText(attrs model.TrueAttributes) string {
	low := attrs.Technical
	if attrs.Character < low {
		low = attrs.Character
	}
	switch {
	case low >= 70:
		return "reliable starter even on a bad day"
	case low >= 50:
		return "rotational contributor"
	case low >= 35:
		return "special-teams role"
	default:
		return "roster bubble"
	}
}
