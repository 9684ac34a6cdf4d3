package confidence_test

import (
	"testing"

	confidence "github.com/gridironlabs/warroom/internal/domain/confidence"
	model "github.com/gridironlabs/warroom/internal/domain/model"
	policy "github.com/gridironlabs/warroom/internal/domain/policy"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfidenceScore(t *testing.T) {
	convey.Convey("Given the default confidence policy", t, func() {
		p := policy.Default().Confidence

		convey.Convey("When scoring a plain evaluation", func() {
			c := confidence.Score(p, confidence.Input{ScoutSkill: 70, Kind: model.ReportAuto})

			convey.Convey("Then the base should equal scout skill plus partial fits", func() {
				convey.So(c.Score, convey.ShouldEqual, 70+p.RegionPartial+p.PositionPartial)
			})

			convey.Convey("And the breakdown should name scout quality", func() {
				convey.So(factorDelta(c, confidence.FactorScoutQuality), convey.ShouldEqual, 70.0)
			})
		})

		convey.Convey("When time is invested", func() {
			short := confidence.Score(p, confidence.Input{ScoutSkill: 50, TimeHours: 2, Kind: model.ReportAuto})
			long := confidence.Score(p, confidence.Input{ScoutSkill: 50, TimeHours: 40, Kind: model.ReportAuto})

			convey.Convey("Then more time should mean more confidence with diminishing returns", func() {
				convey.So(long.Score, convey.ShouldBeGreaterThan, short.Score)
				convey.So(factorDelta(long, confidence.FactorTimeInvested), convey.ShouldBeLessThan, p.MaxTimeBonus)
			})

			convey.Convey("And the same hours should satisfy auto more than focus", func() {
				auto := confidence.Score(p, confidence.Input{ScoutSkill: 50, TimeHours: 6, Kind: model.ReportAuto})
				focus := confidence.Score(p, confidence.Input{ScoutSkill: 50, TimeHours: 6, Kind: model.ReportFocus})
				convey.So(factorDelta(auto, confidence.FactorTimeInvested),
					convey.ShouldBeGreaterThan,
					factorDelta(focus, confidence.FactorTimeInvested))
			})
		})

		convey.Convey("When the evaluation is a focus look", func() {
			c := confidence.Score(p, confidence.Input{ScoutSkill: 50, Kind: model.ReportFocus})

			convey.Convey("Then the depth bonus should apply", func() {
				convey.So(factorDelta(c, confidence.FactorDepth), convey.ShouldEqual, p.FocusDepthBonus)
			})
		})

		convey.Convey("When region and specialty line up", func() {
			exact := confidence.Score(p, confidence.Input{
				ScoutSkill:      50,
				ScoutRegion:     model.RegionSouth,
				SubjectRegion:   model.RegionSouth,
				ScoutSpecialty:  model.PosCB,
				SubjectPosition: model.PosCB,
			})
			roamer := confidence.Score(p, confidence.Input{
				ScoutSkill:      50,
				SubjectRegion:   model.RegionSouth,
				SubjectPosition: model.PosCB,
			})
			mismatch := confidence.Score(p, confidence.Input{
				ScoutSkill:      50,
				ScoutRegion:     model.RegionWest,
				SubjectRegion:   model.RegionSouth,
				ScoutSpecialty:  model.PosQB,
				SubjectPosition: model.PosCB,
			})

			convey.Convey("Then exact matches should beat roamers which beat mismatches", func() {
				convey.So(exact.Score, convey.ShouldBeGreaterThan, roamer.Score)
				convey.So(roamer.Score, convey.ShouldBeGreaterThan, mismatch.Score)
			})

			convey.Convey("And a mismatch should contribute no fit factors", func() {
				convey.So(hasFactor(mismatch, confidence.FactorRegionFit), convey.ShouldBeFalse)
				convey.So(hasFactor(mismatch, confidence.FactorPositionFit), convey.ShouldBeFalse)
			})
		})

		convey.Convey("When the scout has a known bias", func() {
			biased := confidence.Score(p, confidence.Input{
				ScoutSkill:       70,
				Tendency:         model.TendencyOptimistic,
				TendencyStrength: 0.5,
				TendencyKnown:    true,
			})
			clean := confidence.Score(p, confidence.Input{ScoutSkill: 70})

			convey.Convey("Then confidence should drop in proportion to strength", func() {
				convey.So(biased.Score, convey.ShouldEqual, clean.Score-p.TendencyPenaltyMax*0.5)
				convey.So(factorDelta(biased, confidence.FactorTendency), convey.ShouldBeLessThan, 0)
			})

			convey.Convey("And an unrevealed bias should cost nothing", func() {
				hiddenBias := confidence.Score(p, confidence.Input{
					ScoutSkill:       70,
					Tendency:         model.TendencyOptimistic,
					TendencyStrength: 0.5,
				})
				convey.So(hiddenBias.Score, convey.ShouldEqual, clean.Score)
			})

			convey.Convey("And a neutral tendency should cost nothing", func() {
				neutral := confidence.Score(p, confidence.Input{
					ScoutSkill:    70,
					Tendency:      model.TendencyNeutral,
					TendencyKnown: true,
				})
				convey.So(neutral.Score, convey.ShouldEqual, clean.Score)
			})
		})

		convey.Convey("When inputs push past the bounds", func() {
			maxed := confidence.Score(p, confidence.Input{
				ScoutSkill:      100,
				TimeHours:       1000,
				Kind:            model.ReportFocus,
				ScoutRegion:     model.RegionEast,
				SubjectRegion:   model.RegionEast,
				ScoutSpecialty:  model.PosQB,
				SubjectPosition: model.PosQB,
			})
			floored := confidence.Score(p, confidence.Input{
				ScoutSkill:       1,
				Tendency:         model.TendencyPessimistic,
				TendencyStrength: 1,
				TendencyKnown:    true,
			})

			convey.Convey("Then the score should clamp to [0,100]", func() {
				convey.So(maxed.Score, convey.ShouldEqual, 100.0)
				convey.So(floored.Score, convey.ShouldBeGreaterThanOrEqualTo, 0.0)
			})
		})

		convey.Convey("When mapping scores to levels", func() {
			convey.So(confidence.LevelFor(p, p.HighCutoff), convey.ShouldEqual, model.LevelHigh)
			convey.So(confidence.LevelFor(p, p.HighCutoff-0.1), convey.ShouldEqual, model.LevelMedium)
			convey.So(confidence.LevelFor(p, p.MediumCutoff), convey.ShouldEqual, model.LevelMedium)
			convey.So(confidence.LevelFor(p, p.MediumCutoff-0.1), convey.ShouldEqual, model.LevelLow)
		})
	})
}

func TestNarrow(t *testing.T) {
	convey.Convey("Given a range and the default policy", t, func() {
		p := policy.Default()
		r := model.SkillRange{Min: 40, Max: 80, Tag: model.LevelLow}

		convey.Convey("When narrowing with full confidence", func() {
			out := confidence.Narrow(p, r, 100)

			convey.Convey("Then the midpoint should not move", func() {
				convey.So(out.Min+out.Max, convey.ShouldEqual, r.Min+r.Max)
			})

			convey.Convey("And the width should shrink but respect the cap", func() {
				convey.So(out.Width(), convey.ShouldBeLessThan, r.Width())
				minWidth := float64(r.Width()) * (1 - p.Confidence.MaxNarrowFraction)
				convey.So(float64(out.Width()), convey.ShouldBeGreaterThanOrEqualTo, minWidth)
			})

			convey.Convey("And the tag should be recomputed from the new width", func() {
				convey.So(out.Tag, convey.ShouldEqual, model.LevelLow)
			})
		})

		convey.Convey("When narrowing with zero confidence", func() {
			out := confidence.Narrow(p, r, 0)

			convey.Convey("Then the range should come back unchanged", func() {
				convey.So(out, convey.ShouldResemble, r)
			})
		})

		convey.Convey("When narrowing across the confidence scale", func() {
			convey.Convey("Then the range should never widen and never shift", func() {
				for score := 0.0; score <= 100; score += 5 {
					out := confidence.Narrow(p, r, score)
					convey.So(out.Width(), convey.ShouldBeLessThanOrEqualTo, r.Width())
					convey.So(out.Min+out.Max, convey.ShouldEqual, r.Min+r.Max)
					convey.So(out.Min, convey.ShouldBeLessThanOrEqualTo, out.Max)
				}
			})
		})

		convey.Convey("When narrowing a tight range", func() {
			tight := model.SkillRange{Min: 64, Max: 66, Tag: model.LevelHigh}
			out := confidence.Narrow(p, tight, 100)

			convey.Convey("Then it should stay valid", func() {
				convey.So(out.Min, convey.ShouldBeLessThanOrEqualTo, out.Max)
				convey.So(out.Min+out.Max, convey.ShouldEqual, tight.Min+tight.Max)
			})
		})

		convey.Convey("When a big narrow crosses a tag cutoff", func() {
			wide := model.SkillRange{Min: 40, Max: 58, Tag: model.LevelLow}
			out := confidence.Narrow(p, wide, 100)

			convey.Convey("Then the tag should improve with the width", func() {
				convey.So(out.Width(), convey.ShouldBeLessThanOrEqualTo, p.Estimation.MediumWidth)
				convey.So(out.Tag, convey.ShouldEqual, model.LevelMedium)
			})
		})
	})
}

func factorDelta(c model.Confidence, name string) float64 {
	for _, f := range c.Factors {
		if f.Name == name {
			return f.Delta
		}
	}
	return 0
}

func hasFactor(c model.Confidence, name string) bool {
	for _, f := range c.Factors {
		if f.Name == name {
			return true
		}
	}
	return false
}
