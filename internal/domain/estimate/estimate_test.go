package estimate_test

import (
	"math/rand"
	"testing"

	estimate "github.com/gridironlabs/warroom/internal/domain/estimate"
	model "github.com/gridironlabs/warroom/internal/domain/model"
	policy "github.com/gridironlabs/warroom/internal/domain/policy"
	"github.com/smartystreets/goconvey/convey"
)

func TestAttributeRangeValidity(t *testing.T) {
	convey.Convey("Given estimation inputs across the whole scale", t, func() {
		p := policy.Default().Estimation

		convey.Convey("When estimating with boundary and interior values", func() {
			trueValues := []int{1, 25, 50, 75, 100}
			skills := []int{1, 40, 100}
			visibilities := []float64{0, 0.5, 1}
			kinds := []model.ReportKind{model.ReportAuto, model.ReportFocus}

			convey.Convey("Then every range should satisfy 1 <= min <= max <= 100", func() {
				rng := rand.New(rand.NewSource(7))
				for _, tv := range trueValues {
					for _, skill := range skills {
						for _, vis := range visibilities {
							for _, kind := range kinds {
								for i := 0; i < 25; i++ {
									r := estimate.Attribute(rng, p, estimate.Input{
										TrueValue:  tv,
										ScoutSkill: skill,
										Visibility: vis,
										Kind:       kind,
									})
									convey.So(r.Min, convey.ShouldBeGreaterThanOrEqualTo, model.AttrMin)
									convey.So(r.Max, convey.ShouldBeLessThanOrEqualTo, model.AttrMax)
									convey.So(r.Min, convey.ShouldBeLessThanOrEqualTo, r.Max)
								}
							}
						}
					}
				}
			})
		})

		convey.Convey("When estimating with out-of-bounds visibility", func() {
			rng := rand.New(rand.NewSource(11))
			low := estimate.Attribute(rng, p, estimate.Input{TrueValue: 50, ScoutSkill: 60, Visibility: -0.4})
			high := estimate.Attribute(rng, p, estimate.Input{TrueValue: 50, ScoutSkill: 60, Visibility: 1.7})

			convey.Convey("Then visibility should be clamped, not rejected", func() {
				convey.So(low.Min, convey.ShouldBeGreaterThanOrEqualTo, model.AttrMin)
				convey.So(low.Max, convey.ShouldBeLessThanOrEqualTo, model.AttrMax)
				convey.So(high.Min, convey.ShouldBeGreaterThanOrEqualTo, model.AttrMin)
				convey.So(high.Max, convey.ShouldBeLessThanOrEqualTo, model.AttrMax)
			})
		})
	})
}

func TestAttributeMonotonicity(t *testing.T) {
	convey.Convey("Given a fixed true value", t, func() {
		p := policy.Default().Estimation
		width := func(skill int, vis float64) int {
			rng := rand.New(rand.NewSource(3))
			r := estimate.Attribute(rng, p, estimate.Input{
				TrueValue:  50,
				ScoutSkill: skill,
				Visibility: vis,
				Kind:       model.ReportAuto,
			})
			return r.Width()
		}

		convey.Convey("When scout skill increases", func() {
			convey.Convey("Then range width should never increase", func() {
				for skill := 1; skill < 100; skill++ {
					convey.So(width(skill+1, 0.6), convey.ShouldBeLessThanOrEqualTo, width(skill, 0.6))
				}
			})
		})

		convey.Convey("When visibility increases", func() {
			convey.Convey("Then range width should never increase", func() {
				for step := 0; step < 20; step++ {
					lower := float64(step) / 20
					higher := float64(step+1) / 20
					convey.So(width(55, higher), convey.ShouldBeLessThanOrEqualTo, width(55, lower))
				}
			})
		})

		convey.Convey("When comparing extreme scouts", func() {
			convey.Convey("Then the elite scout should be strictly tighter", func() {
				convey.So(width(95, 0.6), convey.ShouldBeLessThan, width(5, 0.6))
			})
		})
	})
}

func TestFocusDominance(t *testing.T) {
	convey.Convey("Given the same scout and subject", t, func() {
		p := policy.Default().Estimation

		convey.Convey("When comparing focus and auto evaluations", func() {
			convey.Convey("Then the focus width should never exceed the auto width", func() {
				for _, skill := range []int{1, 20, 50, 80, 100} {
					for _, vis := range []float64{0, 0.3, 0.7, 1} {
						rng := rand.New(rand.NewSource(int64(skill)))
						auto := estimate.Attribute(rng, p, estimate.Input{
							TrueValue: 60, ScoutSkill: skill, Visibility: vis, Kind: model.ReportAuto,
						})
						focus := estimate.Attribute(rng, p, estimate.Input{
							TrueValue: 60, ScoutSkill: skill, Visibility: vis, Kind: model.ReportFocus,
						})
						convey.So(focus.Width(), convey.ShouldBeLessThanOrEqualTo, auto.Width())
					}
				}
			})
		})

		convey.Convey("When a focus evaluation reveals traits", func() {
			reveal := estimate.Traits(p, estimate.TraitInput{
				All:        []string{"elite speed", "film junkie", "short arms", "lazy practice habits"},
				ScoutSkill: 10,
				Visibility: 0.1,
				Kind:       model.ReportFocus,
			})

			convey.Convey("Then every trait should be visible and none hidden", func() {
				convey.So(len(reveal.Revealed), convey.ShouldEqual, 4)
				convey.So(reveal.HiddenCount, convey.ShouldEqual, 0)
			})
		})
	})
}

func TestAttributeDeterminism(t *testing.T) {
	convey.Convey("Given an identical seed", t, func() {
		p := policy.Default().Estimation
		in := estimate.Input{TrueValue: 72, ScoutSkill: 64, Visibility: 0.8, Kind: model.ReportAuto}

		convey.Convey("When estimating twice", func() {
			a := estimate.Attribute(rand.New(rand.NewSource(99)), p, in)
			b := estimate.Attribute(rand.New(rand.NewSource(99)), p, in)

			convey.Convey("Then the ranges should be identical", func() {
				convey.So(a, convey.ShouldResemble, b)
			})
		})
	})
}

func TestWidthTag(t *testing.T) {
	convey.Convey("Given the default width cutoffs", t, func() {
		p := policy.Default().Estimation

		convey.Convey("Then tags should step with width", func() {
			convey.So(estimate.WidthTag(p, 0), convey.ShouldEqual, model.LevelHigh)
			convey.So(estimate.WidthTag(p, p.NarrowWidth), convey.ShouldEqual, model.LevelHigh)
			convey.So(estimate.WidthTag(p, p.NarrowWidth+1), convey.ShouldEqual, model.LevelMedium)
			convey.So(estimate.WidthTag(p, p.MediumWidth), convey.ShouldEqual, model.LevelMedium)
			convey.So(estimate.WidthTag(p, p.MediumWidth+1), convey.ShouldEqual, model.LevelLow)
		})
	})
}

func TestTraits(t *testing.T) {
	convey.Convey("Given a subject with observable and hidden traits", t, func() {
		p := policy.Default().Estimation
		all := []string{
			"film junkie",
			"explosive first step",
			"locker room concern",
			"elite speed",
			"inconsistent hands",
			"strong frame",
		}

		convey.Convey("When a weak scout takes a low-visibility look", func() {
			reveal := estimate.Traits(p, estimate.TraitInput{
				All: all, ScoutSkill: 10, Visibility: 0.1, Kind: model.ReportAuto,
			})

			convey.Convey("Then only a fraction should be revealed", func() {
				convey.So(len(reveal.Revealed), convey.ShouldBeLessThan, len(all))
				convey.So(len(reveal.Revealed)+reveal.HiddenCount, convey.ShouldEqual, len(all))
			})

			convey.Convey("And observable descriptors should surface first", func() {
				for _, trait := range reveal.Revealed {
					convey.So(trait, convey.ShouldBeIn,
						"explosive first step", "elite speed", "strong frame")
				}
			})
		})

		convey.Convey("When a strong scout takes a high-visibility look", func() {
			weak := estimate.Traits(p, estimate.TraitInput{
				All: all, ScoutSkill: 10, Visibility: 0.1, Kind: model.ReportAuto,
			})
			strong := estimate.Traits(p, estimate.TraitInput{
				All: all, ScoutSkill: 95, Visibility: 1, Kind: model.ReportAuto,
			})

			convey.Convey("Then more traits should be revealed", func() {
				convey.So(len(strong.Revealed), convey.ShouldBeGreaterThan, len(weak.Revealed))
			})
		})

		convey.Convey("When the subject has no traits", func() {
			reveal := estimate.Traits(p, estimate.TraitInput{
				All: nil, ScoutSkill: 80, Visibility: 0.9, Kind: model.ReportAuto,
			})

			convey.Convey("Then the reveal should be empty with zero hidden", func() {
				convey.So(reveal.Revealed, convey.ShouldBeEmpty)
				convey.So(reveal.HiddenCount, convey.ShouldEqual, 0)
			})
		})

		convey.Convey("When the caller mutates the revealed slice", func() {
			reveal := estimate.Traits(p, estimate.TraitInput{
				All: all, ScoutSkill: 95, Visibility: 1, Kind: model.ReportFocus,
			})
			reveal.Revealed[0] = "tampered"

			convey.Convey("Then the source list should be untouched", func() {
				convey.So(all[0], convey.ShouldEqual, "film junkie")
			})
		})
	})
}
