package report_test

import (
	"errors"
	"math/rand"
	"testing"
	"time"

	model "github.com/gridironlabs/warroom/internal/domain/model"
	policy "github.com/gridironlabs/warroom/internal/domain/policy"
	report "github.com/gridironlabs/warroom/internal/domain/report"
	"github.com/smartystreets/goconvey/convey"
)

func testSubject() model.Prospect {
	return model.Prospect{
		ID:         "prospect-7",
		Name:       "D. Okafor",
		Position:   model.PosEDGE,
		Region:     model.RegionSouth,
		Age:        21,
		HeightIn:   76,
		WeightLb:   258,
		Visibility: 0.8,
		Attributes: model.TrueAttributes{
			Overall:   86,
			Physical:  90,
			Technical: 78,
			Character: 72,
			Medical:   88,
			SchemeFit: 61,
			Interview: 45,
		},
		Traits: []string{"explosive burst", "bend around the arc", "raw hand usage", "high motor"},
	}
}

func testScout() model.Scout {
	return model.Scout{
		ID:         "scout-3",
		Name:       "R. Calloway",
		Role:       model.RoleDefense,
		Evaluation: 74,
		Speed:      5,
		Experience: 9,
		Age:        44,
		Record:     model.TrackRecord{ScoutID: "scout-3", Tendency: model.TendencyNeutral},
	}
}

func TestAssemble(t *testing.T) {
	convey.Convey("Given a subject and a scout", t, func() {
		p := policy.Default()
		in := report.AssembleInput{
			Subject:   testSubject(),
			Scout:     testScout(),
			Kind:      model.ReportAuto,
			Cycle:     4,
			TimeHours: 6,
			Now:       time.Date(2025, 10, 12, 9, 0, 0, 0, time.UTC),
		}

		convey.Convey("When assembling an auto report", func() {
			rep, err := report.Assemble(rand.New(rand.NewSource(21)), p, in)

			convey.Convey("Then it should assemble and validate cleanly", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(report.Validate(rep), convey.ShouldBeNil)
				convey.So(rep.ID, convey.ShouldNotBeEmpty)
				convey.So(rep.SubjectID, convey.ShouldEqual, "prospect-7")
				convey.So(rep.ScoutID, convey.ShouldEqual, "scout-3")
				convey.So(rep.Cycle, convey.ShouldEqual, 4)
				convey.So(rep.Position, convey.ShouldEqual, model.PosEDGE)
			})

			convey.Convey("And it should never carry focus detail", func() {
				convey.So(rep.Focus, convey.ShouldBeNil)
			})

			convey.Convey("And the trait counts should reconcile with the subject", func() {
				convey.So(len(rep.Traits)+rep.HiddenTraitCount, convey.ShouldEqual, len(in.Subject.Traits))
			})

			convey.Convey("And the projection should sit on the seven-round board", func() {
				convey.So(rep.Projection.Round.Early, convey.ShouldBeGreaterThanOrEqualTo, model.RoundMin)
				convey.So(rep.Projection.Round.Late, convey.ShouldBeLessThanOrEqualTo, model.RoundMax)
				convey.So(rep.Projection.Round.Early, convey.ShouldBeLessThanOrEqualTo, rep.Projection.Round.Late)
				convey.So(rep.Projection.Grade, convey.ShouldNotBeEmpty)
			})

			convey.Convey("And the measurements should come from the subject", func() {
				convey.So(rep.Measurements.HeightIn, convey.ShouldEqual, 76)
				convey.So(rep.Measurements.WeightLb, convey.ShouldEqual, 258)
			})
		})

		convey.Convey("When assembling a focus report", func() {
			in.Kind = model.ReportFocus
			in.TimeHours = 30
			rep, err := report.Assemble(rand.New(rand.NewSource(21)), p, in)

			convey.Convey("Then it should carry the deep sub-assessments", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(rep.Focus, convey.ShouldNotBeNil)
				convey.So(rep.Focus.Character, convey.ShouldEqual, model.GradeB)
				convey.So(rep.Focus.Medical, convey.ShouldEqual, model.GradeA)
				convey.So(rep.Focus.SchemeFit, convey.ShouldEqual, model.GradeC)
				convey.So(rep.Focus.Interview, convey.ShouldEqual, model.GradeD)
				convey.So(rep.Focus.Ceiling, convey.ShouldNotBeEmpty)
				convey.So(rep.Focus.Floor, convey.ShouldNotBeEmpty)
				convey.So(rep.Focus.Comparison, convey.ShouldContainSubstring, "EDGE")
			})

			convey.Convey("And every trait should be revealed", func() {
				convey.So(rep.HiddenTraitCount, convey.ShouldEqual, 0)
				convey.So(len(rep.Traits), convey.ShouldEqual, len(in.Subject.Traits))
			})
		})

		convey.Convey("When comparing focus and auto on the same look", func() {
			auto, errA := report.Assemble(rand.New(rand.NewSource(5)), p, in)
			in.Kind = model.ReportFocus
			focus, errF := report.Assemble(rand.New(rand.NewSource(5)), p, in)

			convey.Convey("Then the focus overall range should be at most as wide", func() {
				convey.So(errA, convey.ShouldBeNil)
				convey.So(errF, convey.ShouldBeNil)
				convey.So(focus.Overall.Width(), convey.ShouldBeLessThanOrEqualTo, auto.Overall.Width())
			})
		})

		convey.Convey("When assembling twice with the same seed", func() {
			a, _ := report.Assemble(rand.New(rand.NewSource(77)), p, in)
			b, _ := report.Assemble(rand.New(rand.NewSource(77)), p, in)

			convey.Convey("Then the estimated ranges should replay exactly", func() {
				convey.So(a.Overall, convey.ShouldResemble, b.Overall)
				convey.So(a.Physical, convey.ShouldResemble, b.Physical)
				convey.So(a.Technical, convey.ShouldResemble, b.Technical)
				convey.So(a.Projection, convey.ShouldResemble, b.Projection)
			})
		})
	})
}

func validReport() model.ScoutReport {
	return model.ScoutReport{
		ID:        "rep-1",
		SubjectID: "prospect-1",
		ScoutID:   "scout-1",
		Position:  model.PosWR,
		Kind:      model.ReportAuto,
		Overall:   model.SkillRange{Min: 60, Max: 75, Tag: model.LevelMedium},
		Physical:  model.SkillRange{Min: 65, Max: 80, Tag: model.LevelMedium},
		Technical: model.SkillRange{Min: 55, Max: 70, Tag: model.LevelMedium},
		Projection: model.RoundProjection{
			Round: model.RoundRange{Early: 2, Late: 3},
			Grade: "day-two value",
		},
	}
}

func TestValidate(t *testing.T) {
	convey.Convey("Given report validation", t, func() {
		convey.Convey("When the report is sound", func() {
			convey.So(report.Validate(validReport()), convey.ShouldBeNil)
		})

		convey.Convey("When identity fields are empty", func() {
			r := validReport()
			r.SubjectID = ""

			convey.So(errors.Is(report.Validate(r), report.ErrEmptyIdentity), convey.ShouldBeTrue)
		})

		convey.Convey("When a range is out of order", func() {
			r := validReport()
			r.Technical = model.SkillRange{Min: 70, Max: 55}

			convey.So(errors.Is(report.Validate(r), report.ErrInvalidRange), convey.ShouldBeTrue)
		})

		convey.Convey("When a range leaves the attribute scale", func() {
			r := validReport()
			r.Physical = model.SkillRange{Min: 0, Max: 40}

			convey.So(errors.Is(report.Validate(r), report.ErrInvalidRange), convey.ShouldBeTrue)
		})

		convey.Convey("When the round window is out of order", func() {
			r := validReport()
			r.Projection.Round = model.RoundRange{Early: 4, Late: 2}

			convey.So(errors.Is(report.Validate(r), report.ErrRoundBounds), convey.ShouldBeTrue)
		})

		convey.Convey("When the round window leaves the board", func() {
			r := validReport()
			r.Projection.Round = model.RoundRange{Early: 6, Late: 8}

			convey.So(errors.Is(report.Validate(r), report.ErrRoundBounds), convey.ShouldBeTrue)
		})

		convey.Convey("When an auto report carries focus detail", func() {
			r := validReport()
			r.Focus = &model.FocusDetail{Character: model.GradeB}

			convey.So(errors.Is(report.Validate(r), report.ErrFocusDetail), convey.ShouldBeTrue)
		})

		convey.Convey("When a focus report is missing its detail", func() {
			r := validReport()
			r.Kind = model.ReportFocus

			convey.So(errors.Is(report.Validate(r), report.ErrFocusDetail), convey.ShouldBeTrue)
		})

		convey.Convey("When trait counts go negative", func() {
			r := validReport()
			r.HiddenTraitCount = -1

			convey.So(errors.Is(report.Validate(r), report.ErrTraitCount), convey.ShouldBeTrue)
		})
	})
}
