package bigboard_test

import (
	"testing"

	bigboard "github.com/gridironlabs/warroom/internal/domain/bigboard"
	model "github.com/gridironlabs/warroom/internal/domain/model"
	policy "github.com/gridironlabs/warroom/internal/domain/policy"
	"github.com/smartystreets/goconvey/convey"
)

func boardReport(subject string, pos model.Position, scout string, lo, hi, early, late int, conf float64, kind model.ReportKind) model.ScoutReport {
	return model.ScoutReport{
		ID:        subject + "-" + scout,
		SubjectID: subject,
		ScoutID:   scout,
		Position:  pos,
		Kind:      kind,
		Overall:   model.SkillRange{Min: lo, Max: hi, Tag: model.LevelMedium},
		Projection: model.RoundProjection{
			Round: model.RoundRange{Early: early, Late: late},
		},
		Confidence: model.Confidence{Score: conf},
	}
}

func revealedRecord(scoutID string, overall float64, posRates map[model.Position]float64) model.TrackRecord {
	rate := overall
	return model.TrackRecord{
		ScoutID:             scoutID,
		ReliabilityRevealed: true,
		OverallHitRate:      &rate,
		PositionHitRate:     posRates,
	}
}

func TestReliability(t *testing.T) {
	convey.Convey("Given the default board policy", t, func() {
		p := policy.Default().Board

		convey.Convey("An unrevealed record always weighs the neutral default", func() {
			rate := 0.9
			rec := model.TrackRecord{OverallHitRate: &rate}

			convey.So(bigboard.Reliability(p, rec, model.PosWR), convey.ShouldEqual, 0.5)
		})

		convey.Convey("A revealed position rate wins over the overall rate", func() {
			rec := revealedRecord("s", 0.6, map[model.Position]float64{model.PosWR: 0.8})

			convey.So(bigboard.Reliability(p, rec, model.PosWR), convey.ShouldEqual, 0.8)
			convey.So(bigboard.Reliability(p, rec, model.PosCB), convey.ShouldEqual, 0.6)
		})

		convey.Convey("A revealed record with no rates falls back to the default", func() {
			rec := model.TrackRecord{ReliabilityRevealed: true}

			convey.So(bigboard.Reliability(p, rec, model.PosWR), convey.ShouldEqual, 0.5)
		})

		convey.Convey("A missing record weighs the neutral default", func() {
			convey.So(bigboard.Reliability(p, model.TrackRecord{}, model.PosWR), convey.ShouldEqual, 0.5)
		})
	})
}

func TestGenerate(t *testing.T) {
	convey.Convey("Given the default board policy", t, func() {
		p := policy.Default().Board

		convey.Convey("When no reports exist", func() {
			convey.So(bigboard.Generate(p, nil, nil, nil), convey.ShouldBeEmpty)
		})

		convey.Convey("When one subject has several reports", func() {
			reports := []model.ScoutReport{
				boardReport("p1", model.PosWR, "s1", 65, 75, 2, 3, 60, model.ReportAuto),
				boardReport("p1", model.PosWR, "s2", 75, 85, 2, 3, 80, model.ReportAuto),
			}

			board := bigboard.Generate(p, reports, nil, nil)

			convey.Convey("Then raw skill should be the plain mean of midpoints", func() {
				convey.So(board, convey.ShouldHaveLength, 1)
				convey.So(board[0].RawSkill, convey.ShouldEqual, 75.0)
				convey.So(board[0].Confidence, convey.ShouldEqual, 70.0)
				convey.So(board[0].RoundMid, convey.ShouldEqual, 2.5)
			})

			convey.Convey("And unrevealed scouts should leave weighted equal to raw", func() {
				convey.So(board[0].WeightedSkill, convey.ShouldEqual, 75.0)
			})
		})

		convey.Convey("When one contributing scout has revealed reliability", func() {
			reports := []model.ScoutReport{
				boardReport("p1", model.PosWR, "trusted", 85, 95, 1, 2, 80, model.ReportAuto),
				boardReport("p1", model.PosWR, "unknown", 45, 55, 5, 6, 50, model.ReportAuto),
			}
			records := map[string]model.TrackRecord{
				"trusted": revealedRecord("trusted", 0.7, map[model.Position]float64{model.PosWR: 0.9}),
			}

			board := bigboard.Generate(p, reports, nil, records)

			convey.Convey("Then the weighted skill should lean toward the trusted scout", func() {
				convey.So(board[0].RawSkill, convey.ShouldEqual, 70.0)
				convey.So(board[0].WeightedSkill, convey.ShouldBeGreaterThan, 75.0)
			})
		})

		convey.Convey("When a subject has a focus report", func() {
			reports := []model.ScoutReport{
				boardReport("deep", model.PosQB, "s1", 70, 80, 2, 3, 80, model.ReportFocus),
				boardReport("wide", model.PosRB, "s1", 70, 80, 2, 3, 80, model.ReportAuto),
			}

			board := bigboard.Generate(p, reports, nil, nil)
			byID := indexBoard(board)

			convey.Convey("Then the flat bonus should lift its need score", func() {
				convey.So(byID["deep"].HasFocusReport, convey.ShouldBeTrue)
				convey.So(byID["deep"].NeedScore, convey.ShouldEqual, byID["wide"].NeedScore+p.FocusBonus)
			})
		})

		convey.Convey("When need tiers differ on otherwise identical subjects", func() {
			reports := []model.ScoutReport{
				boardReport("alpha", model.PosEDGE, "s1", 70, 80, 2, 3, 70, model.ReportAuto),
				boardReport("beta", model.PosTE, "s1", 70, 80, 2, 3, 70, model.ReportAuto),
			}
			needs := model.Needs{model.PosEDGE: model.NeedCritical, model.PosTE: model.NeedLow}

			board := bigboard.Generate(p, reports, needs, nil)

			convey.Convey("Then the critical-need subject should rank strictly higher", func() {
				convey.So(board[0].SubjectID, convey.ShouldEqual, "alpha")
				convey.So(board[0].NeedScore, convey.ShouldBeGreaterThan, board[1].NeedScore)
				convey.So(board[0].RawSkill, convey.ShouldEqual, board[1].RawSkill)
			})
		})

		convey.Convey("When two subjects tie exactly", func() {
			reports := []model.ScoutReport{
				boardReport("delta", model.PosLB, "s1", 70, 80, 2, 3, 70, model.ReportAuto),
				boardReport("charlie", model.PosCB, "s1", 70, 80, 2, 3, 70, model.ReportAuto),
			}

			convey.Convey("Then subject ID should break the tie, run after run", func() {
				for i := 0; i < 5; i++ {
					board := bigboard.Generate(p, reports, nil, nil)
					convey.So(board[0].SubjectID, convey.ShouldEqual, "charlie")
					convey.So(board[1].SubjectID, convey.ShouldEqual, "delta")
				}
			})
		})

		convey.Convey("When the same inputs are ranked twice", func() {
			reports := []model.ScoutReport{
				boardReport("p1", model.PosWR, "s1", 80, 90, 1, 2, 85, model.ReportFocus),
				boardReport("p1", model.PosWR, "s2", 70, 85, 2, 3, 60, model.ReportAuto),
				boardReport("p2", model.PosQB, "s1", 85, 95, 1, 2, 90, model.ReportAuto),
				boardReport("p3", model.PosDT, "s3", 55, 70, 4, 5, 45, model.ReportAuto),
				boardReport("p4", model.PosS, "s2", 60, 75, 3, 4, 55, model.ReportAuto),
			}
			needs := model.Needs{model.PosQB: model.NeedImportant, model.PosDT: model.NeedModerate}
			records := map[string]model.TrackRecord{
				"s1": revealedRecord("s1", 0.65, nil),
			}

			first := bigboard.Generate(p, reports, needs, records)
			second := bigboard.Generate(p, reports, needs, records)

			convey.Convey("Then rank order and scores should match exactly", func() {
				convey.So(second, convey.ShouldResemble, first)
			})

			convey.Convey("And ranks should be 1-based and gapless", func() {
				for i, row := range first {
					convey.So(row.Rank, convey.ShouldEqual, i+1)
				}
			})
		})

		convey.Convey("When scores span the tier cutoffs", func() {
			reports := []model.ScoutReport{
				boardReport("t1", model.PosQB, "s1", 90, 100, 1, 1, 90, model.ReportAuto),
				boardReport("t2", model.PosWR, "s1", 80, 90, 1, 2, 80, model.ReportAuto),
				boardReport("t3", model.PosRB, "s1", 70, 80, 2, 3, 70, model.ReportAuto),
				boardReport("t4", model.PosTE, "s1", 55, 65, 4, 5, 50, model.ReportAuto),
			}

			board := bigboard.Generate(p, reports, nil, nil)
			byID := indexBoard(board)

			convey.Convey("Then tiers should follow the need-score cutoffs", func() {
				convey.So(byID["t1"].Tier, convey.ShouldEqual, model.TierElite)
				convey.So(byID["t2"].Tier, convey.ShouldEqual, model.TierFirstRound)
				convey.So(byID["t3"].Tier, convey.ShouldEqual, model.TierDayTwo)
				convey.So(byID["t4"].Tier, convey.ShouldEqual, model.TierDayThree)
			})
		})
	})
}

func TestTrendsAndViews(t *testing.T) {
	convey.Convey("Given a board with trend candidates", t, func() {
		p := policy.Default().Board
		reports := []model.ScoutReport{
			// Late-round projection with skill worth a day-two pick.
			boardReport("steal", model.PosIOL, "s1", 65, 75, 3, 3, 70, model.ReportAuto),
			// Skill well ahead of even the late end of a wide window.
			boardReport("climb", model.PosWR, "s1", 73, 83, 2, 4, 55, model.ReportAuto),
			// Early-round projection the room is unsure about.
			boardReport("slide", model.PosCB, "s1", 80, 90, 1, 2, 40, model.ReportAuto),
			// Early-round projection with conviction, no flags.
			boardReport("lock", model.PosQB, "s1", 84, 94, 1, 2, 85, model.ReportAuto),
			// Late and mediocre, no flags.
			boardReport("depth", model.PosLB, "s1", 40, 50, 5, 6, 50, model.ReportAuto),
		}

		board := bigboard.Generate(p, reports, nil, nil)
		byID := indexBoard(board)

		convey.Convey("Then best value should require a late round and real skill", func() {
			convey.So(byID["steal"].BestValue, convey.ShouldBeTrue)
			convey.So(byID["lock"].BestValue, convey.ShouldBeFalse)
			convey.So(byID["depth"].BestValue, convey.ShouldBeFalse)
		})

		convey.Convey("Then risers should beat the late-round expectation by the margin", func() {
			convey.So(byID["climb"].Riser, convey.ShouldBeTrue)
			convey.So(byID["lock"].Riser, convey.ShouldBeFalse)
		})

		convey.Convey("Then fallers should pair an early round with low confidence", func() {
			convey.So(byID["slide"].Faller, convey.ShouldBeTrue)
			convey.So(byID["lock"].Faller, convey.ShouldBeFalse)
		})

		convey.Convey("Then trend lists should keep board order and honor limits", func() {
			fallers := bigboard.Fallers(board, 0)
			convey.So(fallers, convey.ShouldHaveLength, 1)
			convey.So(fallers[0].SubjectID, convey.ShouldEqual, "slide")

			convey.So(bigboard.BestValues(board, 1), convey.ShouldHaveLength, 1)
			convey.So(bigboard.Risers(board, 0)[0].SubjectID, convey.ShouldEqual, "climb")
		})

		convey.Convey("Then positional views should filter in board order", func() {
			wrs := bigboard.ByPosition(board, model.PosWR, 0)
			convey.So(wrs, convey.ShouldHaveLength, 1)
			convey.So(wrs[0].SubjectID, convey.ShouldEqual, "climb")
			convey.So(bigboard.ByPosition(board, model.PosWR, 1), convey.ShouldHaveLength, 1)
			convey.So(bigboard.ByPosition(board, "KICKER", 0), convey.ShouldBeEmpty)
		})

		convey.Convey("Then tier buckets should cover every row exactly once", func() {
			buckets := bigboard.ByTier(board)
			total := 0
			for _, rows := range buckets {
				total += len(rows)
			}
			convey.So(total, convey.ShouldEqual, len(board))
		})
	})
}

func indexBoard(board []model.ProspectRanking) map[string]model.ProspectRanking {
	out := make(map[string]model.ProspectRanking, len(board))
	for _, row := range board {
		out[row.SubjectID] = row
	}
	return out
}
