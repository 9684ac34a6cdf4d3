package simulate

import (
	"fmt"

	"github.com/fatih/color"

	"github.com/gridironlabs/warroom/internal/app"
	"github.com/gridironlabs/warroom/internal/domain/model"
)

var tierColors = map[model.Tier]*color.Color{
	model.TierElite:      color.New(color.FgHiYellow, color.Bold),
	model.TierFirstRound: color.New(color.FgGreen),
	model.TierDayTwo:     color.New(color.FgCyan),
	model.TierDayThree:   color.New(color.FgHiBlack),
}

var (
	headerColor = color.New(color.FgHiWhite, color.Bold)
	okColor     = color.New(color.FgGreen)
	failColor   = color.New(color.FgRed, color.Bold)
	dimColor    = color.New(color.FgHiBlack)
)

// renderBoard prints the top board rows, tier colored, with trend
// flags. names maps subject identifiers to display names.
func renderBoard(season int, rows []model.ProspectRanking, limit int, names map[string]string) {
	fmt.Println()
	headerColor.Printf("  BIG BOARD / season %d\n", season)
	fmt.Printf("  %-4s %-22s %-5s %7s %6s %5s %-12s %s\n",
		"RANK", "PROSPECT", "POS", "SKILL", "CONF", "RD", "TIER", "FLAGS")
	for _, row := range rows {
		if limit > 0 && row.Rank > limit {
			dimColor.Printf("  ... %d more\n", len(rows)-limit)
			break
		}
		c, ok := tierColors[row.Tier]
		if !ok {
			c = dimColor
		}
		c.Printf("  %-4d %-22s %-5s %7.1f %5.0f%% %5.1f %-12s %s\n",
			row.Rank, truncate(displayName(names, row.SubjectID), 22), row.Position,
			row.WeightedSkill, row.Confidence, row.RoundMid, row.Tier, rowFlags(row))
	}
}

// renderDraft prints the pick walk with room unanimity.
func renderDraft(picks []app.PickResult, names map[string]string) {
	fmt.Println()
	headerColor.Println("  DRAFT")
	for _, pick := range picks {
		room := fmt.Sprintf("%d voices", len(pick.Recommendations))
		if pick.Unanimous {
			room = "unanimous"
		}
		fmt.Printf("  %2d. %-22s %-5s score %5.1f  (%s, per %s)\n",
			pick.Pick, truncate(displayName(names, pick.Selected.SubjectID), 22),
			pick.Selected.Position, pick.Selected.Score, room, displayName(names, pick.Selected.ScoutID))
	}
}

// renderScouts prints each scout's public standing after the arc.
func renderScouts(views []model.ScoutView) {
	fmt.Println()
	headerColor.Println("  STAFF")
	for _, view := range views {
		rate := "  --"
		if view.HitRate != nil {
			rate = fmt.Sprintf("%3.0f%%", *view.HitRate*100)
		}
		tendency := string(view.Tendency)
		if tendency == "" {
			tendency = "hidden"
		}
		fmt.Printf("  %-22s %-8s exp %2d  accuracy %-9s hit %s  tendency %s\n",
			truncate(view.Name, 22), view.Role, view.Experience, view.AccuracyLabel, rate, tendency)
	}
}

// renderChecks prints the verification outcome.
func renderChecks(stats *Stats, failures []string) {
	fmt.Println()
	if len(failures) == 0 {
		okColor.Printf("  OK    all %d invariant checks passed\n", stats.ChecksRun)
		return
	}
	failColor.Printf("  FAIL  %d of %d invariant checks failed\n", stats.ChecksFailed, stats.ChecksRun)
	for _, failure := range failures {
		failColor.Printf("        %s\n", failure)
	}
}

// renderSummary prints the run counters.
func renderSummary(stats *Stats) {
	fmt.Println()
	headerColor.Println("  SUMMARY")
	fmt.Printf("  seasons %d  cycles %d  reports %d  picks %d  checks %d  elapsed %s\n",
		stats.SeasonsRun, stats.CyclesRun, stats.ReportsSeen, stats.PicksMade,
		stats.ChecksRun, stats.Duration.Round(timeRound))
}

func rowFlags(row model.ProspectRanking) string {
	flags := ""
	if row.HasFocusReport {
		flags += "F"
	}
	if row.Riser {
		flags += "^"
	}
	if row.Faller {
		flags += "v"
	}
	if row.BestValue {
		flags += "$"
	}
	return flags
}

func displayName(names map[string]string, id string) string {
	if name, ok := names[id]; ok {
		return name
	}
	return id
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
