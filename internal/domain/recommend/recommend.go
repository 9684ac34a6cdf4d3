// Package recommend produces one suggested pick per scout at draft
// time, and detects when the room agrees.
package recommend

import (
	"fmt"
	"sort"
	"strings"

	"github.com/gridironlabs/warroom/internal/domain/model"
	"github.com/gridironlabs/warroom/internal/domain/policy"
)

// PickFor recommends one available subject for the scout. Subjects on
// the scout's focus list come first: the best of those still available
// wins, scored like the board (single scout, need multiplier) plus the
// focus bonus. Otherwise every available subject is scored with the
// scout's role bias and the team-need bonus. Ties break on subject ID.
// The second return is false when nothing is available.
func PickFor(p policy.Policy, scout model.Scout, available []model.Prospect, reports []model.ScoutReport, needs model.Needs) (model.Recommendation, bool) {
	if len(available) == 0 {
		return model.Recommendation{}, false
	}

	if rec, ok := pickFromFocus(p, scout, available, reports, needs); ok {
		return rec, true
	}

	best := model.Recommendation{Score: -1}
	for _, subject := range available {
		base := baseSkill(scout.ID, subject.ID, reports)
		score := base
		biased := roleBiased(p.Recommend, scout.Role, subject.Position)
		if biased {
			score *= p.Recommend.RoleBias
		}
		tier := needTier(needs, subject.Position)
		score += p.Recommend.NeedBonus[tier]

		if score > best.Score || (score == best.Score && subject.ID < best.SubjectID) {
			best = model.Recommendation{
				ScoutID:    scout.ID,
				SubjectID:  subject.ID,
				Position:   subject.Position,
				Score:      score,
				Reasoning:  fallbackReasoning(scout.Role, subject.Position, base, biased, tier),
				Confidence: fallbackConfidence(scout),
			}
		}
	}
	return best, true
}

// Unanimous reports whether every scout in the room recommended the
// same subject. An empty room agrees on nothing.
func Unanimous(recs []model.Recommendation) bool {
	if len(recs) == 0 {
		return false
	}
	for _, r := range recs[1:] {
		if r.SubjectID != recs[0].SubjectID {
			return false
		}
	}
	return true
}

func pickFromFocus(p policy.Policy, scout model.Scout, available []model.Prospect, reports []model.ScoutReport, needs model.Needs) (model.Recommendation, bool) {
	onBoard := make(map[string]model.Prospect, len(available))
	for _, subject := range available {
		onBoard[subject.ID] = subject
	}

	candidates := make([]string, 0, len(scout.FocusIDs))
	for _, id := range scout.FocusIDs {
		if _, ok := onBoard[id]; ok {
			candidates = append(candidates, id)
		}
	}
	if len(candidates) == 0 {
		return model.Recommendation{}, false
	}
	sort.Strings(candidates)

	best := model.Recommendation{Score: -1}
	for _, id := range candidates {
		subject := onBoard[id]
		base := baseSkill(scout.ID, id, reports)
		tier := needTier(needs, subject.Position)
		score := base*boardMultiplier(p.Board, tier) + p.Recommend.FocusBonus

		if score > best.Score {
			best = model.Recommendation{
				ScoutID:    scout.ID,
				SubjectID:  id,
				Position:   subject.Position,
				FromFocus:  true,
				Score:      score,
				Reasoning:  focusReasoning(base, tier, subject.Position),
				Confidence: model.LevelHigh,
			}
		}
	}
	return best, true
}

// baseSkill is the scout's own read on the subject, the mean overall
// midpoint of their reports. Without any of their own, the room's mean
// stands in; a subject nobody scouted scores zero.
func baseSkill(scoutID, subjectID string, reports []model.ScoutReport) float64 {
	var ownSum, roomSum float64
	ownN, roomN := 0, 0
	for _, r := range reports {
		if r.SubjectID != subjectID {
			continue
		}
		roomSum += r.Overall.Midpoint()
		roomN++
		if r.ScoutID == scoutID {
			ownSum += r.Overall.Midpoint()
			ownN++
		}
	}
	if ownN > 0 {
		return ownSum / float64(ownN)
	}
	if roomN > 0 {
		return roomSum / float64(roomN)
	}
	return 0
}

func roleBiased(p policy.Recommend, role model.Role, pos model.Position) bool {
	var side []model.Position
	switch role {
	case model.RoleOffense:
		side = p.OffensePositions
	case model.RoleDefense:
		side = p.DefensePositions
	default:
		return false
	}
	for _, candidate := range side {
		if candidate == pos {
			return true
		}
	}
	return false
}

func needTier(needs model.Needs, pos model.Position) model.NeedTier {
	if tier, ok := needs[pos]; ok {
		return tier
	}
	return model.NeedNone
}

func boardMultiplier(p policy.Board, tier model.NeedTier) float64 {
	if m, ok := p.NeedMultipliers[tier]; ok {
		return m
	}
	return 1
}

func focusReasoning(base float64, tier model.NeedTier, pos model.Position) string {
	parts := []string{fmt.Sprintf("focus subject graded %.1f overall", base)}
	if tier != model.NeedNone {
		parts = append(parts, fmt.Sprintf("%s need at %s", tier, pos))
	}
	return strings.Join(parts, "; ")
}

func fallbackReasoning(role model.Role, pos model.Position, base float64, biased bool, tier model.NeedTier) string {
	parts := []string{fmt.Sprintf("best available graded %.1f overall", base)}
	if biased {
		parts = append(parts, fmt.Sprintf("%s-side lean toward %s", role, pos))
	}
	if tier != model.NeedNone {
		parts = append(parts, fmt.Sprintf("%s need at %s", tier, pos))
	}
	return strings.Join(parts, "; ")
}

func fallbackConfidence(scout model.Scout) model.Level {
	if len(scout.FocusIDs) > 0 {
		return model.LevelMedium
	}
	return model.LevelLow
}
