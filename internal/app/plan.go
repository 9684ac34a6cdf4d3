package app

import (
	"sort"

	"github.com/gridironlabs/warroom/internal/domain/model"
	"github.com/gridironlabs/warroom/internal/domain/policy"
)

// planAssignments builds one cycle's workload. Each scout evaluates up
// to Speed subjects per cycle: focus subjects first, then auto
// assignments drawn from a window that rotates through the sorted pool
// so coverage spreads across scouts within a cycle and across cycles
// over a season. Sorted iteration makes the plan a function of the
// roster and cycle number alone.
func planAssignments(p policy.Policy, scouts map[string]model.Scout, prospects map[string]model.Prospect, cycle int) []model.Assignment {
	scoutIDs := make([]string, 0, len(scouts))
	for id := range scouts {
		scoutIDs = append(scoutIDs, id)
	}
	sort.Strings(scoutIDs)

	subjectIDs := make([]string, 0, len(prospects))
	for id := range prospects {
		subjectIDs = append(subjectIDs, id)
	}
	sort.Strings(subjectIDs)

	if len(subjectIDs) == 0 {
		return nil
	}

	var plan []model.Assignment
	for i, scoutID := range scoutIDs {
		sc := scouts[scoutID]
		stride := sc.Speed
		if stride < 1 {
			stride = 1
		}
		remaining := stride
		taken := make(map[string]bool, stride)

		for _, subjectID := range sc.FocusIDs {
			if remaining == 0 {
				break
			}
			if _, ok := prospects[subjectID]; !ok {
				continue
			}
			plan = append(plan, model.Assignment{
				Cycle:     cycle,
				ScoutID:   scoutID,
				SubjectID: subjectID,
				Kind:      model.ReportFocus,
				TimeHours: p.FocusTimeHours,
			})
			taken[subjectID] = true
			remaining--
		}

		start := ((i + cycle - 1) * stride) % len(subjectIDs)
		for step := 0; step < len(subjectIDs) && remaining > 0; step++ {
			subjectID := subjectIDs[(start+step)%len(subjectIDs)]
			if taken[subjectID] {
				continue
			}
			plan = append(plan, model.Assignment{
				Cycle:     cycle,
				ScoutID:   scoutID,
				SubjectID: subjectID,
				Kind:      model.ReportAuto,
				TimeHours: p.AutoTimeHours,
			})
			taken[subjectID] = true
			remaining--
		}
	}

	return plan
}
