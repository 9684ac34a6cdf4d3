// Package estimate converts hidden true values into bounded estimate
// ranges given a scout's skill and the subject's observability.
package estimate

import (
	"math"
	"math/rand"
	"sort"
	"strings"

	"github.com/gridironlabs/warroom/internal/domain/model"
	"github.com/gridironlabs/warroom/internal/domain/policy"
)

// Input carries the fields needed to estimate one attribute.
type Input struct {
	TrueValue  int
	ScoutSkill int     // 1-100
	Visibility float64 // [0,1]
	Kind       model.ReportKind
}

// Attribute produces a bounded range around the true value. Lower scout
// skill and lower visibility both widen the range; a focus evaluation
// observes at full visibility and shrinks the width further, so it is
// categorically tighter than an auto look. rng drives only the center
// noise; the width is fully determined by skill, visibility, and kind.
// Callers own seeding, so a batch can be replayed exactly.
func Attribute(rng *rand.Rand, p policy.Estimation, in Input) model.SkillRange {
	half := halfWidth(p, in.ScoutSkill, in.Visibility, in.Kind)
	width := int(math.Round(2 * half))

	noiseBound := half * p.MaxNoiseFraction
	noise := (rng.Float64()*2 - 1) * noiseBound
	center := int(math.Round(float64(in.TrueValue) + noise))

	lo := center - width/2
	hi := lo + width

	// Slide the range inside the attribute scale rather than truncating,
	// so the width invariants survive at the boundaries.
	if lo < model.AttrMin {
		hi += model.AttrMin - lo
		lo = model.AttrMin
	}
	if hi > model.AttrMax {
		lo -= hi - model.AttrMax
		hi = model.AttrMax
	}
	if lo < model.AttrMin {
		lo = model.AttrMin
	}

	r := model.SkillRange{Min: lo, Max: hi}
	r.Tag = WidthTag(p, r.Width())
	return r
}

// WidthTag maps a range width to its confidence tag.
func WidthTag(p policy.Estimation, width int) model.Level {
	switch {
	case width <= p.NarrowWidth:
		return model.LevelHigh
	case width <= p.MediumWidth:
		return model.LevelMedium
	default:
		return model.LevelLow
	}
}

// halfWidth composes the skill spread with the visibility multiplier.
// Focus evaluations force full visibility and apply the depth factor.
func halfWidth(p policy.Estimation, skill int, visibility float64, kind model.ReportKind) float64 {
	vis := clamp01(visibility)
	if kind == model.ReportFocus {
		vis = 1
	}

	spread := p.BaseHalfWidth + float64(model.AttrMax-skill)*p.SkillWidthFactor
	mult := p.MaxVisibilityMult - (p.MaxVisibilityMult-1)*vis
	half := spread * mult
	if kind == model.ReportFocus {
		half *= p.FocusDepthFactor
	}
	return math.Min(math.Max(half, p.MinHalfWidth), p.MaxHalfWidth)
}

// TraitInput carries a subject's full trait list and the observation
// context.
type TraitInput struct {
	All        []string
	ScoutSkill int
	Visibility float64
	Kind       model.ReportKind
}

// TraitReveal is the visible slice of a trait list plus the count of
// traits withheld.
type TraitReveal struct {
	Revealed    []string
	HiddenCount int
}

// Traits reveals a skill- and visibility-driven fraction of the
// subject's traits, observable descriptors first. Focus evaluations
// reveal everything. The split is deterministic; only estimation
// centers carry noise.
func Traits(p policy.Estimation, in TraitInput) TraitReveal {
	total := len(in.All)
	if total == 0 {
		return TraitReveal{}
	}
	if in.Kind == model.ReportFocus {
		return TraitReveal{Revealed: append([]string(nil), in.All...)}
	}

	fraction := clamp01(p.TraitBase +
		p.TraitSkillShare*float64(in.ScoutSkill)/float64(model.AttrMax) +
		p.TraitVisShare*clamp01(in.Visibility))
	count := int(math.Round(fraction * float64(total)))
	if count > total {
		count = total
	}

	ordered := append([]string(nil), in.All...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return observable(ordered[i]) && !observable(ordered[j])
	})

	return TraitReveal{
		Revealed:    ordered[:count],
		HiddenCount: total - count,
	}
}

// Lexical markers of traits visible from the stands or the tape.
var observableMarkers = []string{
	"speed", "fast", "quick", "size", "frame", "strength", "strong",
	"athletic", "explosive", "burst", "agile", "length", "motor", "range",
}

func observable(trait string) bool {
	lower := strings.ToLower(trait)
	for _, marker := range observableMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

func clamp01(v float64) float64 {
	return math.Min(math.Max(v, 0), 1)
}
