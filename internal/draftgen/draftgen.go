// Package draftgen produces seeded synthetic draft classes and scouting
// staffs. Everything a Generator emits is a pure function of its seed,
// so a simulation run can be replayed exactly, uuid identifiers included.
package draftgen

import (
	"fmt"
	"math/rand"

	"github.com/google/uuid"

	"github.com/gridironlabs/warroom/internal/domain/model"
)

// Generator draws prospects and scouts from one seeded source.
type Generator struct {
	rng *rand.Rand
}

// New creates a generator seeded with seed.
func New(seed int64) *Generator {
	return &Generator{rng: rand.New(rand.NewSource(seed))} //nolint:gosec // reproducibility is the point
}

// Class generates a draft class of size prospects. Positions follow a
// weighted roster mix and true attributes follow archetype spreads, so
// a class holds a few stars, a broad middle, and late-round depth.
func (g *Generator) Class(size int) []model.Prospect {
	class := make([]model.Prospect, 0, size)
	for i := 0; i < size; i++ {
		class = append(class, g.prospect())
	}
	return class
}

// Staff generates a scouting staff of size scouts. The first is always
// the head scout; the rest alternate between offense and defense.
func (g *Generator) Staff(size int) []model.Scout {
	staff := make([]model.Scout, 0, size)
	for i := 0; i < size; i++ {
		staff = append(staff, g.scout(i))
	}
	return staff
}

func (g *Generator) prospect() model.Prospect {
	pos := positionMix[g.rng.Intn(len(positionMix))]
	build := builds[pos]
	arch := g.archetype()

	overall := g.between(arch.overallMin, arch.overallMax)
	attrs := model.TrueAttributes{
		Overall:   overall,
		Physical:  clampAttr(overall + arch.physicalShift + g.spread(attributeJitter)),
		Technical: clampAttr(overall + arch.technicalShift + g.spread(attributeJitter)),
		Character: g.between(arch.characterMin, 99),
		Medical:   g.between(arch.medicalMin, 99),
		SchemeFit: g.between(40, 95),
		Interview: g.between(arch.characterMin, 95),
	}

	return model.Prospect{
		ID:         g.id(),
		Name:       g.name(),
		Position:   pos,
		Region:     regions[g.rng.Intn(len(regions))],
		Age:        g.between(20, 23),
		HeightIn:   g.between(build.heightMin, build.heightMax),
		WeightLb:   g.between(build.weightMin, build.weightMax),
		Visibility: g.visibility(),
		Attributes: attrs,
		Traits:     g.traits(),
	}
}

func (g *Generator) scout(index int) model.Scout {
	role := model.RoleHead
	if index > 0 {
		if index%2 == 1 {
			role = model.RoleOffense
		} else {
			role = model.RoleDefense
		}
	}

	experience := g.between(1, 24)
	sc := model.Scout{
		ID:         g.id(),
		Name:       g.name(),
		Role:       role,
		Evaluation: g.between(50, 92),
		Speed:      g.between(3, 7),
		Experience: experience,
		Age:        28 + experience + g.rng.Intn(6),
		Contract: &model.Contract{
			Salary:    60_000 + g.rng.Intn(19)*5_000,
			YearsLeft: g.between(1, 4),
		},
	}
	sc.Record.ScoutID = sc.ID

	// Head scouts stay generalists; the rest often carry a lean.
	if role != model.RoleHead {
		if g.rng.Intn(2) == 0 {
			sc.PositionSpecialty = specialties[role][g.rng.Intn(len(specialties[role]))]
		}
		if g.rng.Intn(2) == 0 {
			sc.RegionSpecialty = regions[g.rng.Intn(len(regions))]
		}
	}
	return sc
}

func (g *Generator) archetype() archetype {
	return archetypes[g.rng.Intn(len(archetypes))]
}

// visibility skews toward well-covered programs, with a small-school
// tail that keeps hidden gems in every class.
func (g *Generator) visibility() float64 {
	switch g.rng.Intn(4) {
	case 0, 1:
		return 0.70 + g.rng.Float64()*0.25
	case 2:
		return 0.45 + g.rng.Float64()*0.25
	default:
		return 0.15 + g.rng.Float64()*0.30
	}
}

func (g *Generator) traits() []string {
	count := g.between(2, 4)
	picked := make([]string, 0, count)
	taken := make(map[int]bool, count)
	for len(picked) < count {
		i := g.rng.Intn(len(traitPool))
		if taken[i] {
			continue
		}
		taken[i] = true
		picked = append(picked, traitPool[i])
	}
	return picked
}

func (g *Generator) name() string {
	return fmt.Sprintf("%s %s", firstNames[g.rng.Intn(len(firstNames))], lastNames[g.rng.Intn(len(lastNames))])
}

// id draws the uuid bytes from the seeded source so identifiers replay
// with the rest of the roster.
func (g *Generator) id() string {
	return uuid.Must(uuid.NewRandomFromReader(g.rng)).String()
}

// between returns a uniform int in [lo, hi].
func (g *Generator) between(lo, hi int) int {
	return lo + g.rng.Intn(hi-lo+1)
}

// spread returns a uniform int in [-width, width].
func (g *Generator) spread(width int) int {
	return g.rng.Intn(2*width+1) - width
}

func clampAttr(v int) int {
	if v < model.AttrMin {
		return model.AttrMin
	}
	if v > model.AttrMax {
		return model.AttrMax
	}
	return v
}
