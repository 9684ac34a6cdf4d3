// Package model contains domain values passed between layers.
package model

import "strings"

// Attribute scale and draft-round bounds shared across the engine.
const (
	AttrMin  = 1
	AttrMax  = 100
	RoundMin = 1
	RoundMax = 7
)

// Position is a roster position a subject plays or a scout specializes in.
type Position string

// Positions recognized by the engine.
const (
	PosQB   Position = "QB"
	PosRB   Position = "RB"
	PosWR   Position = "WR"
	PosTE   Position = "TE"
	PosOT   Position = "OT"
	PosIOL  Position = "IOL"
	PosEDGE Position = "EDGE"
	PosDT   Position = "DT"
	PosLB   Position = "LB"
	PosCB   Position = "CB"
	PosS    Position = "S"
)

// Positions lists every recognized position in display order.
func Positions() []Position {
	return []Position{PosQB, PosRB, PosWR, PosTE, PosOT, PosIOL, PosEDGE, PosDT, PosLB, PosCB, PosS}
}

// ParsePosition normalizes s and reports whether it names a recognized
// position.
func ParsePosition(s string) (Position, bool) {
	p := Position(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range Positions() {
		if p == known {
			return p, true
		}
	}
	return "", false
}

// Region is a geographic scouting region. The zero value means no fixed
// region (national coverage).
type Region string

// Regions used for scout specialties and subject origins.
const (
	RegionEast    Region = "east"
	RegionSouth   Region = "south"
	RegionMidwest Region = "midwest"
	RegionWest    Region = "west"
)

// TrueAttributes are a subject's hidden ground-truth values. They are
// supplied by an external generator and must never reach a caller
// directly; every outward path goes through an estimated range or a
// focus sub-assessment.
type TrueAttributes struct {
	Overall   int
	Physical  int
	Technical int
	Character int
	Medical   int
	SchemeFit int
	Interview int
}

// Prospect is a draft-eligible subject under evaluation.
type Prospect struct {
	ID         string
	Name       string
	Position   Position
	Region     Region
	Age        int
	HeightIn   int
	WeightLb   int
	Visibility float64 // observability in [0,1]; big-program starters near 1
	Attributes TrueAttributes
	Traits     []string // full trait list, only partially revealed by reports
}
