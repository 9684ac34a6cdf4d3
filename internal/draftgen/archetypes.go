package draftgen

import "github.com/gridironlabs/warroom/internal/domain/model"

// attributeJitter bounds the per-attribute wobble around an archetype's
// overall.
const attributeJitter = 6

// archetype describes one true-attribute spread. The mix below leans on
// a broad middle class with rare stars and a real late-round tail.
type archetype struct {
	overallMin     int
	overallMax     int
	physicalShift  int
	technicalShift int
	characterMin   int
	medicalMin     int
}

var archetypes = []archetype{
	// Solid starters carry double weight; most of a class lives here.
	{overallMin: 68, overallMax: 82, characterMin: 45, medicalMin: 55},
	{overallMin: 68, overallMax: 82, characterMin: 45, medicalMin: 55},
	// Franchise cornerstone, rare by construction.
	{overallMin: 88, overallMax: 99, physicalShift: 2, technicalShift: 2, characterMin: 60, medicalMin: 60},
	// First-round talent.
	{overallMin: 82, overallMax: 92, characterMin: 50, medicalMin: 55},
	// Developmental project: tools ahead of polish.
	{overallMin: 55, overallMax: 70, physicalShift: 6, technicalShift: -10, characterMin: 40, medicalMin: 50},
	// Boom-bust athlete: elite body, raw technique, shakier medicals.
	{overallMin: 60, overallMax: 85, physicalShift: 14, technicalShift: -14, characterMin: 35, medicalMin: 35},
	// Late-round depth.
	{overallMin: 45, overallMax: 62, characterMin: 40, medicalMin: 50},
	// High floor, low ceiling: limited body, refined game.
	{overallMin: 65, overallMax: 75, physicalShift: -8, technicalShift: 8, characterMin: 65, medicalMin: 60},
}

// build bounds measurements per position.
type build struct {
	heightMin, heightMax int
	weightMin, weightMax int
}

var builds = map[model.Position]build{
	model.PosQB:   {73, 78, 205, 240},
	model.PosRB:   {68, 73, 195, 225},
	model.PosWR:   {69, 77, 175, 220},
	model.PosTE:   {75, 79, 240, 260},
	model.PosOT:   {76, 80, 295, 340},
	model.PosIOL:  {74, 78, 290, 330},
	model.PosEDGE: {74, 78, 240, 275},
	model.PosDT:   {73, 78, 290, 330},
	model.PosLB:   {72, 76, 225, 250},
	model.PosCB:   {69, 74, 175, 205},
	model.PosS:    {70, 75, 190, 215},
}

// positionMix weights class composition the way real boards skew: more
// receivers, corners, and edge rushers than quarterbacks or tight ends.
var positionMix = []model.Position{
	model.PosQB,
	model.PosRB, model.PosRB,
	model.PosWR, model.PosWR, model.PosWR,
	model.PosTE,
	model.PosOT, model.PosOT,
	model.PosIOL, model.PosIOL,
	model.PosEDGE, model.PosEDGE, model.PosEDGE,
	model.PosDT, model.PosDT,
	model.PosLB, model.PosLB,
	model.PosCB, model.PosCB, model.PosCB,
	model.PosS, model.PosS,
}

var regions = []model.Region{
	model.RegionEast,
	model.RegionSouth,
	model.RegionMidwest,
	model.RegionWest,
}

// specialties a positional scout can carry, split by side of the ball.
var specialties = map[model.Role][]model.Position{
	model.RoleOffense: {model.PosQB, model.PosRB, model.PosWR, model.PosTE, model.PosOT, model.PosIOL},
	model.RoleDefense: {model.PosEDGE, model.PosDT, model.PosLB, model.PosCB, model.PosS},
}

var traitPool = []string{
	"film junkie",
	"locker room leader",
	"late bloomer",
	"injury history",
	"special teams ace",
	"three year starter",
	"team captain",
	"elite burst",
	"bad body language",
	"coach's son",
	"position convert",
	"small school dominator",
	"combine riser",
	"cold weather player",
	"high motor",
	"boom or bust",
	"quiet worker",
	"scheme versatile",
}

var firstNames = []string{
	"Jalen", "Marcus", "DeShawn", "Tre", "Caleb", "Jordan",
	"Malik", "Xavier", "Brock", "Dante", "Elijah", "Kyler",
	"Amari", "Zion", "Trevor", "Isaiah", "Cam", "Devon",
	"Rashad", "Tyler", "Quentin", "Nico", "Jaylen", "Drew",
}

var lastNames = []string{
	"Carter", "Washington", "Brooks", "Jackson", "Hayes", "Rivers",
	"Coleman", "Dawson", "Ellison", "Ford", "Grant", "Holloway",
	"Irving", "Jefferson", "Kane", "Lattimore", "Mobley", "Nichols",
	"Okafor", "Porter", "Quinn", "Ramsey", "Sutton", "Thornton",
}
