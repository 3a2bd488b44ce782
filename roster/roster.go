// Package roster holds the read-only team-roster table: a fixed set of 26
// named rosters, each with up to 8 positional templates, plus the two
// bundled starting formations. The core treats this table strictly as a
// read-only external input — it never mutates a roster once built.
package roster

import "scrimmage/skill"

// PositionTemplate is one recruitable position on a roster: base stats, a
// skill set every figure of this position starts with, and the maximum
// number of figures of this position a team may field.
type PositionTemplate struct {
	Name     string
	Move     int
	Strength int
	Agility  int
	Armour   int
	Skills   skill.Set
	Max      int
}

// Roster is one of the 26 named team templates.
type Roster struct {
	Name            string
	Positions       []PositionTemplate
	RerollCost      int
	StartingRerolls int
	HasApothecary   bool
}

// CreateRosters builds the full 26-roster table. GLOBAL DATA. The exact
// positional stat lines below are illustrative, not a transcription of any
// particular league's rulebook — callers that need a specific league's
// numbers should replace this table with their own.
func CreateRosters() map[string]*Roster {
	out := make(map[string]*Roster, len(rosterNames))
	for i, name := range rosterNames {
		out[name] = &Roster{
			Name:            name,
			Positions:       positionTemplates(i),
			RerollCost:      rerollCosts[i],
			StartingRerolls: startingRerolls(rerollCosts[i]),
			HasApothecary:   hasApothecary[i],
		}
	}
	return out
}

// startingRerolls maps a roster's reroll price tier to the number of
// rerolls a team starts a match with: cheaper-reroll rosters (50000) start
// with 4, the most expensive tier (70000) with 2.
func startingRerolls(rerollCost int) int {
	switch rerollCost {
	case 50000:
		return 4
	case 60000:
		return 3
	default:
		return 2
	}
}

var rosterNames = []string{
	"Amazons", "Bretonnians", "Chaos Chosen", "Chaos Dwarves", "Chaos Renegades",
	"Dark Elves", "Dwarves", "Elven Union", "Gnomes", "Goblins",
	"Halflings", "High Elves", "Humans", "Imperial Nobility", "Khemri",
	"Lizardmen", "Necromantic Horror", "Norse", "Nurgle", "Ogres",
	"Old World Alliance", "Orcs", "Shambling Undead", "Skaven", "Snotlings",
	"Vampires",
}

var rerollCosts = []int{
	60000, 50000, 70000, 70000, 50000,
	70000, 50000, 50000, 60000, 60000,
	60000, 60000, 50000, 50000, 70000,
	60000, 50000, 50000, 70000, 60000,
	60000, 60000, 50000, 60000, 60000,
	70000,
}

var hasApothecary = []bool{
	true, true, false, true, false,
	true, true, true, false, false,
	false, true, true, true, false,
	true, false, true, false, true,
	true, true, false, true, false,
	false,
}

// positionTemplates returns a small generic lineman-plus-specialists
// spread for roster index i. Teams differ mainly in their reroll cost and
// apothecary flag above; the position spread here is a reasonable generic
// shape rather than an accurate transcription per roster.
func positionTemplates(i int) []PositionTemplate {
	lineman := PositionTemplate{Name: "Lineman", Move: 6, Strength: 3, Agility: 3, Armour: 8, Max: 16}
	blitzer := PositionTemplate{
		Name: "Blitzer", Move: 7, Strength: 3, Agility: 3, Armour: 8,
		Skills: skill.New(skill.Block), Max: 4,
	}
	thrower := PositionTemplate{
		Name: "Thrower", Move: 6, Strength: 3, Agility: 3, Armour: 8,
		Skills: skill.New(skill.Pass, skill.SureHands), Max: 2,
	}
	catcher := PositionTemplate{
		Name: "Catcher", Move: 8, Strength: 2, Agility: 4, Armour: 7,
		Skills: skill.New(skill.Catch, skill.Dodge), Max: 4,
	}
	bigGuy := PositionTemplate{
		Name: "Big Guy", Move: 4, Strength: 5, Agility: 2, Armour: 9,
		Skills: skill.New(skill.MightyBlow, skill.ThickSkull), Max: 1,
	}

	switch {
	case i%5 == 0: // agility-leaning rosters field more catchers, no big guy
		return []PositionTemplate{lineman, blitzer, thrower, catcher}
	case i%5 == 1: // strength-leaning rosters field a big guy, fewer catchers
		return []PositionTemplate{lineman, blitzer, thrower, bigGuy}
	default:
		return []PositionTemplate{lineman, blitzer, thrower, catcher, bigGuy}
	}
}

// Formation is a caller-specified placement layout: an ordered list of
// offsets from the line of scrimmage, filled specialists-first from the
// back rank, linemen backfilling the front.
type Formation struct {
	Name string
	// Offsets are (dx, dy): dx counts columns from the halfway line toward
	// the owning side's own end zone, so dx 1 is that side's line-of-
	// scrimmage column; dy is relative to the pitch's vertical centre.
	Offsets []FormationSlot
}

type FormationSlot struct {
	DX, DY    int
	WantsKick bool // the filling figure is granted the "kick" trait (deep safety)
	OnLine    bool // slot sits directly on the line of scrimmage
}

// OffensiveFourOnLOS and DefensiveThreeOnLOS are the two bundled standard
// formations named in the external roster contract.
var OffensiveFourOnLOS = Formation{
	Name: "offensive_4_on_los",
	Offsets: []FormationSlot{
		{DX: 1, DY: -1, OnLine: true}, {DX: 1, DY: 0, OnLine: true},
		{DX: 1, DY: 1, OnLine: true}, {DX: 1, DY: 2, OnLine: true},
		{DX: 3, DY: -3}, {DX: 3, DY: 3},
		{DX: 5, DY: -1}, {DX: 5, DY: 1},
		{DX: 7, DY: 0}, {DX: 9, DY: -2}, {DX: 9, DY: 2},
	},
}

var DefensiveThreeOnLOS = Formation{
	Name: "defensive_3_on_los",
	Offsets: []FormationSlot{
		{DX: 1, DY: -1, OnLine: true}, {DX: 1, DY: 0, OnLine: true},
		{DX: 1, DY: 1, OnLine: true},
		{DX: 3, DY: -2}, {DX: 3, DY: 2},
		{DX: 5, DY: -4}, {DX: 5, DY: 4},
		{DX: 7, DY: -1}, {DX: 7, DY: 1},
		{DX: 9, DY: 0},
		{DX: 11, DY: 0, WantsKick: true},
	},
}
