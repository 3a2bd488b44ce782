package game

import (
	"scrimmage/dice"
	"scrimmage/grid"
	"scrimmage/skill"
)

// ResolveFoul resolves a foul by fouler against target, which must be
// prone or stunned and adjacent.
func ResolveFoul(d dice.Source, m *MatchState, fouler, target *Figure, sink Sink) Outcome {
	if target.State != Prone && target.State != Stunned {
		return Outcome{Success: false}
	}
	if !grid.IsAdjacent(fouler.Position, target.Position) {
		return Outcome{Success: false}
	}

	a, b := d.D6(), d.D6()
	double := a == b

	modifier := assistDifferential(m, fouler, target)
	if fouler.Has(skill.DirtyPlayer) {
		modifier++
	}

	m.Team(fouler.Side).FoulUsed = true

	if double && !fouler.Has(skill.SneakyGit) {
		fouler.State = Ejected
		fouler.Position = offPitchSentinel()
		emit(sink, Event{Kind: FoulEvent, PrimaryID: fouler.ID, SecondID: target.ID, Success: false})
	}

	// the two foul dice are the armour roll itself
	armour := a + b + modifier
	broken := armour > target.Armour
	emit(sink, Event{Kind: ArmourBreak, PrimaryID: target.ID, Roll: armour, Success: broken, From: target.Position, To: target.Position})
	if broken {
		ResolveInjury(d, target, modifier, false, sink)
	}
	emit(sink, Event{Kind: FoulEvent, PrimaryID: fouler.ID, SecondID: target.ID, Roll: a + b, Success: broken})

	return Outcome{Success: true}
}

// assistDifferential is friendly-adjacent-to-target minus enemy-adjacent-
// to-fouler, discounting foul-specific tacklezone exemptions.
func assistDifferential(m *MatchState, fouler, target *Figure) int {
	friendly := 0
	enemy := 0
	for i := 1; i < len(m.Figures); i++ {
		f := &m.Figures[i]
		if f.ID == fouler.ID || f.ID == target.ID || f.State != Standing {
			continue
		}
		if f.Side == fouler.Side && grid.IsAdjacent(f.Position, target.Position) {
			friendly++
		}
		if f.Side == target.Side && grid.IsAdjacent(f.Position, fouler.Position) {
			enemy++
		}
	}
	return friendly - enemy
}
