package game

import (
	"scrimmage/dice"
	"scrimmage/grid"
	"scrimmage/skill"
)

// ResolveTraitGate resolves the pre-action d6 check for figures bearing a
// gating trait (bone-head, really-stupid, wild-animal, take-root,
// bloodlust). It returns true if the action is blocked (wasted) and
// should not proceed.
func ResolveTraitGate(d dice.Source, m *MatchState, figure *Figure, sink Sink) bool {
	switch {
	case figure.Has(skill.BoneHead):
		if d.D6() < 4 {
			figure.LostTacklezones = true
			emit(sink, Event{Kind: SkillUsed, PrimaryID: figure.ID, Success: false})
			return true
		}
	case figure.Has(skill.ReallyStupid):
		if !hasAdjacentFriendlyStanding(m, figure) && d.D6() < 2 {
			figure.LostTacklezones = true
			emit(sink, Event{Kind: SkillUsed, PrimaryID: figure.ID, Success: false})
			return true
		}
	case figure.Has(skill.WildAnimal):
		actionNeedsCheck := true // Resolve runs the gate for every figure action, blocks and blitzes included
		if actionNeedsCheck && d.D6() < 2 {
			figure.LostTacklezones = true
			emit(sink, Event{Kind: SkillUsed, PrimaryID: figure.ID, Success: false})
			return true
		}
	case figure.Has(skill.TakeRoot):
		if d.D6() == 1 {
			emit(sink, Event{Kind: SkillUsed, PrimaryID: figure.ID, Success: false})
			return true
		}
	case figure.Has(skill.Bloodlust):
		if d.D6() < 2 {
			biteFriendlyThrall(m, figure, sink)
			// bloodlust's action proceeds regardless of the check outcome
		}
	}
	return false
}

func hasAdjacentFriendlyStanding(m *MatchState, figure *Figure) bool {
	for i := 1; i < len(m.Figures); i++ {
		f := &m.Figures[i]
		if f.ID == figure.ID || f.Side != figure.Side || f.State != Standing {
			continue
		}
		if grid.IsAdjacent(f.Position, figure.Position) {
			return true
		}
	}
	return false
}

func biteFriendlyThrall(m *MatchState, figure *Figure, sink Sink) {
	emit(sink, Event{Kind: SkillUsed, PrimaryID: figure.ID, Success: true})
}
