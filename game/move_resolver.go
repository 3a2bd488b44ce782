package game

import (
	"scrimmage/dice"
	"scrimmage/grid"
	"scrimmage/skill"
)

// DodgeTarget computes the target number for a figure leaving cell from:
// 7 - agility plus one per enemy tacklezone on from, clamped to 2..6.
func DodgeTarget(m *MatchState, figure *Figure, from grid.Cell) int {
	target := 7 - figure.Agility
	target += TacklezoneCount(&m.Figures, from, figure.Side, figure.ID)
	return Clamp(target)
}

// ResolveMoveStep resolves one adjacent-square move for figure from its
// current cell to dest. Per the sub-resolver contract, it mutates state
// in place and returns {success, turnover}; it never ends the turn
// itself.
func ResolveMoveStep(d dice.Source, m *MatchState, figure *Figure, dest grid.Cell, sink Sink) Outcome {
	if !grid.IsAdjacent(figure.Position, dest) || dest.IsOff() {
		return Outcome{Success: false}
	}
	if occ := m.OccupantAt(dest); occ != nil {
		return Outcome{Success: false}
	}

	from := figure.Position
	wasInTZ := TacklezoneCount(&m.Figures, from, figure.Side, figure.ID) > 0

	if wasInTZ {
		if trapped := resolveTentacles(d, m, figure, sink); trapped {
			return Outcome{Success: true, Turnover: false}
		}
	}

	figure.MovementRemaining--
	needsGFI := figure.MovementRemaining < 0

	if wasInTZ {
		target := DodgeTarget(m, figure, from)
		success := AttemptRoll(d, figure, m.Team(figure.Side), target, skill.Dodge, false, true)
		emit(sink, Event{Kind: DodgeEvent, PrimaryID: figure.ID, From: from, To: dest, Roll: target, Success: success})
		if !success {
			return knockDownFall(d, m, figure, dest, sink)
		}
		resolveShadowing(d, m, figure, from, sink)
	}

	if needsGFI {
		gfiTarget := 2
		if m.Weather == Blizzard {
			gfiTarget = 3
		}
		success := AttemptRoll(d, figure, m.Team(figure.Side), gfiTarget, skill.None, false, true)
		emit(sink, Event{Kind: GFIEvent, PrimaryID: figure.ID, From: from, To: dest, Roll: gfiTarget, Success: success})
		if !success {
			return knockDownFall(d, m, figure, dest, sink)
		}
	}

	figure.Position = dest
	figure.HasMoved = true
	emit(sink, Event{Kind: PlayerMove, PrimaryID: figure.ID, From: from, To: dest, Success: true})

	if m.Ball.Location == BallOnGround && m.Ball.Cell.Equal(dest) {
		return ResolvePickup(d, m, figure, sink)
	}
	return Outcome{Success: true}
}

// ResolveLeap resolves a Leap move of up to Chebyshev distance 2, gated on
// the leap trait, costing 2 movement and an agility check instead of the
// normal adjacency/dodge rules.
func ResolveLeap(d dice.Source, m *MatchState, figure *Figure, dest grid.Cell, sink Sink) Outcome {
	if !figure.Has(skill.Leap) {
		return Outcome{Success: false}
	}
	if grid.Chebyshev(figure.Position, dest) > 2 || dest.IsOff() {
		return Outcome{Success: false}
	}
	if occ := m.OccupantAt(dest); occ != nil {
		return Outcome{Success: false}
	}

	from := figure.Position
	figure.MovementRemaining -= 2

	target := 7 - figure.Agility + TacklezoneCount(&m.Figures, dest, figure.Side, figure.ID)
	if figure.Has(skill.VeryLongLegs) {
		target--
	}
	target = Clamp(target)

	success := AttemptRoll(d, figure, m.Team(figure.Side), target, skill.None, false, true)
	emit(sink, Event{Kind: DodgeEvent, PrimaryID: figure.ID, From: from, To: dest, Roll: target, Success: success})
	if !success {
		return knockDownFall(d, m, figure, dest, sink)
	}

	figure.Position = dest
	figure.HasMoved = true
	figure.State = Standing // leap implies standing, no separate stand-up cost
	emit(sink, Event{Kind: PlayerMove, PrimaryID: figure.ID, From: from, To: dest, Success: true})

	if m.Ball.Location == BallOnGround && m.Ball.Cell.Equal(dest) {
		return ResolvePickup(d, m, figure, sink)
	}
	return Outcome{Success: true}
}

// resolveTentacles lets an adjacent opponent with the tentacles trait
// attempt to trap figure before it moves: d6+attacker_ST vs
// d6+tentacle_ST, escaping only on a strict attacker win. On a trap, the
// move ends with no turnover.
func resolveTentacles(d dice.Source, m *MatchState, figure *Figure, sink Sink) bool {
	for i := 1; i < len(m.Figures); i++ {
		opp := &m.Figures[i]
		if opp.Side == figure.Side || opp.State != Standing {
			continue
		}
		if !opp.Has(skill.Tentacles) || !grid.IsAdjacent(opp.Position, figure.Position) {
			continue
		}
		moverRoll := d.D6() + figure.Strength
		tentacleRoll := d.D6() + opp.Strength
		trapped := moverRoll <= tentacleRoll
		emit(sink, Event{Kind: SkillUsed, PrimaryID: opp.ID, SecondID: figure.ID, Success: trapped})
		if trapped {
			return true
		}
	}
	return false
}

// resolveShadowing lets an adjacent opponent with the shadowing trait step
// into the cell figure just vacated, on d6 + shadower_move - mover_move
// >= 6.
func resolveShadowing(d dice.Source, m *MatchState, figure *Figure, vacated grid.Cell, sink Sink) {
	for i := 1; i < len(m.Figures); i++ {
		opp := &m.Figures[i]
		if opp.Side == figure.Side || opp.State != Standing {
			continue
		}
		if !opp.Has(skill.Shadowing) || !grid.IsAdjacent(opp.Position, vacated) {
			continue
		}
		roll := d.D6() + opp.Move - figure.Move
		success := roll >= 6
		emit(sink, Event{Kind: SkillUsed, PrimaryID: opp.ID, Roll: roll, Success: success})
		if success {
			opp.Position = vacated
		}
		return
	}
}

// knockDownFall is the shared "fall at dest" consequence for a failed
// dodge, GFI, or leap: the figure ends prone at dest, rolls armour and
// injury, drops the ball if carrying it, and the action is a turnover.
func knockDownFall(d dice.Source, m *MatchState, figure *Figure, dest grid.Cell, sink Sink) Outcome {
	figure.Position = dest
	figure.State = Prone
	emit(sink, Event{Kind: KnockedDown, PrimaryID: figure.ID, To: dest})

	if m.Ball.Location == BallCarried && m.Ball.Carrier == figure.ID {
		m.Ball.Location = BallOnGround
		m.Ball.Cell = dest
	}

	if ResolveArmour(d, figure, 0, false, sink, NoFigure, figure.ID) {
		ResolveInjury(d, figure, 0, false, sink)
	}

	if m.Ball.Location == BallOnGround && m.Ball.Cell.Equal(dest) {
		ResolveBounce(d, m, sink)
	}

	return Outcome{Success: false, Turnover: true}
}
