package game

import (
	"scrimmage/dice"
	"scrimmage/grid"
	"scrimmage/skill"
)

// BlockOptions carries the situational modifiers the action resolver
// supplies to a block that came from something other than a plain
// standalone block action.
type BlockOptions struct {
	IsBlitz           bool
	HornsBonus        bool
	NoFollowUp        bool
	IsSecondFrenzyHit bool
}

// ResolveBlock resolves a block by attacker against defender, including
// strength tallies, dice count/chooser, the reroll chain, outcome
// resolution, pushback/chain-push, and the trait-gated branches (dauntless,
// stand-firm, juggernaut, strip-ball, frenzy).
func ResolveBlock(d dice.Source, m *MatchState, attacker, defender *Figure, opts BlockOptions, sink Sink) Outcome {
	if defender.Has(skill.FoulAppearance) && d.D6() == 1 {
		emit(sink, Event{Kind: SkillUsed, PrimaryID: defender.ID, Success: true})
		return Outcome{Success: false}
	}

	attST, defST := tallyStrength(m, attacker, defender, opts)

	numDice, attackerChooses := diceCount(attST, defST)

	faces := rollBlockDice(d, numDice)
	faces = maybeReroll(d, m, attacker, defender, faces, attackerChooses, sink)

	face := chooseFace(faces, attackerChooses, attacker, defender)
	emit(sink, Event{Kind: BlockEvent, PrimaryID: attacker.ID, SecondID: defender.ID, Success: true})

	outcome := applyBlockFace(d, m, attacker, defender, face, opts, sink)

	if attacker.Has(skill.Frenzy) && !opts.IsSecondFrenzyHit && grid.IsAdjacent(attacker.Position, defender.Position) && defender.State == Standing {
		second := opts
		second.IsSecondFrenzyHit = true
		secondOutcome := ResolveBlock(d, m, attacker, defender, second, sink)
		if secondOutcome.Turnover {
			outcome.Turnover = true
		}
	}

	return outcome
}

func tallyStrength(m *MatchState, attacker, defender *Figure, opts BlockOptions) (attST, defST int) {
	attST = attacker.Strength + assistCount(m, attacker, defender, attacker.Side)
	defST = defender.Strength + assistCount(m, defender, attacker, defender.Side)
	if opts.IsBlitz && opts.HornsBonus && attacker.Has(skill.Horns) {
		attST++
	}
	if attST < defST && attacker.Has(skill.Dauntless) {
		// dauntless: equalise to defender's base strength; no die is rolled
		// for it, so it always succeeds
		return defender.Strength, defST
	}
	return attST, defST
}

// assistCount tallies friendly standing figures adjacent to target,
// excluding the blocker pair themselves, discounting figures that are
// themselves in an enemy tacklezone except the one the block target
// itself causes; figures with guard always assist regardless.
func assistCount(m *MatchState, blocker, target *Figure, side Side) int {
	count := 0
	for i := 1; i < len(m.Figures); i++ {
		f := &m.Figures[i]
		if f.ID == blocker.ID || f.ID == target.ID {
			continue
		}
		if f.Side != side || f.State != Standing {
			continue
		}
		if !grid.IsAdjacent(f.Position, target.Position) {
			continue
		}
		if f.Has(skill.Guard) {
			count++
			continue
		}
		tz := TacklezoneCount(&m.Figures, f.Position, f.Side, f.ID)
		// the target's own tacklezone on the assister doesn't disqualify it
		if target.State == Standing && grid.IsAdjacent(f.Position, target.Position) {
			tz--
		}
		if tz <= 0 {
			count++
		}
	}
	return count
}

// diceCount picks the number of block dice and whether the attacker is the
// chooser, per the strength-ratio table.
func diceCount(attST, defST int) (numDice int, attackerChooses bool) {
	switch {
	case attST > 2*defST:
		return 3, true
	case attST > defST:
		return 2, true
	case attST == defST:
		return 1, true
	case defST > 2*attST:
		return 3, false
	default:
		return 2, false
	}
}

func rollBlockDice(d dice.Source, n int) []dice.BlockFace {
	faces := make([]dice.BlockFace, n)
	for i := range faces {
		faces[i] = d.BlockDie()
	}
	return faces
}

// maybeReroll offers a pro reroll (if available to the chooser's figure)
// then a team reroll (loner-gated) to reroll all dice together once.
func maybeReroll(d dice.Source, m *MatchState, attacker, defender *Figure, faces []dice.BlockFace, attackerChooses bool, sink Sink) []dice.BlockFace {
	if !shouldReroll(faces, attackerChooses) {
		return faces
	}
	chooser := defender
	if attackerChooses {
		chooser = attacker
	}

	if chooser.Has(skill.Pro) && !chooser.ProUsedThisTurn {
		chooser.ProUsedThisTurn = true
		if d.D6() >= 4 {
			return rerollAll(d, faces, attackerChooses, m, attacker, defender, sink)
		}
	}

	team := m.Team(chooser.Side)
	if team.Rerolls > 0 && !team.RerollUsedThisTurn {
		if chooser.Has(skill.Loner) && d.D6() < 4 {
			team.Rerolls--
			team.RerollUsedThisTurn = true
			return faces
		}
		team.Rerolls--
		team.RerollUsedThisTurn = true
		return rerollAll(d, faces, attackerChooses, m, attacker, defender, sink)
	}
	return faces
}

func rerollAll(d dice.Source, faces []dice.BlockFace, attackerChooses bool, m *MatchState, attacker, defender *Figure, sink Sink) []dice.BlockFace {
	newFaces := rollBlockDice(d, len(faces))
	emit(sink, Event{Kind: SkillUsed, PrimaryID: attacker.ID, SecondID: defender.ID, Success: true})
	return newFaces
}

// shouldReroll is a simple heuristic: reroll iff none of the rolled faces
// favour the chooser (no attacker_down/both_down for the defender-as-
// chooser case, no defender_down/both_down for the attacker-as-chooser
// case is too strict — block favours whichever face knocks the OTHER side
// down).
func shouldReroll(faces []dice.BlockFace, attackerChooses bool) bool {
	for _, f := range faces {
		if attackerChooses && (f == dice.DefenderDown || f == dice.Pushed) {
			return false
		}
		if !attackerChooses && (f == dice.AttackerDown || f == dice.Pushed) {
			return false
		}
	}
	return true
}

// chooseFace picks the best face for the chooser by the documented
// utility ordering best->worst from that side's perspective.
func chooseFace(faces []dice.BlockFace, attackerChooses bool, attacker, defender *Figure) dice.BlockFace {
	var order []dice.BlockFace
	if attackerChooses {
		order = []dice.BlockFace{dice.DefenderDown, dice.DefenderStumbles, dice.Pushed, dice.BothDown, dice.AttackerDown}
	} else {
		order = []dice.BlockFace{dice.AttackerDown, dice.BothDown, dice.Pushed, dice.DefenderStumbles, dice.DefenderDown}
	}
	for _, want := range order {
		for _, f := range faces {
			if f == want {
				return f
			}
		}
	}
	return faces[0]
}

func applyBlockFace(d dice.Source, m *MatchState, attacker, defender *Figure, face dice.BlockFace, opts BlockOptions, sink Sink) Outcome {
	// juggernaut rewrites both_down to pushed on a blitz, and the push it
	// produces overrides stand-firm
	juggernautForced := false
	if face == dice.BothDown && opts.IsBlitz && attacker.Has(skill.Juggernaut) {
		face = dice.Pushed
		juggernautForced = true
	}
	// defender_stumbles behaves as push unless defender lacks dodge or
	// attacker has tackle
	if face == dice.DefenderStumbles {
		if defender.Has(skill.Dodge) && !attacker.Has(skill.Tackle) {
			face = dice.Pushed
		} else {
			face = dice.DefenderDown
		}
	}

	switch face {
	case dice.AttackerDown:
		attacker.State = Prone
		emit(sink, Event{Kind: KnockedDown, PrimaryID: attacker.ID})
		if ResolveArmour(d, attacker, 0, false, sink, defender.ID, attacker.ID) {
			ResolveInjury(d, attacker, 0, false, sink)
		}
		return Outcome{Success: false, Turnover: true}

	case dice.BothDown:
		if attacker.Has(skill.Block) && defender.Has(skill.Block) {
			return Outcome{Success: true}
		}
		wrestle := attacker.Has(skill.Wrestle) || defender.Has(skill.Wrestle)
		if !attacker.Has(skill.Block) {
			attacker.State = Prone
			emit(sink, Event{Kind: KnockedDown, PrimaryID: attacker.ID})
			if !wrestle && ResolveArmour(d, attacker, 0, false, sink, defender.ID, attacker.ID) {
				ResolveInjury(d, attacker, 0, false, sink)
			}
		}
		if !defender.Has(skill.Block) {
			defender.State = Prone
			emit(sink, Event{Kind: KnockedDown, PrimaryID: defender.ID})
			if !wrestle && ResolveArmour(d, defender, 0, attacker.Has(skill.Claw), sink, attacker.ID, defender.ID) {
				ResolveInjury(d, defender, 0, false, sink)
			}
		}
		return Outcome{Success: true, Turnover: !wrestle && !attacker.Has(skill.Block)}

	case dice.Pushed:
		return resolvePush(d, m, attacker, defender, false, juggernautForced, opts, sink)

	case dice.DefenderDown:
		return resolvePush(d, m, attacker, defender, true, juggernautForced, opts, sink)
	}

	return Outcome{Success: true}
}

// resolvePush moves defender one cell per the pushback geometry, handling
// stand-firm, strip-ball, chain-push, and crowd-surf, then optionally
// knocks defender prone and rolls armour/injury.
func resolvePush(d dice.Source, m *MatchState, attacker, defender *Figure, knockDown, juggernautForced bool, opts BlockOptions, sink Sink) Outcome {
	if defender.Has(skill.StandFirm) && !knockDown && !juggernautForced {
		return Outcome{Success: true}
	}

	candidates := grid.Pushback(attacker.Position, defender.Position)
	var dest grid.Cell
	intoCrowd := len(candidates) == 0
	if !intoCrowd {
		dest = candidates[0] // side-step/grab contest omitted beyond first candidate
	}

	from := defender.Position

	if intoCrowd {
		emit(sink, Event{Kind: PushEvent, PrimaryID: defender.ID, From: from, Success: false})
		defender.State = KO
		defender.Position = offPitchSentinel()
		ResolveInjury(d, defender, 1, true, sink)
		if m.Ball.Location == BallCarried && m.Ball.Carrier == defender.ID {
			m.Ball.Location = BallOnGround
			m.Ball.Cell = from
			ResolveBounce(d, m, sink)
		}
	} else {
		if occ := m.OccupantAt(dest); occ != nil {
			resolvePush(d, m, defender, occ, false, false, BlockOptions{}, sink)
		}
		defender.Position = dest
		emit(sink, Event{Kind: PushEvent, PrimaryID: defender.ID, From: from, To: dest, Success: true})

		if attacker.Has(skill.StripBall) && m.Ball.Location == BallCarried && m.Ball.Carrier == defender.ID {
			m.Ball.Location = BallOnGround
			m.Ball.Cell = dest
			ResolveBounce(d, m, sink)
		} else if m.Ball.Location == BallCarried && m.Ball.Carrier == defender.ID {
			m.Ball.Cell = dest
		}

		if knockDown {
			defender.State = Prone
			emit(sink, Event{Kind: KnockedDown, PrimaryID: defender.ID})
			if ResolveArmour(d, defender, 0, attacker.Has(skill.Claw), sink, attacker.ID, defender.ID) {
				ResolveInjury(d, defender, 0, false, sink)
			}
			if m.Ball.Location == BallCarried && m.Ball.Carrier == defender.ID {
				m.Ball.Location = BallOnGround
				m.Ball.Cell = dest
				ResolveBounce(d, m, sink)
			}
		}
	}

	if !opts.NoFollowUp && !defender.Has(skill.Fend) {
		if occ := m.OccupantAt(from); occ == nil {
			attacker.Position = from
		}
	}

	return Outcome{Success: true}
}
