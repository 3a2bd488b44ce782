package game

import (
	"scrimmage/dice"
	"scrimmage/grid"
	"scrimmage/skill"
)

// Resolve dispatches action to the appropriate sub-resolver, running
// pre-action trait gates and post-action turnover/score/half-transition
// checks. This is the sole entry point the simulator and searcher use to
// advance a MatchState by one primitive action.
func Resolve(d dice.Source, m *MatchState, action Action, sink Sink) Outcome {
	if action.Type != EndTurn && action.Type != SetupPlayer && action.Type != EndSetup {
		figure := m.Figure(action.FigureID)
		if figure == nil {
			panic("game: action names a figure that does not exist")
		}
		if blocked := ResolveTraitGate(d, m, figure, sink); blocked {
			return Outcome{Success: true, Turnover: false}
		}
	}

	outcome := dispatch(d, m, action, sink)
	applyPostSteps(m, outcome, sink)
	return outcome
}

func dispatch(d dice.Source, m *MatchState, action Action, sink Sink) Outcome {
	switch action.Type {
	case Move:
		return resolveMoveAction(d, m, action, sink)
	case Blitz:
		return resolveBlitzAction(d, m, action, sink)
	case Block:
		attacker, defender := m.Figure(action.FigureID), m.Figure(action.TargetID)
		return ResolveBlock(d, m, attacker, defender, BlockOptions{}, sink)
	case Pass:
		passer := m.Figure(action.FigureID)
		return ResolvePass(d, m, passer, action.TargetCell, false, sink)
	case HandOff:
		passer, receiver := m.Figure(action.FigureID), m.Figure(action.TargetID)
		return ResolveHandOff(d, m, passer, receiver, sink)
	case Foul:
		fouler, target := m.Figure(action.FigureID), m.Figure(action.TargetID)
		return ResolveFoul(d, m, fouler, target, sink)
	case ThrowTeamMate, BombThrow, HypnoticGaze, BallAndChain:
		return resolveSpecialAction(d, m, action, sink)
	case MultipleBlock:
		return resolveMultipleBlock(d, m, action, sink)
	case EndTurn:
		resolveEndTurn(m, sink)
		return Outcome{Success: true}
	case SetupPlayer, EndSetup:
		return Outcome{Success: true}
	default:
		panic("game: unknown action type")
	}
}

func resolveMoveAction(d dice.Source, m *MatchState, action Action, sink Sink) Outcome {
	figure := m.Figure(action.FigureID)
	if figure.State == Prone {
		if action.TargetCell.Equal(figure.Position) {
			cost := standUpCost(figure)
			figure.MovementRemaining -= cost
			figure.State = Standing
			return Outcome{Success: true}
		}
		cost := standUpCost(figure)
		figure.MovementRemaining -= cost
		figure.State = Standing
	}
	if action.TargetCell.Equal(figure.Position) {
		return Outcome{Success: true}
	}
	if figure.Has(skill.Leap) && grid.Chebyshev(figure.Position, action.TargetCell) == 2 {
		return ResolveLeap(d, m, figure, action.TargetCell, sink)
	}
	return ResolveMoveStep(d, m, figure, action.TargetCell, sink)
}

func resolveBlitzAction(d dice.Source, m *MatchState, action Action, sink Sink) Outcome {
	figure := m.Figure(action.FigureID)
	target := m.Figure(action.TargetID)

	m.Team(figure.Side).BlitzUsed = true
	figure.UsedBlitz = true

	if figure.State == Prone {
		cost := standUpCost(figure)
		figure.MovementRemaining -= cost
		figure.State = Standing
	}

	for !grid.IsAdjacent(figure.Position, target.Position) {
		next, ok := ReachAdjacentTo(m, figure, target.Position)
		if !ok {
			return Outcome{Success: false}
		}
		step := firstStepToward(figure.Position, next)
		out := ResolveMoveStep(d, m, figure, step, sink)
		if out.Turnover || figure.State != Standing {
			return out
		}
	}

	return ResolveBlock(d, m, figure, target, BlockOptions{IsBlitz: true, HornsBonus: true}, sink)
}

// firstStepToward returns the single adjacent cell from c that most
// reduces Chebyshev distance to dest.
func firstStepToward(c, dest grid.Cell) grid.Cell {
	best := c
	bestDist := grid.Chebyshev(c, dest)
	for _, n := range grid.Neighbours(c) {
		if n.IsOff() {
			continue
		}
		if dist := grid.Chebyshev(n, dest); dist < bestDist {
			bestDist = dist
			best = n
		}
	}
	return best
}

// resolveSpecialAction covers the rarer trait-gated actions this core
// models as straight delegations with a minimal mechanical effect, since
// their full rules are narrow, low-frequency corners of the ruleset.
func resolveSpecialAction(d dice.Source, m *MatchState, action Action, sink Sink) Outcome {
	figure := m.Figure(action.FigureID)
	switch action.Type {
	case BallAndChain:
		// the ball-and-chain carrier's only legal action: auto-move in a
		// random direction, knocking down anyone it lands on
		direction := grid.Scatter(d.D8())
		dest := figure.Position.Add(direction)
		if dest.IsOff() {
			return Outcome{Success: false}
		}
		if occ := m.OccupantAt(dest); occ != nil {
			occ.State = Prone
			emit(sink, Event{Kind: KnockedDown, PrimaryID: occ.ID})
		}
		figure.Position = dest
		return Outcome{Success: true}
	case HypnoticGaze:
		target := m.Figure(action.TargetID)
		gazeTarget := Clamp(7 - target.Agility)
		hypnotised := !AttemptRoll(d, target, m.Team(target.Side), gazeTarget, skill.None, false, true)
		emit(sink, Event{Kind: SkillUsed, PrimaryID: figure.ID, SecondID: target.ID, Success: hypnotised})
		return Outcome{Success: true}
	default:
		emit(sink, Event{Kind: SkillUsed, PrimaryID: figure.ID, Success: true})
		return Outcome{Success: true}
	}
}

// resolveMultipleBlock resolves one attacker blocking two adjacent
// defenders as two ordinary blocks in turn, each at the attacker's full
// strength and with no follow-up. The
// second target id is packed into action.TargetCell.X per the preserved
// encoding quirk.
func resolveMultipleBlock(d dice.Source, m *MatchState, action Action, sink Sink) Outcome {
	attacker := m.Figure(action.FigureID)
	first := m.Figure(action.TargetID)
	second := m.Figure(action.TargetCell.X)

	out1 := ResolveBlock(d, m, attacker, first, BlockOptions{NoFollowUp: true}, sink)
	out2 := ResolveBlock(d, m, attacker, second, BlockOptions{NoFollowUp: true}, sink)
	return Outcome{Success: out1.Success && out2.Success, Turnover: out1.Turnover || out2.Turnover}
}

func resolveEndTurn(m *MatchState, sink Sink) {
	newSide := m.ActiveSide.Opponent()
	m.ActiveSide = newSide
	m.Team(newSide).TurnNumber++
	m.ResetTurn(newSide)
	m.TurnoverPending = false
	emit(sink, Event{Kind: TurnoverEvent, Success: true})
}

// applyPostSteps runs the ordered post-action checks: turnover handling,
// touchdown detection, half/game transition.
func applyPostSteps(m *MatchState, outcome Outcome, sink Sink) {
	if outcome.Turnover {
		m.TurnoverPending = true
		resolveEndTurn(m, sink)
	}

	if carrier := m.Carrier(); carrier != nil && carrier.State == Standing {
		col := carrier.Position.X
		scored := (carrier.Side == Home && col == grid.Width-1) || (carrier.Side == Away && col == 0)
		if scored {
			m.Team(carrier.Side).Score++
			m.Phase = Touchdown
			emit(sink, Event{Kind: TouchdownEvent, PrimaryID: carrier.ID, Success: true})
			return
		}
	}

	active := m.Team(m.ActiveSide)
	if active.TurnNumber > MaxTurnsPerHalf {
		other := m.Team(m.ActiveSide.Opponent())
		if other.TurnNumber > MaxTurnsPerHalf {
			if m.Half >= 2 {
				m.Phase = GameOver
			} else {
				m.Phase = HalfTime
			}
		}
	}
}
