package macro

import (
	"scrimmage/dice"
	"scrimmage/game"
	"scrimmage/grid"
)

// Plan is the ordered primitive action sequence a macro expands into,
// the generalization of the original's MacroExpansionResult.
type Plan struct {
	Actions  []game.Action
	Turnover bool
}

// ExpandPlan greedily expands macro into a primitive action plan,
// computed by replaying the expansion against a private clone of state
// with a scratch dice stream — the returned plan never mutates state.
// Its caller, MCTSPolicy, replays the plan's actions one at a time
// against the real state, validating each against that state's legal
// set as it goes, since a real dice outcome may diverge from the scratch
// one and force an early turnover the plan didn't anticipate.
func ExpandPlan(state *game.MatchState, seed uint64, macro Macro) Plan {
	clone := state.Clone()
	d := dice.NewSeeded(seed)
	return expandInPlace(clone, d, macro)
}

// expandInPlace runs the same greedy expansion directly against m,
// mutating it — used both by ExpandPlan (against a throwaway clone) and
// by the macro search's simulation step (against its own rollout
// clone, one macro after another along a tree path).
func expandInPlace(clone *game.MatchState, d dice.Source, macro Macro) Plan {
	var result Plan

	switch macro.Type {
	case Score:
		target := grid.Cell{X: endzoneColumn(clone.ActiveSide), Y: figurePosition(clone, macro.FigureID).Y}
		moveToward(clone, d, macro.FigureID, target, 14, &result)
	case Advance:
		expandAdvance(clone, d, macro, &result)
	case Cage:
		expandCage(clone, d, macro, &result)
	case Blitz:
		expandDirect(clone, d, game.Blitz, noFigure, macro.TargetID, &result)
	case BlitzAndScore:
		expandBlitzAndScore(clone, d, macro, &result)
	case Block:
		expandDirect(clone, d, game.Block, macro.FigureID, macro.TargetID, &result)
	case Pickup:
		moveToward(clone, d, macro.FigureID, macro.TargetCell, 8, &result)
	case Pass:
		if !expandDirect(clone, d, game.HandOff, macro.FigureID, macro.TargetID, &result) {
			expandDirect(clone, d, game.Pass, macro.FigureID, macro.TargetID, &result)
		}
	case Foul:
		expandDirect(clone, d, game.Foul, macro.FigureID, macro.TargetID, &result)
	case Reposition:
		moveToward(clone, d, macro.FigureID, macro.TargetCell, 4, &result)
	case EndTurn:
		executeAndRecord(clone, d, game.Action{Type: game.EndTurn, FigureID: game.NoFigure, TargetID: game.NoFigure, TargetCell: grid.Off}, &result)
	}

	return result
}

func figurePosition(m *game.MatchState, id int) grid.Cell {
	if f := m.Figure(id); f != nil {
		return f.Position
	}
	return grid.Off
}

func executeAndRecord(m *game.MatchState, d dice.Source, action game.Action, result *Plan) bool {
	result.Actions = append(result.Actions, action)
	outcome := game.Resolve(d, m, action, nil)
	if outcome.Turnover {
		result.Turnover = true
		return true
	}
	return false
}

// findMoveAction returns the single-step legal Move action for figureID
// whose destination best reduces distance to target, mirroring the
// original's findMoveToward distance/TZ scoring.
func findMoveAction(m *game.MatchState, figureID int, target grid.Cell) (game.Action, bool) {
	f := m.Figure(figureID)
	if f == nil {
		return game.Action{}, false
	}

	var best game.Action
	bestScore := 1 << 30
	found := false
	for _, action := range game.LegalActions(m) {
		if action.Type != game.Move || action.FigureID != figureID {
			continue
		}
		score := scoreMoveTarget(m, f, action.TargetCell, target)
		if score < bestScore {
			bestScore = score
			best = action
			found = true
		}
	}
	return best, found
}

func scoreMoveTarget(m *game.MatchState, f *game.Figure, dest, target grid.Cell) int {
	dist := grid.Chebyshev(dest, target)
	destTZ := game.TacklezoneCount(&m.Figures, dest, f.Side, f.ID)
	currentlyInTZ := game.TacklezoneCount(&m.Figures, f.Position, f.Side, f.ID) > 0
	needsGFI := f.MovementRemaining <= 0

	score := dist * 10
	switch {
	case destTZ > 0 && !currentlyInTZ:
		score += 20 * destTZ
	case destTZ > 0:
		score += 2 * destTZ
	}
	if needsGFI {
		score += 5
	}
	return score
}

// moveToward repeatedly plays the single-step Move action that best
// closes the distance to target, up to maxSteps, stopping on arrival,
// on a turnover, or when no further progress is possible.
func moveToward(m *game.MatchState, d dice.Source, figureID int, target grid.Cell, maxSteps int, result *Plan) bool {
	lastDest := grid.Off
	for step := 0; step < maxSteps; step++ {
		f := m.Figure(figureID)
		if f == nil || !f.State.OnPitch() || f.LostTacklezones {
			return false
		}
		if f.Position.Equal(target) {
			return true
		}

		move, ok := findMoveAction(m, figureID, target)
		if !ok {
			return false
		}

		currentDist := grid.Chebyshev(f.Position, target)
		moveDist := grid.Chebyshev(move.TargetCell, target)
		if moveDist > currentDist+1 {
			return false
		}
		if moveDist >= currentDist && move.TargetCell.Equal(lastDest) {
			return false
		}

		lastDest = f.Position
		if executeAndRecord(m, d, move, result) {
			return false
		}
	}
	return false
}

func expandAdvance(m *game.MatchState, d dice.Source, macro Macro, result *Plan) {
	carr := m.Figure(macro.FigureID)
	if carr == nil {
		return
	}
	side := carr.Side
	dx := forwardDx(side)
	team := m.Team(side)

	dist := distToEndzone(carr.Position, side)
	turnsRemaining := game.MaxTurnsPerHalf + 1 - team.TurnNumber
	if turnsRemaining < 1 {
		turnsRemaining = 1
	}
	idealSteps := (dist + turnsRemaining - 1) / turnsRemaining
	if idealSteps < 1 {
		idealSteps = 1
	}

	maxSafe := carr.MovementRemaining / 2
	if maxSafe < 1 {
		maxSafe = 1
	}
	steps := min(idealSteps, maxSafe)
	if turnsRemaining <= 2 {
		steps = min(idealSteps, carr.MovementRemaining)
	}

	targetX := clamp(carr.Position.X+dx*steps, 1, grid.Width-2)
	targetY := carr.Position.Y
	if targetY < 5 {
		targetY++
	} else if targetY > 9 {
		targetY--
	}

	moveToward(m, d, macro.FigureID, grid.Cell{X: targetX, Y: targetY}, steps+2, result)
}

func expandCage(m *game.MatchState, d dice.Source, macro Macro, result *Plan) {
	carr := m.Figure(macro.FigureID)
	if carr == nil {
		return
	}
	cp := carr.Position
	corners := [4]grid.Cell{
		{X: cp.X + 1, Y: cp.Y + 1},
		{X: cp.X + 1, Y: cp.Y - 1},
		{X: cp.X - 1, Y: cp.Y + 1},
		{X: cp.X - 1, Y: cp.Y - 1},
	}

	for _, corner := range corners {
		if corner.IsOff() {
			continue
		}
		if occ := m.OccupantAt(corner); occ != nil {
			continue
		}
		mover := nearestFreeFigure(m, carr.Side, corner, carr.ID)
		if mover == nil {
			continue
		}
		moveToward(m, d, mover.ID, corner, 4, result)
		if result.Turnover {
			return
		}
	}
}

func expandDirect(m *game.MatchState, d dice.Source, actionType game.ActionTag, figureID, targetID int, result *Plan) bool {
	for _, action := range game.LegalActions(m) {
		if action.Type != actionType || action.TargetID != targetID {
			continue
		}
		if figureID != noFigure && action.FigureID != figureID {
			continue
		}
		executeAndRecord(m, d, action, result)
		return true
	}
	return false
}

func expandBlitzAndScore(m *game.MatchState, d dice.Source, macro Macro, result *Plan) {
	blocker := m.Figure(macro.TargetID)
	if blocker == nil {
		return
	}

	var bestBlitz game.Action
	bestScore := -1 << 30
	found := false
	for _, action := range game.LegalActions(m) {
		if action.Type != game.Blitz || action.TargetID != macro.TargetID {
			continue
		}
		blitzer := m.Figure(action.FigureID)
		if blitzer == nil {
			continue
		}
		score := blockDiceEstimate(blitzer, blocker) * 10
		if action.FigureID != macro.FigureID {
			score += 5
		}
		if score > bestScore {
			bestScore = score
			bestBlitz = action
			found = true
		}
	}
	if !found {
		return
	}
	if executeAndRecord(m, d, bestBlitz, result) {
		return
	}

	for step := 0; step < 12; step++ {
		blocked := false
		for _, action := range game.LegalActions(m) {
			if action.Type == game.Block && action.FigureID == bestBlitz.FigureID && action.TargetID == macro.TargetID {
				if executeAndRecord(m, d, action, result) {
					return
				}
				blocked = true
				break
			}
		}
		if blocked {
			break
		}
		move, ok := findMoveAction(m, bestBlitz.FigureID, blocker.Position)
		if !ok {
			break
		}
		if executeAndRecord(m, d, move, result) {
			return
		}
	}

	carr := m.Figure(macro.FigureID)
	if carr == nil || carr.HasActed {
		return
	}
	target := grid.Cell{X: endzoneColumn(carr.Side), Y: carr.Position.Y}
	moveToward(m, d, macro.FigureID, target, 14, result)
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
