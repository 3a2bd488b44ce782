package macro

import (
	"scrimmage/game"
	"scrimmage/grid"
	"scrimmage/skill"
)

func endzoneColumn(side game.Side) int {
	return grid.EndZoneColumn(side == game.Home)
}

func forwardDx(side game.Side) int {
	if side == game.Home {
		return 1
	}
	return -1
}

func distToEndzone(c grid.Cell, side game.Side) int {
	return abs(c.X - endzoneColumn(side))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// carrier returns the active side's ball carrier if it has one and that
// figure can still act this turn.
func carrier(m *game.MatchState, side game.Side) *game.Figure {
	if m.Ball.Location != game.BallCarried {
		return nil
	}
	f := m.Figure(m.Ball.Carrier)
	if f == nil || f.Side != side {
		return nil
	}
	return f
}

func canAct(f *game.Figure) bool {
	return f.State == game.Standing && !f.HasActed
}

func isFreeToAct(m *game.MatchState, f *game.Figure) bool {
	if !canAct(f) {
		return false
	}
	return game.TacklezoneCount(&m.Figures, f.Position, f.Side, f.ID) == 0
}

// blockDiceEstimate approximates the original's strength-comparison dice
// count without replaying the full assist tally the resolver owns — good
// enough for ranking candidate macros, never used to resolve anything.
func blockDiceEstimate(att, def *game.Figure) int {
	diff := att.Strength - def.Strength
	switch {
	case diff >= 2:
		return 3
	case diff == 1:
		return 2
	case diff == 0:
		return 1
	case diff == -1:
		return -2
	default:
		return -3
	}
}

// AvailableMacros enumerates the tactical choices open to the active side
// right now — always including EndTurn, and ports of the original's
// getAvailableMacros branch by branch, generalized to this package's
// Figure/MatchState accessors.
func AvailableMacros(m *game.MatchState) []Macro {
	var out []Macro
	if m.Phase != game.Play {
		return []Macro{newMacro(EndTurn, noFigure, noFigure, grid.Off)}
	}

	side := m.ActiveSide
	team := m.Team(side)

	out = append(out, newMacro(EndTurn, noFigure, noFigure, grid.Off))

	carr := carrier(m, side)
	haveBall := carr != nil
	ballOnGround := m.Ball.Location == game.BallOnGround

	if haveBall && canAct(carr) {
		dist := distToEndzone(carr.Position, side)
		maxReach := carr.MovementRemaining + 2
		if dist > 0 && dist <= maxReach {
			out = append(out, newMacro(Score, carr.ID, noFigure, grid.Off))
		} else if carr.MovementRemaining > 0 && dist > maxReach {
			out = append(out, newMacro(Advance, carr.ID, noFigure, grid.Off))
		}
	}

	if haveBall {
		hasFreeTeammate := false
		for i := 1; i < len(m.Figures); i++ {
			f := &m.Figures[i]
			if f.ID != 0 && f.Side == side && f.ID != carr.ID && isFreeToAct(m, f) && !f.Has(skill.BallAndChain) {
				hasFreeTeammate = true
				break
			}
		}
		if hasFreeTeammate {
			out = append(out, newMacro(Cage, carr.ID, noFigure, grid.Off))
		}
	}

	if !team.BlitzUsed {
		if target := bestBlitzTarget(m, side, carr); target != nil {
			out = append(out, newMacro(Blitz, noFigure, target.ID, grid.Off))

			if haveBall && canAct(carr) {
				dist := distToEndzone(carr.Position, side)
				maxReach := carr.MovementRemaining + 2
				if dist > 0 && dist <= maxReach+3 && isBetween(m, target, carr, side) {
					out = append(out, newMacro(BlitzAndScore, carr.ID, target.ID, grid.Off))
				}
			}
		}
	}

	for i := 1; i < len(m.Figures); i++ {
		att := &m.Figures[i]
		if att.Side != side || !canAct(att) || att.Has(skill.BallAndChain) {
			continue
		}
		for _, n := range grid.Neighbours(att.Position) {
			if n.IsOff() {
				continue
			}
			def := m.OccupantAt(n)
			if def == nil || def.Side == side || def.State != game.Standing {
				continue
			}
			if blockDiceEstimate(att, def) >= 2 {
				out = append(out, newMacro(Block, att.ID, def.ID, grid.Off))
			}
		}
	}

	if ballOnGround {
		if mover := nearestFreeFigure(m, side, m.Ball.Cell, noFigure); mover != nil {
			out = append(out, newMacro(Pickup, mover.ID, noFigure, m.Ball.Cell))
		}
	}

	if haveBall && !team.PassUsed && canAct(carr) {
		for i := 1; i < len(m.Figures); i++ {
			target := &m.Figures[i]
			if target.Side != side || target.ID == carr.ID || target.State != game.Standing {
				continue
			}
			dist := grid.Chebyshev(carr.Position, target.Position)
			if dist < 1 || dist > 10 {
				continue
			}
			if distToEndzone(target.Position, side) < distToEndzone(carr.Position, side) {
				out = append(out, newMacro(Pass, carr.ID, target.ID, grid.Off))
			}
		}
	}

	if !team.FoulUsed {
		for i := 1; i < len(m.Figures); i++ {
			fouler := &m.Figures[i]
			if fouler.Side != side || !canAct(fouler) || fouler.Has(skill.BallAndChain) {
				continue
			}
			for _, n := range grid.Neighbours(fouler.Position) {
				if n.IsOff() {
					continue
				}
				target := m.OccupantAt(n)
				if target == nil || target.Side == side {
					continue
				}
				if target.State == game.Prone || target.State == game.Stunned {
					out = append(out, newMacro(Foul, fouler.ID, target.ID, grid.Off))
					break
				}
			}
		}
	}

	out = append(out, repositionMacros(m, side, carr, haveBall, ballOnGround)...)

	return out
}

func isBetween(m *game.MatchState, def *game.Figure, carr *game.Figure, side game.Side) bool {
	defDist := distToEndzone(def.Position, side)
	carrierDist := distToEndzone(carr.Position, side)
	if defDist >= carrierDist {
		return false
	}
	yDiff := abs(def.Position.Y - carr.Position.Y)
	if yDiff > 2 {
		return false
	}
	xDist := abs(def.Position.X - carr.Position.X)
	return xDist <= 2 && xDist+yDiff <= 3
}

func bestBlitzTarget(m *game.MatchState, side game.Side, carr *game.Figure) *game.Figure {
	var best *game.Figure
	bestScore := -999
	for i := 1; i < len(m.Figures); i++ {
		blitzer := &m.Figures[i]
		if blitzer.Side != side || !isFreeToAct(m, blitzer) || blitzer.Has(skill.BallAndChain) {
			continue
		}
		for j := 1; j < len(m.Figures); j++ {
			def := &m.Figures[j]
			if def.Side == side || def.State != game.Standing {
				continue
			}
			score := blockDiceEstimate(blitzer, def) * 2
			if def.Position.Y == 0 || def.Position.Y == grid.Height-1 {
				score += 3
			}
			if carr != nil && grid.Chebyshev(def.Position, carr.Position) <= 2 {
				score += 2
			}
			if m.Ball.Location == game.BallCarried && m.Ball.Carrier == def.ID {
				score += 5
			}
			if score > bestScore {
				bestScore = score
				best = def
			}
		}
	}
	return best
}

func nearestFreeFigure(m *game.MatchState, side game.Side, target grid.Cell, exclude int) *game.Figure {
	var best *game.Figure
	bestDist := 1 << 30
	for i := 1; i < len(m.Figures); i++ {
		f := &m.Figures[i]
		if f.Side != side || f.ID == exclude || !canAct(f) {
			continue
		}
		dist := grid.Chebyshev(f.Position, target)
		if dist < bestDist {
			bestDist = dist
			best = f
		}
	}
	return best
}

func repositionMacros(m *game.MatchState, side game.Side, carr *game.Figure, haveBall, ballOnGround bool) []Macro {
	var out []Macro
	onDefense := !haveBall && !ballOnGround
	myEndzone := endzoneColumn(side.Opponent())
	safetyPlaced := false

	for i := 1; i < len(m.Figures); i++ {
		p := &m.Figures[i]
		if p.Side != side || !isFreeToAct(m, p) || p.Has(skill.BallAndChain) {
			continue
		}
		if haveBall && p.ID == carr.ID {
			continue
		}

		var target grid.Cell
		switch {
		case ballOnGround:
			target = m.Ball.Cell
		case haveBall:
			dx := forwardDx(side)
			if grid.Chebyshev(p.Position, carr.Position) <= 3 {
				target = grid.Cell{X: carr.Position.X + dx*2, Y: carr.Position.Y}
			} else {
				target = carr.Position
			}
		case onDefense:
			if !safetyPlaced && p.Move >= 6 {
				target = grid.Cell{X: myEndzone, Y: 7}
				safetyPlaced = true
			} else {
				ballPos := m.Ball.Cell
				if m.Ball.Location == game.BallOffPitch {
					ballPos = grid.Cell{X: endzoneColumn(side), Y: 7}
				}
				screenX := (ballPos.X + myEndzone) / 2
				screenY := clamp(3+p.ID%9, 1, grid.Height-2)
				target = grid.Cell{X: screenX, Y: screenY}
			}
		default:
			dx := forwardDx(side)
			target = grid.Cell{X: p.Position.X + dx*3, Y: 7}
		}

		target.X = clamp(target.X, 0, grid.Width-1)
		target.Y = clamp(target.Y, 0, grid.Height-1)
		out = append(out, newMacro(Reposition, p.ID, noFigure, target))
	}
	return out
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
