// Package feature extracts fixed-size numeric vectors from a match
// state and from a candidate action, the external contract consumed by
// the value/policy functions in valuefn. Both extractors are pure,
// allocate nothing beyond their returned array, and do no I/O, so they
// are safe to call from inside the search hot loop.
//
// The index layout is grounded on the original engine's
// feature_extractor.cpp/action_features.cpp tables, kept here as an
// explicit documented contract rather than derived at runtime.
package feature

import (
	"scrimmage/game"
	"scrimmage/grid"
	"scrimmage/skill"
)

// StateSize and ActionSize are the fixed vector lengths the rest of the
// core (and any externally trained weights) depend on.
const (
	StateSize  = 70
	ActionSize = 15
)

// State vector layout:
//
//	 0: score differential (home - away), clamped to [-1,1] over /5
//	 1: possession indicator (+1 home carries, -1 away carries, 0 loose)
//	 2: home carrier distance-to-scoring-end-zone, normalized
//	 3: away carrier distance-to-scoring-end-zone, normalized
//	 4: turn number (active side), normalized by MaxTurnsPerHalf
//	 5: half indicator (0 for first half, 1 for second)
//	 6-10: weather one-hot (heat, very_sunny, nice, rain, blizzard)
//	11: tacklezone pressure on the ball carrier (opposing TZ count / 8)
//	12: carrier-in-own-half flag
//	13: carrier-double-covered flag (TZ count >= 2)
//	14: cage-intact flag (4 friendly figures orthogonally adjacent to carrier)
//	15-20: home figure-state tallies (standing/prone/stunned/ko/injured/dead), normalized /11
//	21-26: away figure-state tallies, normalized /11
//	27-30: home skill-category tallies (block-like, dodge-like, strength-like, passing-like) /11
//	31-34: away skill-category tallies
//	35-69: reserved, zero-filled (room for a richer positional encoding
//	       without shifting any of the indices above)
//
// Indices 35-69 are never written below, so the value/policy functions
// only ever see 35 live dimensions out of StateSize; the rest is headroom
// for a future encoding, not dead weight to prune.
func ExtractState(m *game.MatchState) [StateSize]float32 {
	var v [StateSize]float32

	v[0] = clampUnit(float32(m.Home.Score-m.Away.Score) / 5)

	if carrier := m.Carrier(); carrier != nil {
		if carrier.Side == game.Home {
			v[1] = 1
		} else {
			v[1] = -1
		}
	}

	v[2] = carrierProgress(m, game.Home)
	v[3] = carrierProgress(m, game.Away)

	v[4] = clampUnit(float32(m.Team(m.ActiveSide).TurnNumber) / float32(game.MaxTurnsPerHalf))
	if m.Half >= 2 {
		v[5] = 1
	}

	v[6+int(m.Weather)] = 1

	if carrier := m.Carrier(); carrier != nil {
		tz := game.TacklezoneCount(&m.Figures, carrier.Position, carrier.Side, carrier.ID)
		v[11] = float32(tz) / 8
		v[13] = boolFloat(tz >= 2)
		v[12] = boolFloat(inOwnHalf(carrier))
		v[14] = boolFloat(isCaged(m, carrier))
	}

	tallyFigureStates(m, game.Home, v[15:21])
	tallyFigureStates(m, game.Away, v[21:27])
	tallySkillCategories(m, game.Home, v[27:31])
	tallySkillCategories(m, game.Away, v[31:35])

	return v
}

// Action vector layout:
//
//	0: action-type bucket (ActionTag / last tag, coarse one-hot-ish scale)
//	1: primary figure's distance to the target cell/figure, normalized
//	2: primary figure's end-zone-distance delta this action would cause
//	3: needs-dodge flag (the figure starts in an enemy tacklezone)
//	4: needs-GFI flag (target beyond normal movement)
//	5: strength differential (attacker - defender), normalized, 0 if N/A
//	6: pass-range bucket (quick/short/long/bomb/not-a-pass), normalized
//	7-14: reserved, zero-filled
func ExtractAction(m *game.MatchState, action game.Action) [ActionSize]float32 {
	var v [ActionSize]float32

	v[0] = float32(action.Type) / float32(game.EndSetup)

	figure := m.Figure(action.FigureID)
	if figure == nil {
		return v
	}

	target := action.TargetCell
	if !target.IsOff() {
		v[1] = clampUnit(float32(grid.Chebyshev(figure.Position, target)) / float32(grid.Width))
	}

	beforeCol := grid.EndZoneColumn(figure.Side == game.Home)
	before := grid.Chebyshev(figure.Position, grid.Cell{X: beforeCol, Y: figure.Position.Y})
	after := before
	if !target.IsOff() {
		after = grid.Chebyshev(target, grid.Cell{X: beforeCol, Y: target.Y})
	}
	v[2] = clampUnit(float32(before-after) / float32(grid.Width))

	if !target.IsOff() && game.TacklezoneCount(&m.Figures, figure.Position, figure.Side, figure.ID) > 0 {
		v[3] = 1
	}
	if !target.IsOff() && grid.Chebyshev(figure.Position, target) > figure.MovementRemaining {
		v[4] = 1
	}

	if action.Type == game.Block || action.Type == game.Blitz || action.Type == game.MultipleBlock {
		if defender := m.Figure(action.TargetID); defender != nil {
			v[5] = clampUnit(float32(figure.Strength-defender.Strength) / 5)
		}
	}

	if action.Type == game.Pass {
		rng := game.ClassifyRange(grid.Chebyshev(figure.Position, action.TargetCell))
		v[6] = float32(rng+1) / 4
	}

	return v
}

func clampUnit(f float32) float32 {
	if f > 1 {
		return 1
	}
	if f < -1 {
		return -1
	}
	return f
}

func boolFloat(b bool) float32 {
	if b {
		return 1
	}
	return 0
}

func carrierProgress(m *game.MatchState, side game.Side) float32 {
	carrier := m.Carrier()
	if carrier == nil || carrier.Side != side {
		return 0
	}
	col := grid.EndZoneColumn(side == game.Home)
	dist := grid.Chebyshev(carrier.Position, grid.Cell{X: col, Y: carrier.Position.Y})
	return clampUnit(1 - float32(dist)/float32(grid.Width))
}

func inOwnHalf(f *game.Figure) bool {
	mid := grid.Width / 2
	if f.Side == game.Home {
		return f.Position.X < mid
	}
	return f.Position.X >= mid
}

// isCaged reports whether all four orthogonal neighbours of the carrier
// are occupied by standing teammates, the classic "cage" formation.
func isCaged(m *game.MatchState, carrier *game.Figure) bool {
	count := 0
	for _, n := range grid.Neighbours(carrier.Position) {
		if n.IsOff() {
			continue
		}
		if n.X != carrier.Position.X && n.Y != carrier.Position.Y {
			continue // diagonal neighbour
		}
		if occ := m.OccupantAt(n); occ != nil && occ.Side == carrier.Side && occ.State == game.Standing {
			count++
		}
	}
	return count >= 4
}

func tallyFigureStates(m *game.MatchState, side game.Side, out []float32) {
	for i := 1; i < len(m.Figures); i++ {
		f := &m.Figures[i]
		if f.ID == 0 || f.Side != side {
			continue
		}
		if int(f.State) < len(out) {
			out[f.State]++
		}
	}
	for i := range out {
		out[i] = clampUnit(out[i] / 11)
	}
}

func tallySkillCategories(m *game.MatchState, side game.Side, out []float32) {
	for i := 1; i < len(m.Figures); i++ {
		f := &m.Figures[i]
		if f.Side != side {
			continue
		}
		if f.Has(skill.Block) || f.Has(skill.Wrestle) || f.Has(skill.Tackle) {
			out[0]++
		}
		if f.Has(skill.Dodge) || f.Has(skill.SideStep) || f.Has(skill.Sprint) {
			out[1]++
		}
		if f.Has(skill.MightyBlow) || f.Has(skill.Guard) || f.Has(skill.StandFirm) {
			out[2]++
		}
		if f.Has(skill.Pass) || f.Has(skill.SureHands) || f.Has(skill.Catch) {
			out[3]++
		}
	}
	for i := range out {
		out[i] = clampUnit(out[i] / 11)
	}
}
