package game

import "scrimmage/grid"

// Evaluate scores a MatchState from the active side's perspective,
// bounded to roughly [-1, 1]. Used by the searcher as a cheap rollout
// cutoff heuristic when no external value function is supplied.
type Evaluate func(*MatchState) float64

// EvaluatePosition tallies score differential and ball-carrier proximity
// to the scoring end zone, the same two terms the macro layer's
// positional heuristic leans on.
func EvaluatePosition(m *MatchState) float64 {
	side := m.ActiveSide
	opp := side.Opponent()

	scoreDiff := float64(m.Team(side).Score-m.Team(opp).Score) / 2.0

	proximity := 0.0
	if carrier := m.Carrier(); carrier != nil {
		col := grid.EndZoneColumn(carrier.Side == Home)
		dist := grid.Chebyshev(carrier.Position, grid.Cell{X: col, Y: carrier.Position.Y})
		progress := 1.0 - float64(dist)/float64(grid.Width)
		if carrier.Side != side {
			progress = -progress
		}
		proximity = progress
	}

	score := scoreDiff + 0.5*proximity
	return clampScore(score)
}

func clampScore(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}
