package game

import (
	"scrimmage/grid"
	"scrimmage/skill"
)

// StepTarget is one single-step legal move target the pathfinder emits,
// flagged with whether taking it requires a dodge (the mover currently
// stands in an enemy tacklezone) and/or a GFI (movement_remaining about to
// go negative).
type StepTarget struct {
	Cell       grid.Cell
	NeedsDodge bool
	NeedsGFI   bool
}

// gfiAllowance returns the extra movement steps a figure may attempt
// beyond its remaining movement via go-for-it rolls.
func gfiAllowance(f *Figure) int {
	if f.Has(skill.Sprint) {
		return 3
	}
	return 2
}

// standUpCost returns the movement cost to stand up from prone; jump-up
// waives it entirely.
func standUpCost(f *Figure) int {
	if f.Has(skill.JumpUp) {
		return 0
	}
	return 3
}

// MaxDepth returns the pathfinder's bounded BFS depth limit for f:
// remaining movement plus GFI allowance, plus the stand-up cost if f
// starts prone.
func MaxDepth(f *Figure) int {
	depth := f.MovementRemaining + gfiAllowance(f)
	if f.State == Prone {
		depth += standUpCost(f) // note: this is a cost, not extra reach, callers subtract it along the path
	}
	return depth
}

// ReachAdjacentTo runs a bounded BFS from figure's cell, returning the
// closest reachable cell adjacent to target (not target itself), or
// grid.Off with ok=false if unreachable within the figure's movement
// budget. Occupied cells (other than target's own cell) are blocked.
func ReachAdjacentTo(m *MatchState, figure *Figure, target grid.Cell) (grid.Cell, bool) {
	maxDepth := MaxDepth(figure)
	type node struct {
		cell  grid.Cell
		depth int
	}
	visited := map[grid.Cell]bool{figure.Position: true}
	queue := []node{{cell: figure.Position, depth: 0}}

	var best grid.Cell
	found := false
	bestDepth := maxDepth + 1

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		if grid.IsAdjacent(cur.cell, target) && cur.depth < bestDepth {
			best = cur.cell
			bestDepth = cur.depth
			found = true
		}

		if cur.depth >= maxDepth {
			continue
		}

		for _, n := range grid.Neighbours(cur.cell) {
			if n.IsOff() || visited[n] {
				continue
			}
			if n.Equal(target) {
				continue // target cell itself is not entered
			}
			if occ := m.OccupantAt(n); occ != nil {
				continue
			}
			visited[n] = true
			queue = append(queue, node{cell: n, depth: cur.depth + 1})
		}
	}

	if !found {
		return grid.Off, false
	}
	return best, true
}

// SingleStepTargets enumerates the legal one-square move targets adjacent
// to figure's current cell, each flagged for whether it requires a dodge
// or a GFI.
func SingleStepTargets(m *MatchState, figure *Figure) []StepTarget {
	inTZ := TacklezoneCount(&m.Figures, figure.Position, figure.Side, figure.ID) > 0
	needsGFI := figure.MovementRemaining <= 0

	out := make([]StepTarget, 0, 8)
	for _, n := range grid.Neighbours(figure.Position) {
		if n.IsOff() {
			continue
		}
		if occ := m.OccupantAt(n); occ != nil {
			continue
		}
		out = append(out, StepTarget{Cell: n, NeedsDodge: inTZ, NeedsGFI: needsGFI})
	}
	return out
}
