package game

import (
	"testing"

	"github.com/stretchr/testify/require"

	"scrimmage/grid"
	"scrimmage/skill"
)

func TestMaxDepthAddsGfiAllowanceAndStandUpCost(t *testing.T) {
	f := newBareFigure(1, Home, grid.Cell{X: 5, Y: 5})
	f.MovementRemaining = 3
	require.Equal(t, 5, MaxDepth(&f))

	f.State = Prone
	require.Equal(t, 8, MaxDepth(&f))
}

func TestGfiAllowanceIsHigherWithSprint(t *testing.T) {
	f := newBareFigure(1, Home, grid.Cell{X: 5, Y: 5})
	require.Equal(t, 2, gfiAllowance(&f))

	f.Skills = f.Skills.With(skill.Sprint)
	require.Equal(t, 3, gfiAllowance(&f))
}

func TestStandUpCostIsWaivedByJumpUp(t *testing.T) {
	f := newBareFigure(1, Home, grid.Cell{X: 5, Y: 5})
	require.Equal(t, 3, standUpCost(&f))

	f.Skills = f.Skills.With(skill.JumpUp)
	require.Equal(t, 0, standUpCost(&f))
}

func TestReachAdjacentToFindsTheClosestFreeCellNextToTheTarget(t *testing.T) {
	m := NewMatchState(Away)
	figure := newBareFigure(1, Home, grid.Cell{X: 0, Y: 0})
	m.Figures[1] = figure

	cell, ok := ReachAdjacentTo(m, &m.Figures[1], grid.Cell{X: 3, Y: 0})

	require.True(t, ok)
	require.True(t, grid.IsAdjacent(cell, grid.Cell{X: 3, Y: 0}))
}

func TestReachAdjacentToFailsWhenBoxedIn(t *testing.T) {
	m := NewMatchState(Away)
	figure := newBareFigure(1, Home, grid.Cell{X: 5, Y: 5})
	m.Figures[1] = figure
	id := 2
	for _, n := range grid.Neighbours(grid.Cell{X: 5, Y: 5}) {
		m.Figures[id] = newBareFigure(id, Away, n)
		id++
	}

	_, ok := ReachAdjacentTo(m, &m.Figures[1], grid.Cell{X: 9, Y: 9})
	require.False(t, ok)
}

func TestSingleStepTargetsSkipsOccupiedNeighbours(t *testing.T) {
	m := NewMatchState(Away)
	figure := newBareFigure(1, Home, grid.Cell{X: 5, Y: 5})
	m.Figures[1] = figure
	m.Figures[2] = newBareFigure(2, Away, grid.Cell{X: 6, Y: 5})

	targets := SingleStepTargets(m, &m.Figures[1])
	for _, tg := range targets {
		require.NotEqual(t, grid.Cell{X: 6, Y: 5}, tg.Cell)
	}
	require.Len(t, targets, 7)
}

func TestSingleStepTargetsFlagsDodgeWhenInAnEnemyTacklezone(t *testing.T) {
	m := NewMatchState(Away)
	figure := newBareFigure(1, Home, grid.Cell{X: 5, Y: 5})
	m.Figures[1] = figure
	m.Figures[2] = newBareFigure(2, Away, grid.Cell{X: 6, Y: 5})

	targets := SingleStepTargets(m, &m.Figures[1])
	require.NotEmpty(t, targets)
	for _, tg := range targets {
		require.True(t, tg.NeedsDodge)
	}
}
