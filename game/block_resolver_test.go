package game

import (
	"testing"

	"github.com/stretchr/testify/require"

	"scrimmage/dice"
	"scrimmage/grid"
)

// A 2-dice attacker-chosen block: the attacker picks defender_down over
// attacker_down, pushes the defender back, and the subsequent armour roll
// fails to break.
func TestResolveBlockTwoDiceAttackerChoosesDefenderDown(t *testing.T) {
	m := NewMatchState(Away)
	attacker := newBareFigure(1, Home, grid.Cell{X: 10, Y: 7})
	attacker.Strength = 4
	defender := newBareFigure(12, Away, grid.Cell{X: 11, Y: 7})
	defender.Strength = 3
	m.Figures[1] = attacker
	m.Figures[12] = defender

	d := dice.NewScripted(dice.Face(dice.DefenderDown), dice.Face(dice.AttackerDown), 3, 3)
	outcome := ResolveBlock(d, m, &m.Figures[1], &m.Figures[12], BlockOptions{}, nil)

	require.True(t, outcome.Success)
	require.False(t, outcome.Turnover)
	require.Equal(t, Prone, m.Figures[12].State)
	require.Equal(t, grid.Cell{X: 12, Y: 7}, m.Figures[12].Position)
	require.Equal(t, grid.Cell{X: 11, Y: 7}, m.Figures[1].Position, "the attacker follows up into the vacated cell")
}

// A 1-die equal-strength block pushed into the sideline with no candidate
// cell on the pitch: the defender is crowd-surfed, knocked out and placed
// off pitch.
func TestResolveBlockPushIntoTheCrowdKnocksTheDefenderOut(t *testing.T) {
	m := NewMatchState(Away)
	attacker := newBareFigure(1, Home, grid.Cell{X: 24, Y: 7})
	attacker.Strength = 3
	defender := newBareFigure(12, Away, grid.Cell{X: 25, Y: 7})
	defender.Strength = 3
	m.Figures[1] = attacker
	m.Figures[12] = defender

	d := dice.NewScripted(dice.Face(dice.DefenderDown), 3, 3)
	outcome := ResolveBlock(d, m, &m.Figures[1], &m.Figures[12], BlockOptions{}, nil)

	require.True(t, outcome.Success)
	require.Equal(t, KO, m.Figures[12].State)
	require.True(t, m.Figures[12].Position.IsOff())
	require.Equal(t, grid.Cell{X: 25, Y: 7}, m.Figures[1].Position, "the attacker follows up into the vacated cell")
}

func TestResolveBlockBothDownWithoutBlockSkillKnocksBothDownAndTurnsOver(t *testing.T) {
	m := NewMatchState(Away)
	attacker := newBareFigure(1, Home, grid.Cell{X: 10, Y: 7})
	attacker.Strength = 3
	defender := newBareFigure(12, Away, grid.Cell{X: 11, Y: 7})
	defender.Strength = 3
	m.Figures[1] = attacker
	m.Figures[12] = defender

	d := dice.NewScripted(dice.Face(dice.BothDown), 3, 3, 3, 3)
	outcome := ResolveBlock(d, m, &m.Figures[1], &m.Figures[12], BlockOptions{}, nil)

	require.True(t, outcome.Turnover)
	require.Equal(t, Prone, m.Figures[1].State)
	require.Equal(t, Prone, m.Figures[12].State)
}

func TestDiceCountFavoursTheStrongerSide(t *testing.T) {
	n, attackerChooses := diceCount(7, 3)
	require.Equal(t, 3, n)
	require.True(t, attackerChooses)

	n, attackerChooses = diceCount(3, 3)
	require.Equal(t, 1, n)
	require.True(t, attackerChooses)

	n, attackerChooses = diceCount(2, 5)
	require.Equal(t, 3, n)
	require.False(t, attackerChooses)

	n, attackerChooses = diceCount(3, 4)
	require.Equal(t, 2, n)
	require.False(t, attackerChooses)
}
