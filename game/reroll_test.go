package game

import (
	"testing"

	"github.com/stretchr/testify/require"

	"scrimmage/dice"
	"scrimmage/grid"
	"scrimmage/skill"
)

func TestAttemptRollSucceedsOnTheBaseRoll(t *testing.T) {
	f := newBareFigure(1, Home, grid.Cell{X: 5, Y: 5})
	team := &TeamState{Side: Home}

	require.True(t, AttemptRoll(dice.NewScripted(5), &f, team, 4, skill.None, false, true))
}

func TestAttemptRollSkillRerollSavesAFailedBaseRoll(t *testing.T) {
	f := newBareFigure(1, Home, grid.Cell{X: 5, Y: 5})
	f.Skills = skill.New(skill.Dodge)
	team := &TeamState{Side: Home}

	require.True(t, AttemptRoll(dice.NewScripted(2, 5), &f, team, 4, skill.Dodge, false, true))
}

func TestAttemptRollSkillRerollIsIgnoredWhenNegated(t *testing.T) {
	f := newBareFigure(1, Home, grid.Cell{X: 5, Y: 5})
	f.Skills = skill.New(skill.Dodge)
	team := &TeamState{Side: Home}

	require.False(t, AttemptRoll(dice.NewScripted(2), &f, team, 4, skill.Dodge, true, false))
}

func TestAttemptRollProRerollOnlyFiresOncePerTurn(t *testing.T) {
	f := newBareFigure(1, Home, grid.Cell{X: 5, Y: 5})
	f.Skills = skill.New(skill.Pro)
	team := &TeamState{Side: Home}

	// pro check(4), pro reroll(5): succeeds and marks Pro used this turn.
	require.True(t, AttemptRoll(dice.NewScripted(2, 4, 5), &f, team, 4, skill.None, false, false))
	require.True(t, f.ProUsedThisTurn)

	// a second attempt this turn gets no pro reroll at all.
	require.False(t, AttemptRoll(dice.NewScripted(2), &f, team, 4, skill.None, false, false))
}

func TestAttemptRollProCheckCanFailAndDenyTheReroll(t *testing.T) {
	f := newBareFigure(1, Home, grid.Cell{X: 5, Y: 5})
	f.Skills = skill.New(skill.Pro)
	team := &TeamState{Side: Home}

	require.False(t, AttemptRoll(dice.NewScripted(2, 2), &f, team, 4, skill.None, false, false))
}

func TestAttemptRollTeamRerollConsumesATeamReroll(t *testing.T) {
	f := newBareFigure(1, Home, grid.Cell{X: 5, Y: 5})
	team := &TeamState{Side: Home, Rerolls: 1}

	require.True(t, AttemptRoll(dice.NewScripted(2, 5), &f, team, 4, skill.None, false, true))
	require.Equal(t, 0, team.Rerolls)
	require.True(t, team.RerollUsedThisTurn)
}

func TestAttemptRollTeamRerollIsUnavailableOnceSpentThisTurn(t *testing.T) {
	f := newBareFigure(1, Home, grid.Cell{X: 5, Y: 5})
	team := &TeamState{Side: Home, Rerolls: 1, RerollUsedThisTurn: true}

	require.False(t, AttemptRoll(dice.NewScripted(2), &f, team, 4, skill.None, false, true))
	require.Equal(t, 1, team.Rerolls, "an already-used team reroll this turn must not be spent twice")
}

func TestAttemptRollLonerCanWasteTheTeamReroll(t *testing.T) {
	f := newBareFigure(1, Home, grid.Cell{X: 5, Y: 5})
	f.Skills = skill.New(skill.Loner)
	team := &TeamState{Side: Home, Rerolls: 1}

	require.False(t, AttemptRoll(dice.NewScripted(2, 2), &f, team, 4, skill.None, false, true))
	require.Equal(t, 0, team.Rerolls, "loner still burns the reroll even when it fails to trigger")
}

func TestClampRestrictsTargetsToTheLegalDieRange(t *testing.T) {
	require.Equal(t, 2, Clamp(1))
	require.Equal(t, 6, Clamp(7))
	require.Equal(t, 4, Clamp(4))
}
