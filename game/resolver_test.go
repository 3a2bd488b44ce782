package game

import (
	"testing"

	"github.com/stretchr/testify/require"

	"scrimmage/dice"
	"scrimmage/grid"
)

// One-step scoring: a home carrier one square from the end zone, with
// movement to spare, scores on a single uncontested move step with no
// dice consumed at all.
func TestResolveOneStepScoringTouchdown(t *testing.T) {
	m := NewMatchState(Away)
	m.Phase = Play
	m.ActiveSide = Home
	m.Figures[1] = newBareFigure(1, Home, grid.Cell{X: 24, Y: 7})
	m.Ball = Ball{Location: BallCarried, Carrier: 1, Cell: grid.Cell{X: 24, Y: 7}}

	legal := LegalActions(m)
	move := Action{Type: Move, FigureID: 1, TargetID: NoFigure, TargetCell: grid.Cell{X: 25, Y: 7}}
	require.Contains(t, legal, move)

	outcome := Resolve(dice.NewScripted(), m, move, nil)

	require.True(t, outcome.Success)
	require.Equal(t, Touchdown, m.Phase)
	require.Equal(t, 1, m.Home.Score)
}

func TestResolveEndTurnFlipsActiveSideExactlyOnce(t *testing.T) {
	m := NewMatchState(Away)
	m.Phase = Play
	m.ActiveSide = Home
	m.Away.TurnNumber = 2

	Resolve(dice.NewScripted(), m, Action{Type: EndTurn, FigureID: NoFigure, TargetID: NoFigure, TargetCell: grid.Off}, nil)

	require.Equal(t, Away, m.ActiveSide)
	require.Equal(t, 3, m.Away.TurnNumber)
	require.False(t, m.TurnoverPending)
}

func TestResolveEndTurnAtTheHalfBoundaryMovesToHalfTime(t *testing.T) {
	m := NewMatchState(Away)
	m.Phase = Play
	m.Half = 1
	m.ActiveSide = Home
	m.Home.TurnNumber = MaxTurnsPerHalf + 1
	m.Away.TurnNumber = MaxTurnsPerHalf

	Resolve(dice.NewScripted(), m, Action{Type: EndTurn, FigureID: NoFigure, TargetID: NoFigure, TargetCell: grid.Off}, nil)

	require.Equal(t, HalfTime, m.Phase)
}

func TestResolveEndTurnAtTheHalfBoundaryInHalfTwoEndsTheGame(t *testing.T) {
	m := NewMatchState(Away)
	m.Phase = Play
	m.Half = 2
	m.ActiveSide = Home
	m.Home.TurnNumber = MaxTurnsPerHalf + 1
	m.Away.TurnNumber = MaxTurnsPerHalf

	Resolve(dice.NewScripted(), m, Action{Type: EndTurn, FigureID: NoFigure, TargetID: NoFigure, TargetCell: grid.Off}, nil)

	require.Equal(t, GameOver, m.Phase)
}

// Half transition: half-time only triggers once both sides' turn counters
// have actually run past the per-half cap.
func TestResolveEndTurnBeforeBothSidesExceedTheCapStaysInPlay(t *testing.T) {
	m := NewMatchState(Away)
	m.Phase = Play
	m.Half = 1
	m.ActiveSide = Home
	m.Home.TurnNumber = MaxTurnsPerHalf + 1
	m.Away.TurnNumber = MaxTurnsPerHalf - 1

	Resolve(dice.NewScripted(), m, Action{Type: EndTurn, FigureID: NoFigure, TargetID: NoFigure, TargetCell: grid.Off}, nil)

	require.Equal(t, Play, m.Phase)
}

func TestResolveClonedMatchDoesNotAffectTheOriginal(t *testing.T) {
	m := NewMatchState(Away)
	m.Phase = Play
	m.ActiveSide = Home
	m.Figures[1] = newBareFigure(1, Home, grid.Cell{X: 24, Y: 7})
	m.Ball = Ball{Location: BallCarried, Carrier: 1, Cell: grid.Cell{X: 24, Y: 7}}
	before := m.Hash()

	clone := m.Clone()
	Resolve(dice.NewScripted(), clone, Action{Type: Move, FigureID: 1, TargetID: NoFigure, TargetCell: grid.Cell{X: 25, Y: 7}}, nil)

	require.Equal(t, before, m.Hash(), "resolving an action on a clone must leave the original bit-identical")
}

func TestResolvePanicsOnAnUnknownFigure(t *testing.T) {
	m := NewMatchState(Away)
	m.Phase = Play
	m.ActiveSide = Home

	require.Panics(t, func() {
		Resolve(dice.NewScripted(), m, Action{Type: Move, FigureID: 5, TargetID: NoFigure, TargetCell: grid.Cell{X: 1, Y: 1}}, nil)
	})
}
