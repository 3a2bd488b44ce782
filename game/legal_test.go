package game

import (
	"testing"

	"github.com/stretchr/testify/require"

	"scrimmage/grid"
	"scrimmage/skill"
)

func TestLegalActionsIsEmptyOutsidePlay(t *testing.T) {
	m := NewMatchState(Away)
	m.Phase = Setup
	require.Empty(t, LegalActions(m))
}

func TestLegalActionsAlwaysIncludesEndTurn(t *testing.T) {
	m := NewMatchState(Away)
	m.Phase = Play
	m.ActiveSide = Home

	actions := LegalActions(m)
	require.NotEmpty(t, actions)
	require.Equal(t, EndTurn, actions[0].Type)
}

func TestLegalActionsOffersAMoveForAStandingFigure(t *testing.T) {
	m := NewMatchState(Away)
	m.Phase = Play
	m.ActiveSide = Home
	m.Figures[1] = newBareFigure(1, Home, grid.Cell{X: 10, Y: 7})

	actions := LegalActions(m)
	found := false
	for _, a := range actions {
		if a.Type == Move && a.FigureID == 1 {
			found = true
		}
	}
	require.True(t, found)
}

func TestLegalActionsSkipsFiguresThatHaveAlreadyActed(t *testing.T) {
	m := NewMatchState(Away)
	m.Phase = Play
	m.ActiveSide = Home
	f := newBareFigure(1, Home, grid.Cell{X: 10, Y: 7})
	f.HasActed = true
	m.Figures[1] = f

	actions := LegalActions(m)
	for _, a := range actions {
		require.NotEqual(t, 1, a.FigureID, "a figure that already acted should offer no actions")
	}
}

func TestLegalActionsOffersBlockAgainstAnAdjacentStandingEnemy(t *testing.T) {
	m := NewMatchState(Away)
	m.Phase = Play
	m.ActiveSide = Home
	m.Figures[1] = newBareFigure(1, Home, grid.Cell{X: 10, Y: 7})
	m.Figures[12] = newBareFigure(12, Away, grid.Cell{X: 11, Y: 7})

	actions := LegalActions(m)
	found := false
	for _, a := range actions {
		if a.Type == Block && a.FigureID == 1 && a.TargetID == 12 {
			found = true
		}
	}
	require.True(t, found)
}

func TestLegalActionsOffersNoBlockAgainstAProneEnemy(t *testing.T) {
	m := NewMatchState(Away)
	m.Phase = Play
	m.ActiveSide = Home
	m.Figures[1] = newBareFigure(1, Home, grid.Cell{X: 10, Y: 7})
	prone := newBareFigure(12, Away, grid.Cell{X: 11, Y: 7})
	prone.State = Prone
	m.Figures[12] = prone

	actions := LegalActions(m)
	for _, a := range actions {
		require.NotEqual(t, Block, a.Type)
	}
}

func TestLegalActionsOffersFoulAgainstAnAdjacentProneEnemy(t *testing.T) {
	m := NewMatchState(Away)
	m.Phase = Play
	m.ActiveSide = Home
	m.Figures[1] = newBareFigure(1, Home, grid.Cell{X: 10, Y: 7})
	prone := newBareFigure(12, Away, grid.Cell{X: 11, Y: 7})
	prone.State = Prone
	m.Figures[12] = prone

	actions := LegalActions(m)
	found := false
	for _, a := range actions {
		if a.Type == Foul && a.FigureID == 1 && a.TargetID == 12 {
			found = true
		}
	}
	require.True(t, found)
}

func TestLegalActionsOffersPassOnlyForTheBallCarrier(t *testing.T) {
	m := NewMatchState(Away)
	m.Phase = Play
	m.ActiveSide = Home
	m.Figures[1] = newBareFigure(1, Home, grid.Cell{X: 10, Y: 7})
	m.Figures[2] = newBareFigure(2, Home, grid.Cell{X: 10, Y: 10})
	m.Ball = Ball{Location: BallCarried, Carrier: 1, Cell: grid.Cell{X: 10, Y: 7}}

	actions := LegalActions(m)
	passes := 0
	for _, a := range actions {
		if a.Type == Pass {
			passes++
			require.Equal(t, 1, a.FigureID)
		}
	}
	require.Equal(t, 1, passes, "only the carrier's teammate should yield exactly one pass target")
}

func TestLegalActionsOffersHandOffOnlyToAStandingTeammate(t *testing.T) {
	m := NewMatchState(Away)
	m.Phase = Play
	m.ActiveSide = Home
	m.Figures[1] = newBareFigure(1, Home, grid.Cell{X: 10, Y: 7})
	m.Figures[2] = newBareFigure(2, Home, grid.Cell{X: 11, Y: 7})
	m.Ball = Ball{Location: BallCarried, Carrier: 1, Cell: grid.Cell{X: 10, Y: 7}}

	actions := LegalActions(m)
	found := false
	for _, a := range actions {
		if a.Type == HandOff && a.FigureID == 1 && a.TargetID == 2 {
			found = true
		}
	}
	require.True(t, found)
}

func TestLegalActionsOffersBlitzOnceUnusedThisTurn(t *testing.T) {
	m := NewMatchState(Away)
	m.Phase = Play
	m.ActiveSide = Home
	m.Figures[1] = newBareFigure(1, Home, grid.Cell{X: 10, Y: 7})
	m.Figures[12] = newBareFigure(12, Away, grid.Cell{X: 11, Y: 7})

	actions := LegalActions(m)
	found := false
	for _, a := range actions {
		if a.Type == Blitz && a.FigureID == 1 && a.TargetID == 12 {
			found = true
		}
	}
	require.True(t, found)

	m.Home.BlitzUsed = true
	actions = LegalActions(m)
	for _, a := range actions {
		require.NotEqual(t, Blitz, a.Type)
	}
}

func TestLegalActionsGivesABallAndChainFigureOnlyItsOwnAction(t *testing.T) {
	m := NewMatchState(Away)
	m.Phase = Play
	m.ActiveSide = Home
	f := newBareFigure(1, Home, grid.Cell{X: 10, Y: 7})
	f.Skills = skill.New(skill.BallAndChain)
	m.Figures[1] = f

	actions := LegalActions(m)
	count := 0
	for _, a := range actions {
		if a.FigureID == 1 {
			count++
			require.Equal(t, BallAndChain, a.Type)
		}
	}
	require.Equal(t, 1, count)
}

func TestLegalActionsProneFigureCanOnlyStandUpWithEnoughMovement(t *testing.T) {
	m := NewMatchState(Away)
	m.Phase = Play
	m.ActiveSide = Home
	prone := newBareFigure(1, Home, grid.Cell{X: 10, Y: 7})
	prone.State = Prone
	prone.MovementRemaining = 0
	m.Figures[1] = prone

	actions := LegalActions(m)
	for _, a := range actions {
		require.NotEqual(t, 1, a.FigureID, "a prone figure with no movement and no jump-up cannot act")
	}
}
