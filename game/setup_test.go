package game

import (
	"testing"

	"github.com/stretchr/testify/require"

	"scrimmage/grid"
	"scrimmage/roster"
)

func TestSetupHalfPlacesBothSidesAndOpensTheKickoffPhase(t *testing.T) {
	m := NewMatchState(Away)
	rosters := roster.CreateRosters()
	home, away := rosters["Humans"], rosters["Humans"]

	SetupHalf(m, Away, home, away, roster.OffensiveFourOnLOS)

	require.Equal(t, Kickoff, m.Phase)
	require.Equal(t, Away, m.KickingTeam)

	homeCount, awayCount := 0, 0
	for i := 1; i < len(m.Figures); i++ {
		f := &m.Figures[i]
		if f.ID == 0 {
			continue
		}
		if f.Side == Home {
			homeCount++
		} else {
			awayCount++
		}
	}
	require.Equal(t, len(roster.OffensiveFourOnLOS.Offsets), homeCount)
	require.Equal(t, len(roster.OffensiveFourOnLOS.Offsets), awayCount)
}

func TestSetupHalfClearsAnyPreviouslyPlacedFigures(t *testing.T) {
	m := NewMatchState(Away)
	m.Figures[1] = newBareFigure(1, Home, grid.Cell{X: 5, Y: 5})
	rosters := roster.CreateRosters()
	home, away := rosters["Humans"], rosters["Humans"]

	SetupHalf(m, Away, home, away, roster.DefensiveThreeOnLOS)

	require.NotEqual(t, 6, m.Figures[1].Move, "the stale test figure must be wiped before placement")
}

func TestBuildFillOrderPutsTheMostSpecialisedPositionsFirst(t *testing.T) {
	rosters := roster.CreateRosters()
	humans := rosters["Humans"]

	order := buildFillOrder(humans)
	for i := 1; i < len(order); i++ {
		require.LessOrEqual(t, order[i-1].Max, order[i].Max)
	}
}

