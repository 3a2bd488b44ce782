package game

import (
	"testing"

	"github.com/stretchr/testify/require"

	"scrimmage/dice"
	"scrimmage/grid"
)

func TestKickoffEventFromRollCoversTheFullTable(t *testing.T) {
	cases := map[int]KickoffEventID{
		2: GetTheRef, 3: Riot, 4: PerfectDefence, 5: HighKick, 6: CheeringFans,
		7: ChangingWeather, 8: BrilliantCoaching, 9: QuickSnap, 10: KickoffBlitz, 11: ThrowARock,
	}
	for roll, want := range cases {
		require.Equal(t, want, KickoffEventFromRoll(roll))
	}
	require.Equal(t, PitchInvasion, KickoffEventFromRoll(12))
}

func TestInHalfSplitsThePitchAtTheMidline(t *testing.T) {
	mid := grid.Width / 2
	require.True(t, inHalf(grid.Cell{X: mid - 1, Y: 0}, Home))
	require.False(t, inHalf(grid.Cell{X: mid, Y: 0}, Home))
	require.True(t, inHalf(grid.Cell{X: mid, Y: 0}, Away))
	require.False(t, inHalf(grid.Cell{X: mid - 1, Y: 0}, Away))
}

func TestStepTowardMovesOneCellTowardTheTarget(t *testing.T) {
	require.Equal(t, grid.Cell{X: 6, Y: 0}, stepToward(grid.Cell{X: 5, Y: 0}, 10))
	require.Equal(t, grid.Cell{X: 4, Y: 0}, stepToward(grid.Cell{X: 5, Y: 0}, 0))
	require.Equal(t, grid.Cell{X: 5, Y: 0}, stepToward(grid.Cell{X: 5, Y: 0}, 5))
}

func TestNearestStandingPicksTheClosestFigureOfTheGivenSide(t *testing.T) {
	m := NewMatchState(Away)
	m.Figures[1] = newBareFigure(1, Home, grid.Cell{X: 0, Y: 0})
	m.Figures[2] = newBareFigure(2, Home, grid.Cell{X: 10, Y: 10})

	nearest := nearestStanding(m, grid.Cell{X: 1, Y: 1}, Home)
	require.NotNil(t, nearest)
	require.Equal(t, 1, nearest.ID)
}

func TestResolveKickoffTouchbackGivesTheBallToTheNearestReceiver(t *testing.T) {
	m := NewMatchState(Away)
	m.Figures[1] = newBareFigure(1, Home, grid.Cell{X: 5, Y: 5})

	// weather(2), distance(1), direction=N(1): landing stays on the column
	// the kicking team (Away) threw from, so it never crosses into the
	// receiving (Home) half and the kick resolves as a touchback.
	d := dice.NewScripted(2, 2, 3, 1)
	ResolveKickoff(d, m, nil)

	require.Equal(t, BallCarried, m.Ball.Location)
	require.Equal(t, 1, m.Ball.Carrier)
}

func TestResolveKickoffLandingInTheReceivingHalfBouncesTheBall(t *testing.T) {
	m := NewMatchState(Home)

	// weather(2), distance(1), direction=E(3): landing moves toward the
	// receiving (Away) half, with no standing figure there to catch it;
	// event roll(1,1) is a flavour-only GetTheRef, then the ball bounces.
	d := dice.NewScripted(2, 2, 3, 3, 1, 1, 1)
	ResolveKickoff(d, m, nil)

	require.Equal(t, BallOnGround, m.Ball.Location)
}

func TestResolveKickoffFiresTheNamedEventWhenLandingInTheReceivingHalf(t *testing.T) {
	m := NewMatchState(Home)
	beforeAwayRerolls := m.Away.Rerolls

	// weather(2,2), distance(3), direction=E(3): lands in the receiving
	// (Away) half. Event roll sums to 6 (CheeringFans); the coin-flip
	// winner(3, odd) grants Away the reroll, then the ball bounces untouched.
	d := dice.NewScripted(2, 2, 3, 3, 2, 4, 3, 1)
	ResolveKickoff(d, m, nil)

	require.Equal(t, beforeAwayRerolls+1, m.Away.Rerolls)
}
