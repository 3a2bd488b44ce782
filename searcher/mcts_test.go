package searcher

import (
	"testing"

	"github.com/stretchr/testify/require"

	"scrimmage/game"
	"scrimmage/roster"
)

func newPlayState(t *testing.T) *game.MatchState {
	t.Helper()
	rosters := roster.CreateRosters()
	m := game.NewMatchState(game.Away)
	game.SetupHalf(m, game.Away, rosters["Humans"], rosters["Orcs"], roster.OffensiveFourOnLOS)
	m.Phase = game.Play
	m.ActiveSide = game.Home
	return m
}

func TestMCTSSimulateReturnsAPolicyOverLegalActions(t *testing.T) {
	state := newPlayState(t)
	legal := game.LegalActions(state)
	require.NotEmpty(t, legal, "a freshly set-up state should always have at least EndTurn legal")

	m := New(1, WithEpisodes(20), WithCutoff(10), WithSeed(1))
	policy, metric := m.Simulate(state, nil)

	require.NotEmpty(t, policy)
	require.Equal(t, int64(20), metric.Episodes)

	sum := 0.0
	for action, p := range policy {
		require.Contains(t, legal, action, "policy should never assign mass to an illegal action")
		sum += p
	}
	require.InDelta(t, 1.0, sum, 1e-6, "visit-count policy should sum to one")
}

func TestMCTSBestActionIsLegal(t *testing.T) {
	state := newPlayState(t)
	legal := game.LegalActions(state)

	m := New(2, WithEpisodes(30), WithCutoff(10), WithSeed(7))
	best := m.BestAction(state, nil)

	require.Contains(t, legal, best)
}

func TestMCTSSingleLegalActionConverges(t *testing.T) {
	// With blitz, pass and foul used and every home figure marked as having
	// acted, EndTurn is the only legal action, so the root expands to a
	// single edge and the policy puts all its mass there.
	state := newPlayState(t)
	state.Home.BlitzUsed = true
	state.Home.PassUsed = true
	state.Home.FoulUsed = true
	for i := range state.Figures {
		if state.Figures[i].Side == game.Home {
			state.Figures[i].HasActed = true
		}
	}

	m := New(1, WithEpisodes(5), WithCutoff(5), WithSeed(3))
	policy, _ := m.Simulate(state, nil)

	require.Len(t, policy, 1, "with every figure spent, EndTurn should be the only legal action")
	for action, p := range policy {
		require.Equal(t, game.EndTurn, action.Type)
		require.InDelta(t, 1.0, p, 1e-9)
	}
}

func TestMCTSDoesNotMutateTheRealState(t *testing.T) {
	state := newPlayState(t)
	before := state.Hash()

	m := New(1, WithEpisodes(10), WithCutoff(10), WithSeed(5))
	m.Simulate(state, nil)

	require.Equal(t, before, state.Hash(), "Simulate must only ever mutate clones of the supplied state")
}

func TestWithExplorationOverridesTheDefaultConstant(t *testing.T) {
	state := newPlayState(t)

	m := New(1, WithEpisodes(10), WithCutoff(5), WithSeed(9), WithExploration(3.0))
	require.Equal(t, 3.0, m.exploration)

	policy, _ := m.Simulate(state, nil)
	require.NotEmpty(t, policy)
}

func TestWithExplorationIgnoresNonPositiveValues(t *testing.T) {
	m := New(1, WithEpisodes(10), WithExploration(0))
	require.Equal(t, defaultExploration, m.exploration)

	m2 := New(1, WithEpisodes(10), WithExploration(-1))
	require.Equal(t, defaultExploration, m2.exploration)
}

func TestMCTSPanicsWithoutABudget(t *testing.T) {
	require.Panics(t, func() {
		New(1)
	})
}
