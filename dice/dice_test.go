package dice

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSeededD6IsInRange(t *testing.T) {
	s := NewSeeded(1)
	for i := 0; i < 200; i++ {
		v := s.D6()
		require.GreaterOrEqual(t, v, 1)
		require.LessOrEqual(t, v, 6)
	}
}

func TestSeededD8IsInRange(t *testing.T) {
	s := NewSeeded(1)
	for i := 0; i < 200; i++ {
		v := s.D8()
		require.GreaterOrEqual(t, v, 1)
		require.LessOrEqual(t, v, 8)
	}
}

func TestSeededD2D6IsInRange(t *testing.T) {
	s := NewSeeded(1)
	for i := 0; i < 200; i++ {
		v := s.D2D6()
		require.GreaterOrEqual(t, v, 2)
		require.LessOrEqual(t, v, 12)
	}
}

func TestSeededSameSeedReproducesTheSameSequence(t *testing.T) {
	a := NewSeeded(42)
	b := NewSeeded(42)
	for i := 0; i < 50; i++ {
		require.Equal(t, a.D6(), b.D6())
	}
}

func TestSeededDifferentSeedsEventuallyDiverge(t *testing.T) {
	a := NewSeeded(1)
	b := NewSeeded(2)
	diverged := false
	for i := 0; i < 50; i++ {
		if a.D6() != b.D6() {
			diverged = true
			break
		}
	}
	require.True(t, diverged)
}

func TestScriptedReturnsRollsInOrder(t *testing.T) {
	s := NewScripted(3, 5, 1)
	require.Equal(t, 3, s.D6())
	require.Equal(t, 5, s.D6())
	require.Equal(t, 1, s.D6())
}

func TestScriptedD2D6ConsumesTwoRolls(t *testing.T) {
	s := NewScripted(2, 3, 6)
	require.Equal(t, 5, s.D2D6())
	require.Equal(t, 6, s.D6())
}

func TestScriptedExhaustionPanics(t *testing.T) {
	s := NewScripted(1)
	s.D6()
	require.Panics(t, func() { s.D6() })
}

func TestScriptedBlockDieByRawRoll(t *testing.T) {
	s := NewScripted(1, 2, 3, 4, 5, 6)
	require.Equal(t, AttackerDown, s.BlockDie())
	require.Equal(t, BothDown, s.BlockDie())
	require.Equal(t, Pushed, s.BlockDie())
	require.Equal(t, Pushed, s.BlockDie())
	require.Equal(t, DefenderStumbles, s.BlockDie())
	require.Equal(t, DefenderDown, s.BlockDie())
}

func TestScriptedBlockDieByFaceName(t *testing.T) {
	s := NewScripted(Face(DefenderDown), Face(BothDown))
	require.Equal(t, DefenderDown, s.BlockDie())
	require.Equal(t, BothDown, s.BlockDie())
}

func TestScriptedBlockDieRejectsInvalidFace(t *testing.T) {
	s := NewScripted(999)
	require.Panics(t, func() { s.BlockDie() })
}

func TestBlockFaceString(t *testing.T) {
	require.Equal(t, "attacker_down", AttackerDown.String())
	require.Equal(t, "both_down", BothDown.String())
	require.Equal(t, "pushed", Pushed.String())
	require.Equal(t, "defender_stumbles", DefenderStumbles.String())
	require.Equal(t, "defender_down", DefenderDown.String())
	require.Equal(t, "unknown", BlockFace(99).String())
}
