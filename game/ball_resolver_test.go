package game

import (
	"testing"

	"github.com/stretchr/testify/require"

	"scrimmage/dice"
	"scrimmage/grid"
	"scrimmage/skill"
)

// A sure-hands figure gets a second roll on a failed pickup: the first
// roll fails the unmodified target, the skill-granted reroll succeeds.
func TestResolvePickupSureHandsRerollsAFailedAttempt(t *testing.T) {
	m := NewMatchState(Away)
	figure := newBareFigure(1, Home, grid.Cell{X: 10, Y: 7})
	figure.Skills = skill.New(skill.SureHands)
	m.Figures[1] = figure
	m.Ball = Ball{Location: BallOnGround, Cell: grid.Cell{X: 10, Y: 7}}

	d := dice.NewScripted(2, 4)
	outcome := ResolvePickup(d, m, &m.Figures[1], nil)

	require.True(t, outcome.Success)
	require.False(t, outcome.Turnover)
	require.Equal(t, BallCarried, m.Ball.Location)
	require.Equal(t, 1, m.Ball.Carrier)
}

func TestResolvePickupWithoutARerollFailsAndBouncesTheBall(t *testing.T) {
	m := NewMatchState(Away)
	figure := newBareFigure(1, Home, grid.Cell{X: 10, Y: 7})
	m.Figures[1] = figure
	m.Ball = Ball{Location: BallOnGround, Cell: grid.Cell{X: 10, Y: 7}}

	d := dice.NewScripted(2, 1)
	outcome := ResolvePickup(d, m, &m.Figures[1], nil)

	require.False(t, outcome.Success)
	require.True(t, outcome.Turnover)
	require.Equal(t, BallOnGround, m.Ball.Location)
	require.NotEqual(t, grid.Cell{X: 10, Y: 7}, m.Ball.Cell, "an 8-direction scatter off (10,7) always lands elsewhere on an open pitch")
}

func TestResolveCatchSuccessTransfersCarrierToTheReceiver(t *testing.T) {
	m := NewMatchState(Away)
	receiver := newBareFigure(2, Home, grid.Cell{X: 12, Y: 7})
	m.Figures[2] = receiver

	d := dice.NewScripted(6)
	ok := ResolveCatch(d, m, &m.Figures[2], 0, false, nil)

	require.True(t, ok)
	require.Equal(t, BallCarried, m.Ball.Location)
	require.Equal(t, 2, m.Ball.Carrier)
}

func TestPickupTargetIsHarderInTheRain(t *testing.T) {
	m := NewMatchState(Away)
	figure := newBareFigure(1, Home, grid.Cell{X: 10, Y: 7})
	dry := PickupTarget(m, &figure, figure.Position)

	m.Weather = Rain
	wet := PickupTarget(m, &figure, figure.Position)

	require.Equal(t, dry+1, wet)
}

func TestPickupTargetIgnoresTacklezonesWithBigHand(t *testing.T) {
	m := NewMatchState(Away)
	figure := newBareFigure(1, Home, grid.Cell{X: 10, Y: 7})
	figure.Skills = skill.New(skill.BigHand)
	m.Figures[2] = newBareFigure(2, Away, grid.Cell{X: 10, Y: 8})

	target := PickupTarget(m, &figure, figure.Position)
	require.Equal(t, Clamp(6-figure.Agility), target)
}
