package game

import (
	"scrimmage/dice"
	"scrimmage/grid"
	"scrimmage/skill"
)

// MaxBounceDepth caps recursive ball-bounce chains so an adversarial
// sequence of empty landing cells cannot loop forever.
const MaxBounceDepth = 5

// PickupTarget computes the target number for a pickup attempt at cell c.
func PickupTarget(m *MatchState, figure *Figure, c grid.Cell) int {
	target := 6 - figure.Agility
	if !figure.Has(skill.BigHand) {
		target += TacklezoneCount(&m.Figures, c, figure.Side, figure.ID)
		if m.Weather == Rain {
			target++
		}
	}
	return Clamp(target)
}

// CatchTarget computes the target number for a catch attempt at cell c,
// modifier covers range/hand-off bonuses applied by the caller.
func CatchTarget(m *MatchState, figure *Figure, c grid.Cell, modifier int, disturbingPresence bool) int {
	target := 7 - figure.Agility - modifier
	if !figure.Has(skill.NervesOfSteel) {
		target += TacklezoneCount(&m.Figures, c, figure.Side, figure.ID)
	}
	if disturbingPresence {
		target++
	}
	if m.Weather == Rain {
		target++
	}
	return Clamp(target)
}

// ResolvePickup attempts to pick up the ball lying on the ground at
// figure's current cell. Failure drops the ball to bounce and is a
// turnover.
func ResolvePickup(d dice.Source, m *MatchState, figure *Figure, sink Sink) Outcome {
	target := PickupTarget(m, figure, figure.Position)
	success := AttemptRoll(d, figure, m.Team(figure.Side), target, skill.SureHands, false, true)
	emit(sink, Event{Kind: PickupEvent, PrimaryID: figure.ID, Roll: target, Success: success, To: figure.Position})
	if !success {
		m.Ball.Location = BallOnGround
		m.Ball.Cell = figure.Position
		ResolveBounce(d, m, sink)
		return Outcome{Success: false, Turnover: true}
	}
	m.Ball.Location = BallCarried
	m.Ball.Carrier = figure.ID
	m.Ball.Cell = figure.Position
	return Outcome{Success: true}
}

// ResolveCatch attempts to catch the ball arriving at figure's cell with
// the given target modifier (0 for a neutral catch, positive/negative for
// pass-range or hand-off bonuses).
func ResolveCatch(d dice.Source, m *MatchState, figure *Figure, modifier int, disturbingPresence bool, sink Sink) bool {
	return resolveCatchDepth(d, m, figure, modifier, disturbingPresence, sink, 0)
}

// resolveCatchDepth is ResolveCatch with the bounce depth a failed catch
// continues from, so a catch inside a bounce chain shares its counter.
func resolveCatchDepth(d dice.Source, m *MatchState, figure *Figure, modifier int, disturbingPresence bool, sink Sink, depth int) bool {
	target := CatchTarget(m, figure, figure.Position, modifier, disturbingPresence)
	success := AttemptRoll(d, figure, m.Team(figure.Side), target, skill.Catch, false, true)
	emit(sink, Event{Kind: CatchEvent, PrimaryID: figure.ID, Roll: target, Success: success, To: figure.Position})
	if success {
		m.Ball.Location = BallCarried
		m.Ball.Carrier = figure.ID
		m.Ball.Cell = figure.Position
	} else {
		m.Ball.Location = BallOnGround
		m.Ball.Cell = figure.Position
		resolveBounceDepth(d, m, sink, depth)
	}
	return success
}

// ResolveBounce scatters the ball on the ground one cell via a d8
// direction, recursing (bounded by MaxBounceDepth) if it again lands on
// an occupied cell without being caught, or landing off pitch triggers a
// throw-in. A bounce that throws in and then bounces again shares the
// same depth counter, so a bounce/throw-in ping-pong is bounded too.
func ResolveBounce(d dice.Source, m *MatchState, sink Sink) {
	resolveBounceDepth(d, m, sink, 0)
}

func resolveBounceDepth(d dice.Source, m *MatchState, sink Sink, depth int) {
	if depth >= MaxBounceDepth {
		return
	}

	from := m.Ball.Cell
	direction := d.D8()
	to := from.Add(grid.Scatter(direction))
	emit(sink, Event{Kind: BallBounce, From: from, To: to, Roll: direction})

	if to.IsOff() {
		resolveThrowInDepth(d, m, from, sink, depth)
		return
	}

	m.Ball.Cell = to
	if occ := m.OccupantAt(to); occ != nil && occ.State == Standing {
		resolveCatchDepth(d, m, occ, 0, false, sink, depth+1)
		return
	}
	m.Ball.Location = BallOnGround
}

// ResolveThrowIn resolves a ball leaving the pitch from lastOnPitch: a d8
// direction and a 2d6 distance, clamped back onto the pitch, then a catch
// or bounce attempt at the landing cell.
func ResolveThrowIn(d dice.Source, m *MatchState, lastOnPitch grid.Cell, sink Sink) {
	resolveThrowInDepth(d, m, lastOnPitch, sink, 0)
}

func resolveThrowInDepth(d dice.Source, m *MatchState, lastOnPitch grid.Cell, sink Sink, depth int) {
	direction := grid.Scatter(d.D8())
	distance := d.D2D6()

	landing := lastOnPitch
	for i := 0; i < distance; i++ {
		next := landing.Add(direction)
		if next.IsOff() {
			break
		}
		landing = next
	}
	landing = clampOnPitch(landing)

	emit(sink, Event{Kind: KickoffEvent, From: lastOnPitch, To: landing})
	m.Ball.Cell = landing
	if occ := m.OccupantAt(landing); occ != nil && occ.State == Standing {
		resolveCatchDepth(d, m, occ, 0, false, sink, depth+1)
		return
	}
	m.Ball.Location = BallOnGround
}

func clampOnPitch(c grid.Cell) grid.Cell {
	x, y := c.X, c.Y
	if x < 0 {
		x = 0
	}
	if x >= grid.Width {
		x = grid.Width - 1
	}
	if y < 0 {
		y = 0
	}
	if y >= grid.Height {
		y = grid.Height - 1
	}
	return grid.Cell{X: x, Y: y}
}
