package game

import (
	"scrimmage/dice"
	"scrimmage/grid"
	"scrimmage/skill"
)

// PassRange classifies a pass by distance.
type PassRange int

const (
	QuickPass PassRange = iota
	ShortPass
	LongPass
	BombPass
)

func rangeModifier(r PassRange) int {
	switch r {
	case QuickPass:
		return 1
	case ShortPass:
		return 0
	case LongPass:
		return -1
	default:
		return -2
	}
}

// ClassifyRange buckets a pass distance into its named range.
func ClassifyRange(distance int) PassRange {
	switch {
	case distance <= 3:
		return QuickPass
	case distance <= 6:
		return ShortPass
	case distance <= 10:
		return LongPass
	default:
		return BombPass
	}
}

// PassTarget computes the target number for a pass of the given range.
func PassTarget(m *MatchState, passer *Figure, r PassRange, accurateBonus bool, disturbingPresence bool) int {
	target := 7 - passer.Agility - rangeModifier(r)
	if accurateBonus {
		target--
	}
	target += TacklezoneCount(&m.Figures, passer.Position, passer.Side, passer.ID)
	if disturbingPresence {
		target++
	}
	if m.Weather == Rain {
		target++
	}
	return Clamp(target)
}

// ResolvePass resolves a pass from passer toward target cell, to optional
// targetFigure if the ball lands on a standing figure. hailMary skips
// interception only; a failed hail-mary pass scatters the same way as any
// other failed pass.
func ResolvePass(d dice.Source, m *MatchState, passer *Figure, target grid.Cell, hailMary bool, sink Sink) Outcome {
	if m.Ball.Location != BallCarried || m.Ball.Carrier != passer.ID {
		return Outcome{Success: false}
	}

	distance := grid.Chebyshev(passer.Position, target)
	r := ClassifyRange(distance)
	passTarget := PassTarget(m, passer, r, passer.Has(skill.Accurate), false)

	if !hailMary {
		if interceptor := findInterceptor(m, passer, target); interceptor != nil {
			interceptTarget := Clamp(7 - interceptor.Agility + 2 - TacklezoneCount(&m.Figures, interceptor.Position, interceptor.Side, interceptor.ID))
			intercepted := AttemptRoll(d, interceptor, m.Team(interceptor.Side), interceptTarget, skill.None, false, true)
			emit(sink, Event{Kind: PassEvent, PrimaryID: passer.ID, SecondID: interceptor.ID, Roll: interceptTarget, Success: intercepted})
			if intercepted {
				m.Ball.Location = BallCarried
				m.Ball.Carrier = interceptor.ID
				m.Ball.Cell = interceptor.Position
				return Outcome{Success: false, Turnover: true}
			}
		}
	}

	roll := d.D6()
	if roll == 1 {
		if passer.Has(skill.SafeThrow) {
			roll = d.D6()
		}
		if roll == 1 {
			m.Ball.Location = BallOnGround
			m.Ball.Cell = passer.Position
			ResolveBounce(d, m, sink)
			return Outcome{Success: false, Turnover: true}
		}
	}

	success := roll >= passTarget
	if !success && roll != 1 {
		success = AttemptRoll(d, passer, m.Team(passer.Side), passTarget, skill.Pass, false, true)
	}
	emit(sink, Event{Kind: PassEvent, PrimaryID: passer.ID, From: passer.Position, To: target, Roll: passTarget, Success: success})

	m.Ball.Location = BallOnGround
	landing := target
	if !success {
		scatterDist := d.D8() + d.D6()
		direction := grid.Scatter(d.D8())
		for i := 0; i < scatterDist; i++ {
			landing = landing.Add(direction)
		}
	}

	if landing.IsOff() {
		m.Ball.Cell = clampOnPitch(landing)
		ResolveThrowIn(d, m, target, sink)
		return Outcome{Success: success, Turnover: false}
	}
	m.Ball.Cell = landing

	if occ := m.OccupantAt(landing); occ != nil && occ.State == Standing {
		catchMod := -1
		if !success {
			catchMod = 0
		}
		ResolveCatch(d, m, occ, catchMod, false, sink)
	} else {
		ResolveBounce(d, m, sink)
	}

	return Outcome{Success: success}
}

// ResolveHandOff resolves a hand-off: structurally a distance-1 pass with
// a +1 catch modifier and no interception risk.
func ResolveHandOff(d dice.Source, m *MatchState, passer, receiver *Figure, sink Sink) Outcome {
	if m.Ball.Location != BallCarried || m.Ball.Carrier != passer.ID {
		return Outcome{Success: false}
	}
	if !grid.IsAdjacent(passer.Position, receiver.Position) {
		return Outcome{Success: false}
	}

	m.Ball.Location = BallOnGround
	m.Ball.Cell = receiver.Position
	success := ResolveCatch(d, m, receiver, 1, false, sink)
	emit(sink, Event{Kind: PassEvent, PrimaryID: passer.ID, SecondID: receiver.ID, Success: success})
	return Outcome{Success: success, Turnover: !success}
}

// findInterceptor returns the first eligible enemy standing figure on the
// line between passer and target (excluding endpoints).
func findInterceptor(m *MatchState, passer *Figure, target grid.Cell) *Figure {
	line := bresenham(passer.Position, target)
	for _, c := range line {
		if occ := m.OccupantAt(c); occ != nil && occ.Side != passer.Side && occ.State == Standing {
			return occ
		}
	}
	return nil
}

func bresenham(from, to grid.Cell) []grid.Cell {
	var out []grid.Cell
	x0, y0, x1, y1 := from.X, from.Y, to.X, to.Y
	dx := abs(x1 - x0)
	dy := abs(y1 - y0)
	sx, sy := 1, 1
	if x1 < x0 {
		sx = -1
	}
	if y1 < y0 {
		sy = -1
	}
	err := dx - dy
	x, y := x0, y0
	for x != x1 || y != y1 {
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x += sx
		}
		if e2 < dx {
			err += dx
			y += sy
		}
		if x == x1 && y == y1 {
			break
		}
		out = append(out, grid.Cell{X: x, Y: y})
	}
	return out
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
