package game

import (
	"scrimmage/dice"
	"scrimmage/grid"
	"scrimmage/skill"
)

// KickoffEventID names one of the 2d6 kickoff-event table results.
type KickoffEventID int

const (
	GetTheRef KickoffEventID = iota
	Riot
	PerfectDefence
	HighKick
	CheeringFans
	ChangingWeather
	BrilliantCoaching
	QuickSnap
	KickoffBlitz
	ThrowARock
	PitchInvasion
)

// KickoffEventFromRoll resolves a 2d6 kickoff roll to its named event.
func KickoffEventFromRoll(roll int) KickoffEventID {
	switch roll {
	case 2:
		return GetTheRef
	case 3:
		return Riot
	case 4:
		return PerfectDefence
	case 5:
		return HighKick
	case 6:
		return CheeringFans
	case 7:
		return ChangingWeather
	case 8:
		return BrilliantCoaching
	case 9:
		return QuickSnap
	case 10:
		return KickoffBlitz
	case 11:
		return ThrowARock
	default:
		return PitchInvasion
	}
}

// ResolveKickoff scatters the ball from the pitch's centre, rolls weather,
// and resolves the named kickoff event if the ball lands in the
// receiving team's half; a landing in the kicking team's half is a
// touchback instead.
func ResolveKickoff(d dice.Source, m *MatchState, sink Sink) {
	m.Weather = WeatherFromRoll(d.D2D6())
	emit(sink, Event{Kind: WeatherChange, Roll: int(m.Weather)})

	target := grid.Cell{X: grid.Width / 2, Y: grid.Height / 2}
	distance := d.D6()
	if teamHasKick(m, m.KickingTeam) {
		distance = (distance + 1) / 2
	}
	direction := grid.Scatter(d.D8())
	landing := target
	for i := 0; i < distance; i++ {
		landing = landing.Add(direction)
	}
	landing = clampOnPitch(landing)
	emit(sink, Event{Kind: KickoffEvent, From: target, To: landing})

	receivingHalf := m.KickingTeam.Opponent()
	if inHalf(landing, receivingHalf) {
		eventRoll := d.D2D6()
		event := KickoffEventFromRoll(eventRoll)
		applyKickoffEvent(d, m, event, sink)

		m.Ball.Location = BallOnGround
		m.Ball.Cell = landing
		if occ := m.OccupantAt(landing); occ != nil && occ.State == Standing {
			ResolveCatch(d, m, occ, 0, false, sink)
		} else {
			ResolveBounce(d, m, sink)
		}
		return
	}

	// touchback: the ball landed in the kicking team's own half, so the
	// receiving team simply takes possession with their figure nearest
	// the landing spot; no kickoff event fires.
	holder := nearestStanding(m, landing, receivingHalf)
	if holder != nil {
		m.Ball.Location = BallCarried
		m.Ball.Carrier = holder.ID
		m.Ball.Cell = holder.Position
		return
	}

	m.Ball.Location = BallOnGround
	m.Ball.Cell = landing
}

func teamHasKick(m *MatchState, side Side) bool {
	for i := 1; i < len(m.Figures); i++ {
		f := &m.Figures[i]
		if f.Side == side && f.State.OnPitch() && f.Has(skill.Kick) {
			return true
		}
	}
	return false
}

func inHalf(c grid.Cell, side Side) bool {
	mid := grid.Width / 2
	if side == Home {
		return c.X < mid
	}
	return c.X >= mid
}

func nearestStanding(m *MatchState, landing grid.Cell, side Side) *Figure {
	var nearest *Figure
	best := 1 << 30
	for i := 1; i < len(m.Figures); i++ {
		f := &m.Figures[i]
		if f.Side != side || f.State != Standing {
			continue
		}
		dist := grid.Chebyshev(f.Position, landing)
		if dist < best {
			best = dist
			nearest = f
		}
	}
	return nearest
}

// applyKickoffEvent resolves the named kickoff event's effect. Several
// events (riot, perfect defence, brilliant coaching, pitch invasion) have
// no mechanical effect modelled here beyond their named flavour and are
// no-ops; the core implements the events with a clear mechanical
// resolution.
func applyKickoffEvent(d dice.Source, m *MatchState, event KickoffEventID, sink Sink) {
	switch event {
	case CheeringFans:
		winner := d.D6()
		var side Side
		if winner%2 == 0 {
			side = Home
		} else {
			side = Away
		}
		m.Team(side).Rerolls++
		emit(sink, Event{Kind: SkillUsed, Roll: winner, Success: true})

	case ChangingWeather:
		m.Weather = WeatherFromRoll(d.D2D6())
		emit(sink, Event{Kind: WeatherChange, Roll: int(m.Weather)})

	case QuickSnap:
		receiving := m.KickingTeam.Opponent()
		for i := 1; i < len(m.Figures); i++ {
			f := &m.Figures[i]
			if f.Side == receiving && f.State == Standing {
				f.Position = stepToward(f.Position, grid.Width/2)
			}
		}

	case KickoffBlitz:
		kicking := m.KickingTeam
		for i := 1; i < len(m.Figures); i++ {
			f := &m.Figures[i]
			if f.Side == kicking && f.State == Standing {
				f.Position = stepToward(f.Position, grid.Width/2)
			}
		}

	case ThrowARock:
		for _, side := range []Side{Home, Away} {
			victim := randomStanding(d, m, side)
			if victim != nil {
				victim.State = Stunned
				emit(sink, Event{Kind: SkillUsed, PrimaryID: victim.ID, Success: true})
			}
		}

	default:
		// flavour-only events: no mechanical state change
	}
}

func stepToward(c grid.Cell, targetX int) grid.Cell {
	dx := 0
	if c.X < targetX {
		dx = 1
	} else if c.X > targetX {
		dx = -1
	}
	return grid.Cell{X: c.X + dx, Y: c.Y}
}

func randomStanding(d dice.Source, m *MatchState, side Side) *Figure {
	var candidates []*Figure
	for i := 1; i < len(m.Figures); i++ {
		f := &m.Figures[i]
		if f.Side == side && f.State == Standing {
			candidates = append(candidates, f)
		}
	}
	if len(candidates) == 0 {
		return nil
	}
	idx := d.D6() % len(candidates)
	return candidates[idx]
}
