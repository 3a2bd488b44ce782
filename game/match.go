package game

import (
	"encoding/binary"
	"hash/fnv"

	"scrimmage/grid"
)

// Phase is the match's coarse lifecycle stage.
type Phase int

const (
	CoinToss Phase = iota
	Setup
	Kickoff
	Play
	Touchdown
	HalfTime
	GameOver
)

// MaxTurnsPerHalf bounds each side's turn number per half; exceeding it
// transitions the match to half-time or game-over.
const MaxTurnsPerHalf = 8

// StateHash is an opaque fingerprint of a MatchState, used by the searcher
// to sanity-check open-loop replay against a reused tree path.
type StateHash uint64

// MatchState is the authoritative, cheaply cloneable game state. It is
// plain data: a fixed 23-slot figure array (index 0 unused, figures are
// numbered 1..22) with no heap indirection inside Figure, two TeamStates
// by value, and a Ball by value — cloning never walks a pointer graph.
type MatchState struct {
	Half            int
	Phase           Phase
	ActiveSide      Side
	Home            TeamState
	Away            TeamState
	Figures         [23]Figure
	Ball            Ball
	TurnoverPending bool
	KickingTeam     Side
	Weather         Weather
}

// NewMatchState builds an empty match shell before placement; the
// simulator is responsible for filling in figures via roster templates
// and formations before starting play.
func NewMatchState(kickingTeam Side) *MatchState {
	m := &MatchState{
		Half:        1,
		Phase:       CoinToss,
		ActiveSide:  kickingTeam.Opponent(),
		KickingTeam: kickingTeam,
		Weather:     Nice,
	}
	m.Home.Side = Home
	m.Away.Side = Away
	return m
}

// Clone returns a deep-enough copy for search: every field is either
// plain data or a fixed-size array copied by value, so Clone never
// allocates beyond the returned struct itself.
func (m *MatchState) Clone() *MatchState {
	clone := *m
	return &clone
}

// Team returns the TeamState for side, by pointer so callers can mutate
// the owning MatchState's copy in place.
func (m *MatchState) Team(side Side) *TeamState {
	if side == Home {
		return &m.Home
	}
	return &m.Away
}

// Figure returns a pointer to the figure with the given id (1..22), or nil
// if id is out of range.
func (m *MatchState) Figure(id int) *Figure {
	if id <= 0 || id >= len(m.Figures) {
		return nil
	}
	return &m.Figures[id]
}

// Carrier returns the figure currently holding the ball, or nil if the
// ball is not carried.
func (m *MatchState) Carrier() *Figure {
	if m.Ball.Location != BallCarried {
		return nil
	}
	return m.Figure(m.Ball.Carrier)
}

// OccupantAt returns the figure occupying cell c, or nil if empty.
func (m *MatchState) OccupantAt(c grid.Cell) *Figure {
	for i := 1; i < len(m.Figures); i++ {
		f := &m.Figures[i]
		if f.State.OnPitch() && f.Position.Equal(c) {
			return f
		}
	}
	return nil
}

// Hash fingerprints the parts of the state that affect legality and
// outcome: active side, phase, ball, and every figure's position/state.
// Used only by the searcher's path-reuse sanity check, never by gameplay
// logic itself.
func (m *MatchState) Hash() StateHash {
	h := fnv.New64a()
	write := func(v int64) { binary.Write(h, binary.LittleEndian, v) }

	write(int64(m.ActiveSide))
	write(int64(m.Phase))
	write(int64(m.Half))
	write(int64(m.Home.Score))
	write(int64(m.Away.Score))
	write(int64(m.Home.TurnNumber))
	write(int64(m.Away.TurnNumber))
	write(int64(m.Ball.Location))
	write(int64(m.Ball.Cell.X))
	write(int64(m.Ball.Cell.Y))
	write(int64(m.Ball.Carrier))
	for i := 1; i < len(m.Figures); i++ {
		f := &m.Figures[i]
		write(int64(f.Position.X))
		write(int64(f.Position.Y))
		write(int64(f.State))
		write(int64(f.MovementRemaining))
	}
	return StateHash(h.Sum64())
}

// ResetTurn clears per-turn flags for side's figures and team state; used
// by EndTurn handling in the action resolver.
func (m *MatchState) ResetTurn(side Side) {
	m.Team(side).ResetTurn()
	for i := 1; i < len(m.Figures); i++ {
		f := &m.Figures[i]
		if f.Side == side {
			f.ResetTurn()
		}
	}
}

// Winner reports the side with the higher score once the match is over;
// the bool is false (and the side is Home, meaningless) when the match
// has not concluded or ended in a tie. Kept as a plain method rather than an interface method since
// this core has exactly one game to search over.
func (m *MatchState) Winner() (Side, bool) {
	if m.Phase != GameOver {
		return Home, false
	}
	if m.Home.Score == m.Away.Score {
		return Home, false
	}
	if m.Home.Score > m.Away.Score {
		return Home, true
	}
	return Away, true
}
